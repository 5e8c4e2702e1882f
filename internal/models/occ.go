package models

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// occStrikeDigits is the fixed width of the strike field in an OCC symbol.
const occStrikeDigits = 8

// FormatOCC builds an OCC-style option symbol:
// TICKER + YYMMDD + C/P + strike*1000 zero-padded to 8 digits.
// Example: XYZ251017P00096000 for an XYZ 2025-10-17 96 put.
func FormatOCC(ticker string, expiration time.Time, strike float64, optType OptionType) string {
	letter := "C"
	if optType == OptionPut {
		letter = "P"
	}
	strikeInt := int64(math.Round(strike * 1000))
	return fmt.Sprintf("%s%s%s%0*d", ticker, expiration.Format("060102"), letter, occStrikeDigits, strikeInt)
}

// ParseOCC extracts the strike price and option type from an OCC symbol.
// The type letter sits immediately before the 8-digit strike field, so the
// symbol is parsed from the end and the ticker length does not matter.
func ParseOCC(symbol string) (strike float64, optType OptionType, err error) {
	// Minimum: 1-char ticker + 6-digit date + type + 8-digit strike.
	if len(symbol) < 1+6+1+occStrikeDigits {
		return 0, "", fmt.Errorf("option symbol too short: %q", symbol)
	}

	typePos := len(symbol) - occStrikeDigits - 1
	switch symbol[typePos] {
	case 'C':
		optType = OptionCall
	case 'P':
		optType = OptionPut
	default:
		return 0, "", fmt.Errorf("no option type (C/P) at expected position in symbol %q", symbol)
	}

	strikeInt, err := strconv.ParseInt(symbol[typePos+1:], 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("invalid strike field in symbol %q: %w", symbol, err)
	}

	return float64(strikeInt) / 1000.0, optType, nil
}
