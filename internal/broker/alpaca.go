package broker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Alpaca endpoint defaults. Paper and live trading share the data host.
const (
	alpacaPaperURL = "https://paper-api.alpaca.markets"
	alpacaLiveURL  = "https://api.alpaca.markets"
	alpacaDataURL  = "https://data.alpaca.markets"

	defaultHTTPTimeout = 30 * time.Second
)

// AlpacaClient implements Broker against the Alpaca trading and market-data
// APIs using key/secret header authentication.
type AlpacaClient struct {
	client  *http.Client
	apiKey  string
	secret  string
	baseURL string
	dataURL string
}

// Ensure AlpacaClient implements Broker at compile time.
var _ Broker = (*AlpacaClient)(nil)

// NewAlpacaClient creates a client against the paper or live trading host.
func NewAlpacaClient(apiKey, secret string, paper bool) *AlpacaClient {
	base := alpacaLiveURL
	if paper {
		base = alpacaPaperURL
	}
	return NewAlpacaClientWithURLs(apiKey, secret, base, alpacaDataURL)
}

// NewAlpacaClientWithURLs creates a client with explicit trading and
// market-data base URLs. Empty URLs fall back to the paper defaults.
func NewAlpacaClientWithURLs(apiKey, secret, baseURL, dataURL string) *AlpacaClient {
	if baseURL == "" {
		baseURL = alpacaPaperURL
	}
	if dataURL == "" {
		dataURL = alpacaDataURL
	}
	return &AlpacaClient{
		client:  &http.Client{Timeout: defaultHTTPTimeout},
		apiKey:  apiKey,
		secret:  secret,
		baseURL: strings.TrimRight(baseURL, "/"),
		dataURL: strings.TrimRight(dataURL, "/"),
	}
}

// WithHTTPClient overrides the underlying HTTP client. Tests use this.
func (a *AlpacaClient) WithHTTPClient(c *http.Client) *AlpacaClient {
	if c != nil {
		a.client = c
	}
	return a
}

// SubmitOrder transmits one order request.
func (a *AlpacaClient) SubmitOrder(ctx context.Context, req OrderRequest) (*OrderResponse, error) {
	var resp OrderResponse
	if err := a.makeRequest(ctx, http.MethodPost, a.baseURL+"/v2/orders", req, &resp); err != nil {
		return nil, fmt.Errorf("submitting order: %w", err)
	}
	return &resp, nil
}

// accountResponse is the subset of the account payload the engine reads.
type accountResponse struct {
	Equity string `json:"equity"`
}

// GetAccountBalance returns total account equity.
func (a *AlpacaClient) GetAccountBalance(ctx context.Context) (float64, error) {
	var resp accountResponse
	if err := a.makeRequest(ctx, http.MethodGet, a.baseURL+"/v2/account", nil, &resp); err != nil {
		return 0, fmt.Errorf("fetching account: %w", err)
	}
	equity, err := strconv.ParseFloat(resp.Equity, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing account equity %q: %w", resp.Equity, err)
	}
	return equity, nil
}

// latestTradeResponse wraps the latest-trade market data payload.
type latestTradeResponse struct {
	Trade struct {
		Price float64 `json:"p"`
	} `json:"trade"`
}

// GetLatestPrice returns the most recent trade price for a symbol.
func (a *AlpacaClient) GetLatestPrice(ctx context.Context, symbol string) (float64, error) {
	endpoint := fmt.Sprintf("%s/v2/stocks/%s/trades/latest", a.dataURL, url.PathEscape(symbol))
	var resp latestTradeResponse
	if err := a.makeRequest(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return 0, fmt.Errorf("fetching latest trade for %s: %w", symbol, err)
	}
	return resp.Trade.Price, nil
}

// barsResponse wraps the daily-bars market data payload.
type barsResponse struct {
	Bars []struct {
		Close float64 `json:"c"`
	} `json:"bars"`
}

// GetDailyCloses returns up to limit daily close prices, oldest first.
func (a *AlpacaClient) GetDailyCloses(ctx context.Context, symbol string, limit int) ([]float64, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("bar limit must be positive, got %d", limit)
	}
	endpoint := fmt.Sprintf("%s/v2/stocks/%s/bars?timeframe=1Day&limit=%d", a.dataURL, url.PathEscape(symbol), limit)
	var resp barsResponse
	if err := a.makeRequest(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, fmt.Errorf("fetching bars for %s: %w", symbol, err)
	}
	closes := make([]float64, 0, len(resp.Bars))
	for _, bar := range resp.Bars {
		closes = append(closes, bar.Close)
	}
	return closes, nil
}

// makeRequest performs one JSON round trip. Non-2xx statuses become an
// *APIError carrying the response body.
func (a *AlpacaClient) makeRequest(ctx context.Context, method, endpoint string, body, response interface{}) error {
	var req *http.Request
	var err error

	if body != nil {
		payload, merr := json.Marshal(body)
		if merr != nil {
			return fmt.Errorf("encoding request body: %w", merr)
		}
		req, err = http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, err = http.NewRequestWithContext(ctx, method, endpoint, http.NoBody)
		if err != nil {
			return err
		}
	}

	req.Header.Set("APCA-API-KEY-ID", a.apiKey)
	req.Header.Set("APCA-API-SECRET-KEY", a.secret)
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			log.Printf("Failed to close response body: %v", cerr)
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// 64KB cap to avoid huge error payloads.
		raw, rerr := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if rerr != nil {
			return &APIError{Status: resp.StatusCode, Body: fmt.Sprintf("%s %s -> failed to read error body", method, endpoint)}
		}
		return &APIError{Status: resp.StatusCode, Body: fmt.Sprintf("%s %s -> %s", method, endpoint, string(raw))}
	}

	if resp.StatusCode == http.StatusNoContent || response == nil {
		return nil
	}
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(response); err != nil && err != io.EOF {
		return err
	}
	return nil
}
