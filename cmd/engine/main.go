package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eddiefleurent/scranton_spreads/internal/broker"
	"github.com/eddiefleurent/scranton_spreads/internal/config"
	"github.com/eddiefleurent/scranton_spreads/internal/executor"
	"github.com/eddiefleurent/scranton_spreads/internal/marketdata"
	"github.com/eddiefleurent/scranton_spreads/internal/risk"
	"github.com/eddiefleurent/scranton_spreads/internal/selector"
	"github.com/eddiefleurent/scranton_spreads/internal/storage"
)

// Engine ties the per-symbol evaluation pipeline together.
type Engine struct {
	config   *config.Config
	broker   broker.Broker
	provider *marketdata.Provider
	selector *selector.Selector
	adjuster *risk.Adjuster
	executor *executor.Executor
	journal  *storage.Journal
	logger   *log.Logger
}

func main() {
	var (
		configPath string
		dryRun     bool
		phase      int
		once       bool
	)
	flag.StringVar(&configPath, "config", "config.yaml", "Path to configuration file")
	flag.BoolVar(&dryRun, "dry-run", false, "Construct orders without transmitting them")
	flag.IntVar(&phase, "phase", 0, "Override selector phase (0 keeps config value)")
	flag.BoolVar(&once, "once", false, "Run a single evaluation cycle and exit")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if dryRun {
		cfg.Execution.DryRun = true
	}
	if phase > 0 {
		cfg.Selector.Phase = phase
	}

	logger := log.New(os.Stdout, "[ENGINE] ", log.LstdFlags|log.Lshortfile)

	logger.Printf("Starting strategy engine in %s mode, phase %d", cfg.Environment.Mode, cfg.Selector.Phase)
	if cfg.IsPaperTrading() || cfg.Execution.DryRun {
		logger.Println("Paper/dry-run mode - no real money at risk")
	} else {
		logger.Println("LIVE TRADING MODE - real money at risk!")
		logger.Println("Waiting 10 seconds to confirm...")
		time.Sleep(10 * time.Second)
	}

	eng, err := newEngine(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize engine: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Println("Shutdown signal received, stopping engine...")
		cancel()
	}()

	if err := eng.Run(ctx, once); err != nil {
		logger.Fatalf("Engine error: %v", err)
	}
	logger.Println("Engine stopped successfully")
}

func newEngine(cfg *config.Config, logger *log.Logger) (*Engine, error) {
	var b broker.Broker
	if cfg.Broker.APIEndpoint != "" || cfg.Broker.DataURL != "" {
		b = broker.NewAlpacaClientWithURLs(cfg.Broker.APIKey, cfg.Broker.APISecret,
			cfg.Broker.APIEndpoint, cfg.Broker.DataURL)
	} else {
		b = broker.NewAlpacaClient(cfg.Broker.APIKey, cfg.Broker.APISecret, cfg.IsPaperTrading())
	}
	if cfg.Broker.CircuitBreaker {
		b = broker.NewCircuitBreakerBroker(b)
	}

	journal, err := storage.NewJournal(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}

	return &Engine{
		config:   cfg,
		broker:   b,
		provider: marketdata.NewProvider(b, logger),
		selector: selector.New(logger, selector.Config{
			IVThreshold: cfg.Selector.IVThreshold,
			Phase:       cfg.Selector.Phase,
		}),
		adjuster: risk.NewAdjuster(logger, risk.Config{
			ATRPeriod:       cfg.Risk.ATRPeriod,
			StopLossPct:     cfg.Risk.StopLossPct,
			TakeProfitPct:   cfg.Risk.TakeProfitPct,
			ATRStopMult:     cfg.Risk.ATRStopMult,
			ATRProfitMult:   cfg.Risk.ATRProfitMult,
			TrailingStopPct: cfg.Risk.TrailingStopPct,
		}),
		executor: executor.New(b, logger, cfg.Execution.DryRun, executor.Config{
			MaxAttempts: cfg.Execution.MaxAttempts,
			RetryDelay:  cfg.GetRetryDelay(),
		}),
		journal: journal,
		logger:  logger,
	}, nil
}

// Run verifies broker connectivity and drives the evaluation loop.
func (e *Engine) Run(ctx context.Context, once bool) error {
	e.logger.Println("Verifying broker connection...")
	balance, err := e.broker.GetAccountBalance(ctx)
	if err != nil {
		if e.config.Execution.DryRun {
			e.logger.Printf("Broker unavailable (%v), continuing in dry-run", err)
		} else {
			return fmt.Errorf("failed to connect to broker: %w", err)
		}
	} else {
		e.logger.Printf("Connected to broker. Account equity: $%.2f", balance)
	}

	e.runCycle(ctx)
	if once {
		return nil
	}

	ticker := time.NewTicker(e.config.GetInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			e.runCycle(ctx)
		}
	}
}
