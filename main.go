package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hostreport/api"
	"hostreport/collector"
	"hostreport/config"
	"hostreport/logger"
	"hostreport/models"
	"hostreport/report"

	"go.uber.org/zap"
)

// Build info
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type source interface {
	Collect(ctx context.Context) (*models.Snapshot, error)
}

type notifier interface {
	Notify(ctx context.Context, text string) bool
}

func main() {
	cfg := config.Load()

	log := logger.New(cfg.LogLevel)
	log.Info("starting monitoring run",
		zap.String("version", version),
		zap.String("commit", commit),
		zap.String("built", date),
	)
	if !cfg.EnvFileLoaded {
		log.Debug("no .env file found, using environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	parseMode := cfg.ParseMode
	if cfg.PlainText() {
		parseMode = ""
	}
	sender := api.NewSender(cfg.APIURL, cfg.BotToken, cfg.ChatID, parseMode, cfg.SendTimeout, log)

	err := run(ctx, cfg, log, collector.New(cfg, log), sender, time.Now)
	code := exitCode(err, log)

	stop()
	_ = log.Sync()
	os.Exit(code)
}

// run is one pass of the pipeline: validate, collect, assemble, deliver once.
// Delivery failure is logged by the notifier and does not fail the run.
func run(ctx context.Context, cfg *config.Config, log *zap.Logger, src source, n notifier, now func() time.Time) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected fault: %v", r)
		}
	}()

	if err := cfg.Validate(); err != nil {
		return err
	}

	snap, err := src.Collect(ctx)
	if err != nil {
		return fmt.Errorf("collect: %w", err)
	}

	doc := report.Assemble(snap, now())
	if cfg.PlainText() {
		doc = report.PlainText(doc)
	}
	log.Info("report assembled", zap.Int("bytes", len(doc)))

	if !n.Notify(ctx, doc) {
		log.Warn("report not delivered")
	}
	return nil
}

// exitCode maps the run outcome to the process status. Missing credentials are
// reported but are not a failure; collection faults are.
func exitCode(err error, log *zap.Logger) int {
	switch {
	case err == nil:
		log.Info("monitoring run finished")
		return 0
	case errors.Is(err, config.ErrMissingCredentials):
		log.Error("configuration incomplete, nothing collected", zap.Error(err))
		return 0
	default:
		log.Error("monitoring run failed", zap.Error(err))
		return 1
	}
}
