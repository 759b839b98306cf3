package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/viper"

	"github.com/openelexva/reconcile/internal/common"
	"github.com/openelexva/reconcile/internal/config"
	"github.com/openelexva/reconcile/internal/model"
	"github.com/openelexva/reconcile/internal/storage"
)

func setupLogging() error {
	level := viper.GetString("logging.level")
	format := viper.GetString("logging.format")

	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "info":
		slogLevel = slog.LevelInfo
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		return fmt.Errorf("invalid log level: %s", level)
	}

	return common.SetupLogger(slogLevel, format)
}

// initStorage opens the configured database and brings its schema up to
// date.
func initStorage(ctx context.Context, cfg config.Pipeline) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// loadRecords pulls the stored canonical set as pointers for the
// pipeline stages.
func loadRecords(ctx context.Context, store *storage.SQLiteStorage) ([]*model.TransactionRecord, error) {
	records, err := store.GetTransactions(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, common.ErrNoRecords
	}

	pointers := make([]*model.TransactionRecord, len(records))
	for i := range records {
		pointers[i] = &records[i]
	}
	return pointers, nil
}

func dereference(records []*model.TransactionRecord) []model.TransactionRecord {
	values := make([]model.TransactionRecord, len(records))
	for i, rec := range records {
		values[i] = *rec
	}
	return values
}

func showProgress() bool {
	return !viper.GetBool("no_progress") && isTerminal()
}

func isTerminal() bool {
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
