package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/pablasso/planbook/internal/config"
	"github.com/pablasso/planbook/internal/logging"
	"github.com/pablasso/planbook/internal/planner"
	"github.com/pablasso/planbook/internal/storage"
)

// env is everything a command needs to operate on the plan collection.
type env struct {
	cfg     *config.Config
	log     *slog.Logger
	slot    storage.Slot
	lock    *storage.DirLock
	planner *planner.Planner
}

// openEnv loads the config, takes the data-dir lock for local drivers, opens
// the slot and loads the plans. Call Close when done.
func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := logging.New(cfg.Log, os.Stderr)

	e := &env{cfg: cfg, log: logger}

	if storage.IsLocal(cfg.Storage.Driver) {
		lock := storage.NewDirLock(cfg.DataDir)
		if err := lock.Acquire(); err != nil {
			if errors.Is(err, storage.ErrLocked) {
				return nil, fmt.Errorf("another planbook process is using %s: %w", cfg.DataDir, err)
			}
			return nil, fmt.Errorf("failed to lock %s: %w", cfg.DataDir, err)
		}
		e.lock = lock
	}

	slot, err := storage.Open(ctx, cfg)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Driver, err)
	}
	e.slot = slot

	p, err := planner.Open(ctx, slot, logger)
	if err != nil {
		e.Close()
		return nil, err
	}
	e.planner = p
	return e, nil
}

// Close releases the slot and the lock.
func (e *env) Close() error {
	var errs []error
	if e.slot != nil {
		errs = append(errs, e.slot.Close())
	}
	if e.lock != nil {
		errs = append(errs, e.lock.Release())
	}
	return errors.Join(errs...)
}

// withPlanner runs fn against a freshly opened environment.
func withPlanner(ctx context.Context, fn func(e *env) error) error {
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()
	return fn(e)
}
