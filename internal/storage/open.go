package storage

import (
	"context"
	"fmt"

	"github.com/pablasso/planbook/internal/config"
)

// Open returns the slot selected by cfg.Storage.Driver.
func Open(ctx context.Context, cfg *config.Config) (Slot, error) {
	sc := cfg.Storage
	switch sc.Driver {
	case config.DriverFile, "":
		return NewFileSlot(cfg.DataDir), nil
	case config.DriverSQLite:
		return OpenSQLiteSlot(ctx, sc.SQLitePath)
	case config.DriverRedis:
		return OpenRedisSlot(ctx, RedisOptions{
			Addr:     sc.RedisAddr,
			Password: sc.RedisPassword,
			DB:       sc.RedisDB,
		})
	case config.DriverPostgres:
		return OpenPostgresSlot(ctx, sc.PostgresDSN)
	case config.DriverMemory:
		return NewMemorySlot(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", sc.Driver)
	}
}

// IsLocal reports whether driver keeps its data inside the data directory,
// where concurrent planbook processes must be serialized with a DirLock.
func IsLocal(driver string) bool {
	return driver == config.DriverFile || driver == config.DriverSQLite || driver == ""
}
