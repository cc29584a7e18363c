package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// Validate checks driver-specific requirements. Load calls it automatically.
func (c *Config) Validate() error {
	if !slices.Contains(Drivers, c.Storage.Driver) {
		return fmt.Errorf("storage.driver must be one of %s (got %q)", strings.Join(Drivers, ", "), c.Storage.Driver)
	}

	switch c.Storage.Driver {
	case DriverRedis:
		if c.Storage.RedisAddr == "" {
			return fmt.Errorf("storage.redis_addr is required for the redis driver")
		}
	case DriverPostgres:
		if c.Storage.PostgresDSN == "" {
			return fmt.Errorf("storage.postgres_dsn is required for the postgres driver")
		}
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json (got %q)", c.Log.Format)
	}

	return nil
}

// HasBackup reports whether an S3 backup bucket is configured.
func (c *Config) HasBackup() bool {
	return c.Backup.S3Bucket != ""
}

func dirOf(path string) string {
	return filepath.Dir(path)
}
