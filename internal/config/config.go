// Package config loads planbook settings from a YAML file and the environment.
package config

import (
	"os"
	"path/filepath"
)

// DefaultDirName is the data directory created under the user's home.
const DefaultDirName = ".planbook"

// Storage drivers.
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Drivers lists every supported storage driver.
var Drivers = []string{DriverFile, DriverSQLite, DriverRedis, DriverPostgres, DriverMemory}

// Config is the root planbook configuration.
type Config struct {
	DataDir string        `yaml:"data_dir" env:"PLANBOOK_DATA_DIR"`
	Storage StorageConfig `yaml:"storage"`
	Backup  BackupConfig  `yaml:"backup"`
	Log     LogConfig     `yaml:"log"`
}

// StorageConfig selects and configures the durable slot driver.
type StorageConfig struct {
	Driver        string `yaml:"driver"         env:"PLANBOOK_STORAGE_DRIVER" env-default:"file"`
	SQLitePath    string `yaml:"sqlite_path"    env:"PLANBOOK_SQLITE_PATH"`
	RedisAddr     string `yaml:"redis_addr"     env:"PLANBOOK_REDIS_ADDR"     env-default:"localhost:6379"`
	RedisPassword string `yaml:"redis_password" env:"PLANBOOK_REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db"       env:"PLANBOOK_REDIS_DB"       env-default:"0"`
	PostgresDSN   string `yaml:"postgres_dsn"   env:"PLANBOOK_POSTGRES_DSN"`
}

// BackupConfig holds the S3 location export snapshots are pushed to.
type BackupConfig struct {
	S3Bucket    string `yaml:"s3_bucket"     env:"PLANBOOK_BACKUP_S3_BUCKET"`
	S3Region    string `yaml:"s3_region"     env:"PLANBOOK_BACKUP_S3_REGION"     env-default:"us-east-1"`
	S3Endpoint  string `yaml:"s3_endpoint"   env:"PLANBOOK_BACKUP_S3_ENDPOINT"`
	S3PathStyle bool   `yaml:"s3_path_style" env:"PLANBOOK_BACKUP_S3_PATH_STYLE" env-default:"false"`
	S3Key       string `yaml:"s3_key"        env:"PLANBOOK_BACKUP_S3_KEY"        env-default:"planbook/export.json"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"PLANBOOK_LOG_LEVEL"  env-default:"warn"`
	Format string `yaml:"format" env:"PLANBOOK_LOG_FORMAT" env-default:"text"`
}

// Default returns the configuration used when neither a file nor the
// environment set anything. DataDir is left empty and resolved by Load.
func Default() Config {
	return Config{
		Storage: StorageConfig{
			Driver:    DriverFile,
			RedisAddr: "localhost:6379",
		},
		Backup: BackupConfig{
			S3Region: "us-east-1",
			S3Key:    "planbook/export.json",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// DefaultDataDir returns $PLANBOOK_DATA_DIR, or ~/.planbook. If the home
// directory cannot be determined it falls back to ./.planbook.
func DefaultDataDir() string {
	if dir := os.Getenv("PLANBOOK_DATA_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultDirName
	}
	return filepath.Join(home, DefaultDirName)
}

// Path returns the config file location: $PLANBOOK_CONFIG, or config.yaml in
// the default data directory.
func Path() string {
	if p := os.Getenv("PLANBOOK_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(DefaultDataDir(), "config.yaml")
}

// resolvePaths fills the directory-derived defaults.
func (c *Config) resolvePaths() {
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir()
	}
	if c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = filepath.Join(c.DataDir, "planbook.db")
	}
}
