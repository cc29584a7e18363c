// Package testutil provides testing utilities for the planbook project.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// envKeys are the variables config.Load reads, besides the two path
// overrides.
var envKeys = []string{
	"PLANBOOK_STORAGE_DRIVER", "PLANBOOK_SQLITE_PATH", "PLANBOOK_REDIS_ADDR",
	"PLANBOOK_REDIS_PASSWORD", "PLANBOOK_REDIS_DB", "PLANBOOK_POSTGRES_DSN",
	"PLANBOOK_BACKUP_S3_BUCKET", "PLANBOOK_BACKUP_S3_REGION", "PLANBOOK_BACKUP_S3_ENDPOINT",
	"PLANBOOK_BACKUP_S3_PATH_STYLE", "PLANBOOK_BACKUP_S3_KEY",
	"PLANBOOK_LOG_LEVEL", "PLANBOOK_LOG_FORMAT",
}

// IsolateEnv points HOME at a fresh temp directory and unsets every
// PLANBOOK_* variable for the duration of the test. Returns the temp home,
// with symlinks resolved (for macOS).
func IsolateEnv(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	// Resolve symlinks for macOS (/var -> /private/var)
	if resolved, err := filepath.EvalSymlinks(home); err != nil {
		t.Logf("warning: could not resolve symlinks for temp dir: %v", err)
	} else {
		home = resolved
	}

	t.Setenv("HOME", home)
	for _, key := range append([]string{"PLANBOOK_CONFIG", "PLANBOOK_DATA_DIR"}, envKeys...) {
		// Setenv registers the restore; Unsetenv makes the variable absent
		// rather than empty.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return home
}

// SetupDataDir isolates the environment and selects a file-backed data
// directory under the temp home. The directory itself is not created.
func SetupDataDir(t *testing.T) string {
	t.Helper()

	dataDir := filepath.Join(IsolateEnv(t), ".planbook")
	t.Setenv("PLANBOOK_DATA_DIR", dataDir)
	t.Setenv("PLANBOOK_STORAGE_DRIVER", "file")
	t.Setenv("PLANBOOK_LOG_LEVEL", "error")
	return dataDir
}
