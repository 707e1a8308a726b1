// Package testutil provides shared test helpers for creating Settings files and cache fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/require"
)

// IsolateEnvironment moves the test into an empty working directory with its own
// XDG config home and clears WORD_* variables, so no Settings file of the host is read.
// Returns the working directory.
func IsolateEnvironment(t *testing.T) string {
	t.Helper()

	workDir := t.TempDir()
	t.Chdir(workDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(workDir, "xdg"))
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	for _, name := range []string{
		"WORD_TOKEN", "WORD_HOST", "WORD_CACHE_DIRECTORY", "WORD_RETRY_ATTEMPTS", "WORD_CACHE_BACKEND",
	} {
		t.Setenv(name, "")
	}
	return workDir
}

// SetupTestConfig creates a minimal Settings file and its cache directory under tmpDir.
// Returns the path to the generated Settings file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	cacheDir := filepath.Join(tmpDir, "cache")
	require.NoError(t, os.MkdirAll(cacheDir, 0755))

	configContent := fmt.Sprintf(`cache_directory: %s
retry_attempts: 0
cache:
  backend: file
`, cacheDir)

	cfgPath := filepath.Join(tmpDir, "Settings.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SetupTestConfigWithToken creates a Settings file with a fake RapidAPI token for tests
// that must get past the missing token check.
func SetupTestConfigWithToken(t *testing.T, tmpDir string) string {
	t.Helper()
	cfgPath := SetupTestConfig(t, tmpDir)

	content, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	content = append(content, []byte("token: fake-token-for-testing\n")...)
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))
	return cfgPath
}

// CacheFileOption configures optional fields when creating a cache file fixture.
type CacheFileOption func(*cacheFileConfig)

type cacheFileConfig struct {
	modTime time.Time
}

// WithModTime sets the modification time, which the file cache reports as the update time.
func WithModTime(modTime time.Time) CacheFileOption {
	return func(cfg *cacheFileConfig) {
		cfg.modTime = modTime
	}
}

// CreateCacheFile writes payload as the cached response of key under cacheDir.
func CreateCacheFile(t *testing.T, cacheDir, key, payload string, opts ...CacheFileOption) string {
	t.Helper()

	var cfg cacheFileConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	require.NoError(t, os.MkdirAll(cacheDir, 0755))
	path := filepath.Join(cacheDir, key+".json")
	require.NoError(t, os.WriteFile(path, []byte(payload), 0644))
	if !cfg.modTime.IsZero() {
		require.NoError(t, os.Chtimes(path, cfg.modTime, cfg.modTime))
	}
	return path
}
