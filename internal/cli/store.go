package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/at-ishikawa/word/internal/config"
	"github.com/at-ishikawa/word/internal/database"
	"github.com/at-ishikawa/word/internal/dictionary"
	"github.com/spf13/pflag"
)

type CacheBackend string

func (b *CacheBackend) Set(val string) error {
	for _, backend := range AllCacheBackends {
		if val == string(backend) {
			*b = backend
			return nil
		}
	}
	return fmt.Errorf("invalid cache backend: %s", val)
}

func (b CacheBackend) String() string {
	return string(b)
}

func (b *CacheBackend) Type() string {
	return "CacheBackend"
}

const (
	CacheBackendFile  CacheBackend = config.CacheBackendFile
	CacheBackendMySQL CacheBackend = config.CacheBackendMySQL
)

var (
	_                pflag.Value = (*CacheBackend)(nil)
	AllCacheBackends             = []CacheBackend{CacheBackendFile, CacheBackendMySQL}
)

// LoadConfig loads and validates the settings. A non-empty backend or token overrides them.
func LoadConfig(configFile string, backend CacheBackend, token string) (config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg = cfg.WithToken(token)
	if backend != "" {
		cfg.Cache.Backend = backend.String()
	}
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func CacheDirectory(cfg config.Config) string {
	if cfg.CacheDirectory != "" {
		return cfg.CacheDirectory
	}
	return dictionary.DefaultCacheDirectory()
}

// OpenStore returns the configured cache and a function releasing it.
func OpenStore(ctx context.Context, cfg config.Config) (dictionary.Store, func() error, error) {
	switch CacheBackend(cfg.Cache.Backend) {
	case CacheBackendMySQL:
		db, err := database.Open(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("database.Open > %w", err)
		}
		slog.Default().DebugContext(ctx, "using mysql cache", "host", cfg.Database.Host, "database", cfg.Database.Database)
		return dictionary.NewDBCache(db), db.Close, nil
	case CacheBackendFile:
		fallthrough
	default:
		dir := CacheDirectory(cfg)
		slog.Default().DebugContext(ctx, "using file cache", "cache_dir", dir)
		return dictionary.NewFileCache(dir), func() error { return nil }, nil
	}
}
