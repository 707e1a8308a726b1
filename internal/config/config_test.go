package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() Config {
	return Config{
		Host:          "wordsapiv1.p.rapidapi.com",
		RetryAttempts: 2,
		Cache: CacheConfig{
			Backend: CacheBackendFile,
		},
		Database: DatabaseConfig{
			Port:     3306,
			Database: "word",
		},
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name              string
		settingsFile      string
		configContent     string
		useExplicitPath   bool
		env               map[string]string
		wantErr           bool
		want              func() Config
		wantErrorContains []string
	}{
		{
			name: "no settings file uses defaults",
			want: defaultConfig,
		},
		{
			name:         "yaml settings file",
			settingsFile: "Settings.yaml",
			configContent: `token: file-token
cache_directory: custom/cache
retry_attempts: 5
`,
			want: func() Config {
				cfg := defaultConfig()
				cfg.Token = "file-token"
				cfg.CacheDirectory = "custom/cache"
				cfg.RetryAttempts = 5
				return cfg
			},
		},
		{
			name:         "toml settings file",
			settingsFile: "Settings.toml",
			configContent: `token = "toml-token"
host = "example.com"
`,
			want: func() Config {
				cfg := defaultConfig()
				cfg.Token = "toml-token"
				cfg.Host = "example.com"
				return cfg
			},
		},
		{
			name:         "environment overrides the file",
			settingsFile: "Settings.yaml",
			configContent: `token: file-token
`,
			env: map[string]string{
				"WORD_TOKEN":         "env-token",
				"WORD_CACHE_BACKEND": "mysql",
				"WORD_DATABASE_HOST": "db.example.com",
				"WORD_DATABASE_PORT": "3307",
			},
			want: func() Config {
				cfg := defaultConfig()
				cfg.Token = "env-token"
				cfg.Cache.Backend = CacheBackendMySQL
				cfg.Database.Host = "db.example.com"
				cfg.Database.Port = 3307
				return cfg
			},
		},
		{
			name: "explicit config file path",
			configContent: `token: explicit-token
cache:
  backend: mysql
database:
  host: localhost
  username: word
  params:
    charset: utf8mb4
`,
			useExplicitPath: true,
			want: func() Config {
				cfg := defaultConfig()
				cfg.Token = "explicit-token"
				cfg.Cache.Backend = CacheBackendMySQL
				cfg.Database.Host = "localhost"
				cfg.Database.Username = "word"
				cfg.Database.Params = map[string]string{"charset": "utf8mb4"}
				return cfg
			},
		},
		{
			name:         "invalid YAML format",
			settingsFile: "Settings.yaml",
			configContent: `token: x
  invalid yaml format here [[[
`,
			wantErr: true,
			wantErrorContains: []string{
				"configuration file found but could not be read",
				"Please check the file format and permissions",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			t.Setenv("XDG_CONFIG_HOME", filepath.Join(tempDir, "xdg"))
			xdg.Reload()
			t.Cleanup(xdg.Reload)
			for _, key := range []string{"WORD_TOKEN", "WORD_HOST", "WORD_CACHE_DIRECTORY", "WORD_CACHE_BACKEND"} {
				t.Setenv(key, "")
				require.NoError(t, os.Unsetenv(key))
			}
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			var configPath string
			if tt.useExplicitPath {
				configPath = filepath.Join(tempDir, "custom.yml")
				require.NoError(t, os.WriteFile(configPath, []byte(tt.configContent), 0644))
			} else {
				if tt.settingsFile != "" {
					require.NoError(t, os.WriteFile(filepath.Join(tempDir, tt.settingsFile), []byte(tt.configContent), 0644))
				}
				t.Chdir(tempDir)
			}

			got, err := Load(configPath)
			if tt.wantErr {
				require.Error(t, err)
				for _, wantMsg := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), wantMsg)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want(), got)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfig_WithToken(t *testing.T) {
	cfg := defaultConfig()
	cfg.Token = "configured"

	assert.Equal(t, "override", cfg.WithToken("override").Token)
	assert.Equal(t, "configured", cfg.WithToken("").Token)
	assert.Equal(t, "configured", cfg.Token)
}

func TestValidate(t *testing.T) {
	tempDir := t.TempDir()
	regularFile := filepath.Join(tempDir, "file")
	require.NoError(t, os.WriteFile(regularFile, []byte("x"), 0644))

	tests := []struct {
		name              string
		modify            func(cfg *Config)
		wantErrorContains []string
	}{
		{
			name:   "defaults are valid",
			modify: func(cfg *Config) {},
		},
		{
			name: "missing host",
			modify: func(cfg *Config) {
				cfg.Host = ""
			},
			wantErrorContains: []string{"host is a required field"},
		},
		{
			name: "unknown cache backend",
			modify: func(cfg *Config) {
				cfg.Cache.Backend = "redis"
			},
			wantErrorContains: []string{"backend must be one of [file mysql]"},
		},
		{
			name: "cache directory is a file",
			modify: func(cfg *Config) {
				cfg.CacheDirectory = regularFile
			},
			wantErrorContains: []string{"cache_directory must be a directory, not a file"},
		},
		{
			name: "cache directory does not exist yet",
			modify: func(cfg *Config) {
				cfg.CacheDirectory = filepath.Join(tempDir, "missing")
			},
		},
		{
			name: "database is not checked for the file backend",
			modify: func(cfg *Config) {
				cfg.Database = DatabaseConfig{}
			},
		},
		{
			name: "mysql backend requires database settings",
			modify: func(cfg *Config) {
				cfg.Cache.Backend = CacheBackendMySQL
			},
			wantErrorContains: []string{
				"database.host is a required field",
				"database.username is a required field",
			},
		},
		{
			name: "mysql backend with database settings",
			modify: func(cfg *Config) {
				cfg.Cache.Backend = CacheBackendMySQL
				cfg.Database.Host = "localhost"
				cfg.Database.Username = "word"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.modify(&cfg)

			err := Validate(cfg)
			if len(tt.wantErrorContains) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, wantMsg := range tt.wantErrorContains {
				assert.Contains(t, err.Error(), wantMsg)
			}
		})
	}
}
