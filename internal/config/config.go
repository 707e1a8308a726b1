package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment variable read by Load, e.g. WORD_TOKEN.
	EnvPrefix = "WORD"

	CacheBackendFile  = "file"
	CacheBackendMySQL = "mysql"
)

type Config struct {
	Token          string         `mapstructure:"token"`
	Host           string         `mapstructure:"host" validate:"required,hostname"`
	CacheDirectory string         `mapstructure:"cache_directory" validate:"omitempty,notfile"`
	RetryAttempts  uint           `mapstructure:"retry_attempts" validate:"lte=10"`
	Cache          CacheConfig    `mapstructure:"cache"`
	Database       DatabaseConfig `mapstructure:"database" validate:"-"`
}

type CacheConfig struct {
	Backend string `mapstructure:"backend" validate:"oneof=file mysql"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host" validate:"required"`
	Port            int               `mapstructure:"port" validate:"min=1,max=65535"`
	Database        string            `mapstructure:"database" validate:"required"`
	Username        string            `mapstructure:"username" validate:"required"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns" validate:"min=0"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds" validate:"min=0"`
}

// WithToken returns a copy of the config whose token is replaced when token is not empty.
func (c Config) WithToken(token string) Config {
	if token != "" {
		c.Token = token
	}
	return c
}

// SettingsDirectories are searched in order for a Settings file.
func SettingsDirectories() []string {
	return []string{".", filepath.Join(xdg.ConfigHome, "word")}
}

// Load reads the Settings file and WORD_* environment variables.
// Environment variables take priority over the file.
func Load(configFile string) (Config, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("Settings")
		for _, dir := range SettingsDirectories() {
			v.AddConfigPath(dir)
		}
	}

	v.SetDefault("token", "")
	v.SetDefault("host", "wordsapiv1.p.rapidapi.com")
	v.SetDefault("cache_directory", "")
	v.SetDefault("retry_attempts", 2)
	v.SetDefault("cache.backend", CacheBackendFile)
	v.SetDefault("database.host", "")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "word")
	v.SetDefault("database.username", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.tls", false)
	v.SetDefault("database.max_open_conns", 0)
	v.SetDefault("database.max_idle_conns", 0)
	v.SetDefault("database.conn_max_lifetime_seconds", 0)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration format: %w", err)
	}

	return cfg, nil
}
