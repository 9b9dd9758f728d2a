package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the resolved application configuration, merged from
// defaults, an optional flowforge.yaml and FLOWFORGE_* environment
// variables.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Log     LogConfig     `mapstructure:"log"`
	HTTP    HTTPConfig    `mapstructure:"http"`
}

// StorageConfig selects where custom templates live.
type StorageConfig struct {
	// Backend is one of "memory", "file" or "redis".
	Backend string `mapstructure:"backend"`
	// Path is the data directory for the file backend.
	Path string `mapstructure:"path"`
	// EncryptionKey, when set, encrypts templates at rest. It is the
	// base64 encoding of a 32-byte AES-256 key.
	EncryptionKey string `mapstructure:"encryption_key"`
	// EncryptionFallbackKeys are previous keys (base64) tried during
	// decryption, enabling zero-downtime key rotation.
	EncryptionFallbackKeys []string `mapstructure:"encryption_fallback_keys"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LogConfig configures the application logger.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// HTTPConfig configures the API server.
type HTTPConfig struct {
	Address string `mapstructure:"address"`
}

// LoadConfig reads configuration with standard precedence: explicit
// file (if given), then flowforge.yaml in the working directory, then
// FLOWFORGE_* environment variables over built-in defaults. A missing
// config file is not an error.
func LoadConfig(cfgFile string) (Config, error) {
	v := viper.New()

	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.path", ".flowforge")
	v.SetDefault("storage.encryption_key", "")
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("http.address", ":8080")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("flowforge")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("FLOWFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error parsing config: %w", err)
	}
	return cfg, nil
}
