// Package config reads runtime configuration from the environment with an
// optional config file, under the LC_ prefix (LC_LISTEN_ADDR and so on).
package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	ListenAddr     string `mapstructure:"listen_addr"`
	DBPath         string `mapstructure:"db_path"`
	StorageBackend string `mapstructure:"storage_backend"` // "sqlite" or "memory"
	LogLevel       string `mapstructure:"log_level"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("db_path", "lingocoach.db")
	v.SetDefault("storage_backend", "sqlite")
	v.SetDefault("log_level", "info")

	v.SetConfigName("lingocoach")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
