package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level server configuration. Values come from an
// optional YAML file and MEALWEEK_* environment variables; env wins.
type Config struct {
	Addr     string `mapstructure:"addr" yaml:"addr"`
	DBPath   string `mapstructure:"db_path" yaml:"db_path"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	BaseURL  string `mapstructure:"base_url" yaml:"base_url"`
}

func defaultConfig() *Config {
	return &Config{
		Addr:     ":8080",
		DBPath:   "mealweek.db",
		LogLevel: "info",
		BaseURL:  "http://localhost:8080",
	}
}

// Load reads configuration from the given YAML file path. A missing file is
// not an error; defaults and environment variables still apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("MEALWEEK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("addr", ":8080")
	v.SetDefault("db_path", "mealweek.db")
	v.SetDefault("log_level", "info")
	v.SetDefault("base_url", "http://localhost:8080")

	if path != "" {
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(*os.PathError); ok {
				// fall through to defaults + env
			} else if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				// fall through to defaults + env
			} else {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	cfg := defaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
