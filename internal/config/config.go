// Package config loads astra configuration from defaults, an optional
// astra.yaml, and ASTRA_* environment overrides.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Classifier struct {
		Backend  string `mapstructure:"backend"` // rule|ollama
		Endpoint string `mapstructure:"endpoint"`
		Model    string `mapstructure:"model"`
	} `mapstructure:"classifier"`

	Memory struct {
		MaxTurns int `mapstructure:"max_turns"`
	} `mapstructure:"memory"`

	Store struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"store"`

	Server struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"server"`

	Log struct {
		Debug bool `mapstructure:"debug"`
	} `mapstructure:"log"`
}

// Load reads configuration. path may name a config file explicitly; when
// empty, astra.yaml is searched in the working directory and ~/.astra.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("classifier.backend", "rule")
	v.SetDefault("classifier.endpoint", "http://localhost:11434")
	v.SetDefault("classifier.model", "llama3.1:8b")
	v.SetDefault("memory.max_turns", 20)
	v.SetDefault("store.path", "data/astra.sqlite")
	v.SetDefault("server.addr", "127.0.0.1:8483")
	v.SetDefault("log.debug", false)

	v.SetEnvPrefix("ASTRA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("astra")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.astra")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Classifier.Backend != "rule" && cfg.Classifier.Backend != "ollama" {
		return nil, fmt.Errorf("unknown classifier backend %q (want rule or ollama)", cfg.Classifier.Backend)
	}
	return &cfg, nil
}
