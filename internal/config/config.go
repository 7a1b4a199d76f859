package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port        int `yaml:"port"`
		MetricsPort int `yaml:"metrics_port"`
	} `yaml:"server"`

	Database struct {
		Driver string `yaml:"driver"`
		DSN    string `yaml:"dsn"`
	} `yaml:"database"`

	OpenAI struct {
		APIKey string `yaml:"api_key"`
		Model  string `yaml:"model"`
	} `yaml:"openai"`

	Auth struct {
		Secret string `yaml:"secret"`
	} `yaml:"auth"`
}

// Load reads the configuration file at path. A missing file yields the
// defaults; the OpenAI key falls back to the OPENAI_API_KEY environment
// variable when the file leaves it empty.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnv(cfg)
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Server.MetricsPort = 9090
	cfg.Database.Driver = "sqlite3"
	cfg.Database.DSN = "tally.db"
	cfg.OpenAI.Model = "gpt-3.5-turbo"
	return cfg
}

func applyEnv(cfg *Config) {
	if cfg.OpenAI.APIKey == "" {
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
}
