package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPort       = "8080"
	DefaultDataPath   = "data/finpilot_db.json"
	DefaultUsersPath  = "data/users.json"
	DefaultTopK       = 5
	DefaultLLMTimeout = 30 * time.Second
	DefaultRateLimit  = "20-M"
)

// returns a config populated with defaults
func Defaults() *Config {
	return &Config{
		Environment:    "development",
		LogLevel:       "",
		Port:           DefaultPort,
		DataPath:       DefaultDataPath,
		UsersPath:      DefaultUsersPath,
		TopK:           DefaultTopK,
		LLMTimeout:     DefaultLLMTimeout,
		RateLimit:      DefaultRateLimit,
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:8501"},
	}
}

// overlays non-secret settings from a YAML file; zero values keep what is already set
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if fileCfg.Environment != "" {
		c.Environment = fileCfg.Environment
	}
	if fileCfg.LogLevel != "" {
		c.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.Port != "" {
		c.Port = fileCfg.Port
	}
	if fileCfg.DataPath != "" {
		c.DataPath = fileCfg.DataPath
	}
	if fileCfg.UsersPath != "" {
		c.UsersPath = fileCfg.UsersPath
	}
	if fileCfg.TopK > 0 {
		c.TopK = fileCfg.TopK
	}
	if fileCfg.LLMTimeout > 0 {
		c.LLMTimeout = fileCfg.LLMTimeout
	}
	if fileCfg.RateLimit != "" {
		c.RateLimit = fileCfg.RateLimit
	}
	if len(fileCfg.AllowedOrigins) > 0 {
		c.AllowedOrigins = fileCfg.AllowedOrigins
	}

	return nil
}

// checks required settings after all sources are merged
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required")
	}

	if c.TopK <= 0 {
		return fmt.Errorf("top_k must be positive, got %d", c.TopK)
	}

	if c.LLMTimeout <= 0 {
		return fmt.Errorf("llm_timeout must be positive, got %s", c.LLMTimeout)
	}

	if strings.TrimSpace(c.DataPath) == "" {
		return fmt.Errorf("data_path is required")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
