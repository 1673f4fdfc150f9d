package config

import "time"

type Config struct {
	Environment    string        `yaml:"environment"`
	LogLevel       string        `yaml:"log_level"`
	Port           string        `yaml:"port"`
	DataPath       string        `yaml:"data_path"`
	UsersPath      string        `yaml:"users_path"`
	TopK           int           `yaml:"top_k"`
	LLMTimeout     time.Duration `yaml:"llm_timeout"`
	RateLimit      string        `yaml:"rate_limit"`
	AllowedOrigins []string      `yaml:"allowed_origins"`

	// secrets only come from the environment
	DatabaseURL string `yaml:"-"`
	RedisURL    string `yaml:"-"`
	JWTSecret   string `yaml:"-"`
}

// flags for the seed command
type SeedFlags struct {
	DataPath            string
	UsersPath           string
	Users               int
	TransactionsPerUser int
	AssetsPerUser       int
	Strategies          int
	Seed                int64
	DefaultPassword     string
}
