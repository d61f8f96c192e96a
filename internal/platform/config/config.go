package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool
	JWTSecret    string

	// Redis holds the local snapshot cache.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Sync engine tuning.
	RemoteTimeout time.Duration
	RetryInterval time.Duration

	// Rate limiting, e.g. "100-M" for 100 requests per minute.
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REMOTE_TIMEOUT", "30s")
	viper.SetDefault("RETRY_INTERVAL", "15s")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	cfg.RedisDB = viper.GetInt("REDIS_DB")

	remoteTimeoutStr := viper.GetString("REMOTE_TIMEOUT")
	remoteTimeout, err := time.ParseDuration(remoteTimeoutStr)
	if err != nil {
		remoteTimeout = 30 * time.Second
		log.Printf("Warning: Invalid value for REMOTE_TIMEOUT ('%s'). Defaulting to %s.\n", remoteTimeoutStr, remoteTimeout.String())
	}
	cfg.RemoteTimeout = remoteTimeout

	retryIntervalStr := viper.GetString("RETRY_INTERVAL")
	retryInterval, err := time.ParseDuration(retryIntervalStr)
	if err != nil {
		retryInterval = 15 * time.Second
		log.Printf("Warning: Invalid value for RETRY_INTERVAL ('%s'). Defaulting to %s.\n", retryIntervalStr, retryInterval.String())
	}
	cfg.RetryInterval = retryInterval

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
