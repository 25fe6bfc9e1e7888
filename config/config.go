package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Backing store configuration. StoreMode selects the row-store
	// implementation: "memory", "mongo" or "rest".
	StoreMode    string `mapstructure:"STORE_MODE"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	StoreBaseURL string `mapstructure:"STORE_BASE_URL"`
	StoreAPIKey  string `mapstructure:"STORE_API_KEY"`

	// Snapshot cache TTL for full-table reads, in seconds.
	CacheTTLSeconds int `mapstructure:"CACHE_TTL_SECONDS"`

	// Calendar display: atomic unit size in minutes.
	DisplayStepMinutes int `mapstructure:"DISPLAY_STEP_MINUTES"`

	// Cron spec for the periodic board refresh.
	RefreshCronSpec string `mapstructure:"REFRESH_CRON_SPEC"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisAIDB     int    `mapstructure:"REDIS_AI_DB"`

	// Gemini API key for the free-text slot parser.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("STORE_MODE", "memory")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("STORE_BASE_URL", "")
	viper.SetDefault("STORE_API_KEY", "")
	viper.SetDefault("CACHE_TTL_SECONDS", 30)
	viper.SetDefault("DISPLAY_STEP_MINUTES", 30)
	viper.SetDefault("REFRESH_CRON_SPEC", "@every 5m")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_AI_DB", 1)
	viper.SetDefault("GEMINI_API_KEY", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
