package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Demo      DemoConfig
	CORS      CORSConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	OpenAI    OpenAIConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

// DemoConfig names the account unauthenticated storefront requests run as.
type DemoConfig struct {
	UserID int64
}

type CORSConfig struct {
	AllowedOrigins []string
}

// RedisConfig is optional; rate limiting is disabled when Host is empty.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	RequestsPerMinute int
}

// OpenAIConfig is optional; the chat assistant falls back to canned catalog
// suggestions when APIKey is empty.
type OpenAIConfig struct {
	APIKey string
	Model  string
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("DEMO_USER_ID", 2)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", []string{"https://web.telegram.org"})
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 120)
	viper.SetDefault("OPENAI_MODEL", "gpt-4o")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		Demo: DemoConfig{
			UserID: viper.GetInt64("DEMO_USER_ID"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: viper.GetInt("RATE_LIMIT_PER_MINUTE"),
		},
		OpenAI: OpenAIConfig{
			APIKey: viper.GetString("OPENAI_API_KEY"),
			Model:  viper.GetString("OPENAI_MODEL"),
		},
	}
}
