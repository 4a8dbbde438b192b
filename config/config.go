package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Storage. DatabaseDriver is "mongo" or "memory".
	DatabaseDriver string `mapstructure:"DATABASE_DRIVER"`
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	DatabaseName   string `mapstructure:"DATABASE_NAME"`

	// Redis configuration. An empty address disables the dashboard cache.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`

	// Business rules.
	Timezone          string        `mapstructure:"TIMEZONE"`
	DashboardCacheTTL time.Duration `mapstructure:"DASHBOARD_CACHE_TTL"`
	OptimisticRetries int           `mapstructure:"OPTIMISTIC_RETRIES"`
	ReconcileCron     string        `mapstructure:"RECONCILE_CRON"`

	// Legacy Firestore project used by cmd/firestore-import.
	FirebaseCredentials string `mapstructure:"FIREBASE_CREDENTIALS"`
	FirebaseProjectID   string `mapstructure:"FIREBASE_PROJECT_ID"`
}

var AppConfig Config

func LoadConfig() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

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
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("DATABASE_DRIVER", "mongo")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "innkeep")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("DASHBOARD_CACHE_TTL", "5m")
	viper.SetDefault("OPTIMISTIC_RETRIES", 3)
	viper.SetDefault("RECONCILE_CRON", "15 0 * * *")
	viper.SetDefault("FIREBASE_CREDENTIALS", "serviceAccountKey.json")
	viper.SetDefault("FIREBASE_PROJECT_ID", "")

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

// Location returns the business time zone used for day buckets.
// It falls back to UTC when the configured zone cannot be loaded.
func Location() *time.Location {
	loc, err := time.LoadLocation(AppConfig.Timezone)
	if err != nil {
		log.Printf("unknown TIMEZONE %q, falling back to UTC", AppConfig.Timezone)
		return time.UTC
	}
	return loc
}
