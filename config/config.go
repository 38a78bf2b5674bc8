package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	MongoDBName       string `mapstructure:"MONGO_DB_NAME"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisHoldDB   int    `mapstructure:"REDIS_HOLD_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Marketplace tunables.
	SlotTemplate       []string `mapstructure:"SLOT_TEMPLATE"`
	QuoteFanoutLimit   int      `mapstructure:"QUOTE_FANOUT_LIMIT"`
	BookingLeadTimeMin int      `mapstructure:"BOOKING_LEAD_TIME_MIN"`
	HoldTTLMin         int      `mapstructure:"HOLD_TTL_MIN"`
	InviteTTLHours     int      `mapstructure:"INVITE_TTL_HOURS"`
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
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_HOLD_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DB_NAME", "barkwise")
	viper.SetDefault("SLOT_TEMPLATE", []string{"09:00", "11:00", "14:00", "16:00", "18:00"})
	viper.SetDefault("QUOTE_FANOUT_LIMIT", 3)
	viper.SetDefault("BOOKING_LEAD_TIME_MIN", 120)
	viper.SetDefault("HOLD_TTL_MIN", 15)
	viper.SetDefault("INVITE_TTL_HOURS", 48)

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
	return AppConfig.Env == "production"
}

// Slots returns the configured daily slot template, falling back to the
// default five-slot day when config has not been loaded (tests).
func Slots() []string {
	if len(AppConfig.SlotTemplate) == 0 {
		return []string{"09:00", "11:00", "14:00", "16:00", "18:00"}
	}
	return AppConfig.SlotTemplate
}

// BookingLeadTime is the minimum gap between booking time and slot start.
func BookingLeadTime() time.Duration {
	if AppConfig.BookingLeadTimeMin <= 0 {
		return 120 * time.Minute
	}
	return time.Duration(AppConfig.BookingLeadTimeMin) * time.Minute
}

// HoldTTL is how long a booking hold stays valid.
func HoldTTL() time.Duration {
	if AppConfig.HoldTTLMin <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(AppConfig.HoldTTLMin) * time.Minute
}

// InviteTTL is how long a group invite link stays redeemable.
func InviteTTL() time.Duration {
	if AppConfig.InviteTTLHours <= 0 {
		return 48 * time.Hour
	}
	return time.Duration(AppConfig.InviteTTLHours) * time.Hour
}

// QuoteFanout caps how many providers a quote request is routed to.
func QuoteFanout() int {
	if AppConfig.QuoteFanoutLimit <= 0 {
		return 3
	}
	return AppConfig.QuoteFanoutLimit
}

// RequestsPerMin is the per-IP request budget enforced by the HTTP layer.
func RequestsPerMin() int {
	if AppConfig.MaxRequestsPerMin <= 0 {
		return 100
	}
	return AppConfig.MaxRequestsPerMin
}
