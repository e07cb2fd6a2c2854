package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, upstream URL, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server     ServerConfig
	BookingAPI BookingAPIConfig
	Redis      RedisConfig
	CORS       CORSConfig
	Log        LogConfig
	JWT        JWTConfig
	RateLimit  RateLimitConfig
	Catalog    CatalogConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type BookingAPIConfig struct {
	BaseURL string        `envconfig:"BOOKING_API_BASE_URL" required:"true"`
	APIKey  string        `envconfig:"BOOKING_API_KEY"`
	Timeout time.Duration `envconfig:"BOOKING_API_TIMEOUT" default:"10s"`
}

type RedisConfig struct {
	Enabled         bool          `envconfig:"REDIS_ENABLED" default:"true"`
	Addr            string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Username        string        `envconfig:"REDIS_USER"`
	Password        string        `envconfig:"REDIS_PASSWORD"`
	DB              int           `envconfig:"REDIS_DB" default:"0"`
	AvailabilityTTL time.Duration `envconfig:"REDIS_AVAILABILITY_TTL" default:"2m"`
	RoomTTL         time.Duration `envconfig:"REDIS_ROOM_TTL" default:"5m"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key,X-Review-Session"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Kolkata"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"19800"` // 5.5*60*60
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

type RateLimitConfig struct {
	PerMinute int           `envconfig:"RATE_LIMIT_PER_MINUTE" default:"120"`
	Burst     int           `envconfig:"RATE_LIMIT_BURST" default:"30"`
	IdleTTL   time.Duration `envconfig:"RATE_LIMIT_IDLE_TTL" default:"10m"`
}

type CatalogConfig struct {
	// optional JSON file of display-only rooms served when the booking API has no record
	StaticRoomsFile string        `envconfig:"STATIC_ROOMS_FILE"`
	SessionTTL      time.Duration `envconfig:"REVIEW_SESSION_TTL" default:"30m"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		BookingAPI: BookingAPIConfig{
			BaseURL: "http://localhost:18080/api",
			Timeout: 2 * time.Second,
		},
		Redis: RedisConfig{
			Enabled:         false,
			Addr:            "localhost:16379",
			AvailabilityTTL: time.Minute,
			RoomTTL:         time.Minute,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Kolkata",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 19800,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		RateLimit: RateLimitConfig{
			PerMinute: 600,
			Burst:     100,
			IdleTTL:   time.Minute,
		},
		Catalog: CatalogConfig{
			SessionTTL: time.Minute,
		},
	}
}
