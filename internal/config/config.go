package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName        string
	AppEnv         string
	AppPort        string
	DatabaseURL    string
	RedisURL       string
	NATSURL        string
	JWTSecret      string
	CORSOrigins    string
	ChannelBase    string
	TypingIdleTTL  time.Duration
	StatusTTL      time.Duration
	UnreadCacheTTL time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("PRONET")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "pronetwork API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("cors.origins", "*")
	v.SetDefault("events.channel_base", "pronetwork")
	v.SetDefault("typing.idle_ttl", "4s")
	v.SetDefault("status.ttl", "24h")
	v.SetDefault("notifications.unread_cache_ttl", "30s")

	typingTTL, err := parseDuration(v.GetString("typing.idle_ttl"), "typing idle ttl")
	if err != nil {
		return Config{}, err
	}

	statusTTL, err := parseDuration(v.GetString("status.ttl"), "status ttl")
	if err != nil {
		return Config{}, err
	}

	unreadTTL, err := parseDuration(v.GetString("notifications.unread_cache_ttl"), "unread cache ttl")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppName:        v.GetString("app.name"),
		AppEnv:         v.GetString("app.env"),
		AppPort:        v.GetString("app.port"),
		DatabaseURL:    v.GetString("database.url"),
		RedisURL:       v.GetString("redis.url"),
		NATSURL:        v.GetString("nats.url"),
		JWTSecret:      v.GetString("jwt.secret"),
		CORSOrigins:    v.GetString("cors.origins"),
		ChannelBase:    v.GetString("events.channel_base"),
		TypingIdleTTL:  typingTTL,
		StatusTTL:      statusTTL,
		UnreadCacheTTL: unreadTTL,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	return cfg, nil
}

func parseDuration(raw, label string) (time.Duration, error) {
	if raw == "" {
		return 0, fmt.Errorf("%s must be provided", label)
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", label, err)
	}

	return parsed, nil
}
