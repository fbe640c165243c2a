package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

const (
	LoginModeBackend = "backend"
	LoginModeBypass  = "bypass"

	SessionStoreRedis    = "redis"
	SessionStorePostgres = "postgres"
	SessionStoreMemory   = "memory"
)

type Config struct {
	Port            string
	BackendURL      string
	LoginMode       string
	RouteGuard      bool
	SessionStore    string
	SessionTTL      time.Duration
	CookieSecure    bool
	CSRFKey         []byte
	InitialPassword string
	Timezone        *time.Location

	LoginRatePerMinute float64
	LoginBurst         int

	RedisHost     string
	RedisPassword string

	DatabaseDSN string

	KafkaBroker   string
	EventsTopic   string
	ConsumerGroup string

	ElasticsearchURL string
	ActivityIndex    string

	SentryDSN  string
	AppEnv     string
	AppVersion string
}

func Load() (*Config, error) {
	loginMode := env("LOGIN_MODE", LoginModeBackend)
	if loginMode != LoginModeBackend && loginMode != LoginModeBypass {
		return nil, fmt.Errorf("invalid LOGIN_MODE %q (expected %s or %s)", loginMode, LoginModeBackend, LoginModeBypass)
	}

	store := env("SESSION_STORE", SessionStoreRedis)
	switch store {
	case SessionStoreRedis, SessionStorePostgres, SessionStoreMemory:
	default:
		return nil, fmt.Errorf("invalid SESSION_STORE %q", store)
	}

	ttl, err := time.ParseDuration(env("SESSION_TTL", "12h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	tz, err := time.LoadLocation(env("TIMEZONE", "Europe/Istanbul"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	secure, err := boolEnv("COOKIE_SECURE", false)
	if err != nil {
		return nil, err
	}

	loginRate, err := strconv.ParseFloat(env("LOGIN_RATE_PER_MINUTE", "10"), 64)
	if err != nil || loginRate <= 0 {
		return nil, fmt.Errorf("invalid LOGIN_RATE_PER_MINUTE %q", os.Getenv("LOGIN_RATE_PER_MINUTE"))
	}
	loginBurst, err := strconv.Atoi(env("LOGIN_BURST", "5"))
	if err != nil || loginBurst <= 0 {
		return nil, fmt.Errorf("invalid LOGIN_BURST %q", os.Getenv("LOGIN_BURST"))
	}

	csrfKey := []byte(os.Getenv("CSRF_KEY"))
	if len(csrfKey) != 0 && len(csrfKey) != 32 {
		return nil, fmt.Errorf("invalid CSRF_KEY: want 32 bytes, got %d", len(csrfKey))
	}

	guard := true
	if v := strings.ToLower(os.Getenv("ROUTE_GUARD")); v == "off" || v == "false" || v == "0" {
		guard = false
	}

	cfg := &Config{
		Port:            env("PORT", "8080"),
		BackendURL:      strings.TrimRight(env("BACKEND_URL", "http://localhost:8000/api"), "/"),
		LoginMode:       loginMode,
		RouteGuard:      guard,
		SessionStore:    store,
		SessionTTL:      ttl,
		CookieSecure:    secure,
		CSRFKey:         csrfKey,
		InitialPassword: env("CLIENT_INITIAL_PASSWORD", "Danisan123!"),
		Timezone:        tz,

		LoginRatePerMinute: loginRate,
		LoginBurst:         loginBurst,

		RedisHost:     env("REDIS_HOST", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		KafkaBroker:   os.Getenv("KAFKA_BROKER"),
		EventsTopic:   env("ADMIN_EVENTS_TOPIC", "admin_events"),
		ConsumerGroup: env("KAFKA_GROUP_ID", "wellness-admin"),

		ElasticsearchURL: os.Getenv("ELASTICSEARCH_URL"),
		ActivityIndex:    env("ACTIVITY_INDEX", "admin_activity"),

		SentryDSN:  os.Getenv("SENTRY_DSN"),
		AppEnv:     env("APP_ENV", "development"),
		AppVersion: env("APP_VERSION", "dev"),
	}

	if store == SessionStorePostgres {
		cfg.DatabaseDSN = databaseDSN()
	}

	return cfg, nil
}

// databaseDSN builds the postgres DSN from the DB_* variables unless DATABASE_URL is set.
func databaseDSN() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		env("DB_HOST", "localhost"),
		env("DB_USER", "postgres"),
		os.Getenv("DB_PASSWORD"),
		env("DB_NAME", "wellness_admin"),
		env("DB_PORT", "5432"),
	)
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func boolEnv(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
