package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env"
)

type Config struct {
	AppPort     string        `env:"APP_PORT" envDefault:"8000"`
	APIBase     string        `env:"API_BASE" envDefault:"http://localhost:8080"`
	APITimeout  time.Duration `env:"API_TIMEOUT" envDefault:"0s"`
	PublicURL   string        `env:"PUBLIC_URL"`
	DatabaseURL string        `env:"DATABASE_URL"`
	RedisAddr   string        `env:"REDIS_ADDR"`
	RedisDB     int           `env:"REDIS_DB" envDefault:"0"`
	NatsURL     string        `env:"NATS_URL"`

	CookieSecure    bool          `env:"COOKIE_SECURE" envDefault:"false"`
	RememberTTL     time.Duration `env:"SESSION_REMEMBER_TTL" envDefault:"720h"`
	TabSessionTTL   time.Duration `env:"SESSION_TAB_TTL" envDefault:"12h"`
	RateLimitMax    int           `env:"RATE_LIMIT_MAX" envDefault:"100"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_EXPIRATION" envDefault:"60s"`

	CommunityInterval time.Duration `env:"COMMUNITY_CAROUSEL_INTERVAL" envDefault:"3800ms"`

	S3               S3Config
	IdentityProvider IdentityProvider
}

type S3Config struct {
	Endpoint     string `env:"S3_ENDPOINT"`
	Region       string `env:"AWS_REGION" envDefault:"us-east-1"`
	Bucket       string `env:"S3_BUCKET_NAME"`
	AccessKey    string `env:"AWS_ACCESS_KEY_ID"`
	SecretKey    string `env:"AWS_SECRET_ACCESS_KEY"`
	UsePathStyle bool   `env:"S3_USE_PATH_STYLE" envDefault:"false"`
}

func (c S3Config) Enabled() bool {
	return c.Endpoint != "" && c.Bucket != ""
}

// IdentityProvider holds the optional third-party sign-in configuration. The
// service never talks to the provider itself; the values are handed to the
// browser when present.
type IdentityProvider struct {
	APIKey            string `env:"FIREBASE_API_KEY" json:"apiKey"`
	AuthDomain        string `env:"FIREBASE_AUTH_DOMAIN" json:"authDomain"`
	ProjectID         string `env:"FIREBASE_PROJECT_ID" json:"projectId"`
	StorageBucket     string `env:"FIREBASE_STORAGE_BUCKET" json:"storageBucket"`
	MessagingSenderID string `env:"FIREBASE_MESSAGING_SENDER_ID" json:"messagingSenderId"`
	AppID             string `env:"FIREBASE_APP_ID" json:"appId"`
}

func (p IdentityProvider) Enabled() bool {
	return p.APIKey != "" && p.APIKey != "undefined"
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := env.Parse(&cfg.S3); err != nil {
		return nil, err
	}
	if err := env.Parse(&cfg.IdentityProvider); err != nil {
		return nil, err
	}

	cfg.APIBase = strings.TrimRight(cfg.APIBase, "/")

	if !cfg.IdentityProvider.Enabled() {
		slog.Warn("FIREBASE_API_KEY missing or invalid, identity provider sign-in disabled")
	}

	return cfg, nil
}
