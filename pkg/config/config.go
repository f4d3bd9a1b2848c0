package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const defaultTokenTTL = 7 * 24 * time.Hour

type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"storefront"`

	ServerPort int `env:"PORT" envDefault:"6005"`

	DatabaseURL   string `env:"DATABASE_URL" envDefault:"file:storefront.db?_pragma=foreign_keys(1)"`
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"storefront"`

	JWTSecret    string `env:"JWT_SECRET" envDefault:"your-secret-key"`
	JWTExpire    string `env:"JWT_EXPIRE" envDefault:"7d"`
	CookieSecure bool   `env:"COOKIE_SECURE" envDefault:"false"`

	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`

	ElasticURL      string `env:"ELASTICSEARCH_URL"`
	ElasticUser     string `env:"ELASTICSEARCH_USER"`
	ElasticPassword string `env:"ELASTICSEARCH_PASSWORD"`
	ElasticIndex    string `env:"ELASTICSEARCH_INDEX" envDefault:"products"`

	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`
}

// Load reads an optional .env file and then the process environment.
func Load(dotenv string) (Config, error) {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil {
			log.Printf("warning: could not load %s: %v", dotenv, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.KafkaBrokers = CSV(strings.Join(cfg.KafkaBrokers, ","))
	return cfg, nil
}

func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.ServerPort)
}

func (c Config) TokenTTL() time.Duration {
	ttl, err := ParseTTL(c.JWTExpire)
	if err != nil || ttl <= 0 {
		return defaultTokenTTL
	}
	return ttl
}

// ParseTTL accepts Go durations plus a whole-day suffix ("7d").
func ParseTTL(v string) (time.Duration, error) {
	v = strings.TrimSpace(v)
	if days, ok := strings.CutSuffix(v, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid day count %q: %w", v, err)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	return time.ParseDuration(v)
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
