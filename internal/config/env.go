package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Env struct {
	AppAddr    string `env:"APP_ADDR,default=:8080"`
	GinMode    string `env:"GIN_MODE"`
	AppVersion string `env:"APP_VERSION,default=0.1.0"`

	DatabaseDSN   string `env:"DATABASE_DSN,default=root:@tcp(127.0.0.1:3306)/commute_ai?parseTime=true&loc=UTC&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"`
	RunMigrations bool   `env:"RUN_MIGRATIONS,default=true"`

	SecretKey                string `env:"SECRET_KEY,default=change-me-in-production"`
	AccessTokenExpireMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES,default=30"`

	RoutingAPIURL      string        `env:"HSL_ROUTING_API_URL,default=https://api.digitransit.fi/routing/v2/hsl/gtfs/v1"`
	RoutingKey         string        `env:"HSL_SUBSCRIPTION_KEY"`
	RoutingTimeout     time.Duration `env:"ROUTING_TIMEOUT,default=30s"`
	AIAgentsAPIURL     string        `env:"AI_AGENTS_API_URL,default=http://localhost:8001"`
	AIAgentsTimeout    time.Duration `env:"AI_AGENTS_TIMEOUT,default=10s"`
	EnrichConcurrency  int           `env:"ENRICH_CONCURRENCY,default=4"`
	CORSAllowedOrigins string        `env:"CORS_ALLOWED_ORIGINS"`
	RateLimitRPS       float64       `env:"RATE_LIMIT_RPS,default=10"`
	RateLimitBurst     int           `env:"RATE_LIMIT_BURST,default=20"`

	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=json"`
}

// TokenTTL is the lifetime of issued access tokens.
func (e Env) TokenTTL() time.Duration {
	return time.Duration(e.AccessTokenExpireMinutes) * time.Minute
}

// WriteTimeout budgets the slowest request: one routing call followed by
// ceil(maxItineraries/EnrichConcurrency) rounds of AI calls, plus slack.
func (e Env) WriteTimeout(maxItineraries int) time.Duration {
	workers := max(e.EnrichConcurrency, 1)
	rounds := max((maxItineraries+workers-1)/workers, 1)
	return e.RoutingTimeout + time.Duration(rounds)*e.AIAgentsTimeout + 10*time.Second
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS; empty means the local dev origins.
func (e Env) AllowedOrigins() []string {
	raw := strings.TrimSpace(e.CORSAllowedOrigins)
	if raw == "" {
		return []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}
	}
	out := []string{}
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}

// LoadEnv reads an optional .env file and decodes the process environment.
func LoadEnv() (Env, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("could not read .env file")
	}

	var env Env
	if err := envdecode.Decode(&env); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return env, err
	}
	if env.EnrichConcurrency < 1 {
		env.EnrichConcurrency = 1
	}
	return env, nil
}
