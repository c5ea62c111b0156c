package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Embedding EmbeddingConfig
	Ranking   RankingConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string

	PoolMaxConns   int32
	ConnectTimeout time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type JWTConfig struct {
	AccessSecret string
}

type EmbeddingConfig struct {
	BaseURL   string
	APIKey    string
	Model     string
	CacheSize int
}

// RankingConfig carries the engine's policy constants. The defaults are
// product policy (8 working hours per day, the 30/50 status bands, the
// 90-day fairness lookback), kept overridable rather than hard-coded.
type RankingConfig struct {
	HoursPerDay       float64
	BusyMaxPercent    float64
	PartialMaxPercent float64
	MatchThreshold    float64
	LookbackDays      int
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, fallback string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return fallback
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:     opt("APP_NAME", "staff-match"),
		Environment: opt("APP_ENV", "development"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		Host:           opt("DB_HOST", "localhost"),
		Port:           opt("DB_PORT", "5432"),
		Name:           req("DB_NAME"),
		User:           req("DB_USER"),
		Password:       os.Getenv("DB_PASSWORD"),
		SSLMode:        opt("DB_SSL_MODE", "disable"),
		PoolMaxConns:   int32(optInt("DB_POOL_MAX_CONNS", 0)),
		ConnectTimeout: optDuration("DB_CONNECT_TIMEOUT_SECONDS", 0),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST", "localhost"),
		Port:     opt("REDIS_PORT", "6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		TTL:      optDuration("REDIS_TTL_SECONDS", 300),
	}

	cfg.JWT = JWTConfig{
		AccessSecret: req("JWT_ACCESS_SECRET"),
	}

	cfg.Embedding = EmbeddingConfig{
		BaseURL:   req("EMBEDDING_BASE_URL"),
		APIKey:    os.Getenv("EMBEDDING_API_KEY"),
		Model:     opt("EMBEDDING_MODEL", "all-MiniLM-L6-v2"),
		CacheSize: optInt("EMBEDDING_CACHE_SIZE", 0),
	}

	cfg.Ranking = RankingConfig{
		HoursPerDay:       optFloat("RANKING_HOURS_PER_DAY", 8),
		BusyMaxPercent:    optFloat("RANKING_BUSY_MAX_PERCENT", 30),
		PartialMaxPercent: optFloat("RANKING_PARTIAL_MAX_PERCENT", 50),
		MatchThreshold:    optFloat("RANKING_MATCH_THRESHOLD", 0.45),
		LookbackDays:      optInt("RANKING_LOOKBACK_DAYS", 90),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func optInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func optFloat(key string, fallback float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}

func optDuration(key string, fallbackSeconds int) time.Duration {
	return time.Duration(optInt(key, fallbackSeconds)) * time.Second
}
