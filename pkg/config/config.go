package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NLU      NLUConfig
	Ranking  RankingConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

// NLUConfig points at the external natural-language understanding service used
// for context signal extraction and shortlist relevance scoring.
type NLUConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

type RankingConfig struct {
	// CacheBackend selects where the TTL caches live: "memory" or "redis".
	CacheBackend  string
	SignalTTL     time.Duration
	RerankTTL     time.Duration
	ShortlistSize int
	DefaultRadius float64
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB := getEnvInt("REDIS_DB", 0)
	nluTimeoutMs := getEnvInt("NLU_TIMEOUT_MS", 8000)
	signalTTLMin := getEnvInt("RANKING_SIGNAL_TTL_MINUTES", 30)
	rerankTTLMin := getEnvInt("RANKING_RERANK_TTL_MINUTES", 20)
	shortlistSize := getEnvInt("RANKING_TOP_K", 20)

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "TableScout API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "tablescout"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
		NLU: NLUConfig{
			BaseURL: getEnv("NLU_BASE_URL", ""),
			APIKey:  getEnv("NLU_API_KEY", ""),
			Model:   getEnv("NLU_MODEL", "gpt-4o-mini"),
			Timeout: time.Duration(nluTimeoutMs) * time.Millisecond,
		},
		Ranking: RankingConfig{
			CacheBackend:  getEnv("RANKING_CACHE_BACKEND", "memory"),
			SignalTTL:     time.Duration(signalTTLMin) * time.Minute,
			RerankTTL:     time.Duration(rerankTTLMin) * time.Minute,
			ShortlistSize: shortlistSize,
			DefaultRadius: 5000,
		},
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	if cfg.Ranking.CacheBackend != "memory" && cfg.Ranking.CacheBackend != "redis" {
		return nil, errors.New("invalid ranking cache backend: " + cfg.Ranking.CacheBackend)
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return n
}
