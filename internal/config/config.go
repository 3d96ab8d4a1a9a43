package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SearchMongo         = "mongo"
	SearchElasticsearch = "elasticsearch"
)

type Config struct {
	Env      string
	Port     string
	MongoURI string
	MongoDB  string

	LogLevel  string
	LogFormat string

	RequestTimeout time.Duration

	SearchBackend      string
	ElasticsearchURL   string
	ElasticsearchIndex string
	// cada cuánto se reindexan los productos; 0 desactiva la resincronización
	ElasticsearchSyncInterval time.Duration
}

func LoadConfig() (*Config, error) {
	// Solo cargar .env en desarrollo local
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			slog.Warn("error loading .env file", "err", err)
		} else {
			slog.Info(".env file loaded")
		}
	}

	return fromEnv()
}

func fromEnv() (*Config, error) {
	cfg := &Config{
		Env:                strings.ToLower(getEnv("APP_ENV", "local")),
		Port:               getEnv("PORT", "8000"),
		MongoURI:           getEnv("MONGO_URI", ""),
		MongoDB:            getEnv("MONGO_DB", "powersite"),
		LogLevel:           getEnv("LOG_LEVEL", ""),
		LogFormat:          getEnv("LOG_FORMAT", ""),
		SearchBackend:      strings.ToLower(getEnv("SEARCH_BACKEND", SearchMongo)),
		ElasticsearchURL:   getEnv("ELASTICSEARCH_URL", "http://localhost:9200"),
		ElasticsearchIndex: getEnv("ELASTICSEARCH_INDEX", "products"),
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("invalid PORT %q", cfg.Port)
	}

	timeout, err := strconv.Atoi(getEnv("REQUEST_TIMEOUT_SECONDS", "10"))
	if err != nil || timeout <= 0 {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT_SECONDS")
	}
	cfg.RequestTimeout = time.Duration(timeout) * time.Second

	syncSeconds, err := strconv.Atoi(getEnv("ELASTICSEARCH_SYNC_SECONDS", "60"))
	if err != nil || syncSeconds < 0 {
		return nil, fmt.Errorf("invalid ELASTICSEARCH_SYNC_SECONDS")
	}
	cfg.ElasticsearchSyncInterval = time.Duration(syncSeconds) * time.Second

	switch cfg.SearchBackend {
	case SearchMongo, SearchElasticsearch:
	default:
		return nil, fmt.Errorf("unknown SEARCH_BACKEND %q (expected mongo|elasticsearch)", cfg.SearchBackend)
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		if cfg.Env == "prod" {
			cfg.LogLevel = "info"
		} else {
			cfg.LogLevel = "debug"
		}
	}
	if cfg.LogFormat == "" {
		if cfg.Env == "prod" {
			cfg.LogFormat = "json"
		} else {
			cfg.LogFormat = "text"
		}
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
