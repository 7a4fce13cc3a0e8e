package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBPath      string
	DatabaseURL string
	RedisAddr   string
	NATSURL     string
	MetricsAddr string

	OSRMBaseURL         string
	NominatimBaseURL    string
	NominatimUserAgent  string
	CollaboratorTimeout time.Duration

	PairConcurrency int
	SolverWorkers   int
	HistoryLimit    int
}

// Load reads configuration from .env and the environment.
func Load() (*Config, error) {
	// Load .env into environment (ignore if missing)
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getenvDefault("PORT", "8080"),
		DBPath:             getenvDefault("DB_PATH", "data/app.db"),
		DatabaseURL:        firstNonEmpty(os.Getenv("DATABASE_URL"), os.Getenv("PG_DSN")),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		NATSURL:            os.Getenv("NATS_URL"),
		MetricsAddr:        os.Getenv("METRICS_ADDR"),
		OSRMBaseURL:        getenvDefault("OSRM_BASE_URL", "http://router.project-osrm.org"),
		NominatimBaseURL:   getenvDefault("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		NominatimUserAgent: getenvDefault("NOMINATIM_USER_AGENT", "route-optimizer-service"),
	}

	timeoutSec, err := intEnv("COLLABORATOR_TIMEOUT_SEC", 10)
	if err != nil {
		return nil, err
	}
	cfg.CollaboratorTimeout = time.Duration(timeoutSec) * time.Second

	if cfg.PairConcurrency, err = intEnv("PAIR_CONCURRENCY", 4); err != nil {
		return nil, err
	}
	if cfg.SolverWorkers, err = intEnv("SOLVER_WORKERS", 4); err != nil {
		return nil, err
	}
	if cfg.HistoryLimit, err = intEnv("HISTORY_LIMIT", 50); err != nil {
		return nil, err
	}

	return cfg, nil
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return n, nil
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
