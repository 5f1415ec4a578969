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
	App    AppConfig
	Data   DataConfig
	Engine EngineConfig
	Auth   AuthConfig
	Gemini GeminiConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DataConfig struct {
	CatalogPath      string
	HistoryPath      string
	UsersPath        string
	RoleProfilesPath string
}

type EngineConfig struct {
	MaxFeatures     int
	MinTrainSamples int
	WarmupOnStart   bool
}

type AuthConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

type GeminiConfig struct {
	APIKey string
	Model  string
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
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
		return fallback
	}
	optInt := func(key string, fallback int) int {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return fallback
		}
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fallback
		}
		return n
	}
	optBool := func(key string, fallback bool) bool {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return fallback
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return b
	}
	optDuration := func(key string, fallback time.Duration) time.Duration {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return fallback
		}
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return fallback
		}
		return d
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Data = DataConfig{
		CatalogPath:      opt("CATALOG_PATH", "data/catalog.csv"),
		HistoryPath:      opt("HISTORY_PATH", "data/history.json"),
		UsersPath:        opt("USERS_PATH", "data/users.json"),
		RoleProfilesPath: opt("ROLE_PROFILES_PATH", "data/role_profiles.json"),
	}

	cfg.Engine = EngineConfig{
		MaxFeatures:     optInt("MAX_FEATURES", 5000),
		MinTrainSamples: optInt("MIN_TRAIN_SAMPLES", 10),
		WarmupOnStart:   optBool("WARMUP_ON_START", true),
	}

	cfg.Auth = AuthConfig{
		AccessSecret:  req("JWT_ACCESS_SECRET"),
		RefreshSecret: req("JWT_REFRESH_SECRET"),
		AccessTTL:     optDuration("JWT_ACCESS_TTL", 15*time.Minute),
		RefreshTTL:    optDuration("JWT_REFRESH_TTL", 7*24*time.Hour),
	}

	cfg.Gemini = GeminiConfig{
		APIKey: opt("GEMINI_API_KEY", ""),
		Model:  opt("GEMINI_MODEL", ""),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}
