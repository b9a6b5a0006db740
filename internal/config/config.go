package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	APIBaseURL string
	LogLevel   string
	LogFile    string

	TokenPath   string
	HistoryFile string

	MaxUploadBytes int64
	RequestTimeout time.Duration

	RateLimitPerSec float64
	RateLimitBurst  int

	RetryMaxAttempts    int
	RetryInitialBackoff time.Duration
	RetryMaxBackoff     time.Duration
	BreakerEnabled      bool

	MetricsPort string
}

// fileConfig is the optional ~/.notelm/config.yaml overlay. Environment
// variables always win over file values.
type fileConfig struct {
	APIBaseURL      string  `yaml:"api_base_url"`
	LogLevel        string  `yaml:"log_level"`
	LogFile         string  `yaml:"log_file"`
	TokenPath       string  `yaml:"token_path"`
	MaxUploadMB     int64   `yaml:"max_upload_mb"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	MetricsPort     string  `yaml:"metrics_port"`
}

func Load() Config {
	_ = godotenv.Load()

	base := defaultConfig()
	applyFile(&base, configFilePath())
	applyEnv(&base)
	return base
}

func defaultConfig() Config {
	return Config{
		APIBaseURL: "http://localhost:8000",
		LogLevel:   "info",
		LogFile:    filepath.Join(stateDir(), "notelm.log"),

		TokenPath:   filepath.Join(stateDir(), "token"),
		HistoryFile: filepath.Join(stateDir(), "history"),

		MaxUploadBytes: 10 << 20,
		RequestTimeout: 120 * time.Second,

		RateLimitPerSec: 5,
		RateLimitBurst:  5,

		RetryMaxAttempts:    3,
		RetryInitialBackoff: 100 * time.Millisecond,
		RetryMaxBackoff:     400 * time.Millisecond,
		BreakerEnabled:      true,

		MetricsPort: "",
	}
}

func applyFile(cfg *Config, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return
	}
	if fc.APIBaseURL != "" {
		cfg.APIBaseURL = fc.APIBaseURL
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.LogFile != "" {
		cfg.LogFile = fc.LogFile
	}
	if fc.TokenPath != "" {
		cfg.TokenPath = fc.TokenPath
	}
	if fc.MaxUploadMB > 0 {
		cfg.MaxUploadBytes = fc.MaxUploadMB << 20
	}
	if fc.RateLimitPerSec > 0 {
		cfg.RateLimitPerSec = fc.RateLimitPerSec
	}
	if fc.MetricsPort != "" {
		cfg.MetricsPort = fc.MetricsPort
	}
}

func applyEnv(cfg *Config) {
	cfg.APIBaseURL = mustEnv("NOTELM_API_URL", cfg.APIBaseURL)
	cfg.LogLevel = mustEnv("NOTELM_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = mustEnv("NOTELM_LOG_FILE", cfg.LogFile)
	cfg.TokenPath = mustEnv("NOTELM_TOKEN_PATH", cfg.TokenPath)
	cfg.MaxUploadBytes = mustEnvInt64("NOTELM_MAX_UPLOAD_BYTES", cfg.MaxUploadBytes)
	cfg.RetryMaxAttempts = mustEnvInt("NOTELM_RETRY_MAX_ATTEMPTS", cfg.RetryMaxAttempts)
	cfg.BreakerEnabled = mustEnvBool("NOTELM_BREAKER_ENABLED", cfg.BreakerEnabled)
	cfg.MetricsPort = mustEnv("NOTELM_METRICS_PORT", cfg.MetricsPort)
}

func configFilePath() string {
	if p := os.Getenv("NOTELM_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(stateDir(), "config.yaml")
}

func stateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".notelm"
	}
	return filepath.Join(home, ".notelm")
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
