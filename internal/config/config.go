// Package config loads runtime settings for the tutor from the environment.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/abhisek/lingua/internal/progress"
	"github.com/abhisek/lingua/internal/store"
)

// Progress storage backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config holds all application configuration.
type Config struct {
	// Server
	Port           string
	AllowedOrigins []string
	StaticDir      string

	// Storage
	DBPath          string
	ProgressBackend string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	RedisTTL        time.Duration

	// Tutor
	Language          string
	CapabilityTimeout time.Duration
	Thresholds        progress.Thresholds

	// Text-to-speech
	TTS TTSConfig
}

// TTSConfig configures the pronunciation capability.
type TTSConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Voice   string
}

// Enabled reports whether a speech key is configured.
func (t TTSConfig) Enabled() bool {
	return t.APIKey != ""
}

// LoadDotEnv merges a .env file from the working directory into the
// environment. Variables already set win; a missing file is not an error.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Load reads configuration from an optional .env file and the environment.
func Load() (*Config, error) {
	if err := LoadDotEnv(); err != nil {
		return nil, err
	}

	dbPath := os.Getenv("LINGUA_DB")
	if dbPath == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
		dbPath = p
	}

	defaults := progress.DefaultThresholds()
	var env envParser
	cfg := &Config{
		Port:           getEnv("LINGUA_PORT", "8000"),
		AllowedOrigins: getEnvList("LINGUA_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		StaticDir:      getEnv("LINGUA_STATIC_DIR", "./static"),

		DBPath:          dbPath,
		ProgressBackend: strings.ToLower(getEnv("LINGUA_PROGRESS_BACKEND", BackendSQLite)),
		RedisAddr:       getEnv("LINGUA_REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("LINGUA_REDIS_PASSWORD", ""),
		RedisDB:         env.getInt("LINGUA_REDIS_DB", 0),
		RedisTTL:        env.getDuration("LINGUA_REDIS_TTL", 0),

		Language:          getEnv("LINGUA_LANGUAGE", "German"),
		CapabilityTimeout: env.getDuration("LINGUA_CAPABILITY_TIMEOUT", 30*time.Second),
		Thresholds: progress.Thresholds{
			Advanced:     env.getFloat("LINGUA_ADVANCED_THRESHOLD", defaults.Advanced),
			Intermediate: env.getFloat("LINGUA_INTERMEDIATE_THRESHOLD", defaults.Intermediate),
		},

		TTS: TTSConfig{
			APIKey:  getEnv("LINGUA_TTS_API_KEY", os.Getenv("OPENAI_API_KEY")),
			BaseURL: getEnv("LINGUA_TTS_BASE_URL", ""),
			Model:   getEnv("LINGUA_TTS_MODEL", "tts-1"),
			Voice:   getEnv("LINGUA_TTS_VOICE", "alloy"),
		},
	}

	if err := env.err(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("LINGUA_PORT cannot be empty")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("LINGUA_PORT must be numeric, got %q", c.Port)
	}
	switch c.ProgressBackend {
	case BackendSQLite, BackendMemory:
	case BackendRedis:
		if c.RedisAddr == "" {
			return errors.New("LINGUA_REDIS_ADDR is required for the redis backend")
		}
	default:
		return fmt.Errorf("LINGUA_PROGRESS_BACKEND must be one of sqlite, redis, memory; got %q", c.ProgressBackend)
	}
	if c.ProgressBackend == BackendSQLite && c.DBPath == "" {
		return errors.New("LINGUA_DB cannot be empty")
	}
	if c.Language == "" {
		return errors.New("LINGUA_LANGUAGE cannot be empty")
	}
	if c.CapabilityTimeout <= 0 {
		return errors.New("LINGUA_CAPABILITY_TIMEOUT must be positive")
	}
	if err := c.Thresholds.Validate(); err != nil {
		return fmt.Errorf("thresholds: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

// envParser reads typed variables and collects every malformed value so
// Load can report them together. Unset or empty variables use the default.
type envParser struct {
	errs []error
}

func (p *envParser) lookup(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	value = strings.TrimSpace(value)
	return value, ok && value != ""
}

func (p *envParser) fail(key, value string, err error) {
	p.errs = append(p.errs, fmt.Errorf("%s=%q: %w", key, value, err))
}

func (p *envParser) getInt(key string, defaultValue int) int {
	value, ok := p.lookup(key)
	if !ok {
		return defaultValue
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		p.fail(key, value, err)
		return defaultValue
	}
	return i
}

func (p *envParser) getFloat(key string, defaultValue float64) float64 {
	value, ok := p.lookup(key)
	if !ok {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err == nil && math.IsNaN(f) {
		err = errors.New("not a number")
	}
	if err != nil {
		p.fail(key, value, err)
		return defaultValue
	}
	return f
}

func (p *envParser) getDuration(key string, defaultValue time.Duration) time.Duration {
	value, ok := p.lookup(key)
	if !ok {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		p.fail(key, value, err)
		return defaultValue
	}
	return d
}

func (p *envParser) err() error {
	return errors.Join(p.errs...)
}

func getEnvList(key string, defaultValue []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
