package config

import (
	"os"
	"strconv"
	"time"

	"convsig/domain/outcome"
	"convsig/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Engine outcome.Options
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "release"),
		},
		Engine: loadEngineOptions(),
	}

	if _, err := strconv.Atoi(cfg.Server.Port); err != nil {
		return nil, errors.ConfigInvalid("PORT must be numeric: " + cfg.Server.Port)
	}
	return cfg, nil
}

// loadEngineOptions reads the engine options from the environment, falling
// back to the documented defaults for anything unset or unparsable.
func loadEngineOptions() outcome.Options {
	opts := outcome.DefaultOptions()
	opts.AlphaLevel = getEnvFloat("ALPHA_LEVEL", opts.AlphaLevel)
	opts.CorrelationThreshold = getEnvFloat("CORRELATION_THRESHOLD", opts.CorrelationThreshold)
	opts.CausalityThreshold = getEnvFloat("CAUSALITY_THRESHOLD", opts.CausalityThreshold)
	opts.BootstrapSamples = getEnvInt("BOOTSTRAP_SAMPLES", opts.BootstrapSamples)
	opts.PermutationSamples = getEnvInt("PERMUTATION_SAMPLES", opts.PermutationSamples)
	opts.MaxConcurrentAnalyses = getEnvInt("MAX_CONCURRENT_ANALYSES", opts.MaxConcurrentAnalyses)
	opts.BatchChunkSize = getEnvInt("BATCH_CHUNK_SIZE", opts.BatchChunkSize)
	if ms := getEnvInt("CACHE_TTL_MS", 0); ms > 0 {
		opts.CacheTTL = time.Duration(ms) * time.Millisecond
	}
	return opts.Normalized()
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
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

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
