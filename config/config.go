// Package config loads environment-driven settings for the gate. Secrets
// are validated at startup: a missing or wrong-length key is fatal rather
// than a degraded start.
package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/hannesgao/docgate/core"
	"github.com/hannesgao/docgate/vault"
)

func init() {
	// In dev, overlay .env if present. godotenv never overrides variables
	// already set, preserving OS env > .env precedence.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to load .env file: %v\n", err)
		}
	}
}

// Config captures everything needed to run the gate.
type Config struct {
	Address       string        // HTTP listen address
	AllowListPath string        // path to the allow-list source file
	ContentDir    string        // directory of encrypted document envelopes
	RedisURL      string        // optional; empty means in-memory challenge store, no events
	ContentKey    []byte        // 32-byte document encryption key
	SessionKey    []byte        // 32-byte session signing key
	ChallengeTTL  time.Duration // login challenge validity window
	SessionTTL    time.Duration // session validity window
}

const (
	defaultAddress      = ":8080"
	defaultChallengeTTL = 5 * time.Minute
	defaultSessionTTL   = 15 * time.Minute
)

// Load reads environment variables and produces a Config. All errors wrap
// core.ErrConfiguration and must abort startup.
func Load() (Config, error) {
	cfg := Config{
		Address:      getEnv("DOCGATE_HTTP_ADDR", defaultAddress),
		RedisURL:     os.Getenv("DOCGATE_REDIS_URL"),
		ChallengeTTL: defaultChallengeTTL,
		SessionTTL:   defaultSessionTTL,
	}

	var err error
	if cfg.AllowListPath, err = requireEnv("DOCGATE_ALLOWLIST"); err != nil {
		return Config{}, err
	}
	if cfg.ContentDir, err = requireEnv("DOCGATE_CONTENT_DIR"); err != nil {
		return Config{}, err
	}

	if cfg.ContentKey, err = requireKey("DOCGATE_CONTENT_KEY", vault.KeySize); err != nil {
		return Config{}, err
	}
	if cfg.SessionKey, err = requireKey("DOCGATE_SESSION_KEY", 32); err != nil {
		return Config{}, err
	}

	if raw, exists := os.LookupEnv("DOCGATE_CHALLENGE_TTL_SECONDS"); exists {
		if cfg.ChallengeTTL, err = parseSeconds(raw); err != nil {
			return Config{}, fmt.Errorf("%w: DOCGATE_CHALLENGE_TTL_SECONDS: %v", core.ErrConfiguration, err)
		}
	}
	if raw, exists := os.LookupEnv("DOCGATE_SESSION_TTL_SECONDS"); exists {
		if cfg.SessionTTL, err = parseSeconds(raw); err != nil {
			return Config{}, fmt.Errorf("%w: DOCGATE_SESSION_TTL_SECONDS: %v", core.ErrConfiguration, err)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, exists := os.LookupEnv(key); exists && v != "" {
		return v
	}
	return fallback
}

func requireEnv(key string) (string, error) {
	v, exists := os.LookupEnv(key)
	if !exists || v == "" {
		return "", fmt.Errorf("%w: %s is required", core.ErrConfiguration, key)
	}
	return v, nil
}

// requireKey reads a base64-encoded secret and enforces its exact length.
func requireKey(key string, size int) ([]byte, error) {
	raw, err := requireEnv(key)
	if err != nil {
		return nil, err
	}
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not valid base64", core.ErrConfiguration, key)
	}
	if len(decoded) != size {
		return nil, fmt.Errorf("%w: %s must decode to %d bytes, got %d", core.ErrConfiguration, key, size, len(decoded))
	}
	return decoded, nil
}

func parseSeconds(raw string) (time.Duration, error) {
	seconds, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if seconds <= 0 {
		return 0, fmt.Errorf("value must be > 0")
	}
	return time.Duration(seconds) * time.Second, nil
}
