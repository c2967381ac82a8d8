package config

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hannesgao/docgate/core"
)

func validEnv(t *testing.T) {
	t.Helper()
	key := base64.StdEncoding.EncodeToString(make([]byte, 32))
	t.Setenv("DOCGATE_ALLOWLIST", "/etc/docgate/allowlist.yaml")
	t.Setenv("DOCGATE_CONTENT_DIR", "/var/lib/docgate/content")
	t.Setenv("DOCGATE_CONTENT_KEY", key)
	t.Setenv("DOCGATE_SESSION_KEY", key)
}

func TestLoadDefaults(t *testing.T) {
	validEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Address)
	assert.Equal(t, 5*time.Minute, cfg.ChallengeTTL)
	assert.Equal(t, 15*time.Minute, cfg.SessionTTL)
	assert.Len(t, cfg.ContentKey, 32)
	assert.Empty(t, cfg.RedisURL)
}

func TestLoadMissingSecretFails(t *testing.T) {
	validEnv(t)
	t.Setenv("DOCGATE_CONTENT_KEY", "")

	_, err := Load()
	assert.ErrorIs(t, err, core.ErrConfiguration)
}

func TestLoadWrongLengthKeyFails(t *testing.T) {
	validEnv(t)
	t.Setenv("DOCGATE_SESSION_KEY", base64.StdEncoding.EncodeToString(make([]byte, 16)))

	_, err := Load()
	assert.ErrorIs(t, err, core.ErrConfiguration)
}

func TestLoadBadBase64Fails(t *testing.T) {
	validEnv(t)
	t.Setenv("DOCGATE_CONTENT_KEY", "!!not-base64!!")

	_, err := Load()
	assert.ErrorIs(t, err, core.ErrConfiguration)
}

func TestLoadTTLOverrides(t *testing.T) {
	validEnv(t)
	t.Setenv("DOCGATE_CHALLENGE_TTL_SECONDS", "60")
	t.Setenv("DOCGATE_SESSION_TTL_SECONDS", "600")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, time.Minute, cfg.ChallengeTTL)
	assert.Equal(t, 10*time.Minute, cfg.SessionTTL)
}

func TestLoadRejectsNonPositiveTTL(t *testing.T) {
	validEnv(t)
	t.Setenv("DOCGATE_SESSION_TTL_SECONDS", "0")

	_, err := Load()
	assert.ErrorIs(t, err, core.ErrConfiguration)
}
