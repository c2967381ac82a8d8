package tokenizer

import (
	"crypto/rand"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hannesgao/docgate/core"
)

const testAddr = core.Address("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")

func newTestJWT(t *testing.T, opts ...Option) *JWT {
	t.Helper()
	key := make([]byte, SigningKeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	j, err := NewJWT(key, opts...)
	require.NoError(t, err)
	return j
}

func testSession(now time.Time, ttl time.Duration) *core.Session {
	return &core.Session{
		ID:        uuid.New().String(),
		Address:   testAddr,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
}

func TestNewJWTRejectsWrongKeyLength(t *testing.T) {
	_, err := NewJWT(make([]byte, 16))
	assert.ErrorIs(t, err, core.ErrConfiguration)
}

func TestSessionRoundTrip(t *testing.T) {
	j := newTestJWT(t)
	now := time.Now()
	sess := testSession(now, 15*time.Minute)

	token, err := j.SessionToToken(sess)
	require.NoError(t, err)

	got, err := j.TokenToSession(token)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, sess.Address, got.Address)
	assert.WithinDuration(t, sess.ExpiresAt, got.ExpiresAt, time.Second)
}

func TestExpiredSession(t *testing.T) {
	now := time.Now()
	ttl := 15 * time.Minute
	j := newTestJWT(t, WithClock(func() time.Time { return now.Add(ttl + time.Second) }))

	token, err := j.SessionToToken(testSession(now, ttl))
	require.NoError(t, err)

	_, err = j.TokenToSession(token)
	assert.ErrorIs(t, err, core.ErrSessionExpired)
}

func TestTamperedTokenFails(t *testing.T) {
	j := newTestJWT(t)
	token, err := j.SessionToToken(testSession(time.Now(), 15*time.Minute))
	require.NoError(t, err)

	// Flip one character of the signature segment.
	i := strings.LastIndex(token, ".") + 1
	tampered := []byte(token)
	if tampered[i] == 'A' {
		tampered[i] = 'B'
	} else {
		tampered[i] = 'A'
	}

	_, err = j.TokenToSession(string(tampered))
	assert.ErrorIs(t, err, core.ErrSessionTampered)
}

func TestTamperedClaimsFail(t *testing.T) {
	j := newTestJWT(t)
	token, err := j.SessionToToken(testSession(time.Now(), 15*time.Minute))
	require.NoError(t, err)

	// Alter a payload character without breaking the base64url alphabet.
	parts := strings.SplitN(token, ".", 3)
	require.Len(t, parts, 3)
	payload := []byte(parts[1])
	mid := len(payload) / 2
	if payload[mid] == 'a' {
		payload[mid] = 'b'
	} else {
		payload[mid] = 'a'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = j.TokenToSession(tampered)
	require.Error(t, err)
	failed := errors.Is(err, core.ErrSessionTampered) || errors.Is(err, core.ErrSessionMalformed)
	assert.True(t, failed, "got %v", err)
}

func TestWrongKeyFails(t *testing.T) {
	j1 := newTestJWT(t)
	j2 := newTestJWT(t)

	token, err := j1.SessionToToken(testSession(time.Now(), 15*time.Minute))
	require.NoError(t, err)

	_, err = j2.TokenToSession(token)
	assert.ErrorIs(t, err, core.ErrSessionTampered)
}

func TestMalformedTokenFails(t *testing.T) {
	j := newTestJWT(t)
	for _, token := range []string{"", "garbage", "a.b", "a.b.c"} {
		_, err := j.TokenToSession(token)
		assert.ErrorIs(t, err, core.ErrSessionMalformed, "token %q", token)
	}
}

func TestRejectsWrongAudience(t *testing.T) {
	key := make([]byte, SigningKeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	j, err := NewJWT(key)
	require.NoError(t, err)

	// Signed with the right key but for a different purpose.
	claims := jwt.RegisteredClaims{
		Subject:   string(testAddr),
		Audience:  jwt.ClaimStrings{"docgate:other"},
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	require.NoError(t, err)

	_, err = j.TokenToSession(token)
	assert.ErrorIs(t, err, core.ErrSessionTampered)
}
