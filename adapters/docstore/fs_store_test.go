package docstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hannesgao/docgate/core"
)

func testDoc() *core.EncryptedDocument {
	return &core.EncryptedDocument{
		Nonce:      []byte("nonce-nonce-nonce-nonce!"),
		AuthTag:    []byte("0123456789abcdef"),
		Ciphertext: []byte("sealed bytes"),
	}
}

func TestFSStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	doc := testDoc()
	require.NoError(t, s.Put(ctx, "guides/getting-started", doc))

	got, err := s.Get(ctx, "guides/getting-started")
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestFSStoreMissingDocument(t *testing.T) {
	s, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, core.ErrContentNotFound)
}

func TestFSStoreRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFSStore(dir)
	require.NoError(t, err)

	outside := filepath.Join(filepath.Dir(dir), "secret.enc.json")
	require.NoError(t, os.WriteFile(outside, []byte(`{}`), 0o644))

	for _, id := range []string{"", "../secret", "/etc/passwd", `..\secret`} {
		_, err := s.Get(context.Background(), id)
		assert.ErrorIs(t, err, core.ErrContentNotFound, "id %q", id)
	}
}

func TestFSStoreMissingDirIsConfigurationError(t *testing.T) {
	_, err := NewFSStore(filepath.Join(t.TempDir(), "absent"))
	assert.ErrorIs(t, err, core.ErrConfiguration)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Get(ctx, "intro")
	assert.ErrorIs(t, err, core.ErrContentNotFound)

	doc := testDoc()
	require.NoError(t, s.Put(ctx, "intro", doc))

	got, err := s.Get(ctx, "intro")
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}
