// Package docstore implements keyed storage of encrypted documents.
package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hannesgao/docgate/core"
	"github.com/hannesgao/docgate/ports"
)

const envelopeSuffix = ".enc.json"

// FSStore keeps encrypted documents as JSON envelopes under a directory,
// one file per document ID. This matches how a static docs build ships
// its sealed pages alongside the binary.
type FSStore struct {
	dir string
}

// NewFSStore creates a store rooted at dir.
func NewFSStore(dir string) (*FSStore, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: content directory: %v", core.ErrConfiguration, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: content path %s is not a directory", core.ErrConfiguration, dir)
	}
	return &FSStore{dir: dir}, nil
}

var _ ports.DocumentStore = (*FSStore)(nil)

// Get loads the encrypted document for id.
func (s *FSStore) Get(ctx context.Context, id string) (*core.EncryptedDocument, error) {
	path, err := s.path(id)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, core.ErrContentNotFound
		}
		return nil, fmt.Errorf("%w: read %s: %v", core.ErrStoreOperationFailed, id, err)
	}
	var doc core.EncryptedDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: envelope %s: %v", core.ErrStoreOperationFailed, id, err)
	}
	return &doc, nil
}

// Put writes the encrypted document for id, replacing any previous version.
func (s *FSStore) Put(ctx context.Context, id string, doc *core.EncryptedDocument) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: %v", core.ErrStoreOperationFailed, err)
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrStoreOperationFailed, err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", core.ErrStoreOperationFailed, id, err)
	}
	return nil
}

// path maps a document ID to an envelope path, refusing IDs that would
// escape the content directory.
func (s *FSStore) path(id string) (string, error) {
	if id == "" || strings.HasPrefix(id, "/") || strings.Contains(id, "..") || strings.Contains(id, "\\") {
		return "", core.ErrContentNotFound
	}
	return filepath.Join(s.dir, filepath.FromSlash(id)+envelopeSuffix), nil
}
