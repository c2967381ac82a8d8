// Package allowlist holds the set of addresses permitted to access
// protected content. The set is an immutable snapshot behind an atomic
// pointer: readers never block and never observe a partially-reloaded list.
package allowlist

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"gopkg.in/yaml.v3"

	"github.com/hannesgao/docgate/core"
	"github.com/hannesgao/docgate/internal/eth"
)

// source is the on-disk schema: { addresses: [string, ...] }.
// YAML is a superset of JSON, so both serializations parse.
type source struct {
	Addresses []string `yaml:"addresses"`
}

type snapshot struct {
	members map[core.Address]struct{}
}

// AllowList answers membership queries against the current snapshot.
type AllowList struct {
	current atomic.Pointer[snapshot]
}

// Load parses an allow-list source and returns a ready AllowList.
// An empty address list is valid; it denies everyone.
func Load(r io.Reader) (*AllowList, error) {
	snap, err := parse(r)
	if err != nil {
		return nil, err
	}
	l := &AllowList{}
	l.current.Store(snap)
	return l, nil
}

// LoadFile is Load over a file path.
func LoadFile(path string) (*AllowList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open allow-list: %v", core.ErrMalformedAllowList, err)
	}
	defer f.Close()
	return Load(f)
}

// IsMember reports whether addr is allow-listed. addr must already be
// canonical. Never errors.
func (l *AllowList) IsMember(addr core.Address) bool {
	snap := l.current.Load()
	_, ok := snap.members[addr]
	return ok
}

// Len returns the number of allow-listed addresses.
func (l *AllowList) Len() int {
	return len(l.current.Load().members)
}

// Reload parses a new source and atomically swaps it in. On parse failure
// the previous snapshot stays in effect.
func (l *AllowList) Reload(r io.Reader) error {
	snap, err := parse(r)
	if err != nil {
		return err
	}
	l.current.Store(snap)
	return nil
}

// ReloadFile is Reload over a file path.
func (l *AllowList) ReloadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: open allow-list: %v", core.ErrMalformedAllowList, err)
	}
	defer f.Close()
	return l.Reload(f)
}

func parse(r io.Reader) (*snapshot, error) {
	var src source
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&src); err != nil {
		if err == io.EOF {
			// Empty document: valid, denies everyone.
			return &snapshot{members: map[core.Address]struct{}{}}, nil
		}
		return nil, fmt.Errorf("%w: %v", core.ErrMalformedAllowList, err)
	}

	members := make(map[core.Address]struct{}, len(src.Addresses))
	for _, raw := range src.Addresses {
		addr, err := eth.ParseAddress(raw)
		if err != nil {
			return nil, fmt.Errorf("allow-list entry %q: %w", raw, err)
		}
		// Duplicates after canonicalization collapse silently.
		members[addr] = struct{}{}
	}
	return &snapshot{members: members}, nil
}
