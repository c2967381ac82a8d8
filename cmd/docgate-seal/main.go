// docgate-seal encrypts a directory of plaintext documentation files into
// the envelope format served by docgate. It runs at content build time;
// the server never sees plaintext on disk.
package main

import (
	"context"
	"encoding/base64"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hannesgao/docgate/adapters/docstore"
	"github.com/hannesgao/docgate/vault"
)

func main() {
	var (
		in     = flag.String("in", "", "directory of plaintext documents")
		out    = flag.String("out", "", "output directory for encrypted envelopes")
		keyB64 = flag.String("key", os.Getenv("DOCGATE_CONTENT_KEY"), "base64 content key (defaults to DOCGATE_CONTENT_KEY)")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *in == "" || *out == "" || *keyB64 == "" {
		fmt.Fprintln(os.Stderr, "usage: docgate-seal -in <dir> -out <dir> [-key <base64>]")
		os.Exit(2)
	}

	key, err := base64.StdEncoding.DecodeString(*keyB64)
	if err != nil {
		logger.Error("content key is not valid base64")
		os.Exit(1)
	}
	cipher, err := vault.New(key)
	if err != nil {
		logger.Error("bad content key", "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(*out, 0o755); err != nil {
		logger.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	store, err := docstore.NewFSStore(*out)
	if err != nil {
		logger.Error("failed to open output store", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	sealed := 0
	err = filepath.WalkDir(*in, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(*in, path)
		if err != nil {
			return err
		}
		id := strings.TrimSuffix(filepath.ToSlash(rel), filepath.Ext(rel))

		plaintext, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		doc, err := cipher.Encrypt(plaintext)
		if err != nil {
			return fmt.Errorf("encrypt %s: %w", path, err)
		}
		if err := store.Put(ctx, id, doc); err != nil {
			return fmt.Errorf("store %s: %w", id, err)
		}

		logger.Info("sealed", "document", id, "bytes", len(plaintext))
		sealed++
		return nil
	})
	if err != nil {
		logger.Error("sealing failed", "error", err)
		os.Exit(1)
	}

	logger.Info("done", "documents", sealed)
}
