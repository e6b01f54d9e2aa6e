// Package cas is a content-addressable store for rendered item
// documentation. Blobs are zstd compressed and sharded by hash so repeated
// indexing runs only pay for changed items.
package cas

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/rhaitools/rhaidocs/internal/config"
)

// One coder pair for the whole process; EncodeAll/DecodeAll are safe for
// concurrent use on a shared instance.
var (
	encoder, _ = zstd.NewWriter(nil)
	decoder, _ = zstd.NewReader(nil)
)

// Dir returns the store's root directory.
func Dir() string {
	return config.CASDir()
}

// blobPath shards a hash into <dir>/<first two hex chars>/<rest>.md.zst so
// no single directory collects every blob.
func blobPath(hash string) string {
	return filepath.Join(Dir(), hash[:2], hash[2:]+".md.zst")
}

// Write stores one document and returns its SHA-256 hash. Writing content
// that is already stored is a no-op. The blob lands under its final name
// atomically, so a concurrent reader never sees a partial document.
func Write(content string) (string, error) {
	sum := sha256.Sum256([]byte(content))
	hash := hex.EncodeToString(sum[:])

	p := blobPath(hash)
	if _, err := os.Stat(p); err == nil {
		return hash, nil
	}

	shard := filepath.Dir(p)
	if err := os.MkdirAll(shard, 0755); err != nil {
		return "", fmt.Errorf("creating store directory: %w", err)
	}

	tmp, err := os.CreateTemp(shard, ".blob-*")
	if err != nil {
		return "", fmt.Errorf("creating blob file: %w", err)
	}
	_, err = tmp.Write(encoder.EncodeAll([]byte(content), nil))
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("writing blob: %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("storing blob: %w", err)
	}

	return hash, nil
}

// Read returns the document stored under hash.
func Read(hash string) (string, error) {
	compressed, err := os.ReadFile(blobPath(hash))
	if err != nil {
		return "", fmt.Errorf("reading blob %s: %w", hash, err)
	}
	data, err := decoder.DecodeAll(compressed, nil)
	if err != nil {
		return "", fmt.Errorf("decompressing blob %s: %w", hash, err)
	}
	return string(data), nil
}

// Stats reports how many blobs the store holds and their compressed size
// in bytes. A store that was never written counts as empty.
func Stats() (int, int64, error) {
	var files int
	var size int64
	err := filepath.WalkDir(Dir(), func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".zst") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		files++
		size += info.Size()
		return nil
	})
	if errors.Is(err, os.ErrNotExist) {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, fmt.Errorf("scanning store directory: %w", err)
	}
	return files, size, nil
}

// Clear removes every stored blob.
func Clear() error {
	if err := os.RemoveAll(Dir()); err != nil {
		return fmt.Errorf("clearing store directory: %w", err)
	}
	return nil
}
