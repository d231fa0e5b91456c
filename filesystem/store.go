// Package filesystem provides a local disk object store for stowgate.
// Objects are written atomically through temp files and their content type,
// size and SHA256 etag are recorded in a JSON sidecar under a separate
// metadata root.
package filesystem

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sagarc03/stowgate"
)

var (
	// ErrNotFound is returned when no object exists for a key.
	ErrNotFound = errors.New("object not found")
	// ErrSizeMismatch is returned when the body length differs from the declared size.
	ErrSizeMismatch = errors.New("size mismatch")
)

// Object describes a stored object.
type Object struct {
	Key         string    `json:"-"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	Etag        string    `json:"etag"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Store provides file system storage operations.
type Store struct {
	data *os.Root
	meta *os.Root
}

var _ stowgate.ObjectStore = (*Store)(nil)

// NewStore creates a Store writing bytes under data and sidecars under meta.
// Both roots sandbox their operations so keys cannot escape them.
func NewStore(data, meta *os.Root) *Store {
	return &Store{data: data, meta: meta}
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *ctxReader) Read(p []byte) (n int, err error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}

// Put atomically writes body to key, creating intermediate directories, and
// then records the object metadata. An existing object is replaced.
func (s *Store) Put(ctx context.Context, key string, body io.Reader, opts stowgate.PutOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	h := sha256.New()
	var size int64
	err := writeAtomic(s.data, key, func(w io.Writer) error {
		n, err := io.Copy(io.MultiWriter(h, w), &ctxReader{ctx: ctx, r: body})
		if err != nil {
			return fmt.Errorf("could not copy object contents: %w", err)
		}
		if opts.Size >= 0 && n != opts.Size {
			return fmt.Errorf("wrote %d of %d bytes: %w", n, opts.Size, ErrSizeMismatch)
		}
		size = n
		return nil
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}

	obj := Object{
		ContentType: opts.ContentType,
		Size:        size,
		Etag:        hex.EncodeToString(h.Sum(nil)),
		UpdatedAt:   time.Now().UTC(),
	}

	err = writeAtomic(s.meta, sidecarName(key), func(w io.Writer) error {
		return json.NewEncoder(w).Encode(obj)
	})
	if err != nil {
		return fmt.Errorf("put %s: metadata: %w", key, err)
	}

	return nil
}

// Stat returns the recorded metadata of key. Returns ErrNotFound if the
// object does not exist.
func (s *Store) Stat(ctx context.Context, key string) (Object, error) {
	if err := ctx.Err(); err != nil {
		return Object{}, err
	}

	f, err := s.meta.Open(sidecarName(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Object{}, ErrNotFound
		}
		return Object{}, fmt.Errorf("stat %s: %w", key, err)
	}
	defer func() { _ = f.Close() }()

	var obj Object
	if err := json.NewDecoder(f).Decode(&obj); err != nil {
		return Object{}, fmt.Errorf("stat %s: decode metadata: %w", key, err)
	}
	obj.Key = key

	return obj, nil
}

// Open opens the bytes of key for reading. Returns ErrNotFound if the object
// does not exist.
func (s *Store) Open(ctx context.Context, key string) (io.ReadSeekCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := s.data.Open(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open %s: %w", key, err)
	}

	return f, nil
}

func writeAtomic(root *os.Root, name string, fill func(io.Writer) error) error {
	tmpFile := tmpFileName()
	t, err := root.Create(tmpFile)
	if err != nil {
		return fmt.Errorf("could not open temp file: %w", err)
	}

	success := false
	defer func() {
		if closeErr := t.Close(); closeErr != nil {
			slog.Warn("failed to close tmp file", "err", closeErr)
		}
		if !success {
			if rmErr := root.Remove(tmpFile); rmErr != nil {
				slog.Warn("failed to remove tmp file", "err", rmErr)
			}
		}
	}()

	if err := fill(t); err != nil {
		return err
	}

	if err := t.Sync(); err != nil {
		return fmt.Errorf("could not sync written file: %w", err)
	}

	if destDir := filepath.Dir(name); destDir != "." {
		if err := root.MkdirAll(destDir, 0o755); err != nil {
			return fmt.Errorf("could not create intermediate directories: %w", err)
		}
	}

	if err := root.Rename(tmpFile, name); err != nil {
		return fmt.Errorf("failed to rename file: %w", err)
	}

	success = true
	return nil
}

func sidecarName(key string) string {
	return key + ".json"
}

func tmpFileName() string {
	return fmt.Sprintf(".t%s", uuid.New().String())
}
