package stowgate

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
)

// DefaultContentType is recorded when a Put carries no Content-Type.
const DefaultContentType = "application/octet-stream"

// UploadPath is the same-origin path that receives the bytes of a ticket.
const UploadPath = "/api/uploads/put"

// ObjectStore defines the byte storage behind the upload workflow.
// Implementations must be safe for concurrent use.
type ObjectStore interface {
	// Put streams body into the object addressed by key, replacing any
	// existing object. opts.Size is -1 when the length is unknown.
	//
	// Returns:
	//   - error: Any backend error; the object must not be left half written
	Put(ctx context.Context, key string, body io.Reader, opts PutOptions) error
}

type UploadConfig struct {
	// PublicBaseURL prefixes the escaped key to form PutResult.PublicURL.
	PublicBaseURL string
}

// UploadService implements the two phases of an upload. It holds no per
// request state.
type UploadService struct {
	store ObjectStore
	cfg   UploadConfig
}

// NewUploadService creates an UploadService. store may be nil, in which case
// every call fails with ErrNotConfigured.
func NewUploadService(store ObjectStore, cfg UploadConfig) *UploadService {
	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")
	return &UploadService{store: store, cfg: cfg}
}

// Prepare issues an upload ticket for a freshly derived key. Nothing is
// written to the store.
func (s *UploadService) Prepare(_ context.Context, req PrepareRequest) (UploadTicket, error) {
	if s.store == nil {
		return UploadTicket{}, fmt.Errorf("prepare: object store: %w", ErrNotConfigured)
	}

	if req.ContentType == "" {
		return UploadTicket{}, ErrContentTypeRequired
	}

	key := DeriveKey(req.PathHint, req.Ext)

	return UploadTicket{
		Key:       key,
		UploadURL: UploadPath + "?key=" + url.QueryEscape(key),
		Method:    "PUT",
		Headers:   map[string]string{"Content-Type": req.ContentType},
	}, nil
}

// Put stores body under req.Key. Keys are checked for safety whatever their
// origin and the declared size must not exceed MaxUploadBytes.
func (s *UploadService) Put(ctx context.Context, req PutRequest, body io.Reader) (PutResult, error) {
	if s.store == nil {
		return PutResult{}, fmt.Errorf("put: object store: %w", ErrNotConfigured)
	}

	if !IsSafeKey(req.Key) {
		return PutResult{}, ErrBadKey
	}

	if req.Size > MaxUploadBytes {
		return PutResult{}, fmt.Errorf("put %s: %d bytes: %w", req.Key, req.Size, ErrPayloadTooLarge)
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = DefaultContentType
	}

	err := s.store.Put(ctx, req.Key, body, PutOptions{ContentType: contentType, Size: req.Size})
	if err != nil {
		return PutResult{}, fmt.Errorf("put %s: %w", req.Key, err)
	}

	return PutResult{Key: req.Key, PublicURL: s.PublicURL(req.Key)}, nil
}

// PublicURL returns the externally visible address of key.
func (s *UploadService) PublicURL(key string) string {
	return s.cfg.PublicBaseURL + "/" + url.PathEscape(key)
}
