package clientcli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/sagarc03/stowgate"
)

const (
	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second

	adminTokenHeader = "x-admin-token"
	maxErrorBody     = 64 * 1024
)

// Client talks to a stowgate server.
type Client struct {
	config     *Config
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// New creates a new Client with the given config and options.
func New(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}

	cfg = cfg.WithDefaults()

	c := &Client{
		config: &Config{
			Endpoint:   strings.TrimSuffix(cfg.Endpoint, "/"),
			AdminToken: cfg.AdminToken,
		},
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Prepare asks the server for an upload ticket.
func (c *Client) Prepare(ctx context.Context, in stowgate.PrepareRequest) (*stowgate.UploadTicket, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("prepare: encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint+"/api/uploads/prepare", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("prepare: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(adminTokenHeader, c.config.AdminToken)

	var ticket stowgate.UploadTicket
	if err := c.do(req, &ticket); err != nil {
		return nil, fmt.Errorf("prepare: %w", err)
	}
	return &ticket, nil
}

// Put sends body to the location named by ticket. size is the exact body
// length, or -1 when unknown.
func (c *Client) Put(ctx context.Context, ticket *stowgate.UploadTicket, body io.Reader, size int64) (*stowgate.PutResult, error) {
	if ticket == nil || ticket.UploadURL == "" {
		return nil, fmt.Errorf("put: %w", ErrEmptyPath)
	}

	method := ticket.Method
	if method == "" {
		method = http.MethodPut
	}

	if size == 0 {
		body = http.NoBody
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.Endpoint+ticket.UploadURL, body)
	if err != nil {
		return nil, fmt.Errorf("put: create request: %w", err)
	}
	req.ContentLength = size
	for name, value := range ticket.Headers {
		req.Header.Set(name, value)
	}
	req.Header.Set(adminTokenHeader, c.config.AdminToken)

	var result stowgate.PutResult
	if err := c.do(req, &result); err != nil {
		return nil, fmt.Errorf("put %s: %w", ticket.Key, err)
	}
	return &result, nil
}

// Upload runs prepare then put for one file, or for every file under a
// directory when Recursive is set. Relative directories are appended to the
// path hint.
func (c *Client) Upload(ctx context.Context, opts UploadOptions) ([]UploadResult, error) {
	if opts.LocalPath == "" {
		return nil, fmt.Errorf("upload: %w", ErrEmptyPath)
	}
	if opts.Recursive {
		return c.uploadRecursive(ctx, opts)
	}
	result, err := c.uploadSingle(ctx, opts.LocalPath, opts.PathHint, opts.ContentType)
	if err != nil {
		return nil, err
	}
	return []UploadResult{result}, nil
}

func (c *Client) uploadRecursive(ctx context.Context, opts UploadOptions) ([]UploadResult, error) {
	info, err := os.Stat(opts.LocalPath)
	if err != nil {
		return nil, fmt.Errorf("stat local path: %w", err)
	}

	if !info.IsDir() {
		result, uploadErr := c.uploadSingle(ctx, opts.LocalPath, opts.PathHint, opts.ContentType)
		if uploadErr != nil {
			return nil, uploadErr
		}
		return []UploadResult{result}, nil
	}

	var results []UploadResult
	baseDir := opts.LocalPath

	walkErr := filepath.WalkDir(baseDir, func(p string, d fs.DirEntry, fileErr error) error {
		if fileErr != nil {
			return fileErr
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			return nil
		}

		relPath, relErr := filepath.Rel(baseDir, p)
		if relErr != nil {
			results = append(results, UploadResult{
				LocalPath: p,
				Err:       fmt.Errorf("calculate relative path: %w", relErr),
			})
			return nil
		}

		hint := opts.PathHint
		if dir := path.Dir(filepath.ToSlash(relPath)); dir != "." {
			hint = path.Join(hint, dir)
		}

		result, uploadErr := c.uploadSingle(ctx, p, hint, "")
		if uploadErr != nil {
			result = UploadResult{LocalPath: p, Err: uploadErr}
		}
		results = append(results, result)
		return nil
	})

	if walkErr != nil {
		return results, fmt.Errorf("walk directory: %w", walkErr)
	}

	return results, nil
}

func (c *Client) uploadSingle(ctx context.Context, localPath, hint, contentType string) (UploadResult, error) {
	file, err := os.Open(localPath) //#nosec G304 -- localPath is user-provided input
	if err != nil {
		return UploadResult{}, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return UploadResult{}, fmt.Errorf("stat file: %w", err)
	}

	if contentType == "" {
		contentType = detectContentType(localPath)
	}

	ticket, err := c.Prepare(ctx, stowgate.PrepareRequest{
		PathHint:    hint,
		ContentType: contentType,
		Ext:         strings.TrimPrefix(filepath.Ext(localPath), "."),
	})
	if err != nil {
		return UploadResult{}, err
	}

	put, err := c.Put(ctx, ticket, file, info.Size())
	if err != nil {
		return UploadResult{}, err
	}

	return UploadResult{
		LocalPath:   localPath,
		Key:         put.Key,
		PublicURL:   put.PublicURL,
		ContentType: contentType,
		Size:        info.Size(),
	}, nil
}

// Health queries /api/health.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.Endpoint+"/api/health", nil)
	if err != nil {
		return nil, fmt.Errorf("health: create request: %w", err)
	}

	var status HealthStatus
	if err := c.do(req, &status); err != nil {
		return nil, fmt.Errorf("health: %w", err)
	}
	return &status, nil
}

// Tables queries /api/db-tables.
func (c *Client) Tables(ctx context.Context) (*TablesResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.Endpoint+"/api/db-tables", nil)
	if err != nil {
		return nil, fmt.Errorf("tables: create request: %w", err)
	}

	var result TablesResult
	if err := c.do(req, &result); err != nil {
		return nil, fmt.Errorf("tables: %w", err)
	}
	return &result, nil
}

// do sends req and decodes a 2xx JSON body into out.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return parseServerError(resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// detectContentType returns MIME type based on file extension.
func detectContentType(p string) string {
	ext := filepath.Ext(p)
	if ext == "" {
		return stowgate.DefaultContentType
	}

	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		return stowgate.DefaultContentType
	}

	return mimeType
}

// parseServerError reads the {ok:false,error} envelope, falling back to the
// raw body.
func parseServerError(statusCode int, body []byte) error {
	var envelope struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != "" {
		msg = envelope.Error
	}
	if msg == "" {
		msg = http.StatusText(statusCode)
	}
	return &APIError{StatusCode: statusCode, Message: msg}
}
