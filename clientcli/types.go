package clientcli

import "time"

// UploadOptions configures an upload operation.
type UploadOptions struct {
	LocalPath   string
	PathHint    string // prefix for derived keys, sanitized by the server
	ContentType string // optional, auto-detect if empty
	Recursive   bool
}

// UploadResult represents the result of uploading a single file.
type UploadResult struct {
	LocalPath   string `json:"local_path"`
	Key         string `json:"key"`
	PublicURL   string `json:"public_url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size_bytes"`
	Err         error  `json:"-"` // nil on success
}

// HasUploadErrors returns true if any result has an error.
func HasUploadErrors(results []UploadResult) bool {
	for i := range results {
		if results[i].Err != nil {
			return true
		}
	}
	return false
}

// HealthStatus is the gateway's answer to a health probe.
type HealthStatus struct {
	OK  bool      `json:"ok"`
	Env string    `json:"env"`
	Now time.Time `json:"now"`
}

// TablesResult lists the tables of the gateway's row store.
type TablesResult struct {
	OK     bool     `json:"ok"`
	Tables []string `json:"tables"`
}
