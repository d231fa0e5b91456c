package stowgate

import (
	"errors"
	"fmt"
	"regexp"
)

// UploadTicket is returned by Prepare and tells the caller where and how to
// send the bytes.
type UploadTicket struct {
	Key       string            `json:"key"`
	UploadURL string            `json:"uploadUrl"`
	Method    string            `json:"method"`
	Headers   map[string]string `json:"headers"`
}

type PrepareRequest struct {
	PathHint    string `json:"pathHint"`
	ContentType string `json:"contentType"`
	Ext         string `json:"ext"`
}

// PutRequest describes a raw upload. Size is the declared body length, -1
// when the caller did not declare one.
type PutRequest struct {
	Key         string
	ContentType string
	Size        int64
}

type PutResult struct {
	Key       string `json:"key"`
	PublicURL string `json:"publicUrl"`
}

// PutOptions carries the object metadata handed to an ObjectStore.
type PutOptions struct {
	ContentType string
	Size        int64
}

// Dialect identifies the SQL flavour spoken by a RowStore.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Row is a single result row keyed by column name.
type Row map[string]any

type QueryResult struct {
	Results []Row `json:"results"`
}

// Tables holds configurable table names used by the diagnostics queries.
type Tables struct {
	Users string `mapstructure:"users"`
}

const maxTableNameLength = 63

var validTableNameRegex = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// IsValidTableName reports whether name is a safe SQL identifier.
func IsValidTableName(name string) bool {
	if name == "" || len(name) > maxTableNameLength {
		return false
	}
	return validTableNameRegex.MatchString(name)
}

func (t Tables) Validate() error {
	if t.Users == "" {
		return errors.New("users table name cannot be empty")
	}
	if !IsValidTableName(t.Users) {
		return fmt.Errorf("invalid users table name: %q (must match ^[a-z_][a-z0-9_]*$ and be at most 63 characters)", t.Users)
	}
	return nil
}

func DefaultTables() Tables {
	return Tables{Users: "users"}
}
