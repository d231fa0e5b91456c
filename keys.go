package stowgate

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// MaxUploadBytes is the largest declared body accepted by Put (20 MiB).
const MaxUploadBytes int64 = 20 * 1024 * 1024

var (
	hintDisallowed = regexp.MustCompile(`[^a-zA-Z0-9/_-]`)
	extDisallowed  = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
	slashRuns      = regexp.MustCompile(`/{2,}`)
	dotRuns        = regexp.MustCompile(`\.{2,}`)
)

// SanitizeHint reduces a caller supplied path hint to the key alphabet.
// Characters outside [A-Za-z0-9/_-] are dropped, runs of "/" collapse to one
// and leading and trailing slashes are removed.
func SanitizeHint(hint string) string {
	hint = hintDisallowed.ReplaceAllString(hint, "")
	hint = slashRuns.ReplaceAllString(hint, "/")
	return strings.Trim(hint, "/")
}

// SanitizeExt returns the key suffix for extension, including its leading
// dot, or "" when nothing usable remains.
func SanitizeExt(extension string) string {
	ext := extDisallowed.ReplaceAllString(extension, "")
	ext = dotRuns.ReplaceAllString(ext, ".")
	ext = strings.Trim(ext, ".")
	if ext == "" {
		return ""
	}
	return "." + ext
}

// DeriveKey builds a fresh storage key of the form hint/<uuid>.ext. The hint
// segment is omitted when it sanitizes to nothing.
func DeriveKey(pathHint, extension string) string {
	name := uuid.NewString() + SanitizeExt(extension)

	hint := SanitizeHint(pathHint)
	if hint == "" {
		return name
	}
	return hint + "/" + name
}

// IsSafeKey reports whether key may be used to address an object. Empty keys,
// keys starting with "/" and keys containing ".." or "//" are rejected.
func IsSafeKey(key string) bool {
	if key == "" {
		return false
	}
	if key[0] == '/' {
		return false
	}
	if strings.Contains(key, "..") {
		return false
	}
	if strings.Contains(key, "//") {
		return false
	}
	return true
}
