package keybackend

import "errors"

// ErrEmptyToken is returned when a token file holds nothing but whitespace.
var ErrEmptyToken = errors.New("admin token file is empty")
