// file: internal/aladin/errors.go
// version: 1.0.0
// guid: 9e2f4a6b-8c0d-4e1f-a2b3-c4d5e6f7a8b9

package aladin

import "errors"

// ErrNoMatch means the lookup completed but the site has no such book.
// It is a normal outcome, not an operational failure.
var ErrNoMatch = errors.New("no matching book found")
