package storage

// staging module manages scoped temporary artifacts: uploaded bytes
// persisted on disk for the lifetime of one request

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Staging is the on-disk area holding per-request temporary artifacts
type Staging struct {
	dir string
}

// New creates the staging area, making the directory if absent
func New(dir string) (*Staging, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Staging{dir: dir}, nil
}

// Dir returns the staging directory
func (s *Staging) Dir() string {
	return s.dir
}

// Stage persists the given bytes under a per-request unique name
// derived from the claimed file name. The returned path is valid until
// Release is called; callers must Release on every exit path.
func (s *Staging) Stage(name string, data []byte) (string, error) {
	fname := uuid.New().String() + "_" + Sanitize(name)
	path := filepath.Join(s.dir, fname)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", err
	}
	return path, nil
}

// Release removes a staged artifact. A missing file is not an error,
// any other removal failure is logged since a leaked artifact is a
// defect.
func (s *Staging) Release(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("unable to remove staged file %s, error %v", path, err)
	}
}

// Sanitize reduces a client-supplied file name to a safe base name:
// path separators are stripped and anything outside a conservative
// character set is replaced with an underscore.
func Sanitize(name string) string {
	// treat both separator conventions as path separators
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" {
		return "unnamed"
	}
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := b.String()
	if out == "" || strings.Trim(out, ".") == "" {
		return "unnamed"
	}
	return out
}
