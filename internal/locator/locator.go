// Package locator resolves requested sitemap names against the generator
// output directory. Lookups are read-only and case-insensitive.
package locator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var (
	// ErrDirectoryMissing means the configured sitemap directory does not
	// exist or is not a directory (generator never ran, or misconfigured).
	ErrDirectoryMissing = errors.New("sitemap directory missing")

	// ErrNotFound means no entry in the directory matches the requested name.
	ErrNotFound = errors.New("sitemap file not found")

	// ErrConflict means the requested name matches a subdirectory
	// instead of a regular file.
	ErrConflict = errors.New("sitemap name matches a directory")
)

// FileHandle describes a resolved sitemap file.
type FileHandle struct {
	Name    string // on-disk name (case may differ from the request)
	Path    string // absolute path
	Size    int64
	ModTime time.Time
}

// Lister lists the direct children of a directory. Injectable so tests can
// control listing order; directory scan order is otherwise OS-dependent.
type Lister interface {
	List(dir string) ([]os.DirEntry, error)
}

type osLister struct{}

func (osLister) List(dir string) ([]os.DirEntry, error) {
	return os.ReadDir(dir)
}

// Locator finds sitemap files in a single configured directory.
type Locator struct {
	dir    string
	lister Lister
}

// New creates a Locator over dir using the real filesystem.
func New(dir string) *Locator {
	return &Locator{dir: dir, lister: osLister{}}
}

// NewWithLister creates a Locator with an injected directory lister.
func NewWithLister(dir string, lister Lister) *Locator {
	return &Locator{dir: dir, lister: lister}
}

// Dir returns the configured sitemap directory.
func (l *Locator) Dir() string {
	return l.dir
}

// Locate scans the directory (non-recursive) for the first entry whose name
// matches the requested name case-insensitively. First match wins when the
// listing contains multiple case variants.
func (l *Locator) Locate(name string) (*FileHandle, error) {
	// The missing-directory state is decided before any name comparison
	entries, err := l.lister.List(l.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDirectoryMissing, l.dir, err)
	}

	clean, err := sanitizeName(name)
	if err != nil {
		// Names that fail sanitization cannot exist on disk
		return nil, fmt.Errorf("%w: %q rejected: %v", ErrNotFound, name, err)
	}

	for _, entry := range entries {
		if !strings.EqualFold(clean, entry.Name()) {
			continue
		}
		if entry.IsDir() {
			return nil, fmt.Errorf("%w: %q in %s", ErrConflict, entry.Name(), l.dir)
		}
		info, err := entry.Info()
		if err != nil {
			// Entry vanished between listing and stat
			return nil, fmt.Errorf("%w: %q: %v", ErrNotFound, clean, err)
		}
		abs, err := filepath.Abs(filepath.Join(l.dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrNotFound, clean, err)
		}
		return &FileHandle{
			Name:    entry.Name(),
			Path:    abs,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		}, nil
	}

	return nil, fmt.Errorf("%w: %q in %s", ErrNotFound, clean, l.dir)
}

// sanitizeName validates a requested name for secure filesystem lookup
func sanitizeName(name string) (string, error) {
	if name == "" {
		return "", errors.New("empty name")
	}

	// Reject path separators immediately (directory traversal prevention)
	if strings.ContainsAny(name, "/\\") {
		return "", errors.New("name contains path separators")
	}

	// Reject null bytes (can cause issues in some filesystems)
	if strings.Contains(name, "\x00") {
		return "", errors.New("name contains null bytes")
	}

	// Reject ".." anywhere in the name (even as substring like "0..")
	if strings.Contains(name, "..") {
		return "", errors.New("name contains directory traversal sequence")
	}

	// Clean and get base
	cleaned := filepath.Base(filepath.Clean(name))

	// Verify cleaning didn't change the name (indicates potential attack)
	if cleaned != name {
		return "", fmt.Errorf("name normalization changed input: %q -> %q", name, cleaned)
	}

	// Reject dangerous names
	if cleaned == "" || cleaned == "." || cleaned == ".." {
		return "", errors.New("invalid name")
	}

	// Remove control characters and DEL
	for _, r := range cleaned {
		if r < 32 || r == 0x7F {
			return "", errors.New("name contains control characters")
		}
	}

	// Reject names that are purely whitespace
	if strings.TrimSpace(cleaned) == "" {
		return "", errors.New("name is only whitespace")
	}

	// Limit length to 255 bytes (common filesystem limit)
	if len(cleaned) > 255 {
		return "", errors.New("name too long (max 255 bytes)")
	}

	return cleaned, nil
}
