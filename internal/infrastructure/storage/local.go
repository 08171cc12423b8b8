package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// LocalStore persists uploaded binaries on the local filesystem. Stored
// names are generated (UUID plus sanitized extension) so client-supplied
// filenames can never collide with or overwrite each other, and never
// reach the filesystem path.
type LocalStore struct {
	dir string
}

var extPattern = regexp.MustCompile(`^\.[a-zA-Z0-9]+$`)

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Save writes the content under a generated name and returns the path
// relative to the store root.
func (s *LocalStore) Save(originalName string, content io.Reader) (string, error) {
	stored := uuid.New().String() + safeExt(originalName)

	f, err := os.Create(filepath.Join(s.dir, stored))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return stored, nil
}

// Open opens a previously stored file by its relative path.
func (s *LocalStore) Open(storedPath string) (*os.File, error) {
	return os.Open(s.abs(storedPath))
}

// ReadFile returns the raw bytes of a stored file.
func (s *LocalStore) ReadFile(storedPath string) ([]byte, error) {
	return os.ReadFile(s.abs(storedPath))
}

// Exists reports whether the stored file is present on disk.
func (s *LocalStore) Exists(storedPath string) bool {
	_, err := os.Stat(s.abs(storedPath))
	return err == nil
}

// Remove deletes a stored file.
func (s *LocalStore) Remove(storedPath string) error {
	return os.Remove(s.abs(storedPath))
}

// Dir returns the store root, for mounting the static file server.
func (s *LocalStore) Dir() string {
	return s.dir
}

func (s *LocalStore) abs(storedPath string) string {
	// Stored paths are generated by Save, but strip any path components
	// anyway so a tampered database row cannot escape the store root.
	return filepath.Join(s.dir, filepath.Base(storedPath))
}

// safeExt extracts the extension from a client filename, accepting only
// a plain alphanumeric suffix.
func safeExt(name string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(name)))
	if extPattern.MatchString(ext) {
		return ext
	}
	return ""
}
