package state

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// DefaultFile is the state file name, resolved against the working directory.
const DefaultFile = "state.toml"

var ErrNotFound = errors.New("state not found")

// Storage holds the serialized registry record.
type Storage interface {
	// Read returns ErrNotFound when no record was ever written.
	Read() ([]byte, error)
	// Write replaces the whole record.
	Write(data []byte) error
}

type FileStorage struct {
	Path string
}

var _ Storage = (*FileStorage)(nil)

func NewFileStorage(path string) *FileStorage {
	if path == "" {
		path = DefaultFile
	}
	return &FileStorage{Path: path}
}

func (s *FileStorage) Read() ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

// Write stores data through a temporary file in the same directory,
// so a crash never leaves a truncated record behind.
func (s *FileStorage) Write(data []byte) error {
	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary state file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.Path)
}

func (s *FileStorage) String() string {
	return s.Path
}

// MemoryStorage keeps the record in memory.
type MemoryStorage struct {
	mu     sync.Mutex
	data   []byte
	exists bool
	Writes int
}

var _ Storage = (*MemoryStorage)(nil)

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) Read() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.exists {
		return nil, ErrNotFound
	}
	return append([]byte{}, s.data...), nil
}

func (s *MemoryStorage) Write(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte{}, data...)
	s.exists = true
	s.Writes++
	return nil
}

func (s *MemoryStorage) String() string {
	return "memory"
}
