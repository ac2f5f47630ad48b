// Package storage provides small keyed blob stores for persisted game data
package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Sentinel errors
var (
	ErrNotFound = errors.New("key not found")
	ErrClosed   = errors.New("storage closed")
)

// KV is a key to opaque value store
type KV interface {
	// Get returns ErrNotFound for a missing key
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Close() error
}

// Backend names accepted by Open
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// SQLiteFileName is the database created under the data directory when no path is given
const SQLiteFileName = "platanus-dice.db"

// Open creates the named backend rooted at dir
// path overrides the sqlite database location, ignored by other backends
func Open(backend, dir, path string) (KV, error) {
	switch strings.ToLower(backend) {
	case "", BackendFile:
		return NewFileKV(dir)
	case BackendSQLite:
		if path == "" {
			path = filepath.Join(dir, SQLiteFileName)
		}
		return NewSQLiteKV(path)
	case BackendMemory:
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
