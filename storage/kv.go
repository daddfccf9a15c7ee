// Package storage provides the durable client-side key/value store.
package storage

import "fmt"

// KV is the persistence port the ledgers write through. It mirrors browser
// local storage: string keys, opaque values, single writer.
type KV interface {
	// Get returns the value and whether the key exists.
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// Open constructs a KV by kind: "memory" or "file".
// For file storage, provide the file path in path; for memory, path is ignored.
func Open(kind, path string) (KV, error) {
	switch kind {
	case "memory", "mem":
		return NewMemoryKV(), nil
	case "file":
		if path == "" {
			return nil, fmt.Errorf("file path required for file storage")
		}
		return NewFileKV(path)
	default:
		return nil, fmt.Errorf("unknown storage kind: %s", kind)
	}
}
