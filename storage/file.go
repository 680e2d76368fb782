package storage

import (
	"os"
	"path/filepath"
	"strings"
)

// FileStore persists the fingerprint in a single file. This is the default
// backend for the cron model: one read at start, one write at the end, no
// locking needed because scheduled invocations never overlap.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (Fingerprint, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	fp := Fingerprint(strings.TrimSpace(string(data)))
	if fp == "" {
		return "", false, nil
	}
	return fp, true, nil
}

func (s *FileStore) Save(fp Fingerprint) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, []byte(fp+"\n"), 0644)
}
