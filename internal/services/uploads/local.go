package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStore кладёт изображения на локальный диск.
type LocalStore struct {
	dir string
}

// NewLocalStore создает хранилище в каталоге dir, создавая его при необходимости.
func NewLocalStore(dir string) (*LocalStore, error) {
	const op = "uploads.NewLocalStore"
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &LocalStore{dir: dir}, nil
}

// Save записывает файл в каталог хранилища и возвращает его путь.
func (s *LocalStore) Save(_ context.Context, filename, _ string, r io.Reader) (string, error) {
	const op = "uploads.LocalStore.Save"

	path := filepath.Join(s.dir, filename)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if _, err = io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err = f.Close(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return path, nil
}
