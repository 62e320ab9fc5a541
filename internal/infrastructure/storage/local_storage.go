package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalObjectStorage writes objects below a directory that the HTTP server
// exposes under publicBaseURL
type LocalObjectStorage struct {
	root          string
	publicBaseURL string
	maxSize       int64
}

// NewLocalObjectStorage creates the root directory when missing
func NewLocalObjectStorage(root, publicBaseURL string, maxSize int64) (*LocalObjectStorage, error) {
	if root == "" {
		return nil, errors.New("local storage directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &LocalObjectStorage{
		root:          root,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		maxSize:       maxSize,
	}, nil
}

// Put writes body to key and returns its public URL
func (s *LocalObjectStorage) Put(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	data, err := readLimited(body, s.maxSize)
	if err != nil {
		return "", err
	}

	target := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create object directory: %w", err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("write object: %w", err)
	}
	return s.URL(key), nil
}

// Delete removes key; a missing object is not an error
func (s *LocalObjectStorage) Delete(_ context.Context, key string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(s.root, filepath.FromSlash(key)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

// URL returns the public URL of key
func (s *LocalObjectStorage) URL(key string) string {
	return s.publicBaseURL + "/" + strings.TrimLeft(key, "/")
}

// Root returns the directory objects are written to
func (s *LocalObjectStorage) Root() string {
	return s.root
}

var _ ObjectStorage = (*LocalObjectStorage)(nil)
