package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalProvider writes uploads to a directory served as static files. It is
// the default when no blob-storage bucket is configured.
type LocalProvider struct {
	// Root is the directory files are written to (e.g. "./public/uploads")
	Root string
	// BaseURL is the public path prefix the directory is served under
	BaseURL string
}

func NewLocalProvider(root, baseURL string) *LocalProvider {
	// Ensure the upload directory exists
	_ = os.MkdirAll(root, 0755)
	return &LocalProvider{Root: root, BaseURL: strings.TrimSuffix(baseURL, "/")}
}

func (l *LocalProvider) Put(key string, body io.ReadSeeker, contentType string) (string, error) {
	path := filepath.Join(l.Root, key)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		return "", err
	}

	return l.BaseURL + "/" + key, nil
}
