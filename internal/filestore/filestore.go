package filestore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DiskStore writes uploaded product images under a local directory and
// returns public URLs served from /uploads.
type DiskStore struct {
	dir     string
	urlHost string
}

func NewDisk(dir, urlHost string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir, urlHost: strings.TrimRight(urlHost, "/")}, nil
}

// Dir returns the directory static files are served from.
func (s *DiskStore) Dir() string {
	return s.dir
}

// Save stores the file under a random name keeping the original extension
// and returns its public URL.
func (s *DiskStore) Save(r io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
	default:
		return "", fmt.Errorf("unsupported image type %q", ext)
	}

	name := uuid.NewString() + ext
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write file: %w", err)
	}
	return s.urlHost + "/uploads/" + name, nil
}
