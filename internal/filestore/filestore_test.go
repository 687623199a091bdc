package filestore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveReturnsPublicURL(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDisk(dir, "http://localhost:8080/")
	if err != nil {
		t.Fatalf("init: %v", err)
	}

	url, err := store.Save(strings.NewReader("fake-image-bytes"), "photo.JPG")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(url, "http://localhost:8080/uploads/") || !strings.HasSuffix(url, ".jpg") {
		t.Fatalf("unexpected url %q", url)
	}

	name := filepath.Base(url)
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(data) != "fake-image-bytes" {
		t.Fatalf("unexpected file content %q", data)
	}
}

func TestSaveRejectsUnknownExtension(t *testing.T) {
	store, err := NewDisk(t.TempDir(), "http://localhost")
	if err != nil {
		t.Fatalf("init: %v", err)
	}

	if _, err := store.Save(strings.NewReader("x"), "malware.exe"); err == nil {
		t.Fatalf("expected extension rejection")
	}
}
