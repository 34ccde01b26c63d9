package imagestore

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveWritesFileAndReturnsURL(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir, "/uploads")
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	payload := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("fake-jpeg-bytes"))
	url, err := store.Save(payload, "bolo de chocolate.jpg")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/") {
		t.Fatalf("unexpected url %q", url)
	}
	if !strings.HasSuffix(url, "-bolo_de_chocolate.jpg") {
		t.Fatalf("expected sanitized filename in %q", url)
	}

	name := strings.TrimPrefix(url, "/uploads/")
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "fake-jpeg-bytes" {
		t.Fatalf("unexpected file contents %q", data)
	}
}

func TestSaveWithoutDataPrefix(t *testing.T) {
	store, err := New(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := store.Save(base64.StdEncoding.EncodeToString([]byte("x")), "a.png"); err != nil {
		t.Fatalf("save: %v", err)
	}
}

func TestSaveRejectsInvalidPayload(t *testing.T) {
	store, err := New(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := store.Save("data:image/jpeg;base64,!!!not-base64!!!", "a.jpg"); !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}
	if _, err := store.Save("", "a.jpg"); !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload for empty payload, got %v", err)
	}
}
