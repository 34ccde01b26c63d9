package imagestore

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// maxImageSize caps decoded uploads at 10MB.
const maxImageSize = 10 * 1024 * 1024

var (
	ErrInvalidPayload = errors.New("invalid base64 image payload")
	ErrTooLarge       = errors.New("image exceeds the 10MB limit")

	unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)
)

// Store writes uploaded images to the local uploads directory and returns
// publicly resolvable URLs served from it.
type Store struct {
	dir     string
	baseURL string
}

func New(dir, baseURL string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Save decodes a base64 image payload (with or without a data: prefix),
// stores it under a timestamped unique name and returns its public URL.
func (s *Store) Save(payload, fileName string) (string, error) {
	data := payload
	if i := strings.IndexByte(data, ','); i >= 0 {
		data = data[i+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", ErrInvalidPayload
	}
	if len(raw) == 0 {
		return "", ErrInvalidPayload
	}
	if len(raw) > maxImageSize {
		return "", ErrTooLarge
	}

	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), unsafeChars.ReplaceAllString(fileName, "_"))
	if err := os.WriteFile(filepath.Join(s.dir, name), raw, 0o644); err != nil {
		return "", err
	}
	return s.baseURL + "/" + name, nil
}
