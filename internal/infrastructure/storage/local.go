package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// UploadsRoute is where Local files are served.
const UploadsRoute = "/uploads"

// Local writes images below Dir and serves them from BaseURL + /uploads.
type Local struct {
	Dir     string
	BaseURL string
}

func NewLocal(dir, baseURL string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Local{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *Local) prefix() string { return s.BaseURL + UploadsRoute + "/" }

func (s *Local) Save(ctx context.Context, userID, _, contentType string, r io.Reader) (string, error) {
	ext, err := ExtFor(contentType)
	if err != nil {
		return "", err
	}
	name := objectName(userID, ext)
	full := filepath.Join(s.Dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(full)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, limit(r)); err != nil {
		_ = f.Close()
		_ = os.Remove(full)
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(full)
		return "", err
	}
	if err := ctx.Err(); err != nil {
		_ = os.Remove(full)
		return "", err
	}
	return s.prefix() + name, nil
}

// Delete removes the file behind url. URLs not served by this store are ignored.
func (s *Local) Delete(_ context.Context, url string) error {
	if !strings.HasPrefix(url, s.prefix()) {
		return nil
	}
	rel := filepath.FromSlash(strings.TrimPrefix(url, s.prefix()))
	full := filepath.Join(s.Dir, rel)
	// filepath.Join cleans "..", so anything escaping Dir is rejected here.
	if r, err := filepath.Rel(s.Dir, full); err != nil || strings.HasPrefix(r, "..") {
		return nil
	}
	err := os.Remove(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
