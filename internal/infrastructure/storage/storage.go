// Package storage keeps uploaded story images either in a Google Cloud
// Storage bucket or on local disk served under /uploads.
package storage

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// MaxImageBytes bounds a single upload.
const MaxImageBytes = 10 << 20

var (
	ErrUnsupportedImage = errors.New("only jpeg, png, webp and gif images are allowed")
	ErrImageTooLarge    = fmt.Errorf("image exceeds %d MiB", MaxImageBytes>>20)
)

var imageExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ExtFor returns the file extension for an accepted image content type.
func ExtFor(contentType string) (string, error) {
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	ext, ok := imageExt[ct]
	if !ok {
		return "", ErrUnsupportedImage
	}
	return ext, nil
}

// objectName builds "stories/<user>/<uuid><ext>".
func objectName(userID, ext string) string {
	return path.Join("stories", userID, uuid.NewString()+ext)
}

// limitedReader fails with ErrImageTooLarge once more than MaxImageBytes were read.
type limitedReader struct {
	r io.Reader
	n int64
}

func limit(r io.Reader) io.Reader {
	return &limitedReader{r: r, n: MaxImageBytes}
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.n < 0 {
		return 0, ErrImageTooLarge
	}
	if int64(len(p)) > l.n+1 {
		p = p[:l.n+1]
	}
	n, err := l.r.Read(p)
	l.n -= int64(n)
	if l.n < 0 {
		return n, ErrImageTooLarge
	}
	return n, err
}
