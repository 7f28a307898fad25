package storage

import (
	"context"
	"io"

	gcs "cloud.google.com/go/storage"

	"github.com/oksasatya/travel-story-api/pkg/helpers"
)

// GCS stores images as public objects in a bucket.
type GCS struct {
	client *gcs.Client
	bucket string
}

func NewGCS(client *gcs.Client, bucket string) *GCS {
	return &GCS{client: client, bucket: bucket}
}

func (s *GCS) Save(ctx context.Context, userID, _, contentType string, r io.Reader) (string, error) {
	ext, err := ExtFor(contentType)
	if err != nil {
		return "", err
	}
	return helpers.UploadObject(ctx, s.client, s.bucket, objectName(userID, ext), contentType, limit(r))
}

// Delete removes the object behind url. URLs of other hosts or buckets are ignored.
func (s *GCS) Delete(ctx context.Context, url string) error {
	obj, ok := helpers.ObjectFromURL(s.bucket, url)
	if !ok {
		return nil
	}
	return helpers.DeleteObject(ctx, s.client, s.bucket, obj)
}
