package export

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/oklog/ulid/v2"
)

// Archiver keeps a copy of a generated export.
type Archiver interface {
	Archive(ctx context.Context, format Format, data []byte) (string, error)
}

// ArchiverFunc adapts a function to Archiver.
type ArchiverFunc func(ctx context.Context, format Format, data []byte) (string, error)

// Archive calls f.
func (f ArchiverFunc) Archive(ctx context.Context, format Format, data []byte) (string, error) {
	return f(ctx, format, data)
}

// ObjectName composes exports/<timestamp>-<ulid>.<ext>.
func ObjectName(format Format, now time.Time, entropy io.Reader) (string, error) {
	id, err := ulid.New(ulid.Timestamp(now), entropy)
	if err != nil {
		return "", fmt.Errorf("export: generate object id: %w", err)
	}
	return fmt.Sprintf("exports/%s-%s.%s", now.UTC().Format("20060102T150405Z"), strings.ToLower(id.String()), format), nil
}

// GCSArchiver writes exports to a Cloud Storage bucket.
type GCSArchiver struct {
	client *gcs.Client
	bucket string
	now    func() time.Time
}

// NewGCSArchiver constructs an archiver for bucket.
func NewGCSArchiver(client *gcs.Client, bucket string) (*GCSArchiver, error) {
	if client == nil {
		return nil, errors.New("export archiver: client is required")
	}
	bucket = strings.TrimSpace(bucket)
	if bucket == "" {
		return nil, errors.New("export archiver: bucket is required")
	}
	return &GCSArchiver{client: client, bucket: bucket, now: time.Now}, nil
}

// Archive uploads data and returns the object path.
func (a *GCSArchiver) Archive(ctx context.Context, format Format, data []byte) (string, error) {
	name, err := ObjectName(format, a.now(), rand.Reader)
	if err != nil {
		return "", err
	}

	wc := a.client.Bucket(a.bucket).Object(name).NewWriter(ctx)
	wc.ContentType = ContentType(format)
	wc.Metadata = map[string]string{"format": string(format)}
	if _, err := wc.Write(data); err != nil {
		_ = wc.Close()
		return "", fmt.Errorf("export archiver: write %s: %w", name, err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("export archiver: close %s: %w", name, err)
	}
	return name, nil
}
