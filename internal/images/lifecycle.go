// Package images enforces the attachment contract for entity images: at most
// one current image per entity, upload-before-delete on replacement, and
// best-effort cleanup that never blocks the surrounding operation.
package images

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"fleet_admin/internal/storage"
)

var (
	// ErrNotImage rejects uploads whose content type is not image/*.
	ErrNotImage = errors.New("only image files are accepted")
	// ErrUpload wraps object-store upload failures.
	ErrUpload = errors.New("image upload failed")
)

// Upload is an inbound image file from a multipart request.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// Lifecycle manages the images of one entity type inside one bucket.
type Lifecycle struct {
	Store  storage.ObjectStore
	Bucket string
}

// Save validates and uploads a new image under a collision-free key and
// returns its public URL.
func (l *Lifecycle) Save(ctx context.Context, up *Upload) (string, error) {
	if !strings.HasPrefix(up.ContentType, "image/") {
		return "", ErrNotImage
	}

	key := fmt.Sprintf("image/%s_%s", uuid.NewString(), up.Filename)
	url, err := l.Store.Upload(ctx, l.Bucket, key, up.Body, up.ContentType)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	return url, nil
}

// Replace swaps the current image reference for the uploaded file. A nil
// upload keeps the current reference untouched. The new object is uploaded
// before the old one is touched, so a failed upload leaves the prior
// reference intact — at the cost of a transient orphan when the later delete
// of the old object fails, which is logged and tolerated.
func (l *Lifecycle) Replace(ctx context.Context, current *string, up *Upload) (*string, error) {
	if up == nil {
		return current, nil
	}

	url, err := l.Save(ctx, up)
	if err != nil {
		return current, err
	}

	if current != nil {
		l.Remove(ctx, *current)
	}
	return &url, nil
}

// Remove deletes the object behind a public URL, best effort. URLs without an
// extractable key and store failures are logged and swallowed; a stale object
// in the bucket does not invalidate the entity.
func (l *Lifecycle) Remove(ctx context.Context, url string) {
	key := storage.KeyFromURL(url, l.Bucket)
	if key == "" {
		logrus.WithField("url", url).Warn("No object key found in image URL, skipping delete")
		return
	}

	if err := l.Store.Delete(ctx, l.Bucket, key); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"bucket": l.Bucket,
			"key":    key,
		}).Error("Failed to delete image from storage")
		return
	}
	logrus.WithFields(logrus.Fields{
		"bucket": l.Bucket,
		"key":    key,
	}).Info("Deleted image from storage")
}
