// Package storage abstracts the object store holding entity images. The
// production implementation targets an S3-compatible Supabase storage
// endpoint; tests substitute in-memory fakes.
package storage

import (
	"context"
	"io"
	"net/url"
	"strings"
)

// ObjectStore is the capability consumed by the image lifecycle: upload an
// object and get back its public URL, delete by key, or rebuild a URL.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, bucket, key string) error
	PublicURL(bucket, key string) string
}

// KeyFromURL extracts the object key from a public URL of the form
// .../public/<bucket>/<key>, URL-decoded. When the marker is absent there is
// no extractable key and "" is returned; callers skip deletion rather than
// erroring. Splitting on the bucket name alone would be fragile against
// filenames containing it, so only the full marker is honored.
func KeyFromURL(rawURL, bucket string) string {
	marker := "/public/" + bucket + "/"
	i := strings.LastIndex(rawURL, marker)
	if i < 0 {
		return ""
	}
	key := rawURL[i+len(marker):]
	if decoded, err := url.PathUnescape(key); err == nil {
		return decoded
	}
	return key
}
