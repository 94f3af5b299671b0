package ports

import (
	"context"
	"io"
)

// ObjectStore abstracts the profile-picture bucket: put a stream under a key,
// get back the object's public URL.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, r io.Reader, size int64) (string, error)
}
