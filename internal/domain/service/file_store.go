package service

import "context"

// FileStore abstracts blob storage for uploaded files so the use case layer
// stays independent of the storage backend (local disk, bucket, ...).
type FileStore interface {
	// Write stores data under the given name, overwriting any existing blob.
	Write(ctx context.Context, name string, data []byte, contentType string) error

	// Delete removes the named blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
}
