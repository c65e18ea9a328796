// Package storage implements blob storage for uploaded files.
package storage

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	"gocloud.dev/gcerrors"

	"addrbook/config"
	"addrbook/internal/domain/service"
	"addrbook/internal/errors"
)

// pictureStore stores uploaded profile pictures in a gocloud blob bucket
// backed by the local upload directory.
type pictureStore struct {
	bucket *blob.Bucket
}

// Params defines the parameters required for the picture store.
type Params struct {
	fx.In

	Config    *config.Config
	Logger    *slog.Logger
	Lifecycle fx.Lifecycle
}

// NewPictureStore opens a fileblob bucket over the configured upload
// directory, creating the directory when it does not exist yet.
func NewPictureStore(params Params) (service.FileStore, error) {
	dir := "./uploads/profile-pictures"
	if params.Config.Uploads != nil && params.Config.Uploads.Dir != "" {
		dir = params.Config.Uploads.Dir
	}

	bucket, err := fileblob.OpenBucket(dir, &fileblob.Options{
		CreateDir: true,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open upload bucket at %s", dir)
	}

	params.Logger.Info("picture store ready", slog.String("dir", dir))

	params.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return bucket.Close()
		},
	})

	return &pictureStore{bucket: bucket}, nil
}

// Write stores data under the given name, overwriting any existing blob.
func (s *pictureStore) Write(ctx context.Context, name string, data []byte, contentType string) error {
	opts := &blob.WriterOptions{ContentType: contentType}
	if err := s.bucket.WriteAll(ctx, name, data, opts); err != nil {
		return errors.Wrapf(err, "write blob %s", name)
	}

	return nil
}

// Delete removes the named blob. A missing blob is not an error, so
// replacing a picture whose file was lost still succeeds.
func (s *pictureStore) Delete(ctx context.Context, name string) error {
	err := s.bucket.Delete(ctx, name)
	if err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return errors.Wrapf(err, "delete blob %s", name)
	}

	return nil
}
