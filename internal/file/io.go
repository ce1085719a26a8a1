// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package file writes user uploads such as progress photos to Cloud Storage.
package file

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
)

type IO struct {
	storage *storage.Client
	bucket  string
}

func NewIO(storage *storage.Client, bucket string) *IO {
	return &IO{
		storage: storage,
		bucket:  bucket,
	}
}

// WriteFile uploads data to the bucket at path and returns its URL. Progress
// photos are personal, so objects are marked private; access control is on
// the bucket.
func (io *IO) WriteFile(ctx context.Context, path string, contentType string, data []byte) (string, error) {
	wc := io.storage.Bucket(io.bucket).Object(path).NewWriter(ctx)
	wc.ContentType = contentType
	wc.CacheControl = "private, max-age=0"
	if _, err := wc.Write(data); err != nil {
		_ = wc.Close()
		return "", fmt.Errorf("file: writing file: %w", err)
	}
	// The upload isn't durable until Close returns.
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("file: finishing write: %w", err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", io.bucket, path), nil
}
