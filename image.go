package visiontech

import "context"

// ImageStore hosts uploaded images and returns a public URL for each.
type ImageStore interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}
