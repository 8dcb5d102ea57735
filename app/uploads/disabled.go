package uploads

import (
	"context"
	"errors"
	"io"
)

// ErrNotConfigured is returned by Disabled for every upload.
var ErrNotConfigured = errors.New("object storage is not configured")

// Disabled is the Uploader used when no provider credentials are present.
type Disabled struct{}

func (Disabled) Upload(context.Context, io.Reader) (string, error) {
	return "", ErrNotConfigured
}
