package driven

import (
	"context"
	"io"
)

// UploadStore defines the driven port for stored image uploads.
//
// Save persists the payload verbatim and returns the generated file name.
// The name carries the extension of originalName (".jpg" when it has none)
// so the file can be served back with a sensible content type.
type UploadStore interface {
	Save(ctx context.Context, originalName string, payload io.Reader) (string, error)
}
