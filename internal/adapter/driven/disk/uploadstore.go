// Package disk stores uploaded images verbatim on the local filesystem.
package disk

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/chayanin/showcase/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.UploadStore = (*UploadStore)(nil)

// extPattern matches a plain file extension: a dot followed by letters/digits.
var extPattern = regexp.MustCompile(`^\.[A-Za-z0-9]+$`)

// UploadStore is the local-disk implementation of the UploadStore port.
// File names are {unix-millis}_{random hex}{ext}, so names never collide and
// leak nothing about the original upload.
type UploadStore struct {
	dir string
}

// NewUploadStore creates the upload directory if needed and returns a store
// rooted there.
func NewUploadStore(dir string) (*UploadStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &UploadStore{dir: dir}, nil
}

// Dir returns the directory files are stored in, for static serving.
func (s *UploadStore) Dir() string {
	return s.dir
}

// Save writes the payload to a new file and returns the generated name.
// The extension is taken from originalName when it looks like a plain
// extension, ".jpg" otherwise. The payload is stored byte-for-byte; no
// image processing happens here.
func (s *UploadStore) Save(ctx context.Context, originalName string, payload io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	if !extPattern.MatchString(ext) {
		ext = ".jpg"
	}

	suffix := make([]byte, 8)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("generate file name: %w", err)
	}
	name := fmt.Sprintf("%d_%s%s", time.Now().UnixMilli(), hex.EncodeToString(suffix), ext)

	path := filepath.Join(s.dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}

	if _, err := io.Copy(f, payload); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close upload file: %w", err)
	}

	return name, nil
}
