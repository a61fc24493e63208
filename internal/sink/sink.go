// Package sink stores exported statements.
package sink

//go:generate mockgen -destination=mock_sink/mock_sink.go github.com/rockstardevs/wsqfx/internal/sink Sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang/glog"
)

// ContentType is the media type of an exported statement.
const ContentType = "application/x-ofx"

// Sink stores a named statement and returns where it went.
type Sink interface {
	Export(ctx context.Context, name string, data []byte) (string, error)
}

// File writes statements into a local directory.
type File struct {
	Dir string
}

func (f File) Export(_ context.Context, name string, data []byte) (string, error) {
	dir := f.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %q: %w", dir, err)
	}
	path := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %q: %w", path, err)
	}
	glog.Infof("Wrote %d bytes to %s", len(data), path)
	return path, nil
}
