// Package snapshot exports the rendered HTML and state of an App to a Sink.
//
// Each export writes two objects:
//
//	<prefix><name>.html        the mount element's HTML
//	<prefix><name>.state.yaml  the state with export metadata
//
// Sinks exist for S3-compatible object stores and the local filesystem.
package snapshot

import (
	"context"
	"os"
	"path/filepath"

	"github.com/vango-dev/reactree/internal/errors"
)

// Sink stores snapshot objects.
type Sink interface {
	// Put stores body under key.
	Put(ctx context.Context, key, contentType string, body []byte) error

	// Name identifies the sink kind in logs and metrics.
	Name() string
}

// DirSink writes objects as files below a root directory. Keys containing
// slashes create subdirectories.
type DirSink struct {
	root string
}

// NewDirSink creates a DirSink rooted at dir.
func NewDirSink(dir string) *DirSink {
	return &DirSink{root: dir}
}

// Name implements Sink.
func (d *DirSink) Name() string {
	return "dir"
}

// Root returns the root directory.
func (d *DirSink) Root() string {
	return d.root
}

// Put implements Sink.
func (d *DirSink) Put(ctx context.Context, key, _ string, body []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := filepath.Join(d.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.New("S002").WithDetail(path).Wrap(err)
	}
	if err := os.WriteFile(path, body, 0644); err != nil {
		return errors.New("S002").WithDetail(path).Wrap(err)
	}
	return nil
}
