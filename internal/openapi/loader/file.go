package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

func (l *Loader) loadFile(ctx context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("openapi loader: file path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("openapi loader: open %s: %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()
	return readLimited(file, l.limit, path)
}

func (l *Loader) loadFromFS(ctx context.Context, name string) ([]byte, error) {
	if l.files == nil {
		return nil, errors.New("openapi loader: filesystem is not configured")
	}
	if name == "" {
		return nil, errors.New("openapi loader: fs path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := l.files.Open(name)
	if err != nil {
		return nil, fmt.Errorf("openapi loader: open %s: %w", name, err)
	}
	defer func() {
		_ = file.Close()
	}()
	return readLimited(file, l.limit, name)
}
