package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/JaimeStill/tour-desk/pkg/lifecycle"
)

// FileSystem is a System that can also serve its own objects.
type FileSystem interface {
	System
	Retriever
}

// filesystem stores objects as files under a base path, with keys mapping
// directly to relative file paths.
type filesystem struct {
	basePath  string
	publicURL string
	logger    *slog.Logger
}

// NewFilesystem creates a filesystem store. The base path is resolved to an
// absolute path during construction; directory creation is deferred to Start.
func NewFilesystem(cfg *Config, logger *slog.Logger) (FileSystem, error) {
	if cfg.BasePath == "" {
		return nil, fmt.Errorf("base_path required")
	}

	absPath, err := filepath.Abs(cfg.BasePath)
	if err != nil {
		return nil, fmt.Errorf("resolve base_path: %w", err)
	}

	return &filesystem{
		basePath:  absPath,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
		logger:    logger.With("system", "blobstore", "driver", "filesystem"),
	}, nil
}

func (f *filesystem) Start(lc *lifecycle.Coordinator) error {
	f.logger.Info("starting blob store", "base_path", f.basePath)

	lc.OnStartup(func() {
		if err := os.MkdirAll(f.basePath, 0755); err != nil {
			f.logger.Error("blob store initialization failed", "error", err)
			return
		}
		f.logger.Info("blob directory initialized")
	})

	return nil
}

func (f *filesystem) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	path, err := f.fullPath(key)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return "", fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("rename temp file: %w", err)
	}

	return f.publicURL + "/" + filepath.ToSlash(filepath.Clean(key)), nil
}

func (f *filesystem) Retrieve(ctx context.Context, key string) ([]byte, error) {
	path, err := f.fullPath(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		if errors.Is(err, fs.ErrPermission) {
			return nil, ErrPermissionDenied
		}
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

func (f *filesystem) Delete(ctx context.Context, url string) error {
	key, ok := strings.CutPrefix(url, f.publicURL+"/")
	if !ok {
		return ErrInvalidURL
	}

	path, err := f.fullPath(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		if errors.Is(err, fs.ErrPermission) {
			return ErrPermissionDenied
		}
		return fmt.Errorf("remove file: %w", err)
	}

	f.pruneDir(filepath.Dir(path))
	return nil
}

// pruneDir removes dir when it is empty and below the base path.
func (f *filesystem) pruneDir(dir string) {
	if dir == f.basePath || !strings.HasPrefix(dir, f.basePath) {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		f.logger.Warn("failed to read directory for cleanup", "dir", dir, "error", err)
		return
	}

	if len(entries) == 0 {
		if err := os.Remove(dir); err != nil && !errors.Is(err, fs.ErrNotExist) {
			f.logger.Warn("failed to remove empty directory", "dir", dir, "error", err)
		}
	}
}

func (f *filesystem) fullPath(key string) (string, error) {
	if key == "" {
		return "", ErrInvalidKey
	}

	cleaned := filepath.Clean(key)
	if strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", ErrInvalidKey
	}

	fullPath := filepath.Join(f.basePath, cleaned)
	if !strings.HasPrefix(fullPath, f.basePath+string(filepath.Separator)) {
		return "", ErrInvalidKey
	}

	return fullPath, nil
}
