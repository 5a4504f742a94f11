package resource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/tour-desk/pkg/blobstore"
	"github.com/JaimeStill/tour-desk/pkg/compress"
)

// Upload is a file chosen for an attachment field.
type Upload struct {
	Name string
	Data []byte
}

// Attachments uploads and removes attachment objects. Images pass through
// the compressor before upload when one is configured.
type Attachments struct {
	blobs      blobstore.System
	compressor *compress.Compressor
	logger     *slog.Logger
}

// NewAttachments creates an attachment manager. compressor may be nil.
func NewAttachments(blobs blobstore.System, compressor *compress.Compressor, logger *slog.Logger) *Attachments {
	return &Attachments{
		blobs:      blobs,
		compressor: compressor,
		logger:     logger.With("system", "attachments"),
	}
}

// Upload stores file under prefix and returns its public URL.
func (a *Attachments) Upload(ctx context.Context, prefix string, file Upload) (string, error) {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return "", fmt.Errorf("%w: attachment prefix required", ErrValidation)
	}
	if len(file.Data) == 0 {
		return "", fmt.Errorf("%w: attachment is empty", ErrValidation)
	}

	data, contentType := file.Data, http.DetectContentType(file.Data)
	name := sanitizeFilename(file.Name)

	if a.compressor != nil {
		result, err := a.compressor.Compress(file.Data)
		if err != nil {
			if errors.Is(err, compress.ErrUnsupported) {
				return "", fmt.Errorf("%w: attachment is not a supported image", ErrValidation)
			}
			return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}
		data, contentType = result.Data, result.ContentType
		if contentType == "image/jpeg" {
			name = withExt(name, ".jpg")
		}
	}

	key := buildKey(prefix, name)
	url, err := a.blobs.Put(ctx, key, data, contentType)
	if err != nil {
		a.logger.Error("upload failed", "key", key, "error", err)
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	a.logger.Info("attachment uploaded", "key", key, "bytes", len(data))
	return url, nil
}

// Remove deletes the object behind url. An object that is already gone
// yields ErrNotFound.
func (a *Attachments) Remove(ctx context.Context, url string) error {
	if err := a.blobs.Delete(ctx, url); err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return ErrNotFound
		}
		a.logger.Error("remove failed", "url", url, "error", err)
		return fmt.Errorf("%w: %v", ErrRemoveFailed, err)
	}

	a.logger.Info("attachment removed", "url", url)
	return nil
}

func buildKey(prefix, name string) string {
	return path.Join(prefix, uuid.NewString(), name)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == ".." || name == "/" || name == "" {
		return "upload"
	}

	replacer := strings.NewReplacer(
		" ", "_",
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		"#", "_",
		"%", "_",
	)
	return replacer.Replace(name)
}

func withExt(name, ext string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ext
}
