// Package gcs stores objects in the project's Firebase Cloud Storage bucket
// and issues Firebase download URLs.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	gcstorage "cloud.google.com/go/storage"
	fb "firebase.google.com/go/v4"
	"github.com/google/uuid"
	"google.golang.org/api/googleapi"

	"github.com/JaimeStill/tour-desk/pkg/blobstore"
	"github.com/JaimeStill/tour-desk/pkg/lifecycle"
)

const downloadHost = "https://firebasestorage.googleapis.com/v0/b/"

type store struct {
	bucket *gcstorage.BucketHandle
	name   string
	logger *slog.Logger
}

// New opens the default bucket configured on app.
func New(ctx context.Context, app *fb.App, bucketName string, logger *slog.Logger) (blobstore.System, error) {
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}

	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("storage bucket: %w", err)
	}

	return &store{
		bucket: bucket,
		name:   bucketName,
		logger: logger.With("system", "blobstore", "driver", "gcs"),
	}, nil
}

func (s *store) Start(lc *lifecycle.Coordinator) error {
	s.logger.Info("starting blob store", "bucket", s.name)
	return nil
}

func (s *store) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if key == "" || strings.Contains(key, "..") {
		return "", blobstore.ErrInvalidKey
	}

	token := uuid.NewString()

	w := s.bucket.Object(key).NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{"firebaseStorageDownloadTokens": token}

	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", mapError(fmt.Errorf("write object: %w", err))
	}
	if err := w.Close(); err != nil {
		return "", mapError(fmt.Errorf("close writer: %w", err))
	}

	return objectURL(s.name, key, token), nil
}

func (s *store) Delete(ctx context.Context, rawURL string) error {
	key, err := keyFromURL(s.name, rawURL)
	if err != nil {
		return err
	}

	if err := s.bucket.Object(key).Delete(ctx); err != nil {
		return mapError(err)
	}
	return nil
}

func objectURL(bucket, key, token string) string {
	u := downloadHost + bucket + "/o/" + url.QueryEscape(key) + "?alt=media"
	if token != "" {
		u += "&token=" + token
	}
	return u
}

func keyFromURL(bucket, rawURL string) (string, error) {
	rest, ok := strings.CutPrefix(rawURL, downloadHost+bucket+"/o/")
	if !ok {
		return "", blobstore.ErrInvalidURL
	}

	escaped, _, _ := strings.Cut(rest, "?")
	key, err := url.QueryUnescape(escaped)
	if err != nil || key == "" {
		return "", blobstore.ErrInvalidURL
	}
	return key, nil
}

func mapError(err error) error {
	if errors.Is(err, gcstorage.ErrObjectNotExist) {
		return blobstore.ErrNotFound
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusNotFound:
			return blobstore.ErrNotFound
		case http.StatusForbidden, http.StatusUnauthorized:
			return fmt.Errorf("%w: %v", blobstore.ErrPermissionDenied, err)
		}
	}
	return err
}
