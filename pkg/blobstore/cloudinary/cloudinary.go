// Package cloudinary stores objects as Cloudinary image assets. The object
// key, minus its extension, becomes the asset's public id.
package cloudinary

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"regexp"
	"strings"

	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/JaimeStill/tour-desk/pkg/blobstore"
	"github.com/JaimeStill/tour-desk/pkg/lifecycle"
)

const resourceType = "image"

var versionSegment = regexp.MustCompile(`^v\d+/`)

type store struct {
	client    *cld.Cloudinary
	cloudName string
	logger    *slog.Logger
}

// New creates a Cloudinary-backed store from cfg.
func New(cfg *Config, logger *slog.Logger) (blobstore.System, error) {
	client, err := cld.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary client: %w", err)
	}

	return &store{
		client:    client,
		cloudName: cfg.CloudName,
		logger:    logger.With("system", "blobstore", "driver", "cloudinary"),
	}, nil
}

func (s *store) Start(lc *lifecycle.Coordinator) error {
	s.logger.Info("starting blob store", "cloud_name", s.cloudName)
	return nil
}

func (s *store) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	publicID := publicIDFromKey(key)
	if publicID == "" || strings.Contains(publicID, "..") {
		return "", blobstore.ErrInvalidKey
	}

	result, err := s.client.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID:     publicID,
		Overwrite:    api.Bool(true),
		ResourceType: resourceType,
	})
	if err != nil {
		return "", fmt.Errorf("upload asset: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("upload asset: %s", result.Error.Message)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("upload asset: no url returned")
	}

	return result.SecureURL, nil
}

func (s *store) Delete(ctx context.Context, url string) error {
	publicID, err := publicIDFromURL(s.cloudName, url)
	if err != nil {
		return err
	}

	result, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	if err != nil {
		return fmt.Errorf("destroy asset: %w", err)
	}
	if result.Error.Message != "" {
		return fmt.Errorf("destroy asset: %s", result.Error.Message)
	}

	switch result.Result {
	case "ok":
		return nil
	case "not found":
		return blobstore.ErrNotFound
	}
	return fmt.Errorf("destroy asset: unexpected result %q", result.Result)
}

func publicIDFromKey(key string) string {
	key = strings.Trim(key, "/")
	return strings.TrimSuffix(key, path.Ext(key))
}

// publicIDFromURL extracts the public id from a delivery URL of the form
// https://res.cloudinary.com/<cloud>/image/upload/[v<version>/]<public id>.<ext>
func publicIDFromURL(cloudName, url string) (string, error) {
	prefixes := []string{
		"https://res.cloudinary.com/" + cloudName + "/" + resourceType + "/upload/",
		"http://res.cloudinary.com/" + cloudName + "/" + resourceType + "/upload/",
	}

	for _, prefix := range prefixes {
		if rest, ok := strings.CutPrefix(url, prefix); ok {
			rest, _, _ = strings.Cut(rest, "?")
			rest = versionSegment.ReplaceAllString(rest, "")
			if id := publicIDFromKey(rest); id != "" {
				return id, nil
			}
		}
	}
	return "", blobstore.ErrInvalidURL
}
