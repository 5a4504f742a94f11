// Package blobstore stores attachment bytes and hands back a publicly
// resolvable URL. Removal is addressed by that URL, so callers only persist
// the URL alongside their documents.
package blobstore

import (
	"context"
	"errors"

	"github.com/JaimeStill/tour-desk/pkg/lifecycle"
)

// Errors returned by System implementations.
var (
	// ErrNotFound indicates no object exists behind the key or URL.
	ErrNotFound = errors.New("blobstore: object not found")

	// ErrPermissionDenied indicates the backend refused access.
	ErrPermissionDenied = errors.New("blobstore: permission denied")

	// ErrInvalidKey indicates an empty key or a path traversal attempt.
	ErrInvalidKey = errors.New("blobstore: invalid key")

	// ErrInvalidURL indicates a URL this store did not issue.
	ErrInvalidURL = errors.New("blobstore: url not issued by this store")
)

// System uploads and removes objects.
type System interface {
	// Put stores data at key, overwriting any existing object, and returns
	// the public URL of the stored object.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// Delete removes the object a previous Put returned url for.
	// Returns ErrNotFound when the object is already gone.
	Delete(ctx context.Context, url string) error

	// Start registers lifecycle hooks with the coordinator.
	Start(lc *lifecycle.Coordinator) error
}

// Retriever is implemented by stores that serve their own objects.
type Retriever interface {
	Retrieve(ctx context.Context, key string) ([]byte, error)
}
