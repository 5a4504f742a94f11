package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/JaimeStill/tour-desk/pkg/blobstore"
	"github.com/JaimeStill/tour-desk/pkg/blobstore/cloudinary"
)

// Object store drivers.
const (
	BlobsFilesystem = "filesystem"
	BlobsCloudinary = "cloudinary"
	BlobsFirebase   = "firebase"
)

const EnvBlobsDriver = "BLOBS_DRIVER"

var filesystemEnv = &blobstore.Env{
	BasePath:      "BLOBS_BASE_PATH",
	PublicURL:     "BLOBS_PUBLIC_URL",
	MaxUploadSize: "BLOBS_MAX_UPLOAD_SIZE",
}

var cloudinaryEnv = &cloudinary.Env{
	CloudName: "CLOUDINARY_CLOUD_NAME",
	APIKey:    "CLOUDINARY_API_KEY",
	APISecret: "CLOUDINARY_API_SECRET",
}

// BlobsConfig selects the object store for attachments. The filesystem
// section also carries the upload size limit, which applies to every driver.
type BlobsConfig struct {
	Driver     string            `toml:"driver"`
	Filesystem blobstore.Config  `toml:"filesystem"`
	Cloudinary cloudinary.Config `toml:"cloudinary"`
}

func (c *BlobsConfig) MaxUploadSizeBytes() int64 {
	return c.Filesystem.MaxUploadSizeBytes()
}

func (c *BlobsConfig) Finalize() error {
	if c.Driver == "" {
		c.Driver = BlobsFilesystem
	}
	if v := os.Getenv(EnvBlobsDriver); v != "" {
		c.Driver = v
	}

	drivers := []string{BlobsFilesystem, BlobsCloudinary, BlobsFirebase}
	if !slices.Contains(drivers, c.Driver) {
		return fmt.Errorf("invalid driver %q: must be one of %v", c.Driver, drivers)
	}

	if err := c.Filesystem.Finalize(filesystemEnv); err != nil {
		return fmt.Errorf("filesystem: %w", err)
	}
	if c.Driver == BlobsCloudinary {
		if err := c.Cloudinary.Finalize(cloudinaryEnv); err != nil {
			return fmt.Errorf("cloudinary: %w", err)
		}
	}
	return nil
}

func (c *BlobsConfig) Merge(overlay *BlobsConfig) {
	if overlay.Driver != "" {
		c.Driver = overlay.Driver
	}
	c.Filesystem.Merge(&overlay.Filesystem)
	c.Cloudinary.Merge(&overlay.Cloudinary)
}
