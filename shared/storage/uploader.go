// Package storage abstracts the blob store that holds uploaded product
// images. The services only see the Uploader interface; the bundled
// implementation writes to a local directory served under /uploads/.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// UploadResult describes a stored blob.
type UploadResult struct {
	FileName string
	FilePath string
	FileType string
	FileSize string
	PublicID string
}

// Uploader is the blob-store collaborator contract.
type Uploader interface {
	Upload(ctx context.Context, originalName, contentType string, size int64, r io.Reader) (*UploadResult, error)
	Remove(ctx context.Context, publicID string) error
}

// DiskUploader stores blobs on the local filesystem under uuid-derived names.
type DiskUploader struct {
	dir     string
	baseURL string
}

// NewDiskUploader creates the upload directory if needed. baseURL is the
// public prefix under which the directory is served.
func NewDiskUploader(dir, baseURL string) (*DiskUploader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	return &DiskUploader{dir: dir, baseURL: baseURL}, nil
}

func (u *DiskUploader) Upload(
	_ context.Context,
	originalName, contentType string,
	size int64,
	r io.Reader,
) (*UploadResult, error) {
	publicID := uuid.NewString()
	name := publicID + filepath.Ext(originalName)

	f, err := os.Create(filepath.Join(u.dir, name))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return nil, err
	}

	return &UploadResult{
		FileName: originalName,
		FilePath: u.baseURL + "/uploads/" + name,
		FileType: contentType,
		FileSize: FormatFileSize(size, 2),
		PublicID: publicID,
	}, nil
}

func (u *DiskUploader) Remove(_ context.Context, publicID string) error {
	// PublicID must be a uuid we minted; rejects path traversal.
	if _, err := uuid.Parse(publicID); err != nil {
		return fmt.Errorf("invalid public id: %w", err)
	}

	matches, err := filepath.Glob(filepath.Join(u.dir, publicID+"*"))
	if err != nil {
		return err
	}

	for _, match := range matches {
		if err := os.Remove(match); err != nil {
			return err
		}
	}

	return nil
}

// FormatFileSize renders a byte count as a human-readable string with the
// given number of decimals.
func FormatFileSize(size int64, decimals int) string {
	if size <= 0 {
		return "0 bytes"
	}

	units := []string{"bytes", "KB", "MB", "GB", "TB"}
	value := float64(size)

	idx := 0
	for value >= 1024 && idx < len(units)-1 {
		value /= 1024
		idx++
	}

	return fmt.Sprintf("%.*f %s", decimals, value, units[idx])
}
