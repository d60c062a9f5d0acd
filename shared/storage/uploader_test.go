package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskUploader_UploadAndRemove(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	uploader, err := NewDiskUploader(dir, "http://localhost:5000")
	require.NoError(t, err)

	content := "fake image bytes"
	result, err := uploader.Upload(
		context.Background(),
		"widget.png",
		"image/png",
		int64(len(content)),
		strings.NewReader(content),
	)
	require.NoError(t, err)

	assert.Equal(t, "widget.png", result.FileName)
	assert.Equal(t, "image/png", result.FileType)
	assert.NotEmpty(t, result.PublicID)
	assert.True(t, strings.HasPrefix(result.FilePath, "http://localhost:5000/uploads/"))

	stored, err := os.ReadFile(filepath.Join(dir, result.PublicID+".png"))
	require.NoError(t, err)
	assert.Equal(t, content, string(stored))

	require.NoError(t, uploader.Remove(context.Background(), result.PublicID))

	_, err = os.Stat(filepath.Join(dir, result.PublicID+".png"))
	assert.True(t, os.IsNotExist(err))
}

func TestDiskUploader_RemoveRejectsNonUUID(t *testing.T) {
	t.Parallel()

	uploader, err := NewDiskUploader(t.TempDir(), "http://localhost:5000")
	require.NoError(t, err)

	err = uploader.Remove(context.Background(), "../../etc/passwd")
	assert.Error(t, err)
}

func TestFormatFileSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		size int64
		want string
	}{
		{size: 0, want: "0 bytes"},
		{size: 512, want: "512.00 bytes"},
		{size: 1024, want: "1.00 KB"},
		{size: 1536, want: "1.50 KB"},
		{size: 5 << 20, want: "5.00 MB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatFileSize(tt.size, 2))
	}
}
