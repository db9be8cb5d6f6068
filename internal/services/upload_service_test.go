package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maninivas13/farmasthi/internal/config"
	"github.com/maninivas13/farmasthi/internal/storage"
	"github.com/maninivas13/farmasthi/pkg/apperrors"
)

func multipartFile(t *testing.T, name, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+name+`"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func uploadFixture(t *testing.T) UploadService {
	t.Helper()

	cfg := &config.Config{}
	cfg.Upload.MaxImageSize = 1024
	cfg.Upload.MaxAudioSize = 2048
	cfg.Upload.BaseURL = "/uploads"

	store, err := storage.NewLocalStorage(storage.Config{BasePath: t.TempDir(), BaseURL: cfg.Upload.BaseURL})
	require.NoError(t, err)

	return NewUploadService(store, cfg)
}

func TestUploadService_SaveImage(t *testing.T) {
	t.Parallel()

	service := uploadFixture(t)
	file := multipartFile(t, "leaf.jpg", "image/jpeg", []byte("fake-jpeg-bytes"))

	resp, err := service.SaveImage(context.Background(), "farmer-1", file)
	require.NoError(t, err)

	assert.Contains(t, resp.FilePath, "images/farmer-1/")
	assert.Contains(t, resp.FileURL, "/uploads/")
	assert.NotEqual(t, "leaf.jpg", resp.FileName, "client filename must be regenerated")
	assert.Contains(t, resp.FileName, ".jpg")
	assert.Equal(t, int64(len("fake-jpeg-bytes")), resp.Size)
}

func TestUploadService_RejectsOversizedFile(t *testing.T) {
	t.Parallel()

	service := uploadFixture(t)
	big := multipartFile(t, "leaf.jpg", "image/jpeg", bytes.Repeat([]byte("x"), 2048))

	_, err := service.SaveImage(context.Background(), "farmer-1", big)
	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)
}

func TestUploadService_RejectsWrongContentType(t *testing.T) {
	t.Parallel()

	service := uploadFixture(t)
	file := multipartFile(t, "malware.exe", "application/octet-stream", []byte("nope"))

	_, err := service.SaveImage(context.Background(), "farmer-1", file)
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)

	_, err = service.SaveAudio(context.Background(), "farmer-1", file)
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)
}

func TestUploadService_SaveAudio(t *testing.T) {
	t.Parallel()

	service := uploadFixture(t)
	file := multipartFile(t, "note.mp3", "audio/mpeg", []byte("fake-mp3"))

	resp, err := service.SaveAudio(context.Background(), "farmer-1", file)
	require.NoError(t, err)
	assert.Contains(t, resp.FilePath, "audio/farmer-1/")
}
