package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/maninivas13/farmasthi/internal/config"
	"github.com/maninivas13/farmasthi/internal/services/dto"
	"github.com/maninivas13/farmasthi/internal/storage"
	"github.com/maninivas13/farmasthi/pkg/apperrors"
)

var imageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var audioContentTypes = map[string]bool{
	"audio/mpeg":  true,
	"audio/ogg":   true,
	"audio/wav":   true,
	"audio/x-wav": true,
	"audio/webm":  true,
	"audio/mp4":   true, // m4a
	"audio/x-m4a": true,
	"audio/aac":   true,
}

// UploadService stores query attachments (crop photos and voice notes).
type UploadService interface {
	SaveImage(ctx context.Context, userID string, file *multipart.FileHeader) (*dto.UploadResponse, error)
	SaveAudio(ctx context.Context, userID string, file *multipart.FileHeader) (*dto.UploadResponse, error)
}

type uploadService struct {
	storage storage.Storage
	cfg     *config.Config
}

func NewUploadService(store storage.Storage, cfg *config.Config) UploadService {
	return &uploadService{storage: store, cfg: cfg}
}

func (s *uploadService) SaveImage(ctx context.Context, userID string, file *multipart.FileHeader) (*dto.UploadResponse, error) {
	return s.save(ctx, userID, file, "images", imageContentTypes, s.cfg.Upload.MaxImageSize)
}

func (s *uploadService) SaveAudio(ctx context.Context, userID string, file *multipart.FileHeader) (*dto.UploadResponse, error) {
	return s.save(ctx, userID, file, "audio", audioContentTypes, s.cfg.Upload.MaxAudioSize)
}

func (s *uploadService) save(ctx context.Context, userID string, file *multipart.FileHeader, kind string, allowed map[string]bool, maxSize int64) (*dto.UploadResponse, error) {
	if file.Size > maxSize {
		return nil, apperrors.ErrFileTooLarge
	}

	contentType := file.Header.Get("Content-Type")
	if !allowed[contentType] {
		return nil, apperrors.ErrInvalidFileType
	}

	src, err := file.Open()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	defer src.Close()

	// Filenames are regenerated; the client-supplied name is only used
	// for its extension.
	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := fmt.Sprintf("%d_%s%s", time.Now().Unix(), uuid.NewString(), ext)
	path := filepath.Join(kind, userID, name)

	if err := s.storage.Save(ctx, path, src, contentType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	url, err := s.storage.GetURL(ctx, path)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.UploadResponse{
		FileURL:     url,
		FilePath:    path,
		FileName:    name,
		ContentType: contentType,
		Size:        file.Size,
	}, nil
}
