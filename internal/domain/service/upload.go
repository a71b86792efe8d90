package service

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/kalakriti/banner-engine/internal/domain/entity"
	"github.com/kalakriti/banner-engine/internal/domain/usecase"
	"github.com/kalakriti/banner-engine/internal/errors"
)

var _ usecase.UploadService = new(uploadService)

// MaxUploadSize is the banner image size cap, 5MB.
const MaxUploadSize = 5 * 1024 * 1024

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type uploadService struct {
	dir string
}

func NewUploadService(dir string) (*uploadService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &uploadService{dir: dir}, nil
}

// UploadImage validates the file against the allowed types and the size
// cap, stores it under a generated name and returns the URL the admin
// form writes into the banner's image field. The declared content type
// is ignored; the bytes are sniffed.
func (service *uploadService) UploadImage(_ context.Context, dto entity.UploadImageDTO) (entity.UploadResult, error) {
	if dto.Size > MaxUploadSize || int64(len(dto.Data)) > MaxUploadSize {
		return entity.UploadResult{}, errors.NewDomainError(errors.ErrBadUpload,
			"file exceeds the %dMB limit", MaxUploadSize/(1024*1024))
	}

	sniffed := http.DetectContentType(dto.Data)
	ext, ok := allowedImageTypes[sniffed]
	if !ok {
		return entity.UploadResult{}, errors.NewDomainError(errors.ErrBadUpload,
			"file type %q is not allowed, use jpeg, png, webp or gif", sniffed)
	}

	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(service.dir, name), dto.Data, 0o644); err != nil {
		return entity.UploadResult{}, errors.NewDomainError(errors.ErrDB, "failed to store upload")
	}

	return entity.UploadResult{URL: "/api/uploads/" + name}, nil
}

// Open resolves an uploaded filename to its path, refusing traversal
// outside the upload dir.
func (service *uploadService) Open(filename string) (string, error) {
	if filepath.Base(filename) != filename {
		return "", errors.NewDomainError(errors.ErrNoDataFound, "")
	}

	path := filepath.Join(service.dir, filename)
	if _, err := os.Stat(path); err != nil {
		return "", errors.NewDomainError(errors.ErrNoDataFound, "")
	}
	return path, nil
}
