package usecase

import (
	"context"

	"github.com/kalakriti/banner-engine/internal/domain/entity"
)

type UploadService interface {
	UploadImage(ctx context.Context, dto entity.UploadImageDTO) (entity.UploadResult, error)
	Open(filename string) (string, error)
}

type uploadImageUsecase struct {
	uploadService UploadService
}

func NewUploadImageUsecase(uploadService UploadService) *uploadImageUsecase {
	return &uploadImageUsecase{uploadService}
}

func (u *uploadImageUsecase) UploadImage(ctx context.Context, dto entity.UploadImageDTO) (entity.UploadResult, error) {
	return u.uploadService.UploadImage(ctx, dto)
}

func (u *uploadImageUsecase) Open(filename string) (string, error) {
	return u.uploadService.Open(filename)
}
