package repository

import (
	"context"

	"medical-imaging-backend/internal/domain/entity"
)

type ImageRepository interface {
	Create(ctx context.Context, image *entity.Image) error
	FindByID(ctx context.Context, id uint) (*entity.Image, error)
	FindAll(ctx context.Context) ([]entity.Image, error)
	FindByPatientID(ctx context.Context, patientID uint) ([]entity.Image, error)
	Delete(ctx context.Context, image *entity.Image) error
}
