package repository

import (
	"context"

	"medical-imaging-backend/internal/domain/entity"
)

type PatientRepository interface {
	Create(ctx context.Context, patient *entity.Patient) error
	FindByID(ctx context.Context, id uint) (*entity.Patient, error)
	FindAll(ctx context.Context) ([]entity.Patient, error)
	Update(ctx context.Context, patient *entity.Patient) error
	Delete(ctx context.Context, patient *entity.Patient) error
	Count(ctx context.Context) (int64, error)
}
