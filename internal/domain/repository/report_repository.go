package repository

import (
	"context"

	"medical-imaging-backend/internal/domain/entity"
)

type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
	// FindByID preloads the owning patient for name denormalization.
	FindByID(ctx context.Context, id uint) (*entity.Report, error)
	FindAll(ctx context.Context) ([]entity.Report, error)
	Update(ctx context.Context, report *entity.Report) error
	Delete(ctx context.Context, report *entity.Report) error
	Count(ctx context.Context) (int64, error)
}
