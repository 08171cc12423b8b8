package repository

import (
	"context"

	"medical-imaging-backend/internal/domain/entity"
)

type AnnotationRepository interface {
	Create(ctx context.Context, annotation *entity.Annotation) error
	FindByImageID(ctx context.Context, imageID uint) ([]entity.Annotation, error)
}
