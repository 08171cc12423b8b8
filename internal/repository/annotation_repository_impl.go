package repository

import (
	"context"

	"medical-imaging-backend/internal/domain/entity"
	domainRepo "medical-imaging-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type annotationRepository struct {
	db *gorm.DB
}

func NewAnnotationRepository(db *gorm.DB) domainRepo.AnnotationRepository {
	return &annotationRepository{db: db}
}

func (r *annotationRepository) Create(ctx context.Context, annotation *entity.Annotation) error {
	return r.db.WithContext(ctx).Create(annotation).Error
}

func (r *annotationRepository) FindByImageID(ctx context.Context, imageID uint) ([]entity.Annotation, error) {
	var annotations []entity.Annotation
	err := r.db.WithContext(ctx).Where("image_id = ?", imageID).Order("id").Find(&annotations).Error
	return annotations, err
}
