package repository

import (
	"context"

	"medical-imaging-backend/internal/domain/entity"
	domainRepo "medical-imaging-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type imageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) domainRepo.ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(ctx context.Context, image *entity.Image) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *imageRepository) FindByID(ctx context.Context, id uint) (*entity.Image, error) {
	var image entity.Image
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&image).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *imageRepository) FindAll(ctx context.Context) ([]entity.Image, error) {
	var images []entity.Image
	err := r.db.WithContext(ctx).Order("id").Find(&images).Error
	return images, err
}

func (r *imageRepository) FindByPatientID(ctx context.Context, patientID uint) ([]entity.Image, error) {
	var images []entity.Image
	err := r.db.WithContext(ctx).Where("patient_id = ?", patientID).Order("id").Find(&images).Error
	return images, err
}

// Delete removes the image row. Annotations go with it via the
// ON DELETE CASCADE constraint on annotations.image_id.
func (r *imageRepository) Delete(ctx context.Context, image *entity.Image) error {
	return r.db.WithContext(ctx).Delete(image).Error
}
