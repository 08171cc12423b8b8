package repository

import (
	"context"

	"medical-imaging-backend/internal/domain/entity"
	domainRepo "medical-imaging-backend/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) domainRepo.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *entity.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) FindByID(ctx context.Context, id uint) (*entity.Report, error) {
	var report entity.Report
	err := r.db.WithContext(ctx).Preload("Patient").Where("id = ?", id).First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) FindAll(ctx context.Context) ([]entity.Report, error) {
	var reports []entity.Report
	err := r.db.WithContext(ctx).Preload("Patient").Order("id").Find(&reports).Error
	return reports, err
}

// Update saves the row only. Associations are omitted so a preloaded
// Patient cannot reassign patient_id back to its stale value.
func (r *reportRepository) Update(ctx context.Context, report *entity.Report) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(report).Error
}

func (r *reportRepository) Delete(ctx context.Context, report *entity.Report) error {
	return r.db.WithContext(ctx).Delete(report).Error
}

func (r *reportRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Report{}).Count(&count).Error
	return count, err
}
