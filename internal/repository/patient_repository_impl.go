package repository

import (
	"context"

	"medical-imaging-backend/internal/domain/entity"
	domainRepo "medical-imaging-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type patientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) domainRepo.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *entity.Patient) error {
	return r.db.WithContext(ctx).Create(patient).Error
}

func (r *patientRepository) FindByID(ctx context.Context, id uint) (*entity.Patient, error) {
	var patient entity.Patient
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&patient).Error
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindAll(ctx context.Context) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := r.db.WithContext(ctx).Order("id").Find(&patients).Error
	return patients, err
}

func (r *patientRepository) Update(ctx context.Context, patient *entity.Patient) error {
	return r.db.WithContext(ctx).Save(patient).Error
}

// Delete removes the patient row. Dependent reports go with it via the
// ON DELETE CASCADE constraint on reports.patient_id.
func (r *patientRepository) Delete(ctx context.Context, patient *entity.Patient) error {
	return r.db.WithContext(ctx).Delete(patient).Error
}

func (r *patientRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Patient{}).Count(&count).Error
	return count, err
}
