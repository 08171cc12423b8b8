package usecase

import (
	"context"
	"errors"
	"time"

	"medical-imaging-backend/internal/converter"
	"medical-imaging-backend/internal/delivery/dto"
	"medical-imaging-backend/internal/domain/entity"
	"medical-imaging-backend/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PatientUsecase interface {
	Create(ctx context.Context, req *dto.PatientRequest) (*dto.PatientResponse, error)
	Get(ctx context.Context, id uint) (*dto.PatientResponse, error)
	List(ctx context.Context) ([]dto.PatientResponse, error)
	Update(ctx context.Context, id uint, req *dto.PatientRequest) (*dto.PatientResponse, error)
	Delete(ctx context.Context, id uint) error
}

type patientUsecase struct {
	log         *logrus.Logger
	patientRepo repository.PatientRepository
}

func NewPatientUsecase(log *logrus.Logger, patientRepo repository.PatientRepository) PatientUsecase {
	return &patientUsecase{
		log:         log,
		patientRepo: patientRepo,
	}
}

func (u *patientUsecase) Create(ctx context.Context, req *dto.PatientRequest) (*dto.PatientResponse, error) {
	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	patient := &entity.Patient{
		FullName:      req.FullName,
		DateOfBirth:   dob,
		Gender:        req.Gender,
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
	}

	if err := u.patientRepo.Create(ctx, patient); err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) Get(ctx context.Context, id uint) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) List(ctx context.Context) ([]dto.PatientResponse, error) {
	patients, err := u.patientRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}
	return converter.PatientsToResponse(patients), nil
}

// Update overwrites every field from the request. Partial updates are not
// supported.
func (u *patientUsecase) Update(ctx context.Context, id uint, req *dto.PatientRequest) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}

	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	patient.FullName = req.FullName
	patient.DateOfBirth = dob
	patient.Gender = req.Gender
	patient.ContactNumber = req.ContactNumber
	patient.Address = req.Address

	if err := u.patientRepo.Update(ctx, patient); err != nil {
		u.log.Warnf("Failed to update patient: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

// Delete removes the patient; dependent reports are removed by the
// database cascade.
func (u *patientUsecase) Delete(ctx context.Context, id uint) error {
	patient, err := u.patientRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPatientNotFound
		}
		u.log.Warnf("Failed to find patient: %+v", err)
		return err
	}

	if err := u.patientRepo.Delete(ctx, patient); err != nil {
		u.log.Warnf("Failed to delete patient: %+v", err)
		return err
	}
	return nil
}
