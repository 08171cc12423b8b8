package usecase

import (
	"context"
	"errors"

	"medical-imaging-backend/internal/converter"
	"medical-imaging-backend/internal/delivery/dto"
	"medical-imaging-backend/internal/domain/entity"
	"medical-imaging-backend/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ReportUsecase interface {
	Create(ctx context.Context, req *dto.ReportRequest) (*dto.ReportResponse, error)
	Get(ctx context.Context, id uint) (*dto.ReportResponse, error)
	List(ctx context.Context) ([]dto.ReportResponse, error)
	Update(ctx context.Context, id uint, req *dto.ReportRequest) (*dto.ReportResponse, error)
	Delete(ctx context.Context, id uint) error
}

type reportUsecase struct {
	log        *logrus.Logger
	reportRepo repository.ReportRepository
}

func NewReportUsecase(log *logrus.Logger, reportRepo repository.ReportRepository) ReportUsecase {
	return &reportUsecase{
		log:        log,
		reportRepo: reportRepo,
	}
}

func (u *reportUsecase) Create(ctx context.Context, req *dto.ReportRequest) (*dto.ReportResponse, error) {
	report := &entity.Report{
		PatientID:       req.PatientID,
		ImageID:         req.ImageID,
		Title:           req.Title,
		Findings:        req.Findings,
		Recommendations: req.Recommendations,
	}

	if err := u.reportRepo.Create(ctx, report); err != nil {
		if isForeignKeyError(err, "patient") {
			return nil, ErrPatientNotFound
		}
		if isForeignKeyError(err, "image") {
			return nil, ErrImageNotFound
		}
		u.log.Warnf("Failed to create report: %+v", err)
		return nil, err
	}

	// Reload to pick up the preloaded patient for name denormalization.
	created, err := u.reportRepo.FindByID(ctx, report.ID)
	if err != nil {
		u.log.Warnf("Failed to reload created report: %+v", err)
		return nil, err
	}

	return converter.ReportToResponse(created), nil
}

func (u *reportUsecase) Get(ctx context.Context, id uint) (*dto.ReportResponse, error) {
	report, err := u.reportRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		u.log.Warnf("Failed to find report: %+v", err)
		return nil, err
	}
	return converter.ReportToResponse(report), nil
}

// List returns all reports with the owning patient's name denormalized
// into each entry.
func (u *reportUsecase) List(ctx context.Context) ([]dto.ReportResponse, error) {
	reports, err := u.reportRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list reports: %+v", err)
		return nil, err
	}
	return converter.ReportsToResponse(reports), nil
}

// Update overwrites every field from the request. Partial updates are not
// supported.
func (u *reportUsecase) Update(ctx context.Context, id uint, req *dto.ReportRequest) (*dto.ReportResponse, error) {
	report, err := u.reportRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		u.log.Warnf("Failed to find report: %+v", err)
		return nil, err
	}

	// Drop the preloaded patient so the FK assignment below wins on save.
	report.Patient = entity.Patient{}

	report.PatientID = req.PatientID
	report.ImageID = req.ImageID
	report.Title = req.Title
	report.Findings = req.Findings
	report.Recommendations = req.Recommendations

	if err := u.reportRepo.Update(ctx, report); err != nil {
		if isForeignKeyError(err, "patient") {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Failed to update report: %+v", err)
		return nil, err
	}

	updated, err := u.reportRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to reload updated report: %+v", err)
		return nil, err
	}

	return converter.ReportToResponse(updated), nil
}

func (u *reportUsecase) Delete(ctx context.Context, id uint) error {
	report, err := u.reportRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReportNotFound
		}
		u.log.Warnf("Failed to find report: %+v", err)
		return err
	}

	if err := u.reportRepo.Delete(ctx, report); err != nil {
		u.log.Warnf("Failed to delete report: %+v", err)
		return err
	}
	return nil
}
