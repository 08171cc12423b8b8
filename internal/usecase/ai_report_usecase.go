package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"medical-imaging-backend/internal/converter"
	"medical-imaging-backend/internal/delivery/dto"
	"medical-imaging-backend/internal/domain/entity"
	"medical-imaging-backend/internal/domain/repository"
	"medical-imaging-backend/internal/infrastructure/ai"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const draftPromptTemplate = `You are an expert radiologist. Please generate a structured medical report based on the provided medical scan image.

Image Details:
- Filename: %s
- Description: %s
- Scan Type: %s

Required Output:
- Findings
- Recommendations

Analyze the uploaded image and provide a detailed interpretation.`

// draftRecommendations is the fixed placeholder persisted alongside the
// generated findings.
const draftRecommendations = "See findings section. Generated via AI."

type AIReportUsecase interface {
	DraftReport(ctx context.Context, imageID uint) (*dto.ReportResponse, error)
}

type aiReportUsecase struct {
	log        *logrus.Logger
	imageRepo  repository.ImageRepository
	reportRepo repository.ReportRepository
	fileStore  FileStore
	drafter    ai.Drafter
}

// NewAIReportUsecase wires the drafting flow. The drafter is an injected
// adapter instance, never a package-level handle.
func NewAIReportUsecase(
	log *logrus.Logger,
	imageRepo repository.ImageRepository,
	reportRepo repository.ReportRepository,
	fileStore FileStore,
	drafter ai.Drafter,
) AIReportUsecase {
	return &aiReportUsecase{
		log:        log,
		imageRepo:  imageRepo,
		reportRepo: reportRepo,
		fileStore:  fileStore,
		drafter:    drafter,
	}
}

// DraftReport reads the stored scan, asks the upstream model for report
// text in a single synchronous call, and persists the result as a Report
// for the image's patient. No retry, no streaming.
func (u *aiReportUsecase) DraftReport(ctx context.Context, imageID uint) (*dto.ReportResponse, error) {
	image, err := u.imageRepo.FindByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrImageNotFound
		}
		u.log.Warnf("Failed to find image: %+v", err)
		return nil, err
	}

	storedPath := image.FilePath
	if storedPath == "" {
		storedPath = image.Filename
	}
	if !u.fileStore.Exists(storedPath) {
		return nil, ErrImageFileMissing
	}

	imageData, err := u.fileStore.ReadFile(storedPath)
	if err != nil {
		u.log.Warnf("Failed to read image file: %+v", err)
		return nil, fmt.Errorf("error reading image file: %w", err)
	}

	description := image.Description
	if description == "" {
		description = "No description provided"
	}
	scanType := image.ScanType
	if scanType == "" {
		scanType = "Unknown"
	}
	prompt := fmt.Sprintf(draftPromptTemplate, image.Filename, description, scanType)

	text, err := u.drafter.Draft(ctx, prompt, imageData, imageFormat(storedPath))
	if err != nil {
		u.log.Warnf("Upstream draft call failed: %+v", err)
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	report := &entity.Report{
		PatientID:       image.PatientID,
		ImageID:         &image.ID,
		Title:           fmt.Sprintf("AI Report for %s", image.Filename),
		Findings:        text,
		Recommendations: draftRecommendations,
	}

	if err := u.reportRepo.Create(ctx, report); err != nil {
		u.log.Warnf("Failed to persist drafted report: %+v", err)
		return nil, err
	}

	created, err := u.reportRepo.FindByID(ctx, report.ID)
	if err != nil {
		u.log.Warnf("Failed to reload drafted report: %+v", err)
		return nil, err
	}

	return converter.ReportToResponse(created), nil
}

// imageFormat maps a stored file's extension to the inline-data format
// the model expects. Defaults to jpeg.
func imageFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".webp":
		return "webp"
	default:
		return "jpeg"
	}
}
