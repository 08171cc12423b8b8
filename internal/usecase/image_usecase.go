package usecase

import (
	"context"
	"errors"
	"io"

	"medical-imaging-backend/internal/converter"
	"medical-imaging-backend/internal/delivery/dto"
	"medical-imaging-backend/internal/domain/entity"
	"medical-imaging-backend/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// FileStore is the storage seam for uploaded binaries. Satisfied by
// storage.LocalStore.
type FileStore interface {
	Save(originalName string, content io.Reader) (string, error)
	ReadFile(storedPath string) ([]byte, error)
	Exists(storedPath string) bool
	Remove(storedPath string) error
}

type ImageUsecase interface {
	Upload(ctx context.Context, req *dto.ImageUploadRequest, filename string, content io.Reader) (*dto.ImageResponse, error)
	List(ctx context.Context) ([]dto.ImageResponse, error)
	ListByPatient(ctx context.Context, patientID uint) ([]dto.ImageResponse, error)
}

type imageUsecase struct {
	log         *logrus.Logger
	imageRepo   repository.ImageRepository
	patientRepo repository.PatientRepository
	fileStore   FileStore
}

func NewImageUsecase(
	log *logrus.Logger,
	imageRepo repository.ImageRepository,
	patientRepo repository.PatientRepository,
	fileStore FileStore,
) ImageUsecase {
	return &imageUsecase{
		log:         log,
		imageRepo:   imageRepo,
		patientRepo: patientRepo,
		fileStore:   fileStore,
	}
}

// Upload stores the file under a generated name and records the image
// row. The patient must already exist.
func (u *imageUsecase) Upload(ctx context.Context, req *dto.ImageUploadRequest, filename string, content io.Reader) (*dto.ImageResponse, error) {
	if _, err := u.patientRepo.FindByID(ctx, req.PatientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}

	storedPath, err := u.fileStore.Save(filename, content)
	if err != nil {
		u.log.Warnf("Failed to store uploaded file: %+v", err)
		return nil, err
	}

	image := &entity.Image{
		PatientID:   req.PatientID,
		Filename:    filename,
		FilePath:    storedPath,
		Description: req.Description,
		ScanType:    req.ScanType,
	}

	if err := u.imageRepo.Create(ctx, image); err != nil {
		u.log.Warnf("Failed to create image record: %+v", err)
		// No row references the file anymore; don't leave it orphaned.
		if removeErr := u.fileStore.Remove(storedPath); removeErr != nil {
			u.log.Warnf("Failed to remove stored file %s: %+v", storedPath, removeErr)
		}
		return nil, err
	}

	return converter.ImageToResponse(image), nil
}

func (u *imageUsecase) List(ctx context.Context) ([]dto.ImageResponse, error) {
	images, err := u.imageRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list images: %+v", err)
		return nil, err
	}
	return converter.ImagesToResponse(images), nil
}

func (u *imageUsecase) ListByPatient(ctx context.Context, patientID uint) ([]dto.ImageResponse, error) {
	images, err := u.imageRepo.FindByPatientID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to list images by patient: %+v", err)
		return nil, err
	}
	return converter.ImagesToResponse(images), nil
}
