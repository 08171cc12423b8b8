package usecase

import (
	"context"

	"medical-imaging-backend/internal/converter"
	"medical-imaging-backend/internal/delivery/dto"
	"medical-imaging-backend/internal/domain/entity"
	"medical-imaging-backend/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

type AnnotationUsecase interface {
	Create(ctx context.Context, req *dto.AnnotationRequest) (*dto.AnnotationResponse, error)
	ListByImage(ctx context.Context, imageID uint) ([]dto.AnnotationResponse, error)
}

type annotationUsecase struct {
	log            *logrus.Logger
	annotationRepo repository.AnnotationRepository
}

func NewAnnotationUsecase(log *logrus.Logger, annotationRepo repository.AnnotationRepository) AnnotationUsecase {
	return &annotationUsecase{
		log:            log,
		annotationRepo: annotationRepo,
	}
}

func (u *annotationUsecase) Create(ctx context.Context, req *dto.AnnotationRequest) (*dto.AnnotationResponse, error) {
	annotation := &entity.Annotation{
		ImageID: req.ImageID,
		Label:   req.Label,
		BoundingBox: entity.BoundingBox{
			X:      *req.BoundingBox.X,
			Y:      *req.BoundingBox.Y,
			Width:  *req.BoundingBox.Width,
			Height: *req.BoundingBox.Height,
		},
	}

	if err := u.annotationRepo.Create(ctx, annotation); err != nil {
		if isForeignKeyError(err, "image") {
			return nil, ErrImageNotFound
		}
		u.log.Warnf("Failed to create annotation: %+v", err)
		return nil, err
	}

	return converter.AnnotationToResponse(annotation), nil
}

func (u *annotationUsecase) ListByImage(ctx context.Context, imageID uint) ([]dto.AnnotationResponse, error) {
	annotations, err := u.annotationRepo.FindByImageID(ctx, imageID)
	if err != nil {
		u.log.Warnf("Failed to list annotations: %+v", err)
		return nil, err
	}
	return converter.AnnotationsToResponse(annotations), nil
}
