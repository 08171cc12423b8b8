package converter

import (
	"medical-imaging-backend/internal/delivery/dto"
	"medical-imaging-backend/internal/domain/entity"
)

// AnnotationToResponse converts an Annotation entity to its response DTO.
func AnnotationToResponse(annotation *entity.Annotation) *dto.AnnotationResponse {
	if annotation == nil {
		return nil
	}

	return &dto.AnnotationResponse{
		ID:      annotation.ID,
		ImageID: annotation.ImageID,
		Label:   annotation.Label,
		BoundingBox: dto.BoundingBoxResponse{
			X:      annotation.BoundingBox.X,
			Y:      annotation.BoundingBox.Y,
			Width:  annotation.BoundingBox.Width,
			Height: annotation.BoundingBox.Height,
		},
	}
}

// AnnotationsToResponse converts a slice of Annotation entities.
func AnnotationsToResponse(annotations []entity.Annotation) []dto.AnnotationResponse {
	out := make([]dto.AnnotationResponse, 0, len(annotations))
	for i := range annotations {
		out = append(out, *AnnotationToResponse(&annotations[i]))
	}
	return out
}
