package converter

import (
	"medical-imaging-backend/internal/delivery/dto"
	"medical-imaging-backend/internal/domain/entity"
)

// ImageToResponse converts an Image entity to its response DTO.
func ImageToResponse(image *entity.Image) *dto.ImageResponse {
	if image == nil {
		return nil
	}

	return &dto.ImageResponse{
		ID:          image.ID,
		PatientID:   image.PatientID,
		Filename:    image.Filename,
		FilePath:    image.FilePath,
		Description: image.Description,
		ScanType:    image.ScanType,
		UploadTime:  image.UploadTime,
	}
}

// ImagesToResponse converts a slice of Image entities.
func ImagesToResponse(images []entity.Image) []dto.ImageResponse {
	out := make([]dto.ImageResponse, 0, len(images))
	for i := range images {
		out = append(out, *ImageToResponse(&images[i]))
	}
	return out
}
