package handler

import (
	"errors"
	"net/http"

	"medical-imaging-backend/internal/usecase"
	"medical-imaging-backend/pkg/response"
)

type AIHandler struct {
	aiReportUsecase usecase.AIReportUsecase
}

func NewAIHandler(aiReportUsecase usecase.AIReportUsecase) *AIHandler {
	return &AIHandler{aiReportUsecase: aiReportUsecase}
}

// GenerateReport drafts a report for the image in one synchronous
// upstream call.
func (h *AIHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	imageID, err := pathID(r, "image_id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid image id", nil)
		return
	}

	report, err := h.aiReportUsecase.DraftReport(r.Context(), imageID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrImageNotFound):
			response.NotFound(w, "Image not found")
		case errors.Is(err, usecase.ErrImageFileMissing):
			response.InternalServerError(w, "Image file not found on disk")
		case errors.Is(err, usecase.ErrUpstream):
			response.InternalServerError(w, "AI provider error: "+err.Error())
		default:
			response.InternalServerError(w, "Failed to generate report")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Report generated successfully", report)
}
