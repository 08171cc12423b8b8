package handler

import (
	"encoding/json"
	"net/http"

	"medical-imaging-backend/internal/delivery/dto"
	"medical-imaging-backend/internal/usecase"
	"medical-imaging-backend/pkg/response"
	"medical-imaging-backend/pkg/validator"
)

type AnnotationHandler struct {
	annotationUsecase usecase.AnnotationUsecase
	validator         *validator.CustomValidator
}

func NewAnnotationHandler(annotationUsecase usecase.AnnotationUsecase, validator *validator.CustomValidator) *AnnotationHandler {
	return &AnnotationHandler{
		annotationUsecase: annotationUsecase,
		validator:         validator,
	}
}

func (h *AnnotationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.AnnotationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	annotation, err := h.annotationUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrImageNotFound:
			response.NotFound(w, "Image not found")
		default:
			response.InternalServerError(w, "Failed to create annotation")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Annotation created successfully", annotation)
}

func (h *AnnotationHandler) ListByImage(w http.ResponseWriter, r *http.Request) {
	imageID, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid image id", nil)
		return
	}

	annotations, err := h.annotationUsecase.ListByImage(r.Context(), imageID)
	if err != nil {
		response.InternalServerError(w, "Failed to list annotations")
		return
	}

	response.Success(w, http.StatusOK, "", annotations)
}
