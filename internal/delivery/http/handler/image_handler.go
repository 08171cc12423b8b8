package handler

import (
	"net/http"
	"strconv"

	"medical-imaging-backend/internal/delivery/dto"
	"medical-imaging-backend/internal/usecase"
	"medical-imaging-backend/pkg/response"
	"medical-imaging-backend/pkg/validator"
)

// maxUploadSize bounds multipart parsing memory (32 MB).
const maxUploadSize = 32 << 20

type ImageHandler struct {
	imageUsecase usecase.ImageUsecase
	validator    *validator.CustomValidator
}

func NewImageHandler(imageUsecase usecase.ImageUsecase, validator *validator.CustomValidator) *ImageHandler {
	return &ImageHandler{
		imageUsecase: imageUsecase,
		validator:    validator,
	}
}

// Upload accepts a multipart form with patient_id, description, scan_type
// and the file itself.
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart form", nil)
		return
	}

	patientID, err := strconv.ParseUint(r.FormValue("patient_id"), 10, 64)
	if err != nil {
		response.ValidationError(w, map[string]string{"patient_id": "patient_id must be a positive integer"})
		return
	}

	req := dto.ImageUploadRequest{
		PatientID:   uint(patientID),
		Description: r.FormValue("description"),
		ScanType:    r.FormValue("scan_type"),
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.ValidationError(w, map[string]string{"file": "file is required"})
		return
	}
	defer file.Close()

	image, err := h.imageUsecase.Upload(r.Context(), &req, header.Filename, file)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to upload image")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Image uploaded successfully", image)
}

func (h *ImageHandler) List(w http.ResponseWriter, r *http.Request) {
	images, err := h.imageUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list images")
		return
	}

	response.Success(w, http.StatusOK, "", images)
}

func (h *ImageHandler) ListByPatient(w http.ResponseWriter, r *http.Request) {
	patientID, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient id", nil)
		return
	}

	images, err := h.imageUsecase.ListByPatient(r.Context(), patientID)
	if err != nil {
		response.InternalServerError(w, "Failed to list images")
		return
	}

	response.Success(w, http.StatusOK, "", images)
}
