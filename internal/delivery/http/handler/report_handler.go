package handler

import (
	"encoding/json"
	"net/http"

	"medical-imaging-backend/internal/delivery/dto"
	"medical-imaging-backend/internal/usecase"
	"medical-imaging-backend/pkg/response"
	"medical-imaging-backend/pkg/validator"
)

type ReportHandler struct {
	reportUsecase usecase.ReportUsecase
	validator     *validator.CustomValidator
}

func NewReportHandler(reportUsecase usecase.ReportUsecase, validator *validator.CustomValidator) *ReportHandler {
	return &ReportHandler{
		reportUsecase: reportUsecase,
		validator:     validator,
	}
}

func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	report, err := h.reportUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrImageNotFound:
			response.NotFound(w, "Image not found")
		default:
			response.InternalServerError(w, "Failed to create report")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Report created successfully", report)
}

func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid report id", nil)
		return
	}

	report, err := h.reportUsecase.Get(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrReportNotFound:
			response.NotFound(w, "Report not found")
		default:
			response.InternalServerError(w, "Failed to get report")
		}
		return
	}

	response.Success(w, http.StatusOK, "", report)
}

func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	reports, err := h.reportUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list reports")
		return
	}

	response.Success(w, http.StatusOK, "", reports)
}

func (h *ReportHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid report id", nil)
		return
	}

	var req dto.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	report, err := h.reportUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrReportNotFound:
			response.NotFound(w, "Report not found")
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to update report")
		}
		return
	}

	response.Success(w, http.StatusOK, "Report updated successfully", report)
}

func (h *ReportHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid report id", nil)
		return
	}

	if err := h.reportUsecase.Delete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrReportNotFound:
			response.NotFound(w, "Report not found")
		default:
			response.InternalServerError(w, "Failed to delete report")
		}
		return
	}

	response.Success(w, http.StatusOK, "Report deleted", nil)
}
