package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"medical-imaging-backend/internal/delivery/dto"
	"medical-imaging-backend/internal/usecase"

	"github.com/gorilla/mux"
)

type stubAIReportUsecase struct {
	report *dto.ReportResponse
	err    error
}

func (s *stubAIReportUsecase) DraftReport(ctx context.Context, imageID uint) (*dto.ReportResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.report, nil
}

func newAITestRouter(uc usecase.AIReportUsecase) *mux.Router {
	h := NewAIHandler(uc)
	router := mux.NewRouter()
	router.HandleFunc("/ai/generate-report/{image_id}", h.GenerateReport).Methods(http.MethodPost)
	return router
}

func TestGenerateReportSuccess(t *testing.T) {
	imageID := uint(3)
	router := newAITestRouter(&stubAIReportUsecase{report: &dto.ReportResponse{
		ID:          1,
		PatientID:   1,
		ImageID:     &imageID,
		Title:       "AI Report for chest.png",
		Findings:    "Findings: clear.",
		PatientName: "Jane Doe",
	}})

	req := httptest.NewRequest(http.MethodPost, "/ai/generate-report/3", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGenerateReportErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{usecase.ErrImageNotFound, http.StatusNotFound},
		{usecase.ErrImageFileMissing, http.StatusInternalServerError},
		{fmt.Errorf("%w: model unavailable", usecase.ErrUpstream), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		router := newAITestRouter(&stubAIReportUsecase{err: tc.err})
		req := httptest.NewRequest(http.MethodPost, "/ai/generate-report/3", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Errorf("error %v: expected %d, got %d", tc.err, tc.want, rec.Code)
		}
	}
}

func TestGenerateReportInvalidImageID(t *testing.T) {
	router := newAITestRouter(&stubAIReportUsecase{})

	req := httptest.NewRequest(http.MethodPost, "/ai/generate-report/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
