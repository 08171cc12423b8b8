package converter

import (
	"medical-imaging-backend/internal/delivery/dto"
	"medical-imaging-backend/internal/domain/entity"
)

// ReportToResponse converts a Report entity to its response DTO,
// denormalizing the owning patient's name. A missing patient falls back
// to "Unknown".
func ReportToResponse(report *entity.Report) *dto.ReportResponse {
	if report == nil {
		return nil
	}

	patientName := "Unknown"
	if report.Patient.ID != 0 {
		patientName = report.Patient.FullName
	}

	return &dto.ReportResponse{
		ID:              report.ID,
		PatientID:       report.PatientID,
		ImageID:         report.ImageID,
		Title:           report.Title,
		Findings:        report.Findings,
		Recommendations: report.Recommendations,
		CreatedAt:       report.CreatedAt,
		PatientName:     patientName,
	}
}

// ReportsToResponse converts a slice of Report entities.
func ReportsToResponse(reports []entity.Report) []dto.ReportResponse {
	out := make([]dto.ReportResponse, 0, len(reports))
	for i := range reports {
		out = append(out, *ReportToResponse(&reports[i]))
	}
	return out
}
