package converter

import (
	"medical-imaging-backend/internal/delivery/dto"
	"medical-imaging-backend/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to its response DTO.
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:            patient.ID,
		FullName:      patient.FullName,
		DateOfBirth:   patient.DateOfBirth.Format("2006-01-02"),
		Gender:        patient.Gender,
		ContactNumber: patient.ContactNumber,
		Address:       patient.Address,
	}
}

// PatientsToResponse converts a slice of Patient entities.
func PatientsToResponse(patients []entity.Patient) []dto.PatientResponse {
	out := make([]dto.PatientResponse, 0, len(patients))
	for i := range patients {
		out = append(out, *PatientToResponse(&patients[i]))
	}
	return out
}
