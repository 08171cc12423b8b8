package dto

// PatientRequest is used for both create and update. Updates overwrite
// every field; partial updates are not supported.
type PatientRequest struct {
	FullName      string `json:"full_name" validate:"required,min=2,max=255"`
	DateOfBirth   string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Gender        string `json:"gender" validate:"required"`
	ContactNumber string `json:"contact_number" validate:"required"`
	Address       string `json:"address" validate:"required"`
}

type PatientResponse struct {
	ID            uint   `json:"id"`
	FullName      string `json:"full_name"`
	DateOfBirth   string `json:"date_of_birth"`
	Gender        string `json:"gender"`
	ContactNumber string `json:"contact_number"`
	Address       string `json:"address"`
}
