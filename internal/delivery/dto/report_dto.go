package dto

import "time"

// ReportRequest is used for both create and update. Updates overwrite
// every field; partial updates are not supported.
type ReportRequest struct {
	PatientID       uint   `json:"patient_id" validate:"required"`
	ImageID         *uint  `json:"image_id" validate:"omitempty"`
	Title           string `json:"title" validate:"required,max=255"`
	Findings        string `json:"findings" validate:"required"`
	Recommendations string `json:"recommendations" validate:"required"`
}

// ReportResponse carries the owning patient's name for display.
type ReportResponse struct {
	ID              uint      `json:"id"`
	PatientID       uint      `json:"patient_id"`
	ImageID         *uint     `json:"image_id,omitempty"`
	Title           string    `json:"title"`
	Findings        string    `json:"findings"`
	Recommendations string    `json:"recommendations"`
	CreatedAt       time.Time `json:"created_at"`
	PatientName     string    `json:"patient_name"`
}
