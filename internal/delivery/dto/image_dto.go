package dto

import "time"

// ImageUploadRequest carries the multipart form fields accompanying the
// uploaded file.
type ImageUploadRequest struct {
	PatientID   uint   `validate:"required"`
	Description string `validate:"omitempty"`
	ScanType    string `validate:"omitempty,max=100"`
}

type ImageResponse struct {
	ID          uint      `json:"id"`
	PatientID   uint      `json:"patient_id"`
	Filename    string    `json:"filename"`
	FilePath    string    `json:"file_path"`
	Description string    `json:"description,omitempty"`
	ScanType    string    `json:"scan_type,omitempty"`
	UploadTime  time.Time `json:"upload_time"`
}
