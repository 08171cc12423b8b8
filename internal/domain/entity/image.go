package entity

import "time"

// Image represents an uploaded scan file belonging to a patient.
// Filename keeps the client-supplied name for display; FilePath points
// at the stored file, which is renamed on upload and never derived from
// client input.
type Image struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID   uint      `gorm:"not null;index" json:"patient_id"`
	Filename    string    `gorm:"type:varchar(255);not null" json:"filename"`
	FilePath    string    `gorm:"type:text" json:"file_path"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	ScanType    string    `gorm:"type:varchar(100)" json:"scan_type,omitempty"`
	UploadTime  time.Time `gorm:"autoCreateTime" json:"upload_time"`

	// Relationships. Deleting an image cascades to its annotations.
	Patient     Patient      `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Annotations []Annotation `gorm:"foreignKey:ImageID;constraint:OnDelete:CASCADE" json:"annotations,omitempty"`
	Report      *Report      `gorm:"foreignKey:ImageID" json:"report,omitempty"`
}

func (Image) TableName() string {
	return "images"
}
