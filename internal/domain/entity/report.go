package entity

import "time"

// Report represents a textual medical report for a patient, optionally
// tied to the image it interprets. Findings may be AI-generated.
type Report struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID       uint      `gorm:"not null;index" json:"patient_id"`
	ImageID         *uint     `gorm:"index" json:"image_id,omitempty"`
	Title           string    `gorm:"type:varchar(255);index" json:"title"`
	Findings        string    `gorm:"type:text" json:"findings"`
	Recommendations string    `gorm:"type:text" json:"recommendations"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Report) TableName() string {
	return "reports"
}
