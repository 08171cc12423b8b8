package entity

import "time"

// Patient represents a person whose scans and reports are tracked.
type Patient struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FullName      string    `gorm:"type:varchar(255);not null;index" json:"full_name"`
	DateOfBirth   time.Time `gorm:"type:date;not null" json:"date_of_birth"`
	Gender        string    `gorm:"type:varchar(20);not null" json:"gender"`
	ContactNumber string    `gorm:"type:varchar(50)" json:"contact_number"`
	Address       string    `gorm:"type:text" json:"address"`

	// Relationships. Deleting a patient cascades to its reports.
	Reports []Report `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"reports,omitempty"`
	Images  []Image  `gorm:"foreignKey:PatientID" json:"images,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}
