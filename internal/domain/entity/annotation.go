package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// Annotation represents a labeled bounding box drawn over an image.
type Annotation struct {
	ID          uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	ImageID     uint        `gorm:"not null;index" json:"image_id"`
	Label       string      `gorm:"type:varchar(255);not null" json:"label"`
	BoundingBox BoundingBox `gorm:"type:jsonb;not null" json:"bounding_box"`

	// Relationships
	Image Image `gorm:"foreignKey:ImageID" json:"image,omitempty"`
}

func (Annotation) TableName() string {
	return "annotations"
}

// BoundingBox is a rectangle in image pixel coordinates, stored as JSONB.
type BoundingBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Value implements driver.Valuer for JSONB storage.
func (b BoundingBox) Value() (driver.Value, error) {
	return json.Marshal(b)
}

// Scan implements sql.Scanner for JSONB retrieval.
func (b *BoundingBox) Scan(value interface{}) error {
	if value == nil {
		*b = BoundingBox{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("failed to unmarshal JSONB value:", value))
	}
	return json.Unmarshal(bytes, b)
}
