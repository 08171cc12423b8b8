package dto

// BoundingBoxRequest uses pointer fields so zero coordinates pass the
// required check.
type BoundingBoxRequest struct {
	X      *int `json:"x" validate:"required"`
	Y      *int `json:"y" validate:"required"`
	Width  *int `json:"width" validate:"required,gt=0"`
	Height *int `json:"height" validate:"required,gt=0"`
}

type AnnotationRequest struct {
	ImageID     uint                `json:"image_id" validate:"required"`
	Label       string              `json:"label" validate:"required,max=255"`
	BoundingBox *BoundingBoxRequest `json:"bounding_box" validate:"required"`
}

type BoundingBoxResponse struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

type AnnotationResponse struct {
	ID          uint                `json:"id"`
	ImageID     uint                `json:"image_id"`
	Label       string              `json:"label"`
	BoundingBox BoundingBoxResponse `json:"bounding_box"`
}
