package models

// APIResponse is the common response envelope.
type APIResponse struct {
	Code    int         `json:"code" example:"0"`
	Message string      `json:"message" example:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// CreatePinRequest is the pin creation request body.
type CreatePinRequest struct {
	Title         string   `json:"title" example:"Sunset Beach Photo"`
	Description   string   `json:"description" example:"golden hour at the beach"`
	Link          string   `json:"link,omitempty" example:"https://example.com/article"`
	Privacy       string   `json:"privacy,omitempty" example:"public"`
	Board         string   `json:"board,omitempty" example:"travel"`
	MediaFilename string   `json:"media_filename,omitempty" example:"sunset-beach.jpg"`
	Tags          []string `json:"tags,omitempty" example:"sunset,beach"`
}

// UpdatePinRequest is the pin update request body.
type UpdatePinRequest struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Privacy     string `json:"privacy,omitempty"`
}

// CommentRequest is the comment request body.
type CommentRequest struct {
	Text string `json:"text" example:"love this spot"`
}

// PinResponse is a pin payload.
type PinResponse struct {
	Code    int    `json:"code" example:"0"`
	Message string `json:"message" example:"success"`
	Data    Pin    `json:"data"`
}

// RecommendationResponse is the recommendation payload.
type RecommendationResponse struct {
	Code    int    `json:"code" example:"0"`
	Message string `json:"message" example:"success"`
	Data    []Pin  `json:"data"`
}
