package models

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LeadCreateRequest struct {
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Email     string `json:"email"`
	Message   string `json:"message" binding:"required"`
	ProjectID string `json:"projectId"`
}

type LeadStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type VisibilityRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

type TestimonialRequest struct {
	Translations Translations[TestimonialText] `json:"translations"`
	Rating       int                           `json:"rating"`
}

// ProjectFilter carries the normalized listing query. Zero values mean
// "no constraint"; pointer fields distinguish absent from false/zero.
type ProjectFilter struct {
	Lang         Language
	Status       string
	PropertyType string
	Featured     *bool
	MinPrice     *float64
	MaxPrice     *float64
	Search       string
	Page         int
	Limit        int
}
