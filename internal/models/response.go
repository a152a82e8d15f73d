package models

import "time"

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ProjectView is a listing localized for one language.
type ProjectView struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	MainImage    string    `json:"mainImage,omitempty"`
	Gallery      []string  `json:"gallery"`
	PropertyType string    `json:"propertyType"`
	Status       string    `json:"status"`
	Price        float64   `json:"price"`
	Bedrooms     int       `json:"bedrooms"`
	Bathrooms    int       `json:"bathrooms"`
	Area         float64   `json:"area"`
	Featured     bool      `json:"featured"`
	CreatedAt    time.Time `json:"createdAt"`
}

func NewProjectView(p *Project, lang Language) ProjectView {
	text := p.Translations.Localize(lang)
	gallery := p.Gallery
	if gallery == nil {
		gallery = []string{}
	}
	return ProjectView{
		ID:           p.ID.Hex(),
		Title:        text.Title,
		Description:  text.Description,
		Location:     text.Location,
		MainImage:    p.MainImage,
		Gallery:      gallery,
		PropertyType: p.PropertyType,
		Status:       p.Status,
		Price:        p.Price,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		Area:         p.Area,
		Featured:     p.Featured,
		CreatedAt:    p.CreatedAt,
	}
}

type ProjectListResponse struct {
	Items []ProjectView `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

type ServiceView struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Icon         string `json:"icon,omitempty"`
	DisplayOrder int    `json:"displayOrder"`
}

func NewServiceView(s *Service, lang Language) ServiceView {
	text := s.Translations.Localize(lang)
	return ServiceView{
		ID:           s.ID.Hex(),
		Title:        text.Title,
		Description:  text.Description,
		Icon:         s.Icon,
		DisplayOrder: s.DisplayOrder,
	}
}

type TeamMemberView struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	Bio          string `json:"bio"`
	Photo        string `json:"photo,omitempty"`
	DisplayOrder int    `json:"displayOrder"`
}

func NewTeamMemberView(m *TeamMember, lang Language) TeamMemberView {
	text := m.Translations.Localize(lang)
	return TeamMemberView{
		ID:           m.ID.Hex(),
		Name:         text.Name,
		Role:         text.Role,
		Bio:          text.Bio,
		Photo:        m.Photo,
		DisplayOrder: m.DisplayOrder,
	}
}

type CourseView struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Image         string    `json:"image,omitempty"`
	StartDate     time.Time `json:"startDate"`
	DurationHours int       `json:"durationHours"`
	Price         float64   `json:"price"`
}

func NewCourseView(c *Course, lang Language) CourseView {
	text := c.Translations.Localize(lang)
	return CourseView{
		ID:            c.ID.Hex(),
		Title:         text.Title,
		Description:   text.Description,
		Image:         c.Image,
		StartDate:     c.StartDate,
		DurationHours: c.DurationHours,
		Price:         c.Price,
	}
}

type TestimonialView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content"`
	Rating  int    `json:"rating"`
}

func NewTestimonialView(t *Testimonial, lang Language) TestimonialView {
	text := t.Translations.Localize(lang)
	return TestimonialView{
		ID:      t.ID.Hex(),
		Name:    text.Name,
		Content: text.Content,
		Rating:  t.Rating,
	}
}

type LeadListResponse struct {
	Items []Lead `json:"items"`
	Total int64  `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}
