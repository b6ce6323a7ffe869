package model

import "time"

// CreateProjectRequest represents the request to create a project.
type CreateProjectRequest struct {
	Name        string `json:"name"        binding:"required"`
	Description string `json:"description"`
	TeamID      string `json:"teamId"      binding:"required"`
	OwnerID     string `json:"ownerId"     binding:"required"`
}

// ProjectResponse is a project in API responses.
type ProjectResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	TeamID      string    `json:"teamId"`
	OwnerID     string    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewProjectResponse builds the API view of a project.
func NewProjectResponse(p *Project) *ProjectResponse {
	return &ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		TeamID:      p.TeamID,
		OwnerID:     p.OwnerID,
		CreatedAt:   p.CreatedAt,
	}
}
