package model

import "time"

// MemberInput describes one member in a create or update request.
// ID is optional on update; a member matched by ID or name keeps its identity.
type MemberInput struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"     binding:"required"`
	Role     string `json:"role"     binding:"required"`
	Capacity int    `json:"capacity" binding:"required"`
}

// CreateTeamRequest represents the request to create a team with members.
type CreateTeamRequest struct {
	Name        string        `json:"name"        binding:"required"`
	Description string        `json:"description"`
	OwnerID     string        `json:"ownerId"     binding:"required"`
	Members     []MemberInput `json:"members"     binding:"dive"`
}

// UpdateTeamRequest replaces a team's details and roster.
type UpdateTeamRequest struct {
	Name        string        `json:"name"        binding:"required"`
	Description string        `json:"description"`
	Members     []MemberInput `json:"members"     binding:"dive"`
}

// MemberResponse is a member in API responses.
type MemberResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Capacity int    `json:"capacity"`
}

// TeamResponse represents a team with its members in declared order.
type TeamResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	OwnerID     string           `json:"ownerId"`
	Members     []MemberResponse `json:"members"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// NewTeamResponse builds the API view of a team.
func NewTeamResponse(t *Team) *TeamResponse {
	members := make([]MemberResponse, 0, len(t.Members))
	for _, m := range t.Members {
		members = append(members, MemberResponse{ID: m.ID, Name: m.Name, Role: m.Role, Capacity: m.Capacity})
	}
	return &TeamResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		OwnerID:     t.OwnerID,
		Members:     members,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
