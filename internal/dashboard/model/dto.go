// Package model provides data transfer objects for the dashboard module.
package model

import (
	activityModel "github.com/festy23/task_capacity/internal/activity/model"
	"github.com/festy23/task_capacity/internal/capacity"
)

// RecentReassignmentsLimit is how many reassignments the overview lists.
const RecentReassignmentsLimit = 5

// TaskBreakdown counts an owner's tasks by status and by priority.
type TaskBreakdown struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Done       int `json:"done"`
	Low        int `json:"low"`
	Medium     int `json:"medium"`
	High       int `json:"high"`
}

// TeamMember is a member of one of the owner's teams.
type TeamMember struct {
	TeamID   string `gorm:"column:team_id"`
	TeamName string `gorm:"column:team_name"`
	capacity.Member
}

// Assignment links a task of the owner to one of its assignees.
type Assignment struct {
	TaskID    string `gorm:"column:task_id"`
	ProjectID string `gorm:"column:project_id"`
	MemberID  string `gorm:"column:member_id"`
}

// MemberSummary is a member's workload across all of the owner's projects.
type MemberSummary struct {
	MemberID     string          `json:"memberId"`
	Name         string          `json:"name"`
	Role         string          `json:"role"`
	TeamID       string          `json:"teamId"`
	TeamName     string          `json:"teamName"`
	CurrentTasks int             `json:"currentTasks"`
	Capacity     int             `json:"capacity"`
	Available    int             `json:"availableCapacity"`
	Status       capacity.Status `json:"status"`
	IsOverloaded bool            `json:"isOverloaded"`
}

// DashboardResponse is an owner's overview.
type DashboardResponse struct {
	OwnerID             string                   `json:"ownerId"`
	TotalProjects       int                      `json:"totalProjects"`
	TotalTasks          int                      `json:"totalTasks"`
	TasksByStatus       map[string]int           `json:"tasksByStatus"`
	TasksByPriority     map[string]int           `json:"tasksByPriority"`
	CompletionRate      float64                  `json:"completionRate"`
	Team                []MemberSummary          `json:"team"`
	RecentReassignments []activityModel.Activity `json:"recentReassignments"`
}
