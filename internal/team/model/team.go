// Package model provides domain models and DTOs for team module.
package model

import (
	"time"

	"github.com/festy23/task_capacity/internal/capacity"
)

// Team represents a team entity in the system.
// Matches the teams table schema.
type Team struct {
	ID          string    `gorm:"primaryKey;column:id;type:varchar(36)"`
	Name        string    `gorm:"column:name;type:varchar(255);not null"`
	Description string    `gorm:"column:description;not null;default:''"`
	OwnerID     string    `gorm:"column:owner_id;type:varchar(255);not null;index:idx_teams_owner_id"`
	CreatedAt   time.Time `gorm:"column:created_at;not null"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null"`
	Members     []Member  `gorm:"foreignKey:TeamID"`
}

// TableName specifies the table name for GORM.
func (Team) TableName() string {
	return "teams"
}

// Member is a team member with a role and a task capacity.
// Position is the member's place in the team's declared order.
type Member struct {
	ID       string `gorm:"primaryKey;column:id;type:varchar(36)"`
	TeamID   string `gorm:"column:team_id;type:varchar(36);not null;uniqueIndex:uq_team_members_team_name"`
	Name     string `gorm:"column:name;type:varchar(255);not null;uniqueIndex:uq_team_members_team_name"`
	Role     string `gorm:"column:role;type:varchar(64);not null"`
	Capacity int    `gorm:"column:capacity;not null"`
	Position int    `gorm:"column:position;not null;default:0"`
}

// TableName specifies the table name for GORM.
func (Member) TableName() string {
	return "team_members"
}

// ToCapacity converts the member to the engine's view.
func (m Member) ToCapacity() capacity.Member {
	return capacity.Member{ID: m.ID, Name: m.Name, Role: m.Role, Capacity: m.Capacity}
}

// Roster converts members, already in position order, to the engine's view.
func Roster(members []Member) []capacity.Member {
	out := make([]capacity.Member, 0, len(members))
	for _, m := range members {
		out = append(out, m.ToCapacity())
	}
	return out
}
