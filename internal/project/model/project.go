// Package model provides domain models and DTOs for project module.
package model

import "time"

// Project groups tasks and draws its assignees from exactly one team.
type Project struct {
	ID          string    `gorm:"primaryKey;column:id;type:varchar(36)"`
	Name        string    `gorm:"column:name;type:varchar(255);not null"`
	Description string    `gorm:"column:description;not null;default:''"`
	TeamID      string    `gorm:"column:team_id;type:varchar(36);not null;index:idx_projects_team_id"`
	OwnerID     string    `gorm:"column:owner_id;type:varchar(255);not null;index:idx_projects_owner_id"`
	CreatedAt   time.Time `gorm:"column:created_at;not null"`
}

// TableName specifies the table name for GORM.
func (Project) TableName() string {
	return "projects"
}
