// Package model provides domain models and DTOs for task module.
package model

import (
	"time"

	"github.com/festy23/task_capacity/internal/capacity"
)

// Task is a unit of work inside a project.
type Task struct {
	ID          string     `gorm:"primaryKey;column:id;type:varchar(36)"`
	Title       string     `gorm:"column:title;type:varchar(255);not null"`
	Description string     `gorm:"column:description;not null;default:''"`
	ProjectID   string     `gorm:"column:project_id;type:varchar(36);not null;index:idx_tasks_project_id"`
	Status      string     `gorm:"column:status;type:varchar(16);not null"`
	Priority    string     `gorm:"column:priority;type:varchar(16);not null"`
	CreatedBy   string     `gorm:"column:created_by;type:varchar(255);not null;default:''"`
	CreatedAt   time.Time  `gorm:"column:created_at;not null"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;not null"`
	Assignees   []Assignee `gorm:"foreignKey:TaskID"`
}

// TableName specifies the table name for GORM.
func (Task) TableName() string {
	return "tasks"
}

// Assignee links a task to one team member.
type Assignee struct {
	ID         int64     `gorm:"primaryKey;autoIncrement;column:id"`
	TaskID     string    `gorm:"column:task_id;type:varchar(36);not null;uniqueIndex:uq_task_assignees_task_member"`
	MemberID   string    `gorm:"column:member_id;type:varchar(36);not null;uniqueIndex:uq_task_assignees_task_member;index:idx_task_assignees_member_id"`
	AssignedAt time.Time `gorm:"column:assigned_at;not null"`
}

// TableName specifies the table name for GORM.
func (Assignee) TableName() string {
	return "task_assignees"
}

// AssigneeIDs returns the member ids assigned to the task in assignment order.
func (t *Task) AssigneeIDs() []string {
	ids := make([]string, 0, len(t.Assignees))
	for _, a := range t.Assignees {
		ids = append(ids, a.MemberID)
	}
	return ids
}

// ToCapacity converts the task to the engine's view.
func (t *Task) ToCapacity() capacity.Task {
	return capacity.Task{
		ID:          t.ID,
		Title:       t.Title,
		ProjectID:   t.ProjectID,
		Status:      capacity.TaskStatus(t.Status),
		Priority:    capacity.TaskPriority(t.Priority),
		AssigneeIDs: t.AssigneeIDs(),
		CreatedAt:   t.CreatedAt,
	}
}

// ToCapacityTasks converts tasks to the engine's view.
func ToCapacityTasks(tasks []Task) []capacity.Task {
	out := make([]capacity.Task, 0, len(tasks))
	for i := range tasks {
		out = append(out, tasks[i].ToCapacity())
	}
	return out
}
