package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	projectModel "github.com/festy23/task_capacity/internal/project/model"
	taskModel "github.com/festy23/task_capacity/internal/task/model"
	teamModel "github.com/festy23/task_capacity/internal/team/model"
)

// BaseTime is the creation time of the first seeded task.
var BaseTime = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

// MemberSpec describes a seeded member. The member id equals its name.
type MemberSpec struct {
	Name     string
	Capacity int
}

// SeedTeam inserts a team whose members use their names as ids.
func SeedTeam(t *testing.T, db *gorm.DB, ownerID string, members ...MemberSpec) *teamModel.Team {
	t.Helper()

	team := &teamModel.Team{
		ID:        uuid.NewString(),
		Name:      "team-" + uuid.NewString()[:8],
		OwnerID:   ownerID,
		CreatedAt: BaseTime,
		UpdatedAt: BaseTime,
	}
	for i, m := range members {
		team.Members = append(team.Members, teamModel.Member{
			ID:       m.Name,
			Name:     m.Name,
			Role:     teamModel.RoleBackendDeveloper,
			Capacity: m.Capacity,
			Position: i,
		})
	}
	require.NoError(t, db.Create(team).Error)
	return team
}

// SeedProject inserts a project bound to teamID.
func SeedProject(t *testing.T, db *gorm.DB, ownerID, teamID string) *projectModel.Project {
	t.Helper()

	project := &projectModel.Project{
		ID:        uuid.NewString(),
		Name:      "project-" + uuid.NewString()[:8],
		TeamID:    teamID,
		OwnerID:   ownerID,
		CreatedAt: BaseTime,
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

// SeedTasks inserts n pending tasks assigned to memberIDs, created an hour
// apart starting offset hours after BaseTime. Task ids are "<prefix>-<i>".
func SeedTasks(t *testing.T, db *gorm.DB, projectID, prefix string, n, offset int, memberIDs ...string) []taskModel.Task {
	t.Helper()

	tasks := make([]taskModel.Task, 0, n)
	for i := 1; i <= n; i++ {
		created := BaseTime.Add(time.Duration(offset+i) * time.Hour)
		task := taskModel.Task{
			ID:        fmt.Sprintf("%s-%d", prefix, i),
			Title:     fmt.Sprintf("%s task %d", prefix, i),
			ProjectID: projectID,
			Status:    "Pending",
			Priority:  "Medium",
			CreatedAt: created,
			UpdatedAt: created,
		}
		for _, id := range memberIDs {
			task.Assignees = append(task.Assignees, taskModel.Assignee{TaskID: task.ID, MemberID: id, AssignedAt: created})
		}
		require.NoError(t, db.Create(&task).Error)
		tasks = append(tasks, task)
	}
	return tasks
}

// AssigneesOf returns the member ids assigned to a task, in assignment order.
func AssigneesOf(t *testing.T, db *gorm.DB, taskID string) []string {
	t.Helper()

	var ids []string
	require.NoError(t, db.Model(&taskModel.Assignee{}).
		Where("task_id = ?", taskID).
		Order("id ASC").
		Pluck("member_id", &ids).Error)
	return ids
}
