package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/festy23/task_capacity/internal/capacity"
)

func TestRoster_PreservesOrder(t *testing.T) {
	members := []Member{
		{ID: "m2", Name: "Farhan", Role: RoleBackendDeveloper, Capacity: 5, Position: 0},
		{ID: "m1", Name: "Sara", Role: RoleFrontendDeveloper, Capacity: 3, Position: 1},
	}

	assert.Equal(t, []capacity.Member{
		{ID: "m2", Name: "Farhan", Role: RoleBackendDeveloper, Capacity: 5},
		{ID: "m1", Name: "Sara", Role: RoleFrontendDeveloper, Capacity: 3},
	}, Roster(members))
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{
		RoleProjectManager, RoleFrontendDeveloper, RoleBackendDeveloper, RoleFullStackDeveloper,
		RoleQAEngineer, RoleDesigner, RoleTeamLead,
	} {
		assert.True(t, ValidRole(role), role)
	}
	assert.False(t, ValidRole("Intern"))
	assert.False(t, ValidRole("team lead"))
}

func TestNewTeamResponse(t *testing.T) {
	team := &Team{ID: "t1", Name: "Core", OwnerID: "o1"}

	resp := NewTeamResponse(team)

	assert.Equal(t, "t1", resp.ID)
	assert.NotNil(t, resp.Members)
	assert.Empty(t, resp.Members)
}
