package model

// Member roles.
const (
	RoleProjectManager     = "Project Manager"
	RoleFrontendDeveloper  = "Frontend Developer"
	RoleBackendDeveloper   = "Backend Developer"
	RoleFullStackDeveloper = "Full-Stack Developer"
	RoleQAEngineer         = "QA/Test Engineer"
	RoleDesigner           = "UI/UX Designer"
	RoleTeamLead           = "Team Lead"
)

var validRoles = map[string]bool{
	RoleProjectManager:     true,
	RoleFrontendDeveloper:  true,
	RoleBackendDeveloper:   true,
	RoleFullStackDeveloper: true,
	RoleQAEngineer:         true,
	RoleDesigner:           true,
	RoleTeamLead:           true,
}

// ValidRole reports whether role is one of the fixed member roles.
func ValidRole(role string) bool {
	return validRoles[role]
}
