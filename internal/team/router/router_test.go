package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	teamModel "github.com/festy23/task_capacity/internal/team/model"
	"github.com/festy23/task_capacity/internal/testutil"
)

func setupRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, db, zap.NewNop().Sugar())
	return r
}

func TestIntegration_TeamLifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	router := setupRouter(db)

	body, _ := json.Marshal(teamModel.CreateTeamRequest{
		Name:    "Mobile",
		OwnerID: "lead@example.com",
		Members: []teamModel.MemberInput{
			{Name: "Riya", Role: teamModel.RoleFullStackDeveloper, Capacity: 3},
			{Name: "Farhan", Role: teamModel.RoleBackendDeveloper, Capacity: 5},
		},
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/teams", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created teamModel.TeamResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	var members []teamModel.Member
	db.Where("team_id = ?", created.ID).Order("position ASC").Find(&members)
	require.Len(t, members, 2)
	assert.Equal(t, "Riya", members[0].Name)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/teams/lead@example.com", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []teamModel.TeamResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, []string{"Riya", "Farhan"}, []string{listed[0].Members[0].Name, listed[0].Members[1].Name})

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodDelete, "/team/"+created.ID, nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/team/"+created.ID, nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
