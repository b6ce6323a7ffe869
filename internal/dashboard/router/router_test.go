package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	activityModel "github.com/festy23/task_capacity/internal/activity/model"
	"github.com/festy23/task_capacity/internal/capacity"
	"github.com/festy23/task_capacity/internal/dashboard/model"
	"github.com/festy23/task_capacity/internal/testutil"
)

func TestIntegration_Dashboard(t *testing.T) {
	db := testutil.NewDB(t)
	team := testutil.SeedTeam(t, db, "owner",
		testutil.MemberSpec{Name: "sara", Capacity: 3},
		testutil.MemberSpec{Name: "farhan", Capacity: 5})
	first := testutil.SeedProject(t, db, "owner", team.ID)
	second := testutil.SeedProject(t, db, "owner", team.ID)
	testutil.SeedTasks(t, db, first.ID, "a", 2, 0, "sara")
	testutil.SeedTasks(t, db, second.ID, "b", 2, 0, "sara")

	for i := 0; i < 7; i++ {
		entry := activityModel.NewReassignment("owner", capacity.Move{
			TaskID:    "a-1",
			TaskTitle: "a task 1",
			ProjectID: first.ID,
			From:      capacity.Member{ID: "sara", Name: "sara"},
			To:        capacity.Member{ID: "farhan", Name: "farhan"},
			At:        testutil.BaseTime.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, db.Create(entry).Error)
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router, db, zap.NewNop().Sugar())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/dashboard/owner", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp model.DashboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.TotalProjects)
	assert.Equal(t, 4, resp.TotalTasks)
	assert.Equal(t, 4, resp.TasksByStatus["Pending"])

	require.Len(t, resp.Team, 2)
	assert.Equal(t, 4, resp.Team[0].CurrentTasks)
	assert.True(t, resp.Team[0].IsOverloaded)

	require.Len(t, resp.RecentReassignments, model.RecentReassignmentsLimit)
	assert.True(t, resp.RecentReassignments[0].CreatedAt.After(resp.RecentReassignments[4].CreatedAt))
}
