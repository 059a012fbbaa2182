//go:build integration_test

package test

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/liftlog/internal/workouts"
)

func (s *IntegrationTestSuite) TestWorkouts() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	resp, body := s.do(ctx, http.MethodPost, "/workouts",
		`{"exercise":"Bench","user":"User 2","recordedAt":"2024-03-01T10:00:00Z","value":100}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var added workouts.AddEntryResponse
	require.NoError(t, json.Unmarshal(body, &added))
	assert.Positive(t, added.ID)

	// same (exercise, user, recordedAt) again
	resp, _ = s.do(ctx, http.MethodPost, "/workouts",
		`{"exercise":"Bench","user":"User 2","recordedAt":"2024-03-01T10:00:00Z","value":105}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	bulk := `[
		{"exercise":"Bench","user":"User 2","recordedAt":"2024-03-02T10:00:00Z","value":110,"previousValue":100},
		{"exercise":"Treadmill Run","user":"User 2","recordedAt":"2024-03-02T10:30:00Z","value":2.5}
	]`
	resp, body = s.do(ctx, http.MethodPost, "/workouts/update", bulk)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var bulkResp workouts.BulkUpdateResponse
	require.NoError(t, json.Unmarshal(body, &bulkResp))
	assert.Equal(t, 2, bulkResp.Updated)

	// a retried batch is idempotent
	resp, _ = s.do(ctx, http.MethodPost, "/workouts/update", bulk)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rows int
	require.NoError(t, s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM workout_entry WHERE user_name = 'User 2'`,
	).Scan(&rows))
	assert.Equal(t, 3, rows)

	resp, _ = s.do(ctx, http.MethodPost, "/workouts/update", `{"exercise":"Bench"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = s.do(ctx, http.MethodGet, "/workouts/latest", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var views []workouts.ExerciseView
	require.NoError(t, json.Unmarshal(body, &views))
	var bench *workouts.ExerciseView
	for i := range views {
		if views[i].Exercise == "Bench" {
			bench = &views[i]
		}
	}
	require.NotNil(t, bench)
	require.NotNil(t, bench.Users["User 2"].Current)
	assert.Equal(t, 110.0, *bench.Users["User 2"].Current)
	assert.Nil(t, bench.Users["User 1"].Current)

	resp, body = s.do(ctx, http.MethodGet, "/workouts/history/page/1/size/2", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var page workouts.HistoryPageResponse
	require.NoError(t, json.Unmarshal(body, &page))
	assert.Len(t, page.Entries, 2)
	assert.GreaterOrEqual(t, page.Total, 3)

	resp, body = s.do(ctx, http.MethodGet, "/workouts/exercise/Bench/user/User%202/stats", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var stats workouts.StatsResponse
	require.NoError(t, json.Unmarshal(body, &stats))
	assert.Equal(t, 2, stats.Stats.Count)
	assert.Equal(t, 105.0, stats.Stats.Mean)

	resp, body = s.do(ctx, http.MethodGet, "/workouts/exercise/Bench/chart", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var chart workouts.ChartResponse
	require.NoError(t, json.Unmarshal(body, &chart))
	assert.Equal(t, []string{"2024-03-01", "2024-03-02"}, chart.Dates)

	resp, body = s.do(ctx, http.MethodGet, "/workouts/user/User%202/streak?target_days=4", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var streak workouts.StreakResponse
	require.NoError(t, json.Unmarshal(body, &streak))
	assert.Equal(t, 2, streak.LongestRun)
	assert.Equal(t, 50.0, streak.Streak)

	resp, _ = s.do(ctx, http.MethodGet, "/workouts/user/User%202/streak?target_days=0", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
