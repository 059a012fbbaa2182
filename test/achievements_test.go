//go:build integration_test

package test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/liftlog/internal/achievements"
)

func (s *IntegrationTestSuite) listAchievements(ctx context.Context) []achievements.Achievement {
	t := s.T()
	resp, body := s.do(ctx, http.MethodGet, "/achievements", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var list []achievements.Achievement
	require.NoError(t, json.Unmarshal(body, &list))
	return list
}

func findByTitle(list []achievements.Achievement, user, title string) *achievements.Achievement {
	for i := range list {
		if list[i].TargetUser == user && list[i].Title == title {
			return &list[i]
		}
	}
	return nil
}

func (s *IntegrationTestSuite) TestAchievements() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	// seeded at startup, 4 per participant
	list := s.listAchievements(ctx)
	require.Len(t, list, 8)
	milestone := findByTitle(list, "User 1", "Leg Press 3x10 150lb Milestone")
	require.NotNil(t, milestone)
	assert.Equal(t, float64(0), milestone.Progress)
	assert.Equal(t, achievements.StatusInProgress, milestone.Status)

	resp, body := s.do(ctx, http.MethodPost, fmt.Sprintf("/achievements/%d/claim", milestone.ID), "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode, string(body))

	resp, body = s.do(ctx, http.MethodPost, "/workouts",
		`{"exercise":"Leg Press","user":"User 1","recordedAt":"2024-02-01T08:00:00Z","value":30}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	list = s.listAchievements(ctx)
	milestone = findByTitle(list, "User 1", "Leg Press 3x10 150lb Milestone")
	require.NotNil(t, milestone)
	assert.InDelta(t, 60, milestone.Progress, 1e-9)
	firstLift := findByTitle(list, "User 1", "First Lift")
	require.NotNil(t, firstLift)
	assert.Equal(t, achievements.StatusComplete, firstLift.Status)

	// progress cache is written back on read
	var storedProgress float64
	require.NoError(t, s.DB.QueryRowContext(ctx,
		`SELECT progress FROM achievement WHERE id = $1`, milestone.ID,
	).Scan(&storedProgress))
	assert.InDelta(t, 60, storedProgress, 1e-9)

	resp, body = s.do(ctx, http.MethodPost, "/workouts",
		`{"exercise":"Leg Press","user":"User 1","recordedAt":"2024-02-02T08:00:00Z","value":25}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = s.do(ctx, http.MethodPost, fmt.Sprintf("/achievements/%d/claim", milestone.ID), "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var claimed achievements.Achievement
	require.NoError(t, json.Unmarshal(body, &claimed))
	assert.True(t, claimed.Claimed)
	assert.Equal(t, achievements.StatusClaimed, claimed.Status)

	// claiming twice is rejected
	resp, _ = s.do(ctx, http.MethodPost, fmt.Sprintf("/achievements/%d/claim", milestone.ID), "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// an update cannot un-claim
	update := `{"title":"Leg Press 50","conditionType":"weight","comparator":">=","threshold":50,"targetExercise":"Leg Press","targetUser":"User 1","claimed":false}`
	resp, body = s.do(ctx, http.MethodPut, fmt.Sprintf("/achievements/%d", milestone.ID), update)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var updated achievements.Achievement
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.True(t, updated.Claimed)
	assert.Equal(t, "Leg Press 50", updated.Title)

	// create, get, delete
	resp, body = s.do(ctx, http.MethodPost, "/achievements",
		`{"title":"Two Day Streak","conditionType":"streak","threshold":2,"targetUser":"User 1","rewardLabel":"Dinner"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var created achievements.Achievement
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, float64(100), created.Progress)
	assert.False(t, created.Claimed)

	resp, body = s.do(ctx, http.MethodGet, fmt.Sprintf("/achievements/%d", created.ID), "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, _ = s.do(ctx, http.MethodDelete, fmt.Sprintf("/achievements/%d", created.ID), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = s.do(ctx, http.MethodGet, fmt.Sprintf("/achievements/%d", created.ID), "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// invalid definitions
	resp, _ = s.do(ctx, http.MethodPost, "/achievements",
		`{"title":"Bad","conditionType":"weight","threshold":10,"targetUser":"User 1"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
