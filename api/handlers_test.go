package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aguxez/fitplan/models"
	"github.com/aguxez/fitplan/planner"
)

type fakeGenerator struct {
	mealErr    error
	workoutErr error
	block      chan struct{}
}

func (g *fakeGenerator) GenerateMealPlan(ctx context.Context, _ models.User, _ models.CalorieResults) (models.MealPlan, error) {
	if g.block != nil {
		<-g.block
	}
	if g.mealErr != nil {
		return models.MealPlan{}, g.mealErr
	}
	return models.MealPlan{Name: models.LocalizedText{models.English: "Week"}}, nil
}

func (g *fakeGenerator) GenerateWorkoutPlans(ctx context.Context, _ models.User, _ models.CalorieResults) ([]models.WorkoutPlan, error) {
	if g.workoutErr != nil {
		return nil, g.workoutErr
	}
	return []models.WorkoutPlan{{Name: "Push Pull Legs"}}, nil
}

const profileBody = `{
	"age": 30, "gender": "male", "height": 182, "weight": 80,
	"activityLevel": "moderate", "goal": "maintain",
	"trainingLevel": "intermediate", "trainingFrequency": 4
}`

func newTestServer(gen *fakeGenerator) (*httptest.Server, *planner.Orchestrator) {
	o := planner.New(gen)
	return httptest.NewServer(NewServer(o).Routes()), o
}

func do(t *testing.T, srv *httptest.Server, method, path, reqBody string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(reqBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func decodeSnapshot(t *testing.T, data []byte) planner.Snapshot {
	t.Helper()
	var s planner.Snapshot
	require.NoError(t, json.Unmarshal(data, &s))
	return s
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(&fakeGenerator{})
	defer srv.Close()

	resp, body := do(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}

func TestProfileToPlans(t *testing.T) {
	srv, _ := newTestServer(&fakeGenerator{})
	defer srv.Close()

	resp, body := do(t, srv, http.MethodPost, "/api/v1/profile", profileBody)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	snap := decodeSnapshot(t, body)
	assert.Equal(t, planner.StateResults, snap.State)
	require.NotNil(t, snap.Results)
	assert.Equal(t, 1792.5, snap.Results.BMR)
	assert.Equal(t, 2778, snap.Results.MaintenanceCalories)
	assert.Equal(t, 2778, snap.Results.GoalCalories)

	resp, body = do(t, srv, http.MethodPost, "/api/v1/plans", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	snap = decodeSnapshot(t, body)
	assert.Equal(t, planner.StatePlans, snap.State)
	require.NotNil(t, snap.MealPlan)
	assert.Equal(t, "Week", snap.MealPlan.Name.In(models.English))
	require.Len(t, snap.WorkoutPlans, 1)
	assert.NotEmpty(t, snap.GenerationID)

	resp, body = do(t, srv, http.MethodPost, "/api/v1/recalculate", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap = decodeSnapshot(t, body)
	assert.Equal(t, planner.StateCalculator, snap.State)
	assert.NotNil(t, snap.User, "last user is kept to pre-fill the form")
}

func TestProfileRejectsInvalidInput(t *testing.T) {
	srv, o := newTestServer(&fakeGenerator{})
	defer srv.Close()

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "malformed", body: `{"age":`, wantErr: "Invalid request"},
		{name: "invalid", body: `{"age": 0, "gender": "male"}`, wantErr: "invalid user profile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, srv, http.MethodPost, "/api/v1/profile", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var e errorResponse
			require.NoError(t, json.Unmarshal(body, &e))
			assert.Contains(t, e.Error, tt.wantErr)
		})
	}

	assert.Equal(t, planner.StateCalculator, o.State())
}

func TestGeneratePlansBeforeProfile(t *testing.T) {
	srv, _ := newTestServer(&fakeGenerator{})
	defer srv.Close()

	resp, _ := do(t, srv, http.MethodPost, "/api/v1/plans", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestGeneratePlansFailure(t *testing.T) {
	srv, _ := newTestServer(&fakeGenerator{workoutErr: errors.New("network timeout")})
	defer srv.Close()

	resp, _ := do(t, srv, http.MethodPost, "/api/v1/profile", profileBody)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := do(t, srv, http.MethodPost, "/api/v1/plans", "")
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)

	snap := decodeSnapshot(t, body)
	assert.Equal(t, planner.StateResults, snap.State)
	assert.Equal(t, "network timeout", snap.Error)
	assert.Nil(t, snap.MealPlan)
	assert.Empty(t, snap.WorkoutPlans)
}

func TestProfileWhileGenerating(t *testing.T) {
	gen := &fakeGenerator{block: make(chan struct{})}
	srv, o := newTestServer(gen)
	defer srv.Close()

	resp, _ := do(t, srv, http.MethodPost, "/api/v1/profile", profileBody)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = o.Generate(context.Background())
	}()
	require.Eventually(t, func() bool {
		return o.Snapshot().Step == planner.StepMealPlan
	}, time.Second, 5*time.Millisecond)

	resp, _ = do(t, srv, http.MethodPost, "/api/v1/profile", profileBody)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodPost, "/api/v1/plans", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body := do(t, srv, http.MethodGet, "/api/v1/state", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap := decodeSnapshot(t, body)
	assert.Equal(t, planner.StepMealPlan, snap.Step)
	assert.Equal(t, "Generating your weekly meal plan...", snap.Status)

	close(gen.block)
	<-done
	assert.Equal(t, planner.StatePlans, o.State())
}

func TestLanguage(t *testing.T) {
	srv, _ := newTestServer(&fakeGenerator{})
	defer srv.Close()

	resp, body := do(t, srv, http.MethodPut, "/api/v1/language", `{"language":"ar"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap := decodeSnapshot(t, body)
	assert.Equal(t, models.Arabic, snap.Language)
	assert.Equal(t, "rtl", snap.Direction)

	resp, _ = do(t, srv, http.MethodPut, "/api/v1/language", `{"language":"fr"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
