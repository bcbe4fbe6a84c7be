package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/aguxez/fitplan/models"
	"github.com/aguxez/fitplan/planner"
)

// stubLLM answers each request with the next queued reply and records the
// prompt it was given.
type stubLLM struct {
	replies []string
	err     error
	prompts []string
}

func (s *stubLLM) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	var prompt strings.Builder
	for _, m := range messages {
		for _, part := range m.Parts {
			if text, ok := part.(llms.TextContent); ok {
				prompt.WriteString(text.Text)
			}
		}
	}
	s.prompts = append(s.prompts, prompt.String())

	if s.err != nil {
		return nil, s.err
	}
	if len(s.replies) == 0 {
		return nil, errors.New("no reply queued")
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: reply}}}, nil
}

func (s *stubLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, s, prompt, options...)
}

const mealPlanJSON = `{
	"name": {"en": "Lean Week", "ar": "أسبوع خفيف"},
	"description": {"en": "High protein", "ar": "بروتين عالي"},
	"weeklySchedule": [
		{
			"day": {"en": "Monday", "ar": "الاثنين"},
			"meals": {
				"breakfast": {"name": {"en": "Oats"}, "calories": 500, "macros": {"protein": 30, "carbs": 60, "fat": 15}},
				"lunch": {"name": {"en": "Chicken rice"}, "calories": 800, "macros": {"protein": 60, "carbs": 90, "fat": 20}},
				"dinner": {"name": {"en": "Fish"}, "calories": 700, "macros": {"protein": 50, "carbs": 70, "fat": 25}},
				"snacks": [{"name": {"en": "Yogurt"}, "calories": 200, "macros": {"protein": 20, "carbs": 15, "fat": 5}}]
			}
		}
	]
}`

const workoutPlansJSON = `{"plans": [{
	"name": "Full Body",
	"description": {"en": "Three days", "ar": "ثلاثة أيام"},
	"daySplit": "full body",
	"weeklySchedule": [{"day": "Monday", "targetMuscles": "legs", "exercises": [{"name": "Squat", "sets": "3", "reps": "8-10", "rest": "90s"}]}]
}]}`

func testUser() models.User {
	u := models.DefaultUser()
	u.AvailableFoods = "eggs"
	u.DietaryRestrictions = "no pork"
	return u
}

var testResults = models.CalorieResults{
	BMR:                 1700,
	MaintenanceCalories: 2635,
	GoalCalories:        2635,
	ProteinGrams:        135,
	CarbGrams:           361,
	FatGrams:            73,
}

func TestGenerateMealPlan(t *testing.T) {
	llm := &stubLLM{replies: []string{mealPlanJSON}}
	pantry := &models.Pantry{}
	pantry.UpdateFoods([]models.Food{{Name: "Lentils"}, {Name: "Tuna"}})
	a := NewPlanAgent(llm, pantry)

	plan, err := a.GenerateMealPlan(context.Background(), testUser(), testResults)
	require.NoError(t, err)

	assert.Equal(t, "Lean Week", plan.Name.In(models.English))
	assert.Equal(t, "أسبوع خفيف", plan.Name.In(models.Arabic))
	require.Len(t, plan.WeeklySchedule, 1)

	// Goals and totals missing from the reply are filled in.
	assert.Equal(t, 2635.0, plan.DailyCalorieGoal)
	assert.Equal(t, models.Macros{Protein: 135, Carbs: 361, Fat: 73}, plan.DailyMacroGoals)
	assert.Equal(t, models.Totals{Calories: 2200, Protein: 160, Carbs: 235, Fat: 65}, plan.WeeklySchedule[0].DailyTotals)

	require.Len(t, llm.prompts, 1)
	prompt := llm.prompts[0]
	assert.Contains(t, prompt, "- Calories: 2635 kcal")
	assert.Contains(t, prompt, "- Protein: 135g")
	assert.Contains(t, prompt, "eggs, Lentils, Tuna")
	assert.Contains(t, prompt, "Dietary restrictions: no pork")
	assert.Contains(t, prompt, "Covers 7 days")
	assert.Contains(t, prompt, "EGP")
}

func TestGenerateMealPlanFencedReply(t *testing.T) {
	llm := &stubLLM{replies: []string{"Here is your plan:\n```json\n" + mealPlanJSON + "\n```\nEnjoy!"}}
	a := NewPlanAgent(llm, nil, WithCurrency("USD"))

	plan, err := a.GenerateMealPlan(context.Background(), testUser(), testResults)
	require.NoError(t, err)
	assert.Equal(t, "Lean Week", plan.Name.In(models.English))
	assert.Contains(t, llm.prompts[0], "USD")
	assert.Contains(t, llm.prompts[0], "at hand (you may suggest similar items): eggs\n")
}

func TestGenerateMealPlanErrors(t *testing.T) {
	tests := []struct {
		name    string
		llm     *stubLLM
		wantErr error
	}{
		{
			name:    "empty schedule",
			llm:     &stubLLM{replies: []string{`{"name": {"en": "x"}, "weeklySchedule": []}`}},
			wantErr: ErrEmptyPlan,
		},
		{
			name:    "rejected key",
			llm:     &stubLLM{err: errors.New("API returned unexpected status code: 401: Incorrect API key provided")},
			wantErr: planner.ErrInvalidAPIKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewPlanAgent(tt.llm, nil)
			_, err := a.GenerateMealPlan(context.Background(), testUser(), testResults)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGenerateMealPlanInvalidJSON(t *testing.T) {
	a := NewPlanAgent(&stubLLM{replies: []string{"I cannot help with that."}}, nil)

	_, err := a.GenerateMealPlan(context.Background(), testUser(), testResults)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshalling response")
	assert.NotErrorIs(t, err, planner.ErrInvalidAPIKey)
}

func TestGenerateWorkoutPlans(t *testing.T) {
	llm := &stubLLM{replies: []string{workoutPlansJSON}}
	a := NewPlanAgent(llm, nil)

	u := testUser()
	u.TrainingLevel = models.Advanced
	u.TrainingFrequency = 5

	plans, err := a.GenerateWorkoutPlans(context.Background(), u, testResults)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "Full Body", plans[0].Name)
	require.Len(t, plans[0].WeeklySchedule, 1)
	assert.Equal(t, "Squat", plans[0].WeeklySchedule[0].Exercises[0].Name)

	assert.Contains(t, llm.prompts[0], "- Level: advanced")
	assert.Contains(t, llm.prompts[0], "- Sessions per week: 5")
}

func TestGenerateWorkoutPlansEmpty(t *testing.T) {
	a := NewPlanAgent(&stubLLM{replies: []string{`{"plans": []}`}}, nil)

	_, err := a.GenerateWorkoutPlans(context.Background(), testUser(), testResults)
	assert.ErrorIs(t, err, ErrEmptyPlan)
}

func TestHistoryFeedsLaterPrompts(t *testing.T) {
	llm := &stubLLM{replies: []string{mealPlanJSON, workoutPlansJSON}}
	a := NewPlanAgent(llm, nil)

	_, err := a.GenerateMealPlan(context.Background(), testUser(), testResults)
	require.NoError(t, err)
	_, err = a.GenerateWorkoutPlans(context.Background(), testUser(), testResults)
	require.NoError(t, err)

	require.Len(t, llm.prompts, 2)
	assert.NotContains(t, llm.prompts[0], "Lean Week")
	assert.Contains(t, llm.prompts[1], "Lean Week")
}

func TestCleanResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: `{"a":1}`, want: `{"a":1}`},
		{name: "fenced", in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "surrounding prose", in: "Sure! {\"a\":{\"b\":2}} Hope it helps.", want: `{"a":{"b":2}}`},
		{name: "no object", in: "nothing here", want: "nothing here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanResponse(tt.in))
		})
	}
}

func TestDescribeBudget(t *testing.T) {
	u := models.User{}
	assert.Equal(t, "BUDGET: not specified", describeBudget(u, "EGP"))

	u.FoodBudget = 1500
	u.BudgetLevel = models.BudgetLow
	got := describeBudget(u, "EGP")
	assert.Contains(t, got, "1500 EGP")
	assert.Contains(t, got, "Budget level: low")
}
