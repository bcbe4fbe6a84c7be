package calorie

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aguxez/fitplan/models"
)

func referenceUser() models.User {
	return models.User{
		Age:               30,
		Gender:            models.Male,
		Height:            180,
		Weight:            80,
		ActivityLevel:     models.Moderate,
		Goal:              models.Maintain,
		TrainingLevel:     models.Intermediate,
		TrainingFrequency: 4,
	}
}

func TestComputeReferenceUser(t *testing.T) {
	got := Compute(referenceUser())

	assert.Equal(t, 1780.0, got.BMR)
	assert.Equal(t, 2759, got.MaintenanceCalories)
	assert.Equal(t, 2759, got.GoalCalories)
	assert.Equal(t, 144, got.ProteinGrams)
	assert.Equal(t, 77, got.FatGrams)
	assert.Equal(t, 373, got.CarbGrams)
}

func TestComputeMatchesPublishedExample(t *testing.T) {
	u := referenceUser()
	u.Height = 182

	got := Compute(u)
	assert.Equal(t, 1792.5, got.BMR)
	assert.Equal(t, 2778, got.MaintenanceCalories)
	assert.Equal(t, 2778, got.GoalCalories)

	u.Goal = models.Lose
	assert.Equal(t, 2222, Compute(u).GoalCalories)
}

func TestBMRFemale(t *testing.T) {
	u := models.User{Age: 40, Gender: models.Female, Height: 165, Weight: 60}
	assert.Equal(t, 600+1031.25-200-161.0, BMR(u))
}

func TestGoalCalories(t *testing.T) {
	assert.Equal(t, 2000, GoalCalories(2000, models.Maintain))
	assert.Equal(t, 1600, GoalCalories(2000, models.Lose))
	assert.Equal(t, 2300, GoalCalories(2000, models.Gain))
}

func TestMacrosProteinScalesWithTrainingLevel(t *testing.T) {
	pb, _, _ := Macros(2500, 80, models.Beginner)
	pi, _, _ := Macros(2500, 80, models.Intermediate)
	pa, _, _ := Macros(2500, 80, models.Advanced)

	assert.Equal(t, 128, pb)
	assert.Equal(t, 144, pi)
	assert.Equal(t, 160, pa)
}

func TestMacrosCapProteinWhenCaloriesAreLow(t *testing.T) {
	protein, carbs, fat := Macros(1200, 200, models.Advanced)

	assert.Equal(t, 0, carbs)
	assert.Equal(t, 33, fat)
	assert.Equal(t, 226, protein)
	assert.InDelta(t, 1200, protein*4+fat*9, 2)
}

func TestMacrosZeroCalories(t *testing.T) {
	p, c, f := Macros(0, 80, models.Beginner)
	assert.Zero(t, p+c+f)
}

// profiles spans the valid input space coarsely, corners included.
func profiles() []models.User {
	var users []models.User
	for _, age := range []int{models.MinAge, 30, 55, models.MaxAge} {
		for _, gender := range []models.Gender{models.Male, models.Female} {
			for _, height := range []float64{models.MinHeight, 170, models.MaxHeight} {
				for _, weight := range []float64{models.MinWeight, 80, 150, models.MaxWeight} {
					for _, activity := range []models.ActivityLevel{models.Sedentary, models.Light, models.Moderate, models.Active} {
						for _, level := range []models.TrainingLevel{models.Beginner, models.Intermediate, models.Advanced} {
							users = append(users, models.User{
								Age:           age,
								Gender:        gender,
								Height:        height,
								Weight:        weight,
								ActivityLevel: activity,
								Goal:          models.Maintain,
								TrainingLevel: level,
							})
						}
					}
				}
			}
		}
	}
	return users
}

func TestComputeProperties(t *testing.T) {
	for _, u := range profiles() {
		for _, goal := range []models.Goal{models.Lose, models.Maintain, models.Gain} {
			u.Goal = goal
			r := Compute(u)

			require.Equal(t, r, Compute(u), "compute must be deterministic for %+v", u)

			require.GreaterOrEqual(t, r.ProteinGrams, 0)
			require.GreaterOrEqual(t, r.CarbGrams, 0)
			require.GreaterOrEqual(t, r.FatGrams, 0)

			diff := math.Abs(float64(r.MacroCalories() - r.GoalCalories))
			require.LessOrEqual(t, diff, 0.02*float64(r.GoalCalories), "macros drift from goal for %+v: %+v", u, r)
		}
	}
}

func TestProfilesAreValid(t *testing.T) {
	for _, u := range profiles() {
		u.TrainingFrequency = 3
		require.NoError(t, u.Validate())
	}
}

// The smallest profile the form accepts still gets positive targets.
func TestComputeSmallestValidProfile(t *testing.T) {
	u := models.User{
		Age:           models.MaxAge,
		Gender:        models.Female,
		Height:        models.MinHeight,
		Weight:        models.MinWeight,
		ActivityLevel: models.Sedentary,
		Goal:          models.Lose,
		TrainingLevel: models.Beginner,
	}
	require.NoError(t, u.Validate())

	r := Compute(u)
	assert.Greater(t, r.BMR, 0.0)
	assert.Greater(t, r.GoalCalories, 0)
	assert.Less(t, r.GoalCalories, r.MaintenanceCalories)
}

func TestGoalOrdering(t *testing.T) {
	for _, u := range profiles() {
		u.Goal = models.Lose
		lose := Compute(u).GoalCalories
		u.Goal = models.Maintain
		maintain := Compute(u).GoalCalories
		u.Goal = models.Gain
		gain := Compute(u).GoalCalories

		require.Less(t, lose, maintain, "%+v", u)
		require.Less(t, maintain, gain, "%+v", u)
	}
}
