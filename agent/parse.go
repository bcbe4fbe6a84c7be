package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/aguxez/fitplan/models"
)

// totalsTolerance is how far stated daily totals may drift from the sum of
// the meals (kcal or grams) before a warning is logged.
const totalsTolerance = 10

// cleanResponse strips markdown fences and surrounding prose, leaving the
// outermost JSON object.
func cleanResponse(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.TrimSpace(s)

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start != -1 && end > start {
		s = s[start : end+1]
	}
	return s
}

func parseMealPlan(text string, results models.CalorieResults) (models.MealPlan, error) {
	var plan models.MealPlan
	if err := json.Unmarshal([]byte(cleanResponse(text)), &plan); err != nil {
		return models.MealPlan{}, fmt.Errorf("unmarshalling response: %w", err)
	}

	if len(plan.WeeklySchedule) == 0 {
		return models.MealPlan{}, ErrEmptyPlan
	}
	if len(plan.WeeklySchedule) != models.DaysPerWeek {
		log.WithField("days", len(plan.WeeklySchedule)).Warn("Meal plan does not cover a full week")
	}

	// Goals come from the local calculation when the model leaves them out.
	if plan.DailyCalorieGoal == 0 {
		plan.DailyCalorieGoal = float64(results.GoalCalories)
	}
	if plan.DailyMacroGoals == (models.Macros{}) {
		plan.DailyMacroGoals = models.Macros{
			Protein: float64(results.ProteinGrams),
			Carbs:   float64(results.CarbGrams),
			Fat:     float64(results.FatGrams),
		}
	}

	for i, day := range plan.WeeklySchedule {
		if day.DailyTotals == (models.Totals{}) {
			plan.WeeklySchedule[i].DailyTotals = day.SumMeals()
			continue
		}
		if !day.TotalsMatch(totalsTolerance) {
			log.WithFields(log.Fields{
				"day":    day.Day.In(models.English),
				"stated": day.DailyTotals,
				"summed": day.SumMeals(),
			}).Warn("Daily totals do not match the meals")
		}
	}

	return plan, nil
}

type workoutPlansResponse struct {
	Plans []models.WorkoutPlan `json:"plans"`
}

func parseWorkoutPlans(text string) ([]models.WorkoutPlan, error) {
	var resp workoutPlansResponse
	if err := json.Unmarshal([]byte(cleanResponse(text)), &resp); err != nil {
		return nil, fmt.Errorf("unmarshalling response: %w", err)
	}

	if len(resp.Plans) == 0 {
		return nil, ErrEmptyPlan
	}
	for _, p := range resp.Plans {
		if len(p.WeeklySchedule) == 0 {
			return nil, fmt.Errorf("%w: workout plan %q has no training days", ErrEmptyPlan, p.Name)
		}
	}
	return resp.Plans, nil
}
