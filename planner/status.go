package planner

import "github.com/aguxez/fitplan/models"

// Step is the part of generation currently running. It is for display
// only; no transition depends on it.
type Step string

const (
	StepIdle        Step = ""
	StepMealPlan    Step = "meal_plan"
	StepWorkoutPlan Step = "workout_plan"
)

var stepText = map[Step]models.LocalizedText{
	StepMealPlan: {
		models.English: "Generating your weekly meal plan...",
		models.Arabic:  "جاري إنشاء خطة الوجبات الأسبوعية...",
	},
	StepWorkoutPlan: {
		models.English: "Generating your workout plan...",
		models.Arabic:  "جاري إنشاء خطة التمارين...",
	},
}

// Text is the status line shown while the step runs.
func (s Step) Text(lang models.Language) string {
	return stepText[s].In(lang)
}
