// Package calorie computes daily calorie and macro targets from a user
// profile.
package calorie

import (
	"math"

	"github.com/aguxez/fitplan/models"
)

// Mifflin-St Jeor sex constants.
const (
	maleConstant   = 5
	femaleConstant = -161
)

// Goal adjustment factors applied to maintenance calories.
const (
	DeficitFactor = 0.8
	SurplusFactor = 1.15
)

// FatShare is the fraction of goal calories allocated to fat.
const FatShare = 0.25

// activityMultipliers maps an activity level to its TDEE multiplier.
var activityMultipliers = map[models.ActivityLevel]float64{
	models.Sedentary: 1.2,
	models.Light:     1.375,
	models.Moderate:  1.55,
	models.Active:    1.725,
}

// proteinPerKg is the daily protein target in grams per kg of bodyweight.
var proteinPerKg = map[models.TrainingLevel]float64{
	models.Beginner:     1.6,
	models.Intermediate: 1.8,
	models.Advanced:     2.0,
}

// Compute derives BMR, maintenance and goal calories and the macro split
// for u. The user must already have passed models.User.Validate; enum
// values and numeric ranges are not checked again here.
func Compute(u models.User) models.CalorieResults {
	bmr := BMR(u)
	maintenance := int(math.Round(bmr * activityMultipliers[u.ActivityLevel]))
	goal := GoalCalories(maintenance, u.Goal)
	protein, carbs, fat := Macros(goal, u.Weight, u.TrainingLevel)

	return models.CalorieResults{
		BMR:                 bmr,
		MaintenanceCalories: maintenance,
		GoalCalories:        goal,
		ProteinGrams:        protein,
		CarbGrams:           carbs,
		FatGrams:            fat,
	}
}

// BMR is the Mifflin-St Jeor basal metabolic rate in kcal/day.
func BMR(u models.User) float64 {
	bmr := 10*u.Weight + 6.25*u.Height - 5*float64(u.Age)
	if u.Gender == models.Male {
		return bmr + maleConstant
	}
	return bmr + femaleConstant
}

// GoalCalories adjusts maintenance calories for the weight goal.
func GoalCalories(maintenance int, goal models.Goal) int {
	switch goal {
	case models.Lose:
		return int(math.Round(float64(maintenance) * DeficitFactor))
	case models.Gain:
		return int(math.Round(float64(maintenance) * SurplusFactor))
	default:
		return maintenance
	}
}

// Macros splits goal calories into protein, carb and fat grams. Protein is
// capped so that protein and fat together never exceed the goal, which
// keeps carbs non-negative.
func Macros(goalCalories int, weight float64, level models.TrainingLevel) (protein, carbs, fat int) {
	if goalCalories <= 0 {
		return 0, 0, 0
	}
	kcal := float64(goalCalories)

	fat = int(math.Round(kcal * FatShare / models.KcalPerGramFat))

	perKg, ok := proteinPerKg[level]
	if !ok {
		perKg = proteinPerKg[models.Beginner]
	}
	maxProtein := (kcal - float64(fat*models.KcalPerGramFat)) / models.KcalPerGramProtein
	protein = int(math.Round(math.Min(perKg*weight, maxProtein)))

	remaining := kcal - float64(protein*models.KcalPerGramProtein) - float64(fat*models.KcalPerGramFat)
	carbs = int(math.Max(0, math.Round(remaining/models.KcalPerGramCarbs)))

	return protein, carbs, fat
}
