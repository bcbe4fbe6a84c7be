package agent

import (
	"fmt"
	"strings"

	"github.com/aguxez/fitplan/models"
)

func describeProfile(u models.User) string {
	var b strings.Builder
	b.WriteString("USER PROFILE:\n")
	fmt.Fprintf(&b, "- Age: %d years\n", u.Age)
	fmt.Fprintf(&b, "- Gender: %s\n", u.Gender)
	fmt.Fprintf(&b, "- Height: %.0f cm\n", u.Height)
	fmt.Fprintf(&b, "- Weight: %.1f kg\n", u.Weight)
	fmt.Fprintf(&b, "- Activity Level: %s\n", u.ActivityLevel)
	fmt.Fprintf(&b, "- Goal: %s weight\n", u.Goal)
	return b.String()
}

func describeTargets(r models.CalorieResults) string {
	var b strings.Builder
	b.WriteString("DAILY TARGETS:\n")
	fmt.Fprintf(&b, "- BMR: %.0f kcal\n", r.BMR)
	fmt.Fprintf(&b, "- Maintenance: %d kcal\n", r.MaintenanceCalories)
	fmt.Fprintf(&b, "- Calories: %d kcal\n", r.GoalCalories)
	fmt.Fprintf(&b, "- Protein: %dg\n", r.ProteinGrams)
	fmt.Fprintf(&b, "- Carbs: %dg\n", r.CarbGrams)
	fmt.Fprintf(&b, "- Fat: %dg\n", r.FatGrams)
	return b.String()
}

func describeTraining(u models.User) string {
	var b strings.Builder
	b.WriteString("TRAINING:\n")
	fmt.Fprintf(&b, "- Level: %s\n", u.TrainingLevel)
	fmt.Fprintf(&b, "- Sessions per week: %d\n", u.TrainingFrequency)
	return b.String()
}

func describeBudget(u models.User, currency string) string {
	if u.FoodBudget <= 0 && u.BudgetLevel == "" {
		return "BUDGET: not specified"
	}

	var b strings.Builder
	b.WriteString("BUDGET:\n")
	if u.FoodBudget > 0 {
		fmt.Fprintf(&b, "- Weekly food budget: %.0f %s\n", u.FoodBudget, currency)
	}
	if u.BudgetLevel != "" {
		fmt.Fprintf(&b, "- Budget level: %s\n", u.BudgetLevel)
	}
	return b.String()
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "none"
	}
	return s
}
