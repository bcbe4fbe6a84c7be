package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"github.com/aguxez/fitplan/models"
	"github.com/aguxez/fitplan/planner"
)

type theme string

const (
	themeDark  theme = "dark"
	themeLight theme = "light"
)

func (t theme) toggle() theme {
	if t == themeDark {
		return themeLight
	}
	return themeDark
}

// labels holds the fixed UI strings per language.
var labels = map[string]models.LocalizedText{
	"targets":     {models.English: "Your daily targets", models.Arabic: "أهدافك اليومية"},
	"bmr":         {models.English: "BMR", models.Arabic: "معدل الأيض الأساسي"},
	"maintenance": {models.English: "Maintenance", models.Arabic: "سعرات الثبات"},
	"goal":        {models.English: "Goal calories", models.Arabic: "سعرات الهدف"},
	"protein":     {models.English: "Protein", models.Arabic: "بروتين"},
	"carbs":       {models.English: "Carbs", models.Arabic: "كربوهيدرات"},
	"fat":         {models.English: "Fat", models.Arabic: "دهون"},
	"mealPlan":    {models.English: "Meal plan", models.Arabic: "خطة الوجبات"},
	"workouts":    {models.English: "Workout plans", models.Arabic: "خطط التمارين"},
	"breakfast":   {models.English: "Breakfast", models.Arabic: "الفطور"},
	"lunch":       {models.English: "Lunch", models.Arabic: "الغداء"},
	"dinner":      {models.English: "Dinner", models.Arabic: "العشاء"},
	"snack":       {models.English: "Snack", models.Arabic: "وجبة خفيفة"},
	"total":       {models.English: "Daily total", models.Arabic: "المجموع اليومي"},
	"mistakes":    {models.English: "Common mistakes", models.Arabic: "أخطاء شائعة"},
	"alts":        {models.English: "Alternatives", models.Arabic: "بدائل"},
}

func label(key string, lang models.Language) string {
	return labels[key].In(lang)
}

func resultsMarkdown(r models.CalorieResults, lang models.Language) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", label("targets", lang))
	b.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| %s | %.0f kcal |\n", label("bmr", lang), r.BMR)
	fmt.Fprintf(&b, "| %s | %d kcal |\n", label("maintenance", lang), r.MaintenanceCalories)
	fmt.Fprintf(&b, "| %s | %d kcal |\n", label("goal", lang), r.GoalCalories)
	fmt.Fprintf(&b, "| %s | %d g |\n", label("protein", lang), r.ProteinGrams)
	fmt.Fprintf(&b, "| %s | %d g |\n", label("carbs", lang), r.CarbGrams)
	fmt.Fprintf(&b, "| %s | %d g |\n", label("fat", lang), r.FatGrams)
	return b.String()
}

func mealPlanMarkdown(p models.MealPlan, lang models.Language) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s: %s\n\n", label("mealPlan", lang), p.Name.In(lang))
	if d := p.Description.In(lang); d != "" {
		fmt.Fprintf(&b, "%s\n\n", d)
	}

	for _, day := range p.WeeklySchedule {
		fmt.Fprintf(&b, "## %s\n\n", day.Day.In(lang))
		writeMeal(&b, label("breakfast", lang), day.Meals.Breakfast, lang)
		writeMeal(&b, label("lunch", lang), day.Meals.Lunch, lang)
		writeMeal(&b, label("dinner", lang), day.Meals.Dinner, lang)
		for _, snack := range day.Meals.Snacks {
			writeMeal(&b, label("snack", lang), snack, lang)
		}
		t := day.DailyTotals
		fmt.Fprintf(&b, "**%s:** %.0f kcal, P %.0fg, C %.0fg, F %.0fg\n\n",
			label("total", lang), t.Calories, t.Protein, t.Carbs, t.Fat)
	}
	return b.String()
}

func writeMeal(b *strings.Builder, heading string, m models.Meal, lang models.Language) {
	fmt.Fprintf(b, "### %s: %s\n\n", heading, m.Name.In(lang))
	fmt.Fprintf(b, "%.0f kcal, P %.0fg, C %.0fg, F %.0fg", m.Calories, m.Macros.Protein, m.Macros.Carbs, m.Macros.Fat)
	if m.Portion != "" {
		fmt.Fprintf(b, ", %s", m.Portion)
	}
	if m.EstimatedPrice != "" {
		fmt.Fprintf(b, ", %s", m.EstimatedPrice)
	}
	b.WriteString("\n\n")
	for _, ing := range m.Ingredients.In(lang) {
		fmt.Fprintf(b, "- %s\n", ing)
	}
	if ins := m.Instructions.In(lang); ins != "" {
		fmt.Fprintf(b, "\n%s\n", ins)
	}
	b.WriteString("\n")
}

func workoutPlansMarkdown(plans []models.WorkoutPlan, lang models.Language) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", label("workouts", lang))
	for _, p := range plans {
		fmt.Fprintf(&b, "## %s", p.Name)
		if p.DaySplit != "" {
			fmt.Fprintf(&b, " (%s)", p.DaySplit)
		}
		b.WriteString("\n\n")
		if d := p.Description.In(lang); d != "" {
			fmt.Fprintf(&b, "%s\n\n", d)
		}
		for _, day := range p.WeeklySchedule {
			fmt.Fprintf(&b, "### %s: %s\n\n", day.Day, day.TargetMuscles)
			for _, ex := range day.Exercises {
				fmt.Fprintf(&b, "- **%s**: %s x %s, rest %s\n", ex.Name, ex.Sets, ex.Reps, ex.Rest)
				if ins := ex.Instructions.In(lang); ins != "" {
					fmt.Fprintf(&b, "  - %s\n", ins)
				}
				if m := ex.CommonMistakes.In(lang); m != "" {
					fmt.Fprintf(&b, "  - %s: %s\n", label("mistakes", lang), m)
				}
				if len(ex.Alternatives) > 0 {
					names := make([]string, 0, len(ex.Alternatives))
					for _, alt := range ex.Alternatives {
						names = append(names, alt.Name)
					}
					fmt.Fprintf(&b, "  - %s: %s\n", label("alts", lang), strings.Join(names, ", "))
				}
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// snapshotMarkdown renders whatever the current state has to show.
func snapshotMarkdown(s planner.Snapshot) string {
	var parts []string
	if s.Results != nil {
		parts = append(parts, resultsMarkdown(*s.Results, s.Language))
	}
	if s.State == planner.StatePlans {
		if s.MealPlan != nil {
			parts = append(parts, mealPlanMarkdown(*s.MealPlan, s.Language))
		}
		if len(s.WorkoutPlans) > 0 {
			parts = append(parts, workoutPlansMarkdown(s.WorkoutPlans, s.Language))
		}
	}
	return strings.Join(parts, "\n---\n\n")
}

func render(md string, width int, t theme) (string, error) {
	if width > 4 {
		md = wordwrap.String(md, width-4)
	}
	out, err := glamour.Render(indent.String(md, 2), string(t))
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}
