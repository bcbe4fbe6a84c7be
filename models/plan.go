package models

import "math"

// Meal is a single dish in a day of the meal plan.
type Meal struct {
	Name           LocalizedText `json:"name"`
	Ingredients    LocalizedList `json:"ingredients"`
	Instructions   LocalizedText `json:"instructions"`
	Calories       float64       `json:"calories"`
	Macros         Macros        `json:"macros"`
	Portion        string        `json:"portion"`
	EstimatedPrice string        `json:"estimatedPrice"`
}

// DayMeals is the fixed breakfast/lunch/dinner set plus any snacks.
type DayMeals struct {
	Breakfast Meal   `json:"breakfast"`
	Lunch     Meal   `json:"lunch"`
	Dinner    Meal   `json:"dinner"`
	Snacks    []Meal `json:"snacks"`
}

// All returns the meals of the day in serving order.
func (d DayMeals) All() []Meal {
	meals := make([]Meal, 0, 3+len(d.Snacks))
	meals = append(meals, d.Breakfast, d.Lunch, d.Dinner)
	return append(meals, d.Snacks...)
}

type DailyMealPlan struct {
	Day         LocalizedText `json:"day"`
	Meals       DayMeals      `json:"meals"`
	DailyTotals Totals        `json:"dailyTotals"`
}

// SumMeals adds up calories and macros over every meal of the day.
func (d DailyMealPlan) SumMeals() Totals {
	var (
		t      Totals
		macros Macros
	)
	for _, m := range d.Meals.All() {
		t.Calories += m.Calories
		macros = macros.Add(m.Macros)
	}
	t.Protein, t.Carbs, t.Fat = macros.Protein, macros.Carbs, macros.Fat
	return t
}

// TotalsMatch reports whether the stated daily totals agree with the sum of
// the meals, each field within tolerance (absolute units).
func (d DailyMealPlan) TotalsMatch(tolerance float64) bool {
	sum := d.SumMeals()
	return math.Abs(sum.Calories-d.DailyTotals.Calories) <= tolerance &&
		math.Abs(sum.Protein-d.DailyTotals.Protein) <= tolerance &&
		math.Abs(sum.Carbs-d.DailyTotals.Carbs) <= tolerance &&
		math.Abs(sum.Fat-d.DailyTotals.Fat) <= tolerance
}

// DaysPerWeek is the number of daily entries a full plan carries.
const DaysPerWeek = 7

type MealPlan struct {
	Name             LocalizedText   `json:"name"`
	Description      LocalizedText   `json:"description"`
	DailyCalorieGoal float64         `json:"dailyCalorieGoal"`
	DailyMacroGoals  Macros          `json:"dailyMacroGoals"`
	WeeklySchedule   []DailyMealPlan `json:"weeklySchedule"`
}

type ExerciseAlternative struct {
	Name      string `json:"name"`
	ImageHint string `json:"imageHint"`
}

type Exercise struct {
	Name           string                `json:"name"`
	Sets           string                `json:"sets"`
	Reps           string                `json:"reps"`
	Rest           string                `json:"rest"`
	VideoHint      string                `json:"videoHint"`
	ImageHint      string                `json:"imageHint"`
	Instructions   LocalizedText         `json:"instructions"`
	CommonMistakes LocalizedText         `json:"commonMistakes"`
	Alternatives   []ExerciseAlternative `json:"alternatives"`
}

type DailyWorkout struct {
	Day           string     `json:"day"`
	TargetMuscles string     `json:"targetMuscles"`
	Exercises     []Exercise `json:"exercises"`
}

type WorkoutPlan struct {
	Name           string         `json:"name"`
	Description    LocalizedText  `json:"description"`
	DaySplit       string         `json:"daySplit"`
	WeeklySchedule []DailyWorkout `json:"weeklySchedule"`
}

// Clone returns a copy sharing no maps or slices with p.
func (p MealPlan) Clone() MealPlan {
	c := p
	c.Name = p.Name.Clone()
	c.Description = p.Description.Clone()
	if p.WeeklySchedule != nil {
		c.WeeklySchedule = make([]DailyMealPlan, len(p.WeeklySchedule))
		for i, d := range p.WeeklySchedule {
			c.WeeklySchedule[i] = d.Clone()
		}
	}
	return c
}

func (d DailyMealPlan) Clone() DailyMealPlan {
	c := d
	c.Day = d.Day.Clone()
	c.Meals.Breakfast = d.Meals.Breakfast.Clone()
	c.Meals.Lunch = d.Meals.Lunch.Clone()
	c.Meals.Dinner = d.Meals.Dinner.Clone()
	if d.Meals.Snacks != nil {
		c.Meals.Snacks = make([]Meal, len(d.Meals.Snacks))
		for i, m := range d.Meals.Snacks {
			c.Meals.Snacks[i] = m.Clone()
		}
	}
	return c
}

func (m Meal) Clone() Meal {
	c := m
	c.Name = m.Name.Clone()
	c.Ingredients = m.Ingredients.Clone()
	c.Instructions = m.Instructions.Clone()
	return c
}

// Clone returns a copy sharing no maps or slices with p.
func (p WorkoutPlan) Clone() WorkoutPlan {
	c := p
	c.Description = p.Description.Clone()
	if p.WeeklySchedule != nil {
		c.WeeklySchedule = make([]DailyWorkout, len(p.WeeklySchedule))
		for i, d := range p.WeeklySchedule {
			c.WeeklySchedule[i] = d.Clone()
		}
	}
	return c
}

func (d DailyWorkout) Clone() DailyWorkout {
	c := d
	if d.Exercises != nil {
		c.Exercises = make([]Exercise, len(d.Exercises))
		for i, e := range d.Exercises {
			c.Exercises[i] = e.Clone()
		}
	}
	return c
}

func (e Exercise) Clone() Exercise {
	c := e
	c.Instructions = e.Instructions.Clone()
	c.CommonMistakes = e.CommonMistakes.Clone()
	if e.Alternatives != nil {
		c.Alternatives = append([]ExerciseAlternative{}, e.Alternatives...)
	}
	return c
}
