package models

import (
	"errors"
	"fmt"
)

type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

type ActivityLevel string

const (
	Sedentary ActivityLevel = "sedentary"
	Light     ActivityLevel = "light"
	Moderate  ActivityLevel = "moderate"
	Active    ActivityLevel = "active"
)

type Goal string

const (
	Lose     Goal = "lose"
	Maintain Goal = "maintain"
	Gain     Goal = "gain"
)

type TrainingLevel string

const (
	Beginner     TrainingLevel = "beginner"
	Intermediate TrainingLevel = "intermediate"
	Advanced     TrainingLevel = "advanced"
)

type BudgetLevel string

const (
	BudgetLow    BudgetLevel = "low"
	BudgetMedium BudgetLevel = "medium"
	BudgetHigh   BudgetLevel = "high"
)

// MaxTrainingFrequency is the highest number of weekly sessions the form accepts.
const MaxTrainingFrequency = 14

// Accepted ranges for the biometric fields. Inside them the calorie targets
// stay positive and ordered by goal.
const (
	MinAge    = 10
	MaxAge    = 120
	MinHeight = 120.0 // cm
	MaxHeight = 250.0
	MinWeight = 30.0 // kg
	MaxWeight = 350.0
)

var ErrInvalidUser = errors.New("invalid user profile")

// User is the biometric and goal snapshot a calculation runs on. It is
// replaced wholesale whenever the user edits the form.
type User struct {
	Age               int           `json:"age" yaml:"age"`
	Gender            Gender        `json:"gender" yaml:"gender"`
	Height            float64       `json:"height" yaml:"height"` // cm
	Weight            float64       `json:"weight" yaml:"weight"` // kg
	ActivityLevel     ActivityLevel `json:"activityLevel" yaml:"activity_level"`
	Goal              Goal          `json:"goal" yaml:"goal"`
	TrainingLevel     TrainingLevel `json:"trainingLevel" yaml:"training_level"`
	TrainingFrequency int           `json:"trainingFrequency" yaml:"training_frequency"`

	// Optional budget and preference fields. Zero values mean "not given".
	FoodBudget          float64     `json:"foodBudget,omitempty" yaml:"food_budget,omitempty"`
	BudgetLevel         BudgetLevel `json:"budgetLevel,omitempty" yaml:"budget_level,omitempty"`
	AvailableFoods      string      `json:"availableFoods,omitempty" yaml:"available_foods,omitempty"`
	DietaryRestrictions string      `json:"dietaryRestrictions,omitempty" yaml:"dietary_restrictions,omitempty"`
}

// DefaultUser is what an empty form is pre-filled with.
func DefaultUser() User {
	return User{
		Age:               30,
		Gender:            Male,
		Height:            175,
		Weight:            75,
		ActivityLevel:     Moderate,
		Goal:              Maintain,
		TrainingLevel:     Beginner,
		TrainingFrequency: 3,
		BudgetLevel:       BudgetMedium,
	}
}

// Validate runs the checks the form boundary owns. The calorie engine
// assumes a user that passed them.
func (u User) Validate() error {
	var errs []error

	if u.Age < MinAge || u.Age > MaxAge {
		errs = append(errs, fmt.Errorf("age must be between %d and %d, got %d", MinAge, MaxAge, u.Age))
	}
	if u.Height < MinHeight || u.Height > MaxHeight {
		errs = append(errs, fmt.Errorf("height must be between %v and %v cm, got %v", MinHeight, MaxHeight, u.Height))
	}
	if u.Weight < MinWeight || u.Weight > MaxWeight {
		errs = append(errs, fmt.Errorf("weight must be between %v and %v kg, got %v", MinWeight, MaxWeight, u.Weight))
	}

	switch u.Gender {
	case Male, Female:
	default:
		errs = append(errs, fmt.Errorf("unknown gender %q", u.Gender))
	}

	switch u.ActivityLevel {
	case Sedentary, Light, Moderate, Active:
	default:
		errs = append(errs, fmt.Errorf("unknown activity level %q", u.ActivityLevel))
	}

	switch u.Goal {
	case Lose, Maintain, Gain:
	default:
		errs = append(errs, fmt.Errorf("unknown goal %q", u.Goal))
	}

	switch u.TrainingLevel {
	case Beginner, Intermediate, Advanced:
	default:
		errs = append(errs, fmt.Errorf("unknown training level %q", u.TrainingLevel))
	}

	if u.TrainingFrequency < 0 || u.TrainingFrequency > MaxTrainingFrequency {
		errs = append(errs, fmt.Errorf("training frequency must be between 0 and %d, got %d", MaxTrainingFrequency, u.TrainingFrequency))
	}

	switch u.BudgetLevel {
	case "", BudgetLow, BudgetMedium, BudgetHigh:
	default:
		errs = append(errs, fmt.Errorf("unknown budget level %q", u.BudgetLevel))
	}

	if u.FoodBudget < 0 {
		errs = append(errs, fmt.Errorf("food budget cannot be negative, got %v", u.FoodBudget))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidUser, errors.Join(errs...))
	}
	return nil
}

// ProgressEntry is a dated weigh-in.
type ProgressEntry struct {
	Date   string  `json:"date"` // YYYY-MM-DD
	Weight float64 `json:"weight"`
}

type ReportFrequency string

const (
	ReportNever    ReportFrequency = "never"
	ReportWeekly   ReportFrequency = "weekly"
	ReportBiWeekly ReportFrequency = "bi-weekly"
	ReportMonthly  ReportFrequency = "monthly"
)

// UserAccount is the stored shape of a registered user. Accounts are not
// persisted by this module; the type documents what a store would keep.
type UserAccount struct {
	User
	UID             string          `json:"uid"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	CalorieResults  *CalorieResults `json:"calorieResults"`
	MealPlan        *MealPlan       `json:"mealPlan"`
	WorkoutPlans    []WorkoutPlan   `json:"workoutPlans"`
	Progress        []ProgressEntry `json:"progress"`
	ReportFrequency ReportFrequency `json:"reportFrequency"`
	LastReportDate  *string         `json:"lastReportDate"`
}
