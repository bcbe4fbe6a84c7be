package main

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aguxez/fitplan/models"
)

const (
	fieldAge = iota
	fieldGender
	fieldHeight
	fieldWeight
	fieldActivity
	fieldGoal
	fieldTrainingLevel
	fieldTrainingFrequency
	fieldFoodBudget
	fieldBudgetLevel
	fieldAvailableFoods
	fieldRestrictions
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldAge:               "Age",
	fieldGender:            "Gender (male/female)",
	fieldHeight:            "Height (cm)",
	fieldWeight:            "Weight (kg)",
	fieldActivity:          "Activity (sedentary/light/moderate/active)",
	fieldGoal:              "Goal (lose/maintain/gain)",
	fieldTrainingLevel:     "Training level (beginner/intermediate/advanced)",
	fieldTrainingFrequency: "Sessions per week",
	fieldFoodBudget:        "Weekly food budget (optional)",
	fieldBudgetLevel:       "Budget level (low/medium/high, optional)",
	fieldAvailableFoods:    "Available foods (optional)",
	fieldRestrictions:      "Dietary restrictions (optional)",
}

var (
	labelStyle   = lipgloss.NewStyle().Width(48)
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

// form is the profile entry screen.
type form struct {
	inputs [fieldCount]textinput.Model
	focus  int
}

func newForm(u models.User) form {
	var f form
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = "> "
		in.CharLimit = 120
		in.Width = 40
		f.inputs[i] = in
	}
	f.fill(u)
	f.inputs[0].Focus()
	return f
}

func (f *form) fill(u models.User) {
	f.inputs[fieldAge].SetValue(strconv.Itoa(u.Age))
	f.inputs[fieldGender].SetValue(string(u.Gender))
	f.inputs[fieldHeight].SetValue(formatNumber(u.Height))
	f.inputs[fieldWeight].SetValue(formatNumber(u.Weight))
	f.inputs[fieldActivity].SetValue(string(u.ActivityLevel))
	f.inputs[fieldGoal].SetValue(string(u.Goal))
	f.inputs[fieldTrainingLevel].SetValue(string(u.TrainingLevel))
	f.inputs[fieldTrainingFrequency].SetValue(strconv.Itoa(u.TrainingFrequency))
	f.inputs[fieldFoodBudget].SetValue("")
	if u.FoodBudget > 0 {
		f.inputs[fieldFoodBudget].SetValue(formatNumber(u.FoodBudget))
	}
	f.inputs[fieldBudgetLevel].SetValue(string(u.BudgetLevel))
	f.inputs[fieldAvailableFoods].SetValue(u.AvailableFoods)
	f.inputs[fieldRestrictions].SetValue(u.DietaryRestrictions)
}

func (f *form) move(delta int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	return f.inputs[f.focus].Focus()
}

func (f form) Update(msg tea.Msg) (form, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// User parses the inputs and runs the profile checks.
func (f form) User() (models.User, error) {
	value := func(i int) string {
		return strings.TrimSpace(f.inputs[i].Value())
	}

	var (
		u   models.User
		err error
	)
	if u.Age, err = strconv.Atoi(value(fieldAge)); err != nil {
		return models.User{}, errors.New("age must be a whole number")
	}
	if u.Height, err = strconv.ParseFloat(value(fieldHeight), 64); err != nil {
		return models.User{}, errors.New("height must be a number")
	}
	if u.Weight, err = strconv.ParseFloat(value(fieldWeight), 64); err != nil {
		return models.User{}, errors.New("weight must be a number")
	}
	if u.TrainingFrequency, err = strconv.Atoi(value(fieldTrainingFrequency)); err != nil {
		return models.User{}, errors.New("sessions per week must be a whole number")
	}
	if v := value(fieldFoodBudget); v != "" {
		if u.FoodBudget, err = strconv.ParseFloat(v, 64); err != nil {
			return models.User{}, errors.New("food budget must be a number")
		}
	}

	u.Gender = models.Gender(strings.ToLower(value(fieldGender)))
	u.ActivityLevel = models.ActivityLevel(strings.ToLower(value(fieldActivity)))
	u.Goal = models.Goal(strings.ToLower(value(fieldGoal)))
	u.TrainingLevel = models.TrainingLevel(strings.ToLower(value(fieldTrainingLevel)))
	u.BudgetLevel = models.BudgetLevel(strings.ToLower(value(fieldBudgetLevel)))
	u.AvailableFoods = value(fieldAvailableFoods)
	u.DietaryRestrictions = value(fieldRestrictions)

	if err := u.Validate(); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (f form) View() string {
	var b strings.Builder
	for i, in := range f.inputs {
		label := labelStyle.Render(fieldLabels[i])
		if i == f.focus {
			label = focusedStyle.Render(labelStyle.Render(fieldLabels[i]))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label, in.View()))
		b.WriteString("\n")
	}
	return b.String()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
