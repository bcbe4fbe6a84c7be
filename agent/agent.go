// Package agent generates meal and workout plans with an LLM.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/tmc/langchaingo/chains"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/memory"
	"github.com/tmc/langchaingo/prompts"

	"github.com/aguxez/fitplan/models"
	"github.com/aguxez/fitplan/planner"
)

const (
	defaultCurrency    = "EGP"
	defaultTemperature = 0.7
	// historyWindow is how many past generations are fed back into prompts.
	historyWindow = 5
)

var (
	ErrEmptyPlan      = errors.New("generative service returned an empty plan")
	ErrUnexpectedType = errors.New("unexpected chain output type")
)

// PlanAgent implements planner.Generator on top of two LLM chains sharing
// one conversation window.
type PlanAgent struct {
	mealChain    *chains.LLMChain
	workoutChain *chains.LLMChain
	bufferMemory *memory.ConversationWindowBuffer
	pantry       *models.Pantry
	currency     string
	temperature  float64
}

var _ planner.Generator = (*PlanAgent)(nil)

type Option func(*PlanAgent)

// WithCurrency sets the currency meal prices are estimated in.
func WithCurrency(currency string) Option {
	return func(a *PlanAgent) {
		if currency != "" {
			a.currency = currency
		}
	}
}

func WithTemperature(t float64) Option {
	return func(a *PlanAgent) {
		a.temperature = t
	}
}

// NewPlanAgent builds the agent. pantry may be nil when no food list is
// watched.
func NewPlanAgent(llm llms.Model, pantry *models.Pantry, opts ...Option) *PlanAgent {
	a := &PlanAgent{
		mealChain: chains.NewLLMChain(
			llm,
			prompts.NewPromptTemplate(mealPlanTemplate, []string{
				"Profile", "Targets", "Budget", "Foods", "Restrictions", "History", "Days", "Currency",
			}),
		),
		workoutChain: chains.NewLLMChain(
			llm,
			prompts.NewPromptTemplate(workoutPlanTemplate, []string{
				"Profile", "Targets", "Training", "History",
			}),
		),
		// Remembers only the last historyWindow generations.
		bufferMemory: memory.NewConversationWindowBuffer(historyWindow),
		pantry:       pantry,
		currency:     defaultCurrency,
		temperature:  defaultTemperature,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *PlanAgent) GenerateMealPlan(ctx context.Context, user models.User, results models.CalorieResults) (models.MealPlan, error) {
	history, err := a.history(ctx)
	if err != nil {
		return models.MealPlan{}, err
	}

	input := map[string]any{
		"Profile":      describeProfile(user),
		"Targets":      describeTargets(results),
		"Budget":       describeBudget(user, a.currency),
		"Foods":        a.foods(user),
		"Restrictions": orNone(user.DietaryRestrictions),
		"History":      history,
		"Days":         models.DaysPerWeek,
		"Currency":     a.currency,
	}

	text, err := a.call(ctx, a.mealChain, input)
	if err != nil {
		return models.MealPlan{}, fmt.Errorf("generating meal plan: %w", err)
	}

	plan, err := parseMealPlan(text, results)
	if err != nil {
		return models.MealPlan{}, fmt.Errorf("generating meal plan: %w", err)
	}

	a.remember(ctx, fmt.Sprintf("meal plan, %s goal, %d kcal", user.Goal, results.GoalCalories), plan.Name.In(models.English))
	return plan, nil
}

func (a *PlanAgent) GenerateWorkoutPlans(ctx context.Context, user models.User, results models.CalorieResults) ([]models.WorkoutPlan, error) {
	history, err := a.history(ctx)
	if err != nil {
		return nil, err
	}

	input := map[string]any{
		"Profile":  describeProfile(user),
		"Targets":  describeTargets(results),
		"Training": describeTraining(user),
		"History":  history,
	}

	text, err := a.call(ctx, a.workoutChain, input)
	if err != nil {
		return nil, fmt.Errorf("generating workout plans: %w", err)
	}

	plans, err := parseWorkoutPlans(text)
	if err != nil {
		return nil, fmt.Errorf("generating workout plans: %w", err)
	}

	names := make([]string, 0, len(plans))
	for _, p := range plans {
		names = append(names, p.Name)
	}
	a.remember(ctx, fmt.Sprintf("workout plan, %s level, %d sessions", user.TrainingLevel, user.TrainingFrequency), strings.Join(names, "; "))
	return plans, nil
}

func (a *PlanAgent) call(ctx context.Context, chain *chains.LLMChain, input map[string]any) (string, error) {
	result, err := chains.Call(ctx, chain, input, chains.WithTemperature(a.temperature))
	if err != nil {
		return "", fmt.Errorf("calling chain: %w", classify(err))
	}

	text, ok := result[chain.OutputKey].(string)
	if !ok {
		return "", fmt.Errorf("%w: %T", ErrUnexpectedType, result[chain.OutputKey])
	}
	return text, nil
}

func (a *PlanAgent) history(ctx context.Context) (string, error) {
	vars, err := a.bufferMemory.LoadMemoryVariables(ctx, map[string]any{})
	if err != nil {
		return "", fmt.Errorf("loading memory variables: %w", err)
	}
	history, _ := vars["history"].(string)
	return orNone(history), nil
}

// remember stores a summary of a generation. Errors are logged, not
// returned.
func (a *PlanAgent) remember(ctx context.Context, request, plan string) {
	err := a.bufferMemory.SaveContext(ctx,
		map[string]any{"request": request},
		map[string]any{"plan": plan},
	)
	if err != nil {
		log.WithError(err).Warn("Error saving to memory")
	}
}

func (a *PlanAgent) foods(user models.User) string {
	var parts []string
	if user.AvailableFoods != "" {
		parts = append(parts, user.AvailableFoods)
	}
	if a.pantry != nil {
		if names := a.pantry.Names(); names != "" {
			parts = append(parts, names)
		}
	}
	return orNone(strings.Join(parts, ", "))
}

// classify tags rejected-credential replies so the orchestrator can show
// configuration guidance.
func classify(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "status code: 401") || strings.Contains(msg, "Incorrect API key") {
		return fmt.Errorf("%w: %w", planner.ErrInvalidAPIKey, err)
	}
	return err
}
