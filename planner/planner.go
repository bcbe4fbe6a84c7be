// Package planner drives a user from profile entry to generated plans.
//
// The Orchestrator is a small state machine:
//
//	calculator --Submit--> results --Generate--> generating --ok--> plans
//	     ^                   |  ^                    |                |
//	     +---Recalculate-----+  +-------failure------+                |
//	     +----------------------Recalculate---------------------------+
//
// Only one generation can be in flight; the generating state itself is the
// guard. The two plan requests run strictly one after the other and either
// both results are kept or neither is.
package planner

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/aguxez/fitplan/calorie"
	"github.com/aguxez/fitplan/models"
)

type State string

const (
	StateCalculator State = "calculator"
	StateResults    State = "results"
	StateGenerating State = "generating"
	StatePlans      State = "plans"
)

var (
	// ErrGenerating is returned when a profile is submitted while plans are
	// being generated.
	ErrGenerating = errors.New("plan generation in progress")
	// ErrNotReady is returned by Generate when there are no computed results
	// to generate from, or a generation is already running. Nothing changes.
	ErrNotReady = errors.New("no calorie results to generate plans from")
	// ErrNoWorkoutPlans is reported when the service answers with an empty
	// workout plan list.
	ErrNoWorkoutPlans = errors.New("no workout plans were generated")
	// ErrGeneratorPanic wraps a panic raised by the Generator.
	ErrGeneratorPanic = errors.New("plan generator panicked")
)

// Generator produces plans for a user and their computed targets.
type Generator interface {
	GenerateMealPlan(ctx context.Context, user models.User, results models.CalorieResults) (models.MealPlan, error)
	GenerateWorkoutPlans(ctx context.Context, user models.User, results models.CalorieResults) ([]models.WorkoutPlan, error)
}

// StatusFunc is notified each time the generation step changes.
type StatusFunc func(Step)

type Option func(*Orchestrator)

func WithStatusListener(fn StatusFunc) Option {
	return func(o *Orchestrator) {
		o.onStatus = fn
	}
}

func WithLanguage(lang models.Language) Option {
	return func(o *Orchestrator) {
		o.lang = lang
	}
}

// Orchestrator owns the current user, results and plans.
type Orchestrator struct {
	gen      Generator
	onStatus StatusFunc

	mu           sync.RWMutex
	state        State
	lang         models.Language
	user         *models.User
	results      *models.CalorieResults
	mealPlan     *models.MealPlan
	workoutPlans []models.WorkoutPlan
	step         Step
	errMsg       string
	generationID string
}

func New(gen Generator, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		gen:   gen,
		state: StateCalculator,
		lang:  models.English,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Submit computes fresh results for u, drops any plans held for the
// previous profile and moves to the results state.
func (o *Orchestrator) Submit(u models.User) (models.CalorieResults, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == StateGenerating {
		return models.CalorieResults{}, ErrGenerating
	}

	results := calorie.Compute(u)

	o.user = &u
	o.results = &results
	o.mealPlan = nil
	o.workoutPlans = nil
	o.errMsg = ""
	o.generationID = ""
	o.transition(StateResults)

	log.WithFields(log.Fields{
		"goal":          u.Goal,
		"goal_calories": results.GoalCalories,
		"protein_g":     results.ProteinGrams,
		"carbs_g":       results.CarbGrams,
		"fat_g":         results.FatGrams,
	}).Info("Calorie targets computed")

	return results, nil
}

// Recalculate returns to the profile form. The last user and results stay
// available to pre-fill it.
func (o *Orchestrator) Recalculate() {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch o.state {
	case StateResults, StatePlans:
		o.transition(StateCalculator)
	}
}

// SetLanguage switches the language used for status text.
func (o *Orchestrator) SetLanguage(lang models.Language) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lang = lang
}

type generated struct {
	mealPlan     models.MealPlan
	workoutPlans []models.WorkoutPlan
}

// Generate requests the meal plan and then the workout plans. On success
// both are stored and the state becomes plans; on any failure nothing is
// stored, an error message is set and the state returns to results. The
// returned error is the underlying failure, for logging. There is no
// cancellation path: ctx is handed to the generator as is.
func (o *Orchestrator) Generate(ctx context.Context) error {
	o.mu.Lock()
	if o.state != StateResults || o.user == nil || o.results == nil {
		state := o.state
		o.mu.Unlock()
		log.WithField("state", state).Debug("Ignoring plan generation request")
		return ErrNotReady
	}
	user, results := *o.user, *o.results
	id := uuid.NewString()
	o.generationID = id
	o.errMsg = ""
	o.transition(StateGenerating)
	o.mu.Unlock()

	logger := log.WithField("generation_id", id)
	logger.Info("Generating plans...")

	plans, err := o.generate(ctx, user, results)

	o.mu.Lock()
	if err != nil {
		o.errMsg = ErrorMessage(err)
		o.transition(StateResults)
	} else {
		mealPlan := plans.mealPlan.Clone()
		o.mealPlan = &mealPlan
		o.workoutPlans = make([]models.WorkoutPlan, 0, len(plans.workoutPlans))
		for _, p := range plans.workoutPlans {
			o.workoutPlans = append(o.workoutPlans, p.Clone())
		}
		o.transition(StatePlans)
	}
	changed := o.setStep(StepIdle)
	o.mu.Unlock()
	o.notify(changed, StepIdle)

	if err != nil {
		logger.WithError(err).Error("Plan generation failed")
		return err
	}
	logger.WithField("workout_plans", len(plans.workoutPlans)).Info("Plans generated")
	return nil
}

// generate runs the two requests in sequence. The first failure ends the
// sequence. A panicking generator is reported as a failure so the state
// machine always leaves generating.
func (o *Orchestrator) generate(ctx context.Context, user models.User, results models.CalorieResults) (plans generated, err error) {
	defer func() {
		if r := recover(); r != nil {
			plans, err = generated{}, fmt.Errorf("%w: %v", ErrGeneratorPanic, r)
		}
	}()

	o.updateStep(StepMealPlan)
	mealPlan, err := o.gen.GenerateMealPlan(ctx, user, results)
	if err != nil {
		return generated{}, err
	}

	o.updateStep(StepWorkoutPlan)
	workoutPlans, err := o.gen.GenerateWorkoutPlans(ctx, user, results)
	if err != nil {
		return generated{}, err
	}
	if len(workoutPlans) == 0 {
		return generated{}, ErrNoWorkoutPlans
	}

	return generated{mealPlan: mealPlan, workoutPlans: workoutPlans}, nil
}

func (o *Orchestrator) updateStep(step Step) {
	o.mu.Lock()
	changed := o.setStep(step)
	o.mu.Unlock()
	o.notify(changed, step)
}

// setStep must be called with o.mu held.
func (o *Orchestrator) setStep(step Step) bool {
	if o.step == step {
		return false
	}
	o.step = step
	return true
}

// notify runs the status listener outside the lock so it may read a
// Snapshot.
func (o *Orchestrator) notify(changed bool, step Step) {
	if changed && o.onStatus != nil {
		o.onStatus(step)
	}
}

// transition must be called with o.mu held.
func (o *Orchestrator) transition(to State) {
	if o.state == to {
		return
	}
	log.WithFields(log.Fields{"from": o.state, "to": to}).Debug("State transition")
	o.state = to
}

func (o *Orchestrator) State() State {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state
}

// Snapshot is a deep copy of everything a display needs.
type Snapshot struct {
	State        State                  `json:"state"`
	Language     models.Language        `json:"language"`
	Direction    string                 `json:"direction"`
	User         *models.User           `json:"user,omitempty"`
	Results      *models.CalorieResults `json:"results,omitempty"`
	MealPlan     *models.MealPlan       `json:"mealPlan,omitempty"`
	WorkoutPlans []models.WorkoutPlan   `json:"workoutPlans"`
	Step         Step                   `json:"step,omitempty"`
	Status       string                 `json:"status,omitempty"`
	Error        string                 `json:"error,omitempty"`
	GenerationID string                 `json:"generationId,omitempty"`
}

func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.RLock()
	defer o.mu.RUnlock()

	s := Snapshot{
		State:        o.state,
		Language:     o.lang,
		Direction:    o.lang.Direction(),
		WorkoutPlans: make([]models.WorkoutPlan, 0, len(o.workoutPlans)),
		Step:         o.step,
		Status:       o.step.Text(o.lang),
		Error:        o.errMsg,
		GenerationID: o.generationID,
	}
	if o.user != nil {
		u := *o.user
		s.User = &u
	}
	if o.results != nil {
		r := *o.results
		s.Results = &r
	}
	for _, p := range o.workoutPlans {
		s.WorkoutPlans = append(s.WorkoutPlans, p.Clone())
	}
	if o.mealPlan != nil {
		m := o.mealPlan.Clone()
		s.MealPlan = &m
	}
	return s
}

func (s State) String() string {
	return string(s)
}
