package models

// CalorieResults are the daily targets derived from a User. A new value is
// computed on every submit; existing values are never edited.
type CalorieResults struct {
	BMR                 float64 `json:"bmr"`
	MaintenanceCalories int     `json:"maintenanceCalories"`
	GoalCalories        int     `json:"goalCalories"`
	ProteinGrams        int     `json:"proteinGrams"`
	CarbGrams           int     `json:"carbGrams"`
	FatGrams            int     `json:"fatGrams"`
}

// Energy per gram of each macronutrient.
const (
	KcalPerGramProtein = 4
	KcalPerGramCarbs   = 4
	KcalPerGramFat     = 9
)

// MacroCalories is the caloric equivalent of the macro grams.
func (r CalorieResults) MacroCalories() int {
	return r.ProteinGrams*KcalPerGramProtein + r.CarbGrams*KcalPerGramCarbs + r.FatGrams*KcalPerGramFat
}

// Macros is a protein/carbs/fat breakdown in grams.
type Macros struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

func (m Macros) Add(o Macros) Macros {
	return Macros{
		Protein: m.Protein + o.Protein,
		Carbs:   m.Carbs + o.Carbs,
		Fat:     m.Fat + o.Fat,
	}
}

// Totals is a calorie count plus its macro breakdown.
type Totals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}
