package agent

// Prompt templates use Go template syntax; every {{.Field}} must be passed
// to chains.Call.

const mealPlanTemplate = `
You are a personal nutritionist writing a weekly meal plan for one person.

{{.Profile}}

{{.Targets}}

{{.Budget}}

Foods the user has at hand (you may suggest similar items): {{.Foods}}
Dietary restrictions: {{.Restrictions}}

Recently generated plans, avoid repeating them:
{{.History}}

Please generate a meal plan that:
1. Covers {{.Days}} days, Monday to Sunday, one entry per day.
2. Has breakfast, lunch and dinner every day plus zero or more snacks.
3. Meets the daily calorie and macro targets as closely as possible.
4. Gives portions in grams and an estimated price per meal in {{.Currency}}.
5. Writes every name, ingredient and instruction in English ("en") and Arabic ("ar").
6. States daily totals that equal the sum of that day's meals.

Respond with JSON only, no markdown, in exactly this shape:

{
	"name": { "en": string, "ar": string },
	"description": { "en": string, "ar": string },
	"dailyCalorieGoal": number,
	"dailyMacroGoals": { "protein": number, "carbs": number, "fat": number },
	"weeklySchedule": [
		{
			"day": { "en": string, "ar": string },
			"meals": {
				"breakfast": Meal,
				"lunch": Meal,
				"dinner": Meal,
				"snacks": [ Meal ]
			},
			"dailyTotals": { "calories": number, "protein": number, "carbs": number, "fat": number }
		}
	]
}

where Meal is:

{
	"name": { "en": string, "ar": string },
	"ingredients": { "en": [ string ], "ar": [ string ] },
	"instructions": { "en": string, "ar": string },
	"calories": number,
	"macros": { "protein": number, "carbs": number, "fat": number },
	"portion": string,
	"estimatedPrice": string
}
`

const workoutPlanTemplate = `
You are a strength and conditioning coach writing a weekly training program.

{{.Profile}}

{{.Targets}}

{{.Training}}

Recently generated programs, avoid repeating them:
{{.History}}

Please generate one workout plan that:
1. Uses exactly as many training days as the weekly sessions above.
2. Suits the training level and supports the weight goal.
3. Lists sets, reps and rest for every exercise, with one or two alternatives.
4. Writes instructions and common mistakes in English ("en") and Arabic ("ar").
5. Gives short search hints for a demo video and an illustration of each exercise.

Respond with JSON only, no markdown, in exactly this shape:

{
	"plans": [
		{
			"name": string,
			"description": { "en": string, "ar": string },
			"daySplit": string,
			"weeklySchedule": [
				{
					"day": string,
					"targetMuscles": string,
					"exercises": [
						{
							"name": string,
							"sets": string,
							"reps": string,
							"rest": string,
							"videoHint": string,
							"imageHint": string,
							"instructions": { "en": string, "ar": string },
							"commonMistakes": { "en": string, "ar": string },
							"alternatives": [ { "name": string, "imageHint": string } ]
						}
					]
				}
			]
		}
	]
}
`
