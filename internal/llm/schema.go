// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package llm

import "google.golang.org/genai"

// workoutPlanSchema matches the persisted workout plan document shape.
var workoutPlanSchema = &genai.Schema{
	Type:        "object",
	Description: "A weekly workout plan.",
	Properties: map[string]*genai.Schema{
		"focus": {
			Type:        "string",
			Description: "A one-line summary of the week.",
		},
		"workouts": {
			Type:        "array",
			Description: "The seven days of the plan, Monday through Sunday.",
			Items: &genai.Schema{
				Type: "object",
				Properties: map[string]*genai.Schema{
					"day": {
						Type:        "string",
						Description: "The weekday name.",
					},
					"focus": {
						Type:        "string",
						Description: "The focus of the day, e.g. Upper body push.",
					},
					"duration_minutes": {
						Type:        "integer",
						Description: "Expected session length in minutes. 0 for rest days.",
					},
					"isRestDay": {
						Type: "boolean",
					},
					"exercises": {
						Type:        "array",
						Description: "The exercises for the day, empty for rest days.",
						Items: &genai.Schema{
							Type: "object",
							Properties: map[string]*genai.Schema{
								"name": {Type: "string"},
								"sets": {Type: "integer"},
								"reps": {
									Type:        "integer",
									Description: "Reps per set. Omit for timed exercises.",
								},
								"duration_seconds": {
									Type:        "integer",
									Description: "Duration for timed exercises. Omit for rep-based exercises.",
								},
								"rest_seconds": {Type: "integer"},
								"notes": {
									Type:        "string",
									Description: "Form cues or modifications.",
								},
							},
							Required: []string{"name", "sets", "rest_seconds"},
						},
					},
				},
				Required: []string{"day", "focus", "duration_minutes", "isRestDay", "exercises"},
			},
		},
	},
	Required: []string{"focus", "workouts"},
}

var mealFoodSchema = &genai.Schema{
	Type: "object",
	Properties: map[string]*genai.Schema{
		"item": {Type: "string"},
		"portion": {
			Type:        "string",
			Description: "The amount, e.g. 150g or 1 cup.",
		},
		"calories": {Type: "integer"},
		"protein":  {Type: "integer", Description: "Grams of protein."},
		"carbs":    {Type: "integer", Description: "Grams of carbs."},
		"fat":      {Type: "integer", Description: "Grams of fat."},
	},
	Required: []string{"item", "portion", "calories", "protein", "carbs", "fat"},
}

var mealSchema = &genai.Schema{
	Type: "object",
	Properties: map[string]*genai.Schema{
		"name": {
			Type:        "string",
			Description: "The meal name, e.g. Breakfast.",
		},
		"foods": {
			Type:  "array",
			Items: mealFoodSchema,
		},
		"totalCalories": {Type: "integer"},
		"totalProtein":  {Type: "integer"},
		"totalCarbs":    {Type: "integer"},
		"totalFat":      {Type: "integer"},
	},
	Required: []string{"name", "foods", "totalCalories", "totalProtein", "totalCarbs", "totalFat"},
}

var mealDaySchema = &genai.Schema{
	Type: "object",
	Properties: map[string]*genai.Schema{
		"day": {
			Type:        "string",
			Description: "The weekday name.",
		},
		"meals": {
			Type:  "array",
			Items: mealSchema,
		},
		"dailyTotals": {
			Type: "object",
			Properties: map[string]*genai.Schema{
				"calories": {Type: "integer"},
				"protein":  {Type: "integer"},
				"carbs":    {Type: "integer"},
				"fat":      {Type: "integer"},
			},
			Required: []string{"calories", "protein", "carbs", "fat"},
		},
	},
	Required: []string{"day", "meals", "dailyTotals"},
}

// mealPlanSchema matches the persisted meal plan document shape. It is also
// used when regenerating a single day, which returns a plan with one entry.
var mealPlanSchema = &genai.Schema{
	Type:        "object",
	Description: "A weekly meal plan.",
	Properties: map[string]*genai.Schema{
		"days": {
			Type:        "array",
			Description: "The days of the plan in weekday order.",
			Items:       mealDaySchema,
		},
	},
	Required: []string{"days"},
}
