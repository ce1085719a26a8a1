// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package llm

import (
	"encoding/json"

	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"
)

var daySchema = &genai.Schema{
	Type:        "string",
	Description: "A weekday name, e.g. Monday.",
}

var exerciseFieldSchemas = map[string]*genai.Schema{
	"sets": {
		Type:        "integer",
		Description: "Sets to perform.",
	},
	"reps": {
		Type:        "integer",
		Description: "Reps per set. Omit for timed exercises.",
	},
	"duration_seconds": {
		Type:        "integer",
		Description: "Duration for timed exercises. Omit for rep-based exercises.",
	},
	"rest_seconds": {
		Type:        "integer",
		Description: "Rest between sets in seconds.",
	},
	"notes": {
		Type:        "string",
		Description: "Form cues or modifications.",
	},
}

func exerciseSpecSchema(nameKey string, nameDescription string) *genai.Schema {
	properties := map[string]*genai.Schema{
		nameKey: {
			Type:        "string",
			Description: nameDescription,
		},
	}
	for key, schema := range exerciseFieldSchemas {
		properties[key] = schema
	}
	return &genai.Schema{
		Type:       "object",
		Properties: properties,
		Required:   []string{nameKey},
	}
}

// coachDeclarations are the plan-modification tools offered to the coach
// model. The argument shapes are shared between providers.
var coachDeclarations = []*genai.FunctionDeclaration{
	{
		Name:        "swap_exercise",
		Description: "Replace one exercise in the workout plan with another.",
		Parameters: func() *genai.Schema {
			s := exerciseSpecSchema("new_name", "Name of the replacement exercise.")
			s.Properties["day"] = daySchema
			s.Properties["exercise_name"] = &genai.Schema{
				Type:        "string",
				Description: "Name of the exercise to replace, as it appears in the plan.",
			}
			s.Required = []string{"day", "exercise_name", "new_name"}
			return s
		}(),
	},
	{
		Name:        "adjust_workout_intensity",
		Description: "Make workouts harder or easier by shifting sets, reps, or rest.",
		Parameters: &genai.Schema{
			Type: "object",
			Properties: map[string]*genai.Schema{
				"target": {
					Type:        "string",
					Description: "A weekday name, or all_workouts for the whole week.",
				},
				"adjustment_type": {
					Type: "string",
					Enum: []string{"increase", "decrease"},
				},
				"sets_change": {
					Type:        "integer",
					Description: "Signed change to sets per exercise, e.g. -1.",
				},
				"reps_change": {
					Type:        "integer",
					Description: "Signed change to reps per set.",
				},
				"rest_change": {
					Type:        "integer",
					Description: "Signed change to rest seconds between sets.",
				},
			},
			Required: []string{"target", "adjustment_type"},
		},
	},
	{
		Name:        "add_exercise",
		Description: "Add a new exercise to a workout day.",
		Parameters: func() *genai.Schema {
			s := exerciseSpecSchema("name", "Name of the exercise to add.")
			s.Properties["day"] = daySchema
			s.Properties["position"] = &genai.Schema{
				Type:        "string",
				Description: "Where to insert the exercise.",
				Enum:        []string{"start", "end", "after_warmup"},
			}
			s.Required = []string{"day", "name"}
			return s
		}(),
	},
	{
		Name:        "remove_exercise",
		Description: "Remove an exercise from a workout day.",
		Parameters: &genai.Schema{
			Type: "object",
			Properties: map[string]*genai.Schema{
				"day": daySchema,
				"exercise_name": {
					Type:        "string",
					Description: "Name of the exercise to remove, as it appears in the plan.",
				},
			},
			Required: []string{"day", "exercise_name"},
		},
	},
	{
		Name:        "modify_for_injury",
		Description: "Adjust the workout plan to work around an injury, across one or more days.",
		Parameters: &genai.Schema{
			Type: "object",
			Properties: map[string]*genai.Schema{
				"injury": {
					Type:        "string",
					Description: "The injury being accommodated, e.g. sore right knee.",
				},
				"modifications": {
					Type: "array",
					Items: &genai.Schema{
						Type: "object",
						Properties: map[string]*genai.Schema{
							"day": daySchema,
							"exercise_name": {
								Type:        "string",
								Description: "Name of the affected exercise.",
							},
							"action": {
								Type: "string",
								Enum: []string{"remove", "replace", "reduce_intensity"},
							},
							"substitute": exerciseSpecSchema("name", "Replacement exercise when action is replace."),
						},
						Required: []string{"day", "exercise_name", "action"},
					},
				},
			},
			Required: []string{"injury", "modifications"},
		},
	},
	{
		Name:        "change_workout_day",
		Description: "Move a day's workout to a different weekday, swapping with the workout already there.",
		Parameters: &genai.Schema{
			Type: "object",
			Properties: map[string]*genai.Schema{
				"from_day": daySchema,
				"to_day":   daySchema,
			},
			Required: []string{"from_day", "to_day"},
		},
	},
	{
		Name:        "swap_meal",
		Description: "Replace a meal's foods with a different set of foods.",
		Parameters: &genai.Schema{
			Type: "object",
			Properties: map[string]*genai.Schema{
				"day": daySchema,
				"meal_name": {
					Type:        "string",
					Description: "Name of the meal to replace, e.g. Breakfast.",
				},
				"new_meal_name": {
					Type:        "string",
					Description: "Optional new name for the meal.",
				},
				"foods": {
					Type:        "array",
					Description: "The complete new food list for the meal.",
					Items: &genai.Schema{
						Type: "object",
						Properties: map[string]*genai.Schema{
							"item":     {Type: "string"},
							"portion":  {Type: "string", Description: "Amount, e.g. 150g or 1 cup."},
							"calories": {Type: "integer"},
							"protein":  {Type: "integer", Description: "Grams of protein."},
							"carbs":    {Type: "integer", Description: "Grams of carbs."},
							"fat":      {Type: "integer", Description: "Grams of fat."},
						},
						Required: []string{"item", "portion", "calories", "protein", "carbs", "fat"},
					},
				},
			},
			Required: []string{"day", "meal_name", "foods"},
		},
	},
	{
		Name:        "adjust_meal_portions",
		Description: "Scale portions up or down by a percentage, for the whole plan, one day, or one meal.",
		Parameters: &genai.Schema{
			Type: "object",
			Properties: map[string]*genai.Schema{
				"day": {
					Type:        "string",
					Description: "Optional weekday to limit the change to.",
				},
				"meal_name": {
					Type:        "string",
					Description: "Optional meal name to limit the change to.",
				},
				"adjustment_type": {
					Type: "string",
					Enum: []string{"increase", "decrease"},
				},
				"percentage": {
					Type:        "number",
					Description: "Percentage to scale by, e.g. 10 for 10%.",
				},
			},
			Required: []string{"adjustment_type", "percentage"},
		},
	},
	{
		Name:        "update_dietary_preferences",
		Description: "Record changes to the user's dietary restrictions, allergies, or disliked foods.",
		Parameters: &genai.Schema{
			Type: "object",
			Properties: map[string]*genai.Schema{
				"add_restrictions":      {Type: "array", Items: &genai.Schema{Type: "string"}},
				"remove_restrictions":   {Type: "array", Items: &genai.Schema{Type: "string"}},
				"add_allergies":         {Type: "array", Items: &genai.Schema{Type: "string"}},
				"remove_allergies":      {Type: "array", Items: &genai.Schema{Type: "string"}},
				"add_disliked_foods":    {Type: "array", Items: &genai.Schema{Type: "string"}},
				"remove_disliked_foods": {Type: "array", Items: &genai.Schema{Type: "string"}},
			},
		},
	},
	{
		Name:        "regenerate_day_meals",
		Description: "Queue a full regeneration of one day's meals.",
		Parameters: &genai.Schema{
			Type: "object",
			Properties: map[string]*genai.Schema{
				"day": daySchema,
			},
			Required: []string{"day"},
		},
	},
	{
		Name:        "update_profile_injury",
		Description: "Record a new injury on the user's profile.",
		Parameters: &genai.Schema{
			Type: "object",
			Properties: map[string]*genai.Schema{
				"injuries": {
					Type:        "array",
					Description: "The injuries to record.",
					Items:       &genai.Schema{Type: "string"},
				},
			},
			Required: []string{"injuries"},
		},
	},
}

// CoachTools returns the tool set for the Gemini coaching chat.
func CoachTools() []*genai.Tool {
	return []*genai.Tool{
		{
			FunctionDeclarations: coachDeclarations,
		},
	}
}

// openAICoachTools converts the shared declarations to OpenAI chat
// completion tools. genai.Schema marshals to standard JSON schema, so the
// parameter objects can be reused as is.
func openAICoachTools() ([]openai.ChatCompletionToolUnionParam, error) {
	tools := make([]openai.ChatCompletionToolUnionParam, 0, len(coachDeclarations))
	for _, decl := range coachDeclarations {
		schemaJSON, err := json.Marshal(decl.Parameters)
		if err != nil {
			return nil, err
		}
		var params openai.FunctionParameters
		if err := json.Unmarshal(schemaJSON, &params); err != nil {
			return nil, err
		}
		tools = append(tools, openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
			Name:        decl.Name,
			Description: openai.String(decl.Description),
			Parameters:  params,
		}))
	}
	return tools, nil
}
