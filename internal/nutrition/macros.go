// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package nutrition derives calorie and macro targets from a fitness
// profile. All functions are pure.
package nutrition

import (
	"math"
	"strings"

	"github.com/curioswitch/fitchat/internal/fitchatdb"
)

// activityMultipliers maps activity level strings to their TDEE multiplier.
var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// defaultActivityMultiplier is used for unknown or missing activity levels.
const defaultActivityMultiplier = 1.55

// GoalRule classifies a free-text fitness goal by case-insensitive substring
// match. Rules are evaluated in order and the first match wins.
type GoalRule struct {
	// Name of the goal category, e.g. "weight loss".
	Name string

	// Keywords any of which selects this rule.
	Keywords []string

	// Multiplier applied to TDEE to get the calorie target.
	Multiplier float64
}

// GoalRules is the ordered goal classification table. Weight loss is checked
// first, so a goal matching several categories resolves to weight loss.
var GoalRules = []GoalRule{
	{
		Name:       "weight loss",
		Keywords:   []string{"lose", "cut", "lean", "fat loss", "weight loss"},
		Multiplier: 0.8,
	},
	{
		Name:       "muscle gain",
		Keywords:   []string{"muscle", "bulk", "mass", "gain", "build"},
		Multiplier: 1.15,
	},
	{
		Name:       "strength",
		Keywords:   []string{"strength", "strong", "power"},
		Multiplier: 1.1,
	},
}

// BMR computes the basal metabolic rate with the Mifflin-St Jeor equation.
// Any gender other than a case-insensitive "male" uses the female constant.
func BMR(weightKg float64, heightCm float64, age int, gender string) float64 {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if strings.EqualFold(gender, "male") {
		bmr += 5
	} else {
		bmr -= 161
	}
	return bmr
}

// TDEE scales bmr by the activity level multiplier, rounded to the nearest
// integer. Unknown levels use the moderate multiplier.
func TDEE(bmr float64, activityLevel string) int {
	mult, ok := activityMultipliers[activityLevel]
	if !ok {
		mult = defaultActivityMultiplier
	}
	return int(math.Round(bmr * mult))
}

// TargetCalories adjusts tdee for the user's goal, classified against
// GoalRules. Goals matching no rule are treated as maintenance.
func TargetCalories(tdee int, goal string) int {
	goal = strings.ToLower(goal)
	for _, rule := range GoalRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(goal, kw) {
				return int(math.Round(float64(tdee) * rule.Multiplier))
			}
		}
	}
	return tdee
}

// Macros splits targetCalories into a macro target: protein fixed at 2 g per
// kg of body weight, fat at 25% of calories, carbs the remainder. Carb
// calories can go negative for extreme inputs; they are deliberately not
// clamped.
func Macros(targetCalories int, weightKg float64) fitchatdb.Nutrition {
	proteinG := int(math.Round(weightKg * 2))
	proteinCal := proteinG * 4
	fatCal := int(math.Round(float64(targetCalories) * 0.25))
	fatG := int(math.Round(float64(fatCal) / 9))
	carbCal := targetCalories - proteinCal - fatCal
	carbG := int(math.Round(float64(carbCal) / 4))
	return fitchatdb.Nutrition{
		Calories: targetCalories,
		Protein:  proteinG,
		Carbs:    carbG,
		Fat:      fatG,
	}
}

// Targets derives the full calorie/macro target for a profile.
func Targets(profile *fitchatdb.Profile) fitchatdb.Nutrition {
	bmr := BMR(profile.WeightKg, profile.HeightCm, profile.Age, profile.Gender)
	tdee := TDEE(bmr, profile.ActivityLevel)
	return Macros(TargetCalories(tdee, profile.FitnessGoal), profile.WeightKg)
}
