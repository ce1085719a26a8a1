// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package fitchatdb

import (
	"strings"
	"time"
)

// Weekdays is the canonical ordering of days in a plan, Monday first.
// Every plan document keeps its day entries sorted in this order.
var Weekdays = []string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// WeekdayIndex returns the position of day in the canonical week, matching
// case-insensitively. Returns -1 for anything that is not a weekday name.
func WeekdayIndex(day string) int {
	for i, d := range Weekdays {
		if strings.EqualFold(d, day) {
			return i
		}
	}
	return -1
}

type FitnessLevel string

const (
	FitnessLevelBeginner     FitnessLevel = "beginner"
	FitnessLevelIntermediate FitnessLevel = "intermediate"
	FitnessLevelAdvanced     FitnessLevel = "advanced"
)

// Profile is the fitness profile of a user, stored on the user document.
// It is created during onboarding and mutated by settings edits and
// coach-driven preference updates. Field names follow the persisted schema.
type Profile struct {
	// Age in years.
	Age int `firestore:"age" json:"age"`

	// Gender as free-form text. Only a case-insensitive "male" selects the
	// male BMR constant; every other value uses the female constant.
	Gender string `firestore:"gender" json:"gender"`

	// HeightCm is the height in centimeters.
	HeightCm float64 `firestore:"height_cm" json:"height_cm"`

	// WeightKg is the weight in kilograms.
	WeightKg float64 `firestore:"weight_kg" json:"weight_kg"`

	// FitnessGoal is the user's goal as free-form text, e.g. "lose weight".
	FitnessGoal string `firestore:"fitness_goal" json:"fitness_goal"`

	// FitnessLevel is one of beginner, intermediate, advanced.
	FitnessLevel FitnessLevel `firestore:"fitness_level" json:"fitness_level"`

	// ActivityLevel is one of sedentary, light, moderate, active, very_active.
	ActivityLevel string `firestore:"activity_level" json:"activity_level"`

	// AvailableDays are the weekday names the user can train on.
	AvailableDays []string `firestore:"available_days" json:"available_days"`

	// Equipment describes available equipment as free-form text.
	Equipment string `firestore:"equipment" json:"equipment"`

	// Injuries are current injuries, most recent last.
	Injuries []string `firestore:"injuries" json:"injuries"`

	// DietaryRestrictions are restrictions such as "vegetarian".
	DietaryRestrictions []string `firestore:"dietary_restrictions" json:"dietary_restrictions"`

	// FoodAllergies are foods the user is allergic to.
	FoodAllergies []string `firestore:"food_allergies" json:"food_allergies"`

	// DislikedFoods are foods the user prefers to avoid.
	DislikedFoods []string `firestore:"disliked_foods" json:"disliked_foods"`

	// MealsPerDay is how many meals the user eats per day, 1-10.
	MealsPerDay int `firestore:"meals_per_day" json:"meals_per_day"`

	// CreatedAt is the timestamp when the profile was created.
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`

	// UpdatedAt is the timestamp when the profile was last updated.
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}
