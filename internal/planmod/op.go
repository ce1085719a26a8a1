// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package planmod applies coach-proposed operations to workout and meal
// plan documents. Operations arrive as a name plus loosely-typed arguments
// from the language model; they are parsed into typed variants and applied
// as pure transforms that never partially mutate their input.
package planmod

import (
	"github.com/curioswitch/fitchat/internal/fitchatdb"
	"github.com/curioswitch/fitchat/internal/planvalidate"
)

// Operation is a parsed plan-modification request.
type Operation interface {
	isOperation()
}

// Domain classifies an operation by the document it targets.
type Domain int

const (
	DomainUnknown Domain = iota
	DomainWorkout
	DomainNutrition
	DomainProfile
)

// operationDomains is the fixed routing table for the dispatcher.
var operationDomains = map[string]Domain{
	"swap_exercise":              DomainWorkout,
	"adjust_workout_intensity":   DomainWorkout,
	"add_exercise":               DomainWorkout,
	"remove_exercise":            DomainWorkout,
	"modify_for_injury":          DomainWorkout,
	"change_workout_day":         DomainWorkout,
	"swap_meal":                  DomainNutrition,
	"adjust_meal_portions":       DomainNutrition,
	"update_dietary_preferences": DomainNutrition,
	"regenerate_day_meals":       DomainNutrition,
	"update_profile_injury":      DomainProfile,
}

// OperationDomain returns the domain an operation name routes to.
func OperationDomain(name string) Domain {
	return operationDomains[name]
}

// ExerciseSpec carries the exercise fields an operation may supply. Nil
// numeric fields were not provided and fall back to existing or default
// values.
type ExerciseSpec struct {
	Name            string
	Sets            *int
	Reps            *int
	DurationSeconds *int
	RestSeconds     *int
	Notes           string
}

// SwapExercise replaces an exercise on a day. The existing exercise is
// located by case-insensitive substring match.
type SwapExercise struct {
	Day      string
	Exercise string
	New      ExerciseSpec
}

// AdjustIntensity shifts sets/reps/rest for every exercise in the target
// days. Target is a day name or "all_workouts".
type AdjustIntensity struct {
	Target         string
	AdjustmentType string
	SetsChange     int
	RepsChange     int
	RestChange     int
}

// AddExercise inserts an exercise into a day at the requested position:
// "start", "end" (default), or "after_warmup".
type AddExercise struct {
	Day      string
	Position string
	New      ExerciseSpec
}

// RemoveExercise removes the first substring-matched exercise from a day.
type RemoveExercise struct {
	Day      string
	Exercise string
}

// InjuryModification is one entry of a ModifyForInjury operation.
type InjuryModification struct {
	Day      string
	Exercise string
	// Action is "remove", "replace", or "reduce_intensity".
	Action     string
	Substitute *ExerciseSpec
}

// ModifyForInjury applies a list of per-day accommodations. Entries whose
// day or exercise no longer exists are skipped, not failed: the plan may
// already have moved on.
type ModifyForInjury struct {
	Injury        string
	Modifications []InjuryModification
}

// ChangeWorkoutDay moves a day's workout to another weekday, swapping
// content when the target day already exists.
type ChangeWorkoutDay struct {
	FromDay string
	ToDay   string
}

// SwapMeal replaces a meal's food list. Day and meal are matched exactly,
// case-insensitively.
type SwapMeal struct {
	Day     string
	Meal    string
	NewName string
	Foods   []fitchatdb.Food
}

// AdjustMealPortions scales food portions by a percentage. Day and Meal
// optionally narrow the scope; both empty scales the whole plan.
type AdjustMealPortions struct {
	Day            string
	Meal           string
	AdjustmentType string
	Percentage     float64
}

// UpdateDietaryPreferences edits the profile's dietary lists with set
// semantics. It never touches the meal plan itself.
type UpdateDietaryPreferences struct {
	AddRestrictions     []string
	RemoveRestrictions  []string
	AddAllergies        []string
	RemoveAllergies     []string
	AddDislikedFoods    []string
	RemoveDislikedFoods []string
}

// RegenerateDayMeals flags a day for regeneration by the coach model on a
// later turn. It does not alter the plan document.
type RegenerateDayMeals struct {
	Day string
}

// UpdateProfileInjury records new injuries on the profile.
type UpdateProfileInjury struct {
	Injuries []string
}

// UnknownOperation is the forward-compatibility arm for operation names this
// version does not understand.
type UnknownOperation struct {
	Name string
}

func (SwapExercise) isOperation()             {}
func (AdjustIntensity) isOperation()          {}
func (AddExercise) isOperation()              {}
func (RemoveExercise) isOperation()           {}
func (ModifyForInjury) isOperation()          {}
func (ChangeWorkoutDay) isOperation()         {}
func (SwapMeal) isOperation()                 {}
func (AdjustMealPortions) isOperation()       {}
func (UpdateDietaryPreferences) isOperation() {}
func (RegenerateDayMeals) isOperation()       {}
func (UpdateProfileInjury) isOperation()      {}
func (UnknownOperation) isOperation()         {}

// Parse converts a named operation with loose arguments into a typed
// variant. Missing or malformed fields become zero values; bounds are
// enforced by the mutators, not here.
func Parse(name string, args map[string]any) Operation {
	if args == nil {
		args = map[string]any{}
	}
	str := func(key string) string {
		s, _ := planvalidate.Str(args, key)
		return s
	}
	switch name {
	case "swap_exercise":
		return SwapExercise{
			Day:      str("day"),
			Exercise: str("exercise_name"),
			New:      parseExerciseSpec(args, "new_name"),
		}
	case "adjust_workout_intensity":
		op := AdjustIntensity{
			Target:         str("target"),
			AdjustmentType: str("adjustment_type"),
		}
		op.SetsChange, _ = planvalidate.Int(args, "sets_change")
		op.RepsChange, _ = planvalidate.Int(args, "reps_change")
		op.RestChange, _ = planvalidate.Int(args, "rest_change")
		return op
	case "add_exercise":
		return AddExercise{
			Day:      str("day"),
			Position: str("position"),
			New:      parseExerciseSpec(args, "name"),
		}
	case "remove_exercise":
		return RemoveExercise{
			Day:      str("day"),
			Exercise: str("exercise_name"),
		}
	case "modify_for_injury":
		op := ModifyForInjury{Injury: str("injury")}
		mods, _ := planvalidate.AsSlice(args["modifications"])
		for _, m := range mods {
			mm, ok := planvalidate.AsMap(m)
			if !ok {
				continue
			}
			mod := InjuryModification{}
			mod.Day, _ = planvalidate.Str(mm, "day")
			mod.Exercise, _ = planvalidate.Str(mm, "exercise_name")
			mod.Action, _ = planvalidate.Str(mm, "action")
			if sub, ok := planvalidate.AsMap(mm["substitute"]); ok {
				spec := parseExerciseSpec(sub, "name")
				mod.Substitute = &spec
			}
			op.Modifications = append(op.Modifications, mod)
		}
		return op
	case "change_workout_day":
		return ChangeWorkoutDay{
			FromDay: str("from_day"),
			ToDay:   str("to_day"),
		}
	case "swap_meal":
		op := SwapMeal{
			Day:     str("day"),
			Meal:    str("meal_name"),
			NewName: str("new_meal_name"),
		}
		foods, _ := planvalidate.AsSlice(args["foods"])
		for _, f := range foods {
			fm, ok := planvalidate.AsMap(f)
			if !ok {
				continue
			}
			var food fitchatdb.Food
			food.Item, _ = planvalidate.Str(fm, "item")
			food.Portion, _ = planvalidate.Str(fm, "portion")
			food.Calories, _ = planvalidate.Int(fm, "calories")
			food.Protein, _ = planvalidate.Int(fm, "protein")
			food.Carbs, _ = planvalidate.Int(fm, "carbs")
			food.Fat, _ = planvalidate.Int(fm, "fat")
			op.Foods = append(op.Foods, food)
		}
		return op
	case "adjust_meal_portions":
		op := AdjustMealPortions{
			Day:            str("day"),
			Meal:           str("meal_name"),
			AdjustmentType: str("adjustment_type"),
		}
		op.Percentage, _ = planvalidate.Float(args, "percentage")
		return op
	case "update_dietary_preferences":
		return UpdateDietaryPreferences{
			AddRestrictions:     planvalidate.StringList(args, "add_restrictions"),
			RemoveRestrictions:  planvalidate.StringList(args, "remove_restrictions"),
			AddAllergies:        planvalidate.StringList(args, "add_allergies"),
			RemoveAllergies:     planvalidate.StringList(args, "remove_allergies"),
			AddDislikedFoods:    planvalidate.StringList(args, "add_disliked_foods"),
			RemoveDislikedFoods: planvalidate.StringList(args, "remove_disliked_foods"),
		}
	case "regenerate_day_meals":
		return RegenerateDayMeals{Day: str("day")}
	case "update_profile_injury":
		injuries := planvalidate.StringList(args, "injuries")
		if injury := str("injury"); injury != "" {
			injuries = append(injuries, injury)
		}
		return UpdateProfileInjury{Injuries: injuries}
	default:
		return UnknownOperation{Name: name}
	}
}

func parseExerciseSpec(args map[string]any, nameKey string) ExerciseSpec {
	spec := ExerciseSpec{}
	spec.Name, _ = planvalidate.Str(args, nameKey)
	spec.Notes, _ = planvalidate.Str(args, "notes")
	if v, ok := planvalidate.Int(args, "sets"); ok {
		spec.Sets = &v
	}
	if v, ok := planvalidate.Int(args, "reps"); ok {
		spec.Reps = &v
	}
	if v, ok := planvalidate.Int(args, "duration_seconds"); ok {
		spec.DurationSeconds = &v
	}
	if v, ok := planvalidate.Int(args, "rest_seconds"); ok {
		spec.RestSeconds = &v
	}
	return spec
}
