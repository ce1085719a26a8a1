// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package planmod

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"

	"github.com/curioswitch/fitchat/internal/fitchatdb"
)

// Call is one operation requested by the coach model in a chat turn.
type Call struct {
	Name string
	Args map[string]any
}

// BatchResult is the outcome of applying a batch of operation calls. The
// modified flags report what was actually persisted so the client knows
// which documents to refetch.
type BatchResult struct {
	Messages         []string
	PlanModified     bool
	MealPlanModified bool
}

// PlanStore is the subset of fitchatdb.Store the dispatcher persists
// through.
type PlanStore interface {
	SaveWorkoutPlan(ctx context.Context, userID string, plan *fitchatdb.WorkoutPlan) error
	SaveMealPlan(ctx context.Context, userID string, plan *fitchatdb.MealPlan) error
	UpdateProfile(ctx context.Context, userID string, updates []firestore.Update) error
}

// Dispatcher routes operation calls to the plan mutators and persists the
// results. Each plan document is written at most once per batch, regardless
// of how many operations touched it.
type Dispatcher struct {
	store PlanStore
}

func NewDispatcher(store PlanStore) *Dispatcher {
	return &Dispatcher{store: store}
}

// Apply runs calls in order against the given documents, mutating them in
// memory, then persists whichever changed. A nil plan or profile fails the
// operations that need it without aborting the batch. Persistence failures
// are reported as messages; the corresponding modified flag stays false and
// the in-memory changes are not rolled back, since the documents are
// refetched per chat turn.
func (d *Dispatcher) Apply(ctx context.Context, userID string, profile *fitchatdb.Profile,
	workoutPlan *fitchatdb.WorkoutPlan, mealPlan *fitchatdb.MealPlan, calls []Call,
) BatchResult {
	var res BatchResult
	var workoutDirty, mealDirty bool
	profileChanged := map[string]bool{}

	for _, call := range calls {
		op := Parse(call.Name, call.Args)
		switch OperationDomain(call.Name) {
		case DomainWorkout:
			if workoutPlan == nil {
				res.Messages = append(res.Messages, "No active workout plan to modify.")
				continue
			}
			r := ApplyWorkout(workoutPlan.Workouts, op)
			res.Messages = append(res.Messages, r.Message)
			if r.OK && r.Workouts != nil {
				workoutPlan.Workouts = r.Workouts
				workoutDirty = true
			}
		case DomainNutrition:
			if prefs, ok := op.(UpdateDietaryPreferences); ok {
				// Preference updates target the profile and work without an
				// active meal plan.
				if profile == nil {
					res.Messages = append(res.Messages, "No profile to update.")
					continue
				}
				changed, msg := ApplyDietaryPreferences(profile, prefs)
				res.Messages = append(res.Messages, msg)
				for _, field := range changed {
					profileChanged[field] = true
				}
				continue
			}
			if mealPlan == nil {
				res.Messages = append(res.Messages, "No active meal plan to modify.")
				continue
			}
			r := ApplyMeal(mealPlan.Days, op)
			res.Messages = append(res.Messages, r.Message)
			if r.OK && r.Days != nil {
				mealPlan.Days = r.Days
				mealDirty = true
			}
		case DomainProfile:
			injury, ok := op.(UpdateProfileInjury)
			if !ok {
				res.Messages = append(res.Messages, fmt.Sprintf("Unknown operation %q.", call.Name))
				continue
			}
			if profile == nil {
				res.Messages = append(res.Messages, "No profile to update.")
				continue
			}
			before := len(profile.Injuries)
			profile.Injuries = stringSetAdd(profile.Injuries, injury.Injuries)
			if len(profile.Injuries) == before {
				res.Messages = append(res.Messages, "That injury is already on your profile.")
				continue
			}
			profileChanged["injuries"] = true
			res.Messages = append(res.Messages, "Noted the injury on your profile.")
		default:
			res.Messages = append(res.Messages, fmt.Sprintf("Unknown operation %q.", call.Name))
		}
	}

	if workoutDirty {
		if err := d.store.SaveWorkoutPlan(ctx, userID, workoutPlan); err != nil {
			slog.ErrorContext(ctx, "planmod: save workout plan", "error", err)
			res.Messages = append(res.Messages, "I couldn't save the workout plan changes, please try again.")
		} else {
			res.PlanModified = true
		}
	}
	if mealDirty {
		if err := d.store.SaveMealPlan(ctx, userID, mealPlan); err != nil {
			slog.ErrorContext(ctx, "planmod: save meal plan", "error", err)
			res.Messages = append(res.Messages, "I couldn't save the meal plan changes, please try again.")
		} else {
			res.MealPlanModified = true
		}
	}
	if len(profileChanged) > 0 {
		if err := d.store.UpdateProfile(ctx, userID, profileUpdates(profile, profileChanged)); err != nil {
			slog.ErrorContext(ctx, "planmod: update profile", "error", err)
			res.Messages = append(res.Messages, "I couldn't save the profile changes, please try again.")
		}
	}
	return res
}

// profileUpdates builds the partial update for the changed profile fields.
func profileUpdates(profile *fitchatdb.Profile, changed map[string]bool) []firestore.Update {
	var updates []firestore.Update
	for _, field := range []string{"dietary_restrictions", "food_allergies", "disliked_foods", "injuries"} {
		if !changed[field] {
			continue
		}
		var value any
		switch field {
		case "dietary_restrictions":
			value = profile.DietaryRestrictions
		case "food_allergies":
			value = profile.FoodAllergies
		case "disliked_foods":
			value = profile.DislikedFoods
		case "injuries":
			value = profile.Injuries
		}
		updates = append(updates, firestore.Update{Path: field, Value: value})
	}
	return updates
}
