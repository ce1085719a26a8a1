// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package planmod

import (
	"context"
	"errors"
	"testing"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curioswitch/fitchat/internal/fitchatdb"
)

type fakeStore struct {
	workoutSaves   int
	mealSaves      int
	profileUpdates []firestore.Update

	failWorkout bool
}

func (f *fakeStore) SaveWorkoutPlan(_ context.Context, _ string, _ *fitchatdb.WorkoutPlan) error {
	f.workoutSaves++
	if f.failWorkout {
		return errors.New("transaction failed")
	}
	return nil
}

func (f *fakeStore) SaveMealPlan(_ context.Context, _ string, _ *fitchatdb.MealPlan) error {
	f.mealSaves++
	return nil
}

func (f *fakeStore) UpdateProfile(_ context.Context, _ string, updates []firestore.Update) error {
	f.profileUpdates = append(f.profileUpdates, updates...)
	return nil
}

func testWorkoutPlan() *fitchatdb.WorkoutPlan {
	return &fitchatdb.WorkoutPlan{ID: "wp1", Workouts: testWeek(), Active: true, Version: 1}
}

func testMealPlan() *fitchatdb.MealPlan {
	return &fitchatdb.MealPlan{ID: "mp1", Days: testMealDays(), Active: true, Version: 1}
}

func TestDispatcherApply(t *testing.T) {
	ctx := context.Background()

	t.Run("batch saves each plan once", func(t *testing.T) {
		store := &fakeStore{}
		d := NewDispatcher(store)
		res := d.Apply(ctx, "user1", &fitchatdb.Profile{}, testWorkoutPlan(), testMealPlan(), []Call{
			{Name: "remove_exercise", Args: map[string]any{"day": "Monday", "exercise_name": "plank"}},
			{Name: "adjust_workout_intensity", Args: map[string]any{"target": "Friday", "adjustment_type": "increase", "sets_change": 1}},
			{Name: "adjust_meal_portions", Args: map[string]any{"adjustment_type": "decrease", "percentage": 10}},
		})
		assert.True(t, res.PlanModified)
		assert.True(t, res.MealPlanModified)
		assert.Equal(t, 1, store.workoutSaves)
		assert.Equal(t, 1, store.mealSaves)
		require.Len(t, res.Messages, 3)
	})

	t.Run("missing meal plan fails only the meal op", func(t *testing.T) {
		store := &fakeStore{}
		d := NewDispatcher(store)
		res := d.Apply(ctx, "user1", &fitchatdb.Profile{}, testWorkoutPlan(), nil, []Call{
			{Name: "remove_exercise", Args: map[string]any{"day": "Monday", "exercise_name": "plank"}},
			{Name: "adjust_meal_portions", Args: map[string]any{"adjustment_type": "decrease", "percentage": 10}},
		})
		assert.True(t, res.PlanModified)
		assert.False(t, res.MealPlanModified)
		assert.Contains(t, res.Messages, "No active meal plan to modify.")
		assert.Equal(t, 0, store.mealSaves)
	})

	t.Run("save failure reported without modified flag", func(t *testing.T) {
		store := &fakeStore{failWorkout: true}
		d := NewDispatcher(store)
		res := d.Apply(ctx, "user1", &fitchatdb.Profile{}, testWorkoutPlan(), nil, []Call{
			{Name: "remove_exercise", Args: map[string]any{"day": "Monday", "exercise_name": "plank"}},
		})
		assert.False(t, res.PlanModified)
		assert.Contains(t, res.Messages, "I couldn't save the workout plan changes, please try again.")
	})

	t.Run("failed op does not dirty the plan", func(t *testing.T) {
		store := &fakeStore{}
		d := NewDispatcher(store)
		res := d.Apply(ctx, "user1", &fitchatdb.Profile{}, testWorkoutPlan(), nil, []Call{
			{Name: "remove_exercise", Args: map[string]any{"day": "Monday", "exercise_name": "leg press"}},
		})
		assert.False(t, res.PlanModified)
		assert.Equal(t, 0, store.workoutSaves)
	})

	t.Run("no-change op acknowledges without persisting", func(t *testing.T) {
		store := &fakeStore{}
		d := NewDispatcher(store)
		res := d.Apply(ctx, "user1", &fitchatdb.Profile{}, testWorkoutPlan(), nil, []Call{
			{Name: "adjust_workout_intensity", Args: map[string]any{"target": "Friday", "adjustment_type": "increase"}},
		})
		assert.False(t, res.PlanModified)
		assert.Equal(t, 0, store.workoutSaves)
	})

	t.Run("regenerate day meals acknowledges without persisting", func(t *testing.T) {
		store := &fakeStore{}
		d := NewDispatcher(store)
		res := d.Apply(ctx, "user1", &fitchatdb.Profile{}, nil, testMealPlan(), []Call{
			{Name: "regenerate_day_meals", Args: map[string]any{"day": "Monday"}},
		})
		assert.False(t, res.MealPlanModified)
		assert.Equal(t, 0, store.mealSaves)
		require.Len(t, res.Messages, 1)
		assert.Contains(t, res.Messages[0], "Monday")
	})

	t.Run("dietary preferences update the profile, not the meal plan", func(t *testing.T) {
		store := &fakeStore{}
		d := NewDispatcher(store)
		profile := &fitchatdb.Profile{}
		res := d.Apply(ctx, "user1", profile, nil, nil, []Call{
			{Name: "update_dietary_preferences", Args: map[string]any{"add_allergies": []any{"peanuts"}}},
		})
		assert.False(t, res.MealPlanModified)
		require.Len(t, store.profileUpdates, 1)
		assert.Equal(t, "food_allergies", store.profileUpdates[0].Path)
		assert.Equal(t, []string{"peanuts"}, profile.FoodAllergies)
	})

	t.Run("injury added to profile once", func(t *testing.T) {
		store := &fakeStore{}
		d := NewDispatcher(store)
		profile := &fitchatdb.Profile{Injuries: []string{"sore knee"}}
		res := d.Apply(ctx, "user1", profile, nil, nil, []Call{
			{Name: "update_profile_injury", Args: map[string]any{"injuries": []any{"Sore Knee"}}},
		})
		assert.Contains(t, res.Messages, "That injury is already on your profile.")
		assert.Empty(t, store.profileUpdates)
	})

	t.Run("unknown operation", func(t *testing.T) {
		store := &fakeStore{}
		d := NewDispatcher(store)
		res := d.Apply(ctx, "user1", &fitchatdb.Profile{}, testWorkoutPlan(), testMealPlan(), []Call{
			{Name: "delete_account", Args: map[string]any{}},
		})
		assert.Contains(t, res.Messages, `Unknown operation "delete_account".`)
		assert.False(t, res.PlanModified)
	})
}
