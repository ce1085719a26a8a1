// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package planvalidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func workoutDay(day string, exercises ...map[string]any) map[string]any {
	exs := make([]any, len(exercises))
	for i, e := range exercises {
		exs[i] = e
	}
	return map[string]any{
		"day":              day,
		"focus":            "Full body",
		"duration_minutes": 45,
		"isRestDay":        false,
		"exercises":        exs,
	}
}

func restDay(day string) map[string]any {
	return map[string]any{
		"day":       day,
		"focus":     "Rest",
		"isRestDay": true,
	}
}

func fullWeek() map[string]any {
	squat := map[string]any{"name": "Squat", "sets": 3, "reps": 8, "rest_seconds": 90}
	return map[string]any{
		"workouts": []any{
			workoutDay("Monday", squat),
			workoutDay("Tuesday", squat),
			restDay("Wednesday"),
			workoutDay("Thursday", squat),
			workoutDay("Friday", squat),
			restDay("Saturday"),
			restDay("Sunday"),
		},
	}
}

func TestWorkoutPlan(t *testing.T) {
	t.Run("well-formed week", func(t *testing.T) {
		res := WorkoutPlan(fullWeek())
		assert.True(t, res.Valid)
		assert.Empty(t, res.Errors)
		require.Len(t, res.Workouts, 7)
		assert.Equal(t, "Monday", res.Workouts[0].Day)
		assert.Equal(t, "Sunday", res.Workouts[6].Day)
	})

	t.Run("five days is flagged but kept", func(t *testing.T) {
		doc := map[string]any{"workouts": []any{
			workoutDay("Monday", map[string]any{"name": "Squat", "sets": 3, "reps": 8, "rest_seconds": 90}),
			workoutDay("Tuesday", map[string]any{"name": "Squat", "sets": 3, "reps": 8, "rest_seconds": 90}),
			restDay("Wednesday"),
			workoutDay("Thursday", map[string]any{"name": "Squat", "sets": 3, "reps": 8, "rest_seconds": 90}),
			restDay("Friday"),
		}}
		res := WorkoutPlan(doc)
		assert.False(t, res.Valid)
		assert.Contains(t, res.Errors, "workout plan must have 7 days, got 5")
		assert.Len(t, res.Workouts, 5)
	})

	t.Run("missing workouts list", func(t *testing.T) {
		res := WorkoutPlan(map[string]any{})
		assert.False(t, res.Valid)
		assert.Empty(t, res.Workouts)
	})

	t.Run("invalid day name forced to position", func(t *testing.T) {
		doc := fullWeek()
		doc["workouts"].([]any)[1].(map[string]any)["day"] = "Someday"
		res := WorkoutPlan(doc)
		assert.False(t, res.Valid)
		assert.Equal(t, "Tuesday", res.Workouts[1].Day)
	})

	t.Run("day name casing is canonicalized", func(t *testing.T) {
		doc := fullWeek()
		doc["workouts"].([]any)[0].(map[string]any)["day"] = "monday"
		res := WorkoutPlan(doc)
		assert.True(t, res.Valid)
		assert.Equal(t, "Monday", res.Workouts[0].Day)
	})

	t.Run("rest day exercises dropped silently", func(t *testing.T) {
		doc := fullWeek()
		doc["workouts"].([]any)[2].(map[string]any)["exercises"] = []any{
			map[string]any{"name": "Squat", "sets": 3, "reps": 8, "rest_seconds": 90},
		}
		res := WorkoutPlan(doc)
		assert.True(t, res.Valid)
		assert.Empty(t, res.Workouts[2].Exercises)
	})

	t.Run("training day without exercises", func(t *testing.T) {
		doc := fullWeek()
		delete(doc["workouts"].([]any)[0].(map[string]any), "exercises")
		res := WorkoutPlan(doc)
		assert.False(t, res.Valid)
		assert.Contains(t, res.Errors, "Monday is not a rest day but has no exercises")
	})
}

func TestWorkoutPlanSanitizesExercises(t *testing.T) {
	build := func(ex map[string]any) map[string]any {
		doc := fullWeek()
		doc["workouts"].([]any)[0] = workoutDay("Monday", ex)
		return doc
	}

	t.Run("bounds clamped", func(t *testing.T) {
		res := WorkoutPlan(build(map[string]any{
			"name": "Squat", "sets": 15, "reps": 500, "rest_seconds": 5,
		}))
		ex := res.Workouts[0].Exercises[0]
		assert.Equal(t, 10, ex.Sets)
		assert.Equal(t, 100, ex.Reps)
		assert.Equal(t, 15, ex.RestSeconds)
	})

	t.Run("numeric strings coerced", func(t *testing.T) {
		res := WorkoutPlan(build(map[string]any{
			"name": "Squat", "sets": "4", "reps": "12", "rest_seconds": "60",
		}))
		ex := res.Workouts[0].Exercises[0]
		assert.Equal(t, 4, ex.Sets)
		assert.Equal(t, 12, ex.Reps)
	})

	t.Run("missing fields defaulted", func(t *testing.T) {
		res := WorkoutPlan(build(map[string]any{"name": "Squat"}))
		ex := res.Workouts[0].Exercises[0]
		assert.Equal(t, 3, ex.Sets)
		assert.Equal(t, 10, ex.Reps)
		assert.Equal(t, 60, ex.RestSeconds)
	})

	t.Run("timed exercise keeps zero reps", func(t *testing.T) {
		res := WorkoutPlan(build(map[string]any{
			"name": "Plank", "sets": 3, "duration_seconds": 45, "rest_seconds": 60,
		}))
		ex := res.Workouts[0].Exercises[0]
		assert.Equal(t, 0, ex.Reps)
		assert.Equal(t, 45, ex.DurationSeconds)
	})

	t.Run("missing name placeholder", func(t *testing.T) {
		res := WorkoutPlan(build(map[string]any{"sets": 3, "reps": 8, "rest_seconds": 60}))
		assert.False(t, res.Valid)
		assert.Equal(t, "Unnamed exercise", res.Workouts[0].Exercises[0].Name)
	})
}
