// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package planmod

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curioswitch/fitchat/internal/fitchatdb"
)

func intp(v int) *int { return &v }

func testWeek() []fitchatdb.WorkoutDay {
	return []fitchatdb.WorkoutDay{
		{
			Day: "Monday", Focus: "Push", DurationMinutes: 60,
			Exercises: []fitchatdb.Exercise{
				{Name: "Warmup: Arm Circles", Sets: 1, Reps: 15, RestSeconds: 30},
				{Name: "Barbell Bench Press", Sets: 4, Reps: 8, RestSeconds: 120},
				{Name: "Overhead Press", Sets: 3, Reps: 10, RestSeconds: 90},
				{Name: "Plank", Sets: 3, DurationSeconds: 45, RestSeconds: 60},
			},
		},
		{Day: "Tuesday", Focus: "Rest", IsRestDay: true, Exercises: []fitchatdb.Exercise{}},
		{
			Day: "Wednesday", Focus: "Pull", DurationMinutes: 60,
			Exercises: []fitchatdb.Exercise{
				{Name: "Deadlift", Sets: 3, Reps: 5, RestSeconds: 180},
				{Name: "Pull Up", Sets: 3, Reps: 8, RestSeconds: 90},
			},
		},
		{Day: "Thursday", Focus: "Rest", IsRestDay: true, Exercises: []fitchatdb.Exercise{}},
		{
			Day: "Friday", Focus: "Legs", DurationMinutes: 60,
			Exercises: []fitchatdb.Exercise{
				{Name: "Back Squat", Sets: 4, Reps: 6, RestSeconds: 150},
				{Name: "Walking Lunge", Sets: 3, Reps: 12, RestSeconds: 60},
			},
		},
		{Day: "Saturday", Focus: "Rest", IsRestDay: true, Exercises: []fitchatdb.Exercise{}},
		{Day: "Sunday", Focus: "Rest", IsRestDay: true, Exercises: []fitchatdb.Exercise{}},
	}
}

func dayNames(days []fitchatdb.WorkoutDay) []string {
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.Day
	}
	return names
}

func TestSwapExercise(t *testing.T) {
	t.Run("substring match, keeps unsupplied fields", func(t *testing.T) {
		week := testWeek()
		res := ApplyWorkout(week, SwapExercise{
			Day:      "monday",
			Exercise: "bench press",
			New:      ExerciseSpec{Name: "Dumbbell Bench Press", Sets: intp(3)},
		})
		require.True(t, res.OK)
		ex := res.Workouts[0].Exercises[1]
		assert.Equal(t, "Dumbbell Bench Press", ex.Name)
		assert.Equal(t, 3, ex.Sets)
		// Reps and rest carried over from the replaced exercise.
		assert.Equal(t, 8, ex.Reps)
		assert.Equal(t, 120, ex.RestSeconds)
	})

	t.Run("missing exercise leaves input untouched", func(t *testing.T) {
		week := testWeek()
		before := testWeek()
		res := ApplyWorkout(week, SwapExercise{
			Day:      "Monday",
			Exercise: "Leg Press",
			New:      ExerciseSpec{Name: "Hack Squat"},
		})
		assert.False(t, res.OK)
		assert.Nil(t, res.Workouts)
		assert.Empty(t, cmp.Diff(before, week))
	})

	t.Run("missing day", func(t *testing.T) {
		res := ApplyWorkout(testWeek(), SwapExercise{
			Day:      "Funday",
			Exercise: "Bench",
			New:      ExerciseSpec{Name: "Press"},
		})
		assert.False(t, res.OK)
		assert.Equal(t, "No workout found for Funday.", res.Message)
	})
}

func TestAdjustIntensity(t *testing.T) {
	t.Run("all workouts with floors", func(t *testing.T) {
		res := ApplyWorkout(testWeek(), AdjustIntensity{
			Target:         "all_workouts",
			AdjustmentType: "decrease",
			SetsChange:     -2,
			RepsChange:     -4,
			RestChange:     -200,
		})
		require.True(t, res.OK)
		warmup := res.Workouts[0].Exercises[0]
		assert.Equal(t, 1, warmup.Sets)
		assert.Equal(t, 11, warmup.Reps)
		assert.Equal(t, 15, warmup.RestSeconds)
		// Timed exercises keep zero reps.
		plank := res.Workouts[0].Exercises[3]
		assert.Equal(t, 0, plank.Reps)
		assert.Equal(t, 1, plank.Sets)
	})

	t.Run("single day untouched elsewhere", func(t *testing.T) {
		res := ApplyWorkout(testWeek(), AdjustIntensity{
			Target:         "Friday",
			AdjustmentType: "increase",
			SetsChange:     1,
		})
		require.True(t, res.OK)
		assert.Equal(t, 5, res.Workouts[4].Exercises[0].Sets)
		assert.Equal(t, 4, res.Workouts[0].Exercises[1].Sets)
	})

	t.Run("no change requested acknowledges without mutation", func(t *testing.T) {
		res := ApplyWorkout(testWeek(), AdjustIntensity{Target: "Friday", AdjustmentType: "increase"})
		assert.True(t, res.OK)
		assert.Nil(t, res.Workouts)
	})
}

func TestAddExercise(t *testing.T) {
	t.Run("after warmup", func(t *testing.T) {
		res := ApplyWorkout(testWeek(), AddExercise{
			Day:      "Monday",
			Position: "after_warmup",
			New:      ExerciseSpec{Name: "Incline Press", Sets: intp(3), Reps: intp(10)},
		})
		require.True(t, res.OK)
		assert.Equal(t, "Incline Press", res.Workouts[0].Exercises[1].Name)
		assert.Len(t, res.Workouts[0].Exercises, 5)
	})

	t.Run("after warmup at end of day", func(t *testing.T) {
		week := testWeek()
		week[2].Exercises = append(week[2].Exercises, fitchatdb.Exercise{
			Name: "Warm Up: Band Pull Apart", Sets: 2, Reps: 15, RestSeconds: 30,
		})
		res := ApplyWorkout(week, AddExercise{
			Day:      "Wednesday",
			Position: "after_warmup",
			New:      ExerciseSpec{Name: "Barbell Row"},
		})
		require.True(t, res.OK)
		require.Len(t, res.Workouts[2].Exercises, 4)
		assert.Equal(t, "Warm Up: Band Pull Apart", res.Workouts[2].Exercises[2].Name)
		assert.Equal(t, "Barbell Row", res.Workouts[2].Exercises[3].Name)
	})

	t.Run("no warmup falls back to start", func(t *testing.T) {
		res := ApplyWorkout(testWeek(), AddExercise{
			Day:      "Friday",
			Position: "after_warmup",
			New:      ExerciseSpec{Name: "Leg Swings"},
		})
		require.True(t, res.OK)
		assert.Equal(t, "Leg Swings", res.Workouts[4].Exercises[0].Name)
		assert.Equal(t, "Back Squat", res.Workouts[4].Exercises[1].Name)
	})

	t.Run("defaults applied", func(t *testing.T) {
		res := ApplyWorkout(testWeek(), AddExercise{
			Day: "Wednesday",
			New: ExerciseSpec{Name: "Face Pull"},
		})
		require.True(t, res.OK)
		ex := res.Workouts[2].Exercises[2]
		assert.Equal(t, 3, ex.Sets)
		assert.Equal(t, 10, ex.Reps)
		assert.Equal(t, 60, ex.RestSeconds)
	})

	t.Run("rest day rejected", func(t *testing.T) {
		res := ApplyWorkout(testWeek(), AddExercise{
			Day: "Tuesday",
			New: ExerciseSpec{Name: "Squat"},
		})
		assert.False(t, res.OK)
		assert.Equal(t, "Tuesday is a rest day.", res.Message)
	})
}

func TestRemoveExercise(t *testing.T) {
	res := ApplyWorkout(testWeek(), RemoveExercise{Day: "Wednesday", Exercise: "pull up"})
	require.True(t, res.OK)
	require.Len(t, res.Workouts[2].Exercises, 1)
	assert.Equal(t, "Deadlift", res.Workouts[2].Exercises[0].Name)
}

func TestModifyForInjury(t *testing.T) {
	t.Run("mixed actions with silent skips", func(t *testing.T) {
		res := ApplyWorkout(testWeek(), ModifyForInjury{
			Injury: "sore knee",
			Modifications: []InjuryModification{
				{Day: "Friday", Exercise: "back squat", Action: "replace", Substitute: &ExerciseSpec{Name: "Leg Press"}},
				{Day: "Friday", Exercise: "walking lunge", Action: "remove"},
				{Day: "Monday", Exercise: "bench press", Action: "reduce_intensity"},
				{Day: "Friday", Exercise: "box jump", Action: "remove"}, // not in plan, skipped
			},
		})
		require.True(t, res.OK)
		friday := res.Workouts[4]
		require.Len(t, friday.Exercises, 1)
		assert.Equal(t, "Leg Press", friday.Exercises[0].Name)
		// Replacement carries over set/rep scheme from the original.
		assert.Equal(t, 4, friday.Exercises[0].Sets)
		assert.Equal(t, 150, friday.Exercises[0].RestSeconds)
		assert.Equal(t, 3, res.Workouts[0].Exercises[1].Sets)
	})

	t.Run("nothing matched acknowledges without mutation", func(t *testing.T) {
		res := ApplyWorkout(testWeek(), ModifyForInjury{
			Injury: "sore knee",
			Modifications: []InjuryModification{
				{Day: "Monday", Exercise: "box jump", Action: "remove"},
			},
		})
		assert.True(t, res.OK)
		assert.Nil(t, res.Workouts)
	})
}

func TestChangeWorkoutDay(t *testing.T) {
	t.Run("swap keeps canonical order", func(t *testing.T) {
		res := ApplyWorkout(testWeek(), ChangeWorkoutDay{FromDay: "Monday", ToDay: "Saturday"})
		require.True(t, res.OK)
		assert.Equal(t, []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"},
			dayNames(res.Workouts))
		assert.True(t, res.Workouts[0].IsRestDay)
		assert.Equal(t, "Push", res.Workouts[5].Focus)
		assert.False(t, res.Workouts[5].IsRestDay)
	})

	t.Run("invalid target day", func(t *testing.T) {
		res := ApplyWorkout(testWeek(), ChangeWorkoutDay{FromDay: "Monday", ToDay: "Restday"})
		assert.False(t, res.OK)
	})
}
