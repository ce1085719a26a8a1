// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package planvalidate

import (
	"fmt"

	"github.com/curioswitch/fitchat/internal/fitchatdb"
)

// Bounds for workout documents. Values outside are clamped, absent values
// take the default.
const (
	minDurationMinutes     = 15
	maxDurationMinutes     = 120
	defaultDurationMinutes = 45

	minSets     = 1
	maxSets     = 10
	defaultSets = 3

	minReps     = 1
	maxReps     = 100
	defaultReps = 10

	minExerciseSeconds     = 5
	maxExerciseSeconds     = 600
	defaultExerciseSeconds = 30

	minRestSeconds     = 15
	maxRestSeconds     = 300
	defaultRestSeconds = 60
)

// placeholderExercise replaces an exercise whose name is missing.
const placeholderExercise = "Unnamed exercise"

// WorkoutResult is the outcome of sanitizing a workout plan document.
// Workouts is always usable, even when Valid is false.
type WorkoutResult struct {
	Valid    bool
	Errors   []string
	Workouts []fitchatdb.WorkoutDay
}

// WorkoutPlan sanitizes a loosely-typed workout plan document, expected to
// carry a "workouts" list of seven day entries. Problems are recorded and
// repaired in place rather than rejected: day names are forced to the
// canonical name for their position, numeric fields are clamped or
// defaulted, rest days lose their exercises.
func WorkoutPlan(doc map[string]any) WorkoutResult {
	res := WorkoutResult{Valid: true, Workouts: []fitchatdb.WorkoutDay{}}
	fail := func(format string, args ...any) {
		res.Valid = false
		res.Errors = append(res.Errors, fmt.Sprintf(format, args...))
	}

	entries, ok := AsSlice(doc["workouts"])
	if !ok {
		fail("workouts must be a list of days")
		return res
	}
	if len(entries) != 7 {
		fail("workout plan must have 7 days, got %d", len(entries))
	}

	for i, entry := range entries {
		day := fitchatdb.WorkoutDay{Day: fitchatdb.Weekdays[i%len(fitchatdb.Weekdays)]}
		m, ok := AsMap(entry)
		if !ok {
			fail("day %d is not an object", i+1)
			res.Workouts = append(res.Workouts, day)
			continue
		}

		if name, ok := Str(m, "day"); ok && fitchatdb.WeekdayIndex(name) >= 0 {
			day.Day = fitchatdb.Weekdays[fitchatdb.WeekdayIndex(name)]
		} else {
			fail("day %d has a missing or invalid day name, using %s", i+1, day.Day)
		}
		day.Focus, _ = Str(m, "focus")
		day.IsRestDay, _ = Bool(m, "isRestDay")

		if day.IsRestDay {
			// Rest days carry no exercises and no duration.
			day.Exercises = []fitchatdb.Exercise{}
			res.Workouts = append(res.Workouts, day)
			continue
		}

		if dur, ok := Int(m, "duration_minutes"); ok {
			day.DurationMinutes = ClampInt(dur, minDurationMinutes, maxDurationMinutes)
		} else {
			day.DurationMinutes = defaultDurationMinutes
		}

		exs, ok := AsSlice(m["exercises"])
		if !ok || len(exs) == 0 {
			fail("%s is not a rest day but has no exercises", day.Day)
			day.Exercises = []fitchatdb.Exercise{}
			res.Workouts = append(res.Workouts, day)
			continue
		}
		day.Exercises = make([]fitchatdb.Exercise, 0, len(exs))
		for j, e := range exs {
			em, ok := AsMap(e)
			if !ok {
				fail("%s exercise %d is not an object", day.Day, j+1)
				continue
			}
			day.Exercises = append(day.Exercises, sanitizeExercise(em, day.Day, j, fail))
		}
		res.Workouts = append(res.Workouts, day)
	}
	return res
}

func sanitizeExercise(m map[string]any, day string, idx int, fail func(string, ...any)) fitchatdb.Exercise {
	var ex fitchatdb.Exercise
	if name, ok := Str(m, "name"); ok && name != "" {
		ex.Name = name
	} else {
		ex.Name = placeholderExercise
		fail("%s exercise %d has no name", day, idx+1)
	}
	if sets, ok := Int(m, "sets"); ok {
		ex.Sets = ClampInt(sets, minSets, maxSets)
	} else {
		ex.Sets = defaultSets
	}
	if _, present := m["reps"]; present {
		if reps, ok := Int(m, "reps"); ok {
			ex.Reps = ClampInt(reps, minReps, maxReps)
		} else {
			ex.Reps = defaultReps
		}
	}
	if _, present := m["duration_seconds"]; present {
		if dur, ok := Int(m, "duration_seconds"); ok {
			ex.DurationSeconds = ClampInt(dur, minExerciseSeconds, maxExerciseSeconds)
		} else {
			ex.DurationSeconds = defaultExerciseSeconds
		}
	}
	if ex.Reps == 0 && ex.DurationSeconds == 0 {
		// Neither reps nor a duration supplied; default to a rep scheme.
		ex.Reps = defaultReps
	}
	if rest, ok := Int(m, "rest_seconds"); ok {
		ex.RestSeconds = ClampInt(rest, minRestSeconds, maxRestSeconds)
	} else {
		ex.RestSeconds = defaultRestSeconds
	}
	ex.Notes, _ = Str(m, "notes")
	return ex
}
