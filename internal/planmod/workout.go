// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package planmod

import (
	"fmt"
	"sort"
	"strings"

	"github.com/curioswitch/fitchat/internal/fitchatdb"
)

// Floors applied after intensity adjustments.
const (
	minAdjustedSets = 1
	minAdjustedReps = 1
	minAdjustedRest = 15
)

// WorkoutResult is the outcome of applying one operation to a workout plan.
// Workouts is nil when the plan is unchanged; on failure the input is left
// untouched.
type WorkoutResult struct {
	OK       bool
	Message  string
	Workouts []fitchatdb.WorkoutDay
}

func workoutFailure(format string, args ...any) WorkoutResult {
	return WorkoutResult{Message: fmt.Sprintf(format, args...)}
}

func workoutSuccess(workouts []fitchatdb.WorkoutDay, format string, args ...any) WorkoutResult {
	return WorkoutResult{OK: true, Message: fmt.Sprintf(format, args...), Workouts: workouts}
}

// workoutNoChange acknowledges an operation that had nothing to do. Workouts
// stays nil so the plan is not persisted.
func workoutNoChange(format string, args ...any) WorkoutResult {
	return WorkoutResult{OK: true, Message: fmt.Sprintf(format, args...)}
}

// ApplyWorkout applies op to a copy of workouts and returns the result. The
// input slice is never mutated, so a failed operation has no effect.
func ApplyWorkout(workouts []fitchatdb.WorkoutDay, op Operation) WorkoutResult {
	days := copyWorkouts(workouts)
	switch o := op.(type) {
	case SwapExercise:
		return swapExercise(days, o)
	case AdjustIntensity:
		return adjustIntensity(days, o)
	case AddExercise:
		return addExercise(days, o)
	case RemoveExercise:
		return removeExercise(days, o)
	case ModifyForInjury:
		return modifyForInjury(days, o)
	case ChangeWorkoutDay:
		return changeWorkoutDay(days, o)
	case UnknownOperation:
		return workoutFailure("Unknown operation %q.", o.Name)
	default:
		return workoutFailure("Operation does not apply to workout plans.")
	}
}

func copyWorkouts(workouts []fitchatdb.WorkoutDay) []fitchatdb.WorkoutDay {
	days := make([]fitchatdb.WorkoutDay, len(workouts))
	copy(days, workouts)
	for i := range days {
		days[i].Exercises = append([]fitchatdb.Exercise(nil), days[i].Exercises...)
	}
	return days
}

func findDay(days []fitchatdb.WorkoutDay, name string) int {
	for i := range days {
		if strings.EqualFold(days[i].Day, name) {
			return i
		}
	}
	return -1
}

// findExercise returns the index of the first exercise whose name contains
// query, case-insensitively. Users refer to "bench press" when the plan says
// "Barbell Bench Press".
func findExercise(exercises []fitchatdb.Exercise, query string) int {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return -1
	}
	for i := range exercises {
		if strings.Contains(strings.ToLower(exercises[i].Name), q) {
			return i
		}
	}
	return -1
}

// sortCanonical orders days Monday through Sunday. Days with an unknown name
// keep their relative order at the end.
func sortCanonical(days []fitchatdb.WorkoutDay) {
	sort.SliceStable(days, func(i, j int) bool {
		a, b := fitchatdb.WeekdayIndex(days[i].Day), fitchatdb.WeekdayIndex(days[j].Day)
		if a < 0 {
			return false
		}
		if b < 0 {
			return true
		}
		return a < b
	})
}

// buildExercise materializes a spec, taking unsupplied fields from base.
func buildExercise(spec ExerciseSpec, base fitchatdb.Exercise) fitchatdb.Exercise {
	ex := base
	if spec.Name != "" {
		ex.Name = spec.Name
	}
	if spec.Sets != nil {
		ex.Sets = max(minAdjustedSets, *spec.Sets)
	}
	if spec.Reps != nil {
		ex.Reps = max(minAdjustedReps, *spec.Reps)
		if spec.DurationSeconds == nil {
			ex.DurationSeconds = 0
		}
	}
	if spec.DurationSeconds != nil {
		ex.DurationSeconds = *spec.DurationSeconds
		if spec.Reps == nil {
			ex.Reps = 0
		}
	}
	if spec.RestSeconds != nil {
		ex.RestSeconds = max(minAdjustedRest, *spec.RestSeconds)
	}
	if spec.Notes != "" {
		ex.Notes = spec.Notes
	}
	return ex
}

func swapExercise(days []fitchatdb.WorkoutDay, op SwapExercise) WorkoutResult {
	if op.New.Name == "" {
		return workoutFailure("No replacement exercise was given.")
	}
	di := findDay(days, op.Day)
	if di < 0 {
		return workoutFailure("No workout found for %s.", op.Day)
	}
	ei := findExercise(days[di].Exercises, op.Exercise)
	if ei < 0 {
		return workoutFailure("Couldn't find %q in the %s workout.", op.Exercise, days[di].Day)
	}
	old := days[di].Exercises[ei].Name
	days[di].Exercises[ei] = buildExercise(op.New, days[di].Exercises[ei])
	return workoutSuccess(days, "Swapped %s for %s on %s.", old, days[di].Exercises[ei].Name, days[di].Day)
}

func adjustIntensity(days []fitchatdb.WorkoutDay, op AdjustIntensity) WorkoutResult {
	all := op.Target == "" || strings.EqualFold(op.Target, "all_workouts") || strings.EqualFold(op.Target, "all")
	if !all && findDay(days, op.Target) < 0 {
		return workoutFailure("No workout found for %s.", op.Target)
	}
	if op.SetsChange == 0 && op.RepsChange == 0 && op.RestChange == 0 {
		return workoutNoChange("No intensity change was given, so the plan is unchanged.")
	}
	adjusted := 0
	for i := range days {
		if days[i].IsRestDay {
			continue
		}
		if !all && !strings.EqualFold(days[i].Day, op.Target) {
			continue
		}
		for j := range days[i].Exercises {
			ex := &days[i].Exercises[j]
			ex.Sets = max(minAdjustedSets, ex.Sets+op.SetsChange)
			if ex.Reps > 0 {
				ex.Reps = max(minAdjustedReps, ex.Reps+op.RepsChange)
			}
			ex.RestSeconds = max(minAdjustedRest, ex.RestSeconds+op.RestChange)
			adjusted++
		}
	}
	if adjusted == 0 {
		return workoutNoChange("No exercises to adjust, so the plan is unchanged.")
	}
	scope := "all workouts"
	if !all {
		scope = op.Target
	}
	verb := "Adjusted"
	switch op.AdjustmentType {
	case "increase":
		verb = "Increased"
	case "decrease":
		verb = "Decreased"
	}
	return workoutSuccess(days, "%s intensity for %d exercises across %s.", verb, adjusted, scope)
}

func addExercise(days []fitchatdb.WorkoutDay, op AddExercise) WorkoutResult {
	if op.New.Name == "" {
		return workoutFailure("No exercise name was given.")
	}
	di := findDay(days, op.Day)
	if di < 0 {
		return workoutFailure("No workout found for %s.", op.Day)
	}
	if days[di].IsRestDay {
		return workoutFailure("%s is a rest day.", days[di].Day)
	}

	ex := buildExercise(op.New, fitchatdb.Exercise{Sets: 3, RestSeconds: 60})
	if ex.Reps == 0 && ex.DurationSeconds == 0 {
		ex.Reps = 10
	}

	exs := days[di].Exercises
	pos := len(exs)
	switch op.Position {
	case "start":
		pos = 0
	case "after_warmup":
		found := false
		for i := range exs {
			name := strings.ToLower(exs[i].Name)
			if strings.Contains(name, "warmup") || strings.Contains(name, "warm-up") || strings.Contains(name, "warm up") {
				pos = i + 1
				found = true
				break
			}
		}
		// No warmup in the day, put the exercise first instead.
		if !found {
			pos = 0
		}
	}
	exs = append(exs, fitchatdb.Exercise{})
	copy(exs[pos+1:], exs[pos:])
	exs[pos] = ex
	days[di].Exercises = exs
	return workoutSuccess(days, "Added %s to the %s workout.", ex.Name, days[di].Day)
}

func removeExercise(days []fitchatdb.WorkoutDay, op RemoveExercise) WorkoutResult {
	di := findDay(days, op.Day)
	if di < 0 {
		return workoutFailure("No workout found for %s.", op.Day)
	}
	ei := findExercise(days[di].Exercises, op.Exercise)
	if ei < 0 {
		return workoutFailure("Couldn't find %q in the %s workout.", op.Exercise, days[di].Day)
	}
	removed := days[di].Exercises[ei].Name
	days[di].Exercises = append(days[di].Exercises[:ei], days[di].Exercises[ei+1:]...)
	return workoutSuccess(days, "Removed %s from the %s workout.", removed, days[di].Day)
}

func modifyForInjury(days []fitchatdb.WorkoutDay, op ModifyForInjury) WorkoutResult {
	if len(op.Modifications) == 0 {
		return workoutNoChange("No modifications were given, so the plan is unchanged.")
	}
	applied := 0
	for _, mod := range op.Modifications {
		di := findDay(days, mod.Day)
		if di < 0 {
			continue
		}
		ei := findExercise(days[di].Exercises, mod.Exercise)
		if ei < 0 {
			continue
		}
		switch mod.Action {
		case "remove":
			days[di].Exercises = append(days[di].Exercises[:ei], days[di].Exercises[ei+1:]...)
			applied++
		case "replace":
			if mod.Substitute == nil || mod.Substitute.Name == "" {
				continue
			}
			sub := buildExercise(*mod.Substitute, days[di].Exercises[ei])
			if sub.Notes == days[di].Exercises[ei].Notes {
				sub.Notes = fmt.Sprintf("Substituted due to %s", op.Injury)
			}
			days[di].Exercises[ei] = sub
			applied++
		case "reduce_intensity":
			ex := &days[di].Exercises[ei]
			ex.Sets = max(minAdjustedSets, ex.Sets-1)
			if ex.Notes != "" {
				ex.Notes += "; reduced intensity"
			} else {
				ex.Notes = fmt.Sprintf("Reduced intensity due to %s", op.Injury)
			}
			applied++
		}
	}
	if applied == 0 {
		return workoutNoChange("None of the requested modifications matched the current plan.")
	}
	injury := op.Injury
	if injury == "" {
		injury = "injury"
	}
	return workoutSuccess(days, "Adjusted %d exercises to work around your %s.", applied, injury)
}

func changeWorkoutDay(days []fitchatdb.WorkoutDay, op ChangeWorkoutDay) WorkoutResult {
	if fitchatdb.WeekdayIndex(op.ToDay) < 0 {
		return workoutFailure("%q is not a weekday.", op.ToDay)
	}
	from := findDay(days, op.FromDay)
	if from < 0 {
		return workoutFailure("No workout found for %s.", op.FromDay)
	}
	toName := fitchatdb.Weekdays[fitchatdb.WeekdayIndex(op.ToDay)]
	if strings.EqualFold(days[from].Day, toName) {
		return workoutFailure("The %s workout is already on %s.", days[from].Day, toName)
	}
	fromName := days[from].Day

	if to := findDay(days, toName); to >= 0 {
		// Both days exist: exchange everything but the day labels.
		days[from].Day, days[to].Day = days[to].Day, days[from].Day
	} else {
		days[from].Day = toName
	}
	sortCanonical(days)
	return workoutSuccess(days, "Moved the %s workout to %s.", fromName, toName)
}
