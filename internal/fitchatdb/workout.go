// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package fitchatdb

import "time"

// Exercise is a single exercise within a workout day. Field names follow the
// persisted document schema and must not be renamed.
type Exercise struct {
	// Name of the exercise.
	Name string `firestore:"name" json:"name"`

	// Sets to perform, 1-10.
	Sets int `firestore:"sets" json:"sets"`

	// Reps per set, 1-100. Zero when the exercise is timed instead.
	Reps int `firestore:"reps,omitempty" json:"reps,omitempty"`

	// DurationSeconds for timed exercises, 5-600. Zero when rep-based.
	DurationSeconds int `firestore:"duration_seconds,omitempty" json:"duration_seconds,omitempty"`

	// RestSeconds between sets, 15-300.
	RestSeconds int `firestore:"rest_seconds" json:"rest_seconds"`

	// Notes for form cues or modifications.
	Notes string `firestore:"notes,omitempty" json:"notes,omitempty"`
}

// WorkoutDay is one day of a workout plan. A plan always has seven entries
// sorted in canonical weekday order.
type WorkoutDay struct {
	// Day is the canonical weekday name, unique within a plan.
	Day string `firestore:"day" json:"day"`

	// Focus describes the day, e.g. "Upper body push".
	Focus string `firestore:"focus" json:"focus"`

	// DurationMinutes is the expected session length, 15-120. Zero for rest
	// days.
	DurationMinutes int `firestore:"duration_minutes" json:"duration_minutes"`

	// IsRestDay marks a rest day. Rest days carry no exercises.
	IsRestDay bool `firestore:"isRestDay" json:"isRestDay"`

	// Exercises for the day, in execution order.
	Exercises []Exercise `firestore:"exercises" json:"exercises"`
}

// WorkoutPlan is a weekly workout plan stored in the workoutPlans collection
// of a user. Exactly one plan per user is active at a time; creating a new
// plan inserts a new document and deactivates the previous active one.
type WorkoutPlan struct {
	// ID is the unique identifier of the plan.
	ID string `firestore:"id" json:"id"`

	// UserID is the ID of the owning user.
	UserID string `firestore:"userId" json:"userId"`

	// Focus summarizes the week, e.g. "Strength block, week 2".
	Focus string `firestore:"focus,omitempty" json:"focus,omitempty"`

	// Workouts are the seven days of the plan in canonical weekday order.
	Workouts []WorkoutDay `firestore:"workouts" json:"workouts"`

	// Active reports whether this is the user's current plan.
	Active bool `firestore:"active" json:"active"`

	// Version increments on every save and guards concurrent writers.
	Version int64 `firestore:"version" json:"version"`

	// CreatedAt is the timestamp when the plan was created.
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}

// WorkoutSession is a logged training session.
type WorkoutSession struct {
	// ID is the unique identifier of the session.
	ID string `firestore:"id" json:"id"`

	// PlanID is the workout plan the session was performed from.
	PlanID string `firestore:"planId" json:"planId"`

	// Day is the weekday of the session.
	Day string `firestore:"day" json:"day"`

	// DurationMinutes is how long the session took.
	DurationMinutes int `firestore:"duration_minutes" json:"duration_minutes"`

	// CompletedExercises are the names of exercises finished.
	CompletedExercises []string `firestore:"completedExercises" json:"completedExercises"`

	// Notes about the session.
	Notes string `firestore:"notes,omitempty" json:"notes,omitempty"`

	// CreatedAt is the timestamp when the session was logged.
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}
