// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package fitchatdb

import "time"

// CheckIn is a weekly check-in record. Check-ins are immutable once created
// and are only read back as history when generating future plans.
type CheckIn struct {
	// ID is the unique identifier of the check-in.
	ID string `firestore:"id" json:"id"`

	// PlanID is the workout plan the check-in refers to.
	PlanID string `firestore:"planId" json:"planId"`

	// Week is the week number of the plan the check-in covers.
	Week int `firestore:"week" json:"week"`

	// EnergyLevel rating, 1-5.
	EnergyLevel int `firestore:"energyLevel" json:"energyLevel"`

	// SorenessLevel rating, 1-5.
	SorenessLevel int `firestore:"sorenessLevel" json:"sorenessLevel"`

	// DifficultyRating of the past week's workouts, 1-5.
	DifficultyRating int `firestore:"difficultyRating" json:"difficultyRating"`

	// CompletedWorkouts out of TotalWorkouts for the week.
	CompletedWorkouts int `firestore:"completedWorkouts" json:"completedWorkouts"`

	// TotalWorkouts scheduled for the week.
	TotalWorkouts int `firestore:"totalWorkouts" json:"totalWorkouts"`

	// Preferences is free-form feedback for the next week.
	Preferences string `firestore:"preferences,omitempty" json:"preferences,omitempty"`

	// ProgressPhotoURL is an optional photo uploaded with the check-in.
	ProgressPhotoURL string `firestore:"progressPhotoUrl,omitempty" json:"progressPhotoUrl,omitempty"`

	// CreatedAt is the timestamp when the check-in was recorded.
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}
