// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package checkin

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"
	"github.com/google/uuid"

	"github.com/curioswitch/fitchat/internal/file"
	"github.com/curioswitch/fitchat/internal/fitchatdb"
	"github.com/curioswitch/fitchat/internal/llm"
	"github.com/curioswitch/fitchat/internal/planvalidate"
)

// checkInHistory is how many past check-ins are fed back into plan
// generation.
const checkInHistory = 5

// Request is a weekly check-in. Ratings are 1-5. ProgressPhoto optionally
// carries a base64-encoded JPEG.
type Request struct {
	Week              int    `json:"week"`
	EnergyLevel       int    `json:"energyLevel"`
	SorenessLevel     int    `json:"sorenessLevel"`
	DifficultyRating  int    `json:"difficultyRating"`
	CompletedWorkouts int    `json:"completedWorkouts"`
	TotalWorkouts     int    `json:"totalWorkouts"`
	Preferences       string `json:"preferences,omitempty"`
	ProgressPhoto     string `json:"progressPhoto,omitempty"`
}

// Response carries the stored check-in and the regenerated workout plan.
type Response struct {
	CheckIn     *fitchatdb.CheckIn     `json:"checkIn"`
	WorkoutPlan *fitchatdb.WorkoutPlan `json:"workoutPlan"`
	Warnings    []string               `json:"warnings,omitempty"`
}

// NewHandler returns a Handler.
func NewHandler(store *fitchatdb.Store, oracle *llm.Oracle, files *file.IO) *Handler {
	return &Handler{
		store:  store,
		oracle: oracle,
		files:  files,
	}
}

// Handler records weekly check-ins and progresses the workout plan from
// them. The meal plan is left alone; nutrition changes go through the
// recalculation endpoint or the coach.
type Handler struct {
	store  *fitchatdb.Store
	oracle *llm.Oracle
	files  *file.IO
}

func (h *Handler) CheckIn(ctx context.Context, req *Request) (*Response, error) {
	userID := firebaseauth.TokenFromContext(ctx).UID

	profile, err := h.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("checkin: fetching profile: %w", err)
	}
	plan, err := h.store.GetActiveWorkoutPlan(ctx, userID)
	if err != nil && !errors.Is(err, fitchatdb.ErrNotFound) {
		return nil, fmt.Errorf("checkin: fetching workout plan: %w", err)
	}

	checkIn := &fitchatdb.CheckIn{
		ID:                uuid.NewString(),
		Week:              req.Week,
		EnergyLevel:       planvalidate.ClampInt(req.EnergyLevel, 1, 5),
		SorenessLevel:     planvalidate.ClampInt(req.SorenessLevel, 1, 5),
		DifficultyRating:  planvalidate.ClampInt(req.DifficultyRating, 1, 5),
		CompletedWorkouts: req.CompletedWorkouts,
		TotalWorkouts:     req.TotalWorkouts,
		Preferences:       req.Preferences,
	}
	if plan != nil {
		checkIn.PlanID = plan.ID
	}
	if req.ProgressPhoto != "" {
		photo, err := base64.StdEncoding.DecodeString(req.ProgressPhoto)
		if err != nil {
			return nil, fmt.Errorf("checkin: decoding progress photo: %w", err)
		}
		url, err := h.files.WriteFile(ctx, fmt.Sprintf("progress/%s/%s.jpg", userID, checkIn.ID), "image/jpeg", photo)
		if err != nil {
			return nil, fmt.Errorf("checkin: uploading progress photo: %w", err)
		}
		checkIn.ProgressPhotoURL = url
	}
	if err := h.store.AddCheckIn(ctx, userID, checkIn); err != nil {
		return nil, fmt.Errorf("checkin: saving check-in: %w", err)
	}

	history, err := h.store.ListCheckIns(ctx, userID, checkInHistory)
	if err != nil {
		return nil, fmt.Errorf("checkin: listing check-ins: %w", err)
	}

	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("checkin: marshalling profile: %w", err)
	}
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return nil, fmt.Errorf("checkin: marshalling check-ins: %w", err)
	}
	doc, err := h.oracle.GenerateWorkoutPlan(ctx, []string{
		string(profileJSON),
		"The user's recent weekly check-ins, newest first:\n" + string(historyJSON),
	})
	if err != nil {
		return nil, fmt.Errorf("checkin: generating workout plan: %w", err)
	}

	workoutRes := planvalidate.WorkoutPlan(doc)
	focus, _ := planvalidate.Str(doc, "focus")
	newPlan := &fitchatdb.WorkoutPlan{
		ID:       uuid.NewString(),
		Focus:    focus,
		Workouts: workoutRes.Workouts,
	}
	if err := h.store.CreateWorkoutPlan(ctx, userID, newPlan); err != nil {
		return nil, fmt.Errorf("checkin: saving workout plan: %w", err)
	}

	return &Response{
		CheckIn:     checkIn,
		WorkoutPlan: newPlan,
		Warnings:    workoutRes.Errors,
	}, nil
}
