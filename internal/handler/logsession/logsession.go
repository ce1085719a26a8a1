// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package logsession

import (
	"context"
	"errors"
	"fmt"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"
	"github.com/google/uuid"

	"github.com/curioswitch/fitchat/internal/fitchatdb"
)

// Request logs a completed training session against the active plan.
type Request struct {
	Day                string   `json:"day"`
	DurationMinutes    int      `json:"duration_minutes"`
	CompletedExercises []string `json:"completedExercises"`
	Notes              string   `json:"notes,omitempty"`
}

// Response carries the stored session.
type Response struct {
	Session *fitchatdb.WorkoutSession `json:"session"`
}

// NewHandler returns a Handler.
func NewHandler(store *fitchatdb.Store) *Handler {
	return &Handler{store: store}
}

// Handler records workout sessions.
type Handler struct {
	store *fitchatdb.Store
}

func (h *Handler) LogSession(ctx context.Context, req *Request) (*Response, error) {
	if fitchatdb.WeekdayIndex(req.Day) < 0 {
		return nil, errors.New("logsession: day must be a weekday name")
	}
	userID := firebaseauth.TokenFromContext(ctx).UID

	session := &fitchatdb.WorkoutSession{
		ID:                 uuid.NewString(),
		Day:                fitchatdb.Weekdays[fitchatdb.WeekdayIndex(req.Day)],
		DurationMinutes:    req.DurationMinutes,
		CompletedExercises: req.CompletedExercises,
		Notes:              req.Notes,
	}
	if plan, err := h.store.GetActiveWorkoutPlan(ctx, userID); err == nil {
		session.PlanID = plan.ID
	} else if !errors.Is(err, fitchatdb.ErrNotFound) {
		return nil, fmt.Errorf("logsession: fetching workout plan: %w", err)
	}

	if err := h.store.AddSession(ctx, userID, session); err != nil {
		return nil, fmt.Errorf("logsession: saving session: %w", err)
	}
	return &Response{Session: session}, nil
}
