// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package getworkoutplan

import (
	"context"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"

	"github.com/curioswitch/fitchat/internal/fitchatdb"
)

// Response carries the user's active workout plan.
type Response struct {
	WorkoutPlan *fitchatdb.WorkoutPlan `json:"workoutPlan"`
}

// NewHandler returns a Handler.
func NewHandler(store *fitchatdb.Store) *Handler {
	return &Handler{store: store}
}

// Handler returns the active workout plan.
type Handler struct {
	store *fitchatdb.Store
}

func (h *Handler) GetWorkoutPlan(ctx context.Context) (*Response, error) {
	userID := firebaseauth.TokenFromContext(ctx).UID
	plan, err := h.store.GetActiveWorkoutPlan(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Response{WorkoutPlan: plan}, nil
}
