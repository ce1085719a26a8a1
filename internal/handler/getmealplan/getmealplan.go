// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package getmealplan

import (
	"context"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"

	"github.com/curioswitch/fitchat/internal/fitchatdb"
)

// Response carries the user's active meal plan.
type Response struct {
	MealPlan *fitchatdb.MealPlan `json:"mealPlan"`
}

// NewHandler returns a Handler.
func NewHandler(store *fitchatdb.Store) *Handler {
	return &Handler{store: store}
}

// Handler returns the active meal plan.
type Handler struct {
	store *fitchatdb.Store
}

func (h *Handler) GetMealPlan(ctx context.Context) (*Response, error) {
	userID := firebaseauth.TokenFromContext(ctx).UID
	plan, err := h.store.GetActiveMealPlan(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Response{MealPlan: plan}, nil
}
