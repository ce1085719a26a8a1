// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package recalcnutrition

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"

	"github.com/curioswitch/fitchat/internal/fitchatdb"
	"github.com/curioswitch/fitchat/internal/nutrition"
	"github.com/curioswitch/fitchat/internal/planmod"
)

// rescaleTolerance is how far the active plan's average daily calories may
// drift from the recomputed target before the plan's portions are rescaled
// to match. Smaller drifts only update the stored targets.
const rescaleTolerance = 0.20

// Request is empty; the recalculation works from the stored profile.
type Request struct{}

// Response carries the recomputed targets and, when the plan's portions were
// rescaled, the updated plan.
type Response struct {
	Targets  fitchatdb.Nutrition `json:"targets"`
	Rescaled bool                `json:"rescaled"`
	MealPlan *fitchatdb.MealPlan `json:"mealPlan,omitempty"`
}

// NewHandler returns a Handler.
func NewHandler(store *fitchatdb.Store) *Handler {
	return &Handler{store: store}
}

// Handler recomputes calorie/macro targets after profile changes and brings
// the active meal plan back in line with them.
type Handler struct {
	store *fitchatdb.Store
}

func (h *Handler) Recalculate(ctx context.Context, _ *Request) (*Response, error) {
	userID := firebaseauth.TokenFromContext(ctx).UID

	profile, err := h.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	targets := nutrition.Targets(profile)
	res := &Response{Targets: targets}

	plan, err := h.store.GetActiveMealPlan(ctx, userID)
	if errors.Is(err, fitchatdb.ErrNotFound) {
		return res, nil
	}
	if err != nil {
		return nil, fmt.Errorf("recalcnutrition: fetching meal plan: %w", err)
	}

	// Compare against what the plan actually provides rather than its stored
	// target; chat-driven portion changes may have moved the two apart.
	if avg := averageDailyCalories(plan.Days); avg > 0 && targets.Calories > 0 {
		drift := math.Abs(avg-float64(targets.Calories)) / float64(targets.Calories)
		if drift > rescaleTolerance {
			plan.Days = planmod.RescaleMealDays(plan.Days, float64(targets.Calories)/avg)
			res.Rescaled = true
		}
	}
	plan.SetTargets(targets)
	if err := h.store.SaveMealPlan(ctx, userID, plan); err != nil {
		return nil, fmt.Errorf("recalcnutrition: saving meal plan: %w", err)
	}
	res.MealPlan = plan
	return res, nil
}

func averageDailyCalories(days []fitchatdb.MealDay) float64 {
	if len(days) == 0 {
		return 0
	}
	total := 0
	for _, day := range days {
		total += day.DailyTotals.Calories
	}
	return float64(total) / float64(len(days))
}
