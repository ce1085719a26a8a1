// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package updateprofile

import (
	"context"
	"fmt"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"

	"github.com/curioswitch/fitchat/internal/fitchatdb"
	"github.com/curioswitch/fitchat/internal/nutrition"
	"github.com/curioswitch/fitchat/internal/planvalidate"
)

// Request is a full profile edit from the settings screen. Omitted numeric
// fields keep their stored value.
type Request struct {
	Age                 *int     `json:"age,omitempty"`
	Gender              *string  `json:"gender,omitempty"`
	HeightCm            *float64 `json:"height_cm,omitempty"`
	WeightKg            *float64 `json:"weight_kg,omitempty"`
	FitnessGoal         *string  `json:"fitness_goal,omitempty"`
	FitnessLevel        *string  `json:"fitness_level,omitempty"`
	ActivityLevel       *string  `json:"activity_level,omitempty"`
	AvailableDays       []string `json:"available_days,omitempty"`
	Equipment           *string  `json:"equipment,omitempty"`
	Injuries            []string `json:"injuries,omitempty"`
	DietaryRestrictions []string `json:"dietary_restrictions,omitempty"`
	FoodAllergies       []string `json:"food_allergies,omitempty"`
	DislikedFoods       []string `json:"disliked_foods,omitempty"`
	MealsPerDay         *int     `json:"meals_per_day,omitempty"`
}

// Response carries the updated profile and the targets recomputed from it.
// The meal plan itself is only rescaled through the nutrition recalculation
// endpoint.
type Response struct {
	Profile *fitchatdb.Profile  `json:"profile"`
	Targets fitchatdb.Nutrition `json:"targets"`
}

// NewHandler returns a Handler.
func NewHandler(store *fitchatdb.Store) *Handler {
	return &Handler{store: store}
}

// Handler edits the user's profile.
type Handler struct {
	store *fitchatdb.Store
}

func (h *Handler) UpdateProfile(ctx context.Context, req *Request) (*Response, error) {
	userID := firebaseauth.TokenFromContext(ctx).UID
	profile, err := h.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Age != nil {
		profile.Age = *req.Age
	}
	if req.Gender != nil {
		profile.Gender = *req.Gender
	}
	if req.HeightCm != nil {
		profile.HeightCm = *req.HeightCm
	}
	if req.WeightKg != nil {
		profile.WeightKg = *req.WeightKg
	}
	if req.FitnessGoal != nil {
		profile.FitnessGoal = *req.FitnessGoal
	}
	if req.FitnessLevel != nil {
		profile.FitnessLevel = fitchatdb.FitnessLevel(*req.FitnessLevel)
	}
	if req.ActivityLevel != nil {
		profile.ActivityLevel = *req.ActivityLevel
	}
	if req.AvailableDays != nil {
		profile.AvailableDays = req.AvailableDays
	}
	if req.Equipment != nil {
		profile.Equipment = *req.Equipment
	}
	if req.Injuries != nil {
		profile.Injuries = req.Injuries
	}
	if req.DietaryRestrictions != nil {
		profile.DietaryRestrictions = req.DietaryRestrictions
	}
	if req.FoodAllergies != nil {
		profile.FoodAllergies = req.FoodAllergies
	}
	if req.DislikedFoods != nil {
		profile.DislikedFoods = req.DislikedFoods
	}
	if req.MealsPerDay != nil {
		profile.MealsPerDay = planvalidate.ClampInt(*req.MealsPerDay, 1, 10)
	}

	if err := h.store.SetProfile(ctx, userID, profile); err != nil {
		return nil, fmt.Errorf("updateprofile: saving profile: %w", err)
	}
	return &Response{
		Profile: profile,
		Targets: nutrition.Targets(profile),
	}, nil
}
