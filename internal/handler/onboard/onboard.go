// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package onboard

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/curioswitch/fitchat/internal/fitchatdb"
	"github.com/curioswitch/fitchat/internal/llm"
	"github.com/curioswitch/fitchat/internal/nutrition"
	"github.com/curioswitch/fitchat/internal/planvalidate"
)

// Request is the user's onboarding questionnaire.
type Request struct {
	Age                 int      `json:"age"`
	Gender              string   `json:"gender"`
	HeightCm            float64  `json:"height_cm"`
	WeightKg            float64  `json:"weight_kg"`
	FitnessGoal         string   `json:"fitness_goal"`
	FitnessLevel        string   `json:"fitness_level"`
	ActivityLevel       string   `json:"activity_level"`
	AvailableDays       []string `json:"available_days"`
	Equipment           string   `json:"equipment"`
	Injuries            []string `json:"injuries"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	FoodAllergies       []string `json:"food_allergies"`
	DislikedFoods       []string `json:"disliked_foods"`
	MealsPerDay         int      `json:"meals_per_day"`
}

// Response carries the saved profile and the freshly generated plans.
// Warnings list document problems that were repaired rather than rejected.
type Response struct {
	Profile     *fitchatdb.Profile     `json:"profile"`
	WorkoutPlan *fitchatdb.WorkoutPlan `json:"workoutPlan"`
	MealPlan    *fitchatdb.MealPlan    `json:"mealPlan"`
	Targets     fitchatdb.Nutrition    `json:"targets"`
	Warnings    []string               `json:"warnings,omitempty"`
}

// NewHandler returns a Handler.
func NewHandler(store *fitchatdb.Store, oracle *llm.Oracle) *Handler {
	return &Handler{
		store:  store,
		oracle: oracle,
	}
}

// Handler creates a profile and the user's first plans.
type Handler struct {
	store  *fitchatdb.Store
	oracle *llm.Oracle
}

func (h *Handler) Onboard(ctx context.Context, req *Request) (*Response, error) {
	userID := firebaseauth.TokenFromContext(ctx).UID

	mealsPerDay := planvalidate.ClampInt(req.MealsPerDay, 1, 10)
	if req.MealsPerDay == 0 {
		mealsPerDay = 3
	}
	profile := &fitchatdb.Profile{
		Age:                 req.Age,
		Gender:              req.Gender,
		HeightCm:            req.HeightCm,
		WeightKg:            req.WeightKg,
		FitnessGoal:         req.FitnessGoal,
		FitnessLevel:        fitchatdb.FitnessLevel(req.FitnessLevel),
		ActivityLevel:       req.ActivityLevel,
		AvailableDays:       req.AvailableDays,
		Equipment:           req.Equipment,
		Injuries:            req.Injuries,
		DietaryRestrictions: req.DietaryRestrictions,
		FoodAllergies:       req.FoodAllergies,
		DislikedFoods:       req.DislikedFoods,
		MealsPerDay:         mealsPerDay,
	}
	if err := h.store.SetProfile(ctx, userID, profile); err != nil {
		return nil, fmt.Errorf("onboard: saving profile: %w", err)
	}

	targets := nutrition.Targets(profile)
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("onboard: marshalling profile: %w", err)
	}

	var workoutDoc, mealDoc map[string]any
	grp, grpCtx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		doc, err := h.oracle.GenerateWorkoutPlan(grpCtx, []string{string(profileJSON)})
		if err != nil {
			return fmt.Errorf("onboard: generating workout plan: %w", err)
		}
		workoutDoc = doc
		return nil
	})
	grp.Go(func() error {
		prompt := llm.MealPlanPrompt(targets.Calories, targets.Protein, targets.Carbs, targets.Fat, profile.MealsPerDay)
		doc, err := h.oracle.GenerateMealPlan(grpCtx, prompt, []string{string(profileJSON)})
		if err != nil {
			return fmt.Errorf("onboard: generating meal plan: %w", err)
		}
		mealDoc = doc
		return nil
	})
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	res := &Response{Profile: profile, Targets: targets}

	workoutRes := planvalidate.WorkoutPlan(workoutDoc)
	res.Warnings = append(res.Warnings, workoutRes.Errors...)
	focus, _ := planvalidate.Str(workoutDoc, "focus")
	workoutPlan := &fitchatdb.WorkoutPlan{
		ID:       uuid.NewString(),
		Focus:    focus,
		Workouts: workoutRes.Workouts,
	}
	if err := h.store.CreateWorkoutPlan(ctx, userID, workoutPlan); err != nil {
		return nil, fmt.Errorf("onboard: saving workout plan: %w", err)
	}
	res.WorkoutPlan = workoutPlan

	mealRes := planvalidate.MealPlan(mealDoc, targets.Calories)
	res.Warnings = append(res.Warnings, mealRes.Errors...)
	mealPlan := &fitchatdb.MealPlan{
		ID:   uuid.NewString(),
		Days: mealRes.Days,
	}
	mealPlan.SetTargets(targets)
	if err := h.store.CreateMealPlan(ctx, userID, mealPlan); err != nil {
		return nil, fmt.Errorf("onboard: saving meal plan: %w", err)
	}
	res.MealPlan = mealPlan

	return res, nil
}
