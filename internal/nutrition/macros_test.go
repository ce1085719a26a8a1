// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/curioswitch/fitchat/internal/fitchatdb"
)

func TestBMR(t *testing.T) {
	t.Run("male", func(t *testing.T) {
		// 10*80 + 6.25*180 - 5*30 + 5
		assert.InDelta(t, 1780.0, BMR(80, 180, 30, "male"), 0.001)
	})
	t.Run("female", func(t *testing.T) {
		// 10*60 + 6.25*165 - 5*25 - 161
		assert.InDelta(t, 1345.25, BMR(60, 165, 25, "female"), 0.001)
	})
	t.Run("unrecognized gender uses female constant", func(t *testing.T) {
		assert.InDelta(t, BMR(60, 165, 25, "other"), BMR(60, 165, 25, "female"), 0.001)
	})
	t.Run("male is case-insensitive", func(t *testing.T) {
		assert.InDelta(t, BMR(80, 180, 30, "Male"), BMR(80, 180, 30, "male"), 0.001)
	})
}

func TestTDEE(t *testing.T) {
	t.Run("sedentary", func(t *testing.T) {
		assert.Equal(t, 1800, TDEE(1500, "sedentary"))
	})
	t.Run("very active", func(t *testing.T) {
		assert.Equal(t, 2850, TDEE(1500, "very_active"))
	})
	t.Run("unknown level uses moderate", func(t *testing.T) {
		assert.Equal(t, TDEE(1500, "moderate"), TDEE(1500, "couch"))
	})
	t.Run("rounds to nearest", func(t *testing.T) {
		// 1501 * 1.2 = 1801.2
		assert.Equal(t, 1801, TDEE(1501, "sedentary"))
	})
}

func TestTargetCalories(t *testing.T) {
	tests := []struct {
		goal string
		want int
	}{
		{goal: "lose weight", want: 1600},
		{goal: "I want to cut for summer", want: 1600},
		{goal: "build muscle", want: 2300},
		{goal: "bulk up", want: 2300},
		{goal: "get stronger", want: 2200},
		{goal: "stay healthy", want: 2000},
		{goal: "", want: 2000},
		// Matches both weight loss and muscle rules; weight loss is checked
		// first.
		{goal: "lose fat and build muscle", want: 1600},
	}
	for _, tt := range tests {
		t.Run(tt.goal, func(t *testing.T) {
			assert.Equal(t, tt.want, TargetCalories(2000, tt.goal))
		})
	}
}

func TestMacros(t *testing.T) {
	t.Run("standard split", func(t *testing.T) {
		got := Macros(2000, 80)
		assert.Equal(t, fitchatdb.Nutrition{
			Calories: 2000,
			Protein:  160, // 80kg * 2g
			Fat:      56,  // 500 kcal / 9
			Carbs:    215, // (2000 - 640 - 500) / 4
		}, got)
	})
	t.Run("carbs are not clamped", func(t *testing.T) {
		// Protein alone exceeds the calorie budget.
		got := Macros(500, 100)
		assert.Equal(t, 200, got.Protein)
		assert.Negative(t, got.Carbs)
	})
}

func TestTargets(t *testing.T) {
	profile := &fitchatdb.Profile{
		Age:           30,
		Gender:        "male",
		HeightCm:      180,
		WeightKg:      80,
		FitnessGoal:   "lose weight",
		ActivityLevel: "moderate",
	}
	got := Targets(profile)
	// BMR 1780, TDEE round(1780*1.55)=2759, target round(2759*0.8)=2207.
	assert.Equal(t, 2207, got.Calories)
	assert.Equal(t, 160, got.Protein)
}
