// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package planvalidate

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mealDoc(calories int) map[string]any {
	days := make([]any, 0, 7)
	for _, day := range []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"} {
		days = append(days, map[string]any{
			"day": day,
			"meals": []any{
				map[string]any{
					"name": "Breakfast",
					"foods": []any{
						map[string]any{"item": "Oats", "portion": "80g", "calories": calories, "protein": 12, "carbs": 54, "fat": 6},
					},
					"totalCalories": calories,
					"totalProtein":  12,
					"totalCarbs":    54,
					"totalFat":      6,
				},
			},
			"dailyTotals": map[string]any{"calories": calories, "protein": 12, "carbs": 54, "fat": 6},
		})
	}
	return map[string]any{"days": days}
}

func TestMealPlan(t *testing.T) {
	t.Run("well-formed week", func(t *testing.T) {
		res := MealPlan(mealDoc(2000), 2000)
		assert.True(t, res.Valid)
		require.Len(t, res.Days, 7)
		assert.Equal(t, "Monday", res.Days[0].Day)
		assert.Equal(t, 2000, res.Days[0].DailyTotals.Calories)
	})

	t.Run("wrong day count is flagged but kept", func(t *testing.T) {
		doc := mealDoc(2000)
		doc["days"] = doc["days"].([]any)[:5]
		res := MealPlan(doc, 2000)
		assert.False(t, res.Valid)
		assert.Contains(t, res.Errors, "meal plan must have 7 days, got 5")
		assert.Len(t, res.Days, 5)
	})

	t.Run("negative macros clamped to zero", func(t *testing.T) {
		doc := mealDoc(2000)
		food := doc["days"].([]any)[0].(map[string]any)["meals"].([]any)[0].(map[string]any)["foods"].([]any)[0].(map[string]any)
		food["protein"] = -5
		res := MealPlan(doc, 2000)
		assert.Equal(t, 0, res.Days[0].Meals[0].Foods[0].Protein)
	})

	t.Run("supplied totals are kept, not recomputed", func(t *testing.T) {
		doc := mealDoc(2000)
		meal := doc["days"].([]any)[0].(map[string]any)["meals"].([]any)[0].(map[string]any)
		meal["totalCalories"] = 1234
		res := MealPlan(doc, 0)
		assert.Equal(t, 1234, res.Days[0].Meals[0].TotalCalories)
	})

	t.Run("calorie band deviation flagged", func(t *testing.T) {
		res := MealPlan(mealDoc(1500), 2000)
		assert.False(t, res.Valid)
		assert.Contains(t, res.Errors,
			fmt.Sprintf("Monday totals %d kcal deviate more than 15%% from the %d kcal target", 1500, 2000))
	})

	t.Run("deviation within band allowed", func(t *testing.T) {
		res := MealPlan(mealDoc(1800), 2000)
		assert.True(t, res.Valid)
	})

	t.Run("unnamed meal gets placeholder", func(t *testing.T) {
		doc := mealDoc(2000)
		meal := doc["days"].([]any)[0].(map[string]any)["meals"].([]any)[0].(map[string]any)
		delete(meal, "name")
		res := MealPlan(doc, 2000)
		assert.Equal(t, "Meal 1", res.Days[0].Meals[0].Name)
	})
}
