// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package planmod

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curioswitch/fitchat/internal/fitchatdb"
)

func testMealDays() []fitchatdb.MealDay {
	day := func(name string) fitchatdb.MealDay {
		d := fitchatdb.MealDay{
			Day: name,
			Meals: []fitchatdb.Meal{
				{
					Name: "Breakfast",
					Foods: []fitchatdb.Food{
						{Item: "Oats", Portion: "80g", Nutrition: fitchatdb.Nutrition{Calories: 300, Protein: 10, Carbs: 54, Fat: 6}},
						{Item: "Greek Yogurt", Portion: "170g", Nutrition: fitchatdb.Nutrition{Calories: 100, Protein: 17, Carbs: 6, Fat: 1}},
					},
				},
				{
					Name: "Dinner",
					Foods: []fitchatdb.Food{
						{Item: "Chicken Breast", Portion: "200g", Nutrition: fitchatdb.Nutrition{Calories: 330, Protein: 62, Carbs: 0, Fat: 7}},
						{Item: "Rice", Portion: "150g", Nutrition: fitchatdb.Nutrition{Calories: 195, Protein: 4, Carbs: 42, Fat: 0}},
					},
				},
			},
		}
		recomputeTotals(&d)
		return d
	}
	return []fitchatdb.MealDay{day("Monday"), day("Tuesday")}
}

func TestSwapMeal(t *testing.T) {
	t.Run("replaces foods and recomputes totals", func(t *testing.T) {
		res := ApplyMeal(testMealDays(), SwapMeal{
			Day:     "monday",
			Meal:    "breakfast",
			NewName: "Smoothie",
			Foods: []fitchatdb.Food{
				{Item: "Banana", Portion: "1", Nutrition: fitchatdb.Nutrition{Calories: 105, Protein: 1, Carbs: 27, Fat: 0}},
				{Item: "Protein Powder", Portion: "30g", Nutrition: fitchatdb.Nutrition{Calories: 120, Protein: 24, Carbs: 3, Fat: 1}},
			},
		})
		require.True(t, res.OK)
		meal := res.Days[0].Meals[0]
		assert.Equal(t, "Smoothie", meal.Name)
		assert.Equal(t, 225, meal.TotalCalories)
		assert.Equal(t, 25, meal.TotalProtein)
		// Day totals include the untouched dinner (525 kcal).
		assert.Equal(t, 750, res.Days[0].DailyTotals.Calories)
	})

	t.Run("missing meal leaves input untouched", func(t *testing.T) {
		days := testMealDays()
		before := testMealDays()
		res := ApplyMeal(days, SwapMeal{Day: "Monday", Meal: "Lunch", Foods: []fitchatdb.Food{{Item: "Salad"}}})
		assert.False(t, res.OK)
		assert.Equal(t, `Couldn't find "Lunch" on Monday.`, res.Message)
		assert.Empty(t, cmp.Diff(before, days))
	})

	t.Run("no foods rejected", func(t *testing.T) {
		res := ApplyMeal(testMealDays(), SwapMeal{Day: "Monday", Meal: "Breakfast"})
		assert.False(t, res.OK)
	})
}

func TestAdjustMealPortions(t *testing.T) {
	t.Run("decrease whole plan", func(t *testing.T) {
		res := ApplyMeal(testMealDays(), AdjustMealPortions{AdjustmentType: "decrease", Percentage: 20})
		require.True(t, res.OK)
		assert.Equal(t, "Decreased portions by 20% for the whole plan.", res.Message)
		oats := res.Days[0].Meals[0].Foods[0]
		assert.Equal(t, 240, oats.Calories)
		assert.Equal(t, 8, oats.Protein)
		// 300*0.8 + 100*0.8 = 240 + 80
		assert.Equal(t, 320, res.Days[0].Meals[0].TotalCalories)
		// Tuesday scaled too.
		assert.Equal(t, 740, res.Days[1].DailyTotals.Calories)
	})

	t.Run("narrowed to one meal on one day", func(t *testing.T) {
		res := ApplyMeal(testMealDays(), AdjustMealPortions{
			Day: "Tuesday", Meal: "Dinner", AdjustmentType: "increase", Percentage: 10,
		})
		require.True(t, res.OK)
		assert.Equal(t, "Increased portions by 10% for Dinner on Tuesday.", res.Message)
		// Monday untouched.
		assert.Equal(t, 925, res.Days[0].DailyTotals.Calories)
		// Dinner 330*1.1=363, 195*1.1=214.5→215; breakfast unchanged.
		assert.Equal(t, 978, res.Days[1].DailyTotals.Calories)
	})

	t.Run("meal not found", func(t *testing.T) {
		res := ApplyMeal(testMealDays(), AdjustMealPortions{Meal: "Brunch", AdjustmentType: "increase", Percentage: 10})
		assert.False(t, res.OK)
		assert.Equal(t, `Couldn't find a meal named "Brunch".`, res.Message)
	})

	t.Run("reduction past zero rejected", func(t *testing.T) {
		res := ApplyMeal(testMealDays(), AdjustMealPortions{AdjustmentType: "decrease", Percentage: 120})
		assert.False(t, res.OK)
	})
}

func TestRegenerateDayMeals(t *testing.T) {
	t.Run("acknowledges without touching the plan", func(t *testing.T) {
		res := ApplyMeal(testMealDays(), RegenerateDayMeals{Day: "Monday"})
		assert.True(t, res.OK)
		assert.Nil(t, res.Days)
	})

	t.Run("unknown day", func(t *testing.T) {
		res := ApplyMeal(testMealDays(), RegenerateDayMeals{Day: "Friday"})
		assert.False(t, res.OK)
	})
}

func TestRescaleMealDays(t *testing.T) {
	days := testMealDays()
	out := RescaleMealDays(days, 1.5)
	assert.Equal(t, 450, out[0].Meals[0].Foods[0].Calories)
	// 925 * 1.5 with per-food rounding: 450+150+495+293 = 1388.
	assert.Equal(t, 1388, out[0].DailyTotals.Calories)
	// Input untouched.
	assert.Equal(t, 925, days[0].DailyTotals.Calories)
}

func TestApplyDietaryPreferences(t *testing.T) {
	t.Run("adds and removes with set semantics", func(t *testing.T) {
		profile := &fitchatdb.Profile{
			DietaryRestrictions: []string{"vegetarian"},
			DislikedFoods:       []string{"mushrooms", "olives"},
		}
		changed, msg := ApplyDietaryPreferences(profile, UpdateDietaryPreferences{
			AddRestrictions:     []string{"Vegetarian", "gluten-free"},
			AddAllergies:        []string{"peanuts"},
			RemoveDislikedFoods: []string{"Olives"},
		})
		assert.ElementsMatch(t, []string{"dietary_restrictions", "food_allergies", "disliked_foods"}, changed)
		assert.Equal(t, "Updated your dietary preferences. Future meals will take them into account.", msg)
		assert.Equal(t, []string{"vegetarian", "gluten-free"}, profile.DietaryRestrictions)
		assert.Equal(t, []string{"peanuts"}, profile.FoodAllergies)
		assert.Equal(t, []string{"mushrooms"}, profile.DislikedFoods)
	})

	t.Run("no-op reports nothing changed", func(t *testing.T) {
		profile := &fitchatdb.Profile{FoodAllergies: []string{"peanuts"}}
		changed, msg := ApplyDietaryPreferences(profile, UpdateDietaryPreferences{
			AddAllergies: []string{"Peanuts"},
		})
		assert.Empty(t, changed)
		assert.Equal(t, "Your dietary preferences already match.", msg)
	})
}
