// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package planvalidate

import (
	"fmt"
	"math"

	"github.com/curioswitch/fitchat/internal/fitchatdb"
)

// calorieBandTolerance is the advisory band around the calorie target: a day
// whose supplied totals deviate further is flagged but not repaired. This is
// intentionally distinct from the stricter rescaling trigger applied by the
// nutrition recalculation route.
const calorieBandTolerance = 0.15

// MealResult is the outcome of sanitizing a meal plan document. Days is
// always usable, even when Valid is false. Totals are NOT recomputed here;
// roll-up recomputation belongs to the mutators.
type MealResult struct {
	Valid  bool
	Errors []string
	Days   []fitchatdb.MealDay
}

// MealPlan sanitizes a loosely-typed meal plan document carrying a "days"
// list. Negative nutrition values are clamped to zero; day names are forced
// to the canonical name for their position; days whose supplied dailyTotals
// deviate from targetCalories by more than 15% are flagged.
func MealPlan(doc map[string]any, targetCalories int) MealResult {
	res := MealResult{Valid: true, Days: []fitchatdb.MealDay{}}
	fail := func(format string, args ...any) {
		res.Valid = false
		res.Errors = append(res.Errors, fmt.Sprintf(format, args...))
	}

	entries, ok := AsSlice(doc["days"])
	if !ok {
		fail("days must be a list")
		return res
	}
	if len(entries) != 7 {
		fail("meal plan must have 7 days, got %d", len(entries))
	}

	for i, entry := range entries {
		day := fitchatdb.MealDay{Day: fitchatdb.Weekdays[i%len(fitchatdb.Weekdays)], Meals: []fitchatdb.Meal{}}
		m, ok := AsMap(entry)
		if !ok {
			fail("day %d is not an object", i+1)
			res.Days = append(res.Days, day)
			continue
		}

		if name, ok := Str(m, "day"); ok && fitchatdb.WeekdayIndex(name) >= 0 {
			day.Day = fitchatdb.Weekdays[fitchatdb.WeekdayIndex(name)]
		} else {
			fail("day %d has a missing or invalid day name, using %s", i+1, day.Day)
		}

		meals, ok := AsSlice(m["meals"])
		if !ok || len(meals) == 0 {
			fail("%s has no meals", day.Day)
		}
		for j, me := range meals {
			mm, ok := AsMap(me)
			if !ok {
				fail("%s meal %d is not an object", day.Day, j+1)
				continue
			}
			day.Meals = append(day.Meals, sanitizeMeal(mm, j))
		}

		if totals, ok := AsMap(m["dailyTotals"]); ok {
			day.DailyTotals = sanitizeNutrition(totals, "calories", "protein", "carbs", "fat")
		}
		if targetCalories > 0 && day.DailyTotals.Calories > 0 {
			dev := math.Abs(float64(day.DailyTotals.Calories-targetCalories)) / float64(targetCalories)
			if dev > calorieBandTolerance {
				fail("%s totals %d kcal deviate more than 15%% from the %d kcal target",
					day.Day, day.DailyTotals.Calories, targetCalories)
			}
		}
		res.Days = append(res.Days, day)
	}
	return res
}

func sanitizeMeal(m map[string]any, idx int) fitchatdb.Meal {
	var meal fitchatdb.Meal
	if name, ok := Str(m, "name"); ok && name != "" {
		meal.Name = name
	} else {
		meal.Name = fmt.Sprintf("Meal %d", idx+1)
	}
	foods, _ := AsSlice(m["foods"])
	meal.Foods = make([]fitchatdb.Food, 0, len(foods))
	for _, f := range foods {
		fm, ok := AsMap(f)
		if !ok {
			continue
		}
		food := fitchatdb.Food{Nutrition: sanitizeNutrition(fm, "calories", "protein", "carbs", "fat")}
		food.Item, _ = Str(fm, "item")
		food.Portion, _ = Str(fm, "portion")
		meal.Foods = append(meal.Foods, food)
	}
	meal.SetTotals(sanitizeNutrition(m, "totalCalories", "totalProtein", "totalCarbs", "totalFat"))
	return meal
}

// sanitizeNutrition reads the four macro fields, clamping negatives to zero.
func sanitizeNutrition(m map[string]any, calKey, proteinKey, carbKey, fatKey string) fitchatdb.Nutrition {
	nonNegative := func(key string) int {
		v, _ := Int(m, key)
		if v < 0 {
			return 0
		}
		return v
	}
	return fitchatdb.Nutrition{
		Calories: nonNegative(calKey),
		Protein:  nonNegative(proteinKey),
		Carbs:    nonNegative(carbKey),
		Fat:      nonNegative(fatKey),
	}
}
