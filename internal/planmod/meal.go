// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package planmod

import (
	"fmt"
	"math"
	"strings"

	"github.com/curioswitch/fitchat/internal/fitchatdb"
)

// MealResult is the outcome of applying one operation to a meal plan. Days
// is nil when the plan is unchanged; a successful operation may still leave
// the document untouched (regenerate_day_meals only acknowledges).
type MealResult struct {
	OK      bool
	Message string
	Days    []fitchatdb.MealDay
}

func mealFailure(format string, args ...any) MealResult {
	return MealResult{Message: fmt.Sprintf(format, args...)}
}

func mealSuccess(days []fitchatdb.MealDay, format string, args ...any) MealResult {
	return MealResult{OK: true, Message: fmt.Sprintf(format, args...), Days: days}
}

// ApplyMeal applies op to a copy of days and returns the result. The input
// slice is never mutated, so a failed operation has no effect.
func ApplyMeal(days []fitchatdb.MealDay, op Operation) MealResult {
	out := copyMealDays(days)
	switch o := op.(type) {
	case SwapMeal:
		return swapMeal(out, o)
	case AdjustMealPortions:
		return adjustMealPortions(out, o)
	case RegenerateDayMeals:
		if o.Day == "" {
			return mealFailure("No day was given.")
		}
		if findMealDay(out, o.Day) < 0 {
			return mealFailure("No meals found for %s.", o.Day)
		}
		return MealResult{OK: true, Message: fmt.Sprintf("I'll put together new meals for %s next.", o.Day)}
	case UnknownOperation:
		return mealFailure("Unknown operation %q.", o.Name)
	default:
		return mealFailure("Operation does not apply to meal plans.")
	}
}

func copyMealDays(days []fitchatdb.MealDay) []fitchatdb.MealDay {
	out := make([]fitchatdb.MealDay, len(days))
	copy(out, days)
	for i := range out {
		out[i].Meals = append([]fitchatdb.Meal(nil), out[i].Meals...)
		for j := range out[i].Meals {
			out[i].Meals[j].Foods = append([]fitchatdb.Food(nil), out[i].Meals[j].Foods...)
		}
	}
	return out
}

func findMealDay(days []fitchatdb.MealDay, name string) int {
	for i := range days {
		if strings.EqualFold(days[i].Day, name) {
			return i
		}
	}
	return -1
}

func findMeal(meals []fitchatdb.Meal, name string) int {
	for i := range meals {
		if strings.EqualFold(meals[i].Name, name) {
			return i
		}
	}
	return -1
}

// recomputeTotals rebuilds a meal's totals from its foods, then the day's
// totals from its meals. Stored totals are never trusted after a mutation.
func recomputeTotals(day *fitchatdb.MealDay) {
	var dayTotal fitchatdb.Nutrition
	for i := range day.Meals {
		var mealTotal fitchatdb.Nutrition
		for _, f := range day.Meals[i].Foods {
			mealTotal = mealTotal.Add(f.Nutrition)
		}
		day.Meals[i].SetTotals(mealTotal)
		dayTotal = dayTotal.Add(mealTotal)
	}
	day.DailyTotals = dayTotal
}

func swapMeal(days []fitchatdb.MealDay, op SwapMeal) MealResult {
	di := findMealDay(days, op.Day)
	if di < 0 {
		return mealFailure("No meals found for %s.", op.Day)
	}
	mi := findMeal(days[di].Meals, op.Meal)
	if mi < 0 {
		return mealFailure("Couldn't find %q on %s.", op.Meal, days[di].Day)
	}
	if len(op.Foods) == 0 {
		return mealFailure("No replacement foods were given.")
	}
	meal := &days[di].Meals[mi]
	old := meal.Name
	if op.NewName != "" {
		meal.Name = op.NewName
	}
	meal.Foods = op.Foods
	recomputeTotals(&days[di])
	return mealSuccess(days, "Replaced %s on %s (now %d kcal for the day).", old, days[di].Day, days[di].DailyTotals.Calories)
}

func adjustMealPortions(days []fitchatdb.MealDay, op AdjustMealPortions) MealResult {
	if op.Percentage <= 0 {
		return mealFailure("No adjustment percentage was given.")
	}
	factor := 1 + op.Percentage/100
	if op.AdjustmentType == "decrease" {
		factor = 1 - op.Percentage/100
	}
	if factor <= 0 {
		return mealFailure("Can't reduce portions by %.0f%%.", op.Percentage)
	}

	di := -1
	if op.Day != "" {
		di = findMealDay(days, op.Day)
		if di < 0 {
			return mealFailure("No meals found for %s.", op.Day)
		}
	}

	scaled := 0
	for i := range days {
		if di >= 0 && i != di {
			continue
		}
		for j := range days[i].Meals {
			if op.Meal != "" && !strings.EqualFold(days[i].Meals[j].Name, op.Meal) {
				continue
			}
			for k := range days[i].Meals[j].Foods {
				scaleFood(&days[i].Meals[j].Foods[k], factor)
			}
			scaled++
		}
		recomputeTotals(&days[i])
	}
	if scaled == 0 {
		if op.Meal != "" {
			return mealFailure("Couldn't find a meal named %q.", op.Meal)
		}
		return mealFailure("No meals to adjust.")
	}

	verb := "Increased"
	if op.AdjustmentType == "decrease" {
		verb = "Decreased"
	}
	scope := "the whole plan"
	switch {
	case op.Day != "" && op.Meal != "":
		scope = fmt.Sprintf("%s on %s", op.Meal, days[di].Day)
	case op.Day != "":
		scope = days[di].Day
	case op.Meal != "":
		scope = fmt.Sprintf("every %s", op.Meal)
	}
	return mealSuccess(days, "%s portions by %.0f%% for %s.", verb, op.Percentage, scope)
}

// RescaleMealDays returns a copy of days with every food scaled by factor
// and all totals recomputed. Used when calorie targets move enough that the
// whole plan should follow.
func RescaleMealDays(days []fitchatdb.MealDay, factor float64) []fitchatdb.MealDay {
	out := copyMealDays(days)
	for i := range out {
		for j := range out[i].Meals {
			for k := range out[i].Meals[j].Foods {
				scaleFood(&out[i].Meals[j].Foods[k], factor)
			}
		}
		recomputeTotals(&out[i])
	}
	return out
}

func scaleFood(f *fitchatdb.Food, factor float64) {
	round := func(v int) int {
		return int(math.Round(float64(v) * factor))
	}
	f.Calories = round(f.Calories)
	f.Protein = round(f.Protein)
	f.Carbs = round(f.Carbs)
	f.Fat = round(f.Fat)
}

// stringSetAdd appends items not already present, comparing
// case-insensitively and preserving order.
func stringSetAdd(list []string, items []string) []string {
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" || stringSetHas(list, item) {
			continue
		}
		list = append(list, item)
	}
	return list
}

// stringSetRemove drops items from the list, comparing case-insensitively.
func stringSetRemove(list []string, items []string) []string {
	out := list[:0:0]
	for _, existing := range list {
		if !stringSetHas(items, existing) {
			out = append(out, existing)
		}
	}
	return out
}

func stringSetHas(list []string, item string) bool {
	for _, v := range list {
		if strings.EqualFold(strings.TrimSpace(v), item) {
			return true
		}
	}
	return false
}

// ApplyDietaryPreferences edits the profile's dietary lists in place with
// set semantics and reports which fields changed. The meal plan itself is
// untouched; new meals honor the lists on the next generation.
func ApplyDietaryPreferences(profile *fitchatdb.Profile, op UpdateDietaryPreferences) (changed []string, message string) {
	apply := func(field string, list *[]string, add, remove []string) {
		next := stringSetAdd(append([]string(nil), *list...), add)
		next = stringSetRemove(next, remove)
		if !equalStrings(*list, next) {
			*list = next
			changed = append(changed, field)
		}
	}
	apply("dietary_restrictions", &profile.DietaryRestrictions, op.AddRestrictions, op.RemoveRestrictions)
	apply("food_allergies", &profile.FoodAllergies, op.AddAllergies, op.RemoveAllergies)
	apply("disliked_foods", &profile.DislikedFoods, op.AddDislikedFoods, op.RemoveDislikedFoods)
	if len(changed) == 0 {
		return nil, "Your dietary preferences already match."
	}
	return changed, "Updated your dietary preferences. Future meals will take them into account."
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
