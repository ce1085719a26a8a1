// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package fitchatdb

import "time"

// Nutrition is a calorie/macro tuple used for food values, day totals, and
// plan targets.
type Nutrition struct {
	// Calories in kcal.
	Calories int `firestore:"calories" json:"calories"`

	// Protein in grams.
	Protein int `firestore:"protein" json:"protein"`

	// Carbs in grams.
	Carbs int `firestore:"carbs" json:"carbs"`

	// Fat in grams.
	Fat int `firestore:"fat" json:"fat"`
}

// Add returns the component-wise sum of n and other.
func (n Nutrition) Add(other Nutrition) Nutrition {
	return Nutrition{
		Calories: n.Calories + other.Calories,
		Protein:  n.Protein + other.Protein,
		Carbs:    n.Carbs + other.Carbs,
		Fat:      n.Fat + other.Fat,
	}
}

// Food is a single food item in a meal.
type Food struct {
	// Item is the name of the food.
	Item string `firestore:"item" json:"item"`

	// Portion describes the amount as free-form text, e.g. "150g".
	Portion string `firestore:"portion" json:"portion"`

	// Nutrition of this portion, flattened into the document.
	Nutrition
}

// Meal is a named meal within a day. The four totals are always recomputed
// as the sum over the foods; upstream values are never trusted.
type Meal struct {
	// Name of the meal, e.g. "Breakfast".
	Name string `firestore:"name" json:"name"`

	// Foods in the meal.
	Foods []Food `firestore:"foods" json:"foods"`

	TotalCalories int `firestore:"totalCalories" json:"totalCalories"`
	TotalProtein  int `firestore:"totalProtein" json:"totalProtein"`
	TotalCarbs    int `firestore:"totalCarbs" json:"totalCarbs"`
	TotalFat      int `firestore:"totalFat" json:"totalFat"`
}

// Totals returns the meal's stored totals as a Nutrition value.
func (m Meal) Totals() Nutrition {
	return Nutrition{
		Calories: m.TotalCalories,
		Protein:  m.TotalProtein,
		Carbs:    m.TotalCarbs,
		Fat:      m.TotalFat,
	}
}

// SetTotals stores t as the meal's totals.
func (m *Meal) SetTotals(t Nutrition) {
	m.TotalCalories = t.Calories
	m.TotalProtein = t.Protein
	m.TotalCarbs = t.Carbs
	m.TotalFat = t.Fat
}

// MealDay is one day of a meal plan, keyed by canonical weekday name.
type MealDay struct {
	// Day is the canonical weekday name, unique within a plan.
	Day string `firestore:"day" json:"day"`

	// Meals for the day in eating order.
	Meals []Meal `firestore:"meals" json:"meals"`

	// DailyTotals is the sum of the meals' totals.
	DailyTotals Nutrition `firestore:"dailyTotals" json:"dailyTotals"`
}

// MealPlan is a weekly meal plan stored in the mealPlans collection of a
// user, with the same single-active-version contract as WorkoutPlan. The
// targets are computed once at creation from the macro calculator.
type MealPlan struct {
	// ID is the unique identifier of the plan.
	ID string `firestore:"id" json:"id"`

	// UserID is the ID of the owning user.
	UserID string `firestore:"userId" json:"userId"`

	// Days are the seven days of the plan in canonical weekday order.
	Days []MealDay `firestore:"days" json:"days"`

	TargetCalories int `firestore:"target_calories" json:"target_calories"`
	TargetProtein  int `firestore:"target_protein" json:"target_protein"`
	TargetCarbs    int `firestore:"target_carbs" json:"target_carbs"`
	TargetFat      int `firestore:"target_fat" json:"target_fat"`

	// Active reports whether this is the user's current plan.
	Active bool `firestore:"active" json:"active"`

	// Version increments on every save and guards concurrent writers.
	Version int64 `firestore:"version" json:"version"`

	// CreatedAt is the timestamp when the plan was created.
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}

// Targets returns the plan's targets as a Nutrition value.
func (p *MealPlan) Targets() Nutrition {
	return Nutrition{
		Calories: p.TargetCalories,
		Protein:  p.TargetProtein,
		Carbs:    p.TargetCarbs,
		Fat:      p.TargetFat,
	}
}

// SetTargets stores t as the plan's targets.
func (p *MealPlan) SetTargets(t Nutrition) {
	p.TargetCalories = t.Calories
	p.TargetProtein = t.Protein
	p.TargetCarbs = t.Carbs
	p.TargetFat = t.Fat
}
