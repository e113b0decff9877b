// internal/models/meal.go
package models

import (
	"github.com/shopspring/decimal"
)

// MacroTargets is either a target or an achieved total for a meal or day.
type MacroTargets struct {
	Kcal    int     `json:"kcal"`
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

type FoodItem struct {
	Food    string  `json:"food"`
	Grams   int     `json:"grams"`
	Kcal    int     `json:"kcal"`
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

type Meal struct {
	MealKey string       `json:"meal_key"`
	Name    string       `json:"name"`
	Targets MacroTargets `json:"targets"`
	Totals  MacroTargets `json:"totals"`
	Items   []FoodItem   `json:"items"`
}

type DayMenu struct {
	DayDate   string       `json:"day_date"`
	Meals     []Meal       `json:"meals"`
	DayTotals MacroTargets `json:"day_totals"`
}

type WeekMenu struct {
	StartDate string    `json:"start_date"`
	Days      []DayMenu `json:"days"`
}

// DateLayout is the calendar date format used on the wire and in storage.
const DateLayout = "2006-01-02"

// Round1 rounds a macro value to one decimal place, half away from zero.
func Round1(v float64) float64 {
	return decimal.NewFromFloat(v).Round(1).InexactFloat64()
}

// Scale multiplies every field by ratio, rounding kcal to an integer and
// macros to one decimal.
func (m MacroTargets) Scale(ratio float64) MacroTargets {
	return MacroTargets{
		Kcal:    RoundInt(float64(m.Kcal) * ratio),
		Protein: Round1(m.Protein * ratio),
		Carbs:   Round1(m.Carbs * ratio),
		Fat:     Round1(m.Fat * ratio),
	}
}

// IsZero reports whether all four fields are zero.
func (m MacroTargets) IsZero() bool {
	return m == MacroTargets{}
}

// SumItems adds up the macros of a meal's items.
func SumItems(items []FoodItem) MacroTargets {
	var total MacroTargets
	var protein, carbs, fat float64
	for _, item := range items {
		total.Kcal += item.Kcal
		protein += item.Protein
		carbs += item.Carbs
		fat += item.Fat
	}
	total.Protein = Round1(protein)
	total.Carbs = Round1(carbs)
	total.Fat = Round1(fat)
	return total
}

// SumMeals adds up the totals of every meal in a day.
func SumMeals(meals []Meal) MacroTargets {
	var total MacroTargets
	var protein, carbs, fat float64
	for _, meal := range meals {
		total.Kcal += meal.Totals.Kcal
		protein += meal.Totals.Protein
		carbs += meal.Totals.Carbs
		fat += meal.Totals.Fat
	}
	total.Protein = Round1(protein)
	total.Carbs = Round1(carbs)
	total.Fat = Round1(fat)
	return total
}

// RoundInt rounds to the nearest integer, half away from zero.
func RoundInt(v float64) int {
	return int(decimal.NewFromFloat(v).Round(0).IntPart())
}
