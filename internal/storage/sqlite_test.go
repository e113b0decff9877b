package storage

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"meal-planner/internal/models"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	stor, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "plans.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStorage returned error: %v", err)
	}
	t.Cleanup(func() { stor.Close() })
	return stor
}

func sampleDay(date string) *models.DayMenu {
	meals := []models.Meal{
		{
			MealKey: "desayuno",
			Name:    "Desayuno",
			Targets: models.MacroTargets{Kcal: 500, Protein: 30, Carbs: 55, Fat: 17.5},
			Items: []models.FoodItem{
				{Food: "Avena", Grams: 60, Kcal: 227, Protein: 7.9, Carbs: 40.6, Fat: 3.9},
				{Food: "Plátano", Grams: 120, Kcal: 107, Protein: 1.3, Carbs: 27.4, Fat: 0.4},
			},
		},
		{
			MealKey: "comida",
			Name:    "Comida",
			Targets: models.MacroTargets{Kcal: 700, Protein: 42, Carbs: 77, Fat: 24.5},
			Items: []models.FoodItem{
				{Food: "Pollo", Grams: 200, Kcal: 330, Protein: 62, Fat: 7.2},
				{Food: "Arroz", Grams: 80, Kcal: 280, Protein: 5.6, Carbs: 62.4, Fat: 0.5},
			},
		},
		{
			MealKey: "recena",
			Name:    "Recena",
			Targets: models.MacroTargets{Kcal: 100},
			Items:   []models.FoodItem{},
		},
	}
	for i := range meals {
		meals[i].Totals = models.SumItems(meals[i].Items)
	}
	return &models.DayMenu{DayDate: date, Meals: meals, DayTotals: models.SumMeals(meals)}
}

// TestSaveDayRoundTrip ensures a stored day loads back unchanged.
func TestSaveDayRoundTrip(t *testing.T) {
	stor := newTestStorage(t)
	day := sampleDay("2026-03-14")
	if err := stor.SaveDay(day); err != nil {
		t.Fatalf("SaveDay returned error: %v", err)
	}

	got, err := stor.GetDay("2026-03-14")
	if err != nil {
		t.Fatalf("GetDay returned error: %v", err)
	}
	if !reflect.DeepEqual(got, day) {
		t.Fatalf("GetDay = %+v, want %+v", got, day)
	}
}

// TestSaveDayReplacesExisting ensures saving the same date twice keeps the latest plan.
func TestSaveDayReplacesExisting(t *testing.T) {
	stor := newTestStorage(t)
	if err := stor.SaveDay(sampleDay("2026-03-14")); err != nil {
		t.Fatalf("SaveDay returned error: %v", err)
	}
	second := sampleDay("2026-03-14")
	second.Meals = second.Meals[:1]
	second.DayTotals = models.SumMeals(second.Meals)
	if err := stor.SaveDay(second); err != nil {
		t.Fatalf("SaveDay returned error: %v", err)
	}

	got, err := stor.GetDay("2026-03-14")
	if err != nil {
		t.Fatalf("GetDay returned error: %v", err)
	}
	if !reflect.DeepEqual(got, second) {
		t.Fatalf("GetDay = %+v, want %+v", got, second)
	}
}

// TestGetDayMissing ensures unknown dates report ErrNotFound.
func TestGetDayMissing(t *testing.T) {
	stor := newTestStorage(t)
	_, err := stor.GetDay("2026-01-01")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetDay error = %v, want %v", err, ErrNotFound)
	}
}

// TestReplaceMealRecomputesTotals ensures a spliced meal updates the day totals.
func TestReplaceMealRecomputesTotals(t *testing.T) {
	stor := newTestStorage(t)
	if err := stor.SaveDay(sampleDay("2026-03-14")); err != nil {
		t.Fatalf("SaveDay returned error: %v", err)
	}

	replacement := models.Meal{
		MealKey: "desayuno",
		Name:    "Desayuno",
		Targets: models.MacroTargets{Kcal: 500, Protein: 30, Carbs: 55, Fat: 17.5},
		Items: []models.FoodItem{
			{Food: "Yogur natural", Grams: 200, Kcal: 122, Protein: 7, Carbs: 9.4, Fat: 6.6},
			{Food: "Manzana", Grams: 150, Kcal: 78, Protein: 0.5, Carbs: 20.7, Fat: 0.3},
			{Food: "Avena", Grams: 50, Kcal: 190, Protein: 6.6, Carbs: 33.9, Fat: 3.3},
		},
	}
	replacement.Totals = models.SumItems(replacement.Items)

	day, err := stor.ReplaceMeal("2026-03-14", replacement)
	if err != nil {
		t.Fatalf("ReplaceMeal returned error: %v", err)
	}
	if !reflect.DeepEqual(day.Meals[0], replacement) {
		t.Fatalf("meal 0 = %+v, want %+v", day.Meals[0], replacement)
	}
	if day.DayTotals != models.SumMeals(day.Meals) {
		t.Fatalf("day totals = %+v, want %+v", day.DayTotals, models.SumMeals(day.Meals))
	}

	stored, err := stor.GetDay("2026-03-14")
	if err != nil {
		t.Fatalf("GetDay returned error: %v", err)
	}
	if !reflect.DeepEqual(stored, day) {
		t.Fatalf("stored day = %+v, want %+v", stored, day)
	}
	if stored.Meals[1].MealKey != "comida" {
		t.Fatalf("meal order changed: %+v", stored.Meals)
	}
}

// TestReplaceMealUnknownMeal ensures splicing a meal the day lacks reports ErrNotFound.
func TestReplaceMealUnknownMeal(t *testing.T) {
	stor := newTestStorage(t)
	if err := stor.SaveDay(sampleDay("2026-03-14")); err != nil {
		t.Fatalf("SaveDay returned error: %v", err)
	}
	_, err := stor.ReplaceMeal("2026-03-14", models.Meal{MealKey: "cena"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("ReplaceMeal error = %v, want %v", err, ErrNotFound)
	}
	_, err = stor.ReplaceMeal("2026-03-15", models.Meal{MealKey: "desayuno"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("ReplaceMeal error = %v, want %v", err, ErrNotFound)
	}
}

// TestGetDaysFiltersByRange ensures range bounds and limit apply, newest first.
func TestGetDaysFiltersByRange(t *testing.T) {
	stor := newTestStorage(t)
	for _, date := range []string{"2026-03-10", "2026-03-11", "2026-03-12", "2026-03-13"} {
		if err := stor.SaveDay(sampleDay(date)); err != nil {
			t.Fatalf("SaveDay returned error: %v", err)
		}
	}

	days, err := stor.GetDays("2026-03-11", "2026-03-13", 2)
	if err != nil {
		t.Fatalf("GetDays returned error: %v", err)
	}
	if len(days) != 2 || days[0].DayDate != "2026-03-13" || days[1].DayDate != "2026-03-12" {
		t.Fatalf("unexpected days: %v", days)
	}
	if len(days[0].Meals) != 3 {
		t.Fatalf("expected meals to load, got %d", len(days[0].Meals))
	}

	all, err := stor.GetDays("", "", 10)
	if err != nil {
		t.Fatalf("GetDays returned error: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 days, got %d", len(all))
	}
}
