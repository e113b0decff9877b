package planner

import (
	"math"
	"math/rand"
	"testing"

	"meal-planner/internal/catalog"
	"meal-planner/internal/models"
)

// sequenceRand replays fixed draws, wrapping around when exhausted.
type sequenceRand struct {
	values []float64
	next   int
}

func (s *sequenceRand) Float64() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func assertMealTotals(t *testing.T, meal models.Meal) {
	t.Helper()
	var kcal int
	var protein, carbs, fat float64
	for _, item := range meal.Items {
		if item.Grams < minItemGrams {
			t.Fatalf("%s: item %s has %d g, want >= %d", meal.MealKey, item.Food, item.Grams, minItemGrams)
		}
		kcal += item.Kcal
		protein += item.Protein
		carbs += item.Carbs
		fat += item.Fat
	}
	if meal.Totals.Kcal != kcal {
		t.Fatalf("%s: totals kcal = %d, want %d", meal.MealKey, meal.Totals.Kcal, kcal)
	}
	for name, pair := range map[string][2]float64{
		"protein": {meal.Totals.Protein, protein},
		"carbs":   {meal.Totals.Carbs, carbs},
		"fat":     {meal.Totals.Fat, fat},
	} {
		if math.Abs(pair[0]-pair[1]) > 0.05+1e-9 {
			t.Fatalf("%s: totals %s = %v, items sum to %v", meal.MealKey, name, pair[0], pair[1])
		}
	}
}

// TestBuildMealInvariants ensures item count, gram floor and totals hold across seeds.
func TestBuildMealInvariants(t *testing.T) {
	cat := catalog.Default()
	target := models.MacroTargets{Kcal: 600, Protein: 35, Carbs: 70, Fat: 20}
	for seed := int64(1); seed <= 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		for _, key := range catalog.SlotKeys() {
			for n := MinItemsPerMeal; n <= MaxItemsPerMeal; n++ {
				meal := BuildMeal(rng, cat, key, target, n)
				if len(meal.Items) != n {
					t.Fatalf("seed %d %s: expected %d items, got %d", seed, key, n, len(meal.Items))
				}
				assertMealTotals(t, meal)
			}
		}
	}
}

// TestBuildMealOnlyDrawsEligibleFoods ensures every item declares the requested slot.
func TestBuildMealOnlyDrawsEligibleFoods(t *testing.T) {
	cat := catalog.Default()
	rng := rand.New(rand.NewSource(7))
	target := models.MacroTargets{Kcal: 500, Protein: 30, Carbs: 60, Fat: 15}
	for range 100 {
		meal := BuildMeal(rng, cat, "desayuno", target, 2)
		if len(meal.Items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(meal.Items))
		}
		for _, item := range meal.Items {
			entry, ok := cat.Lookup(item.Food)
			if !ok {
				t.Fatalf("unknown food %q", item.Food)
			}
			if _, ok := entry.SlotWeights["desayuno"]; !ok {
				t.Fatalf("food %q is not a breakfast food", item.Food)
			}
			if item.Grams < minItemGrams {
				t.Fatalf("food %q has %d g", item.Food, item.Grams)
			}
		}
		if meal.Name != "Desayuno" {
			t.Fatalf("Name = %q, want Desayuno", meal.Name)
		}
	}
}

// TestBuildMealNoEligibleFoods ensures an unknown slot yields an empty meal.
func TestBuildMealNoEligibleFoods(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	target := models.MacroTargets{Kcal: 400, Protein: 20, Carbs: 40, Fat: 10}
	meal := BuildMeal(rng, catalog.Default(), "recena", target, 3)
	if meal.Items == nil || len(meal.Items) != 0 {
		t.Fatalf("expected empty item list, got %v", meal.Items)
	}
	if !meal.Totals.IsZero() {
		t.Fatalf("expected zero totals, got %+v", meal.Totals)
	}
	if meal.Targets != target {
		t.Fatalf("Targets = %+v, want %+v", meal.Targets, target)
	}
	if meal.Name != "Recena" {
		t.Fatalf("Name = %q, want Recena", meal.Name)
	}
}

// TestBuildMealPortionSizing ensures grams follow the per-item kcal share.
func TestBuildMealPortionSizing(t *testing.T) {
	cat := catalog.New([]catalog.Entry{
		{Name: "base", KcalPer100g: 200, ProteinPer100g: 10, CarbsPer100g: 25, FatPer100g: 5,
			OverallWeight: 1, SlotWeights: map[string]float64{"comida": 1}},
	})
	meal := BuildMeal(&sequenceRand{values: []float64{0.5}}, cat, "comida", models.MacroTargets{Kcal: 601}, 3)
	if len(meal.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(meal.Items))
	}
	want := models.FoodItem{Food: "base", Grams: 100, Kcal: 200, Protein: 10, Carbs: 25, Fat: 5}
	for _, item := range meal.Items {
		if item != want {
			t.Fatalf("item = %+v, want %+v", item, want)
		}
	}
	if meal.Totals != (models.MacroTargets{Kcal: 600, Protein: 30, Carbs: 75, Fat: 15}) {
		t.Fatalf("unexpected totals: %+v", meal.Totals)
	}
}

// TestBuildMealFloors ensures the kcal and gram floors apply to tiny targets and dense foods.
func TestBuildMealFloors(t *testing.T) {
	cat := catalog.New([]catalog.Entry{
		{Name: "oil", KcalPer100g: 884, FatPer100g: 100,
			OverallWeight: 1, SlotWeights: map[string]float64{"cena": 1}},
		{Name: "broth", KcalPer100g: 10, ProteinPer100g: 1,
			OverallWeight: 1, SlotWeights: map[string]float64{"merienda": 1}},
		{Name: "water", KcalPer100g: 0,
			OverallWeight: 1, SlotWeights: map[string]float64{"desayuno": 1}},
	})
	rng := &sequenceRand{values: []float64{0.1}}

	oil := BuildMeal(rng, cat, "cena", models.MacroTargets{Kcal: 0}, 2)
	want := models.FoodItem{Food: "oil", Grams: 30, Kcal: 265, Fat: 30}
	if oil.Items[0] != want {
		t.Fatalf("oil item = %+v, want %+v", oil.Items[0], want)
	}

	broth := BuildMeal(rng, cat, "merienda", models.MacroTargets{Kcal: 20}, 2)
	want = models.FoodItem{Food: "broth", Grams: 500, Kcal: 50, Protein: 5}
	if broth.Items[0] != want {
		t.Fatalf("broth item = %+v, want %+v", broth.Items[0], want)
	}

	water := BuildMeal(rng, cat, "desayuno", models.MacroTargets{Kcal: 300}, 2)
	if water.Items[0].Grams != minItemGrams || water.Items[0].Kcal != 0 {
		t.Fatalf("water item = %+v", water.Items[0])
	}
}

// TestBuildMealClampsItemCount ensures out-of-range counts are held to the allowed bounds.
func TestBuildMealClampsItemCount(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	target := models.MacroTargets{Kcal: 500}
	if got := len(BuildMeal(rng, catalog.Default(), "comida", target, 0).Items); got != MinItemsPerMeal {
		t.Fatalf("expected %d items, got %d", MinItemsPerMeal, got)
	}
	if got := len(BuildMeal(rng, catalog.Default(), "comida", target, 9).Items); got != MaxItemsPerMeal {
		t.Fatalf("expected %d items, got %d", MaxItemsPerMeal, got)
	}
}

// TestDrawWeightedSkipsZeroWeights ensures zero-weight candidates are never drawn.
func TestDrawWeightedSkipsZeroWeights(t *testing.T) {
	candidates := []catalog.Candidate{
		{Entry: catalog.Entry{Name: "never"}, Weight: 0},
		{Entry: catalog.Entry{Name: "always"}, Weight: 0.3},
		{Entry: catalog.Entry{Name: "never2"}, Weight: 0},
	}
	rng := &sequenceRand{values: []float64{0, 0.5, 0.999999}}
	for _, e := range drawWeighted(rng, candidates, 6) {
		if e.Name != "always" {
			t.Fatalf("drew %q", e.Name)
		}
	}
}

// TestDrawWeightedUniformWhenAllZero ensures zero total weight still draws every candidate.
func TestDrawWeightedUniformWhenAllZero(t *testing.T) {
	candidates := []catalog.Candidate{
		{Entry: catalog.Entry{Name: "a"}},
		{Entry: catalog.Entry{Name: "b"}},
	}
	rng := &sequenceRand{values: []float64{0.2, 0.7}}
	got := drawWeighted(rng, candidates, 2)
	if got[0].Name != "a" || got[1].Name != "b" {
		t.Fatalf("unexpected draws: %v, %v", got[0].Name, got[1].Name)
	}
}

// TestDrawWeightedIsProportional ensures draw frequency follows the candidate weights.
func TestDrawWeightedIsProportional(t *testing.T) {
	candidates := []catalog.Candidate{
		{Entry: catalog.Entry{Name: "heavy"}, Weight: 0.6},
		{Entry: catalog.Entry{Name: "light"}, Weight: 0.2},
	}
	rng := rand.New(rand.NewSource(11))
	const draws = 20000
	heavy := 0
	for _, e := range drawWeighted(rng, candidates, draws) {
		if e.Name == "heavy" {
			heavy++
		}
	}
	if share := float64(heavy) / draws; math.Abs(share-0.75) > 0.02 {
		t.Fatalf("heavy share = %v, want about 0.75", share)
	}
}
