package planner

import (
	"sort"

	"meal-planner/internal/catalog"
	"meal-planner/internal/models"
)

const (
	MinItemsPerMeal     = 2
	MaxItemsPerMeal     = 5
	DefaultItemsPerMeal = 3

	minItemKcal  = 50
	minItemGrams = 30
)

// Rand is the random source the meal builder draws from. *math/rand.Rand
// satisfies it.
type Rand interface {
	Float64() float64
}

// BuildMeal picks n foods for the slot, with replacement, and sizes each
// portion to an even share of the target kcal. A slot with no eligible foods
// yields a meal with no items and zero totals.
func BuildMeal(rng Rand, cat *catalog.Catalog, key string, target models.MacroTargets, n int) models.Meal {
	n = clampItems(n)
	meal := models.Meal{
		MealKey: key,
		Name:    catalog.DisplayName(key),
		Targets: target,
		Items:   []models.FoodItem{},
	}

	candidates := cat.Eligible(key)
	if len(candidates) == 0 {
		return meal
	}

	perItemKcal := target.Kcal / n
	if perItemKcal < minItemKcal {
		perItemKcal = minItemKcal
	}

	for _, entry := range drawWeighted(rng, candidates, n) {
		meal.Items = append(meal.Items, portion(entry, perItemKcal))
	}
	meal.Totals = models.SumItems(meal.Items)
	return meal
}

// portion sizes one food to roughly kcal, never below the gram floor.
func portion(e catalog.Entry, kcal int) models.FoodItem {
	grams := minItemGrams
	if e.KcalPer100g > 0 {
		grams = models.RoundInt(float64(kcal) / float64(e.KcalPer100g) * 100)
		if grams < minItemGrams {
			grams = minItemGrams
		}
	}

	factor := float64(grams) / 100
	return models.FoodItem{
		Food:    e.Name,
		Grams:   grams,
		Kcal:    models.RoundInt(float64(e.KcalPer100g) * factor),
		Protein: models.Round1(e.ProteinPer100g * factor),
		Carbs:   models.Round1(e.CarbsPer100g * factor),
		Fat:     models.Round1(e.FatPer100g * factor),
	}
}

// drawWeighted samples n entries with replacement, each draw proportional to
// the candidate weight. When every weight is zero the draw is uniform.
func drawWeighted(rng Rand, candidates []catalog.Candidate, n int) []catalog.Entry {
	cumulative := make([]float64, len(candidates))
	var total float64
	for i, c := range candidates {
		if c.Weight > 0 {
			total += c.Weight
		}
		cumulative[i] = total
	}

	out := make([]catalog.Entry, 0, n)
	for range n {
		if total <= 0 {
			idx := int(rng.Float64() * float64(len(candidates)))
			if idx >= len(candidates) {
				idx = len(candidates) - 1
			}
			out = append(out, candidates[idx].Entry)
			continue
		}
		x := rng.Float64() * total
		// First cumulative weight strictly above x; zero-weight entries share
		// their predecessor's bound and are never picked.
		idx := sort.Search(len(cumulative), func(i int) bool { return cumulative[i] > x })
		if idx >= len(candidates) {
			idx = len(candidates) - 1
		}
		out = append(out, candidates[idx].Entry)
	}
	return out
}

func clampItems(n int) int {
	switch {
	case n < MinItemsPerMeal:
		return MinItemsPerMeal
	case n > MaxItemsPerMeal:
		return MaxItemsPerMeal
	default:
		return n
	}
}
