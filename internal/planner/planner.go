// Package planner builds meals, days and weeks from the food catalog.
package planner

import (
	"math/rand"
	"sync"
	"time"

	"meal-planner/internal/catalog"
	"meal-planner/internal/models"
)

// DefaultDailyTargets applies when a day is generated without targets.
var DefaultDailyTargets = models.MacroTargets{Kcal: 2000, Protein: 120, Carbs: 220, Fat: 70}

// DaysPerWeek is the number of consecutive days in a generated week.
const DaysPerWeek = 7

// DayRequest describes one day to generate. Zero values select the defaults.
type DayRequest struct {
	Date    time.Time
	Targets *models.MacroTargets
	Meals   []string
}

// WeekRequest describes a week to generate. Targets are required by callers;
// a zero Start means today.
type WeekRequest struct {
	Start        time.Time
	Targets      models.MacroTargets
	Meals        []string
	Distribution map[string]float64
	ItemsPerMeal int
}

// Planner owns a catalog and a random source. Draws are serialised so one
// Planner can be shared between goroutines.
type Planner struct {
	catalog *catalog.Catalog
	now     func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededRNG creates a seeded random number generator. A zero seed uses the
// current time.
func NewSeededRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// New returns a planner over cat. A nil cat means the default catalog and a nil
// rng means a time-seeded one.
func New(cat *catalog.Catalog, rng *rand.Rand) *Planner {
	if cat == nil {
		cat = catalog.Default()
	}
	if rng == nil {
		rng = NewSeededRNG(0)
	}
	return &Planner{catalog: cat, rng: rng, now: time.Now}
}

// Catalog returns the planner's food table.
func (p *Planner) Catalog() *catalog.Catalog {
	return p.catalog
}

// Float64 draws from the shared source under the planner lock.
func (p *Planner) Float64() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.Float64()
}

// GenerateDay builds every requested meal for one day with three items each.
func (p *Planner) GenerateDay(req DayRequest) models.DayMenu {
	date := req.Date
	if date.IsZero() {
		date = p.now()
	}
	targets := DefaultDailyTargets
	if req.Targets != nil {
		targets = *req.Targets
	}
	keys := mealKeys(req.Meals)

	perMeal := SplitTargets(targets, Normalize(keys, nil))
	return p.buildDay(date, keys, perMeal, DefaultItemsPerMeal)
}

// GenerateWeek builds seven consecutive days from Start. Per-meal targets are
// split once and reused on every day.
func (p *Planner) GenerateWeek(req WeekRequest) models.WeekMenu {
	start := req.Start
	if start.IsZero() {
		start = p.now()
	}
	items := req.ItemsPerMeal
	if items == 0 {
		items = DefaultItemsPerMeal
	}
	keys := mealKeys(req.Meals)

	perMeal := SplitTargets(req.Targets, Normalize(keys, req.Distribution))

	week := models.WeekMenu{
		StartDate: start.Format(models.DateLayout),
		Days:      make([]models.DayMenu, 0, DaysPerWeek),
	}
	for i := range DaysPerWeek {
		week.Days = append(week.Days, p.buildDay(start.AddDate(0, 0, i), keys, perMeal, items))
	}
	return week
}

// RegenerateMeal draws a fresh meal for one slot.
func (p *Planner) RegenerateMeal(key string, targets models.MacroTargets, items int) models.Meal {
	if items == 0 {
		items = DefaultItemsPerMeal
	}
	return BuildMeal(p, p.catalog, key, targets, items)
}

func (p *Planner) buildDay(date time.Time, keys []string, perMeal map[string]models.MacroTargets, items int) models.DayMenu {
	day := models.DayMenu{
		DayDate: date.Format(models.DateLayout),
		Meals:   make([]models.Meal, 0, len(keys)),
	}
	for _, k := range keys {
		day.Meals = append(day.Meals, BuildMeal(p, p.catalog, k, perMeal[k], items))
	}
	day.DayTotals = models.SumMeals(day.Meals)
	return day
}

// mealKeys returns the requested keys without duplicates, or every canonical
// slot when none were requested.
func mealKeys(requested []string) []string {
	if len(requested) == 0 {
		return catalog.SlotKeys()
	}
	seen := make(map[string]bool, len(requested))
	keys := make([]string, 0, len(requested))
	for _, k := range requested {
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}
	return keys
}
