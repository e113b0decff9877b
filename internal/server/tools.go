// internal/server/tools.go
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"meal-planner/internal/catalog"
	"meal-planner/internal/models"
	"meal-planner/internal/planner"
	"meal-planner/internal/storage"
)

// ErrInvalidParams marks a request rejected before any generation ran.
var ErrInvalidParams = errors.New("invalid parameters")

// Upper bounds for requested targets. Larger values overflow integer kcal
// once split and summed.
const (
	maxTargetKcal  = 100000
	maxTargetGrams = 10000.0
)

type toolHandler func(args json.RawMessage) (any, error)

type GenerateDayParams struct {
	DayDate      string               `json:"day_date,omitempty" description:"Day to plan (YYYY-MM-DD, defaults to today)"`
	DailyTargets *models.MacroTargets `json:"daily_targets,omitempty" description:"Daily kcal and macro targets"`
	Meals        []string             `json:"meals,omitempty" description:"Meal slot keys to include"`
}

type GenerateWeekParams struct {
	StartDate        string               `json:"start_date,omitempty" description:"First day of the week (YYYY-MM-DD, defaults to today)"`
	DailyTargets     *models.MacroTargets `json:"daily_targets" description:"Daily kcal and macro targets"`
	Meals            []string             `json:"meals,omitempty" description:"Meal slot keys to include"`
	MealDistribution map[string]float64   `json:"meal_distribution,omitempty" description:"Relative share of the day per meal slot"`
	ItemsPerMeal     *int                 `json:"items_per_meal,omitempty" description:"Foods per meal, 2 to 5"`
}

type RegenerateMealParams struct {
	DayDate      string               `json:"day_date" description:"Day the meal belongs to (YYYY-MM-DD)"`
	MealKey      string               `json:"meal_key" description:"Meal slot key to regenerate"`
	Targets      *models.MacroTargets `json:"targets,omitempty" description:"Targets for the meal (defaults to the stored meal's targets)"`
	ItemsPerMeal *int                 `json:"items_per_meal,omitempty" description:"Foods per meal, 2 to 5"`
}

type GetDayParams struct {
	DayDate string `json:"day_date" description:"Stored day to fetch (YYYY-MM-DD)"`
}

type GetDaysParams struct {
	StartDate string `json:"start_date,omitempty" description:"Start date for the query (YYYY-MM-DD)"`
	EndDate   string `json:"end_date,omitempty" description:"End date for the query (YYYY-MM-DD)"`
	Limit     int    `json:"limit,omitempty" description:"Maximum number of days to return"`
}

type ListFoodsParams struct {
	MealKey string `json:"meal_key,omitempty" description:"Only foods eligible for this meal slot"`
}

type GenerateDayResponse struct {
	Status    string              `json:"status"`
	DayDate   string              `json:"day_date"`
	Meals     []models.Meal       `json:"meals"`
	DayTotals models.MacroTargets `json:"day_totals"`
}

type GenerateWeekResponse struct {
	Status    string           `json:"status"`
	StartDate string           `json:"start_date"`
	Days      []models.DayMenu `json:"days"`
}

type RegenerateMealResponse struct {
	MealKey   string               `json:"meal_key"`
	Name      string               `json:"name"`
	Items     []models.FoodItem    `json:"items"`
	Totals    models.MacroTargets  `json:"totals"`
	DayTotals *models.MacroTargets `json:"day_totals,omitempty"`
}

// extractParams decodes tool arguments into target. Empty arguments leave
// target at its zero value.
func extractParams(args json.RawMessage, target any) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, target); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParams, fmt.Sprintf(format, args...))
}

// parseDate accepts an empty string (zero time) or a YYYY-MM-DD date.
func parseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	d, err := time.ParseInLocation(models.DateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, invalid("%s must be YYYY-MM-DD, got %q", field, value)
	}
	return d, nil
}

func itemsPerMeal(v *int) (int, error) {
	if v == nil {
		return planner.DefaultItemsPerMeal, nil
	}
	if *v < planner.MinItemsPerMeal || *v > planner.MaxItemsPerMeal {
		return 0, invalid("items_per_meal must be between %d and %d, got %d",
			planner.MinItemsPerMeal, planner.MaxItemsPerMeal, *v)
	}
	return *v, nil
}

func validateTargets(field string, t *models.MacroTargets) error {
	if t == nil {
		return nil
	}
	if t.Kcal < 0 || t.Protein < 0 || t.Carbs < 0 || t.Fat < 0 {
		return invalid("%s must not be negative", field)
	}
	if t.Kcal > maxTargetKcal {
		return invalid("%s.kcal must not exceed %d", field, maxTargetKcal)
	}
	if t.Protein > maxTargetGrams || t.Carbs > maxTargetGrams || t.Fat > maxTargetGrams {
		return invalid("%s macros must not exceed %g g", field, maxTargetGrams)
	}
	return nil
}

func validateMeals(meals []string) error {
	for _, k := range meals {
		if k == "" {
			return invalid("meals must not contain empty keys")
		}
	}
	return nil
}

// handleGenerateDay plans one day and stores it for later regeneration.
func (s *MealPlanServer) handleGenerateDay(args json.RawMessage) (any, error) {
	var params GenerateDayParams
	if err := extractParams(args, &params); err != nil {
		return nil, err
	}
	date, err := parseDate("day_date", params.DayDate)
	if err != nil {
		return nil, err
	}
	if err := validateTargets("daily_targets", params.DailyTargets); err != nil {
		return nil, err
	}
	if err := validateMeals(params.Meals); err != nil {
		return nil, err
	}

	day := s.planner.GenerateDay(planner.DayRequest{
		Date:    date,
		Targets: params.DailyTargets,
		Meals:   params.Meals,
	})
	s.saveDay(&day)

	return GenerateDayResponse{
		Status:    "ok",
		DayDate:   day.DayDate,
		Meals:     day.Meals,
		DayTotals: day.DayTotals,
	}, nil
}

// handleGenerateWeek plans seven consecutive days and stores each of them.
func (s *MealPlanServer) handleGenerateWeek(args json.RawMessage) (any, error) {
	var params GenerateWeekParams
	if err := extractParams(args, &params); err != nil {
		return nil, err
	}
	start, err := parseDate("start_date", params.StartDate)
	if err != nil {
		return nil, err
	}
	if params.DailyTargets == nil {
		return nil, invalid("daily_targets is required")
	}
	if err := validateTargets("daily_targets", params.DailyTargets); err != nil {
		return nil, err
	}
	if err := validateMeals(params.Meals); err != nil {
		return nil, err
	}
	for k, w := range params.MealDistribution {
		if w < 0 {
			return nil, invalid("meal_distribution[%s] must not be negative", k)
		}
	}
	items, err := itemsPerMeal(params.ItemsPerMeal)
	if err != nil {
		return nil, err
	}

	week := s.planner.GenerateWeek(planner.WeekRequest{
		Start:        start,
		Targets:      *params.DailyTargets,
		Meals:        params.Meals,
		Distribution: params.MealDistribution,
		ItemsPerMeal: items,
	})
	for i := range week.Days {
		s.saveDay(&week.Days[i])
	}

	return GenerateWeekResponse{
		Status:    "ok",
		StartDate: week.StartDate,
		Days:      week.Days,
	}, nil
}

// handleRegenerateMeal draws a fresh meal and splices it into the stored day
// when there is one.
func (s *MealPlanServer) handleRegenerateMeal(args json.RawMessage) (any, error) {
	var params RegenerateMealParams
	if err := extractParams(args, &params); err != nil {
		return nil, err
	}
	if params.DayDate == "" {
		return nil, invalid("day_date is required")
	}
	date, err := parseDate("day_date", params.DayDate)
	if err != nil {
		return nil, err
	}
	dayDate := date.Format(models.DateLayout)
	if params.MealKey == "" {
		return nil, invalid("meal_key is required")
	}
	if err := validateTargets("targets", params.Targets); err != nil {
		return nil, err
	}
	items, err := itemsPerMeal(params.ItemsPerMeal)
	if err != nil {
		return nil, err
	}

	var targets models.MacroTargets
	if params.Targets != nil {
		targets = *params.Targets
	} else {
		stored, ok := s.storedTargets(dayDate, params.MealKey)
		if !ok {
			return nil, invalid("targets are required when %s has no stored %s meal", dayDate, params.MealKey)
		}
		targets = stored
	}

	meal := s.planner.RegenerateMeal(params.MealKey, targets, items)
	resp := RegenerateMealResponse{
		MealKey: meal.MealKey,
		Name:    meal.Name,
		Items:   meal.Items,
		Totals:  meal.Totals,
	}

	day, err := s.storage.ReplaceMeal(dayDate, meal)
	switch {
	case err == nil:
		resp.DayTotals = &day.DayTotals
	case errors.Is(err, storage.ErrNotFound):
		s.logger.Debug("regenerated meal not spliced", "day_date", dayDate, "meal_key", meal.MealKey)
	default:
		s.logger.Warn("failed to splice regenerated meal", "day_date", dayDate, "meal_key", meal.MealKey, "error", err)
	}

	return resp, nil
}

// handleGetDay returns a stored day.
func (s *MealPlanServer) handleGetDay(args json.RawMessage) (any, error) {
	var params GetDayParams
	if err := extractParams(args, &params); err != nil {
		return nil, err
	}
	if params.DayDate == "" {
		return nil, invalid("day_date is required")
	}
	date, err := parseDate("day_date", params.DayDate)
	if err != nil {
		return nil, err
	}

	day, err := s.storage.GetDay(date.Format(models.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve day: %w", err)
	}
	return day, nil
}

// handleGetDays returns stored days in a date range, newest first.
func (s *MealPlanServer) handleGetDays(args json.RawMessage) (any, error) {
	var params GetDaysParams
	if err := extractParams(args, &params); err != nil {
		return nil, err
	}
	if _, err := parseDate("start_date", params.StartDate); err != nil {
		return nil, err
	}
	if _, err := parseDate("end_date", params.EndDate); err != nil {
		return nil, err
	}

	// Set defaults
	if params.Limit <= 0 {
		params.Limit = 20
	}

	days, err := s.storage.GetDays(params.StartDate, params.EndDate, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve days: %w", err)
	}
	return days, nil
}

// handleListFoods returns the catalog, optionally only a slot's eligible foods.
func (s *MealPlanServer) handleListFoods(args json.RawMessage) (any, error) {
	var params ListFoodsParams
	if err := extractParams(args, &params); err != nil {
		return nil, err
	}

	cat := s.planner.Catalog()
	if params.MealKey == "" {
		return cat.Entries(), nil
	}
	foods := []catalog.Entry{}
	for _, c := range cat.Eligible(params.MealKey) {
		foods = append(foods, c.Entry)
	}
	return foods, nil
}

func (s *MealPlanServer) storedTargets(dayDate, mealKey string) (models.MacroTargets, bool) {
	day, err := s.storage.GetDay(dayDate)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("failed to load stored day", "day_date", dayDate, "error", err)
		}
		return models.MacroTargets{}, false
	}
	for _, m := range day.Meals {
		if m.MealKey == mealKey {
			return m.Targets, true
		}
	}
	return models.MacroTargets{}, false
}

// saveDay stores a generated day. Failures are logged; the plan is still
// returned to the caller.
func (s *MealPlanServer) saveDay(day *models.DayMenu) {
	if err := s.storage.SaveDay(day); err != nil {
		s.logger.Warn("failed to store day", "day_date", day.DayDate, "error", err)
	}
}

func (s *MealPlanServer) registerTools() {
	s.tools = map[string]toolHandler{
		"generate_day":    s.handleGenerateDay,
		"generate_week":   s.handleGenerateWeek,
		"regenerate_meal": s.handleRegenerateMeal,
		"get_day":         s.handleGetDay,
		"get_days":        s.handleGetDays,
		"list_foods":      s.handleListFoods,
	}

	for name := range s.tools {
		s.logger.Debug("registered tool", "tool", name)
	}
}
