// internal/storage/sqlite.go
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"meal-planner/internal/models"
)

// ErrNotFound is returned when a day or meal is not stored.
var ErrNotFound = errors.New("not found")

type SQLiteStorage struct {
	db  *sql.DB
	now func() time.Time
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection serialises writers and keeps :memory: databases shared.
	db.SetMaxOpenConns(1)

	storage := &SQLiteStorage{db: db, now: time.Now}
	if err := storage.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return storage, nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func (s *SQLiteStorage) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS days (
        day_date TEXT PRIMARY KEY,
        total_kcal INTEGER NOT NULL,
        total_protein REAL NOT NULL,
        total_carbs REAL NOT NULL,
        total_fat REAL NOT NULL,
        created_at TEXT NOT NULL,
        updated_at TEXT NOT NULL
    );

    CREATE TABLE IF NOT EXISTS meals (
        id TEXT PRIMARY KEY,
        day_date TEXT NOT NULL,
        position INTEGER NOT NULL,
        meal_key TEXT NOT NULL,
        name TEXT NOT NULL,
        target_kcal INTEGER NOT NULL,
        target_protein REAL NOT NULL,
        target_carbs REAL NOT NULL,
        target_fat REAL NOT NULL,
        total_kcal INTEGER NOT NULL,
        total_protein REAL NOT NULL,
        total_carbs REAL NOT NULL,
        total_fat REAL NOT NULL,
        FOREIGN KEY (day_date) REFERENCES days(day_date) ON DELETE CASCADE,
        UNIQUE (day_date, meal_key)
    );

    CREATE TABLE IF NOT EXISTS items (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        meal_id TEXT NOT NULL,
        position INTEGER NOT NULL,
        food TEXT NOT NULL,
        grams INTEGER NOT NULL,
        kcal INTEGER NOT NULL,
        protein REAL NOT NULL,
        carbs REAL NOT NULL,
        fat REAL NOT NULL,
        FOREIGN KEY (meal_id) REFERENCES meals(id) ON DELETE CASCADE
    );

    CREATE INDEX IF NOT EXISTS idx_meals_day_date ON meals(day_date);
    CREATE INDEX IF NOT EXISTS idx_items_meal_id ON items(meal_id);
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// SaveDay stores a day, replacing any day already stored for that date.
func (s *SQLiteStorage) SaveDay(day *models.DayMenu) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	createdAt := s.now().UTC().Format(time.RFC3339)
	var existing string
	err = tx.QueryRow(`SELECT created_at FROM days WHERE day_date = ?`, day.DayDate).Scan(&existing)
	switch {
	case err == nil:
		createdAt = existing
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("failed to look up day: %w", err)
	}

	if err := deleteDay(tx, day.DayDate); err != nil {
		return err
	}
	if err := s.insertDay(tx, day, createdAt); err != nil {
		return err
	}

	return tx.Commit()
}

// GetDay loads the day stored for date.
func (s *SQLiteStorage) GetDay(date string) (*models.DayMenu, error) {
	return loadDay(s.db, date)
}

// GetDays returns stored days between startDate and endDate inclusive, newest
// first. Empty bounds are open.
func (s *SQLiteStorage) GetDays(startDate, endDate string, limit int) ([]*models.DayMenu, error) {
	query := `
        SELECT day_date
        FROM days
        WHERE 1=1
    `
	args := []any{}

	if startDate != "" {
		query += " AND day_date >= ?"
		args = append(args, startDate)
	}
	if endDate != "" {
		query += " AND day_date <= ?"
		args = append(args, endDate)
	}

	query += " ORDER BY day_date DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query days: %w", err)
	}
	var dates []string
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan day: %w", err)
		}
		dates = append(dates, date)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read days: %w", err)
	}

	days := make([]*models.DayMenu, 0, len(dates))
	for _, date := range dates {
		day, err := loadDay(s.db, date)
		if err != nil {
			return nil, fmt.Errorf("failed to load day %s: %w", date, err)
		}
		days = append(days, day)
	}

	return days, nil
}

// ReplaceMeal swaps the stored meal with the same key on date for meal and
// recomputes the day totals. It returns the updated day.
func (s *SQLiteStorage) ReplaceMeal(date string, meal models.Meal) (*models.DayMenu, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	day, err := loadDay(tx, date)
	if err != nil {
		return nil, err
	}

	replaced := false
	for i := range day.Meals {
		if day.Meals[i].MealKey == meal.MealKey {
			day.Meals[i] = meal
			replaced = true
			break
		}
	}
	if !replaced {
		return nil, fmt.Errorf("meal %s on %s: %w", meal.MealKey, date, ErrNotFound)
	}
	day.DayTotals = models.SumMeals(day.Meals)

	var createdAt string
	if err := tx.QueryRow(`SELECT created_at FROM days WHERE day_date = ?`, date).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("failed to look up day: %w", err)
	}
	if err := deleteDay(tx, date); err != nil {
		return nil, err
	}
	if err := s.insertDay(tx, day, createdAt); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return day, nil
}

func deleteDay(q querier, date string) error {
	if _, err := q.Exec(`DELETE FROM items WHERE meal_id IN (SELECT id FROM meals WHERE day_date = ?)`, date); err != nil {
		return fmt.Errorf("failed to delete items: %w", err)
	}
	if _, err := q.Exec(`DELETE FROM meals WHERE day_date = ?`, date); err != nil {
		return fmt.Errorf("failed to delete meals: %w", err)
	}
	if _, err := q.Exec(`DELETE FROM days WHERE day_date = ?`, date); err != nil {
		return fmt.Errorf("failed to delete day: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) insertDay(q querier, day *models.DayMenu, createdAt string) error {
	dayQuery := `
        INSERT INTO days (day_date, total_kcal, total_protein, total_carbs, total_fat, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `
	_, err := q.Exec(dayQuery,
		day.DayDate, day.DayTotals.Kcal, day.DayTotals.Protein, day.DayTotals.Carbs, day.DayTotals.Fat,
		createdAt, s.now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert day: %w", err)
	}

	mealQuery := `
        INSERT INTO meals (id, day_date, position, meal_key, name,
            target_kcal, target_protein, target_carbs, target_fat,
            total_kcal, total_protein, total_carbs, total_fat)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	itemQuery := `
        INSERT INTO items (meal_id, position, food, grams, kcal, protein, carbs, fat)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `
	for i, meal := range day.Meals {
		mealID := uuid.New().String()
		_, err = q.Exec(mealQuery,
			mealID, day.DayDate, i, meal.MealKey, meal.Name,
			meal.Targets.Kcal, meal.Targets.Protein, meal.Targets.Carbs, meal.Targets.Fat,
			meal.Totals.Kcal, meal.Totals.Protein, meal.Totals.Carbs, meal.Totals.Fat)
		if err != nil {
			return fmt.Errorf("failed to insert meal %s: %w", meal.MealKey, err)
		}

		for j, item := range meal.Items {
			_, err = q.Exec(itemQuery,
				mealID, j, item.Food, item.Grams, item.Kcal, item.Protein, item.Carbs, item.Fat)
			if err != nil {
				return fmt.Errorf("failed to insert item: %w", err)
			}
		}
	}

	return nil
}

type mealRow struct {
	id   string
	meal models.Meal
}

// loadDay reads a day and its meals. Result sets are drained before the next
// query so it works over a single connection.
func loadDay(q querier, date string) (*models.DayMenu, error) {
	day := &models.DayMenu{DayDate: date}
	err := q.QueryRow(`
        SELECT total_kcal, total_protein, total_carbs, total_fat
        FROM days
        WHERE day_date = ?
    `, date).Scan(&day.DayTotals.Kcal, &day.DayTotals.Protein, &day.DayTotals.Carbs, &day.DayTotals.Fat)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("day %s: %w", date, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query day: %w", err)
	}

	rows, err := q.Query(`
        SELECT id, meal_key, name,
            target_kcal, target_protein, target_carbs, target_fat,
            total_kcal, total_protein, total_carbs, total_fat
        FROM meals
        WHERE day_date = ?
        ORDER BY position
    `, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query meals: %w", err)
	}
	var mealRows []mealRow
	for rows.Next() {
		var r mealRow
		m := &r.meal
		err := rows.Scan(&r.id, &m.MealKey, &m.Name,
			&m.Targets.Kcal, &m.Targets.Protein, &m.Targets.Carbs, &m.Targets.Fat,
			&m.Totals.Kcal, &m.Totals.Protein, &m.Totals.Carbs, &m.Totals.Fat)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan meal: %w", err)
		}
		mealRows = append(mealRows, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read meals: %w", err)
	}

	day.Meals = make([]models.Meal, 0, len(mealRows))
	for _, r := range mealRows {
		items, err := loadItems(q, r.id)
		if err != nil {
			return nil, fmt.Errorf("failed to load items for meal %s: %w", r.meal.MealKey, err)
		}
		r.meal.Items = items
		day.Meals = append(day.Meals, r.meal)
	}

	return day, nil
}

func loadItems(q querier, mealID string) ([]models.FoodItem, error) {
	query := `
        SELECT food, grams, kcal, protein, carbs, fat
        FROM items
        WHERE meal_id = ?
        ORDER BY position
    `

	rows, err := q.Query(query, mealID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	items := []models.FoodItem{}
	for rows.Next() {
		var item models.FoodItem
		err := rows.Scan(&item.Food, &item.Grams, &item.Kcal, &item.Protein, &item.Carbs, &item.Fat)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
