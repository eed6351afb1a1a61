package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/momentum/internal/core/domain"
	"github.com/comitanigiacomo/momentum/internal/logger"

	_ "modernc.org/sqlite"
)

var _ domain.Store = (*SQLiteStore)(nil)

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS habits (
    id             TEXT PRIMARY KEY,
    position       INTEGER NOT NULL,
    name           TEXT NOT NULL,
    description    TEXT NOT NULL DEFAULT '',
    frequency      TEXT NOT NULL,
    specific_days  TEXT NOT NULL DEFAULT '[]',
    goal           TEXT NOT NULL DEFAULT '',
    goal_end_date  TEXT NOT NULL DEFAULT '',
    category_id    TEXT NOT NULL DEFAULT '',
    color          TEXT NOT NULL DEFAULT '',
    icon           TEXT NOT NULL DEFAULT '',
    created_at     TEXT NOT NULL DEFAULT '',
    streak         INTEGER NOT NULL DEFAULT 0,
    longest_streak INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS habit_completions (
    habit_id TEXT NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
    day      TEXT NOT NULL,
    PRIMARY KEY (habit_id, day)
);

CREATE TABLE IF NOT EXISTS categories (
    id       TEXT PRIMARY KEY,
    position INTEGER NOT NULL,
    name     TEXT NOT NULL,
    color    TEXT NOT NULL DEFAULT '',
    icon     TEXT NOT NULL DEFAULT ''
);`

type habitRow struct {
	ID            string `db:"id"`
	Position      int    `db:"position"`
	Name          string `db:"name"`
	Description   string `db:"description"`
	Frequency     string `db:"frequency"`
	SpecificDays  string `db:"specific_days"`
	Goal          string `db:"goal"`
	GoalEndDate   string `db:"goal_end_date"`
	CategoryID    string `db:"category_id"`
	Color         string `db:"color"`
	Icon          string `db:"icon"`
	CreatedAt     string `db:"created_at"`
	Streak        int    `db:"streak"`
	LongestStreak int    `db:"longest_streak"`
}

type completionRow struct {
	HabitID string `db:"habit_id"`
	Day     string `db:"day"`
}

type categoryRow struct {
	ID       string `db:"id"`
	Position int    `db:"position"`
	Name     string `db:"name"`
	Color    string `db:"color"`
	Icon     string `db:"icon"`
}

// SQLiteStore keeps the lists in an embedded SQLite file. Save rewrites the
// whole list inside one transaction, which matches the load/save contract.
type SQLiteStore struct {
	db  *sqlx.DB
	loc *time.Location
}

func NewSQLiteStore(path string, loc *time.Location) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite store: %w", err)
	}

	// a single connection keeps :memory: databases alive and serializes writers
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db, loc: loc}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) ([]*domain.Habit, error) {
	var rows []habitRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM habits ORDER BY position ASC`); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	var completions []completionRow
	if err := s.db.SelectContext(ctx, &completions, `SELECT habit_id, day FROM habit_completions`); err != nil {
		return nil, fmt.Errorf("completions query error: %w", err)
	}

	byHabit := make(map[string]map[string]bool, len(rows))
	for _, c := range completions {
		if byHabit[c.HabitID] == nil {
			byHabit[c.HabitID] = make(map[string]bool)
		}
		byHabit[c.HabitID][c.Day] = true
	}

	habits := make([]*domain.Habit, 0, len(rows))
	for _, row := range rows {
		var days []int
		if row.SpecificDays != "" {
			if err := json.Unmarshal([]byte(row.SpecificDays), &days); err != nil {
				logger.Warn("[STORE] Ignoring unreadable weekdays", "habit_id", row.ID, "error", err)
			}
		}

		// rows go through the same normalizer as JSON documents so that
		// hand-edited databases cannot smuggle invalid dates in
		raw := RawHabit{
			ID:           row.ID,
			Name:         row.Name,
			Description:  row.Description,
			Frequency:    row.Frequency,
			SpecificDays: days,
			GoalEndDate:  row.GoalEndDate,
			CategoryID:   row.CategoryID,
			Color:        row.Color,
			Icon:         row.Icon,
			CreatedAt:    row.CreatedAt,
			Completions:  byHabit[row.ID],
		}
		if row.Goal != "" {
			raw.Goal, _ = json.Marshal(row.Goal)
		}

		habits = append(habits, NormalizeHabit(raw, s.loc))
	}

	return habits, nil
}

func (s *SQLiteStore) Save(ctx context.Context, habits []*domain.Habit) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM habit_completions`); err != nil {
		return fmt.Errorf("failed to clear completions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM habits`); err != nil {
		return fmt.Errorf("failed to clear habits: %w", err)
	}

	insertHabit := `
        INSERT INTO habits (
            id, position, name, description, frequency, specific_days,
            goal, goal_end_date, category_id, color, icon, created_at,
            streak, longest_streak
        ) VALUES (
            :id, :position, :name, :description, :frequency, :specific_days,
            :goal, :goal_end_date, :category_id, :color, :icon, :created_at,
            :streak, :longest_streak
        )`

	for i, h := range habits {
		days, err := json.Marshal(h.SpecificDays)
		if err != nil {
			return fmt.Errorf("failed to marshal weekdays: %w", err)
		}
		if h.SpecificDays == nil {
			days = []byte("[]")
		}

		createdAt := ""
		if !h.CreatedAt.IsZero() {
			createdAt = h.CreatedAt.Format(time.RFC3339Nano)
		}

		row := habitRow{
			ID:            h.ID,
			Position:      i,
			Name:          h.Name,
			Description:   h.Description,
			Frequency:     string(h.Frequency),
			SpecificDays:  string(days),
			Goal:          h.Goal,
			GoalEndDate:   h.GoalEndDate,
			CategoryID:    h.CategoryID,
			Color:         h.Color,
			Icon:          h.Icon,
			CreatedAt:     createdAt,
			Streak:        h.Streak,
			LongestStreak: h.LongestStreak,
		}
		if _, err := tx.NamedExecContext(ctx, insertHabit, row); err != nil {
			return fmt.Errorf("failed to insert habit %s: %w", h.ID, err)
		}

		for _, day := range h.CompletedDates() {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO habit_completions (habit_id, day) VALUES (?, ?)`, h.ID, day); err != nil {
				return fmt.Errorf("failed to insert completion %s for %s: %w", day, h.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit habits: %w", err)
	}
	return nil
}

func (s *SQLiteStore) LoadCategories(ctx context.Context) ([]*domain.Category, error) {
	var rows []categoryRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM categories ORDER BY position ASC`); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	categories := make([]*domain.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, &domain.Category{
			ID:    row.ID,
			Name:  row.Name,
			Color: row.Color,
			Icon:  row.Icon,
		})
	}
	return categories, nil
}

func (s *SQLiteStore) SaveCategories(ctx context.Context, categories []*domain.Category) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM categories`); err != nil {
		return fmt.Errorf("failed to clear categories: %w", err)
	}

	for i, c := range categories {
		row := categoryRow{ID: c.ID, Position: i, Name: c.Name, Color: c.Color, Icon: c.Icon}
		if _, err := tx.NamedExecContext(ctx,
			`INSERT INTO categories (id, position, name, color, icon) VALUES (:id, :position, :name, :color, :icon)`,
			row); err != nil {
			return fmt.Errorf("failed to insert category %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit categories: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
