package repository

import (
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/momentum/internal/core/domain"
	"github.com/comitanigiacomo/momentum/internal/logger"
)

// RawHabit accepts both the current document shape and the older browser
// export, where completions were kept as a completionHistory array and
// fields were camelCased.
type RawHabit struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Frequency   string          `json:"frequency"`
	Goal        json.RawMessage `json:"goal"`
	Color       string          `json:"color"`
	Icon        string          `json:"icon"`
	Completions map[string]bool `json:"completions"`

	SpecificDays []int  `json:"specific_days"`
	GoalEndDate  string `json:"goal_end_date"`
	CategoryID   string `json:"category_id"`
	CreatedAt    string `json:"created_at"`

	LegacySpecificDays []int    `json:"specificDays"`
	LegacyGoalEndDate  string   `json:"goalEndDate"`
	LegacyCategory     string   `json:"category"`
	LegacyCreatedAt    string   `json:"createdAt"`
	LegacyHistory      []string `json:"completionHistory"`
}

var legacyDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	domain.DateLayout,
}

// parseLegacyDate resolves a stored date or timestamp to its calendar day in
// loc. Date-only values are taken as-is.
func parseLegacyDate(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	if t, err := time.ParseInLocation(domain.DateLayout, value, loc); err == nil {
		return t, true
	}

	for _, layout := range legacyDateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t.In(loc), true
		}
	}

	return time.Time{}, false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// UntitledHabit names imported habits that were stored without a name.
const UntitledHabit = "Untitled habit"

// truncate cuts s to at most limit bytes without splitting a rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	s = s[:limit]
	for !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return strings.TrimSpace(s)
}

// sanitizeFields makes the descriptive fields of an imported habit pass
// domain validation, so that later edits are not rejected for values the
// user never touched.
func sanitizeFields(h *domain.Habit) {
	if h.Name == "" {
		logger.Warn("[STORE] Habit without name, renaming", "habit_id", h.ID, "name", UntitledHabit)
		h.Name = UntitledHabit
	}
	if len(h.Name) > domain.MaxNameLen {
		logger.Warn("[STORE] Truncating long habit name", "habit_id", h.ID)
		h.Name = truncate(h.Name, domain.MaxNameLen)
	}
	if len(h.Description) > domain.MaxDescLen {
		logger.Warn("[STORE] Truncating long habit description", "habit_id", h.ID)
		h.Description = truncate(h.Description, domain.MaxDescLen)
	}

	h.Color = strings.TrimSpace(h.Color)
	switch {
	case h.Color == "":
		h.Color = domain.DefaultColor
	case !domain.ValidColor(h.Color):
		logger.Warn("[STORE] Unknown color, falling back to default", "habit_id", h.ID, "color", h.Color)
		h.Color = domain.DefaultColor
	}

	h.Icon = strings.TrimSpace(h.Icon)
	if h.Icon == "" {
		h.Icon = domain.DefaultIcon
	}
}

func goalText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	return strings.TrimSpace(string(raw))
}

// NormalizeHabit converts a stored record into a domain habit. Invalid
// completion dates are dropped one by one with a warning; missing optional
// fields fall back to empty values. Cached streak fields are never carried
// over.
func NormalizeHabit(raw RawHabit, loc *time.Location) *domain.Habit {
	if loc == nil {
		loc = time.Local
	}

	h := &domain.Habit{
		ID:          strings.TrimSpace(raw.ID),
		Name:        strings.TrimSpace(raw.Name),
		Description: strings.TrimSpace(raw.Description),
		Frequency:   domain.Frequency(strings.TrimSpace(raw.Frequency)),
		Goal:        goalText(raw.Goal),
		CategoryID:  firstNonEmpty(raw.CategoryID, raw.LegacyCategory),
		Color:       raw.Color,
		Icon:        raw.Icon,
		Completions: make(map[string]bool),
	}

	if h.ID == "" {
		h.ID = uuid.New().String()
		logger.Warn("[STORE] Habit without id, assigning a new one", "habit_id", h.ID, "name", h.Name)
	}

	if !h.Frequency.Valid() {
		if h.Frequency != "" {
			logger.Warn("[STORE] Unknown frequency, falling back to daily", "habit_id", h.ID, "frequency", raw.Frequency)
		}
		h.Frequency = domain.FrequencyDaily
	}

	sanitizeFields(h)

	days := raw.SpecificDays
	if len(days) == 0 {
		days = raw.LegacySpecificDays
	}
	if h.Frequency == domain.FrequencySpecificDays {
		for _, d := range days {
			if d >= 0 && d <= 6 {
				h.SpecificDays = append(h.SpecificDays, d)
			}
		}
		if len(h.SpecificDays) == 0 {
			logger.Warn("[STORE] specific_days habit without valid weekdays, falling back to daily", "habit_id", h.ID)
			h.Frequency = domain.FrequencyDaily
		}
	}

	if end := firstNonEmpty(raw.GoalEndDate, raw.LegacyGoalEndDate); end != "" {
		if t, ok := parseLegacyDate(end, loc); ok {
			h.GoalEndDate = domain.DateKey(t)
		} else {
			logger.Warn("[STORE] Dropping invalid goal end date", "habit_id", h.ID, "value", end)
		}
	}

	if created := firstNonEmpty(raw.CreatedAt, raw.LegacyCreatedAt); created != "" {
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			h.CreatedAt = t
		} else if t, ok := parseLegacyDate(created, loc); ok {
			h.CreatedAt = t
		} else {
			logger.Warn("[STORE] Invalid createdAt, consistency will report 0", "habit_id", h.ID, "value", created)
		}
	}

	addDate := func(value string) {
		t, ok := parseLegacyDate(value, loc)
		if !ok {
			logger.Warn("[STORE] Dropping invalid completion date", "habit_id", h.ID, "value", value)
			return
		}
		h.Completions[domain.DateKey(t)] = true
	}

	for key, done := range raw.Completions {
		if done {
			addDate(key)
		}
	}
	for _, value := range raw.LegacyHistory {
		addDate(value)
	}

	return h
}

// DecodeHabits parses a JSON array of stored habits and normalizes each one.
func DecodeHabits(data []byte, loc *time.Location) ([]*domain.Habit, error) {
	var raws []RawHabit
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, err
	}

	habits := make([]*domain.Habit, 0, len(raws))
	seen := make(map[string]bool, len(raws))
	for _, raw := range raws {
		h := NormalizeHabit(raw, loc)
		if seen[h.ID] {
			logger.Warn("[STORE] Skipping duplicate habit id", "habit_id", h.ID)
			continue
		}
		seen[h.ID] = true
		habits = append(habits, h)
	}

	return habits, nil
}
