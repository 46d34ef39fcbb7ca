package pantry

import (
	"encoding/base64"
	"fmt"
	"hash/fnv"
	"io"
	"strings"

	"github.com/samber/lo"
)

// MealTime is the single-selection meal preference. Breakfast is the default.
type MealTime int

const (
	Breakfast MealTime = iota
	Lunch
	Dinner
)

func (m MealTime) String() string {
	switch m {
	case Lunch:
		return "lunch"
	case Dinner:
		return "dinner"
	default:
		return "breakfast"
	}
}

func MealTimes() []MealTime {
	return []MealTime{Breakfast, Lunch, Dinner}
}

func ParseMealTime(s string) (MealTime, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "breakfast":
		return Breakfast, nil
	case "lunch":
		return Lunch, nil
	case "dinner":
		return Dinner, nil
	}
	return Breakfast, fmt.Errorf("unknown meal time %q", s)
}

// List is an insertion-ordered sequence of free-text ingredients. Duplicates
// are allowed; removal is positional. Not safe for concurrent use, callers
// serialize access.
type List struct {
	items []string
}

// Add appends the trimmed text. Empty input is a no-op.
func (l *List) Add(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	l.items = append(l.items, trimmed)
	return true
}

// Remove drops the element at index i, keeping the relative order of the
// rest. Out-of-range indexes are a no-op.
func (l *List) Remove(i int) bool {
	if i < 0 || i >= len(l.items) {
		return false
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return true
}

func (l *List) Reset() {
	l.items = nil
}

func (l *List) Len() int {
	return len(l.items)
}

// Items returns a copy so callers can't mutate the list out from under us.
func (l *List) Items() []string {
	out := make([]string, len(l.items))
	copy(out, l.items)
	return out
}

// Request captures everything a generation run depends on.
type Request struct {
	Ingredients []string `json:"ingredients"`
	Meal        MealTime `json:"meal"`
}

// Hash is how cached batches are found. Same ingredients in the same order
// for the same meal map to the same key.
func (r Request) Hash() string {
	fnv := fnv.New64a()
	for _, ingredient := range r.Ingredients {
		lo.Must(io.WriteString(fnv, ingredient))
		lo.Must(io.WriteString(fnv, "\x00"))
	}
	lo.Must(io.WriteString(fnv, r.Meal.String()))
	return base64.RawURLEncoding.EncodeToString(fnv.Sum(nil))
}
