// Package catalog holds the static food table and meal slot definitions the
// planner draws from.
package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Entry is one food with per-100g macros and its selection weights.
type Entry struct {
	Name           string             `json:"name"`
	KcalPer100g    int                `json:"kcal_per_100g"`
	ProteinPer100g float64            `json:"protein_per_100g"`
	CarbsPer100g   float64            `json:"carbs_per_100g"`
	FatPer100g     float64            `json:"fat_per_100g"`
	OverallWeight  float64            `json:"overall_weight"`
	SlotWeights    map[string]float64 `json:"meal_slot_weights"`
}

// Candidate is an entry eligible for a slot together with its draw weight.
type Candidate struct {
	Entry  Entry
	Weight float64
}

// Catalog is an immutable set of entries. Build it with New or use Default.
type Catalog struct {
	entries []Entry
	byName  map[string]int
}

// New copies entries into a catalog. Later entries with a duplicate name are
// dropped.
func New(entries []Entry) *Catalog {
	c := &Catalog{
		entries: make([]Entry, 0, len(entries)),
		byName:  make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if _, dup := c.byName[e.Name]; dup {
			continue
		}
		weights := make(map[string]float64, len(e.SlotWeights))
		for k, v := range e.SlotWeights {
			weights[k] = v
		}
		e.SlotWeights = weights
		c.byName[e.Name] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c
}

var defaultCatalog = New(defaultEntries)

// Default returns the built-in food table.
func Default() *Catalog {
	return defaultCatalog
}

// Entries returns a copy of every entry in declaration order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Lookup finds an entry by name.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Eligible returns the entries that declare a weight for slot, each weighted by
// overall weight times slot weight, in declaration order.
func (c *Catalog) Eligible(slot string) []Candidate {
	var out []Candidate
	for _, e := range c.entries {
		w, ok := e.SlotWeights[slot]
		if !ok {
			continue
		}
		out = append(out, Candidate{Entry: e, Weight: e.OverallWeight * w})
	}
	return out
}

// Slot is a named eating occasion with its default share of the daily target.
type Slot struct {
	Key   string
	Label string
	Share float64
}

var slots = []Slot{
	{Key: "desayuno", Label: "Desayuno", Share: 0.25},
	{Key: "media_manana", Label: "Media mañana", Share: 0.10},
	{Key: "comida", Label: "Comida", Share: 0.35},
	{Key: "merienda", Label: "Merienda", Share: 0.10},
	{Key: "cena", Label: "Cena", Share: 0.20},
}

// SlotKeys returns the canonical slot keys in serving order.
func SlotKeys() []string {
	keys := make([]string, len(slots))
	for i, s := range slots {
		keys[i] = s.Key
	}
	return keys
}

// DefaultDistribution returns the built-in share of the daily target per slot.
func DefaultDistribution() map[string]float64 {
	dist := make(map[string]float64, len(slots))
	for _, s := range slots {
		dist[s.Key] = s.Share
	}
	return dist
}

// DisplayName resolves the label for a slot key. Unknown keys are title-cased
// with underscores read as spaces.
func DisplayName(key string) string {
	for _, s := range slots {
		if s.Key == key {
			return s.Label
		}
	}
	return cases.Title(language.Spanish).String(strings.ReplaceAll(key, "_", " "))
}
