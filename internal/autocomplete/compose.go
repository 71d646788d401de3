package autocomplete

import (
	"github.com/mobil-koeln/placepicker/internal/models"
)

// ListBuilder merges API results with the predefined block
type ListBuilder struct {
	Predefined           []models.PredefinedPlace
	AlwaysShowPredefined bool

	// CurrentLocation shows the synthetic current-location row. Callers
	// only set it when a position source is available.
	CurrentLocation      bool
	CurrentLocationLabel string
}

// Compose returns the display order: current location, predefined places,
// then results. The predefined block is shown when there are no results and
// no query text, or always when AlwaysShowPredefined is set. Results are
// appended unfiltered.
func (b ListBuilder) Compose(results []models.ResultEntry, text string) []models.ResultEntry {
	showPredefined := (len(results) == 0 && text == "") || b.AlwaysShowPredefined

	var rows []models.ResultEntry
	if showPredefined {
		if b.CurrentLocation {
			rows = append(rows, models.CurrentLocationEntry(b.CurrentLocationLabel, nil))
		}

		seen := make(map[string]bool, len(b.Predefined))
		for _, p := range b.Predefined {
			if !p.Valid() {
				continue
			}
			id := p.Description + "\x00" + p.PlaceID
			if seen[id] {
				continue
			}
			seen[id] = true
			rows = append(rows, p.ToEntry())
		}
	}

	return append(rows, results...)
}

// Row is an entry as displayed, with its loading state
type Row struct {
	models.ResultEntry
	Loading bool
}

func toRows(entries []models.ResultEntry, pending []string) []Row {
	rows := make([]Row, len(entries))
	for i, e := range entries {
		rows[i] = Row{ResultEntry: e, Loading: contains(pending, e.Key())}
	}
	return rows
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

// without returns keys minus key, never modifying the input
func without(keys []string, key string) []string {
	var out []string
	for _, k := range keys {
		if k != key {
			out = append(out, k)
		}
	}
	return out
}
