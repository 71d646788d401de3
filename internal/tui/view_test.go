package tui

import (
	"strings"
	"testing"

	"github.com/mobil-koeln/placepicker/internal/models"
	"github.com/mobil-koeln/placepicker/internal/testutil"
)

func TestModel_View_BeforeSize(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m.width = 0
	testutil.AssertEqual(t, m.View(), "Loading...")
}

func TestModel_View(t *testing.T) {
	m, _ := newTestModel(t, Options{Subtitle: "new Places API"})

	output := m.View()
	testutil.AssertContains(t, output, "placepicker")
	testutil.AssertContains(t, output, "new Places API")
	testutil.AssertContains(t, output, "SELECTED")
	testutil.AssertContains(t, output, "Search for a place")
	testutil.AssertContains(t, output, "Nothing picked yet")
	// predefined shortcuts are listed while the input is empty
	testutil.AssertContains(t, output, "Home")
	testutil.AssertContains(t, output, "switch panel")
}

func TestModel_View_WithSelection(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m, _ = update(t, m, selectedFor(m, "Kölner Dom"))
	m.selected.Detail = &models.PlaceDetail{
		Name:             "Kölner Dom",
		FormattedAddress: "Domkloster 4, 50667 Köln",
		PlaceID:          "ChIJ-dom",
		Types:            []string{"church"},
		Geometry:         models.Geometry{Location: models.Point{Lat: 50.9412784, Lng: 6.9582817}},
		PlusCode:         &models.PlusCode{GlobalCode: "9F28WXR5+G8"},
	}

	output := m.View()
	testutil.AssertContains(t, output, "Kölner Dom")
	testutil.AssertContains(t, output, "Domkloster 4, 50667 Köln")
	testutil.AssertContains(t, output, "50.9412784,6.9582817")
	testutil.AssertContains(t, output, "ChIJ-dom")
	testutil.AssertContains(t, output, "church")
	testutil.AssertContains(t, output, "9F28WXR5+G8")
	testutil.AssertContains(t, output, "RECENT")
	testutil.AssertContains(t, output, "Selected Kölner Dom")
}

func TestModel_View_CurrentLocationSelection(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	entry := models.CurrentLocationEntry("Here", &models.Point{Lat: 50.9413, Lng: 6.9583})
	m.selected = &selection{Data: entry.ToPlaceData(), Detail: entry.ToPlaceDetail()}

	output := m.renderSelection(60)
	testutil.AssertContains(t, output, "Here")
	testutil.AssertContains(t, output, "50.9413000,6.9583000")
	testutil.AssertNotContains(t, output, models.CurrentLocationID)
}

func TestModel_View_HistoryFocus(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m.remember(selection{Data: models.PlaceData{Description: "Köln Hbf", PlaceID: "hbf"}})
	m.focus = focusHistory

	output := m.renderHistory(40, 10)
	testutil.AssertContains(t, output, " > Köln Hbf")

	hints := m.renderStatusBar()
	testutil.AssertContains(t, hints, "show")
	testutil.AssertNotContains(t, hints, "switch panel")
}

func TestModel_View_StatusLine(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m.setStatus(statusError, "Error: boom")

	bar := m.renderStatusBar()
	lines := strings.Split(bar, "\n")
	testutil.AssertLen(t, lines, 2)
	testutil.AssertContains(t, lines[0], "Error: boom")
}

// --- visibleRange tests ---

func TestVisibleRange_AllFit(t *testing.T) {
	start, end := visibleRange(0, 5, 10)
	testutil.AssertEqual(t, start, 0)
	testutil.AssertEqual(t, end, 5)
}

func TestVisibleRange_EmptyList(t *testing.T) {
	start, end := visibleRange(0, 0, 10)
	testutil.AssertEqual(t, start, 0)
	testutil.AssertEqual(t, end, 0)
}

func TestVisibleRange_CursorInMiddle(t *testing.T) {
	start, end := visibleRange(10, 20, 10)
	testutil.AssertEqual(t, start, 5)
	testutil.AssertEqual(t, end, 15)
}

func TestVisibleRange_CursorAtEnd(t *testing.T) {
	start, end := visibleRange(19, 20, 10)
	testutil.AssertEqual(t, start, 10)
	testutil.AssertEqual(t, end, 20)
}

func TestVisibleRange_CursorAlwaysVisible(t *testing.T) {
	// Property test: cursor should always be within [start, end)
	for total := 1; total <= 30; total++ {
		for maxVis := 1; maxVis <= 15; maxVis++ {
			for cursor := 0; cursor < total; cursor++ {
				start, end := visibleRange(cursor, total, maxVis)
				if cursor < start || cursor >= end {
					t.Errorf("cursor %d not in [%d, %d) for total=%d, maxVisible=%d",
						cursor, start, end, total, maxVis)
				}
				if end-start > maxVis {
					t.Errorf("visible range %d exceeds maxVisible %d", end-start, maxVis)
				}
			}
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		s     string
		width int
		want  string
	}{
		{"Köln", 10, "Köln"},
		{"Köln Hbf", 5, "Köln~"},
		{"Köln", 2, "Kö"},
		{"Köln", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.s, func(t *testing.T) {
			testutil.AssertEqual(t, truncate(tt.s, tt.width), tt.want)
		})
	}
}
