package models

import (
	"testing"
)

func TestResultEntry_Key(t *testing.T) {
	tests := []struct {
		name  string
		entry ResultEntry
		want  string
	}{
		{
			name:  "place id",
			entry: ResultEntry{PlaceID: "ChIJ123", Description: "Somewhere"},
			want:  "ChIJ123",
		},
		{
			name:  "current location wins over place id",
			entry: ResultEntry{PlaceID: "ChIJ123", IsCurrentLocation: true},
			want:  CurrentLocationID,
		},
		{
			name:  "description fallback",
			entry: ResultEntry{Description: "Home"},
			want:  "desc:Home",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.Key(); got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFilterByTypes(t *testing.T) {
	entries := []ResultEntry{
		{PlaceID: "a", Types: []string{"locality", "political"}},
		{PlaceID: "b", Types: []string{"street_address"}},
		{PlaceID: "c"},
		{PlaceID: "d", Types: []string{"route", "political"}},
	}

	t.Run("empty filter keeps all", func(t *testing.T) {
		got := FilterByTypes(entries, nil)
		if len(got) != len(entries) {
			t.Fatalf("got %d entries, want %d", len(got), len(entries))
		}
	})

	t.Run("any matching type keeps entry", func(t *testing.T) {
		got := FilterByTypes(entries, []string{"political", "street_address"})
		want := []string{"a", "b", "d"}
		if len(got) != len(want) {
			t.Fatalf("got %d entries, want %d", len(got), len(want))
		}
		for i, id := range want {
			if got[i].PlaceID != id {
				t.Errorf("entry %d = %q, want %q", i, got[i].PlaceID, id)
			}
		}
	})

	t.Run("no match", func(t *testing.T) {
		got := FilterByTypes(entries, []string{"airport"})
		if len(got) != 0 {
			t.Errorf("got %d entries, want 0", len(got))
		}
	})
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name  string
		entry ResultEntry
		want  string
	}{
		{"description", ResultEntry{Description: "Köln Hbf", FormattedAddress: "x", Name: "y"}, "Köln Hbf"},
		{"formatted address", ResultEntry{FormattedAddress: "Trankgasse 11, Köln", Name: "y"}, "Trankgasse 11, Köln"},
		{"name", ResultEntry{Name: "Dom"}, "Dom"},
		{"nothing", ResultEntry{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Describe(tt.entry); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolvePredefined(t *testing.T) {
	places := []PredefinedPlace{
		{Description: "Home", PlaceID: "home", Geometry: Geometry{Location: Point{Lat: 50.94, Lng: 6.95}}},
		{Description: "Work", PlaceID: "work", Geometry: Geometry{Location: Point{Lat: 50.11, Lng: 8.68}}},
	}

	t.Run("matches by description", func(t *testing.T) {
		row := ResultEntry{Description: "Work", IsPredefinedPlace: true}
		got := ResolvePredefined(row, places)
		if got.PlaceID != "work" {
			t.Errorf("PlaceID = %q, want %q", got.PlaceID, "work")
		}
		if got.Geometry == nil || got.Geometry.Location.Lat != 50.11 {
			t.Errorf("Geometry = %+v, want lat 50.11", got.Geometry)
		}
	})

	t.Run("non predefined entry unchanged", func(t *testing.T) {
		row := ResultEntry{Description: "Work", PlaceID: "api"}
		got := ResolvePredefined(row, places)
		if got.PlaceID != "api" {
			t.Errorf("PlaceID = %q, want %q", got.PlaceID, "api")
		}
	})

	t.Run("no match returns row", func(t *testing.T) {
		row := ResultEntry{Description: "Gym", IsPredefinedPlace: true}
		got := ResolvePredefined(row, places)
		if got.Description != "Gym" {
			t.Errorf("Description = %q, want %q", got.Description, "Gym")
		}
	})
}

func TestPredefinedPlace_ToEntry(t *testing.T) {
	p := PredefinedPlace{
		Description: "Home",
		PlaceID:     "home",
		Geometry:    Geometry{Location: Point{Lat: 1, Lng: 2}},
	}
	e := p.ToEntry()

	if !e.IsPredefinedPlace {
		t.Error("entry should be tagged predefined")
	}
	if e.IsCurrentLocation {
		t.Error("entry should not be tagged current location")
	}
	if e.Geometry == nil || e.Geometry.Location.Lng != 2 {
		t.Errorf("Geometry = %+v, want lng 2", e.Geometry)
	}

	// The entry must not alias the place's geometry
	e.Geometry.Location.Lng = 99
	if p.Geometry.Location.Lng != 2 {
		t.Error("ToEntry must copy geometry")
	}
}

func TestCurrentLocationEntry(t *testing.T) {
	e := CurrentLocationEntry("", nil)
	if e.Description != DefaultCurrentLocationLabel {
		t.Errorf("Description = %q, want default label", e.Description)
	}
	if !e.IsCurrentLocation || e.PlaceID != CurrentLocationID {
		t.Errorf("entry not tagged as current location: %+v", e)
	}
	if e.Geometry != nil {
		t.Error("geometry should be unset without a position")
	}

	e = CurrentLocationEntry("Here", &Point{Lat: 50.9413, Lng: 6.9583})
	if e.StructuredFormatting.MainText != "Here" {
		t.Errorf("MainText = %q, want %q", e.StructuredFormatting.MainText, "Here")
	}
	if e.Geometry == nil || e.Geometry.Location.Lat != 50.9413 {
		t.Errorf("Geometry = %+v, want real coordinates", e.Geometry)
	}
}

func TestResultEntry_ToPlaceDetail(t *testing.T) {
	e := ResultEntry{
		Description:      "Dom",
		PlaceID:          "p1",
		Name:             "Kölner Dom",
		FormattedAddress: "Domkloster 4, 50667 Köln",
		Types:            []string{"church"},
		Geometry:         &Geometry{Location: Point{Lat: 50.9413, Lng: 6.9583}},
	}

	d := e.ToPlaceDetail()
	if d.PlaceID != "p1" || d.Name != "Kölner Dom" {
		t.Errorf("detail = %+v", d)
	}
	if d.Geometry.Location.Lng != 6.9583 {
		t.Errorf("Lng = %f, want 6.9583", d.Geometry.Location.Lng)
	}
	if d.Scope != "GOOGLE" {
		t.Errorf("Scope = %q, want GOOGLE", d.Scope)
	}

	data := e.ToPlaceData()
	if data.Description != "Dom" || data.PlaceID != "p1" {
		t.Errorf("data = %+v", data)
	}
}
