package api

import (
	"testing"
)

func TestParseNearbyAPI(t *testing.T) {
	tests := []struct {
		in      string
		want    NearbyAPI
		wantErr bool
	}{
		{"", NearbyPlacesSearch, false},
		{"GooglePlacesSearch", NearbyPlacesSearch, false},
		{"search", NearbyPlacesSearch, false},
		{"GoogleReverseGeocoding", NearbyReverseGeocoding, false},
		{"geocode", NearbyReverseGeocoding, false},
		{"None", NearbyNone, false},
		{"  none ", NearbyNone, false},
		{"osm", NearbyPlacesSearch, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseNearbyAPI(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNearbyAPI_String(t *testing.T) {
	if NearbyReverseGeocoding.String() != "GoogleReverseGeocoding" {
		t.Errorf("String() = %q", NearbyReverseGeocoding.String())
	}
	if NearbyAPI(42).String() != "NearbyAPI(42)" {
		t.Errorf("String() = %q", NearbyAPI(42).String())
	}
}

func TestUsesCredentials(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{DefaultBaseURL, true},
		{DefaultBaseURL + "/", true},
		{"https://proxy.example.com/maps/api", false},
		{"http://127.0.0.1:8080", false},
	}

	for _, tt := range tests {
		if got := UsesCredentials(tt.url); got != tt.want {
			t.Errorf("UsesCredentials(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}
