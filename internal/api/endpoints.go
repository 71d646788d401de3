package api

import (
	"fmt"
	"strings"
)

const (
	// DefaultBaseURL is the root of the public places API
	DefaultBaseURL = "https://maps.googleapis.com/maps/api"

	// EndpointAutocomplete returns legacy place predictions
	// Required params: input, key
	EndpointAutocomplete = "/place/autocomplete/json"

	// EndpointDetails returns a legacy place detail record
	// Required params: placeid, key
	EndpointDetails = "/place/details/json"

	// EndpointNearbySearch returns places around a coordinate
	// Required params: location, key
	EndpointNearbySearch = "/place/nearbysearch/json"

	// EndpointGeocode reverse-geocodes a coordinate
	// Required params: latlng, key
	EndpointGeocode = "/geocode/json"

	// EndpointNewAutocomplete is the new Places API autocomplete (POST, JSON body)
	EndpointNewAutocomplete = "/v1/places:autocomplete"

	// EndpointNewPlace is the new Places API detail prefix; the place id is appended
	// Required params: key, fields
	EndpointNewPlace = "/v1/places/"
)

// NearbyAPI selects what the current-location flow queries
type NearbyAPI int

const (
	// NearbyPlacesSearch queries the nearby-search endpoint
	NearbyPlacesSearch NearbyAPI = iota
	// NearbyReverseGeocoding queries the reverse-geocoding endpoint
	NearbyReverseGeocoding
	// NearbyNone skips the network and reports the raw coordinates
	NearbyNone
)

var nearbyAPINames = map[NearbyAPI]string{
	NearbyPlacesSearch:     "GooglePlacesSearch",
	NearbyReverseGeocoding: "GoogleReverseGeocoding",
	NearbyNone:             "None",
}

func (n NearbyAPI) String() string {
	if s, ok := nearbyAPINames[n]; ok {
		return s
	}
	return fmt.Sprintf("NearbyAPI(%d)", int(n))
}

// ParseNearbyAPI parses a nearby API name. Matching is case-insensitive and
// accepts the short forms "search", "geocode" and "none".
func ParseNearbyAPI(s string) (NearbyAPI, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "googleplacessearch", "search", "places":
		return NearbyPlacesSearch, nil
	case "googlereversegeocoding", "geocode", "reverse":
		return NearbyReverseGeocoding, nil
	case "none":
		return NearbyNone, nil
	}
	return NearbyPlacesSearch, ErrInvalidValue("nearby_api", s)
}

// UsesCredentials reports whether requests to baseURL should carry cookies.
// Only the default API root gets the cookie jar; proxies configured through
// a request URL override do not.
func UsesCredentials(baseURL string) bool {
	return strings.TrimRight(baseURL, "/") == DefaultBaseURL
}
