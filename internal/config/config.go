// Package config loads the places CLI configuration. Sources, lowest to
// highest precedence: built-in defaults, places.yaml, PLACES_* entries of a
// .env file in the working directory, PLACES_* environment variables,
// explicitly set command-line flags.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mobil-koeln/placepicker/internal/api"
	"github.com/mobil-koeln/placepicker/internal/autocomplete"
	"github.com/mobil-koeln/placepicker/internal/geo"
	"github.com/mobil-koeln/placepicker/internal/models"
)

const (
	DefaultConfigFile = "places.yaml"
	DefaultLanguage   = "en"
	DefaultColor      = "auto"
	DefaultListView   = "auto"
	DefaultNearbyAPI  = "GooglePlacesSearch"
	DefaultTimeout    = 20 * time.Second
)

// Config is the merged configuration
type Config struct {
	APIKey     string            `koanf:"api_key"`
	Language   string            `koanf:"language"`
	RequestURL string            `koanf:"request_url"`
	Headers    map[string]string `koanf:"headers"`
	NewAPI     bool              `koanf:"new_api"`
	Fields     string            `koanf:"fields"`

	Timeout     time.Duration `koanf:"timeout" validate:"gt=0"`
	Debounce    time.Duration `koanf:"debounce" validate:"gte=0"`
	MinLength   int           `koanf:"min_length" validate:"gte=0"`
	Placeholder string        `koanf:"placeholder"`

	Query                 map[string]string `koanf:"query"`
	DetailsQuery          map[string]string `koanf:"details_query"`
	PlacesSearchQuery     map[string]string `koanf:"places_search_query"`
	ReverseGeocodingQuery map[string]string `koanf:"reverse_geocoding_query"`

	NearbyAPI                     string   `koanf:"nearby_api"`
	FilterReverseGeocodingByTypes []string `koanf:"filter_reverse_geocoding_by_types"`

	FetchDetails       bool `koanf:"fetch_details"`
	AutoFillOnNotFound bool `koanf:"auto_fill_on_not_found"`

	CurrentLocation      bool   `koanf:"current_location"`
	CurrentLocationLabel string `koanf:"current_location_label"`
	Position             string `koanf:"position"`
	HighAccuracy         bool   `koanf:"high_accuracy"`

	PredefinedPlaces              []models.PredefinedPlace `koanf:"predefined_places" validate:"dive"`
	PredefinedPlacesAlwaysVisible bool                     `koanf:"predefined_places_always_visible"`

	KeepResultsAfterBlur bool   `koanf:"keep_results_after_blur"`
	ListView             string `koanf:"list_view"`
	PoweredBy            string `koanf:"powered_by"`

	Color   string `koanf:"color" validate:"oneof=auto always never"`
	Verbose bool   `koanf:"verbose"`
	LogFile string `koanf:"log_file"`
}

// defaults are loaded first and overridden by every other source
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"language":      DefaultLanguage,
		"timeout":       DefaultTimeout.String(),
		"debounce":      "0s",
		"min_length":    0,
		"placeholder":   autocomplete.DefaultPlaceholder,
		"nearby_api":    DefaultNearbyAPI,
		"fetch_details": true,
		"list_view":     DefaultListView,
		"color":         DefaultColor,
		"verbose":       false,
	}
}

// RequireKey reports ErrMissingKey when no API key is configured.
// A request URL override counts as a key, since proxies inject their own.
func (c *Config) RequireKey() error {
	if c.APIKey == "" && c.RequestURL == "" {
		return fmt.Errorf("%w: set api_key in %s, PLACES_API_KEY or --key", api.ErrMissingKey, DefaultConfigFile)
	}
	return nil
}

// query returns the autocomplete query with key and language filled in
func (c *Config) query() map[string]string {
	q := make(map[string]string, len(c.Query)+2)
	for k, v := range c.Query {
		q[k] = v
	}
	if c.APIKey != "" {
		q["key"] = c.APIKey
	}
	if _, ok := q["language"]; !ok && c.Language != "" {
		q["language"] = c.Language
	}
	return q
}

// ClientOptions returns the api.Client options for this configuration.
func (c *Config) ClientOptions() []api.ClientOption {
	opts := []api.ClientOption{
		api.WithAPIKey(c.APIKey),
		api.WithLanguage(c.Language),
		api.WithNewPlacesAPI(c.NewAPI),
	}
	if c.Timeout > 0 {
		opts = append(opts, api.WithTimeout(c.Timeout))
	}
	if c.RequestURL != "" {
		opts = append(opts, api.WithBaseURL(c.RequestURL))
	}
	if len(c.Headers) > 0 {
		opts = append(opts, api.WithHeaders(c.Headers))
	}
	return opts
}

// Locator returns the position source: a fixed position when one is
// configured, otherwise none.
func (c *Config) Locator() (geo.Locator, error) {
	return geo.FromString(c.Position)
}

// Autocomplete converts the configuration into component settings.
// Callbacks and renderers are left to the caller.
func (c *Config) Autocomplete(logger *slog.Logger) (autocomplete.Config, error) {
	nearby, err := api.ParseNearbyAPI(c.NearbyAPI)
	if err != nil {
		return autocomplete.Config{}, err
	}
	listView, err := autocomplete.ParseListView(c.ListView)
	if err != nil {
		return autocomplete.Config{}, err
	}
	locator, err := c.Locator()
	if err != nil {
		return autocomplete.Config{}, err
	}

	return autocomplete.Config{
		Placeholder:                   c.Placeholder,
		MinLength:                     c.MinLength,
		Debounce:                      c.Debounce,
		Timeout:                       c.Timeout,
		Query:                         c.query(),
		RequestURL:                    c.RequestURL,
		Headers:                       c.Headers,
		PredefinedPlaces:              c.PredefinedPlaces,
		PredefinedPlacesAlwaysVisible: c.PredefinedPlacesAlwaysVisible,
		CurrentLocation:               c.CurrentLocation,
		CurrentLocationLabel:          c.CurrentLocationLabel,
		HighAccuracyLocation:          c.HighAccuracy,
		Locator:                       locator,
		FetchDetails:                  c.FetchDetails,
		AutoFillOnNotFound:            c.AutoFillOnNotFound,
		NewPlacesAPI:                  c.NewAPI,
		Fields:                        c.Fields,
		NearbyAPI:                     nearby,
		FilterReverseGeocodingByTypes: c.FilterReverseGeocodingByTypes,
		PlacesSearchQuery:             c.PlacesSearchQuery,
		ReverseGeocodingQuery:         c.ReverseGeocodingQuery,
		DetailsQuery:                  c.DetailsQuery,
		KeepResultsAfterBlur:          c.KeepResultsAfterBlur,
		ListViewDisplayed:             listView,
		PoweredBy:                     c.PoweredBy,
		Logger:                        logger,
	}, nil
}
