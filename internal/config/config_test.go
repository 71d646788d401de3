package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobil-koeln/placepicker/internal/api"
	"github.com/mobil-koeln/placepicker/internal/autocomplete"
	"github.com/mobil-koeln/placepicker/internal/geo"
	"github.com/mobil-koeln/placepicker/internal/models"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("key", "", "")
	flags.String("language", "", "")
	flags.Bool("new-api", false, "")
	flags.String("at", "", "")
	flags.String("nearby-api", "", "")
	flags.Duration("debounce", 0, "")
	flags.Int("min-length", 0, "")
	flags.String("color", "", "")
	flags.StringSlice("filter-reverse-geocoding-by-types", nil, "")
	return flags
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Empty(t, cfg.File)
	assert.Equal(t, DefaultLanguage, cfg.Language)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, time.Duration(0), cfg.Debounce)
	assert.Equal(t, autocomplete.DefaultPlaceholder, cfg.Placeholder)
	assert.Equal(t, DefaultNearbyAPI, cfg.NearbyAPI)
	assert.Equal(t, DefaultListView, cfg.ListView)
	assert.True(t, cfg.FetchDetails)
	assert.False(t, cfg.NewAPI)
}

func TestLoad_File(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, `
api_key: file-key
language: de
debounce: 300ms
min_length: 2
nearby_api: GoogleReverseGeocoding
filter_reverse_geocoding_by_types: [locality, administrative_area_level_3]
current_location: true
current_location_label: Hier
position: "50.9413,6.9583"
query:
  components: country:de
predefined_places:
  - description: Home
    place_id: home
    geometry:
      location: {lat: 50.9375, lng: 6.9603}
    structured_formatting:
      main_text: Zuhause
headers:
  X-Proxy: "1"
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.File)
	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, "de", cfg.Language)
	assert.Equal(t, 300*time.Millisecond, cfg.Debounce)
	assert.Equal(t, 2, cfg.MinLength)
	assert.Equal(t, []string{"locality", "administrative_area_level_3"}, cfg.FilterReverseGeocodingByTypes)
	assert.Equal(t, "country:de", cfg.Query["components"])
	assert.Equal(t, "1", cfg.Headers["X-Proxy"])

	require.Len(t, cfg.PredefinedPlaces, 1)
	home := cfg.PredefinedPlaces[0]
	assert.Equal(t, "Home", home.Description)
	assert.Equal(t, "home", home.PlaceID)
	assert.InDelta(t, 50.9375, home.Geometry.Location.Lat, 1e-9)
	assert.Equal(t, "Zuhause", home.StructuredFormatting.MainText)

	// defaults survive for keys the file leaves out
	assert.True(t, cfg.FetchDetails)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
}

func TestLoad_FindsFileInWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "places.yml"), []byte("language: fr\n"), 0o600))

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "places.yml", cfg.File)
	assert.Equal(t, "fr", cfg.Language)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(
		"PLACES_API_KEY=dotenv-key\nPLACES_LANGUAGE=nl\nOTHER=ignored\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte("language: de\n"), 0o600))

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.True(t, cfg.DotEnv)
	assert.Equal(t, "dotenv-key", cfg.APIKey)
	assert.Equal(t, "nl", cfg.Language, ".env overrides the config file")
	assert.NotContains(t, cfg.All(), "other")

	t.Setenv("PLACES_LANGUAGE", "pt")
	cfg, err = Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "pt", cfg.Language, "environment overrides .env")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_Precedence(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, `
api_key: file-key
language: de
min_length: 2
nearby_api: none
`)

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("PLACES_API_KEY", "env-key")
		t.Setenv("PLACES_MIN_LENGTH", "4")

		cfg, err := Load(path, nil)
		require.NoError(t, err)
		assert.Equal(t, "env-key", cfg.APIKey)
		assert.Equal(t, 4, cfg.MinLength)
		assert.Equal(t, "de", cfg.Language)
	})

	t.Run("changed flags override env", func(t *testing.T) {
		t.Setenv("PLACES_API_KEY", "env-key")
		t.Setenv("PLACES_LANGUAGE", "it")

		flags := newFlags()
		require.NoError(t, flags.Parse([]string{"--key", "flag-key", "--new-api", "--min-length", "3"}))

		cfg, err := Load(path, flags)
		require.NoError(t, err)
		assert.Equal(t, "flag-key", cfg.APIKey)
		assert.True(t, cfg.NewAPI)
		assert.Equal(t, 3, cfg.MinLength)
		// unchanged flag defaults must not clobber lower layers
		assert.Equal(t, "it", cfg.Language)
		assert.Equal(t, "none", cfg.NearbyAPI)
	})

	t.Run("flag aliases", func(t *testing.T) {
		flags := newFlags()
		require.NoError(t, flags.Parse([]string{
			"--at", "50.94:6.95",
			"--nearby-api", "geocode",
			"--debounce", "250ms",
			"--filter-reverse-geocoding-by-types", "locality,route",
		}))

		cfg, err := Load(path, flags)
		require.NoError(t, err)
		assert.Equal(t, "50.94:6.95", cfg.Position)
		assert.Equal(t, "geocode", cfg.NearbyAPI)
		assert.Equal(t, 250*time.Millisecond, cfg.Debounce)
		assert.Equal(t, []string{"locality", "route"}, cfg.FilterReverseGeocodingByTypes)
	})
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Timeout:   DefaultTimeout,
			NearbyAPI: DefaultNearbyAPI,
			ListView:  DefaultListView,
			Color:     DefaultColor,
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"valid", func(*Config) {}, ""},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, "timeout"},
		{"negative debounce", func(c *Config) { c.Debounce = -time.Second }, "debounce"},
		{"negative min length", func(c *Config) { c.MinLength = -1 }, "min_length"},
		{"unknown nearby api", func(c *Config) { c.NearbyAPI = "bing" }, "nearby_api"},
		{"unknown list view", func(c *Config) { c.ListView = "sometimes" }, "list_view"},
		{"unknown color", func(c *Config) { c.Color = "rainbow" }, "color"},
		{"bad position", func(c *Config) { c.Position = "north" }, "position"},
		{"predefined without description", func(c *Config) {
			c.PredefinedPlaces = []models.PredefinedPlace{{Description: "Home"}, {PlaceID: "work"}}
		}, "predefined_places[1].description"},
		{"predefined out of range", func(c *Config) {
			c.PredefinedPlaces = []models.PredefinedPlace{{
				Description: "Nowhere",
				Geometry:    models.Geometry{Location: models.Point{Lat: 91}},
			}}
		}, "predefined_places[0].geometry.location.lat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.field == "" {
				require.NoError(t, err)
				return
			}
			var verr *api.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestRequireKey(t *testing.T) {
	cfg := &Config{}
	err := cfg.RequireKey()
	require.ErrorIs(t, err, api.ErrMissingKey)
	assert.Contains(t, err.Error(), "PLACES_API_KEY")

	cfg.RequestURL = "https://proxy.example.com/maps/api"
	assert.NoError(t, cfg.RequireKey())

	assert.NoError(t, (&Config{APIKey: "k"}).RequireKey())
}

func TestAutocomplete(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, `
api_key: k
language: de
nearby_api: none
list_view: always
position: "50.9413,6.9583"
current_location: true
query:
  language: nl
`)
	cfg, err := Load(path, nil)
	require.NoError(t, err)

	ac, err := cfg.Autocomplete(nil)
	require.NoError(t, err)

	assert.Equal(t, api.NearbyNone, ac.NearbyAPI)
	assert.Equal(t, autocomplete.ListViewAlways, ac.ListViewDisplayed)
	assert.Equal(t, "k", ac.Query["key"])
	// an explicit query language wins over the top-level language
	assert.Equal(t, "nl", ac.Query["language"])
	assert.True(t, ac.CurrentLocation)
	assert.True(t, ac.FetchDetails)
	require.True(t, geo.Available(ac.Locator))

	fixed, ok := ac.Locator.(geo.Fixed)
	require.True(t, ok)
	assert.InDelta(t, 6.9583, fixed.Position.Lng, 1e-9)
}

func TestAutocomplete_NoPosition(t *testing.T) {
	cfg := &Config{Language: "en", NearbyAPI: DefaultNearbyAPI, ListView: DefaultListView}
	ac, err := cfg.Autocomplete(nil)
	require.NoError(t, err)
	assert.False(t, geo.Available(ac.Locator))
	assert.Equal(t, "en", ac.Query["language"])
	_, hasKey := ac.Query["key"]
	assert.False(t, hasKey)
}

func TestClientOptions(t *testing.T) {
	cfg := &Config{
		APIKey:     "k",
		Language:   "de",
		NewAPI:     true,
		Timeout:    5 * time.Second,
		RequestURL: "https://proxy.example.com/maps/api",
		Headers:    map[string]string{"X-Proxy": "1"},
	}

	client, err := api.NewClient(cfg.ClientOptions()...)
	require.NoError(t, err)
	assert.True(t, client.NewPlacesAPI())
	assert.Equal(t, "https://proxy.example.com/maps/api", client.BaseURL())
}
