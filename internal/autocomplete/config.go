package autocomplete

import (
	"log/slog"
	"strings"
	"time"

	"github.com/mobil-koeln/placepicker/internal/api"
	"github.com/mobil-koeln/placepicker/internal/geo"
	"github.com/mobil-koeln/placepicker/internal/models"
)

const (
	DefaultTimeout     = 20 * time.Second
	DefaultPlaceholder = "Search"
)

// ListView controls when the suggestion list is shown
type ListView int

const (
	// ListViewAuto shows the list while the input is focused
	ListViewAuto ListView = iota
	// ListViewAlways shows the list regardless of focus
	ListViewAlways
	// ListViewNever hides the list; selection happens through the Handle only
	ListViewNever
)

// ParseListView accepts "auto", "true"/"always" and "false"/"never".
func ParseListView(s string) (ListView, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ListViewAuto, nil
	case "true", "always":
		return ListViewAlways, nil
	case "false", "never":
		return ListViewNever, nil
	}
	return ListViewAuto, api.ErrInvalidValue("list_view", s)
}

// Callbacks. Each one is optional; a missing failure callback means the
// event is logged instead.
type (
	PressFunc    func(data models.PlaceData, detail *models.PlaceDetail)
	FailFunc     func(err error)
	NotFoundFunc func(err *api.NotFoundError)
	TimeoutFunc  func()
)

// Config configures a Model. The zero value is usable: no minimum length,
// no debounce, a 20s timeout and the legacy protocol.
type Config struct {
	Placeholder string
	MinLength   int
	Debounce    time.Duration
	Timeout     time.Duration

	// Query is sent with every autocomplete request (key, language,
	// components, types, ...). For the new API it is merged into the body.
	Query map[string]string

	// RequestURL overrides the API root, typically a proxy
	RequestURL string
	Headers    map[string]string

	PredefinedPlaces              []models.PredefinedPlace
	PredefinedPlacesAlwaysVisible bool

	CurrentLocation      bool
	CurrentLocationLabel string
	HighAccuracyLocation bool
	Locator              geo.Locator

	FetchDetails       bool
	AutoFillOnNotFound bool
	NewPlacesAPI       bool
	Fields             string // field mask for new API details

	NearbyAPI                     api.NearbyAPI
	FilterReverseGeocodingByTypes []string
	PlacesSearchQuery             map[string]string
	ReverseGeocodingQuery         map[string]string
	DetailsQuery                  map[string]string

	KeepResultsAfterBlur bool
	ListViewDisplayed    ListView
	PoweredBy            string // footer line under the list, empty for none

	PreProcess        func(string) string
	RenderDescription func(models.ResultEntry) string
	RenderRow         func(row Row, selected bool) string
	RenderLeftButton  func() string
	RenderRightButton func() string
	RenderHeader      func() string
	Styles            *Styles
	KeyMap            *KeyMap

	OnPress    PressFunc
	OnFail     FailFunc
	OnNotFound NotFoundFunc
	OnTimeout  TimeoutFunc

	Logger *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.Placeholder == "" {
		c.Placeholder = DefaultPlaceholder
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.CurrentLocationLabel == "" {
		c.CurrentLocationLabel = models.DefaultCurrentLocationLabel
	}
	if c.Locator == nil {
		c.Locator = geo.Unavailable{}
	}
	if c.Styles == nil {
		s := DefaultStyles()
		c.Styles = &s
	}
	if c.KeyMap == nil {
		k := DefaultKeyMap()
		c.KeyMap = &k
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	c.Logger = c.Logger.With("component", "autocomplete")
	return c
}

// ClientOptions returns the api.Client options matching this configuration.
// The API key and language are taken from Query. The HTTP timeout follows
// Timeout so the transport never gives up before the component does.
func (c Config) ClientOptions() []api.ClientOption {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	opts := []api.ClientOption{
		api.WithNewPlacesAPI(c.NewPlacesAPI),
		api.WithTimeout(timeout),
	}
	if c.RequestURL != "" {
		opts = append(opts, api.WithBaseURL(c.RequestURL))
	}
	if len(c.Headers) > 0 {
		opts = append(opts, api.WithHeaders(c.Headers))
	}
	if key := c.Query["key"]; key != "" {
		opts = append(opts, api.WithAPIKey(key))
	}
	if lang := c.Query["language"]; lang != "" {
		opts = append(opts, api.WithLanguage(lang))
	}
	return opts
}

// describe renders the text shown for an entry
func (c Config) describe(e models.ResultEntry) string {
	if c.RenderDescription != nil {
		return c.RenderDescription(e)
	}
	return models.Describe(e)
}

func (c Config) locatorOptions() geo.Options {
	opts := geo.DefaultOptions()
	opts.HighAccuracy = c.HighAccuracyLocation
	return opts
}
