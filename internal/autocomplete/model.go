// Package autocomplete implements a places search field for Bubble Tea: a
// text input backed by the places API, a suggestion list merged with
// predefined shortcuts and a current-location row, and selection handling
// that resolves a row to a place detail record.
package autocomplete

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/mobil-koeln/placepicker/internal/api"
	"github.com/mobil-koeln/placepicker/internal/geo"
	"github.com/mobil-koeln/placepicker/internal/models"
)

// Client is the subset of *api.Client the component needs
type Client interface {
	Autocomplete(ctx context.Context, req api.AutocompleteRequest) ([]models.ResultEntry, error)
	Details(ctx context.Context, req api.DetailsRequest) (*models.PlaceDetail, error)
	Nearby(ctx context.Context, req api.NearbyRequest) ([]models.ResultEntry, error)
}

// Handle is the imperative surface offered to the embedding application.
type Handle interface {
	SetAddressText(text string)
	AddressText() string
	Clear()
	Focus() tea.Cmd
	Blur()
	IsFocused() bool
	RequestCurrentLocation() tea.Cmd
}

var _ Handle = (*Model)(nil)

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

type inflight struct {
	seq    int
	cancel context.CancelFunc
}

// Model is the autocomplete component.
type Model struct {
	id     int
	cfg    Config
	client Client
	log    *slog.Logger

	input   textinput.Model
	spinner spinner.Model
	width   int

	// Query state
	debounceSeq  int
	seq          int
	requests     []inflight
	sessionToken string

	// Results of the last applied primary request and the text that
	// produced them (empty for nearby lookups)
	results     []models.ResultEntry
	resultsText string

	// Keys of rows waiting on a request
	pending []string

	cursor    int
	listShown bool
}

// New creates a component using client for all network calls.
func New(cfg Config, client Client) Model {
	cfg = cfg.withDefaults()

	ti := textinput.New()
	ti.Placeholder = cfg.Placeholder
	ti.CharLimit = 200
	ti.Width = 40
	ti.Prompt = ""

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = cfg.Styles.Loading

	return Model{
		id:           nextID(),
		cfg:          cfg,
		client:       client,
		log:          cfg.Logger,
		input:        ti,
		spinner:      sp,
		sessionToken: uuid.NewString(),
		listShown:    cfg.ListViewDisplayed == ListViewAlways,
	}
}

// ID identifies the component in the messages it emits.
func (m Model) ID() int {
	return m.id
}

// Init returns the initial command (textinput blink).
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetWidth sets the rendered width of the input and list
func (m *Model) SetWidth(w int) {
	m.width = w
	if w > 6 {
		m.input.Width = w - 6
	}
}

// SessionToken returns the token sent with the current autocomplete sequence
func (m Model) SessionToken() string {
	return m.sessionToken
}

// SetAddressText replaces the input text without issuing a search.
func (m *Model) SetAddressText(text string) {
	m.input.SetValue(text)
}

// AddressText returns the current input text.
func (m Model) AddressText() string {
	return m.input.Value()
}

// Clear empties the input, drops results and aborts every request.
func (m *Model) Clear() {
	m.abortRequests()
	m.debounceSeq++
	m.input.SetValue("")
	m.results = nil
	m.resultsText = ""
	m.pending = nil
	m.cursor = 0
}

// Focus focuses the input and shows the list in auto mode.
func (m *Model) Focus() tea.Cmd {
	if m.cfg.ListViewDisplayed == ListViewAuto {
		m.listShown = true
	}
	return m.input.Focus()
}

// Blur blurs the input. In auto mode the list is hidden unless
// KeepResultsAfterBlur is set.
func (m *Model) Blur() {
	if m.cfg.ListViewDisplayed == ListViewAuto && !m.cfg.KeepResultsAfterBlur {
		m.listShown = false
	}
	m.input.Blur()
}

// IsFocused reports whether the input has focus.
func (m Model) IsFocused() bool {
	return m.input.Focused()
}

// RequestCurrentLocation starts the current-location flow as if the
// current-location row had been selected, without changing the text.
func (m *Model) RequestCurrentLocation() tea.Cmd {
	m.pending = []string{models.CurrentLocationID}
	return m.requestPosition()
}

// Close aborts every request. Call it when the component goes away.
func (m *Model) Close() {
	m.abortRequests()
	m.pending = nil
}

// Loading reports whether any request is in flight.
func (m Model) Loading() bool {
	return len(m.requests) > 0
}

// ListVisible reports whether View renders the suggestion list.
func (m Model) ListVisible() bool {
	switch m.cfg.ListViewDisplayed {
	case ListViewAlways:
		return true
	case ListViewNever:
		return false
	}
	return m.listShown
}

// Results returns the entries of the last applied primary request.
func (m Model) Results() []models.ResultEntry {
	return m.results
}

// Rows returns the display list, recomputed from the results, the
// predefined places and the pending set.
func (m Model) Rows() []Row {
	return toRows(m.builder().Compose(m.results, m.resultsText), m.pending)
}

// Cursor returns the index of the highlighted row.
func (m Model) Cursor() int {
	return m.cursor
}

func (m Model) builder() ListBuilder {
	return ListBuilder{
		Predefined:           m.cfg.PredefinedPlaces,
		AlwaysShowPredefined: m.cfg.PredefinedPlacesAlwaysVisible,
		CurrentLocation:      m.cfg.CurrentLocation && geo.Available(m.cfg.Locator),
		CurrentLocationLabel: m.cfg.CurrentLocationLabel,
	}
}
