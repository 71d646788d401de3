package autocomplete

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/mobil-koeln/placepicker/internal/api"
	"github.com/mobil-koeln/placepicker/internal/models"
)

// Update handles key presses and the results of the component's own commands.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case debounceMsg:
		if msg.id != m.id || msg.seq != m.debounceSeq {
			return m, nil
		}
		return m, m.search(msg.text)

	case searchResultMsg:
		if msg.id != m.id {
			return m, nil
		}
		return m.handleSearchResult(msg)

	case nearbyResultMsg:
		if msg.id != m.id {
			return m, nil
		}
		return m.handleNearbyResult(msg)

	case detailsResultMsg:
		if msg.id != m.id {
			return m, nil
		}
		return m.handleDetailsResult(msg)

	case positionMsg:
		if msg.id != m.id {
			return m, nil
		}
		return m.handlePosition(msg)

	case spinner.TickMsg:
		// Let the tick loop die once nothing is loading
		if !m.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if !m.input.Focused() {
			return m, nil
		}
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	keys := m.cfg.KeyMap

	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.Rows())-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, keys.Select):
		rows := m.Rows()
		if !m.ListVisible() || len(rows) == 0 {
			return m, nil
		}
		m.clampCursor(len(rows))
		return m.Select(rows[m.cursor])

	case key.Matches(msg, keys.Clear):
		m.Clear()
		return m, nil

	case key.Matches(msg, keys.CurrentLocation):
		if !m.cfg.CurrentLocation {
			return m, nil
		}
		m.input.SetValue(m.cfg.CurrentLocationLabel)
		return m, m.RequestCurrentLocation()
	}

	before := m.input.Value()
	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, inputCmd
	}

	if m.cfg.ListViewDisplayed == ListViewAuto {
		m.listShown = true
	}
	m.cursor = 0
	return m, tea.Batch(inputCmd, m.scheduleSearch(m.input.Value()))
}

// Select handles the selection of a row:
//   - the current-location row starts a position lookup,
//   - predefined rows, and any row when FetchDetails is off, resolve
//     synchronously without a network call,
//   - any other row fetches its details.
func (m Model) Select(row Row) (Model, tea.Cmd) {
	entry := row.ResultEntry

	// A row still flagged from an earlier request must not stay stuck
	if row.Loading {
		m.pending = nil
	}

	switch {
	case entry.IsCurrentLocation:
		m.input.SetValue(m.cfg.describe(entry))
		m.pending = []string{entry.Key()}
		return m, m.requestPosition()

	case entry.IsPredefinedPlace || !m.cfg.FetchDetails:
		m.input.SetValue(m.cfg.describe(entry))
		m.Blur()
		place := models.ResolvePredefined(entry, m.cfg.PredefinedPlaces)
		return m, m.press(place.ToPlaceData(), place.ToPlaceDetail())
	}

	return m, m.fetchDetails(entry)
}

func (m Model) handleSearchResult(msg searchResultMsg) (Model, tea.Cmd) {
	if !m.settle(msg.seq) {
		// Superseded or cleared
		return m, nil
	}
	m.pending = nil

	if msg.err != nil {
		return m, m.handleRequestError(msg.err)
	}

	m.results = msg.entries
	m.resultsText = msg.text
	m.cursor = 0
	return m, nil
}

func (m Model) handleNearbyResult(msg nearbyResultMsg) (Model, tea.Cmd) {
	if !m.settle(msg.seq) {
		return m, nil
	}
	m.pending = nil

	if msg.err != nil {
		return m, m.handleRequestError(msg.err)
	}

	m.results = msg.entries
	m.resultsText = ""
	m.cursor = 0
	if m.cfg.ListViewDisplayed == ListViewAuto {
		m.listShown = true
	}
	return m, nil
}

func (m Model) handleDetailsResult(msg detailsResultMsg) (Model, tea.Cmd) {
	if !m.settle(msg.seq) {
		// Whatever aborted it already reset pending
		return m, nil
	}
	m.pending = without(m.pending, msg.entry.Key())

	if msg.err == nil {
		m.sessionToken = uuid.NewString()
		m.Blur()
		m.input.SetValue(m.cfg.describe(msg.entry))
		return m, m.press(msg.entry.ToPlaceData(), msg.detail)
	}

	var nf *api.NotFoundError
	if errors.As(msg.err, &nf) {
		if m.cfg.AutoFillOnNotFound {
			m.input.SetValue(m.cfg.describe(msg.entry))
		}
		return m, m.notFound(nf)
	}

	return m, m.handleRequestError(msg.err)
}

func (m Model) handlePosition(msg positionMsg) (Model, tea.Cmd) {
	if !m.settle(msg.seq) {
		return m, nil
	}

	if msg.err != nil {
		m.pending = nil
		m.log.Warn("current position unavailable", "err", msg.err)
		return m, nil
	}

	if m.cfg.NearbyAPI == api.NearbyNone {
		m.pending = nil
		entry := models.CurrentLocationEntry(m.cfg.CurrentLocationLabel, &msg.pos)
		return m, m.press(entry.ToPlaceData(), entry.ToPlaceDetail())
	}

	return m, m.fetchNearby(msg.pos)
}

// handleRequestError routes a failed request. Aborts are silent; a timeout
// additionally reaches OnTimeout.
func (m *Model) handleRequestError(err error) tea.Cmd {
	if api.IsAborted(err) {
		if api.IsTimeout(err) {
			return m.timeout()
		}
		return nil
	}
	return m.fail(err)
}

func (m *Model) clampCursor(n int) {
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
