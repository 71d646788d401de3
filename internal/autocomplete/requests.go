package autocomplete

import (
	"context"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mobil-koeln/placepicker/internal/api"
	"github.com/mobil-koeln/placepicker/internal/geo"
	"github.com/mobil-koeln/placepicker/internal/models"
)

// track starts a request context and records its cancel function.
// A zero timeout leaves the deadline to the callee.
func (m *Model) track(timeout time.Duration) (context.Context, int) {
	m.seq++
	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), timeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}

	requests := make([]inflight, 0, len(m.requests)+1)
	requests = append(requests, m.requests...)
	m.requests = append(requests, inflight{seq: m.seq, cancel: cancel})
	return ctx, m.seq
}

// settle releases a finished request. It reports false when the request
// was aborted earlier, in which case its result must not be applied.
func (m *Model) settle(seq int) bool {
	for i, r := range m.requests {
		if r.seq != seq {
			continue
		}
		r.cancel()
		requests := make([]inflight, 0, len(m.requests)-1)
		requests = append(requests, m.requests[:i]...)
		m.requests = append(requests, m.requests[i+1:]...)
		return true
	}
	return false
}

func (m *Model) abortRequests() {
	for _, r := range m.requests {
		r.cancel()
	}
	m.requests = nil
}

// scheduleSearch runs the search now or after the debounce delay. Only the
// tick for the latest keystroke fires.
func (m *Model) scheduleSearch(text string) tea.Cmd {
	m.debounceSeq++
	if m.cfg.Debounce <= 0 {
		return m.search(text)
	}

	id, seq := m.id, m.debounceSeq
	return tea.Tick(m.cfg.Debounce, func(time.Time) tea.Msg {
		return debounceMsg{id: id, seq: seq, text: text}
	})
}

// search aborts everything in flight and issues an autocomplete request.
// Text below the minimum length resets the list to the predefined block.
func (m *Model) search(text string) tea.Cmd {
	m.abortRequests()
	m.pending = nil

	if text == "" || utf8.RuneCountInString(text) < m.cfg.MinLength {
		m.results = nil
		m.resultsText = ""
		m.cursor = 0
		return nil
	}

	if m.cfg.PreProcess != nil {
		text = m.cfg.PreProcess(text)
		m.input.SetValue(text)
	}

	req := api.AutocompleteRequest{
		Input:        text,
		SessionToken: m.sessionToken,
		Query:        m.cfg.Query,
	}
	if m.cfg.NearbyAPI == api.NearbyReverseGeocoding {
		req.FilterTypes = m.cfg.FilterReverseGeocodingByTypes
	}

	ctx, seq := m.track(m.cfg.Timeout)
	client, id := m.client, m.id
	m.log.Debug("autocomplete request", "seq", seq, "input", text)

	return tea.Batch(func() tea.Msg {
		entries, err := client.Autocomplete(ctx, req)
		return searchResultMsg{id: id, seq: seq, text: text, entries: entries, err: err}
	}, m.spinner.Tick)
}

// fetchDetails resolves entry to a detail record
func (m *Model) fetchDetails(entry models.ResultEntry) tea.Cmd {
	m.abortRequests()
	m.pending = []string{entry.Key()}

	req := api.DetailsRequest{
		PlaceID:      entry.PlaceID,
		SessionToken: m.sessionToken,
		Fields:       m.cfg.Fields,
		Query:        m.cfg.DetailsQuery,
	}

	ctx, seq := m.track(m.cfg.Timeout)
	client, id := m.client, m.id
	m.log.Debug("details request", "seq", seq, "place_id", entry.PlaceID)

	return tea.Batch(func() tea.Msg {
		detail, err := client.Details(ctx, req)
		return detailsResultMsg{id: id, seq: seq, entry: entry, detail: detail, err: err}
	}, m.spinner.Tick)
}

// fetchNearby looks up places at a coordinate with the same lifecycle as search
func (m *Model) fetchNearby(pos models.Point) tea.Cmd {
	m.abortRequests()

	req := api.NearbyRequest{
		Latitude:  pos.Lat,
		Longitude: pos.Lng,
		API:       m.cfg.NearbyAPI,
	}
	if m.cfg.NearbyAPI == api.NearbyReverseGeocoding {
		req.Query = m.cfg.ReverseGeocodingQuery
		req.FilterTypes = m.cfg.FilterReverseGeocodingByTypes
	} else {
		req.Query = m.cfg.PlacesSearchQuery
	}

	ctx, seq := m.track(m.cfg.Timeout)
	client, id := m.client, m.id
	m.log.Debug("nearby request", "seq", seq, "api", m.cfg.NearbyAPI.String())

	return tea.Batch(func() tea.Msg {
		entries, err := client.Nearby(ctx, req)
		return nearbyResultMsg{id: id, seq: seq, entries: entries, err: err}
	}, m.spinner.Tick)
}

// requestPosition asks the locator for the device position
func (m *Model) requestPosition() tea.Cmd {
	if !geo.Available(m.cfg.Locator) {
		m.log.Warn("geolocation is not available")
		m.pending = nil
		return nil
	}

	m.abortRequests()
	ctx, seq := m.track(0)
	locator, opts, id := m.cfg.Locator, m.cfg.locatorOptions(), m.id

	return tea.Batch(func() tea.Msg {
		pos, err := geo.Locate(ctx, locator, opts)
		return positionMsg{id: id, seq: seq, pos: pos, err: err}
	}, m.spinner.Tick)
}

// Outcome dispatch. Callbacks run synchronously inside Update; the returned
// command forwards the outcome to the embedding model as a message.

func (m *Model) press(data models.PlaceData, detail *models.PlaceDetail) tea.Cmd {
	if m.cfg.OnPress != nil {
		m.cfg.OnPress(data, detail)
	} else {
		m.log.Debug("selection without OnPress", "place_id", data.PlaceID)
	}
	id := m.id
	return func() tea.Msg {
		return SelectedMsg{ID: id, Data: data, Detail: detail}
	}
}

func (m *Model) fail(err error) tea.Cmd {
	if m.cfg.OnFail != nil {
		m.cfg.OnFail(err)
	} else {
		m.log.Warn("places request failed", "err", err)
	}
	id := m.id
	return func() tea.Msg {
		return FailedMsg{ID: id, Err: err}
	}
}

func (m *Model) notFound(err *api.NotFoundError) tea.Cmd {
	if m.cfg.OnNotFound != nil {
		m.cfg.OnNotFound(err)
	} else {
		m.log.Warn("place not found", "place_id", err.PlaceID, "status", err.Status)
	}
	id := m.id
	return func() tea.Msg {
		return NotFoundMsg{ID: id, Err: err}
	}
}

func (m *Model) timeout() tea.Cmd {
	if m.cfg.OnTimeout != nil {
		m.cfg.OnTimeout()
	} else {
		m.log.Debug("request timed out")
	}
	id := m.id
	return func() tea.Msg {
		return TimeoutMsg{ID: id}
	}
}
