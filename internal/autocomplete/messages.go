package autocomplete

import (
	"github.com/mobil-koeln/placepicker/internal/api"
	"github.com/mobil-koeln/placepicker/internal/models"
)

// Messages sent to the embedding model. They are emitted in addition to
// the matching callback in Config.

// SelectedMsg reports a resolved selection
type SelectedMsg struct {
	ID     int
	Data   models.PlaceData
	Detail *models.PlaceDetail
}

// FailedMsg reports a request failure
type FailedMsg struct {
	ID  int
	Err error
}

// NotFoundMsg reports a details lookup without a usable record
type NotFoundMsg struct {
	ID  int
	Err *api.NotFoundError
}

// TimeoutMsg reports a request that ran out of time
type TimeoutMsg struct {
	ID int
}

// Internal messages. id routes them to the model that issued the command,
// seq identifies the request for stale-result detection.

type debounceMsg struct {
	id   int
	seq  int
	text string
}

type searchResultMsg struct {
	id      int
	seq     int
	text    string
	entries []models.ResultEntry
	err     error
}

type nearbyResultMsg struct {
	id      int
	seq     int
	entries []models.ResultEntry
	err     error
}

type detailsResultMsg struct {
	id     int
	seq    int
	entry  models.ResultEntry
	detail *models.PlaceDetail
	err    error
}

type positionMsg struct {
	id  int
	seq int
	pos models.Point
	err error
}
