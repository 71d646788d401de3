package tui

// statusClearMsg expires the status line. seq guards against clearing a
// newer status.
type statusClearMsg struct {
	seq int
}

type statusKind int

const (
	statusInfo statusKind = iota
	statusWarn
	statusError
)
