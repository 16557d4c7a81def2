package view

// StateKind enumerates the screens the dashboard can be on.
type StateKind int

const (
	StateIdle StateKind = iota
	StateSearching
	StateDetail
	StateComparison
)

func (k StateKind) String() string {
	switch k {
	case StateIdle:
		return "idle"
	case StateSearching:
		return "searching"
	case StateDetail:
		return "detail"
	case StateComparison:
		return "comparison"
	default:
		return "unknown"
	}
}

// State is the current screen plus the data that identifies it.
// ChannelID is set only for StateDetail, Query only for StateSearching
// (and optionally StateComparison).
type State struct {
	Kind      StateKind
	Query     string
	ChannelID string
}

func Idle() State { return State{Kind: StateIdle} }

func Searching(query string) State { return State{Kind: StateSearching, Query: query} }

func Detail(channelID string) State { return State{Kind: StateDetail, ChannelID: channelID} }

func Comparison(query string) State { return State{Kind: StateComparison, Query: query} }

// HomeState picks the home screen for a request: a channel id wins over a
// query, and a blank query means idle.
func HomeState(query, channelID string) State {
	switch {
	case channelID != "":
		return Detail(channelID)
	case query != "":
		return Searching(query)
	default:
		return Idle()
	}
}
