package channel

// State of the live channel.
type State int

const (
	Connecting State = iota
	Connected
	Disconnected
	Error
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Disconnected:
		return "disconnected"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Label is the text shown on the connection indicator.
func (s State) Label() string {
	switch s {
	case Connecting:
		return "Connecting..."
	case Connected:
		return "Connected"
	case Disconnected:
		return "Disconnected - Reconnecting..."
	case Error:
		return "Connection Error"
	default:
		return "Unknown"
	}
}

// Healthy drives the indicator styling; only Connected is healthy.
func (s State) Healthy() bool { return s == Connected }

// Status is what every transition publishes.
type Status struct {
	State   State  `json:"-"`
	Name    string `json:"state"`
	Label   string `json:"label"`
	Healthy bool   `json:"healthy"`
}

// StatusOf builds the published Status for s.
func StatusOf(s State) Status {
	return Status{State: s, Name: s.String(), Label: s.Label(), Healthy: s.Healthy()}
}
