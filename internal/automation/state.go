package automation

// State represents the controller lifecycle state
type State int32

const (
	StateStopped State = iota
	StateRunning
	StatePaused
	// StateDetecting is reported transiently by some frontends while a
	// recognition pass runs; the loop itself never parks in it.
	StateDetecting
)

var stateNames = map[State]string{
	StateStopped:   "stopped",
	StateRunning:   "running",
	StatePaused:    "paused",
	StateDetecting: "detecting",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}
