package generator

// State is a phase of the generation loop.
//
//	Initializing → Evaluating → Evolving → Selecting ─┬→ Evolving (next round)
//	                                                  ├→ Converged
//	                                                  ├→ RoundLimitReached
//	                                                  └→ Cancelled
type State int

const (
	Initializing State = iota
	Evaluating
	Evolving
	Selecting
	Converged
	RoundLimitReached
	Cancelled
)

var stateNames = [...]string{
	Initializing:      "initializing",
	Evaluating:        "evaluating",
	Evolving:          "evolving",
	Selecting:         "selecting",
	Converged:         "converged",
	RoundLimitReached: "round-limit-reached",
	Cancelled:         "cancelled",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether the loop has stopped.
func (s State) Terminal() bool { return s >= Converged }

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }
