package pipeline

// State is the stage a run is in
type State int

const (
	Idle State = iota
	Extracting
	Translating
	Synthesizing
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Extracting:
		return "Extracting"
	case Translating:
		return "Translating"
	case Synthesizing:
		return "Synthesizing"
	case Done:
		return "Done"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Terminal reports whether no further transition follows
func (s State) Terminal() bool {
	return s == Done || s == Failed
}
