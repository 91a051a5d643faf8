package quiz

// State is the phase of a quiz session.
type State int

const (
	// Idle means no quiz has been generated.
	Idle State = iota
	// InProgress means at least one question is unanswered.
	InProgress
	// Finished means every question has been answered.
	Finished
)

func (s State) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case Finished:
		return "finished"
	}
	return "idle"
}
