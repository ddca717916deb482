package reconcile

// State identifies the stage a reconciliation run is in. Runs advance
// through the stages in order; any stage may transition to StateFailed.
type State int

// Reconciliation run stages.
const (
	StateLoading State = iota
	StateAnnotating
	StateGrouping
	StateMerging
	StatePersisting
	StateDone
	StateFailed
)

// String returns the stage name.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAnnotating:
		return "annotating"
	case StateGrouping:
		return "grouping"
	case StateMerging:
		return "merging"
	case StatePersisting:
		return "persisting"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
