package verdant

import "sync"

// RecordMergedHook is called after a merge is applied, with the surviving
// document's file name and the absorbed documents' file names.
type RecordMergedHook func(winner string, losers []string)

// hooks manages event callbacks for reconciliation outcomes.
type hooks struct {
	mu             sync.RWMutex
	onRecordMerged []RecordMergedHook
}

// newHooks creates a new hooks instance.
func newHooks() *hooks {
	return &hooks{}
}

// OnRecordMerged registers a callback for applied merges.
func (h *hooks) OnRecordMerged(fn RecordMergedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onRecordMerged = append(h.onRecordMerged, fn)
}

// triggerRecordMerged invokes registered callbacks for one merge.
func (h *hooks) triggerRecordMerged(winner string, losers []string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onRecordMerged {
		fn(winner, losers)
	}
}
