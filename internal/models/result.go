package models

// DispatchResult is what one pass (or one "send now") reports back to its
// trigger: total successful sends plus every per-recipient and
// per-campaign failure as a human-readable string. It is never persisted.
type DispatchResult struct {
	TotalSent int      `json:"total_sent"`
	Errors    []string `json:"errors"`
}

// Merge folds another campaign's run into a pass-wide total.
func (r *DispatchResult) Merge(other DispatchResult) {
	r.TotalSent += other.TotalSent
	r.Errors = append(r.Errors, other.Errors...)
}
