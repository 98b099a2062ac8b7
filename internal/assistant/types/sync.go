package types

import "time"

// Reconciled reports a local record that was created remotely during synchronization.
type Reconciled struct {
	Label    string `json:"label"`
	Previous string `json:"previous_id"`
	ID       string `json:"id"`
}

// LocalOrphan is a local record whose id has no remote counterpart.
type LocalOrphan struct {
	Label string `json:"label"`
	ID    string `json:"id"`
}

// RecordFailure names a record that could not be reconciled and why.
type RecordFailure struct {
	Label string `json:"label"`
	ID    string `json:"id"`
	Error string `json:"error"`
	Err   error  `json:"-"`
}

// SyncReport is the outcome of one synchronization run. Every local record missing
// remotely ends up either in Reconciled or in Failures.
type SyncReport struct {
	RunID      string          `json:"run_id"`
	Checked    int             `json:"checked"`
	Reconciled []Reconciled    `json:"reconciled"`
	Failures   []RecordFailure `json:"failures"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
}

// HasFailures reports whether any record failed to reconcile
func (r *SyncReport) HasFailures() bool {
	return len(r.Failures) > 0
}

// AuditReport is the read-only drift view shown on the listing.
type AuditReport struct {
	RemoteCount int           `json:"remote_count"`
	LocalCount  int           `json:"local_count"`
	Orphans     []LocalOrphan `json:"orphans"`
}

// SyncRun is the persisted log entry of a synchronization run.
type SyncRun struct {
	ID         string          `json:"id"`
	Trigger    string          `json:"trigger"` // http, cli
	Operator   string          `json:"operator"`
	Checked    int             `json:"checked"`
	Reconciled []Reconciled    `json:"reconciled"`
	Failures   []RecordFailure `json:"failures"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
}

// ImportCandidate is one remote assistant offered by the import selector.
type ImportCandidate struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Listing is the operator listing: every local record plus audit warnings.
type Listing struct {
	Items    []*Assistant `json:"items"`
	Warnings []string     `json:"warnings"`
	// SyncHint is set when orphans exist and a synchronize run would repair them.
	SyncHint bool `json:"sync_hint"`
}
