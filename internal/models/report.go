package models

// UnitStatus is the lifecycle state of a single migration unit.
type UnitStatus string

const (
	UnitPending  UnitStatus = "pending"
	UnitMigrated UnitStatus = "migrated"
	UnitFailed   UnitStatus = "failed"
)

// MigrationUnit pairs one source resource with its migration outcome.
// Status transitions pending → {migrated|failed} exactly once, performed
// solely by the executor.
type MigrationUnit struct {
	Kind          string     `json:"kind"`
	SourceID      string     `json:"source_id"`
	DestinationID string     `json:"destination_id,omitempty"`
	Status        UnitStatus `json:"status"`
	FailureReason string     `json:"failure_reason,omitempty"`

	// Source carries the full source resource through execution and
	// cleanup. Not serialized into reports.
	Source Resource `json:"-"`
}

// MigrationPlan is an ordered sequence of units, grouped by kind.
// Built once per run and immutable after creation; never persisted.
type MigrationPlan struct {
	DestinationTenantID string           `json:"destination_tenant_id"`
	Units               []*MigrationUnit `json:"units"`
}

// OrphanReport holds the detection result: resources attributed to a user
// in a tenant they no longer belong to.
type OrphanReport struct {
	UserID         string `json:"user_id"`
	SourceTenantID string `json:"source_tenant_id"`
	Total          int    `json:"total"`

	// Kinds lists kinds with at least one candidate, in registration
	// order. Kinds with zero candidates are omitted entirely.
	Kinds      []string              `json:"kinds"`
	Candidates map[string][]Resource `json:"candidates"`

	// Errors records per-kind list failures. A failed kind is excluded
	// from the candidate set; detection of other kinds continues.
	Errors map[string]string `json:"errors,omitempty"`

	// AlreadyMigrated counts candidates skipped because the destination
	// tenant already holds a copy (provenance marker match on re-run).
	AlreadyMigrated int `json:"already_migrated,omitempty"`
}

// KindSummary holds per-kind counters for a migration report.
type KindSummary struct {
	Found    int `json:"found"`
	Migrated int `json:"migrated"`
	Failed   int `json:"failed"`
}

// VerificationResult compares destination counts before and after execution.
// A mismatch signals drift (e.g. concurrent writes by another actor) and is
// reported for human review, never corrected.
type VerificationResult struct {
	Before        map[string]int `json:"before"`
	After         map[string]int `json:"after"`
	ExpectedDelta int            `json:"expected_delta"`
	ObservedDelta int            `json:"observed_delta"`
	Consistent    bool           `json:"consistent"`
}

// CleanupError records a single failed source deletion.
type CleanupError struct {
	Kind     string `json:"kind"`
	SourceID string `json:"source_id"`
	Reason   string `json:"reason"`
}

// CleanupReport summarizes the opt-in source cleanup pass.
type CleanupReport struct {
	Attempted int            `json:"attempted"`
	Deleted   int            `json:"deleted"`
	Errors    []CleanupError `json:"errors,omitempty"`
}

// MigrationReport is the aggregate result of one migration run.
type MigrationReport struct {
	UserID              string `json:"user_id"`
	SourceTenantID      string `json:"source_tenant_id"`
	DestinationTenantID string `json:"destination_tenant_id"`

	Found    int `json:"found"`
	Migrated int `json:"migrated"`
	Failed   int `json:"failed"`

	Kinds map[string]*KindSummary `json:"kinds"`

	// Units contains every attempted unit in plan order. Units never
	// started (cancelled run) are absent.
	Units []*MigrationUnit `json:"units"`

	// Success is true iff the run had zero failures: no failed units and
	// no per-kind detection errors. Partial success is never upgraded.
	Success bool `json:"success"`

	DetectionErrors map[string]string   `json:"detection_errors,omitempty"`
	Verification    *VerificationResult `json:"verification"`
	Cleanup         *CleanupReport      `json:"cleanup,omitempty"`
}
