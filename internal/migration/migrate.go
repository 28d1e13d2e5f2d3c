package migration

import (
	"context"
	"fmt"

	"github.com/dlemos/tenantshift/internal/models"
	"github.com/dlemos/tenantshift/internal/platform"
)

// Options configures one migration run.
type Options struct {
	UserID              string
	SourceTenantID      string
	DestinationTenantID string

	// AllowCleanup opts in to deleting successfully migrated source
	// resources. Off by default; even when on, cleanup only runs after a
	// fully successful migration.
	AllowCleanup bool
}

func (o Options) validate() error {
	if o.UserID == "" {
		return fmt.Errorf("user id must not be empty")
	}
	if o.SourceTenantID == "" {
		return fmt.Errorf("source tenant id must not be empty")
	}
	if o.DestinationTenantID == "" {
		return fmt.Errorf("destination tenant id must not be empty")
	}
	if o.SourceTenantID == o.DestinationTenantID {
		return fmt.Errorf("source and destination tenant must differ")
	}
	return nil
}

// Migrate relocates every resource the user left behind in the source
// tenant to the destination tenant: detect → plan → execute → verify →
// (optional) cleanup. Runtime failures are captured in the report, never
// returned as an error; the error return is reserved for configuration
// mistakes (empty identifiers, unregistered kinds).
func Migrate(ctx context.Context, reg *platform.Registry, opts Options, logger func(string)) (*models.MigrationReport, error) {
	if logger == nil {
		logger = func(string) {}
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	logger(fmt.Sprintf("=== Migrating resources of user %s: %s -> %s ===",
		opts.UserID, opts.SourceTenantID, opts.DestinationTenantID))

	orphans := Detect(ctx, reg, opts.UserID, opts.SourceTenantID, logger)

	logger("")
	logger("Counting destination resources...")
	before := takeSnapshot(ctx, reg, opts.DestinationTenantID, opts.UserID, logger)
	skipAlreadyMigrated(orphans, before, logger)

	plan := Plan(orphans, opts.DestinationTenantID)

	logger("")
	units, err := Execute(ctx, reg, plan, logger)
	if err != nil {
		return nil, err
	}

	logger("")
	logger("Verifying destination...")
	after := takeSnapshot(ctx, reg, opts.DestinationTenantID, opts.UserID, logger)

	report := buildReport(opts, orphans, units)
	report.Verification = Verify(before.counts, after.counts, report.Migrated)
	if !report.Verification.Consistent {
		logger(fmt.Sprintf("  WARNING: expected destination delta %d, observed %d",
			report.Verification.ExpectedDelta, report.Verification.ObservedDelta))
	} else {
		logger(fmt.Sprintf("  Destination delta %d matches %d migrated units",
			report.Verification.ObservedDelta, report.Migrated))
	}

	logger("")
	report.Cleanup = Cleanup(ctx, reg, units, opts.AllowCleanup, report.Success, logger)

	logger("")
	logger(fmt.Sprintf("Migration complete: %d found, %d migrated, %d failed",
		report.Found, report.Migrated, report.Failed))
	return report, nil
}

// skipAlreadyMigrated drops source candidates whose ID already appears as a
// provenance marker in the destination tenant, so re-running after a
// partial success does not duplicate resources already moved.
func skipAlreadyMigrated(orphans *models.OrphanReport, dest *snapshot, logger func(string)) {
	var kinds []string
	for _, kind := range orphans.Kinds {
		markers := dest.markers[kind]
		if len(markers) == 0 {
			kinds = append(kinds, kind)
			continue
		}
		var remaining []models.Resource
		for _, r := range orphans.Candidates[kind] {
			if markers[r.ID()] {
				orphans.AlreadyMigrated++
				orphans.Total--
				logger(fmt.Sprintf("  SKIP %s %s: already migrated", kind, r.ID()))
				continue
			}
			remaining = append(remaining, r)
		}
		if len(remaining) == 0 {
			delete(orphans.Candidates, kind)
			continue
		}
		orphans.Candidates[kind] = remaining
		kinds = append(kinds, kind)
	}
	orphans.Kinds = kinds
}

func buildReport(opts Options, orphans *models.OrphanReport, units []*models.MigrationUnit) *models.MigrationReport {
	if units == nil {
		units = []*models.MigrationUnit{}
	}
	report := &models.MigrationReport{
		UserID:              opts.UserID,
		SourceTenantID:      opts.SourceTenantID,
		DestinationTenantID: opts.DestinationTenantID,
		Found:               orphans.Total,
		Kinds:               make(map[string]*models.KindSummary),
		Units:               units,
		DetectionErrors:     orphans.Errors,
	}
	for _, kind := range orphans.Kinds {
		report.Kinds[kind] = &models.KindSummary{Found: len(orphans.Candidates[kind])}
	}
	for _, unit := range units {
		summary := report.Kinds[unit.Kind]
		if summary == nil {
			summary = &models.KindSummary{}
			report.Kinds[unit.Kind] = summary
		}
		switch unit.Status {
		case models.UnitMigrated:
			report.Migrated++
			summary.Migrated++
		case models.UnitFailed:
			report.Failed++
			summary.Failed++
		}
	}
	report.Success = report.Failed == 0 && len(orphans.Errors) == 0
	return report
}
