package migration

import (
	"context"
	"fmt"

	"github.com/dlemos/tenantshift/internal/models"
	"github.com/dlemos/tenantshift/internal/platform"
)

// Cleanup deletes the source copy of every migrated unit. It is a no-op
// unless allowCleanup is explicitly true AND the run had zero failures:
// deleting source data after a partial run would permanently lose resources
// that never reached the destination. Per-unit delete failures are
// collected and do not block the remaining deletions.
func Cleanup(ctx context.Context, reg *platform.Registry, units []*models.MigrationUnit, allowCleanup, success bool, logger func(string)) *models.CleanupReport {
	report := &models.CleanupReport{}
	if !allowCleanup {
		logger("Cleanup disabled; source resources left in place")
		return report
	}
	if !success {
		logger("Cleanup skipped: run had failures, source resources left in place")
		return report
	}

	for _, unit := range units {
		if unit.Status != models.UnitMigrated {
			continue
		}
		if ctx.Err() != nil {
			logger("Cleanup cancelled")
			break
		}

		client, err := reg.Client(unit.Kind)
		if err != nil {
			report.Errors = append(report.Errors, models.CleanupError{
				Kind: unit.Kind, SourceID: unit.SourceID, Reason: err.Error(),
			})
			continue
		}

		report.Attempted++
		if err := client.Delete(ctx, unit.SourceID); err != nil {
			logger(fmt.Sprintf("  FAIL deleting %s %s: %v", unit.Kind, unit.SourceID, err))
			report.Errors = append(report.Errors, models.CleanupError{
				Kind: unit.Kind, SourceID: unit.SourceID, Reason: err.Error(),
			})
			continue
		}
		report.Deleted++
		logger(fmt.Sprintf("  DELETED %s %s from source", unit.Kind, unit.SourceID))
	}

	logger(fmt.Sprintf("Cleanup complete: %d deleted, %d failed", report.Deleted, len(report.Errors)))
	return report
}
