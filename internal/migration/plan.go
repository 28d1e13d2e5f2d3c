package migration

import (
	"github.com/dlemos/tenantshift/internal/models"
)

// Plan converts an orphan report into an ordered migration plan: one unit
// per resource, kinds in the order detection recorded them (registration
// order), resources in detection order within a kind. Pure function,
// deterministic for identical reports, no I/O.
func Plan(report *models.OrphanReport, destinationTenantID string) *models.MigrationPlan {
	plan := &models.MigrationPlan{DestinationTenantID: destinationTenantID}
	for _, kind := range report.Kinds {
		for _, r := range report.Candidates[kind] {
			plan.Units = append(plan.Units, &models.MigrationUnit{
				Kind:     kind,
				SourceID: r.ID(),
				Status:   models.UnitPending,
				Source:   r,
			})
		}
	}
	return plan
}
