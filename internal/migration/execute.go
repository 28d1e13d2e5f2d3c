package migration

import (
	"context"
	"fmt"

	"github.com/dlemos/tenantshift/internal/models"
	"github.com/dlemos/tenantshift/internal/platform"
)

// Execute carries out the plan against the registry, one unit at a time in
// plan order. A failed create marks that unit failed and moves on — a
// single resource failure never aborts the batch. No retries are attempted;
// a failed unit is left for the caller to re-run. Returns only the units
// actually attempted: on cancellation between units, not-yet-started units
// stay pending and are absent from the result.
//
// The only error return is an unregistered kind in the plan, which is a
// configuration error and fails before any unit is attempted.
func Execute(ctx context.Context, reg *platform.Registry, plan *models.MigrationPlan, logger func(string)) ([]*models.MigrationUnit, error) {
	// Resolve every kind up front so a misconfigured registry cannot
	// leave the batch half done.
	clients := make(map[string]platform.ResourceClient)
	for _, unit := range plan.Units {
		if _, ok := clients[unit.Kind]; ok {
			continue
		}
		client, err := reg.Client(unit.Kind)
		if err != nil {
			return nil, err
		}
		clients[unit.Kind] = client
	}

	var attempted []*models.MigrationUnit
	currentKind := ""
	for _, unit := range plan.Units {
		if ctx.Err() != nil {
			logger("Migration cancelled; remaining units left pending")
			break
		}
		if unit.Kind != currentKind {
			currentKind = unit.Kind
			logger(fmt.Sprintf("=== Migrating %s ===", currentKind))
		}

		payload := buildPayload(unit.Source, plan.DestinationTenantID)
		created, err := clients[unit.Kind].Create(ctx, payload)
		if err != nil {
			unit.Status = models.UnitFailed
			unit.FailureReason = err.Error()
			logger(fmt.Sprintf("  FAIL %s: %v", unit.SourceID, err))
		} else {
			unit.Status = models.UnitMigrated
			unit.DestinationID = created.ID()
			logger(fmt.Sprintf("  MIGRATED %s -> %s", unit.SourceID, unit.DestinationID))
		}
		attempted = append(attempted, unit)
	}

	return attempted, nil
}
