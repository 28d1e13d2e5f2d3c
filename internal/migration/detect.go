package migration

import (
	"context"
	"fmt"

	"github.com/dlemos/tenantshift/internal/models"
	"github.com/dlemos/tenantshift/internal/platform"
)

// Platform-managed sample objects that are never migrated or cleaned up.
var skipNames = map[string]map[string]bool{
	"products":  {"Demo Product": true},
	"customers": {"Demo Customer": true},
}

// DefaultExclusions returns the per-kind resource names skipped during
// detection.
func DefaultExclusions() map[string][]string {
	result := make(map[string][]string)
	for kind, names := range skipNames {
		for name := range names {
			result[kind] = append(result[kind], name)
		}
	}
	return result
}

// Detect queries every registered kind for resources in the source tenant
// still attributed to the given user. A kind whose list call fails is
// recorded with a per-kind error and excluded from the candidate set;
// detection of the remaining kinds continues. Kinds with zero candidates
// are omitted from the report. No side effects.
func Detect(ctx context.Context, reg *platform.Registry, userID, sourceTenantID string, logger func(string)) *models.OrphanReport {
	report := &models.OrphanReport{
		UserID:         userID,
		SourceTenantID: sourceTenantID,
		Candidates:     make(map[string][]models.Resource),
	}

	filter := platform.Filter{TenantID: sourceTenantID, OwnerUserID: userID}
	for _, kind := range reg.Kinds() {
		client, err := reg.Client(kind)
		if err != nil {
			// Unreachable for kinds the registry itself returned.
			recordError(report, kind, err)
			continue
		}

		logger(fmt.Sprintf("Scanning %s...", kind))
		resources, err := client.List(ctx, filter)
		if err != nil {
			logger(fmt.Sprintf("  FAIL %s: %v", kind, err))
			recordError(report, kind, err)
			continue
		}

		skip := skipNames[kind]
		var candidates []models.Resource
		for _, r := range resources {
			if skip != nil && skip[r.Name()] {
				continue
			}
			candidates = append(candidates, r)
		}

		if len(candidates) == 0 {
			logger(fmt.Sprintf("  %s: none", kind))
			continue
		}
		report.Kinds = append(report.Kinds, kind)
		report.Candidates[kind] = candidates
		report.Total += len(candidates)
		logger(fmt.Sprintf("  %s: %d orphaned", kind, len(candidates)))
	}

	logger(fmt.Sprintf("Detection complete: %d orphaned resources across %d kinds", report.Total, len(report.Kinds)))
	return report
}

func recordError(report *models.OrphanReport, kind string, err error) {
	if report.Errors == nil {
		report.Errors = make(map[string]string)
	}
	report.Errors[kind] = err.Error()
}
