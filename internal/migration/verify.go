package migration

import (
	"context"
	"fmt"

	"github.com/dlemos/tenantshift/internal/models"
	"github.com/dlemos/tenantshift/internal/platform"
)

// snapshot captures the destination tenant's resources for one user at a
// point in time: per-kind counts plus the set of source IDs already present
// as provenance markers.
type snapshot struct {
	counts  map[string]int
	markers map[string]map[string]bool // kind → source IDs seen as migrated_from
}

// takeSnapshot lists every registered kind in the destination tenant for
// the given user. A kind that fails to list is counted as zero and logged;
// the resulting verification may then report a mismatch, which is the
// desired signal.
func takeSnapshot(ctx context.Context, reg *platform.Registry, destinationTenantID, userID string, logger func(string)) *snapshot {
	snap := &snapshot{
		counts:  make(map[string]int),
		markers: make(map[string]map[string]bool),
	}
	filter := platform.Filter{TenantID: destinationTenantID, OwnerUserID: userID}
	for _, kind := range reg.Kinds() {
		client, err := reg.Client(kind)
		if err != nil {
			continue
		}
		resources, err := client.List(ctx, filter)
		if err != nil {
			logger(fmt.Sprintf("  WARNING: counting %s on destination: %v", kind, err))
			continue
		}
		snap.counts[kind] = len(resources)
		for _, r := range resources {
			if from := r.MigratedFrom(); from != "" {
				if snap.markers[kind] == nil {
					snap.markers[kind] = make(map[string]bool)
				}
				snap.markers[kind][from] = true
			}
		}
	}
	return snap
}

// Verify compares destination counts captured before and after execution
// against the number of migrated units. A mismatch is reported, not
// corrected.
func Verify(before, after map[string]int, migrated int) *models.VerificationResult {
	observedDelta := total(after) - total(before)
	return &models.VerificationResult{
		Before:        before,
		After:         after,
		ExpectedDelta: migrated,
		ObservedDelta: observedDelta,
		Consistent:    observedDelta == migrated,
	}
}

func total(counts map[string]int) int {
	sum := 0
	for _, n := range counts {
		sum += n
	}
	return sum
}
