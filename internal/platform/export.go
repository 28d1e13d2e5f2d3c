package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dlemos/tenantshift/internal/models"
)

// ExportTenant dumps every registered kind's resources for a tenant to JSON
// files in outputDir, one file per kind. Intended as a backup before
// destructive operations; kinds that fail to list are reported and skipped.
func ExportTenant(ctx context.Context, reg *Registry, tenantID, outputDir string, logger func(string)) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	exported, failed := 0, 0
	for _, kind := range reg.Kinds() {
		client, err := reg.Client(kind)
		if err != nil {
			return err
		}

		resources, err := client.List(ctx, Filter{TenantID: tenantID})
		if err != nil {
			logger(fmt.Sprintf("  FAIL %s: %v", kind, err))
			failed++
			continue
		}
		if resources == nil {
			resources = []models.Resource{}
		}

		data, err := json.MarshalIndent(resources, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling %s: %w", kind, err)
		}
		path := filepath.Join(outputDir, kind+".json")
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}

		logger(fmt.Sprintf("  %s: %d resources -> %s", kind, len(resources), path))
		exported += len(resources)
	}

	logger(fmt.Sprintf("Export complete: %d resources, %d kinds failed", exported, failed))
	if failed > 0 {
		return fmt.Errorf("%d kinds failed to export", failed)
	}
	return nil
}
