package migration

import "github.com/dlemos/tenantshift/internal/models"

// Fields stripped from a creation payload: identity the destination tenant
// assigns itself.
var strippedFields = []string{"id", "created_at", "updated_at"}

// buildPayload derives a creation payload from a source resource: the
// attribute payload with source-scoped identity stripped, tenant attribution
// rewritten to the destination, and a provenance marker pointing back at the
// source so re-runs can recognize already-migrated resources.
func buildPayload(source models.Resource, destinationTenantID string) map[string]interface{} {
	payload := make(map[string]interface{}, len(source))
	for k, v := range source {
		payload[k] = v
	}
	for _, field := range strippedFields {
		delete(payload, field)
	}
	payload["tenant_id"] = destinationTenantID
	payload["migrated_from"] = source.ID()
	return payload
}
