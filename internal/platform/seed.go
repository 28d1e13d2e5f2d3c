package platform

import (
	"context"
	"fmt"
)

// sampleData holds per-kind payloads created by Seed, keyed by registry
// kind name. Tenant and owner fields are filled in at seed time.
var sampleData = map[string][]map[string]interface{}{
	"products": {
		{"name": "Starter Plan", "price": 900, "currency": "usd"},
		{"name": "Pro Plan", "price": 2900, "currency": "usd"},
		{"name": "Sticker Pack", "price": 500, "currency": "usd"},
	},
	"customers": {
		{"name": "Ada Lovelace", "email": "ada@example.com"},
		{"name": "Grace Hopper", "email": "grace@example.com"},
	},
	"orders": {
		{"total": 3400, "currency": "usd", "state": "paid"},
	},
}

// Seed creates sample resources for a user in a tenant, for demos and for
// smoke-testing a migration end to end. Individual create failures are
// logged and skipped.
func Seed(ctx context.Context, reg *Registry, tenantID, userID string, logger func(string)) error {
	created, failed := 0, 0
	for _, kind := range reg.Kinds() {
		payloads, ok := sampleData[kind]
		if !ok {
			continue
		}
		client, err := reg.Client(kind)
		if err != nil {
			return err
		}

		logger(fmt.Sprintf("Seeding %s...", kind))
		for _, sample := range payloads {
			payload := make(map[string]interface{}, len(sample)+2)
			for k, v := range sample {
				payload[k] = v
			}
			payload["tenant_id"] = tenantID
			payload["owner_user_id"] = userID

			res, err := client.Create(ctx, payload)
			if err != nil {
				logger(fmt.Sprintf("  FAIL: %v", err))
				failed++
				continue
			}
			logger(fmt.Sprintf("  CREATED %s (id=%s)", res.Name(), res.ID()))
			created++
		}
	}

	logger(fmt.Sprintf("Seed complete: %d created, %d failed", created, failed))
	if failed > 0 {
		return fmt.Errorf("%d sample resources failed to create", failed)
	}
	return nil
}
