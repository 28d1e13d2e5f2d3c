package migration

import (
	"context"
	"fmt"
	"sync"

	"github.com/dlemos/tenantshift/internal/models"
	"github.com/dlemos/tenantshift/internal/platform"
)

// fakeClient is an in-memory ResourceClient double. Created resources land
// in the same backing slice, so a destination-tenant list after execution
// sees them, mirroring the real platform.
type fakeClient struct {
	mu        sync.Mutex
	resources []models.Resource

	listErr   error
	deleteErr error
	// failCreates maps resource names to a simulated transport error.
	failCreates map[string]error

	nextID      int
	createCalls int
	deleted     []string
}

func newFakeClient(resources ...models.Resource) *fakeClient {
	return &fakeClient{resources: resources}
}

func (f *fakeClient) List(ctx context.Context, filter platform.Filter) ([]models.Resource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Resource
	for _, r := range f.resources {
		if filter.TenantID != "" && r.TenantID() != filter.TenantID {
			continue
		}
		if filter.OwnerUserID != "" && r.OwnerUserID() != filter.OwnerUserID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeClient) Create(ctx context.Context, payload map[string]interface{}) (models.Resource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if name, ok := payload["name"].(string); ok {
		if err := f.failCreates[name]; err != nil {
			return nil, err
		}
	}
	f.nextID++
	created := models.Resource{}
	for k, v := range payload {
		created[k] = v
	}
	created["id"] = fmt.Sprintf("new_%d", f.nextID)
	f.resources = append(f.resources, created)
	return created, nil
}

func (f *fakeClient) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, r := range f.resources {
		if r.ID() == id {
			f.resources = append(f.resources[:i], f.resources[i+1:]...)
			break
		}
	}
	f.deleted = append(f.deleted, id)
	return nil
}

// res builds a test resource.
func res(id, name, tenantID, ownerUserID string) models.Resource {
	return models.Resource{
		"id":            id,
		"name":          name,
		"tenant_id":     tenantID,
		"owner_user_id": ownerUserID,
		"created_at":    "2024-01-01T00:00:00Z",
		"updated_at":    "2024-01-02T00:00:00Z",
	}
}

func discardLog(string) {}
