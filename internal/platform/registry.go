package platform

import (
	"context"
	"fmt"

	"github.com/dlemos/tenantshift/internal/models"
)

// Filter narrows a list call to one tenant and, optionally, one owning user.
type Filter struct {
	TenantID    string
	OwnerUserID string
}

// ResourceClient is the per-kind capability the migration engine is
// polymorphic over. Implementations talk to the checkout platform (or to a
// test double); any call may fail with a transport-level error.
type ResourceClient interface {
	List(ctx context.Context, filter Filter) ([]models.Resource, error)
	Create(ctx context.Context, payload map[string]interface{}) (models.Resource, error)
	Delete(ctx context.Context, id string) error
}

// Registry maps resource kind names to their clients. It is explicit
// configuration passed into the engine at construction — never ambient
// global state — so tests can register doubles per kind. Registration
// order is preserved and drives plan ordering.
type Registry struct {
	order   []string
	clients map[string]ResourceClient
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{clients: make(map[string]ResourceClient)}
}

// Register adds a kind. Registering the same kind twice replaces the client
// and keeps the original position.
func (r *Registry) Register(kind string, client ResourceClient) {
	if _, ok := r.clients[kind]; !ok {
		r.order = append(r.order, kind)
	}
	r.clients[kind] = client
}

// Client returns the client for a kind. An unregistered kind is a
// configuration error, not a runtime condition.
func (r *Registry) Client(kind string) (ResourceClient, error) {
	c, ok := r.clients[kind]
	if !ok {
		return nil, fmt.Errorf("resource kind %q is not registered", kind)
	}
	return c, nil
}

// Kinds returns all registered kind names in registration order.
func (r *Registry) Kinds() []string {
	kinds := make([]string, len(r.order))
	copy(kinds, r.order)
	return kinds
}
