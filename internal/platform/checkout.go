package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/dlemos/tenantshift/internal/models"
)

const apiPrefix = "/api/v1/"

// DefaultKinds lists the resource kinds browsable and migratable on the
// checkout platform, in dependency order (customers before orders, since
// orders reference customers).
var DefaultKinds = []models.ResourceKind{
	{Name: "products", Label: "Products", APIPath: apiPrefix + "products/"},
	{Name: "customers", Label: "Customers", APIPath: apiPrefix + "customers/"},
	{Name: "orders", Label: "Orders", APIPath: apiPrefix + "orders/"},
}

// APIResourceClient implements ResourceClient for one kind against the
// checkout platform REST API.
type APIResourceClient struct {
	client  *Client
	apiPath string
}

// NewAPIResourceClient creates a per-kind client for the given API path.
func NewAPIResourceClient(client *Client, apiPath string) *APIResourceClient {
	return &APIResourceClient{client: client, apiPath: apiPath}
}

// List fetches all resources matching the filter, following pagination.
func (c *APIResourceClient) List(ctx context.Context, filter Filter) ([]models.Resource, error) {
	params := url.Values{}
	if filter.TenantID != "" {
		params.Set("tenant_id", filter.TenantID)
	}
	if filter.OwnerUserID != "" {
		params.Set("owner_user_id", filter.OwnerUserID)
	}
	return c.client.GetAll(ctx, c.apiPath, params)
}

// Create posts a new resource and returns the platform's representation,
// including the newly assigned ID.
func (c *APIResourceClient) Create(ctx context.Context, payload map[string]interface{}) (models.Resource, error) {
	body, _, err := c.client.Post(ctx, c.apiPath, payload)
	if err != nil {
		return nil, err
	}
	var res models.Resource
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("parsing created resource: %w", err)
	}
	return res, nil
}

// Delete removes a resource by ID. A 404 is treated as already gone.
func (c *APIResourceClient) Delete(ctx context.Context, id string) error {
	return c.client.Delete(ctx, c.apiPath+id+"/")
}

// DefaultRegistry builds a registry with every default kind wired to the
// given platform client.
func DefaultRegistry(client *Client) *Registry {
	reg := NewRegistry()
	for _, kind := range DefaultKinds {
		reg.Register(kind.Name, NewAPIResourceClient(client, kind.APIPath))
	}
	return reg
}

// Ping tests connectivity against the platform's unauthenticated ping
// endpoint.
func Ping(ctx context.Context, client *Client) error {
	return client.Ping(ctx, apiPrefix+"ping/")
}

// CheckAuth verifies the configured API key against an authenticated
// endpoint.
func CheckAuth(ctx context.Context, client *Client) error {
	_, err := client.Get(ctx, apiPrefix+"me/", nil)
	return err
}
