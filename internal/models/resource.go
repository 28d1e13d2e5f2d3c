package models

// Resource represents a generic checkout platform object (product, customer, order).
type Resource map[string]interface{}

// ID returns the resource's stable identifier.
func (r Resource) ID() string {
	return stringValue(r, "id")
}

// Name returns the resource's display name, if it has one.
func (r Resource) Name() string {
	if n := stringValue(r, "name"); n != "" {
		return n
	}
	return stringValue(r, "email")
}

// TenantID returns the tenant the resource is attributed to.
func (r Resource) TenantID() string {
	return stringValue(r, "tenant_id")
}

// OwnerUserID returns the user who created the resource.
func (r Resource) OwnerUserID() string {
	return stringValue(r, "owner_user_id")
}

// MigratedFrom returns the source resource ID this resource was migrated
// from, or "" if it was not created by a migration run.
func (r Resource) MigratedFrom() string {
	return stringValue(r, "migrated_from")
}

func stringValue(obj map[string]interface{}, field string) string {
	if v, ok := obj[field].(string); ok {
		return v
	}
	return ""
}

// ResourceKind describes a browsable resource kind on the platform.
type ResourceKind struct {
	Name    string `json:"name"`     // "products", "customers", etc.
	Label   string `json:"label"`    // Human-readable: "Products"
	APIPath string `json:"api_path"` // "/api/v1/products/"
}
