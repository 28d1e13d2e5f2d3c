package platform

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dlemos/tenantshift/internal/models"
)

type nopClient struct{}

func (nopClient) List(context.Context, Filter) ([]models.Resource, error) { return nil, nil }
func (nopClient) Create(context.Context, map[string]interface{}) (models.Resource, error) {
	return nil, nil
}
func (nopClient) Delete(context.Context, string) error { return nil }

func TestRegistry_Order(t *testing.T) {
	reg := NewRegistry()
	reg.Register("products", nopClient{})
	reg.Register("customers", nopClient{})
	reg.Register("orders", nopClient{})
	// Re-registering keeps the original position
	reg.Register("products", nopClient{})

	kinds := reg.Kinds()
	want := []string{"products", "customers", "orders"}
	if len(kinds) != len(want) {
		t.Fatalf("Kinds() = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("Kinds()[%d] = %q, want %q", i, kinds[i], want[i])
		}
	}
}

func TestRegistry_UnregisteredKind(t *testing.T) {
	reg := NewRegistry()
	reg.Register("products", nopClient{})

	if _, err := reg.Client("products"); err != nil {
		t.Fatalf("Client(products) returned error: %v", err)
	}
	if _, err := reg.Client("invoices"); err == nil {
		t.Fatal("Client(invoices) should return error for unregistered kind")
	}
}

func TestAPIResourceClient_List_FilterParams(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("tenant_id") != "ten_1" {
			t.Errorf("tenant_id = %q, want ten_1", q.Get("tenant_id"))
		}
		if q.Get("owner_user_id") != "usr_1" {
			t.Errorf("owner_user_id = %q, want usr_1", q.Get("owner_user_id"))
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"count": 1,
			"next":  nil,
			"results": []interface{}{
				map[string]interface{}{"id": "prod_1", "tenant_id": "ten_1", "owner_user_id": "usr_1"},
			},
		})
	}))
	defer ts.Close()

	c := NewAPIResourceClient(newTestClient(ts), "/api/v1/products/")
	resources, err := c.List(context.Background(), Filter{TenantID: "ten_1", OwnerUserID: "usr_1"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(resources) != 1 || resources[0].ID() != "prod_1" {
		t.Errorf("List = %v, want one resource prod_1", resources)
	}
}

func TestAPIResourceClient_Create(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		json.NewDecoder(r.Body).Decode(&payload)
		if payload["tenant_id"] != "ten_2" {
			t.Errorf("payload tenant_id = %v, want ten_2", payload["tenant_id"])
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"prod_new","tenant_id":"ten_2"}`))
	}))
	defer ts.Close()

	c := NewAPIResourceClient(newTestClient(ts), "/api/v1/products/")
	res, err := c.Create(context.Background(), map[string]interface{}{"name": "Widget", "tenant_id": "ten_2"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if res.ID() != "prod_new" {
		t.Errorf("created ID = %q, want prod_new", res.ID())
	}
}

func TestAPIResourceClient_Delete_Path(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	c := NewAPIResourceClient(newTestClient(ts), "/api/v1/products/")
	if err := c.Delete(context.Background(), "prod_1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if gotPath != "/api/v1/products/prod_1/" {
		t.Errorf("DELETE path = %q, want /api/v1/products/prod_1/", gotPath)
	}
}

func TestDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry(&Client{})
	kinds := reg.Kinds()
	if len(kinds) != len(DefaultKinds) {
		t.Fatalf("DefaultRegistry has %d kinds, want %d", len(kinds), len(DefaultKinds))
	}
	for i, kind := range DefaultKinds {
		if kinds[i] != kind.Name {
			t.Errorf("kind[%d] = %q, want %q", i, kinds[i], kind.Name)
		}
	}
}
