package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dlemos/tenantshift/internal/migration"
	"github.com/dlemos/tenantshift/internal/models"
	"github.com/dlemos/tenantshift/internal/platform"
)

func (s *Server) ListResourceKinds(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	conn := s.Connections.Get(id)
	if conn == nil {
		writeError(w, http.StatusNotFound, "connection not found")
		return
	}
	writeJSON(w, http.StatusOK, platform.DefaultKinds)
}

// ListResourcesOfKind lists one kind on a connection, optionally filtered
// by ?tenant_id= and ?owner_user_id=.
func (s *Server) ListResourcesOfKind(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	kind := chi.URLParam(r, "kind")
	conn := s.Connections.Get(id)
	if conn == nil {
		writeError(w, http.StatusNotFound, "connection not found")
		return
	}

	client, err := s.registryFor(conn).Client(kind)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	filter := platform.Filter{
		TenantID:    r.URL.Query().Get("tenant_id"),
		OwnerUserID: r.URL.Query().Get("owner_user_id"),
	}
	resources, err := client.List(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	// Ensure we return [] not null for empty results
	if resources == nil {
		resources = []models.Resource{}
	}
	writeJSON(w, http.StatusOK, resources)
}

// GetExclusions returns the default per-kind skip lists used during detection.
func (s *Server) GetExclusions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"detection": migration.DefaultExclusions(),
	})
}
