package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/dlemos/tenantshift/internal/platform"
)

// RunSeed creates sample resources for a user+tenant on a connection.
func (s *Server) RunSeed(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	conn := s.Connections.Get(id)
	if conn == nil {
		writeError(w, http.StatusNotFound, "connection not found")
		return
	}

	var req struct {
		TenantID string `json:"tenant_id"`
		UserID   string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.TenantID == "" || req.UserID == "" {
		writeError(w, http.StatusBadRequest, "tenant_id and user_id are required")
		return
	}

	reg := s.registryFor(conn)
	job := s.Jobs.Create("seed", id)
	ctx, cancel := context.WithCancel(context.Background())
	job.SetCancel(cancel)

	go func() {
		defer cancel()
		job.AppendLog(fmt.Sprintf("Seeding %s (%s) tenant %s", conn.Name, conn.BaseURL(), req.TenantID))
		if err := platform.Seed(ctx, reg, req.TenantID, req.UserID, job.AppendLog); err != nil {
			job.AppendLog("ERROR: " + err.Error())
			job.Fail(err.Error())
			return
		}
		job.Complete()
	}()

	writeJSON(w, http.StatusAccepted, map[string]string{"job_id": job.ID})
}

// RunExport dumps a tenant's resources to JSON files as a backup.
func (s *Server) RunExport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	conn := s.Connections.Get(id)
	if conn == nil {
		writeError(w, http.StatusNotFound, "connection not found")
		return
	}

	var req struct {
		TenantID string `json:"tenant_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.TenantID == "" {
		writeError(w, http.StatusBadRequest, "tenant_id is required")
		return
	}

	outputDir := filepath.Join(os.TempDir(), "tenantshift-export", id, req.TenantID)

	reg := s.registryFor(conn)
	job := s.Jobs.Create("export", id)
	ctx, cancel := context.WithCancel(context.Background())
	job.SetCancel(cancel)

	go func() {
		defer cancel()
		job.AppendLog(fmt.Sprintf("Exporting tenant %s from %s", req.TenantID, conn.BaseURL()))
		job.AppendLog("Exporting to: " + outputDir)
		if err := platform.ExportTenant(ctx, reg, req.TenantID, outputDir, job.AppendLog); err != nil {
			job.AppendLog("ERROR: " + err.Error())
			job.Fail(err.Error())
			return
		}
		job.Complete()
	}()

	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"job_id":     job.ID,
		"output_dir": outputDir,
	})
}
