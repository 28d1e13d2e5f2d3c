package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dlemos/tenantshift/internal/migration"
)

// DetectHandler starts an async orphan detection job against a connection.
func (s *Server) DetectHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConnectionID   string `json:"connection_id"`
		UserID         string `json:"user_id"`
		SourceTenantID string `json:"source_tenant_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.UserID == "" || req.SourceTenantID == "" {
		writeError(w, http.StatusBadRequest, "user_id and source_tenant_id are required")
		return
	}

	conn := s.Connections.Get(req.ConnectionID)
	if conn == nil {
		writeError(w, http.StatusNotFound, "connection not found")
		return
	}

	reg := s.registryFor(conn)
	job := s.Jobs.Create("detect", req.ConnectionID)
	ctx, cancel := context.WithCancel(context.Background())
	job.SetCancel(cancel)

	go func() {
		defer cancel()
		report := migration.Detect(ctx, reg, req.UserID, req.SourceTenantID, job.AppendLog)
		s.Results.StoreDetection(job.ID, report)
		job.Complete()
	}()

	writeJSON(w, http.StatusAccepted, map[string]string{"job_id": job.ID})
}

// GetDetection returns the orphan report for a completed detection job.
func (s *Server) GetDetection(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobId")

	job := s.Jobs.Get(jobID)
	if job == nil {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}

	if job.CurrentStatus() == "running" {
		writeJSON(w, http.StatusConflict, map[string]string{
			"status":  "running",
			"message": "detection is still in progress",
		})
		return
	}

	report := s.Results.Detection(jobID)
	if report == nil {
		writeError(w, http.StatusNotFound, "detection result not found")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// MigrationRunHandler starts an async migration run.
func (s *Server) MigrationRunHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConnectionID        string `json:"connection_id"`
		UserID              string `json:"user_id"`
		SourceTenantID      string `json:"source_tenant_id"`
		DestinationTenantID string `json:"destination_tenant_id"`
		AllowCleanup        bool   `json:"allow_cleanup"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.UserID == "" || req.SourceTenantID == "" || req.DestinationTenantID == "" {
		writeError(w, http.StatusBadRequest, "user_id, source_tenant_id and destination_tenant_id are required")
		return
	}

	conn := s.Connections.Get(req.ConnectionID)
	if conn == nil {
		writeError(w, http.StatusNotFound, "connection not found")
		return
	}

	opts := migration.Options{
		UserID:              req.UserID,
		SourceTenantID:      req.SourceTenantID,
		DestinationTenantID: req.DestinationTenantID,
		AllowCleanup:        req.AllowCleanup,
	}

	reg := s.registryFor(conn)
	job := s.Jobs.Create("migrate", req.ConnectionID)
	ctx, cancel := context.WithCancel(context.Background())
	job.SetCancel(cancel)

	go func() {
		defer cancel()
		report, err := migration.Migrate(ctx, reg, opts, job.AppendLog)
		if err != nil {
			job.AppendLog("ERROR: " + err.Error())
			job.Fail(err.Error())
			return
		}
		s.Results.StoreReport(job.ID, report)
		job.Complete()
	}()

	writeJSON(w, http.StatusAccepted, map[string]string{"job_id": job.ID})
}

// GetMigrationReport returns the report for a completed migration job.
func (s *Server) GetMigrationReport(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobId")

	job := s.Jobs.Get(jobID)
	if job == nil {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}

	snap := job.Snapshot()
	if snap.Status == "running" {
		writeJSON(w, http.StatusConflict, map[string]string{
			"status":  "running",
			"message": "migration is still in progress",
		})
		return
	}

	if snap.Status == "failed" {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "failed",
			"error":  snap.Error,
		})
		return
	}

	report := s.Results.Report(jobID)
	if report == nil {
		writeError(w, http.StatusNotFound, "migration report not found")
		return
	}
	writeJSON(w, http.StatusOK, report)
}
