package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/dlemos/tenantshift/internal/models"
)

func newTestServer() (*Server, http.Handler) {
	s := &Server{
		Connections: models.NewConnectionStore(),
		Jobs:        models.NewJobStore(),
		Results:     NewResultStore(),
		Logger:      zap.NewNop(),
	}
	return s, NewRouter(s)
}

func TestMigrationRunHandler_RejectsMissingFields(t *testing.T) {
	s, router := newTestServer()
	conn := &models.Connection{Name: "store", Scheme: "http", Host: "localhost", Port: 8080}
	s.Connections.Create(conn)

	cases := []string{
		fmt.Sprintf(`{"connection_id":%q}`, conn.ID),
		fmt.Sprintf(`{"connection_id":%q,"user_id":"u1"}`, conn.ID),
		fmt.Sprintf(`{"connection_id":%q,"user_id":"u1","source_tenant_id":"t1"}`, conn.ID),
	}
	for _, body := range cases {
		req := httptest.NewRequest("POST", "/api/migrate/run", strings.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("POST /api/migrate/run %s returned %d, want 400", body, w.Code)
		}
	}
	if jobs := s.Jobs.List(); len(jobs) != 0 {
		t.Errorf("rejected requests created %d jobs, want 0", len(jobs))
	}
}

func TestGetJob_ReturnsSnapshotWhileRunning(t *testing.T) {
	s, router := newTestServer()
	job := s.Jobs.Create("detect", "conn_1")

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-done:
				return
			default:
				job.AppendLog(fmt.Sprintf("line %d", i))
			}
		}
	}()

	for i := 0; i < 50; i++ {
		req := httptest.NewRequest("GET", "/api/jobs/"+job.ID, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("GET /api/jobs/{id} returned %d, want 200", w.Code)
		}
		var snap models.JobSnapshot
		if err := json.NewDecoder(w.Body).Decode(&snap); err != nil {
			t.Fatalf("decode job response: %v", err)
		}
		if snap.ID != job.ID || snap.Status != "running" {
			t.Fatalf("job response = %q/%q, want %q/running", snap.ID, snap.Status, job.ID)
		}
	}
	close(done)
	wg.Wait()
}

func TestListJobs_ReturnsSnapshots(t *testing.T) {
	s, router := newTestServer()
	job := s.Jobs.Create("migrate", "conn_1")
	job.AppendLog("CREATED: products/p1")
	job.Complete()

	req := httptest.NewRequest("GET", "/api/jobs", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/jobs returned %d, want 200", w.Code)
	}
	var snaps []models.JobSnapshot
	if err := json.NewDecoder(w.Body).Decode(&snaps); err != nil {
		t.Fatalf("decode jobs response: %v", err)
	}
	if len(snaps) != 1 || snaps[0].Status != "completed" || len(snaps[0].Output) != 1 {
		t.Errorf("jobs response = %+v, want one completed job with one log line", snaps)
	}
}

func TestUpdateConnection_KeepsDiscoveredFields(t *testing.T) {
	s, router := newTestServer()
	conn := &models.Connection{Name: "store", Scheme: "http", Host: "localhost", Port: 8080}
	s.Connections.Create(conn)
	s.Connections.SetVersion(conn.ID, "2.4.1")
	s.Connections.SetHealth(conn.ID, "ok", "", "ok", "")

	body := `{"name":"store renamed","scheme":"http","host":"localhost","port":9090,"api_key":"k2"}`
	req := httptest.NewRequest("PUT", "/api/connections/"+conn.ID, strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("PUT /api/connections/{id} returned %d, want 200", w.Code)
	}

	updated := s.Connections.Get(conn.ID)
	if updated.Name != "store renamed" || updated.Port != 9090 || updated.APIKey != "k2" {
		t.Errorf("update did not apply settings: %+v", updated)
	}
	if updated.Version != "2.4.1" {
		t.Errorf("Version = %q after update, want discovered 2.4.1", updated.Version)
	}
	if updated.PingStatus != "ok" || updated.AuthStatus != "ok" {
		t.Errorf("health = %q/%q after update, want ok/ok", updated.PingStatus, updated.AuthStatus)
	}
}

func TestUpdateConnection_UnknownID(t *testing.T) {
	_, router := newTestServer()
	req := httptest.NewRequest("PUT", "/api/connections/missing", strings.NewReader(`{"host":"localhost"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("PUT unknown connection returned %d, want 404", w.Code)
	}
}
