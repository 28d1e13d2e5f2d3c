package api

import (
	"sync"

	"github.com/dlemos/tenantshift/internal/models"
)

// ResultStore keeps completed detection and migration results keyed by the
// job that produced them.
type ResultStore struct {
	mu         sync.RWMutex
	detections map[string]*models.OrphanReport
	reports    map[string]*models.MigrationReport
}

func NewResultStore() *ResultStore {
	return &ResultStore{
		detections: make(map[string]*models.OrphanReport),
		reports:    make(map[string]*models.MigrationReport),
	}
}

func (rs *ResultStore) StoreDetection(jobID string, report *models.OrphanReport) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.detections[jobID] = report
}

func (rs *ResultStore) Detection(jobID string) *models.OrphanReport {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.detections[jobID]
}

func (rs *ResultStore) StoreReport(jobID string, report *models.MigrationReport) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.reports[jobID] = report
}

func (rs *ResultStore) Report(jobID string) *models.MigrationReport {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.reports[jobID]
}
