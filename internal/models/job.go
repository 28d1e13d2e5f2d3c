package models

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Job represents an async operation (detect, migrate, seed, export).
type Job struct {
	ID           string     `json:"id"`
	Type         string     `json:"type"` // "detect", "migrate", "seed", "export"
	ConnectionID string     `json:"connection_id"`
	Status       string     `json:"status"` // "running", "completed", "failed", "cancelled"
	StartedAt    time.Time  `json:"started_at"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
	Error        string     `json:"error,omitempty"`
	Output       []string   `json:"output"`

	mu     sync.Mutex
	cancel context.CancelFunc
}

// AppendLog adds a log line to the job output.
func (j *Job) AppendLog(line string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Output = append(j.Output, line)
}

// JobSnapshot is a point-in-time copy of a job's fields. Handlers serialize
// snapshots instead of the live Job, which the run goroutine keeps mutating.
type JobSnapshot struct {
	ID           string     `json:"id"`
	Type         string     `json:"type"`
	ConnectionID string     `json:"connection_id"`
	Status       string     `json:"status"`
	StartedAt    time.Time  `json:"started_at"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
	Error        string     `json:"error,omitempty"`
	Output       []string   `json:"output"`
}

// Snapshot copies the job's fields under lock.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	output := make([]string, len(j.Output))
	copy(output, j.Output)
	return JobSnapshot{
		ID:           j.ID,
		Type:         j.Type,
		ConnectionID: j.ConnectionID,
		Status:       j.Status,
		StartedAt:    j.StartedAt,
		FinishedAt:   j.FinishedAt,
		Error:        j.Error,
		Output:       output,
	}
}

// LogsSince returns log lines starting from the given index.
func (j *Job) LogsSince(offset int) []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	if offset >= len(j.Output) {
		return nil
	}
	lines := make([]string, len(j.Output)-offset)
	copy(lines, j.Output[offset:])
	return lines
}

// SetCancel attaches the context cancel function for a running job.
func (j *Job) SetCancel(cancel context.CancelFunc) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.cancel = cancel
}

// CurrentStatus returns the job status under lock.
func (j *Job) CurrentStatus() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.Status
}

// Complete marks the job as completed. No-op if the job already settled.
func (j *Job) Complete() {
	j.settle("completed", "")
}

// Fail marks the job as failed with an error message.
func (j *Job) Fail(err string) {
	j.settle("failed", err)
}

// Cancel stops a running job. The run's context is cancelled; work not yet
// started is abandoned, completed work stays in the job output.
func (j *Job) Cancel() {
	j.mu.Lock()
	cancel := j.cancel
	j.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	j.settle("cancelled", "")
}

func (j *Job) settle(status, errMsg string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.Status != "running" {
		return
	}
	j.Status = status
	j.Error = errMsg
	now := time.Now()
	j.FinishedAt = &now
}

// JobStore is an in-memory thread-safe store for jobs.
type JobStore struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

// NewJobStore creates an empty job store.
func NewJobStore() *JobStore {
	return &JobStore{jobs: make(map[string]*Job)}
}

// Create adds a new job, assigning it a UUID.
func (s *JobStore) Create(jobType, connectionID string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	j := &Job{
		ID:           uuid.New().String(),
		Type:         jobType,
		ConnectionID: connectionID,
		Status:       "running",
		StartedAt:    time.Now(),
		Output:       []string{},
	}
	s.jobs[j.ID] = j
	return j
}

// Get returns a job by ID.
func (s *JobStore) Get(id string) *Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.jobs[id]
}

// List returns all jobs, most recent first.
func (s *JobStore) List() []*Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		result = append(result, j)
	}
	// Sort by started_at descending
	for i := 0; i < len(result); i++ {
		for j := i + 1; j < len(result); j++ {
			if result[j].StartedAt.After(result[i].StartedAt) {
				result[i], result[j] = result[j], result[i]
			}
		}
	}
	return result
}
