package api

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"leadscout/internal/company"
	"leadscout/pkg/types"
)

// CrawlFunc runs a crawl batch and returns one record per target. Production
// wires this to crawler.Fleet.Run; tests substitute a stub.
type CrawlFunc func(ctx context.Context, targets []types.CrawlTarget) []types.CompanyRecord

// JobStatus is the lifecycle state of a crawl job.
type JobStatus string

const (
	StatusRunning   JobStatus = "running"
	StatusCompleted JobStatus = "completed"
	StatusCancelled JobStatus = "cancelled"
)

// ErrNoTargets rejects job submissions with nothing to crawl.
var ErrNoTargets = errors.New("job has no targets")

// Job is a snapshot of one crawl batch.
type Job struct {
	ID         string                `json:"id"`
	Status     JobStatus             `json:"status"`
	CreatedAt  time.Time             `json:"created_at"`
	FinishedAt *time.Time            `json:"finished_at,omitempty"`
	Targets    []types.CrawlTarget   `json:"targets"`
	Records    []types.CompanyRecord `json:"records,omitempty"`
}

type jobState struct {
	job    Job
	cancel context.CancelFunc
}

// JobManager tracks crawl jobs in memory and runs each in its own goroutine.
type JobManager struct {
	baseCtx context.Context
	crawl   CrawlFunc
	logger  *slog.Logger

	mu    sync.RWMutex
	jobs  map[string]*jobState
	order []string
}

// NewJobManager builds a manager whose jobs stop when baseCtx is cancelled.
func NewJobManager(baseCtx context.Context, crawl CrawlFunc, logger *slog.Logger) *JobManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &JobManager{
		baseCtx: baseCtx,
		crawl:   crawl,
		logger:  logger,
		jobs:    make(map[string]*jobState),
	}
}

// Start launches a crawl job and returns its initial snapshot.
func (m *JobManager) Start(targets []types.CrawlTarget) (Job, error) {
	if len(targets) == 0 {
		return Job{}, ErrNoTargets
	}

	created := time.Now().UTC()
	id := NewJobID(targets[0].URL, created)
	ctx, cancel := context.WithCancel(m.baseCtx)

	state := &jobState{
		job: Job{
			ID:        id,
			Status:    StatusRunning,
			CreatedAt: created,
			Targets:   append([]types.CrawlTarget(nil), targets...),
		},
		cancel: cancel,
	}

	m.mu.Lock()
	m.jobs[id] = state
	m.order = append(m.order, id)
	m.mu.Unlock()

	go m.run(ctx, id, state.job.Targets)

	m.logger.Info("job started", "job_id", id, "targets", len(targets))
	return state.job, nil
}

func (m *JobManager) run(ctx context.Context, id string, targets []types.CrawlTarget) {
	records := m.crawl(ctx, targets)
	company.Rank(records)

	status := StatusCompleted
	if ctx.Err() != nil {
		status = StatusCancelled
	}
	finished := time.Now().UTC()

	m.mu.Lock()
	if state, ok := m.jobs[id]; ok {
		state.job.Records = records
		state.job.Status = status
		state.job.FinishedAt = &finished
	}
	m.mu.Unlock()

	m.logger.Info("job finished", "job_id", id, "status", string(status), "records", len(records))
}

// Get returns a snapshot of the job.
func (m *JobManager) Get(id string) (Job, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.jobs[id]
	if !ok {
		return Job{}, false
	}
	return snapshot(state.job), true
}

// List returns snapshots of all jobs in submission order, without records.
func (m *JobManager) List() []Job {
	m.mu.RLock()
	defer m.mu.RUnlock()
	jobs := make([]Job, 0, len(m.order))
	for _, id := range m.order {
		if state, ok := m.jobs[id]; ok {
			summary := snapshot(state.job)
			summary.Records = nil
			jobs = append(jobs, summary)
		}
	}
	return jobs
}

// Cancel stops a running job. It reports whether the job exists.
func (m *JobManager) Cancel(id string) bool {
	m.mu.RLock()
	state, ok := m.jobs[id]
	m.mu.RUnlock()
	if !ok {
		return false
	}
	state.cancel()
	return true
}

func snapshot(job Job) Job {
	out := job
	out.Targets = append([]types.CrawlTarget(nil), job.Targets...)
	out.Records = append([]types.CompanyRecord(nil), job.Records...)
	return out
}
