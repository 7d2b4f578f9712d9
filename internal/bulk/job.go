package bulk

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

type JobState string

const (
	JobQueued    JobState = "queued"
	JobRunning   JobState = "running"
	JobCompleted JobState = "completed"
	JobFailed    JobState = "failed"
)

// JobStatus is the persisted snapshot of an async batch job.
type JobStatus struct {
	ID        string     `json:"id" bson:"_id"`
	IssuerID  string     `json:"issuer_id" bson:"issuer_id"`
	State     JobState   `json:"state" bson:"state"`
	Total     int        `json:"total" bson:"total"`
	Created   int        `json:"created" bson:"created"`
	Errors    []RowError `json:"errors" bson:"errors"`
	Error     string     `json:"error,omitempty" bson:"error,omitempty"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
}

// JobRecorder persists job snapshots so status survives the process
// and can be polled from any instance.
type JobRecorder interface {
	Save(ctx context.Context, status *JobStatus) error
}

// Job is one in-flight async batch. Callers either poll Snapshot or
// block on Wait.
type Job struct {
	id       string
	issuerID string

	mu     sync.Mutex
	state  JobState
	report *Report
	err    error

	created time.Time
	updated time.Time
	done    chan struct{}
}

func (j *Job) ID() string { return j.id }

// Snapshot returns the job's current persisted shape.
func (j *Job) Snapshot() *JobStatus {
	j.mu.Lock()
	defer j.mu.Unlock()

	status := &JobStatus{
		ID:        j.id,
		IssuerID:  j.issuerID,
		State:     j.state,
		CreatedAt: j.created,
		UpdatedAt: j.updated,
	}
	if j.report != nil {
		status.Total = j.report.Total
		status.Created = j.report.Created
		status.Errors = j.report.Errors
	}
	if j.err != nil {
		status.Error = j.err.Error()
	}
	return status
}

// Wait blocks until the job finishes or the context expires.
func (j *Job) Wait(ctx context.Context) (*Report, error) {
	select {
	case <-j.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	return j.report, j.err
}

func (j *Job) transition(state JobState, report *Report, err error) {
	j.mu.Lock()
	j.state = state
	j.report = report
	j.err = err
	j.updated = time.Now()
	j.mu.Unlock()

	if state == JobCompleted || state == JobFailed {
		close(j.done)
	}
}

// StartAsync queues the batch and returns immediately. The run
// detaches from the caller's request context so an early client
// disconnect cannot abandon a half-processed batch.
func (c *Coordinator) StartAsync(ctx context.Context, req *Request, recorder JobRecorder) *Job {
	now := time.Now()
	job := &Job{
		id:       uuid.New().String(),
		issuerID: req.Issuer.ID,
		state:    JobQueued,
		created:  now,
		updated:  now,
		done:     make(chan struct{}),
	}
	record(ctx, recorder, job)

	runCtx := context.WithoutCancel(ctx)
	go func() {
		job.transition(JobRunning, nil, nil)
		record(runCtx, recorder, job)

		report, err := c.Process(runCtx, req)
		if err != nil {
			job.transition(JobFailed, report, err)
		} else {
			job.transition(JobCompleted, report, nil)
		}
		record(runCtx, recorder, job)
	}()

	return job
}

func record(ctx context.Context, recorder JobRecorder, job *Job) {
	if recorder == nil {
		return
	}
	if err := recorder.Save(ctx, job.Snapshot()); err != nil {
		slog.Warn("failed to persist batch job status", "job_id", job.ID(), "error", err)
	}
}
