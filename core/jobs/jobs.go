package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go-destinations-api/core/logger"
)

// Result is the outcome of one job execution.
type Result struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// Job is a single unit of background work.
type Job interface {
	Name() string
	Execute(ctx context.Context) *Result
}

// Status reports a runner's tracking information.
type Status struct {
	Name     string     `json:"name"`
	LastRun  *time.Time `json:"last_run"`
	RunCount int        `json:"run_count"`
}

// Runner wraps a Job with run tracking and panic capture. It replaces an
// inheritance-style base job with a plain wrapper; any Job gets the same
// bookkeeping.
type Runner struct {
	job Job

	mu       sync.Mutex
	lastRun  *time.Time
	runCount int
}

func NewRunner(job Job) *Runner {
	return &Runner{job: job}
}

// Run executes the job once, recording last run time and run count even
// when the job fails or panics.
func (r *Runner) Run(ctx context.Context) (result *Result) {
	defer func() {
		now := time.Now()
		r.mu.Lock()
		r.lastRun = &now
		r.runCount++
		r.mu.Unlock()

		if rec := recover(); rec != nil {
			logger.Error("Jobs:Runner:Panic", "job", r.job.Name(), "panic", fmt.Sprint(rec))
			result = &Result{
				Success: false,
				Message: fmt.Sprintf("Job %s failed: %v", r.job.Name(), rec),
			}
		}
	}()

	result = r.job.Execute(ctx)
	if result == nil {
		result = &Result{Success: true, Message: "done"}
	}
	return result
}

func (r *Runner) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Status{
		Name:     r.job.Name(),
		LastRun:  r.lastRun,
		RunCount: r.runCount,
	}
}
