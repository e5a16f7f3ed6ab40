package cron

import (
	"context"
	"time"
)

// Job represents a scheduled task that runs inside the cron worker.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Registry tracks registered cron jobs.
type Registry struct {
	jobs []Job
}

// NewRegistry builds a registry preloaded with the provided jobs.
func NewRegistry(jobs ...Job) *Registry {
	registry := &Registry{}
	for _, job := range jobs {
		if job == nil {
			continue
		}
		registry.jobs = append(registry.jobs, job)
	}
	return registry
}

// Register adds a job to the registry.
func (r *Registry) Register(job Job) {
	if job == nil {
		return
	}
	r.jobs = append(r.jobs, job)
}

// RegisterEvery adds a job that runs at most once per the given interval,
// even though the worker cycle ticks more often for the expiry sweeper.
func (r *Registry) RegisterEvery(job Job, every time.Duration) {
	if job == nil {
		return
	}
	if every <= 0 {
		r.Register(job)
		return
	}
	r.jobs = append(r.jobs, &throttledJob{job: job, every: every, now: time.Now})
}

// Jobs returns the registered jobs in the order they were added.
func (r *Registry) Jobs() []Job {
	jobs := make([]Job, len(r.jobs))
	copy(jobs, r.jobs)
	return jobs
}

type throttledJob struct {
	job     Job
	every   time.Duration
	lastRun time.Time
	now     func() time.Time
}

func (t *throttledJob) Name() string { return t.job.Name() }

func (t *throttledJob) Run(ctx context.Context) error {
	now := t.now()
	if !t.lastRun.IsZero() && now.Sub(t.lastRun) < t.every {
		return nil
	}
	t.lastRun = now
	return t.job.Run(ctx)
}
