package cron

import (
	"context"
	"testing"
	"time"
)

type stubJob struct {
	name string
	runs int
}

func (s *stubJob) Name() string { return s.name }
func (s *stubJob) Run(context.Context) error {
	s.runs++
	return nil
}

func TestRegistryStoresJobs(t *testing.T) {
	registry := NewRegistry()
	jobA := &stubJob{name: "a"}
	jobB := &stubJob{name: "b"}
	registry.Register(jobA)
	registry.Register(jobB)
	jobs := registry.Jobs()
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0] != jobA || jobs[1] != jobB {
		t.Fatalf("jobs returned out of order")
	}
	// ensure caller cannot mutate internal slice
	jobs[0] = nil
	if registry.Jobs()[0] == nil {
		t.Fatalf("internal slice leaked")
	}
}

func TestRegisterEveryThrottlesRuns(t *testing.T) {
	registry := NewRegistry()
	job := &stubJob{name: "retention"}
	registry.RegisterEvery(job, time.Hour)

	wrapped, ok := registry.Jobs()[0].(*throttledJob)
	if !ok {
		t.Fatalf("expected throttled job, got %T", registry.Jobs()[0])
	}
	if wrapped.Name() != "retention" {
		t.Fatalf("unexpected name %q", wrapped.Name())
	}

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	wrapped.now = func() time.Time { return now }

	if err := wrapped.Run(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := wrapped.Run(context.Background()); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if job.runs != 1 {
		t.Fatalf("expected 1 run inside the interval, got %d", job.runs)
	}

	now = now.Add(61 * time.Minute)
	if err := wrapped.Run(context.Background()); err != nil {
		t.Fatalf("third run: %v", err)
	}
	if job.runs != 2 {
		t.Fatalf("expected 2 runs after the interval elapsed, got %d", job.runs)
	}
}
