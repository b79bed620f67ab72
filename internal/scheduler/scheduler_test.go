package scheduler

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"yieldvault/internal/clock"
)

type fakePurger struct {
	cutoffs []time.Time
	deleted int64
	err     error
}

func (f *fakePurger) PurgeOlderThan(cutoff time.Time) (int64, error) {
	f.cutoffs = append(f.cutoffs, cutoff)
	return f.deleted, f.err
}

func TestLogRetentionJob_Run(t *testing.T) {
	now := time.Date(2025, 6, 30, 3, 0, 0, 0, time.UTC)
	purger := &fakePurger{deleted: 12}
	job := NewLogRetentionJob(purger, 90, clock.Fixed(now), zap.NewNop().Sugar())

	if err := job.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 4, 1, 3, 0, 0, 0, time.UTC)
	if len(purger.cutoffs) != 1 || !purger.cutoffs[0].Equal(want) {
		t.Errorf("expected cutoff %s, got %v", want, purger.cutoffs)
	}
	if job.Name() != "log_retention" {
		t.Errorf("unexpected name %q", job.Name())
	}
}

func TestLogRetentionJob_RunError(t *testing.T) {
	purger := &fakePurger{err: errors.New("db down")}
	job := NewLogRetentionJob(purger, 30, clock.System{}, zap.NewNop().Sugar())

	if err := job.Run(); err == nil {
		t.Fatal("expected error")
	}
}

func TestScheduler_AddJob(t *testing.T) {
	s := New(zap.NewNop().Sugar())
	job := NewLogRetentionJob(&fakePurger{}, 90, clock.System{}, zap.NewNop().Sugar())

	if err := s.AddJob("@daily", job); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.AddJob("not a schedule", job); err == nil {
		t.Error("expected an invalid schedule to be rejected")
	}
	if s.Entries() != 1 {
		t.Errorf("expected 1 entry, got %d", s.Entries())
	}

	s.Start()
	s.Stop()
}

func TestScheduler_RunNow(t *testing.T) {
	purger := &fakePurger{}
	s := New(zap.NewNop().Sugar())
	if err := s.RunNow(NewLogRetentionJob(purger, 1, clock.System{}, zap.NewNop().Sugar())); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(purger.cutoffs) != 1 {
		t.Error("expected the job to run once")
	}
}
