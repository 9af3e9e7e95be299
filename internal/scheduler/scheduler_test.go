// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/olegiv/eventboard/internal/testutil"
)

func TestNew(t *testing.T) {
	logger := testutil.TestLoggerSilent()

	s := New(logger)
	if s == nil {
		t.Fatal("New() returned nil")
	}
	if s.cron == nil {
		t.Error("New() scheduler has nil cron")
	}
	if s.logger != logger {
		t.Error("New() scheduler has wrong logger")
	}
}

func TestScheduler_StartStop(t *testing.T) {
	s := New(testutil.TestLoggerSilent())
	if err := s.Add("noop", "", "@every 1h", func(context.Context) error { return nil }); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	s.Start()
	s.Stop()
}

func TestValidateSchedule(t *testing.T) {
	valid := []string{"* * * * *", "*/5 * * * *", "@every 1m", "@hourly", "0 3 * * 1"}
	for _, spec := range valid {
		if err := ValidateSchedule(spec); err != nil {
			t.Errorf("ValidateSchedule(%q) = %v, want nil", spec, err)
		}
	}

	invalid := []string{"", "off", "* * *", "@every", "61 * * * *"}
	for _, spec := range invalid {
		if err := ValidateSchedule(spec); err == nil {
			t.Errorf("ValidateSchedule(%q) = nil, want error", spec)
		}
	}
}

func TestScheduler_AddRejectsDuplicatesAndBadSpecs(t *testing.T) {
	s := New(testutil.TestLoggerSilent())
	fn := func(context.Context) error { return nil }

	if err := s.Add("job", "", "@every 1m", fn); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := s.Add("job", "", "@every 1m", fn); err == nil {
		t.Error("duplicate Add() should fail")
	}
	if err := s.Add("other", "", "not a schedule", fn); err == nil {
		t.Error("Add() with invalid schedule should fail")
	}
}

func TestScheduler_TriggerNow(t *testing.T) {
	s := New(testutil.TestLoggerSilent())
	var calls atomic.Int32
	boom := errors.New("boom")

	_ = s.Add("count", "", "@every 1h", func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("job context should carry a deadline")
		}
		calls.Add(1)
		return nil
	})
	_ = s.Add("fail", "", "@every 1h", func(context.Context) error { return boom })

	if err := s.TriggerNow("count"); err != nil {
		t.Fatalf("TriggerNow() error = %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
	if err := s.TriggerNow("fail"); !errors.Is(err, boom) {
		t.Errorf("TriggerNow(fail) = %v, want boom", err)
	}
	if err := s.TriggerNow("missing"); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("TriggerNow(missing) = %v, want ErrJobNotFound", err)
	}
}

func TestScheduler_List(t *testing.T) {
	s := New(testutil.TestLoggerSilent())
	fn := func(context.Context) error { return nil }
	_ = s.Add("b", "second", "@every 2m", fn)
	_ = s.Add("a", "first", "@every 1m", fn)

	s.Start()
	defer s.Stop()

	jobs := s.List()
	if len(jobs) != 2 {
		t.Fatalf("List() len = %d, want 2", len(jobs))
	}
	if jobs[0].Name != "a" || jobs[1].Name != "b" {
		t.Errorf("List() not sorted: %v, %v", jobs[0].Name, jobs[1].Name)
	}
	if jobs[0].Schedule != "@every 1m" || jobs[0].Description != "first" {
		t.Errorf("unexpected job info: %+v", jobs[0])
	}
	if jobs[0].NextRun.Before(time.Now()) {
		t.Errorf("NextRun should be in the future, got %v", jobs[0].NextRun)
	}
}

func TestScheduler_StopCancelsRunningJob(t *testing.T) {
	s := New(testutil.TestLoggerSilent())
	done := make(chan error, 1)
	_ = s.Add("block", "", "@every 1h", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	go func() { done <- s.TriggerNow("block") }()
	time.Sleep(10 * time.Millisecond)
	s.Stop()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("job error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("job did not observe Stop")
	}
}
