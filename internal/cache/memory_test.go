// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestMemoryCache_BasicOperations(t *testing.T) {
	c := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Hour})
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	if err := c.Set(ctx, "events", []byte(`[]`), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, err := c.Get(ctx, "events")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(val) != "[]" {
		t.Errorf("expected [], got %s", val)
	}

	if err := c.Delete(ctx, "events"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := c.Get(ctx, "events"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryCache_ReturnsCopies(t *testing.T) {
	c := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Hour})
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	in := []byte("abc")
	_ = c.Set(ctx, "k", in, 0)
	in[0] = 'x'

	out, _ := c.Get(ctx, "k")
	if string(out) != "abc" {
		t.Fatalf("stored value changed through caller slice: %s", out)
	}
	out[1] = 'y'
	again, _ := c.Get(ctx, "k")
	if string(again) != "abc" {
		t.Fatalf("stored value changed through returned slice: %s", again)
	}
}

func TestMemoryCache_Expiration(t *testing.T) {
	c := NewMemoryCache(MemoryCacheOptions{DefaultTTL: 20 * time.Millisecond})
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	_ = c.Set(ctx, "k", []byte("v"), 0)
	time.Sleep(40 * time.Millisecond)

	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected expired entry to miss, got %v", err)
	}
	if n := c.Stats().Items; n != 0 {
		t.Errorf("expected expired entry to be dropped, %d items left", n)
	}
}

func TestMemoryCache_MaxSizeEvictsSoonestExpiry(t *testing.T) {
	c := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Hour, MaxSize: 2})
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	_ = c.Set(ctx, "long", []byte("1"), 2*time.Hour)
	_ = c.Set(ctx, "short", []byte("2"), time.Minute)
	_ = c.Set(ctx, "new", []byte("3"), 0)

	if _, err := c.Get(ctx, "short"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected soonest-expiring entry to be evicted, got %v", err)
	}
	for _, k := range []string{"long", "new"} {
		if _, err := c.Get(ctx, k); err != nil {
			t.Errorf("Get(%q) = %v", k, err)
		}
	}
	if n := c.Stats().Items; n != 2 {
		t.Errorf("items = %d, want 2", n)
	}
}

func TestMemoryCache_SweepDropsExpired(t *testing.T) {
	c := NewMemoryCache(MemoryCacheOptions{DefaultTTL: 5 * time.Millisecond, CleanupInterval: 5 * time.Millisecond})
	defer func() { _ = c.Close() }()

	_ = c.Set(context.Background(), "k", []byte("v"), 0)
	deadline := time.Now().Add(time.Second)
	for c.Stats().Items != 0 {
		if time.Now().After(deadline) {
			t.Fatal("sweep did not remove expired entry")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestMemoryCache_Stats(t *testing.T) {
	c := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Hour})
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	_ = c.Set(ctx, "k", []byte("v"), 0)
	_, _ = c.Get(ctx, "k")
	_, _ = c.Get(ctx, "missing")

	s := c.Stats()
	if s.Hits != 1 || s.Misses != 1 || s.Sets != 1 || s.Items != 1 {
		t.Errorf("unexpected stats: %+v", s)
	}
	if s.HitRate != 50 {
		t.Errorf("expected hit rate 50, got %v", s.HitRate)
	}
	if s.Backend != BackendMemory {
		t.Errorf("backend = %q, want memory", s.Backend)
	}
}

func TestMemoryCache_Closed(t *testing.T) {
	c := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Hour, CleanupInterval: time.Millisecond})
	ctx := context.Background()

	if err := c.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	// second Close is a no-op
	if err := c.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}

	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Get: expected ErrCacheClosed, got %v", err)
	}
	if err := c.Set(ctx, "k", nil, 0); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Set: expected ErrCacheClosed, got %v", err)
	}
}

func TestMemoryCache_Concurrency(t *testing.T) {
	c := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Hour})
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := string(rune('a' + n%26))
			_ = c.Set(ctx, key, []byte{byte(n)}, 0)
			_, _ = c.Get(ctx, key)
			_ = c.Delete(ctx, key)
		}(i)
	}
	wg.Wait()
}
