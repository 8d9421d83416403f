package cache

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestMirrorKey(t *testing.T) {
	tests := []struct {
		event, schedule, want string
	}{
		{"42", "", "seats_42_default"},
		{"42", "10:30 AM", "seats_42_10-30 AM"},
		{"42", "Day 1. 09:00", "seats_42_Day 1- 09-00"},
		{" 7 ", " TBD ", "seats_7_TBD"},
	}
	for _, tt := range tests {
		if got := MirrorKey(tt.event, tt.schedule); got != tt.want {
			t.Errorf("MirrorKey(%q, %q) = %q, want %q", tt.event, tt.schedule, got, tt.want)
		}
	}
}

func TestMemoryMirror(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemoryMirror(time.Minute)
	m.now = func() time.Time { return now }

	if _, ok := m.Load(ctx, "k"); ok {
		t.Fatalf("empty mirror returned an entry")
	}
	m.Store(ctx, "k", []string{"A1", "B2"})
	got, ok := m.Load(ctx, "k")
	if !ok || !reflect.DeepEqual(got, []string{"A1", "B2"}) {
		t.Fatalf("Load() = %v, %v", got, ok)
	}

	// overwrite on refresh
	m.Store(ctx, "k", []string{"C3"})
	if got, _ := m.Load(ctx, "k"); !reflect.DeepEqual(got, []string{"C3"}) {
		t.Fatalf("after overwrite Load() = %v", got)
	}

	now = now.Add(2 * time.Minute)
	if _, ok := m.Load(ctx, "k"); ok {
		t.Fatalf("expired entry still returned")
	}

	m.Store(ctx, "k", nil)
	m.Invalidate(ctx, "k")
	if _, ok := m.Load(ctx, "k"); ok {
		t.Fatalf("invalidated entry still returned")
	}
}

func TestRedisMirror(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	ctx := context.Background()
	m := NewRedisMirror(rdb, "test", 30*time.Second)

	if _, ok := m.Load(ctx, "seats_1_default"); ok {
		t.Fatalf("missing key returned an entry")
	}
	m.Store(ctx, "seats_1_default", []string{"A1"})
	if !mr.Exists("test:seats_1_default") {
		t.Fatalf("key not written under prefix")
	}
	if ttl := mr.TTL("test:seats_1_default"); ttl != 30*time.Second {
		t.Fatalf("ttl = %v, want 30s", ttl)
	}
	got, ok := m.Load(ctx, "seats_1_default")
	if !ok || !reflect.DeepEqual(got, []string{"A1"}) {
		t.Fatalf("Load() = %v, %v", got, ok)
	}

	mr.FastForward(31 * time.Second)
	if _, ok := m.Load(ctx, "seats_1_default"); ok {
		t.Fatalf("expired key still returned")
	}

	m.Store(ctx, "seats_1_default", nil)
	if got, ok := m.Load(ctx, "seats_1_default"); !ok || len(got) != 0 {
		t.Fatalf("empty set should round-trip as present and empty, got %v %v", got, ok)
	}
	m.Invalidate(ctx, "seats_1_default")
	if _, ok := m.Load(ctx, "seats_1_default"); ok {
		t.Fatalf("invalidated key still returned")
	}

	_ = mr.Set("test:bad", "not-json")
	if _, ok := m.Load(ctx, "bad"); ok {
		t.Fatalf("corrupt entry should read as missing")
	}
}

func TestNewMirrorFallsBackToMemory(t *testing.T) {
	if _, ok := NewMirror(nil, "", 0).(*MemoryMirror); !ok {
		t.Fatalf("nil redis should yield a MemoryMirror")
	}
}
