// Package cache keeps a best-effort copy of each event's taken seats so a
// viewer's map survives a failed refresh.  The mirror is overwritten on every
// successful bookings fetch; it is only read when that fetch fails.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// OccupancyMirror stores the last known taken seats per event and schedule.
type OccupancyMirror interface {
	Load(ctx context.Context, key string) ([]string, bool)
	Store(ctx context.Context, key string, seats []string)
	Invalidate(ctx context.Context, key string)
}

// MirrorKey builds the mirror key for an event and schedule: seats_<event>_<schedule>.
// Colons and dots in the schedule become dashes and an empty schedule maps
// to "default".
func MirrorKey(eventID, schedule string) string {
	s := strings.TrimSpace(schedule)
	if s == "" {
		s = "default"
	}
	s = strings.NewReplacer(":", "-", ".", "-").Replace(s)
	return "seats_" + strings.TrimSpace(eventID) + "_" + s
}

// RedisMirror keeps entries in Redis as JSON arrays with a TTL.
type RedisMirror struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisMirror returns a Redis-backed mirror.  prefix namespaces keys; a
// non-positive ttl means 10 minutes.
func NewRedisMirror(rdb *redis.Client, prefix string, ttl time.Duration) *RedisMirror {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if prefix == "" {
		prefix = "mirror"
	}
	return &RedisMirror{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (m *RedisMirror) key(k string) string { return m.prefix + ":" + k }

func (m *RedisMirror) Load(ctx context.Context, key string) ([]string, bool) {
	bs, err := m.rdb.Get(ctx, m.key(key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("occupancy-mirror: get %s: %v", key, err)
		}
		return nil, false
	}
	var seats []string
	if err := json.Unmarshal(bs, &seats); err != nil {
		log.Printf("occupancy-mirror: corrupt entry %s: %v", key, err)
		return nil, false
	}
	return seats, true
}

func (m *RedisMirror) Store(ctx context.Context, key string, seats []string) {
	if seats == nil {
		seats = []string{}
	}
	bs, err := json.Marshal(seats)
	if err != nil {
		return
	}
	if err := m.rdb.SetEx(ctx, m.key(key), bs, m.ttl).Err(); err != nil {
		log.Printf("occupancy-mirror: set %s: %v", key, err)
	}
}

func (m *RedisMirror) Invalidate(ctx context.Context, key string) {
	if err := m.rdb.Del(ctx, m.key(key)).Err(); err != nil {
		log.Printf("occupancy-mirror: del %s: %v", key, err)
	}
}

type memoryEntry struct {
	seats   []string
	expires time.Time
}

// MemoryMirror is the in-process mirror used when Redis is unavailable.
type MemoryMirror struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryMirror returns an in-memory mirror.  A non-positive ttl means 10
// minutes.
func NewMemoryMirror(ttl time.Duration) *MemoryMirror {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &MemoryMirror{entries: make(map[string]memoryEntry), ttl: ttl, now: time.Now}
}

func (m *MemoryMirror) Load(_ context.Context, key string) ([]string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if m.now().After(e.expires) {
		delete(m.entries, key)
		return nil, false
	}
	return append([]string(nil), e.seats...), true
}

func (m *MemoryMirror) Store(_ context.Context, key string, seats []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{seats: append([]string{}, seats...), expires: m.now().Add(m.ttl)}
}

func (m *MemoryMirror) Invalidate(_ context.Context, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

// NewMirror picks Redis when a client is available and memory otherwise.
func NewMirror(rdb *redis.Client, prefix string, ttl time.Duration) OccupancyMirror {
	if rdb == nil {
		return NewMemoryMirror(ttl)
	}
	return NewRedisMirror(rdb, prefix, ttl)
}
