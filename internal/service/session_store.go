package service

import (
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/event-seat-booking/internal/model"
	"github.com/iliyamo/event-seat-booking/internal/seating"
)

// SessionKey identifies one viewer looking at one event schedule.
type SessionKey struct {
	Viewer   string
	EventID  string
	Schedule string
}

// NewSessionKey normalises its parts; viewer ids compare case-insensitively.
func NewSessionKey(viewer, eventID, schedule string) SessionKey {
	return SessionKey{
		Viewer:   strings.ToLower(strings.TrimSpace(viewer)),
		EventID:  strings.TrimSpace(eventID),
		Schedule: strings.TrimSpace(schedule),
	}
}

// ViewSession is the state one viewer's seat picker owns: the loaded map,
// occupancy and the current selection.  mu serialises every operation on it,
// so clicks from the same viewer are applied one after another.
type ViewSession struct {
	mu sync.Mutex

	key    SessionKey
	loaded bool
	gen    uint64 // bumped by every load; stale loads compare and bail

	event  model.Event
	source seating.MapSource
	stale  bool
	ctrl   seating.Controller
	sel    seating.Selection
}

// view renders the session; callers hold mu.
func (s *ViewSession) view() seating.MapView {
	v := seating.BuildView(s.ctrl, s.sel)
	v.Source = s.source
	v.Stale = s.stale
	return v
}

type sessionEntry struct {
	session  *ViewSession
	lastUsed time.Time
}

// SessionStore keeps view sessions with an idle TTL and a size cap.  Expired
// or evicted sessions simply start over Empty on the next request.
type SessionStore struct {
	mu         sync.Mutex
	now        func() time.Time
	ttl        time.Duration
	maxEntries int
	entries    map[SessionKey]*sessionEntry
}

// NewSessionStore builds a store.  Non-positive ttl means 30 minutes and
// non-positive maxEntries means 10000.
func NewSessionStore(ttl time.Duration, maxEntries int, now func() time.Time) *SessionStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if maxEntries <= 0 {
		maxEntries = 10000
	}
	if now == nil {
		now = time.Now
	}
	return &SessionStore{
		now:        now,
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[SessionKey]*sessionEntry),
	}
}

// Get returns the live session for key, creating a fresh one when none
// exists or the old one expired.
func (st *SessionStore) Get(key SessionKey) *ViewSession {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	if e, ok := st.entries[key]; ok {
		if now.Sub(e.lastUsed) <= st.ttl {
			e.lastUsed = now
			return e.session
		}
		delete(st.entries, key)
	}
	st.cleanupLocked(now)
	if len(st.entries) >= st.maxEntries {
		st.evictOldestLocked()
	}
	s := &ViewSession{key: key}
	st.entries[key] = &sessionEntry{session: s, lastUsed: now}
	return s
}

// Drop forgets a session.
func (st *SessionStore) Drop(key SessionKey) {
	st.mu.Lock()
	delete(st.entries, key)
	st.mu.Unlock()
}

// Len reports the number of tracked sessions, expired ones included until
// the next cleanup.
func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.entries)
}

func (st *SessionStore) cleanupLocked(now time.Time) {
	for k, e := range st.entries {
		if now.Sub(e.lastUsed) > st.ttl {
			delete(st.entries, k)
		}
	}
}

func (st *SessionStore) evictOldestLocked() {
	var (
		oldestKey SessionKey
		oldest    time.Time
		found     bool
	)
	for k, e := range st.entries {
		if !found || e.lastUsed.Before(oldest) {
			oldestKey, oldest, found = k, e.lastUsed, true
		}
	}
	if found {
		delete(st.entries, oldestKey)
	}
}
