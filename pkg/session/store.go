package session

import (
	"sort"
	"sync"
	"time"

	"github.com/lurebox/lurebox/pkg/config"
	"github.com/lurebox/lurebox/pkg/convo"
)

// DefaultIdleTTL is how long a session may sit idle before the sweep
// reclaims it.
const DefaultIdleTTL = time.Hour

// Store is a thread-safe in-memory session registry. A single mutex
// guards the whole map; every mutation runs start-to-finish under it so
// concurrent turns for the same conversation can never interleave
// partial state.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	idleTTL  time.Duration
	policy   policy

	// now is swappable for expiry tests.
	now func() time.Time
}

// NewStore builds a store using the escalation knobs from cfg. A nil cfg
// falls back to the default profile.
func NewStore(cfg *config.Config) *Store {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	return &Store{
		sessions: make(map[string]*Session),
		idleTTL:  cfg.SessionIdleTTL,
		policy: policy{
			maxTurnBudget: cfg.MaxTurnBudget,
			minIntel:      cfg.MinIntel,
		},
		now: time.Now,
	}
}

// Update folds upd into the session with the given id, creating it if
// unknown, and returns a snapshot of the resulting state. The whole
// read-modify-write is atomic.
func (st *Store) Update(id string, upd Update) Snapshot {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, ok := st.sessions[id]
	if ok && st.expiredLocked(sess) {
		delete(st.sessions, id)
		ok = false
	}
	if !ok {
		st.sweepLocked()
		now := st.now()
		sess = &Session{ID: id, CreatedAt: now, LastActivityAt: now}
		st.sessions[id] = sess
	}

	if upd.Turn != nil {
		sess.TurnLog = append(sess.TurnLog, *upd.Turn)
	}
	// Recomputed from the log so no caller can drift it.
	sess.MessageCount = len(sess.TurnLog)
	if upd.FraudSuspected != nil && *upd.FraudSuspected {
		sess.FraudConfirmed = true
	}
	if upd.Confidence != nil && *upd.Confidence > sess.Confidence {
		sess.Confidence = *upd.Confidence
	}
	if upd.Entities != nil {
		sess.Entities = sess.Entities.Merge(*upd.Entities)
	}
	if len(upd.Indicators) > 0 {
		sess.Indicators = unionTags(sess.Indicators, upd.Indicators)
	}
	sess.LastActivityAt = st.now()

	return sess.snapshotLocked()
}

// AppendTurn records a turn without touching any verdict state. Used for
// the agent's own replies so the transcript stays complete.
func (st *Store) AppendTurn(id string, turn convo.Turn) {
	st.Update(id, Update{Turn: &turn})
}

// Get returns a snapshot of the session if it exists and has not idled
// out. An expired session is reclaimed on the spot and reported as
// missing.
func (st *Store) Get(id string) (Snapshot, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, ok := st.sessions[id]
	if !ok {
		return Snapshot{}, false
	}
	if st.expiredLocked(sess) {
		delete(st.sessions, id)
		return Snapshot{}, false
	}
	return sess.snapshotLocked(), true
}

// Delete removes a session outright. Returns whether it existed.
func (st *Store) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	_, ok := st.sessions[id]
	delete(st.sessions, id)
	return ok
}

// PurgeAll drops every session and returns how many were held.
func (st *Store) PurgeAll() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	n := len(st.sessions)
	st.sessions = make(map[string]*Session)
	return n
}

// Count reports the number of live sessions, sweeping expired ones
// first.
func (st *Store) Count() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sweepLocked()
	return len(st.sessions)
}

func (st *Store) expiredLocked(sess *Session) bool {
	return st.idleTTL > 0 && st.now().Sub(sess.LastActivityAt) > st.idleTTL
}

func (st *Store) sweepLocked() {
	for id, sess := range st.sessions {
		if st.expiredLocked(sess) {
			delete(st.sessions, id)
		}
	}
}

func unionTags(have, add []string) []string {
	set := make(map[string]struct{}, len(have)+len(add))
	for _, t := range have {
		set[t] = struct{}{}
	}
	for _, t := range add {
		set[t] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
