// Package orchestrators coordinates optimistic mutations against the entity
// cache and the backend API: apply locally, call the network, reconcile on
// success, roll back on failure. Duplicate dispatch for the same entity is
// blocked by the in-flight registry; cross-entity interleavings are
// last-write-wins.
package orchestrators

import (
	"errors"
	"sync"
)

// Operation names used for in-flight keys, log events and notifications.
const (
	OpEnroll           = "enroll"
	OpReviewEnrollment = "review_enrollment"
	OpCreateCourse     = "create_course"
	OpUpdateCourse     = "update_course"
	OpDeleteCourse     = "delete_course"
	OpCreateSession    = "create_session"
	OpUpdateSession    = "update_session"
	OpDeleteSession    = "delete_session"
	OpDeleteEnrollment = "delete_enrollment"
	OpUpdateUserRole   = "update_user_role"
	OpDeleteUser       = "delete_user"
	OpRefreshAll       = "refresh_all"
)

// ErrInFlight signals that the same operation is already running for the
// same entity. The caller retries after the first dispatch settles.
var ErrInFlight = errors.New("operation already in flight for this entity")

type inflightKey struct {
	op       string
	entityID string
}

// Registry tracks operations currently awaiting a server response, keyed by
// (operation, entity id). It doubles as the double-click guard: Begin before
// dispatch, End on settle, success or failure alike.
type Registry struct {
	mu     sync.Mutex
	active map[inflightKey]struct{}
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{active: make(map[inflightKey]struct{})}
}

// Begin marks an operation in flight.
// PRE: none; a nil Registry disables guarding
// POST: Returns ErrInFlight if the key was already active
func (r *Registry) Begin(op, entityID string) error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	k := inflightKey{op: op, entityID: entityID}
	if _, busy := r.active[k]; busy {
		return ErrInFlight
	}
	r.active[k] = struct{}{}
	return nil
}

// End clears an in-flight key. Must run on every settle path.
func (r *Registry) End(op, entityID string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.active, inflightKey{op: op, entityID: entityID})
}

// InFlight reports whether the key is currently active.
func (r *Registry) InFlight(op, entityID string) bool {
	if r == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, busy := r.active[inflightKey{op: op, entityID: entityID}]
	return busy
}
