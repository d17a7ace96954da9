// v1
// internal/reconcile/reconcile.go

// Package reconcile holds the idempotence rule shared by both node loops:
// a fetched item is applied at most once per distinct identifier, tracked by
// an explicit session value instead of process-wide globals.
package reconcile

// Action is the outcome of comparing a fetched item against session state.
type Action int

const (
	NoOp Action = iota
	Apply
)

// PendingRequest identifies a coordinator-side request awaiting sensor data.
type PendingRequest struct {
	ID       string
	Consumed bool
}

// Decide returns Apply iff the current identifier is non-empty and differs
// from the last-applied one. Repeated polls returning an unchanged id must
// not re-trigger side effects.
//
// Only the single most recent identifier is remembered: an id that cycles
// back after an intervening different id is applied again. The coordinator
// relies on that to deliberately re-issue a request.
func Decide(currentID, lastID string) Action {
	if currentID == "" || currentID == lastID {
		return NoOp
	}
	return Apply
}

// Session carries the last-applied markers for one node loop. It is a value:
// each reconciliation returns the updated session and the caller threads it
// into the next tick.
type Session struct {
	LastRequestID  string
	LastBundleID   string
	LastSuggestion string
}

// ReconcileRequest decides whether a pending sensor-data request needs
// servicing. The session is unchanged on NoOp; callers commit the returned
// session only after the side effect succeeded, so a failed attempt retries
// on the next poll.
func (s Session) ReconcileRequest(current PendingRequest) (Session, Action) {
	act := Decide(current.ID, s.LastRequestID)
	if act == Apply {
		s.LastRequestID = current.ID
	}
	return s, act
}

// ReconcileBundle decides whether a fetched command bundle needs applying.
func (s Session) ReconcileBundle(bundleID string) (Session, Action) {
	act := Decide(bundleID, s.LastBundleID)
	if act == Apply {
		s.LastBundleID = bundleID
	}
	return s, act
}

// ReconcileSuggestion reports whether the suggestion text changed since the
// last applied one. Unlike requests, an empty suggestion is a valid value
// (it clears the display), so only equality gates the update.
func (s Session) ReconcileSuggestion(text string) (Session, Action) {
	if text == s.LastSuggestion {
		return s, NoOp
	}
	s.LastSuggestion = text
	return s, Apply
}
