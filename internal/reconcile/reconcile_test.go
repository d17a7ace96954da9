// v0
// internal/reconcile/reconcile_test.go
package reconcile

import "testing"

func TestDecide(t *testing.T) {
	cases := []struct {
		name    string
		current string
		last    string
		want    Action
	}{
		{"same id is a no-op", "req-1", "req-1", NoOp},
		{"new id applies", "req-2", "req-1", Apply},
		{"first id applies", "req-1", "", Apply},
		{"empty id is a no-op", "", "req-1", NoOp},
		{"empty against empty is a no-op", "", "", NoOp},
		{"id cycling back after another applies again", "req-1", "req-2", Apply},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Decide(tc.current, tc.last); got != tc.want {
				t.Fatalf("Decide(%q, %q) = %v, want %v", tc.current, tc.last, got, tc.want)
			}
		})
	}
}

func TestSessionReconcileRequest(t *testing.T) {
	var s Session
	s, act := s.ReconcileRequest(PendingRequest{ID: "a"})
	if act != Apply || s.LastRequestID != "a" {
		t.Fatalf("first request: act=%v last=%q", act, s.LastRequestID)
	}
	next, act := s.ReconcileRequest(PendingRequest{ID: "a"})
	if act != NoOp {
		t.Fatalf("repeated request must be NoOp, got %v", act)
	}
	if next != s {
		t.Fatal("session must be unchanged on NoOp")
	}
	s, act = s.ReconcileRequest(PendingRequest{ID: "b"})
	if act != Apply || s.LastRequestID != "b" {
		t.Fatalf("new request: act=%v last=%q", act, s.LastRequestID)
	}
}

func TestSessionMarkersAreIndependent(t *testing.T) {
	var s Session
	s, _ = s.ReconcileRequest(PendingRequest{ID: "r1"})
	s, act := s.ReconcileBundle("r1")
	if act != Apply {
		t.Fatal("bundle dedup must not be affected by request marker")
	}
	if s.LastRequestID != "r1" || s.LastBundleID != "r1" {
		t.Fatalf("markers: %+v", s)
	}
}

func TestSessionReconcileSuggestion(t *testing.T) {
	var s Session
	s, act := s.ReconcileSuggestion("relax mode")
	if act != Apply || s.LastSuggestion != "relax mode" {
		t.Fatalf("new suggestion: act=%v last=%q", act, s.LastSuggestion)
	}
	if _, act := s.ReconcileSuggestion("relax mode"); act != NoOp {
		t.Fatal("unchanged suggestion must be NoOp")
	}
	s, act = s.ReconcileSuggestion("")
	if act != Apply || s.LastSuggestion != "" {
		t.Fatal("clearing the suggestion is a real change")
	}
}
