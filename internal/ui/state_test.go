package ui

import (
	"errors"
	"testing"
)

func TestResourceAppliesCurrentGeneration(t *testing.T) {
	var r Resource[int]
	gen := r.Begin()
	if !r.Apply(gen, 42, nil) {
		t.Fatalf("current generation must apply")
	}
	snap := r.Snapshot()
	if snap.Status != FetchLoaded || snap.Value != 42 || !snap.HasValue {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestResourceDiscardsStaleGeneration(t *testing.T) {
	var r Resource[int]
	stale := r.Begin()
	fresh := r.Begin()

	if !r.Apply(fresh, 2, nil) {
		t.Fatalf("fresh generation must apply")
	}
	if r.Apply(stale, 1, nil) {
		t.Fatalf("stale generation must be discarded")
	}
	if snap := r.Snapshot(); snap.Value != 2 {
		t.Fatalf("stale response overwrote fresh value: %+v", snap)
	}
}

func TestResourceKeepsLastKnownGoodOnFailure(t *testing.T) {
	var r Resource[string]
	if !r.Apply(r.Begin(), "good", nil) {
		t.Fatalf("initial load failed to apply")
	}

	fetchErr := errors.New("backend down")
	if !r.Apply(r.Begin(), "", fetchErr) {
		t.Fatalf("error outcome failed to apply")
	}

	snap := r.Snapshot()
	if snap.Status != FetchError {
		t.Fatalf("expected error status, got %v", snap.Status)
	}
	if !snap.Stale || snap.Value != "good" {
		t.Fatalf("expected stale last known good value, got %+v", snap)
	}
	if !errors.Is(snap.Err, fetchErr) {
		t.Fatalf("expected fetch error in snapshot")
	}
}

func TestResourceErrorWithoutValueIsNotStale(t *testing.T) {
	var r Resource[string]
	r.Apply(r.Begin(), "", errors.New("first fetch failed"))

	snap := r.Snapshot()
	if snap.Stale || snap.HasValue {
		t.Fatalf("nothing to be stale about on first failure: %+v", snap)
	}
}

func TestResourceResetForgetsValue(t *testing.T) {
	var r Resource[int]
	gen := r.Begin()
	r.Apply(gen, 7, nil)
	r.Reset()

	snap := r.Snapshot()
	if snap.Status != FetchIdle || snap.HasValue {
		t.Fatalf("reset should return to idle: %+v", snap)
	}
	// The pre-reset generation can no longer apply.
	if r.Apply(gen, 9, nil) {
		t.Fatalf("pre-reset generation must be rejected")
	}
}
