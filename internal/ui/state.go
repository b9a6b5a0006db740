package ui

import "sync"

type FetchStatus int

const (
	FetchIdle FetchStatus = iota
	FetchLoading
	FetchLoaded
	FetchError
)

// Resource is the per-fetch state machine every view keeps:
// {loading, loaded, error} plus the last known good value. A failed fetch
// never fabricates data; it keeps the previous value and marks it stale so
// the renderer can show a distinct affordance.
//
// Each fetch obtains a generation token from Begin; Apply discards any
// response whose generation is no longer current, so two racing fetches
// cannot let the older response overwrite the newer state.
type Resource[T any] struct {
	mu       sync.Mutex
	gen      uint64
	status   FetchStatus
	value    T
	hasValue bool
	err      error
}

type Snapshot[T any] struct {
	Status FetchStatus
	Value  T
	// HasValue reports whether Value holds a previously loaded result.
	HasValue bool
	// Stale is true when the latest fetch failed but an older value is
	// still being shown.
	Stale bool
	Err   error
}

// Begin marks the resource loading and returns the generation token the
// eventual Apply must present.
func (r *Resource[T]) Begin() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++
	r.status = FetchLoading
	return r.gen
}

// Apply records the outcome of the fetch identified by gen. It reports
// false, changing nothing, when a newer fetch has started since.
func (r *Resource[T]) Apply(gen uint64, value T, err error) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen {
		return false
	}
	if err != nil {
		r.status = FetchError
		r.err = err
		return true
	}
	r.status = FetchLoaded
	r.value = value
	r.hasValue = true
	r.err = nil
	return true
}

func (r *Resource[T]) Snapshot() Snapshot[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Snapshot[T]{
		Status:   r.status,
		Value:    r.value,
		HasValue: r.hasValue,
		Stale:    r.status == FetchError && r.hasValue,
		Err:      r.err,
	}
}

// Reset returns the resource to idle and forgets the held value. Used on
// navigation so a reopened view starts clean.
func (r *Resource[T]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++
	r.status = FetchIdle
	var zero T
	r.value = zero
	r.hasValue = false
	r.err = nil
}
