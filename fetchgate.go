package aarogyam

import (
	"sync"
	"sync/atomic"
)

// FetchGate serializes view refreshes so that a slow, stale response
// never overwrites the state produced by a newer request. Each fetch
// takes a monotonic token from Begin; its result is applied only if no
// newer fetch has begun since.
//
//	gate := &aarogyam.FetchGate{}
//	token := gate.Begin()
//	list, err := client.Appointments.List(ctx)
//	gate.Apply(token, func() { view.Set(list, err) })
type FetchGate struct {
	mu  sync.Mutex
	seq atomic.Uint64
}

// Begin registers a new fetch and returns its token. Any outstanding
// older fetch is implicitly superseded.
func (g *FetchGate) Begin() uint64 {
	return g.seq.Add(1)
}

// Apply runs fn iff token still belongs to the most recent fetch, and
// reports whether it ran. Applications are serialized, so fn never runs
// concurrently with another application.
func (g *FetchGate) Apply(token uint64, fn func()) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if token != g.seq.Load() {
		return false
	}
	fn()
	return true
}
