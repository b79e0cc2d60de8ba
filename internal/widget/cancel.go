// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

import (
	"context"
	"sync"
)

// =============================================================================
// CANCEL REGISTRY (THREAD-SAFE)
// =============================================================================

// cancelRegistry holds the cancel func of each dispatched request, keyed by
// entry id. Dispatch runs on its own goroutine while the UI loop may cancel,
// so access is mutex guarded. A cancel that arrives before Dispatch is
// remembered in early and consumed by take.
type cancelRegistry struct {
	mu      sync.Mutex
	cancels map[string]context.CancelFunc
	early   map[string]struct{}
}

func newCancelRegistry() *cancelRegistry {
	return &cancelRegistry{
		cancels: make(map[string]context.CancelFunc),
		early:   make(map[string]struct{}),
	}
}

// add stores fn for id. It reports false if id was already registered.
func (r *cancelRegistry) add(id string, fn context.CancelFunc) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cancels[id]; ok {
		return false
	}
	r.cancels[id] = fn
	return true
}

// cancel invokes the cancel func for id without removing it, so a second
// Dispatch of the same id is still refused. An id not dispatched yet is
// marked so its Dispatch ends before sending.
func (r *cancelRegistry) cancel(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if fn, ok := r.cancels[id]; ok {
		if fn != nil {
			fn()
		}
		return
	}
	r.early[id] = struct{}{}
}

// take reports and clears an early cancel for id.
func (r *cancelRegistry) take(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.early[id]
	delete(r.early, id)
	return ok
}

// release cancels and forgets id. Safe to call for unknown ids.
func (r *cancelRegistry) release(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.early, id)
	if fn, ok := r.cancels[id]; ok {
		if fn != nil {
			fn()
		}
		delete(r.cancels, id)
	}
}

// cancelAll cancels every registered request.
func (r *cancelRegistry) cancelAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, fn := range r.cancels {
		if fn != nil {
			fn()
		}
	}
}
