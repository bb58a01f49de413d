// Copyright (c) 2025 Quorum Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package actions implements the typed action-dispatch protocol between
// assistant replies and the hosting page.
package actions

import (
	"errors"
	"fmt"
	"sync"

	"github.com/quorumhq/guide-tui/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrUnhandled means no handler is registered for the action type, or
	// the type is outside the known enumeration. The caller renders nothing
	// and moves on.
	ErrUnhandled = errors.New("no handler for action type")

	// ErrHandlerPanic means a handler panicked and the panic was contained.
	ErrHandlerPanic = errors.New("action handler panicked")
)

// =============================================================================
// REGISTRY
// =============================================================================

// Handler executes one action suggestion. The payload arrives exactly as
// the backend produced it; interpreting it is entirely the handler's
// business.
type Handler func(model.ActionSuggestion) error

// Registry maps action types to their externally-owned handlers.
type Registry struct {
	mu       sync.RWMutex
	handlers map[model.ActionType]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[model.ActionType]Handler),
	}
}

// Register installs the handler for an action type, replacing any previous
// one. A nil handler unregisters.
func (r *Registry) Register(t model.ActionType, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h == nil {
		delete(r.handlers, t)
		return
	}
	r.handlers[t] = h
}

// Dispatch routes a suggestion to its handler.
//
// Fail-closed contract: an unknown type or missing handler returns
// ErrUnhandled, and a panicking handler is recovered into ErrHandlerPanic.
// The widget is mounted on every page, so nothing that passes through here
// may propagate a panic.
func (r *Registry) Dispatch(s model.ActionSuggestion) (err error) {
	if !s.Type.Known() {
		return fmt.Errorf("%w: %q", ErrUnhandled, s.Type)
	}

	r.mu.RLock()
	h, ok := r.handlers[s.Type]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnhandled, s.Type)
	}

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %q: %v", ErrHandlerPanic, s.Type, rec)
		}
	}()
	return h(s)
}

// Handles reports whether a handler is registered for the type.
func (r *Registry) Handles(t model.ActionType) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.handlers[t]
	return ok
}

// Unhandled returns the known action types with no registered handler, in
// enumeration order. Hosts assert this is empty at startup so that adding a
// new ActionType fails loudly everywhere instead of silently no-op-ing.
func (r *Registry) Unhandled() []model.ActionType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var missing []model.ActionType
	for _, t := range model.AllActionTypes() {
		if _, ok := r.handlers[t]; !ok {
			missing = append(missing, t)
		}
	}
	return missing
}
