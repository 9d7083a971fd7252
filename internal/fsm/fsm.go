// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package fsm is a small, strict state machine used to validate graph
// lifecycle transitions. Unknown transitions are errors.
package fsm

import (
	"fmt"
	"sync"
)

// Transition describes a single edge in the FSM.
// Guard may reject the transition before it is applied.
type Transition[S ~string] struct {
	From  S
	To    S
	Guard func(from, to S) error
}

// Machine tracks the confirmed state and validates requested moves.
type Machine[S ~string] struct {
	mu    sync.Mutex
	state S
	index map[string]Transition[S]
}

func New[S ~string](initial S, transitions []Transition[S]) (*Machine[S], error) {
	idx := make(map[string]Transition[S], len(transitions))
	for _, t := range transitions {
		k := key(t.From, t.To)
		if _, exists := idx[k]; exists {
			return nil, fmt.Errorf("duplicate transition: %s -> %s", t.From, t.To)
		}
		idx[k] = t
	}
	return &Machine[S]{state: initial, index: idx}, nil
}

func (m *Machine[S]) State() S {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Allowed reports whether moving from the current state to target is legal.
// A same-state move is always legal (idempotent re-request).
func (m *Machine[S]) Allowed(target S) error {
	m.mu.Lock()
	from := m.state
	m.mu.Unlock()

	if from == target {
		return nil
	}
	t, ok := m.index[key(from, target)]
	if !ok {
		return fmt.Errorf("invalid transition: %s -> %s", from, target)
	}
	if t.Guard != nil {
		return t.Guard(from, target)
	}
	return nil
}

// Observe records a confirmed transition, regardless of legality: the
// executor is the source of truth once a state change is reported.
func (m *Machine[S]) Observe(state S) {
	m.mu.Lock()
	m.state = state
	m.mu.Unlock()
}

func key[S ~string](from, to S) string {
	return string(from) + "|" + string(to)
}
