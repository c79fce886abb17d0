// Copyright 2026 The Wavemark Authors
// SPDX-License-Identifier: Apache-2.0

package sealing

import (
	"fmt"
	"sort"
	"sync"
)

// plaintextAlgorithmID is the wire discriminator reserved for
// unencrypted frames. Strategies cannot register under it.
const plaintextAlgorithmID = "plaintext"

// Registry maps wire algorithm identifiers to strategies for decode.
// Safe for concurrent use; registration typically happens once at
// startup but decoders may share a registry across goroutines.
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]HashStrategy
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{strategies: make(map[string]HashStrategy)}
}

// Register adds a strategy under its AlgorithmID. Registering an empty
// identifier, the reserved plaintext identifier, or a duplicate fails.
func (r *Registry) Register(strategy HashStrategy) error {
	if strategy == nil {
		return fmt.Errorf("sealing: cannot register nil strategy")
	}
	algorithmID := strategy.AlgorithmID()
	if algorithmID == "" {
		return fmt.Errorf("sealing: strategy %q has an empty algorithm id", strategy.SchemeName())
	}
	if algorithmID == plaintextAlgorithmID {
		return fmt.Errorf("sealing: algorithm id %q is reserved", plaintextAlgorithmID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.strategies[algorithmID]; exists {
		return fmt.Errorf("sealing: algorithm id %q already registered", algorithmID)
	}
	r.strategies[algorithmID] = strategy
	return nil
}

// Lookup returns the strategy registered under algorithmID.
func (r *Registry) Lookup(algorithmID string) (HashStrategy, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	strategy, ok := r.strategies[algorithmID]
	return strategy, ok
}

// AlgorithmIDs returns the registered identifiers, sorted.
func (r *Registry) AlgorithmIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.strategies))
	for id := range r.strategies {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
