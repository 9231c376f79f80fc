package repository

import (
	"context"
	"sync"

	"loan-eligibility/domain"
)

// PolicyRepositoryMemory is an in-memory implementation of PolicyRepository.
type PolicyRepositoryMemory struct {
	mu   sync.RWMutex
	data []domain.LenderPolicy
}

// NewPolicyRepositoryMemory creates a new in-memory policy repository.
func NewPolicyRepositoryMemory() *PolicyRepositoryMemory {
	return &PolicyRepositoryMemory{
		data: []domain.LenderPolicy{},
	}
}

// List returns a copy so callers can sort or filter without touching the table.
func (r *PolicyRepositoryMemory) List(_ context.Context) ([]domain.LenderPolicy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.LenderPolicy, len(r.data))
	copy(out, r.data)
	return out, nil
}

// Seed appends policies whose ID is not already present.
func (r *PolicyRepositoryMemory) Seed(_ context.Context, policies []domain.LenderPolicy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[int64]bool, len(r.data))
	for _, p := range r.data {
		seen[p.ID] = true
	}
	for _, p := range policies {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		r.data = append(r.data, p)
	}
	return nil
}
