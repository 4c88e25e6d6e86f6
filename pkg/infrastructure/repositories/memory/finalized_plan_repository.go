package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/tkoide/drp/pkg/domain/entities"
	"github.com/tkoide/drp/pkg/domain/repositories"
)

// FinalizedPlanRepository provides in-memory finalized-plan storage for tests
// and demos.
type FinalizedPlanRepository struct {
	mu    sync.RWMutex
	plans map[string]*entities.FinalizedPlan

	// FailNext forces the next GetPlan to fail, exercising the degraded
	// comparison path in tests.
	FailNext error
}

// NewFinalizedPlanRepository creates a new in-memory plan store.
func NewFinalizedPlanRepository() *FinalizedPlanRepository {
	return &FinalizedPlanRepository{plans: make(map[string]*entities.FinalizedPlan)}
}

// Verify interface compliance
var _ repositories.FinalizedPlanRepository = (*FinalizedPlanRepository)(nil)

// GetPlan returns the finalized plan for a plant/product pair.
func (r *FinalizedPlanRepository) GetPlan(ctx context.Context, plant entities.Plant, product entities.Product) (*entities.FinalizedPlan, error) {
	r.mu.Lock()
	if err := r.FailNext; err != nil {
		r.FailNext = nil
		r.mu.Unlock()
		return nil, err
	}
	r.mu.Unlock()

	r.mu.RLock()
	defer r.mu.RUnlock()
	plan, ok := r.plans[settingKey(plant, product)]
	if !ok {
		return nil, fmt.Errorf("finalized plan %s/%s: %w", plant, product, entities.ErrPlanNotFound)
	}
	return plan, nil
}

// SavePlan creates or replaces the plan for its plant/product pair.
func (r *FinalizedPlanRepository) SavePlan(ctx context.Context, plan *entities.FinalizedPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans[settingKey(plan.Plant, plan.Product)] = plan
	return nil
}
