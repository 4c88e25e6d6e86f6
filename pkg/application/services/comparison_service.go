package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/tkoide/drp/pkg/domain/entities"
	"github.com/tkoide/drp/pkg/domain/repositories"
)

type planKey struct {
	plant   entities.Plant
	product entities.Product
}

// ComparisonService compares a draft schedule against a previously finalized
// plan. Fetching the finalized plan is the one blocking operation in the
// engine; the fetched plan is cached per plant/product pair for the lifetime
// of a comparison view and invalidated only by explicitly reopening it.
type ComparisonService struct {
	plans    repositories.FinalizedPlanRepository
	detector *ConflictDetector

	mu    sync.Mutex
	cache map[planKey]*entities.FinalizedPlan
}

// NewComparisonService creates a comparison service backed by the given plan
// store.
func NewComparisonService(plans repositories.FinalizedPlanRepository) *ComparisonService {
	return &ComparisonService{
		plans:    plans,
		detector: NewConflictDetector(),
		cache:    make(map[planKey]*entities.FinalizedPlan),
	}
}

// Compare fetches the finalized plan for the given plant/product baseline and
// returns the conflict annotations between the draft's rounds and that plan.
// A fetch failure degrades to entities.ErrComparisonUnavailable: the caller
// shows "comparison unavailable" and the draft stays fully editable.
func (c *ComparisonService) Compare(
	ctx context.Context,
	draft *DraftSession,
	baselinePlant entities.Plant,
	baselineProduct entities.Product,
) ([]entities.ConflictAnnotation, error) {
	plan, err := c.FetchBaseline(ctx, baselinePlant, baselineProduct)
	if err != nil {
		return nil, err
	}
	return c.detector.FindConflicts(draft.Events(), plan.ToEventSet()), nil
}

// FetchBaseline returns the finalized plan used as a comparison baseline,
// cached per plant/product pair. Any load failure degrades to
// entities.ErrComparisonUnavailable.
func (c *ComparisonService) FetchBaseline(ctx context.Context, plant entities.Plant, product entities.Product) (*entities.FinalizedPlan, error) {
	plan, err := c.fetchPlan(ctx, plant, product)
	if err != nil {
		return nil, fmt.Errorf("%w: %s/%s: %v", entities.ErrComparisonUnavailable, plant, product, err)
	}
	return plan, nil
}

// CompareSets runs conflict detection directly on two materialized event
// sets, bypassing the plan store.
func (c *ComparisonService) CompareSets(setA, setB *entities.DeliveryEventSet) []entities.ConflictAnnotation {
	return c.detector.FindConflicts(setA, setB)
}

// Reopen drops the cached baseline for a plant/product pair so the next
// Compare fetches a fresh plan.
func (c *ComparisonService) Reopen(plant entities.Plant, product entities.Product) {
	c.mu.Lock()
	delete(c.cache, planKey{plant: plant, product: product})
	c.mu.Unlock()
}

func (c *ComparisonService) fetchPlan(ctx context.Context, plant entities.Plant, product entities.Product) (*entities.FinalizedPlan, error) {
	key := planKey{plant: plant, product: product}

	c.mu.Lock()
	cached, ok := c.cache[key]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}

	plan, err := c.plans.GetPlan(ctx, plant, product)
	if err != nil {
		return nil, err
	}
	// Discard the fetch result if the view was closed while it was in flight.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache[key] = plan
	c.mu.Unlock()
	return plan, nil
}
