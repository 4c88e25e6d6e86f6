package repositories

import (
	"context"

	"github.com/tkoide/drp/pkg/domain/entities"
)

// FinalizedPlanRepository provides access to previously submitted delivery
// plans, used only as comparison baselines for conflict detection.
type FinalizedPlanRepository interface {
	// GetPlan returns the finalized plan for a plant/product pair, or an
	// error wrapping entities.ErrPlanNotFound when none exists.
	GetPlan(ctx context.Context, plant entities.Plant, product entities.Product) (*entities.FinalizedPlan, error)

	// SavePlan creates or replaces the plan for its plant/product pair.
	SavePlan(ctx context.Context, plan *entities.FinalizedPlan) error
}
