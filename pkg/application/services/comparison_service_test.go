package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tkoide/drp/pkg/domain/entities"
	"github.com/tkoide/drp/pkg/infrastructure/repositories/memory"
)

func baselinePlan(t *testing.T, clock string) *entities.FinalizedPlan {
	t.Helper()
	return &entities.FinalizedPlan{
		Plant:   "EAST",
		Product: "CAUSTIC",
		Events: []entities.FinalizedEvent{{
			ID:               "base-1",
			Date:             time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			Time:             mustTime(t, clock),
			QuantityPerTruck: decimal.NewFromInt(10),
			Status:           entities.StatusConfirmed,
		}},
	}
}

func TestComparisonService_Compare(t *testing.T) {
	ctx := context.Background()
	plans := memory.NewFinalizedPlanRepository()
	if err := plans.SavePlan(ctx, baselinePlan(t, "15:30")); err != nil {
		t.Fatalf("SavePlan failed: %v", err)
	}

	session := testSession(t, 3)
	if _, err := session.AddDelivery(session.Horizon().Date(0), mustTime(t, "14:00"), decimal.NewFromInt(10)); err != nil {
		t.Fatalf("AddDelivery failed: %v", err)
	}

	comparison := NewComparisonService(plans)
	conflicts, err := comparison.Compare(ctx, session, "EAST", "CAUSTIC")
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if len(conflicts) != 1 {
		t.Fatalf("Expected 1 conflict, got %d", len(conflicts))
	}
}

func TestComparisonService_DegradesWhenPlanUnavailable(t *testing.T) {
	ctx := context.Background()
	plans := memory.NewFinalizedPlanRepository()
	plans.FailNext = fmt.Errorf("store offline")

	comparison := NewComparisonService(plans)
	_, err := comparison.Compare(ctx, testSession(t, 3), "EAST", "CAUSTIC")
	if !errors.Is(err, entities.ErrComparisonUnavailable) {
		t.Fatalf("Expected ErrComparisonUnavailable, got %v", err)
	}
}

func TestComparisonService_MissingPlanDegrades(t *testing.T) {
	comparison := NewComparisonService(memory.NewFinalizedPlanRepository())
	_, err := comparison.Compare(context.Background(), testSession(t, 3), "EAST", "CAUSTIC")
	if !errors.Is(err, entities.ErrComparisonUnavailable) {
		t.Fatalf("Expected ErrComparisonUnavailable, got %v", err)
	}
}

func TestComparisonService_CachesUntilReopened(t *testing.T) {
	ctx := context.Background()
	plans := memory.NewFinalizedPlanRepository()
	if err := plans.SavePlan(ctx, baselinePlan(t, "15:30")); err != nil {
		t.Fatalf("SavePlan failed: %v", err)
	}

	session := testSession(t, 3)
	if _, err := session.AddDelivery(session.Horizon().Date(0), mustTime(t, "14:00"), decimal.NewFromInt(10)); err != nil {
		t.Fatalf("AddDelivery failed: %v", err)
	}

	comparison := NewComparisonService(plans)
	if _, err := comparison.Compare(ctx, session, "EAST", "CAUSTIC"); err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	// The baseline moves out of range in the store, but the comparison view
	// keeps its cached snapshot.
	if err := plans.SavePlan(ctx, baselinePlan(t, "20:00")); err != nil {
		t.Fatalf("SavePlan failed: %v", err)
	}
	conflicts, err := comparison.Compare(ctx, session, "EAST", "CAUSTIC")
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if len(conflicts) != 1 {
		t.Fatalf("Expected cached baseline to still conflict, got %d", len(conflicts))
	}

	// Reopening the view drops the cache and fetches fresh data.
	comparison.Reopen("EAST", "CAUSTIC")
	conflicts, err = comparison.Compare(ctx, session, "EAST", "CAUSTIC")
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if len(conflicts) != 0 {
		t.Fatalf("Expected no conflicts after refetch, got %d", len(conflicts))
	}
}

func TestComparisonService_DiscardsFetchAfterViewClosed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	plans := memory.NewFinalizedPlanRepository()
	if err := plans.SavePlan(context.Background(), baselinePlan(t, "15:30")); err != nil {
		t.Fatalf("SavePlan failed: %v", err)
	}
	cancel()

	comparison := NewComparisonService(plans)
	_, err := comparison.Compare(ctx, testSession(t, 3), "EAST", "CAUSTIC")
	if !errors.Is(err, entities.ErrComparisonUnavailable) {
		t.Fatalf("Expected closed-view fetch to be discarded, got %v", err)
	}
}
