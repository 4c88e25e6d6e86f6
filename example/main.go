// Command example demonstrates the planning engine end to end with in-memory
// stores: open a calibrated draft session, schedule deliveries, project the
// stock trace, and compare against a finalized plan.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tkoide/drp/pkg/application/services"
	"github.com/tkoide/drp/pkg/domain/entities"
	"github.com/tkoide/drp/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()

	settings := memory.NewCalibrationRepository()
	settings.PutBioSetting(ctx, &entities.BioSetting{
		Plant:   "EAST",
		Product: "HYPO",
		Stock06: decimal.NewFromInt(50),
		Flow:    decimal.NewFromInt(10),
	})

	calibrator := services.NewCalibrator(settings, entities.BuiltinDefaults())

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	horizon, err := entities.NewHorizonDays(start, 3)
	if err != nil {
		panic(err)
	}

	session, err := calibrator.OpenSession(ctx, "EAST", "HYPO", horizon)
	if err != nil {
		panic(err)
	}

	arrival, _ := entities.ParseClockTime("14:00")
	if _, err := session.AddDelivery(start.AddDate(0, 0, 2), arrival, decimal.NewFromInt(30)); err != nil {
		panic(err)
	}

	fmt.Println("Projected trace:")
	for i, day := range session.Trace() {
		fmt.Printf("  day %d (%s): 06=%s pre=%s post=%s 20=%s\n",
			i,
			day.Date.Format(entities.DateLayout),
			day.Stock06.StringFixed(1),
			day.StockPreDelivery.StringFixed(1),
			day.StockPostDelivery.StringFixed(1),
			day.Stock20.StringFixed(1))
	}

	plans := memory.NewFinalizedPlanRepository()
	baselineTime, _ := entities.ParseClockTime("15:30")
	plans.SavePlan(ctx, &entities.FinalizedPlan{
		Plant:   "EAST",
		Product: "CAUSTIC",
		Events: []entities.FinalizedEvent{{
			ID:               "base-1",
			Date:             start.AddDate(0, 0, 2),
			Time:             baselineTime,
			QuantityPerTruck: decimal.NewFromInt(10),
			Status:           entities.StatusConfirmed,
		}},
	})

	comparison := services.NewComparisonService(plans)
	conflicts, err := comparison.Compare(ctx, session, "EAST", "CAUSTIC")
	if err != nil {
		panic(err)
	}
	fmt.Printf("Conflicts against EAST/CAUSTIC: %d\n", len(conflicts))
	for _, c := range conflicts {
		fmt.Printf("  %s: draft %s vs baseline %s\n",
			c.EventA.Date.Format(entities.DateLayout), c.EventA.Time, c.EventB.Time)
	}
}
