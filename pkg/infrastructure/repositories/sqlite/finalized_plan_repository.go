package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tkoide/drp/pkg/domain/entities"
	"github.com/tkoide/drp/pkg/domain/repositories"
)

// FinalizedPlanRepository implements the finalized-plan store on SQLite.
// Saving a plan replaces its event rows atomically, so it needs the concrete
// *sql.DB for transactions.
type FinalizedPlanRepository struct {
	db *sql.DB
}

// NewFinalizedPlanRepository creates a new SQLite-backed plan store.
func NewFinalizedPlanRepository(conn *sql.DB) *FinalizedPlanRepository {
	return &FinalizedPlanRepository{db: conn}
}

// Verify interface compliance
var _ repositories.FinalizedPlanRepository = (*FinalizedPlanRepository)(nil)

// GetPlan returns the finalized plan for a plant/product pair.
func (r *FinalizedPlanRepository) GetPlan(ctx context.Context, plant entities.Plant, product entities.Product) (*entities.FinalizedPlan, error) {
	query := `SELECT id, delivery_date, delivery_time, quantity_per_truck, cancelled, status
		FROM finalized_event
		WHERE plant = ? AND product = ?
		ORDER BY delivery_date, round_index`
	rows, err := r.db.QueryContext(ctx, query, string(plant), string(product))
	if err != nil {
		return nil, fmt.Errorf("querying finalized plan %s/%s: %w", plant, product, err)
	}
	defer rows.Close()

	plan := &entities.FinalizedPlan{Plant: plant, Product: product}
	for rows.Next() {
		var (
			id, dateStr, timeStr, qtyStr, statusStr string
			cancelled                               int
		)
		if err := rows.Scan(&id, &dateStr, &timeStr, &qtyStr, &cancelled, &statusStr); err != nil {
			return nil, fmt.Errorf("scanning finalized event: %w", err)
		}
		ev, err := parseFinalizedEvent(id, dateStr, timeStr, qtyStr, statusStr, cancelled)
		if err != nil {
			return nil, fmt.Errorf("finalized event %s: %w", id, err)
		}
		plan.Events = append(plan.Events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading finalized plan %s/%s: %w", plant, product, err)
	}
	if len(plan.Events) == 0 {
		return nil, fmt.Errorf("finalized plan %s/%s: %w", plant, product, entities.ErrPlanNotFound)
	}
	return plan, nil
}

// SavePlan replaces the stored plan for its plant/product pair.
func (r *FinalizedPlanRepository) SavePlan(ctx context.Context, plan *entities.FinalizedPlan) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning save of plan %s/%s: %w", plan.Plant, plan.Product, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM finalized_event WHERE plant = ? AND product = ?`,
		string(plan.Plant), string(plan.Product))
	if err != nil {
		return fmt.Errorf("clearing plan %s/%s: %w", plan.Plant, plan.Product, err)
	}

	insert := `INSERT INTO finalized_event
		(id, plant, product, delivery_date, round_index, delivery_time, quantity_per_truck, cancelled, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	roundIndex := make(map[string]int)
	for _, ev := range plan.Events {
		dateStr := ev.Date.Format(entities.DateLayout)
		idx := roundIndex[dateStr]
		roundIndex[dateStr] = idx + 1

		cancelled := 0
		if ev.Cancelled {
			cancelled = 1
		}
		_, err = tx.ExecContext(ctx, insert,
			ev.ID,
			string(plan.Plant),
			string(plan.Product),
			dateStr,
			idx,
			ev.Time.String(),
			ev.QuantityPerTruck.String(),
			cancelled,
			ev.Status.String(),
		)
		if err != nil {
			return fmt.Errorf("inserting finalized event %s: %w", ev.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing plan %s/%s: %w", plan.Plant, plan.Product, err)
	}
	return nil
}

func parseFinalizedEvent(id, dateStr, timeStr, qtyStr, statusStr string, cancelled int) (entities.FinalizedEvent, error) {
	var ev entities.FinalizedEvent

	date, err := parseDate(dateStr)
	if err != nil {
		return ev, err
	}
	t, err := entities.ParseClockTime(timeStr)
	if err != nil {
		return ev, err
	}
	qty, err := decimal.NewFromString(qtyStr)
	if err != nil {
		return ev, fmt.Errorf("parsing quantity %q: %w", qtyStr, err)
	}
	status, ok := entities.ParsePlanStatus(statusStr)
	if !ok {
		return ev, fmt.Errorf("unknown plan status %q", statusStr)
	}

	ev = entities.FinalizedEvent{
		ID:               id,
		Date:             date,
		Time:             t,
		QuantityPerTruck: qty,
		Cancelled:        cancelled != 0,
		Status:           status,
	}
	return ev, nil
}
