package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tkoide/drp/pkg/domain/entities"
)

// Projector computes the four-checkpoint stock trace for a horizon. It is a
// pure function of its inputs: no I/O, no retained state, identical inputs
// produce identical traces.
type Projector struct{}

// NewProjector creates a new Projector.
func NewProjector() *Projector {
	return &Projector{}
}

// Project iterates the horizon in day order and chains each day's 06:00 level
// to the previous day's 20:00 level. Day i strictly depends on the closing
// stock of day i-1, so the loop is sequential by construction.
//
// Per day: stock06 = previous stock20 (starting stock on day 0);
// pre-delivery = stock06 (consumption is charged as a single daily remainder
// at the 20:00 checkpoint); post-delivery = pre-delivery + delivered
// quantity; stock20 = post-delivery - usage rate. Negative results are kept
// as-is: a negative stock20 is a stock-out signal, not an error.
func (p *Projector) Project(
	startingStock decimal.Decimal,
	profile *entities.UsageProfile,
	events *entities.DeliveryEventSet,
	horizon *entities.Horizon,
) (entities.StockTrace, error) {
	days := horizon.DayCount()
	trace := make(entities.StockTrace, days)

	carry := startingStock
	for i := 0; i < days; i++ {
		date := horizon.Date(i)
		rate, err := profile.Rate(i)
		if err != nil {
			return nil, fmt.Errorf("usage rate for day %d: %w", i, err)
		}

		stock06 := carry
		pre := stock06
		post := pre.Add(events.DeliveryQuantity(date))
		stock20 := post.Sub(rate)

		trace[i] = entities.DayStock{
			Date:              date,
			Stock06:           stock06,
			StockPreDelivery:  pre,
			StockPostDelivery: post,
			Stock20:           stock20,
		}
		carry = stock20
	}
	return trace, nil
}
