package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// DayStock holds the four checkpoint stock levels for one day of the horizon:
// 06:00, pre-delivery, post-delivery and 20:00. Values are not clamped; a
// negative Stock20 is valid output signaling a stock-out.
type DayStock struct {
	Date              time.Time
	Stock06           decimal.Decimal
	StockPreDelivery  decimal.Decimal
	StockPostDelivery decimal.Decimal
	Stock20           decimal.Decimal
}

// StockTrace is the derived day-by-day checkpoint chain for a horizon. It is
// never edited directly; any upstream mutation recomputes it in full.
type StockTrace []DayStock
