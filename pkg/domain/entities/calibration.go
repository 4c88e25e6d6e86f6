package entities

import (
	"github.com/shopspring/decimal"
)

// BioSetting is the per-plant, per-product default seed for a draft session:
// the 06:00 morning stock and the daily consumption flow. It is owned by a
// separate configuration service; the engine treats it as an immutable
// snapshot taken at calibration time.
type BioSetting struct {
	Plant   Plant
	Product Product
	Stock06 decimal.Decimal
	Flow    decimal.Decimal
}

// ProductDefaults is the baked-in fallback used when no BioSetting exists for
// a plant/product pair or the configuration store cannot be read.
type ProductDefaults struct {
	DeliveryAmount decimal.Decimal
	DailyUsage     decimal.Decimal
	MorningStock   decimal.Decimal
}

// DefaultTable maps products to their fallback defaults.
type DefaultTable map[Product]ProductDefaults

// BuiltinDefaults returns the shipped per-product fallback table for the six
// dispatched chemicals.
func BuiltinDefaults() DefaultTable {
	return DefaultTable{
		"PAC": {
			DeliveryAmount: decimal.NewFromInt(10),
			DailyUsage:     decimal.NewFromFloat(4.5),
			MorningStock:   decimal.NewFromInt(30),
		},
		"CAUSTIC": {
			DeliveryAmount: decimal.NewFromInt(10),
			DailyUsage:     decimal.NewFromInt(3),
			MorningStock:   decimal.NewFromInt(25),
		},
		"HYPO": {
			DeliveryAmount: decimal.NewFromInt(8),
			DailyUsage:     decimal.NewFromFloat(2.5),
			MorningStock:   decimal.NewFromInt(20),
		},
		"FERRIC": {
			DeliveryAmount: decimal.NewFromInt(10),
			DailyUsage:     decimal.NewFromInt(2),
			MorningStock:   decimal.NewFromInt(18),
		},
		"POLYMER": {
			DeliveryAmount: decimal.NewFromInt(4),
			DailyUsage:     decimal.NewFromFloat(0.5),
			MorningStock:   decimal.NewFromInt(6),
		},
		"CARBON": {
			DeliveryAmount: decimal.NewFromInt(6),
			DailyUsage:     decimal.NewFromInt(1),
			MorningStock:   decimal.NewFromInt(12),
		},
	}
}
