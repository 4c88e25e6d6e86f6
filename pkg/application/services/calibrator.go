package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tkoide/drp/pkg/domain/entities"
	"github.com/tkoide/drp/pkg/domain/repositories"
)

// Calibrator resolves the default morning stock and daily flow for a
// plant/product pair from the configuration store, falling back to an
// injected per-product default table.
type Calibrator struct {
	settings repositories.CalibrationRepository
	defaults entities.DefaultTable
}

// NewCalibrator creates a calibrator over the given store and fallback table.
func NewCalibrator(settings repositories.CalibrationRepository, defaults entities.DefaultTable) *Calibrator {
	return &Calibrator{settings: settings, defaults: defaults}
}

// CalibrationResult is a resolved seed for a draft session.
type CalibrationResult struct {
	Setting *entities.BioSetting
	// DeliveryAmount is the product's default per-truck quantity.
	DeliveryAmount decimal.Decimal
	// FromDefaults reports that the configuration store had no usable
	// snapshot and the fallback table supplied the values.
	FromDefaults bool
}

// Resolve reads the configuration snapshot for a plant/product pair. Store
// misses and read errors fail soft: the injected defaults are returned
// instead so the draft session can always open. A product missing from both
// the store and the default table is the only hard failure.
func (c *Calibrator) Resolve(ctx context.Context, plant entities.Plant, product entities.Product) (*CalibrationResult, error) {
	def, hasDefault := c.defaults[product]

	setting, err := c.settings.GetBioSetting(ctx, plant, product)
	if err == nil {
		amount := def.DeliveryAmount
		if !hasDefault {
			amount = decimal.Zero
		}
		return &CalibrationResult{Setting: setting, DeliveryAmount: amount}, nil
	}

	if !hasDefault {
		return nil, fmt.Errorf("resolving calibration for %s/%s: %w", plant, product, err)
	}
	return &CalibrationResult{
		Setting: &entities.BioSetting{
			Plant:   plant,
			Product: product,
			Stock06: def.MorningStock,
			Flow:    def.DailyUsage,
		},
		DeliveryAmount: def.DeliveryAmount,
		FromDefaults:   true,
	}, nil
}

// Apply writes the resolved flow into every slot of the session's usage
// profile and sets the starting stock. A previously saved per-day override
// takes precedence over the flat flow. Delivery rounds are never touched.
func (c *Calibrator) Apply(result *CalibrationResult, session *DraftSession, override []decimal.Decimal) error {
	return session.Recalibrate(result.Setting, override)
}

// OpenSession resolves calibration and opens a draft session seeded with it.
func (c *Calibrator) OpenSession(
	ctx context.Context,
	plant entities.Plant,
	product entities.Product,
	horizon *entities.Horizon,
) (*DraftSession, error) {
	result, err := c.Resolve(ctx, plant, product)
	if err != nil {
		return nil, err
	}
	return NewDraftSession(plant, product, horizon, result.Setting, result.DeliveryAmount)
}
