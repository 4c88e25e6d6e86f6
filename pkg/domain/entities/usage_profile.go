package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// UsageProfile is the per-day consumption-rate table for a draft session,
// aligned to the horizon's day index. Lookups past the configured range fall
// back to the last configured value, so extending a horizon without
// recalibrating keeps projecting with the most recent rate.
type UsageProfile struct {
	rates []decimal.Decimal
}

// NewUsageProfile creates a profile of the given length with every slot set
// to rate.
func NewUsageProfile(days int, rate decimal.Decimal) (*UsageProfile, error) {
	if days < 1 {
		return nil, fmt.Errorf("usage profile must cover at least one day, got %d", days)
	}
	if rate.IsNegative() {
		return nil, fmt.Errorf("%w: usage rate %s is negative", ErrInvalidValue, rate)
	}
	rates := make([]decimal.Decimal, days)
	for i := range rates {
		rates[i] = rate
	}
	return &UsageProfile{rates: rates}, nil
}

// NewUsageProfileFromRates creates a profile from an explicit per-day slice,
// such as a previously saved override.
func NewUsageProfileFromRates(rates []decimal.Decimal) (*UsageProfile, error) {
	if len(rates) == 0 {
		return nil, fmt.Errorf("usage profile must cover at least one day")
	}
	for i, r := range rates {
		if r.IsNegative() {
			return nil, fmt.Errorf("%w: usage rate %s at day %d is negative", ErrInvalidValue, r, i)
		}
	}
	p := &UsageProfile{rates: make([]decimal.Decimal, len(rates))}
	copy(p.rates, rates)
	return p, nil
}

// Len returns the number of configured days.
func (p *UsageProfile) Len() int {
	return len(p.rates)
}

// Rate returns the consumption rate for a day index. Indexes past the
// configured range return the last configured value; negative indexes fail.
func (p *UsageProfile) Rate(dayIndex int) (decimal.Decimal, error) {
	if dayIndex < 0 {
		return decimal.Zero, fmt.Errorf("%w: day index %d", ErrIndexOutOfRange, dayIndex)
	}
	if dayIndex >= len(p.rates) {
		return p.rates[len(p.rates)-1], nil
	}
	return p.rates[dayIndex], nil
}

// SetAll overwrites every slot with one value.
func (p *UsageProfile) SetAll(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return fmt.Errorf("%w: usage rate %s is negative", ErrInvalidValue, rate)
	}
	for i := range p.rates {
		p.rates[i] = rate
	}
	return nil
}

// SetDay overwrites a single slot.
func (p *UsageProfile) SetDay(dayIndex int, rate decimal.Decimal) error {
	if dayIndex < 0 || dayIndex >= len(p.rates) {
		return fmt.Errorf("%w: day index %d of %d", ErrIndexOutOfRange, dayIndex, len(p.rates))
	}
	if rate.IsNegative() {
		return fmt.Errorf("%w: usage rate %s is negative", ErrInvalidValue, rate)
	}
	p.rates[dayIndex] = rate
	return nil
}

// Rates returns a copy of the configured per-day rates.
func (p *UsageProfile) Rates() []decimal.Decimal {
	out := make([]decimal.Decimal, len(p.rates))
	copy(out, p.rates)
	return out
}
