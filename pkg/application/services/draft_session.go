package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tkoide/drp/pkg/domain/entities"
)

// DraftSession is one planner's in-progress schedule for a plant/product
// pair: the horizon, usage profile, starting stock and delivery rounds,
// together with the derived stock trace. A single editor owns a session;
// every mutating call validates first, applies atomically, then recomputes
// the full trace from day zero.
type DraftSession struct {
	plant   entities.Plant
	product entities.Product
	horizon *entities.Horizon

	profile       *entities.UsageProfile
	startingStock decimal.Decimal
	events        *entities.DeliveryEventSet

	projector *Projector
	trace     entities.StockTrace
}

// NewDraftSession opens a session seeded from a calibration snapshot. The
// usage profile covers the horizon at the snapshot's flow rate and the
// starting stock is the snapshot's morning stock. defaultTruckQuantity seeds
// rounds created by time edits on previously empty days.
func NewDraftSession(
	plant entities.Plant,
	product entities.Product,
	horizon *entities.Horizon,
	setting *entities.BioSetting,
	defaultTruckQuantity decimal.Decimal,
) (*DraftSession, error) {
	profile, err := entities.NewUsageProfile(horizon.DayCount(), setting.Flow)
	if err != nil {
		return nil, fmt.Errorf("seeding usage profile: %w", err)
	}
	if setting.Stock06.IsNegative() {
		return nil, fmt.Errorf("%w: starting stock %s is negative", entities.ErrInvalidValue, setting.Stock06)
	}
	s := &DraftSession{
		plant:         plant,
		product:       product,
		horizon:       horizon,
		profile:       profile,
		startingStock: setting.Stock06,
		events:        entities.NewDeliveryEventSet(defaultTruckQuantity),
		projector:     NewProjector(),
	}
	if err := s.reproject(); err != nil {
		return nil, err
	}
	return s, nil
}

// Plant returns the plant this session plans for.
func (s *DraftSession) Plant() entities.Plant { return s.plant }

// Product returns the product this session plans for.
func (s *DraftSession) Product() entities.Product { return s.product }

// Horizon returns the session's planning horizon.
func (s *DraftSession) Horizon() *entities.Horizon { return s.horizon }

// Events returns the session's delivery event set.
func (s *DraftSession) Events() *entities.DeliveryEventSet { return s.events }

// StartingStock returns the 06:00 stock level of the first horizon day.
func (s *DraftSession) StartingStock() decimal.Decimal { return s.startingStock }

// Trace returns the current projected stock trace.
func (s *DraftSession) Trace() entities.StockTrace { return s.trace }

// LoadEvents replaces the session's rounds wholesale, e.g. when reopening a
// saved draft, and reprojects.
func (s *DraftSession) LoadEvents(events *entities.DeliveryEventSet) error {
	s.events = events
	return s.reproject()
}

// AddDelivery schedules a new round and reprojects.
func (s *DraftSession) AddDelivery(date time.Time, t entities.ClockTime, quantityPerTruck decimal.Decimal) (*entities.DeliveryEvent, error) {
	ev, err := s.events.Add(date, t, quantityPerTruck)
	if err != nil {
		return nil, err
	}
	return ev, s.reproject()
}

// CancelDelivery soft-deletes a round and reprojects.
func (s *DraftSession) CancelDelivery(date time.Time, index int) error {
	if err := s.events.Cancel(date, index); err != nil {
		return err
	}
	return s.reproject()
}

// RestoreDelivery reinstates a cancelled round and reprojects.
func (s *DraftSession) RestoreDelivery(date time.Time, index int) error {
	if err := s.events.Restore(date, index); err != nil {
		return err
	}
	return s.reproject()
}

// RemoveDelivery hard-deletes a round and reprojects.
func (s *DraftSession) RemoveDelivery(date time.Time, index int) error {
	if err := s.events.Remove(date, index); err != nil {
		return err
	}
	return s.reproject()
}

// SetRoundTimes replaces a date's ordered time list and reprojects. The note
// is the planner's recorded justification; it must be non-empty, and the edit
// must leave at least one valid round on the date.
func (s *DraftSession) SetRoundTimes(date time.Time, times []entities.ClockTime, note string) error {
	if err := s.events.SetRoundTimes(date, times, note); err != nil {
		return err
	}
	return s.reproject()
}

// EditQuantity changes one round's per-truck quantity and reprojects. A
// rejected edit leaves both the value and the trace untouched.
func (s *DraftSession) EditQuantity(date time.Time, index int, quantity decimal.Decimal) error {
	if err := s.events.EditQuantity(date, index, quantity); err != nil {
		return err
	}
	return s.reproject()
}

// SetStartingStock changes the opening stock level and reprojects.
func (s *DraftSession) SetStartingStock(v decimal.Decimal) error {
	if v.IsNegative() {
		return fmt.Errorf("%w: starting stock %s is negative", entities.ErrInvalidValue, v)
	}
	s.startingStock = v
	return s.reproject()
}

// SetUsageAll overwrites every usage slot with one rate and reprojects.
func (s *DraftSession) SetUsageAll(rate decimal.Decimal) error {
	if err := s.profile.SetAll(rate); err != nil {
		return err
	}
	return s.reproject()
}

// SetUsageDay overwrites one usage slot and reprojects.
func (s *DraftSession) SetUsageDay(dayIndex int, rate decimal.Decimal) error {
	if err := s.profile.SetDay(dayIndex, rate); err != nil {
		return err
	}
	return s.reproject()
}

// UsageRate returns the consumption rate applied to a day index, including
// the last-value fallback past the configured range.
func (s *DraftSession) UsageRate(dayIndex int) (decimal.Decimal, error) {
	return s.profile.Rate(dayIndex)
}

// Recalibrate reseeds the profile and starting stock from a calibration
// snapshot. A previously saved per-day override takes precedence over the
// snapshot's flat flow; delivery rounds are never touched.
func (s *DraftSession) Recalibrate(setting *entities.BioSetting, override []decimal.Decimal) error {
	var profile *entities.UsageProfile
	var err error
	if len(override) > 0 {
		profile, err = entities.NewUsageProfileFromRates(override)
	} else {
		profile, err = entities.NewUsageProfile(s.horizon.DayCount(), setting.Flow)
	}
	if err != nil {
		return fmt.Errorf("recalibrating usage profile: %w", err)
	}
	if setting.Stock06.IsNegative() {
		return fmt.Errorf("%w: starting stock %s is negative", entities.ErrInvalidValue, setting.Stock06)
	}
	s.profile = profile
	s.startingStock = setting.Stock06
	return s.reproject()
}

func (s *DraftSession) reproject() error {
	trace, err := s.projector.Project(s.startingStock, s.profile, s.events, s.horizon)
	if err != nil {
		return fmt.Errorf("projecting stock trace: %w", err)
	}
	s.trace = trace
	return nil
}
