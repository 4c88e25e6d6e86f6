package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tkoide/drp/pkg/domain/entities"
	"github.com/tkoide/drp/pkg/domain/repositories"
	"github.com/tkoide/drp/pkg/infrastructure/db"
)

// CalibrationRepository implements the calibration store on SQLite.
type CalibrationRepository struct {
	db db.DBTX
}

// NewCalibrationRepository creates a new SQLite-backed calibration store.
func NewCalibrationRepository(conn db.DBTX) *CalibrationRepository {
	return &CalibrationRepository{db: conn}
}

// Verify interface compliance
var _ repositories.CalibrationRepository = (*CalibrationRepository)(nil)

// GetBioSetting returns the setting for a plant/product pair.
func (r *CalibrationRepository) GetBioSetting(ctx context.Context, plant entities.Plant, product entities.Product) (*entities.BioSetting, error) {
	query := `SELECT stock06, flow FROM bio_setting WHERE plant = ? AND product = ?`
	row := r.db.QueryRowContext(ctx, query, string(plant), string(product))

	var stock06, flow string
	if err := row.Scan(&stock06, &flow); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("bio setting %s/%s: %w", plant, product, entities.ErrSettingNotFound)
		}
		return nil, fmt.Errorf("scanning bio setting %s/%s: %w", plant, product, err)
	}

	setting := &entities.BioSetting{Plant: plant, Product: product}
	var err error
	if setting.Stock06, err = decimal.NewFromString(stock06); err != nil {
		return nil, fmt.Errorf("parsing stock06 %q: %w", stock06, err)
	}
	if setting.Flow, err = decimal.NewFromString(flow); err != nil {
		return nil, fmt.Errorf("parsing flow %q: %w", flow, err)
	}
	return setting, nil
}

// PutBioSetting creates or replaces the setting for its plant/product pair.
func (r *CalibrationRepository) PutBioSetting(ctx context.Context, setting *entities.BioSetting) error {
	query := `INSERT OR REPLACE INTO bio_setting (plant, product, stock06, flow, updated_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		string(setting.Plant),
		string(setting.Product),
		setting.Stock06.String(),
		setting.Flow.String(),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting bio setting %s/%s: %w", setting.Plant, setting.Product, err)
	}
	return nil
}

// ListBioSettings returns every stored setting, ordered by plant then product.
func (r *CalibrationRepository) ListBioSettings(ctx context.Context) ([]*entities.BioSetting, error) {
	query := `SELECT plant, product, stock06, flow FROM bio_setting ORDER BY plant, product`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing bio settings: %w", err)
	}
	defer rows.Close()

	var settings []*entities.BioSetting
	for rows.Next() {
		var plant, product, stock06, flow string
		if err := rows.Scan(&plant, &product, &stock06, &flow); err != nil {
			return nil, fmt.Errorf("scanning bio setting: %w", err)
		}
		s := &entities.BioSetting{Plant: entities.Plant(plant), Product: entities.Product(product)}
		if s.Stock06, err = decimal.NewFromString(stock06); err != nil {
			return nil, fmt.Errorf("parsing stock06 %q: %w", stock06, err)
		}
		if s.Flow, err = decimal.NewFromString(flow); err != nil {
			return nil, fmt.Errorf("parsing flow %q: %w", flow, err)
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}
