package repositories

import (
	"context"

	"github.com/tkoide/drp/pkg/domain/entities"
)

// CalibrationRepository provides access to the per-plant, per-product
// configuration snapshots that seed a draft session.
type CalibrationRepository interface {
	// GetBioSetting returns the setting for a plant/product pair, or an
	// error wrapping entities.ErrSettingNotFound when none exists.
	GetBioSetting(ctx context.Context, plant entities.Plant, product entities.Product) (*entities.BioSetting, error)

	// PutBioSetting creates or replaces the setting for its plant/product pair.
	PutBioSetting(ctx context.Context, setting *entities.BioSetting) error

	// ListBioSettings returns every stored setting, ordered by plant then product.
	ListBioSettings(ctx context.Context) ([]*entities.BioSetting, error)
}
