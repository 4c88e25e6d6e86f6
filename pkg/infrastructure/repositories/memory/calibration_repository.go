package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/tkoide/drp/pkg/domain/entities"
	"github.com/tkoide/drp/pkg/domain/repositories"
)

// CalibrationRepository provides in-memory calibration storage for tests and
// demos.
type CalibrationRepository struct {
	mu       sync.RWMutex
	settings map[string]*entities.BioSetting
}

// NewCalibrationRepository creates a new in-memory calibration store.
func NewCalibrationRepository() *CalibrationRepository {
	return &CalibrationRepository{settings: make(map[string]*entities.BioSetting)}
}

// Verify interface compliance
var _ repositories.CalibrationRepository = (*CalibrationRepository)(nil)

// GetBioSetting returns the setting for a plant/product pair.
func (r *CalibrationRepository) GetBioSetting(ctx context.Context, plant entities.Plant, product entities.Product) (*entities.BioSetting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	setting, ok := r.settings[settingKey(plant, product)]
	if !ok {
		return nil, fmt.Errorf("bio setting %s/%s: %w", plant, product, entities.ErrSettingNotFound)
	}
	copied := *setting
	return &copied, nil
}

// PutBioSetting creates or replaces the setting for its plant/product pair.
func (r *CalibrationRepository) PutBioSetting(ctx context.Context, setting *entities.BioSetting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *setting
	r.settings[settingKey(setting.Plant, setting.Product)] = &copied
	return nil
}

// ListBioSettings returns every stored setting, ordered by plant then product.
func (r *CalibrationRepository) ListBioSettings(ctx context.Context) ([]*entities.BioSetting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.settings))
	for k := range r.settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*entities.BioSetting, 0, len(keys))
	for _, k := range keys {
		copied := *r.settings[k]
		out = append(out, &copied)
	}
	return out, nil
}

func settingKey(plant entities.Plant, product entities.Product) string {
	return string(plant) + "/" + string(product)
}
