package sqlite

import (
	"fmt"
	"time"

	"github.com/tkoide/drp/pkg/domain/entities"
)

// parseDate parses a stored calendar date into midnight UTC.
func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(entities.DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}
