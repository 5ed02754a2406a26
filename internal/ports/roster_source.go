package ports

import (
	"context"

	"github.com/seatwise/seatplan/internal/domain"
)

// RosterSource supplies the ordered student records for a run. Implementers
// normalize missing or unparseable times to the sentinel minimum and compute
// the requires-adjustable flag from the accommodation text.
type RosterSource interface {
	Read(ctx context.Context, path string) ([]domain.Student, error)
}
