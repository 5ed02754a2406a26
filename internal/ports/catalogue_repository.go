package ports

import (
	"context"

	"github.com/seatwise/seatplan/internal/domain"
)

type CatalogueRepository interface {
	Load(ctx context.Context) (domain.Catalogue, error)
	Save(ctx context.Context, catalogue domain.Catalogue) error
}
