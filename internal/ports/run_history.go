package ports

import (
	"context"

	"github.com/seatwise/seatplan/internal/domain"
)

type RunHistory interface {
	Append(ctx context.Context, record domain.RunRecord) (domain.RunRecord, error)
	List(ctx context.Context) ([]domain.RunRecord, error)
	Clear(ctx context.Context) (int64, error)
}
