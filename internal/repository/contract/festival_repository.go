package contract

import (
	"context"

	"namdo-bot-be/internal/entity"
	"namdo-bot-be/internal/repository/specification"
)

type FestivalRepository interface {
	// Upsert stores the festival and whichever detail records are set, keyed by content id.
	Upsert(ctx context.Context, festival *entity.Festival) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Festival, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Festival, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
