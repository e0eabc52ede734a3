package contract

import (
	"context"

	"namdo-bot-be/internal/entity"
	"namdo-bot-be/internal/repository/specification"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type UserPreferenceRepository interface {
	// Upsert inserts or replaces the preference keyed by (user_id, preference_type).
	Upsert(ctx context.Context, pref *entity.UserPreference) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UserPreference, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserPreference, error)
}
