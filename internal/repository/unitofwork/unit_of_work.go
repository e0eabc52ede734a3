package unitofwork

import (
	"context"

	"namdo-bot-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	UserPreferenceRepository() contract.UserPreferenceRepository
	ConversationRepository() contract.ConversationRepository
	ConversationMessageRepository() contract.ConversationMessageRepository
	FestivalRepository() contract.FestivalRepository
}
