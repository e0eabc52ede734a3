package service

import (
	"context"
	"encoding/json"

	"namdo-bot-be/internal/dto"
	"namdo-bot-be/internal/entity"
	"namdo-bot-be/internal/pkg/logger"
	"namdo-bot-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
)

// Preference types remembered from completed conversations.
const (
	PreferenceDefaultCompanion   = "default_companion"
	PreferenceFavoriteExperience = "favorite_experience"
	PreferenceEnergy             = "energy_preference"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ConversationCompletedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("CONSUMER", "Failed to unmarshal message", map[string]interface{}{"error": err})
		msg.Ack() // malformed payloads are never retried
		return
	}

	prefs := []*entity.UserPreference{
		{UserId: payload.UserId, PreferenceType: PreferenceDefaultCompanion, PreferenceValue: payload.CompanionType},
		{UserId: payload.UserId, PreferenceType: PreferenceFavoriteExperience, PreferenceValue: payload.InterestFocus},
		{UserId: payload.UserId, PreferenceType: PreferenceEnergy, PreferenceValue: payload.EnergyPreference},
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		cs.logger.Error("CONSUMER", "Failed to begin transaction", map[string]interface{}{"error": err})
		msg.Nack()
		return
	}
	defer uow.Rollback()

	for _, p := range prefs {
		if p.PreferenceValue == "" {
			continue
		}
		if err := uow.UserPreferenceRepository().Upsert(ctx, p); err != nil {
			cs.logger.Error("CONSUMER", "Failed to save preference", map[string]interface{}{
				"error":           err,
				"preference_type": p.PreferenceType,
				"session_id":      payload.SessionId,
			})
			msg.Nack()
			return
		}
	}

	if err := uow.Commit(); err != nil {
		cs.logger.Error("CONSUMER", "Failed to commit preferences", map[string]interface{}{"error": err})
		msg.Nack()
		return
	}

	cs.logger.Info("CONSUMER", "Preferences learned from conversation", map[string]interface{}{
		"session_id": payload.SessionId,
		"user_id":    payload.UserId.String(),
	})
	msg.Ack()
}
