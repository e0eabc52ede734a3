package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"namdo-bot-be/internal/dto"
	"namdo-bot-be/internal/pkg/logger"
	"namdo-bot-be/internal/repository/specification"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsumerService_StoresPreferences(t *testing.T) {
	factory := setupFactory(t)
	user := seedUser(t, factory, "learner")

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { pubSub.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer := NewConsumerService(pubSub, ConversationCompletedTopic, factory, logger.NewNopLogger())
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService(ConversationCompletedTopic, pubSub)
	raw, err := json.Marshal(dto.ConversationCompletedMessage{
		SessionId:        "s-1",
		UserId:           user.Id,
		CompanionType:    "친구",
		EnergyPreference: "활기차고 신나는 분위기",
		InterestFocus:    "음식",
	})
	require.NoError(t, err)
	require.NoError(t, publisher.Publish(ctx, raw))

	assert.Eventually(t, func() bool {
		uow := factory.NewUnitOfWork(context.Background())
		prefs, err := uow.UserPreferenceRepository().FindAll(context.Background(), specification.UserOwnedBy{UserID: user.Id})
		return err == nil && len(prefs) == 3
	}, 2*time.Second, 20*time.Millisecond)

	uow := factory.NewUnitOfWork(context.Background())
	pref, err := uow.UserPreferenceRepository().FindOne(context.Background(),
		specification.UserOwnedBy{UserID: user.Id},
		specification.ByPreferenceType{Type: PreferenceFavoriteExperience},
	)
	require.NoError(t, err)
	require.NotNil(t, pref)
	assert.Equal(t, "음식", pref.PreferenceValue)
}
