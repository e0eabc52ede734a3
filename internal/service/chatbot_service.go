package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"namdo-bot-be/internal/dto"
	"namdo-bot-be/internal/entity"
	"namdo-bot-be/internal/metrics"
	"namdo-bot-be/internal/pkg/logger"
	"namdo-bot-be/internal/repository/specification"
	"namdo-bot-be/internal/repository/unitofwork"
	"namdo-bot-be/pkg/conversation"
	"namdo-bot-be/pkg/events"

	"github.com/google/uuid"
)

type IChatbotService interface {
	Initialize(ctx context.Context, userId uuid.UUID, req *dto.InitializeChatRequest) (*dto.ChatResponse, error)
	Greeting(ctx context.Context, userId uuid.UUID, req *dto.GreetingRequest) (*dto.GreetingResponse, error)
	Chat(ctx context.Context, userId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error)
	ListSessions(ctx context.Context, userId uuid.UUID) ([]dto.ConversationSummary, error)
	GetMessages(ctx context.Context, userId uuid.UUID, sessionId string) ([]dto.MessageResponse, error)
}

type chatbotService struct {
	uowFactory     unitofwork.RepositoryFactory
	scenario       *conversation.Scenario
	publisher      IPublisherService
	eventPublisher events.Publisher
	logger         logger.ILogger
}

func NewChatbotService(
	uowFactory unitofwork.RepositoryFactory,
	scenario *conversation.Scenario,
	publisher IPublisherService,
	eventPublisher events.Publisher,
	log logger.ILogger,
) IChatbotService {
	return &chatbotService{
		uowFactory:     uowFactory,
		scenario:       scenario,
		publisher:      publisher,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *chatbotService) Initialize(ctx context.Context, userId uuid.UUID, req *dto.InitializeChatRequest) (*dto.ChatResponse, error) {
	conv, message, options, err := s.start(ctx, userId, req.TravelPeriod, req.CompanionType, req.HasPets, req.ChildAgeGroup)
	if err != nil {
		return nil, err
	}
	return &dto.ChatResponse{
		SessionId:  conv.SessionId,
		Message:    message,
		TurnNumber: 1,
		Phase:      conv.Phase,
		Options:    options,
		IsFinal:    false,
	}, nil
}

func (s *chatbotService) Greeting(ctx context.Context, userId uuid.UUID, req *dto.GreetingRequest) (*dto.GreetingResponse, error) {
	conv, message, options, err := s.start(ctx, userId, req.TravelPeriod, req.CompanionType, false, nil)
	if err != nil {
		return nil, err
	}
	greeting, question := splitQuestion(message)
	return &dto.GreetingResponse{
		GreetingMessage: greeting,
		NextQuestion:    question,
		Choices:         options,
		SessionId:       conv.SessionId,
	}, nil
}

// start creates the conversation and stores the opening message as turn 1.
func (s *chatbotService) start(
	ctx context.Context,
	userId uuid.UUID,
	travelPeriod, companionType string,
	hasPets bool,
	childAgeGroup *string,
) (*entity.Conversation, string, []string, error) {
	attrs := conversation.Attributes{
		TravelPeriod:  strings.TrimSpace(travelPeriod),
		CompanionType: strings.TrimSpace(companionType),
		HasPets:       hasPets,
	}
	message, options, err := s.scenario.Opening(attrs)
	if err != nil {
		return nil, "", nil, err
	}

	conv := &entity.Conversation{
		SessionId:     uuid.NewString(),
		UserId:        userId,
		Phase:         string(conversation.PhaseInitial),
		Status:        entity.ConversationStatusActive,
		TravelPeriod:  attrs.TravelPeriod,
		CompanionType: attrs.CompanionType,
		HasPets:       hasPets,
		ChildAgeGroup: childAgeGroup,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, "", nil, err
	}
	defer uow.Rollback()

	if err := uow.ConversationRepository().Create(ctx, conv); err != nil {
		return nil, "", nil, err
	}
	if err := uow.ConversationMessageRepository().Create(ctx, &entity.ConversationMessage{
		ConversationId: conv.Id,
		Role:           entity.MessageRoleAssistant,
		Content:        message,
		TurnNumber:     1,
	}); err != nil {
		return nil, "", nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, "", nil, err
	}

	s.logger.Info("CHATBOT", "Conversation started", map[string]interface{}{
		"session_id": conv.SessionId,
		"user_id":    userId.String(),
	})
	return conv, message, options, nil
}

func (s *chatbotService) Chat(ctx context.Context, userId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	conv, err := findOwnedConversation(ctx, uow, userId, req.SessionId)
	if err != nil {
		return nil, err
	}
	if conv.Status == entity.ConversationStatusCompleted {
		return nil, conversation.ErrConversationCompleted
	}

	attrs := attributesOf(conv)
	tr, err := s.scenario.Advance(conversation.Phase(conv.Phase), &attrs, req.SelectedOption, req.UserResponse)
	if err != nil {
		return nil, err
	}

	userText := strings.TrimSpace(req.SelectedOption)
	if userText == "" {
		userText = strings.TrimSpace(req.UserResponse)
	}

	last, err := uow.ConversationMessageRepository().LastTurnNumber(ctx, conv.Id)
	if err != nil {
		return nil, err
	}
	turns := []*entity.ConversationMessage{
		{ConversationId: conv.Id, Role: entity.MessageRoleUser, Content: userText, TurnNumber: last + 1},
		{ConversationId: conv.Id, Role: entity.MessageRoleAssistant, Content: tr.Message, TurnNumber: last + 2},
	}
	for _, m := range turns {
		if err := uow.ConversationMessageRepository().Create(ctx, m); err != nil {
			return nil, err
		}
	}

	conv.Phase = string(tr.To)
	conv.EnergyPreference = attrs.EnergyPreference
	conv.InterestFocus = attrs.InterestFocus
	conv.AdditionalRequirements = attrs.AdditionalRequirements
	if tr.IsFinal {
		now := time.Now()
		conv.Status = entity.ConversationStatusCompleted
		conv.CompletedAt = &now
	}
	if err := uow.ConversationRepository().Update(ctx, conv); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if tr.IsFinal {
		s.onCompleted(ctx, conv)
	}

	return &dto.ChatResponse{
		SessionId:  conv.SessionId,
		Message:    tr.Message,
		TurnNumber: last + 2,
		Phase:      string(tr.To),
		Options:    tr.Options,
		IsFinal:    tr.IsFinal,
	}, nil
}

// onCompleted fans the completion out to the preference consumer and the
// external bus. Failures are logged, the user's turn has already been stored.
func (s *chatbotService) onCompleted(ctx context.Context, conv *entity.Conversation) {
	metrics.ConversationsCompleted.Inc()

	payload := dto.ConversationCompletedMessage{
		ConversationId:   conv.Id,
		SessionId:        conv.SessionId,
		UserId:           conv.UserId,
		CompanionType:    conv.CompanionType,
		EnergyPreference: conv.EnergyPreference,
		InterestFocus:    conv.InterestFocus,
	}
	if raw, err := json.Marshal(payload); err == nil {
		if err := s.publisher.Publish(ctx, raw); err != nil {
			s.logger.Warn("CHATBOT", "Failed to publish completion", map[string]interface{}{"error": err.Error()})
		}
	}

	evt := events.New(events.TypeConversationCompleted, map[string]interface{}{
		"session_id":        conv.SessionId,
		"user_id":           conv.UserId.String(),
		"travel_period":     conv.TravelPeriod,
		"companion_type":    conv.CompanionType,
		"energy_preference": conv.EnergyPreference,
		"interest_focus":    conv.InterestFocus,
	})
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("CHATBOT", "Failed to publish event", map[string]interface{}{"error": err.Error()})
	}
}

func (s *chatbotService) ListSessions(ctx context.Context, userId uuid.UUID) ([]dto.ConversationSummary, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	convs, err := uow.ConversationRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]dto.ConversationSummary, len(convs))
	for i, c := range convs {
		res[i] = dto.ConversationSummary{
			SessionId:        c.SessionId,
			Phase:            c.Phase,
			Status:           string(c.Status),
			TravelPeriod:     c.TravelPeriod,
			CompanionType:    c.CompanionType,
			HasPets:          c.HasPets,
			EnergyPreference: c.EnergyPreference,
			InterestFocus:    c.InterestFocus,
			CreatedAt:        c.CreatedAt,
			CompletedAt:      c.CompletedAt,
		}
	}
	return res, nil
}

func (s *chatbotService) GetMessages(ctx context.Context, userId uuid.UUID, sessionId string) ([]dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	conv, err := findOwnedConversation(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}

	msgs, err := uow.ConversationMessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: conv.Id},
		specification.OrderBy{Field: "turn_number"},
	)
	if err != nil {
		return nil, err
	}

	res := make([]dto.MessageResponse, len(msgs))
	for i, m := range msgs {
		res[i] = dto.MessageResponse{
			Role:       m.Role,
			Content:    m.Content,
			TurnNumber: m.TurnNumber,
			CreatedAt:  m.CreatedAt,
		}
	}
	return res, nil
}

func findOwnedConversation(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, sessionId string) (*entity.Conversation, error) {
	conv, err := uow.ConversationRepository().FindOne(ctx, specification.BySessionID{SessionID: sessionId})
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, ErrSessionNotFound
	}
	if conv.UserId != userId {
		return nil, ErrSessionForbidden
	}
	return conv, nil
}

func attributesOf(c *entity.Conversation) conversation.Attributes {
	return conversation.Attributes{
		TravelPeriod:           c.TravelPeriod,
		CompanionType:          c.CompanionType,
		HasPets:                c.HasPets,
		EnergyPreference:       c.EnergyPreference,
		InterestFocus:          c.InterestFocus,
		AdditionalRequirements: c.AdditionalRequirements,
		Status:                 string(c.Status),
	}
}

// splitQuestion separates the trailing question sentence from the greeting.
func splitQuestion(message string) (greeting, question string) {
	trimmed := strings.TrimSpace(message)
	body := strings.TrimRight(trimmed, "?")
	cut := strings.LastIndexAny(body, ".!")
	if cut < 0 {
		return trimmed, ""
	}
	return strings.TrimSpace(trimmed[:cut+1]), strings.TrimSpace(trimmed[cut+1:])
}
