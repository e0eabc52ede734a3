package mapper

import (
	"namdo-bot-be/internal/entity"
	"namdo-bot-be/internal/model"

	"gorm.io/datatypes"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) ToEntity(c *model.Conversation) *entity.Conversation {
	if c == nil {
		return nil
	}
	return &entity.Conversation{
		Id:                     c.Id,
		SessionId:              c.SessionId,
		UserId:                 c.UserId,
		Phase:                  c.Phase,
		Status:                 entity.ConversationStatus(c.Status),
		TravelPeriod:           c.TravelPeriod,
		CompanionType:          c.CompanionType,
		HasPets:                c.HasPets,
		ChildAgeGroup:          c.ChildAgeGroup,
		EnergyPreference:       c.EnergyPreference,
		InterestFocus:          c.InterestFocus,
		AdditionalRequirements: c.AdditionalRequirements,
		FinalResult:            []byte(c.FinalResult),
		CompletedAt:            c.CompletedAt,
		CreatedAt:              c.CreatedAt,
		UpdatedAt:              c.UpdatedAt,
	}
}

func (m *ConversationMapper) ToModel(c *entity.Conversation) *model.Conversation {
	if c == nil {
		return nil
	}
	var result datatypes.JSON
	if len(c.FinalResult) > 0 {
		result = datatypes.JSON(c.FinalResult)
	}
	return &model.Conversation{
		Id:                     c.Id,
		SessionId:              c.SessionId,
		UserId:                 c.UserId,
		Phase:                  c.Phase,
		Status:                 string(c.Status),
		TravelPeriod:           c.TravelPeriod,
		CompanionType:          c.CompanionType,
		HasPets:                c.HasPets,
		ChildAgeGroup:          c.ChildAgeGroup,
		EnergyPreference:       c.EnergyPreference,
		InterestFocus:          c.InterestFocus,
		AdditionalRequirements: c.AdditionalRequirements,
		FinalResult:            result,
		CompletedAt:            c.CompletedAt,
		CreatedAt:              c.CreatedAt,
		UpdatedAt:              c.UpdatedAt,
	}
}

func (m *ConversationMapper) MessageToEntity(msg *model.ConversationMessage) *entity.ConversationMessage {
	if msg == nil {
		return nil
	}
	return &entity.ConversationMessage{
		Id:             msg.Id,
		ConversationId: msg.ConversationId,
		Role:           msg.Role,
		Content:        msg.Content,
		TurnNumber:     msg.TurnNumber,
		CreatedAt:      msg.CreatedAt,
	}
}

func (m *ConversationMapper) MessageToModel(msg *entity.ConversationMessage) *model.ConversationMessage {
	if msg == nil {
		return nil
	}
	return &model.ConversationMessage{
		Id:             msg.Id,
		ConversationId: msg.ConversationId,
		Role:           msg.Role,
		Content:        msg.Content,
		TurnNumber:     msg.TurnNumber,
		CreatedAt:      msg.CreatedAt,
	}
}
