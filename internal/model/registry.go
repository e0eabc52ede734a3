package model

// All lists every table managed by AutoMigrate, parents before children.
func All() []interface{} {
	return []interface{}{
		&User{},
		&UserPreference{},
		&Conversation{},
		&ConversationMessage{},
		&Festival{},
		&FestivalDetail{},
		&FestivalIntro{},
		&PetInfo{},
	}
}
