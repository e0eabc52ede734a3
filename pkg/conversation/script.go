package conversation

const (
	OptionLively   = "활기차고 신나는 분위기"
	OptionRelaxing = "여유롭고 편안한 휴식"
	OptionBalanced = "적당히 균형 잡힌 일정"

	OptionFood    = "음식"
	OptionCulture = "문화·전통"
	OptionNature  = "자연·경관"
	OptionShow    = "공연·체험"

	OptionFlatWalk = "걷기 편한 평지 위주"
	OptionParking  = "주차가 편리한 곳"
	OptionKids     = "아이 편의시설"
	OptionNone     = "특별히 없음"

	OptionRecommend = "추천 받기"
)

// DefaultScenario is the Namdo festival script: three preference questions
// followed by a confirmation step.
func DefaultScenario() *Scenario {
	return NewScenario(
		Step{
			Phase: PhaseInitial,
			Message: "안녕하세요! 남도 축제 여행 도우미 남도봇입니다. " +
				"{travel_period}에 {companion_type}(와)과 함께하는 여행을 준비 중이시군요. " +
				"이번 여행은 어떤 분위기였으면 하세요?",
			Options: []string{OptionLively, OptionRelaxing, OptionBalanced},
			Next:    PhaseEnergyPreference,
			Field:   FieldEnergyPreference,
		},
		Step{
			Phase: PhaseEnergyPreference,
			Message: "'{energy_preference}' 좋네요! " +
				"축제에서 가장 기대하는 경험은 무엇인가요?",
			Options: []string{OptionFood, OptionCulture, OptionNature, OptionShow},
			Next:    PhaseInterestFocus,
			Field:   FieldInterestFocus,
		},
		Step{
			Phase: PhaseInterestFocus,
			Message: "{interest_focus}에 관심이 많으시군요. " +
				"마지막으로 축제를 고를 때 꼭 고려해야 할 점이 있을까요?",
			Options: []string{OptionFlatWalk, OptionParking, OptionKids, OptionNone},
			Next:    PhaseAdditionalRequirements,
			Field:   FieldAdditionalRequirements,
		},
		Step{
			Phase: PhaseAdditionalRequirements,
			Message: "정리해 볼게요. {travel_period}, {companion_type} 여행, " +
				"분위기는 '{energy_preference}', 관심사는 '{interest_focus}', " +
				"고려 사항은 '{additional_requirements}'입니다. 이대로 축제를 추천해 드릴까요?",
			Options: []string{OptionRecommend},
			Next:    PhaseCompleted,
			Field:   FieldStatus,
		},
		Step{
			Phase:   PhaseCompleted,
			Message: "대화가 완료되었습니다! 이제 맞춤 남도 축제를 추천해 드릴게요.",
			Next:    PhaseCompleted,
		},
	)
}
