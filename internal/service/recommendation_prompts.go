package service

import (
	"fmt"
	"strings"

	"namdo-bot-be/internal/entity"
)

func candidateLines(results []ranked) string {
	var b strings.Builder
	for i, r := range results {
		c := r.Candidate
		fmt.Fprintf(&b, "%d. content_id=%s | %s | %s | %s~%s | 점수 %d | 근거: %s\n",
			i+1, c.ContentID, c.Title, c.Region, c.StartDate, c.EndDate, r.Score, strings.Join(r.Reasons, ", "))
	}
	return b.String()
}

func explainPrompt(conv *entity.Conversation, results []ranked) string {
	return fmt.Sprintf(`당신은 남도 축제 추천 도우미입니다.
여행자 정보: %s

아래 축제들은 점수 규칙으로 이미 순위가 정해졌습니다. 순위와 점수는 바꾸지 말고,
각 축제가 왜 이 여행자에게 맞는지 한두 문장으로 설명하세요.

%s
다음 JSON 형식으로만 답하세요:
{"explanations": {"<content_id>": "<설명>"}}`, profileSummary(conv), candidateLines(results))
}

func finalizePrompt(conv *entity.Conversation, results []ranked) string {
	return fmt.Sprintf(`당신은 남도 축제 추천 도우미입니다.
여행자 정보: %s

점수 규칙으로 정해진 추천 결과입니다 (1번이 최고 추천):
%s
순위와 점수는 바꾸지 말고 다음 JSON 형식으로만 답하세요:
{
  "user_profile_summary": "<여행자 요약>",
  "recommendation_summary": "<추천 요약>",
  "why_best": "<1순위 추천 이유>",
  "why_alternatives": {"<content_id>": "<대안 추천 이유>"},
  "reasoning_explanation": "<점수 기준 설명>",
  "final_message": "<마무리 인사>"
}`, profileSummary(conv), candidateLines(results))
}
