package scoring

import (
	"sort"
	"strings"
)

const (
	// Threshold is exclusive: a festival needs more than this many points.
	Threshold = 30
	TopN      = 5

	RegionPoints        = 10
	SeasonPoints        = 15
	CompanionPoints     = 20
	InterestPoints      = 25
	AccessibilityPoints = 15

	FamilyWithParents = "부모님 동반 가족"
	FoodExperience    = "음식"
)

var honamRegions = []string{"전북", "전남", "광주"}

// Preferences are the attributes collected by a finished conversation.
type Preferences struct {
	TravelPeriod             string
	Companion                string
	Atmosphere               string
	CoreExperience           string
	AdditionalConsiderations string
}

type Candidate struct {
	ContentID    string
	Title        string
	Region       string
	Addr         string
	StartDate    string
	EndDate      string
	FestivalType string
	ProgressType string
	Image        string
	PetFriendly  bool
}

type Breakdown struct {
	RegionCompatibility        int `json:"region_compatibility"`
	SeasonMatching             int `json:"season_matching"`
	CompanionOptimization      int `json:"companion_optimization"`
	InterestMatching           int `json:"interest_matching"`
	AccessibilityConsideration int `json:"accessibility_consideration"`
	TotalScore                 int `json:"total_score"`
}

type Scored struct {
	Candidate Candidate
	Score     int
	Reasons   []string
	Breakdown Breakdown
}

// Score sums the fixed increments of every rule the candidate satisfies.
func Score(p Preferences, c Candidate) Scored {
	var b Breakdown
	var reasons []string

	if containsAny(c.Region, honamRegions...) {
		b.RegionCompatibility = RegionPoints
		reasons = append(reasons, "호남 지역 축제")
	}
	if p.TravelPeriod != "" &&
		(strings.Contains(c.StartDate, p.TravelPeriod) || strings.Contains(c.EndDate, p.TravelPeriod)) {
		b.SeasonMatching = SeasonPoints
		reasons = append(reasons, "계절에 적합")
	}
	if p.Companion == FamilyWithParents && containsAny(p.Atmosphere, "휴식", "여유") {
		b.CompanionOptimization = CompanionPoints
		reasons = append(reasons, "부모님과 함께하기 좋은 여유로운 분위기")
	}
	if p.CoreExperience == FoodExperience && strings.Contains(c.FestivalType, FoodExperience) {
		b.InterestMatching = InterestPoints
		reasons = append(reasons, "음식 중심 축제")
	}
	if strings.Contains(p.AdditionalConsiderations, "걷기") && strings.Contains(c.ProgressType, "평지") {
		b.AccessibilityConsideration = AccessibilityPoints
		reasons = append(reasons, "걷기 편한 평지 조성")
	}

	b.TotalScore = b.RegionCompatibility + b.SeasonMatching + b.CompanionOptimization +
		b.InterestMatching + b.AccessibilityConsideration

	return Scored{
		Candidate: c,
		Score:     b.TotalScore,
		Reasons:   reasons,
		Breakdown: b,
	}
}

// Rank scores candidates that start on or after the travel period, keeps
// those above Threshold and returns the TopN best, highest first.
func Rank(p Preferences, candidates []Candidate) []Scored {
	ranked := make([]Scored, 0, len(candidates))
	for _, c := range candidates {
		if c.StartDate < p.TravelPeriod {
			continue
		}
		s := Score(p, c)
		if s.Score > Threshold {
			ranked = append(ranked, s)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > TopN {
		ranked = ranked[:TopN]
	}
	return ranked
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
