package dto

import "time"

type FestivalListQuery struct {
	Region      string `query:"region"`
	Period      string `query:"period" validate:"omitempty,len=8,numeric"`
	Keyword     string `query:"keyword"`
	PetFriendly bool   `query:"pet_friendly"`
	Page        int    `query:"page" validate:"omitempty,min=1"`
	Limit       int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

type FestivalResponse struct {
	ContentId     string    `json:"contentid"`
	ContentTypeId string    `json:"contenttypeid"`
	Title         string    `json:"title"`
	Addr1         string    `json:"addr1"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	Image         string    `json:"image"`
	ProgressType  string    `json:"progresstype"`
	FestivalType  string    `json:"festivaltype"`
	Tel           string    `json:"tel"`
	Region        string    `json:"region"`
	PetFriendly   bool      `json:"pet_friendly"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type FestivalDetailResponse struct {
	FestivalResponse
	Overview   string            `json:"overview,omitempty"`
	Homepage   string            `json:"homepage,omitempty"`
	EventPlace string            `json:"eventplace,omitempty"`
	PlayTime   string            `json:"playtime,omitempty"`
	Sponsor    string            `json:"sponsor1,omitempty"`
	PetInfo    map[string]string `json:"pet_info,omitempty"`
}

type FestivalListResponse struct {
	Items []FestivalResponse `json:"items"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

type SyncResponse struct {
	Queued bool        `json:"queued"`
	TaskId string      `json:"task_id,omitempty"`
	Report *SyncReport `json:"report,omitempty"`
}

type SyncReport struct {
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	EventStart string         `json:"event_start_date"`
	PerRegion  map[string]int `json:"per_region"`
	Total      int            `json:"total"`
	Failed     int            `json:"failed"`
}
