package entity

import (
	"time"

	"github.com/google/uuid"
)

type Festival struct {
	Id            uuid.UUID
	ContentId     string
	ContentTypeId string
	Title         string
	Addr1         string
	StartDate     string
	EndDate       string
	Image         string
	ProgressType  string
	FestivalType  string
	Tel           string
	Region        string
	AreaCode      string
	MapX          string
	MapY          string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Detail *FestivalDetail
	Intro  *FestivalIntro
	Pet    *PetInfo
}

// FestivalDetail is the detailCommon2 record of a festival.
type FestivalDetail struct {
	ContentId    string
	Title        string
	CreatedTime  string
	ModifiedTime string
	Tel          string
	TelName      string
	Homepage     string
	FirstImage   string
	FirstImage2  string
	Addr1        string
	Addr2        string
	MapX         string
	MapY         string
	MLevel       string
	Overview     string
}

// FestivalIntro is the detailIntro2 record of a festival.
type FestivalIntro struct {
	ContentId       string
	Sponsor1        string
	Sponsor1Tel     string
	Sponsor2        string
	EventStartDate  string
	EventEndDate    string
	PlayTime        string
	EventPlace      string
	UseTimeFestival string
	ProgressType    string
	FestivalType    string
}

// PetInfo is the detailPetTour2 record of a festival.
type PetInfo struct {
	ContentId        string
	AcmpyPsblCpam    string
	RelaRntlPrdlst   string
	AcmpyNeedMtr     string
	RelaFrnshPrdlst  string
	EtcAcmpyInfo     string
	RelaPurcPrdlst   string
	RelaAcdntRiskMtr string
	AcmpyTypeCd      string
	RelaPosesFclty   string
}
