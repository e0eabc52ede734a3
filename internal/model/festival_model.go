package model

import (
	"time"

	"github.com/google/uuid"
)

type Festival struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ContentId     string    `gorm:"type:varchar(20);uniqueIndex;not null"`
	ContentTypeId string    `gorm:"type:varchar(10)"`
	Title         string    `gorm:"type:varchar(255);not null"`
	Addr1         string    `gorm:"type:varchar(255)"`
	StartDate     string    `gorm:"type:varchar(8);index"`
	EndDate       string    `gorm:"type:varchar(8)"`
	Image         string    `gorm:"type:text"`
	ProgressType  string    `gorm:"type:varchar(100)"`
	FestivalType  string    `gorm:"type:varchar(100)"`
	Tel           string    `gorm:"type:varchar(100)"`
	Region        string    `gorm:"type:varchar(50);index"`
	AreaCode      string    `gorm:"type:varchar(10)"`
	MapX          string    `gorm:"type:varchar(30)"`
	MapY          string    `gorm:"type:varchar(30)"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`

	Detail *FestivalDetail `gorm:"foreignKey:ContentId;references:ContentId"`
	Intro  *FestivalIntro  `gorm:"foreignKey:ContentId;references:ContentId"`
	Pet    *PetInfo        `gorm:"foreignKey:ContentId;references:ContentId"`
}

func (Festival) TableName() string {
	return "festivals"
}

type FestivalDetail struct {
	ContentId    string    `gorm:"type:varchar(20);primaryKey"`
	Title        string    `gorm:"type:varchar(255)"`
	CreatedTime  string    `gorm:"type:varchar(14)"`
	ModifiedTime string    `gorm:"type:varchar(14)"`
	Tel          string    `gorm:"type:varchar(100)"`
	TelName      string    `gorm:"type:varchar(100)"`
	Homepage     string    `gorm:"type:text"`
	FirstImage   string    `gorm:"type:text"`
	FirstImage2  string    `gorm:"type:text"`
	Addr1        string    `gorm:"type:varchar(255)"`
	Addr2        string    `gorm:"type:varchar(255)"`
	MapX         string    `gorm:"type:varchar(30)"`
	MapY         string    `gorm:"type:varchar(30)"`
	MLevel       string    `gorm:"type:varchar(5)"`
	Overview     string    `gorm:"type:text"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (FestivalDetail) TableName() string {
	return "festival_details"
}

type FestivalIntro struct {
	ContentId       string    `gorm:"type:varchar(20);primaryKey"`
	Sponsor1        string    `gorm:"type:varchar(255)"`
	Sponsor1Tel     string    `gorm:"type:varchar(100)"`
	Sponsor2        string    `gorm:"type:varchar(255)"`
	EventStartDate  string    `gorm:"type:varchar(8)"`
	EventEndDate    string    `gorm:"type:varchar(8)"`
	PlayTime        string    `gorm:"type:text"`
	EventPlace      string    `gorm:"type:varchar(255)"`
	UseTimeFestival string    `gorm:"type:text"`
	ProgressType    string    `gorm:"type:varchar(100)"`
	FestivalType    string    `gorm:"type:varchar(100)"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (FestivalIntro) TableName() string {
	return "festival_intros"
}

type PetInfo struct {
	ContentId        string    `gorm:"type:varchar(20);primaryKey"`
	AcmpyPsblCpam    string    `gorm:"type:text"`
	RelaRntlPrdlst   string    `gorm:"type:text"`
	AcmpyNeedMtr     string    `gorm:"type:text"`
	RelaFrnshPrdlst  string    `gorm:"type:text"`
	EtcAcmpyInfo     string    `gorm:"type:text"`
	RelaPurcPrdlst   string    `gorm:"type:text"`
	RelaAcdntRiskMtr string    `gorm:"type:text"`
	AcmpyTypeCd      string    `gorm:"type:text"`
	RelaPosesFclty   string    `gorm:"type:text"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

func (PetInfo) TableName() string {
	return "pet_infos"
}
