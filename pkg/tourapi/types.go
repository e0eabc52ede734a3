package tourapi

import (
	"bytes"
	"encoding/json"
)

type envelope[T any] struct {
	Response struct {
		Header struct {
			ResultCode string `json:"resultCode"`
			ResultMsg  string `json:"resultMsg"`
		} `json:"header"`
		Body struct {
			Items      itemList[T] `json:"items"`
			NumOfRows  int         `json:"numOfRows"`
			PageNo     int         `json:"pageNo"`
			TotalCount int         `json:"totalCount"`
		} `json:"body"`
	} `json:"response"`
}

// itemList decodes the "items" node. The API sends "" when there are no
// results and a bare object instead of an array when there is exactly one.
type itemList[T any] []T

func (l *itemList[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) || data[0] == '"' {
		*l = nil
		return nil
	}

	var wrapper struct {
		Item json.RawMessage `json:"item"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return err
	}

	raw := bytes.TrimSpace(wrapper.Item)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*l = nil
		return nil
	}

	if raw[0] == '[' {
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}

	var item T
	if err := json.Unmarshal(raw, &item); err != nil {
		return err
	}
	*l = []T{item}
	return nil
}

type AreaCode struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type FestivalItem struct {
	ContentID      string `json:"contentid"`
	ContentTypeID  string `json:"contenttypeid"`
	Title          string `json:"title"`
	Addr1          string `json:"addr1"`
	Addr2          string `json:"addr2"`
	AreaCode       string `json:"areacode"`
	SigunguCode    string `json:"sigungucode"`
	EventStartDate string `json:"eventstartdate"`
	EventEndDate   string `json:"eventenddate"`
	FirstImage     string `json:"firstimage"`
	FirstImage2    string `json:"firstimage2"`
	MapX           string `json:"mapx"`
	MapY           string `json:"mapy"`
	Tel            string `json:"tel"`
	ProgressType   string `json:"progresstype"`
	FestivalType   string `json:"festivaltype"`
}

type CommonDetail struct {
	ContentID    string `json:"contentid"`
	Title        string `json:"title"`
	CreatedTime  string `json:"createdtime"`
	ModifiedTime string `json:"modifiedtime"`
	Tel          string `json:"tel"`
	TelName      string `json:"telname"`
	Homepage     string `json:"homepage"`
	FirstImage   string `json:"firstimage"`
	FirstImage2  string `json:"firstimage2"`
	Addr1        string `json:"addr1"`
	Addr2        string `json:"addr2"`
	MapX         string `json:"mapx"`
	MapY         string `json:"mapy"`
	MLevel       string `json:"mlevel"`
	Overview     string `json:"overview"`
}

type IntroDetail struct {
	ContentID       string `json:"contentid"`
	Sponsor1        string `json:"sponsor1"`
	Sponsor1Tel     string `json:"sponsor1tel"`
	Sponsor2        string `json:"sponsor2"`
	EventStartDate  string `json:"eventstartdate"`
	EventEndDate    string `json:"eventenddate"`
	PlayTime        string `json:"playtime"`
	EventPlace      string `json:"eventplace"`
	UseTimeFestival string `json:"usetimefestival"`
	ProgressType    string `json:"progresstype"`
	FestivalType    string `json:"festivaltype"`
}

type PetDetail struct {
	ContentID        string `json:"contentid"`
	AcmpyPsblCpam    string `json:"acmpyPsblCpam"`
	RelaRntlPrdlst   string `json:"relaRntlPrdlst"`
	AcmpyNeedMtr     string `json:"acmpyNeedMtr"`
	RelaFrnshPrdlst  string `json:"relaFrnshPrdlst"`
	EtcAcmpyInfo     string `json:"etcAcmpyInfo"`
	RelaPurcPrdlst   string `json:"relaPurcPrdlst"`
	RelaAcdntRiskMtr string `json:"relaAcdntRiskMtr"`
	AcmpyTypeCd      string `json:"acmpyTypeCd"`
	RelaPosesFclty   string `json:"relaPosesFclty"`
}
