package mapper

import (
	"namdo-bot-be/internal/entity"
	"namdo-bot-be/internal/model"
	"namdo-bot-be/pkg/export"
	"namdo-bot-be/pkg/scoring"
	"namdo-bot-be/pkg/tourapi"
)

const PlaceholderImage = "https://via.placeholder.com/300x200.png?text=No+Image"

type FestivalMapper struct{}

func NewFestivalMapper() *FestivalMapper {
	return &FestivalMapper{}
}

func (m *FestivalMapper) ToEntity(f *model.Festival) *entity.Festival {
	if f == nil {
		return nil
	}
	e := &entity.Festival{
		Id:            f.Id,
		ContentId:     f.ContentId,
		ContentTypeId: f.ContentTypeId,
		Title:         f.Title,
		Addr1:         f.Addr1,
		StartDate:     f.StartDate,
		EndDate:       f.EndDate,
		Image:         f.Image,
		ProgressType:  f.ProgressType,
		FestivalType:  f.FestivalType,
		Tel:           f.Tel,
		Region:        f.Region,
		AreaCode:      f.AreaCode,
		MapX:          f.MapX,
		MapY:          f.MapY,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
	e.Detail = m.DetailToEntity(f.Detail)
	e.Intro = m.IntroToEntity(f.Intro)
	e.Pet = m.PetToEntity(f.Pet)
	return e
}

func (m *FestivalMapper) ToEntities(models []*model.Festival) []*entity.Festival {
	out := make([]*entity.Festival, len(models))
	for i, f := range models {
		out[i] = m.ToEntity(f)
	}
	return out
}

func (m *FestivalMapper) ToModel(f *entity.Festival) *model.Festival {
	if f == nil {
		return nil
	}
	return &model.Festival{
		Id:            f.Id,
		ContentId:     f.ContentId,
		ContentTypeId: f.ContentTypeId,
		Title:         f.Title,
		Addr1:         f.Addr1,
		StartDate:     f.StartDate,
		EndDate:       f.EndDate,
		Image:         f.Image,
		ProgressType:  f.ProgressType,
		FestivalType:  f.FestivalType,
		Tel:           f.Tel,
		Region:        f.Region,
		AreaCode:      f.AreaCode,
		MapX:          f.MapX,
		MapY:          f.MapY,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}

func (m *FestivalMapper) DetailToModel(d *entity.FestivalDetail) *model.FestivalDetail {
	if d == nil {
		return nil
	}
	return &model.FestivalDetail{
		ContentId: d.ContentId, Title: d.Title, CreatedTime: d.CreatedTime, ModifiedTime: d.ModifiedTime,
		Tel: d.Tel, TelName: d.TelName, Homepage: d.Homepage, FirstImage: d.FirstImage,
		FirstImage2: d.FirstImage2, Addr1: d.Addr1, Addr2: d.Addr2, MapX: d.MapX, MapY: d.MapY,
		MLevel: d.MLevel, Overview: d.Overview,
	}
}

func (m *FestivalMapper) IntroToModel(i *entity.FestivalIntro) *model.FestivalIntro {
	if i == nil {
		return nil
	}
	return &model.FestivalIntro{
		ContentId: i.ContentId, Sponsor1: i.Sponsor1, Sponsor1Tel: i.Sponsor1Tel, Sponsor2: i.Sponsor2,
		EventStartDate: i.EventStartDate, EventEndDate: i.EventEndDate, PlayTime: i.PlayTime,
		EventPlace: i.EventPlace, UseTimeFestival: i.UseTimeFestival, ProgressType: i.ProgressType,
		FestivalType: i.FestivalType,
	}
}

func (m *FestivalMapper) PetToModel(p *entity.PetInfo) *model.PetInfo {
	if p == nil {
		return nil
	}
	return &model.PetInfo{
		ContentId: p.ContentId, AcmpyPsblCpam: p.AcmpyPsblCpam, RelaRntlPrdlst: p.RelaRntlPrdlst,
		AcmpyNeedMtr: p.AcmpyNeedMtr, RelaFrnshPrdlst: p.RelaFrnshPrdlst, EtcAcmpyInfo: p.EtcAcmpyInfo,
		RelaPurcPrdlst: p.RelaPurcPrdlst, RelaAcdntRiskMtr: p.RelaAcdntRiskMtr, AcmpyTypeCd: p.AcmpyTypeCd,
		RelaPosesFclty: p.RelaPosesFclty,
	}
}

func (m *FestivalMapper) DetailToEntity(d *model.FestivalDetail) *entity.FestivalDetail {
	if d == nil {
		return nil
	}
	return &entity.FestivalDetail{
		ContentId: d.ContentId, Title: d.Title, CreatedTime: d.CreatedTime, ModifiedTime: d.ModifiedTime,
		Tel: d.Tel, TelName: d.TelName, Homepage: d.Homepage, FirstImage: d.FirstImage,
		FirstImage2: d.FirstImage2, Addr1: d.Addr1, Addr2: d.Addr2, MapX: d.MapX, MapY: d.MapY,
		MLevel: d.MLevel, Overview: d.Overview,
	}
}

func (m *FestivalMapper) IntroToEntity(i *model.FestivalIntro) *entity.FestivalIntro {
	if i == nil {
		return nil
	}
	return &entity.FestivalIntro{
		ContentId: i.ContentId, Sponsor1: i.Sponsor1, Sponsor1Tel: i.Sponsor1Tel, Sponsor2: i.Sponsor2,
		EventStartDate: i.EventStartDate, EventEndDate: i.EventEndDate, PlayTime: i.PlayTime,
		EventPlace: i.EventPlace, UseTimeFestival: i.UseTimeFestival, ProgressType: i.ProgressType,
		FestivalType: i.FestivalType,
	}
}

func (m *FestivalMapper) PetToEntity(p *model.PetInfo) *entity.PetInfo {
	if p == nil {
		return nil
	}
	return &entity.PetInfo{
		ContentId: p.ContentId, AcmpyPsblCpam: p.AcmpyPsblCpam, RelaRntlPrdlst: p.RelaRntlPrdlst,
		AcmpyNeedMtr: p.AcmpyNeedMtr, RelaFrnshPrdlst: p.RelaFrnshPrdlst, EtcAcmpyInfo: p.EtcAcmpyInfo,
		RelaPurcPrdlst: p.RelaPurcPrdlst, RelaAcdntRiskMtr: p.RelaAcdntRiskMtr, AcmpyTypeCd: p.AcmpyTypeCd,
		RelaPosesFclty: p.RelaPosesFclty,
	}
}

// FromTourAPI builds a festival from a searchFestival2 item and its details.
func (m *FestivalMapper) FromTourAPI(region string, item tourapi.FestivalItem, common *tourapi.CommonDetail, intro *tourapi.IntroDetail, pet *tourapi.PetDetail) *entity.Festival {
	image := item.FirstImage
	if image == "" {
		image = PlaceholderImage
	}

	f := &entity.Festival{
		ContentId:     item.ContentID,
		ContentTypeId: item.ContentTypeID,
		Title:         item.Title,
		Addr1:         item.Addr1,
		StartDate:     item.EventStartDate,
		EndDate:       item.EventEndDate,
		Image:         image,
		ProgressType:  item.ProgressType,
		FestivalType:  item.FestivalType,
		Tel:           item.Tel,
		Region:        region,
		AreaCode:      item.AreaCode,
		MapX:          item.MapX,
		MapY:          item.MapY,
	}

	if common != nil {
		f.Detail = &entity.FestivalDetail{
			ContentId: item.ContentID, Title: common.Title, CreatedTime: common.CreatedTime,
			ModifiedTime: common.ModifiedTime, Tel: common.Tel, TelName: common.TelName,
			Homepage: common.Homepage, FirstImage: common.FirstImage, FirstImage2: common.FirstImage2,
			Addr1: common.Addr1, Addr2: common.Addr2, MapX: common.MapX, MapY: common.MapY,
			MLevel: common.MLevel, Overview: common.Overview,
		}
	}
	if intro != nil {
		f.Intro = &entity.FestivalIntro{
			ContentId: item.ContentID, Sponsor1: intro.Sponsor1, Sponsor1Tel: intro.Sponsor1Tel,
			Sponsor2: intro.Sponsor2, EventStartDate: intro.EventStartDate, EventEndDate: intro.EventEndDate,
			PlayTime: intro.PlayTime, EventPlace: intro.EventPlace, UseTimeFestival: intro.UseTimeFestival,
			ProgressType: intro.ProgressType, FestivalType: intro.FestivalType,
		}
		// searchFestival2 leaves these blank for some records
		if f.ProgressType == "" {
			f.ProgressType = intro.ProgressType
		}
		if f.FestivalType == "" {
			f.FestivalType = intro.FestivalType
		}
	}
	if pet != nil {
		f.Pet = &entity.PetInfo{
			ContentId: item.ContentID, AcmpyPsblCpam: pet.AcmpyPsblCpam, RelaRntlPrdlst: pet.RelaRntlPrdlst,
			AcmpyNeedMtr: pet.AcmpyNeedMtr, RelaFrnshPrdlst: pet.RelaFrnshPrdlst, EtcAcmpyInfo: pet.EtcAcmpyInfo,
			RelaPurcPrdlst: pet.RelaPurcPrdlst, RelaAcdntRiskMtr: pet.RelaAcdntRiskMtr,
			AcmpyTypeCd: pet.AcmpyTypeCd, RelaPosesFclty: pet.RelaPosesFclty,
		}
	}
	return f
}

func (m *FestivalMapper) ToCandidate(f *entity.Festival) scoring.Candidate {
	return scoring.Candidate{
		ContentID:    f.ContentId,
		Title:        f.Title,
		Region:       f.Region,
		Addr:         f.Addr1,
		StartDate:    f.StartDate,
		EndDate:      f.EndDate,
		FestivalType: f.FestivalType,
		ProgressType: f.ProgressType,
		Image:        f.Image,
		PetFriendly:  f.Pet != nil && f.Pet.AcmpyPsblCpam != "",
	}
}

// ToExportRows splits festivals into the base (+pet), common and intro CSV row sets.
func (m *FestivalMapper) ToExportRows(festivals []*entity.Festival) (base, common, intro []export.Row) {
	for _, f := range festivals {
		b := export.Row{
			"region": f.Region, "contentid": f.ContentId, "title": f.Title, "addr1": f.Addr1,
			"start_date": f.StartDate, "end_date": f.EndDate, "tel": f.Tel, "image": f.Image,
			"progresstype": f.ProgressType, "festivaltype": f.FestivalType,
		}
		if p := f.Pet; p != nil {
			b["acmpyPsblCpam"] = p.AcmpyPsblCpam
			b["relaRntlPrdlst"] = p.RelaRntlPrdlst
			b["relaFrnshPrdlst"] = p.RelaFrnshPrdlst
			b["acmpyNeedMtr"] = p.AcmpyNeedMtr
			b["etcAcmpyInfo"] = p.EtcAcmpyInfo
			b["relaPurcPrdlst"] = p.RelaPurcPrdlst
			b["relaAcdntRiskMtr"] = p.RelaAcdntRiskMtr
			b["acmpyTypeCd"] = p.AcmpyTypeCd
			b["relaPosesFclty"] = p.RelaPosesFclty
		}
		base = append(base, b)

		if d := f.Detail; d != nil {
			common = append(common, export.Row{
				"contentid": f.ContentId, "title": d.Title, "createdtime": d.CreatedTime,
				"modifiedtime": d.ModifiedTime, "tel": d.Tel, "telname": d.TelName,
				"homepage": d.Homepage, "firstimage": d.FirstImage, "firstimage2": d.FirstImage2,
				"addr1": d.Addr1, "addr2": d.Addr2, "mapx": d.MapX, "mapy": d.MapY,
				"mlevel": d.MLevel, "overview": d.Overview,
			})
		}
		if i := f.Intro; i != nil {
			intro = append(intro, export.Row{
				"contentid": f.ContentId, "sponsor1": i.Sponsor1, "sponsor1tel": i.Sponsor1Tel,
				"sponsor2": i.Sponsor2, "eventenddate": i.EventEndDate, "playtime": i.PlayTime,
				"eventplace": i.EventPlace, "eventstartdate": i.EventStartDate,
				"usetimefestival": i.UseTimeFestival, "progresstype": i.ProgressType,
				"festivaltype": i.FestivalType,
			})
		}
	}
	return base, common, intro
}
