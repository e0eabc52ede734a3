package specification

import "gorm.io/gorm"

type ByContentID struct {
	ContentID string
}

func (s ByContentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("content_id = ?", s.ContentID)
}

// RegionLike matches region names by substring, so "전남" finds nothing
// stored as "전라남도" but "전라" finds both provinces.
type RegionLike struct {
	Region string
}

func (s RegionLike) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("region LIKE ?", "%"+s.Region+"%")
}

// StartingFrom keeps festivals whose start date is not before the given
// period. Dates are compared as YYYYMMDD strings.
type StartingFrom struct {
	Period string
}

func (s StartingFrom) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("start_date >= ?", s.Period)
}

type TitleOrAddressLike struct {
	Keyword string
}

func (s TitleOrAddressLike) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Keyword + "%"
	return db.Where("title LIKE ? OR addr1 LIKE ?", pattern, pattern)
}

type FestivalTypeLike struct {
	Type string
}

func (s FestivalTypeLike) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("festival_type LIKE ?", "%"+s.Type+"%")
}

type PetFriendly struct{}

func (s PetFriendly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("content_id IN (?)",
		db.Session(&gorm.Session{NewDB: true}).Table("pet_infos").
			Select("content_id").Where("acmpy_psbl_cpam <> ''"))
}

// WithDetails preloads the common, intro and pet records.
type WithDetails struct{}

func (s WithDetails) Apply(db *gorm.DB) *gorm.DB {
	return db.Preload("Detail").Preload("Intro").Preload("Pet")
}

// WithPet preloads only the pet record, enough for scoring.
type WithPet struct{}

func (s WithPet) Apply(db *gorm.DB) *gorm.DB {
	return db.Preload("Pet")
}
