package models

import (
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/address"
)

// AddressModel is the persistence model for the Address domain entity.
// Region ids are the shipping provider's ids.
type AddressModel struct {
	BaseModel
	UserID          uuid.UUID `gorm:"type:uuid;not null;index"`
	PersonName      string    `gorm:"type:varchar(255);not null"`
	PhoneNumber     string    `gorm:"type:varchar(30);not null"`
	PlaceName       string    `gorm:"type:varchar(255);not null"`
	ProvinceID      int       `gorm:"column:ro_province_id;not null"`
	CityID          int       `gorm:"column:ro_city_id;not null"`
	SubdistrictID   int       `gorm:"column:ro_subdistrict_id;not null"`
	ProvinceName    string    `gorm:"type:varchar(255)"`
	CityName        string    `gorm:"type:varchar(255)"`
	SubdistrictName string    `gorm:"type:varchar(255)"`
	Address         string    `gorm:"type:text;not null"`
	Description     string    `gorm:"type:text"`
	Lat             *float64
	Long            *float64
	Main            bool `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (AddressModel) TableName() string {
	return "addresses"
}

// ToDomain converts the persistence model to a domain Address entity.
func (m *AddressModel) ToDomain() *address.Address {
	return &address.Address{
		BaseEntity:      m.BaseModel.ToDomain(),
		UserID:          m.UserID,
		PersonName:      m.PersonName,
		PhoneNumber:     m.PhoneNumber,
		PlaceName:       m.PlaceName,
		ProvinceID:      m.ProvinceID,
		CityID:          m.CityID,
		SubdistrictID:   m.SubdistrictID,
		ProvinceName:    m.ProvinceName,
		CityName:        m.CityName,
		SubdistrictName: m.SubdistrictName,
		Address:         m.Address,
		Description:     m.Description,
		Lat:             m.Lat,
		Long:            m.Long,
		Main:            m.Main,
	}
}

// FromDomain populates the persistence model from a domain Address entity.
func (m *AddressModel) FromDomain(a *address.Address) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.UserID = a.UserID
	m.PersonName = a.PersonName
	m.PhoneNumber = a.PhoneNumber
	m.PlaceName = a.PlaceName
	m.ProvinceID = a.ProvinceID
	m.CityID = a.CityID
	m.SubdistrictID = a.SubdistrictID
	m.ProvinceName = a.ProvinceName
	m.CityName = a.CityName
	m.SubdistrictName = a.SubdistrictName
	m.Address = a.Address
	m.Description = a.Description
	m.Lat = a.Lat
	m.Long = a.Long
	m.Main = a.Main
}

// AddressModelFromDomain creates a new persistence model from a domain Address entity.
func AddressModelFromDomain(a *address.Address) *AddressModel {
	m := &AddressModel{}
	m.FromDomain(a)
	return m
}
