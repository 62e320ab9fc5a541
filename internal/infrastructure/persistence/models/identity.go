package models

import (
	"time"

	"github.com/marketplace/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity.
// Email, firebase_uid and seller_slug are unique when set.
type UserModel struct {
	BaseModel
	Name              string     `gorm:"type:varchar(255);not null"`
	Email             *string    `gorm:"type:varchar(255);uniqueIndex"`
	FirebaseUID       *string    `gorm:"column:firebase_uid;type:varchar(128);uniqueIndex"`
	Phone             string     `gorm:"type:varchar(30)"`
	BirthDate         *time.Time `gorm:"type:date"`
	Image             string     `gorm:"type:varchar(500)"`
	PasswordHash      *string    `gorm:"type:varchar(255)"`
	IsSeller          bool       `gorm:"not null;default:false;index"`
	SellerName        string     `gorm:"type:varchar(255)"`
	SellerSlug        *string    `gorm:"type:varchar(300);uniqueIndex"`
	SellerDescription string     `gorm:"type:text"`
	LastLoginAt       *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:        m.BaseModel.ToDomain(),
		Name:              m.Name,
		Email:             derefString(m.Email),
		FirebaseUID:       derefString(m.FirebaseUID),
		Phone:             m.Phone,
		BirthDate:         m.BirthDate,
		Image:             m.Image,
		PasswordHash:      derefString(m.PasswordHash),
		IsSeller:          m.IsSeller,
		SellerName:        m.SellerName,
		SellerSlug:        derefString(m.SellerSlug),
		SellerDescription: m.SellerDescription,
		LastLoginAt:       m.LastLoginAt,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainBaseEntity(u.BaseEntity)
	m.Name = u.Name
	m.Email = nullableString(u.Email)
	m.FirebaseUID = nullableString(u.FirebaseUID)
	m.Phone = u.Phone
	m.BirthDate = u.BirthDate
	m.Image = u.Image
	m.PasswordHash = nullableString(u.PasswordHash)
	m.IsSeller = u.IsSeller
	m.SellerName = u.SellerName
	m.SellerSlug = nullableString(u.SellerSlug)
	m.SellerDescription = u.SellerDescription
	m.LastLoginAt = u.LastLoginAt
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
