package models

import (
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/review"
)

// ReviewModel is the persistence model for the Review domain entity.
type ReviewModel struct {
	BaseModel
	ProductID uuid.UUID  `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	OrderID   *uuid.UUID `gorm:"type:uuid"`
	Rating    int        `gorm:"not null"`
	Comment   string     `gorm:"type:text"`
	Images    []string   `gorm:"type:text;serializer:json"`

	// ImageCount mirrors len(Images) so aggregates stay portable SQL.
	ImageCount int `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ReviewModel) TableName() string {
	return "reviews"
}

// ToDomain converts the persistence model to a domain Review entity.
func (m *ReviewModel) ToDomain() *review.Review {
	return &review.Review{
		BaseEntity: m.BaseModel.ToDomain(),
		ProductID:  m.ProductID,
		UserID:     m.UserID,
		OrderID:    m.OrderID,
		Rating:     m.Rating,
		Comment:    m.Comment,
		Images:     m.Images,
	}
}

// FromDomain populates the persistence model from a domain Review entity.
func (m *ReviewModel) FromDomain(r *review.Review) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.ProductID = r.ProductID
	m.UserID = r.UserID
	m.OrderID = r.OrderID
	m.Rating = r.Rating
	m.Comment = r.Comment
	m.Images = r.Images
	m.ImageCount = r.ImageCount()
}
