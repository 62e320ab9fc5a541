package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/content"
)

// ArticleModel is the persistence model for the Article domain entity.
type ArticleModel struct {
	BaseModel
	Title       string     `gorm:"type:varchar(255);not null"`
	Slug        string     `gorm:"type:varchar(300);not null;index"`
	Thumbnail   string     `gorm:"type:varchar(500)"`
	Body        string     `gorm:"type:text"`
	PublishedAt *time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (ArticleModel) TableName() string {
	return "articles"
}

// ToDomain converts the persistence model to a domain Article entity.
func (m *ArticleModel) ToDomain() *content.Article {
	return &content.Article{
		BaseEntity:  m.BaseModel.ToDomain(),
		Title:       m.Title,
		Slug:        m.Slug,
		Thumbnail:   m.Thumbnail,
		Body:        m.Body,
		PublishedAt: m.PublishedAt,
	}
}

// FromDomain populates the persistence model from a domain Article entity.
func (m *ArticleModel) FromDomain(a *content.Article) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.Title = a.Title
	m.Slug = a.Slug
	m.Thumbnail = a.Thumbnail
	m.Body = a.Body
	m.PublishedAt = a.PublishedAt
}

// PaymentMethodModel is the persistence model for payment methods
type PaymentMethodModel struct {
	ID        uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Code      string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name      string              `gorm:"type:varchar(100);not null"`
	Type      content.PaymentType `gorm:"type:varchar(30);not null"`
	Logo      string              `gorm:"type:varchar(500)"`
	Active    bool                `gorm:"not null"`
	SortOrder int                 `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (PaymentMethodModel) TableName() string {
	return "payment_methods"
}

// ToDomain converts the persistence model to a domain PaymentMethod.
func (m *PaymentMethodModel) ToDomain() content.PaymentMethod {
	return content.PaymentMethod{
		ID:        m.ID,
		Code:      m.Code,
		Name:      m.Name,
		Type:      m.Type,
		Logo:      m.Logo,
		Active:    m.Active,
		SortOrder: m.SortOrder,
	}
}

// FromDomain populates the persistence model from a domain PaymentMethod.
func (m *PaymentMethodModel) FromDomain(p *content.PaymentMethod) {
	m.ID = p.ID
	m.Code = p.Code
	m.Name = p.Name
	m.Type = p.Type
	m.Logo = p.Logo
	m.Active = p.Active
	m.SortOrder = p.SortOrder
}
