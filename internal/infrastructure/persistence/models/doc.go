// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Key Principles:
// 1. Domain entities carry no GORM tags
// 2. Persistence models hold table mappings, relations and read-only aggregate columns
// 3. ToDomain/FromDomain mappers convert between the two
// 4. Repositories read and write persistence models only
//
// Structure:
// - base.go: BaseModel shared by every table with a UUID key and timestamps
// - identity.go: users (buyers and sellers)
// - catalog.go: products, categories, sub_categories
// - address.go: addresses
// - trade.go: orders, order_items
// - review.go: reviews
// - content.go: articles, payment_methods
package models
