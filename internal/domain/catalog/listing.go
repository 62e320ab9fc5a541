package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// SortField is a column a product listing can be ordered by
type SortField string

const (
	SortByRating    SortField = "reviews_avg_rating"
	SortByCreatedAt SortField = "created_at"
	SortByPrice     SortField = "price"
	SortByTotalSell SortField = "total_sell"
)

// ProductSort is one ordering term
type ProductSort struct {
	Field SortField
	Desc  bool
}

// ProductQuery is the storage-neutral description of a product listing
type ProductQuery struct {
	SellerID        *uuid.UUID
	CategoryID      *uuid.UUID
	ExcludeID       *uuid.UUID
	Search          string
	PromoOnly       bool
	IncludeVariants bool
	Sorts           []ProductSort
	Random          bool
	Page            int
	PageSize        int
}

// Pagination returns the page window of the query
func (q ProductQuery) Pagination() shared.Filter {
	f := shared.Filter{Page: q.Page, PageSize: q.PageSize}
	f.Normalize()
	return f
}

// ListParams are the public catalog listing switches. Each ordering switch
// is applied when set; a listing with none of them falls back to random order.
type ListParams struct {
	Rating       bool
	Promo        bool
	Latest       bool
	LowestPrice  bool
	HighestPrice bool
	CategoryID   *uuid.UUID
	Search       string
	Page         int
}

// Query builds the listing query. Switches are applied in a fixed order
// (rating, promo, latest, lowest price, highest price) so earlier switches
// take precedence as sort keys.
func (p ListParams) Query() ProductQuery {
	q := ProductQuery{
		CategoryID: p.CategoryID,
		Search:     strings.TrimSpace(p.Search),
		Page:       p.Page,
		PageSize:   shared.DefaultPageSize,
	}
	filtered := false

	if p.Rating {
		q.Sorts = append(q.Sorts, ProductSort{Field: SortByRating, Desc: true})
		filtered = true
	}
	if p.Promo {
		q.PromoOnly = true
		filtered = true
	}
	if p.Latest {
		q.Sorts = append(q.Sorts, ProductSort{Field: SortByCreatedAt, Desc: true})
		filtered = true
	}
	if p.LowestPrice {
		q.Sorts = append(q.Sorts, ProductSort{Field: SortByPrice})
		filtered = true
	}
	if p.HighestPrice {
		q.Sorts = append(q.Sorts, ProductSort{Field: SortByPrice, Desc: true})
		filtered = true
	}

	if !filtered {
		q.Random = true
	}
	return q
}

// Storefront sort keywords used by the seller page
const (
	OrderHighest = "tertinggi"
	OrderLowest  = "terendah"
	OrderDesc    = "desc"
	OrderAsc     = "asc"
)

// StorefrontParams are the seller page switches
type StorefrontParams struct {
	SellerID   uuid.UUID
	Price      string
	Rating     string
	OrderBy    string
	CategoryID *uuid.UUID
	Page       int
}

// Query builds the seller page listing. Price and rating orderings come first
// when present; creation date is always the final key and defaults to newest first.
func (p StorefrontParams) Query() ProductQuery {
	sellerID := p.SellerID
	q := ProductQuery{
		SellerID:   &sellerID,
		CategoryID: p.CategoryID,
		Page:       p.Page,
		PageSize:   shared.DefaultPageSize,
	}
	switch p.Price {
	case OrderHighest:
		q.Sorts = append(q.Sorts, ProductSort{Field: SortByPrice, Desc: true})
	case OrderLowest:
		q.Sorts = append(q.Sorts, ProductSort{Field: SortByPrice})
	}
	switch p.Rating {
	case OrderHighest:
		q.Sorts = append(q.Sorts, ProductSort{Field: SortByRating, Desc: true})
	case OrderLowest:
		q.Sorts = append(q.Sorts, ProductSort{Field: SortByRating})
	}
	q.Sorts = append(q.Sorts, ProductSort{Field: SortByCreatedAt, Desc: p.OrderBy != OrderAsc})
	return q
}
