package catalog

import (
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/shared/valueobject"
)

// VariantInput describes one variant in a store-or-update payload.
// ID refers to an existing variant of the same parent; when it does not
// match one, a new variant is created.
type VariantInput struct {
	ID          *uuid.UUID
	VariantName string
	Price       int64
	Stock       int
	Weight      *int
	Discount    *int
}

// VariantPlan is the outcome of reconciling a parent's variants with a payload
type VariantPlan struct {
	Upserts []*Product
	Removed []uuid.UUID
}

// ReplicateVariants clones parent once per payload element. Shared attributes
// (category, unit, description, images, seller) always come from the parent;
// price, stock, weight and discount come from the element when given.
// Existing variants not referenced by the payload end up in Removed.
func ReplicateVariants(parent *Product, existing []Product, payload []VariantInput) (VariantPlan, error) {
	byID := make(map[uuid.UUID]Product, len(existing))
	for _, v := range existing {
		byID[v.ID] = v
	}

	plan := VariantPlan{}
	kept := make(map[uuid.UUID]bool, len(payload))
	parentID := parent.ID

	for i, in := range payload {
		name := strings.TrimSpace(in.VariantName)
		if name == "" {
			return VariantPlan{}, shared.NewDomainError("INVALID_VARIANT", "Variant name cannot be empty")
		}

		variant := &Product{BaseEntity: shared.NewBaseEntity()}
		if in.ID != nil {
			if current, ok := byID[*in.ID]; ok && !kept[*in.ID] {
				variant.BaseEntity = current.BaseEntity
			}
		}

		weight := parent.Weight
		if in.Weight != nil {
			weight = *in.Weight
		}
		discount := parent.Discount
		if in.Discount != nil {
			discount = in.Discount
		}

		err := variant.Apply(ProductInput{
			Name:          parent.Name,
			CategoryID:    parent.CategoryID,
			SubCategoryID: parent.SubCategoryID,
			Price:         in.Price,
			Discount:      discount,
			Stock:         in.Stock,
			Weight:        weight,
			Unit:          parent.Unit,
			Description:   parent.Description,
			Images:        parent.Images,
		})
		if err != nil {
			var de *shared.DomainError
			if errors.As(err, &de) {
				return VariantPlan{}, de.WithMessage(de.Message + " (variant " + strconv.Itoa(i+1) + ")")
			}
			return VariantPlan{}, err
		}
		variant.SellerID = parent.SellerID
		variant.ParentID = &parentID
		variant.VariantName = name
		variant.Slug = variant.Slug + "-" + valueobject.Slugify(name)

		kept[variant.ID] = true
		plan.Upserts = append(plan.Upserts, variant)
	}

	for _, v := range existing {
		if !kept[v.ID] {
			plan.Removed = append(plan.Removed, v.ID)
		}
	}
	return plan, nil
}
