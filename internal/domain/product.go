package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a catalog product.
type Product struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Slug        string           `json:"slug"`
	Description string           `json:"description"`
	Price       decimal.Decimal  `json:"price"`
	SalePrice   *decimal.Decimal `json:"salePrice,omitempty"`
	Image       string           `json:"image"`
	Images      []string         `json:"images,omitempty"`
	Stock       int              `json:"stock"`
	CategoryID  uuid.UUID        `json:"categoryId"`
	Featured    bool             `json:"featured"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// EffectivePrice is the price the shopper pays: the sale price when one is
// set, the list price otherwise. Cart and order snapshots freeze this value.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}

// ProductFilter narrows a product listing. Zero values mean "no constraint".
type ProductFilter struct {
	// Search matches case-insensitively against name and description.
	Search string

	// CategorySlug restricts results to one category. The service layer
	// resolves it to CategoryID before the filter reaches a repository.
	CategorySlug string

	// CategoryID restricts results to one category by ID.
	CategoryID *uuid.UUID

	// MinPrice and MaxPrice bound the price range inclusively.
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal

	// Featured restricts to featured products when true.
	Featured bool
}

// Matches reports whether p satisfies every set constraint of the filter.
// CategorySlug is ignored here; only the resolved CategoryID is consulted.
func (f ProductFilter) Matches(p Product) bool {
	if f.Search != "" && !containsFold(p.Name, f.Search) && !containsFold(p.Description, f.Search) {
		return false
	}
	if f.CategoryID != nil && p.CategoryID != *f.CategoryID {
		return false
	}
	if f.MinPrice != nil && p.EffectivePrice().LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.EffectivePrice().GreaterThan(*f.MaxPrice) {
		return false
	}
	if f.Featured && !p.Featured {
		return false
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
