package models

import "time"

// Product is a catalog record. SellerID is a weak reference to the producer
// account that created it; nothing is cascaded when that account goes away.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Image       string    `json:"image,omitempty"`
	SellerID    string    `json:"sellerId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProductPatch lists the externally settable product fields. ID, SellerID and
// CreatedAt are never patched.
type ProductPatch struct {
	Title       *string  `json:"title,omitempty" validate:"omitnil,min=1"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitnil,gt=0"`
	Category    *string  `json:"category,omitempty"`
	Image       *string  `json:"image,omitempty" validate:"omitnil,url"`
}

// ApplyTo merges the set fields of the patch over p and returns the result.
func (pp ProductPatch) ApplyTo(p Product) Product {
	if pp.Title != nil {
		p.Title = *pp.Title
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if pp.Category != nil {
		p.Category = *pp.Category
	}
	if pp.Image != nil {
		p.Image = *pp.Image
	}
	return p
}
