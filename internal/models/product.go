package models

import "time"

// Variant is a purchasable option of a product, either a single unit option
// or a bundle of several base units (e.g. a full shulker).
type Variant struct {
	Name      string   `json:"name" bson:"name" validate:"required"`
	Type      string   `json:"type" bson:"type" validate:"omitempty,oneof=bundle option"`
	Price     *float64 `json:"price,omitempty" bson:"price,omitempty" validate:"omitempty,gte=0"`
	BundleQty *int     `json:"bundle_qty,omitempty" bson:"bundle_qty,omitempty" validate:"omitempty,gte=1"`
}

// Product represents a product in the store. Timestamps are set only by the
// catalog seeder; documents created over the API carry neither.
type Product struct {
	Title       string    `json:"title" bson:"title" validate:"required"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Price       float64   `json:"price" bson:"price" validate:"gte=0"`
	Category    string    `json:"category" bson:"category" validate:"required"`
	ImageURL    string    `json:"image_url,omitempty" bson:"image_url,omitempty"`
	SKU         string    `json:"sku,omitempty" bson:"sku,omitempty"`
	Tags        []string  `json:"tags,omitempty" bson:"tags,omitempty"`
	InStock     bool      `json:"in_stock" bson:"in_stock"`
	Variants    []Variant `json:"variants" bson:"variants" validate:"omitempty,dive"`
	CreatedAt   time.Time `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// ApplyDefaults fills in the defaults a request body may omit.
func (p *Product) ApplyDefaults() {
	for i := range p.Variants {
		if p.Variants[i].Type == "" {
			p.Variants[i].Type = "option"
		}
	}
}
