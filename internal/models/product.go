package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Product is a catalog entry. Orders copy name/price/image at placement
// time, so later edits here never change existing orders.
type Product struct {
	BaseModel
	Name           string                 `json:"name"`
	Price          float64                `json:"price"`
	OriginalPrice  float64                `json:"originalPrice"`
	Category       string                 `json:"category"`
	Image          string                 `json:"image"`
	Images         pq.StringArray         `gorm:"type:text[]" json:"images"`
	Description    string                 `json:"description"`
	ModelNumber    string                 `json:"modelNumber"`
	Warranty       string                 `json:"warranty"`
	Specifications []ProductSpecification `gorm:"constraint:OnDelete:CASCADE" json:"specifications"`
	Features       pq.StringArray         `gorm:"type:text[]" json:"features"`
}

type ProductSpecification struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;index" json:"-"`
	Label     string    `json:"label"`
	Value     string    `json:"value"`
}
