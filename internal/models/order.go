package models

import "github.com/google/uuid"

// Order statuses, only ever changed by admin action.
const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

// ValidOrderStatus reports whether s is one of the known order statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is a placed checkout. New orders always carry Items lines; the
// flat product columns remain to read rows created before cart support
// and are empty on anything written by this codebase.
type Order struct {
	BaseModel
	CustomerID *uuid.UUID  `gorm:"type:uuid;index" json:"customerId,omitempty"`
	Items      []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`

	ProductName  string  `json:"productName,omitempty"`
	ProductPrice float64 `json:"productPrice,omitempty"`
	ProductImage string  `json:"productImage,omitempty"`
	Quantity     int     `json:"quantity,omitempty"`

	TotalAmount   float64 `json:"totalAmount"`
	CustomerPhone string  `json:"customerPhone"`
	Status        string  `gorm:"default:Pending" json:"status"`
}

// OrderItem snapshots a product line at placement time.
type OrderItem struct {
	BaseModel
	OrderID      uuid.UUID  `gorm:"type:uuid;index" json:"-"`
	ProductID    *uuid.UUID `gorm:"type:uuid" json:"productId"`
	ProductName  string     `json:"productName"`
	ProductPrice float64    `json:"productPrice"`
	ProductImage string     `json:"productImage"`
	Quantity     int        `json:"quantity"`
	Subtotal     float64    `json:"subtotal"`
}

// Line is the normalized view of an order line, independent of whether
// the row was stored with Items or with the flat legacy columns.
type Line struct {
	ProductName  string
	ProductPrice float64
	ProductImage string
	Quantity     int
	Subtotal     float64
}

// Lines returns the order's lines in normalized form so consumers never
// branch on the two storage shapes themselves.
func (o *Order) Lines() []Line {
	if len(o.Items) > 0 {
		lines := make([]Line, 0, len(o.Items))
		for _, item := range o.Items {
			lines = append(lines, Line{
				ProductName:  item.ProductName,
				ProductPrice: item.ProductPrice,
				ProductImage: item.ProductImage,
				Quantity:     item.Quantity,
				Subtotal:     item.Subtotal,
			})
		}
		return lines
	}

	if o.ProductName == "" {
		return nil
	}

	return []Line{{
		ProductName:  o.ProductName,
		ProductPrice: o.ProductPrice,
		ProductImage: o.ProductImage,
		Quantity:     o.Quantity,
		Subtotal:     o.ProductPrice * float64(o.Quantity),
	}}
}
