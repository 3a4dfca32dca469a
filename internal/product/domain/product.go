package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  *string         `json:"description,omitempty"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	Cost         decimal.Decimal `json:"cost"`
	Stock        int             `json:"stock"`
	MinStock     int             `json:"minStock"`
	ImageURL     *string         `json:"imageUrl,omitempty"`
	Barcode      *string         `json:"barcode,omitempty"`
	BarcodeImage *string         `json:"barcodeImage,omitempty"`
	Model3DFile  *string         `json:"model3dFile,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required,min=2"`
	Description *string         `json:"description"`
	Category    string          `json:"category" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Cost        decimal.Decimal `json:"cost" binding:"required"`
	Stock       *int            `json:"stock" binding:"omitempty,gte=0"`
	MinStock    *int            `json:"minStock" binding:"omitempty,gte=0"`
	ImageURL    *string         `json:"imageUrl" binding:"omitempty,url"`
}

// UpdateProductRequest adalah partial update: hanya field non-nil yang diterapkan.
type UpdateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=2"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	Cost        *decimal.Decimal `json:"cost"`
	Stock       *int             `json:"stock" binding:"omitempty,gte=0"`
	MinStock    *int             `json:"minStock" binding:"omitempty,gte=0"`
	ImageURL    *string          `json:"imageUrl" binding:"omitempty,url"`
}

// TouchesStock melaporkan apakah update menyentuh stock atau minStock,
// yang memicu recompute inventory alert.
func (r UpdateProductRequest) TouchesStock() bool {
	return r.Stock != nil || r.MinStock != nil
}

type TopProduct struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Image      string          `json:"image"`
	Percentage int             `json:"percentage"`
	Price      decimal.Decimal `json:"price"`
}
