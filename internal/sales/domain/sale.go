package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type SaleStatus string

const (
	StatusPending SaleStatus = "pending"
	StatusPaid    SaleStatus = "paid"
	StatusFailed  SaleStatus = "failed"
)

type Sale struct {
	ID           string          `json:"id"`
	Date         time.Time       `json:"date"`
	CustomerName string          `json:"customerName"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
	Status       SaleStatus      `json:"status"`
	Notes        *string         `json:"notes,omitempty"`
	Items        []SaleItem      `json:"items"`
}

// SaleItem adalah snapshot: productName dan price disalin saat sale dibuat
// supaya edit produk belakangan tidak mengubah riwayat.
type SaleItem struct {
	ID          string          `json:"id"`
	SaleID      string          `json:"-"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

type CreateSaleItemRequest struct {
	ProductID   string          `json:"productId" binding:"required"`
	ProductName string          `json:"productName" binding:"required"`
	Quantity    int             `json:"quantity" binding:"required,gt=0"`
	Price       decimal.Decimal `json:"price" binding:"required"`
}

type CreateSaleRequest struct {
	CustomerName string                  `json:"customerName" binding:"required"`
	Subtotal     decimal.Decimal         `json:"subtotal" binding:"required"`
	Tax          decimal.Decimal         `json:"tax"`
	Total        decimal.Decimal         `json:"total" binding:"required"`
	Status       SaleStatus              `json:"status" binding:"omitempty,oneof=pending paid failed"`
	Notes        *string                 `json:"notes"`
	Items        []CreateSaleItemRequest `json:"items" binding:"required,min=1,dive"`
}

type UpdateSaleStatusRequest struct {
	Status SaleStatus `json:"status" binding:"required,oneof=pending paid failed"`
}
