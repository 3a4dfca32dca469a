package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Payment struct {
	ID           string          `json:"id"`
	SaleID       string          `json:"saleId"`
	Amount       decimal.Decimal `json:"amount"`
	Method       string          `json:"method"` // e.g. "credit_card", "cash", "mobile_payment"
	Status       SaleStatus      `json:"status"`
	Date         time.Time       `json:"date"`
	CustomerName string          `json:"customerName"`
	Reference    *string         `json:"reference,omitempty"`
}

type CreatePaymentRequest struct {
	SaleID       string          `json:"saleId" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Method       string          `json:"method" binding:"required"`
	Status       SaleStatus      `json:"status" binding:"required,oneof=pending paid failed"`
	CustomerName string          `json:"customerName" binding:"required"`
	Reference    *string         `json:"reference"`
}
