package domain

import "time"

type AlertStatus string

const (
	StatusCritical AlertStatus = "critical"
	StatusWarning  AlertStatus = "warning"
)

type InventoryAlert struct {
	ID               string      `json:"id"`
	ProductID        string      `json:"productId"`
	ProductName      string      `json:"product"`
	CurrentStock     int         `json:"currentStock"`
	MinRequiredStock int         `json:"minRequiredStock"`
	Status           AlertStatus `json:"status"`
	CreatedAt        time.Time   `json:"createdAt"`
}

// EvaluateAlert menentukan apakah suatu kombinasi stock/minStock butuh alert.
// critical bila stock <= minStock/2 (dihitung tanpa pembulatan integer),
// warning bila di atas itu tapi masih di bawah minStock.
func EvaluateAlert(stock, minStock int) (AlertStatus, bool) {
	if stock >= minStock {
		return "", false
	}
	if 2*stock <= minStock {
		return StatusCritical, true
	}
	return StatusWarning, true
}
