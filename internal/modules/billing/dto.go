package billing

import "hotelier/internal/domain"

type ApplyPaymentRequest struct {
	Amount float64              `json:"amount" binding:"required"`
	Method domain.PaymentMethod `json:"method" binding:"required"`
}

type AddChargeRequest struct {
	Category    string  `json:"category" binding:"required"`
	Description string  `json:"description"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity" binding:"required"`
}

// InvoiceDetails is the invoice with its settlement state.
type InvoiceDetails struct {
	Invoice  domain.Invoice   `json:"invoice"`
	Payments []domain.Payment `json:"payments"`
	Balance  float64          `json:"balance"`
}
