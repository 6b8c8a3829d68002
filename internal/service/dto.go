package service

import "github.com/rhenando/gopay-api/internal/domain"

// CreateInvoiceRequest represents the checkout payload from the storefront
type CreateInvoiceRequest struct {
	FirstName    string            `json:"firstName"`
	LastName     string            `json:"lastName"`
	Phone        string            `json:"phone"`
	Email        string            `json:"email"`
	BillNumber   string            `json:"billNumber,omitempty"`
	IssueDate    string            `json:"issueDate,omitempty"`
	ExpireDate   string            `json:"expireDate,omitempty"`
	ServiceName  string            `json:"serviceName,omitempty"`
	Items        []domain.CartItem `json:"items"`
	Amount       float64           `json:"amount" binding:"required"`
	ShippingCost float64           `json:"shippingCost,omitempty"`
}

// PaymentNotificationRequest is the gateway's asynchronous payment callback.
// billNumber and paymentStatus are required; the rest is defaulted when absent.
type PaymentNotificationRequest struct {
	BillNumber    string   `json:"billNumber"`
	PaymentStatus string   `json:"paymentStatus"`
	PaymentAmount *float64 `json:"paymentAmount,omitempty"`
	PaymentDate   string   `json:"paymentDate,omitempty"`
}

// SettlementNotificationRequest is the bank-side settlement callback
type SettlementNotificationRequest struct {
	BillNumber       string   `json:"billNumber"`
	SettlementStatus string   `json:"settlementStatus"`
	PaymentAmount    *float64 `json:"paymentAmount,omitempty"`
	PaymentDate      string   `json:"paymentDate,omitempty"`
	BankID           string   `json:"bankId,omitempty"`
}
