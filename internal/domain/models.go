package domain

import "time"

// CartItem represents one checkout line as submitted by the storefront
type CartItem struct {
	ID          string  `json:"id"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
}

// BillLine is one billable line in the gateway's upload format.
// UnitPrice and Discount are fixed-point decimal strings, not numbers.
type BillLine struct {
	Reference string  `json:"reference"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice string  `json:"unitPrice"`
	Discount  string  `json:"discount"`
	VATRate   VATRate `json:"vat"`
}

// InvoiceRequest is the full upload payload sent to the gateway.
// Built once per checkout and never mutated after send.
type InvoiceRequest struct {
	BillNumber       string     `json:"billNumber"`
	EntityActivityID string     `json:"entityActivityId"`
	CustomerName     string     `json:"customerFullName"`
	CustomerEmail    string     `json:"customerEmailAddress"`
	CustomerPhone    string     `json:"customerMobileNumber"`
	IssueDate        string     `json:"issueDate"`
	ExpireDate       string     `json:"expireDate"`
	ServiceName      string     `json:"serviceName"`
	Items            []BillLine `json:"listTaxableItem"`
	TotalAmount      string     `json:"totalAmount"`
	IsPublished      bool       `json:"isPublished"`
	IsVisible        bool       `json:"isVisible"`
}

// InvoiceResult is what the relay reports back to the storefront.
// BillNumber is the gateway-assigned one, which is authoritative;
// RedirectURL is nil when no payment link could be extracted.
type InvoiceResult struct {
	BillNumber  string
	RedirectURL *string
}

// PaymentRecord stores a payment notification callback, keyed by bill_number.
// Repeated callbacks for the same bill merge into one document.
type PaymentRecord struct {
	BillNumber    string    `bson:"bill_number" json:"billNumber"`
	PaymentStatus string    `bson:"payment_status" json:"paymentStatus"`
	PaymentAmount float64   `bson:"payment_amount" json:"paymentAmount"`
	PaymentDate   string    `bson:"payment_date" json:"paymentDate"`
	CreatedAt     time.Time `bson:"created_at,omitempty" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updatedAt"`
}

// SettlementRecord stores a bank settlement callback, keyed by bill_number
type SettlementRecord struct {
	BillNumber       string    `bson:"bill_number" json:"billNumber"`
	SettlementStatus string    `bson:"settlement_status" json:"settlementStatus"`
	PaymentAmount    float64   `bson:"payment_amount" json:"paymentAmount"`
	PaymentDate      string    `bson:"payment_date" json:"paymentDate"`
	BankID           string    `bson:"bank_id" json:"bankId"`
	CreatedAt        time.Time `bson:"created_at,omitempty" json:"createdAt"`
	UpdatedAt        time.Time `bson:"updated_at" json:"updatedAt"`
}
