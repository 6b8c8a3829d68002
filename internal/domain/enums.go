package domain

// VATRate is one of the fixed set of tax rates accepted by the gateway
type VATRate string

const (
	// VATExempt - line is exempt from VAT
	VATExempt VATRate = "EXE"
	// VATZero - 0% rated
	VATZero VATRate = "0.0"
	// VATReduced - 5% reduced rate
	VATReduced VATRate = "0.05"
	// VATStandard - 15% standard rate; all lines are billed at this rate
	VATStandard VATRate = "0.15"
)

// IsValid checks if the VAT rate is one the gateway accepts
func (v VATRate) IsValid() bool {
	switch v {
	case VATExempt, VATZero, VATReduced, VATStandard:
		return true
	default:
		return false
	}
}
