package model

import money "github.com/rezonia/ifirma/internal/decimal"

// VATType tells the vendor how to interpret StawkaVat
type VATType string

const (
	VATTypePercentage VATType = "PRC"
	VATTypeExempt     VATType = "ZW"
)

// Valid reports whether t is a VAT type the vendor accepts
func (t VATType) Valid() bool {
	return t == VATTypePercentage || t == VATTypeExempt
}

// Polish VAT rates as fractions
var (
	VAT0  = money.MustFromString("0.00")
	VAT5  = money.MustFromString("0.05")
	VAT8  = money.MustFromString("0.08")
	VAT23 = money.MustFromString("0.23")
)

// PaymentMethod is the vendor's SposobZaplaty code
type PaymentMethod string

const (
	PaymentElectronic PaymentMethod = "ELE"
	PaymentTransfer   PaymentMethod = "PRZ"
	PaymentCash       PaymentMethod = "GTK"
	PaymentCard       PaymentMethod = "KAR"
	PaymentOnDelivery PaymentMethod = "POB"
)

// Valid reports whether m is one of the supported payment codes
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentElectronic, PaymentTransfer, PaymentCash, PaymentCard, PaymentOnDelivery:
		return true
	}
	return false
}
