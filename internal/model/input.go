package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceInput is the English-named JSON document accepted by the CLI and the
// HTTP gateway. Build converts it into an Invoice.
type InvoiceInput struct {
	Client        ClientInput     `json:"client"`
	Positions     []PositionInput `json:"positions"`
	IssueDate     string          `json:"issue_date,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	IssuePlace    string          `json:"issue_place,omitempty"`
	DueDate       string          `json:"due_date,omitempty"`
	Series        string          `json:"series,omitempty"`
	Template      string          `json:"template,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// AddressInput is the address part of ClientInput
type AddressInput struct {
	City    string  `json:"city"`
	ZipCode string  `json:"zip_code"`
	Street  *string `json:"street,omitempty"`
	Country *string `json:"country,omitempty"`
}

// ClientInput is the buyer part of InvoiceInput
type ClientInput struct {
	Name     string       `json:"name"`
	TaxID    string       `json:"tax_id"`
	Address  AddressInput `json:"address"`
	Email    *string      `json:"email,omitempty"`
	Phone    *string      `json:"phone,omitempty"`
	EUPrefix *string      `json:"eu_prefix,omitempty"`
	Private  *bool        `json:"private,omitempty"`
}

// PositionInput is one line item of InvoiceInput. Amounts accept JSON numbers
// or numeric strings.
type PositionInput struct {
	VATRate   decimal.Decimal  `json:"vat_rate"`
	Quantity  decimal.Decimal  `json:"quantity"`
	BasePrice decimal.Decimal  `json:"base_price"`
	FullName  string           `json:"full_name"`
	Unit      string           `json:"unit"`
	PKWiU     *string          `json:"pkwiu,omitempty"`
	Discount  *decimal.Decimal `json:"discount,omitempty"`
	VATType   string           `json:"vat_type,omitempty"`
}

// Build converts the input into a validated Invoice
func (in InvoiceInput) Build() (*Invoice, error) {
	client := Client{
		Name:  in.Client.Name,
		TaxID: in.Client.TaxID,
		Address: Address{
			City:    in.Client.Address.City,
			ZipCode: in.Client.Address.ZipCode,
			Street:  in.Client.Address.Street,
			Country: in.Client.Address.Country,
		},
		Email:    in.Client.Email,
		Phone:    in.Client.Phone,
		EUPrefix: in.Client.EUPrefix,
		Private:  in.Client.Private,
	}

	positions := make([]Position, 0, len(in.Positions))
	for _, p := range in.Positions {
		position := NewPosition(p.VATRate, p.Quantity, p.BasePrice, p.FullName, p.Unit)
		position.PKWiU = p.PKWiU
		position.Discount = p.Discount
		if p.VATType != "" {
			position.VATType = VATType(p.VATType)
		}
		positions = append(positions, position)
	}

	inv := NewInvoice(client, positions...)
	inv.IssuePlace = in.IssuePlace
	inv.Series = in.Series
	inv.Template = in.Template
	inv.Notes = in.Notes
	if in.PaymentMethod != "" {
		inv.PaymentMethod = PaymentMethod(in.PaymentMethod)
	}

	if in.IssueDate != "" {
		issued, err := time.Parse(DateLayout, in.IssueDate)
		if err != nil {
			return nil, NewValidationError("issue_date", in.IssueDate, RuleFormat, "must be YYYY-MM-DD")
		}
		inv.IssueDate = issued
	}
	if in.DueDate != "" {
		due, err := time.Parse(DateLayout, in.DueDate)
		if err != nil {
			return nil, NewValidationError("due_date", in.DueDate, RuleFormat, "must be YYYY-MM-DD")
		}
		inv.DueDate = &due
	}

	if err := inv.Validate(); err != nil {
		return nil, err
	}
	return inv, nil
}
