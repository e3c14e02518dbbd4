package model

import (
	"time"

	"github.com/shopspring/decimal"

	money "github.com/rezonia/ifirma/internal/decimal"
)

// DateLayout is the date format the vendor expects
const DateLayout = "2006-01-02"

// Invoice is a new domestic invoice (or pro forma) to be issued
type Invoice struct {
	Client    Client
	Positions []Position // presentation order on the document
	IssueDate time.Time

	PaymentMethod PaymentMethod
	IssuePlace    string
	DueDate       *time.Time
	Series        string // numbering series name
	Template      string // print template name
	Notes         string
}

// NewInvoice creates an invoice issued today
func NewInvoice(client Client, positions ...Position) *Invoice {
	return &Invoice{
		Client:        client,
		Positions:     positions,
		IssueDate:     time.Now(),
		PaymentMethod: PaymentElectronic,
	}
}

// Total sums the contribution of every position. It is computed on each call.
func (inv *Invoice) Total() decimal.Decimal {
	values := make([]decimal.Decimal, 0, len(inv.Positions))
	for _, p := range inv.Positions {
		values = append(values, p.Contribution())
	}
	return money.Sum(values)
}

// Validate checks the invoice before it is sent
func (inv *Invoice) Validate() error {
	if err := inv.Client.Validate(); err != nil {
		return err
	}
	if len(inv.Positions) == 0 {
		return NewValidationError("positions", nil, RuleMinItems, "at least one position is required")
	}
	for i, p := range inv.Positions {
		if err := p.Validate(i); err != nil {
			return err
		}
	}
	if inv.PaymentMethod != "" && !inv.PaymentMethod.Valid() {
		return NewValidationError("payment_method", string(inv.PaymentMethod), RuleEnum, "unsupported payment method")
	}
	if inv.DueDate != nil && inv.DueDate.Format(DateLayout) < inv.issueDate().Format(DateLayout) {
		return NewValidationError("due_date", inv.DueDate.Format(DateLayout), RuleRange, "must not precede the issue date")
	}
	return nil
}

func (inv *Invoice) issueDate() time.Time {
	if inv.IssueDate.IsZero() {
		return time.Now()
	}
	return inv.IssueDate
}

func (inv *Invoice) paymentMethod() PaymentMethod {
	if inv.PaymentMethod == "" {
		return PaymentElectronic
	}
	return inv.PaymentMethod
}
