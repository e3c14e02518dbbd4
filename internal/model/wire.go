package model

import (
	"encoding/json"

	money "github.com/rezonia/ifirma/internal/decimal"
)

// Fixed invoice settings sent with every payload
const (
	CalculateFromGross   = "BRT"
	SaleDateFormatMonth  = "MSC"
	RecipientSignatureNo = "BPO"
)

// ClientPayload is the vendor's Kontrahent object. Field order is the wire order.
type ClientPayload struct {
	Name     string  `json:"Nazwa"`
	TaxID    string  `json:"NIP"`
	ZipCode  string  `json:"KodPocztowy"`
	Street   *string `json:"Ulica"`
	City     string  `json:"Miejscowosc"`
	Country  *string `json:"Kraj"`
	Email    *string `json:"Email"`
	Phone    *string `json:"Telefon"`
	EUPrefix *string `json:"PrefiksUE,omitempty"`
	Private  *bool   `json:"OsobaFizyczna,omitempty"`
}

// PositionPayload is one entry of the vendor's Pozycje array
type PositionPayload struct {
	VATRate   money.Number  `json:"StawkaVat"`
	Quantity  money.Number  `json:"Ilosc"`
	BasePrice money.Number  `json:"CenaJednostkowa"`
	FullName  string        `json:"NazwaPelna"`
	Unit      string        `json:"Jednostka"`
	PKWiU     *string       `json:"PKWiU,omitempty"`
	VATType   VATType       `json:"TypStawkiVat"`
	Discount  *money.Number `json:"Rabat"`
}

// InvoicePayload is the request body for fakturakraj and fakturaproformakraj
type InvoicePayload struct {
	Paid               money.Number      `json:"Zaplacono"`
	PaidOnDocument     money.Number      `json:"ZaplaconoNaDokumencie"`
	CalculateFrom      string            `json:"LiczOd"`
	IssueDate          string            `json:"DataWystawienia"`
	SaleDate           string            `json:"DataSprzedazy"`
	SaleDateFormat     string            `json:"FormatDatySprzedazy"`
	PaymentMethod      PaymentMethod     `json:"SposobZaplaty"`
	RecipientSignature string            `json:"RodzajPodpisuOdbiorcy"`
	VisibleGIOSNumber  bool              `json:"WidocznyNumerGios"`
	IssuePlace         string            `json:"MiejsceWystawienia,omitempty"`
	DueDate            string            `json:"TerminPlatnosci,omitempty"`
	Series             string            `json:"NazwaSeriiNumeracji,omitempty"`
	Template           string            `json:"NazwaSzablonu,omitempty"`
	Notes              string            `json:"Uwagi,omitempty"`
	Number             *string           `json:"Numer"`
	Positions          []PositionPayload `json:"Pozycje"`
	Client             ClientPayload     `json:"Kontrahent"`
}

// Payload converts the client to its wire form
func (c Client) Payload() ClientPayload {
	return ClientPayload{
		Name:     c.Name,
		TaxID:    c.TaxID,
		ZipCode:  c.Address.ZipCode,
		Street:   c.Address.Street,
		City:     c.Address.City,
		Country:  c.Address.Country,
		Email:    c.Email,
		Phone:    c.Phone,
		EUPrefix: c.EUPrefix,
		Private:  c.Private,
	}
}

// Payload converts the position to its wire form
func (p Position) Payload() PositionPayload {
	return PositionPayload{
		VATRate:   money.NewNumber(p.VATRate),
		Quantity:  money.NewNumber(p.Quantity),
		BasePrice: money.NewNumber(p.BasePrice),
		FullName:  p.FullName,
		Unit:      p.Unit,
		PKWiU:     p.PKWiU,
		VATType:   p.vatType(),
		Discount:  money.NumberPtr(p.Discount),
	}
}

// Payload converts the invoice to its wire form. The paid amount is
// recomputed from the positions every time.
func (inv *Invoice) Payload() InvoicePayload {
	total := money.NewNumber(money.RoundPLN(inv.Total()))
	issued := inv.issueDate().Format(DateLayout)

	positions := make([]PositionPayload, 0, len(inv.Positions))
	for _, p := range inv.Positions {
		positions = append(positions, p.Payload())
	}

	payload := InvoicePayload{
		Paid:               total,
		PaidOnDocument:     total,
		CalculateFrom:      CalculateFromGross,
		IssueDate:          issued,
		SaleDate:           issued,
		SaleDateFormat:     SaleDateFormatMonth,
		PaymentMethod:      inv.paymentMethod(),
		RecipientSignature: RecipientSignatureNo,
		VisibleGIOSNumber:  false,
		IssuePlace:         inv.IssuePlace,
		Series:             inv.Series,
		Template:           inv.Template,
		Notes:              inv.Notes,
		Positions:          positions,
		Client:             inv.Client.Payload(),
	}
	if inv.DueDate != nil {
		payload.DueDate = inv.DueDate.Format(DateLayout)
	}
	return payload
}

// RequestBody serializes the invoice as compact JSON, the exact bytes that
// are both signed and sent.
func (inv *Invoice) RequestBody() ([]byte, error) {
	return json.Marshal(inv.Payload())
}
