package model

import "strings"

// Client is the buyer (Kontrahent) printed on the invoice
type Client struct {
	Name    string
	TaxID   string
	Address Address
	Email   *string
	Phone   *string

	// EUPrefix is the VAT-EU country prefix for foreign buyers
	EUPrefix *string
	// Private marks a natural person; such buyers may omit TaxID
	Private *bool
}

// NewClient creates a client with the required fields set
func NewClient(name, taxID string, address Address) Client {
	return Client{Name: name, TaxID: taxID, Address: address}
}

// WithEmail returns a copy of c with the email set
func (c Client) WithEmail(email string) Client {
	c.Email = &email
	return c
}

// WithPhone returns a copy of c with the phone number set
func (c Client) WithPhone(phone string) Client {
	c.Phone = &phone
	return c
}

// IsPrivate reports whether the client is flagged as a natural person
func (c Client) IsPrivate() bool {
	return c.Private != nil && *c.Private
}

// Validate checks the required fields and the nested address
func (c Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return requiredError("client.name")
	}
	if strings.TrimSpace(c.TaxID) == "" && !c.IsPrivate() {
		return requiredError("client.tax_id")
	}
	return c.Address.Validate()
}
