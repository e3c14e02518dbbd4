package model

import "strings"

// Address is a postal address; city and zip code are required
type Address struct {
	City    string
	ZipCode string
	Street  *string
	Country *string
}

// NewAddress creates an address with only the required fields set
func NewAddress(city, zipCode string) Address {
	return Address{City: city, ZipCode: zipCode}
}

// WithStreet returns a copy of a with the street set
func (a Address) WithStreet(street string) Address {
	a.Street = &street
	return a
}

// WithCountry returns a copy of a with the country set
func (a Address) WithCountry(country string) Address {
	a.Country = &country
	return a
}

// Validate checks the required fields
func (a Address) Validate() error {
	if strings.TrimSpace(a.City) == "" {
		return requiredError("address.city")
	}
	if strings.TrimSpace(a.ZipCode) == "" {
		return requiredError("address.zip_code")
	}
	return nil
}
