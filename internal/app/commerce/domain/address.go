package domain

import "strings"

// Address is a shipping address as sent with setShippingAddress.
type Address struct {
	Country    string `json:"country"`
	City       string `json:"city,omitempty"`
	StreetName string `json:"streetName,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	Email      string `json:"email,omitempty"`
}

// Storefront fallbacks for fields left empty in the checkout form.
const (
	DefaultCountry    = "US"
	DefaultCity       = "Berlin"
	DefaultStreetName = "Main St"
	DefaultPostalCode = "12345"
	DefaultFirstName  = "Guest"
	DefaultLastName   = "User"
	DefaultEmail      = "guest@example.com"
)

// WithDefaults fills empty fields from the customer (when logged in) and then the storefront fallbacks.
func (a Address) WithDefaults(c *Customer) Address {
	out := Address{
		Country:    strings.TrimSpace(a.Country),
		City:       strings.TrimSpace(a.City),
		StreetName: strings.TrimSpace(a.StreetName),
		PostalCode: strings.TrimSpace(a.PostalCode),
		FirstName:  strings.TrimSpace(a.FirstName),
		LastName:   strings.TrimSpace(a.LastName),
		Email:      strings.TrimSpace(a.Email),
	}
	if c != nil {
		out.FirstName = firstNonEmpty(out.FirstName, c.FirstName)
		out.LastName = firstNonEmpty(out.LastName, c.LastName)
		out.Email = firstNonEmpty(out.Email, c.Email)
	}
	out.Country = firstNonEmpty(out.Country, DefaultCountry)
	out.City = firstNonEmpty(out.City, DefaultCity)
	out.StreetName = firstNonEmpty(out.StreetName, DefaultStreetName)
	out.PostalCode = firstNonEmpty(out.PostalCode, DefaultPostalCode)
	out.FirstName = firstNonEmpty(out.FirstName, DefaultFirstName)
	out.LastName = firstNonEmpty(out.LastName, DefaultLastName)
	out.Email = firstNonEmpty(out.Email, DefaultEmail)
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// Customer is the logged-in shopper as returned by the platform's login call.
type Customer struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// CustomerDraft is the sign-up payload.
type CustomerDraft struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}
