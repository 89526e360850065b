package model

// AddressType distinguishes single-family addresses from units.
type AddressType string

const (
	AddressTypeHouse     AddressType = "House"
	AddressTypeApartment AddressType = "Apartment"
)

// Address is the delivery address in the exact shape upstream expects.
type Address struct {
	Street     string      `json:"Street"`
	StreetName string      `json:"StreetName"`
	City       string      `json:"City"`
	Region     string      `json:"Region"`
	PostalCode string      `json:"PostalCode"`
	Type       AddressType `json:"Type"`
	// Line1 is the primary input line, used for store lookup only.
	Line1 string `json:"-"`
}

// AddressFields holds raw address input as supplied by the caller.
type AddressFields struct {
	Line1      string
	Line2      string
	City       string
	Region     string
	PostalCode string
}

// Locality renders the "CITY, REGION POSTAL" line used by the store locator.
func (a Address) Locality() string {
	return a.City + ", " + a.Region + " " + a.PostalCode
}
