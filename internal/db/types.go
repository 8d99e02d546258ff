package db

import "encoding/json"

// Contact is one row of the contacts table.
//
// Valid holds the raw validation outcome exactly as stored: a JSON string
// sentinel ("Not Validated", "API Error", "Validation Failed" or a
// normalized "valid"/"invalid"), JSON false when the service found no match,
// the verbatim candidate array on a match, or nil when never validated.
type Contact struct {
	ID        int64           `json:"id"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Address   string          `json:"address"`
	City      string          `json:"city"`
	State     string          `json:"state"`
	Zipcode   string          `json:"zipcode"`
	Country   string          `json:"country"`
	Valid     json.RawMessage `json:"valid"`
}

// StatusText returns the plain string value of the validation status, or ""
// when the status is absent or not a JSON string. Only string statuses carry
// display meaning; candidate arrays and false deliberately map to "".
func (c Contact) StatusText() string {
	if len(c.Valid) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(c.Valid, &s); err != nil {
		return ""
	}
	return s
}
