package types

import "strings"

// ShippingAddress is the delivery destination snapshot stored on an order.
// Address2 is the only optional field.
type ShippingAddress struct {
	FullName string  `json:"full_name" validate:"required"`
	Phone    string  `json:"phone" validate:"required"`
	Address1 string  `json:"address1" validate:"required"`
	Address2 *string `json:"address2,omitempty"`
	City     string  `json:"city" validate:"required"`
	State    string  `json:"state" validate:"required"`
	Pincode  string  `json:"pincode" validate:"required"`
}

// MissingFields lists the required fields that are empty or whitespace.
func (a ShippingAddress) MissingFields() []string {
	var missing []string
	required := []struct {
		name  string
		value string
	}{
		{"full_name", a.FullName},
		{"phone", a.Phone},
		{"address1", a.Address1},
		{"city", a.City},
		{"state", a.State},
		{"pincode", a.Pincode},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	return missing
}
