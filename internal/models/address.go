package models

type AddressType string

const (
	AddressTypeHome AddressType = "Home"
	AddressTypeWork AddressType = "Work"
)

type Address struct {
	ID        string      `json:"id"`
	Type      AddressType `json:"type"`
	Line1     string      `json:"line1"`
	City      string      `json:"city"`
	Pincode   string      `json:"pincode"`
	IsDefault bool        `json:"is_default"`
}

type AddAddressRequest struct {
	Type      string `json:"type" validate:"required,oneof=Home Work"`
	Line1     string `json:"line1" validate:"required"`
	City      string `json:"city" validate:"required"`
	Pincode   string `json:"pincode" validate:"required"`
	IsDefault bool   `json:"is_default"`
}
