package models

import (
	"time"
)

type OrderStatus string

const (
	OrderStatusProcessing     OrderStatus = "Processing"
	OrderStatusShipped        OrderStatus = "Shipped"
	OrderStatusOutForDelivery OrderStatus = "Out for Delivery"
	OrderStatusDelivered      OrderStatus = "Delivered"
	OrderStatusCancelled      OrderStatus = "Cancelled"
)

type PaymentMethod string

const (
	PaymentMethodCard       PaymentMethod = "creditDebitCard"
	PaymentMethodUPI        PaymentMethod = "upi"
	PaymentMethodNetBanking PaymentMethod = "netBanking"
	PaymentMethodWallets    PaymentMethod = "wallets"
	PaymentMethodCOD        PaymentMethod = "cod"
)

type ShippingInfo struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Address  string `json:"address" validate:"required"`
	City     string `json:"city" validate:"required"`
	Pincode  string `json:"pincode" validate:"required"`
}

// Order is immutable once created except for its status, which moves only
// along the defined shipping lifecycle edges.
type Order struct {
	ID               string        `json:"id"`
	CustomerID       string        `json:"customer_id,omitempty"`
	Date             time.Time     `json:"date"`
	Status           OrderStatus   `json:"status"`
	Items            []CartItem    `json:"items"`
	Subtotal         float64       `json:"subtotal"`
	Shipping         float64       `json:"shipping"`
	Discount         float64       `json:"discount"`
	Total            float64       `json:"total"`
	PaymentMethod    PaymentMethod `json:"payment_method,omitempty"`
	ShippingAddress  *ShippingInfo `json:"shipping_address,omitempty"`
	TrackingID       string        `json:"tracking_id,omitempty"`
	ShippingProvider string        `json:"shipping_provider,omitempty"`
}

// PlacedOrder is the confirmation payload. ReferralApplied reports whether a
// pending referral was redeemed as part of this placement; it is set at most
// once per session.
type PlacedOrder struct {
	Order           *Order `json:"order"`
	ReferralApplied bool   `json:"referral_applied"`
}

type BeginCheckoutRequest struct {
	ShippingAddress ShippingInfo `json:"shipping_address" validate:"required"`
	PaymentMethod   string       `json:"payment_method" validate:"required,oneof=creditDebitCard upi netBanking wallets cod"`
}

type ApplyDiscountRequest struct {
	Code string `json:"code" validate:"required"`
}

type ConfirmCheckoutRequest struct {
	ChallengeID string `json:"challenge_id" validate:"required"`
	Code        string `json:"code" validate:"required,len=4,numeric"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=Processing Shipped 'Out for Delivery' Delivered Cancelled"`
}

type CheckoutQuote struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}
