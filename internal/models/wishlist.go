package models

type WishlistItem struct {
	ID            string             `json:"id"`
	Product       Product            `json:"product"`
	Customization CustomizationState `json:"customization"`
}

type AddWishlistItemRequest struct {
	ProductID     string             `json:"product_id" validate:"required"`
	Customization CustomizationState `json:"customization"`
}
