package models

const DefaultVariationKey = "default"

type CartItem struct {
	ID            string                 `json:"id"`
	Product       Product                `json:"product"`
	Quantity      int                    `json:"quantity"`
	Variation     *ProductVariation      `json:"variation,omitempty"`
	Customization *CustomizationSnapshot `json:"customization,omitempty"`
}

// UnitPrice is the variation price when a variation is selected, otherwise the
// product price.
func (i *CartItem) UnitPrice() float64 {
	if i.Variation != nil {
		return i.Variation.Price
	}

	return i.Product.Price
}

// CartItemID builds the merge identity for a cart line.
func CartItemID(productID string, variation *ProductVariation) string {
	variationKey := DefaultVariationKey
	if variation != nil {
		variationKey = variation.ID
	}

	return productID + "-" + variationKey
}

type Cart struct {
	Items []CartItem `json:"items"`
}

func (c *Cart) Subtotal() float64 {
	var subtotal float64

	for i := range c.Items {
		subtotal += c.Items[i].UnitPrice() * float64(c.Items[i].Quantity)
	}

	return subtotal
}

type AddCartItemRequest struct {
	ProductID     string                 `json:"product_id" validate:"required"`
	Quantity      int                    `json:"quantity" validate:"required,min=1"`
	VariationID   string                 `json:"variation_id,omitempty"`
	Customization *CustomizationSnapshot `json:"customization,omitempty"`
}

type UpdateCartQuantityRequest struct {
	ItemID   string `json:"item_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"min=0"`
}
