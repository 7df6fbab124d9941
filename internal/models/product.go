package models

import (
	"time"

	"github.com/google/uuid"
)

type ProductVariation struct {
	ID       string  `json:"id"`
	NameKey  string  `json:"name_key"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
}

type Product struct {
	ID                 string             `json:"id"`
	NameKey            string             `json:"name_key"`
	DescriptionKey     string             `json:"description_key"`
	Price              float64            `json:"price"`
	ImageURL           string             `json:"image_url"`
	CategoryKey        string             `json:"category_key"`
	Customizable       bool               `json:"customizable"`
	Variations         []ProductVariation `json:"variations,omitempty"`
	AverageRating      float64            `json:"average_rating,omitempty"`
	ReviewCount        int                `json:"review_count,omitempty"`
	PricePerSquareInch float64            `json:"price_per_square_inch,omitempty"`
}

// Variation returns the variation with the given id, or nil.
func (p *Product) Variation(id string) *ProductVariation {
	for i := range p.Variations {
		if p.Variations[i].ID == id {
			return &p.Variations[i]
		}
	}

	return nil
}

type Category struct {
	NameKey            string `json:"name_key"`
	BackgroundImageURL string `json:"background_image_url,omitempty"`
}

type Review struct {
	ID        uuid.UUID `json:"id"`
	ProductID string    `json:"product_id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Date      time.Time `json:"date"`
}

type AddReviewRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	UserName  string `json:"user_name" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"max=2000"`
}
