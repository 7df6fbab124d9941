package models

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Filter intensities. Brightness and contrast are percentages where 100 is
// neutral; sepia and grayscale are percentages where 0 is neutral; blur is a
// non-negative radius in device-independent pixels.
type FilterState struct {
	Brightness float64 `json:"brightness"`
	Contrast   float64 `json:"contrast"`
	Sepia      float64 `json:"sepia"`
	Grayscale  float64 `json:"grayscale"`
	Blur       float64 `json:"blur"`
}

func NeutralFilters() FilterState {
	return FilterState{Brightness: 100, Contrast: 100}
}

// Clamped returns a copy with every intensity forced into its valid range.
func (f FilterState) Clamped() FilterState {
	f.Brightness = clamp(f.Brightness, 0, 200)
	f.Contrast = clamp(f.Contrast, 0, 200)
	f.Sepia = clamp(f.Sepia, 0, 100)
	f.Grayscale = clamp(f.Grayscale, 0, 100)

	if f.Blur < 0 {
		f.Blur = 0
	}

	return f
}

func (f FilterState) IsNeutral() bool {
	return f == NeutralFilters()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}

// CustomizationState is the full editable authoring state. It is retained only
// for the wishlist path so a saved design can be reloaded and re-edited; cart
// and order lines carry a flattened CustomizationSnapshot instead.
type CustomizationState struct {
	ImageData    []byte      `json:"image_data,omitempty"`
	ImageMime    string      `json:"image_mime,omitempty"`
	Text         string      `json:"text"`
	Font         string      `json:"font"`
	Color        string      `json:"color"`
	Filters      FilterState `json:"filters"`
	PhotoSize    string      `json:"photo_size,omitempty"`
	CustomWidth  float64     `json:"custom_width,omitempty"`
	CustomHeight float64     `json:"custom_height,omitempty"`
}

func (c *CustomizationState) HasImage() bool {
	return c != nil && len(c.ImageData) > 0
}

// Fingerprint is a structural hash over the canonical JSON encoding, used as
// the duplicate-design identity for wishlist entries.
func (c *CustomizationState) Fingerprint() string {
	data, err := json.Marshal(c)
	if err != nil {
		// Encoding a CustomizationState cannot fail; all fields are plain values.
		return ""
	}

	sum := sha256.Sum256(data)

	return hex.EncodeToString(sum[:])
}

// CustomizationSnapshot is the flattened, non-editable result captured into a
// cart or order line item.
type CustomizationSnapshot struct {
	ImageURL string `json:"image_url"`
	Text     string `json:"text,omitempty"`
}
