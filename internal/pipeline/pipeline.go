package pipeline

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"log/slog"
	"sync"

	"github.com/disintegration/gift"
	"github.com/fogleman/gg"
	apperrors "github.com/giftscape-studio/storefront-core/internal/errors"
	"github.com/giftscape-studio/storefront-core/internal/metrics"
	"github.com/giftscape-studio/storefront-core/internal/models"
)

// State is the lifecycle phase of a Customizer.
type State string

const (
	StateEmpty     State = "empty"
	StateLoaded    State = "loaded"
	StateRestoring State = "restoring"
)

const jpegQuality = 90

// Restorer repairs an uploaded photograph and returns a replacement image.
// Satisfied by the gemini client.
type Restorer interface {
	RestorePhoto(ctx context.Context, imageData []byte, mimeType string) ([]byte, string, error)
}

// Customizer is the per-session authoring surface for one personalized design.
// Any change of source image, a fresh upload or a successful restoration,
// resets the filter intensities to neutral.
type Customizer struct {
	mu       sync.Mutex
	state    State
	design   models.CustomizationState
	restorer Restorer
	logger   *slog.Logger
}

func NewCustomizer(restorer Restorer, logger *slog.Logger) *Customizer {
	return &Customizer{
		state:    StateEmpty,
		design:   models.CustomizationState{Filters: models.NeutralFilters()},
		restorer: restorer,
		logger:   logger,
	}
}

func (c *Customizer) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Design returns a copy of the current authoring state.
func (c *Customizer) Design() models.CustomizationState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.copyDesignLocked()
}

func (c *Customizer) copyDesignLocked() models.CustomizationState {

	design := c.design
	design.ImageData = bytes.Clone(c.design.ImageData)

	return design
}

// Load replaces the working image and resets the filters to neutral. Text,
// font and color survive the swap.
func (c *Customizer) Load(imageData []byte, mimeType string) error {

	if _, _, err := image.Decode(bytes.NewReader(imageData)); err != nil {
		return apperrors.BadRequestError("uploaded file is not a supported image").WithError(err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateRestoring {
		return apperrors.ConflictError("a restoration is in progress")
	}

	c.design.ImageData = bytes.Clone(imageData)
	c.design.ImageMime = mimeType
	c.design.Filters = models.NeutralFilters()
	c.state = StateLoaded

	return nil
}

// LoadDesign rehydrates a previously saved authoring state, e.g. when a
// wishlist entry is reopened for editing. Saved filters are kept as-is.
func (c *Customizer) LoadDesign(design models.CustomizationState) error {

	if len(design.ImageData) > 0 {
		if _, _, err := image.Decode(bytes.NewReader(design.ImageData)); err != nil {
			return apperrors.BadRequestError("saved design holds an unreadable image").WithError(err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateRestoring {
		return apperrors.ConflictError("a restoration is in progress")
	}

	design.ImageData = bytes.Clone(design.ImageData)
	design.Filters = design.Filters.Clamped()
	c.design = design

	if design.HasImage() {
		c.state = StateLoaded
	} else {
		c.state = StateEmpty
	}

	return nil
}

func (c *Customizer) SetFilters(filters models.FilterState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.design.Filters = filters.Clamped()
}

func (c *Customizer) SetText(text, font, color string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.design.Text = text
	c.design.Font = font
	c.design.Color = color
}

func (c *Customizer) SetPhotoSize(size string, customWidth, customHeight float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.design.PhotoSize = size
	c.design.CustomWidth = customWidth
	c.design.CustomHeight = customHeight
}

// Clear drops the design and returns the customizer to its initial state.
func (c *Customizer) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.design = models.CustomizationState{Filters: models.NeutralFilters()}
	c.state = StateEmpty
}

// Restore sends the working image through the restoration model. Success swaps
// in the repaired image and, like any new source image, resets the filters to
// neutral. On failure the previous image and filters are kept and the error is
// surfaced.
func (c *Customizer) Restore(ctx context.Context) error {

	c.mu.Lock()

	if c.state == StateRestoring {
		c.mu.Unlock()
		return apperrors.ConflictError("a restoration is already in progress")
	}

	if !c.design.HasImage() {
		c.mu.Unlock()
		return apperrors.BadRequestError("no image loaded to restore")
	}

	imageData := bytes.Clone(c.design.ImageData)
	mimeType := c.design.ImageMime
	c.state = StateRestoring

	c.mu.Unlock()

	restored, restoredMime, err := c.restorer.RestorePhoto(ctx, imageData, mimeType)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = StateLoaded

	if err != nil {
		metrics.PhotoRestore(false)
		c.logger.Error("Photo restoration failed, keeping original image", slog.String("error", err.Error()))

		return apperrors.AIServiceError("photo restoration failed").WithError(err)
	}

	if _, _, err := image.Decode(bytes.NewReader(restored)); err != nil {
		metrics.PhotoRestore(false)
		c.logger.Error("Restoration model returned an unreadable image, keeping original", slog.String("error", err.Error()))

		return apperrors.AIServiceError("photo restoration returned an unreadable image").WithError(err)
	}

	c.design.ImageData = restored
	c.design.ImageMime = restoredMime
	c.design.Filters = models.NeutralFilters()

	metrics.PhotoRestore(true)

	return nil
}

// Snapshot bakes the current filters and text overlay into a final image and
// returns it as a flattened line-item attachment.
func (c *Customizer) Snapshot() (*models.CustomizationSnapshot, error) {

	c.mu.Lock()
	design := c.copyDesignLocked()
	state := c.state
	c.mu.Unlock()

	if state == StateRestoring {
		return nil, apperrors.ConflictError("a restoration is in progress")
	}

	if !design.HasImage() {
		return nil, apperrors.BadRequestError("no image loaded to snapshot")
	}

	src, _, err := image.Decode(bytes.NewReader(design.ImageData))
	if err != nil {
		return nil, apperrors.InternalError("failed to decode working image").WithError(err)
	}

	rendered := renderDesign(src, design)

	encoded, mimeType, err := encodeImage(rendered, design.ImageMime)
	if err != nil {
		return nil, apperrors.InternalError("failed to encode snapshot").WithError(err)
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(encoded))

	return &models.CustomizationSnapshot{ImageURL: dataURL, Text: design.Text}, nil
}

func renderDesign(src image.Image, design models.CustomizationState) image.Image {

	filtered := applyFilters(src, design.Filters)

	if design.Text == "" {
		return filtered
	}

	bounds := filtered.Bounds()

	dc := gg.NewContextForImage(filtered)

	if design.Color != "" {
		dc.SetHexColor(design.Color)
	} else {
		dc.SetRGB(1, 1, 1)
	}

	// Overlay is anchored near the bottom edge, centered horizontally.
	x := float64(bounds.Dx()) / 2
	y := float64(bounds.Dy()) - float64(bounds.Dy())/10

	dc.DrawStringAnchored(design.Text, x, y, 0.5, 0.5)

	return dc.Image()
}

func applyFilters(src image.Image, filters models.FilterState) image.Image {

	filters = filters.Clamped()

	if filters.IsNeutral() {
		return src
	}

	g := gift.New()

	if filters.Brightness != 100 {
		g.Add(gift.Brightness(float32(filters.Brightness - 100)))
	}

	if filters.Contrast != 100 {
		g.Add(gift.Contrast(float32(filters.Contrast - 100)))
	}

	if filters.Sepia > 0 {
		g.Add(gift.Sepia(float32(filters.Sepia)))
	}

	if filters.Grayscale > 0 {
		// Partial grayscale maps onto a saturation drop; 100 fully desaturates.
		g.Add(gift.Saturation(float32(-filters.Grayscale)))
	}

	if filters.Blur > 0 {
		g.Add(gift.GaussianBlur(float32(filters.Blur)))
	}

	dst := image.NewRGBA(g.Bounds(src.Bounds()))
	g.Draw(dst, src)

	return dst
}

func encodeImage(img image.Image, mimeType string) ([]byte, string, error) {

	var buf bytes.Buffer

	switch mimeType {
	case "image/jpeg":
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, "", err
		}

		return buf.Bytes(), "image/jpeg", nil

	default:
		// Source formats without an encoder here (gif among them) flatten to png.
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", err
		}

		return buf.Bytes(), "image/png", nil
	}
}
