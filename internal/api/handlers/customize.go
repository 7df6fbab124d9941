package handlers

import (
	"io"
	"net/http"
	"sync"

	"github.com/giftscape-studio/storefront-core/internal/api/middleware"
	apperrors "github.com/giftscape-studio/storefront-core/internal/errors"
	"github.com/giftscape-studio/storefront-core/internal/models"
	"github.com/giftscape-studio/storefront-core/internal/pipeline"
	"github.com/giftscape-studio/storefront-core/internal/services"
	"github.com/giftscape-studio/storefront-core/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

const maxUploadBytes = 10 << 20

// CustomizeHandler exposes the design pipeline. Each session gets its own
// customizer, created lazily on first use.
type CustomizeHandler struct {
	restorer  pipeline.Restorer
	products  *services.ProductService
	cart      *services.CartService
	wishlist  *services.WishlistService
	validator *validator.Validate

	mu          sync.Mutex
	customizers map[string]*pipeline.Customizer
}

func NewCustomizeHandler(restorer pipeline.Restorer, products *services.ProductService, cart *services.CartService, wishlist *services.WishlistService) *CustomizeHandler {
	return &CustomizeHandler{
		restorer:    restorer,
		products:    products,
		cart:        cart,
		wishlist:    wishlist,
		validator:   validator.New(),
		customizers: make(map[string]*pipeline.Customizer),
	}
}

func (h *CustomizeHandler) customizer(r *http.Request) *pipeline.Customizer {

	sessionID := middleware.SessionIDFromContext(r.Context())

	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.customizers[sessionID]
	if !ok {
		c = pipeline.NewCustomizer(h.restorer, middleware.LoggerFromContext(r.Context()))
		h.customizers[sessionID] = c
	}

	return c
}

type designView struct {
	State    pipeline.State     `json:"state"`
	HasImage bool               `json:"has_image"`
	Text     string             `json:"text"`
	Font     string             `json:"font"`
	Color    string             `json:"color"`
	Filters  models.FilterState `json:"filters"`
}

func viewOf(c *pipeline.Customizer) designView {

	design := c.Design()

	return designView{
		State:    c.State(),
		HasImage: design.HasImage(),
		Text:     design.Text,
		Font:     design.Font,
		Color:    design.Color,
		Filters:  design.Filters,
	}
}

func (h *CustomizeHandler) Upload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			response.Error(w, apperrors.BadRequestError("invalid upload").WithError(err))
			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			response.Error(w, apperrors.BadRequestError("an image file is required"))
			return
		}

		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			response.Error(w, apperrors.InternalError("failed to read the upload").WithError(err))
			return
		}

		c := h.customizer(r)

		if err := c.Load(data, header.Header.Get("Content-Type")); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, viewOf(c))
	}
}

func (h *CustomizeHandler) State() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, viewOf(h.customizer(r)))
	}
}

func (h *CustomizeHandler) SetFilters() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.FilterState

		if !decodeJSONBody(w, r, &req) {
			return
		}

		c := h.customizer(r)
		c.SetFilters(req)

		response.Success(w, http.StatusOK, viewOf(c))
	}
}

func (h *CustomizeHandler) SetText() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req struct {
			Text  string `json:"text"`
			Font  string `json:"font"`
			Color string `json:"color"`
		}

		if !decodeJSONBody(w, r, &req) {
			return
		}

		c := h.customizer(r)
		c.SetText(req.Text, req.Font, req.Color)

		response.Success(w, http.StatusOK, viewOf(c))
	}
}

func (h *CustomizeHandler) Restore() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		c := h.customizer(r)

		if err := c.Restore(r.Context()); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, viewOf(c))
	}
}

func (h *CustomizeHandler) Reset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		c := h.customizer(r)
		c.Clear()

		response.Success(w, http.StatusOK, viewOf(c))
	}
}

type addToCartRequest struct {
	ProductID   string `json:"product_id" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,min=1"`
	VariationID string `json:"variation_id,omitempty"`
}

// AddToCart bakes the current design into a snapshot and puts it in the cart.
func (h *CustomizeHandler) AddToCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req addToCartRequest

		if !decodeJSONBody(w, r, &req) {
			return
		}

		if !validateStruct(w, h.validator, req) {
			return
		}

		product, err := h.products.ProductByID(req.ProductID)
		if err != nil {
			response.Error(w, err)
			return
		}

		if !product.Customizable {
			response.Error(w, apperrors.BadRequestError("this product cannot be customized"))
			return
		}

		var variation *models.ProductVariation

		if req.VariationID != "" {

			variation = product.Variation(req.VariationID)

			if variation == nil {
				response.Error(w, apperrors.BadRequestError("unknown variation for this product"))
				return
			}
		}

		snapshot, err := h.customizer(r).Snapshot()
		if err != nil {
			response.Error(w, err)
			return
		}

		cart := h.cart.AddItem(middleware.SessionIDFromContext(r.Context()),
			product, req.Quantity, variation, snapshot)

		response.Success(w, http.StatusOK, cart)
	}
}

type saveDesignRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// SaveToWishlist stores the full editable design so it can be reopened later.
func (h *CustomizeHandler) SaveToWishlist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req saveDesignRequest

		if !decodeJSONBody(w, r, &req) {
			return
		}

		if !validateStruct(w, h.validator, req) {
			return
		}

		product, err := h.products.ProductByID(req.ProductID)
		if err != nil {
			response.Error(w, err)
			return
		}

		item, err := h.wishlist.Add(r.Context(), owner(r), product, h.customizer(r).Design())
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, item)
	}
}

// InWishlist reports whether the session's current design is already saved
// for the given product.
func (h *CustomizeHandler) InWishlist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		productID := r.URL.Query().Get("product_id")

		if productID == "" {
			response.Error(w, apperrors.BadRequestError("product_id is required"))
			return
		}

		saved := h.wishlist.Contains(r.Context(), owner(r), productID, h.customizer(r).Design())

		response.Success(w, http.StatusOK, map[string]bool{"saved": saved})
	}
}

// EditWishlistItem reloads a saved design into the session's customizer.
func (h *CustomizeHandler) EditWishlistItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		itemID := r.PathValue("itemId")

		for _, item := range h.wishlist.Items(r.Context(), owner(r)) {
			if item.ID != itemID {
				continue
			}

			c := h.customizer(r)

			if err := c.LoadDesign(item.Customization); err != nil {
				response.Error(w, err)
				return
			}

			response.Success(w, http.StatusOK, viewOf(c))

			return
		}

		response.Error(w, apperrors.NotFoundError("wishlist item not found"))
	}
}
