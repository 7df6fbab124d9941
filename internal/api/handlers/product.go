package handlers

import (
	"net/http"

	"github.com/giftscape-studio/storefront-core/internal/i18n"
	"github.com/giftscape-studio/storefront-core/internal/models"
	"github.com/giftscape-studio/storefront-core/internal/services"
	"github.com/giftscape-studio/storefront-core/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type ProductHandler struct {
	products  *services.ProductService
	strings   i18n.Table
	validator *validator.Validate
}

func NewProductHandler(products *services.ProductService, strings i18n.Table) *ProductHandler {
	return &ProductHandler{
		products:  products,
		strings:   strings,
		validator: validator.New(),
	}
}

// translator builds a per-request translator from the ?lang= parameter.
// Unsupported or missing languages fall back to English.
func (h *ProductHandler) translator(r *http.Request) *i18n.Translator {
	return i18n.NewTranslator(h.strings, i18n.Language(r.URL.Query().Get("lang")))
}

func (h *ProductHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		query := r.URL.Query()

		var products []models.Product

		switch {
		case query.Get("q") != "":
			products = h.products.Search(h.translator(r), query.Get("q"))
		case query.Get("category") != "":
			products = h.products.ProductsByCategory(query.Get("category"))
		default:
			products = h.products.Products()
		}

		response.Success(w, http.StatusOK, products)
	}
}

func (h *ProductHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		product, err := h.products.ProductByID(r.PathValue("id"))
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

func (h *ProductHandler) Categories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, h.products.Categories())
	}
}

func (h *ProductHandler) Description() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		description, err := h.products.Description(r.Context(), h.translator(r), r.PathValue("id"))
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]string{"description": description})
	}
}

func (h *ProductHandler) Reviews() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, h.products.Reviews(r.PathValue("id")))
	}
}

func (h *ProductHandler) AddReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.AddReviewRequest

		if !decodeJSONBody(w, r, &req) {
			return
		}

		req.ProductID = r.PathValue("id")

		if !validateStruct(w, h.validator, req) {
			return
		}

		review, err := h.products.AddReview(&req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, review)
	}
}
