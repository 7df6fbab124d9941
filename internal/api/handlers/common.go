package handlers

import (
	"errors"
	"net/http"

	apperrors "github.com/giftscape-studio/storefront-core/internal/errors"
	"github.com/giftscape-studio/storefront-core/internal/utils"
	"github.com/giftscape-studio/storefront-core/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// decodeJSONBody reads the request body into dest, writing the error response
// itself. Returns false when the handler should stop.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dest any) bool {

	if err := utils.DecodeJSONBody(r, dest); err != nil {
		response.Error(w, apperrors.BadRequestError(err.Error()))
		return false
	}

	return true
}

func validateStruct(w http.ResponseWriter, validate *validator.Validate, data any) bool {

	if err := utils.ValidateStruct(validate, data); err != nil {

		var validationErrs validator.ValidationErrors

		if errors.As(err, &validationErrs) {
			response.ValidationError(w, validationErrs)
			return false
		}

		response.Error(w, apperrors.BadRequestError(err.Error()))

		return false
	}

	return true
}
