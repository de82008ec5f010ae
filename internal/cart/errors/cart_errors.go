package carterrors

import (
	"net/http"

	"go-grocer-api/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var (
	ErrCartNotFound = apperror.New(
		apperror.CodeNotFound,
		"Cart not found",
		http.StatusNotFound,
	)

	ErrCartLineNotFound = apperror.New(
		apperror.CodeNotFound,
		"Cart item not found",
		http.StatusNotFound,
	)

	ErrItemAlreadyInCart = apperror.New(
		apperror.CodeConflict,
		"Item already in cart",
		http.StatusConflict,
	)

	ErrCartEmpty = apperror.New(
		apperror.CodeUnprocessable,
		"Cart is empty",
		http.StatusUnprocessableEntity,
	)
)

func MapValidationError(err error) error {
	if _, ok := err.(validator.ValidationErrors); ok {
		return apperror.New(
			apperror.CodeInvalidInput,
			err.Error(),
			http.StatusBadRequest,
		)
	}
	return err
}
