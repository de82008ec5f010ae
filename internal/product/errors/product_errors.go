package producterrors

import (
	"net/http"

	"go-grocer-api/internal/pkg/apperror"
)

var (
	ErrInvalidProductID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid product id",
		http.StatusBadRequest,
	)

	ErrProductNotFound = apperror.New(
		apperror.CodeNotFound,
		"Product not found",
		http.StatusNotFound,
	)

	ErrOutOfStock = apperror.New(
		apperror.CodeUnprocessable,
		"Product is out of stock",
		http.StatusUnprocessableEntity,
	)
)
