package order

import (
	"net/http"

	"go-grocer-api/internal/pkg/apperror"
)

var (
	ErrOrderNotFound = apperror.New(
		apperror.CodeNotFound,
		"Order not found",
		http.StatusNotFound,
	)

	ErrOrderFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to place order",
		http.StatusInternalServerError,
	)

	ErrNotDeliverable = apperror.New(
		apperror.CodeUnprocessable,
		"Some items in your cart cannot be delivered to this pincode",
		http.StatusUnprocessableEntity,
	)

	ErrInsufficientStock = apperror.New(
		apperror.CodeUnprocessable,
		"Not enough stock for one or more items in your cart",
		http.StatusUnprocessableEntity,
	)
)
