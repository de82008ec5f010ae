package pincodeerrors

import (
	"net/http"

	"go-grocer-api/internal/pkg/apperror"
)

var (
	ErrInvalidPincode = apperror.New(
		apperror.CodeInvalidInput,
		"Pincode must be a 6-digit number",
		http.StatusBadRequest,
	)

	ErrPincodeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Pincode not found",
		http.StatusNotFound,
	)

	ErrPincodeNotServiceable = apperror.New(
		apperror.CodeUnprocessable,
		"Pincode is not serviceable",
		http.StatusUnprocessableEntity,
	)
)
