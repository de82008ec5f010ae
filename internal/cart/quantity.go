package cart

// Clamp reasons surfaced to the client as non-fatal warnings.
const (
	WarnBelowMinimum = "quantity cannot go below 1"
	WarnExceedsStock = "quantity exceeds available stock"
)

type ClampResult struct {
	Quantity int32
	Clamped  bool
	Warning  string
}

// ClampQuantity forces a requested quantity into [1, countInStock]. A
// violation is clamped to the nearest bound, never rejected; the warning
// tells the caller what happened.
func ClampQuantity(requested, countInStock int32) ClampResult {
	if countInStock < 1 {
		countInStock = 1
	}
	if requested < 1 {
		return ClampResult{Quantity: 1, Clamped: true, Warning: WarnBelowMinimum}
	}
	if requested > countInStock {
		return ClampResult{Quantity: countInStock, Clamped: true, Warning: WarnExceedsStock}
	}
	return ClampResult{Quantity: requested}
}

// ApplyDelta steps a quantity by +1/-1 under the same bounds. A step that
// would leave the range keeps the current value: increment stops at stock,
// decrement floors at 1 (removal is an explicit delete, never a decrement).
func ApplyDelta(current, delta, countInStock int32) ClampResult {
	return ClampQuantity(current+delta, countInStock)
}
