package domain

import "errors"

// Error taxonomy shared by every service. Callers wrap these with
// fmt.Errorf("%w: ...") and test them with errors.Is.
var (
	ErrAuthentication = errors.New("authentication failed")
	ErrAuthorization  = errors.New("not authorized")
	ErrNotFound       = errors.New("not found")
	ErrValidation     = errors.New("validation failed")
	ErrConflict       = errors.New("conflict")

	ErrEmptyCart        = errors.New("cart is empty")
	ErrNothingFulfilled = errors.New("no cart line could be fulfilled")
)
