package domain

import "errors"

// Access-control taxonomy. The decision engine and the controllers only ever
// surface these sentinels; the HTTP error handler owns the status mapping.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbiddenRole      = errors.New("role not allowed")
	ErrAdminNotCustomer   = errors.New("Admin users should use admin endpoints")
	ErrForbiddenOwnership = errors.New("not the resource owner")
	ErrSelfBooking        = errors.New("cannot book your own place")
)

// Credential store errors.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Resource store errors.
var (
	ErrPlaceNotFound    = errors.New("place not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrRefundNotFound   = errors.New("refund request not found")
	ErrInquiryNotFound  = errors.New("inquiry not found")
	ErrFeedbackNotFound = errors.New("feedback not found")
)
