package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInsufficientStock is returned when adding more of a product than is in stock.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrStockExceeded is returned when a quantity change would exceed available stock.
	ErrStockExceeded = errors.New("cannot exceed available stock")
	// ErrEmptyCart is returned by checkout when the cart has no lines.
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthenticated = errors.New("not logged in")
	ErrForbidden       = errors.New("forbidden")
	// ErrConflict indicates another writer changed the data between read and write.
	ErrConflict = errors.New("concurrent modification")
)
