package domain

import "errors"

var (
	// ErrUnknownProduct indicates the product id is not in the catalog.
	ErrUnknownProduct = errors.New("unknown product")
	// ErrNotInCart indicates the product has no line in the user's cart.
	ErrNotInCart = errors.New("product not in cart")
	// ErrInvalidQuantity indicates a non-positive quantity on add.
	ErrInvalidQuantity = errors.New("quantity must be positive")
	// ErrEmptyCart indicates checkout was requested for an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrEmptyCatalog indicates there is nothing to browse.
	ErrEmptyCatalog = errors.New("catalog is empty")
	// ErrInvalidPhone indicates the phone number failed validation.
	ErrInvalidPhone = errors.New("invalid phone number")
	// ErrInvalidAddress indicates the shipping address was too short.
	ErrInvalidAddress = errors.New("invalid shipping address")
	// ErrMalformedConfirmation indicates a confirm/cancel outside the confirmation step.
	ErrMalformedConfirmation = errors.New("malformed order confirmation")
	// ErrImageUnavailable indicates a product image could not be loaded.
	ErrImageUnavailable = errors.New("product image unavailable")
	// ErrMissingCredential indicates the bot token is not configured.
	ErrMissingCredential = errors.New("bot token not configured")
)
