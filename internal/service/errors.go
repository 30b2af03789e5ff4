package service

import (
	"errors"
	"fmt"

	"github.com/guustavovelos0/artisan/internal/dto"
)

// Error kinds surfaced by the services. Handlers map these to HTTP statuses;
// none of them leaves any partial mutation behind.
var (
	// ErrInvalidQuantity — requested build quantity is zero or negative.
	ErrInvalidQuantity = errors.New("quantity must be a positive number")
	// ErrNoMaterialsDefined — the product has an empty bill of materials.
	ErrNoMaterialsDefined = errors.New("product has no materials defined")
	// ErrOperationFailed — the commit transaction itself failed; all writes
	// were rolled back before this is returned.
	ErrOperationFailed = errors.New("operation could not be committed")

	ErrProductNotFound  = errors.New("product not found")
	ErrMaterialNotFound = errors.New("material not found")
	ErrClientNotFound   = errors.New("client not found")
	ErrQuoteNotFound    = errors.New("quote not found")
	ErrCategoryNotFound = errors.New("category not found")

	// ErrDuplicateBOMEntry — the material is already on the product's sheet;
	// callers must update the existing entry's quantity instead.
	ErrDuplicateBOMEntry = errors.New("material is already on the bill of materials")

	ErrEmailTaken         = errors.New("email is already registered")
	ErrDiscountTooLarge   = errors.New("discount cannot exceed the subtotal")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrQuoteNotEditable   = errors.New("only draft quotes can be changed")
	ErrClientHasNoEmail   = errors.New("client has no email address on file")
)

// InsufficientMaterialsError rejects a manufacturing run, carrying the
// complete shortfall list so the caller sees every lacking material at once.
type InsufficientMaterialsError struct {
	Shortfalls []dto.MaterialShortfall
}

func (e *InsufficientMaterialsError) Error() string {
	return fmt.Sprintf("insufficient stock for %d material(s)", len(e.Shortfalls))
}
