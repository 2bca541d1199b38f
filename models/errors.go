package models

import "errors"

// Every failure surfaces to the caller as one of these kinds, never as a
// generic error. Handlers dispatch on them with errors.Is.
var (
	// Validation: rejected before any state is touched.
	ErrInvalidShareCount = errors.New("total shares must be a positive integer")
	ErrInvalidPrice      = errors.New("price per share must be positive")
	ErrInvalidCount      = errors.New("share count must be positive")

	// Authorization: rejected without side effects.
	ErrNotOwner     = errors.New("caller does not hold title to the asset")
	ErrUnauthorized = errors.New("caller is not authorized to transfer title")

	// State conflict: the attempted transaction is rejected, the ledger
	// stays usable.
	ErrAlreadyFractionalized = errors.New("asset is already fractionalized")
	ErrNoSeller              = errors.New("ledger has no consolidated holder with shares for sale")
	ErrInsufficientShares    = errors.New("requested count exceeds available shares")
	ErrIncorrectPayment      = errors.New("payment does not match count times price per share")

	// Lookup failures.
	ErrDuplicateAsset    = errors.New("asset id is already registered")
	ErrUnknownAsset      = errors.New("asset not found")
	ErrUnknownLedger     = errors.New("ledger not found")
	ErrUnknownCollection = errors.New("collection not found")

	// Consistency-fatal: a consolidation whose title transfer failed. The
	// triggering purchase is rolled back in full before this surfaces.
	ErrTitleTransferFailed = errors.New("title transfer failed, purchase rolled back")
)
