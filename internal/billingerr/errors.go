package billingerr

import "errors"

// Sentinel errors for the billing domain. Handlers map these onto HTTP
// status codes; everything else is treated as an internal storage failure.
var (
	ErrRateNotFound        = errors.New("no rate for sector/zone")
	ErrNoApplicableSetting = errors.New("no applicable surcharge setting")
	ErrShipmentNotFound    = errors.New("shipment not found")
	ErrAccountNotFound     = errors.New("customer account not found")
	ErrInvoiceNotFound     = errors.New("invoice not found")
	ErrAlreadyApplied      = errors.New("invoice already applied")
	ErrClubbingLocked      = errors.New("clubbing batch is locked")
	ErrInvoiceNotVoidable  = errors.New("invoice cannot be voided")
	ErrConflict            = errors.New("concurrent balance update conflict")
	ErrValidation          = errors.New("validation failed")
)
