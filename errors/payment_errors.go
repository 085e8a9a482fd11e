// api/errors/payment_errors.go
package errors

import "errors"

var (
	ErrPaymentRequired   = errors.New("payment required")
	ErrPaymentInvalid    = errors.New("payment rejected by facilitator")
	ErrPaymentSettlement = errors.New("payment settlement failed")
	ErrFacilitator       = errors.New("facilitator request failed")
)
