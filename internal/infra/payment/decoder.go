package payment

import (
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
)

// ErrSignatureMismatch is returned when a callback's integrity signature
// does not match the recomputed value. The notification must be discarded
// without touching any order state.
var ErrSignatureMismatch = errors.New("callback signature mismatch")

// ErrUnknownCallbackFormat is returned when the posted fields match neither
// provider's notification shape.
var ErrUnknownCallbackFormat = errors.New("unrecognized callback format")

// DecodeCallback recognizes the notification format by its field names,
// verifies its signature and returns the normalized result. Only the
// configured profile's format is accepted: a notification shaped for any
// other provider cannot be verified with the active credentials and is
// rejected before it reaches order state.
func (g *Gateway) DecodeCallback(fields map[string]string) (*service.CallbackNotification, error) {
	switch {
	case fields["pp_ResponseCode"] != "" || fields["pp_TxnRefNo"] != "":
		if g.profile != ProfileJazzCash {
			return nil, ErrUnknownCallbackFormat
		}

		return g.decodeJazzCashCallback(fields)
	case fields["payment_status"] != "" || fields["m_payment_id"] != "":
		if g.profile != ProfilePayFast {
			return nil, ErrUnknownCallbackFormat
		}

		return g.decodePayFastCallback(fields)
	default:
		return nil, ErrUnknownCallbackFormat
	}
}
