package service

// CallbackNotification is the normalized content of an asynchronous gateway
// notification, after signature verification and field mapping.
type CallbackNotification struct {
	OrderID       string
	TransactionID string
	Succeeded     bool
	Message       string
}

// CallbackDecoder verifies and normalizes an incoming gateway callback.
// Implementations recognize the wire format by its field names, recompute
// the integrity signature over the posted fields, and reject mismatches
// before any state can be touched.
type CallbackDecoder interface {
	DecodeCallback(fields map[string]string) (*CallbackNotification, error)
}
