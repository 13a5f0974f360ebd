package service

// TrackingNumberGenerator produces shipment tracking labels. The generated
// value is a display label, not a primary key: it is derived from the clock
// and a random suffix, so global uniqueness is likely but not guaranteed.
type TrackingNumberGenerator interface {
	// Generate returns a fresh tracking number of the form
	// "MS" + 6 time-derived digits + 4 random uppercase alphanumerics.
	Generate() string
}
