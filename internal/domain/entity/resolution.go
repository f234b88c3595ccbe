package entity

// ResolutionKind tags how an opaque user identifier was resolved to a
// Stripe customer id.
type ResolutionKind string

const (
	// ResolvedCustomer means the identifier already was a Stripe customer id.
	ResolvedCustomer ResolutionKind = "customer"
	// ResolvedByUserID means a stored customer mapping supplied the id.
	ResolvedByUserID ResolutionKind = "user"
	// Unresolved means no customer id could be determined; LookupKey may
	// still allow mapping-table queries with the raw identifier.
	Unresolved ResolutionKind = "unresolved"
)

// CustomerResolution is the outcome of the identifier resolution pipeline.
// Resolution never fails: every fallback degrades to the best available
// lookup key instead of returning an error.
type CustomerResolution struct {
	Kind       ResolutionKind
	CustomerID string
	// LookupKey is the key to use against the listing_payments owner column.
	// It equals CustomerID when one was resolved, otherwise the raw input.
	LookupKey string
}

// HasCustomer reports whether a Stripe customer id was resolved.
func (r CustomerResolution) HasCustomer() bool {
	return r.CustomerID != ""
}
