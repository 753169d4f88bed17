package common

import "errors"

var (
	// ErrNoProperties is returned when a search term is constructed with an
	// empty property list.
	ErrNoProperties = errors.New("search term requires at least one property")

	// ErrHighlightMismatch is returned when a highlight parameter list does
	// not line up with the number of full-text terms in the request.
	ErrHighlightMismatch = errors.New("highlight parameter list does not match full-text term count")

	// ErrBadMode is returned for a metadata mode descriptor that cannot be
	// parsed.
	ErrBadMode = errors.New("invalid metadata mode descriptor")
)
