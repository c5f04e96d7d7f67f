package recycle

import "errors"

var (
	// ErrConfiguration reports a fatal misconfiguration, such as a grid
	// layout over a data source with more than one prototype.
	ErrConfiguration = errors.New("recycle: configuration error")

	// ErrInvariant reports a breach of the active set contract: a duplicate
	// admission, eviction of an absent entry or a partially filled grid row.
	ErrInvariant = errors.New("recycle: invariant violation")
)
