// Package domain defines domain-level errors for the marketdata feature.
package domain

import "errors"

var (
	// ErrNoData indicates the provider knows nothing about the symbol.
	// Upper layers turn it into an empty record or a no-data response rather
	// than a failure.
	ErrNoData = errors.New("no data found")

	// ErrUpstream indicates the provider answered with an error status or an
	// error payload.
	ErrUpstream = errors.New("upstream provider error")
)
