package pms

import "errors"

var (
	// ErrNoData indicates the byte source produced nothing within the
	// retry budget.
	ErrNoData = errors.New("no data to receive")
)
