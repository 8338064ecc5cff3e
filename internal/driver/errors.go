package driver

import "errors"

var (
	// ErrNilTable is returned by New when tbl is nil.
	ErrNilTable = errors.New("driver: table is nil")
)
