package cht

import "errors"

var (
	// ErrInvalidConfig is returned by [New] when a [Config] field is out of range.
	ErrInvalidConfig = errors.New("cht: invalid config")

	// ErrClosed names the closed-table condition. No method of [Table]
	// returns it; see [Table.Close] for how a closed Table behaves.
	ErrClosed = errors.New("cht: table closed")
)
