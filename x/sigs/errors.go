package sigs

import "github.com/iov-one/custody/errors"

// ErrInvalidSequence is returned when a signature carries a sequence
// different from the one stored for its key.
var ErrInvalidSequence = errors.Register(130, "invalid sequence number")
