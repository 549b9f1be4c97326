package wallet

import "github.com/iov-one/custody/errors"

// wallet takes codes 100-119
var (
	ErrInvalidProof          = errors.Register(100, "invalid proof")
	ErrInvalidSecurityPeriod = errors.Register(101, "invalid security period")
	ErrNoEscapeInProgress    = errors.Register(102, "no escape in progress")
	ErrEscapeNotReady        = errors.Register(103, "escape not ready")
	ErrEscapeOverrideDenied  = errors.Register(104, "escape override denied")
)
