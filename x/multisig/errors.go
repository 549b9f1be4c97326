package multisig

import "github.com/iov-one/custody/errors"

// multisig takes codes 120-129
var (
	ErrDuplicateOwner        = errors.Register(120, "duplicate owner")
	ErrAlreadyApproved       = errors.Register(121, "already approved")
	ErrInsufficientApprovals = errors.Register(122, "insufficient approvals")
)
