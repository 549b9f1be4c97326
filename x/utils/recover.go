package utils

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Recovery converts a panic raised by any handler below it into an
// ErrPanic result. The panic is logged together with the message path so
// a broken wallet or multisig handler is visible in the daemon log while
// the daemon keeps serving.
type Recovery struct{}

var _ custody.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (r Recovery) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Checker) (res *custody.CheckResult, err error) {
	defer reportPanic(ctx, tx, "check", &err)
	defer errors.Recover(&err)
	return next.Check(ctx, db, tx)
}

func (r Recovery) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Deliverer) (res *custody.DeliverResult, err error) {
	defer reportPanic(ctx, tx, "deliver", &err)
	defer errors.Recover(&err)
	return next.Deliver(ctx, db, tx)
}

// reportPanic must be deferred before errors.Recover so that it sees the
// already converted error.
func reportPanic(ctx custody.Context, tx custody.Tx, phase string, err *error) {
	if *err == nil || !errors.ErrPanic.Is(*err) {
		return
	}
	custody.GetLogger(ctx).Error("handler panic",
		"phase", phase,
		"path", custody.GetPath(tx),
		"err", *err)
}
