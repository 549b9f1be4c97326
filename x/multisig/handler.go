package multisig

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/x"
)

// Executor performs the action guarded by a multisig once both owners
// approved it.
type Executor interface {
	Execute(ctx custody.Context, db custody.KVStore, m *Multisig) error
}

// LogExecutor only logs the execution.
type LogExecutor struct{}

func (LogExecutor) Execute(ctx custody.Context, db custody.KVStore, m *Multisig) error {
	custody.GetLogger(ctx).Info("multisig executed", "multisig", m.Address)
	return nil
}

// RegisterRoutes will instantiate and register all handlers in this
// package. A nil executor falls back to LogExecutor.
func RegisterRoutes(r custody.Registry, auth x.Authenticator, exec Executor) {
	if exec == nil {
		exec = LogExecutor{}
	}
	b := NewBucket()
	r.Handle(&CreateMsg{}, CreateHandler{bucket: b})
	r.Handle(&ApproveMsg{}, ApproveHandler{auth: auth, bucket: b})
	r.Handle(&ExecuteMsg{}, ExecuteHandler{bucket: b, exec: exec})
}

// RegisterQuery registers the multisig bucket as "/multisigs".
func RegisterQuery(qr custody.QueryRouter) {
	NewBucket().Register("multisigs", qr)
}

// CreateHandler creates multisig accounts.
type CreateHandler struct {
	bucket orm.ModelBucket
}

var _ custody.Handler = CreateHandler{}

func (h CreateHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{}, nil
}

func (h CreateHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	m, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.bucket.Create(db, m.Address, m); err != nil {
		return nil, errors.Wrap(err, "cannot store multisig")
	}
	custody.GetLogger(ctx).Info("multisig created", "multisig", m.Address)
	return &custody.DeliverResult{Data: m.Address}, nil
}

func (h CreateHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*Multisig, error) {
	var msg CreateMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	m := &Multisig{
		Metadata: &custody.Metadata{Schema: 1},
		Owner1:   msg.Owner1,
		Owner2:   msg.Owner2,
		Address:  DeriveAddress(msg.Owner1, msg.Owner2),
	}
	switch err := h.bucket.Has(db, m.Address); {
	case err == nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "multisig %s", m.Address)
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}
	return m, nil
}

// ApproveHandler records an owner approval.
type ApproveHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
}

var _ custody.Handler = ApproveHandler{}

func (h ApproveHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{}, nil
}

func (h ApproveHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	m, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.bucket.Put(db, m.Address, m); err != nil {
		return nil, errors.Wrap(err, "cannot store multisig")
	}
	custody.GetLogger(ctx).Info("multisig approved", "multisig", m.Address,
		"confirmed1", m.Confirmed1, "confirmed2", m.Confirmed2)
	return &custody.DeliverResult{}, nil
}

// validate returns the multisig with the approval applied. It is not
// persisted.
func (h ApproveHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*Multisig, error) {
	var msg ApproveMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	var m Multisig
	if err := h.bucket.One(db, msg.MultisigID, &m); err != nil {
		return nil, errors.Wrap(err, "load multisig")
	}
	if err := approve(ctx, h.auth, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// approve sets the flag of a signing owner that has not approved yet.
// Owner1 is considered first.
func approve(ctx custody.Context, auth x.Authenticator, m *Multisig) error {
	signed1 := auth.HasAddress(ctx, m.Owner1)
	signed2 := auth.HasAddress(ctx, m.Owner2)
	switch {
	case !signed1 && !signed2:
		return errors.Wrap(errors.ErrUnauthorized, "owner signature required")
	case signed1 && !m.Confirmed1:
		m.Confirmed1 = true
	case signed2 && !m.Confirmed2:
		m.Confirmed2 = true
	default:
		return errors.Wrapf(ErrAlreadyApproved, "multisig %s", m.Address)
	}
	return nil
}

// ExecuteHandler runs the guarded action of an approved multisig.
// Approvals are left in place.
type ExecuteHandler struct {
	bucket orm.ModelBucket
	exec   Executor
}

var _ custody.Handler = ExecuteHandler{}

func (h ExecuteHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{}, nil
}

func (h ExecuteHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	m, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.exec.Execute(ctx, db, m); err != nil {
		return nil, errors.Wrap(err, "execute")
	}
	return &custody.DeliverResult{}, nil
}

func (h ExecuteHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*Multisig, error) {
	var msg ExecuteMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	var m Multisig
	if err := h.bucket.One(db, msg.MultisigID, &m); err != nil {
		return nil, errors.Wrap(err, "load multisig")
	}
	if !m.Approved() {
		return nil, errors.Wrapf(ErrInsufficientApprovals,
			"confirmed1=%t confirmed2=%t", m.Confirmed1, m.Confirmed2)
	}
	return &m, nil
}
