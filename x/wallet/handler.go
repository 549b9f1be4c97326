package wallet

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/x"
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r custody.Registry, auth x.Authenticator, verifier ProofVerifier, upgrader Upgrader) {
	b := NewBucket()
	ops := operations{auth: auth, verifier: verifier, bucket: b}

	r.Handle(&CreateMsg{}, CreateHandler{bucket: b})
	r.Handle(&ExecuteMsg{}, transitionHandler{bucket: b, apply: ops.execute})
	r.Handle(&ChangeOwnerMsg{}, transitionHandler{bucket: b, apply: ops.changeOwner})
	r.Handle(&ChangeGuardianMsg{}, transitionHandler{bucket: b, apply: ops.changeGuardian})
	r.Handle(&ChangeGuardianBackupMsg{}, transitionHandler{bucket: b, apply: ops.changeGuardianBackup})
	r.Handle(&TriggerEscapeGuardianMsg{}, transitionHandler{bucket: b, apply: ops.triggerEscapeGuardian})
	r.Handle(&TriggerEscapeOwnerMsg{}, transitionHandler{bucket: b, apply: ops.triggerEscapeOwner})
	r.Handle(&EscapeGuardianMsg{}, transitionHandler{bucket: b, apply: ops.escapeGuardian})
	r.Handle(&EscapeOwnerMsg{}, transitionHandler{bucket: b, apply: ops.escapeOwner})
	r.Handle(&CancelEscapeMsg{}, transitionHandler{bucket: b, apply: ops.cancelEscape})
	r.Handle(&UpgradeMsg{}, UpgradeHandler{ops: ops, upgrader: upgrader})
	r.Handle(&UpdateConfigurationMsg{}, gconf.NewUpdateConfigurationHandler(packageName, &Configuration{}, auth))
}

// CreateHandler creates wallets. No signature is required.
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
	w, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.bucket.Create(db, w.Address, w); err != nil {
		return nil, errors.Wrap(err, "cannot store wallet")
	}
	custody.GetLogger(ctx).Info("wallet created",
		"wallet", w.Address, "security_period", w.SecurityPeriod)
	return &custody.DeliverResult{Data: w.Address}, nil
}

func (h CreateHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*Wallet, error) {
	var msg CreateMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	w, err := newWallet(db, msg.Owner, msg.Guardian, msg.GuardianBackup, msg.SecurityPeriod)
	if err != nil {
		return nil, err
	}
	switch err := h.bucket.Has(db, w.Address); {
	case err == nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "wallet %s", w.Address)
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}
	return w, nil
}

// newWallet returns a wallet with no escape in progress. A zero security
// period is replaced with the configured default.
func newWallet(db gconf.ReadStore, owner, guardian, backup custody.Address, period int64) (*Wallet, error) {
	if period == 0 {
		p, err := defaultSecurityPeriod(db)
		if err != nil {
			return nil, err
		}
		period = p
	}
	if err := validateSecurityPeriod(period); err != nil {
		return nil, err
	}
	return &Wallet{
		Metadata:       &custody.Metadata{Schema: 1},
		Owner:          owner,
		Guardian:       guardian,
		GuardianBackup: backup,
		SecurityPeriod: period,
		Address:        DeriveAddress(owner, guardian),
	}, nil
}

// transitionHandler runs a state transition of a single wallet. The
// transition is persisted only on Deliver.
type transitionHandler struct {
	bucket orm.ModelBucket
	apply  func(custody.Context, custody.ReadOnlyKVStore, custody.Tx) (*Wallet, error)
}

var _ custody.Handler = transitionHandler{}

func (h transitionHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, err := h.apply(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{}, nil
}

func (h transitionHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	w, err := h.apply(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.bucket.Put(db, w.Address, w); err != nil {
		return nil, errors.Wrap(err, "cannot store wallet")
	}
	custody.GetLogger(ctx).Info("wallet updated",
		"path", custody.GetPath(tx), "wallet", w.Address, "escape", w.EscapeState)
	return &custody.DeliverResult{}, nil
}

// UpgradeHandler authorizes a code replacement and delegates it to the
// Upgrader.
type UpgradeHandler struct {
	ops      operations
	upgrader Upgrader
}

var _ custody.Handler = UpgradeHandler{}

func (h UpgradeHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{}, nil
}

func (h UpgradeHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, w, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.upgrader.Upgrade(ctx, db, w.Address, msg.Artifact); err != nil {
		return nil, errors.Wrap(err, "upgrade")
	}
	custody.GetLogger(ctx).Info("wallet upgraded", "wallet", w.Address)
	return &custody.DeliverResult{}, nil
}

func (h UpgradeHandler) validate(ctx custody.Context, db custody.ReadOnlyKVStore, tx custody.Tx) (*UpgradeMsg, *Wallet, error) {
	var msg UpgradeMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	w, err := h.ops.load(db, msg.WalletID)
	if err != nil {
		return nil, nil, err
	}
	if err := h.ops.requireBoth(ctx, w); err != nil {
		return nil, nil, err
	}
	return &msg, w, nil
}
