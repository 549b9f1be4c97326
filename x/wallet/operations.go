package wallet

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/x"
)

// operations implement the wallet transitions. Each one loads the message
// and the wallet, checks the signers and the state, and returns the
// updated wallet without writing it.
type operations struct {
	auth     x.Authenticator
	verifier ProofVerifier
	bucket   orm.ModelBucket
}

func (o operations) load(db custody.ReadOnlyKVStore, id custody.Address) (*Wallet, error) {
	var w Wallet
	if err := o.bucket.One(db, id, &w); err != nil {
		return nil, errors.Wrap(err, "load wallet")
	}
	return &w, nil
}

func (o operations) requireBoth(ctx custody.Context, w *Wallet) error {
	return x.RequireAllOf(ctx, o.auth,
		x.Role{Name: "owner", Address: w.Owner},
		x.Role{Name: "guardian", Address: w.Guardian},
	)
}

func (o operations) requireOwner(ctx custody.Context, w *Wallet) error {
	return x.RequireSigner(ctx, o.auth, "owner", w.Owner)
}

func (o operations) requireGuardian(ctx custody.Context, w *Wallet) error {
	return x.RequireSigner(ctx, o.auth, "guardian", w.Guardian)
}

func (o operations) execute(ctx custody.Context, db custody.ReadOnlyKVStore, tx custody.Tx) (*Wallet, error) {
	var msg ExecuteMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	w, err := o.load(db, msg.WalletID)
	if err != nil {
		return nil, err
	}
	if err := o.requireBoth(ctx, w); err != nil {
		return nil, err
	}
	w.PendingTx = &PendingTx{
		Data:             msg.Data,
		OwnerApproved:    true,
		GuardianApproved: true,
	}
	return w, nil
}

func (o operations) changeOwner(ctx custody.Context, db custody.ReadOnlyKVStore, tx custody.Tx) (*Wallet, error) {
	var msg ChangeOwnerMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	w, err := o.load(db, msg.WalletID)
	if err != nil {
		return nil, err
	}
	if err := o.requireBoth(ctx, w); err != nil {
		return nil, err
	}
	if !o.verifier.Verify(msg.NewOwner, ChangeOwnerMessage(w.Address, msg.NewOwner), msg.NewOwnerProof) {
		return nil, errors.Wrapf(ErrInvalidProof, "new owner %s", msg.NewOwner)
	}
	w.Owner = msg.NewOwner
	return w, nil
}

func (o operations) changeGuardian(ctx custody.Context, db custody.ReadOnlyKVStore, tx custody.Tx) (*Wallet, error) {
	var msg ChangeGuardianMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	w, err := o.load(db, msg.WalletID)
	if err != nil {
		return nil, err
	}
	if err := o.requireBoth(ctx, w); err != nil {
		return nil, err
	}
	w.Guardian = msg.NewGuardian
	return w, nil
}

func (o operations) changeGuardianBackup(ctx custody.Context, db custody.ReadOnlyKVStore, tx custody.Tx) (*Wallet, error) {
	var msg ChangeGuardianBackupMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	w, err := o.load(db, msg.WalletID)
	if err != nil {
		return nil, err
	}
	if err := o.requireBoth(ctx, w); err != nil {
		return nil, err
	}
	w.GuardianBackup = msg.NewGuardianBackup
	return w, nil
}

func (o operations) triggerEscapeGuardian(ctx custody.Context, db custody.ReadOnlyKVStore, tx custody.Tx) (*Wallet, error) {
	var msg TriggerEscapeGuardianMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	w, err := o.load(db, msg.WalletID)
	if err != nil {
		return nil, err
	}
	if err := o.requireOwner(ctx, w); err != nil {
		return nil, err
	}
	now, err := custody.Now(ctx)
	if err != nil {
		return nil, err
	}
	w.TriggerEscapeGuardian(now)
	return w, nil
}

func (o operations) triggerEscapeOwner(ctx custody.Context, db custody.ReadOnlyKVStore, tx custody.Tx) (*Wallet, error) {
	var msg TriggerEscapeOwnerMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	w, err := o.load(db, msg.WalletID)
	if err != nil {
		return nil, err
	}
	if err := o.requireGuardian(ctx, w); err != nil {
		return nil, err
	}
	now, err := custody.Now(ctx)
	if err != nil {
		return nil, err
	}
	if err := w.TriggerEscapeOwner(now); err != nil {
		return nil, err
	}
	return w, nil
}

func (o operations) escapeGuardian(ctx custody.Context, db custody.ReadOnlyKVStore, tx custody.Tx) (*Wallet, error) {
	var msg EscapeGuardianMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	w, err := o.load(db, msg.WalletID)
	if err != nil {
		return nil, err
	}
	if err := o.requireOwner(ctx, w); err != nil {
		return nil, err
	}
	now, err := custody.Now(ctx)
	if err != nil {
		return nil, err
	}
	if err := w.EscapeGuardian(now, msg.NewGuardian); err != nil {
		return nil, err
	}
	return w, nil
}

func (o operations) escapeOwner(ctx custody.Context, db custody.ReadOnlyKVStore, tx custody.Tx) (*Wallet, error) {
	var msg EscapeOwnerMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	w, err := o.load(db, msg.WalletID)
	if err != nil {
		return nil, err
	}
	if err := o.requireGuardian(ctx, w); err != nil {
		return nil, err
	}
	now, err := custody.Now(ctx)
	if err != nil {
		return nil, err
	}
	if err := w.EscapeOwner(now, msg.NewOwner); err != nil {
		return nil, err
	}
	return w, nil
}

func (o operations) cancelEscape(ctx custody.Context, db custody.ReadOnlyKVStore, tx custody.Tx) (*Wallet, error) {
	var msg CancelEscapeMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	w, err := o.load(db, msg.WalletID)
	if err != nil {
		return nil, err
	}
	if err := o.requireBoth(ctx, w); err != nil {
		return nil, err
	}
	if err := w.CancelEscape(); err != nil {
		return nil, err
	}
	return w, nil
}
