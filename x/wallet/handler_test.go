package wallet

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
	"github.com/iov-one/custody/store"
)

type testRouter map[string]custody.Handler

func (r testRouter) Handle(m custody.Msg, h custody.Handler) {
	r[m.Path()] = h
}

type recordingUpgrader struct {
	artifacts [][]byte
	err       error
}

func (u *recordingUpgrader) Upgrade(ctx custody.Context, db custody.KVStore, wallet custody.Address, artifact []byte) error {
	if u.err != nil {
		return u.err
	}
	u.artifacts = append(u.artifacts, artifact)
	return nil
}

func newRouter(up Upgrader) testRouter {
	r := make(testRouter)
	RegisterRoutes(r, &custodytest.CtxAuth{Key: "auth"}, crypto.AttestationVerifier{}, up)
	return r
}

func newCtx(now int64, signers ...custody.Condition) custody.Context {
	auth := &custodytest.CtxAuth{Key: "auth"}
	ctx := auth.SetConditions(context.Background(), signers...)
	if now != 0 {
		ctx = custody.WithBlockTime(ctx, time.Unix(now, 0))
	}
	return ctx
}

func deliverAt(t testing.TB, r testRouter, db custody.KVStore, now int64, msg custody.Msg, signers ...custody.Condition) (*custody.DeliverResult, error) {
	t.Helper()
	h, ok := r[msg.Path()]
	if !ok {
		t.Fatalf("no handler for %q", msg.Path())
	}
	return h.Deliver(newCtx(now, signers...), db, &custodytest.Tx{Msg: msg})
}

func loadWallet(t testing.TB, db custody.ReadOnlyKVStore, addr custody.Address) *Wallet {
	t.Helper()
	var w Wallet
	if err := NewBucket().One(db, addr, &w); err != nil {
		t.Fatalf("cannot load wallet: %s", err)
	}
	return &w
}

func meta() *custody.Metadata {
	return &custody.Metadata{Schema: 1}
}

// walletFixture creates a wallet owned by two fresh keys.
type walletFixture struct {
	owner    custody.Condition
	guardian custody.Condition
	addr     custody.Address
	db       custody.KVStore
	router   testRouter
	upgrader *recordingUpgrader
}

func newWalletFixture(t testing.TB, securityPeriod int64) *walletFixture {
	t.Helper()
	f := &walletFixture{
		owner:    custodytest.NewCondition(),
		guardian: custodytest.NewCondition(),
		db:       store.MemStore(),
		upgrader: &recordingUpgrader{},
	}
	f.router = newRouter(f.upgrader)
	res, err := deliverAt(t, f.router, f.db, 0, &CreateMsg{
		Metadata:       meta(),
		Owner:          f.owner.Address(),
		Guardian:       f.guardian.Address(),
		SecurityPeriod: securityPeriod,
	})
	assert.Nil(t, err)
	f.addr = res.Data
	return f
}

func (f *walletFixture) deliver(t testing.TB, now int64, msg custody.Msg, signers ...custody.Condition) error {
	t.Helper()
	_, err := deliverAt(t, f.router, f.db, now, msg, signers...)
	return err
}

func (f *walletFixture) wallet(t testing.TB) *Wallet {
	t.Helper()
	return loadWallet(t, f.db, f.addr)
}

func TestEscapeScenario(t *testing.T) {
	f := newWalletFixture(t, 5)
	const t0 = 1000
	newGuardian := custodytest.NewCondition()

	err := f.deliver(t, t0, &TriggerEscapeGuardianMsg{Metadata: meta(), WalletID: f.addr}, f.owner)
	assert.Nil(t, err)
	w := f.wallet(t)
	assert.Equal(t, EscapeGuardianInProgress, w.EscapeState)
	assert.Equal(t, custody.UnixTime(t0), w.EscapeInitiatedAt)

	escape := &EscapeGuardianMsg{Metadata: meta(), WalletID: f.addr, NewGuardian: newGuardian.Address()}
	err = f.deliver(t, t0+3, escape, f.owner)
	assert.IsErr(t, ErrEscapeNotReady, err)
	assert.Equal(t, f.guardian.Address(), f.wallet(t).Guardian)

	err = f.deliver(t, t0+6, escape, f.owner)
	assert.Nil(t, err)
	w = f.wallet(t)
	assert.Equal(t, EscapeNone, w.EscapeState)
	assert.Equal(t, custody.UnixTime(0), w.EscapeInitiatedAt)
	assert.Equal(t, newGuardian.Address(), w.Guardian)
	assert.Equal(t, f.owner.Address(), w.Owner)
}

func TestEscapeBoundary(t *testing.T) {
	f := newWalletFixture(t, 5)
	newOwner := custodytest.NewCondition()

	assert.Nil(t, f.deliver(t, 100, &TriggerEscapeOwnerMsg{Metadata: meta(), WalletID: f.addr}, f.guardian))

	escape := &EscapeOwnerMsg{Metadata: meta(), WalletID: f.addr, NewOwner: newOwner.Address()}
	assert.IsErr(t, ErrEscapeNotReady, f.deliver(t, 104, escape, f.guardian))
	assert.Nil(t, f.deliver(t, 105, escape, f.guardian))
	assert.Equal(t, newOwner.Address(), f.wallet(t).Owner)
}

func TestOwnerPreemptsGuardian(t *testing.T) {
	f := newWalletFixture(t, 5)
	triggerOwner := &TriggerEscapeOwnerMsg{Metadata: meta(), WalletID: f.addr}
	triggerGuardian := &TriggerEscapeGuardianMsg{Metadata: meta(), WalletID: f.addr}

	assert.Nil(t, f.deliver(t, 100, triggerOwner, f.guardian))
	// Re-triggering restarts the clock.
	assert.Nil(t, f.deliver(t, 103, triggerOwner, f.guardian))
	assert.Equal(t, custody.UnixTime(103), f.wallet(t).EscapeInitiatedAt)

	assert.Nil(t, f.deliver(t, 104, triggerGuardian, f.owner))
	w := f.wallet(t)
	assert.Equal(t, EscapeGuardianInProgress, w.EscapeState)
	assert.Equal(t, custody.UnixTime(104), w.EscapeInitiatedAt)

	assert.IsErr(t, ErrEscapeOverrideDenied, f.deliver(t, 105, triggerOwner, f.guardian))
	assert.Equal(t, EscapeGuardianInProgress, f.wallet(t).EscapeState)

	// The owner escape can no longer be completed.
	escape := &EscapeOwnerMsg{Metadata: meta(), WalletID: f.addr, NewOwner: custodytest.RandomAddr(t)}
	assert.IsErr(t, ErrNoEscapeInProgress, f.deliver(t, 500, escape, f.guardian))
}

func TestSignerRequirements(t *testing.T) {
	stranger := custodytest.NewCondition()
	newAddr := custodytest.RandomAddr(t)

	type signers int
	const (
		none signers = iota
		ownerOnly
		guardianOnly
		both
		strangerOnly
	)

	msgs := map[string]struct {
		msg  func(id custody.Address) custody.Msg
		need signers
	}{
		"execute": {
			msg:  func(id custody.Address) custody.Msg { return &ExecuteMsg{Metadata: meta(), WalletID: id, Data: []byte("x")} },
			need: both,
		},
		"change guardian": {
			msg:  func(id custody.Address) custody.Msg { return &ChangeGuardianMsg{Metadata: meta(), WalletID: id, NewGuardian: newAddr} },
			need: both,
		},
		"change guardian backup": {
			msg:  func(id custody.Address) custody.Msg { return &ChangeGuardianBackupMsg{Metadata: meta(), WalletID: id, NewGuardianBackup: newAddr} },
			need: both,
		},
		"upgrade": {
			msg:  func(id custody.Address) custody.Msg { return &UpgradeMsg{Metadata: meta(), WalletID: id, Artifact: []byte("code")} },
			need: both,
		},
		"trigger escape guardian": {
			msg:  func(id custody.Address) custody.Msg { return &TriggerEscapeGuardianMsg{Metadata: meta(), WalletID: id} },
			need: ownerOnly,
		},
		"trigger escape owner": {
			msg:  func(id custody.Address) custody.Msg { return &TriggerEscapeOwnerMsg{Metadata: meta(), WalletID: id} },
			need: guardianOnly,
		},
	}

	for name, m := range msgs {
		for _, s := range []signers{none, ownerOnly, guardianOnly, both, strangerOnly} {
			f := newWalletFixture(t, 5)
			var conds []custody.Condition
			switch s {
			case ownerOnly:
				conds = []custody.Condition{f.owner}
			case guardianOnly:
				conds = []custody.Condition{f.guardian}
			case both:
				conds = []custody.Condition{f.owner, f.guardian}
			case strangerOnly:
				conds = []custody.Condition{stranger}
			}

			before := f.wallet(t)
			err := f.deliver(t, 100, m.msg(f.addr), conds...)

			allowed := s == m.need || (s == both && m.need != both)
			if allowed {
				if err != nil {
					t.Fatalf("%s with signers %d: %+v", name, s, err)
				}
				continue
			}
			if !errors.ErrUnauthorized.Is(err) {
				t.Fatalf("%s with signers %d: want unauthorized, got %+v", name, s, err)
			}
			assert.Equal(t, before, f.wallet(t))
			assert.Equal(t, 0, len(f.upgrader.artifacts))
		}
	}
}

func TestExecute(t *testing.T) {
	f := newWalletFixture(t, 5)
	msg := &ExecuteMsg{Metadata: meta(), WalletID: f.addr, Data: []byte("first")}

	assert.IsErr(t, errors.ErrUnauthorized, f.deliver(t, 100, msg, f.owner))
	assert.IsErr(t, errors.ErrUnauthorized, f.deliver(t, 100, msg, f.guardian))
	assert.Nil(t, f.wallet(t).PendingTx)

	assert.Nil(t, f.deliver(t, 100, msg, f.owner, f.guardian))
	want := &PendingTx{Data: []byte("first"), OwnerApproved: true, GuardianApproved: true}
	assert.Equal(t, want, f.wallet(t).PendingTx)

	// A single signer never touches the recorded transaction.
	next := &ExecuteMsg{Metadata: meta(), WalletID: f.addr, Data: []byte("second")}
	assert.IsErr(t, errors.ErrUnauthorized, f.deliver(t, 100, next, f.guardian))
	assert.Equal(t, want, f.wallet(t).PendingTx)

	// The latest execution overwrites the previous one.
	assert.Nil(t, f.deliver(t, 100, next, f.owner, f.guardian))
	assert.Equal(t, []byte("second"), f.wallet(t).PendingTx.Data)
}

func TestChangeOwner(t *testing.T) {
	f := newWalletFixture(t, 5)
	newOwnerKey := custodytest.NewKey()
	newOwner := newOwnerKey.PublicKey().Address()

	proof, err := crypto.Attest(newOwnerKey, ChangeOwnerMessage(f.addr, newOwner))
	assert.Nil(t, err)
	otherWalletProof, err := crypto.Attest(newOwnerKey, ChangeOwnerMessage(custodytest.RandomAddr(t), newOwner))
	assert.Nil(t, err)
	strangerProof, err := crypto.Attest(custodytest.NewKey(), ChangeOwnerMessage(f.addr, newOwner))
	assert.Nil(t, err)

	cases := map[string]struct {
		proof   []byte
		signers []custody.Condition
		wantErr *errors.Error
	}{
		"valid": {
			proof:   proof,
			signers: []custody.Condition{f.owner, f.guardian},
		},
		"owner only": {
			proof:   proof,
			signers: []custody.Condition{f.owner},
			wantErr: errors.ErrUnauthorized,
		},
		"guardian only": {
			proof:   proof,
			signers: []custody.Condition{f.guardian},
			wantErr: errors.ErrUnauthorized,
		},
		"proof for another wallet": {
			proof:   otherWalletProof,
			signers: []custody.Condition{f.owner, f.guardian},
			wantErr: ErrInvalidProof,
		},
		"proof signed by another key": {
			proof:   strangerProof,
			signers: []custody.Condition{f.owner, f.guardian},
			wantErr: ErrInvalidProof,
		},
		"garbage proof": {
			proof:   []byte("not a proof"),
			signers: []custody.Condition{f.owner, f.guardian},
			wantErr: ErrInvalidProof,
		},
		"missing proof": {
			signers: []custody.Condition{f.owner, f.guardian},
			wantErr: errors.ErrEmpty,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := f.db.(custody.CacheableKVStore).CacheWrap()
			defer db.Discard()

			msg := &ChangeOwnerMsg{Metadata: meta(), WalletID: f.addr, NewOwner: newOwner, NewOwnerProof: tc.proof}
			_, err := deliverAt(t, f.router, db, 100, msg, tc.signers...)
			w := loadWallet(t, db, f.addr)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				assert.Equal(t, f.owner.Address(), w.Owner)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, newOwner, w.Owner)
			// The address is fixed at creation.
			assert.Equal(t, f.addr, w.Address)
		})
	}
}

func TestChangeGuardianAndBackup(t *testing.T) {
	f := newWalletFixture(t, 5)
	newGuardian := custodytest.NewCondition()
	backup := custodytest.RandomAddr(t)

	assert.Nil(t, f.deliver(t, 100, &ChangeGuardianBackupMsg{Metadata: meta(), WalletID: f.addr, NewGuardianBackup: backup}, f.owner, f.guardian))
	assert.Equal(t, backup, f.wallet(t).GuardianBackup)

	assert.Nil(t, f.deliver(t, 100, &ChangeGuardianMsg{Metadata: meta(), WalletID: f.addr, NewGuardian: newGuardian.Address()}, f.owner, f.guardian))
	assert.Equal(t, newGuardian.Address(), f.wallet(t).Guardian)

	// The old guardian lost its rights and the backup is never consulted.
	trigger := &TriggerEscapeOwnerMsg{Metadata: meta(), WalletID: f.addr}
	assert.IsErr(t, errors.ErrUnauthorized, f.deliver(t, 100, trigger, f.guardian))
	assert.Nil(t, f.deliver(t, 100, trigger, newGuardian))
}

func TestCancelEscapeHandler(t *testing.T) {
	f := newWalletFixture(t, 5)
	cancel := &CancelEscapeMsg{Metadata: meta(), WalletID: f.addr}

	assert.IsErr(t, ErrNoEscapeInProgress, f.deliver(t, 100, cancel, f.owner, f.guardian))

	assert.Nil(t, f.deliver(t, 100, &TriggerEscapeOwnerMsg{Metadata: meta(), WalletID: f.addr}, f.guardian))
	assert.IsErr(t, errors.ErrUnauthorized, f.deliver(t, 101, cancel, f.owner))
	assert.IsErr(t, errors.ErrUnauthorized, f.deliver(t, 101, cancel, f.guardian))
	assert.Equal(t, EscapeOwnerInProgress, f.wallet(t).EscapeState)

	assert.Nil(t, f.deliver(t, 101, cancel, f.owner, f.guardian))
	w := f.wallet(t)
	assert.Equal(t, EscapeNone, w.EscapeState)
	assert.Equal(t, custody.UnixTime(0), w.EscapeInitiatedAt)
}

func TestEscapeRequiresBlockTime(t *testing.T) {
	f := newWalletFixture(t, 5)
	err := f.deliver(t, 0, &TriggerEscapeGuardianMsg{Metadata: meta(), WalletID: f.addr}, f.owner)
	assert.IsErr(t, errors.ErrState, err)
	assert.Equal(t, EscapeNone, f.wallet(t).EscapeState)
}

func TestUpgrade(t *testing.T) {
	f := newWalletFixture(t, 5)
	msg := &UpgradeMsg{Metadata: meta(), WalletID: f.addr, Artifact: []byte("code v2")}

	// Check never reaches the upgrader.
	_, err := f.router[pathUpgradeMsg].Check(newCtx(100, f.owner, f.guardian), f.db, &custodytest.Tx{Msg: msg})
	assert.Nil(t, err)
	assert.Equal(t, 0, len(f.upgrader.artifacts))

	assert.Nil(t, f.deliver(t, 100, msg, f.owner, f.guardian))
	assert.Equal(t, [][]byte{[]byte("code v2")}, f.upgrader.artifacts)

	f.upgrader.err = errors.Wrap(errors.ErrDatabase, "disk full")
	assert.IsErr(t, errors.ErrDatabase, f.deliver(t, 100, msg, f.owner, f.guardian))

	empty := &UpgradeMsg{Metadata: meta(), WalletID: f.addr}
	assert.IsErr(t, errors.ErrEmpty, f.deliver(t, 100, empty, f.owner, f.guardian))
}

func TestCreate(t *testing.T) {
	owner := custodytest.RandomAddr(t)
	guardian := custodytest.RandomAddr(t)
	confOwner := custodytest.NewCondition()

	cases := map[string]struct {
		conf       *Configuration
		msg        *CreateMsg
		wantErr    *errors.Error
		wantPeriod int64
	}{
		"explicit period": {
			msg:        &CreateMsg{Metadata: meta(), Owner: owner, Guardian: guardian, SecurityPeriod: 60},
			wantPeriod: 60,
		},
		"default period": {
			msg:        &CreateMsg{Metadata: meta(), Owner: owner, Guardian: guardian},
			wantPeriod: DefaultSecurityPeriod,
		},
		"configured default period": {
			conf:       &Configuration{Metadata: meta(), Owner: confOwner.Address(), DefaultSecurityPeriod: 3600},
			msg:        &CreateMsg{Metadata: meta(), Owner: owner, Guardian: guardian},
			wantPeriod: 3600,
		},
		"negative period": {
			msg:     &CreateMsg{Metadata: meta(), Owner: owner, Guardian: guardian, SecurityPeriod: -1},
			wantErr: ErrInvalidSecurityPeriod,
		},
		"owner may also be the guardian": {
			msg:        &CreateMsg{Metadata: meta(), Owner: owner, Guardian: owner, SecurityPeriod: 60},
			wantPeriod: 60,
		},
		"with backup": {
			msg:        &CreateMsg{Metadata: meta(), Owner: owner, Guardian: guardian, GuardianBackup: custodytest.RandomAddr(t), SecurityPeriod: 60},
			wantPeriod: 60,
		},
		"missing guardian": {
			msg:     &CreateMsg{Metadata: meta(), Owner: owner},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if tc.conf != nil {
				assert.Nil(t, gconf.Save(db, packageName, tc.conf))
			}
			r := newRouter(&recordingUpgrader{})
			res, err := deliverAt(t, r, db, 0, tc.msg)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, DeriveAddress(tc.msg.Owner, tc.msg.Guardian), custody.Address(res.Data))

			w := loadWallet(t, db, res.Data)
			assert.Equal(t, tc.wantPeriod, w.SecurityPeriod)
			assert.Equal(t, EscapeNone, w.EscapeState)
			assert.Nil(t, w.PendingTx)

			_, err = deliverAt(t, r, db, 0, tc.msg)
			assert.IsErr(t, errors.ErrDuplicate, err)
		})
	}
}

func TestSwappedPartiesAreDifferentWallets(t *testing.T) {
	a := custodytest.RandomAddr(t)
	b := custodytest.RandomAddr(t)
	if DeriveAddress(a, b).Equals(DeriveAddress(b, a)) {
		t.Fatal("swapped parties must derive a different address")
	}

	db := store.MemStore()
	r := newRouter(&recordingUpgrader{})
	_, err := deliverAt(t, r, db, 0, &CreateMsg{Metadata: meta(), Owner: a, Guardian: b})
	assert.Nil(t, err)
	_, err = deliverAt(t, r, db, 0, &CreateMsg{Metadata: meta(), Owner: b, Guardian: a})
	assert.Nil(t, err)
}

func TestUpdateConfiguration(t *testing.T) {
	confOwner := custodytest.NewCondition()
	db := store.MemStore()
	r := newRouter(&recordingUpgrader{})
	msg := &UpdateConfigurationMsg{
		Metadata: meta(),
		Patch:    &Configuration{DefaultSecurityPeriod: 120},
	}

	// Configuration must exist before it can be patched.
	_, err := deliverAt(t, r, db, 0, msg, confOwner)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	err = gconf.Save(db, packageName, &Configuration{
		Metadata:              meta(),
		Owner:                 confOwner.Address(),
		DefaultSecurityPeriod: 3600,
	})
	assert.Nil(t, err)

	_, err = deliverAt(t, r, db, 0, msg, custodytest.NewCondition())
	assert.IsErr(t, errors.ErrUnauthorized, err)

	_, err = deliverAt(t, r, db, 0, msg, confOwner)
	assert.Nil(t, err)
	period, err := defaultSecurityPeriod(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(120), period)

	bad := &UpdateConfigurationMsg{Metadata: meta(), Patch: &Configuration{DefaultSecurityPeriod: -5}}
	_, err = deliverAt(t, r, db, 0, bad, confOwner)
	assert.IsErr(t, ErrInvalidSecurityPeriod, err)
}

func TestGenesis(t *testing.T) {
	owner := custodytest.RandomAddr(t)
	guardian := custodytest.RandomAddr(t)
	confOwner := custodytest.RandomAddr(t)

	genesis := map[string]interface{}{
		"gconf": map[string]interface{}{
			"wallet": map[string]interface{}{
				"metadata":                map[string]interface{}{"schema": 1},
				"owner":                   confOwner,
				"default_security_period": 86400,
			},
		},
		"wallets": []interface{}{
			map[string]interface{}{"owner": owner, "guardian": guardian},
			map[string]interface{}{"owner": guardian, "guardian": owner, "security_period": 30},
		},
	}
	raw, err := json.Marshal(genesis)
	assert.Nil(t, err)
	var opts custody.Options
	assert.Nil(t, json.Unmarshal(raw, &opts))

	db := store.MemStore()
	var ini Initializer
	assert.Nil(t, ini.FromGenesis(opts, db))

	assert.Equal(t, int64(86400), loadWallet(t, db, DeriveAddress(owner, guardian)).SecurityPeriod)
	assert.Equal(t, int64(30), loadWallet(t, db, DeriveAddress(guardian, owner)).SecurityPeriod)

	var conf Configuration
	assert.Nil(t, gconf.Load(db, packageName, &conf))
	assert.Equal(t, confOwner, conf.Owner)
}
