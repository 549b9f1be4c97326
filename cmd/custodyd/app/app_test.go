package app

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/app"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/multisig"
	"github.com/iov-one/custody/x/sigs"
	"github.com/iov-one/custody/x/upgrade"
	"github.com/iov-one/custody/x/wallet"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chainID = "custody-test"

// chain drives an in memory application and keeps track of the signer
// sequences.
type chain struct {
	t   *testing.T
	app *app.BaseApp
	seq map[string]int64
}

func newChain(t *testing.T, appState string) *chain {
	t.Helper()
	a, err := Application("", prometheus.NewRegistry(), true)
	require.NoError(t, err)

	var opts custody.Options
	require.NoError(t, json.Unmarshal([]byte(appState), &opts))
	_, err = a.InitChain(app.Genesis{ChainID: chainID, AppState: opts})
	require.NoError(t, err)
	return &chain{t: t, app: a, seq: make(map[string]int64)}
}

func (c *chain) buildTx(msg custody.Msg, signers ...*crypto.PrivateKey) []byte {
	c.t.Helper()
	var tx Tx
	require.NoError(c.t, tx.SetMsg(msg))
	for _, key := range signers {
		sig, err := sigs.SignTx(key, &tx, chainID, c.seq[key.PublicKey().Address().String()])
		require.NoError(c.t, err)
		tx.Signatures = append(tx.Signatures, sig)
	}
	raw, err := tx.Marshal()
	require.NoError(c.t, err)
	return raw
}

// deliver submits a signed message. A failed transaction is rolled back
// entirely so the sequences only move forward on success.
func (c *chain) deliver(now time.Time, msg custody.Msg, signers ...*crypto.PrivateKey) app.Result {
	c.t.Helper()
	res := c.app.DeliverTx(now, c.buildTx(msg, signers...))
	if res.IsOK() {
		for _, key := range signers {
			c.seq[key.PublicKey().Address().String()]++
		}
	}
	return res
}

// submit runs a signed message through CheckTx and DeliverTx, the way the
// daemon does.
func (c *chain) submit(now time.Time, msg custody.Msg, signers ...*crypto.PrivateKey) app.Result {
	c.t.Helper()
	raw := c.buildTx(msg, signers...)
	res := c.app.CheckTx(now, raw)
	if !res.IsOK() {
		return res
	}
	res = c.app.DeliverTx(now, raw)
	if res.IsOK() {
		for _, key := range signers {
			c.seq[key.PublicKey().Address().String()]++
		}
	}
	return res
}

func (c *chain) wallet(id custody.Address) *wallet.Wallet {
	c.t.Helper()
	res, err := c.app.Query("/wallets", id)
	require.NoError(c.t, err)
	require.Len(c.t, res, 1)
	var w wallet.Wallet
	require.NoError(c.t, w.Unmarshal(res[0].Value))
	return &w
}

func requireCode(t testing.TB, want *errors.Error, res app.Result) {
	t.Helper()
	require.Equal(t, want.ABCICode(), res.Code, res.Log)
}

func hexAddr(a custody.Address) string {
	return a.String()
}

func TestWalletLifecycle(t *testing.T) {
	owner := crypto.GenPrivKeyEd25519()
	guardian := crypto.GenPrivKeyEd25519()
	newGuardian := crypto.GenPrivKeyEd25519()
	admin := crypto.GenPrivKeyEd25519()

	c := newChain(t, fmt.Sprintf(`{
		"gconf": {
			"wallet": {
				"metadata": {"schema": 1},
				"owner": %q,
				"default_security_period": 10
			}
		}
	}`, hexAddr(admin.PublicKey().Address())))

	meta := &custody.Metadata{Schema: 1}
	t0 := time.Unix(1000000, 0)

	res := c.deliver(t0, &wallet.CreateMsg{
		Metadata: meta,
		Owner:    owner.PublicKey().Address(),
		Guardian: guardian.PublicKey().Address(),
	}, owner)
	require.True(t, res.IsOK(), res.Log)
	id := custody.Address(res.Data)
	assert.Equal(t, wallet.DeriveAddress(owner.PublicKey().Address(), guardian.PublicKey().Address()), id)
	assert.EqualValues(t, 10, c.wallet(id).SecurityPeriod)

	// Execution requires both parties.
	exec := &wallet.ExecuteMsg{Metadata: meta, WalletID: id, Data: []byte("transfer")}
	requireCode(t, errors.ErrUnauthorized, c.deliver(t0, exec, owner))
	res = c.deliver(t0, exec, owner, guardian)
	require.True(t, res.IsOK(), res.Log)
	assert.Equal(t, []byte("transfer"), c.wallet(id).PendingTx.Data)

	// The owner replaces an unresponsive guardian.
	res = c.deliver(t0, &wallet.TriggerEscapeGuardianMsg{Metadata: meta, WalletID: id}, owner)
	require.True(t, res.IsOK(), res.Log)
	assert.Equal(t, wallet.EscapeGuardianInProgress, c.wallet(id).EscapeState)

	escape := &wallet.EscapeGuardianMsg{Metadata: meta, WalletID: id, NewGuardian: newGuardian.PublicKey().Address()}
	requireCode(t, wallet.ErrEscapeNotReady, c.deliver(t0.Add(9*time.Second), escape, owner))
	res = c.deliver(t0.Add(10*time.Second), escape, owner)
	require.True(t, res.IsOK(), res.Log)

	w := c.wallet(id)
	assert.Equal(t, newGuardian.PublicKey().Address(), w.Guardian)
	assert.Equal(t, wallet.EscapeNone, w.EscapeState)
	// The wallet keeps its address after the guardian is replaced.
	assert.Equal(t, id, w.Address)

	// The old guardian lost its rights.
	requireCode(t, errors.ErrUnauthorized, c.deliver(t0, exec, owner, guardian))
	res = c.deliver(t0, exec, owner, newGuardian)
	require.True(t, res.IsOK(), res.Log)

	// Upgrades are recorded as deployments.
	res = c.deliver(t0, &wallet.UpgradeMsg{Metadata: meta, WalletID: id, Artifact: []byte("code")}, owner, newGuardian)
	require.True(t, res.IsOK(), res.Log)
	models, err := c.app.Query("/deployments", id)
	require.NoError(t, err)
	require.Len(t, models, 1)
	var d upgrade.Deployment
	require.NoError(t, d.Unmarshal(models[0].Value))
	assert.EqualValues(t, 1, d.Version)

	// Every successful signature incremented the owner sequence.
	models, err = c.app.Query("/signers", owner.PublicKey().Address())
	require.NoError(t, err)
	require.Len(t, models, 1)
	var u sigs.UserData
	require.NoError(t, u.Unmarshal(models[0].Value))
	assert.Equal(t, c.seq[owner.PublicKey().Address().String()], u.Sequence)
}

func TestRejectedCallCanBeRetried(t *testing.T) {
	owner := crypto.GenPrivKeyEd25519()
	guardian := crypto.GenPrivKeyEd25519()
	newGuardian := crypto.GenPrivKeyEd25519()
	c := newChain(t, `{}`)
	meta := &custody.Metadata{Schema: 1}
	t0 := time.Unix(2000000, 0)

	res := c.submit(t0, &wallet.CreateMsg{
		Metadata:       meta,
		Owner:          owner.PublicKey().Address(),
		Guardian:       guardian.PublicKey().Address(),
		SecurityPeriod: 5,
	}, owner)
	require.True(t, res.IsOK(), res.Log)
	id := custody.Address(res.Data)

	res = c.submit(t0, &wallet.TriggerEscapeGuardianMsg{Metadata: meta, WalletID: id}, owner)
	require.True(t, res.IsOK(), res.Log)

	// A call rejected by the handler does not consume the sequence, so the
	// same sequence is accepted once the timelock expired.
	escape := &wallet.EscapeGuardianMsg{Metadata: meta, WalletID: id, NewGuardian: newGuardian.PublicKey().Address()}
	requireCode(t, wallet.ErrEscapeNotReady, c.submit(t0.Add(3*time.Second), escape, owner))
	requireCode(t, wallet.ErrEscapeNotReady, c.submit(t0.Add(4*time.Second), escape, owner))
	res = c.submit(t0.Add(6*time.Second), escape, owner)
	require.True(t, res.IsOK(), res.Log)

	w := c.wallet(id)
	assert.Equal(t, newGuardian.PublicKey().Address(), w.Guardian)
	assert.Equal(t, wallet.EscapeNone, w.EscapeState)

	models, err := c.app.Query("/signers", owner.PublicKey().Address())
	require.NoError(t, err)
	require.Len(t, models, 1)
	var u sigs.UserData
	require.NoError(t, u.Unmarshal(models[0].Value))
	assert.EqualValues(t, 3, u.Sequence)
}

func TestBlockTimeNeverGoesBack(t *testing.T) {
	owner := crypto.GenPrivKeyEd25519()
	guardian := crypto.GenPrivKeyEd25519()
	c := newChain(t, `{}`)
	meta := &custody.Metadata{Schema: 1}
	t0 := time.Unix(1000, 0)

	res := c.submit(t0, &wallet.CreateMsg{
		Metadata:       meta,
		Owner:          owner.PublicKey().Address(),
		Guardian:       guardian.PublicKey().Address(),
		SecurityPeriod: 5,
	}, owner)
	require.True(t, res.IsOK(), res.Log)
	id := custody.Address(res.Data)

	// The clock stepped back, the escape is anchored at the last block time.
	res = c.submit(time.Unix(500, 0), &wallet.TriggerEscapeOwnerMsg{Metadata: meta, WalletID: id}, guardian)
	require.True(t, res.IsOK(), res.Log)
	w := c.wallet(id)
	assert.Equal(t, wallet.EscapeOwnerInProgress, w.EscapeState)
	assert.Equal(t, custody.UnixTime(1000), w.EscapeInitiatedAt)

	newOwner := crypto.GenPrivKeyEd25519()
	escape := &wallet.EscapeOwnerMsg{Metadata: meta, WalletID: id, NewOwner: newOwner.PublicKey().Address()}
	requireCode(t, wallet.ErrEscapeNotReady, c.submit(time.Unix(1004, 0), escape, guardian))
	res = c.submit(time.Unix(1005, 0), escape, guardian)
	require.True(t, res.IsOK(), res.Log)
}

func TestMultisigLifecycle(t *testing.T) {
	a := crypto.GenPrivKeyEd25519()
	b := crypto.GenPrivKeyEd25519()
	c := newChain(t, `{}`)
	meta := &custody.Metadata{Schema: 1}
	now := time.Unix(5000, 0)

	res := c.deliver(now, &multisig.CreateMsg{
		Metadata: meta,
		Owner1:   a.PublicKey().Address(),
		Owner2:   b.PublicKey().Address(),
	}, a)
	require.True(t, res.IsOK(), res.Log)
	id := custody.Address(res.Data)

	exec := &multisig.ExecuteMsg{Metadata: meta, MultisigID: id}
	requireCode(t, multisig.ErrInsufficientApprovals, c.deliver(now, exec, a))

	approve := &multisig.ApproveMsg{Metadata: meta, MultisigID: id}
	require.True(t, c.deliver(now, approve, a).IsOK())
	requireCode(t, multisig.ErrAlreadyApproved, c.deliver(now, approve, a))
	require.True(t, c.deliver(now, approve, b).IsOK())

	res = c.deliver(now, exec, a)
	require.True(t, res.IsOK(), res.Log)

	models, err := c.app.Query("/multisigs", id)
	require.NoError(t, err)
	require.Len(t, models, 1)
	var m multisig.Multisig
	require.NoError(t, m.Unmarshal(models[0].Value))
	assert.True(t, m.Approved())
}

func TestGenesisWallets(t *testing.T) {
	owner := custody.NewAddress([]byte("owner"))
	guardian := custody.NewAddress([]byte("guardian"))
	c := newChain(t, fmt.Sprintf(`{
		"wallets": [{"owner": %q, "guardian": %q, "security_period": 60}]
	}`, hexAddr(owner), hexAddr(guardian)))

	w := c.wallet(wallet.DeriveAddress(owner, guardian))
	assert.EqualValues(t, 60, w.SecurityPeriod)
	assert.Equal(t, wallet.EscapeNone, w.EscapeState)

	res, err := c.app.Query("/wallets?prefix", nil)
	require.NoError(t, err)
	assert.Len(t, res, 1)
}

func TestTransactionRejected(t *testing.T) {
	owner := crypto.GenPrivKeyEd25519()
	c := newChain(t, `{}`)
	now := time.Unix(5000, 0)
	create := &wallet.CreateMsg{
		Metadata: &custody.Metadata{Schema: 1},
		Owner:    owner.PublicKey().Address(),
		Guardian: custody.NewAddress([]byte("guardian")),
	}

	// Unsigned transactions are rejected by the signature decorator.
	requireCode(t, errors.ErrUnauthorized, c.deliver(now, create))

	// A signature made for another sequence.
	c.seq[owner.PublicKey().Address().String()] = 3
	requireCode(t, sigs.ErrInvalidSequence, c.deliver(now, create, owner))
	c.seq[owner.PublicKey().Address().String()] = 0

	res := c.app.DeliverTx(now, []byte("not a transaction"))
	requireCode(t, errors.ErrInput, res)

	var empty Tx
	raw, err := empty.Marshal()
	require.NoError(t, err)
	requireCode(t, errors.ErrInput, c.app.DeliverTx(now, raw))

	// Check does not persist anything.
	res = c.app.CheckTx(now, c.buildTx(create, owner))
	require.True(t, res.IsOK(), res.Log)
	got, err := c.app.Query("/wallets?prefix", nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTxSetMsg(t *testing.T) {
	var tx Tx
	msg := &wallet.CancelEscapeMsg{Metadata: &custody.Metadata{Schema: 1}}
	require.NoError(t, tx.SetMsg(msg))
	got, err := tx.GetMsg()
	require.NoError(t, err)
	assert.Equal(t, msg, got)

	// Setting another message replaces the previous one.
	require.NoError(t, tx.SetMsg(&multisig.ApproveMsg{}))
	got, err = tx.GetMsg()
	require.NoError(t, err)
	assert.Equal(t, "multisig/approve", got.Path())

	tx.CancelEscapeMsg = msg
	_, err = tx.GetMsg()
	assert.True(t, errors.ErrInput.Is(err))
}
