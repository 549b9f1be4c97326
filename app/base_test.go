package app

import (
	"testing"
	"time"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store/iavl"
	"github.com/iov-one/custody/x/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testDecoder returns transactions registered under their byte
// representation.
type testDecoder map[string]custody.Tx

func (d testDecoder) decode(raw []byte) (custody.Tx, error) {
	if string(raw) == "panic" {
		panic("cannot decode")
	}
	tx, ok := d[string(raw)]
	if !ok {
		return nil, errors.Wrap(errors.ErrInput, "unknown transaction")
	}
	return tx, nil
}

// rawQuery returns the value stored under the queried key.
type rawQuery struct{}

func (rawQuery) Query(db custody.ReadOnlyKVStore, mod string, data []byte) ([]custody.Model, error) {
	v, err := db.Get(data)
	if err != nil || v == nil {
		return nil, err
	}
	return []custody.Model{custody.Pair(data, v)}, nil
}

// clockHandler records the block time and height it was called with.
type clockHandler struct {
	now    time.Time
	height int64
	chain  string
}

func (h *clockHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	return &custody.CheckResult{}, nil
}

func (h *clockHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	now, err := custody.BlockTime(ctx)
	if err != nil {
		return nil, err
	}
	h.now = now
	h.height, _ = custody.GetHeight(ctx)
	h.chain = custody.GetChainID(ctx)
	return &custody.DeliverResult{Data: []byte("tick")}, nil
}

type genesisWriter struct{}

func (genesisWriter) FromGenesis(opts custody.Options, db custody.KVStore) error {
	var value string
	if err := opts.ReadOptions("value", &value); err != nil {
		return err
	}
	if value == "" {
		return errors.Wrap(errors.ErrEmpty, "value")
	}
	return db.Set([]byte("genesis"), []byte(value))
}

func txOf(path string) *custodytest.Tx {
	return &custodytest.Tx{Msg: &custodytest.Msg{RoutePath: path}}
}

func newTestApp(t *testing.T, db custody.CommitKVStore) (*BaseApp, *clockHandler) {
	t.Helper()
	clock := &clockHandler{}
	r := NewRouter()
	r.Handle(txOf("test/write").Msg, &custodytest.WriteHandler{Key: []byte("k"), Value: []byte("v")})
	r.Handle(txOf("test/fail").Msg, &custodytest.WriteHandler{Key: []byte("bad"), Value: []byte("v"), DeliverErr: errors.ErrHuman})
	r.Handle(txOf("test/clock").Msg, clock)
	r.Handle(txOf("test/checkfail").Msg, &custodytest.WriteHandler{Key: []byte("checked"), Value: []byte("v"), CheckErr: errors.ErrHuman})

	dec := testDecoder{
		"write": txOf("test/write"),
		"fail":  txOf("test/fail"),
		"clock": txOf("test/clock"),
		"none":  txOf("test/none"),

		"checkfail": txOf("test/checkfail"),
	}
	qr := custody.NewQueryRouter()
	qr.Register("/", rawQuery{})

	stack := ChainDecorators(utils.NewRecovery()).WithHandler(r)
	a, err := NewBaseApp("test", db, dec.decode, stack, qr, false)
	require.NoError(t, err)
	return a.WithInit(ChainInitializers(genesisWriter{})), clock
}

func query(t *testing.T, a *BaseApp, key string) []byte {
	t.Helper()
	res, err := a.Query("/", []byte(key))
	require.NoError(t, err)
	if len(res) == 0 {
		return nil
	}
	return res[0].Value
}

func TestBaseApp(t *testing.T) {
	db := iavl.MockCommitStore()
	a, clock := newTestApp(t, db)
	now := time.Unix(1500, 0)

	// Genesis is required to have a valid chain id and app state.
	_, err := a.InitChain(Genesis{ChainID: "x"})
	assert.True(t, errors.ErrInput.Is(err))
	_, err = a.InitChain(Genesis{ChainID: "test-chain"})
	assert.True(t, errors.ErrEmpty.Is(err))
	assert.Equal(t, "", a.ChainID())

	id, err := a.InitChain(Genesis{
		ChainID:  "test-chain",
		AppState: custody.Options{"value": []byte(`"hello"`)},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, id.Version)
	assert.Equal(t, "test-chain", a.ChainID())
	assert.Equal(t, []byte("hello"), query(t, a, "genesis"))

	_, err = a.InitChain(Genesis{ChainID: "test-chain", AppState: custody.Options{"value": []byte(`"again"`)}})
	assert.True(t, errors.ErrState.Is(err))

	res := a.DeliverTx(now, []byte("write"))
	require.True(t, res.IsOK(), res.Log)
	assert.EqualValues(t, 2, res.Height)
	assert.Equal(t, []byte("v"), query(t, a, "k"))

	// A failed transaction leaves no trace and does not commit.
	res = a.DeliverTx(now, []byte("fail"))
	assert.Equal(t, errors.ErrHuman.ABCICode(), res.Code)
	assert.Nil(t, query(t, a, "bad"))
	h, err := a.Height()
	require.NoError(t, err)
	assert.EqualValues(t, 2, h)

	res = a.DeliverTx(now, []byte("none"))
	assert.Equal(t, errors.ErrNotFound.ABCICode(), res.Code)

	res = a.DeliverTx(now, []byte("garbage"))
	assert.Equal(t, errors.ErrInput.ABCICode(), res.Code)

	res = a.DeliverTx(now, []byte("panic"))
	assert.Equal(t, errors.ErrPanic.ABCICode(), res.Code)

	// The handler sees the block time, the next height and the chain id.
	res = a.DeliverTx(now, []byte("clock"))
	require.True(t, res.IsOK(), res.Log)
	assert.Equal(t, []byte("tick"), res.Data)
	assert.Equal(t, now.Unix(), clock.now.Unix())
	assert.EqualValues(t, 3, clock.height)
	assert.EqualValues(t, 3, res.Height)
	assert.Equal(t, "test-chain", clock.chain)

	// Check never commits.
	res = a.CheckTx(now, []byte("write"))
	require.True(t, res.IsOK(), res.Log)
	h, err = a.Height()
	require.NoError(t, err)
	assert.EqualValues(t, 3, h)

	_, err = a.Query("/unknown", nil)
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestCheckTxRejectionLeavesNoTrace(t *testing.T) {
	a, _ := newTestApp(t, iavl.MockCommitStore())
	_, err := a.InitChain(Genesis{ChainID: "test-chain", AppState: custody.Options{"value": []byte(`"x"`)}})
	require.NoError(t, err)

	res := a.CheckTx(time.Unix(10, 0), []byte("checkfail"))
	assert.Equal(t, errors.ErrHuman.ABCICode(), res.Code)
	v, err := a.store.CheckStore().Get([]byte("checked"))
	require.NoError(t, err)
	assert.Nil(t, v)

	// A successful check is kept until the next commit.
	res = a.CheckTx(time.Unix(10, 0), []byte("write"))
	require.True(t, res.IsOK(), res.Log)
	v, err = a.store.CheckStore().Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)

	// A failed deliver resets the check state to the committed state.
	res = a.DeliverTx(time.Unix(10, 0), []byte("fail"))
	assert.Equal(t, errors.ErrHuman.ABCICode(), res.Code)
	v, err = a.store.CheckStore().Get([]byte("k"))
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestBlockTimeIsMonotonic(t *testing.T) {
	db, cleanup := custodytest.CommitKVStore(t)
	defer cleanup()

	a, clock := newTestApp(t, db)
	_, err := a.InitChain(Genesis{ChainID: "test-chain", AppState: custody.Options{"value": []byte(`"x"`)}})
	require.NoError(t, err)

	res := a.DeliverTx(time.Unix(1000, 0), []byte("clock"))
	require.True(t, res.IsOK(), res.Log)
	assert.EqualValues(t, 1000, clock.now.Unix())

	res = a.DeliverTx(time.Unix(500, 0), []byte("clock"))
	require.True(t, res.IsOK(), res.Log)
	assert.EqualValues(t, 1000, clock.now.Unix())

	// A failed transaction does not move the block time.
	res = a.DeliverTx(time.Unix(3000, 0), []byte("fail"))
	assert.Equal(t, errors.ErrHuman.ABCICode(), res.Code)
	res = a.DeliverTx(time.Unix(2000, 0), []byte("clock"))
	require.True(t, res.IsOK(), res.Log)
	assert.EqualValues(t, 2000, clock.now.Unix())

	// The last block time survives a restart.
	b, clock := newTestApp(t, db)
	res = b.DeliverTx(time.Unix(1500, 0), []byte("clock"))
	require.True(t, res.IsOK(), res.Log)
	assert.EqualValues(t, 2000, clock.now.Unix())
}

func TestBaseAppReload(t *testing.T) {
	db, cleanup := custodytest.CommitKVStore(t)
	defer cleanup()

	a, _ := newTestApp(t, db)
	_, err := a.InitChain(Genesis{
		ChainID:  "reload-chain",
		AppState: custody.Options{"value": []byte(`"persisted"`)},
	})
	require.NoError(t, err)
	res := a.DeliverTx(time.Unix(10, 0), []byte("write"))
	require.True(t, res.IsOK(), res.Log)

	b, _ := newTestApp(t, db)
	assert.Equal(t, "reload-chain", b.ChainID())
	h, err := b.Height()
	require.NoError(t, err)
	assert.EqualValues(t, 2, h)
	assert.Equal(t, []byte("v"), query(t, b, "k"))
}

func TestSplitPath(t *testing.T) {
	path, mod := splitPath("/wallets?prefix")
	assert.Equal(t, "/wallets", path)
	assert.Equal(t, "prefix", mod)

	path, mod = splitPath("/wallets")
	assert.Equal(t, "/wallets", path)
	assert.Equal(t, "", mod)
}
