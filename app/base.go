package app

import (
	"context"
	"strings"
	"time"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Result is the outcome of a CheckTx or DeliverTx call. A zero Code means
// success.
type Result struct {
	Code   uint32 `json:"code"`
	Log    string `json:"log,omitempty"`
	Data   []byte `json:"data,omitempty"`
	Height int64  `json:"height,omitempty"`
}

// IsOK returns true if the call succeeded.
func (r Result) IsOK() bool {
	return r.Code == 0
}

// BaseApp decodes transactions, runs them through the handler stack and
// commits the state. It is not safe for concurrent use.
type BaseApp struct {
	name        string
	store       *CommitStore
	decoder     custody.TxDecoder
	handler     custody.Handler
	queries     custody.QueryRouter
	initializer custody.Initializer
	logger      log.Logger
	chainID     string
	lastTime    time.Time
	debug       bool
}

// NewBaseApp loads the latest state of db. The chain id is loaded from the
// store if the genesis was already applied.
func NewBaseApp(
	name string,
	db custody.CommitKVStore,
	decoder custody.TxDecoder,
	handler custody.Handler,
	queries custody.QueryRouter,
	debug bool,
) (*BaseApp, error) {
	store, err := NewCommitStore(db)
	if err != nil {
		return nil, err
	}
	chainID, err := loadChainID(store.DeliverStore())
	if err != nil {
		return nil, err
	}
	lastTime, err := loadBlockTime(store.DeliverStore())
	if err != nil {
		return nil, err
	}
	return &BaseApp{
		name:     name,
		store:    store,
		decoder:  decoder,
		handler:  handler,
		queries:  queries,
		logger:   log.NewNopLogger(),
		chainID:  chainID,
		lastTime: lastTime,
		debug:    debug,
	}, nil
}

// WithInit sets the initializer used by InitChain.
func (b *BaseApp) WithInit(init custody.Initializer) *BaseApp {
	b.initializer = init
	return b
}

// WithLogger sets the logger passed to every handler.
func (b *BaseApp) WithLogger(logger log.Logger) *BaseApp {
	b.logger = logger
	return b
}

// ChainID returns the chain id, or an empty string before InitChain.
func (b *BaseApp) ChainID() string {
	return b.chainID
}

// Height returns the height of the last commit.
func (b *BaseApp) Height() (int64, error) {
	id, err := b.store.CommitInfo()
	if err != nil {
		return 0, err
	}
	return id.Version, nil
}

// InitChain stores the chain id, initializes all extensions from the
// genesis and commits the result. It can be called only once in the
// lifetime of the store.
func (b *BaseApp) InitChain(gen Genesis) (custody.CommitID, error) {
	if b.chainID != "" {
		return custody.CommitID{}, errors.Wrapf(errors.ErrState, "genesis already applied for chain %s", b.chainID)
	}
	db := b.store.DeliverStore()
	if err := saveChainID(db, gen.ChainID); err != nil {
		b.store.Rollback()
		return custody.CommitID{}, err
	}
	if b.initializer != nil {
		if err := b.initializer.FromGenesis(gen.AppState, db); err != nil {
			b.store.Rollback()
			return custody.CommitID{}, errors.Wrap(err, "genesis")
		}
	}
	id, err := b.store.Commit()
	if err != nil {
		return id, err
	}
	b.chainID = gen.ChainID
	b.logger.Info("genesis applied", "chain_id", b.chainID, "height", id.Version)
	return id, nil
}

// DeliverTx runs the transaction at given block time and commits the state
// if it succeeds. A failed transaction is rolled back.
//
// Block time never moves backwards. A time earlier than the last committed
// block time is replaced by the latter.
func (b *BaseApp) DeliverTx(now time.Time, txBytes []byte) Result {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return b.errorResult(err)
	}
	height, err := b.Height()
	if err != nil {
		return b.errorResult(err)
	}
	now = b.blockTime(now)
	ctx := custody.WithLogInfo(b.blockContext(now, height+1),
		"call", "deliver_tx",
		"path", custody.GetPath(tx))

	db := b.store.DeliverStore()
	res, err := b.handler.Deliver(ctx, db, tx)
	if err != nil {
		b.store.Rollback()
		return b.errorResult(err)
	}
	if err := saveBlockTime(db, now); err != nil {
		b.store.Rollback()
		return b.errorResult(err)
	}
	id, err := b.store.Commit()
	if err != nil {
		b.store.Rollback()
		return b.errorResult(err)
	}
	b.lastTime = now
	return Result{Data: res.Data, Log: res.Log, Height: id.Version}
}

// CheckTx validates the transaction against the check state without
// committing anything. The check state keeps the changes of a successful
// call only.
func (b *BaseApp) CheckTx(now time.Time, txBytes []byte) Result {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return b.errorResult(err)
	}
	height, err := b.Height()
	if err != nil {
		return b.errorResult(err)
	}
	ctx := custody.WithLogInfo(b.blockContext(b.blockTime(now), height+1),
		"call", "check_tx",
		"path", custody.GetPath(tx))

	cache := b.store.CheckStore().CacheWrap()
	res, err := b.handler.Check(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return b.errorResult(err)
	}
	if err := cache.Write(); err != nil {
		return b.errorResult(errors.Wrap(err, "write check cache"))
	}
	return Result{Data: res.Data, Log: res.Log, Height: height}
}

// blockTime returns now unless the clock is behind the last committed
// block time.
func (b *BaseApp) blockTime(now time.Time) time.Time {
	if now.Before(b.lastTime) {
		b.logger.Info("clock behind last block time, using last block time",
			"now", now, "last", b.lastTime)
		return b.lastTime
	}
	return now
}

// Query runs a query against the committed state. The path may be
// followed by "?prefix" to make a prefix query.
func (b *BaseApp) Query(path string, data []byte) ([]custody.Model, error) {
	path, mod := splitPath(path)
	qh := b.queries.Handler(path)
	if qh == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "unexpected query path %q", path)
	}
	return qh.Query(b.store.QueryStore(), mod, data)
}

// splitPath splits out the real path along with the query modifier
// (everything after the ?).
func splitPath(path string) (string, string) {
	var mod string
	chunks := strings.SplitN(path, "?", 2)
	if len(chunks) == 2 {
		path = chunks[0]
		mod = chunks[1]
	}
	return path, mod
}

func (b *BaseApp) blockContext(now time.Time, height int64) custody.Context {
	ctx := custody.WithLogger(context.Background(), b.logger)
	if b.chainID != "" {
		ctx = custody.WithChainID(ctx, b.chainID)
	}
	ctx = custody.WithHeight(ctx, height)
	return custody.WithBlockTime(ctx, now)
}

// loadTx calls the decoder, and captures any panics.
func (b *BaseApp) loadTx(txBytes []byte) (tx custody.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = b.decoder(txBytes)
	if err != nil {
		err = errors.Wrap(err, "cannot decode transaction")
	}
	return
}

func (b *BaseApp) errorResult(err error) Result {
	code, msg := errors.ABCIInfo(err, b.debug)
	return Result{Code: code, Log: msg}
}
