package utils

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/tendermint/tendermint/libs/log"
)

type panicHandler struct{}

func (panicHandler) Check(custody.Context, custody.KVStore, custody.Tx) (*custody.CheckResult, error) {
	panic("boom")
}

func (panicHandler) Deliver(custody.Context, custody.KVStore, custody.Tx) (*custody.DeliverResult, error) {
	panic("boom")
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	ctx := custody.WithLogger(context.Background(), log.NewTMLogger(&buf))
	db := store.MemStore()
	tx := &custodytest.Tx{Msg: &custodytest.Msg{RoutePath: "wallet/execute"}}
	r := NewRecovery()

	_, err := r.Check(ctx, db, tx, panicHandler{})
	assert.IsErr(t, errors.ErrPanic, err)
	_, err = r.Deliver(ctx, db, tx, panicHandler{})
	assert.IsErr(t, errors.ErrPanic, err)

	out := buf.String()
	if !strings.Contains(out, "handler panic") || !strings.Contains(out, "path=wallet/execute") {
		t.Fatalf("panic not logged: %s", out)
	}
	if !strings.Contains(out, "phase=check") || !strings.Contains(out, "phase=deliver") {
		t.Fatalf("phase not logged: %s", out)
	}

	// Without a panic the call passes through untouched and nothing is
	// logged.
	buf.Reset()
	_, err = r.Deliver(ctx, db, tx, &custodytest.Handler{DeliverErr: errors.ErrNotFound})
	assert.IsErr(t, errors.ErrNotFound, err)
	if buf.Len() != 0 {
		t.Fatalf("unexpected log: %s", buf.String())
	}
}

func TestSavepoint(t *testing.T) {
	key, value := []byte("wallet"), []byte("state")

	cases := map[string]struct {
		decorator  Savepoint
		handlerErr error
		wantStored bool
	}{
		"success is written": {
			decorator:  NewSavepoint().OnDeliver(),
			wantStored: true,
		},
		"failure is rolled back": {
			decorator:  NewSavepoint().OnDeliver(),
			handlerErr: errors.ErrUnauthorized,
			wantStored: false,
		},
		"disabled savepoint keeps partial writes": {
			decorator:  NewSavepoint(),
			handlerErr: errors.ErrUnauthorized,
			wantStored: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			h := &custodytest.WriteHandler{Key: key, Value: value, DeliverErr: tc.handlerErr}
			_, err := tc.decorator.Deliver(context.Background(), db, &custodytest.Tx{}, h)
			assert.IsErr(t, tc.handlerErr, err)

			got, err := db.Get(key)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantStored, got != nil)
		})
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	ctx := custody.WithLogger(context.Background(), log.NewTMLogger(&buf))
	tx := &custodytest.Tx{Msg: &custodytest.Msg{RoutePath: "wallet/create"}}
	db := store.MemStore()

	_, err := NewLogging().Deliver(ctx, db, tx, &custodytest.Handler{})
	assert.Nil(t, err)
	_, err = NewLogging().Deliver(ctx, db, tx, &custodytest.Handler{DeliverErr: errors.ErrUnauthorized})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	out := buf.String()
	if !strings.Contains(out, "path=wallet/create") {
		t.Fatalf("path not logged: %s", out)
	}
	if !strings.Contains(out, "unauthorized") {
		t.Fatalf("error not logged: %s", out)
	}
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	ctx := context.Background()
	db := store.MemStore()
	tx := &custodytest.Tx{Msg: &custodytest.Msg{RoutePath: "wallet/execute"}}

	_, err := m.Deliver(ctx, db, tx, &custodytest.Handler{})
	assert.Nil(t, err)
	_, err = m.Deliver(ctx, db, tx, &custodytest.Handler{})
	assert.Nil(t, err)
	_, err = m.Deliver(ctx, db, tx, &custodytest.Handler{DeliverErr: errors.ErrUnauthorized})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.txs.WithLabelValues("wallet/execute", "0")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.txs.WithLabelValues("wallet/execute", "2")))
}
