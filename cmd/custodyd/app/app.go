/*
Package app links together all the various components to construct the
custody application.
*/
package app

import (
	"path/filepath"
	"strings"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/app"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store/iavl"
	"github.com/iov-one/custody/x"
	"github.com/iov-one/custody/x/multisig"
	"github.com/iov-one/custody/x/sigs"
	"github.com/iov-one/custody/x/upgrade"
	"github.com/iov-one/custody/x/utils"
	"github.com/iov-one/custody/x/wallet"
	"github.com/prometheus/client_golang/prometheus"
)

// Name is used as the application name and as the database name.
const Name = "custody"

// Authenticator returns the authentication used by all handlers, public
// key signatures only.
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns the chain of decorators that handle recovery, logging,
// metrics and authentication. On DeliverTx a failed message leaves no
// trace in the state.
func Chain(reg prometheus.Registerer) app.Decorators {
	return app.ChainDecorators(
		utils.NewRecovery(),
		utils.NewLogging(),
		utils.NewMetrics(reg),
		sigs.NewDecorator(),
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching to all wallet and multisig handlers.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	wallet.RegisterRoutes(r, authFn, crypto.AttestationVerifier{}, upgrade.NewUpgrader())
	multisig.RegisterRoutes(r, authFn, nil)
	return r
}

// QueryRouter returns a query router giving access to "/wallets",
// "/multisigs", "/deployments" and "/signers".
func QueryRouter() custody.QueryRouter {
	r := custody.NewQueryRouter()
	r.RegisterAll(
		wallet.RegisterQuery,
		multisig.RegisterQuery,
		upgrade.RegisterQuery,
		sigs.RegisterQuery,
	)
	return r
}

// Initializers returns the genesis initializers of all extensions.
func Initializers() custody.Initializer {
	return app.ChainInitializers(
		&wallet.Initializer{},
		&multisig.Initializer{},
	)
}

// Stack wires up the router with the decorator chain. This can be passed
// into BaseApp.
func Stack(reg prometheus.Registerer) custody.Handler {
	return Chain(reg).WithHandler(Router(Authenticator()))
}

// Application constructs the custody application persisting its state at
// dbPath. An empty dbPath keeps the state in memory.
func Application(dbPath string, reg prometheus.Registerer, debug bool) (*app.BaseApp, error) {
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return nil, err
	}
	base, err := app.NewBaseApp(Name, kv, TxDecoder, Stack(reg), QueryRouter(), debug)
	if err != nil {
		return nil, err
	}
	return base.WithInit(Initializers()), nil
}

// CommitKVStore returns an initialized KVStore that persists the data to
// the named path.
func CommitKVStore(dbPath string) (custody.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.MockCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name %q", dbPath)
	}

	// Some callers add a ".db" suffix, which is removed.
	path = strings.TrimSuffix(path, filepath.Ext(path))
	return iavl.NewCommitStore(filepath.Dir(path), filepath.Base(path)), nil
}
