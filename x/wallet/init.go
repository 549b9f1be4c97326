package wallet

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ custody.Initializer = (*Initializer)(nil)

// FromGenesis stores the extension configuration and the initial wallets.
// The configuration is loaded first so that wallets without a security
// period use the configured default.
func (*Initializer) FromGenesis(opts custody.Options, db custody.KVStore) error {
	if err := gconf.InitConfig(db, opts, packageName, &Configuration{}); err != nil {
		return errors.Wrap(err, "init config")
	}

	var wallets []struct {
		Owner          custody.Address `json:"owner"`
		Guardian       custody.Address `json:"guardian"`
		GuardianBackup custody.Address `json:"guardian_backup"`
		SecurityPeriod int64           `json:"security_period"`
	}
	if err := opts.ReadOptions("wallets", &wallets); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	bucket := NewBucket()
	for i, gw := range wallets {
		w, err := newWallet(db, gw.Owner, gw.Guardian, gw.GuardianBackup, gw.SecurityPeriod)
		if err != nil {
			return errors.Wrapf(err, "wallet #%d", i)
		}
		if err := bucket.Create(db, w.Address, w); err != nil {
			return errors.Wrapf(err, "cannot save #%d wallet", i)
		}
	}
	return nil
}
