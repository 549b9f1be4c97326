package multisig

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ custody.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial multisig accounts from genesis and save
// them in the database.
func (*Initializer) FromGenesis(opts custody.Options, db custody.KVStore) error {
	var accounts []struct {
		Owner1     custody.Address `json:"owner1"`
		Owner2     custody.Address `json:"owner2"`
		Confirmed1 bool            `json:"confirmed1"`
		Confirmed2 bool            `json:"confirmed2"`
	}
	if err := opts.ReadOptions("multisigs", &accounts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	bucket := NewBucket()
	for i, a := range accounts {
		m := Multisig{
			Metadata:   &custody.Metadata{Schema: 1},
			Owner1:     a.Owner1,
			Owner2:     a.Owner2,
			Confirmed1: a.Confirmed1,
			Confirmed2: a.Confirmed2,
			Address:    DeriveAddress(a.Owner1, a.Owner2),
		}
		if err := bucket.Create(db, m.Address, &m); err != nil {
			return errors.Wrapf(err, "cannot save #%d multisig", i)
		}
	}
	return nil
}
