package gconf

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

type (
	// ReadStore is the part of custody.ReadOnlyKVStore needed to load a
	// configuration.
	ReadStore interface {
		Get([]byte) ([]byte, error)
	}

	// Store is the part of custody.KVStore needed to save a
	// configuration.
	Store interface {
		ReadStore
		Set([]byte, []byte) error
	}

	ValidMarshaler interface {
		Marshal() ([]byte, error)
		Validate() error
	}

	Unmarshaler interface {
		Unmarshal([]byte) error
	}

	// Configuration is implemented by the configuration entity of an
	// extension.
	Configuration interface {
		ValidMarshaler
		Unmarshaler
	}
)

// key shares the "_c:" prefix with the chain metadata kept by the app
// package. Extension names never collide with it.
func key(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save stores the configuration of extension pkg. An invalid configuration
// is never written.
func Save(db Store, pkg string, conf ValidMarshaler) error {
	if err := conf.Validate(); err != nil {
		return errors.Wrapf(err, "%s configuration", pkg)
	}
	raw, err := conf.Marshal()
	if err != nil {
		return errors.Wrapf(err, "serialize %s configuration", pkg)
	}
	if err := db.Set(key(pkg), raw); err != nil {
		return errors.Wrapf(err, "store %s configuration", pkg)
	}
	return nil
}

// Load reads the configuration of extension pkg into dst. ErrNotFound is
// returned when the genesis did not configure the extension.
func Load(db ReadStore, pkg string, dst Unmarshaler) error {
	raw, err := db.Get(key(pkg))
	switch {
	case err != nil:
		return errors.Wrapf(err, "read %s configuration", pkg)
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "no %s configuration", pkg)
	}
	if err := dst.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "deserialize %s configuration", pkg)
	}
	return nil
}

// InitConfig saves the genesis section gconf.<pkg> as the configuration of
// extension pkg. Without that section nothing is stored and the extension
// uses its built in defaults, for example the wallet default security
// period.
func InitConfig(db Store, opts custody.Options, pkg string, conf Configuration) error {
	var sections custody.Options
	if err := opts.ReadOptions("gconf", &sections); err != nil {
		return errors.Wrapf(errors.ErrInput, "gconf genesis: %s", err)
	}
	if _, ok := sections[pkg]; !ok {
		return nil
	}
	if err := sections.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(errors.ErrInput, "gconf genesis for %s: %s", pkg, err)
	}
	return Save(db, pkg, conf)
}
