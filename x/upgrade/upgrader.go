package upgrade

import (
	"crypto/sha256"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

const hashSize = sha256.Size

// Upgrader stores a new deployment for every upgrade.
type Upgrader struct {
	bucket orm.ModelBucket
}

// NewUpgrader returns an Upgrader using the deployment bucket.
func NewUpgrader() *Upgrader {
	return &Upgrader{bucket: NewBucket()}
}

// Upgrade replaces the deployment of given wallet with the artifact. The
// version starts at 1 and grows by one with every upgrade.
func (u *Upgrader) Upgrade(ctx custody.Context, db custody.KVStore, wallet custody.Address, artifact []byte) error {
	if len(artifact) == 0 {
		return errors.Wrap(errors.ErrEmpty, "artifact")
	}
	now, err := custody.Now(ctx)
	if err != nil {
		return err
	}

	var version int64
	var prev Deployment
	switch err := u.bucket.One(db, wallet, &prev); {
	case err == nil:
		version = prev.Version
	case !errors.ErrNotFound.Is(err):
		return errors.Wrap(err, "load deployment")
	}

	hash := sha256.Sum256(artifact)
	d := Deployment{
		Metadata:   &custody.Metadata{Schema: 1},
		Wallet:     wallet,
		CodeHash:   hash[:],
		Version:    version + 1,
		DeployedAt: now,
	}
	if err := u.bucket.Put(db, wallet, &d); err != nil {
		return errors.Wrap(err, "store deployment")
	}
	custody.GetLogger(ctx).Info("artifact deployed",
		"wallet", wallet, "version", d.Version, "code_hash", d.CodeHash)
	return nil
}
