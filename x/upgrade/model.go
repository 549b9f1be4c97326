package upgrade

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// BucketName is where the deployments are stored.
const BucketName = "deployments"

// Deployment describes the code currently deployed for a wallet.
type Deployment struct {
	Metadata *custody.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Wallet   custody.Address   `protobuf:"bytes,2,opt,name=wallet,proto3,casttype=github.com/iov-one/custody.Address" json:"wallet,omitempty"`
	// CodeHash is the sha256 of the deployed artifact.
	CodeHash   []byte           `protobuf:"bytes,3,opt,name=code_hash,json=codeHash,proto3" json:"code_hash,omitempty"`
	Version    int64            `protobuf:"varint,4,opt,name=version,proto3" json:"version,omitempty"`
	DeployedAt custody.UnixTime `protobuf:"varint,5,opt,name=deployed_at,json=deployedAt,proto3,casttype=github.com/iov-one/custody.UnixTime" json:"deployed_at,omitempty"`
}

var _ orm.Model = (*Deployment)(nil)

func (d *Deployment) Validate() error {
	if err := d.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := d.Wallet.Validate(); err != nil {
		return errors.Wrap(err, "wallet")
	}
	if len(d.CodeHash) != hashSize {
		return errors.Wrapf(errors.ErrModel, "code hash must be %d bytes", hashSize)
	}
	if d.Version < 1 {
		return errors.Wrap(errors.ErrModel, "version must be positive")
	}
	if err := d.DeployedAt.Validate(); err != nil {
		return errors.Wrap(err, "deployed at")
	}
	return nil
}

// NewBucket returns the bucket holding deployments, keyed by the wallet
// address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Deployment{})
}

// RegisterQuery registers the deployment bucket as "/deployments".
func RegisterQuery(qr custody.QueryRouter) {
	NewBucket().Register("deployments", qr)
}
