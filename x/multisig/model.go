package multisig

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// BucketName is where the multisig accounts are stored.
const BucketName = "multisigs"

// Multisig is a two-party account. Both owners must approve before the
// account can be executed.
type Multisig struct {
	Metadata   *custody.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Owner1     custody.Address   `protobuf:"bytes,2,opt,name=owner1,proto3,casttype=github.com/iov-one/custody.Address" json:"owner1,omitempty"`
	Owner2     custody.Address   `protobuf:"bytes,3,opt,name=owner2,proto3,casttype=github.com/iov-one/custody.Address" json:"owner2,omitempty"`
	Confirmed1 bool              `protobuf:"varint,4,opt,name=confirmed1,proto3" json:"confirmed1,omitempty"`
	Confirmed2 bool              `protobuf:"varint,5,opt,name=confirmed2,proto3" json:"confirmed2,omitempty"`
	// Address is derived from the owners at creation time.
	Address custody.Address `protobuf:"bytes,6,opt,name=address,proto3,casttype=github.com/iov-one/custody.Address" json:"address,omitempty"`
}

var _ orm.Model = (*Multisig)(nil)

// Validate ensures the account is consistent.
func (m *Multisig) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Owner1.Validate(); err != nil {
		return errors.Wrap(err, "owner1")
	}
	if err := m.Owner2.Validate(); err != nil {
		return errors.Wrap(err, "owner2")
	}
	if m.Owner1.Equals(m.Owner2) {
		return errors.Wrap(ErrDuplicateOwner, "owners must differ")
	}
	if err := m.Address.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	return nil
}

// Approved returns true when both owners approved.
func (m *Multisig) Approved() bool {
	return m.Confirmed1 && m.Confirmed2
}

// Condition returns the condition of a multisig owned by given pair. The
// order of owners matters.
func Condition(owner1, owner2 custody.Address) custody.Condition {
	data := make([]byte, 0, len(owner1)+len(owner2))
	data = append(data, owner1...)
	data = append(data, owner2...)
	return custody.NewCondition("multisig", "pair", data)
}

// DeriveAddress returns the address of a multisig owned by given pair.
func DeriveAddress(owner1, owner2 custody.Address) custody.Address {
	return Condition(owner1, owner2).Address()
}

// NewBucket returns the bucket holding multisig accounts, keyed by their
// address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Multisig{})
}
