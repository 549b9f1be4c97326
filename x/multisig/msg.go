package multisig

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

const (
	pathCreateMsg  = "multisig/create"
	pathApproveMsg = "multisig/approve"
	pathExecuteMsg = "multisig/execute"
)

var _ custody.Msg = (*CreateMsg)(nil)

// CreateMsg creates a new multisig owned by two distinct parties.
type CreateMsg struct {
	Metadata *custody.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Owner1   custody.Address   `protobuf:"bytes,2,opt,name=owner1,proto3,casttype=github.com/iov-one/custody.Address" json:"owner1,omitempty"`
	Owner2   custody.Address   `protobuf:"bytes,3,opt,name=owner2,proto3,casttype=github.com/iov-one/custody.Address" json:"owner2,omitempty"`
}

func (CreateMsg) Path() string {
	return pathCreateMsg
}

func (m *CreateMsg) Validate() error {
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
	return nil
}

var _ custody.Msg = (*ApproveMsg)(nil)

// ApproveMsg records the approval of the signing owner.
type ApproveMsg struct {
	Metadata   *custody.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	MultisigID custody.Address   `protobuf:"bytes,2,opt,name=multisig_id,json=multisigId,proto3,casttype=github.com/iov-one/custody.Address" json:"multisig_id,omitempty"`
}

func (ApproveMsg) Path() string {
	return pathApproveMsg
}

func (m *ApproveMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.MultisigID.Validate(); err != nil {
		return errors.Wrap(err, "multisig id")
	}
	return nil
}

var _ custody.Msg = (*ExecuteMsg)(nil)

// ExecuteMsg runs the guarded action of a fully approved multisig.
type ExecuteMsg struct {
	Metadata   *custody.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	MultisigID custody.Address   `protobuf:"bytes,2,opt,name=multisig_id,json=multisigId,proto3,casttype=github.com/iov-one/custody.Address" json:"multisig_id,omitempty"`
}

func (ExecuteMsg) Path() string {
	return pathExecuteMsg
}

func (m *ExecuteMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.MultisigID.Validate(); err != nil {
		return errors.Wrap(err, "multisig id")
	}
	return nil
}
