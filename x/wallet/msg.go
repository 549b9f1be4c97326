package wallet

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

const (
	pathCreateMsg                = "wallet/create"
	pathExecuteMsg               = "wallet/execute"
	pathChangeOwnerMsg           = "wallet/change_owner"
	pathChangeGuardianMsg        = "wallet/change_guardian"
	pathChangeGuardianBackupMsg  = "wallet/change_guardian_backup"
	pathUpgradeMsg               = "wallet/upgrade"
	pathTriggerEscapeGuardianMsg = "wallet/trigger_escape_guardian"
	pathTriggerEscapeOwnerMsg    = "wallet/trigger_escape_owner"
	pathEscapeGuardianMsg        = "wallet/escape_guardian"
	pathEscapeOwnerMsg           = "wallet/escape_owner"
	pathCancelEscapeMsg          = "wallet/cancel_escape"
	pathUpdateConfigurationMsg   = "wallet/update_configuration"
)

// CreateMsg creates a new wallet. A zero security period selects the
// configured default. A negative security period, or one longer than a
// hundred years, is rejected with ErrInvalidSecurityPeriod.
type CreateMsg struct {
	Metadata       *custody.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Owner          custody.Address   `protobuf:"bytes,2,opt,name=owner,proto3,casttype=github.com/iov-one/custody.Address" json:"owner,omitempty"`
	Guardian       custody.Address   `protobuf:"bytes,3,opt,name=guardian,proto3,casttype=github.com/iov-one/custody.Address" json:"guardian,omitempty"`
	GuardianBackup custody.Address   `protobuf:"bytes,4,opt,name=guardian_backup,json=guardianBackup,proto3,casttype=github.com/iov-one/custody.Address" json:"guardian_backup,omitempty"`
	SecurityPeriod int64             `protobuf:"varint,5,opt,name=security_period,json=securityPeriod,proto3" json:"security_period,omitempty"`
}

var _ custody.Msg = (*CreateMsg)(nil)

func (CreateMsg) Path() string {
	return pathCreateMsg
}

func (m *CreateMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := m.Guardian.Validate(); err != nil {
		return errors.Wrap(err, "guardian")
	}
	if len(m.GuardianBackup) != 0 {
		if err := m.GuardianBackup.Validate(); err != nil {
			return errors.Wrap(err, "guardian backup")
		}
	}
	if m.SecurityPeriod != 0 {
		if err := validateSecurityPeriod(m.SecurityPeriod); err != nil {
			return err
		}
	}
	return nil
}

// ExecuteMsg records a transaction approved by both the owner and the
// guardian.
type ExecuteMsg struct {
	Metadata *custody.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	WalletID custody.Address   `protobuf:"bytes,2,opt,name=wallet_id,json=walletId,proto3,casttype=github.com/iov-one/custody.Address" json:"wallet_id,omitempty"`
	Data     []byte            `protobuf:"bytes,3,opt,name=data,proto3" json:"data,omitempty"`
}

var _ custody.Msg = (*ExecuteMsg)(nil)

func (ExecuteMsg) Path() string {
	return pathExecuteMsg
}

func (m *ExecuteMsg) Validate() error {
	return validateWalletMsg(m.Metadata, m.WalletID)
}

// ChangeOwnerMsg replaces the owner. NewOwnerProof must be an attestation
// of the new owner over ChangeOwnerMessage.
type ChangeOwnerMsg struct {
	Metadata      *custody.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	WalletID      custody.Address   `protobuf:"bytes,2,opt,name=wallet_id,json=walletId,proto3,casttype=github.com/iov-one/custody.Address" json:"wallet_id,omitempty"`
	NewOwner      custody.Address   `protobuf:"bytes,3,opt,name=new_owner,json=newOwner,proto3,casttype=github.com/iov-one/custody.Address" json:"new_owner,omitempty"`
	NewOwnerProof []byte            `protobuf:"bytes,4,opt,name=new_owner_proof,json=newOwnerProof,proto3" json:"new_owner_proof,omitempty"`
}

var _ custody.Msg = (*ChangeOwnerMsg)(nil)

func (ChangeOwnerMsg) Path() string {
	return pathChangeOwnerMsg
}

func (m *ChangeOwnerMsg) Validate() error {
	if err := validateWalletMsg(m.Metadata, m.WalletID); err != nil {
		return err
	}
	if err := m.NewOwner.Validate(); err != nil {
		return errors.Wrap(err, "new owner")
	}
	if len(m.NewOwnerProof) == 0 {
		return errors.Wrap(errors.ErrEmpty, "new owner proof")
	}
	return nil
}

// ChangeOwnerMessage returns the message the new owner must attest to
// accept the ownership of given wallet.
func ChangeOwnerMessage(wallet, newOwner custody.Address) []byte {
	const tag = "wallet/change-owner"
	msg := make([]byte, 0, len(tag)+len(wallet)+len(newOwner))
	msg = append(msg, tag...)
	msg = append(msg, wallet...)
	return append(msg, newOwner...)
}

// ChangeGuardianMsg replaces the guardian.
type ChangeGuardianMsg struct {
	Metadata    *custody.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	WalletID    custody.Address   `protobuf:"bytes,2,opt,name=wallet_id,json=walletId,proto3,casttype=github.com/iov-one/custody.Address" json:"wallet_id,omitempty"`
	NewGuardian custody.Address   `protobuf:"bytes,3,opt,name=new_guardian,json=newGuardian,proto3,casttype=github.com/iov-one/custody.Address" json:"new_guardian,omitempty"`
}

var _ custody.Msg = (*ChangeGuardianMsg)(nil)

func (ChangeGuardianMsg) Path() string {
	return pathChangeGuardianMsg
}

func (m *ChangeGuardianMsg) Validate() error {
	if err := validateWalletMsg(m.Metadata, m.WalletID); err != nil {
		return err
	}
	if err := m.NewGuardian.Validate(); err != nil {
		return errors.Wrap(err, "new guardian")
	}
	return nil
}

// ChangeGuardianBackupMsg sets the guardian backup.
type ChangeGuardianBackupMsg struct {
	Metadata          *custody.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	WalletID          custody.Address   `protobuf:"bytes,2,opt,name=wallet_id,json=walletId,proto3,casttype=github.com/iov-one/custody.Address" json:"wallet_id,omitempty"`
	NewGuardianBackup custody.Address   `protobuf:"bytes,3,opt,name=new_guardian_backup,json=newGuardianBackup,proto3,casttype=github.com/iov-one/custody.Address" json:"new_guardian_backup,omitempty"`
}

var _ custody.Msg = (*ChangeGuardianBackupMsg)(nil)

func (ChangeGuardianBackupMsg) Path() string {
	return pathChangeGuardianBackupMsg
}

func (m *ChangeGuardianBackupMsg) Validate() error {
	if err := validateWalletMsg(m.Metadata, m.WalletID); err != nil {
		return err
	}
	if err := m.NewGuardianBackup.Validate(); err != nil {
		return errors.Wrap(err, "new guardian backup")
	}
	return nil
}

// UpgradeMsg replaces the code of the wallet with given artifact.
type UpgradeMsg struct {
	Metadata *custody.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	WalletID custody.Address   `protobuf:"bytes,2,opt,name=wallet_id,json=walletId,proto3,casttype=github.com/iov-one/custody.Address" json:"wallet_id,omitempty"`
	Artifact []byte            `protobuf:"bytes,3,opt,name=artifact,proto3" json:"artifact,omitempty"`
}

var _ custody.Msg = (*UpgradeMsg)(nil)

func (UpgradeMsg) Path() string {
	return pathUpgradeMsg
}

func (m *UpgradeMsg) Validate() error {
	if err := validateWalletMsg(m.Metadata, m.WalletID); err != nil {
		return err
	}
	if len(m.Artifact) == 0 {
		return errors.Wrap(errors.ErrEmpty, "artifact")
	}
	return nil
}

// TriggerEscapeGuardianMsg is sent by the owner to start replacing the
// guardian.
type TriggerEscapeGuardianMsg struct {
	Metadata *custody.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	WalletID custody.Address   `protobuf:"bytes,2,opt,name=wallet_id,json=walletId,proto3,casttype=github.com/iov-one/custody.Address" json:"wallet_id,omitempty"`
}

var _ custody.Msg = (*TriggerEscapeGuardianMsg)(nil)

func (TriggerEscapeGuardianMsg) Path() string {
	return pathTriggerEscapeGuardianMsg
}

func (m *TriggerEscapeGuardianMsg) Validate() error {
	return validateWalletMsg(m.Metadata, m.WalletID)
}

// TriggerEscapeOwnerMsg is sent by the guardian to start replacing the
// owner.
type TriggerEscapeOwnerMsg struct {
	Metadata *custody.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	WalletID custody.Address   `protobuf:"bytes,2,opt,name=wallet_id,json=walletId,proto3,casttype=github.com/iov-one/custody.Address" json:"wallet_id,omitempty"`
}

var _ custody.Msg = (*TriggerEscapeOwnerMsg)(nil)

func (TriggerEscapeOwnerMsg) Path() string {
	return pathTriggerEscapeOwnerMsg
}

func (m *TriggerEscapeOwnerMsg) Validate() error {
	return validateWalletMsg(m.Metadata, m.WalletID)
}

// EscapeGuardianMsg completes a guardian escape.
type EscapeGuardianMsg struct {
	Metadata    *custody.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	WalletID    custody.Address   `protobuf:"bytes,2,opt,name=wallet_id,json=walletId,proto3,casttype=github.com/iov-one/custody.Address" json:"wallet_id,omitempty"`
	NewGuardian custody.Address   `protobuf:"bytes,3,opt,name=new_guardian,json=newGuardian,proto3,casttype=github.com/iov-one/custody.Address" json:"new_guardian,omitempty"`
}

var _ custody.Msg = (*EscapeGuardianMsg)(nil)

func (EscapeGuardianMsg) Path() string {
	return pathEscapeGuardianMsg
}

func (m *EscapeGuardianMsg) Validate() error {
	if err := validateWalletMsg(m.Metadata, m.WalletID); err != nil {
		return err
	}
	if err := m.NewGuardian.Validate(); err != nil {
		return errors.Wrap(err, "new guardian")
	}
	return nil
}

// EscapeOwnerMsg completes an owner escape.
type EscapeOwnerMsg struct {
	Metadata *custody.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	WalletID custody.Address   `protobuf:"bytes,2,opt,name=wallet_id,json=walletId,proto3,casttype=github.com/iov-one/custody.Address" json:"wallet_id,omitempty"`
	NewOwner custody.Address   `protobuf:"bytes,3,opt,name=new_owner,json=newOwner,proto3,casttype=github.com/iov-one/custody.Address" json:"new_owner,omitempty"`
}

var _ custody.Msg = (*EscapeOwnerMsg)(nil)

func (EscapeOwnerMsg) Path() string {
	return pathEscapeOwnerMsg
}

func (m *EscapeOwnerMsg) Validate() error {
	if err := validateWalletMsg(m.Metadata, m.WalletID); err != nil {
		return err
	}
	if err := m.NewOwner.Validate(); err != nil {
		return errors.Wrap(err, "new owner")
	}
	return nil
}

// CancelEscapeMsg aborts the escape in progress.
type CancelEscapeMsg struct {
	Metadata *custody.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	WalletID custody.Address   `protobuf:"bytes,2,opt,name=wallet_id,json=walletId,proto3,casttype=github.com/iov-one/custody.Address" json:"wallet_id,omitempty"`
}

var _ custody.Msg = (*CancelEscapeMsg)(nil)

func (CancelEscapeMsg) Path() string {
	return pathCancelEscapeMsg
}

func (m *CancelEscapeMsg) Validate() error {
	return validateWalletMsg(m.Metadata, m.WalletID)
}

func validateWalletMsg(meta *custody.Metadata, id custody.Address) error {
	if err := meta.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := id.Validate(); err != nil {
		return errors.Wrap(err, "wallet id")
	}
	return nil
}
