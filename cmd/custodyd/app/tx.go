package app

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/multisig"
	"github.com/iov-one/custody/x/sigs"
	"github.com/iov-one/custody/x/wallet"
)

// Tx is the transaction envelope of the custody chain. Exactly one message
// field must be set.
type Tx struct {
	Signatures []*sigs.StdSignature `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`

	CreateWalletMsg          *wallet.CreateMsg                `protobuf:"bytes,10,opt,name=create_wallet_msg,json=createWalletMsg,proto3" json:"create_wallet_msg,omitempty"`
	ExecuteWalletMsg         *wallet.ExecuteMsg               `protobuf:"bytes,11,opt,name=execute_wallet_msg,json=executeWalletMsg,proto3" json:"execute_wallet_msg,omitempty"`
	ChangeOwnerMsg           *wallet.ChangeOwnerMsg           `protobuf:"bytes,12,opt,name=change_owner_msg,json=changeOwnerMsg,proto3" json:"change_owner_msg,omitempty"`
	ChangeGuardianMsg        *wallet.ChangeGuardianMsg        `protobuf:"bytes,13,opt,name=change_guardian_msg,json=changeGuardianMsg,proto3" json:"change_guardian_msg,omitempty"`
	ChangeGuardianBackupMsg  *wallet.ChangeGuardianBackupMsg  `protobuf:"bytes,14,opt,name=change_guardian_backup_msg,json=changeGuardianBackupMsg,proto3" json:"change_guardian_backup_msg,omitempty"`
	UpgradeMsg               *wallet.UpgradeMsg               `protobuf:"bytes,15,opt,name=upgrade_msg,json=upgradeMsg,proto3" json:"upgrade_msg,omitempty"`
	TriggerEscapeGuardianMsg *wallet.TriggerEscapeGuardianMsg `protobuf:"bytes,16,opt,name=trigger_escape_guardian_msg,json=triggerEscapeGuardianMsg,proto3" json:"trigger_escape_guardian_msg,omitempty"`
	TriggerEscapeOwnerMsg    *wallet.TriggerEscapeOwnerMsg    `protobuf:"bytes,17,opt,name=trigger_escape_owner_msg,json=triggerEscapeOwnerMsg,proto3" json:"trigger_escape_owner_msg,omitempty"`
	EscapeGuardianMsg        *wallet.EscapeGuardianMsg        `protobuf:"bytes,18,opt,name=escape_guardian_msg,json=escapeGuardianMsg,proto3" json:"escape_guardian_msg,omitempty"`
	EscapeOwnerMsg           *wallet.EscapeOwnerMsg           `protobuf:"bytes,19,opt,name=escape_owner_msg,json=escapeOwnerMsg,proto3" json:"escape_owner_msg,omitempty"`
	CancelEscapeMsg          *wallet.CancelEscapeMsg          `protobuf:"bytes,20,opt,name=cancel_escape_msg,json=cancelEscapeMsg,proto3" json:"cancel_escape_msg,omitempty"`

	UpdateWalletConfigurationMsg *wallet.UpdateConfigurationMsg `protobuf:"bytes,21,opt,name=update_wallet_configuration_msg,json=updateWalletConfigurationMsg,proto3" json:"update_wallet_configuration_msg,omitempty"`

	CreateMultisigMsg  *multisig.CreateMsg  `protobuf:"bytes,30,opt,name=create_multisig_msg,json=createMultisigMsg,proto3" json:"create_multisig_msg,omitempty"`
	ApproveMultisigMsg *multisig.ApproveMsg `protobuf:"bytes,31,opt,name=approve_multisig_msg,json=approveMultisigMsg,proto3" json:"approve_multisig_msg,omitempty"`
	ExecuteMultisigMsg *multisig.ExecuteMsg `protobuf:"bytes,32,opt,name=execute_multisig_msg,json=executeMultisigMsg,proto3" json:"execute_multisig_msg,omitempty"`
}

// TxDecoder creates a Tx and unmarshals bytes into it.
func TxDecoder(bz []byte) (custody.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return tx, nil
}

// make sure tx fulfills all interfaces
var _ custody.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// GetMsg returns the single message carried by the transaction.
func (tx *Tx) GetMsg() (custody.Msg, error) {
	msgs := tx.messages()
	switch len(msgs) {
	case 0:
		return nil, errors.Wrap(errors.ErrInput, "transaction carries no message")
	case 1:
		return msgs[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "transaction carries %d messages", len(msgs))
	}
}

func (tx *Tx) messages() []custody.Msg {
	var msgs []custody.Msg
	add := func(set bool, m custody.Msg) {
		if set {
			msgs = append(msgs, m)
		}
	}
	add(tx.CreateWalletMsg != nil, tx.CreateWalletMsg)
	add(tx.ExecuteWalletMsg != nil, tx.ExecuteWalletMsg)
	add(tx.ChangeOwnerMsg != nil, tx.ChangeOwnerMsg)
	add(tx.ChangeGuardianMsg != nil, tx.ChangeGuardianMsg)
	add(tx.ChangeGuardianBackupMsg != nil, tx.ChangeGuardianBackupMsg)
	add(tx.UpgradeMsg != nil, tx.UpgradeMsg)
	add(tx.TriggerEscapeGuardianMsg != nil, tx.TriggerEscapeGuardianMsg)
	add(tx.TriggerEscapeOwnerMsg != nil, tx.TriggerEscapeOwnerMsg)
	add(tx.EscapeGuardianMsg != nil, tx.EscapeGuardianMsg)
	add(tx.EscapeOwnerMsg != nil, tx.EscapeOwnerMsg)
	add(tx.CancelEscapeMsg != nil, tx.CancelEscapeMsg)
	add(tx.UpdateWalletConfigurationMsg != nil, tx.UpdateWalletConfigurationMsg)
	add(tx.CreateMultisigMsg != nil, tx.CreateMultisigMsg)
	add(tx.ApproveMultisigMsg != nil, tx.ApproveMultisigMsg)
	add(tx.ExecuteMultisigMsg != nil, tx.ExecuteMultisigMsg)
	return msgs
}

// SetMsg sets the message field matching the type of given message. Any
// previously set message is cleared.
func (tx *Tx) SetMsg(msg custody.Msg) error {
	*tx = Tx{Signatures: tx.Signatures}

	switch m := msg.(type) {
	case *wallet.CreateMsg:
		tx.CreateWalletMsg = m
	case *wallet.ExecuteMsg:
		tx.ExecuteWalletMsg = m
	case *wallet.ChangeOwnerMsg:
		tx.ChangeOwnerMsg = m
	case *wallet.ChangeGuardianMsg:
		tx.ChangeGuardianMsg = m
	case *wallet.ChangeGuardianBackupMsg:
		tx.ChangeGuardianBackupMsg = m
	case *wallet.UpgradeMsg:
		tx.UpgradeMsg = m
	case *wallet.TriggerEscapeGuardianMsg:
		tx.TriggerEscapeGuardianMsg = m
	case *wallet.TriggerEscapeOwnerMsg:
		tx.TriggerEscapeOwnerMsg = m
	case *wallet.EscapeGuardianMsg:
		tx.EscapeGuardianMsg = m
	case *wallet.EscapeOwnerMsg:
		tx.EscapeOwnerMsg = m
	case *wallet.CancelEscapeMsg:
		tx.CancelEscapeMsg = m
	case *wallet.UpdateConfigurationMsg:
		tx.UpdateWalletConfigurationMsg = m
	case *multisig.CreateMsg:
		tx.CreateMultisigMsg = m
	case *multisig.ApproveMsg:
		tx.ApproveMultisigMsg = m
	case *multisig.ExecuteMsg:
		tx.ExecuteMultisigMsg = m
	default:
		return errors.Wrapf(errors.ErrType, "unsupported message %T", msg)
	}
	return nil
}

// GetSignBytes returns the serialized transaction without signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// The sign bytes must come from the data itself, not from previous
	// signatures.
	sigs := tx.Signatures
	tx.Signatures = nil
	bz, err := tx.Marshal()
	tx.Signatures = sigs
	return bz, err
}

// GetSignatures returns the signatures attached to the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}
