package wallet

import (
	"fmt"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

const (
	// BucketName is where the wallets are stored.
	BucketName = "wallets"

	// DefaultSecurityPeriod is used when neither the creation message nor
	// the configuration provide one. Seven days, in seconds.
	DefaultSecurityPeriod int64 = 7 * 24 * 60 * 60

	// maxSecurityPeriod keeps initiatedAt + period far from overflowing.
	maxSecurityPeriod int64 = 100 * 365 * 24 * 60 * 60
)

// EscapeState is the state of the escape procedure of a wallet.
type EscapeState int32

const (
	// EscapeNone means no escape is in progress.
	EscapeNone EscapeState = 0
	// EscapeGuardianInProgress means the owner is replacing the guardian.
	EscapeGuardianInProgress EscapeState = 1
	// EscapeOwnerInProgress means the guardian is replacing the owner.
	EscapeOwnerInProgress EscapeState = 2
)

func (s EscapeState) String() string {
	switch s {
	case EscapeNone:
		return "none"
	case EscapeGuardianInProgress:
		return "guardian_escape"
	case EscapeOwnerInProgress:
		return "owner_escape"
	default:
		return fmt.Sprintf("EscapeState(%d)", int32(s))
	}
}

// Validate returns an error if the state is not one of the known values.
func (s EscapeState) Validate() error {
	switch s {
	case EscapeNone, EscapeGuardianInProgress, EscapeOwnerInProgress:
		return nil
	default:
		return errors.Wrapf(errors.ErrState, "unknown escape state %d", int32(s))
	}
}

// PendingTx is the intent recorded by the latest dual-signed execution.
type PendingTx struct {
	Data             []byte `protobuf:"bytes,1,opt,name=data,proto3" json:"data,omitempty"`
	OwnerApproved    bool   `protobuf:"varint,2,opt,name=owner_approved,json=ownerApproved,proto3" json:"owner_approved,omitempty"`
	GuardianApproved bool   `protobuf:"varint,3,opt,name=guardian_approved,json=guardianApproved,proto3" json:"guardian_approved,omitempty"`
}

// Wallet is a dual-control account.
type Wallet struct {
	Metadata *custody.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Owner    custody.Address   `protobuf:"bytes,2,opt,name=owner,proto3,casttype=github.com/iov-one/custody.Address" json:"owner,omitempty"`
	Guardian custody.Address   `protobuf:"bytes,3,opt,name=guardian,proto3,casttype=github.com/iov-one/custody.Address" json:"guardian,omitempty"`
	// GuardianBackup is stored but never consulted.
	GuardianBackup    custody.Address  `protobuf:"bytes,4,opt,name=guardian_backup,json=guardianBackup,proto3,casttype=github.com/iov-one/custody.Address" json:"guardian_backup,omitempty"`
	EscapeState       EscapeState      `protobuf:"varint,5,opt,name=escape_state,json=escapeState,proto3" json:"escape_state,omitempty"`
	EscapeInitiatedAt custody.UnixTime `protobuf:"varint,6,opt,name=escape_initiated_at,json=escapeInitiatedAt,proto3,casttype=github.com/iov-one/custody.UnixTime" json:"escape_initiated_at,omitempty"`
	// SecurityPeriod is in seconds and never changes.
	SecurityPeriod int64      `protobuf:"varint,7,opt,name=security_period,json=securityPeriod,proto3" json:"security_period,omitempty"`
	PendingTx      *PendingTx `protobuf:"bytes,8,opt,name=pending_tx,json=pendingTx,proto3" json:"pending_tx,omitempty"`
	// Address is derived from the initial owner and guardian.
	Address custody.Address `protobuf:"bytes,9,opt,name=address,proto3,casttype=github.com/iov-one/custody.Address" json:"address,omitempty"`
}

var _ orm.Model = (*Wallet)(nil)

// Validate ensures the wallet is consistent.
func (w *Wallet) Validate() error {
	if err := w.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := w.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := w.Guardian.Validate(); err != nil {
		return errors.Wrap(err, "guardian")
	}
	if len(w.GuardianBackup) != 0 {
		if err := w.GuardianBackup.Validate(); err != nil {
			return errors.Wrap(err, "guardian backup")
		}
	}
	if err := validateSecurityPeriod(w.SecurityPeriod); err != nil {
		return err
	}
	if err := w.EscapeState.Validate(); err != nil {
		return err
	}
	if err := w.EscapeInitiatedAt.Validate(); err != nil {
		return errors.Wrap(err, "escape initiated at")
	}
	if (w.EscapeState == EscapeNone) != (w.EscapeInitiatedAt == 0) {
		return errors.Wrapf(errors.ErrState, "escape %s initiated at %d", w.EscapeState, w.EscapeInitiatedAt)
	}
	if p := w.PendingTx; p != nil && !(p.OwnerApproved && p.GuardianApproved) {
		return errors.Wrap(errors.ErrState, "pending transaction not approved by both parties")
	}
	if err := w.Address.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	return nil
}

func validateSecurityPeriod(p int64) error {
	if p <= 0 || p > maxSecurityPeriod {
		return errors.Wrapf(ErrInvalidSecurityPeriod, "%d", p)
	}
	return nil
}

// Condition returns the condition of a wallet created for given owner and
// guardian. The order matters.
func Condition(owner, guardian custody.Address) custody.Condition {
	data := make([]byte, 0, len(owner)+len(guardian))
	data = append(data, owner...)
	data = append(data, guardian...)
	return custody.NewCondition("wallet", "dual", data)
}

// DeriveAddress returns the address of a wallet created for given owner
// and guardian.
func DeriveAddress(owner, guardian custody.Address) custody.Address {
	return Condition(owner, guardian).Address()
}

// NewBucket returns the bucket holding wallets, keyed by their address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Wallet{})
}

// RegisterQuery registers the wallet bucket as "/wallets".
func RegisterQuery(qr custody.QueryRouter) {
	NewBucket().Register("wallets", qr)
}
