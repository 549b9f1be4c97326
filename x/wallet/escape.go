package wallet

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// The functions below only change the wallet when they succeed. Signer
// checks are done by the handlers.

// TriggerEscapeGuardian starts replacing the guardian. It always
// succeeds, pre-empting any escape in progress.
func (w *Wallet) TriggerEscapeGuardian(now custody.UnixTime) {
	w.EscapeState = EscapeGuardianInProgress
	w.EscapeInitiatedAt = now
}

// TriggerEscapeOwner starts replacing the owner, or restarts the clock of
// an owner escape already in progress. It cannot pre-empt a guardian
// escape.
func (w *Wallet) TriggerEscapeOwner(now custody.UnixTime) error {
	switch w.EscapeState {
	case EscapeGuardianInProgress:
		return errors.Wrap(ErrEscapeOverrideDenied, "guardian escape in progress")
	case EscapeNone, EscapeOwnerInProgress:
		w.EscapeState = EscapeOwnerInProgress
		w.EscapeInitiatedAt = now
		return nil
	default:
		return w.EscapeState.Validate()
	}
}

// EscapeGuardian completes a guardian escape.
func (w *Wallet) EscapeGuardian(now custody.UnixTime, newGuardian custody.Address) error {
	if err := w.escapeReady(now, EscapeGuardianInProgress); err != nil {
		return err
	}
	w.Guardian = newGuardian
	w.resetEscape()
	return nil
}

// EscapeOwner completes an owner escape.
func (w *Wallet) EscapeOwner(now custody.UnixTime, newOwner custody.Address) error {
	if err := w.escapeReady(now, EscapeOwnerInProgress); err != nil {
		return err
	}
	w.Owner = newOwner
	w.resetEscape()
	return nil
}

// CancelEscape aborts the escape in progress. Cancelling with no escape in
// progress is an error.
func (w *Wallet) CancelEscape() error {
	if w.EscapeState == EscapeNone {
		return errors.Wrap(ErrNoEscapeInProgress, "nothing to cancel")
	}
	w.resetEscape()
	return nil
}

// EscapeReadyAt returns the first time at which the escape in progress can
// be completed.
func (w *Wallet) EscapeReadyAt() custody.UnixTime {
	return w.EscapeInitiatedAt + custody.UnixTime(w.SecurityPeriod)
}

func (w *Wallet) escapeReady(now custody.UnixTime, want EscapeState) error {
	if w.EscapeState != want {
		return errors.Wrapf(ErrNoEscapeInProgress, "want %s, got %s", want, w.EscapeState)
	}
	if readyAt := w.EscapeReadyAt(); now < readyAt {
		return errors.Wrapf(ErrEscapeNotReady, "ready at %d, now %d", readyAt, now)
	}
	return nil
}

func (w *Wallet) resetEscape() {
	w.EscapeState = EscapeNone
	w.EscapeInitiatedAt = 0
}
