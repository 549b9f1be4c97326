package wallet

import (
	"math/rand"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
)

func newTestWallet(t testing.TB, state EscapeState, initiatedAt custody.UnixTime) *Wallet {
	t.Helper()
	owner := custodytest.RandomAddr(t)
	guardian := custodytest.RandomAddr(t)
	return &Wallet{
		Metadata:          &custody.Metadata{Schema: 1},
		Owner:             owner,
		Guardian:          guardian,
		EscapeState:       state,
		EscapeInitiatedAt: initiatedAt,
		SecurityPeriod:    100,
		Address:           DeriveAddress(owner, guardian),
	}
}

func TestTriggerEscapeGuardian(t *testing.T) {
	cases := map[string]struct {
		state       EscapeState
		initiatedAt custody.UnixTime
	}{
		"from none":              {state: EscapeNone},
		"restart":                {state: EscapeGuardianInProgress, initiatedAt: 10},
		"pre-empt owner escape":  {state: EscapeOwnerInProgress, initiatedAt: 10},
		"pre-empt elapsed owner": {state: EscapeOwnerInProgress, initiatedAt: 1},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			w := newTestWallet(t, tc.state, tc.initiatedAt)
			w.TriggerEscapeGuardian(500)
			assert.Equal(t, EscapeGuardianInProgress, w.EscapeState)
			assert.Equal(t, custody.UnixTime(500), w.EscapeInitiatedAt)
			assert.Nil(t, w.Validate())
		})
	}
}

func TestTriggerEscapeOwner(t *testing.T) {
	cases := map[string]struct {
		state       EscapeState
		initiatedAt custody.UnixTime
		wantErr     *errors.Error
	}{
		"from none":              {state: EscapeNone},
		"re-arm owner escape":    {state: EscapeOwnerInProgress, initiatedAt: 10},
		"guardian escape active": {state: EscapeGuardianInProgress, initiatedAt: 10, wantErr: ErrEscapeOverrideDenied},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			w := newTestWallet(t, tc.state, tc.initiatedAt)
			err := w.TriggerEscapeOwner(500)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				assert.Equal(t, tc.state, w.EscapeState)
				assert.Equal(t, tc.initiatedAt, w.EscapeInitiatedAt)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, EscapeOwnerInProgress, w.EscapeState)
			assert.Equal(t, custody.UnixTime(500), w.EscapeInitiatedAt)
		})
	}
}

func TestCompleteEscape(t *testing.T) {
	newParty := custodytest.RandomAddr(t)

	cases := map[string]struct {
		state       EscapeState
		initiatedAt custody.UnixTime
		now         custody.UnixTime
		guardian    bool
		wantErr     *errors.Error
	}{
		"guardian escape at the boundary": {
			state: EscapeGuardianInProgress, initiatedAt: 10, now: 110, guardian: true,
		},
		"guardian escape after the boundary": {
			state: EscapeGuardianInProgress, initiatedAt: 10, now: 5000, guardian: true,
		},
		"guardian escape one second early": {
			state: EscapeGuardianInProgress, initiatedAt: 10, now: 109, guardian: true,
			wantErr: ErrEscapeNotReady,
		},
		"guardian escape without trigger": {
			state: EscapeNone, now: 5000, guardian: true,
			wantErr: ErrNoEscapeInProgress,
		},
		"guardian escape while owner escape runs": {
			state: EscapeOwnerInProgress, initiatedAt: 10, now: 5000, guardian: true,
			wantErr: ErrNoEscapeInProgress,
		},
		"owner escape at the boundary": {
			state: EscapeOwnerInProgress, initiatedAt: 10, now: 110,
		},
		"owner escape one second early": {
			state: EscapeOwnerInProgress, initiatedAt: 10, now: 109,
			wantErr: ErrEscapeNotReady,
		},
		"owner escape without trigger": {
			state: EscapeNone, now: 5000,
			wantErr: ErrNoEscapeInProgress,
		},
		"owner escape while guardian escape runs": {
			state: EscapeGuardianInProgress, initiatedAt: 10, now: 5000,
			wantErr: ErrNoEscapeInProgress,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			w := newTestWallet(t, tc.state, tc.initiatedAt)
			before := *w

			var err error
			if tc.guardian {
				err = w.EscapeGuardian(tc.now, newParty)
			} else {
				err = w.EscapeOwner(tc.now, newParty)
			}
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				assert.Equal(t, before, *w)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, EscapeNone, w.EscapeState)
			assert.Equal(t, custody.UnixTime(0), w.EscapeInitiatedAt)
			if tc.guardian {
				assert.Equal(t, newParty, w.Guardian)
				assert.Equal(t, before.Owner, w.Owner)
			} else {
				assert.Equal(t, newParty, w.Owner)
				assert.Equal(t, before.Guardian, w.Guardian)
			}
		})
	}
}

func TestCancelEscape(t *testing.T) {
	w := newTestWallet(t, EscapeNone, 0)
	assert.IsErr(t, ErrNoEscapeInProgress, w.CancelEscape())

	w.TriggerEscapeGuardian(20)
	assert.Nil(t, w.CancelEscape())
	assert.Equal(t, EscapeNone, w.EscapeState)
	assert.Equal(t, custody.UnixTime(0), w.EscapeInitiatedAt)

	assert.Nil(t, w.TriggerEscapeOwner(30))
	assert.Nil(t, w.CancelEscape())
	assert.Equal(t, EscapeNone, w.EscapeState)
}

// TestEscapeInvariant runs random transitions and checks that the escape
// timestamp is set exactly when an escape is in progress.
func TestEscapeInvariant(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	w := newTestWallet(t, EscapeNone, 0)
	now := custody.UnixTime(1)

	for i := 0; i < 1000; i++ {
		now += custody.UnixTime(rnd.Intn(60))
		switch rnd.Intn(5) {
		case 0:
			w.TriggerEscapeGuardian(now)
		case 1:
			_ = w.TriggerEscapeOwner(now)
		case 2:
			_ = w.EscapeGuardian(now, custodytest.RandomAddr(t))
		case 3:
			_ = w.EscapeOwner(now, custodytest.RandomAddr(t))
		case 4:
			_ = w.CancelEscape()
		}
		if (w.EscapeState == EscapeNone) != (w.EscapeInitiatedAt == 0) {
			t.Fatalf("step %d: escape %s initiated at %d", i, w.EscapeState, w.EscapeInitiatedAt)
		}
		assert.Nil(t, w.Validate())
	}
}

func TestWalletValidate(t *testing.T) {
	cases := map[string]struct {
		mutate  func(*Wallet)
		wantErr *errors.Error
	}{
		"valid": {
			mutate: func(*Wallet) {},
		},
		"state without timestamp": {
			mutate:  func(w *Wallet) { w.EscapeState = EscapeOwnerInProgress },
			wantErr: errors.ErrState,
		},
		"timestamp without state": {
			mutate:  func(w *Wallet) { w.EscapeInitiatedAt = 4 },
			wantErr: errors.ErrState,
		},
		"unknown state": {
			mutate: func(w *Wallet) {
				w.EscapeState = 7
				w.EscapeInitiatedAt = 4
			},
			wantErr: errors.ErrState,
		},
		"partially approved pending tx": {
			mutate:  func(w *Wallet) { w.PendingTx = &PendingTx{OwnerApproved: true} },
			wantErr: errors.ErrState,
		},
		"zero security period": {
			mutate:  func(w *Wallet) { w.SecurityPeriod = 0 },
			wantErr: ErrInvalidSecurityPeriod,
		},
		"missing guardian": {
			mutate:  func(w *Wallet) { w.Guardian = nil },
			wantErr: errors.ErrInput,
		},
		"invalid backup": {
			mutate:  func(w *Wallet) { w.GuardianBackup = custody.Address("short") },
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			w := newTestWallet(t, EscapeNone, 0)
			tc.mutate(w)
			if tc.wantErr == nil {
				assert.Nil(t, w.Validate())
				return
			}
			assert.IsErr(t, tc.wantErr, w.Validate())
		})
	}
}
