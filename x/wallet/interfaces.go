package wallet

import "github.com/iov-one/custody"

// Upgrader replaces the code of a wallet. It is called only after both the
// owner and the guardian authorized the upgrade.
type Upgrader interface {
	Upgrade(ctx custody.Context, db custody.KVStore, wallet custody.Address, artifact []byte) error
}

// ProofVerifier verifies that proof was produced by signer over message.
type ProofVerifier interface {
	Verify(signer custody.Address, message, proof []byte) bool
}
