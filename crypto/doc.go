/*
Package crypto provides the ed25519 keys used to sign custody transactions
and the attestations a key holder produces to consent to taking a role.

A public key is represented in the authentication layer by a condition

	sigs/ed25519/<public key bytes>

and its address is the address of that condition.
*/
package crypto
