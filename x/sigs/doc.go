/*
Package sigs provides authentication middleware that verifies the
signatures on a transaction and maintains per key sequence numbers for
replay protection.

Every verified signature turns into a signer condition

	sigs/ed25519/<public key>

that handlers can query using the Authenticate type.
*/
package sigs
