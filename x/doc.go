/*
Package x contains the authentication abstraction shared by all
extensions.

Handlers never verify signatures themselves. They are given an
Authenticator and ask it which conditions were satisfied for the current
call. The quorum helpers build the fixed signer requirements used by the
wallet and multisig extensions on top of it.
*/
package x
