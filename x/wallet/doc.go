/*
Package wallet implements a dual-control account.

A wallet is controlled by an owner and a guardian. Most operations require
both of them to sign the same transaction. When one party is unavailable,
the other can start an escape: a timelocked procedure that replaces the
missing party once the security period of the wallet has elapsed.

The owner outranks the guardian. An owner escape (replacing the guardian)
can always be started and pre-empts a guardian escape in progress, while
the guardian cannot start an escape while the owner's one is active.
Cancelling an escape requires both signatures.

A guardian backup can be registered, but it is never consulted when
authorizing a call.
*/
package wallet
