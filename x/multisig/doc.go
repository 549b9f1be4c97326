/*
Package multisig implements a symmetric two-party account.

Both owners have equal rank. Each approves independently, and the guarded
action can be executed only once both approvals are recorded. Approvals
are never reset, so an account that has been approved by both owners can
be executed any number of times.

The account address is derived from the ordered pair of owners, so
swapping the owners results in a different account.
*/
package multisig
