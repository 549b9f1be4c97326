/*
Package app contains the application runtime: message routing, decorator
chaining and BaseApp, which decodes transactions, runs them through the
handler stack and commits the result.

Every delivered transaction is committed on its own, so the height grows
by one with every successful DeliverTx. A failed transaction leaves no
trace in the store.
*/
package app
