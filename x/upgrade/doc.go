// Package upgrade records code replacements of wallets.
//
// Each wallet has at most one Deployment, holding the hash of the current
// artifact and a version incremented on every upgrade. Authorization is
// done by the wallet extension before the Upgrader is called.
package upgrade
