// Package custodytest provides test doubles for writing handler and
// decorator tests without running the full application stack.
package custodytest
