package custody

// DeliverResult captures any non-error result of a delivered transaction.
type DeliverResult struct {
	// Data is a machine-parseable return value, like the address of a
	// created entity.
	Data []byte
	// Log is a human-readable informational string.
	Log string
}

// CheckResult captures any non-error result of a checked transaction.
type CheckResult struct {
	// Data is a machine-parseable return value.
	Data []byte
	// Log is a human-readable informational string.
	Log string
}
