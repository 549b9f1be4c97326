/*
Package errors implements the error taxonomy shared by every custody
extension.

Each class of failure is a root error registered once with a unique ABCI code
(see Register). Call sites never return a root error alone when there is
something useful to add: wrap it with the context of the failure

	return errors.Wrap(errors.ErrUnauthorized, "guardian signature missing")

and let callers test for the class with the Is method

	if errors.ErrUnauthorized.Is(err) { ... }

Extensions that need their own classes (for example x/wallet escape errors)
register them in their own package using codes from a range they own.

The innermost Wrap attaches a stack trace. Format a wrapped error with %+v to
print it.
*/
package errors
