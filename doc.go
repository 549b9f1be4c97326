/*
Package custody defines the common interfaces that tie together the custody
extensions, as well as the simple types shared by all of them.

Handlers, decorators and the application communicate through a
context.Context. This package defines the keys used to store the common
information in it (block height, block time, chain id, logger). For every
value XYZ of type T there is a pair of functions

	WithXYZ(Context, T) Context
	GetXYZ(Context) (T, ...)

Extensions, such as x/sigs, add their own keys to enrich the context with
authentication data.
*/
package custody
