/*
Package gconf implements a configuration store intended to be used as a
global, in-database configuration.

Each extension keeps at most one configuration entity, stored under a key
derived from the extension name. A configuration is loaded from the
genesis file and can later be patched by its owner using an update
message.
*/
package gconf
