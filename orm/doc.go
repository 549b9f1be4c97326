/*
Package orm provides buckets that persist models in a KVStore under a
common key prefix.

A model is anything that can serialize itself and validate its state. A
ModelBucket is bound to one model type and guarantees that only valid
models of that type are written and read back.
*/
package orm
