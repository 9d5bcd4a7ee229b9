// Package steps defines import steps and the behaviors of every step kind.
//
// A Step couples a Target with a kind specific Params value. Params is a
// closed set of variants selected by Kind: rename, move, create_prefab,
// create_material, postprocess_mesh and unify_suffix. Every Params value
// applies itself to an imported object through Apply. Kinds whose effect
// needs the finished asset on disk also implement Completer: their Apply
// only queues the step with the Context's Deferrer and the real work runs in
// Complete once the import batch has finished.
//
// Params are persisted as flat field name to value maps (see EncodeParams
// and DecodeParams) so fields can be added or removed between versions.
package steps
