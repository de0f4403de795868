// Package stage extracts the declarations reachable from a single
// entry function: the transitive call graph of functions it invokes,
// the inputs/outputs/externals they actually read or write, and the
// structs named by those functions' signatures and locals and by those
// variables' types.
//
// Reachability is the only filter a declaration needs: since a single
// input or output declaration in this tree carries no stage tag of its
// own, a vertex-only variable simply never gets reached from a fragment
// entry function's body and is dropped by construction, with no special
// casing required.
package stage
