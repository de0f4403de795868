// Package preprocess resolves compile-time options and prunes
// conditional/optional code before a tree reaches stage extraction.
//
// Processing never fails: an option or branch condition that cannot be
// folded to a constant is left in the tree unresolved rather than
// reported as an error, so later passes (or a human reading generated
// source) still see it. The one thing process guarantees is that it
// produces a tree with no OptionalStmt or dead ConditionalStmt branch
// left over once every condition involved was in fact foldable.
package preprocess
