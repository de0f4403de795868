// Package eval folds constant shader expressions to concrete values.
//
// Evaluate only ever succeeds on the subset of ast.Expr that is knowable
// without a runtime: literals, and unary/binary/ternary combinations of
// constants. Anything touching a variable, a function call or an access
// expression is, by construction, not a compile-time constant, and
// Evaluate reports that with its second return value rather than
// panicking or guessing.
package eval
