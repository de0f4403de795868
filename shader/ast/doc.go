// Package ast defines the abstract syntax tree of the shader language:
// a closed, tagged-variant family of Expr and Stmt nodes plus the Type and
// ConstantValue value model they share.
//
// Every Expr/Stmt is a concrete struct implementing a small marker
// interface, favoring exhaustive pattern matching over runtime-polymorphic
// visitor dispatch: callers switch on concrete type rather than calling
// virtual Accept/Visit methods.
//
// Passes do not edit the tree they are handed; stage.Extract's result
// reuses its input's top-level declaration nodes. CloneExpr and CloneStmt
// make deep copies.
package ast
