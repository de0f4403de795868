// Package writer renders a preprocessed, stage-extracted declaration list
// back out as GLSL-family shader source text: one Write call per stage,
// consuming exactly the subset of declarations stage.Extract already
// narrowed to that stage's entry function.
//
// It assumes its input has already been through preprocess.Process and
// stage.Extract: every OptionalStmt and compile-time-resolvable
// ConditionalStmt is expected to be gone, and only the declarations
// reachable from the target stage's entry function are expected to be
// present. Remaining ConditionalStmt nodes are genuine runtime branches
// and are written as an ordinary if/else-if/else chain.
package writer
