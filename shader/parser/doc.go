// Package parser builds an ast.Stmt list (a translation unit: struct,
// input, output, external, option, include and function declarations) out
// of a lexer.Token stream.
//
// It is a straightforward recursive-descent parser: one method per
// production, one method per binary precedence level, and a single
// lookahead token, except at the start of a statement, where
// isDeclarationStart parses a type speculatively and backtracks. Grammar
// decisions the lexer cannot make (does "vec3" open a declaration or a
// constructor call) are resolved here, not in the lexer.
package parser
