// Package lexer turns shader source text into a flat token stream for
// the parser. It knows nothing about grammar: keywords are recognized by
// spelling only, and it is the parser's job to decide whether a
// particular keyword is legal at a particular point.
package lexer
