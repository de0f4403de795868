package parser

import (
	"fmt"

	"github.com/gogpu/forge/gputypes"
	"github.com/gogpu/forge/shader/ast"
	"github.com/gogpu/forge/shader/ast/eval"
	"github.com/gogpu/forge/shader/lexer"
)

// SyntaxError reports a parse failure with its source position.
type SyntaxError struct {
	Line, Column int
	Msg          string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
}

// Parse tokenizes and parses src into a flat list of top-level
// declarations (struct, input, output, external, option, include and
// function declarations), in source order.
func Parse(src string) ([]ast.Stmt, error) {
	toks, err := lexer.Lex(src)
	if err != nil {
		return nil, err
	}
	return ParseTokens(toks)
}

// ParseTokens parses an already-lexed token stream, as produced by
// lexer.Lex.
func ParseTokens(toks []lexer.Token) ([]ast.Stmt, error) {
	p := &parser{toks: toks}
	var decls []ast.Stmt
	for !p.atEOF() {
		d, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		decls = append(decls, d)
	}
	return decls, nil
}

type parser struct {
	toks []lexer.Token
	pos  int
}

func (p *parser) cur() lexer.Token  { return p.toks[p.pos] }
func (p *parser) atEOF() bool       { return p.cur().Type == lexer.TokenEOF }
func (p *parser) advance() lexer.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) errorf(format string, args ...any) error {
	t := p.cur()
	return &SyntaxError{Line: t.Line, Column: t.Column, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) isKeyword(kw string) bool {
	t := p.cur()
	return t.Type == lexer.TokenKeyword && t.Text == kw
}

func (p *parser) isSymbol(sym string) bool {
	t := p.cur()
	return t.Type == lexer.TokenSymbol && t.Text == sym
}

func (p *parser) expectKeyword(kw string) error {
	if !p.isKeyword(kw) {
		return p.errorf("expected keyword %q, got %q", kw, p.cur().Text)
	}
	p.advance()
	return nil
}

func (p *parser) expectSymbol(sym string) error {
	if !p.isSymbol(sym) {
		return p.errorf("expected %q, got %q", sym, p.cur().Text)
	}
	p.advance()
	return nil
}

func (p *parser) expectIdentifier() (string, error) {
	t := p.cur()
	if t.Type != lexer.TokenIdentifier {
		return "", p.errorf("expected identifier, got %q", t.Text)
	}
	p.advance()
	return t.Text, nil
}

func (p *parser) expectInt() (int, error) {
	t := p.cur()
	if t.Type != lexer.TokenIntLiteral && t.Type != lexer.TokenUIntLiteral {
		return 0, p.errorf("expected integer literal, got %q", t.Text)
	}
	p.advance()
	return int(t.Int), nil
}

// primitiveNames maps a scalar type keyword to the PrimitiveKind it names.
// Vector and matrix keywords are handled by vectorKeywords and
// matrixKeyword; their arity is encoded in the spelling (vec3, mat4, ...).
var primitiveNames = map[string]ast.PrimitiveKind{
	"bool": ast.PrimitiveBool, "int": ast.PrimitiveInt,
	"uint": ast.PrimitiveUint, "float": ast.PrimitiveFloat,
}

// startsType reports whether the current token could begin a type name:
// a type keyword, or an identifier (a struct name). Used where a type is
// expected unconditionally (parseType itself) or where the alternative is
// already excluded (a constructor call in expression position).
func (p *parser) startsType() bool {
	t := p.cur()
	if t.Type == lexer.TokenIdentifier {
		return true
	}
	return t.Type == lexer.TokenKeyword && typeKeyword(t.Text)
}

func typeKeyword(s string) bool {
	switch s {
	case "bool", "int", "uint", "float", "void",
		"vec2", "vec3", "vec4", "mat2", "mat3", "mat4",
		"ivec2", "ivec3", "ivec4", "uvec2", "uvec3", "uvec4",
		"bvec2", "bvec3", "bvec4",
		"sampler2D", "sampler3D", "samplerCube":
		return true
	}
	return false
}

// isDeclarationStart decides, at the start of a statement, whether the
// upcoming tokens spell a variable declaration rather than an expression
// statement (a bare call "foo();", an assignment "a = 5;", or a
// constructor expression "vec3(a, b, c);"). Type keywords and struct
// names are also valid as the leading token of an expression (a
// constructor call), so spelling alone does not disambiguate "Type name"
// from "Type(args)" or "name = expr" — only a declaration is followed by
// a second identifier before the statement's terminating ";", so this
// speculatively parses a type and checks what follows it, then backtracks
// either way.
func (p *parser) isDeclarationStart() bool {
	if !p.startsType() {
		return false
	}
	save := p.pos
	_, err := p.parseType()
	isDecl := err == nil && p.cur().Type == lexer.TokenIdentifier
	p.pos = save
	return isDecl
}

func (p *parser) parseType() (ast.Type, error) {
	t := p.cur()
	var base ast.Type
	switch {
	case t.Type == lexer.TokenKeyword && t.Text == "void":
		p.advance()
		base = ast.Void
	case t.Type == lexer.TokenKeyword && primitiveKeyword(t.Text):
		p.advance()
		base = ast.Primitive(primitiveNames[t.Text])
	case t.Type == lexer.TokenKeyword && vectorKeyword(t.Text):
		p.advance()
		base = ast.Vector(vectorPrimitive(t.Text), vectorArity(t.Text))
	case t.Type == lexer.TokenKeyword && matrixKeyword(t.Text):
		p.advance()
		n := matrixArity(t.Text)
		base = ast.Matrix(ast.PrimitiveFloat, n, n)
	case t.Type == lexer.TokenKeyword && t.Text == "sampler2D":
		p.advance()
		base = ast.Sampler(ast.Sampler2D, ast.PrimitiveFloat)
	case t.Type == lexer.TokenKeyword && t.Text == "sampler3D":
		p.advance()
		base = ast.Sampler(ast.Sampler3D, ast.PrimitiveFloat)
	case t.Type == lexer.TokenKeyword && t.Text == "samplerCube":
		p.advance()
		base = ast.Sampler(ast.SamplerCube, ast.PrimitiveFloat)
	case t.Type == lexer.TokenIdentifier:
		p.advance()
		base = ast.Struct(t.Text)
	default:
		return ast.Type{}, p.errorf("expected a type, got %q", t.Text)
	}

	for p.isSymbol("[") {
		p.advance()
		if p.isSymbol("]") {
			p.advance()
			base = ast.ArrayImplicit(base)
			continue
		}
		if p.cur().Type == lexer.TokenIdentifier {
			name, _ := p.expectIdentifier()
			if err := p.expectSymbol("]"); err != nil {
				return ast.Type{}, err
			}
			base = ast.ArrayOption(base, name)
			continue
		}
		size, err := p.expectInt()
		if err != nil {
			return ast.Type{}, err
		}
		if err := p.expectSymbol("]"); err != nil {
			return ast.Type{}, err
		}
		base = ast.ArrayConstant(base, size)
	}
	return base, nil
}

func primitiveKeyword(s string) bool {
	_, ok := primitiveNames[s]
	return ok
}

// vectorKeywords maps every vector type spelling to its component
// primitive: bare "vecN" is a float vector, "ivecN"/"uvecN"/"bvecN" carry
// an explicit component type, mirroring the scalar primitive keywords.
var vectorKeywords = map[string]ast.PrimitiveKind{
	"vec2": ast.PrimitiveFloat, "vec3": ast.PrimitiveFloat, "vec4": ast.PrimitiveFloat,
	"ivec2": ast.PrimitiveInt, "ivec3": ast.PrimitiveInt, "ivec4": ast.PrimitiveInt,
	"uvec2": ast.PrimitiveUint, "uvec3": ast.PrimitiveUint, "uvec4": ast.PrimitiveUint,
	"bvec2": ast.PrimitiveBool, "bvec3": ast.PrimitiveBool, "bvec4": ast.PrimitiveBool,
}

func vectorKeyword(s string) bool {
	_, ok := vectorKeywords[s]
	return ok
}

func vectorPrimitive(s string) ast.PrimitiveKind { return vectorKeywords[s] }

func vectorArity(s string) int {
	switch s[len(s)-1] {
	case '2':
		return 2
	case '3':
		return 3
	default:
		return 4
	}
}

func matrixKeyword(s string) bool { return s == "mat2" || s == "mat3" || s == "mat4" }
func matrixArity(s string) int {
	switch s {
	case "mat2":
		return 2
	case "mat3":
		return 3
	default:
		return 4
	}
}

var stageKeywords = map[string]gputypes.ShaderStage{
	"vertex":      gputypes.ShaderStageVertex,
	"fragment":    gputypes.ShaderStageFragment,
	"compute":     gputypes.ShaderStageCompute,
	"tesscontrol": gputypes.ShaderStageTessellationControl,
	"tesseval":    gputypes.ShaderStageTessellationEvaluation,
	"geometry":    gputypes.ShaderStageGeometry,
}

func (p *parser) parseDeclaration() (ast.Stmt, error) {
	switch {
	case p.isKeyword("struct"):
		return p.parseStruct()
	case p.isKeyword("input"):
		return p.parseInOut(true)
	case p.isKeyword("output"):
		return p.parseInOut(false)
	case p.isKeyword("external"):
		return p.parseExternal()
	case p.isKeyword("option"):
		return p.parseOption()
	case p.isKeyword("include"):
		return p.parseInclude()
	default:
		return p.parseFunction()
	}
}

func (p *parser) parseStruct() (ast.Stmt, error) {
	p.advance()
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol("{"); err != nil {
		return nil, err
	}
	var members []ast.StructMember
	for !p.isSymbol("}") {
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		memberName, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol(";"); err != nil {
			return nil, err
		}
		members = append(members, ast.StructMember{Name: memberName, Type: typ})
	}
	p.advance()
	return &ast.StructDeclStmt{Name: name, Members: members}, nil
}

// layoutArgs parses an optional "layout(key = value, ...)" qualifier,
// returning the recognized integer-valued keys plus whether "std140"
// appeared bare.
func (p *parser) layoutArgs() (map[string]int, bool, error) {
	args := make(map[string]int)
	std140 := false
	if !p.isKeyword("layout") {
		return args, std140, nil
	}
	p.advance()
	if err := p.expectSymbol("("); err != nil {
		return nil, false, err
	}
	for {
		if p.isKeyword("std140") {
			p.advance()
			std140 = true
		} else {
			key, err := p.expectIdentifier()
			if err != nil {
				return nil, false, err
			}
			if err := p.expectSymbol("="); err != nil {
				return nil, false, err
			}
			val, err := p.expectInt()
			if err != nil {
				return nil, false, err
			}
			args[key] = val
		}
		if p.isSymbol(",") {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectSymbol(")"); err != nil {
		return nil, false, err
	}
	return args, std140, nil
}

func (p *parser) parseInOut(isInput bool) (ast.Stmt, error) {
	p.advance()
	layout, _, err := p.layoutArgs()
	if err != nil {
		return nil, err
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol(";"); err != nil {
		return nil, err
	}
	if isInput {
		return &ast.InputDeclStmt{Name: name, Type: typ, Location: layout["location"]}, nil
	}
	return &ast.OutputDeclStmt{Name: name, Type: typ, Location: layout["location"]}, nil
}

func (p *parser) parseExternal() (ast.Stmt, error) {
	p.advance()
	layout, std140, err := p.layoutArgs()
	if err != nil {
		return nil, err
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol(";"); err != nil {
		return nil, err
	}
	lk := ast.LayoutDefault
	if std140 {
		lk = ast.LayoutStd140
	}
	return &ast.ExternalDeclStmt{Name: name, Type: typ, Set: layout["set"], Binding: layout["binding"], Layout: lk}, nil
}

func (p *parser) parseOption() (ast.Stmt, error) {
	p.advance()
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol("="); err != nil {
		return nil, err
	}
	defExpr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol(";"); err != nil {
		return nil, err
	}
	def, ok := eval.Evaluate(defExpr)
	if !ok {
		return nil, &SyntaxError{Line: p.cur().Line, Column: p.cur().Column, Msg: "option default must be a constant expression: " + name}
	}
	// An integer-literal default takes the option's declared scalar type.
	if def.Kind == ast.KindI32 && typ.Kind == ast.TypePrimitive {
		switch typ.Primitive {
		case ast.PrimitiveUint:
			def = ast.U32Value(uint32(def.I[0]))
		case ast.PrimitiveFloat:
			def = ast.F32Value(float32(def.I[0]))
		}
	}
	return &ast.OptionDeclStmt{Name: name, Type: typ, Default: def}, nil
}

// parseInclude parses a dotted library path, e.g. "Forge.GBufferWrite.Color",
// since library names are namespaced by convention rather than being
// plain identifiers.
func (p *parser) parseInclude() (ast.Stmt, error) {
	p.advance()
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	for p.isSymbol(".") {
		p.advance()
		part, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		name += "." + part
	}
	if err := p.expectSymbol(";"); err != nil {
		return nil, err
	}
	return &ast.IncludeStmt{Name: name}, nil
}

func (p *parser) parseFunction() (ast.Stmt, error) {
	var stage gputypes.ShaderStage
	isEntry := false
	if p.cur().Type == lexer.TokenKeyword {
		if s, ok := stageKeywords[p.cur().Text]; ok {
			stage = s
			isEntry = true
			p.advance()
		}
	}

	retType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}
	var params []ast.StructMember
	for !p.isSymbol(")") {
		if len(params) > 0 {
			if err := p.expectSymbol(","); err != nil {
				return nil, err
			}
		}
		pt, err := p.parseType()
		if err != nil {
			return nil, err
		}
		pn, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		params = append(params, ast.StructMember{Name: pn, Type: pt})
	}
	p.advance()

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	if isEntry {
		return &ast.EntryFunctionDeclStmt{Name: name, Stage: stage, Body: body}, nil
	}
	return &ast.FunctionDeclStmt{Name: name, Params: params, ReturnType: retType, Body: body}, nil
}

func (p *parser) parseBlock() ([]ast.Stmt, error) {
	if err := p.expectSymbol("{"); err != nil {
		return nil, err
	}
	var stmts []ast.Stmt
	for !p.isSymbol("}") {
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	p.advance()
	return stmts, nil
}

func (p *parser) parseStmt() (ast.Stmt, error) {
	switch {
	case p.isSymbol("{"):
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &ast.SequenceStmt{Body: body}, nil
	case p.isKeyword("if"):
		return p.parseConditional()
	case p.isKeyword("optional"):
		return p.parseOptional()
	case p.isKeyword("for"):
		return p.parseFor()
	case p.isKeyword("while"):
		return p.parseWhile()
	case p.isKeyword("do"):
		return p.parseDoWhile()
	case p.isKeyword("break"):
		p.advance()
		if err := p.expectSymbol(";"); err != nil {
			return nil, err
		}
		return &ast.BreakStmt{}, nil
	case p.isKeyword("continue"):
		p.advance()
		if err := p.expectSymbol(";"); err != nil {
			return nil, err
		}
		return &ast.ContinueStmt{}, nil
	case p.isKeyword("discard"):
		p.advance()
		if err := p.expectSymbol(";"); err != nil {
			return nil, err
		}
		return &ast.DiscardStmt{}, nil
	case p.isKeyword("return"):
		p.advance()
		if p.isSymbol(";") {
			p.advance()
			return &ast.ReturnStmt{}, nil
		}
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol(";"); err != nil {
			return nil, err
		}
		return &ast.ReturnStmt{Value: v}, nil
	case p.isDeclarationStart():
		return p.parseVariableDeclStmt()
	default:
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol(";"); err != nil {
			return nil, err
		}
		return &ast.ExprStmt{Expr: e}, nil
	}
}

func (p *parser) parseVariableDeclStmt() (ast.Stmt, error) {
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	var init ast.Expr
	if p.isSymbol("=") {
		p.advance()
		init, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectSymbol(";"); err != nil {
		return nil, err
	}
	return &ast.VariableDeclStmt{Name: name, Type: typ, Init: init}, nil
}

func (p *parser) parseConditional() (ast.Stmt, error) {
	var branches []ast.ConditionalBranch
	for {
		if err := p.expectKeyword("if"); err != nil {
			return nil, err
		}
		if err := p.expectSymbol("("); err != nil {
			return nil, err
		}
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol(")"); err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		branches = append(branches, ast.ConditionalBranch{Cond: cond, Body: body})

		if !p.isKeyword("else") {
			break
		}
		p.advance()
		if p.isKeyword("if") {
			continue
		}
		elseBody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		branches = append(branches, ast.ConditionalBranch{Body: elseBody})
		break
	}
	return &ast.ConditionalStmt{Branches: branches}, nil
}

func (p *parser) parseOptional() (ast.Stmt, error) {
	p.advance()
	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.OptionalStmt{Cond: cond, Body: body}, nil
}

func (p *parser) parseFor() (ast.Stmt, error) {
	p.advance()
	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}
	var initStmt ast.Stmt
	if !p.isSymbol(";") {
		if p.isDeclarationStart() {
			s, err := p.parseVariableDeclStmtNoSemi()
			if err != nil {
				return nil, err
			}
			initStmt = s
		} else {
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			initStmt = &ast.ExprStmt{Expr: e}
		}
	}
	if err := p.expectSymbol(";"); err != nil {
		return nil, err
	}
	var cond ast.Expr
	if !p.isSymbol(";") {
		c, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		cond = c
	}
	if err := p.expectSymbol(";"); err != nil {
		return nil, err
	}
	var iter ast.Stmt
	if !p.isSymbol(")") {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		iter = &ast.ExprStmt{Expr: e}
	}
	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.ForStmt{Init: initStmt, Cond: cond, Iter: iter, Body: body}, nil
}

func (p *parser) parseVariableDeclStmtNoSemi() (ast.Stmt, error) {
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	var init ast.Expr
	if p.isSymbol("=") {
		p.advance()
		init, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	return &ast.VariableDeclStmt{Name: name, Type: typ, Init: init}, nil
}

func (p *parser) parseWhile() (ast.Stmt, error) {
	p.advance()
	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Cond: cond, Body: body}, nil
}

func (p *parser) parseDoWhile() (ast.Stmt, error) {
	p.advance()
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("while"); err != nil {
		return nil, err
	}
	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}
	if err := p.expectSymbol(";"); err != nil {
		return nil, err
	}
	return &ast.DoWhileStmt{Cond: cond, Body: body}, nil
}
