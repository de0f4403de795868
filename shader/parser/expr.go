package parser

import (
	"strings"

	"github.com/gogpu/forge/shader/ast"
	"github.com/gogpu/forge/shader/lexer"
)

var compoundAssignOps = map[string]ast.BinaryOp{
	"+=": ast.BinaryAdd, "-=": ast.BinarySubtract, "*=": ast.BinaryMultiply,
	"/=": ast.BinaryDivide, "%=": ast.BinaryModulo,
	"<<=": ast.BinaryShiftLeft, ">>=": ast.BinaryShiftRight,
}

func (p *parser) parseExpr() (ast.Expr, error) {
	return p.parseAssignment()
}

func (p *parser) parseAssignment() (ast.Expr, error) {
	lhs, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	t := p.cur()
	if t.Type != lexer.TokenSymbol {
		return lhs, nil
	}
	if t.Text == "=" {
		p.advance()
		rhs, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return &ast.AssignmentExpr{Target: lhs, Value: rhs}, nil
	}
	if op, ok := compoundAssignOps[t.Text]; ok {
		p.advance()
		rhs, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return &ast.AssignmentExpr{Target: lhs, Value: rhs, Compound: true, Op: op}, nil
	}
	return lhs, nil
}

func (p *parser) parseTernary() (ast.Expr, error) {
	cond, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if !p.isSymbol("?") {
		return cond, nil
	}
	p.advance()
	then, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol(":"); err != nil {
		return nil, err
	}
	els, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	return &ast.TernaryExpr{Cond: cond, Then: then, Else: els}, nil
}

// binaryLevel parses one level of left-associative binary operators,
// delegating to next for each operand.
func (p *parser) binaryLevel(ops map[string]ast.BinaryOp, next func() (ast.Expr, error)) (ast.Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		t := p.cur()
		if t.Type != lexer.TokenSymbol {
			return left, nil
		}
		op, ok := ops[t.Text]
		if !ok {
			return left, nil
		}
		p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
}

func (p *parser) parseLogicalOr() (ast.Expr, error) {
	return p.binaryLevel(map[string]ast.BinaryOp{"||": ast.BinaryLogicalOr}, p.parseLogicalAnd)
}

func (p *parser) parseLogicalAnd() (ast.Expr, error) {
	return p.binaryLevel(map[string]ast.BinaryOp{"&&": ast.BinaryLogicalAnd}, p.parseBitwiseOr)
}

func (p *parser) parseBitwiseOr() (ast.Expr, error) {
	return p.binaryLevel(map[string]ast.BinaryOp{"|": ast.BinaryBitwiseOr}, p.parseBitwiseXor)
}

func (p *parser) parseBitwiseXor() (ast.Expr, error) {
	return p.binaryLevel(map[string]ast.BinaryOp{"^": ast.BinaryBitwiseXor}, p.parseBitwiseAnd)
}

func (p *parser) parseBitwiseAnd() (ast.Expr, error) {
	return p.binaryLevel(map[string]ast.BinaryOp{"&": ast.BinaryBitwiseAnd}, p.parseEquality)
}

func (p *parser) parseEquality() (ast.Expr, error) {
	return p.binaryLevel(map[string]ast.BinaryOp{"==": ast.BinaryEqual, "!=": ast.BinaryNotEqual}, p.parseRelational)
}

func (p *parser) parseRelational() (ast.Expr, error) {
	return p.binaryLevel(map[string]ast.BinaryOp{
		"<": ast.BinaryLess, ">": ast.BinaryGreater,
		"<=": ast.BinaryLessOrEqual, ">=": ast.BinaryGreaterOrEqual,
	}, p.parseShift)
}

func (p *parser) parseShift() (ast.Expr, error) {
	return p.binaryLevel(map[string]ast.BinaryOp{"<<": ast.BinaryShiftLeft, ">>": ast.BinaryShiftRight}, p.parseAdditive)
}

func (p *parser) parseAdditive() (ast.Expr, error) {
	return p.binaryLevel(map[string]ast.BinaryOp{"+": ast.BinaryAdd, "-": ast.BinarySubtract}, p.parseMultiplicative)
}

func (p *parser) parseMultiplicative() (ast.Expr, error) {
	return p.binaryLevel(map[string]ast.BinaryOp{
		"*": ast.BinaryMultiply, "/": ast.BinaryDivide, "%": ast.BinaryModulo,
	}, p.parsePower)
}

// parsePower is right-associative (2 ^^ 3 ^^ 2 == 2 ^^ (3 ^^ 2)), unlike
// the other binary levels.
func (p *parser) parsePower() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if !p.isSymbol("^^") {
		return left, nil
	}
	p.advance()
	right, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpr{Op: ast.BinaryPower, Left: left, Right: right}, nil
}

var prefixUnaryOps = map[string]ast.UnaryOp{
	"+": ast.UnaryPositive, "-": ast.UnaryNegative, "!": ast.UnaryLogicalNot,
}

func (p *parser) parseUnary() (ast.Expr, error) {
	t := p.cur()
	if t.Type == lexer.TokenSymbol {
		if op, ok := prefixUnaryOps[t.Text]; ok {
			p.advance()
			operand, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			return &ast.UnaryExpr{Op: op, Operand: operand}, nil
		}
		if t.Text == "++" {
			p.advance()
			operand, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			return &ast.UnaryExpr{Op: ast.UnaryPreIncrement, Operand: operand}, nil
		}
		if t.Text == "--" {
			p.advance()
			operand, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			return &ast.UnaryExpr{Op: ast.UnaryPreDecrement, Operand: operand}, nil
		}
	}
	return p.parsePostfix()
}

// swizzleIndex maps the two recognized swizzle alphabets onto component
// indices 0..3.
func swizzleIndex(c byte) (int, bool) {
	switch c {
	case 'x', 'r':
		return 0, true
	case 'y', 'g':
		return 1, true
	case 'z', 'b':
		return 2, true
	case 'w', 'a':
		return 3, true
	default:
		return 0, false
	}
}

// isSwizzleName reports whether name is composed entirely of one swizzle
// alphabet (xyzw or rgba); by convention in this language swizzle letters
// are reserved and cannot also name a struct field, so a ".name" access
// with a matching spelling is always a swizzle.
func isSwizzleName(name string) ([]int, bool) {
	if len(name) < 1 || len(name) > 4 {
		return nil, false
	}
	comps := make([]int, len(name))
	rgba := strings.IndexByte("rgba", name[0]) >= 0
	for i := 0; i < len(name); i++ {
		idx, ok := swizzleIndex(name[i])
		if !ok || (strings.IndexByte("rgba", name[i]) >= 0) != rgba {
			return nil, false
		}
		comps[i] = idx
	}
	return comps, true
}

func (p *parser) parsePostfix() (ast.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.isSymbol("["):
			p.advance()
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expectSymbol("]"); err != nil {
				return nil, err
			}
			expr = &ast.AccessIndexExpr{Base: expr, Index: idx}
		case p.isSymbol("."):
			p.advance()
			name, err := p.expectIdentifier()
			if err != nil {
				return nil, err
			}
			if comps, ok := isSwizzleName(name); ok {
				expr = &ast.SwizzleExpr{Base: expr, Components: comps}
			} else {
				expr = &ast.AccessIdentifierExpr{Base: expr, Name: name}
			}
		case p.isSymbol("++"):
			p.advance()
			expr = &ast.UnaryExpr{Op: ast.UnaryPostIncrement, Operand: expr}
		case p.isSymbol("--"):
			p.advance()
			expr = &ast.UnaryExpr{Op: ast.UnaryPostDecrement, Operand: expr}
		default:
			return expr, nil
		}
	}
}

func (p *parser) parseArgList() ([]ast.Expr, error) {
	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}
	var args []ast.Expr
	for !p.isSymbol(")") {
		if len(args) > 0 {
			if err := p.expectSymbol(","); err != nil {
				return nil, err
			}
		}
		a, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}
	p.advance()
	return args, nil
}

func (p *parser) parsePrimary() (ast.Expr, error) {
	t := p.cur()
	switch t.Type {
	case lexer.TokenIntLiteral:
		p.advance()
		return &ast.ConstantExpr{Value: ast.I32Value(int32(t.Int))}, nil
	case lexer.TokenUIntLiteral:
		p.advance()
		return &ast.ConstantExpr{Value: ast.U32Value(uint32(t.Int))}, nil
	case lexer.TokenFloatLiteral:
		p.advance()
		return &ast.ConstantExpr{Value: ast.F32Value(float32(t.Float))}, nil
	case lexer.TokenBoolLiteral:
		p.advance()
		return &ast.ConstantExpr{Value: ast.BoolValue(t.Bool)}, nil
	case lexer.TokenIdentifier:
		return p.parseIdentifierOrCall()
	case lexer.TokenKeyword:
		if p.startsType() {
			return p.parseTypeConstructor()
		}
		if fn, ok := ast.LookupBuiltIn(t.Text); ok {
			p.advance()
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			return &ast.BuiltInCallExpr{Func: fn, Args: args}, nil
		}
		return nil, p.errorf("unexpected keyword %q in expression", t.Text)
	case lexer.TokenSymbol:
		if t.Text == "(" {
			p.advance()
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expectSymbol(")"); err != nil {
				return nil, err
			}
			return e, nil
		}
	}
	return nil, p.errorf("unexpected token %q in expression", t.Text)
}

func (p *parser) parseIdentifierOrCall() (ast.Expr, error) {
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if fn, ok := ast.LookupBuiltIn(name); ok && p.isSymbol("(") {
		args, err := p.parseArgList()
		if err != nil {
			return nil, err
		}
		return &ast.BuiltInCallExpr{Func: fn, Args: args}, nil
	}
	if p.isSymbol("(") {
		args, err := p.parseArgList()
		if err != nil {
			return nil, err
		}
		return &ast.FunctionCallExpr{Name: name, Args: args}, nil
	}
	return &ast.VariableExpr{Name: name}, nil
}

func (p *parser) parseTypeConstructor() (ast.Expr, error) {
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	args, err := p.parseArgList()
	if err != nil {
		return nil, err
	}
	return &ast.ConstructorExpr{Type: typ, Args: args}, nil
}
