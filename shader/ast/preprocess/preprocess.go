package preprocess

import (
	"github.com/gogpu/forge/shader/ast"
	"github.com/gogpu/forge/shader/ast/eval"
)

// Processor substitutes option values and folds conditional/optional
// statements across a tree. A zero Processor is ready to use; options
// set with SetOption override any default an OptionDeclStmt in the
// tree supplies for the same name.
type Processor struct {
	overrides map[string]ast.ConstantValue
	defaults  map[string]ast.ConstantValue
}

// New returns a ready-to-use Processor with no option overrides.
func New() *Processor {
	return &Processor{
		overrides: make(map[string]ast.ConstantValue),
		defaults:  make(map[string]ast.ConstantValue),
	}
}

// SetOption overrides the named option's value for every Process call
// made on this Processor from now on.
func (p *Processor) SetOption(name string, value ast.ConstantValue) {
	if p.overrides == nil {
		p.overrides = make(map[string]ast.ConstantValue)
	}
	p.overrides[name] = value
}

// Process folds a top-level declaration list, dropping any statement
// that resolves to nothing (an always-false OptionalStmt, ...). Struct
// members and input, output and external declarations carry no
// condition, so they are copied unchanged and never removed.
func (p *Processor) Process(stmts []ast.Stmt) []ast.Stmt {
	if len(stmts) == 0 {
		return nil
	}
	out := make([]ast.Stmt, 0, len(stmts))
	for _, s := range stmts {
		if ps := p.processStmt(s); ps != nil {
			out = append(out, ps)
		}
	}
	return out
}

func (p *Processor) optionValue(name string) (ast.ConstantValue, bool) {
	if v, ok := p.overrides[name]; ok {
		return v, true
	}
	if v, ok := p.defaults[name]; ok {
		return v, true
	}
	return ast.ConstantValue{}, false
}

func (p *Processor) processStmt(s ast.Stmt) ast.Stmt {
	switch n := s.(type) {
	case *ast.ExprStmt:
		return &ast.ExprStmt{Expr: p.processExpr(n.Expr)}

	case *ast.VariableDeclStmt:
		return &ast.VariableDeclStmt{Name: n.Name, Type: n.Type, Init: p.processExprMaybeNil(n.Init)}

	case *ast.StructDeclStmt:
		members := append([]ast.StructMember(nil), n.Members...)
		return &ast.StructDeclStmt{Name: n.Name, Members: members}

	case *ast.InputDeclStmt:
		c := *n
		return &c

	case *ast.OutputDeclStmt:
		c := *n
		return &c

	case *ast.ExternalDeclStmt:
		c := *n
		return &c

	case *ast.OptionDeclStmt:
		return p.processOptionDecl(n)

	case *ast.FunctionDeclStmt:
		params := append([]ast.StructMember(nil), n.Params...)
		return &ast.FunctionDeclStmt{Name: n.Name, Params: params, ReturnType: n.ReturnType, Body: p.Process(n.Body)}

	case *ast.EntryFunctionDeclStmt:
		return &ast.EntryFunctionDeclStmt{Name: n.Name, Stage: n.Stage, Body: p.Process(n.Body)}

	case *ast.ConditionalStmt:
		return p.processConditional(n)

	case *ast.ForStmt:
		return &ast.ForStmt{
			Init: p.processStmtMaybeNil(n.Init),
			Cond: p.processExprMaybeNil(n.Cond),
			Iter: p.processStmtMaybeNil(n.Iter),
			Body: p.Process(n.Body),
		}

	case *ast.WhileStmt:
		return &ast.WhileStmt{Cond: p.processExpr(n.Cond), Body: p.Process(n.Body)}

	case *ast.DoWhileStmt:
		return &ast.DoWhileStmt{Cond: p.processExpr(n.Cond), Body: p.Process(n.Body)}

	case *ast.BreakStmt:
		return &ast.BreakStmt{}

	case *ast.ContinueStmt:
		return &ast.ContinueStmt{}

	case *ast.ReturnStmt:
		return &ast.ReturnStmt{Value: p.processExprMaybeNil(n.Value)}

	case *ast.DiscardStmt:
		return &ast.DiscardStmt{}

	case *ast.SequenceStmt:
		body := p.Process(n.Body)
		if len(body) == 0 {
			return nil
		}
		return &ast.SequenceStmt{Body: body}

	case *ast.OptionalStmt:
		return p.processOptional(n)

	case *ast.IncludeStmt:
		c := *n
		return &c

	default:
		panic("preprocess: unhandled statement node")
	}
}

func (p *Processor) processStmtMaybeNil(s ast.Stmt) ast.Stmt {
	if s == nil {
		return nil
	}
	return p.processStmt(s)
}

func (p *Processor) processExprMaybeNil(e ast.Expr) ast.Expr {
	if e == nil {
		return nil
	}
	return p.processExpr(e)
}

func (p *Processor) processOptionDecl(n *ast.OptionDeclStmt) *ast.OptionDeclStmt {
	if _, seen := p.defaults[n.Name]; !seen {
		if p.defaults == nil {
			p.defaults = make(map[string]ast.ConstantValue)
		}
		p.defaults[n.Name] = n.Default
	}
	value := n.Default
	if override, ok := p.overrides[n.Name]; ok {
		value = override
	}
	return &ast.OptionDeclStmt{Name: n.Name, Type: n.Type, Default: value}
}

// processConditional folds a branch chain, discarding always-false
// branches and collapsing to the first always-true branch's body when
// reached, matching ordinary if/else short-circuiting.
func (p *Processor) processConditional(n *ast.ConditionalStmt) ast.Stmt {
	kept := make([]ast.ConditionalBranch, 0, len(n.Branches))

	for _, b := range n.Branches {
		if b.Cond == nil {
			body := p.Process(b.Body)
			if len(kept) == 0 {
				return wrapBody(body)
			}
			kept = append(kept, ast.ConditionalBranch{Body: body})
			break
		}

		cond := p.processExpr(b.Cond)
		body := p.Process(b.Body)

		val, ok := eval.EvaluateCondition(cond)
		if !ok {
			kept = append(kept, ast.ConditionalBranch{Cond: cond, Body: body})
			continue
		}
		if !val {
			continue
		}
		if len(kept) == 0 {
			return wrapBody(body)
		}
		kept = append(kept, ast.ConditionalBranch{Body: body})
		break
	}

	if len(kept) == 0 {
		return nil
	}
	return &ast.ConditionalStmt{Branches: kept}
}

func (p *Processor) processOptional(n *ast.OptionalStmt) ast.Stmt {
	cond := p.processExpr(n.Cond)
	if val, ok := eval.EvaluateCondition(cond); ok {
		if !val {
			return nil
		}
		return wrapBody(p.Process(n.Body))
	}
	body := p.Process(n.Body)
	if len(body) == 0 {
		return nil
	}
	return &ast.OptionalStmt{Cond: cond, Body: body}
}

func wrapBody(body []ast.Stmt) ast.Stmt {
	switch len(body) {
	case 0:
		return nil
	case 1:
		return body[0]
	default:
		return &ast.SequenceStmt{Body: body}
	}
}

func (p *Processor) processExpr(e ast.Expr) ast.Expr {
	switch n := e.(type) {
	case *ast.ConstantExpr:
		c := *n
		return &c

	case *ast.VariableExpr:
		if v, ok := p.optionValue(n.Name); ok {
			return &ast.ConstantExpr{Value: v}
		}
		return &ast.VariableExpr{Name: n.Name}

	case *ast.AccessIndexExpr:
		out := &ast.AccessIndexExpr{Base: p.processExpr(n.Base), Index: p.processExpr(n.Index)}
		if v, ok := eval.Evaluate(out.Index); ok {
			out.Index = &ast.ConstantExpr{Value: v}
		}
		return constantIfPossible(out)

	case *ast.AccessIdentifierExpr:
		return constantIfPossible(&ast.AccessIdentifierExpr{Base: p.processExpr(n.Base), Name: n.Name})

	case *ast.SwizzleExpr:
		comps := append([]int(nil), n.Components...)
		return constantIfPossible(&ast.SwizzleExpr{Base: p.processExpr(n.Base), Components: comps})

	case *ast.AssignmentExpr:
		out := &ast.AssignmentExpr{
			Target:   p.processExpr(n.Target),
			Value:    p.processExpr(n.Value),
			Compound: n.Compound,
			Op:       n.Op,
		}
		if v, ok := eval.Evaluate(out.Value); ok {
			out.Value = &ast.ConstantExpr{Value: v}
		}
		return out

	case *ast.UnaryExpr:
		return constantIfPossible(&ast.UnaryExpr{Op: n.Op, Operand: p.processExpr(n.Operand)})

	case *ast.BinaryExpr:
		return constantIfPossible(&ast.BinaryExpr{Op: n.Op, Left: p.processExpr(n.Left), Right: p.processExpr(n.Right)})

	case *ast.TernaryExpr:
		then := p.processExpr(n.Then)
		els := p.processExpr(n.Else)
		cond := p.processExpr(n.Cond)

		if val, ok := eval.EvaluateCondition(cond); ok {
			if val {
				return constantIfPossible(then)
			}
			return constantIfPossible(els)
		}
		return constantIfPossible(&ast.TernaryExpr{Cond: cond, Then: then, Else: els})

	case *ast.FunctionCallExpr:
		return constantIfPossible(&ast.FunctionCallExpr{Name: n.Name, Args: p.processExprs(n.Args)})

	case *ast.BuiltInCallExpr:
		return constantIfPossible(&ast.BuiltInCallExpr{Func: n.Func, Args: p.processExprs(n.Args)})

	case *ast.ConstructorExpr:
		return constantIfPossible(&ast.ConstructorExpr{Type: n.Type, Args: p.processExprs(n.Args)})

	case *ast.CastExpr:
		return constantIfPossible(&ast.CastExpr{Type: n.Type, Operand: p.processExpr(n.Operand)})

	default:
		panic("preprocess: unhandled expression node")
	}
}

func (p *Processor) processExprs(in []ast.Expr) []ast.Expr {
	if in == nil {
		return nil
	}
	out := make([]ast.Expr, len(in))
	for i, e := range in {
		out[i] = p.processExpr(e)
	}
	return out
}

func constantIfPossible(e ast.Expr) ast.Expr {
	if v, ok := eval.Evaluate(e); ok {
		return &ast.ConstantExpr{Value: v}
	}
	return e
}
