package stage

import (
	"fmt"

	"github.com/gogpu/forge/gputypes"
	"github.com/gogpu/forge/shader/ast"
)

// Error reports that decls declares no entry function for the
// requested stage.
type Error struct {
	Stage gputypes.ShaderStage
}

func (e *Error) Error() string {
	return fmt.Sprintf("stage: no entry function declared for stage %s", e.Stage)
}

type index struct {
	funcs        map[string]*ast.FunctionDeclStmt
	structs      map[string]*ast.StructDeclStmt
	entryByStage map[gputypes.ShaderStage]*ast.EntryFunctionDeclStmt
}

func buildIndex(decls []ast.Stmt) *index {
	idx := &index{
		funcs:        make(map[string]*ast.FunctionDeclStmt),
		structs:      make(map[string]*ast.StructDeclStmt),
		entryByStage: make(map[gputypes.ShaderStage]*ast.EntryFunctionDeclStmt),
	}
	for _, s := range decls {
		switch n := s.(type) {
		case *ast.FunctionDeclStmt:
			idx.funcs[n.Name] = n
		case *ast.StructDeclStmt:
			idx.structs[n.Name] = n
		case *ast.EntryFunctionDeclStmt:
			idx.entryByStage[n.Stage] = n
		}
	}
	return idx
}

type collector struct {
	funcs   map[string]bool
	queue   []string
	vars    map[string]bool
	structs map[string]bool
}

func newCollector() *collector {
	return &collector{
		funcs:   make(map[string]bool),
		vars:    make(map[string]bool),
		structs: make(map[string]bool),
	}
}

func (c *collector) addFunc(name string) {
	if !c.funcs[name] {
		c.funcs[name] = true
		c.queue = append(c.queue, name)
	}
}

// Extract returns the subset of decls reachable from the entry function
// declared for target: that function itself, every function it calls
// (transitively), every input/output/external variable actually read or
// written along the way, and every struct referenced by a reached
// function's signature or locals or by a reached variable's type. Declaration order is preserved from
// decls. OptionDeclStmt entries are always kept, since later passes
// (the writer) may still need to emit them regardless of which stage is
// being extracted.
func Extract(decls []ast.Stmt, target gputypes.ShaderStage) ([]ast.Stmt, error) {
	idx := buildIndex(decls)

	entry, ok := idx.entryByStage[target]
	if !ok {
		return nil, &Error{Stage: target}
	}

	c := newCollector()
	walkStmts(entry.Body, idx, c)

	for len(c.queue) > 0 {
		name := c.queue[len(c.queue)-1]
		c.queue = c.queue[:len(c.queue)-1]

		fn, ok := idx.funcs[name]
		if !ok {
			continue
		}
		walkType(fn.ReturnType, idx, c)
		for _, p := range fn.Params {
			walkType(p.Type, idx, c)
		}
		walkStmts(fn.Body, idx, c)
	}

	// A reached input, output or external variable also reaches the struct
	// its type names.
	for _, s := range decls {
		name, typ := "", ast.Void
		switch n := s.(type) {
		case *ast.ExternalDeclStmt:
			name, typ = n.Name, n.Type
		case *ast.InputDeclStmt:
			name, typ = n.Name, n.Type
		case *ast.OutputDeclStmt:
			name, typ = n.Name, n.Type
		}
		if name != "" && c.vars[name] {
			walkType(typ, idx, c)
		}
	}

	out := make([]ast.Stmt, 0, len(decls))
	for _, s := range decls {
		switch n := s.(type) {
		case *ast.OptionDeclStmt:
			out = append(out, n)
		case *ast.StructDeclStmt:
			if c.structs[n.Name] {
				out = append(out, n)
			}
		case *ast.ExternalDeclStmt:
			if c.vars[n.Name] {
				out = append(out, n)
			}
		case *ast.InputDeclStmt:
			if c.vars[n.Name] {
				out = append(out, n)
			}
		case *ast.OutputDeclStmt:
			if c.vars[n.Name] {
				out = append(out, n)
			}
		case *ast.FunctionDeclStmt:
			if c.funcs[n.Name] {
				out = append(out, n)
			}
		case *ast.EntryFunctionDeclStmt:
			if n.Stage == target {
				out = append(out, n)
			}
		}
	}
	return out, nil
}

func walkType(t ast.Type, idx *index, c *collector) {
	switch t.Kind {
	case ast.TypeStruct:
		if c.structs[t.StructName] {
			return
		}
		c.structs[t.StructName] = true
		if sd, ok := idx.structs[t.StructName]; ok {
			for _, m := range sd.Members {
				walkType(m.Type, idx, c)
			}
		}
	case ast.TypeArray:
		if t.ArrayComponent != nil {
			walkType(*t.ArrayComponent, idx, c)
		}
	}
}

func walkStmts(stmts []ast.Stmt, idx *index, c *collector) {
	for _, s := range stmts {
		walkStmt(s, idx, c)
	}
}

func walkStmt(s ast.Stmt, idx *index, c *collector) {
	switch n := s.(type) {
	case *ast.ExprStmt:
		walkExpr(n.Expr, idx, c)
	case *ast.VariableDeclStmt:
		walkType(n.Type, idx, c)
		if n.Init != nil {
			walkExpr(n.Init, idx, c)
		}
	case *ast.ConditionalStmt:
		for _, b := range n.Branches {
			if b.Cond != nil {
				walkExpr(b.Cond, idx, c)
			}
			walkStmts(b.Body, idx, c)
		}
	case *ast.ForStmt:
		if n.Init != nil {
			walkStmt(n.Init, idx, c)
		}
		if n.Cond != nil {
			walkExpr(n.Cond, idx, c)
		}
		if n.Iter != nil {
			walkStmt(n.Iter, idx, c)
		}
		walkStmts(n.Body, idx, c)
	case *ast.WhileStmt:
		walkExpr(n.Cond, idx, c)
		walkStmts(n.Body, idx, c)
	case *ast.DoWhileStmt:
		walkExpr(n.Cond, idx, c)
		walkStmts(n.Body, idx, c)
	case *ast.ReturnStmt:
		if n.Value != nil {
			walkExpr(n.Value, idx, c)
		}
	case *ast.SequenceStmt:
		walkStmts(n.Body, idx, c)
	case *ast.OptionalStmt:
		walkExpr(n.Cond, idx, c)
		walkStmts(n.Body, idx, c)
	}
}

func walkExpr(e ast.Expr, idx *index, c *collector) {
	switch n := e.(type) {
	case *ast.VariableExpr:
		c.vars[n.Name] = true
	case *ast.AccessIndexExpr:
		walkExpr(n.Base, idx, c)
		walkExpr(n.Index, idx, c)
	case *ast.AccessIdentifierExpr:
		walkExpr(n.Base, idx, c)
	case *ast.SwizzleExpr:
		walkExpr(n.Base, idx, c)
	case *ast.AssignmentExpr:
		walkExpr(n.Target, idx, c)
		walkExpr(n.Value, idx, c)
	case *ast.UnaryExpr:
		walkExpr(n.Operand, idx, c)
	case *ast.BinaryExpr:
		walkExpr(n.Left, idx, c)
		walkExpr(n.Right, idx, c)
	case *ast.TernaryExpr:
		walkExpr(n.Cond, idx, c)
		walkExpr(n.Then, idx, c)
		walkExpr(n.Else, idx, c)
	case *ast.FunctionCallExpr:
		c.addFunc(n.Name)
		for _, a := range n.Args {
			walkExpr(a, idx, c)
		}
	case *ast.BuiltInCallExpr:
		for _, a := range n.Args {
			walkExpr(a, idx, c)
		}
	case *ast.ConstructorExpr:
		walkType(n.Type, idx, c)
		for _, a := range n.Args {
			walkExpr(a, idx, c)
		}
	case *ast.CastExpr:
		walkType(n.Type, idx, c)
		walkExpr(n.Operand, idx, c)
	}
}
