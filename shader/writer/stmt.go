package writer

import (
	"fmt"

	"github.com/gogpu/forge/shader/ast"
)

func (w *writer) writeStmts(stmts []ast.Stmt) error {
	for i, s := range stmts {
		if err := w.writeStmt(s); err != nil {
			return err
		}
		if i != len(stmts)-1 {
			w.newLine()
		}
	}
	return nil
}

func (w *writer) writeStmt(s ast.Stmt) error {
	switch n := s.(type) {
	case *ast.ExprStmt:
		w.writeExpr(n.Expr, 0)
		w.sb.WriteString(";")
		return nil
	case *ast.VariableDeclStmt:
		w.writeVariableDeclaration(n.Type, n.Name, n.Init)
		return nil
	case *ast.ConditionalStmt:
		return w.writeConditional(n)
	case *ast.ForStmt:
		return w.writeFor(n)
	case *ast.WhileStmt:
		w.sb.WriteString("while (")
		w.writeExpr(n.Cond, 0)
		w.sb.WriteString(")")
		w.beginBlock()
		if err := w.writeStmts(n.Body); err != nil {
			return err
		}
		w.endBlock()
		return nil
	case *ast.DoWhileStmt:
		w.sb.WriteString("do")
		w.beginBlock()
		if err := w.writeStmts(n.Body); err != nil {
			return err
		}
		w.endBlock()
		w.sb.WriteString(" while (")
		w.writeExpr(n.Cond, 0)
		w.sb.WriteString(");")
		return nil
	case *ast.BreakStmt:
		w.sb.WriteString("break;")
		return nil
	case *ast.ContinueStmt:
		w.sb.WriteString("continue;")
		return nil
	case *ast.ReturnStmt:
		w.sb.WriteString("return")
		if n.Value != nil {
			w.sb.WriteString(" ")
			w.writeExpr(n.Value, 0)
		}
		w.sb.WriteString(";")
		return nil
	case *ast.DiscardStmt:
		w.sb.WriteString("discard;")
		return nil
	case *ast.SequenceStmt:
		w.beginBlock()
		if err := w.writeStmts(n.Body); err != nil {
			return err
		}
		w.endBlock()
		return nil
	case *ast.OptionalStmt:
		return fmt.Errorf("writer: unresolved optional statement reached the writer; run preprocess.Process first")
	default:
		return fmt.Errorf("writer: unhandled statement node %T", s)
	}
}

// writeConditional renders an ordinary if/else-if/else chain. Every
// surviving branch here is a genuine runtime condition: preprocess.Process
// already folds any branch whose condition reduces to a compile-time
// constant.
func (w *writer) writeConditional(n *ast.ConditionalStmt) error {
	for i, branch := range n.Branches {
		if i > 0 {
			w.sb.WriteString(" else ")
		}
		if branch.Cond != nil {
			w.sb.WriteString("if (")
			w.writeExpr(branch.Cond, 0)
			w.sb.WriteString(")")
		}
		w.beginBlock()
		if err := w.writeStmts(branch.Body); err != nil {
			return err
		}
		w.endBlock()
	}
	return nil
}

func (w *writer) writeFor(n *ast.ForStmt) error {
	w.sb.WriteString("for (")
	if n.Init != nil {
		if err := w.writeStmt(n.Init); err != nil {
			return err
		}
	} else {
		w.sb.WriteString(";")
	}
	w.sb.WriteString(" ")
	if n.Cond != nil {
		w.writeExpr(n.Cond, 0)
	}
	w.sb.WriteString("; ")
	if n.Iter != nil {
		if exprStmt, ok := n.Iter.(*ast.ExprStmt); ok {
			w.writeExpr(exprStmt.Expr, 0)
		}
	}
	w.sb.WriteString(")")
	w.beginBlock()
	if err := w.writeStmts(n.Body); err != nil {
		return err
	}
	w.endBlock()
	return nil
}
