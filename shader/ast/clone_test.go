package ast

import "testing"

func TestCloneExprIndependence(t *testing.T) {
	orig := &BinaryExpr{
		Op:   BinaryAdd,
		Left: &VariableExpr{Name: "a"},
		Right: &ConstructorExpr{
			Type: Vector(PrimitiveFloat, 3),
			Args: []Expr{&ConstantExpr{Value: F32Value(1)}},
		},
	}
	clone := CloneExpr(orig).(*BinaryExpr)

	ctorClone := clone.Right.(*ConstructorExpr)
	ctorClone.Args[0] = &ConstantExpr{Value: F32Value(99)}

	ctorOrig := orig.Right.(*ConstructorExpr)
	if v := ctorOrig.Args[0].(*ConstantExpr).Value; !v.Equal(F32Value(1)) {
		t.Errorf("mutating clone affected original: got %v", v)
	}

	varClone := clone.Left.(*VariableExpr)
	varClone.Name = "b"
	if orig.Left.(*VariableExpr).Name != "a" {
		t.Errorf("mutating clone's VariableExpr affected original")
	}
}

func TestCloneStmtIndependence(t *testing.T) {
	orig := &ForStmt{
		Init: &VariableDeclStmt{Name: "i", Type: Primitive(PrimitiveInt), Init: &ConstantExpr{Value: I32Value(0)}},
		Cond: &BinaryExpr{Op: BinaryLess, Left: &VariableExpr{Name: "i"}, Right: &ConstantExpr{Value: I32Value(4)}},
		Body: []Stmt{&ExprStmt{Expr: &VariableExpr{Name: "i"}}},
	}
	clone := CloneStmt(orig).(*ForStmt)
	clone.Body[0].(*ExprStmt).Expr.(*VariableExpr).Name = "changed"

	if orig.Body[0].(*ExprStmt).Expr.(*VariableExpr).Name != "i" {
		t.Errorf("mutating cloned statement body affected original")
	}
}

func TestCloneNilIsNil(t *testing.T) {
	if CloneExpr(nil) != nil {
		t.Errorf("CloneExpr(nil) should be nil")
	}
	if CloneStmt(nil) != nil {
		t.Errorf("CloneStmt(nil) should be nil")
	}
}
