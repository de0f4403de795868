package eval

import (
	"github.com/chewxy/math32"
	"golang.org/x/exp/constraints"

	"github.com/gogpu/forge/shader/ast"
)

// compareOrdered evaluates the six relational/equality operators shared
// by every scalar numeric kind, so int32/uint32/float32 comparisons don't
// each need their own copy of the same six cases. The second return
// value is false for any op that isn't a comparison.
func compareOrdered[T constraints.Ordered](op ast.BinaryOp, a, b T) (ast.ConstantValue, bool) {
	switch op {
	case ast.BinaryLess:
		return ast.BoolValue(a < b), true
	case ast.BinaryGreater:
		return ast.BoolValue(a > b), true
	case ast.BinaryEqual:
		return ast.BoolValue(a == b), true
	case ast.BinaryNotEqual:
		return ast.BoolValue(a != b), true
	case ast.BinaryLessOrEqual:
		return ast.BoolValue(a <= b), true
	case ast.BinaryGreaterOrEqual:
		return ast.BoolValue(a >= b), true
	default:
		return ast.ConstantValue{}, false
	}
}

// Evaluate attempts to fold e down to a single constant value. The second
// return value is false when e is not reducible to a constant at all
// (it reads a variable, calls a function, indexes a runtime value, ...)
// or when the operand types involved don't admit the requested operation
// (e.g. a bitwise op on a vector).
func Evaluate(e ast.Expr) (ast.ConstantValue, bool) {
	switch n := e.(type) {
	case *ast.ConstantExpr:
		return n.Value, true
	case *ast.UnaryExpr:
		return evalUnary(n)
	case *ast.BinaryExpr:
		return evalBinary(n)
	case *ast.TernaryExpr:
		return evalTernary(n)
	default:
		return ast.ConstantValue{}, false
	}
}

// EvaluateCondition folds e and converts the result to a bool using the
// same truthiness rule as an if/ternary condition: a bool is itself, any
// other value is true iff it differs from its type's zero value.
func EvaluateCondition(e ast.Expr) (bool, bool) {
	v, ok := Evaluate(e)
	if !ok {
		return false, false
	}
	return asBool(v), true
}

func asBool(v ast.ConstantValue) bool {
	if v.Kind == ast.KindBool {
		return v.B
	}
	return !v.IsZero()
}

func evalUnary(n *ast.UnaryExpr) (ast.ConstantValue, bool) {
	v, ok := Evaluate(n.Operand)
	if !ok {
		return ast.ConstantValue{}, false
	}
	switch n.Op {
	case ast.UnaryPositive:
		return v, true
	case ast.UnaryNegative:
		return negate(v)
	case ast.UnaryLogicalNot:
		if v.Kind != ast.KindBool {
			return ast.ConstantValue{}, false
		}
		return ast.BoolValue(!v.B), true
	default:
		// Increment/decrement mutate an lvalue: they have no meaning
		// against a folded value and are never constant.
		return ast.ConstantValue{}, false
	}
}

// negate produces -v. Negating an unsigned value yields a signed one
// (there is no representable negative unsigned constant), matching the
// promotion already used for mixed signed/unsigned binary operations.
func negate(v ast.ConstantValue) (ast.ConstantValue, bool) {
	n := v.Kind.Components()
	switch v.Kind.Scalar() {
	case ast.KindF32:
		out := make([]float32, n)
		for i := 0; i < n; i++ {
			out[i] = -v.F[i]
		}
		return vecOrScalarF(out), true
	case ast.KindI32:
		out := make([]int32, n)
		for i := 0; i < n; i++ {
			out[i] = -v.I[i]
		}
		return vecOrScalarI(out), true
	case ast.KindU32:
		out := make([]int32, n)
		for i := 0; i < n; i++ {
			out[i] = -int32(v.U[i])
		}
		return vecOrScalarI(out), true
	default:
		return ast.ConstantValue{}, false
	}
}

func evalTernary(n *ast.TernaryExpr) (ast.ConstantValue, bool) {
	cond, ok := Evaluate(n.Cond)
	if !ok {
		return ast.ConstantValue{}, false
	}
	if asBool(cond) {
		return Evaluate(n.Then)
	}
	return Evaluate(n.Else)
}

func evalBinary(n *ast.BinaryExpr) (ast.ConstantValue, bool) {
	left, ok := Evaluate(n.Left)
	if !ok {
		return ast.ConstantValue{}, false
	}
	right, ok := Evaluate(n.Right)
	if !ok {
		return ast.ConstantValue{}, false
	}

	leftBool, rightBool := left.Kind == ast.KindBool, right.Kind == ast.KindBool
	leftVec, rightVec := left.Kind.IsVector(), right.Kind.IsVector()

	switch {
	case leftBool && rightBool:
		return boolBinary(n.Op, left.B, right.B)
	case !leftBool && !rightBool && !leftVec && !rightVec:
		return scalarBinary(n.Op, left, right)
	case leftVec && rightVec:
		if left.Kind.Components() != right.Kind.Components() {
			return ast.ConstantValue{}, false
		}
		return vectorBinary(n.Op, left, right)
	case leftVec != rightVec:
		vec, scalar := left, right
		if rightVec {
			vec, scalar = right, left
		}
		return vectorScalarBinary(n.Op, vec, scalar)
	default:
		return ast.ConstantValue{}, false
	}
}

func boolBinary(op ast.BinaryOp, a, b bool) (ast.ConstantValue, bool) {
	switch op {
	case ast.BinaryLogicalAnd:
		return ast.BoolValue(a && b), true
	case ast.BinaryLogicalOr:
		return ast.BoolValue(a || b), true
	case ast.BinaryEqual:
		return ast.BoolValue(a == b), true
	case ast.BinaryNotEqual:
		return ast.BoolValue(a != b), true
	default:
		return ast.ConstantValue{}, false
	}
}

func widenScalar(a, b ast.Kind) ast.Kind {
	if a == ast.KindF32 || b == ast.KindF32 {
		return ast.KindF32
	}
	if a == ast.KindI32 || b == ast.KindI32 {
		return ast.KindI32
	}
	return ast.KindU32
}

func scalarBinary(op ast.BinaryOp, left, right ast.ConstantValue) (ast.ConstantValue, bool) {
	switch widenScalar(left.Kind, right.Kind) {
	case ast.KindF32:
		a, _ := asF32(left)
		b, _ := asF32(right)
		return scalarBinaryF32(op, a, b)
	case ast.KindI32:
		a, _ := asI32(left)
		b, _ := asI32(right)
		return scalarBinaryI32(op, a, b)
	default:
		a, _ := asU32(left)
		b, _ := asU32(right)
		return scalarBinaryU32(op, a, b)
	}
}

func asI32(v ast.ConstantValue) (int32, bool) {
	switch v.Kind {
	case ast.KindI32:
		return v.I[0], true
	case ast.KindU32:
		return int32(v.U[0]), true
	case ast.KindF32:
		return int32(v.F[0]), true
	default:
		return 0, false
	}
}

func asU32(v ast.ConstantValue) (uint32, bool) {
	switch v.Kind {
	case ast.KindI32:
		return uint32(v.I[0]), true
	case ast.KindU32:
		return v.U[0], true
	case ast.KindF32:
		return uint32(v.F[0]), true
	default:
		return 0, false
	}
}

func asF32(v ast.ConstantValue) (float32, bool) {
	switch v.Kind {
	case ast.KindI32:
		return float32(v.I[0]), true
	case ast.KindU32:
		return float32(v.U[0]), true
	case ast.KindF32:
		return v.F[0], true
	default:
		return 0, false
	}
}

func scalarBinaryF32(op ast.BinaryOp, a, b float32) (ast.ConstantValue, bool) {
	switch op {
	case ast.BinaryAdd:
		return ast.F32Value(a + b), true
	case ast.BinarySubtract:
		return ast.F32Value(a - b), true
	case ast.BinaryMultiply:
		return ast.F32Value(a * b), true
	case ast.BinaryDivide:
		return ast.F32Value(a / b), true
	case ast.BinaryPower:
		return ast.F32Value(math32.Pow(a, b)), true
	case ast.BinaryModulo:
		return ast.F32Value(math32.Mod(a, b)), true
	default:
		return compareOrdered(op, a, b)
	}
}

func scalarBinaryI32(op ast.BinaryOp, a, b int32) (ast.ConstantValue, bool) {
	switch op {
	case ast.BinaryAdd:
		return ast.I32Value(a + b), true
	case ast.BinarySubtract:
		return ast.I32Value(a - b), true
	case ast.BinaryMultiply:
		return ast.I32Value(a * b), true
	case ast.BinaryDivide:
		return ast.I32Value(a / b), true
	case ast.BinaryPower:
		return ast.I32Value(powI32(a, b)), true
	case ast.BinaryModulo:
		return ast.I32Value(a % b), true
	default:
		return compareOrdered(op, a, b)
	}
}

func scalarBinaryU32(op ast.BinaryOp, a, b uint32) (ast.ConstantValue, bool) {
	switch op {
	case ast.BinaryAdd:
		return ast.U32Value(a + b), true
	case ast.BinarySubtract:
		return ast.U32Value(a - b), true
	case ast.BinaryMultiply:
		return ast.U32Value(a * b), true
	case ast.BinaryDivide:
		return ast.U32Value(a / b), true
	case ast.BinaryPower:
		return ast.U32Value(powU32(a, b)), true
	case ast.BinaryModulo:
		return ast.U32Value(a % b), true
	default:
		return compareOrdered(op, a, b)
	}
}

func powI32(a, b int32) int32 {
	return int32(math32.Round(math32.Pow(float32(a), float32(b))))
}

func powU32(a, b uint32) uint32 {
	return uint32(math32.Round(math32.Pow(float32(a), float32(b))))
}

func componentsF32(v ast.ConstantValue) []float32 {
	n := v.Kind.Components()
	out := make([]float32, n)
	switch v.Kind.Scalar() {
	case ast.KindF32:
		copy(out, v.F[:n])
	case ast.KindI32:
		for i := 0; i < n; i++ {
			out[i] = float32(v.I[i])
		}
	case ast.KindU32:
		for i := 0; i < n; i++ {
			out[i] = float32(v.U[i])
		}
	}
	return out
}

func componentsI32(v ast.ConstantValue) []int32 {
	n := v.Kind.Components()
	out := make([]int32, n)
	switch v.Kind.Scalar() {
	case ast.KindF32:
		for i := 0; i < n; i++ {
			out[i] = int32(v.F[i])
		}
	case ast.KindI32:
		copy(out, v.I[:n])
	case ast.KindU32:
		for i := 0; i < n; i++ {
			out[i] = int32(v.U[i])
		}
	}
	return out
}

func componentsU32(v ast.ConstantValue) []uint32 {
	n := v.Kind.Components()
	out := make([]uint32, n)
	switch v.Kind.Scalar() {
	case ast.KindF32:
		for i := 0; i < n; i++ {
			out[i] = uint32(v.F[i])
		}
	case ast.KindI32:
		for i := 0; i < n; i++ {
			out[i] = uint32(v.I[i])
		}
	case ast.KindU32:
		copy(out, v.U[:n])
	}
	return out
}

func vecOrScalarF(c []float32) ast.ConstantValue {
	if len(c) == 1 {
		return ast.F32Value(c[0])
	}
	return ast.VecFValue(c...)
}

func vecOrScalarI(c []int32) ast.ConstantValue {
	if len(c) == 1 {
		return ast.I32Value(c[0])
	}
	return ast.VecIValue(c...)
}

func vecOrScalarU(c []uint32) ast.ConstantValue {
	if len(c) == 1 {
		return ast.U32Value(c[0])
	}
	return ast.VecUValue(c...)
}

// vectorBinary applies op componentwise to two vectors of equal arity,
// widening to a common component type first. Add/Sub/Mul/Div produce a
// vector result; Equal/NotEqual compare every component and produce a
// single bool, matching a vector's whole-value equality rather than a
// per-component mask.
func vectorBinary(op ast.BinaryOp, left, right ast.ConstantValue) (ast.ConstantValue, bool) {
	switch widenScalar(left.Kind.Scalar(), right.Kind.Scalar()) {
	case ast.KindF32:
		return vectorBinaryF32(op, componentsF32(left), componentsF32(right))
	case ast.KindI32:
		return vectorBinaryI32(op, componentsI32(left), componentsI32(right))
	default:
		return vectorBinaryU32(op, componentsU32(left), componentsU32(right))
	}
}

func vectorBinaryF32(op ast.BinaryOp, a, b []float32) (ast.ConstantValue, bool) {
	switch op {
	case ast.BinaryAdd, ast.BinarySubtract, ast.BinaryMultiply, ast.BinaryDivide:
		out := make([]float32, len(a))
		for i := range a {
			out[i] = applyF32(op, a[i], b[i])
		}
		return ast.VecFValue(out...), true
	case ast.BinaryEqual:
		return ast.BoolValue(equalF32(a, b)), true
	case ast.BinaryNotEqual:
		return ast.BoolValue(!equalF32(a, b)), true
	default:
		return ast.ConstantValue{}, false
	}
}

func vectorBinaryI32(op ast.BinaryOp, a, b []int32) (ast.ConstantValue, bool) {
	switch op {
	case ast.BinaryAdd, ast.BinarySubtract, ast.BinaryMultiply, ast.BinaryDivide:
		out := make([]int32, len(a))
		for i := range a {
			out[i] = applyI32(op, a[i], b[i])
		}
		return ast.VecIValue(out...), true
	case ast.BinaryEqual:
		return ast.BoolValue(equalI32(a, b)), true
	case ast.BinaryNotEqual:
		return ast.BoolValue(!equalI32(a, b)), true
	default:
		return ast.ConstantValue{}, false
	}
}

func vectorBinaryU32(op ast.BinaryOp, a, b []uint32) (ast.ConstantValue, bool) {
	switch op {
	case ast.BinaryAdd, ast.BinarySubtract, ast.BinaryMultiply, ast.BinaryDivide:
		out := make([]uint32, len(a))
		for i := range a {
			out[i] = applyU32(op, a[i], b[i])
		}
		return ast.VecUValue(out...), true
	case ast.BinaryEqual:
		return ast.BoolValue(equalU32(a, b)), true
	case ast.BinaryNotEqual:
		return ast.BoolValue(!equalU32(a, b)), true
	default:
		return ast.ConstantValue{}, false
	}
}

// vectorScalarBinary applies op between a vector and a scalar,
// broadcasting the scalar across every component. Only the arithmetic
// operators are defined for this combination; comparisons are not.
func vectorScalarBinary(op ast.BinaryOp, vec, scalar ast.ConstantValue) (ast.ConstantValue, bool) {
	switch op {
	case ast.BinaryAdd, ast.BinarySubtract, ast.BinaryMultiply, ast.BinaryDivide:
	default:
		return ast.ConstantValue{}, false
	}
	switch widenScalar(vec.Kind.Scalar(), scalar.Kind) {
	case ast.KindF32:
		a := componentsF32(vec)
		b, _ := asF32(scalar)
		out := make([]float32, len(a))
		for i := range a {
			out[i] = applyF32(op, a[i], b)
		}
		return ast.VecFValue(out...), true
	case ast.KindI32:
		a := componentsI32(vec)
		b, _ := asI32(scalar)
		out := make([]int32, len(a))
		for i := range a {
			out[i] = applyI32(op, a[i], b)
		}
		return ast.VecIValue(out...), true
	default:
		a := componentsU32(vec)
		b, _ := asU32(scalar)
		out := make([]uint32, len(a))
		for i := range a {
			out[i] = applyU32(op, a[i], b)
		}
		return ast.VecUValue(out...), true
	}
}

func applyF32(op ast.BinaryOp, a, b float32) float32 {
	switch op {
	case ast.BinaryAdd:
		return a + b
	case ast.BinarySubtract:
		return a - b
	case ast.BinaryMultiply:
		return a * b
	default:
		return a / b
	}
}

func applyI32(op ast.BinaryOp, a, b int32) int32 {
	switch op {
	case ast.BinaryAdd:
		return a + b
	case ast.BinarySubtract:
		return a - b
	case ast.BinaryMultiply:
		return a * b
	default:
		return a / b
	}
}

func applyU32(op ast.BinaryOp, a, b uint32) uint32 {
	switch op {
	case ast.BinaryAdd:
		return a + b
	case ast.BinarySubtract:
		return a - b
	case ast.BinaryMultiply:
		return a * b
	default:
		return a / b
	}
}

func equalF32(a, b []float32) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalI32(a, b []int32) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalU32(a, b []uint32) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
