package parser

import (
	"testing"

	"github.com/gogpu/forge/gputypes"
	"github.com/gogpu/forge/shader/ast"
)

func TestParseStructDecl(t *testing.T) {
	decls, err := Parse(`
		struct Light {
			vec3 color;
			float intensity;
		}
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(decls) != 1 {
		t.Fatalf("got %d decls, want 1", len(decls))
	}
	s, ok := decls[0].(*ast.StructDeclStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.StructDeclStmt", decls[0])
	}
	if s.Name != "Light" || len(s.Members) != 2 {
		t.Fatalf("got %+v", s)
	}
	if s.Members[0].Name != "color" || !s.Members[0].Type.Equal(ast.Vector(ast.PrimitiveFloat, 3)) {
		t.Errorf("got member 0 = %+v", s.Members[0])
	}
}

func TestParseInputOutputWithLayout(t *testing.T) {
	decls, err := Parse(`
		input layout(location = 0) vec3 normal;
		output layout(location = 1) vec4 fragColor;
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	in, ok := decls[0].(*ast.InputDeclStmt)
	if !ok || in.Location != 0 || in.Name != "normal" {
		t.Fatalf("got %+v", decls[0])
	}
	out, ok := decls[1].(*ast.OutputDeclStmt)
	if !ok || out.Location != 1 || out.Name != "fragColor" {
		t.Fatalf("got %+v", decls[1])
	}
}

func TestParseExternalWithStd140(t *testing.T) {
	decls, err := Parse(`
		struct Light { vec3 color; }
		external layout(set = 0, binding = 2, std140) Light mainLight;
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ext, ok := decls[1].(*ast.ExternalDeclStmt)
	if !ok {
		t.Fatalf("got %T", decls[1])
	}
	if ext.Set != 0 || ext.Binding != 2 || ext.Layout != ast.LayoutStd140 {
		t.Errorf("got %+v", ext)
	}
}

func TestParseOptionWithConstantDefault(t *testing.T) {
	decls, err := Parse(`option uint maxLights = 4 + 4;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	opt, ok := decls[0].(*ast.OptionDeclStmt)
	if !ok {
		t.Fatalf("got %T", decls[0])
	}
	want := ast.U32Value(8)
	if !opt.Default.Equal(want) {
		t.Errorf("got default %+v, want %+v", opt.Default, want)
	}
}

func TestParseOptionRejectsNonConstantDefault(t *testing.T) {
	_, err := Parse(`
		external layout(set=0, binding=0) float x;
		option float y = x;
	`)
	if err == nil {
		t.Fatal("expected an error for a non-constant option default")
	}
}

func TestParseFunctionAndEntryFunction(t *testing.T) {
	decls, err := Parse(`
		float square(float x) {
			return x * x;
		}

		output layout(location = 0) vec4 fragColor;

		fragment void main() {
			fragColor = vec4(1.0, 0.0, 0.0, 1.0);
		}
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn, ok := decls[0].(*ast.FunctionDeclStmt)
	if !ok || fn.Name != "square" || len(fn.Params) != 1 {
		t.Fatalf("got %+v", decls[0])
	}
	entry, ok := decls[2].(*ast.EntryFunctionDeclStmt)
	if !ok || entry.Name != "main" || entry.Stage != gputypes.ShaderStageFragment {
		t.Fatalf("got %+v", decls[2])
	}
	if len(entry.Body) != 1 {
		t.Fatalf("got %d body statements, want 1", len(entry.Body))
	}
	exprStmt, ok := entry.Body[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("got %T", entry.Body[0])
	}
	assign, ok := exprStmt.Expr.(*ast.AssignmentExpr)
	if !ok {
		t.Fatalf("got %T", exprStmt.Expr)
	}
	ctor, ok := assign.Value.(*ast.ConstructorExpr)
	if !ok || len(ctor.Args) != 4 {
		t.Fatalf("got %+v", assign.Value)
	}
}

func TestParseIfElseChain(t *testing.T) {
	decls, err := Parse(`
		void f() {
			if (1 < 2) {
				return;
			} else if (2 < 3) {
				return;
			} else {
				discard;
			}
		}
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn := decls[0].(*ast.FunctionDeclStmt)
	cond, ok := fn.Body[0].(*ast.ConditionalStmt)
	if !ok || len(cond.Branches) != 3 {
		t.Fatalf("got %+v", fn.Body[0])
	}
	if cond.Branches[2].Cond != nil {
		t.Errorf("expected trailing else branch to have nil Cond")
	}
}

func TestParseForLoop(t *testing.T) {
	decls, err := Parse(`
		void f() {
			for (int i = 0; i < 4; i++) {
				continue;
			}
		}
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn := decls[0].(*ast.FunctionDeclStmt)
	loop, ok := fn.Body[0].(*ast.ForStmt)
	if !ok {
		t.Fatalf("got %T", fn.Body[0])
	}
	if _, ok := loop.Init.(*ast.VariableDeclStmt); !ok {
		t.Errorf("got init %T", loop.Init)
	}
	if loop.Cond == nil {
		t.Errorf("expected a loop condition")
	}
	if _, ok := loop.Iter.(*ast.ExprStmt); !ok {
		t.Errorf("got iter %T", loop.Iter)
	}
}

func TestParseOptionalStmt(t *testing.T) {
	decls, err := Parse(`
		option bool useFog = true;
		void f() {
			optional (useFog) {
				discard;
			}
		}
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn := decls[1].(*ast.FunctionDeclStmt)
	opt, ok := fn.Body[0].(*ast.OptionalStmt)
	if !ok || len(opt.Body) != 1 {
		t.Fatalf("got %+v", fn.Body[0])
	}
}

func TestParseSwizzleVsMemberAccess(t *testing.T) {
	decls, err := Parse(`
		struct Light { vec3 color; }
		external layout(set=0, binding=0) Light mainLight;
		void f() {
			vec3 a = mainLight.color;
			vec2 b = a.xy;
		}
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn := decls[2].(*ast.FunctionDeclStmt)

	decl0 := fn.Body[0].(*ast.VariableDeclStmt)
	if _, ok := decl0.Init.(*ast.AccessIdentifierExpr); !ok {
		t.Errorf("got %T, want *ast.AccessIdentifierExpr", decl0.Init)
	}

	decl1 := fn.Body[1].(*ast.VariableDeclStmt)
	swizzle, ok := decl1.Init.(*ast.SwizzleExpr)
	if !ok {
		t.Fatalf("got %T, want *ast.SwizzleExpr", decl1.Init)
	}
	if len(swizzle.Components) != 2 || swizzle.Components[0] != 0 || swizzle.Components[1] != 1 {
		t.Errorf("got components %v, want [0 1]", swizzle.Components)
	}
}

func TestParseOperatorPrecedence(t *testing.T) {
	decls, err := Parse(`
		void f() {
			int a = 1 + 2 * 3;
		}
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn := decls[0].(*ast.FunctionDeclStmt)
	decl := fn.Body[0].(*ast.VariableDeclStmt)
	bin, ok := decl.Init.(*ast.BinaryExpr)
	if !ok || bin.Op != ast.BinaryAdd {
		t.Fatalf("got %+v, want top-level +", decl.Init)
	}
	if _, ok := bin.Right.(*ast.BinaryExpr); !ok {
		t.Errorf("got right operand %T, want *ast.BinaryExpr for the multiply", bin.Right)
	}
}

func TestParsePowerIsRightAssociative(t *testing.T) {
	decls, err := Parse(`
		void f() {
			float a = 2.0 ^^ 3.0 ^^ 2.0;
		}
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn := decls[0].(*ast.FunctionDeclStmt)
	decl := fn.Body[0].(*ast.VariableDeclStmt)
	top, ok := decl.Init.(*ast.BinaryExpr)
	if !ok || top.Op != ast.BinaryPower {
		t.Fatalf("got %+v", decl.Init)
	}
	if _, ok := top.Right.(*ast.BinaryExpr); !ok {
		t.Errorf("expected the right operand to itself be the nested power expression")
	}
}

func TestParseBuiltInCall(t *testing.T) {
	decls, err := Parse(`
		void f() {
			float a = dot(vec3(1.0, 0.0, 0.0), vec3(0.0, 1.0, 0.0));
		}
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn := decls[0].(*ast.FunctionDeclStmt)
	decl := fn.Body[0].(*ast.VariableDeclStmt)
	call, ok := decl.Init.(*ast.BuiltInCallExpr)
	if !ok || call.Func != ast.BuiltInDot || len(call.Args) != 2 {
		t.Fatalf("got %+v", decl.Init)
	}
}

func TestParseCompoundAssignment(t *testing.T) {
	decls, err := Parse(`
		void f() {
			int a = 0;
			a += 3;
		}
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn := decls[0].(*ast.FunctionDeclStmt)
	exprStmt := fn.Body[1].(*ast.ExprStmt)
	assign, ok := exprStmt.Expr.(*ast.AssignmentExpr)
	if !ok || !assign.Compound || assign.Op != ast.BinaryAdd {
		t.Fatalf("got %+v", exprStmt.Expr)
	}
}

func TestParseSyntaxErrorReportsPosition(t *testing.T) {
	_, err := Parse("struct Light { vec3 color }")
	if err == nil {
		t.Fatal("expected a syntax error for a missing semicolon")
	}
	if _, ok := err.(*SyntaxError); !ok {
		t.Fatalf("got error of type %T, want *SyntaxError", err)
	}
}

func TestParseDottedIncludePath(t *testing.T) {
	decls, err := Parse(`include Forge.GBufferWrite.Color;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	inc, ok := decls[0].(*ast.IncludeStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.IncludeStmt", decls[0])
	}
	if inc.Name != "Forge.GBufferWrite.Color" {
		t.Fatalf("got include name %q", inc.Name)
	}
}

func TestParseIntAndUintVectorTypes(t *testing.T) {
	decls, err := Parse(`
		void f() {
			ivec3 a = ivec3(1, 2, 3);
			uvec2 b = uvec2(1u, 2u);
		}
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn := decls[0].(*ast.FunctionDeclStmt)
	a := fn.Body[0].(*ast.VariableDeclStmt)
	if a.Type.Primitive != ast.PrimitiveInt || a.Type.VecSize != 3 {
		t.Fatalf("got type %+v", a.Type)
	}
	b := fn.Body[1].(*ast.VariableDeclStmt)
	if b.Type.Primitive != ast.PrimitiveUint || b.Type.VecSize != 2 {
		t.Fatalf("got type %+v", b.Type)
	}
}
