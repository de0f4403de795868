package writer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/forge/gputypes"
	"github.com/gogpu/forge/shader/ast"
)

// Settings controls the #version directive and GLSL dialect features a
// Write call targets.
type Settings struct {
	VersionMajor int
	VersionMinor int
}

// Write renders decls — the output of preprocess.Process followed by
// stage.Extract for stage — as GLSL source text.
func Write(decls []ast.Stmt, stage gputypes.ShaderStage, settings Settings) (string, error) {
	w := &writer{
		stage:    stage,
		settings: settings,
		structs:  make(map[string]*ast.StructDeclStmt),
		blockSeq: make(map[string]int),
	}
	w.writeHeader()
	for _, d := range decls {
		if err := w.writeDecl(d); err != nil {
			return "", err
		}
	}
	return w.sb.String(), nil
}

type writer struct {
	sb       strings.Builder
	indent   int
	stage    gputypes.ShaderStage
	settings Settings
	structs  map[string]*ast.StructDeclStmt
	blockSeq map[string]int
}

func (w *writer) writeHeader() {
	version := w.settings.VersionMajor*100 + w.settings.VersionMinor*10
	w.sb.WriteString(fmt.Sprintf("#version %d\n", version))
	if version < 420 {
		w.sb.WriteString("#extension GL_ARB_shading_language_420pack : require\n")
	}
	if version < 410 {
		w.sb.WriteString("#extension GL_ARB_separate_shader_objects : require\n")
	}
	w.sb.WriteString("\n")
}

func (w *writer) newLine() {
	w.sb.WriteString("\n")
	for i := 0; i < w.indent; i++ {
		w.sb.WriteString("\t")
	}
}

func (w *writer) beginBlock() {
	w.newLine()
	w.sb.WriteString("{")
	w.indent++
	w.newLine()
}

func (w *writer) endBlock() {
	w.indent--
	w.newLine()
	w.sb.WriteString("}")
}

var interfaceStageSuffix = map[gputypes.ShaderStage]string{
	gputypes.ShaderStageVertex:                "VS",
	gputypes.ShaderStageFragment:               "FS",
	gputypes.ShaderStageCompute:                "CS",
	gputypes.ShaderStageTessellationControl:    "TC",
	gputypes.ShaderStageTessellationEvaluation:  "TE",
	gputypes.ShaderStageGeometry:                "GS",
}

func (w *writer) writeDecl(s ast.Stmt) error {
	switch n := s.(type) {
	case *ast.OptionDeclStmt:
		w.sb.WriteString("#define " + n.Name)
		w.sb.WriteString(" ")
		w.writeConstant(n.Default)
		w.newLine()
		return nil
	case *ast.StructDeclStmt:
		w.structs[n.Name] = n
		w.sb.WriteString("struct " + n.Name)
		w.beginBlock()
		w.writeMembers(n.Members)
		w.endBlock()
		w.sb.WriteString(";")
		w.newLine()
		return nil
	case *ast.InputDeclStmt:
		return w.writeInOutExternal(n.Type, n.Name, "in", layoutLocation(n.Location), "I"+interfaceStageSuffix[w.stage])
	case *ast.OutputDeclStmt:
		return w.writeInOutExternal(n.Type, n.Name, "out", layoutLocation(n.Location), "O"+interfaceStageSuffix[w.stage])
	case *ast.ExternalDeclStmt:
		return w.writeInOutExternal(n.Type, n.Name, "uniform", layoutSetBinding(n.Set, n.Binding), "U")
	case *ast.FunctionDeclStmt:
		return w.writeFunction(n)
	case *ast.EntryFunctionDeclStmt:
		w.sb.WriteString("void main()")
		w.beginBlock()
		if err := w.writeStmts(n.Body); err != nil {
			return err
		}
		w.endBlock()
		w.newLine()
		return nil
	case *ast.IncludeStmt:
		return nil
	default:
		return fmt.Errorf("writer: unexpected top-level declaration %T", s)
	}
}

func layoutLocation(location int) string {
	return fmt.Sprintf("layout(location = %d)", location)
}

func layoutSetBinding(set, binding int) string {
	return fmt.Sprintf("layout(set = %d, binding = %d)", set, binding)
}

func (w *writer) writeInOutExternal(t ast.Type, name, qualifier, layout, blockSuffix string) error {
	w.sb.WriteString(layout)
	w.sb.WriteString(" " + qualifier + " ")
	if t.Kind == ast.TypeStruct {
		if err := w.writeInterfaceBlock(t.StructName, name, blockSuffix); err != nil {
			return err
		}
	} else {
		w.writeVariableDeclaration(t, name, nil)
	}
	w.newLine()
	return nil
}

func (w *writer) writeInterfaceBlock(structName, instanceName, suffix string) error {
	decl, ok := w.structs[structName]
	if !ok {
		return fmt.Errorf("writer: struct %q is not defined", structName)
	}
	interfaceName := structName + "_" + suffix
	seq := w.blockSeq[interfaceName]
	w.blockSeq[interfaceName] = seq + 1

	w.sb.WriteString(interfaceName + strconv.Itoa(seq))
	w.beginBlock()
	w.writeMembers(decl.Members)
	w.endBlock()
	w.sb.WriteString(" " + instanceName + ";")
	return nil
}

func (w *writer) writeMembers(members []ast.StructMember) {
	for i, m := range members {
		w.writeVariableDeclaration(m.Type, m.Name, nil)
		if i != len(members)-1 {
			w.newLine()
		}
	}
}

func (w *writer) writeFunction(fn *ast.FunctionDeclStmt) error {
	w.sb.WriteString(w.typeName(fn.ReturnType) + " " + fn.Name + "(")
	for i, p := range fn.Params {
		if i > 0 {
			w.sb.WriteString(", ")
		}
		w.sb.WriteString(w.typeName(p.Type) + " " + p.Name)
	}
	w.sb.WriteString(")")
	w.beginBlock()
	if err := w.writeStmts(fn.Body); err != nil {
		return err
	}
	w.endBlock()
	w.newLine()
	return nil
}

func (w *writer) writeVariableDeclaration(t ast.Type, name string, init ast.Expr) {
	w.sb.WriteString(w.typeName(t) + " " + name)
	if init != nil {
		w.sb.WriteString(" = ")
		w.writeExpr(init, 0)
	}
	w.sb.WriteString(";")
}

func (w *writer) typeName(t ast.Type) string {
	switch t.Kind {
	case ast.TypeVoid:
		return "void"
	case ast.TypePrimitive:
		return t.Primitive.String()
	case ast.TypeVector:
		return vectorPrefix(t.Primitive) + "vec" + strconv.Itoa(t.VecSize)
	case ast.TypeMatrix:
		if t.MatCols == t.MatRows {
			return "mat" + strconv.Itoa(t.MatRows)
		}
		return "mat" + strconv.Itoa(t.MatRows) + "x" + strconv.Itoa(t.MatCols)
	case ast.TypeSampler:
		return vectorPrefix(t.SamplerResult) + "sampler" + samplerDimName(t.SamplerDim)
	case ast.TypeStruct:
		return t.StructName
	case ast.TypeArray:
		return w.typeName(*t.ArrayComponent)
	default:
		return "?"
	}
}

func vectorPrefix(p ast.PrimitiveKind) string {
	switch p {
	case ast.PrimitiveBool:
		return "b"
	case ast.PrimitiveInt:
		return "i"
	case ast.PrimitiveUint:
		return "u"
	default:
		return ""
	}
}

func samplerDimName(d ast.SamplerDim) string {
	switch d {
	case ast.Sampler2D:
		return "2D"
	case ast.Sampler3D:
		return "3D"
	default:
		return "Cube"
	}
}
