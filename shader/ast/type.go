package ast

// TypeKind is the sum of possible type shapes a Type value can take: void,
// a scalar primitive, a vector, a matrix, a sampler, a named struct
// reference, or an array of some component type.
type TypeKind uint8

const (
	TypeVoid TypeKind = iota
	TypePrimitive
	TypeVector
	TypeMatrix
	TypeSampler
	TypeStruct
	TypeArray
)

// PrimitiveKind is the scalar component type of a Primitive or Vector or
// Matrix type.
type PrimitiveKind uint8

const (
	PrimitiveBool PrimitiveKind = iota
	PrimitiveInt
	PrimitiveUint
	PrimitiveFloat
)

func (p PrimitiveKind) String() string {
	switch p {
	case PrimitiveBool:
		return "bool"
	case PrimitiveInt:
		return "int"
	case PrimitiveUint:
		return "uint"
	case PrimitiveFloat:
		return "float"
	default:
		return "?"
	}
}

// ArraySizeKind distinguishes how an Array type's length is specified.
type ArraySizeKind uint8

const (
	ArraySizeImplicit ArraySizeKind = iota
	ArraySizeConstant
	ArraySizeOption
)

// SamplerDim is the dimensionality of a Sampler type.
type SamplerDim uint8

const (
	Sampler2D SamplerDim = iota
	Sampler3D
	SamplerCube
)

// Type is a single sum type covering every shape a declared or expression
// type can take. Only the fields relevant to Kind are meaningful; this
// favors flat, switch-driven data over a type hierarchy of Go interfaces
// for something that never grows new named implementations at runtime.
type Type struct {
	Kind TypeKind

	// Primitive, Vector, Matrix
	Primitive PrimitiveKind
	VecSize   int // Vector: 2..4
	MatCols   int // Matrix
	MatRows   int // Matrix

	// Sampler
	SamplerDim    SamplerDim
	SamplerResult PrimitiveKind // component type sampled, e.g. float vs int

	// Struct
	StructName string

	// Array
	ArrayComponent *Type
	ArraySizeKind  ArraySizeKind
	ArraySize      int    // meaningful iff ArraySizeKind == ArraySizeConstant
	ArraySizeOpt   string // meaningful iff ArraySizeKind == ArraySizeOption
}

// Void is the type of statements and functions with no return value.
var Void = Type{Kind: TypeVoid}

// Primitive constructs a scalar primitive type.
func Primitive(p PrimitiveKind) Type { return Type{Kind: TypePrimitive, Primitive: p} }

// Vector constructs a vector type of n components of primitive type p.
func Vector(p PrimitiveKind, n int) Type { return Type{Kind: TypeVector, Primitive: p, VecSize: n} }

// Matrix constructs a cols x rows matrix type of primitive type p
// (shading languages in this family only support float matrices, but the
// component is kept explicit rather than assumed).
func Matrix(p PrimitiveKind, cols, rows int) Type {
	return Type{Kind: TypeMatrix, Primitive: p, MatCols: cols, MatRows: rows}
}

// Sampler constructs a sampler type of the given dimensionality and
// sampled component type.
func Sampler(dim SamplerDim, result PrimitiveKind) Type {
	return Type{Kind: TypeSampler, SamplerDim: dim, SamplerResult: result}
}

// Struct constructs a named struct reference type.
func Struct(name string) Type { return Type{Kind: TypeStruct, StructName: name} }

// ArrayImplicit constructs an array type whose length is inferred from its
// initializer (e.g. an unsized function parameter array).
func ArrayImplicit(component Type) Type {
	return Type{Kind: TypeArray, ArrayComponent: &component, ArraySizeKind: ArraySizeImplicit}
}

// ArrayConstant constructs an array type of a fixed, known-at-parse-time length.
func ArrayConstant(component Type, size int) Type {
	return Type{Kind: TypeArray, ArrayComponent: &component, ArraySizeKind: ArraySizeConstant, ArraySize: size}
}

// ArrayOption constructs an array type whose length is the value of a
// named compile-time option, resolved by the preprocessor.
func ArrayOption(component Type, optionName string) Type {
	return Type{Kind: TypeArray, ArrayComponent: &component, ArraySizeKind: ArraySizeOption, ArraySizeOpt: optionName}
}

// Equal reports whether two types describe the same shape.
func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case TypeVoid:
		return true
	case TypePrimitive:
		return t.Primitive == o.Primitive
	case TypeVector:
		return t.Primitive == o.Primitive && t.VecSize == o.VecSize
	case TypeMatrix:
		return t.Primitive == o.Primitive && t.MatCols == o.MatCols && t.MatRows == o.MatRows
	case TypeSampler:
		return t.SamplerDim == o.SamplerDim && t.SamplerResult == o.SamplerResult
	case TypeStruct:
		return t.StructName == o.StructName
	case TypeArray:
		if t.ArraySizeKind != o.ArraySizeKind {
			return false
		}
		switch t.ArraySizeKind {
		case ArraySizeConstant:
			if t.ArraySize != o.ArraySize {
				return false
			}
		case ArraySizeOption:
			if t.ArraySizeOpt != o.ArraySizeOpt {
				return false
			}
		}
		if (t.ArrayComponent == nil) != (o.ArrayComponent == nil) {
			return false
		}
		if t.ArrayComponent == nil {
			return true
		}
		return t.ArrayComponent.Equal(*o.ArrayComponent)
	}
	return false
}

// ConstantKind returns the ast.Kind a constant of this type would take,
// for primitive and vector types only. Returns KindInvalid for types that
// have no constant representation (matrix, sampler, struct, array).
func (t Type) ConstantKind() Kind {
	var scalar Kind
	switch t.Primitive {
	case PrimitiveBool:
		scalar = KindBool
	case PrimitiveInt:
		scalar = KindI32
	case PrimitiveUint:
		scalar = KindU32
	case PrimitiveFloat:
		scalar = KindF32
	default:
		return KindInvalid
	}
	switch t.Kind {
	case TypePrimitive:
		return scalar
	case TypeVector:
		if scalar == KindBool {
			return KindInvalid
		}
		return VectorKind(scalar, t.VecSize)
	default:
		return KindInvalid
	}
}

// TypeOfConstant returns the Type of a ConstantValue of the given Kind.
func TypeOfConstant(k Kind) Type {
	switch k {
	case KindBool:
		return Primitive(PrimitiveBool)
	case KindI32:
		return Primitive(PrimitiveInt)
	case KindU32:
		return Primitive(PrimitiveUint)
	case KindF32:
		return Primitive(PrimitiveFloat)
	case KindVec2I:
		return Vector(PrimitiveInt, 2)
	case KindVec2U:
		return Vector(PrimitiveUint, 2)
	case KindVec2F:
		return Vector(PrimitiveFloat, 2)
	case KindVec3I:
		return Vector(PrimitiveInt, 3)
	case KindVec3U:
		return Vector(PrimitiveUint, 3)
	case KindVec3F:
		return Vector(PrimitiveFloat, 3)
	case KindVec4I:
		return Vector(PrimitiveInt, 4)
	case KindVec4U:
		return Vector(PrimitiveUint, 4)
	case KindVec4F:
		return Vector(PrimitiveFloat, 4)
	default:
		return Void
	}
}
