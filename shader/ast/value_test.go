package ast

import "testing"

func TestVectorKindRoundTrip(t *testing.T) {
	cases := []struct {
		scalar Kind
		n      int
		want   Kind
	}{
		{KindI32, 2, KindVec2I},
		{KindU32, 3, KindVec3U},
		{KindF32, 4, KindVec4F},
	}
	for _, c := range cases {
		got := VectorKind(c.scalar, c.n)
		if got != c.want {
			t.Errorf("VectorKind(%v, %d) = %v, want %v", c.scalar, c.n, got, c.want)
		}
		if got.Scalar() != c.scalar {
			t.Errorf("%v.Scalar() = %v, want %v", got, got.Scalar(), c.scalar)
		}
		if got.Components() != c.n {
			t.Errorf("%v.Components() = %d, want %d", got, got.Components(), c.n)
		}
	}
}

func TestVectorKindInvalid(t *testing.T) {
	if k := VectorKind(KindBool, 2); k != KindInvalid {
		t.Errorf("VectorKind(KindBool, 2) = %v, want KindInvalid", k)
	}
	if k := VectorKind(KindF32, 5); k != KindInvalid {
		t.Errorf("VectorKind(KindF32, 5) = %v, want KindInvalid", k)
	}
}

func TestConstantValueEqual(t *testing.T) {
	a := VecFValue(1, 2, 3)
	b := VecFValue(1, 2, 3)
	c := VecFValue(1, 2, 4)
	if !a.Equal(b) {
		t.Errorf("expected %v to equal %v", a, b)
	}
	if a.Equal(c) {
		t.Errorf("expected %v to not equal %v", a, c)
	}
	if a.Equal(I32Value(1)) {
		t.Errorf("values of different kind must not be equal")
	}
}

func TestConstantValueComponent(t *testing.T) {
	v := VecIValue(10, 20, 30)
	if got := v.Component(1); !got.Equal(I32Value(20)) {
		t.Errorf("Component(1) = %v, want 20", got)
	}
}

func TestConstantValueComponentPanicsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for out-of-range component index")
		}
	}()
	I32Value(1).Component(1)
}

func TestIsZero(t *testing.T) {
	if !VecFValue(0, 0, 0).IsZero() {
		t.Errorf("expected zero vector to report IsZero")
	}
	if VecFValue(0, 1, 0).IsZero() {
		t.Errorf("expected non-zero vector to not report IsZero")
	}
	if BoolValue(false).IsZero() != true {
		t.Errorf("expected false bool to report IsZero")
	}
}
