package ir

import "testing"

func TestEqualScalars(t *testing.T) {
	tts := []struct {
		a, b *Node
		want bool
	}{
		{Null(), Null(), true},
		{FromBool(true), FromBool(true), true},
		{FromBool(true), FromBool(false), false},
		{FromString("a"), FromString("a"), true},
		{FromString("a"), FromString("b"), false},
		{FromInt(1), FromInt(1), true},
		{FromInt(1), FromInt(2), false},
		{FromFloat(1.5), FromFloat(1.5), true},
		// integer/float distinction is intentional
		{FromInt(1), FromFloat(1.0), false},
		{Null(), FromBool(false), false},
	}
	for i, tt := range tts {
		if got := Equal(tt.a, tt.b); got != tt.want {
			t.Errorf("case %d: Equal = %v, want %v", i, got, tt.want)
		}
	}
}

func TestEqualComposite(t *testing.T) {
	mk := func() *Node {
		return FromMap(map[string]*Node{
			"a": FromInt(1),
			"b": FromSlice([]*Node{FromString("x"), Null()}),
		})
	}
	if !Equal(mk(), mk()) {
		t.Error("identical objects not equal")
	}
	// key order must not matter
	a := FromKeyVals([]KeyVal{
		{Key: FromString("x"), Val: FromInt(1)},
		{Key: FromString("y"), Val: FromInt(2)},
	})
	b := FromKeyVals([]KeyVal{
		{Key: FromString("y"), Val: FromInt(2)},
		{Key: FromString("x"), Val: FromInt(1)},
	})
	if !Equal(a, b) {
		t.Error("field order affected equality")
	}
	// array order must matter
	if Equal(
		FromSlice([]*Node{FromInt(1), FromInt(2)}),
		FromSlice([]*Node{FromInt(2), FromInt(1)}),
	) {
		t.Error("array order ignored")
	}
}

func TestHashConsistentWithEqual(t *testing.T) {
	a := FromKeyVals([]KeyVal{
		{Key: FromString("x"), Val: FromInt(1)},
		{Key: FromString("y"), Val: FromFloat(2.5)},
	})
	b := FromKeyVals([]KeyVal{
		{Key: FromString("y"), Val: FromFloat(2.5)},
		{Key: FromString("x"), Val: FromInt(1)},
	})
	if a.Hash() != b.Hash() {
		t.Error("equal objects hash differently")
	}
	if FromInt(1).Hash() == FromFloat(1.0).Hash() {
		t.Error("int and float hash identically")
	}
}

func TestCompareRanks(t *testing.T) {
	ordered := []*Node{
		Null(),
		FromBool(false),
		FromInt(3),
		FromString("a"),
		FromSlice(nil),
		FromMap(nil),
	}
	for i := 0; i < len(ordered)-1; i++ {
		if Compare(ordered[i], ordered[i+1]) >= 0 {
			t.Errorf("rank %d not below rank %d", i, i+1)
		}
	}
}
