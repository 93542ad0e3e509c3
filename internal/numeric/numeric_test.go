package numeric

import "testing"

func TestVectorPromotesOnIntOverflow(t *testing.T) {
	v := NewVector()
	v.PushInt(10)
	v.PushInt(20)
	if v.Kind != KindUint8 {
		t.Fatalf("expected KindUint8, got %v", v.Kind)
	}
	v.PushInt(-1)
	if v.Kind != KindInt8 {
		t.Fatalf("expected KindInt8 after negative push, got %v", v.Kind)
	}
	if v.Len() != 3 {
		t.Fatalf("expected 3 elements, got %d", v.Len())
	}
	if v.At(0) != 10 || v.At(1) != 20 || v.At(2) != -1 {
		t.Fatalf("unexpected promoted values: %v %v %v", v.At(0), v.At(1), v.At(2))
	}
}

func TestVectorPromotesThroughLadder(t *testing.T) {
	v := NewVector()
	v.PushInt(1)
	v.PushInt(1 << 20) // overflows int16, lands in int32
	if v.Kind != KindInt32 {
		t.Fatalf("expected KindInt32, got %v", v.Kind)
	}
	if v.At(0) != 1 || v.At(1) != float64(1<<20) {
		t.Fatalf("unexpected values after ladder jump: %v %v", v.At(0), v.At(1))
	}
}

func TestVectorPromotesToFloat(t *testing.T) {
	v := NewVector()
	v.PushInt(5)
	v.PushFloat(3.5)
	if v.Kind != KindFloat32 && v.Kind != KindFloat64 {
		t.Fatalf("expected a float kind, got %v", v.Kind)
	}
	if v.At(0) != 5 || v.At(1) != 3.5 {
		t.Fatalf("unexpected values: %v %v", v.At(0), v.At(1))
	}
}

func TestCommonKind(t *testing.T) {
	if CommonKind(KindUint8, KindInt32) != KindInt32 {
		t.Fatalf("expected KindInt32 to dominate")
	}
	if CommonKind(KindFloat64, KindInt8) != KindFloat64 {
		t.Fatalf("expected KindFloat64 to dominate")
	}
}

func TestCatVectorPromotes(t *testing.T) {
	v := NewCatVector()
	for i := 0; i < 300; i++ {
		v.Push(uint64(i))
	}
	if v.Kind != CatKindUint16 {
		t.Fatalf("expected CatKindUint16 after 300 levels, got %v", v.Kind)
	}
	if v.At(299) != 299 {
		t.Fatalf("expected last index 299, got %d", v.At(299))
	}
}
