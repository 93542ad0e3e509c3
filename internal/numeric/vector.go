// Package numeric implements the adaptive-width numeric vector: a column
// storage primitive that starts at the narrowest integer type able to
// hold its first value and promotes ("widens") to the next rung of the
// ladder in place whenever a value would overflow the current type.
//
// This is a Go port of widening_vector_dynamic from
// original_source/src/widening_vector.hpp. Go has no template
// inheritance, so the C++ recursive-template implementation becomes a
// tagged union over typed slices with an explicit promote step.
package numeric

import "math"

// Kind identifies which rung of the numeric ladder a Vector currently
// occupies.
type Kind int

const (
	KindUint8 Kind = iota
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
)

func (k Kind) String() string {
	switch k {
	case KindUint8:
		return "uint8"
	case KindInt8:
		return "int8"
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindFloat32:
		return "float32"
	default:
		return "float64"
	}
}

// ladder order, matching widening_vector_dynamic<uint8_t, int8_t, int16_t,
// int32_t, int64_t, float>. float64 is appended as the final rung for
// values float32 cannot represent without loss, generalizing the
// original's top rung.
var ladder = []Kind{KindUint8, KindInt8, KindInt16, KindInt32, KindInt64, KindFloat32, KindFloat64}

// Vector is the tagged-union widening numeric column store. Exactly one
// of the typed slices is non-nil at any time; Kind names which one.
type Vector struct {
	Kind Kind
	U8   []uint8
	I8   []int8
	I16  []int16
	I32  []int32
	I64  []int64
	F32  []float32
	F64  []float64
}

// NewVector starts a vector at the narrowest rung, KindUint8, matching
// the original's initial active_ index of 0.
func NewVector() *Vector {
	return &Vector{Kind: KindUint8}
}

// Len returns the number of elements pushed so far.
func (v *Vector) Len() int {
	switch v.Kind {
	case KindUint8:
		return len(v.U8)
	case KindInt8:
		return len(v.I8)
	case KindInt16:
		return len(v.I16)
	case KindInt32:
		return len(v.I32)
	case KindInt64:
		return len(v.I64)
	case KindFloat32:
		return len(v.F32)
	default:
		return len(v.F64)
	}
}

// PushInt appends an integer value, promoting the vector's rung in place
// if val overflows the current integer rung, porting
// widening_vector_impl::v_push_back(long) / move_to_wider().
func (v *Vector) PushInt(val int64) {
	for {
		switch v.Kind {
		case KindUint8:
			if val >= 0 && val <= math.MaxUint8 {
				v.U8 = append(v.U8, uint8(val))
				return
			}
			v.promoteIntTo(KindInt8)
		case KindInt8:
			if val >= math.MinInt8 && val <= math.MaxInt8 {
				v.I8 = append(v.I8, int8(val))
				return
			}
			v.promoteIntTo(KindInt16)
		case KindInt16:
			if val >= math.MinInt16 && val <= math.MaxInt16 {
				v.I16 = append(v.I16, int16(val))
				return
			}
			v.promoteIntTo(KindInt32)
		case KindInt32:
			if val >= math.MinInt32 && val <= math.MaxInt32 {
				v.I32 = append(v.I32, int32(val))
				return
			}
			v.promoteIntTo(KindInt64)
		case KindInt64:
			v.I64 = append(v.I64, val)
			return
		case KindFloat32:
			v.F32 = append(v.F32, float32(val))
			return
		default:
			v.F64 = append(v.F64, float64(val))
			return
		}
	}
}

// PushFloat appends a floating-point value, promoting to float32/float64
// as needed. Any integer rung is widened straight to a float rung on the
// first float push, porting the original's float-vs-integral enable_if
// split in widening_vector_impl.
func (v *Vector) PushFloat(val float64) {
	switch v.Kind {
	case KindUint8, KindInt8, KindInt16, KindInt32, KindInt64:
		target := KindFloat32
		if val != 0 && (math.Abs(val) > math.MaxFloat32 || float64(float32(val)) != val) {
			target = KindFloat64
		}
		v.promoteIntTo(target)
		v.PushFloat(val)
	case KindFloat32:
		if val != 0 && (math.Abs(val) > math.MaxFloat32 || float64(float32(val)) != val) {
			v.promoteIntTo(KindFloat64)
			v.F64 = append(v.F64, val)
			return
		}
		v.F32 = append(v.F32, float32(val))
	default:
		v.F64 = append(v.F64, val)
	}
}

// promoteIntTo copies every existing element forward into the named
// wider rung, porting move_to_wider(): values_ is copied into wider_ and
// the old rung is abandoned.
func (v *Vector) promoteIntTo(target Kind) {
	switch target {
	case KindInt8:
		out := make([]int8, len(v.U8))
		for i, x := range v.U8 {
			out[i] = int8(x)
		}
		v.I8 = out
		v.U8 = nil
	case KindInt16:
		out := make([]int16, v.Len())
		v.copyIntoInt16(out)
		v.clear()
		v.I16 = out
	case KindInt32:
		out := make([]int32, v.Len())
		v.copyIntoInt32(out)
		v.clear()
		v.I32 = out
	case KindInt64:
		out := make([]int64, v.Len())
		v.copyIntoInt64(out)
		v.clear()
		v.I64 = out
	case KindFloat32:
		out := make([]float32, v.Len())
		v.copyIntoFloat32(out)
		v.clear()
		v.F32 = out
	case KindFloat64:
		out := make([]float64, v.Len())
		v.copyIntoFloat64(out)
		v.clear()
		v.F64 = out
	}
	v.Kind = target
}

func (v *Vector) clear() {
	v.U8, v.I8, v.I16, v.I32, v.I64, v.F32, v.F64 = nil, nil, nil, nil, nil, nil, nil
}

func (v *Vector) copyIntoInt16(out []int16) {
	switch v.Kind {
	case KindUint8:
		for i, x := range v.U8 {
			out[i] = int16(x)
		}
	case KindInt8:
		for i, x := range v.I8 {
			out[i] = int16(x)
		}
	}
}

func (v *Vector) copyIntoInt32(out []int32) {
	switch v.Kind {
	case KindUint8:
		for i, x := range v.U8 {
			out[i] = int32(x)
		}
	case KindInt8:
		for i, x := range v.I8 {
			out[i] = int32(x)
		}
	case KindInt16:
		for i, x := range v.I16 {
			out[i] = int32(x)
		}
	}
}

func (v *Vector) copyIntoInt64(out []int64) {
	switch v.Kind {
	case KindUint8:
		for i, x := range v.U8 {
			out[i] = int64(x)
		}
	case KindInt8:
		for i, x := range v.I8 {
			out[i] = int64(x)
		}
	case KindInt16:
		for i, x := range v.I16 {
			out[i] = int64(x)
		}
	case KindInt32:
		for i, x := range v.I32 {
			out[i] = int64(x)
		}
	}
}

func (v *Vector) copyIntoFloat32(out []float32) {
	switch v.Kind {
	case KindUint8:
		for i, x := range v.U8 {
			out[i] = float32(x)
		}
	case KindInt8:
		for i, x := range v.I8 {
			out[i] = float32(x)
		}
	case KindInt16:
		for i, x := range v.I16 {
			out[i] = float32(x)
		}
	case KindInt32:
		for i, x := range v.I32 {
			out[i] = float32(x)
		}
	case KindInt64:
		for i, x := range v.I64 {
			out[i] = float32(x)
		}
	}
}

func (v *Vector) copyIntoFloat64(out []float64) {
	switch v.Kind {
	case KindUint8:
		for i, x := range v.U8 {
			out[i] = float64(x)
		}
	case KindInt8:
		for i, x := range v.I8 {
			out[i] = float64(x)
		}
	case KindInt16:
		for i, x := range v.I16 {
			out[i] = float64(x)
		}
	case KindInt32:
		for i, x := range v.I32 {
			out[i] = float64(x)
		}
	case KindInt64:
		for i, x := range v.I64 {
			out[i] = float64(x)
		}
	case KindFloat32:
		for i, x := range v.F32 {
			out[i] = float64(x)
		}
	}
}

// At returns the value at index i as a float64, regardless of the
// current rung — used for conversion to categorical/text and for
// merge-time ladder joins.
func (v *Vector) At(i int) float64 {
	switch v.Kind {
	case KindUint8:
		return float64(v.U8[i])
	case KindInt8:
		return float64(v.I8[i])
	case KindInt16:
		return float64(v.I16[i])
	case KindInt32:
		return float64(v.I32[i])
	case KindInt64:
		return float64(v.I64[i])
	case KindFloat32:
		return float64(v.F32[i])
	default:
		return v.F64[i]
	}
}

// CommonKind returns the wider of two ladder rungs, porting
// get_common_type_index's integer/float-promotion join used when
// merging per-worker columns at load completion.
func CommonKind(a, b Kind) Kind {
	ia, ib := ladderIndex(a), ladderIndex(b)
	if ia > ib {
		return a
	}
	return b
}

func ladderIndex(k Kind) int {
	for i, r := range ladder {
		if r == k {
			return i
		}
	}
	return 0
}

// PromoteTo widens v in place to at least target, a no-op if v is
// already at or past target on the ladder.
func (v *Vector) PromoteTo(target Kind) {
	if ladderIndex(target) <= ladderIndex(v.Kind) {
		return
	}
	v.promoteIntTo(target)
}
