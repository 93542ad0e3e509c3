package numeric

import "math"

// CatKind identifies the rung of the categorical dictionary-index
// ladder, paralleling widening_vector_dynamic<uint8_t, uint16_t,
// uint32_t, uint64_t> used by cat_data_ in the original.
type CatKind int

const (
	CatKindUint8 CatKind = iota
	CatKindUint16
	CatKindUint32
	CatKindUint64
)

// CatVector stores dictionary indices for a categorical column, widening
// as the number of distinct levels grows past each rung's range.
type CatVector struct {
	Kind CatKind
	U8   []uint8
	U16  []uint16
	U32  []uint32
	U64  []uint64
}

// NewCatVector starts a categorical index vector at the narrowest rung.
func NewCatVector() *CatVector {
	return &CatVector{Kind: CatKindUint8}
}

// Len returns the number of indices stored so far.
func (v *CatVector) Len() int {
	switch v.Kind {
	case CatKindUint8:
		return len(v.U8)
	case CatKindUint16:
		return len(v.U16)
	case CatKindUint32:
		return len(v.U32)
	default:
		return len(v.U64)
	}
}

// Push appends a dictionary index, widening in place if it overflows the
// current rung.
func (v *CatVector) Push(idx uint64) {
	for {
		switch v.Kind {
		case CatKindUint8:
			if idx <= math.MaxUint8 {
				v.U8 = append(v.U8, uint8(idx))
				return
			}
			v.promote(CatKindUint16)
		case CatKindUint16:
			if idx <= math.MaxUint16 {
				v.U16 = append(v.U16, uint16(idx))
				return
			}
			v.promote(CatKindUint32)
		case CatKindUint32:
			if idx <= math.MaxUint32 {
				v.U32 = append(v.U32, uint32(idx))
				return
			}
			v.promote(CatKindUint64)
		default:
			v.U64 = append(v.U64, idx)
			return
		}
	}
}

// At returns the index at position i widened to uint64.
func (v *CatVector) At(i int) uint64 {
	switch v.Kind {
	case CatKindUint8:
		return uint64(v.U8[i])
	case CatKindUint16:
		return uint64(v.U16[i])
	case CatKindUint32:
		return uint64(v.U32[i])
	default:
		return v.U64[i]
	}
}

func (v *CatVector) promote(target CatKind) {
	n := v.Len()
	switch target {
	case CatKindUint16:
		out := make([]uint16, n)
		for i := 0; i < n; i++ {
			out[i] = uint16(v.At(i))
		}
		v.U8 = nil
		v.U16 = out
	case CatKindUint32:
		out := make([]uint32, n)
		for i := 0; i < n; i++ {
			out[i] = uint32(v.At(i))
		}
		v.U8, v.U16 = nil, nil
		v.U32 = out
	case CatKindUint64:
		out := make([]uint64, n)
		for i := 0; i < n; i++ {
			out[i] = v.At(i)
		}
		v.U8, v.U16, v.U32 = nil, nil, nil
		v.U64 = out
	}
	v.Kind = target
}
