package scenario

// Op is a computed signal's derivation.
type Op string

const (
	OpSum     Op = "sum"
	OpProduct Op = "product"
	OpMax     Op = "max"
	OpMin     Op = "min"
	OpNeg     Op = "neg"
	OpCopy    Op = "copy"
)

// arity returns the minimum and maximum number of inputs for op.
// hi < 0 means unbounded. ok is false for unknown ops.
func (op Op) arity() (lo, hi int, ok bool) {
	switch op {
	case OpSum, OpProduct, OpMax, OpMin:
		return 1, -1, true
	case OpNeg, OpCopy:
		return 1, 1, true
	default:
		return 0, 0, false
	}
}

// apply combines input values and adds offset.
func (op Op) apply(values []int64, offset int64) int64 {
	var v int64
	switch op {
	case OpSum:
		for _, x := range values {
			v += x
		}
	case OpProduct:
		v = 1
		for _, x := range values {
			v *= x
		}
	case OpMax:
		v = values[0]
		for _, x := range values[1:] {
			if x > v {
				v = x
			}
		}
	case OpMin:
		v = values[0]
		for _, x := range values[1:] {
			if x < v {
				v = x
			}
		}
	case OpNeg:
		v = -values[0]
	case OpCopy:
		v = values[0]
	}
	return v + offset
}
