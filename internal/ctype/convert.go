package ctype

// Common implements the "usual arithmetic conversions" operator C(a,b)
// from spec §4.1. Pointers are never passed to Common; pointer arithmetic
// is handled separately by the lowering rules in internal/lower.
func Common(a, b Type) Type {
	if a.Base == LongDouble || b.Base == LongDouble {
		return Builtin(LongDouble)
	}
	if a.Base == Double || b.Base == Double {
		return Builtin(Double)
	}
	if a.Base == Float || b.Base == Float {
		return Builtin(Float)
	}

	// Both are integers: promote anything narrower than int to int,
	// then rank by width/signedness.
	pa := promote(a)
	pb := promote(b)

	if pa.Base == LongLong && pa.Unsigned || pb.Base == LongLong && pb.Unsigned {
		return UnsignedBuiltin(LongLong)
	}
	if pa.Base == LongLong || pb.Base == LongLong {
		return Builtin(LongLong)
	}
	if pa.Base == Long && pa.Unsigned || pb.Base == Long && pb.Unsigned {
		return UnsignedBuiltin(Long)
	}
	if pa.Base == Long || pb.Base == Long {
		return Builtin(Long)
	}
	if pa.Unsigned || pb.Unsigned {
		return UnsignedBuiltin(Int)
	}
	return Builtin(Int)
}

// promote implements integer promotion: any integer type narrower than
// int is promoted to (signed) int.
func promote(t Type) Type {
	if t.IsPointer() || !t.IsInteger() {
		return t
	}
	if t.Base == Char || t.Base == Short || t.Base == Enum {
		return Builtin(Int)
	}
	return t
}

// Promote exposes integer promotion for callers outside this package
// (e.g. comparisons of two char operands must still widen to int even
// though Common would already do so).
func Promote(t Type) Type { return promote(t) }
