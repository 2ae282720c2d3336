package symtab

import "mipscc/internal/ctype"

// ArrayType describes one array-typed member or local: its element type
// and element count. Stride (the byte distance between elements) follows
// spec §3: equal to the element size when that size is <= 4 bytes,
// otherwise the element size rounded up to a 4-byte boundary.
type ArrayType struct {
	ElementType ctype.Type
	Count       int
}

// Stride applies the §3 rounding rule to a raw element size.
func Stride(elemSize int) int {
	if elemSize <= 4 {
		return elemSize
	}
	return (elemSize + 3) &^ 3
}

func (a ArrayType) Stride(ctx *Context) int {
	return Stride(ctx.SizeOf(a.ElementType))
}

func (a ArrayType) TotalSize(ctx *Context) int { return a.Stride(ctx) * a.Count }

// StructureType is the layout of one struct or union tag: an ordered
// member list, each member's type, and any array-typed members (kept
// separately so the emitter can compute per-element strides without
// re-deriving them from ctype.Type, which does not carry counts).
type StructureType struct {
	Tag     string
	Order   []string
	Members map[string]ctype.Type
	Arrays  map[string]ArrayType
}

func NewStructureType(tag string) *StructureType {
	return &StructureType{
		Tag:     tag,
		Members: make(map[string]ctype.Type),
		Arrays:  make(map[string]ArrayType),
	}
}

// AddMember appends a scalar/pointer/struct-typed member in declaration
// order.
func (s *StructureType) AddMember(name string, t ctype.Type) {
	s.Order = append(s.Order, name)
	s.Members[name] = t
}

// AddArrayMember appends an array-typed member in declaration order.
func (s *StructureType) AddArrayMember(name string, arr ArrayType) {
	s.Order = append(s.Order, name)
	s.Members[name] = arr.ElementType
	s.Arrays[name] = arr
}

func (s *StructureType) memberSize(ctx *Context, name string) int {
	if arr, ok := s.Arrays[name]; ok {
		return arr.TotalSize(ctx)
	}
	return ctx.SizeOf(s.Members[name])
}

// Offset returns the byte offset of a member from the start of the
// struct, laying out members in declaration order with natural alignment
// (each member aligned to min(its size, 4), since the largest alignment
// this ABI ever needs for a scalar is 4 bytes — 8-byte types are stored
// as two 4-byte words, see §4.5's word-order rule).
func (s *StructureType) Offset(ctx *Context, name string) int {
	offset := 0
	for _, m := range s.Order {
		size := s.memberSize(ctx, m)
		align := alignOf(size)
		if offset%align != 0 {
			offset += align - offset%align
		}
		if m == name {
			return offset
		}
		offset += size
	}
	return -1
}

// TotalSize is offset(last) + size(last), per spec §3.
func (s *StructureType) TotalSize(ctx *Context) int {
	if len(s.Order) == 0 {
		return 0
	}
	last := s.Order[len(s.Order)-1]
	return s.Offset(ctx, last) + s.memberSize(ctx, last)
}

func alignOf(size int) int {
	switch {
	case size <= 1:
		return 1
	case size <= 2:
		return 2
	default:
		return 4
	}
}

// EnumType tracks an enum tag's member values with C's auto-increment
// rule: an undecorated Add(name) takes the next value; Add(name, value)
// resets the auto-increment cursor to value+1.
type EnumType struct {
	Tag        string
	Members    map[string]int
	NextMember int
}

func NewEnumType(tag string) *EnumType {
	return &EnumType{Tag: tag, Members: make(map[string]int)}
}

func (e *EnumType) Add(name string, value ...int) {
	if len(value) > 0 {
		e.Members[name] = value[0]
		e.NextMember = value[0] + 1
		return
	}
	e.Members[name] = e.NextMember
	e.NextMember++
}
