package symtab

import (
	"fmt"

	"mipscc/internal/ctype"
)

// Context is the process-wide state for one translation unit: the
// structure/enum/typedef registries and the fresh-name counter. Spec §9's
// design notes call for threading this as a value instead of relying on
// global singletons, so that repeated compilation (tests, a long-lived
// driver process) never leaks state between translation units — one
// Context is instantiated per compiled file.
type Context struct {
	Structs   map[string]*StructureType
	Enums     map[string]*EnumType
	Typedefs  map[string]ctype.Type
	nextTemp  int
	nextLabel int
}

func NewContext() *Context {
	return &Context{
		Structs:  make(map[string]*StructureType),
		Enums:    make(map[string]*EnumType),
		Typedefs: make(map[string]ctype.Type),
	}
}

// NewTemp returns a fresh, collision-free temporary name prefixed $T.
func (c *Context) NewTemp() string {
	c.nextTemp++
	return fmt.Sprintf("$T%d", c.nextTemp)
}

// NewLabel returns a fresh, globally unique label name prefixed $L.
func (c *Context) NewLabel() string {
	c.nextLabel++
	return fmt.Sprintf("$L%d", c.nextLabel)
}

// DeclareStruct registers a struct tag. Redeclaring a tag with a
// different definition is a Redeclaration error at the caller (lowering)
// level; Context itself only stores the latest registration passed to it.
func (c *Context) DeclareStruct(st *StructureType) { c.Structs[st.Tag] = st }

func (c *Context) LookupStruct(tag string) (*StructureType, bool) {
	st, ok := c.Structs[tag]
	return st, ok
}

func (c *Context) DeclareEnum(e *EnumType) { c.Enums[e.Tag] = e }

func (c *Context) LookupEnum(tag string) (*EnumType, bool) {
	e, ok := c.Enums[tag]
	return e, ok
}

// LookupEnumConstant searches every registered enum for a member name,
// matching the requirement that the parser install enum members into the
// enum table during parsing so they resolve in constant expressions.
func (c *Context) LookupEnumConstant(name string) (int, bool) {
	for _, e := range c.Enums {
		if v, ok := e.Members[name]; ok {
			return v, true
		}
	}
	return 0, false
}

func (c *Context) DeclareTypedef(name string, t ctype.Type) { c.Typedefs[name] = t }

func (c *Context) LookupTypedef(name string) (ctype.Type, bool) {
	t, ok := c.Typedefs[name]
	return t, ok
}

// SizeOf resolves sizeof(t), consulting the struct registry for
// struct-typed values since ctype.Type alone does not carry member
// layout.
func (c *Context) SizeOf(t ctype.Type) int {
	if !t.IsPointer() && t.IsStruct() {
		if st, ok := c.LookupStruct(t.TagName); ok {
			return st.TotalSize(c)
		}
		return 0
	}
	return t.Bytes()
}
