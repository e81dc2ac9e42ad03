package cil

import (
	"fmt"
	"strings"
)

// TypeSig is a type signature.
type TypeSig interface {
	ElementType() ElementType
	// Next returns the wrapped signature of a pointer, by-ref, array, pinned or modifier signature.
	Next() TypeSig
	FullName() string
}

// CorLibTypeSig is a core library primitive such as System.Int32.
type CorLibTypeSig struct {
	etype ElementType
	name  string
	ref   *TypeRef
}

func (s *CorLibTypeSig) ElementType() ElementType { return s.etype }
func (s *CorLibTypeSig) Next() TypeSig             { return nil }
func (s *CorLibTypeSig) FullName() string          { return "System." + s.name }

// TypeDefOrRef returns the System type reference behind the primitive.
func (s *CorLibTypeSig) TypeDefOrRef() TypeDefOrRef { return s.ref }

// CorLibTypes holds the primitive signatures.
type CorLibTypes struct {
	Void           *CorLibTypeSig
	Boolean        *CorLibTypeSig
	Char           *CorLibTypeSig
	SByte          *CorLibTypeSig
	Byte           *CorLibTypeSig
	Int16          *CorLibTypeSig
	UInt16         *CorLibTypeSig
	Int32          *CorLibTypeSig
	UInt32         *CorLibTypeSig
	Int64          *CorLibTypeSig
	UInt64         *CorLibTypeSig
	Single         *CorLibTypeSig
	Double         *CorLibTypeSig
	String         *CorLibTypeSig
	TypedReference *CorLibTypeSig
	IntPtr         *CorLibTypeSig
	UIntPtr        *CorLibTypeSig
	Object         *CorLibTypeSig

	all []*CorLibTypeSig
}

func newCorLibType(etype ElementType, name string, valueType bool) *CorLibTypeSig {
	return &CorLibTypeSig{
		etype: etype,
		name:  name,
		ref: &TypeRef{
			Namespace: "System",
			Name:      name,
			Scope:     "mscorlib",
			ValueType: valueType,
		},
	}
}

// CorLib is the set of core library primitive signatures.
var CorLib = func() *CorLibTypes {
	c := &CorLibTypes{
		Void:           newCorLibType(ElementVoid, "Void", true),
		Boolean:        newCorLibType(ElementBoolean, "Boolean", true),
		Char:           newCorLibType(ElementChar, "Char", true),
		SByte:          newCorLibType(ElementI1, "SByte", true),
		Byte:           newCorLibType(ElementU1, "Byte", true),
		Int16:          newCorLibType(ElementI2, "Int16", true),
		UInt16:         newCorLibType(ElementU2, "UInt16", true),
		Int32:          newCorLibType(ElementI4, "Int32", true),
		UInt32:         newCorLibType(ElementU4, "UInt32", true),
		Int64:          newCorLibType(ElementI8, "Int64", true),
		UInt64:         newCorLibType(ElementU8, "UInt64", true),
		Single:         newCorLibType(ElementR4, "Single", true),
		Double:         newCorLibType(ElementR8, "Double", true),
		String:         newCorLibType(ElementString, "String", false),
		TypedReference: newCorLibType(ElementTypedByRef, "TypedReference", true),
		IntPtr:         newCorLibType(ElementI, "IntPtr", true),
		UIntPtr:        newCorLibType(ElementU, "UIntPtr", true),
		Object:         newCorLibType(ElementObject, "Object", false),
	}
	c.all = []*CorLibTypeSig{
		c.Void, c.Boolean, c.Char, c.SByte, c.Byte, c.Int16, c.UInt16, c.Int32, c.UInt32,
		c.Int64, c.UInt64, c.Single, c.Double, c.String, c.TypedReference, c.IntPtr, c.UIntPtr, c.Object,
	}
	return c
}()

// ByElementType returns the primitive for an element type, or nil.
func (c *CorLibTypes) ByElementType(etype ElementType) *CorLibTypeSig {
	for _, s := range c.all {
		if s.etype == etype {
			return s
		}
	}
	return nil
}

// ByFullName returns the primitive with the given full name (e.g. "System.Int32"), or nil.
func (c *CorLibTypes) ByFullName(name string) *CorLibTypeSig {
	for _, s := range c.all {
		if s.FullName() == name {
			return s
		}
	}
	return nil
}

// TypeDefOrRefSig is a class or value type signature.
type TypeDefOrRefSig struct {
	etype ElementType
	Type  TypeDefOrRef
}

// NewClassSig returns a reference type signature.
func NewClassSig(t TypeDefOrRef) *TypeDefOrRefSig {
	return &TypeDefOrRefSig{etype: ElementClass, Type: t}
}

// NewValueTypeSig returns a value type signature.
func NewValueTypeSig(t TypeDefOrRef) *TypeDefOrRefSig {
	return &TypeDefOrRefSig{etype: ElementValueType, Type: t}
}

func (s *TypeDefOrRefSig) ElementType() ElementType { return s.etype }
func (s *TypeDefOrRefSig) Next() TypeSig             { return nil }
func (s *TypeDefOrRefSig) FullName() string {
	if s.Type == nil {
		return "<unresolved>"
	}
	return s.Type.FullName()
}

// GenericSig is a generic type (!n) or method (!!n) parameter.
type GenericSig struct {
	etype  ElementType
	Number uint32
}

func NewGenericVar(n uint32) *GenericSig  { return &GenericSig{etype: ElementVar, Number: n} }
func NewGenericMVar(n uint32) *GenericSig { return &GenericSig{etype: ElementMVar, Number: n} }

func (s *GenericSig) ElementType() ElementType { return s.etype }
func (s *GenericSig) Next() TypeSig             { return nil }
func (s *GenericSig) FullName() string {
	if s.etype == ElementMVar {
		return fmt.Sprintf("!!%d", s.Number)
	}
	return fmt.Sprintf("!%d", s.Number)
}

// GenericInstSig is an instantiated generic type.
type GenericInstSig struct {
	Generic *TypeDefOrRefSig
	Args    []TypeSig
}

func NewGenericInst(generic *TypeDefOrRefSig, args ...TypeSig) *GenericInstSig {
	return &GenericInstSig{Generic: generic, Args: args}
}

func (s *GenericInstSig) ElementType() ElementType { return ElementGenericInst }
func (s *GenericInstSig) Next() TypeSig             { return nil }
func (s *GenericInstSig) FullName() string {
	var sb strings.Builder
	sb.WriteString(s.Generic.FullName())
	sb.WriteByte('<')
	for i, arg := range s.Args {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(fullNameOf(arg))
	}
	sb.WriteByte('>')
	return sb.String()
}

// NonLeafSig wraps another signature: pointer, by-ref, SZ array or pinned.
type NonLeafSig struct {
	etype ElementType
	next  TypeSig
}

func NewPtr(next TypeSig) *NonLeafSig     { return &NonLeafSig{etype: ElementPtr, next: next} }
func NewByRef(next TypeSig) *NonLeafSig   { return &NonLeafSig{etype: ElementByRef, next: next} }
func NewSZArray(next TypeSig) *NonLeafSig { return &NonLeafSig{etype: ElementSZArray, next: next} }
func NewPinned(next TypeSig) *NonLeafSig  { return &NonLeafSig{etype: ElementPinned, next: next} }

func (s *NonLeafSig) ElementType() ElementType { return s.etype }
func (s *NonLeafSig) Next() TypeSig             { return s.next }
func (s *NonLeafSig) FullName() string {
	switch s.etype {
	case ElementPtr:
		return fullNameOf(s.next) + "*"
	case ElementByRef:
		return fullNameOf(s.next) + "&"
	case ElementSZArray:
		return fullNameOf(s.next) + "[]"
	default:
		return fullNameOf(s.next)
	}
}

// ArraySig is a multi-dimensional array.
type ArraySig struct {
	next TypeSig
	Rank uint32
}

func NewArray(next TypeSig, rank uint32) *ArraySig { return &ArraySig{next: next, Rank: rank} }

func (s *ArraySig) ElementType() ElementType { return ElementArray }
func (s *ArraySig) Next() TypeSig             { return s.next }
func (s *ArraySig) FullName() string {
	if s.Rank <= 1 {
		return fullNameOf(s.next) + "[*]"
	}
	return fullNameOf(s.next) + "[" + strings.Repeat(",", int(s.Rank-1)) + "]"
}

// ModifierSig is a required or optional custom modifier.
type ModifierSig struct {
	etype    ElementType
	Modifier TypeDefOrRef
	next     TypeSig
}

func NewCModReqd(modifier TypeDefOrRef, next TypeSig) *ModifierSig {
	return &ModifierSig{etype: ElementCModReqd, Modifier: modifier, next: next}
}

func NewCModOpt(modifier TypeDefOrRef, next TypeSig) *ModifierSig {
	return &ModifierSig{etype: ElementCModOpt, Modifier: modifier, next: next}
}

func (s *ModifierSig) ElementType() ElementType { return s.etype }
func (s *ModifierSig) Next() TypeSig             { return s.next }
func (s *ModifierSig) FullName() string {
	kind := "modopt"
	if s.etype == ElementCModReqd {
		kind = "modreq"
	}
	mod := "<unresolved>"
	if s.Modifier != nil {
		mod = s.Modifier.FullName()
	}
	return fmt.Sprintf("%s %s(%s)", fullNameOf(s.next), kind, mod)
}

// FnPtrSig is a function pointer.
type FnPtrSig struct {
	Sig *MethodSig
}

func (s *FnPtrSig) ElementType() ElementType { return ElementFnPtr }
func (s *FnPtrSig) Next() TypeSig             { return nil }
func (s *FnPtrSig) FullName() string {
	if s.Sig == nil {
		return "method"
	}
	return "method " + fullNameOf(s.Sig.RetType) + " *" + s.Sig.ParamsString()
}

// LeafSig is any other element type without payload (sentinel, internal, module...).
type LeafSig struct {
	etype ElementType
}

func NewLeafSig(etype ElementType) *LeafSig { return &LeafSig{etype: etype} }

func (s *LeafSig) ElementType() ElementType { return s.etype }
func (s *LeafSig) Next() TypeSig             { return nil }
func (s *LeafSig) FullName() string {
	if s.etype == ElementSentinel {
		return "..."
	}
	return "<" + s.etype.String() + ">"
}

func fullNameOf(t TypeSig) string {
	if t == nil {
		return "<null>"
	}
	return t.FullName()
}

// TypeEqual compares two signatures by full name.
func TypeEqual(a, b TypeSig) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ElementType() == b.ElementType() && a.FullName() == b.FullName()
}

// RemovePinnedAndModifiers strips leading pinned and custom modifier wrappers.
func RemovePinnedAndModifiers(t TypeSig) TypeSig {
	for t != nil {
		switch t.ElementType() {
		case ElementPinned, ElementCModReqd, ElementCModOpt:
			t = t.Next()
		default:
			return t
		}
	}
	return nil
}

// IsByRef reports whether t is a by-ref signature.
func IsByRef(t TypeSig) bool { return t != nil && t.ElementType() == ElementByRef }

// IsPointer reports whether t is an unmanaged pointer signature.
func IsPointer(t TypeSig) bool { return t != nil && t.ElementType() == ElementPtr }

// IsSZArray reports whether t is a single dimension zero based array.
func IsSZArray(t TypeSig) bool { return t != nil && t.ElementType() == ElementSZArray }

// IsVoid reports whether t is System.Void.
func IsVoid(t TypeSig) bool { return t != nil && t.ElementType() == ElementVoid }

// TryGetTypeDef returns the module type definition behind a signature, if any.
func TryGetTypeDef(t TypeSig) *TypeDef {
	switch s := t.(type) {
	case *TypeDefOrRefSig:
		if s.Type != nil {
			return s.Type.ResolveTypeDef()
		}
	case *GenericInstSig:
		return TryGetTypeDef(s.Generic)
	}
	return nil
}

// ToTypeDefOrRef converts a signature into something that can be used as a type operand.
func ToTypeDefOrRef(t TypeSig) TypeDefOrRef {
	switch s := t.(type) {
	case nil:
		return nil
	case *TypeDefOrRefSig:
		return s.Type
	case *CorLibTypeSig:
		return s.ref
	default:
		return &TypeSpec{Sig: t}
	}
}

// ToTypeSig converts a type operand back into a signature.
func ToTypeSig(t TypeDefOrRef) TypeSig {
	switch v := t.(type) {
	case nil:
		return nil
	case *TypeSpec:
		return v.Sig
	}
	if cl := CorLib.ByFullName(t.FullName()); cl != nil {
		return cl
	}
	if t.IsValueType() {
		return NewValueTypeSig(t)
	}
	return NewClassSig(t)
}
