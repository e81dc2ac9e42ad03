package cil

import (
	"strings"
	"sync"
)

// Metadata table numbers (high byte of a token).
const (
	TableTypeRef   = 0x01
	TableTypeDef   = 0x02
	TableField     = 0x04
	TableMethod    = 0x06
	TableMemberRef = 0x0A
	TableTypeSpec  = 0x1B
	TableString    = 0x70
)

// Member is anything a metadata token can resolve to.
type Member interface {
	MDToken() uint32
	FullName() string
}

// TypeDefOrRef is a type definition, reference or specification.
type TypeDefOrRef interface {
	Member
	TypeName() string
	TypeNamespace() string
	IsValueType() bool
	// ResolveTypeDef returns the module-local definition or nil.
	ResolveTypeDef() *TypeDef
}

// IField is a field definition or reference.
type IField interface {
	Member
	FieldName() string
	FieldType() TypeSig
	Owner() TypeDefOrRef
}

// IMethod is a method definition or reference.
type IMethod interface {
	Member
	MethodName() string
	Signature() *MethodSig
	Owner() TypeDefOrRef
}

// TypeDef is a type defined in a module.
type TypeDef struct {
	Token         uint32
	Namespace     string
	Name          string
	BaseType      TypeDefOrRef
	Interfaces    []TypeDefOrRef
	Fields        []*FieldDef
	Methods       []*MethodDef
	NestedTypes   []*TypeDef
	DeclaringType *TypeDef
	GenericParams []string
}

func (t *TypeDef) MDToken() uint32       { return t.Token }
func (t *TypeDef) TypeName() string      { return t.Name }
func (t *TypeDef) TypeNamespace() string { return t.Namespace }
func (t *TypeDef) ResolveTypeDef() *TypeDef {
	return t
}

func (t *TypeDef) FullName() string {
	if t.DeclaringType != nil {
		return t.DeclaringType.FullName() + "/" + t.Name
	}
	if t.Namespace == "" {
		return t.Name
	}
	return t.Namespace + "." + t.Name
}

// IsEnum reports whether the type derives from System.Enum.
func (t *TypeDef) IsEnum() bool {
	return t.BaseType != nil && t.BaseType.FullName() == "System.Enum"
}

func (t *TypeDef) IsValueType() bool {
	if t.BaseType == nil {
		return false
	}
	switch t.BaseType.FullName() {
	case "System.Enum":
		return true
	case "System.ValueType":
		return t.FullName() != "System.Enum"
	}
	return false
}

// FindMethod returns the first method with the given name.
func (t *TypeDef) FindMethod(name string) *MethodDef {
	for _, m := range t.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// FindStaticConstructor returns the type initializer, if any.
func (t *TypeDef) FindStaticConstructor() *MethodDef {
	for _, m := range t.Methods {
		if m.Name == ".cctor" && m.Static {
			return m
		}
	}
	return nil
}

// FindField returns the field with the given name.
func (t *TypeDef) FindField(name string) *FieldDef {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Implements reports whether the type directly implements the named interface.
func (t *TypeDef) Implements(fullName string) bool {
	for _, iface := range t.Interfaces {
		if iface != nil && iface.FullName() == fullName {
			return true
		}
	}
	return false
}

// TypeRef is a reference to a type in another module.
type TypeRef struct {
	Token         uint32
	Namespace     string
	Name          string
	Scope         string
	ValueType     bool
	DeclaringType *TypeRef
	// Resolved is set when the host knows the referenced definition.
	Resolved *TypeDef
}

func (t *TypeRef) MDToken() uint32       { return t.Token }
func (t *TypeRef) TypeName() string      { return t.Name }
func (t *TypeRef) TypeNamespace() string { return t.Namespace }
func (t *TypeRef) IsValueType() bool {
	if t.Resolved != nil {
		return t.Resolved.IsValueType()
	}
	return t.ValueType
}
func (t *TypeRef) ResolveTypeDef() *TypeDef { return t.Resolved }

func (t *TypeRef) FullName() string {
	if t.DeclaringType != nil {
		return t.DeclaringType.FullName() + "/" + t.Name
	}
	if t.Namespace == "" {
		return t.Name
	}
	return t.Namespace + "." + t.Name
}

// TypeSpec is a type described by a signature (arrays, generic instances...).
type TypeSpec struct {
	Token uint32
	Sig   TypeSig
}

func (t *TypeSpec) MDToken() uint32  { return t.Token }
func (t *TypeSpec) FullName() string { return fullNameOf(t.Sig) }
func (t *TypeSpec) TypeName() string {
	name := t.FullName()
	if i := strings.LastIndexByte(name, '.'); i >= 0 && !strings.ContainsAny(name[:i], "<[") {
		return name[i+1:]
	}
	return name
}
func (t *TypeSpec) TypeNamespace() string {
	name := t.FullName()
	if i := strings.LastIndexByte(name, '.'); i >= 0 && !strings.ContainsAny(name[:i], "<[") {
		return name[:i]
	}
	return ""
}
func (t *TypeSpec) IsValueType() bool {
	switch s := t.Sig.(type) {
	case *TypeDefOrRefSig:
		return s.etype == ElementValueType
	case *GenericInstSig:
		return s.Generic.etype == ElementValueType
	case *CorLibTypeSig:
		return s.ref.ValueType
	}
	return false
}
func (t *TypeSpec) ResolveTypeDef() *TypeDef { return TryGetTypeDef(t.Sig) }

// FieldDef is a field defined in a module.
type FieldDef struct {
	Token         uint32
	Name          string
	DeclaringType *TypeDef
	Type          TypeSig
	Static        bool
	Literal       bool
}

func (f *FieldDef) MDToken() uint32    { return f.Token }
func (f *FieldDef) FieldName() string  { return f.Name }
func (f *FieldDef) FieldType() TypeSig { return f.Type }
func (f *FieldDef) Owner() TypeDefOrRef {
	if f.DeclaringType == nil {
		return nil
	}
	return f.DeclaringType
}
func (f *FieldDef) FullName() string { return fieldFullName(f) }

// FieldRef is a member reference to a field.
type FieldRef struct {
	Token uint32
	Name  string
	Class TypeDefOrRef
	Type  TypeSig
}

func (f *FieldRef) MDToken() uint32     { return f.Token }
func (f *FieldRef) FieldName() string   { return f.Name }
func (f *FieldRef) FieldType() TypeSig  { return f.Type }
func (f *FieldRef) Owner() TypeDefOrRef { return f.Class }
func (f *FieldRef) FullName() string    { return fieldFullName(f) }

func fieldFullName(f IField) string {
	owner := ""
	if o := f.Owner(); o != nil {
		owner = o.FullName() + "::"
	}
	return fullNameOf(f.FieldType()) + " " + owner + f.FieldName()
}

// MethodSig is a method signature.
type MethodSig struct {
	HasThis       bool
	RetType       TypeSig
	Params        []TypeSig
	GenParamCount int
}

// ParamsString renders the parameter list as "(A,B)".
func (s *MethodSig) ParamsString() string {
	if s == nil {
		return "()"
	}
	names := make([]string, 0, len(s.Params))
	for _, p := range s.Params {
		names = append(names, fullNameOf(p))
	}
	return "(" + strings.Join(names, ",") + ")"
}

// HasReturnValue reports whether the method returns something other than void.
func (s *MethodSig) HasReturnValue() bool {
	return s != nil && s.RetType != nil && !IsVoid(s.RetType)
}

// MethodDef is a method defined in a module.
type MethodDef struct {
	Token         uint32
	Name          string
	DeclaringType *TypeDef
	Sig           *MethodSig
	Static        bool
	Virtual       bool
	ParamNames    []string
	Body          *Body

	paramsOnce sync.Once
	params     []*Parameter
}

func (m *MethodDef) MDToken() uint32       { return m.Token }
func (m *MethodDef) MethodName() string    { return m.Name }
func (m *MethodDef) Signature() *MethodSig { return m.Sig }
func (m *MethodDef) Owner() TypeDefOrRef {
	if m.DeclaringType == nil {
		return nil
	}
	return m.DeclaringType
}
func (m *MethodDef) FullName() string { return methodFullName(m) }

// IsConstructor reports whether the method is an instance constructor.
func (m *MethodDef) IsConstructor() bool { return m.Name == ".ctor" }

// Parameters returns the method's parameters. Instance methods get the hidden
// 'this' parameter at index 0.
func (m *MethodDef) Parameters() []*Parameter {
	m.paramsOnce.Do(func() {
		if m.Sig == nil {
			return
		}
		if m.Sig.HasThis {
			var this TypeSig
			if m.DeclaringType != nil {
				this = ToTypeSig(m.DeclaringType)
				if m.DeclaringType.IsValueType() {
					this = NewByRef(this)
				}
			}
			m.params = append(m.params, &Parameter{Index: 0, Type: this, Name: "this", Hidden: true})
		}
		for i, p := range m.Sig.Params {
			param := &Parameter{Index: len(m.params), Type: p}
			if i < len(m.ParamNames) {
				param.Name = m.ParamNames[i]
			}
			m.params = append(m.params, param)
		}
	})
	return m.params
}

// MethodRef is a member reference to a method.
type MethodRef struct {
	Token uint32
	Name  string
	Class TypeDefOrRef
	Sig   *MethodSig
}

func (m *MethodRef) MDToken() uint32       { return m.Token }
func (m *MethodRef) MethodName() string    { return m.Name }
func (m *MethodRef) Signature() *MethodSig { return m.Sig }
func (m *MethodRef) Owner() TypeDefOrRef   { return m.Class }
func (m *MethodRef) FullName() string      { return methodFullName(m) }

func methodFullName(m IMethod) string {
	var sb strings.Builder
	sig := m.Signature()
	if sig != nil {
		sb.WriteString(fullNameOf(sig.RetType))
		sb.WriteByte(' ')
	}
	if o := m.Owner(); o != nil {
		sb.WriteString(o.FullName())
		sb.WriteString("::")
	}
	sb.WriteString(m.MethodName())
	sb.WriteString(sig.ParamsString())
	return sb.String()
}

// MethodEqual compares two methods by name, signature and declaring type.
func MethodEqual(a, b IMethod) bool {
	if a == nil || b == nil {
		return false
	}
	return a.FullName() == b.FullName()
}

// Parameter is a method parameter.
type Parameter struct {
	Index  int
	Type   TypeSig
	Name   string
	Hidden bool
}

func (p *Parameter) String() string {
	if p.Name != "" {
		return p.Name
	}
	return "A_" + itoa(p.Index)
}

// Local is a method local variable.
type Local struct {
	Index int
	Type  TypeSig
	Name  string
}

func (l *Local) String() string {
	if l.Name != "" {
		return l.Name
	}
	return "V_" + itoa(l.Index)
}
