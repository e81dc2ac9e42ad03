package snapshot

import (
	"fmt"
	"sort"

	"github.com/blacktop/devirt/pkg/cil"
)

// Module is an in-memory module. It implements cil.ModuleView.
type Module struct {
	name     string
	location string

	types      []*cil.TypeDef
	typeRefs   []*cil.TypeRef
	typeSpecs  []*cil.TypeSpec
	methodRefs []*cil.MethodRef
	fieldRefs  []*cil.FieldRef

	resources     map[string][]byte
	resourceOrder []string

	tokens  map[uint32]cil.Member
	byName  map[string]cil.TypeDefOrRef
	valueTy map[string]bool
}

// NewModule creates an empty module.
func NewModule(name, location string) *Module {
	return &Module{
		name:      name,
		location:  location,
		resources: make(map[string][]byte),
		tokens:    make(map[uint32]cil.Member),
		byName:    make(map[string]cil.TypeDefOrRef),
		valueTy:   make(map[string]bool),
	}
}

func (m *Module) Name() string                  { return m.name }
func (m *Module) Location() string              { return m.location }
func (m *Module) Types() []*cil.TypeDef         { return m.types }
func (m *Module) MethodRefs() []*cil.MethodRef  { return m.methodRefs }
func (m *Module) FieldRefs() []*cil.FieldRef    { return m.fieldRefs }
func (m *Module) TypeRefs() []*cil.TypeRef      { return m.typeRefs }
func (m *Module) TypeSpecs() []*cil.TypeSpec    { return m.typeSpecs }
func (m *Module) SetLocation(location string)   { m.location = location }
func (m *Module) MarkValueType(fullName string) { m.valueTy[fullName] = true }

// AddType adds a top level type.
func (m *Module) AddType(t *cil.TypeDef) *cil.TypeDef {
	m.types = append(m.types, t)
	return t
}

// AddTypeRef adds a type reference.
func (m *Module) AddTypeRef(t *cil.TypeRef) *cil.TypeRef {
	m.typeRefs = append(m.typeRefs, t)
	m.byName[t.FullName()] = t
	return t
}

// AddTypeSpec adds a type specification.
func (m *Module) AddTypeSpec(t *cil.TypeSpec) *cil.TypeSpec {
	m.typeSpecs = append(m.typeSpecs, t)
	return t
}

// AddMethodRef adds a method member reference.
func (m *Module) AddMethodRef(r *cil.MethodRef) *cil.MethodRef {
	m.methodRefs = append(m.methodRefs, r)
	return r
}

// AddFieldRef adds a field member reference.
func (m *Module) AddFieldRef(r *cil.FieldRef) *cil.FieldRef {
	m.fieldRefs = append(m.fieldRefs, r)
	return r
}

// AddResource adds (or replaces) an embedded resource.
func (m *Module) AddResource(name string, data []byte) {
	if _, ok := m.resources[name]; !ok {
		m.resourceOrder = append(m.resourceOrder, name)
	}
	m.resources[name] = data
}

// Resource returns the data of a named resource.
func (m *Module) Resource(name string) ([]byte, bool) {
	data, ok := m.resources[name]
	return data, ok
}

// Resources returns the resource names in insertion order.
func (m *Module) Resources() []string {
	return append([]string(nil), m.resourceOrder...)
}

// RemoveResource drops an embedded resource.
func (m *Module) RemoveResource(name string) bool {
	if _, ok := m.resources[name]; !ok {
		return false
	}
	delete(m.resources, name)
	for i, n := range m.resourceOrder {
		if n == name {
			m.resourceOrder = append(m.resourceOrder[:i], m.resourceOrder[i+1:]...)
			break
		}
	}
	return true
}

// LookupType returns the type definition or reference with the given full name.
func (m *Module) LookupType(fullName string) (cil.TypeDefOrRef, bool) {
	t, ok := m.byName[fullName]
	return t, ok
}

// TypeRef returns the type reference with the given full name, creating it if needed.
func (m *Module) TypeRef(fullName string) *cil.TypeRef {
	if t, ok := m.byName[fullName]; ok {
		if ref, isRef := t.(*cil.TypeRef); isRef {
			return ref
		}
	}
	ns, name := splitTypeName(fullName)
	return m.AddTypeRef(&cil.TypeRef{Namespace: ns, Name: name, ValueType: m.valueTy[fullName]})
}

// Index assigns missing tokens, links declaring types and builds the lookup
// tables. It must be called after the module is populated and before tokens are resolved.
func (m *Module) Index() {
	next := map[uint32]uint32{}
	for token := range m.tokens {
		table := token >> 24
		if rid := token & 0xFFFFFF; rid > next[table] {
			next[table] = rid
		}
	}
	seed := func(token uint32) {
		if token == 0 {
			return
		}
		if rid := token & 0xFFFFFF; rid > next[token>>24] {
			next[token>>24] = rid
		}
	}
	all := cil.AllTypes(m.types)
	for _, t := range all {
		seed(t.Token)
		for _, f := range t.Fields {
			seed(f.Token)
		}
		for _, meth := range t.Methods {
			seed(meth.Token)
		}
	}
	for _, r := range m.typeRefs {
		seed(r.Token)
	}
	for _, s := range m.typeSpecs {
		seed(s.Token)
	}
	for _, r := range m.methodRefs {
		seed(r.Token)
	}
	for _, r := range m.fieldRefs {
		seed(r.Token)
	}
	assign := func(token *uint32, table uint32) {
		if *token == 0 {
			next[table]++
			*token = table<<24 | next[table]
		}
	}

	var link func(types []*cil.TypeDef, parent *cil.TypeDef)
	link = func(types []*cil.TypeDef, parent *cil.TypeDef) {
		for _, t := range types {
			t.DeclaringType = parent
			link(t.NestedTypes, t)
		}
	}
	link(m.types, nil)

	for _, t := range all {
		assign(&t.Token, cil.TableTypeDef)
		m.tokens[t.Token] = t
		m.byName[t.FullName()] = t
	}
	for _, t := range all {
		for _, f := range t.Fields {
			assign(&f.Token, cil.TableField)
			f.DeclaringType = t
			m.tokens[f.Token] = f
		}
	}
	for _, t := range all {
		for _, meth := range t.Methods {
			assign(&meth.Token, cil.TableMethod)
			meth.DeclaringType = t
			m.tokens[meth.Token] = meth
		}
	}
	for _, r := range m.typeRefs {
		assign(&r.Token, cil.TableTypeRef)
		m.tokens[r.Token] = r
		if def, ok := m.byName[r.FullName()].(*cil.TypeDef); ok {
			r.Resolved = def
		}
	}
	for _, s := range m.typeSpecs {
		assign(&s.Token, cil.TableTypeSpec)
		m.tokens[s.Token] = s
	}
	for _, r := range m.methodRefs {
		assign(&r.Token, cil.TableMemberRef)
		m.tokens[r.Token] = r
	}
	for _, r := range m.fieldRefs {
		assign(&r.Token, cil.TableMemberRef)
		m.tokens[r.Token] = r
	}
}

// ResolveToken resolves a metadata token.
func (m *Module) ResolveToken(token uint32, _ cil.GenericContext) (cil.Member, error) {
	if member, ok := m.tokens[token]; ok {
		return member, nil
	}
	return nil, &cil.UnresolvedTokenError{Token: token}
}

// ResolveField resolves a field reference to a definition in this module.
func (m *Module) ResolveField(f cil.IField) (*cil.FieldDef, error) {
	switch v := f.(type) {
	case nil:
		return nil, &cil.UnresolvedTokenError{Want: "field"}
	case *cil.FieldDef:
		return v, nil
	}
	if owner := f.Owner(); owner != nil {
		if def := owner.ResolveTypeDef(); def != nil {
			if fd := def.FindField(f.FieldName()); fd != nil {
				return fd, nil
			}
		}
	}
	return nil, &cil.UnresolvedTokenError{Token: f.MDToken(), Want: "field definition"}
}

// Tokens returns every indexed token in ascending order.
func (m *Module) Tokens() []uint32 {
	tokens := make([]uint32, 0, len(m.tokens))
	for t := range m.tokens {
		tokens = append(tokens, t)
	}
	sort.Slice(tokens, func(i, j int) bool { return tokens[i] < tokens[j] })
	return tokens
}

// FindMethod returns the method definition or reference "Owner::Name", optionally
// narrowed by a parameter list such as "(System.Int32)".
func (m *Module) FindMethod(owner, name, params string) (cil.IMethod, error) {
	var found []cil.IMethod
	match := func(meth cil.IMethod) {
		if meth.MethodName() != name {
			return
		}
		if o := meth.Owner(); o == nil || o.FullName() != owner {
			return
		}
		if params != "" && meth.Signature().ParamsString() != params {
			return
		}
		found = append(found, meth)
	}
	if t, ok := m.byName[owner].(*cil.TypeDef); ok {
		for _, meth := range t.Methods {
			match(meth)
		}
	}
	for _, r := range m.methodRefs {
		match(r)
	}
	switch len(found) {
	case 0:
		return nil, fmt.Errorf("method %s::%s%s not found", owner, name, params)
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("method %s::%s is ambiguous, add a parameter list", owner, name)
	}
}

// FindField returns the field definition or reference "Owner::name".
func (m *Module) FindField(owner, name string) (cil.IField, error) {
	if t, ok := m.byName[owner].(*cil.TypeDef); ok {
		if f := t.FindField(name); f != nil {
			return f, nil
		}
	}
	for _, r := range m.fieldRefs {
		if r.Name == name && r.Class != nil && r.Class.FullName() == owner {
			return r, nil
		}
	}
	return nil, fmt.Errorf("field %s::%s not found", owner, name)
}
