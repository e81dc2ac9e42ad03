package snapshot

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/hashicorp/go-multierror"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/blacktop/devirt/pkg/cil"
)

// Extensions tried, in order, when a module path has no snapshot of its own.
var Extensions = []string{".yml", ".yaml"}

// Open reads and parses a snapshot file.
func Open(path string) (*Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read snapshot %s", path)
	}
	return Parse(data, path)
}

// Parse parses snapshot data. location is recorded as the module's path.
func Parse(data []byte, location string) (*Module, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal snapshot")
	}
	return FromFile(&f, location)
}

// FromFile builds a module from its decoded form. Every unresolved name is
// reported in the returned error.
func FromFile(f *File, location string) (*Module, error) {
	name := f.Name
	if name == "" {
		name = filepath.Base(location)
	}
	m := NewModule(name, location)
	b := &builder{m: m}

	for _, vt := range f.ValueTypes {
		m.MarkValueType(vt)
	}
	for _, e := range f.TypeRefs {
		ns, n := splitTypeName(e.Name)
		m.AddTypeRef(&cil.TypeRef{
			Token:     uint32(e.Token),
			Namespace: ns,
			Name:      n,
			Scope:     e.Scope,
			ValueType: e.ValueType || m.valueTy[e.Name],
		})
	}

	defs := make([]*cil.TypeDef, 0, len(f.Types))
	for i := range f.Types {
		defs = append(defs, m.AddType(b.skeleton(&f.Types[i], nil)))
	}
	for i := range f.Types {
		b.members(&f.Types[i], defs[i])
	}
	for _, e := range f.TypeSpecs {
		sig, err := m.ParseType(e.Type)
		if err != nil {
			b.fail(err)
			continue
		}
		m.AddTypeSpec(&cil.TypeSpec{Token: uint32(e.Token), Sig: sig})
	}
	for _, e := range f.MemberRefs {
		b.memberRef(e)
	}
	for _, r := range f.Resources {
		data, err := base64.StdEncoding.DecodeString(r.Data)
		if err != nil {
			b.fail(errors.Wrapf(err, "resource %s", r.Name))
			continue
		}
		m.AddResource(r.Name, data)
	}

	m.Index()

	for i := range f.Types {
		b.bodies(&f.Types[i], defs[i])
	}
	// bodies may have introduced new type references
	m.Index()

	if err := b.errs.ErrorOrNil(); err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", name)
	}
	return m, nil
}

type builder struct {
	m    *Module
	errs *multierror.Error
}

func (b *builder) fail(err error) {
	b.errs = multierror.Append(b.errs, err)
}

func (b *builder) parseType(s string) cil.TypeSig {
	t, err := b.m.ParseType(s)
	if err != nil {
		b.fail(err)
	}
	return t
}

func (b *builder) skeleton(e *TypeEntry, parent *cil.TypeDef) *cil.TypeDef {
	t := &cil.TypeDef{
		Token:         uint32(e.Token),
		Namespace:     e.Namespace,
		Name:          e.Name,
		DeclaringType: parent,
		GenericParams: e.GenericParams,
	}
	for i := range e.Nested {
		t.NestedTypes = append(t.NestedTypes, b.skeleton(&e.Nested[i], t))
	}
	return t
}

func (b *builder) members(e *TypeEntry, t *cil.TypeDef) {
	if e.Base != "" {
		if base, err := b.m.ParseTypeDefOrRef(e.Base); err != nil {
			b.fail(err)
		} else {
			t.BaseType = base
		}
	}
	for _, iface := range e.Interfaces {
		if it, err := b.m.ParseTypeDefOrRef(iface); err != nil {
			b.fail(err)
		} else {
			t.Interfaces = append(t.Interfaces, it)
		}
	}
	for _, fe := range e.Fields {
		t.Fields = append(t.Fields, &cil.FieldDef{
			Token:         uint32(fe.Token),
			Name:          fe.Name,
			DeclaringType: t,
			Type:          b.parseType(fe.Type),
			Static:        fe.Static,
			Literal:       fe.Literal,
		})
	}
	for _, me := range e.Methods {
		t.Methods = append(t.Methods, &cil.MethodDef{
			Token:         uint32(me.Token),
			Name:          me.Name,
			DeclaringType: t,
			Sig:           b.methodSig(!me.Static, me.Return, me.Params, me.GenericParams),
			Static:        me.Static,
			Virtual:       me.Virtual,
			ParamNames:    me.ParamNames,
		})
	}
	for i := range e.Nested {
		b.members(&e.Nested[i], t.NestedTypes[i])
	}
}

func (b *builder) methodSig(hasThis bool, ret string, params []string, genParams int) *cil.MethodSig {
	sig := &cil.MethodSig{HasThis: hasThis, GenParamCount: genParams}
	if ret == "" {
		sig.RetType = cil.CorLib.Void
	} else {
		sig.RetType = b.parseType(ret)
	}
	for _, p := range params {
		sig.Params = append(sig.Params, b.parseType(p))
	}
	return sig
}

func (b *builder) memberRef(e MemberRef) {
	owner, err := b.m.ParseTypeDefOrRef(e.Owner)
	if err != nil {
		b.fail(err)
		return
	}
	switch strings.ToLower(e.Kind) {
	case "method", "":
		b.m.AddMethodRef(&cil.MethodRef{
			Token: uint32(e.Token),
			Name:  e.Name,
			Class: owner,
			Sig:   b.methodSig(e.HasThis, e.Return, e.Params, 0),
		})
	case "field":
		b.m.AddFieldRef(&cil.FieldRef{
			Token: uint32(e.Token),
			Name:  e.Name,
			Class: owner,
			Type:  b.parseType(e.Type),
		})
	default:
		b.fail(errors.Errorf("member reference %s::%s has unknown kind %q", e.Owner, e.Name, e.Kind))
	}
}

func (b *builder) bodies(e *TypeEntry, t *cil.TypeDef) {
	for i, me := range e.Methods {
		method := t.Methods[i]
		if len(me.Body) == 0 && len(me.Locals) == 0 {
			continue
		}
		body, err := b.body(method, &me)
		if err != nil {
			b.fail(errors.Wrapf(err, "method %s", method.FullName()))
			continue
		}
		method.Body = body
	}
	for i := range e.Nested {
		b.bodies(&e.Nested[i], t.NestedTypes[i])
	}
}

func (b *builder) body(method *cil.MethodDef, me *Method) (*cil.Body, error) {
	body := &cil.Body{MaxStack: me.MaxStack, InitLocals: true}
	if body.MaxStack == 0 {
		body.MaxStack = 8
	}
	for i, l := range me.Locals {
		t, err := b.m.ParseType(l)
		if err != nil {
			return nil, err
		}
		body.Locals = append(body.Locals, &cil.Local{Index: i, Type: t})
	}
	instrs, err := ParseInstructions(b.m, method, body.Locals, me.Body)
	if err != nil {
		return nil, err
	}
	body.Instructions = instrs
	cil.UpdateOffsets(instrs)

	at := func(i int) (*cil.Instruction, error) {
		if i == len(instrs) {
			return nil, nil
		}
		if i < 0 || i > len(instrs) {
			return nil, errors.Errorf("exception region index %d out of range", i)
		}
		return instrs[i], nil
	}
	for _, ee := range me.Exceptions {
		eh := &cil.ExceptionHandler{}
		switch strings.ToLower(ee.Kind) {
		case "catch":
			eh.Kind = cil.HandlerCatch
		case "filter":
			eh.Kind = cil.HandlerFilter
		case "finally":
			eh.Kind = cil.HandlerFinally
		case "fault":
			eh.Kind = cil.HandlerFault
		default:
			return nil, errors.Errorf("unknown exception handler kind %q", ee.Kind)
		}
		var err error
		if eh.TryStart, err = at(ee.TryStart); err != nil {
			return nil, err
		}
		if eh.TryEnd, err = at(ee.TryEnd); err != nil {
			return nil, err
		}
		if eh.HandlerStart, err = at(ee.HandlerStart); err != nil {
			return nil, err
		}
		if eh.HandlerEnd, err = at(ee.HandlerEnd); err != nil {
			return nil, err
		}
		if ee.FilterStart != nil {
			if eh.FilterStart, err = at(*ee.FilterStart); err != nil {
				return nil, err
			}
		}
		if ee.CatchType != "" {
			if eh.CatchType, err = b.m.ParseTypeDefOrRef(ee.CatchType); err != nil {
				return nil, err
			}
		}
		body.ExceptionHandlers = append(body.ExceptionHandlers, eh)
	}
	return body, nil
}

// Loader opens snapshots and keeps the most recently used ones in memory.
type Loader struct {
	cache *lru.Cache[string, *Module]
}

// NewLoader creates a loader caching up to size modules.
func NewLoader(size int) (*Loader, error) {
	if size <= 0 {
		size = 16
	}
	cache, err := lru.New[string, *Module](size)
	if err != nil {
		return nil, err
	}
	return &Loader{cache: cache}, nil
}

// Load returns the module at path. A path whose file does not exist is retried
// with each of Extensions substituted for its extension, so "Runtime.dll" finds
// "Runtime.yml".
func (l *Loader) Load(path string) (*Module, error) {
	resolved, err := Resolve(path)
	if err != nil {
		return nil, err
	}
	if m, ok := l.cache.Get(resolved); ok {
		log.WithField("path", resolved).Debug("Using cached module")
		return m, nil
	}
	m, err := Open(resolved)
	if err != nil {
		return nil, err
	}
	l.cache.Add(resolved, m)
	return m, nil
}

// Purge drops every cached module.
func (l *Loader) Purge() { l.cache.Purge() }

// Resolve returns the absolute path of the snapshot backing path.
func Resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve %s", path)
	}
	if _, err := os.Stat(abs); err == nil {
		return abs, nil
	}
	base := strings.TrimSuffix(abs, filepath.Ext(abs))
	for _, ext := range Extensions {
		if _, err := os.Stat(base + ext); err == nil {
			return base + ext, nil
		}
	}
	return "", errors.Errorf("module %s not found (also tried %s)", path, strings.Join(Extensions, ", "))
}
