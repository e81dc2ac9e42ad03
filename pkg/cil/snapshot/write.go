package snapshot

import (
	"bytes"
	"encoding/base64"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/blacktop/devirt/pkg/cil"
)

// ToFile converts a module back into its on-disk form.
func ToFile(m *Module) (*File, error) {
	f := &File{Name: m.Name()}
	for _, r := range m.TypeRefs() {
		f.TypeRefs = append(f.TypeRefs, TypeRefEntry{
			Token:     Token(r.Token),
			Name:      r.FullName(),
			Scope:     r.Scope,
			ValueType: r.ValueType,
		})
	}
	for _, t := range m.Types() {
		e, err := typeEntry(t)
		if err != nil {
			return nil, err
		}
		f.Types = append(f.Types, e)
	}
	for _, s := range m.TypeSpecs() {
		f.TypeSpecs = append(f.TypeSpecs, TypeSpecEntry{Token: Token(s.Token), Type: s.FullName()})
	}
	for _, r := range m.FieldRefs() {
		f.MemberRefs = append(f.MemberRefs, MemberRef{
			Token: Token(r.Token),
			Kind:  "field",
			Owner: memberOwner(r.Class),
			Name:  r.Name,
			Type:  typeName(r.Type),
		})
	}
	for _, r := range m.MethodRefs() {
		mr := MemberRef{
			Token: Token(r.Token),
			Kind:  "method",
			Owner: memberOwner(r.Class),
			Name:  r.Name,
		}
		if r.Sig != nil {
			mr.HasThis = r.Sig.HasThis
			mr.Return = returnName(r.Sig.RetType)
			mr.Params = typeNames(r.Sig.Params)
		}
		f.MemberRefs = append(f.MemberRefs, mr)
	}
	for _, name := range m.Resources() {
		data, _ := m.Resource(name)
		f.Resources = append(f.Resources, Resource{Name: name, Data: base64.StdEncoding.EncodeToString(data)})
	}
	return f, nil
}

// Marshal encodes a module as YAML.
func Marshal(m *Module) ([]byte, error) {
	f, err := ToFile(m)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return nil, errors.Wrap(err, "failed to encode snapshot")
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes a module to path.
func Save(m *Module, path string) error {
	data, err := Marshal(m)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal %s", m.Name())
	}
	return os.WriteFile(path, data, 0o644)
}

func typeName(t cil.TypeSig) string {
	if t == nil {
		return ""
	}
	if s, ok := t.(*cil.TypeDefOrRefSig); ok && s.ElementType() == cil.ElementValueType {
		if ref, isRef := s.Type.(*cil.TypeRef); isRef && !ref.ValueType {
			return "valuetype " + t.FullName()
		}
	}
	return t.FullName()
}

func typeNames(ts []cil.TypeSig) []string {
	var names []string
	for _, t := range ts {
		names = append(names, typeName(t))
	}
	return names
}

func returnName(t cil.TypeSig) string {
	if t == nil || cil.IsVoid(t) {
		return ""
	}
	return typeName(t)
}

func typeEntry(t *cil.TypeDef) (TypeEntry, error) {
	e := TypeEntry{
		Token:         Token(t.Token),
		Namespace:     t.Namespace,
		Name:          t.Name,
		GenericParams: t.GenericParams,
	}
	if t.BaseType != nil {
		e.Base = t.BaseType.FullName()
	}
	for _, iface := range t.Interfaces {
		e.Interfaces = append(e.Interfaces, iface.FullName())
	}
	for _, f := range t.Fields {
		e.Fields = append(e.Fields, FieldEntry{
			Token:   Token(f.Token),
			Name:    f.Name,
			Type:    typeName(f.Type),
			Static:  f.Static,
			Literal: f.Literal,
		})
	}
	for _, m := range t.Methods {
		me, err := methodEntry(m)
		if err != nil {
			return e, errors.Wrapf(err, "method %s", m.FullName())
		}
		e.Methods = append(e.Methods, me)
	}
	for _, nt := range t.NestedTypes {
		ne, err := typeEntry(nt)
		if err != nil {
			return e, err
		}
		e.Nested = append(e.Nested, ne)
	}
	return e, nil
}

func methodEntry(m *cil.MethodDef) (Method, error) {
	me := Method{
		Token:      Token(m.Token),
		Name:       m.Name,
		Static:     m.Static,
		Virtual:    m.Virtual,
		ParamNames: m.ParamNames,
	}
	if m.Sig != nil {
		me.Return = returnName(m.Sig.RetType)
		me.Params = typeNames(m.Sig.Params)
		me.GenericParams = m.Sig.GenParamCount
	}
	body := m.Body
	if body == nil {
		return me, nil
	}
	me.MaxStack = body.MaxStack
	for _, l := range body.Locals {
		me.Locals = append(me.Locals, typeName(l.Type))
	}
	for _, instr := range body.Instructions {
		line, err := FormatInstruction(instr, body)
		if err != nil {
			return me, err
		}
		me.Body = append(me.Body, line)
	}
	index := func(instr *cil.Instruction) int {
		if instr == nil {
			return len(body.Instructions)
		}
		return body.IndexOf(instr)
	}
	for _, eh := range body.ExceptionHandlers {
		ee := Exception{
			Kind:         eh.Kind.String(),
			TryStart:     index(eh.TryStart),
			TryEnd:       index(eh.TryEnd),
			HandlerStart: index(eh.HandlerStart),
			HandlerEnd:   index(eh.HandlerEnd),
		}
		if eh.FilterStart != nil {
			fs := index(eh.FilterStart)
			ee.FilterStart = &fs
		}
		if eh.CatchType != nil {
			ee.CatchType = eh.CatchType.FullName()
		}
		me.Exceptions = append(me.Exceptions, ee)
	}
	return me, nil
}
