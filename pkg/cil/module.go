// Package cil models the parts of .NET metadata and CIL code needed to rebuild method bodies.
package cil

import (
	"errors"
	"fmt"
)

// ErrUnresolvedToken is matched by every *UnresolvedTokenError.
var ErrUnresolvedToken = errors.New("unresolved token")

// UnresolvedTokenError is returned when a token does not resolve to a usable member.
type UnresolvedTokenError struct {
	Token uint32
	// Want describes the expected member kind, if any.
	Want string
}

func (e *UnresolvedTokenError) Error() string {
	if e.Want != "" {
		return fmt.Sprintf("token 0x%08X does not resolve to a %s", e.Token, e.Want)
	}
	return fmt.Sprintf("unresolved token 0x%08X", e.Token)
}

func (e *UnresolvedTokenError) Is(target error) bool { return target == ErrUnresolvedToken }

// GenericContext is the generic parameter scope used while resolving tokens.
type GenericContext struct {
	Type   *TypeDef
	Method *MethodDef
}

// GenericContextOf returns the generic context of a method.
func GenericContextOf(m *MethodDef) GenericContext {
	if m == nil {
		return GenericContext{}
	}
	return GenericContext{Type: m.DeclaringType, Method: m}
}

// TokenResolver resolves metadata tokens.
type TokenResolver interface {
	ResolveToken(token uint32, gp GenericContext) (Member, error)
}

// ModuleView is the read side of a loaded module.
type ModuleView interface {
	TokenResolver
	// Name is the module's file name.
	Name() string
	// Location is the path the module was loaded from.
	Location() string
	// Types returns the top level types in declaration order.
	Types() []*TypeDef
	// MethodRefs returns all method member references.
	MethodRefs() []*MethodRef
	// Resource returns the data of a named embedded resource.
	Resource(name string) ([]byte, bool)
	// ResolveField resolves a field reference to its definition.
	ResolveField(f IField) (*FieldDef, error)
}

// ResourceRemover is implemented by modules that can drop embedded resources.
type ResourceRemover interface {
	RemoveResource(name string) bool
}

// AllTypes flattens nested types, keeping declaration order.
func AllTypes(types []*TypeDef) []*TypeDef {
	var all []*TypeDef
	var walk func([]*TypeDef)
	walk = func(ts []*TypeDef) {
		for _, t := range ts {
			all = append(all, t)
			walk(t.NestedTypes)
		}
	}
	walk(types)
	return all
}

// ResolveTypeToken resolves a token that must name a type.
func ResolveTypeToken(r TokenResolver, token uint32, gp GenericContext) (TypeDefOrRef, error) {
	m, err := r.ResolveToken(token, gp)
	if err != nil {
		return nil, err
	}
	t, ok := m.(TypeDefOrRef)
	if !ok {
		return nil, &UnresolvedTokenError{Token: token, Want: "type"}
	}
	return t, nil
}

// ResolveFieldToken resolves a token that must name a field.
func ResolveFieldToken(r TokenResolver, token uint32, gp GenericContext) (IField, error) {
	m, err := r.ResolveToken(token, gp)
	if err != nil {
		return nil, err
	}
	f, ok := m.(IField)
	if !ok {
		return nil, &UnresolvedTokenError{Token: token, Want: "field"}
	}
	return f, nil
}

// ResolveMethodToken resolves a token that must name a method.
func ResolveMethodToken(r TokenResolver, token uint32, gp GenericContext) (IMethod, error) {
	m, err := r.ResolveToken(token, gp)
	if err != nil {
		return nil, err
	}
	method, ok := m.(IMethod)
	if !ok {
		return nil, &UnresolvedTokenError{Token: token, Want: "method"}
	}
	return method, nil
}
