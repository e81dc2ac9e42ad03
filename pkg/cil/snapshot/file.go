// Package snapshot reads and writes module snapshots: a YAML rendition of the
// metadata and method bodies of a .NET module.
package snapshot

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Token is a metadata token. It is written as a 0x prefixed hex string.
type Token uint32

func (t Token) MarshalYAML() (any, error) {
	return fmt.Sprintf("0x%08X", uint32(t)), nil
}

func (t *Token) UnmarshalYAML(value *yaml.Node) error {
	v, err := strconv.ParseUint(strings.TrimSpace(value.Value), 0, 32)
	if err != nil {
		return fmt.Errorf("line %d: bad token %q", value.Line, value.Value)
	}
	*t = Token(v)
	return nil
}

// File is the on-disk form of a module.
type File struct {
	Name       string          `yaml:"name" json:"name" jsonschema:"description=module file name"`
	ValueTypes []string        `yaml:"value_types,omitempty" json:"value_types,omitempty" jsonschema:"description=external types that are value types"`
	TypeRefs   []TypeRefEntry  `yaml:"type_refs,omitempty" json:"type_refs,omitempty"`
	Types      []TypeEntry     `yaml:"types,omitempty" json:"types,omitempty"`
	TypeSpecs  []TypeSpecEntry `yaml:"type_specs,omitempty" json:"type_specs,omitempty"`
	MemberRefs []MemberRef     `yaml:"member_refs,omitempty" json:"member_refs,omitempty"`
	Resources  []Resource      `yaml:"resources,omitempty" json:"resources,omitempty"`
}

type TypeRefEntry struct {
	Token     Token  `yaml:"token,omitempty" json:"token,omitempty" jsonschema:"type=string"`
	Name      string `yaml:"name" json:"name" jsonschema:"description=full type name"`
	Scope     string `yaml:"scope,omitempty" json:"scope,omitempty" jsonschema:"description=assembly the type lives in"`
	ValueType bool   `yaml:"value_type,omitempty" json:"value_type,omitempty"`
}

type TypeEntry struct {
	Token         Token        `yaml:"token,omitempty" json:"token,omitempty" jsonschema:"type=string"`
	Namespace     string       `yaml:"namespace,omitempty" json:"namespace,omitempty"`
	Name          string       `yaml:"name" json:"name"`
	Base          string       `yaml:"base,omitempty" json:"base,omitempty"`
	Interfaces    []string     `yaml:"interfaces,omitempty" json:"interfaces,omitempty"`
	GenericParams []string     `yaml:"generic_params,omitempty" json:"generic_params,omitempty"`
	Fields        []FieldEntry `yaml:"fields,omitempty" json:"fields,omitempty"`
	Methods       []Method     `yaml:"methods,omitempty" json:"methods,omitempty"`
	Nested        []TypeEntry  `yaml:"nested,omitempty" json:"nested,omitempty"`
}

type FieldEntry struct {
	Token   Token  `yaml:"token,omitempty" json:"token,omitempty" jsonschema:"type=string"`
	Name    string `yaml:"name" json:"name"`
	Type    string `yaml:"type" json:"type"`
	Static  bool   `yaml:"static,omitempty" json:"static,omitempty"`
	Literal bool   `yaml:"literal,omitempty" json:"literal,omitempty"`
}

type Method struct {
	Token         Token       `yaml:"token,omitempty" json:"token,omitempty" jsonschema:"type=string"`
	Name          string      `yaml:"name" json:"name"`
	Static        bool        `yaml:"static,omitempty" json:"static,omitempty"`
	Virtual       bool        `yaml:"virtual,omitempty" json:"virtual,omitempty"`
	Return        string      `yaml:"return,omitempty" json:"return,omitempty" jsonschema:"description=return type, System.Void when empty"`
	Params        []string    `yaml:"params,omitempty" json:"params,omitempty"`
	ParamNames    []string    `yaml:"param_names,omitempty" json:"param_names,omitempty"`
	GenericParams int         `yaml:"generic_params,omitempty" json:"generic_params,omitempty"`
	Locals        []string    `yaml:"locals,omitempty" json:"locals,omitempty"`
	MaxStack      int         `yaml:"max_stack,omitempty" json:"max_stack,omitempty"`
	Body          []string    `yaml:"body,omitempty" json:"body,omitempty" jsonschema:"description=one instruction per line: opcode and operand; branch targets are @index"`
	Exceptions    []Exception `yaml:"exceptions,omitempty" json:"exceptions,omitempty"`
}

// Exception is a protected region. Bounds are instruction indices; an end equal
// to the body length means the end of the method.
type Exception struct {
	Kind         string `yaml:"kind" json:"kind" jsonschema:"enum=catch,enum=filter,enum=finally,enum=fault"`
	TryStart     int    `yaml:"try_start" json:"try_start"`
	TryEnd       int    `yaml:"try_end" json:"try_end"`
	HandlerStart int    `yaml:"handler_start" json:"handler_start"`
	HandlerEnd   int    `yaml:"handler_end" json:"handler_end"`
	FilterStart  *int   `yaml:"filter_start,omitempty" json:"filter_start,omitempty"`
	CatchType    string `yaml:"catch_type,omitempty" json:"catch_type,omitempty"`
}

// MemberRef is a field or method reference.
type MemberRef struct {
	Token   Token    `yaml:"token,omitempty" json:"token,omitempty" jsonschema:"type=string"`
	Kind    string   `yaml:"kind" json:"kind" jsonschema:"enum=method,enum=field"`
	Owner   string   `yaml:"owner" json:"owner"`
	Name    string   `yaml:"name" json:"name"`
	Type    string   `yaml:"type,omitempty" json:"type,omitempty" jsonschema:"description=field type"`
	HasThis bool     `yaml:"has_this,omitempty" json:"has_this,omitempty"`
	Return  string   `yaml:"return,omitempty" json:"return,omitempty"`
	Params  []string `yaml:"params,omitempty" json:"params,omitempty"`
}

type TypeSpecEntry struct {
	Token Token  `yaml:"token,omitempty" json:"token,omitempty" jsonschema:"type=string"`
	Type  string `yaml:"type" json:"type"`
}

// Resource is an embedded resource. Data is base64.
type Resource struct {
	Name string `yaml:"name" json:"name"`
	Data string `yaml:"data" json:"data" jsonschema:"contentEncoding=base64"`
}
