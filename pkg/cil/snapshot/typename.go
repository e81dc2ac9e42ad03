package snapshot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/blacktop/devirt/pkg/cil"
)

func splitTypeName(fullName string) (ns, name string) {
	if i := strings.LastIndexByte(fullName, '.'); i >= 0 {
		return fullName[:i], fullName[i+1:]
	}
	return "", fullName
}

// ParseType parses a type name such as "System.Int32[]", "valuetype Foo&",
// "!0", "!!1" or "System.Collections.Generic.Dictionary`2<System.UInt16,System.Type>".
// Unknown named types become type references of the module.
func (m *Module) ParseType(s string) (cil.TypeSig, error) {
	p := &typeParser{m: m, s: s}
	t, err := p.parse()
	if err != nil {
		return nil, fmt.Errorf("failed to parse type %q: %w", s, err)
	}
	p.skipSpace()
	if p.pos != len(p.s) {
		return nil, fmt.Errorf("failed to parse type %q: trailing %q", s, p.s[p.pos:])
	}
	return t, nil
}

// ParseTypeDefOrRef parses a type name into a type operand.
func (m *Module) ParseTypeDefOrRef(s string) (cil.TypeDefOrRef, error) {
	t, err := m.ParseType(s)
	if err != nil {
		return nil, err
	}
	return cil.ToTypeDefOrRef(t), nil
}

type typeParser struct {
	m   *Module
	s   string
	pos int
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.s) && p.s[p.pos] == ' ' {
		p.pos++
	}
}

func (p *typeParser) consume(prefix string) bool {
	if strings.HasPrefix(p.s[p.pos:], prefix) {
		p.pos += len(prefix)
		return true
	}
	return false
}

func (p *typeParser) parse() (cil.TypeSig, error) {
	p.skipSpace()
	valueType, class := false, false
	switch {
	case p.consume("valuetype "):
		valueType = true
	case p.consume("class "):
		class = true
	}
	p.skipSpace()

	var t cil.TypeSig
	switch {
	case p.consume("!!"):
		n, err := p.number()
		if err != nil {
			return nil, err
		}
		t = cil.NewGenericMVar(n)
	case p.consume("!"):
		n, err := p.number()
		if err != nil {
			return nil, err
		}
		t = cil.NewGenericVar(n)
	default:
		name := p.name()
		if name == "" {
			return nil, fmt.Errorf("expected a type name at offset %d", p.pos)
		}
		named := p.named(name, valueType, class)
		if p.consume("<") {
			gen, ok := named.(*cil.TypeDefOrRefSig)
			if !ok {
				return nil, fmt.Errorf("%s cannot be instantiated", name)
			}
			var args []cil.TypeSig
			for {
				arg, err := p.parse()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				p.skipSpace()
				if p.consume(">") {
					break
				}
				if !p.consume(",") {
					return nil, fmt.Errorf("expected ',' or '>' at offset %d", p.pos)
				}
			}
			named = cil.NewGenericInst(gen, args...)
		}
		t = named
	}

	for {
		switch {
		case p.consume("[]"):
			t = cil.NewSZArray(t)
		case p.consume("[*]"):
			t = cil.NewArray(t, 1)
		case p.consume("[,"):
			rank := uint32(2)
			for p.consume(",") {
				rank++
			}
			if !p.consume("]") {
				return nil, fmt.Errorf("unterminated array rank at offset %d", p.pos)
			}
			t = cil.NewArray(t, rank)
		case p.consume("*"):
			t = cil.NewPtr(t)
		case p.consume("&"):
			t = cil.NewByRef(t)
		default:
			return t, nil
		}
	}
}

func (p *typeParser) number() (uint32, error) {
	start := p.pos
	for p.pos < len(p.s) && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
		p.pos++
	}
	n, err := strconv.ParseUint(p.s[start:p.pos], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("bad generic parameter number at offset %d", start)
	}
	return uint32(n), nil
}

func (p *typeParser) name() string {
	start := p.pos
	for p.pos < len(p.s) && !strings.ContainsRune("<>,[]*& ", rune(p.s[p.pos])) {
		p.pos++
	}
	return p.s[start:p.pos]
}

func (p *typeParser) named(name string, valueType, class bool) cil.TypeSig {
	if !valueType && !class {
		if cl := cil.CorLib.ByFullName(name); cl != nil {
			return cl
		}
	}
	var t cil.TypeDefOrRef
	if found, ok := p.m.byName[name]; ok {
		t = found
	} else if def := p.m.findTypeDef(name); def != nil {
		t = def
	} else {
		ref := p.m.TypeRef(name)
		if valueType {
			ref.ValueType = true
		}
		t = ref
	}
	if valueType || (!class && t.IsValueType()) {
		return cil.NewValueTypeSig(t)
	}
	return cil.NewClassSig(t)
}

// findTypeDef looks a definition up before the module is indexed.
func (m *Module) findTypeDef(fullName string) *cil.TypeDef {
	var find func(types []*cil.TypeDef, prefix string) *cil.TypeDef
	find = func(types []*cil.TypeDef, prefix string) *cil.TypeDef {
		for _, t := range types {
			name := t.Name
			if prefix != "" {
				name = prefix + "/" + t.Name
			} else if t.Namespace != "" {
				name = t.Namespace + "." + t.Name
			}
			if name == fullName {
				return t
			}
			if strings.HasPrefix(fullName, name+"/") {
				if found := find(t.NestedTypes, name); found != nil {
					return found
				}
			}
		}
		return nil
	}
	return find(m.types, "")
}
