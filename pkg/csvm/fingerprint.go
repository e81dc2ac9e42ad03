package csvm

import (
	"fmt"
	"sort"
	"strings"

	"github.com/twmb/murmur3"

	"github.com/blacktop/devirt/pkg/cil"
)

// Fingerprint is the structural shape of a handler type.
type Fingerprint struct {
	Static   int
	Instance int
	Virtual  int
	Ctors    int
	// Throws counts throw instructions in the execute routine.
	Throws int
	// Pops counts calls to the VM stack's pop method in the execute routine.
	Pops   int
	Fields FieldTypes
	// Locals holds the distinct local type names of the execute routine, sorted.
	Locals []string
}

func (f *Fingerprint) String() string {
	return fmt.Sprintf("static=%d instance=%d virtual=%d ctors=%d throws=%d pops=%d fields=%s locals=[%s]",
		f.Static, f.Instance, f.Virtual, f.Ctors, f.Throws, f.Pops, f.Fields, strings.Join(f.Locals, ","))
}

// Digest is a stable hash of the fingerprint, handy to compare handlers across builds.
func (f *Fingerprint) Digest() uint64 {
	return murmur3.StringSum64(f.String())
}

// HasLocal reports whether the execute routine has a local of the named type.
func (f *Fingerprint) HasLocal(name string) bool {
	i := sort.SearchStrings(f.Locals, name)
	return i < len(f.Locals) && f.Locals[i] == name
}

// HandlerInfo is a handler type together with its fingerprint.
type HandlerInfo struct {
	Type    *cil.TypeDef
	Read    *cil.MethodDef
	Execute *cil.MethodDef
	Fingerprint
}

const binaryReaderParams = "(System.IO.BinaryReader)"

func isReadMethod(m *cil.MethodDef) bool {
	return m.Sig != nil && cil.IsVoid(m.Sig.RetType) && m.Sig.ParamsString() == binaryReaderParams
}

// NewHandlerInfo fingerprints a handler type. info supplies the VM stack's pop method.
func NewHandlerInfo(t *cil.TypeDef, info *Info) (*HandlerInfo, error) {
	h := &HandlerInfo{Type: t}

	for _, m := range t.Methods {
		switch {
		case m.Name == ".cctor":
		case m.Name == ".ctor":
			h.Ctors++
		case m.Static:
			h.Static++
		case m.Virtual:
			h.Virtual++
		default:
			h.Instance++
		}
	}

	for _, m := range t.Methods {
		if !m.Virtual {
			continue
		}
		if isReadMethod(m) {
			if h.Read != nil {
				return nil, detectionErrorf("%s: found another read method", t.FullName())
			}
			h.Read = m
		} else if m.Sig != nil && !m.Sig.HasReturnValue() && len(m.Sig.Params) == 1 {
			if h.Execute != nil {
				return nil, detectionErrorf("%s: found another execute method", t.FullName())
			}
			h.Execute = m
		}
	}
	if h.Read == nil {
		return nil, detectionErrorf("%s: could not find read method", t.FullName())
	}
	if h.Execute == nil {
		return nil, detectionErrorf("%s: could not find execute method", t.FullName())
	}

	var pop cil.IMethod
	if info != nil && info.Pop != nil {
		pop = info.Pop
	}
	if body := h.Execute.Body; body != nil {
		for _, instr := range body.Instructions {
			switch instr.OpCode {
			case cil.Throw:
				h.Throws++
			case cil.Call, cil.Callvirt:
				if called, ok := instr.Operand.(cil.IMethod); ok && pop != nil && cil.MethodEqual(called, pop) {
					h.Pops++
				}
			}
		}
		seen := make(map[string]bool)
		for _, l := range body.Locals {
			if l.Type == nil {
				continue
			}
			if name := l.Type.FullName(); !seen[name] {
				seen[name] = true
				h.Locals = append(h.Locals, name)
			}
		}
		sort.Strings(h.Locals)
	}

	h.Fields = fieldTypesOf(referencedFields(t))
	return h, nil
}

// callsMethod reports whether m calls (or constructs through) the method with the given full name.
func callsMethod(m *cil.MethodDef, fullName string) bool {
	if m == nil || m.Body == nil {
		return false
	}
	for _, instr := range m.Body.Instructions {
		switch instr.OpCode {
		case cil.Call, cil.Callvirt, cil.Newobj:
			if called, ok := instr.Operand.(cil.IMethod); ok && called.FullName() == fullName {
				return true
			}
		}
	}
	return false
}

// isEmptyMethod reports whether m does nothing but return.
func isEmptyMethod(m *cil.MethodDef) bool {
	if m == nil || m.Body == nil {
		return false
	}
	for _, instr := range m.Body.Instructions {
		if instr.OpCode == cil.Ret {
			return true
		}
		if instr.OpCode != cil.Nop {
			break
		}
	}
	return false
}

func hasOpCode(m *cil.MethodDef, op *cil.OpCode) bool {
	if m == nil || m.Body == nil {
		return false
	}
	for _, instr := range m.Body.Instructions {
		if instr.OpCode == op {
			return true
		}
	}
	return false
}
