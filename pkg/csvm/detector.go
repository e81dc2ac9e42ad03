package csvm

import (
	"fmt"

	"github.com/apex/log"

	"github.com/blacktop/devirt/pkg/cil"
)

// NumHandlers is the number of opcode handlers a CSVM runtime registers.
const NumHandlers = 31

const (
	handlerDictionary = "System.Collections.Generic.Dictionary`2<System.UInt16,System.Type>"
	iCollection       = "System.Collections.ICollection"
	iEnumerable       = "System.Collections.IEnumerable"
)

// Info describes the VM's evaluation stack types.
type Info struct {
	StackValue *cil.TypeDef
	Stack      *cil.TypeDef
	Pop        *cil.MethodDef
	Peek       *cil.MethodDef
}

// FindInfo locates the VM stack types in the runtime module.
func FindInfo(mod cil.ModuleView) (*Info, error) {
	info := &Info{}
	for _, t := range mod.Types() {
		if isStackValueType(t) {
			info.StackValue = t
			break
		}
	}
	if info.StackValue == nil {
		return nil, detectionErrorf("could not find the VM stack value type")
	}
	for _, t := range mod.Types() {
		if isStackType(t, info.StackValue) {
			info.Stack = t
			break
		}
	}
	if info.Stack == nil {
		return nil, detectionErrorf("could not find the VM stack type")
	}
	for _, m := range info.Stack.Methods {
		if m.Sig == nil || len(m.Sig.Params) != 0 || cil.TryGetTypeDef(m.Sig.RetType) != info.StackValue {
			continue
		}
		if hasOpCode(m, cil.Add) {
			info.Pop = m
		} else {
			info.Peek = m
		}
	}
	if info.Pop == nil {
		return nil, detectionErrorf("could not find %s pop method", info.Stack.FullName())
	}
	return info, nil
}

func isStackValueType(t *cil.TypeDef) bool {
	if len(t.Fields) != 2 {
		return false
	}
	var enums, objects int
	for _, f := range t.Fields {
		if def := cil.TryGetTypeDef(f.Type); def != nil && def.IsEnum() {
			enums++
		}
		if f.Type != nil && f.Type.ElementType() == cil.ElementObject {
			objects++
		}
	}
	return enums == 1 && objects == 1
}

func isStackType(t, stackValue *cil.TypeDef) bool {
	if len(t.Interfaces) != 2 || !t.Implements(iCollection) || !t.Implements(iEnumerable) {
		return false
	}
	if len(t.NestedTypes) == 0 {
		return false
	}
	var values, ints, objects int
	for _, f := range t.Fields {
		if f.Literal || f.Type == nil {
			continue
		}
		switch {
		case cil.IsSZArray(f.Type) && cil.TryGetTypeDef(f.Type.Next()) == stackValue:
			values++
		case f.Type.ElementType() == cil.ElementI4:
			ints++
		case f.Type.ElementType() == cil.ElementObject:
			objects++
		}
	}
	return values == 2 && ints == 2 && objects == 1
}

// FindHandlerTypes returns the handler types registered by the VM's opcode
// dispatcher, in registration order.
func FindHandlerTypes(mod cil.ModuleView) ([]*cil.TypeDef, error) {
	for _, t := range mod.Types() {
		cctor := t.FindStaticConstructor()
		if cctor == nil || cctor.Body == nil {
			continue
		}
		if !exactly(typeNameCounts(t.Fields), t.FullName(), handlerDictionary, "System.UInt16") {
			continue
		}
		var handlers []*cil.TypeDef
		for _, instr := range cctor.Body.Instructions {
			if instr.OpCode != cil.Ldtoken {
				continue
			}
			if def, ok := instr.Operand.(*cil.TypeDef); ok {
				handlers = append(handlers, def)
			}
		}
		if len(handlers) == NumHandlers {
			log.WithField("type", t.FullName()).Debug("Found CSVM opcode dispatcher")
			return handlers, nil
		}
	}
	return nil, detectionErrorf("could not find CSVM opcode handler types")
}

// OpCodeTable maps VM opcode indices to the signatures classified for them.
// It is read-only once built.
type OpCodeTable struct {
	catalog  *Catalog
	handlers []*HandlerSignature
	infos    []*HandlerInfo
}

// Catalog returns the catalog version the table was classified against.
func (t *OpCodeTable) Catalog() *Catalog { return t.catalog }

// Len returns the number of VM opcodes.
func (t *OpCodeTable) Len() int { return len(t.handlers) }

// Handler returns the signature of VM opcode i.
func (t *OpCodeTable) Handler(i uint16) (*HandlerSignature, error) {
	if int(i) >= len(t.handlers) {
		return nil, malformedf("instruction", "VM opcode index %d out of range (%d handlers)", i, len(t.handlers))
	}
	return t.handlers[i], nil
}

// Info returns the fingerprinted handler type behind VM opcode i, or nil.
func (t *OpCodeTable) Info(i uint16) *HandlerInfo {
	if int(i) >= len(t.infos) {
		return nil
	}
	return t.infos[i]
}

// Names returns the handler names in opcode order.
func (t *OpCodeTable) Names() []string {
	names := make([]string, len(t.handlers))
	for i, h := range t.handlers {
		names[i] = h.Name
	}
	return names
}

// NewOpCodeTable builds a table from signatures directly, bypassing detection.
func NewOpCodeTable(catalog *Catalog, handlers []*HandlerSignature) *OpCodeTable {
	return &OpCodeTable{catalog: catalog, handlers: append([]*HandlerSignature(nil), handlers...)}
}

// Detect classifies the runtime module's handler types against the catalogs and
// returns the opcode table of the first catalog that classifies every handler
// uniquely and injectively.
func Detect(mod cil.ModuleView, catalogs []*Catalog) (*OpCodeTable, error) {
	types, err := FindHandlerTypes(mod)
	if err != nil {
		return nil, err
	}
	info, err := FindInfo(mod)
	if err != nil {
		return nil, err
	}
	infos := make([]*HandlerInfo, len(types))
	for i, t := range types {
		if infos[i], err = NewHandlerInfo(t, info); err != nil {
			return nil, err
		}
	}
	return Classify(infos, catalogs)
}

// Classify matches fingerprinted handlers against the catalogs in order.
func Classify(infos []*HandlerInfo, catalogs []*Catalog) (*OpCodeTable, error) {
	for _, c := range catalogs {
		handlers, err := classify(infos, c)
		if err != nil {
			log.WithField("catalog", c.String()).Debugf("catalog rejected: %v", err)
			continue
		}
		for i, h := range handlers {
			log.Debugf("%04X: %s", i, h.Name)
		}
		return &OpCodeTable{catalog: c, handlers: handlers, infos: infos}, nil
	}
	return nil, detectionErrorf("could not detect all VM opcode handlers")
}

func classify(infos []*HandlerInfo, c *Catalog) ([]*HandlerSignature, error) {
	handlers := make([]*HandlerSignature, 0, len(infos))
	used := make(map[*HandlerSignature]int, len(infos))
	for i, h := range infos {
		var found []*HandlerSignature
		for _, sig := range c.Signatures {
			if sig.Matches(h) {
				found = append(found, sig)
			}
		}
		if len(found) != 1 {
			return nil, fmt.Errorf("handler %d (%s) matched %d signatures", i, h.Type.FullName(), len(found))
		}
		if prev, ok := used[found[0]]; ok {
			return nil, fmt.Errorf("handlers %d and %d both classify as %q", prev, i, found[0].Name)
		}
		used[found[0]] = i
		handlers = append(handlers, found[0])
	}
	return handlers, nil
}
