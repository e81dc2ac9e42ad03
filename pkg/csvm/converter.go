package csvm

import (
	"fmt"

	"github.com/apex/log"

	"github.com/blacktop/devirt/pkg/cil"
)

// Result is the outcome of converting one VM method.
type Result struct {
	Method *cil.MethodDef
	// Restored is false if at least one type operand had to be guessed.
	Restored bool
	// Committed is false if the body was left untouched (strict mode only).
	Committed bool
	Warnings  []string
}

func (r *Result) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Warn(msg)
	r.Warnings = append(r.Warnings, msg)
}

// Converter rebuilds CIL method bodies from VM method data.
type Converter struct {
	module  cil.ModuleView
	decoder *Decoder
	// Strict leaves a method untouched when any operand could not be restored.
	Strict bool
}

// NewConverter returns a converter for methods of module, decoded with table.
func NewConverter(module cil.ModuleView, table *OpCodeTable) *Converter {
	return &Converter{
		module:  module,
		decoder: NewDecoder(table, module),
	}
}

// conversion holds the per-method state of one Convert call.
type conversion struct {
	*Converter
	method *cil.MethodDef
	gp     cil.GenericContext
	instrs []*cil.Instruction
	// vmIndex maps each decoded instruction back to its position in the VM stream.
	vmIndex map[*cil.Instruction]int
	result  *Result
}

// Convert decodes data and replaces method's body with the recovered CIL.
func (c *Converter) Convert(method *cil.MethodDef, data *MethodData) (*Result, error) {
	cv := &conversion{
		Converter: c,
		method:    method,
		gp:        cil.GenericContextOf(method),
		result:    &Result{Method: method},
	}

	var err error
	if cv.instrs, err = c.decoder.Decode(data.Instructions, cv.gp); err != nil {
		return nil, err
	}
	cv.vmIndex = make(map[*cil.Instruction]int, len(cv.instrs))
	for i, instr := range cv.instrs {
		cv.vmIndex[instr] = i
	}

	locals, err := cv.readLocals(data.Locals)
	if err != nil {
		return nil, err
	}
	ehs, err := cv.readExceptions(data.Exceptions)
	if err != nil {
		return nil, err
	}
	if err := cv.fixOperands(); err != nil {
		return nil, err
	}
	if err := cv.fixLocals(locals); err != nil {
		return nil, err
	}
	if err := cv.fixArgs(); err != nil {
		return nil, err
	}

	body := &cil.Body{Instructions: cv.instrs, Locals: locals, ExceptionHandlers: ehs}
	cv.result.Restored = restoreOperands(method, body)
	if !cv.result.Restored {
		cv.result.warnf("Failed to restore one or more instruction operands in CSVM method %08X", method.Token)
		if c.Strict {
			return cv.result, nil
		}
	}
	if err := restoreConstrainedPrefix(method, body); err != nil {
		cv.result.warnf("Could not restore constrained prefixes in CSVM method %08X: %v", method.Token, err)
	}

	method.RestoreBody(body.Instructions, body.Locals, body.ExceptionHandlers)
	if err := method.UpdateMaxStack(); err != nil {
		log.WithError(err).Debugf("keeping default max stack for %08X", method.Token)
	}
	cv.result.Committed = true
	return cv.result, nil
}

// readLocals decodes the local variable list. The method's own locals are kept
// when they agree in number, since metadata types are exact.
func (cv *conversion) readLocals(data []byte) ([]*cil.Local, error) {
	if len(data) == 0 {
		return nil, nil
	}
	r := NewReader(data)
	n, err := r.ReadInt32()
	if err != nil {
		return nil, malformed("locals", err)
	}
	// some builds repeat trailing locals, so only a negative count is rejected
	if n < 0 {
		return nil, malformedf("locals", "negative local count %d", n)
	}
	locals := make([]*cil.Local, 0, min(int(n), r.Len()/4))
	for i := 0; i < int(n); i++ {
		t, err := cv.readLocalType(r)
		if err != nil {
			return nil, err
		}
		locals = append(locals, &cil.Local{Index: i, Type: t})
	}

	if body := cv.method.Body; body != nil && len(body.Locals) == len(locals) && len(locals) > 0 {
		kept := make([]*cil.Local, len(body.Locals))
		for i, l := range body.Locals {
			kept[i] = &cil.Local{Index: i, Type: l.Type, Name: l.Name}
		}
		return kept, nil
	}
	return locals, nil
}

func (cv *conversion) readLocalType(r *Reader) (cil.TypeSig, error) {
	tag, err := r.ReadInt32()
	if err != nil {
		return nil, malformed("locals", err)
	}
	etype := cil.ElementType(tag)
	switch etype {
	case cil.ElementValueType, cil.ElementVar, cil.ElementMVar:
		return cv.readLocalToken(r)
	case cil.ElementGenericInst:
		inner, err := r.ReadInt32()
		if err != nil {
			return nil, malformed("locals", err)
		}
		if cil.ElementType(inner) == cil.ElementValueType {
			return cv.readLocalToken(r)
		}
		return cil.CorLib.Object, nil
	}
	if tag >= 0 && tag <= 0xff {
		if s := cil.CorLib.ByElementType(etype); s != nil {
			return s, nil
		}
	}
	return cil.CorLib.Object, nil
}

func (cv *conversion) readLocalToken(r *Reader) (cil.TypeSig, error) {
	token, err := r.ReadUint32()
	if err != nil {
		return nil, malformed("locals", err)
	}
	t, err := cil.ResolveTypeToken(cv.module, token, cv.gp)
	if err != nil {
		return nil, err
	}
	return cil.ToTypeSig(t), nil
}

func (cv *conversion) instruction(vmIndex int32) (*cil.Instruction, bool) {
	if vmIndex < 0 || int(vmIndex) >= len(cv.instrs) {
		return nil, false
	}
	return cv.instrs[vmIndex], true
}

// instructionEnd returns the instruction after vmIndex, or nil for the end of the method.
func (cv *conversion) instructionEnd(vmIndex int32) *cil.Instruction {
	instr, _ := cv.instruction(vmIndex + 1)
	return instr
}

func (cv *conversion) readExceptions(data []byte) ([]*cil.ExceptionHandler, error) {
	if len(data) == 0 {
		return nil, nil
	}
	r := NewReader(data)
	n, err := r.ReadInt32()
	if err != nil {
		return nil, malformed("exception handlers", err)
	}
	if n < 0 {
		return nil, malformedf("exception handlers", "negative handler count %d", n)
	}
	var ehs []*cil.ExceptionHandler
	for i := 0; i < int(n); i++ {
		eh, err := cv.readException(r)
		if err != nil {
			return nil, err
		}
		ehs = append(ehs, eh)
	}
	return ehs, nil
}

func (cv *conversion) readException(r *Reader) (*cil.ExceptionHandler, error) {
	var v [5]int32
	for k := range v {
		x, err := r.ReadInt32()
		if err != nil {
			return nil, malformed("exception handlers", err)
		}
		v[k] = x
	}
	eh := &cil.ExceptionHandler{Kind: cil.ExceptionHandlerKind(uint32(v[0]))}
	var ok bool
	if eh.TryStart, ok = cv.instruction(v[1]); !ok {
		return nil, malformedf("exception handlers", "try start %d out of range", v[1])
	}
	eh.TryEnd = cv.instructionEnd(v[2])
	if eh.HandlerStart, ok = cv.instruction(v[3]); !ok {
		return nil, malformedf("exception handlers", "handler start %d out of range", v[3])
	}
	eh.HandlerEnd = cv.instructionEnd(v[4])

	switch eh.Kind {
	case cil.HandlerCatch:
		token, err := r.ReadUint32()
		if err != nil {
			return nil, malformed("exception handlers", err)
		}
		if eh.CatchType, err = cil.ResolveTypeToken(cv.module, token, cv.gp); err != nil {
			return nil, err
		}
	case cil.HandlerFilter:
		start, err := r.ReadInt32()
		if err != nil {
			return nil, malformed("exception handlers", err)
		}
		if eh.FilterStart, ok = cv.instruction(start); !ok {
			return nil, malformedf("exception handlers", "filter start %d out of range", start)
		}
	}
	return eh, nil
}

func (cv *conversion) target(source *cil.Instruction, displ int32) (*cil.Instruction, error) {
	idx := int32(cv.vmIndex[source]) + displ
	t, ok := cv.instruction(idx)
	if !ok {
		return nil, malformedf("instruction", "%s branches to VM instruction %d of %d", source.OpCode, idx, len(cv.instrs))
	}
	return t, nil
}

func (cv *conversion) fixOperands() error {
	for _, instr := range cv.instrs {
		op, ok := instr.Operand.(Operand)
		if !ok {
			continue
		}
		switch o := op.(type) {
		case BranchDisplacement:
			t, err := cv.target(instr, int32(o))
			if err != nil {
				return err
			}
			instr.Operand = t
		case SwitchDisplacements:
			targets := make([]*cil.Instruction, len(o))
			for k, d := range o {
				t, err := cv.target(instr, d)
				if err != nil {
					return err
				}
				targets[k] = t
			}
			instr.Operand = targets
		case LocalIndex, ArgIndex:
			// see fixLocals and fixArgs
		case *DeferredField:
			cv.fixField(instr, o)
		default:
			return fmt.Errorf("unknown VM operand %T", op)
		}
	}
	return nil
}

func (cv *conversion) fixField(instr *cil.Instruction, d *DeferredField) {
	static := false
	field, err := cv.module.ResolveField(d.Field)
	if err != nil || field == nil {
		var token uint32
		if d.Field != nil {
			token = d.Field.MDToken()
		}
		cv.result.warnf("Could not resolve field %08X. Assuming it's not static.", token)
	} else {
		static = field.Static
	}
	if static {
		instr.OpCode = d.Static
	} else {
		instr.OpCode = d.Instance
	}
	instr.Operand = d.Field
}

// Compact encodings, indexed by variable number.
var (
	ldlocShort = []*cil.OpCode{cil.Ldloc0, cil.Ldloc1, cil.Ldloc2, cil.Ldloc3}
	stlocShort = []*cil.OpCode{cil.Stloc0, cil.Stloc1, cil.Stloc2, cil.Stloc3}
	ldargShort = []*cil.OpCode{cil.Ldarg0, cil.Ldarg1, cil.Ldarg2, cil.Ldarg3}
)

// compact picks the smallest encoding for a variable access: the dedicated
// form for 0-3 when there is one, the .s form up to 255, the long form beyond.
func compact(index int, short []*cil.OpCode, s, long *cil.OpCode, operand any) (*cil.OpCode, any) {
	switch {
	case index < len(short):
		return short[index], nil
	case index <= 0xff:
		return s, operand
	default:
		return long, operand
	}
}

func (cv *conversion) fixLocals(locals []*cil.Local) error {
	for _, instr := range cv.instrs {
		idx, ok := instr.Operand.(LocalIndex)
		if !ok {
			continue
		}
		if int(idx) >= len(locals) {
			return malformedf("instruction", "%s refers to local %d of %d", instr.OpCode, idx, len(locals))
		}
		local := locals[idx]
		switch instr.OpCode {
		case cil.Ldloc, cil.LdlocS:
			instr.OpCode, instr.Operand = compact(int(idx), ldlocShort, cil.LdlocS, cil.Ldloc, local)
		case cil.Stloc, cil.StlocS:
			instr.OpCode, instr.Operand = compact(int(idx), stlocShort, cil.StlocS, cil.Stloc, local)
		case cil.Ldloca, cil.LdlocaS:
			instr.OpCode, instr.Operand = compact(int(idx), nil, cil.LdlocaS, cil.Ldloca, local)
		default:
			return malformedf("instruction", "local operand on %s", instr.OpCode)
		}
	}
	return nil
}

func (cv *conversion) fixArgs() error {
	params := cv.method.Parameters()
	for _, instr := range cv.instrs {
		idx, ok := instr.Operand.(ArgIndex)
		if !ok {
			continue
		}
		if int(idx) >= len(params) {
			return malformedf("instruction", "%s refers to argument %d of %d", instr.OpCode, idx, len(params))
		}
		param := params[idx]
		switch instr.OpCode {
		case cil.Ldarg, cil.LdargS:
			instr.OpCode, instr.Operand = compact(int(idx), ldargShort, cil.LdargS, cil.Ldarg, param)
		case cil.Starg, cil.StargS:
			instr.OpCode, instr.Operand = compact(int(idx), nil, cil.StargS, cil.Starg, param)
		case cil.Ldarga, cil.LdargaS:
			instr.OpCode, instr.Operand = compact(int(idx), nil, cil.LdargaS, cil.Ldarga, param)
		default:
			return malformedf("instruction", "argument operand on %s", instr.OpCode)
		}
	}
	return nil
}
