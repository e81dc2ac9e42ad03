package csvm

import (
	"github.com/apex/log"

	"github.com/blacktop/devirt/pkg/cil"
)

// IsValidOperandType reports whether sig can be used as the type operand of an
// instruction in method.
func IsValidOperandType(method *cil.MethodDef, sig cil.TypeSig) bool {
	t := cil.RemovePinnedAndModifiers(sig)
	if t == nil || t.ElementType() == cil.ElementVoid {
		return false
	}
	for t != nil {
		switch t.ElementType() {
		case cil.ElementSZArray, cil.ElementArray, cil.ElementGenericInst, cil.ElementPtr,
			cil.ElementFnPtr, cil.ElementVoid, cil.ElementBoolean, cil.ElementChar,
			cil.ElementI1, cil.ElementU1, cil.ElementI2, cil.ElementU2,
			cil.ElementI4, cil.ElementU4, cil.ElementI8, cil.ElementU8,
			cil.ElementR4, cil.ElementR8, cil.ElementTypedByRef,
			cil.ElementI, cil.ElementU, cil.ElementString, cil.ElementObject:
		case cil.ElementClass, cil.ElementValueType:
			if s, ok := t.(*cil.TypeDefOrRefSig); ok && s.Type == nil {
				return false
			}
		case cil.ElementMVar:
			g, ok := t.(*cil.GenericSig)
			if !ok || method == nil || method.Sig == nil || int(g.Number) >= method.Sig.GenParamCount {
				return false
			}
		case cil.ElementVar:
			g, ok := t.(*cil.GenericSig)
			if !ok || method == nil || method.DeclaringType == nil || int(g.Number) >= len(method.DeclaringType.GenericParams) {
				return false
			}
		default:
			return false
		}
		if t.Next() == nil {
			break
		}
		t = t.Next()
	}
	return t != nil
}

func pointee(t cil.TypeSig) cil.TypeSig {
	if cil.IsPointer(t) || cil.IsByRef(t) {
		return t.Next()
	}
	return nil
}

func element(t cil.TypeSig) cil.TypeSig {
	if cil.IsSZArray(t) {
		return t.Next()
	}
	return nil
}

// needsOperand reports whether instr is one of the forms the VM emits without its type operand.
func needsOperand(instr *cil.Instruction) bool {
	if instr.Operand != nil {
		return false
	}
	switch instr.OpCode {
	case cil.Ldelema, cil.Ldobj, cil.Stobj, cil.Ldelem, cil.Stelem:
		return true
	}
	return false
}

// inferOperand guesses the type operand of instruction i from the stack in front of it.
func inferOperand(method *cil.MethodDef, a *cil.StackAnalysis, i int, op *cil.OpCode) cil.TypeSig {
	switch op {
	case cil.Ldelema, cil.Ldelem:
		return element(a.TypeAt(i, 1))
	case cil.Ldobj:
		return pointee(a.TypeAt(i, 0))
	case cil.Stobj:
		if t := a.TypeAt(i, 0); IsValidOperandType(method, t) {
			return t
		}
		return pointee(a.TypeAt(i, 1))
	case cil.Stelem:
		if t := element(a.TypeAt(i, 2)); IsValidOperandType(method, t) {
			return t
		}
		return a.TypeAt(i, 0)
	}
	return nil
}

// RestoreOperands fills in the type operands of ldelema, ldobj, stobj and the
// generic ldelem/stelem from a stack type analysis of the method's body. It
// returns false if at least one operand could not be restored.
func RestoreOperands(method *cil.MethodDef) bool {
	if method == nil || method.Body == nil {
		return true
	}
	return restoreOperands(method, method.Body)
}

func restoreOperands(method *cil.MethodDef, body *cil.Body) bool {
	// a pass either fills at least one missing operand or stops the loop
	for pass := 0; pass <= len(body.Instructions); pass++ {
		a, err := cil.AnalyzeStack(method, body)
		if err != nil {
			log.WithError(err).Debugf("stack analysis of %08X failed", method.Token)
			break
		}
		progress := false
		for i, instr := range body.Instructions {
			if !needsOperand(instr) {
				continue
			}
			t := inferOperand(method, a, i, instr.OpCode)
			if !IsValidOperandType(method, t) {
				continue
			}
			instr.Operand = cil.ToTypeDefOrRef(t)
			progress = true
		}
		if !progress {
			break
		}
	}

	ok := true
	for _, instr := range body.Instructions {
		if !needsOperand(instr) {
			continue
		}
		ok = false
		switch instr.OpCode {
		case cil.Ldelem:
			instr.OpCode = cil.LdelemRef
		case cil.Stelem:
			instr.OpCode = cil.StelemRef
		}
	}
	return ok
}

// RestoreConstrainedPrefix inserts the constrained. prefix in front of virtual
// calls made on a managed pointer, which the VM does not encode.
func RestoreConstrainedPrefix(method *cil.MethodDef) error {
	if method == nil || method.Body == nil {
		return nil
	}
	return restoreConstrainedPrefix(method, method.Body)
}

func restoreConstrainedPrefix(method *cil.MethodDef, body *cil.Body) error {
	a, err := cil.AnalyzeStack(method, body)
	if err != nil {
		return err
	}
	inserts := make(map[int]*cil.Instruction)
	for i, instr := range body.Instructions {
		if instr.OpCode != cil.Callvirt {
			continue
		}
		called, ok := instr.Operand.(cil.IMethod)
		if !ok {
			continue
		}
		sig := called.Signature()
		if sig == nil || !sig.HasThis {
			continue
		}
		this := a.TypeAt(i, len(sig.Params))
		if !cil.IsByRef(this) || hasPrefix(body.Instructions, i, cil.Constrained) {
			continue
		}
		inserts[i] = cil.NewInstruction(cil.Constrained, cil.ToTypeDefOrRef(this.Next()))
	}
	if len(inserts) == 0 {
		return nil
	}
	instrs := make([]*cil.Instruction, 0, len(body.Instructions)+len(inserts))
	for i, instr := range body.Instructions {
		if prefix, ok := inserts[i]; ok {
			instrs = append(instrs, prefix)
		}
		instrs = append(instrs, instr)
	}
	retargetPrefixed(body, inserts)
	body.Instructions = instrs
	cil.UpdateOffsets(instrs)
	return nil
}

// retargetPrefixed moves branch targets and region boundaries that pointed at a
// prefixed call onto its new prefix.
func retargetPrefixed(body *cil.Body, inserts map[int]*cil.Instruction) {
	moved := make(map[*cil.Instruction]*cil.Instruction, len(inserts))
	for i, prefix := range inserts {
		moved[body.Instructions[i]] = prefix
	}
	remap := func(t *cil.Instruction) *cil.Instruction {
		if p, ok := moved[t]; ok {
			return p
		}
		return t
	}
	for _, instr := range body.Instructions {
		switch op := instr.Operand.(type) {
		case *cil.Instruction:
			instr.Operand = remap(op)
		case []*cil.Instruction:
			for k, t := range op {
				op[k] = remap(t)
			}
		}
	}
	for _, eh := range body.ExceptionHandlers {
		eh.TryStart = remap(eh.TryStart)
		eh.TryEnd = remap(eh.TryEnd)
		eh.HandlerStart = remap(eh.HandlerStart)
		eh.HandlerEnd = remap(eh.HandlerEnd)
		eh.FilterStart = remap(eh.FilterStart)
	}
}

func hasPrefix(instrs []*cil.Instruction, index int, prefix *cil.OpCode) bool {
	for index--; index >= 0; index-- {
		op := instrs[index].OpCode
		if op == nil || !op.Prefix {
			break
		}
		if op == prefix {
			return true
		}
	}
	return false
}
