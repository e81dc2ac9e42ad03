package cil

import (
	"fmt"
	"strconv"
	"strings"
)

// Instruction is a CIL instruction.
//
// Operand holds one of: nil, int32, int64, float32, float64, string, *Instruction (branch target),
// []*Instruction (switch targets), *Local, *Parameter, TypeDefOrRef, IField, IMethod or *MethodSig.
// Decoders may park their own symbolic operand types here until they are resolved.
type Instruction struct {
	Offset  uint32
	OpCode  *OpCode
	Operand any
}

// NewInstruction creates an instruction.
func NewInstruction(op *OpCode, operand any) *Instruction {
	return &Instruction{OpCode: op, Operand: operand}
}

var ldcI4Short = []*OpCode{LdcI4M1, LdcI40, LdcI41, LdcI42, LdcI43, LdcI44, LdcI45, LdcI46, LdcI47, LdcI48}

// NewLdcI4 returns the most compact instruction loading the 32-bit constant v.
func NewLdcI4(v int32) *Instruction {
	switch {
	case v >= -1 && v <= 8:
		return NewInstruction(ldcI4Short[v+1], nil)
	case v >= -128 && v <= 127:
		return NewInstruction(LdcI4S, int8(v))
	default:
		return NewInstruction(LdcI4, v)
	}
}

// LdcI4Value returns the constant loaded by any ldc.i4 form.
func (i *Instruction) LdcI4Value() (int32, bool) {
	if i.OpCode == nil {
		return 0, false
	}
	switch i.OpCode {
	case LdcI4S:
		switch v := i.Operand.(type) {
		case int8:
			return int32(v), true
		case int32:
			return v, true
		}
	case LdcI4:
		v, ok := i.Operand.(int32)
		return v, ok
	}
	for n, op := range ldcI4Short {
		if i.OpCode == op {
			return int32(n - 1), true
		}
	}
	return 0, false
}

// Size returns the encoded size of the instruction.
func (i *Instruction) Size() int {
	if i.OpCode == nil {
		return 0
	}
	if i.OpCode.Operand == InlineSwitch {
		n := 0
		if targets, ok := i.Operand.([]*Instruction); ok {
			n = len(targets)
		}
		return i.OpCode.Size() + 4 + 4*n
	}
	return i.OpCode.Size() + i.OpCode.OperandSize()
}

// UpdateOffsets assigns byte offsets to instructions and returns the code size.
func UpdateOffsets(instrs []*Instruction) uint32 {
	var offset uint32
	for _, instr := range instrs {
		instr.Offset = offset
		offset += uint32(instr.Size())
	}
	return offset
}

// Label returns the IL_XXXX label of an instruction.
func (i *Instruction) Label() string {
	return fmt.Sprintf("IL_%04X", i.Offset)
}

func (i *Instruction) String() string {
	if i.OpCode == nil {
		return fmt.Sprintf("%s: ??? %s", i.Label(), FormatOperand(i.Operand))
	}
	if i.Operand == nil {
		return i.Label() + ": " + i.OpCode.Name
	}
	return i.Label() + ": " + i.OpCode.Name + " " + FormatOperand(i.Operand)
}

// FormatOperand renders an operand the way listings show it.
func FormatOperand(operand any) string {
	switch v := operand.(type) {
	case nil:
		return ""
	case *Instruction:
		if v == nil {
			return "<end>"
		}
		return v.Label()
	case []*Instruction:
		labels := make([]string, 0, len(v))
		for _, t := range v {
			labels = append(labels, t.Label())
		}
		return "(" + strings.Join(labels, ", ") + ")"
	case string:
		return strconv.Quote(v)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case Member:
		return v.FullName()
	case *MethodSig:
		return fullNameOf(v.RetType) + " " + v.ParamsString()
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// StackUsage returns how many slots the instruction pops and pushes.
// hasReturn tells whether the enclosing method returns a value (for ret).
func (i *Instruction) StackUsage(hasReturn bool) (pops, pushes int) {
	op := i.OpCode
	if op == nil {
		return 0, 0
	}
	switch op.Code {
	case Call.Code, Callvirt.Code, Newobj.Code:
		m, ok := i.Operand.(IMethod)
		if !ok || m.Signature() == nil {
			return 0, 0
		}
		sig := m.Signature()
		pops = len(sig.Params)
		if op.Code == Newobj.Code {
			return pops, 1
		}
		if sig.HasThis {
			pops++
		}
		if sig.HasReturnValue() {
			pushes = 1
		}
		return pops, pushes
	case Calli.Code:
		sig, ok := i.Operand.(*MethodSig)
		if !ok {
			return 1, 0
		}
		pops = len(sig.Params) + 1
		if sig.HasThis {
			pops++
		}
		if sig.HasReturnValue() {
			pushes = 1
		}
		return pops, pushes
	case Ret.Code:
		if hasReturn {
			return 1, 0
		}
		return 0, 0
	}
	return op.Pop, op.Push
}

// LocalIndex returns the local variable index an ldloc/stloc/ldloca form refers to.
func (i *Instruction) LocalIndex() (int, bool) {
	switch i.OpCode {
	case Ldloc0, Stloc0:
		return 0, true
	case Ldloc1, Stloc1:
		return 1, true
	case Ldloc2, Stloc2:
		return 2, true
	case Ldloc3, Stloc3:
		return 3, true
	case LdlocS, Ldloc, StlocS, Stloc, LdlocaS, Ldloca:
		if l, ok := i.Operand.(*Local); ok {
			return l.Index, true
		}
	}
	return 0, false
}

// ArgIndex returns the parameter index an ldarg/starg/ldarga form refers to.
func (i *Instruction) ArgIndex() (int, bool) {
	switch i.OpCode {
	case Ldarg0:
		return 0, true
	case Ldarg1:
		return 1, true
	case Ldarg2:
		return 2, true
	case Ldarg3:
		return 3, true
	case LdargS, Ldarg, StargS, Starg, LdargaS, Ldarga:
		if p, ok := i.Operand.(*Parameter); ok {
			return p.Index, true
		}
	}
	return 0, false
}

func itoa(n int) string { return strconv.Itoa(n) }
