package cil

import "fmt"

// Code is the raw encoding of an opcode. Two byte opcodes carry the 0xFE prefix in the high byte.
type Code uint16

// OperandType describes the inline operand that follows an opcode.
type OperandType uint8

const (
	InlineNone OperandType = iota
	InlineShortVar
	InlineVar
	InlineShortI
	InlineI
	InlineI8
	InlineShortR
	InlineR
	InlineShortBrTarget
	InlineBrTarget
	InlineSwitch
	InlineMethod
	InlineField
	InlineType
	InlineTok
	InlineString
	InlineSig
)

// FlowControl describes how an opcode affects control flow.
type FlowControl uint8

const (
	FlowNext FlowControl = iota
	FlowBreak
	FlowBranch
	FlowCondBranch
	FlowCall
	FlowReturn
	FlowThrow
	FlowMeta
)

// VarCount marks a pop or push count that depends on the operand (calls, ret).
const VarCount = -1

// OpCode is a CIL opcode.
type OpCode struct {
	Name    string
	Code    Code
	Operand OperandType
	Flow    FlowControl
	Pop     int
	Push    int
	Prefix  bool
}

var (
	opcodesByCode = make(map[Code]*OpCode)
	opcodesByName = make(map[string]*OpCode)
)

func newOpCode(name string, code Code, operand OperandType, flow FlowControl, pop, push int, prefix bool) *OpCode {
	op := &OpCode{
		Name:    name,
		Code:    code,
		Operand: operand,
		Flow:    flow,
		Pop:     pop,
		Push:    push,
		Prefix:  prefix,
	}
	opcodesByCode[code] = op
	opcodesByName[name] = op
	return op
}

// LookupOpCode returns the opcode with the given mnemonic (e.g. "ldc.i4.s").
func LookupOpCode(name string) (*OpCode, bool) {
	op, ok := opcodesByName[name]
	return op, ok
}

// OpCodeByCode returns the opcode for a raw encoding.
func OpCodeByCode(code Code) (*OpCode, bool) {
	op, ok := opcodesByCode[code]
	return op, ok
}

// Size returns the encoded size of the opcode itself.
func (op *OpCode) Size() int {
	if op.Code>>8 == 0xFE {
		return 2
	}
	return 1
}

// OperandSize returns the encoded size of the inline operand.
// For a switch it is the size of the target count only.
func (op *OpCode) OperandSize() int {
	switch op.Operand {
	case InlineNone:
		return 0
	case InlineShortVar, InlineShortI, InlineShortBrTarget:
		return 1
	case InlineVar:
		return 2
	case InlineI8, InlineR:
		return 8
	default:
		return 4
	}
}

// IsBranch reports whether the opcode takes one branch target.
func (op *OpCode) IsBranch() bool {
	return op.Operand == InlineBrTarget || op.Operand == InlineShortBrTarget
}

// EndsBlock reports whether execution never falls through to the next instruction.
func (op *OpCode) EndsBlock() bool {
	switch op.Flow {
	case FlowBranch, FlowReturn, FlowThrow:
		return true
	}
	return op.Code == Jmp.Code
}

func (op *OpCode) String() string {
	if op == nil {
		return "<nil>"
	}
	return op.Name
}

func (op *OpCode) GoString() string {
	return fmt.Sprintf("cil.OpCode{%s 0x%X}", op.Name, uint16(op.Code))
}
