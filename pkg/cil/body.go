package cil

import "fmt"

// ExceptionHandlerKind is the kind of a protected region's handler.
type ExceptionHandlerKind uint32

const (
	HandlerCatch   ExceptionHandlerKind = 0
	HandlerFilter  ExceptionHandlerKind = 1
	HandlerFinally ExceptionHandlerKind = 2
	HandlerFault   ExceptionHandlerKind = 4
)

func (k ExceptionHandlerKind) String() string {
	switch k {
	case HandlerCatch:
		return "catch"
	case HandlerFilter:
		return "filter"
	case HandlerFinally:
		return "finally"
	case HandlerFault:
		return "fault"
	default:
		return fmt.Sprintf("handler(%d)", uint32(k))
	}
}

// ExceptionHandler is a protected region. A nil end instruction means the end of the method.
type ExceptionHandler struct {
	Kind         ExceptionHandlerKind
	TryStart     *Instruction
	TryEnd       *Instruction
	HandlerStart *Instruction
	HandlerEnd   *Instruction
	FilterStart  *Instruction
	CatchType    TypeDefOrRef
}

// Body is a method body.
type Body struct {
	Instructions      []*Instruction
	Locals            []*Local
	ExceptionHandlers []*ExceptionHandler
	MaxStack          int
	InitLocals        bool
}

// IndexOf returns the position of instr in the body, or -1.
func (b *Body) IndexOf(instr *Instruction) int {
	for i, in := range b.Instructions {
		if in == instr {
			return i
		}
	}
	return -1
}

// RestoreBody replaces the method's body with the given instructions, locals and
// exception handlers. Offsets and local indices are renumbered.
func (m *MethodDef) RestoreBody(instrs []*Instruction, locals []*Local, ehs []*ExceptionHandler) {
	initLocals := true
	if m.Body != nil {
		initLocals = m.Body.InitLocals
	}
	for i, l := range locals {
		l.Index = i
	}
	m.Body = &Body{
		Instructions:      instrs,
		Locals:            locals,
		ExceptionHandlers: ehs,
		MaxStack:          8,
		InitLocals:        initLocals,
	}
	UpdateOffsets(instrs)
}

// UpdateMaxStack recomputes MaxStack from a stack analysis of the body.
func (m *MethodDef) UpdateMaxStack() error {
	if m.Body == nil {
		return nil
	}
	a, err := AnalyzeStack(m, m.Body)
	if err != nil {
		return err
	}
	m.Body.MaxStack = a.MaxDepth
	return nil
}
