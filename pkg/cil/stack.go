package cil

// StackAnalysis holds the abstract evaluation stack in front of every instruction.
// A nil slot is a value of unknown type.
type StackAnalysis struct {
	states  [][]TypeSig
	reached []bool
	// MaxDepth is the deepest stack seen anywhere in the body.
	MaxDepth int
}

// Reached reports whether instruction index is reachable from the method entry or a handler.
func (a *StackAnalysis) Reached(index int) bool {
	return index >= 0 && index < len(a.reached) && a.reached[index]
}

// Depth returns the stack height in front of instruction index.
func (a *StackAnalysis) Depth(index int) (int, bool) {
	if !a.Reached(index) {
		return 0, false
	}
	return len(a.states[index]), true
}

// TypeAt returns the type depth slots below the top of the stack in front of
// instruction index (depth 0 is the top). It returns nil when unknown.
func (a *StackAnalysis) TypeAt(index, depth int) TypeSig {
	if !a.Reached(index) || depth < 0 {
		return nil
	}
	st := a.states[index]
	if depth >= len(st) {
		return nil
	}
	return st[len(st)-1-depth]
}

// AnalyzeStack runs a forward abstract interpretation of the body, tracking the
// type of every evaluation stack slot. At control flow merges slots that agree
// keep their type and slots that disagree become unknown.
func AnalyzeStack(method *MethodDef, body *Body) (*StackAnalysis, error) {
	n := len(body.Instructions)
	a := &StackAnalysis{
		states:  make([][]TypeSig, n),
		reached: make([]bool, n),
	}
	if n == 0 {
		return a, nil
	}

	g, err := FlowGraph(body)
	if err != nil {
		return nil, err
	}
	succs, err := Successors(g)
	if err != nil {
		return nil, err
	}

	hasReturn := method != nil && method.Sig.HasReturnValue()

	var worklist []int
	queued := make([]bool, n)
	push := func(i int) {
		if !queued[i] {
			queued[i] = true
			worklist = append(worklist, i)
		}
	}
	merge := func(i int, in []TypeSig) {
		if !a.reached[i] {
			a.reached[i] = true
			a.states[i] = append([]TypeSig(nil), in...)
			push(i)
			return
		}
		cur := a.states[i]
		if len(cur) != len(in) {
			return
		}
		changed := false
		for k := range cur {
			if cur[k] != nil && !TypeEqual(cur[k], in[k]) {
				cur[k] = nil
				changed = true
			}
		}
		if changed {
			push(i)
		}
	}

	merge(0, nil)
	for _, entry := range HandlerEntries(body) {
		merge(entry.Index, entry.Stack)
	}

	for len(worklist) > 0 {
		i := worklist[0]
		worklist = worklist[1:]
		queued[i] = false

		instr := body.Instructions[i]
		st := append([]TypeSig(nil), a.states[i]...)
		out := a.step(method, body, instr, st, hasReturn)
		if len(out) > a.MaxDepth {
			a.MaxDepth = len(out)
		}
		if instr.OpCode == Leave || instr.OpCode == LeaveS {
			out = nil
		}
		for _, j := range succs[i] {
			merge(j, out)
		}
	}

	for i := range a.states {
		if len(a.states[i]) > a.MaxDepth {
			a.MaxDepth = len(a.states[i])
		}
	}
	return a, nil
}

func (a *StackAnalysis) step(method *MethodDef, body *Body, instr *Instruction, st []TypeSig, hasReturn bool) []TypeSig {
	pops, pushes := instr.StackUsage(hasReturn)
	var pushed TypeSig
	if pushes > 0 {
		pushed = pushedType(method, body, instr, st)
	}
	if pops > len(st) {
		pops = len(st)
	}
	st = st[:len(st)-pops]
	switch pushes {
	case 1:
		st = append(st, pushed)
	case 2: // dup
		st = append(st, pushed, pushed)
	}
	return st
}

func peek(st []TypeSig, depth int) TypeSig {
	if depth < len(st) {
		return st[len(st)-1-depth]
	}
	return nil
}

func elementOf(t TypeSig) TypeSig {
	if IsSZArray(t) {
		return t.Next()
	}
	return nil
}

func pointeeOf(t TypeSig) TypeSig {
	if IsPointer(t) || IsByRef(t) {
		return t.Next()
	}
	return nil
}

func byRefOf(t TypeSig) TypeSig {
	if t == nil {
		return nil
	}
	return NewByRef(t)
}

func operandType(instr *Instruction) TypeSig {
	if t, ok := instr.Operand.(TypeDefOrRef); ok {
		return ToTypeSig(t)
	}
	return nil
}

// pushedType returns the type of the value instr pushes, given the stack in front of it.
func pushedType(method *MethodDef, body *Body, instr *Instruction, st []TypeSig) TypeSig {
	c := CorLib
	op := instr.OpCode

	if idx, ok := instr.ArgIndex(); ok {
		var t TypeSig
		if method != nil {
			if params := method.Parameters(); idx < len(params) {
				t = params[idx].Type
			}
		}
		if op == Ldarga || op == LdargaS {
			return byRefOf(t)
		}
		return t
	}
	if idx, ok := instr.LocalIndex(); ok {
		var t TypeSig
		if l, isLocal := instr.Operand.(*Local); isLocal {
			t = l.Type
		} else if idx < len(body.Locals) {
			t = body.Locals[idx].Type
		}
		if op == Ldloca || op == LdlocaS {
			return byRefOf(t)
		}
		return t
	}
	if _, ok := instr.LdcI4Value(); ok {
		return c.Int32
	}

	switch op {
	case LdcI8:
		return c.Int64
	case LdcR4:
		return c.Single
	case LdcR8, ConvRUn:
		return c.Double
	case Ldstr:
		return c.String
	case Dup, Neg, Not, Ckfinite:
		return peek(st, 0)
	case Add, Sub, Mul, Div, DivUn, Rem, RemUn, And, Or, Xor,
		AddOvf, AddOvfUn, SubOvf, SubOvfUn, MulOvf, MulOvfUn:
		if l, r := peek(st, 1), peek(st, 0); TypeEqual(l, r) {
			return l
		}
		return nil
	case Shl, Shr, ShrUn:
		return peek(st, 1)
	case Call, Callvirt:
		if m, ok := instr.Operand.(IMethod); ok && m.Signature() != nil {
			return m.Signature().RetType
		}
	case Calli:
		if sig, ok := instr.Operand.(*MethodSig); ok {
			return sig.RetType
		}
	case Newobj:
		if m, ok := instr.Operand.(IMethod); ok && m.Owner() != nil {
			return ToTypeSig(m.Owner())
		}
	case LdindI1, ConvI1, ConvOvfI1, ConvOvfI1Un:
		return c.SByte
	case LdindU1, ConvU1, ConvOvfU1, ConvOvfU1Un, LdelemU1:
		return c.Byte
	case LdindI2, ConvI2, ConvOvfI2, ConvOvfI2Un, LdelemI2:
		return c.Int16
	case LdindU2, ConvU2, ConvOvfU2, ConvOvfU2Un, LdelemU2:
		return c.UInt16
	case LdindI4, ConvI4, ConvOvfI4, ConvOvfI4Un, LdelemI4,
		Ceq, Cgt, CgtUn, Clt, CltUn:
		return c.Int32
	case LdindU4, ConvU4, ConvOvfU4, ConvOvfU4Un, LdelemU4, Sizeof:
		return c.UInt32
	case LdindI8, ConvI8, ConvOvfI8, ConvOvfI8Un, LdelemI8:
		return c.Int64
	case ConvU8, ConvOvfU8, ConvOvfU8Un:
		return c.UInt64
	case LdindI, ConvI, ConvOvfI, ConvOvfIUn, LdelemI, Ldftn, Ldvirtftn, Localloc:
		return c.IntPtr
	case ConvU, ConvOvfU, ConvOvfUUn, Ldlen:
		return c.UIntPtr
	case LdindR4, ConvR4, LdelemR4:
		return c.Single
	case LdindR8, ConvR8, LdelemR8:
		return c.Double
	case LdelemI1:
		return c.SByte
	case LdindRef:
		return pointeeOf(peek(st, 0))
	case LdelemRef:
		return elementOf(peek(st, 1))
	case Ldelem:
		if t := operandType(instr); t != nil {
			return t
		}
		return elementOf(peek(st, 1))
	case Ldelema:
		if t := operandType(instr); t != nil {
			return NewByRef(t)
		}
		return byRefOf(elementOf(peek(st, 1)))
	case Ldobj:
		if t := operandType(instr); t != nil {
			return t
		}
		return pointeeOf(peek(st, 0))
	case Castclass, Isinst, UnboxAny:
		return operandType(instr)
	case Unbox, Refanyval:
		return byRefOf(operandType(instr))
	case Box:
		return c.Object
	case Newarr:
		if t := operandType(instr); t != nil {
			return NewSZArray(t)
		}
	case Ldfld, Ldsfld:
		if f, ok := instr.Operand.(IField); ok {
			return f.FieldType()
		}
	case Ldflda, Ldsflda:
		if f, ok := instr.Operand.(IField); ok {
			return byRefOf(f.FieldType())
		}
	case Mkrefany:
		return c.TypedReference
	}
	return nil
}
