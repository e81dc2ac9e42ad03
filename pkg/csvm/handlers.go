package csvm

import (
	"github.com/blacktop/devirt/pkg/cil"
)

// Decode routines, one per VM opcode family. Each reads the payload that follows
// the 16-bit opcode index and returns the CIL instruction it stands for. Sub-case
// bytes are listed in the order the VM numbers them.

func invalidSubcode(family string, v any) error {
	return malformedf("instruction", "invalid %s sub-opcode %v", family, v)
}

func pick(family string, ops []*cil.OpCode, r *Reader) (*cil.OpCode, error) {
	b, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if int(b) >= len(ops) {
		return nil, invalidSubcode(family, b)
	}
	return ops[b], nil
}

func readType(r *Reader, res cil.TokenResolver, gp cil.GenericContext) (cil.TypeDefOrRef, error) {
	token, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	return cil.ResolveTypeToken(res, token, gp)
}

func readMethodToken(r *Reader, res cil.TokenResolver, gp cil.GenericContext) (cil.IMethod, error) {
	token, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	return cil.ResolveMethodToken(res, token, gp)
}

func simple(op *cil.OpCode) DecodeFunc {
	return func(*Reader, cil.TokenResolver, cil.GenericContext) (*cil.Instruction, error) {
		return cil.NewInstruction(op, nil), nil
	}
}

var (
	readEndfinally = simple(cil.Endfinally)
	readLdelema    = simple(cil.Ldelema)
	readLdlen      = simple(cil.Ldlen)
	readLdobj      = simple(cil.Ldobj)
	readNop        = simple(cil.Nop)
	readRethrow    = simple(cil.Rethrow)
	readStobj      = simple(cil.Stobj)
	readThrow      = simple(cil.Throw)
)

var arithmeticOps = []*cil.OpCode{
	cil.Add, cil.AddOvf, cil.AddOvfUn,
	cil.Sub, cil.SubOvf, cil.SubOvfUn,
	cil.Mul, cil.MulOvf, cil.MulOvfUn,
	cil.Div, cil.DivUn,
	cil.Rem, cil.RemUn,
}

func readArithmetic(r *Reader, _ cil.TokenResolver, _ cil.GenericContext) (*cil.Instruction, error) {
	op, err := pick("arithmetic", arithmeticOps, r)
	if err != nil {
		return nil, err
	}
	return cil.NewInstruction(op, nil), nil
}

var logicalOps = []*cil.OpCode{cil.And, cil.Or, cil.Xor, cil.Shl, cil.Shr, cil.ShrUn}

func readLogical(r *Reader, _ cil.TokenResolver, _ cil.GenericContext) (*cil.Instruction, error) {
	op, err := pick("logical", logicalOps, r)
	if err != nil {
		return nil, err
	}
	return cil.NewInstruction(op, nil), nil
}

func readNeg(r *Reader, _ cil.TokenResolver, _ cil.GenericContext) (*cil.Instruction, error) {
	op, err := pick("neg", []*cil.OpCode{cil.Neg, cil.Not}, r)
	if err != nil {
		return nil, err
	}
	return cil.NewInstruction(op, nil), nil
}

func readDup(r *Reader, _ cil.TokenResolver, _ cil.GenericContext) (*cil.Instruction, error) {
	op, err := pick("dup", []*cil.OpCode{cil.Dup, cil.Pop}, r)
	if err != nil {
		return nil, err
	}
	return cil.NewInstruction(op, nil), nil
}

func readNewarr(r *Reader, res cil.TokenResolver, gp cil.GenericContext) (*cil.Instruction, error) {
	t, err := readType(r, res, gp)
	if err != nil {
		return nil, err
	}
	return cil.NewInstruction(cil.Newarr, t), nil
}

func readInitobj(r *Reader, res cil.TokenResolver, gp cil.GenericContext) (*cil.Instruction, error) {
	t, err := readType(r, res, gp)
	if err != nil {
		return nil, err
	}
	return cil.NewInstruction(cil.Initobj, t), nil
}

func readBox(r *Reader, res cil.TokenResolver, gp cil.GenericContext) (*cil.Instruction, error) {
	op, err := pick("box", []*cil.OpCode{cil.Box, cil.UnboxAny}, r)
	if err != nil {
		return nil, err
	}
	t, err := readType(r, res, gp)
	if err != nil {
		return nil, err
	}
	return cil.NewInstruction(op, t), nil
}

func readCast(r *Reader, res cil.TokenResolver, gp cil.GenericContext) (*cil.Instruction, error) {
	op, err := pick("cast", []*cil.OpCode{cil.Castclass, cil.Isinst}, r)
	if err != nil {
		return nil, err
	}
	t, err := readType(r, res, gp)
	if err != nil {
		return nil, err
	}
	return cil.NewInstruction(op, t), nil
}

func readCall(r *Reader, res cil.TokenResolver, gp cil.GenericContext) (*cil.Instruction, error) {
	op, err := pick("call", []*cil.OpCode{cil.Newobj, cil.Call, cil.Callvirt}, r)
	if err != nil {
		return nil, err
	}
	m, err := readMethodToken(r, res, gp)
	if err != nil {
		return nil, err
	}
	return cil.NewInstruction(op, m), nil
}

// compareOps are the branches (0-12), which carry a displacement, then the comparisons.
var compareOps = []*cil.OpCode{
	cil.Br, cil.Brtrue, cil.Brfalse,
	cil.Beq, cil.Bge, cil.Bgt, cil.Ble, cil.Blt,
	cil.BneUn, cil.BgeUn, cil.BgtUn, cil.BleUn, cil.BltUn,
	cil.Ceq, cil.Cgt, cil.Clt, cil.CgtUn, cil.CltUn,
}

const firstCompare = 13

func readCompare(r *Reader, _ cil.TokenResolver, _ cil.GenericContext) (*cil.Instruction, error) {
	b, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if int(b) >= len(compareOps) {
		return nil, invalidSubcode("compare", b)
	}
	instr := cil.NewInstruction(compareOps[b], nil)
	if b < firstCompare {
		displ, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}
		instr.Operand = BranchDisplacement(displ)
	}
	return instr, nil
}

type convertKey struct {
	typ         byte
	ovf, unsign bool
}

var convertOps = map[convertKey]*cil.OpCode{
	{0, false, false}:  cil.ConvI1,
	{1, false, false}:  cil.ConvI2,
	{2, false, false}:  cil.ConvI4,
	{3, false, false}:  cil.ConvI8,
	{4, false, false}:  cil.ConvR4,
	{5, false, false}:  cil.ConvR8,
	{6, false, false}:  cil.ConvU1,
	{7, false, false}:  cil.ConvU2,
	{8, false, false}:  cil.ConvU4,
	{9, false, false}:  cil.ConvU8,
	{10, false, false}: cil.ConvI,
	{11, false, false}: cil.ConvU,

	{0, true, false}:  cil.ConvOvfI1,
	{1, true, false}:  cil.ConvOvfI2,
	{2, true, false}:  cil.ConvOvfI4,
	{3, true, false}:  cil.ConvOvfI8,
	{6, true, false}:  cil.ConvOvfU1,
	{7, true, false}:  cil.ConvOvfU2,
	{8, true, false}:  cil.ConvOvfU4,
	{9, true, false}:  cil.ConvOvfU8,
	{10, true, false}: cil.ConvOvfI,
	{11, true, false}: cil.ConvOvfU,

	{0, true, true}:  cil.ConvOvfI1Un,
	{1, true, true}:  cil.ConvOvfI2Un,
	{2, true, true}:  cil.ConvOvfI4Un,
	{3, true, true}:  cil.ConvOvfI8Un,
	{6, true, true}:  cil.ConvOvfU1Un,
	{7, true, true}:  cil.ConvOvfU2Un,
	{8, true, true}:  cil.ConvOvfU4Un,
	{9, true, true}:  cil.ConvOvfU8Un,
	{10, true, true}: cil.ConvOvfIUn,
	{11, true, true}: cil.ConvOvfUUn,
	{12, true, true}: cil.ConvRUn,
}

func readConvert(r *Reader, _ cil.TokenResolver, _ cil.GenericContext) (*cil.Instruction, error) {
	var (
		k   convertKey
		err error
	)
	if k.typ, err = r.ReadByte(); err != nil {
		return nil, err
	}
	if k.ovf, err = r.ReadBool(); err != nil {
		return nil, err
	}
	if k.unsign, err = r.ReadBool(); err != nil {
		return nil, err
	}
	op, ok := convertOps[k]
	if !ok {
		return nil, invalidSubcode("convert", k)
	}
	return cil.NewInstruction(op, nil), nil
}

// Typed element access forms keyed by element type.
var (
	stelemOps = map[int32]*cil.OpCode{
		int32(cil.ElementI):      cil.StelemI,
		int32(cil.ElementI1):     cil.StelemI1,
		int32(cil.ElementI2):     cil.StelemI2,
		int32(cil.ElementI4):     cil.StelemI4,
		int32(cil.ElementI8):     cil.StelemI8,
		int32(cil.ElementR4):     cil.StelemR4,
		int32(cil.ElementR8):     cil.StelemR8,
		int32(cil.ElementObject): cil.StelemRef,
	}
	ldelemOps = map[int32]*cil.OpCode{
		int32(cil.ElementI):      cil.LdelemI,
		int32(cil.ElementI1):     cil.LdelemI1,
		int32(cil.ElementI2):     cil.LdelemI2,
		int32(cil.ElementI4):     cil.LdelemI4,
		int32(cil.ElementI8):     cil.LdelemI8,
		int32(cil.ElementU1):     cil.LdelemU1,
		int32(cil.ElementU2):     cil.LdelemU2,
		int32(cil.ElementU4):     cil.LdelemU4,
		int32(cil.ElementR4):     cil.LdelemR4,
		int32(cil.ElementR8):     cil.LdelemR8,
		int32(cil.ElementObject): cil.LdelemRef,
	}
)

// readLdelem decodes element loads (load=true) and stores. typed selects the
// typed forms; otherwise value is the type token of the generic ldelem/stelem,
// where zero leaves the type to be inferred.
func readLdelem(r *Reader, res cil.TokenResolver, gp cil.GenericContext) (*cil.Instruction, error) {
	load, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	typed, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	value, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}

	if typed {
		ops := stelemOps
		if load {
			ops = ldelemOps
		}
		op, ok := ops[value]
		if !ok {
			return nil, invalidSubcode("ldelem", value)
		}
		return cil.NewInstruction(op, nil), nil
	}

	op := cil.Stelem
	if load {
		op = cil.Ldelem
	}
	if value == 0 {
		return cil.NewInstruction(op, nil), nil
	}
	t, err := cil.ResolveTypeToken(res, uint32(value), gp)
	if err != nil {
		return nil, err
	}
	return cil.NewInstruction(op, t), nil
}

var fieldOps = [][2]*cil.OpCode{
	{cil.Ldsfld, cil.Ldfld},
	{cil.Ldsflda, cil.Ldflda},
	{cil.Stsfld, cil.Stfld},
}

// readLdfld leaves the opcode empty: whether the static or instance form applies
// is decided once the field is resolved.
func readLdfld(r *Reader, res cil.TokenResolver, gp cil.GenericContext) (*cil.Instruction, error) {
	b, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	token, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	if int(b) >= len(fieldOps) {
		return nil, invalidSubcode("ldfld", b)
	}
	field, err := cil.ResolveFieldToken(res, token, gp)
	if err != nil {
		return nil, err
	}
	ops := fieldOps[b]
	return &cil.Instruction{Operand: &DeferredField{Field: field, Static: ops[0], Instance: ops[1]}}, nil
}

func readLdloc(r *Reader, _ cil.TokenResolver, _ cil.GenericContext) (*cil.Instruction, error) {
	isArg, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	index, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	if isArg {
		return cil.NewInstruction(cil.Ldarg, ArgIndex(index)), nil
	}
	return cil.NewInstruction(cil.Ldloc, LocalIndex(index)), nil
}

func readLdloca(r *Reader, _ cil.TokenResolver, _ cil.GenericContext) (*cil.Instruction, error) {
	isArg, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	index, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	if isArg {
		return cil.NewInstruction(cil.Ldarga, ArgIndex(index)), nil
	}
	return cil.NewInstruction(cil.Ldloca, LocalIndex(index)), nil
}

func readStloc(r *Reader, _ cil.TokenResolver, _ cil.GenericContext) (*cil.Instruction, error) {
	isArg, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	index, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	if isArg {
		return cil.NewInstruction(cil.Starg, ArgIndex(index)), nil
	}
	// element type of the local, unused
	if _, err := r.ReadInt32(); err != nil {
		return nil, err
	}
	return cil.NewInstruction(cil.Stloc, LocalIndex(index)), nil
}

func readLdstr(r *Reader, _ cil.TokenResolver, _ cil.GenericContext) (*cil.Instruction, error) {
	s, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	return cil.NewInstruction(cil.Ldstr, s), nil
}

func readLdtoken(r *Reader, res cil.TokenResolver, gp cil.GenericContext) (*cil.Instruction, error) {
	token, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	m, err := res.ResolveToken(token, gp)
	if err != nil {
		return nil, err
	}
	return cil.NewInstruction(cil.Ldtoken, m), nil
}

func readLeave(r *Reader, _ cil.TokenResolver, _ cil.GenericContext) (*cil.Instruction, error) {
	displ, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	return cil.NewInstruction(cil.Leave, BranchDisplacement(displ)), nil
}

func readLdc(r *Reader, _ cil.TokenResolver, _ cil.GenericContext) (*cil.Instruction, error) {
	b, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	switch cil.ElementType(b) {
	case cil.ElementI4:
		v, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}
		return cil.NewLdcI4(v), nil
	case cil.ElementI8:
		v, err := r.ReadInt64()
		if err != nil {
			return nil, err
		}
		return cil.NewInstruction(cil.LdcI8, v), nil
	case cil.ElementR4:
		v, err := r.ReadFloat32()
		if err != nil {
			return nil, err
		}
		return cil.NewInstruction(cil.LdcR4, v), nil
	case cil.ElementR8:
		v, err := r.ReadFloat64()
		if err != nil {
			return nil, err
		}
		return cil.NewInstruction(cil.LdcR8, v), nil
	case cil.ElementObject:
		return cil.NewInstruction(cil.Ldnull, nil), nil
	default:
		return nil, invalidSubcode("ldc", b)
	}
}

func readLdftn(r *Reader, res cil.TokenResolver, gp cil.GenericContext) (*cil.Instruction, error) {
	code, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	token, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	var op *cil.OpCode
	switch code {
	case 0:
		op = cil.Ldftn
	case 1:
		// token of the delegate constructor, unused
		if _, err := r.ReadInt32(); err != nil {
			return nil, err
		}
		op = cil.Ldvirtftn
	default:
		return nil, invalidSubcode("ldftn", code)
	}
	m, err := cil.ResolveMethodToken(res, token, gp)
	if err != nil {
		return nil, err
	}
	return cil.NewInstruction(op, m), nil
}

func readRet(r *Reader, _ cil.TokenResolver, _ cil.GenericContext) (*cil.Instruction, error) {
	// token of the current method
	if _, err := r.ReadInt32(); err != nil {
		return nil, err
	}
	return cil.NewInstruction(cil.Ret, nil), nil
}

func readSwitch(r *Reader, _ cil.TokenResolver, _ cil.GenericContext) (*cil.Instruction, error) {
	n, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	if n < 0 || int(n) > r.Len()/4 {
		return nil, malformedf("instruction", "bad switch target count %d", n)
	}
	displs := make(SwitchDisplacements, n)
	for i := range displs {
		if displs[i], err = r.ReadInt32(); err != nil {
			return nil, err
		}
	}
	return cil.NewInstruction(cil.Switch, displs), nil
}
