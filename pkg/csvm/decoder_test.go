package csvm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blacktop/devirt/pkg/cil"
)

func TestDecodeInstruction(t *testing.T) {
	app := newAppModule(t)

	fullName := func(want string) func(*testing.T, *cil.Instruction) {
		return func(t *testing.T, instr *cil.Instruction) {
			m, ok := instr.Operand.(cil.Member)
			require.True(t, ok, "operand %T", instr.Operand)
			assert.Equal(t, want, m.FullName())
		}
	}

	tests := []struct {
		name    string
		asm     func(a *vmAsm)
		want    *cil.OpCode
		operand any
		check   func(*testing.T, *cil.Instruction)
		wantErr error
	}{
		{name: "mul", asm: func(a *vmAsm) { a.op("arithmetic").u8(6) }, want: cil.Mul},
		{name: "rem.un", asm: func(a *vmAsm) { a.op("arithmetic").u8(12) }, want: cil.RemUn},
		{name: "bad arithmetic", asm: func(a *vmAsm) { a.op("arithmetic").u8(13) }, wantErr: ErrMalformed},
		{name: "shr.un", asm: func(a *vmAsm) { a.op("logical").u8(5) }, want: cil.ShrUn},
		{name: "not", asm: func(a *vmAsm) { a.op("neg/not").u8(1) }, want: cil.Not},
		{name: "dup", asm: func(a *vmAsm) { a.op("dup/pop").u8(0) }, want: cil.Dup},
		{name: "ceq", asm: func(a *vmAsm) { a.op("compare").u8(13) }, want: cil.Ceq},
		{name: "clt.un", asm: func(a *vmAsm) { a.op("compare").u8(17) }, want: cil.CltUn},
		{name: "beq", asm: func(a *vmAsm) { a.op("compare").u8(3).i32(-2) }, want: cil.Beq, operand: BranchDisplacement(-2)},
		{name: "brtrue", asm: func(a *vmAsm) { a.op("compare").u8(1).i32(7) }, want: cil.Brtrue, operand: BranchDisplacement(7)},
		{name: "bad compare", asm: func(a *vmAsm) { a.op("compare").u8(18) }, wantErr: ErrMalformed},
		{name: "conv.i4", asm: func(a *vmAsm) { a.op("convert").u8(2).flag(false).flag(false) }, want: cil.ConvI4},
		{name: "conv.ovf.u2", asm: func(a *vmAsm) { a.op("convert").u8(7).flag(true).flag(false) }, want: cil.ConvOvfU2},
		{name: "conv.ovf.i1.un", asm: func(a *vmAsm) { a.op("convert").u8(0).flag(true).flag(true) }, want: cil.ConvOvfI1Un},
		{name: "conv.r.un", asm: func(a *vmAsm) { a.op("convert").u8(12).flag(true).flag(true) }, want: cil.ConvRUn},
		{name: "no conv.ovf.r4", asm: func(a *vmAsm) { a.op("convert").u8(4).flag(true).flag(false) }, wantErr: ErrMalformed},
		{name: "ldc.i4.5", asm: func(a *vmAsm) { a.ldcI4(5) }, want: cil.LdcI45},
		{name: "ldc.i4.s", asm: func(a *vmAsm) { a.ldcI4(-100) }, want: cil.LdcI4S, operand: int8(-100)},
		{name: "ldc.i4", asm: func(a *vmAsm) { a.ldcI4(1000) }, want: cil.LdcI4, operand: int32(1000)},
		{
			name: "ldc.i8",
			asm: func(a *vmAsm) {
				a.op("load constant").u8(byte(cil.ElementI8))
				a.w.WriteInt64(-1 << 40)
			},
			want:    cil.LdcI8,
			operand: int64(-1 << 40),
		},
		{
			name: "ldc.r4",
			asm: func(a *vmAsm) {
				a.op("load constant").u8(byte(cil.ElementR4))
				a.w.WriteFloat32(1.5)
			},
			want:    cil.LdcR4,
			operand: float32(1.5),
		},
		{
			name: "ldc.r8",
			asm: func(a *vmAsm) {
				a.op("load constant").u8(byte(cil.ElementR8))
				a.w.WriteFloat64(-0.25)
			},
			want:    cil.LdcR8,
			operand: float64(-0.25),
		},
		{name: "ldnull", asm: func(a *vmAsm) { a.op("load constant").u8(byte(cil.ElementObject)) }, want: cil.Ldnull},
		{name: "bad constant", asm: func(a *vmAsm) { a.op("load constant").u8(byte(cil.ElementString)) }, wantErr: ErrMalformed},
		{name: "ldstr", asm: func(a *vmAsm) { a.op("ldstr").str("héllo") }, want: cil.Ldstr, operand: "héllo"},
		{name: "newarr", asm: func(a *vmAsm) { a.op("newarr").u32(tokInt32) }, want: cil.Newarr, check: fullName("System.Int32")},
		{name: "initobj", asm: func(a *vmAsm) { a.op("initobj").u32(tokPoint) }, want: cil.Initobj, check: fullName("App.Point")},
		{name: "unbox.any", asm: func(a *vmAsm) { a.op("box/unbox").u8(1).u32(tokPoint) }, want: cil.UnboxAny, check: fullName("App.Point")},
		{name: "isinst", asm: func(a *vmAsm) { a.op("cast").u8(1).u32(tokException) }, want: cil.Isinst, check: fullName("System.Exception")},
		{
			name:  "callvirt",
			asm:   func(a *vmAsm) { a.op("call").u8(2).u32(tokToString) },
			want:  cil.Callvirt,
			check: fullName("System.String System.Object::ToString()"),
		},
		{
			name:  "newobj",
			asm:   func(a *vmAsm) { a.op("call").u8(0).u32(tokPick) },
			want:  cil.Newobj,
			check: fullName("System.Int32 App.Program::Pick(System.Int32)"),
		},
		{name: "call field token", asm: func(a *vmAsm) { a.op("call").u8(1).u32(tokCounter) }, wantErr: cil.ErrUnresolvedToken},
		{name: "ldftn", asm: func(a *vmAsm) { a.op("load func").u8(0).u32(tokPick) }, want: cil.Ldftn, check: fullName("System.Int32 App.Program::Pick(System.Int32)")},
		{
			name:  "ldvirtftn",
			asm:   func(a *vmAsm) { a.op("load func").u8(1).u32(tokToString).i32(0x0A000099) },
			want:  cil.Ldvirtftn,
			check: fullName("System.String System.Object::ToString()"),
		},
		{name: "ldtoken type", asm: func(a *vmAsm) { a.op("ldtoken").u32(tokPoint) }, want: cil.Ldtoken, check: fullName("App.Point")},
		{name: "ldtoken field", asm: func(a *vmAsm) { a.op("ldtoken").u32(tokPointX) }, want: cil.Ldtoken, check: fullName("System.Int32 App.Point::X")},
		{name: "ldelem.i4", asm: func(a *vmAsm) { a.elem(true, true, int32(cil.ElementI4)) }, want: cil.LdelemI4},
		{name: "ldelem.u2", asm: func(a *vmAsm) { a.elem(true, true, int32(cil.ElementU2)) }, want: cil.LdelemU2},
		{name: "stelem.r8", asm: func(a *vmAsm) { a.elem(false, true, int32(cil.ElementR8)) }, want: cil.StelemR8},
		{name: "stelem.ref", asm: func(a *vmAsm) { a.elem(false, true, int32(cil.ElementObject)) }, want: cil.StelemRef},
		{name: "no stelem.u4", asm: func(a *vmAsm) { a.elem(false, true, int32(cil.ElementU4)) }, wantErr: ErrMalformed},
		{name: "generic ldelem", asm: func(a *vmAsm) { a.elem(true, false, 0) }, want: cil.Ldelem},
		{name: "typed stelem", asm: func(a *vmAsm) { a.elem(false, false, tokPoint) }, want: cil.Stelem, check: fullName("App.Point")},
		{name: "ldloc", asm: func(a *vmAsm) { a.ldloc(3) }, want: cil.Ldloc, operand: LocalIndex(3)},
		{name: "ldarg", asm: func(a *vmAsm) { a.ldarg(1) }, want: cil.Ldarg, operand: ArgIndex(1)},
		{name: "ldloca", asm: func(a *vmAsm) { a.op("load local/arg address").flag(false).u16(300) }, want: cil.Ldloca, operand: LocalIndex(300)},
		{name: "ldarga", asm: func(a *vmAsm) { a.op("load local/arg address").flag(true).u16(0) }, want: cil.Ldarga, operand: ArgIndex(0)},
		{name: "stloc", asm: func(a *vmAsm) { a.stloc(2) }, want: cil.Stloc, operand: LocalIndex(2)},
		{name: "starg", asm: func(a *vmAsm) { a.op("store local/arg").flag(true).u16(1) }, want: cil.Starg, operand: ArgIndex(1)},
		{name: "switch", asm: func(a *vmAsm) { a.op("switch").i32(2).i32(1).i32(-1) }, want: cil.Switch, operand: SwitchDisplacements{1, -1}},
		{name: "empty switch", asm: func(a *vmAsm) { a.op("switch").i32(0) }, want: cil.Switch, operand: SwitchDisplacements{}},
		{name: "switch overrun", asm: func(a *vmAsm) { a.op("switch").i32(1000).i32(1) }, wantErr: ErrMalformed},
		{name: "negative switch", asm: func(a *vmAsm) { a.op("switch").i32(-1) }, wantErr: ErrMalformed},
		{name: "leave", asm: func(a *vmAsm) { a.leave(4) }, want: cil.Leave, operand: BranchDisplacement(4)},
		{name: "ret", asm: func(a *vmAsm) { a.ret() }, want: cil.Ret},
		{name: "nop", asm: func(a *vmAsm) { a.op("nop") }, want: cil.Nop},
		{name: "ldlen", asm: func(a *vmAsm) { a.op("ldlen") }, want: cil.Ldlen},
		{name: "throw", asm: func(a *vmAsm) { a.op("throw") }, want: cil.Throw},
		{name: "rethrow", asm: func(a *vmAsm) { a.op("rethrow") }, want: cil.Rethrow},
		{name: "endfinally", asm: func(a *vmAsm) { a.op("endfinally") }, want: cil.Endfinally},
		{name: "ldobj", asm: func(a *vmAsm) { a.op("ldobj") }, want: cil.Ldobj},
		{name: "stobj", asm: func(a *vmAsm) { a.op("stobj") }, want: cil.Stobj},
		{name: "ldelema", asm: func(a *vmAsm) { a.op("ldelema") }, want: cil.Ldelema},
		{name: "truncated", asm: func(a *vmAsm) { a.op("load constant").u8(byte(cil.ElementI4)).u16(1) }, wantErr: ErrMalformed},
		{name: "opcode out of range", asm: func(a *vmAsm) { a.u16(NumHandlers) }, wantErr: ErrMalformed},
		{name: "odd byte", asm: func(a *vmAsm) { a.u8(0) }, wantErr: ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAsm(t, v1Table())
			tt.asm(a)
			instrs, err := NewDecoder(v1Table(), app).Decode(a.bytes(), cil.GenericContext{})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, instrs, 1)
			instr := instrs[0]
			assert.Equal(t, tt.want, instr.OpCode)
			if tt.check != nil {
				tt.check(t, instr)
			} else {
				assert.Equal(t, tt.operand, instr.Operand)
			}
		})
	}
}

func TestDecodeDeferredField(t *testing.T) {
	app := newAppModule(t)
	a := newAsm(t, v1Table()).field(2, tokValue).field(1, tokMissingFld)
	instrs, err := NewDecoder(v1Table(), app).Decode(a.bytes(), cil.GenericContext{})
	require.NoError(t, err)
	require.Len(t, instrs, 2)

	assert.Nil(t, instrs[0].OpCode)
	d, ok := instrs[0].Operand.(*DeferredField)
	require.True(t, ok)
	assert.Equal(t, cil.Stsfld, d.Static)
	assert.Equal(t, cil.Stfld, d.Instance)
	assert.Equal(t, "value", d.Field.FieldName())

	d, ok = instrs[1].Operand.(*DeferredField)
	require.True(t, ok)
	assert.Equal(t, cil.Ldsflda, d.Static)
	assert.Equal(t, cil.Ldflda, d.Instance)
	assert.Equal(t, uint32(deferredFieldSize), instrs[1].Offset)

	_, err = NewDecoder(v1Table(), app).Decode(newAsm(t, v1Table()).field(3, tokValue).bytes(), cil.GenericContext{})
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestDecodeOffsets(t *testing.T) {
	a := newAsm(t, v1Table()).
		ldcI4(1).                          // ldc.i4.1: 1
		ldcI4(100).                        // ldc.i4.s: 2
		ldcI4(1000).                       // ldc.i4: 5
		op("switch").i32(2).i32(1).i32(2). // switch: 1 + 4 + 2*4
		br(1).                             // br: 5
		ldloc(0).                          // ldloc: 4
		ret()                              // ret: 1
	instrs, err := NewDecoder(v1Table(), newAppModule(t)).Decode(a.bytes(), cil.GenericContext{})
	require.NoError(t, err)
	var offsets []uint32
	for _, instr := range instrs {
		offsets = append(offsets, instr.Offset)
	}
	assert.Equal(t, []uint32{0, 1, 3, 8, 21, 26, 30}, offsets)
}
