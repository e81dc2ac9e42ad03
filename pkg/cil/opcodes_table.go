package cil

// Standard CIL opcodes.
var (
	Nop         = newOpCode("nop", 0x00, InlineNone, FlowNext, 0, 0, false)
	Break       = newOpCode("break", 0x01, InlineNone, FlowBreak, 0, 0, false)
	Ldarg0      = newOpCode("ldarg.0", 0x02, InlineNone, FlowNext, 0, 1, false)
	Ldarg1      = newOpCode("ldarg.1", 0x03, InlineNone, FlowNext, 0, 1, false)
	Ldarg2      = newOpCode("ldarg.2", 0x04, InlineNone, FlowNext, 0, 1, false)
	Ldarg3      = newOpCode("ldarg.3", 0x05, InlineNone, FlowNext, 0, 1, false)
	Ldloc0      = newOpCode("ldloc.0", 0x06, InlineNone, FlowNext, 0, 1, false)
	Ldloc1      = newOpCode("ldloc.1", 0x07, InlineNone, FlowNext, 0, 1, false)
	Ldloc2      = newOpCode("ldloc.2", 0x08, InlineNone, FlowNext, 0, 1, false)
	Ldloc3      = newOpCode("ldloc.3", 0x09, InlineNone, FlowNext, 0, 1, false)
	Stloc0      = newOpCode("stloc.0", 0x0A, InlineNone, FlowNext, 1, 0, false)
	Stloc1      = newOpCode("stloc.1", 0x0B, InlineNone, FlowNext, 1, 0, false)
	Stloc2      = newOpCode("stloc.2", 0x0C, InlineNone, FlowNext, 1, 0, false)
	Stloc3      = newOpCode("stloc.3", 0x0D, InlineNone, FlowNext, 1, 0, false)
	LdargS      = newOpCode("ldarg.s", 0x0E, InlineShortVar, FlowNext, 0, 1, false)
	LdargaS     = newOpCode("ldarga.s", 0x0F, InlineShortVar, FlowNext, 0, 1, false)
	StargS      = newOpCode("starg.s", 0x10, InlineShortVar, FlowNext, 1, 0, false)
	LdlocS      = newOpCode("ldloc.s", 0x11, InlineShortVar, FlowNext, 0, 1, false)
	LdlocaS     = newOpCode("ldloca.s", 0x12, InlineShortVar, FlowNext, 0, 1, false)
	StlocS      = newOpCode("stloc.s", 0x13, InlineShortVar, FlowNext, 1, 0, false)
	Ldnull      = newOpCode("ldnull", 0x14, InlineNone, FlowNext, 0, 1, false)
	LdcI4M1     = newOpCode("ldc.i4.m1", 0x15, InlineNone, FlowNext, 0, 1, false)
	LdcI40      = newOpCode("ldc.i4.0", 0x16, InlineNone, FlowNext, 0, 1, false)
	LdcI41      = newOpCode("ldc.i4.1", 0x17, InlineNone, FlowNext, 0, 1, false)
	LdcI42      = newOpCode("ldc.i4.2", 0x18, InlineNone, FlowNext, 0, 1, false)
	LdcI43      = newOpCode("ldc.i4.3", 0x19, InlineNone, FlowNext, 0, 1, false)
	LdcI44      = newOpCode("ldc.i4.4", 0x1A, InlineNone, FlowNext, 0, 1, false)
	LdcI45      = newOpCode("ldc.i4.5", 0x1B, InlineNone, FlowNext, 0, 1, false)
	LdcI46      = newOpCode("ldc.i4.6", 0x1C, InlineNone, FlowNext, 0, 1, false)
	LdcI47      = newOpCode("ldc.i4.7", 0x1D, InlineNone, FlowNext, 0, 1, false)
	LdcI48      = newOpCode("ldc.i4.8", 0x1E, InlineNone, FlowNext, 0, 1, false)
	LdcI4S      = newOpCode("ldc.i4.s", 0x1F, InlineShortI, FlowNext, 0, 1, false)
	LdcI4       = newOpCode("ldc.i4", 0x20, InlineI, FlowNext, 0, 1, false)
	LdcI8       = newOpCode("ldc.i8", 0x21, InlineI8, FlowNext, 0, 1, false)
	LdcR4       = newOpCode("ldc.r4", 0x22, InlineShortR, FlowNext, 0, 1, false)
	LdcR8       = newOpCode("ldc.r8", 0x23, InlineR, FlowNext, 0, 1, false)
	Dup         = newOpCode("dup", 0x25, InlineNone, FlowNext, 1, 2, false)
	Pop         = newOpCode("pop", 0x26, InlineNone, FlowNext, 1, 0, false)
	Jmp         = newOpCode("jmp", 0x27, InlineMethod, FlowCall, 0, 0, false)
	Call        = newOpCode("call", 0x28, InlineMethod, FlowCall, -1, -1, false)
	Calli       = newOpCode("calli", 0x29, InlineSig, FlowCall, -1, -1, false)
	Ret         = newOpCode("ret", 0x2A, InlineNone, FlowReturn, -1, 0, false)
	BrS         = newOpCode("br.s", 0x2B, InlineShortBrTarget, FlowBranch, 0, 0, false)
	BrfalseS    = newOpCode("brfalse.s", 0x2C, InlineShortBrTarget, FlowCondBranch, 1, 0, false)
	BrtrueS     = newOpCode("brtrue.s", 0x2D, InlineShortBrTarget, FlowCondBranch, 1, 0, false)
	BeqS        = newOpCode("beq.s", 0x2E, InlineShortBrTarget, FlowCondBranch, 2, 0, false)
	BgeS        = newOpCode("bge.s", 0x2F, InlineShortBrTarget, FlowCondBranch, 2, 0, false)
	BgtS        = newOpCode("bgt.s", 0x30, InlineShortBrTarget, FlowCondBranch, 2, 0, false)
	BleS        = newOpCode("ble.s", 0x31, InlineShortBrTarget, FlowCondBranch, 2, 0, false)
	BltS        = newOpCode("blt.s", 0x32, InlineShortBrTarget, FlowCondBranch, 2, 0, false)
	BneUnS      = newOpCode("bne.un.s", 0x33, InlineShortBrTarget, FlowCondBranch, 2, 0, false)
	BgeUnS      = newOpCode("bge.un.s", 0x34, InlineShortBrTarget, FlowCondBranch, 2, 0, false)
	BgtUnS      = newOpCode("bgt.un.s", 0x35, InlineShortBrTarget, FlowCondBranch, 2, 0, false)
	BleUnS      = newOpCode("ble.un.s", 0x36, InlineShortBrTarget, FlowCondBranch, 2, 0, false)
	BltUnS      = newOpCode("blt.un.s", 0x37, InlineShortBrTarget, FlowCondBranch, 2, 0, false)
	Br          = newOpCode("br", 0x38, InlineBrTarget, FlowBranch, 0, 0, false)
	Brfalse     = newOpCode("brfalse", 0x39, InlineBrTarget, FlowCondBranch, 1, 0, false)
	Brtrue      = newOpCode("brtrue", 0x3A, InlineBrTarget, FlowCondBranch, 1, 0, false)
	Beq         = newOpCode("beq", 0x3B, InlineBrTarget, FlowCondBranch, 2, 0, false)
	Bge         = newOpCode("bge", 0x3C, InlineBrTarget, FlowCondBranch, 2, 0, false)
	Bgt         = newOpCode("bgt", 0x3D, InlineBrTarget, FlowCondBranch, 2, 0, false)
	Ble         = newOpCode("ble", 0x3E, InlineBrTarget, FlowCondBranch, 2, 0, false)
	Blt         = newOpCode("blt", 0x3F, InlineBrTarget, FlowCondBranch, 2, 0, false)
	BneUn       = newOpCode("bne.un", 0x40, InlineBrTarget, FlowCondBranch, 2, 0, false)
	BgeUn       = newOpCode("bge.un", 0x41, InlineBrTarget, FlowCondBranch, 2, 0, false)
	BgtUn       = newOpCode("bgt.un", 0x42, InlineBrTarget, FlowCondBranch, 2, 0, false)
	BleUn       = newOpCode("ble.un", 0x43, InlineBrTarget, FlowCondBranch, 2, 0, false)
	BltUn       = newOpCode("blt.un", 0x44, InlineBrTarget, FlowCondBranch, 2, 0, false)
	Switch      = newOpCode("switch", 0x45, InlineSwitch, FlowCondBranch, 1, 0, false)
	LdindI1     = newOpCode("ldind.i1", 0x46, InlineNone, FlowNext, 1, 1, false)
	LdindU1     = newOpCode("ldind.u1", 0x47, InlineNone, FlowNext, 1, 1, false)
	LdindI2     = newOpCode("ldind.i2", 0x48, InlineNone, FlowNext, 1, 1, false)
	LdindU2     = newOpCode("ldind.u2", 0x49, InlineNone, FlowNext, 1, 1, false)
	LdindI4     = newOpCode("ldind.i4", 0x4A, InlineNone, FlowNext, 1, 1, false)
	LdindU4     = newOpCode("ldind.u4", 0x4B, InlineNone, FlowNext, 1, 1, false)
	LdindI8     = newOpCode("ldind.i8", 0x4C, InlineNone, FlowNext, 1, 1, false)
	LdindI      = newOpCode("ldind.i", 0x4D, InlineNone, FlowNext, 1, 1, false)
	LdindR4     = newOpCode("ldind.r4", 0x4E, InlineNone, FlowNext, 1, 1, false)
	LdindR8     = newOpCode("ldind.r8", 0x4F, InlineNone, FlowNext, 1, 1, false)
	LdindRef    = newOpCode("ldind.ref", 0x50, InlineNone, FlowNext, 1, 1, false)
	StindRef    = newOpCode("stind.ref", 0x51, InlineNone, FlowNext, 2, 0, false)
	StindI1     = newOpCode("stind.i1", 0x52, InlineNone, FlowNext, 2, 0, false)
	StindI2     = newOpCode("stind.i2", 0x53, InlineNone, FlowNext, 2, 0, false)
	StindI4     = newOpCode("stind.i4", 0x54, InlineNone, FlowNext, 2, 0, false)
	StindI8     = newOpCode("stind.i8", 0x55, InlineNone, FlowNext, 2, 0, false)
	StindR4     = newOpCode("stind.r4", 0x56, InlineNone, FlowNext, 2, 0, false)
	StindR8     = newOpCode("stind.r8", 0x57, InlineNone, FlowNext, 2, 0, false)
	Add         = newOpCode("add", 0x58, InlineNone, FlowNext, 2, 1, false)
	Sub         = newOpCode("sub", 0x59, InlineNone, FlowNext, 2, 1, false)
	Mul         = newOpCode("mul", 0x5A, InlineNone, FlowNext, 2, 1, false)
	Div         = newOpCode("div", 0x5B, InlineNone, FlowNext, 2, 1, false)
	DivUn       = newOpCode("div.un", 0x5C, InlineNone, FlowNext, 2, 1, false)
	Rem         = newOpCode("rem", 0x5D, InlineNone, FlowNext, 2, 1, false)
	RemUn       = newOpCode("rem.un", 0x5E, InlineNone, FlowNext, 2, 1, false)
	And         = newOpCode("and", 0x5F, InlineNone, FlowNext, 2, 1, false)
	Or          = newOpCode("or", 0x60, InlineNone, FlowNext, 2, 1, false)
	Xor         = newOpCode("xor", 0x61, InlineNone, FlowNext, 2, 1, false)
	Shl         = newOpCode("shl", 0x62, InlineNone, FlowNext, 2, 1, false)
	Shr         = newOpCode("shr", 0x63, InlineNone, FlowNext, 2, 1, false)
	ShrUn       = newOpCode("shr.un", 0x64, InlineNone, FlowNext, 2, 1, false)
	Neg         = newOpCode("neg", 0x65, InlineNone, FlowNext, 1, 1, false)
	Not         = newOpCode("not", 0x66, InlineNone, FlowNext, 1, 1, false)
	ConvI1      = newOpCode("conv.i1", 0x67, InlineNone, FlowNext, 1, 1, false)
	ConvI2      = newOpCode("conv.i2", 0x68, InlineNone, FlowNext, 1, 1, false)
	ConvI4      = newOpCode("conv.i4", 0x69, InlineNone, FlowNext, 1, 1, false)
	ConvI8      = newOpCode("conv.i8", 0x6A, InlineNone, FlowNext, 1, 1, false)
	ConvR4      = newOpCode("conv.r4", 0x6B, InlineNone, FlowNext, 1, 1, false)
	ConvR8      = newOpCode("conv.r8", 0x6C, InlineNone, FlowNext, 1, 1, false)
	ConvU4      = newOpCode("conv.u4", 0x6D, InlineNone, FlowNext, 1, 1, false)
	ConvU8      = newOpCode("conv.u8", 0x6E, InlineNone, FlowNext, 1, 1, false)
	Callvirt    = newOpCode("callvirt", 0x6F, InlineMethod, FlowCall, -1, -1, false)
	Cpobj       = newOpCode("cpobj", 0x70, InlineType, FlowNext, 2, 0, false)
	Ldobj       = newOpCode("ldobj", 0x71, InlineType, FlowNext, 1, 1, false)
	Ldstr       = newOpCode("ldstr", 0x72, InlineString, FlowNext, 0, 1, false)
	Newobj      = newOpCode("newobj", 0x73, InlineMethod, FlowCall, -1, 1, false)
	Castclass   = newOpCode("castclass", 0x74, InlineType, FlowNext, 1, 1, false)
	Isinst      = newOpCode("isinst", 0x75, InlineType, FlowNext, 1, 1, false)
	ConvRUn     = newOpCode("conv.r.un", 0x76, InlineNone, FlowNext, 1, 1, false)
	Unbox       = newOpCode("unbox", 0x79, InlineType, FlowNext, 1, 1, false)
	Throw       = newOpCode("throw", 0x7A, InlineNone, FlowThrow, 1, 0, false)
	Ldfld       = newOpCode("ldfld", 0x7B, InlineField, FlowNext, 1, 1, false)
	Ldflda      = newOpCode("ldflda", 0x7C, InlineField, FlowNext, 1, 1, false)
	Stfld       = newOpCode("stfld", 0x7D, InlineField, FlowNext, 2, 0, false)
	Ldsfld      = newOpCode("ldsfld", 0x7E, InlineField, FlowNext, 0, 1, false)
	Ldsflda     = newOpCode("ldsflda", 0x7F, InlineField, FlowNext, 0, 1, false)
	Stsfld      = newOpCode("stsfld", 0x80, InlineField, FlowNext, 1, 0, false)
	Stobj       = newOpCode("stobj", 0x81, InlineType, FlowNext, 2, 0, false)
	ConvOvfI1Un = newOpCode("conv.ovf.i1.un", 0x82, InlineNone, FlowNext, 1, 1, false)
	ConvOvfI2Un = newOpCode("conv.ovf.i2.un", 0x83, InlineNone, FlowNext, 1, 1, false)
	ConvOvfI4Un = newOpCode("conv.ovf.i4.un", 0x84, InlineNone, FlowNext, 1, 1, false)
	ConvOvfI8Un = newOpCode("conv.ovf.i8.un", 0x85, InlineNone, FlowNext, 1, 1, false)
	ConvOvfU1Un = newOpCode("conv.ovf.u1.un", 0x86, InlineNone, FlowNext, 1, 1, false)
	ConvOvfU2Un = newOpCode("conv.ovf.u2.un", 0x87, InlineNone, FlowNext, 1, 1, false)
	ConvOvfU4Un = newOpCode("conv.ovf.u4.un", 0x88, InlineNone, FlowNext, 1, 1, false)
	ConvOvfU8Un = newOpCode("conv.ovf.u8.un", 0x89, InlineNone, FlowNext, 1, 1, false)
	ConvOvfIUn  = newOpCode("conv.ovf.i.un", 0x8A, InlineNone, FlowNext, 1, 1, false)
	ConvOvfUUn  = newOpCode("conv.ovf.u.un", 0x8B, InlineNone, FlowNext, 1, 1, false)
	Box         = newOpCode("box", 0x8C, InlineType, FlowNext, 1, 1, false)
	Newarr      = newOpCode("newarr", 0x8D, InlineType, FlowNext, 1, 1, false)
	Ldlen       = newOpCode("ldlen", 0x8E, InlineNone, FlowNext, 1, 1, false)
	Ldelema     = newOpCode("ldelema", 0x8F, InlineType, FlowNext, 2, 1, false)
	LdelemI1    = newOpCode("ldelem.i1", 0x90, InlineNone, FlowNext, 2, 1, false)
	LdelemU1    = newOpCode("ldelem.u1", 0x91, InlineNone, FlowNext, 2, 1, false)
	LdelemI2    = newOpCode("ldelem.i2", 0x92, InlineNone, FlowNext, 2, 1, false)
	LdelemU2    = newOpCode("ldelem.u2", 0x93, InlineNone, FlowNext, 2, 1, false)
	LdelemI4    = newOpCode("ldelem.i4", 0x94, InlineNone, FlowNext, 2, 1, false)
	LdelemU4    = newOpCode("ldelem.u4", 0x95, InlineNone, FlowNext, 2, 1, false)
	LdelemI8    = newOpCode("ldelem.i8", 0x96, InlineNone, FlowNext, 2, 1, false)
	LdelemI     = newOpCode("ldelem.i", 0x97, InlineNone, FlowNext, 2, 1, false)
	LdelemR4    = newOpCode("ldelem.r4", 0x98, InlineNone, FlowNext, 2, 1, false)
	LdelemR8    = newOpCode("ldelem.r8", 0x99, InlineNone, FlowNext, 2, 1, false)
	LdelemRef   = newOpCode("ldelem.ref", 0x9A, InlineNone, FlowNext, 2, 1, false)
	StelemI     = newOpCode("stelem.i", 0x9B, InlineNone, FlowNext, 3, 0, false)
	StelemI1    = newOpCode("stelem.i1", 0x9C, InlineNone, FlowNext, 3, 0, false)
	StelemI2    = newOpCode("stelem.i2", 0x9D, InlineNone, FlowNext, 3, 0, false)
	StelemI4    = newOpCode("stelem.i4", 0x9E, InlineNone, FlowNext, 3, 0, false)
	StelemI8    = newOpCode("stelem.i8", 0x9F, InlineNone, FlowNext, 3, 0, false)
	StelemR4    = newOpCode("stelem.r4", 0xA0, InlineNone, FlowNext, 3, 0, false)
	StelemR8    = newOpCode("stelem.r8", 0xA1, InlineNone, FlowNext, 3, 0, false)
	StelemRef   = newOpCode("stelem.ref", 0xA2, InlineNone, FlowNext, 3, 0, false)
	Ldelem      = newOpCode("ldelem", 0xA3, InlineType, FlowNext, 2, 1, false)
	Stelem      = newOpCode("stelem", 0xA4, InlineType, FlowNext, 3, 0, false)
	UnboxAny    = newOpCode("unbox.any", 0xA5, InlineType, FlowNext, 1, 1, false)
	ConvOvfI1   = newOpCode("conv.ovf.i1", 0xB3, InlineNone, FlowNext, 1, 1, false)
	ConvOvfU1   = newOpCode("conv.ovf.u1", 0xB4, InlineNone, FlowNext, 1, 1, false)
	ConvOvfI2   = newOpCode("conv.ovf.i2", 0xB5, InlineNone, FlowNext, 1, 1, false)
	ConvOvfU2   = newOpCode("conv.ovf.u2", 0xB6, InlineNone, FlowNext, 1, 1, false)
	ConvOvfI4   = newOpCode("conv.ovf.i4", 0xB7, InlineNone, FlowNext, 1, 1, false)
	ConvOvfU4   = newOpCode("conv.ovf.u4", 0xB8, InlineNone, FlowNext, 1, 1, false)
	ConvOvfI8   = newOpCode("conv.ovf.i8", 0xB9, InlineNone, FlowNext, 1, 1, false)
	ConvOvfU8   = newOpCode("conv.ovf.u8", 0xBA, InlineNone, FlowNext, 1, 1, false)
	Refanyval   = newOpCode("refanyval", 0xC2, InlineType, FlowNext, 1, 1, false)
	Ckfinite    = newOpCode("ckfinite", 0xC3, InlineNone, FlowNext, 1, 1, false)
	Mkrefany    = newOpCode("mkrefany", 0xC6, InlineType, FlowNext, 1, 1, false)
	Ldtoken     = newOpCode("ldtoken", 0xD0, InlineTok, FlowNext, 0, 1, false)
	ConvU2      = newOpCode("conv.u2", 0xD1, InlineNone, FlowNext, 1, 1, false)
	ConvU1      = newOpCode("conv.u1", 0xD2, InlineNone, FlowNext, 1, 1, false)
	ConvI       = newOpCode("conv.i", 0xD3, InlineNone, FlowNext, 1, 1, false)
	ConvOvfI    = newOpCode("conv.ovf.i", 0xD4, InlineNone, FlowNext, 1, 1, false)
	ConvOvfU    = newOpCode("conv.ovf.u", 0xD5, InlineNone, FlowNext, 1, 1, false)
	AddOvf      = newOpCode("add.ovf", 0xD6, InlineNone, FlowNext, 2, 1, false)
	AddOvfUn    = newOpCode("add.ovf.un", 0xD7, InlineNone, FlowNext, 2, 1, false)
	MulOvf      = newOpCode("mul.ovf", 0xD8, InlineNone, FlowNext, 2, 1, false)
	MulOvfUn    = newOpCode("mul.ovf.un", 0xD9, InlineNone, FlowNext, 2, 1, false)
	SubOvf      = newOpCode("sub.ovf", 0xDA, InlineNone, FlowNext, 2, 1, false)
	SubOvfUn    = newOpCode("sub.ovf.un", 0xDB, InlineNone, FlowNext, 2, 1, false)
	Endfinally  = newOpCode("endfinally", 0xDC, InlineNone, FlowReturn, 0, 0, false)
	Leave       = newOpCode("leave", 0xDD, InlineBrTarget, FlowBranch, 0, 0, false)
	LeaveS      = newOpCode("leave.s", 0xDE, InlineShortBrTarget, FlowBranch, 0, 0, false)
	StindI      = newOpCode("stind.i", 0xDF, InlineNone, FlowNext, 2, 0, false)
	ConvU       = newOpCode("conv.u", 0xE0, InlineNone, FlowNext, 1, 1, false)
	Arglist     = newOpCode("arglist", 0xFE00, InlineNone, FlowNext, 0, 1, false)
	Ceq         = newOpCode("ceq", 0xFE01, InlineNone, FlowNext, 2, 1, false)
	Cgt         = newOpCode("cgt", 0xFE02, InlineNone, FlowNext, 2, 1, false)
	CgtUn       = newOpCode("cgt.un", 0xFE03, InlineNone, FlowNext, 2, 1, false)
	Clt         = newOpCode("clt", 0xFE04, InlineNone, FlowNext, 2, 1, false)
	CltUn       = newOpCode("clt.un", 0xFE05, InlineNone, FlowNext, 2, 1, false)
	Ldftn       = newOpCode("ldftn", 0xFE06, InlineMethod, FlowNext, 0, 1, false)
	Ldvirtftn   = newOpCode("ldvirtftn", 0xFE07, InlineMethod, FlowNext, 1, 1, false)
	Ldarg       = newOpCode("ldarg", 0xFE09, InlineVar, FlowNext, 0, 1, false)
	Ldarga      = newOpCode("ldarga", 0xFE0A, InlineVar, FlowNext, 0, 1, false)
	Starg       = newOpCode("starg", 0xFE0B, InlineVar, FlowNext, 1, 0, false)
	Ldloc       = newOpCode("ldloc", 0xFE0C, InlineVar, FlowNext, 0, 1, false)
	Ldloca      = newOpCode("ldloca", 0xFE0D, InlineVar, FlowNext, 0, 1, false)
	Stloc       = newOpCode("stloc", 0xFE0E, InlineVar, FlowNext, 1, 0, false)
	Localloc    = newOpCode("localloc", 0xFE0F, InlineNone, FlowNext, 1, 1, false)
	Endfilter   = newOpCode("endfilter", 0xFE11, InlineNone, FlowReturn, 1, 0, false)
	Unaligned   = newOpCode("unaligned.", 0xFE12, InlineShortI, FlowMeta, 0, 0, true)
	Volatile    = newOpCode("volatile.", 0xFE13, InlineNone, FlowMeta, 0, 0, true)
	Tail        = newOpCode("tail.", 0xFE14, InlineNone, FlowMeta, 0, 0, true)
	Initobj     = newOpCode("initobj", 0xFE15, InlineType, FlowNext, 1, 0, false)
	Constrained = newOpCode("constrained.", 0xFE16, InlineType, FlowMeta, 0, 0, true)
	Cpblk       = newOpCode("cpblk", 0xFE17, InlineNone, FlowNext, 3, 0, false)
	Initblk     = newOpCode("initblk", 0xFE18, InlineNone, FlowNext, 3, 0, false)
	No          = newOpCode("no.", 0xFE19, InlineShortI, FlowMeta, 0, 0, true)
	Rethrow     = newOpCode("rethrow", 0xFE1A, InlineNone, FlowThrow, 0, 0, false)
	Sizeof      = newOpCode("sizeof", 0xFE1C, InlineType, FlowNext, 0, 1, false)
	Refanytype  = newOpCode("refanytype", 0xFE1D, InlineNone, FlowNext, 1, 1, false)
	Readonly    = newOpCode("readonly.", 0xFE1E, InlineNone, FlowMeta, 0, 0, true)
)
