package csvm

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blacktop/devirt/pkg/cil"
	"github.com/blacktop/devirt/pkg/cil/snapshot"
)

// extraLocals are execute locals some runtimes declare on top of what the
// handler signature asks for.
var extraLocals = map[string][]string{
	"ldobj": {"System.Object"},
	"stobj": {"System.Object"},
}

// reflectionCalls are the framework calls a handler's execute routine makes.
var reflectionCalls = map[string]string{
	"newarr":     resolveTypeMethod,
	"endfinally": getMethodMethod,
	"ldtoken":    resolveMemberMethod,
	"ret":        resolveMethodMethod,
}

func identity(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

func reversed(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = n - 1 - i
	}
	return order
}

func rotated(n, by int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = (i + by) % n
	}
	return order
}

type vmBuilder struct {
	t      testing.TB
	mod    *snapshot.Module
	object cil.TypeDefOrRef
	enum   *cil.TypeDef
	pop    *cil.MethodDef
	reader cil.TypeSig
	ctx    cil.TypeSig
	calls  map[string]*cil.MethodRef
}

// newVMModule builds a VM runtime whose dispatcher registers one handler per
// entry of order, shaped after sigs[order[k]].
func newVMModule(t testing.TB, sigs []*HandlerSignature, order []int) *snapshot.Module {
	t.Helper()
	b := &vmBuilder{t: t, mod: snapshot.NewModule("VMRuntime.dll", "/samples/VMRuntime.dll")}
	b.object = b.mod.TypeRef("System.Object")
	b.reader = b.typ("System.IO.BinaryReader")
	b.ctx = b.typ("VMRuntime.VMContext")
	b.calls = map[string]*cil.MethodRef{
		resolveTypeMethod:   b.methodRef("System.Reflection.Module", "ResolveType", "System.Type", "System.Int32"),
		resolveMemberMethod: b.methodRef("System.Reflection.Module", "ResolveMember", "System.Reflection.MemberInfo", "System.Int32"),
		resolveMethodMethod: b.methodRef("System.Reflection.Module", "ResolveMethod", "System.Reflection.MethodBase", "System.Int32"),
		getMethodMethod:     b.methodRef("System.Type", "GetMethod", "System.Reflection.MethodInfo", "System.String", "System.Reflection.BindingFlags"),
	}
	for name, ref := range b.calls {
		require.Equal(t, name, ref.FullName())
	}

	b.stack()
	handlers := make([]*cil.TypeDef, 0, len(order))
	for k, idx := range order {
		handlers = append(handlers, b.handler(k, sigs[idx]))
	}
	b.dispatcher(handlers)
	b.mod.Index()
	return b.mod
}

func (b *vmBuilder) typ(name string) cil.TypeSig {
	if name == EnumField {
		return cil.NewValueTypeSig(b.enum)
	}
	sig, err := b.mod.ParseType(name)
	require.NoError(b.t, err)
	return sig
}

func (b *vmBuilder) methodRef(owner, name, ret string, params ...string) *cil.MethodRef {
	sig := &cil.MethodSig{HasThis: true, RetType: b.typ(ret)}
	for _, p := range params {
		sig.Params = append(sig.Params, b.typ(p))
	}
	return b.mod.AddMethodRef(&cil.MethodRef{Name: name, Class: b.mod.TypeRef(owner), Sig: sig})
}

func code(instrs ...*cil.Instruction) *cil.Body {
	return &cil.Body{Instructions: instrs}
}

func ret() *cil.Instruction { return cil.NewInstruction(cil.Ret, nil) }

func (b *vmBuilder) stack() {
	b.enum = b.mod.AddType(&cil.TypeDef{
		Namespace: "VMRuntime",
		Name:      "ValueKind",
		BaseType:  b.mod.TypeRef("System.Enum"),
		Fields:    []*cil.FieldDef{{Name: "value__", Type: cil.CorLib.Int32}},
	})
	value := b.mod.AddType(&cil.TypeDef{
		Namespace: "VMRuntime",
		Name:      "StackValue",
		BaseType:  b.object,
		Fields: []*cil.FieldDef{
			{Name: "kind", Type: cil.NewValueTypeSig(b.enum)},
			{Name: "value", Type: cil.CorLib.Object},
		},
	})
	valueSig := cil.NewClassSig(value)

	count := &cil.FieldDef{Name: "count", Type: cil.CorLib.Int32}
	b.pop = &cil.MethodDef{
		Name: "Pop",
		Sig:  &cil.MethodSig{HasThis: true, RetType: valueSig},
		Body: code(
			cil.NewInstruction(cil.Ldarg0, nil),
			cil.NewInstruction(cil.Ldarg0, nil),
			cil.NewInstruction(cil.Ldfld, count),
			cil.NewLdcI4(-1),
			cil.NewInstruction(cil.Add, nil),
			cil.NewInstruction(cil.Stfld, count),
			cil.NewInstruction(cil.Ldnull, nil),
			ret(),
		),
	}
	peek := &cil.MethodDef{
		Name: "Peek",
		Sig:  &cil.MethodSig{HasThis: true, RetType: valueSig},
		Body: code(cil.NewInstruction(cil.Ldnull, nil), ret()),
	}
	b.mod.AddType(&cil.TypeDef{
		Namespace: "VMRuntime",
		Name:      "VMStack",
		BaseType:  b.object,
		Interfaces: []cil.TypeDefOrRef{
			b.mod.TypeRef("System.Collections.ICollection"),
			b.mod.TypeRef("System.Collections.IEnumerable"),
		},
		NestedTypes: []*cil.TypeDef{{Name: "Enumerator", BaseType: b.object}},
		Fields: []*cil.FieldDef{
			{Name: "items", Type: cil.NewSZArray(valueSig)},
			{Name: "spare", Type: cil.NewSZArray(valueSig)},
			count,
			{Name: "version", Type: cil.CorLib.Int32},
			{Name: "syncRoot", Type: cil.CorLib.Object},
		},
		Methods: []*cil.MethodDef{b.pop, peek},
	})
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func (b *vmBuilder) handler(k int, sig *HandlerSignature) *cil.TypeDef {
	h := &cil.TypeDef{
		Namespace: "VMRuntime.Handlers",
		Name:      fmt.Sprintf("Handler%02d", k),
		BaseType:  b.mod.TypeRef("VMRuntime.Handlers.OpHandler"),
	}
	var init []*cil.Instruction
	for i, name := range sig.FieldTypes {
		f := &cil.FieldDef{Name: fmt.Sprintf("f%d", i), Type: b.typ(name)}
		h.Fields = append(h.Fields, f)
		init = append(init,
			cil.NewInstruction(cil.Ldarg0, nil),
			cil.NewInstruction(cil.Ldnull, nil),
			cil.NewInstruction(cil.Stfld, f))
	}
	init = append(init, ret())

	void := cil.CorLib.Void
	for i := 0; i < max0(sig.Ctors); i++ {
		ctor := &cil.MethodDef{Name: ".ctor", Sig: &cil.MethodSig{HasThis: true, RetType: void}, Body: code(ret())}
		if i == 0 {
			ctor.Body = code(init...)
		} else {
			ctor.Sig.Params = []cil.TypeSig{cil.CorLib.Int32}
		}
		h.Methods = append(h.Methods, ctor)
	}
	for i := 0; i < max0(sig.Static); i++ {
		h.Methods = append(h.Methods, &cil.MethodDef{
			Name: fmt.Sprintf("S%d", i), Static: true,
			Sig: &cil.MethodSig{RetType: void}, Body: code(ret()),
		})
	}
	for i := 0; i < max0(sig.Instance); i++ {
		h.Methods = append(h.Methods, &cil.MethodDef{
			Name: fmt.Sprintf("M%d", i),
			Sig:  &cil.MethodSig{HasThis: true, RetType: void}, Body: code(ret()),
		})
	}

	read := &cil.MethodDef{
		Name: "Read", Virtual: true,
		Sig: &cil.MethodSig{HasThis: true, RetType: void, Params: []cil.TypeSig{b.reader}},
	}
	execute := &cil.MethodDef{
		Name: "Execute", Virtual: true,
		Sig: &cil.MethodSig{HasThis: true, RetType: void, Params: []cil.TypeSig{b.ctx}},
	}
	if sig.Name == "nop" {
		read.Body, execute.Body = code(ret()), code(ret())
	} else {
		read.Body = code(cil.NewInstruction(cil.Ldarg1, nil), cil.NewInstruction(cil.Pop, nil), ret())
		execute.Body = b.execute(sig)
	}
	h.Methods = append(h.Methods, read, execute)
	for i := 2; i < sig.Virtual; i++ {
		h.Methods = append(h.Methods, &cil.MethodDef{
			Name: fmt.Sprintf("V%d", i), Virtual: true,
			Sig: &cil.MethodSig{HasThis: true, RetType: cil.CorLib.Int32}, Body: code(cil.NewLdcI4(0), ret()),
		})
	}
	return b.mod.AddType(h)
}

func (b *vmBuilder) execute(sig *HandlerSignature) *cil.Body {
	body := code(cil.NewInstruction(cil.Ldarg1, nil), cil.NewInstruction(cil.Pop, nil))
	emit := func(instrs ...*cil.Instruction) {
		body.Instructions = append(body.Instructions, instrs...)
	}
	for i := 0; i < max0(sig.Pops); i++ {
		emit(cil.NewInstruction(cil.Ldarg1, nil), cil.NewInstruction(cil.Callvirt, b.pop), cil.NewInstruction(cil.Pop, nil))
	}
	if name, ok := reflectionCalls[sig.Name]; ok {
		emit(cil.NewInstruction(cil.Ldnull, nil), cil.NewLdcI4(0), cil.NewInstruction(cil.Callvirt, b.calls[name]), cil.NewInstruction(cil.Pop, nil))
	}
	for i := 0; i < max0(sig.Throws); i++ {
		emit(cil.NewInstruction(cil.Ldnull, nil), cil.NewInstruction(cil.Throw, nil))
	}
	emit(ret())
	for _, name := range append(append([]string(nil), sig.ExecuteLocals...), extraLocals[sig.Name]...) {
		body.Locals = append(body.Locals, &cil.Local{Index: len(body.Locals), Type: b.typ(name)})
	}
	return body
}

func (b *vmBuilder) dispatcher(handlers []*cil.TypeDef) {
	d := &cil.TypeDef{Namespace: "VMRuntime", Name: "OpCodeMap", BaseType: b.object}
	d.Fields = []*cil.FieldDef{
		{Name: "instance", Static: true, Type: cil.NewClassSig(d)},
		{Name: "handlers", Type: b.typ("System.Collections.Generic.Dictionary`2<System.UInt16,System.Type>")},
		{Name: "next", Type: cil.CorLib.UInt16},
	}
	getType := b.methodRef("System.Type", "GetTypeFromHandle", "System.Type", "System.RuntimeTypeHandle")
	getType.Sig.HasThis = false

	var instrs []*cil.Instruction
	for k, h := range handlers {
		instrs = append(instrs,
			cil.NewLdcI4(int32(k)),
			cil.NewInstruction(cil.Ldtoken, h),
			cil.NewInstruction(cil.Call, getType),
			cil.NewInstruction(cil.Pop, nil),
			cil.NewInstruction(cil.Pop, nil))
	}
	instrs = append(instrs, ret())
	d.Methods = []*cil.MethodDef{{
		Name: ".cctor", Static: true,
		Sig:  &cil.MethodSig{RetType: cil.CorLib.Void},
		Body: code(instrs...),
	}}
	b.mod.AddType(d)
}

// Tokens of the protected test module.
const (
	tokInt32       = 0x01000010
	tokException   = 0x01000011
	tokProgram     = 0x02000002
	tokPoint       = 0x02000003
	tokCounter     = 0x04000001
	tokValue       = 0x04000002
	tokPointX      = 0x04000003
	tokFill        = 0x06000001
	tokPick        = 0x06000002
	tokGuard       = 0x06000003
	tokTouch       = 0x06000004
	tokBad         = 0x06000005
	tokShow        = 0x06000006
	tokWide        = 0x06000007
	tokToString    = 0x0A000001
	tokMissingFld  = 0x0A000002
	tokNotAMethod  = tokCounter
	tokUnknownMeth = 0x06000099
)

// newAppModule builds a protected module calling into the VMRuntime assembly.
// The _CSVM resource is left to the caller.
func newAppModule(t testing.TB) *snapshot.Module {
	t.Helper()
	mod := snapshot.NewModule("App.exe", "/samples/App.exe")
	object := mod.TypeRef("System.Object")
	mod.AddTypeRef(&cil.TypeRef{Token: tokInt32, Namespace: "System", Name: "Int32", Scope: "mscorlib", ValueType: true})
	mod.AddTypeRef(&cil.TypeRef{Token: tokException, Namespace: "System", Name: "Exception", Scope: "mscorlib"})

	runtime := mod.AddTypeRef(&cil.TypeRef{Namespace: "VMRuntime.Libraries", Name: "CSVMRuntime", Scope: "VMRuntime"})
	mod.AddMethodRef(&cil.MethodRef{
		Name:  "RunMethod",
		Class: runtime,
		Sig: &cil.MethodSig{
			RetType: cil.CorLib.Object,
			Params:  []cil.TypeSig{cil.CorLib.String, cil.NewSZArray(cil.CorLib.Object)},
		},
	})
	mod.AddMethodRef(&cil.MethodRef{
		Token: tokToString,
		Name:  "ToString",
		Class: object,
		Sig:   &cil.MethodSig{HasThis: true, RetType: cil.CorLib.String},
	})
	mod.AddFieldRef(&cil.FieldRef{
		Token: tokMissingFld,
		Name:  "missing",
		Class: mod.TypeRef("Lib.Other"),
		Type:  cil.CorLib.Int32,
	})

	point := mod.AddType(&cil.TypeDef{
		Token:     tokPoint,
		Namespace: "App",
		Name:      "Point",
		BaseType:  mod.TypeRef("System.ValueType"),
		Fields:    []*cil.FieldDef{{Token: tokPointX, Name: "X", Type: cil.CorLib.Int32}},
	})

	void := cil.CorLib.Void
	runMethod := mod.MethodRefs()[0]
	static := func(token uint32, name string, result cil.TypeSig, params ...cil.TypeSig) *cil.MethodDef {
		return &cil.MethodDef{
			Token: token, Name: name, Static: true,
			Sig: &cil.MethodSig{RetType: result, Params: params},
			Body: code(
				cil.NewInstruction(cil.Ldnull, nil),
				cil.NewInstruction(cil.Ldnull, nil),
				cil.NewInstruction(cil.Call, runMethod),
				cil.NewInstruction(cil.Pop, nil),
				ret(),
			),
		}
	}
	fill := static(tokFill, "Fill", void)
	fill.Body.Locals = []*cil.Local{{Type: cil.NewSZArray(cil.CorLib.Int32)}}
	wide := static(tokWide, "Wide", void)
	for i := 0; i < 5; i++ {
		wide.Body.Locals = append(wide.Body.Locals, &cil.Local{Index: i, Type: cil.CorLib.Int32})
	}

	mod.AddType(&cil.TypeDef{
		Token:     tokProgram,
		Namespace: "App",
		Name:      "Program",
		BaseType:  object,
		Fields: []*cil.FieldDef{
			{Token: tokCounter, Name: "counter", Static: true, Type: cil.CorLib.Int32},
			{Token: tokValue, Name: "value", Type: cil.CorLib.Int32},
		},
		Methods: []*cil.MethodDef{
			fill,
			static(tokPick, "Pick", cil.CorLib.Int32, cil.CorLib.Int32),
			static(tokGuard, "Guard", void),
			{
				Token: tokTouch, Name: "Touch",
				Sig: &cil.MethodSig{HasThis: true, RetType: void},
			},
			static(tokBad, "Bad", void, cil.CorLib.Object),
			static(tokShow, "Show", cil.CorLib.String, cil.NewByRef(cil.NewValueTypeSig(point))),
			wide,
		},
	})
	mod.Index()
	return mod
}

func methodDef(t testing.TB, mod cil.ModuleView, token uint32) *cil.MethodDef {
	t.Helper()
	member, err := mod.ResolveToken(token, cil.GenericContext{})
	require.NoError(t, err)
	m, ok := member.(*cil.MethodDef)
	require.True(t, ok, "%08X is a %T", token, member)
	return m
}

// v1Table maps VM opcode i to the i-th csvm-v1 1.0 handler.
func v1Table() *OpCodeTable {
	return NewOpCodeTable(catalogs[0], catalogV1)
}

// orderedTable maps VM opcode k to c.Signatures[order[k]], the table Detect
// returns for newVMModule(t, c.Signatures, order).
func orderedTable(c *Catalog, order []int) *OpCodeTable {
	sigs := make([]*HandlerSignature, len(order))
	for k, idx := range order {
		sigs[k] = c.Signatures[idx]
	}
	return NewOpCodeTable(c, sigs)
}

// vmAsm writes VM instruction streams.
type vmAsm struct {
	t     testing.TB
	table *OpCodeTable
	w     Writer
}

func newAsm(t testing.TB, table *OpCodeTable) *vmAsm {
	return &vmAsm{t: t, table: table}
}

func (a *vmAsm) op(name string) *vmAsm {
	for i, n := range a.table.Names() {
		if n == name {
			a.w.WriteUint16(uint16(i))
			return a
		}
	}
	a.t.Fatalf("no %q handler in %s", name, a.table.Catalog())
	return a
}

func (a *vmAsm) u8(v byte) *vmAsm      { _ = a.w.WriteByte(v); return a }
func (a *vmAsm) flag(v bool) *vmAsm    { a.w.WriteBool(v); return a }
func (a *vmAsm) u16(v uint16) *vmAsm   { a.w.WriteUint16(v); return a }
func (a *vmAsm) i32(v int32) *vmAsm    { a.w.WriteInt32(v); return a }
func (a *vmAsm) u32(v uint32) *vmAsm   { a.w.WriteUint32(v); return a }
func (a *vmAsm) str(s string) *vmAsm   { a.w.WriteString(s); return a }
func (a *vmAsm) ldcI4(v int32) *vmAsm  { return a.op("load constant").u8(byte(cil.ElementI4)).i32(v) }
func (a *vmAsm) ldloc(i uint16) *vmAsm { return a.op("load local/arg").flag(false).u16(i) }
func (a *vmAsm) ldarg(i uint16) *vmAsm { return a.op("load local/arg").flag(true).u16(i) }
func (a *vmAsm) stloc(i uint16) *vmAsm {
	return a.op("store local/arg").flag(false).u16(i).i32(int32(cil.ElementObject))
}
func (a *vmAsm) pop() *vmAsm                 { return a.op("dup/pop").u8(1) }
func (a *vmAsm) ret() *vmAsm                 { return a.op("ret").u32(0) }
func (a *vmAsm) br(displ int32) *vmAsm       { return a.op("compare").u8(0).i32(displ) }
func (a *vmAsm) leave(displ int32) *vmAsm    { return a.op("leave").i32(displ) }
func (a *vmAsm) field(sub byte, token uint32) *vmAsm {
	return a.op("load/store field").u8(sub).u32(token)
}
func (a *vmAsm) elem(load, typed bool, value int32) *vmAsm {
	return a.op("ldelem/stelem").flag(load).flag(typed).i32(value)
}
func (a *vmAsm) bytes() []byte { return append([]byte(nil), a.w.Bytes()...) }

// blob writes an Int32 count followed by the Int32 values.
func blob(values ...int32) []byte {
	var w Writer
	for _, v := range values {
		w.WriteInt32(v)
	}
	return w.Bytes()
}

func opcodes(instrs []*cil.Instruction) []*cil.OpCode {
	ops := make([]*cil.OpCode, len(instrs))
	for i, instr := range instrs {
		ops[i] = instr.OpCode
	}
	return ops
}
