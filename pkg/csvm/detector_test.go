package csvm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blacktop/devirt/pkg/cil"
	"github.com/blacktop/devirt/pkg/cil/snapshot"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		order []int
	}{
		{"registration order", identity(len(catalogV1))},
		{"reversed", reversed(len(catalogV1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := newVMModule(t, catalogV1, tt.order)
			table, err := Detect(vm, Catalogs())
			require.NoError(t, err)
			assert.Equal(t, "csvm-v1", table.Catalog().Name)
			assert.Equal(t, "1.0.0", table.Catalog().Version.String())
			require.Equal(t, NumHandlers, table.Len())
			for k, idx := range tt.order {
				h, err := table.Handler(uint16(k))
				require.NoError(t, err)
				assert.Equal(t, catalogV1[idx].Name, h.Name, "opcode %d", k)
				require.NotNil(t, table.Info(uint16(k)))
				assert.Equal(t, "VMRuntime.Handlers", table.Info(uint16(k)).Type.Namespace)
			}
		})
	}
}

func TestDetectCatalogVersions(t *testing.T) {
	tests := []struct {
		name    string
		catalog *Catalog
		order   []int
	}{
		{"1.0", catalogs[0], reversed(len(catalogV1))},
		{"1.1", catalogs[1], rotated(len(catalogV2), 7)},
		{"1.2", catalogs[2], rotated(len(catalogV3), 19)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := newVMModule(t, tt.catalog.Signatures, tt.order)
			table, err := Detect(vm, Catalogs())
			require.NoError(t, err)
			assert.Same(t, tt.catalog, table.Catalog())
			assert.Equal(t, tt.name+".0", table.Catalog().Version.String())
			assert.Equal(t, orderedTable(tt.catalog, tt.order).Names(), table.Names())

			for _, other := range catalogs {
				if other == tt.catalog {
					continue
				}
				_, err := Detect(vm, []*Catalog{other})
				assert.ErrorIs(t, err, ErrDetection, "catalog %s", other)
			}
		})
	}
}

func TestDetectKnownIndices(t *testing.T) {
	table, err := Detect(newVMModule(t, catalogV1, identity(len(catalogV1))), Catalogs())
	require.NoError(t, err)

	h, err := table.Handler(0)
	require.NoError(t, err)
	assert.Equal(t, "arithmetic", h.Name)
	h, err = table.Handler(8)
	require.NoError(t, err)
	assert.Equal(t, "ldelem/stelem", h.Name)

	_, err = table.Handler(NumHandlers)
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Nil(t, table.Info(NumHandlers))
}

func TestDetectIsDeterministic(t *testing.T) {
	vm := newVMModule(t, catalogV1, reversed(len(catalogV1)))
	first, err := Detect(vm, Catalogs())
	require.NoError(t, err)
	second, err := Detect(vm, Catalogs())
	require.NoError(t, err)
	assert.Equal(t, first.Names(), second.Names())
	assert.Same(t, first.Catalog(), second.Catalog())
}

func TestDetectFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(t *testing.T, vm *snapshot.Module)
	}{
		{
			name: "unknown handler shape",
			mutate: func(t *testing.T, vm *snapshot.Module) {
				handlers, err := FindHandlerTypes(vm)
				require.NoError(t, err)
				handlers[0].Methods = append(handlers[0].Methods, &cil.MethodDef{
					Name: "Extra",
					Sig:  &cil.MethodSig{HasThis: true, RetType: cil.CorLib.Void},
				})
			},
		},
		{
			name: "missing pop",
			mutate: func(t *testing.T, vm *snapshot.Module) {
				info, err := FindInfo(vm)
				require.NoError(t, err)
				info.Pop.Body = code(cil.NewInstruction(cil.Ldnull, nil), ret())
			},
		},
		{
			name: "dispatcher lost a handler",
			mutate: func(t *testing.T, vm *snapshot.Module) {
				for _, typ := range vm.Types() {
					if cctor := typ.FindStaticConstructor(); cctor != nil {
						for _, instr := range cctor.Body.Instructions {
							if instr.OpCode == cil.Ldtoken {
								instr.OpCode = cil.Nop
								instr.Operand = nil
								return
							}
						}
					}
				}
				t.Fatal("no dispatcher")
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := newVMModule(t, catalogV1, identity(len(catalogV1)))
			tt.mutate(t, vm)
			_, err := Detect(vm, catalogs[:1])
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDetection)
		})
	}
}

func TestDetectRejectsDuplicateHandlers(t *testing.T) {
	order := identity(len(catalogV1))
	order[1] = 0
	_, err := Detect(newVMModule(t, catalogV1, order), catalogs[:1])
	assert.ErrorIs(t, err, ErrDetection)
}

func TestFindInfo(t *testing.T) {
	vm := newVMModule(t, catalogV1, identity(len(catalogV1)))
	info, err := FindInfo(vm)
	require.NoError(t, err)
	assert.Equal(t, "VMRuntime.StackValue", info.StackValue.FullName())
	assert.Equal(t, "VMRuntime.VMStack", info.Stack.FullName())
	assert.Equal(t, "Pop", info.Pop.Name)
	require.NotNil(t, info.Peek)
	assert.Equal(t, "Peek", info.Peek.Name)

	_, err = FindInfo(snapshot.NewModule("Empty.dll", ""))
	assert.ErrorIs(t, err, ErrDetection)
}

func TestFindHandlerTypesNeedsDispatcher(t *testing.T) {
	_, err := FindHandlerTypes(snapshot.NewModule("Empty.dll", ""))
	assert.ErrorIs(t, err, ErrDetection)
}

func TestNewHandlerInfo(t *testing.T) {
	vm := newVMModule(t, catalogV1, identity(len(catalogV1)))
	info, err := FindInfo(vm)
	require.NoError(t, err)
	handlers, err := FindHandlerTypes(vm)
	require.NoError(t, err)

	index := func(name string) int {
		for i, sig := range catalogV1 {
			if sig.Name == name {
				return i
			}
		}
		t.Fatalf("no %s signature", name)
		return -1
	}

	t.Run("stobj", func(t *testing.T) {
		h, err := NewHandlerInfo(handlers[index("stobj")], info)
		require.NoError(t, err)
		assert.Equal(t, 1, h.Throws)
		assert.Equal(t, 2, h.Pops)
		assert.Equal(t, 2, h.Virtual)
		assert.Equal(t, 1, h.Ctors)
		assert.Equal(t, []string{"System.Object"}, h.Locals)
		assert.True(t, h.HasLocal("System.Object"))
		assert.False(t, h.HasLocal("System.Int32"))
		assert.Equal(t, "Read", h.Read.Name)
		assert.Equal(t, "Execute", h.Execute.Name)
	})

	t.Run("fields", func(t *testing.T) {
		h, err := NewHandlerInfo(handlers[index("ldelem/stelem")], info)
		require.NoError(t, err)
		assert.Equal(t, 1, h.Fields.Enums())
		assert.Equal(t, 2, h.Fields.Count("System.Boolean"))
		assert.Equal(t, 1, h.Fields.Count("System.UInt32"))
		assert.True(t, h.Fields.Equal(NewFieldTypes("System.Boolean", EnumField, "System.UInt32", "System.Boolean")))
	})

	t.Run("digest", func(t *testing.T) {
		a, err := NewHandlerInfo(handlers[index("arithmetic")], info)
		require.NoError(t, err)
		b, err := NewHandlerInfo(handlers[index("arithmetic")], info)
		require.NoError(t, err)
		c, err := NewHandlerInfo(handlers[index("logical")], info)
		require.NoError(t, err)
		assert.Equal(t, a.Digest(), b.Digest())
		assert.NotEqual(t, a.Digest(), c.Digest())
	})

	t.Run("no execute", func(t *testing.T) {
		typ := &cil.TypeDef{Namespace: "VMRuntime.Handlers", Name: "Broken"}
		typ.Methods = []*cil.MethodDef{handlers[0].FindMethod("Read")}
		_, err := NewHandlerInfo(typ, info)
		assert.ErrorIs(t, err, ErrDetection)
	})
}

func TestHandlerSignatureMatches(t *testing.T) {
	h := &HandlerInfo{Fingerprint: Fingerprint{
		Instance: 3, Virtual: 2, Ctors: 1, Throws: 1,
		Fields: NewFieldTypes("System.UInt32"),
		Locals: []string{"System.Int32", "System.Type"},
	}}
	tests := []struct {
		name string
		sig  HandlerSignature
		want bool
	}{
		{"exact", HandlerSignature{Instance: 3, Virtual: 2, Ctors: 1, Throws: 1, FieldTypes: []string{"System.UInt32"}}, true},
		{"wildcards", HandlerSignature{Instance: AnyCount, Virtual: 2, Ctors: 1, Throws: AnyCount, Pops: AnyCount, FieldTypes: []string{"System.UInt32"}}, true},
		{"count differs", HandlerSignature{Instance: 2, Virtual: 2, Ctors: 1, Throws: 1, FieldTypes: []string{"System.UInt32"}}, false},
		{"fields differ", HandlerSignature{Instance: 3, Virtual: 2, Ctors: 1, Throws: 1, FieldTypes: []string{"System.Int32"}}, false},
		{"enum instead", HandlerSignature{Instance: 3, Virtual: 2, Ctors: 1, Throws: 1, FieldTypes: []string{EnumField}}, false},
		{"has locals", HandlerSignature{Instance: 3, Virtual: 2, Ctors: 1, Throws: 1, FieldTypes: []string{"System.UInt32"}, ExecuteLocals: []string{"System.Type"}}, true},
		{"missing local", HandlerSignature{Instance: 3, Virtual: 2, Ctors: 1, Throws: 1, FieldTypes: []string{"System.UInt32"}, ExecuteLocals: []string{"System.Array"}}, false},
		{
			"check rejects",
			HandlerSignature{Instance: 3, Virtual: 2, Ctors: 1, Throws: 1, FieldTypes: []string{"System.UInt32"}, Check: func(*HandlerInfo) bool { return false }},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sig.Matches(h))
		})
	}
}
