package csvm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blacktop/devirt/pkg/cil"
	"github.com/blacktop/devirt/pkg/cil/snapshot"
)

// protected returns the test module carrying a _CSVM table for the given methods.
func protected(t *testing.T, methods ...*MethodData) *snapshot.Module {
	t.Helper()
	app := newAppModule(t)
	app.AddResource(ResourceName, WriteMethods(methods))
	return app
}

// vmOrder is the handler registration order of the runtime vmLoader serves.
var vmOrder = reversed(len(catalogV1))

// vmTable is the opcode table detected for the runtime vmLoader serves.
func vmTable() *OpCodeTable {
	return orderedTable(catalogs[0], vmOrder)
}

func pickData(t *testing.T) *MethodData {
	return &MethodData{
		Token:        tokPick,
		Instructions: newAsm(t, vmTable()).ldarg(0).ret().bytes(),
	}
}

func touchData(t *testing.T) *MethodData {
	return &MethodData{
		Token:        tokTouch,
		Instructions: newAsm(t, vmTable()).ldarg(0).field(0, tokMissingFld).op("dup/pop").u8(1).ret().bytes(),
	}
}

type loader struct {
	calls int
	err   error
}

func (l *loader) load(string) (cil.ModuleView, error) {
	l.calls++
	return nil, l.err
}

func vmLoader(t *testing.T, calls *int) LoadFunc {
	return func(path string) (cil.ModuleView, error) {
		*calls++
		assert.Equal(t, "/samples/VMRuntime.dll", path)
		return newVMModule(t, catalogV1, vmOrder), nil
	}
}

func TestFind(t *testing.T) {
	app := protected(t, pickData(t))
	c := Find(app)
	assert.True(t, c.Detected())
	assert.Equal(t, "VMRuntime", c.VMName())
	assert.Equal(t, "/samples/VMRuntime.dll", c.VMModulePath())
	methods, err := c.Methods()
	require.NoError(t, err)
	require.Len(t, methods, 1)
	assert.Equal(t, uint32(tokPick), methods[0].Token)

	t.Run("no resource", func(t *testing.T) {
		c := Find(newAppModule(t))
		assert.False(t, c.Detected())
		assert.Equal(t, "VMRuntime", c.VMName())
		methods, err := c.Methods()
		assert.NoError(t, err)
		assert.Nil(t, methods)
	})

	t.Run("no runtime", func(t *testing.T) {
		mod := snapshot.NewModule("Plain.exe", "/samples/Plain.exe")
		mod.AddResource(ResourceName, WriteMethods(nil))
		mod.Index()
		assert.False(t, Find(mod).Detected())
	})
}

func TestRestore(t *testing.T) {
	t.Run("runtime table", func(t *testing.T) {
		var calls int
		vm, err := vmLoader(t, &calls)("/samples/VMRuntime.dll")
		require.NoError(t, err)
		table, err := Detect(vm, Catalogs())
		require.NoError(t, err)
		assert.Equal(t, vmTable().Names(), table.Names())
		assert.NotEqual(t, v1Table().Names(), table.Names())
	})

	t.Run("every method restored", func(t *testing.T) {
		app := protected(t, pickData(t), touchData(t))
		var calls int
		out, err := Find(app).Restore(context.Background(), Options{Load: vmLoader(t, &calls)})
		require.NoError(t, err)

		assert.Equal(t, 2, out.Converted)
		assert.Equal(t, 1, out.Warned)
		assert.Equal(t, 0, out.Skipped)
		require.NotNil(t, out.Catalog)
		assert.Equal(t, "csvm-v1", out.Catalog.Name)
		assert.True(t, out.ResourceRemoved)
		_, ok := app.Resource(ResourceName)
		assert.False(t, ok)

		require.Len(t, out.Methods, 2)
		assert.True(t, out.Methods[0].Restored)
		assert.Empty(t, out.Methods[0].Warnings)
		assert.Contains(t, out.Methods[0].Name, "App.Program::Pick")
		assert.Len(t, out.Methods[1].Warnings, 1)

		pick := methodDef(t, app, tokPick)
		assert.Equal(t, []*cil.OpCode{cil.Ldarg0, cil.Ret}, opcodes(pick.Body.Instructions))
	})

	t.Run("skipped method keeps the resource", func(t *testing.T) {
		app := protected(t,
			pickData(t),
			&MethodData{Token: tokUnknownMeth, Instructions: newAsm(t, vmTable()).ret().bytes()},
			&MethodData{Token: tokNotAMethod, Instructions: newAsm(t, vmTable()).ret().bytes()},
			&MethodData{Token: tokGuard, Instructions: []byte{0xff}},
		)
		var calls int
		out, err := Find(app).Restore(context.Background(), Options{Load: vmLoader(t, &calls)})
		require.NoError(t, err)
		assert.Equal(t, 1, out.Converted)
		assert.Equal(t, 3, out.Skipped)
		assert.False(t, out.ResourceRemoved)
		_, ok := app.Resource(ResourceName)
		assert.True(t, ok)

		require.Len(t, out.Methods, 4)
		assert.ErrorIs(t, out.Methods[1].Err, cil.ErrUnresolvedToken)
		assert.ErrorIs(t, out.Methods[2].Err, cil.ErrUnresolvedToken)
		assert.ErrorIs(t, out.Methods[3].Err, ErrMalformed)
	})

	t.Run("strict", func(t *testing.T) {
		bad := &MethodData{
			Token:        tokBad,
			Instructions: newAsm(t, vmTable()).ldarg(0).ldcI4(0).elem(true, false, 0).pop().ret().bytes(),
		}
		app := protected(t, bad)
		before := methodDef(t, app, tokBad).Body
		var calls int
		out, err := Find(app).Restore(context.Background(), Options{Load: vmLoader(t, &calls), Strict: true})
		require.NoError(t, err)
		assert.Equal(t, 1, out.Skipped)
		assert.Equal(t, 0, out.Converted)
		assert.False(t, out.Methods[0].Restored)
		assert.Same(t, before, methodDef(t, app, tokBad).Body)
	})

	t.Run("keep resource", func(t *testing.T) {
		app := protected(t, pickData(t))
		var calls int
		out, err := Find(app).Restore(context.Background(), Options{Load: vmLoader(t, &calls), KeepResource: true})
		require.NoError(t, err)
		assert.Equal(t, 1, out.Converted)
		assert.False(t, out.ResourceRemoved)
		_, ok := app.Resource(ResourceName)
		assert.True(t, ok)
	})

	t.Run("shared cache", func(t *testing.T) {
		cache := NewCache()
		var calls int
		for i := 0; i < 2; i++ {
			_, err := Find(protected(t, pickData(t))).Restore(context.Background(), Options{Load: vmLoader(t, &calls), Cache: cache})
			require.NoError(t, err)
		}
		assert.Equal(t, 1, calls)
	})

	t.Run("load failure", func(t *testing.T) {
		l := &loader{err: errors.New("no such file")}
		_, err := Find(protected(t, pickData(t))).Restore(context.Background(), Options{Load: l.load})
		assert.ErrorIs(t, err, ErrDetection)
		assert.Equal(t, 1, l.calls)
	})

	t.Run("no loader", func(t *testing.T) {
		_, err := Find(protected(t, pickData(t))).Restore(context.Background(), Options{})
		assert.Error(t, err)
	})

	t.Run("unknown runtime", func(t *testing.T) {
		load := func(string) (cil.ModuleView, error) {
			return snapshot.NewModule("VMRuntime.dll", "/samples/VMRuntime.dll"), nil
		}
		_, err := Find(protected(t, pickData(t))).Restore(context.Background(), Options{Load: load})
		assert.ErrorIs(t, err, ErrDetection)
	})

	t.Run("malformed method table", func(t *testing.T) {
		app := newAppModule(t)
		app.AddResource(ResourceName, blob(-1))
		var calls int
		_, err := Find(app).Restore(context.Background(), Options{Load: vmLoader(t, &calls)})
		assert.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		var calls int
		out, err := Find(protected(t, pickData(t))).Restore(ctx, Options{Load: vmLoader(t, &calls)})
		assert.ErrorIs(t, err, context.Canceled)
		require.NotNil(t, out)
		assert.Empty(t, out.Methods)
	})

	t.Run("not protected", func(t *testing.T) {
		var calls int
		out, err := Find(newAppModule(t)).Restore(context.Background(), Options{Load: vmLoader(t, &calls)})
		require.NoError(t, err)
		assert.Equal(t, &Outcome{}, out)
		assert.Zero(t, calls)
	})
}
