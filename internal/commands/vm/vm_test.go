package vm

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blacktop/devirt/pkg/cil"
	"github.com/blacktop/devirt/pkg/cil/snapshot"
	"github.com/blacktop/devirt/pkg/csvm"
)

const protectedModule = `
name: App.exe
type_refs:
  - name: VMRuntime.Libraries.CSVMRuntime
    scope: VMRuntime
member_refs:
  - kind: method
    owner: VMRuntime.Libraries.CSVMRuntime
    name: RunMethod
    return: System.Object
    params: [System.String, "System.Object[]"]
types:
  - namespace: Demo
    name: Program
    base: System.Object
    methods:
      - token: 0x06000001
        name: Fill
        static: true
`

func protected(t *testing.T, methods ...*csvm.MethodData) *snapshot.Module {
	t.Helper()
	mod, err := snapshot.Parse([]byte(protectedModule), "/samples/App.yml")
	require.NoError(t, err)
	mod.AddResource(csvm.ResourceName, csvm.WriteMethods(methods))
	return mod
}

func TestDescribe(t *testing.T) {
	catalog := csvm.Catalogs()[0]
	table := Describe("VMRuntime", csvm.NewOpCodeTable(catalog, catalog.Signatures))

	assert.Equal(t, "VMRuntime", table.Module)
	assert.Equal(t, catalog.String(), table.Catalog)
	require.Len(t, table.Handlers, csvm.NumHandlers)
	assert.Equal(t, catalog.Signatures[8].Name, table.Handlers[8].Name)
	assert.Empty(t, table.Handlers[0].Digest, "no fingerprint without a classified runtime")

	lines := strings.Split(strings.TrimSpace(table.String()), "\n")
	require.Len(t, lines, csvm.NumHandlers)
	assert.Equal(t, "0000: "+catalog.Signatures[0].Name, lines[0])
	assert.Equal(t, "001E: "+catalog.Signatures[30].Name, lines[30])
}

func TestDetect(t *testing.T) {
	t.Run("runtime without handlers", func(t *testing.T) {
		mod, err := snapshot.Parse([]byte("name: Plain.dll\n"), "/samples/Plain.yml")
		require.NoError(t, err)
		_, err = Detect(mod, nil, nil)
		assert.ErrorIs(t, err, csvm.ErrDetection)
	})
	t.Run("protected module with missing runtime", func(t *testing.T) {
		load := func(path string) (cil.ModuleView, error) {
			assert.Equal(t, "/samples/VMRuntime.dll", path)
			return nil, errors.New("not found")
		}
		_, err := Detect(protected(t), nil, load)
		assert.ErrorIs(t, err, csvm.ErrDetection)
	})
}

func TestMethods(t *testing.T) {
	guid := uuid.MustParse("00112233-4455-6677-8899-aabbccddeeff")
	mod := protected(t,
		&csvm.MethodData{GUID: guid, Token: 0x06000001, Locals: []byte{0, 0, 0, 0}, Instructions: make([]byte, 2048)},
		&csvm.MethodData{Token: 0x06000042},
	)

	methods, err := Methods(mod)
	require.NoError(t, err)
	require.Len(t, methods, 2)

	assert.Equal(t, "06000001", methods[0].Token)
	assert.Equal(t, guid.String(), methods[0].GUID)
	assert.Equal(t, "System.Void Demo.Program::Fill()", methods[0].Name)
	assert.Equal(t, []string{"06000001", guid.String(), "System.Void Demo.Program::Fill()", "4 B", "2.0 kB", "0 B"}, methods[0].Row())

	assert.Empty(t, methods[1].Name, "unresolved tokens keep an empty name")
	assert.Equal(t, "?", methods[1].Row()[2])

	plain, err := snapshot.Parse([]byte("name: Plain.exe\n"), "/samples/Plain.yml")
	require.NoError(t, err)
	_, err = Methods(plain)
	assert.ErrorContains(t, err, "not protected")
}
