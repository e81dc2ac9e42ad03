package disass

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blacktop/devirt/pkg/cil"
	"github.com/blacktop/devirt/pkg/cil/snapshot"
)

const program = `
name: Sample.exe
member_refs:
  - token: 0x0A000001
    kind: method
    owner: System.Console
    name: WriteLine
    params: [System.String]
types:
  - namespace: Demo
    name: Program
    base: System.Object
    fields:
      - name: counter
        type: System.Int32
        static: true
    methods:
      - token: 0x06000001
        name: Main
        static: true
        params: ["System.String[]"]
        locals: [System.Int32]
        body:
          - ldc.i4.0
          - stloc.0
          - ldloc.0
          - ldc.i4.3
          - blt.s @7
          - ldstr "done"
          - call System.Console::WriteLine(System.String)
          - ldsfld Demo.Program::counter
          - pop
          - ret
        exceptions:
          - kind: finally
            try_start: 0
            try_end: 5
            handler_start: 5
            handler_end: 10
      - token: 0x06000002
        name: Stub
        static: true
`

func mainMethod(t *testing.T) (*snapshot.Module, *cil.MethodDef) {
	t.Helper()
	mod, err := snapshot.Parse([]byte(program), "/samples/Sample.yml")
	require.NoError(t, err)
	member, err := mod.ResolveToken(0x06000001, cil.GenericContext{})
	require.NoError(t, err)
	return mod, member.(*cil.MethodDef)
}

func TestListing(t *testing.T) {
	_, main := mainMethod(t)

	got := Listing(main, false)
	for _, want := range []string{
		"// 06000001 System.Void Demo.Program::Main(System.String[])",
		"[0] System.Int32 V_0",
		"IL_0004: blt.s IL_0010",
		`IL_0006: ldstr "done"`,
		"IL_0016: ret",
		".try IL_0000 to IL_0006 finally handler IL_0006 to <end>",
	} {
		assert.Contains(t, got, want)
	}
	assert.NotContains(t, got, "\x1b[", "uncolored listings carry no escape codes")

	orig := color.NoColor
	defer func() { color.NoColor = orig }()
	color.NoColor = false
	assert.Contains(t, Listing(main, true), "\x1b[")
}

func TestListingNoBody(t *testing.T) {
	mod, _ := mainMethod(t)
	member, err := mod.ResolveToken(0x06000002, cil.GenericContext{})
	require.NoError(t, err)
	stub := member.(*cil.MethodDef)
	assert.Contains(t, Listing(stub, false), "// no body")

	var buf bytes.Buffer
	assert.Error(t, DOT(&buf, stub))
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name   string
		before string
		after  string
		want   []string
	}{
		{
			name:   "changed line",
			before: "ldnull\nret\n",
			after:  "ldc.i4.0\nret\n",
			want:   []string{"--- Main (stub)", "+++ Main (restored)", "-ldnull", "+ldc.i4.0", " ret"},
		},
		{
			name:   "identical",
			before: "ret\n",
			after:  "ret\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff("Main", tt.before, tt.after, false)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
		})
	}

	orig := color.NoColor
	defer func() { color.NoColor = orig }()
	color.NoColor = false
	assert.Contains(t, Diff("Main", "ldnull\n", "ret\n", true), "\x1b[")
}

func TestDOT(t *testing.T) {
	_, main := mainMethod(t)
	var buf bytes.Buffer
	require.NoError(t, DOT(&buf, main))
	assert.Contains(t, buf.String(), "digraph")
	assert.Contains(t, buf.String(), "->")
}

func TestRestoreNotProtected(t *testing.T) {
	mod, _ := mainMethod(t)
	_, err := Restore(mod, &Config{Token: 0x06000001})
	assert.ErrorContains(t, err, "not protected")
}
