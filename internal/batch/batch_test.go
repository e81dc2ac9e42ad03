package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blacktop/devirt/internal/db"
	"github.com/blacktop/devirt/pkg/cil/snapshot"
	"github.com/blacktop/devirt/pkg/csvm"
)

const plainModule = `
name: Plain.exe
types:
  - namespace: Demo
    name: Program
    base: System.Object
    methods:
      - name: Main
        static: true
        body:
          - ret
`

// protectedModule references a VM runtime that is not shipped next to it.
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
resources:
  - name: _CSVM
    data: AAAAAA==
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func inputs(t *testing.T) (dir string, plain, protected, missing string) {
	t.Helper()
	dir = t.TempDir()
	plain = writeFile(t, dir, "Plain.yml", plainModule)
	protected = writeFile(t, dir, "App.yml", protectedModule)
	missing = filepath.Join(dir, "Missing.yml")
	return
}

func byPath(reports []*Report) map[string]*Report {
	m := make(map[string]*Report, len(reports))
	for _, r := range reports {
		m[r.Path] = r
	}
	return m
}

func TestExecute(t *testing.T) {
	_, plain, protected, missing := inputs(t)

	e, err := NewExecutor(&Config{Concurrency: 2})
	require.NoError(t, err)

	var consumed []string
	e.RegisterAll(
		NewSinkFunc("collect", nil, func(_ context.Context, r *Report) error {
			consumed = append(consumed, r.Path)
			return nil
		}),
		NewSinkFunc("disabled", func(*Config) bool { return false }, func(context.Context, *Report) error {
			t.Error("disabled sink called")
			return nil
		}),
		NewSinkFunc("broken", nil, func(context.Context, *Report) error {
			return errors.New("disk full")
		}),
	)

	require.NoError(t, e.Execute(context.Background(), []string{plain, protected, missing}))
	assert.ElementsMatch(t, []string{plain, protected, missing}, consumed)

	reports := byPath(e.Reports())
	require.Len(t, reports, 3)

	r := reports[plain]
	require.NotNil(t, r)
	assert.NoError(t, r.Err)
	assert.False(t, r.Protected())
	assert.Equal(t, &csvm.Outcome{}, r.Outcome)
	assert.Equal(t, "Plain.exe", r.Module.Name())

	r = reports[protected]
	require.NotNil(t, r)
	assert.Equal(t, "VMRuntime", r.VMName)
	assert.ErrorIs(t, r.Err, csvm.ErrDetection)
	assert.True(t, r.Failed())

	r = reports[missing]
	require.NotNil(t, r)
	assert.Error(t, r.Err)
	assert.Nil(t, r.Module)

	stats := e.Stats()
	assert.Equal(t, 3, stats.Modules)
	assert.Equal(t, 2, stats.Failed)
	assert.Equal(t, 0, stats.Protected)
	var sinkErrs int
	for _, err := range stats.Errors {
		if errors.Is(err, ErrSinkFailed) {
			sinkErrs++
		}
	}
	assert.Equal(t, 3, sinkErrs)
	assert.False(t, stats.EndTime.IsZero())
	assert.Contains(t, stats.Summary(), "Modules:   3 (0 protected, 2 failed)")
}

func TestExecuteRuntimeOverride(t *testing.T) {
	_, plain, protected, _ := inputs(t)
	e, err := NewExecutor(&Config{Concurrency: 1, Runtime: plain})
	require.NoError(t, err)
	require.NoError(t, e.Execute(context.Background(), []string{protected}))

	reports := e.Reports()
	require.Len(t, reports, 1)
	assert.ErrorIs(t, reports[0].Err, csvm.ErrDetection, "a runtime without handlers is not classified")
	assert.Equal(t, 1, e.CacheLen())
}

func TestExecuteNoInputs(t *testing.T) {
	e, err := NewExecutor(&Config{})
	require.NoError(t, err)
	assert.ErrorIs(t, e.Execute(context.Background(), nil), ErrNoInputs)
}

func TestExecuteCanceled(t *testing.T) {
	_, plain, _, _ := inputs(t)
	e, err := NewExecutor(&Config{Concurrency: 1})
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, e.Execute(ctx, []string{plain, plain}), context.Canceled)
	assert.Empty(t, e.Reports())
}

func TestDBSink(t *testing.T) {
	_, plain, protected, _ := inputs(t)
	d, err := db.NewInMemory("")
	require.NoError(t, err)
	require.NoError(t, d.Connect())

	e, err := NewExecutor(&Config{Concurrency: 2})
	require.NoError(t, err)
	e.Register(NewDBSink(d, 7))
	require.NoError(t, e.Execute(context.Background(), []string{plain, protected}))

	mods, err := d.List(7)
	require.NoError(t, err)
	require.Len(t, mods, 2)
	names := []string{mods[0].Name, mods[1].Name}
	assert.ElementsMatch(t, []string{"Plain.exe", "App.exe"}, names)
}

func TestToModel(t *testing.T) {
	guid := uuid.MustParse("00112233-4455-6677-8899-aabbccddeeff")
	r := &Report{
		Path:   "/samples/App.yml",
		VMName: "VMRuntime",
		Outcome: &csvm.Outcome{
			Converted:       2,
			Warned:          1,
			Skipped:         1,
			ResourceRemoved: false,
			Catalog:         csvm.Catalogs()[0],
			Methods: []csvm.MethodOutcome{
				{Token: 0x06000001, GUID: guid, Name: "System.Void App.Program::Fill()", Restored: true},
				{Token: 0x06000002, Restored: true, Warnings: []string{"a", "b"}},
				{Token: 0x06000003, Skipped: true, Err: errors.New("malformed")},
			},
		},
	}
	m := ToModel(r, 3)
	assert.Equal(t, uint(3), m.RunID)
	assert.Equal(t, "App.yml", m.Name)
	assert.Equal(t, "csvm-v1 (1.0.0)", m.Catalog)
	assert.Equal(t, 2, m.Converted)
	assert.Equal(t, 1, m.Warned)
	assert.Equal(t, 1, m.Skipped)
	require.Len(t, m.Methods, 3)
	assert.Equal(t, guid.String(), m.Methods[0].GUID)
	assert.Equal(t, "a\nb", m.Methods[1].Warnings)
	assert.Equal(t, "malformed", m.Methods[2].Error)

	failed := ToModel(&Report{Path: "/samples/Broken.yml", Err: errors.New("boom")}, 3)
	assert.Equal(t, "boom", failed.Error)
	assert.Equal(t, "Broken.yml", failed.Name)
	assert.Empty(t, failed.Methods)
}

func TestSaveSink(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	sink := NewSaveSink(out)
	assert.True(t, sink.Enabled(&Config{}))
	assert.False(t, NewSaveSink("").Enabled(&Config{}))

	mod := snapshot.NewModule("App.exe", "/samples/App.yml")
	mod.Index()

	require.NoError(t, sink.Consume(context.Background(), &Report{Path: "/samples/Untouched.yml", Module: mod, Outcome: &csvm.Outcome{}}))
	_, err := os.Stat(OutputPath(out, "/samples/Untouched.yml"))
	assert.True(t, os.IsNotExist(err), "nothing restored, nothing written")

	require.NoError(t, sink.Consume(context.Background(), &Report{Path: "/samples/App.yml", Module: mod, Outcome: &csvm.Outcome{Converted: 1}}))
	path := OutputPath(out, "/samples/App.yml")
	assert.Equal(t, filepath.Join(out, "App.devirt.yml"), path)
	saved, err := snapshot.Open(path)
	require.NoError(t, err)
	assert.Equal(t, "App.exe", saved.Name())
}
