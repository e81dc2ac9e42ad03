package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blacktop/devirt/internal/model"
)

func report(runID uint, path string) *model.Module {
	return &model.Module{
		RunID:     runID,
		Path:      path,
		Name:      filepath.Base(path),
		VMName:    "VMRuntime",
		Catalog:   "csvm-v1 1.0",
		Converted: 2,
		Warned:    1,
		Methods: []model.Method{
			{Token: 0x06000001, GUID: "00112233-4455-6677-8899-aabbccddeeff", Restored: true},
			{Token: 0x06000002, Warnings: "Could not resolve field 0A000002. Assuming it's not static."},
		},
	}
}

func exercise(t *testing.T, d Database) {
	t.Helper()
	run := &model.Run{Constraint: ">= 1.0", Started: time.Now()}
	require.NoError(t, d.CreateRun(run))
	require.NotZero(t, run.ID)

	first := report(run.ID, "/samples/App.yml")
	second := report(run.ID, "/samples/Other.yml")
	require.NoError(t, d.Create(first))
	require.NoError(t, d.Create(second))
	other := &model.Run{Started: time.Now()}
	require.NoError(t, d.CreateRun(other))
	require.NoError(t, d.Create(report(other.ID, "/samples/Elsewhere.yml")))
	assert.NotZero(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	got, err := d.Get(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "App.yml", got.Name)
	require.Len(t, got.Methods, 2)
	assert.Equal(t, uint32(0x06000001), got.Methods[0].Token)
	assert.Equal(t, []string{"Could not resolve field 0A000002. Assuming it's not static."}, got.Methods[1].WarningList())
	assert.Nil(t, got.Methods[0].WarningList())

	_, err = d.Get(9999)
	assert.ErrorIs(t, err, model.ErrNotFound)

	mods, err := d.List(run.ID)
	require.NoError(t, err)
	require.Len(t, mods, 2)
	assert.Equal(t, "/samples/App.yml", mods[0].Path)
	assert.Equal(t, "/samples/Other.yml", mods[1].Path)

	run.Finished = time.Now()
	assert.NoError(t, d.FinishRun(run))
}

func TestMemory(t *testing.T) {
	d, err := NewInMemory("")
	require.NoError(t, err)
	require.NoError(t, d.Connect())
	exercise(t, d)
	assert.NoError(t, d.Close())
}

func TestMemoryPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.gob")
	d, err := NewInMemory(path)
	require.NoError(t, err)
	require.NoError(t, d.Connect(), "a missing file starts empty")
	mod := report(1, "/samples/App.yml")
	require.NoError(t, d.Create(mod))
	require.NoError(t, d.Close())

	reopened, err := NewInMemory(path)
	require.NoError(t, err)
	require.NoError(t, reopened.Connect())
	got, err := reopened.Get(mod.ID)
	require.NoError(t, err)
	assert.Equal(t, "App.yml", got.Name)
	assert.Len(t, got.Methods, 2)

	next := report(1, "/samples/Next.yml")
	require.NoError(t, reopened.Create(next))
	assert.Greater(t, next.ID, got.Methods[1].ID, "IDs continue after the loaded ones")
}

func TestSqlite(t *testing.T) {
	d, err := NewSqlite(filepath.Join(t.TempDir(), "devirt.db"), 100)
	require.NoError(t, err)
	require.NoError(t, d.Connect())
	defer d.Close()
	exercise(t, d)
}

func TestNewSqliteNeedsPath(t *testing.T) {
	_, err := NewSqlite("", 0)
	assert.Error(t, err)
}

func TestNewPostgres(t *testing.T) {
	_, err := NewPostgres("localhost", "5432", "", "", "devirt")
	assert.Error(t, err)

	d, err := NewPostgres("localhost", "5432", "devirt", "secret", "reports")
	require.NoError(t, err)
	assert.Equal(t, "host=localhost port=5432 user=devirt dbname=reports password=secret sslmode=disable", d.(*Postgres).dsn())
}
