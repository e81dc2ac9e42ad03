package db

import (
	"encoding/gob"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/blacktop/devirt/internal/model"
	"github.com/pkg/errors"
)

// Memory is a database that stores data in memory. With a Path the data is
// loaded on Connect and written back on Close.
type Memory struct {
	Runs    map[uint]*model.Run
	Modules map[uint]*model.Module
	Path    string

	mu     sync.Mutex
	nextID uint
}

type memoryFile struct {
	Runs    map[uint]*model.Run
	Modules map[uint]*model.Module
}

// NewInMemory creates a new in-memory database.
func NewInMemory(path string) (Database, error) {
	return &Memory{
		Runs:    make(map[uint]*model.Run),
		Modules: make(map[uint]*model.Module),
		Path:    path,
	}, nil
}

// Connect loads the database file, if there is one.
func (m *Memory) Connect() error {
	if m.Path == "" {
		return nil
	}
	f, err := os.Open(m.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()
	var mf memoryFile
	if err := gob.NewDecoder(f).Decode(&mf); err != nil {
		return errors.Wrapf(err, "failed to decode %s", m.Path)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if mf.Runs != nil {
		m.Runs = mf.Runs
	}
	if mf.Modules != nil {
		m.Modules = mf.Modules
	}
	for id := range m.Runs {
		m.nextID = max(m.nextID, id)
	}
	for id, mod := range m.Modules {
		m.nextID = max(m.nextID, id)
		for _, meth := range mod.Methods {
			m.nextID = max(m.nextID, meth.ID)
		}
	}
	return nil
}

func (m *Memory) id() uint {
	m.nextID++
	return m.nextID
}

// CreateRun records a new run.
func (m *Memory) CreateRun(r *model.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = m.id()
	r.CreatedAt = time.Now()
	m.Runs[r.ID] = r
	return nil
}

// FinishRun stores the run's end time.
func (m *Memory) FinishRun(r *model.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.Runs[r.ID]
	if !ok {
		return model.ErrNotFound
	}
	stored.Finished = r.Finished
	return nil
}

// Create stores a module report and its methods.
func (m *Memory) Create(mod *model.Module) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	mod.ID = m.id()
	mod.CreatedAt = time.Now()
	for i := range mod.Methods {
		mod.Methods[i].ID = m.id()
		mod.Methods[i].ModuleID = mod.ID
	}
	m.Modules[mod.ID] = mod
	return nil
}

// Get returns the module report with the given ID.
// It returns model.ErrNotFound if the key does not exist.
func (m *Memory) Get(id uint) (*model.Module, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mod, ok := m.Modules[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return mod, nil
}

// List returns the module reports of a run.
func (m *Memory) List(runID uint) ([]*model.Module, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var mods []*model.Module
	for _, mod := range m.Modules {
		if mod.RunID == runID {
			mods = append(mods, mod)
		}
	}
	sort.Slice(mods, func(i, j int) bool { return mods[i].ID < mods[j].ID })
	return mods, nil
}

// Close writes the database file, if there is one.
func (m *Memory) Close() error {
	if m.Path == "" {
		return nil
	}
	f, err := os.Create(m.Path)
	if err != nil {
		return err
	}
	defer f.Close()
	m.mu.Lock()
	defer m.mu.Unlock()
	return gob.NewEncoder(f).Encode(memoryFile{Runs: m.Runs, Modules: m.Modules})
}
