// Package csvm recovers methods virtualized by the Agile.NET (CliSecure) CSVM.
//
// A protected module keeps the bodies of its virtualized methods in the _CSVM
// resource and calls into a runtime module that interprets them. The runtime's
// opcode handlers are classified against a catalog of known handler shapes, which
// gives the meaning of each VM opcode; every method is then decoded and rebuilt
// as plain CIL.
package csvm

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/apex/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/blacktop/devirt/pkg/cil"
)

const runMethod = "System.Object VMRuntime.Libraries.CSVMRuntime::RunMethod(System.String,System.Object[])"

// LoadFunc loads the VM runtime module at path.
type LoadFunc func(path string) (cil.ModuleView, error)

// Options configure Restore.
type Options struct {
	// Catalogs are tried in order; nil means every shipped catalog.
	Catalogs []*Catalog
	// Strict leaves methods with unrestored operands untouched.
	Strict bool
	// KeepResource keeps the _CSVM resource even if every method was restored.
	KeepResource bool
	Load         LoadFunc
	// Cache is shared between modules of one session; nil uses a private cache.
	Cache *Cache
}

// MethodOutcome is the result for one virtualized method.
type MethodOutcome struct {
	Token    uint32
	GUID     uuid.UUID
	Name     string
	Restored bool
	Skipped  bool
	Warnings []string
	Err      error
}

// Outcome summarizes Restore.
type Outcome struct {
	Converted int
	Warned    int
	Skipped   int
	Methods   []MethodOutcome
	// Catalog is the catalog version the runtime was classified against.
	Catalog *Catalog
	// ResourceRemoved tells whether the _CSVM resource was dropped from the module.
	ResourceRemoved bool
}

// Csvm is the VM protection found in a module.
type Csvm struct {
	module   cil.ModuleView
	resource []byte
	vmName   string
}

// Find looks for the VM resource and the runtime entry point in mod.
func Find(mod cil.ModuleView) *Csvm {
	c := &Csvm{module: mod}
	if data, ok := mod.Resource(ResourceName); ok {
		c.resource = data
	}
	for _, ref := range mod.MethodRefs() {
		if ref.Name != "RunMethod" || ref.Sig == nil || len(ref.Sig.Params) != 2 {
			continue
		}
		if ref.FullName() != runMethod {
			continue
		}
		if tr, ok := ref.Class.(*cil.TypeRef); ok && tr.Scope != "" {
			c.vmName = tr.Scope
			break
		}
	}
	return c
}

// Detected reports whether the module is protected by the VM.
func (c *Csvm) Detected() bool {
	return c.resource != nil && c.vmName != ""
}

// VMName is the assembly name of the VM runtime.
func (c *Csvm) VMName() string { return c.vmName }

// VMModulePath is where the VM runtime is expected: next to the protected module.
func (c *Csvm) VMModulePath() string {
	return filepath.Join(filepath.Dir(c.module.Location()), c.vmName+".dll")
}

// Methods parses the VM method table.
func (c *Csvm) Methods() ([]*MethodData, error) {
	if !c.Detected() {
		return nil, nil
	}
	return ReadMethods(c.resource)
}

// OpCodeTable classifies the VM runtime's handlers, loading the runtime on first use.
func (c *Csvm) OpCodeTable(opts Options) (*OpCodeTable, error) {
	if opts.Load == nil {
		return nil, fmt.Errorf("no loader for VM module %s", c.VMModulePath())
	}
	cache := opts.Cache
	if cache == nil {
		cache = NewCache()
	}
	catalogs := opts.Catalogs
	if catalogs == nil {
		catalogs = Catalogs()
	}
	path := c.VMModulePath()
	return cache.Get(path, func() (*OpCodeTable, error) {
		log.WithField("file", filepath.Base(path)).Debug("Loading CSVM runtime")
		vm, err := opts.Load(path)
		if err != nil {
			return nil, &DetectionError{Msg: "failed to load VM module " + path, Err: err}
		}
		return Detect(vm, catalogs)
	})
}

// Restore rebuilds every virtualized method of the module. Per-method failures
// are recorded in the outcome; only a failure to classify the VM runtime or to
// read the method table is returned as an error.
func (c *Csvm) Restore(ctx context.Context, opts Options) (*Outcome, error) {
	out := &Outcome{}
	if !c.Detected() {
		return out, nil
	}
	log.WithField("vm", c.vmName).Info("Restoring CSVM methods")

	table, err := c.OpCodeTable(opts)
	if err != nil {
		return nil, err
	}
	out.Catalog = table.Catalog()

	methods, err := c.Methods()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read CSVM method table")
	}

	conv := NewConverter(c.module, table)
	conv.Strict = opts.Strict
	for _, data := range methods {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		mo := c.restoreMethod(conv, data)
		switch {
		case mo.Skipped:
			out.Skipped++
		case !mo.Restored || len(mo.Warnings) > 0:
			out.Warned++
			out.Converted++
		default:
			out.Converted++
		}
		out.Methods = append(out.Methods, mo)
	}

	if out.Skipped == 0 && !opts.KeepResource {
		if rm, ok := c.module.(cil.ResourceRemover); ok {
			out.ResourceRemoved = rm.RemoveResource(ResourceName)
		}
	}
	return out, nil
}

func (c *Csvm) restoreMethod(conv *Converter, data *MethodData) MethodOutcome {
	mo := MethodOutcome{Token: data.Token, GUID: data.GUID}
	member, err := c.module.ResolveToken(data.Token, cil.GenericContext{})
	if err != nil {
		mo.Skipped, mo.Err = true, err
		log.WithError(err).Errorf("Could not find method %08X", data.Token)
		return mo
	}
	method, ok := member.(*cil.MethodDef)
	if !ok {
		mo.Skipped = true
		mo.Err = &cil.UnresolvedTokenError{Token: data.Token, Want: "method definition"}
		log.WithError(mo.Err).Errorf("Could not find method %08X", data.Token)
		return mo
	}
	mo.Name = method.FullName()

	res, err := conv.Convert(method, data)
	if err != nil {
		mo.Skipped, mo.Err = true, err
		log.WithError(err).Errorf("Failed to restore method %08X", data.Token)
		return mo
	}
	mo.Restored = res.Restored
	mo.Warnings = res.Warnings
	if !res.Committed {
		mo.Skipped = true
		return mo
	}
	log.Debugf("Restored method %08X", method.Token)
	dumpMethod(method)
	return mo
}

func dumpMethod(method *cil.MethodDef) {
	if l, ok := log.Log.(*log.Logger); ok && l.Level > log.DebugLevel {
		return
	}
	log.Debug("Locals:")
	for i, l := range method.Body.Locals {
		name := "<null>"
		if l.Type != nil {
			name = l.Type.FullName()
		}
		log.Debugf("  #%d: %s", i, name)
	}
	log.Debug("Code:")
	for _, instr := range method.Body.Instructions {
		log.Debugf("  %s", instr)
	}
}
