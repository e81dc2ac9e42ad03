// Package vm inspects the CSVM runtime and method table of a module.
package vm

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/blacktop/devirt/pkg/cil"
	"github.com/blacktop/devirt/pkg/cil/snapshot"
	"github.com/blacktop/devirt/pkg/csvm"
)

// Handler is one row of the opcode table.
type Handler struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Digest      string `json:"digest,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

// Table is a classified opcode table.
type Table struct {
	Module   string    `json:"module"`
	Catalog  string    `json:"catalog"`
	Handlers []Handler `json:"handlers"`
}

// Describe turns an opcode table into printable rows.
func Describe(module string, t *csvm.OpCodeTable) *Table {
	out := &Table{Module: module}
	if c := t.Catalog(); c != nil {
		out.Catalog = c.String()
	}
	for i, name := range t.Names() {
		h := Handler{Index: i, Name: name}
		if info := t.Info(uint16(i)); info != nil {
			h.Type = info.Type.FullName()
			h.Digest = fmt.Sprintf("%016x", info.Digest())
			h.Fingerprint = info.Fingerprint.String()
		}
		out.Handlers = append(out.Handlers, h)
	}
	return out
}

// String renders the table as "%04X: name" lines.
func (t *Table) String() string {
	var sb strings.Builder
	for _, h := range t.Handlers {
		fmt.Fprintf(&sb, "%04X: %s", h.Index, h.Name)
		if h.Digest != "" {
			fmt.Fprintf(&sb, " (%s %s)", h.Type, h.Digest)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Detect classifies the handlers of mod. mod may be the VM runtime itself or a
// protected module, in which case the runtime is loaded with load.
func Detect(mod *snapshot.Module, catalogs []*csvm.Catalog, load csvm.LoadFunc) (*Table, error) {
	if vm := csvm.Find(mod); vm.Detected() {
		t, err := vm.OpCodeTable(csvm.Options{Catalogs: catalogs, Load: load})
		if err != nil {
			return nil, err
		}
		return Describe(vm.VMName(), t), nil
	}
	if catalogs == nil {
		catalogs = csvm.Catalogs()
	}
	t, err := csvm.Detect(mod, catalogs)
	if err != nil {
		return nil, err
	}
	return Describe(mod.Name(), t), nil
}

// Method is one row of the VM method table.
type Method struct {
	GUID         string `json:"guid"`
	Token        string `json:"token"`
	Name         string `json:"name,omitempty"`
	Locals       int    `json:"locals"`
	Instructions int    `json:"instructions"`
	Exceptions   int    `json:"exceptions"`
}

// Methods lists the virtualized methods of a protected module.
func Methods(mod *snapshot.Module) ([]Method, error) {
	vm := csvm.Find(mod)
	if !vm.Detected() {
		return nil, fmt.Errorf("%s is not protected by the CSVM", mod.Name())
	}
	data, err := vm.Methods()
	if err != nil {
		return nil, err
	}
	out := make([]Method, 0, len(data))
	for _, d := range data {
		m := Method{
			GUID:         d.GUID.String(),
			Token:        fmt.Sprintf("%08X", d.Token),
			Locals:       len(d.Locals),
			Instructions: len(d.Instructions),
			Exceptions:   len(d.Exceptions),
		}
		if member, err := mod.ResolveToken(d.Token, cil.GenericContext{}); err == nil {
			m.Name = member.FullName()
		}
		out = append(out, m)
	}
	return out, nil
}

// Row formats a method for a table.
func (m Method) Row() []string {
	name := m.Name
	if name == "" {
		name = "?"
	}
	return []string{
		m.Token,
		m.GUID,
		name,
		humanize.Bytes(uint64(m.Locals)),
		humanize.Bytes(uint64(m.Instructions)),
		humanize.Bytes(uint64(m.Exceptions)),
	}
}
