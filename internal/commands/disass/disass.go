// Package disass restores single virtualized methods and renders their listings.
package disass

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/aymanbagabas/go-udiff"
	"github.com/fatih/color"

	"github.com/blacktop/devirt/internal/colors"
	"github.com/blacktop/devirt/pkg/cil"
	"github.com/blacktop/devirt/pkg/cil/snapshot"
	"github.com/blacktop/devirt/pkg/csvm"
)

type Config struct {
	Token    uint32
	Catalogs []*csvm.Catalog
	Strict   bool
	// Runtime overrides the VM runtime module path.
	Runtime string
	Color   bool
}

// Method is one restored method together with its listing before conversion.
type Method struct {
	Data   *csvm.MethodData
	Method *cil.MethodDef
	Table  *csvm.OpCodeTable
	Stub   string
	Result *csvm.Result
}

// Restore converts the virtualized method cfg.Token of mod in place.
func Restore(mod *snapshot.Module, cfg *Config) (*Method, error) {
	vm := csvm.Find(mod)
	if !vm.Detected() {
		return nil, fmt.Errorf("%s is not protected by the CSVM", mod.Name())
	}

	loader, err := snapshot.NewLoader(1)
	if err != nil {
		return nil, err
	}
	table, err := vm.OpCodeTable(csvm.Options{
		Catalogs: cfg.Catalogs,
		Load: func(path string) (cil.ModuleView, error) {
			if cfg.Runtime != "" {
				path = cfg.Runtime
			}
			log.WithField("runtime", filepath.Base(path)).Debug("Loading VM runtime")
			return loader.Load(path)
		},
	})
	if err != nil {
		return nil, err
	}

	methods, err := vm.Methods()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSVM method table: %w", err)
	}
	var data *csvm.MethodData
	for _, m := range methods {
		if m.Token == cfg.Token {
			data = m
			break
		}
	}
	if data == nil {
		return nil, fmt.Errorf("method %08X is not virtualized", cfg.Token)
	}

	member, err := mod.ResolveToken(cfg.Token, cil.GenericContext{})
	if err != nil {
		return nil, err
	}
	def, ok := member.(*cil.MethodDef)
	if !ok {
		return nil, &cil.UnresolvedTokenError{Token: cfg.Token, Want: "method definition"}
	}

	m := &Method{Data: data, Method: def, Table: table, Stub: Listing(def, false)}
	conv := csvm.NewConverter(mod, table)
	conv.Strict = cfg.Strict
	if m.Result, err = conv.Convert(def, data); err != nil {
		return nil, fmt.Errorf("failed to restore method %08X: %w", cfg.Token, err)
	}
	return m, nil
}

// Listing renders a method body. With colored false no escape codes are emitted
// regardless of the terminal.
func Listing(m *cil.MethodDef, colored bool) string {
	paint := func(c *color.Color, s string) string {
		if !colored {
			return s
		}
		return c.Sprint(s)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", paint(colors.Comment(), fmt.Sprintf("// %08X", m.Token)), paint(colors.Header(), m.FullName()))
	if m.Body == nil {
		sb.WriteString(paint(colors.Comment(), "// no body") + "\n")
		return sb.String()
	}
	fmt.Fprintf(&sb, "  .maxstack %d\n", m.Body.MaxStack)
	if len(m.Body.Locals) > 0 {
		sb.WriteString("  .locals (\n")
		for _, l := range m.Body.Locals {
			typ := "<null>"
			if l.Type != nil {
				typ = l.Type.FullName()
			}
			fmt.Fprintf(&sb, "    [%d] %s %s\n", l.Index, paint(colors.Type(), typ), l)
		}
		sb.WriteString("  )\n")
	}
	for _, instr := range m.Body.Instructions {
		sb.WriteString("  " + paint(colors.Label(), instr.Label()) + ": ")
		if instr.OpCode == nil {
			sb.WriteString(paint(colors.Failure(), "???"))
		} else if instr.OpCode.IsBranch() {
			sb.WriteString(paint(colors.Branch(), instr.OpCode.Name))
		} else {
			sb.WriteString(paint(colors.OpCode(), instr.OpCode.Name))
		}
		if instr.Operand != nil {
			sb.WriteString(" " + paintOperand(paint, instr.Operand))
		}
		sb.WriteString("\n")
	}
	for _, eh := range m.Body.ExceptionHandlers {
		sb.WriteString("  " + paint(colors.Comment(), exceptionHandler(eh)) + "\n")
	}
	return sb.String()
}

func paintOperand(paint func(*color.Color, string) string, operand any) string {
	s := cil.FormatOperand(operand)
	switch operand.(type) {
	case string, int8, uint8, int32, int64, float32, float64:
		return paint(colors.Literal(), s)
	case *cil.Instruction, []*cil.Instruction:
		return paint(colors.Label(), s)
	case cil.TypeDefOrRef:
		return paint(colors.Type(), s)
	default:
		return paint(colors.Operand(), s)
	}
}

func label(instr *cil.Instruction) string {
	if instr == nil {
		return "<end>"
	}
	return instr.Label()
}

func exceptionHandler(eh *cil.ExceptionHandler) string {
	s := fmt.Sprintf(".try %s to %s %s", label(eh.TryStart), label(eh.TryEnd), eh.Kind)
	switch eh.Kind {
	case cil.HandlerCatch:
		if eh.CatchType != nil {
			s += " " + eh.CatchType.FullName()
		}
	case cil.HandlerFilter:
		s += " " + label(eh.FilterStart)
	}
	return s + fmt.Sprintf(" handler %s to %s", label(eh.HandlerStart), label(eh.HandlerEnd))
}

// Diff returns the unified diff of two listings of the method name.
func Diff(name, before, after string, colored bool) string {
	d := udiff.Unified(name+" (stub)", name+" (restored)", before, after)
	if !colored || d == "" {
		return d
	}
	lines := strings.SplitAfter(d, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			lines[i] = colors.Header().Sprint(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = colors.Added().Sprint(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = colors.Removed().Sprint(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = colors.Comment().Sprint(line)
		}
	}
	return strings.Join(lines, "")
}

// DOT writes the control flow graph of the method in Graphviz DOT format.
func DOT(w io.Writer, m *cil.MethodDef) error {
	if m.Body == nil {
		return fmt.Errorf("method %08X has no body", m.Token)
	}
	return cil.WriteDOT(w, m.Body)
}
