package csvm

import (
	"fmt"

	"github.com/hashicorp/go-version"

	"github.com/blacktop/devirt/pkg/cil"
)

// AnyCount is a count wildcard in a HandlerSignature.
const AnyCount = -1

const anyCount = AnyCount

// DecodeFunc reads the payload of one VM instruction.
type DecodeFunc func(r *Reader, res cil.TokenResolver, gp cil.GenericContext) (*cil.Instruction, error)

// HandlerSignature is the expected shape of the handler for one VM opcode.
type HandlerSignature struct {
	Name string
	// FieldTypes lists one type name per referenced field; EnumField matches any enum.
	FieldTypes []string
	// ExecuteLocals are local types the execute routine must declare.
	ExecuteLocals []string

	Static, Instance, Virtual, Ctors int
	Throws, Pops                     int

	// Check is an optional extra predicate over the handler.
	Check  func(*HandlerInfo) bool
	Decode DecodeFunc

	fields *FieldTypes
}

func (s *HandlerSignature) String() string { return s.Name }

func (s *HandlerSignature) fieldTypes() FieldTypes {
	if s.fields == nil {
		ft := NewFieldTypes(s.FieldTypes...)
		s.fields = &ft
	}
	return *s.fields
}

func countMatches(want, got int) bool {
	return want == AnyCount || want == got
}

// Matches reports whether the handler has the expected shape.
func (s *HandlerSignature) Matches(h *HandlerInfo) bool {
	if !countMatches(s.Static, h.Static) ||
		!countMatches(s.Instance, h.Instance) ||
		!countMatches(s.Virtual, h.Virtual) ||
		!countMatches(s.Ctors, h.Ctors) ||
		!countMatches(s.Throws, h.Throws) ||
		!countMatches(s.Pops, h.Pops) {
		return false
	}
	if !s.fieldTypes().Equal(h.Fields) {
		return false
	}
	for _, l := range s.ExecuteLocals {
		if !h.HasLocal(l) {
			return false
		}
	}
	if s.Check != nil {
		return s.Check(h)
	}
	return true
}

// Catalog is the ordered list of handler signatures of one VM build.
type Catalog struct {
	Name       string
	Version    *version.Version
	Signatures []*HandlerSignature
}

func (c *Catalog) String() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.Version)
}

func mustCatalog(name, ver string, sigs []*HandlerSignature) *Catalog {
	return &Catalog{
		Name:       name,
		Version:    version.Must(version.NewVersion(ver)),
		Signatures: sigs,
	}
}

var catalogs = []*Catalog{
	mustCatalog("csvm-v1", "1.0", catalogV1),
	mustCatalog("csvm-v1", "1.1", catalogV2),
	mustCatalog("csvm-v1", "1.2", catalogV3),
}

// Catalogs returns every shipped catalog in detection order.
func Catalogs() []*Catalog {
	return append([]*Catalog(nil), catalogs...)
}

// SelectCatalogs returns the shipped catalogs whose version satisfies the
// constraint, e.g. ">= 1.1". An empty constraint selects all of them.
func SelectCatalogs(constraint string) ([]*Catalog, error) {
	if constraint == "" {
		return Catalogs(), nil
	}
	cs, err := version.NewConstraint(constraint)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog constraint %q: %w", constraint, err)
	}
	var selected []*Catalog
	for _, c := range catalogs {
		if cs.Check(c.Version) {
			selected = append(selected, c)
		}
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("no catalog satisfies %q", constraint)
	}
	return selected, nil
}

const (
	resolveTypeMethod   = "System.Type System.Reflection.Module::ResolveType(System.Int32)"
	resolveMemberMethod = "System.Reflection.MemberInfo System.Reflection.Module::ResolveMember(System.Int32)"
	resolveMethodMethod = "System.Reflection.MethodBase System.Reflection.Module::ResolveMethod(System.Int32)"
	getMethodMethod     = "System.Reflection.MethodInfo System.Type::GetMethod(System.String,System.Reflection.BindingFlags)"
)

func checkNewarr(h *HandlerInfo) bool { return callsMethod(h.Execute, resolveTypeMethod) }

func checkEndfinally(h *HandlerInfo) bool { return callsMethod(h.Execute, getMethodMethod) }

func checkLdtoken(h *HandlerInfo) bool { return callsMethod(h.Execute, resolveMemberMethod) }

func checkLeave(h *HandlerInfo) bool {
	return !callsMethod(h.Execute, resolveMethodMethod) &&
		!callsMethod(h.Execute, resolveTypeMethod) &&
		!callsMethod(h.Execute, resolveMemberMethod)
}

func checkNop(h *HandlerInfo) bool { return isEmptyMethod(h.Read) && isEmptyMethod(h.Execute) }

func checkRet(h *HandlerInfo) bool { return callsMethod(h.Execute, resolveMethodMethod) }

func checkRethrow(h *HandlerInfo) bool {
	return h.Execute.Body == nil || len(h.Execute.Body.Locals) == 0
}

func checkThrow(h *HandlerInfo) bool { return !callsMethod(h.Execute, getMethodMethod) }
