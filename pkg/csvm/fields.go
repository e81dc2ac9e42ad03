package csvm

import (
	"fmt"
	"sort"
	"strings"

	"github.com/blacktop/devirt/pkg/cil"
)

// EnumField stands for "any enum type" in a signature's field list.
const EnumField = "<enum>"

// FieldTypes is a multiset of field type names. Enum typed fields are counted
// in a single bucket regardless of the enum.
type FieldTypes struct {
	counts map[string]int
	enums  int
}

// NewFieldTypes builds a multiset from type names; EnumField adds to the enum bucket.
func NewFieldTypes(names ...string) FieldTypes {
	f := FieldTypes{counts: make(map[string]int)}
	for _, n := range names {
		if n == EnumField {
			f.enums++
		} else {
			f.counts[n]++
		}
	}
	return f
}

func fieldTypesOf(fields []*cil.FieldDef) FieldTypes {
	f := FieldTypes{counts: make(map[string]int)}
	for _, field := range fields {
		if def := cil.TryGetTypeDef(field.Type); def != nil && def.IsEnum() {
			f.enums++
			continue
		}
		name := "<null>"
		if field.Type != nil {
			name = field.Type.FullName()
		}
		f.counts[name]++
	}
	return f
}

// Enums returns the number of enum typed fields.
func (f FieldTypes) Enums() int { return f.enums }

// Count returns how many fields have the given type.
func (f FieldTypes) Count(name string) int { return f.counts[name] }

// Equal reports whether both multisets hold the same types with the same counts.
func (f FieldTypes) Equal(o FieldTypes) bool {
	if f.enums != o.enums || len(f.counts) != len(o.counts) {
		return false
	}
	for k, v := range f.counts {
		if o.counts[k] != v {
			return false
		}
	}
	return true
}

// Names returns the type names, one per field, sorted. Enum fields appear as EnumField.
func (f FieldTypes) Names() []string {
	var names []string
	for k, v := range f.counts {
		for i := 0; i < v; i++ {
			names = append(names, k)
		}
	}
	for i := 0; i < f.enums; i++ {
		names = append(names, EnumField)
	}
	sort.Strings(names)
	return names
}

func (f FieldTypes) String() string {
	keys := make([]string, 0, len(f.counts))
	for k := range f.counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s×%d", k, f.counts[k]))
	}
	if f.enums > 0 {
		parts = append(parts, fmt.Sprintf("%s×%d", EnumField, f.enums))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// referencedFields returns the fields of t that at least one of its method
// bodies refers to, in declaration order.
func referencedFields(t *cil.TypeDef) []*cil.FieldDef {
	used := make(map[*cil.FieldDef]bool)
	for _, m := range t.Methods {
		if m.Body == nil {
			continue
		}
		for _, instr := range m.Body.Instructions {
			ref, ok := instr.Operand.(cil.IField)
			if !ok {
				continue
			}
			if fd := findOwnField(t, ref); fd != nil {
				used[fd] = true
			}
		}
	}
	var fields []*cil.FieldDef
	for _, f := range t.Fields {
		if used[f] {
			fields = append(fields, f)
		}
	}
	return fields
}

func findOwnField(t *cil.TypeDef, ref cil.IField) *cil.FieldDef {
	if fd, ok := ref.(*cil.FieldDef); ok {
		if fd.DeclaringType == t {
			return fd
		}
		return nil
	}
	owner := ref.Owner()
	if owner == nil || owner.FullName() != t.FullName() {
		return nil
	}
	for _, f := range t.Fields {
		if f.Name == ref.FieldName() && cil.TypeEqual(f.Type, ref.FieldType()) {
			return f
		}
	}
	return nil
}

// typeNameCounts counts the full names of the given field types.
func typeNameCounts(fields []*cil.FieldDef) map[string]int {
	counts := make(map[string]int)
	for _, f := range fields {
		if f.Type != nil {
			counts[f.Type.FullName()]++
		}
	}
	return counts
}

// exactly reports whether the distinct names in counts are exactly names.
func exactly(counts map[string]int, names ...string) bool {
	if len(counts) != len(names) {
		return false
	}
	for _, n := range names {
		if _, ok := counts[n]; !ok {
			return false
		}
	}
	return true
}
