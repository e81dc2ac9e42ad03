package csvm

import (
	"fmt"

	"github.com/blacktop/devirt/pkg/cil"
)

// Operand is a symbolic operand left by the decoder for the converter to resolve.
// The set of implementations is closed.
type Operand interface {
	vmOperand()
}

// BranchDisplacement is a branch target relative to the branching instruction,
// counted in VM instructions.
type BranchDisplacement int32

// SwitchDisplacements are the targets of a switch, relative like BranchDisplacement.
type SwitchDisplacements []int32

// LocalIndex refers to a local variable.
type LocalIndex uint16

// ArgIndex refers to a method parameter, including the hidden 'this'.
type ArgIndex uint16

// DeferredField is a field access whose opcode depends on whether the field is static.
type DeferredField struct {
	Field    cil.IField
	Static   *cil.OpCode
	Instance *cil.OpCode
}

func (BranchDisplacement) vmOperand()  {}
func (SwitchDisplacements) vmOperand() {}
func (LocalIndex) vmOperand()          {}
func (ArgIndex) vmOperand()            {}
func (*DeferredField) vmOperand()      {}

func (d BranchDisplacement) String() string { return fmt.Sprintf("displ(%+d)", int32(d)) }
func (s SwitchDisplacements) String() string {
	return fmt.Sprintf("displs%v", []int32(s))
}
func (l LocalIndex) String() string { return fmt.Sprintf("local(%d)", uint16(l)) }
func (a ArgIndex) String() string   { return fmt.Sprintf("arg(%d)", uint16(a)) }
func (f *DeferredField) String() string {
	name := "<nil>"
	if f.Field != nil {
		name = f.Field.FullName()
	}
	return fmt.Sprintf("%s/%s %s", f.Static.Name, f.Instance.Name, name)
}
