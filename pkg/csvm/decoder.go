package csvm

import (
	"github.com/blacktop/devirt/pkg/cil"
)

// deferredFieldSize is the space reserved for a field access whose final opcode
// is not known yet. Every field opcode is one byte plus a token.
const deferredFieldSize = 5

// Decoder turns a VM instruction stream into CIL instructions with symbolic operands.
type Decoder struct {
	table    *OpCodeTable
	resolver cil.TokenResolver
}

// NewDecoder returns a decoder for the given opcode table.
func NewDecoder(table *OpCodeTable, resolver cil.TokenResolver) *Decoder {
	return &Decoder{table: table, resolver: resolver}
}

// Decode reads instructions until code is exhausted. Offsets are running byte
// offsets of the CIL the instructions will become.
func (d *Decoder) Decode(code []byte, gp cil.GenericContext) ([]*cil.Instruction, error) {
	r := NewReader(code)
	var (
		instrs []*cil.Instruction
		offset uint32
	)
	for r.Len() > 0 {
		index, err := r.ReadUint16()
		if err != nil {
			return nil, malformed("instruction", err)
		}
		h, err := d.table.Handler(index)
		if err != nil {
			return nil, err
		}
		instr, err := h.Decode(r, d.resolver, gp)
		if err != nil {
			return nil, decodeError(h.Name, len(instrs), err)
		}
		instr.Offset = offset
		offset += uint32(decodedSize(instr))
		instrs = append(instrs, instr)
	}
	return instrs, nil
}

func decodeError(name string, index int, err error) error {
	switch err.(type) {
	case *MalformedError, *cil.UnresolvedTokenError:
		return err
	}
	return malformedf("instruction", "#%d (%s): %w", index, name, err)
}

func decodedSize(instr *cil.Instruction) int {
	if instr.OpCode == nil {
		return deferredFieldSize
	}
	if instr.OpCode == cil.Switch {
		n := 0
		if displs, ok := instr.Operand.(SwitchDisplacements); ok {
			n = len(displs)
		}
		return instr.OpCode.Size() + (n+1)*4
	}
	return instr.Size()
}
