package snapshot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/blacktop/devirt/pkg/cil"
)

// ParseInstructions parses instruction lines of the form "opcode [operand]".
//
// Operands are written as:
//
//	branch targets    @index
//	switch targets    @index,@index,...
//	locals, args      index
//	members           0x0A000001, Owner::name or Owner::Name(ParamType,...)
//	types             a type name or a token
//	strings           a Go quoted string
func ParseInstructions(m *Module, method *cil.MethodDef, locals []*cil.Local, lines []string) ([]*cil.Instruction, error) {
	instrs := make([]*cil.Instruction, len(lines))
	operands := make([]string, len(lines))
	for i, line := range lines {
		line = strings.TrimSpace(line)
		name, operand, _ := strings.Cut(line, " ")
		op, ok := cil.LookupOpCode(name)
		if !ok {
			return nil, errors.Errorf("line %d: unknown opcode %q", i, name)
		}
		instrs[i] = cil.NewInstruction(op, nil)
		operands[i] = strings.TrimSpace(operand)
	}
	for i, instr := range instrs {
		v, err := parseOperand(m, method, locals, instrs, instr.OpCode, operands[i])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d (%s)", i, instr.OpCode.Name)
		}
		instr.Operand = v
	}
	return instrs, nil
}

func isArgOp(op *cil.OpCode) bool {
	return strings.Contains(op.Name, "arg")
}

func parseOperand(m *Module, method *cil.MethodDef, locals []*cil.Local, instrs []*cil.Instruction, op *cil.OpCode, s string) (any, error) {
	if op.Operand == cil.InlineNone {
		if s != "" {
			return nil, errors.Errorf("unexpected operand %q", s)
		}
		return nil, nil
	}
	if s == "" {
		return nil, errors.New("missing operand")
	}
	target := func(s string) (*cil.Instruction, error) {
		s = strings.TrimSpace(s)
		if !strings.HasPrefix(s, "@") {
			return nil, errors.Errorf("branch target %q must be @index", s)
		}
		n, err := strconv.Atoi(s[1:])
		if err != nil || n < 0 || n >= len(instrs) {
			return nil, errors.Errorf("branch target %q out of range", s)
		}
		return instrs[n], nil
	}

	switch op.Operand {
	case cil.InlineBrTarget, cil.InlineShortBrTarget:
		return target(s)
	case cil.InlineSwitch:
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
		var targets []*cil.Instruction
		for _, part := range strings.Split(s, ",") {
			t, err := target(part)
			if err != nil {
				return nil, err
			}
			targets = append(targets, t)
		}
		return targets, nil
	case cil.InlineVar, cil.InlineShortVar:
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, errors.Errorf("bad variable index %q", s)
		}
		if isArgOp(op) {
			params := method.Parameters()
			if n < 0 || n >= len(params) {
				return nil, errors.Errorf("argument %d out of range", n)
			}
			return params[n], nil
		}
		if n < 0 || n >= len(locals) {
			return nil, errors.Errorf("local %d out of range", n)
		}
		return locals[n], nil
	case cil.InlineShortI:
		if op == cil.LdcI4S {
			v, err := strconv.ParseInt(s, 0, 8)
			return int8(v), err
		}
		v, err := strconv.ParseUint(s, 0, 8)
		return uint8(v), err
	case cil.InlineI:
		v, err := strconv.ParseInt(s, 0, 32)
		return int32(v), err
	case cil.InlineI8:
		v, err := strconv.ParseInt(s, 0, 64)
		return v, err
	case cil.InlineShortR:
		v, err := strconv.ParseFloat(s, 32)
		return float32(v), err
	case cil.InlineR:
		return strconv.ParseFloat(s, 64)
	case cil.InlineString:
		return strconv.Unquote(s)
	case cil.InlineMethod:
		return m.parseMethod(s, method)
	case cil.InlineField:
		return m.parseField(s, method)
	case cil.InlineType:
		return m.parseTypeOperand(s, method)
	case cil.InlineTok:
		switch {
		case strings.HasPrefix(s, "0x"):
			return m.ResolveToken(parseToken(s), cil.GenericContextOf(method))
		case strings.Contains(s, "::") && strings.HasSuffix(s, ")"):
			return m.parseMethod(s, method)
		case strings.Contains(s, "::"):
			return m.parseField(s, method)
		}
		return m.parseTypeOperand(s, method)
	}
	return nil, errors.Errorf("operand type %d is not supported", op.Operand)
}

func parseToken(s string) uint32 {
	v, _ := strconv.ParseUint(s, 0, 32)
	return uint32(v)
}

func (m *Module) parseMethod(s string, method *cil.MethodDef) (cil.IMethod, error) {
	if strings.HasPrefix(s, "0x") {
		return cil.ResolveMethodToken(m, parseToken(s), cil.GenericContextOf(method))
	}
	owner, rest, ok := strings.Cut(s, "::")
	if !ok {
		return nil, errors.Errorf("method %q must be Owner::Name", s)
	}
	name, params := rest, ""
	if i := strings.IndexByte(rest, '('); i >= 0 {
		name, params = rest[:i], rest[i:]
	}
	return m.FindMethod(owner, name, params)
}

func (m *Module) parseField(s string, method *cil.MethodDef) (cil.IField, error) {
	if strings.HasPrefix(s, "0x") {
		return cil.ResolveFieldToken(m, parseToken(s), cil.GenericContextOf(method))
	}
	owner, name, ok := strings.Cut(s, "::")
	if !ok {
		return nil, errors.Errorf("field %q must be Owner::name", s)
	}
	return m.FindField(owner, name)
}

func (m *Module) parseTypeOperand(s string, method *cil.MethodDef) (cil.TypeDefOrRef, error) {
	if strings.HasPrefix(s, "0x") {
		return cil.ResolveTypeToken(m, parseToken(s), cil.GenericContextOf(method))
	}
	return m.ParseTypeDefOrRef(s)
}

// FormatInstruction renders an instruction in the form ParseInstructions reads.
func FormatInstruction(instr *cil.Instruction, body *cil.Body) (string, error) {
	if instr.OpCode == nil {
		return "", errors.New("instruction has no opcode")
	}
	if instr.Operand == nil {
		return instr.OpCode.Name, nil
	}
	operand, err := formatOperand(instr.Operand, body)
	if err != nil {
		return "", errors.Wrap(err, instr.OpCode.Name)
	}
	return instr.OpCode.Name + " " + operand, nil
}

func formatOperand(operand any, body *cil.Body) (string, error) {
	target := func(t *cil.Instruction) (string, error) {
		i := body.IndexOf(t)
		if i < 0 {
			return "", errors.New("branch target is not in the body")
		}
		return "@" + strconv.Itoa(i), nil
	}
	switch v := operand.(type) {
	case *cil.Instruction:
		return target(v)
	case []*cil.Instruction:
		parts := make([]string, 0, len(v))
		for _, t := range v {
			s, err := target(t)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ","), nil
	case *cil.Local:
		return strconv.Itoa(v.Index), nil
	case *cil.Parameter:
		return strconv.Itoa(v.Index), nil
	case int8, uint8, int32, int64:
		return fmt.Sprintf("%d", v), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case string:
		return strconv.Quote(v), nil
	case cil.IMethod:
		return memberOwner(v.Owner()) + "::" + v.MethodName() + v.Signature().ParamsString(), nil
	case cil.IField:
		return memberOwner(v.Owner()) + "::" + v.FieldName(), nil
	case cil.TypeDefOrRef:
		return v.FullName(), nil
	}
	return "", errors.Errorf("cannot write operand of type %T", operand)
}

func memberOwner(t cil.TypeDefOrRef) string {
	if t == nil {
		return "<Module>"
	}
	return t.FullName()
}
