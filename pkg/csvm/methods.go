package csvm

import (
	"github.com/google/uuid"
)

// ResourceName is the embedded resource holding the VM method table.
const ResourceName = "_CSVM"

// MethodData is one virtualized method as stored in the method table.
type MethodData struct {
	GUID         uuid.UUID
	Token        uint32
	Locals       []byte
	Instructions []byte
	Exceptions   []byte
}

// guidFromNET converts the .NET in-memory GUID layout (first three groups little endian).
func guidFromNET(b []byte) uuid.UUID {
	var u uuid.UUID
	copy(u[:], b)
	u[0], u[1], u[2], u[3] = b[3], b[2], b[1], b[0]
	u[4], u[5] = b[5], b[4]
	u[6], u[7] = b[7], b[6]
	return u
}

func guidToNET(u uuid.UUID) []byte {
	b := make([]byte, 16)
	copy(b, u[:])
	b[0], b[1], b[2], b[3] = u[3], u[2], u[1], u[0]
	b[4], b[5] = u[5], u[4]
	b[6], b[7] = u[7], u[6]
	return b
}

// ReadMethods parses the VM method table.
func ReadMethods(data []byte) ([]*MethodData, error) {
	r := NewReader(data)
	count, err := r.ReadInt32()
	if err != nil {
		return nil, malformed("method table", err)
	}
	if count < 0 {
		return nil, malformedf("method table", "negative method count %d", count)
	}
	methods := make([]*MethodData, 0, min(int(count), 1024))
	for i := 0; i < int(count); i++ {
		m, err := readMethod(r)
		if err != nil {
			return nil, malformedf("method table", "method #%d: %w", i, err)
		}
		methods = append(methods, m)
	}
	return methods, nil
}

func readMethod(r *Reader) (*MethodData, error) {
	var (
		m   MethodData
		err error
	)
	guid, err := r.ReadBytes(16)
	if err != nil {
		return nil, err
	}
	m.GUID = guidFromNET(guid)
	if m.Token, err = r.ReadUint32(); err != nil {
		return nil, err
	}
	if m.Locals, err = r.ReadBlob(); err != nil {
		return nil, err
	}
	if m.Instructions, err = r.ReadBlob(); err != nil {
		return nil, err
	}
	if m.Exceptions, err = r.ReadBlob(); err != nil {
		return nil, err
	}
	return &m, nil
}

// WriteMethods encodes a method table.
func WriteMethods(methods []*MethodData) []byte {
	var w Writer
	w.WriteInt32(int32(len(methods)))
	for _, m := range methods {
		for _, b := range guidToNET(m.GUID) {
			w.WriteByte(b)
		}
		w.WriteUint32(m.Token)
		w.WriteBlob(m.Locals)
		w.WriteBlob(m.Instructions)
		w.WriteBlob(m.Exceptions)
	}
	return w.Bytes()
}
