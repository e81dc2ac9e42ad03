package csvm

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMethodTableRoundTrip(t *testing.T) {
	methods := []*MethodData{
		{
			GUID:         uuid.MustParse("00112233-4455-6677-8899-aabbccddeeff"),
			Token:        tokFill,
			Locals:       blob(1, 0x1c),
			Instructions: []byte{0x01, 0x00, 0x02},
			Exceptions:   blob(0),
		},
		{
			GUID:         uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
			Token:        tokPick,
			Locals:       []byte{0},
			Instructions: []byte{0xff},
			Exceptions:   []byte{1, 2},
		},
	}
	got, err := ReadMethods(WriteMethods(methods))
	require.NoError(t, err)
	assert.Equal(t, methods, got)
}

func TestMethodTableGUIDLayout(t *testing.T) {
	data := WriteMethods([]*MethodData{{
		GUID:         uuid.MustParse("00112233-4455-6677-8899-aabbccddeeff"),
		Token:        0x06000001,
		Locals:       []byte{0},
		Instructions: []byte{0},
		Exceptions:   []byte{0},
	}})
	// count, then the GUID as System.Guid.ToByteArray lays it out
	assert.Equal(t, []byte{
		0x01, 0x00, 0x00, 0x00,
		0x33, 0x22, 0x11, 0x00, 0x55, 0x44, 0x77, 0x66,
		0x88, 0x99, 0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff,
		0x01, 0x00, 0x00, 0x06,
	}, data[:24])
}

func TestReadMethodsMalformed(t *testing.T) {
	valid := WriteMethods([]*MethodData{{Token: 1, Locals: []byte{1}, Instructions: []byte{2}, Exceptions: []byte{3}}})
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"negative count", blob(-1)},
		{"missing method", blob(1)},
		{"truncated", valid[:len(valid)-1]},
		{"negative blob", append(append(blob(1), make([]byte, 20)...), blob(-5)...)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadMethods(tt.data)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestReadMethodsEmptyTable(t *testing.T) {
	methods, err := ReadMethods(blob(0))
	require.NoError(t, err)
	assert.Empty(t, methods)
}
