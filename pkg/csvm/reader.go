package csvm

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"unicode/utf8"
)

// Reader is a little endian cursor over a byte buffer, compatible with the
// primitives written by .NET's BinaryWriter.
type Reader struct {
	r *bytes.Reader
}

// NewReader creates a cursor over data.
func NewReader(data []byte) *Reader {
	return &Reader{r: bytes.NewReader(data)}
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int { return r.r.Len() }

// Pos returns the current offset.
func (r *Reader) Pos() int64 {
	pos, _ := r.r.Seek(0, io.SeekCurrent)
	return pos
}

func (r *Reader) read(n int) ([]byte, error) {
	if n < 0 || r.r.Len() < n {
		return nil, io.ErrUnexpectedEOF
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return nil, io.ErrUnexpectedEOF
	}
	return buf, nil
}

func (r *Reader) ReadByte() (byte, error) {
	b, err := r.r.ReadByte()
	if err != nil {
		return 0, io.ErrUnexpectedEOF
	}
	return b, nil
}

// ReadBool reads a byte; any non-zero value is true.
func (r *Reader) ReadBool() (bool, error) {
	b, err := r.ReadByte()
	return b != 0, err
}

func (r *Reader) ReadUint16() (uint16, error) {
	buf, err := r.read(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf), nil
}

func (r *Reader) ReadUint32() (uint32, error) {
	buf, err := r.read(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}

func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

func (r *Reader) ReadInt64() (int64, error) {
	buf, err := r.read(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(buf)), nil
}

func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	return math.Float32frombits(v), err
}

func (r *Reader) ReadFloat64() (float64, error) {
	buf, err := r.read(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(buf)), nil
}

// ReadBytes reads exactly n bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	return r.read(n)
}

// ReadBlob reads an Int32 length prefixed byte array.
func (r *Reader) ReadBlob() ([]byte, error) {
	n, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, malformedf("blob", "negative length %d", n)
	}
	return r.read(int(n))
}

// Read7BitEncodedInt reads a .NET 7-bit encoded integer.
func (r *Reader) Read7BitEncodedInt() (int32, error) {
	var v uint32
	for shift := 0; shift < 35; shift += 7 {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		v |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return int32(v), nil
		}
	}
	return 0, malformedf("string", "bad 7-bit encoded length")
}

// ReadString reads a string written by BinaryWriter.Write(string): a 7-bit
// encoded byte length followed by UTF-8.
func (r *Reader) ReadString() (string, error) {
	n, err := r.Read7BitEncodedInt()
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", malformedf("string", "negative length %d", n)
	}
	buf, err := r.read(int(n))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(buf) {
		return string(bytes.ToValidUTF8(buf, []byte("�"))), nil
	}
	return string(buf), nil
}

// Writer is the inverse of Reader. It is used to build VM data.
type Writer struct {
	buf bytes.Buffer
}

func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

func (w *Writer) WriteByte(b byte) error { return w.buf.WriteByte(b) }

func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf.WriteByte(1)
	} else {
		w.buf.WriteByte(0)
	}
}

func (w *Writer) WriteUint16(v uint16) { w.buf.Write(binary.LittleEndian.AppendUint16(nil, v)) }
func (w *Writer) WriteUint32(v uint32) { w.buf.Write(binary.LittleEndian.AppendUint32(nil, v)) }
func (w *Writer) WriteInt32(v int32)   { w.WriteUint32(uint32(v)) }
func (w *Writer) WriteInt64(v int64)   { w.buf.Write(binary.LittleEndian.AppendUint64(nil, uint64(v))) }
func (w *Writer) WriteFloat32(v float32) {
	w.WriteUint32(math.Float32bits(v))
}
func (w *Writer) WriteFloat64(v float64) {
	w.buf.Write(binary.LittleEndian.AppendUint64(nil, math.Float64bits(v)))
}

// WriteBlob writes an Int32 length prefixed byte array.
func (w *Writer) WriteBlob(data []byte) {
	w.WriteInt32(int32(len(data)))
	w.buf.Write(data)
}

// WriteString writes a 7-bit length prefixed UTF-8 string.
func (w *Writer) WriteString(s string) {
	n := uint32(len(s))
	for n >= 0x80 {
		w.buf.WriteByte(byte(n) | 0x80)
		n >>= 7
	}
	w.buf.WriteByte(byte(n))
	w.buf.WriteString(s)
}
