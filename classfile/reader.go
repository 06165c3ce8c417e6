package classfile

import (
	"encoding/binary"
	"math"
)

// ByteReader is a forward-only big-endian cursor over an immutable byte
// slice. The first failed read is sticky: later reads return zero values and
// Err keeps reporting the first failure, so callers check once after a
// group of reads.
//
// Sub-regions such as attribute payloads are read with a fresh ByteReader
// over the slice extracted from the parent.
type ByteReader struct {
	data []byte
	pos  int
	err  error
}

func NewByteReader(data []byte) *ByteReader {
	return &ByteReader{data: data}
}

// Err returns the first failure encountered, if any.
func (r *ByteReader) Err() error { return r.err }

// Offset is the number of bytes consumed so far.
func (r *ByteReader) Offset() int { return r.pos }

func (r *ByteReader) Remaining() int { return len(r.data) - r.pos }

func (r *ByteReader) HasMore() bool { return r.err == nil && r.pos < len(r.data) }

func (r *ByteReader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || n > len(r.data)-r.pos {
		r.err = ErrUnexpectedEOF
		return nil
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b
}

func (r *ByteReader) ReadU1() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *ByteReader) ReadU2() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

func (r *ByteReader) ReadU4() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

func (r *ByteReader) ReadU8() uint64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

func (r *ByteReader) ReadI1() int8    { return int8(r.ReadU1()) }
func (r *ByteReader) ReadI2() int16   { return int16(r.ReadU2()) }
func (r *ByteReader) ReadI4() int32   { return int32(r.ReadU4()) }
func (r *ByteReader) ReadI8() int64   { return int64(r.ReadU8()) }
func (r *ByteReader) ReadF4() float32 { return math.Float32frombits(r.ReadU4()) }
func (r *ByteReader) ReadF8() float64 { return math.Float64frombits(r.ReadU8()) }

// ReadBytes returns a copy of the next n bytes, so decoded values never
// alias the input buffer.
func (r *ByteReader) ReadBytes(n int) []byte {
	b := r.take(n)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// ReadModifiedUTF8 decodes the next n bytes as modified UTF-8.
func (r *ByteReader) ReadModifiedUTF8(n int) string {
	b := r.take(n)
	if b == nil {
		return ""
	}
	s, err := decodeModifiedUTF8(b)
	if err != nil {
		r.err = err
		return ""
	}
	return s
}
