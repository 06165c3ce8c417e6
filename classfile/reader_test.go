package classfile

import (
	"errors"
	"math"
	"testing"
)

func TestByteReader(t *testing.T) {
	data := []byte{
		0xFF,
		0xFF, 0xFE,
		0x80, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00,
		0x3F, 0xC0, 0x00, 0x00,
	}
	r := NewByteReader(data)

	if got := r.ReadI1(); got != -1 {
		t.Errorf("ReadI1() = %d, want -1", got)
	}
	if got := r.ReadI2(); got != -2 {
		t.Errorf("ReadI2() = %d, want -2", got)
	}
	if got := r.ReadI4(); got != math.MinInt32 {
		t.Errorf("ReadI4() = %d, want %d", got, math.MinInt32)
	}
	if got := r.ReadU8(); got != 256 {
		t.Errorf("ReadU8() = %d, want 256", got)
	}
	if got := r.ReadF4(); got != 1.5 {
		t.Errorf("ReadF4() = %v, want 1.5", got)
	}
	if r.Err() != nil {
		t.Fatalf("Err() = %v", r.Err())
	}
	if r.HasMore() || r.Remaining() != 0 || r.Offset() != len(data) {
		t.Errorf("Expected the reader to be exhausted at offset %d, got %d", len(data), r.Offset())
	}
}

func TestByteReaderStickyEOF(t *testing.T) {
	r := NewByteReader([]byte{0x01, 0x02, 0x03})
	if got := r.ReadU2(); got != 0x0102 {
		t.Errorf("ReadU2() = %#x", got)
	}
	if got := r.ReadU2(); got != 0 {
		t.Errorf("ReadU2() past the end = %#x, want 0", got)
	}
	if !errors.Is(r.Err(), ErrUnexpectedEOF) {
		t.Fatalf("Err() = %v, want ErrUnexpectedEOF", r.Err())
	}
	// The failed read consumed nothing, and later reads keep failing.
	if r.Offset() != 2 {
		t.Errorf("Offset() = %d, want 2", r.Offset())
	}
	if got := r.ReadU1(); got != 0 {
		t.Errorf("ReadU1() after failure = %d, want 0", got)
	}
	if r.HasMore() {
		t.Error("HasMore() after failure")
	}
}

func TestByteReaderReadBytesCopies(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	r := NewByteReader(data)
	r.ReadU1()
	got := r.ReadBytes(2)
	data[1] = 99
	if got[0] != 2 || got[1] != 3 {
		t.Errorf("ReadBytes() = %v, want [2 3]", got)
	}
	if r.ReadBytes(5) != nil || r.Err() == nil {
		t.Error("Expected an oversized ReadBytes to fail")
	}
}

func TestByteReaderModifiedUTF8(t *testing.T) {
	r := NewByteReader([]byte{'h', 'i', 0xC0, 0x80, 0xFF})
	if got := r.ReadModifiedUTF8(4); got != "hi\x00" {
		t.Errorf("ReadModifiedUTF8() = %q", got)
	}
	if got := r.ReadModifiedUTF8(1); got != "" {
		t.Errorf("ReadModifiedUTF8() of 0xFF = %q", got)
	}
	if !errors.Is(r.Err(), ErrInvalidModifiedUTF8) {
		t.Errorf("Err() = %v, want ErrInvalidModifiedUTF8", r.Err())
	}
}
