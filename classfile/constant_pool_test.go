package classfile

import (
	"errors"
	"strings"
	"testing"
)

// referencePool mirrors a pool with every entry kind:
//
//	1 Utf8 "hey", 2 Integer 1, 3 Float 2.1, 4-5 Long 123, 6-7 Double 3.56,
//	8 Class #1, 9 String #1, 10 Utf8 "joe", 11 Fieldref #1.#10,
//	12 Methodref #1.#10, 13 InterfaceMethodref #1.#10, 14 NameAndType #1:#10
func referencePool() *ConstantPool {
	cp := &ConstantPool{}
	cp.Add(&ConstantUtf8Info{Value: "hey"})
	cp.Add(&ConstantIntegerInfo{Value: 1})
	cp.Add(&ConstantFloatInfo{Value: 2.1})
	cp.Add(&ConstantLongInfo{Value: 123})
	cp.Add(&ConstantDoubleInfo{Value: 3.56})
	cp.Add(&ConstantClassInfo{NameIndex: 1})
	cp.Add(&ConstantStringInfo{StringIndex: 1})
	cp.Add(&ConstantUtf8Info{Value: "joe"})
	cp.Add(&ConstantFieldrefInfo{ClassIndex: 1, NameAndTypeIndex: 10})
	cp.Add(&ConstantMethodrefInfo{ClassIndex: 1, NameAndTypeIndex: 10})
	cp.Add(&ConstantInterfaceMethodrefInfo{ClassIndex: 1, NameAndTypeIndex: 10})
	cp.Add(&ConstantNameAndTypeInfo{NameIndex: 1, DescriptorIndex: 10})
	return cp
}

func TestConstantPoolGet(t *testing.T) {
	cp := referencePool()
	if cp.Len() != 14 {
		t.Fatalf("Len() = %d, want 14", cp.Len())
	}

	t.Run("valid indices", func(t *testing.T) {
		tests := []struct {
			index uint16
			tag   ConstantTag
		}{
			{1, ConstantUtf8},
			{2, ConstantInteger},
			{3, ConstantFloat},
			{4, ConstantLong},
			{6, ConstantDouble},
			{8, ConstantClass},
			{9, ConstantString},
			{11, ConstantFieldref},
			{12, ConstantMethodref},
			{13, ConstantInterfaceMethodref},
			{14, ConstantNameAndType},
		}
		for _, tt := range tests {
			entry, err := cp.Get(tt.index)
			if err != nil {
				t.Errorf("Get(%d) error = %v", tt.index, err)
				continue
			}
			if entry.Tag() != tt.tag {
				t.Errorf("Get(%d).Tag() = %s, want %s", tt.index, entry.Tag(), tt.tag)
			}
		}
	})

	t.Run("invalid indices", func(t *testing.T) {
		for _, index := range []uint16{0, 5, 7, 15, 0xFFFF} {
			_, err := cp.Get(index)
			var invalid *InvalidConstantPoolIndexError
			if !errors.As(err, &invalid) {
				t.Errorf("Get(%d) error = %v, want *InvalidConstantPoolIndexError", index, err)
				continue
			}
			if invalid.Index != index {
				t.Errorf("Get(%d) reported index %d", index, invalid.Index)
			}
		}
	})
}

func TestConstantPoolTextOf(t *testing.T) {
	cp := referencePool()
	tests := []struct {
		index uint16
		want  string
	}{
		{1, "hey"},
		{2, "1"},
		{3, "2.1"},
		{4, "123"},
		{6, "3.56"},
		{8, "hey"},
		{9, "hey"},
		{11, "hey.joe"},
		{12, "hey.joe"},
		{13, "hey.joe"},
		{14, "hey: joe"},
	}
	for _, tt := range tests {
		got, err := cp.TextOf(tt.index)
		if err != nil {
			t.Errorf("TextOf(%d) error = %v", tt.index, err)
			continue
		}
		if got != tt.want {
			t.Errorf("TextOf(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}

	if _, err := cp.TextOf(5); err == nil {
		t.Error("TextOf(5) on a tombstone succeeded")
	}
}

func TestConstantPoolTextOfCycle(t *testing.T) {
	cp := &ConstantPool{}
	cp.Add(&ConstantClassInfo{NameIndex: 2})
	cp.Add(&ConstantStringInfo{StringIndex: 1})

	_, err := cp.TextOf(1)
	var invalid *InvalidClassDataError
	if !errors.As(err, &invalid) {
		t.Fatalf("TextOf() error = %v, want *InvalidClassDataError", err)
	}
	if !strings.Contains(invalid.Message, "too deep") {
		t.Errorf("Message = %q", invalid.Message)
	}
	var index *InvalidConstantPoolIndexError
	if !errors.As(err, &index) {
		t.Errorf("Expected a nested *InvalidConstantPoolIndexError")
	}
}

func TestConstantPoolAll(t *testing.T) {
	cp := &ConstantPool{}
	cp.Add(&ConstantIntegerInfo{Value: 1})
	cp.Add(&ConstantLongInfo{Value: 2})
	cp.Add(&ConstantIntegerInfo{Value: 3})

	var indices []uint16
	for index := range cp.All() {
		indices = append(indices, index)
	}
	want := []uint16{1, 2, 4}
	if len(indices) != len(want) {
		t.Fatalf("All() yielded %v, want %v", indices, want)
	}
	for i := range want {
		if indices[i] != want[i] {
			t.Errorf("All() yielded %v, want %v", indices, want)
			break
		}
	}

	// The sequence restarts on every range and stops early on break.
	count := 0
	for range cp.All() {
		count++
		break
	}
	if count != 1 {
		t.Errorf("Early break visited %d entries", count)
	}
}

func TestConstantPoolTypedAccessors(t *testing.T) {
	cp := referencePool()

	if got, err := cp.Utf8(10); err != nil || got != "joe" {
		t.Errorf("Utf8(10) = %q, %v", got, err)
	}
	if _, err := cp.Utf8(2); err == nil {
		t.Error("Utf8(2) on an Integer succeeded")
	}
	if got, err := cp.ClassName(8); err != nil || got != "hey" {
		t.Errorf("ClassName(8) = %q, %v", got, err)
	}
	if _, err := cp.ClassName(9); err == nil {
		t.Error("ClassName(9) on a String succeeded")
	}
	name, desc, err := cp.NameAndType(14)
	if err != nil || name != "hey" || desc != "joe" {
		t.Errorf("NameAndType(14) = %q, %q, %v", name, desc, err)
	}
}

func TestConstantPoolString(t *testing.T) {
	out := referencePool().String()
	for _, want := range []string{
		"Constant pool: (size: 14)",
		`1, Utf8: "hey"`,
		"4, Long: 123",
		"5, (wide entry continuation)",
		"11, Fieldref: #1, #10 => hey.joe",
		"14, NameAndType: #1, #10 => hey: joe",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("String() missing %q\n%s", want, out)
		}
	}
}
