package classfile

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
)

type ConstantPoolEntry interface {
	Tag() ConstantTag
}

type ConstantUtf8Info struct {
	Value string
}

func (c *ConstantUtf8Info) Tag() ConstantTag { return ConstantUtf8 }

type ConstantIntegerInfo struct {
	Value int32
}

func (c *ConstantIntegerInfo) Tag() ConstantTag { return ConstantInteger }

type ConstantFloatInfo struct {
	Value float32
}

func (c *ConstantFloatInfo) Tag() ConstantTag { return ConstantFloat }

type ConstantLongInfo struct {
	Value int64
}

func (c *ConstantLongInfo) Tag() ConstantTag { return ConstantLong }

type ConstantDoubleInfo struct {
	Value float64
}

func (c *ConstantDoubleInfo) Tag() ConstantTag { return ConstantDouble }

type ConstantClassInfo struct {
	NameIndex uint16
}

func (c *ConstantClassInfo) Tag() ConstantTag { return ConstantClass }

type ConstantStringInfo struct {
	StringIndex uint16
}

func (c *ConstantStringInfo) Tag() ConstantTag { return ConstantString }

type ConstantFieldrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantFieldrefInfo) Tag() ConstantTag { return ConstantFieldref }

type ConstantMethodrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantMethodrefInfo) Tag() ConstantTag { return ConstantMethodref }

type ConstantInterfaceMethodrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantInterfaceMethodrefInfo) Tag() ConstantTag { return ConstantInterfaceMethodref }

type ConstantNameAndTypeInfo struct {
	NameIndex       uint16
	DescriptorIndex uint16
}

func (c *ConstantNameAndTypeInfo) Tag() ConstantTag { return ConstantNameAndType }

// wideSlot fills the slot after a long or double. It is never returned from
// a lookup.
type wideSlot struct{}

func (wideSlot) Tag() ConstantTag { return 0 }

// maxResolutionDepth bounds TextOf on self-referential pools. Well-formed
// pools never nest deeper than a member reference (three levels).
const maxResolutionDepth = 32

// ConstantPool is the 1-based table of constants of a class. Slot i holds
// index i+1; the slot following a long or double is a tombstone.
type ConstantPool struct {
	entries []ConstantPoolEntry
}

// Add appends an entry, plus a tombstone when the entry is wide.
func (cp *ConstantPool) Add(entry ConstantPoolEntry) {
	cp.entries = append(cp.entries, entry)
	if entry.Tag().Wide() {
		cp.entries = append(cp.entries, wideSlot{})
	}
}

// Len is the number of physical slots, tombstones included.
func (cp *ConstantPool) Len() int {
	return len(cp.entries)
}

// Get returns the entry at the 1-based index. Index 0, indices past the end
// and tombstones all fail with *InvalidConstantPoolIndexError.
func (cp *ConstantPool) Get(index uint16) (ConstantPoolEntry, error) {
	if index == 0 || int(index) > len(cp.entries) {
		return nil, &InvalidConstantPoolIndexError{Index: index}
	}
	entry := cp.entries[index-1]
	if _, ok := entry.(wideSlot); ok {
		return nil, &InvalidConstantPoolIndexError{Index: index}
	}
	return entry, nil
}

// All yields (index, entry) pairs in physical order, skipping tombstones.
func (cp *ConstantPool) All() iter.Seq2[uint16, ConstantPoolEntry] {
	return func(yield func(uint16, ConstantPoolEntry) bool) {
		for i, entry := range cp.entries {
			if _, ok := entry.(wideSlot); ok {
				continue
			}
			if !yield(uint16(i+1), entry) {
				return
			}
		}
	}
}

// TextOf resolves an index to display text. Literals print their value,
// class and string references follow one indirection, member references
// render as "owner.member" and name-and-type as "name: descriptor".
func (cp *ConstantPool) TextOf(index uint16) (string, error) {
	return cp.textOf(index, 0)
}

func (cp *ConstantPool) textOf(index uint16, depth int) (string, error) {
	if depth > maxResolutionDepth {
		return "", &InvalidClassDataError{
			Message: fmt.Sprintf("constant pool resolution too deep at index %d", index),
			Err:     &InvalidConstantPoolIndexError{Index: index},
		}
	}
	entry, err := cp.Get(index)
	if err != nil {
		return "", err
	}

	switch e := entry.(type) {
	case *ConstantUtf8Info:
		return e.Value, nil
	case *ConstantIntegerInfo:
		return strconv.FormatInt(int64(e.Value), 10), nil
	case *ConstantFloatInfo:
		return strconv.FormatFloat(float64(e.Value), 'f', -1, 32), nil
	case *ConstantLongInfo:
		return strconv.FormatInt(e.Value, 10), nil
	case *ConstantDoubleInfo:
		return strconv.FormatFloat(e.Value, 'f', -1, 64), nil
	case *ConstantClassInfo:
		return cp.textOf(e.NameIndex, depth+1)
	case *ConstantStringInfo:
		return cp.textOf(e.StringIndex, depth+1)
	case *ConstantFieldrefInfo:
		return cp.joinText(e.ClassIndex, e.NameAndTypeIndex, ".", depth)
	case *ConstantMethodrefInfo:
		return cp.joinText(e.ClassIndex, e.NameAndTypeIndex, ".", depth)
	case *ConstantInterfaceMethodrefInfo:
		return cp.joinText(e.ClassIndex, e.NameAndTypeIndex, ".", depth)
	case *ConstantNameAndTypeInfo:
		return cp.joinText(e.NameIndex, e.DescriptorIndex, ": ", depth)
	default:
		return "", &InvalidConstantPoolIndexError{Index: index}
	}
}

func (cp *ConstantPool) joinText(left, right uint16, sep string, depth int) (string, error) {
	l, err := cp.textOf(left, depth+1)
	if err != nil {
		return "", err
	}
	r, err := cp.textOf(right, depth+1)
	if err != nil {
		return "", err
	}
	return l + sep + r, nil
}

// Utf8 returns the text of a Utf8 entry.
func (cp *ConstantPool) Utf8(index uint16) (string, error) {
	entry, err := cp.Get(index)
	if err != nil {
		return "", err
	}
	utf8, ok := entry.(*ConstantUtf8Info)
	if !ok {
		return "", InvalidClassData("constant pool entry %d is %s, expected Utf8", index, entry.Tag())
	}
	return utf8.Value, nil
}

// ClassName returns the binary name referenced by a Class entry.
func (cp *ConstantPool) ClassName(index uint16) (string, error) {
	entry, err := cp.Get(index)
	if err != nil {
		return "", err
	}
	class, ok := entry.(*ConstantClassInfo)
	if !ok {
		return "", InvalidClassData("constant pool entry %d is %s, expected Class", index, entry.Tag())
	}
	return cp.Utf8(class.NameIndex)
}

func (cp *ConstantPool) NameAndType(index uint16) (name, descriptor string, err error) {
	entry, err := cp.Get(index)
	if err != nil {
		return "", "", err
	}
	nat, ok := entry.(*ConstantNameAndTypeInfo)
	if !ok {
		return "", "", InvalidClassData("constant pool entry %d is %s, expected NameAndType", index, entry.Tag())
	}
	if name, err = cp.Utf8(nat.NameIndex); err != nil {
		return "", "", err
	}
	if descriptor, err = cp.Utf8(nat.DescriptorIndex); err != nil {
		return "", "", err
	}
	return name, descriptor, nil
}

// Describe renders one entry with its raw operands and, for references,
// what they resolve to.
func (cp *ConstantPool) Describe(index uint16) (string, error) {
	entry, err := cp.Get(index)
	if err != nil {
		return "", err
	}

	var operands []uint16
	switch e := entry.(type) {
	case *ConstantUtf8Info:
		return fmt.Sprintf("%s: %q", e.Tag(), e.Value), nil
	case *ConstantClassInfo:
		operands = []uint16{e.NameIndex}
	case *ConstantStringInfo:
		operands = []uint16{e.StringIndex}
	case *ConstantFieldrefInfo:
		operands = []uint16{e.ClassIndex, e.NameAndTypeIndex}
	case *ConstantMethodrefInfo:
		operands = []uint16{e.ClassIndex, e.NameAndTypeIndex}
	case *ConstantInterfaceMethodrefInfo:
		operands = []uint16{e.ClassIndex, e.NameAndTypeIndex}
	case *ConstantNameAndTypeInfo:
		operands = []uint16{e.NameIndex, e.DescriptorIndex}
	default:
		text, err := cp.TextOf(index)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s: %s", entry.Tag(), text), nil
	}

	refs := make([]string, len(operands))
	for i, op := range operands {
		refs[i] = "#" + strconv.Itoa(int(op))
	}
	text, err := cp.TextOf(index)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s: %s => %s", entry.Tag(), strings.Join(refs, ", "), text), nil
}

// String dumps every physical slot, one per line.
func (cp *ConstantPool) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Constant pool: (size: %d)\n", len(cp.entries))
	for i, entry := range cp.entries {
		index := uint16(i + 1)
		if _, ok := entry.(wideSlot); ok {
			fmt.Fprintf(&sb, "    %d, (wide entry continuation)\n", index)
			continue
		}
		text, err := cp.Describe(index)
		if err != nil {
			text = "<" + err.Error() + ">"
		}
		fmt.Fprintf(&sb, "    %d, %s\n", index, text)
	}
	return sb.String()
}
