package classfile

import (
	"fmt"
	"strconv"
)

const (
	AttrConstantValue   = "ConstantValue"
	AttrCode            = "Code"
	AttrLineNumberTable = "LineNumberTable"
	AttrExceptions      = "Exceptions"
	AttrSourceFile      = "SourceFile"
	AttrDeprecated      = "Deprecated"
)

// Attribute is a named attribute with its payload left undecoded.
type Attribute struct {
	Name string
	Data []byte
}

func (a Attribute) String() string {
	return fmt.Sprintf("%s (data = %d bytes)", a.Name, len(a.Data))
}

func readAttributes(r *ByteReader, cp *ConstantPool) ([]Attribute, error) {
	count := r.ReadU2()
	if r.Err() != nil {
		return nil, r.Err()
	}

	attrs := make([]Attribute, 0, count)
	for i := uint16(0); i < count; i++ {
		nameIndex := r.ReadU2()
		length := r.ReadU4()
		data := r.ReadBytes(int(length))
		if r.Err() != nil {
			return nil, r.Err()
		}
		name, err := cp.Utf8(nameIndex)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, Attribute{Name: name, Data: data})
	}
	return attrs, nil
}

func findAttribute(attrs []Attribute, name string) (Attribute, bool) {
	for _, a := range attrs {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

func hasAttribute(attrs []Attribute, name string) bool {
	_, ok := findAttribute(attrs, name)
	return ok
}

// ConstantValue is the initial value of a static field: one of
// IntConstant, FloatConstant, LongConstant, DoubleConstant or
// StringConstant.
type ConstantValue interface {
	fmt.Stringer
	constantValue()
}

type (
	IntConstant    int32
	FloatConstant  float32
	LongConstant   int64
	DoubleConstant float64
	StringConstant string
)

func (IntConstant) constantValue()    {}
func (FloatConstant) constantValue()  {}
func (LongConstant) constantValue()   {}
func (DoubleConstant) constantValue() {}
func (StringConstant) constantValue() {}

func (c IntConstant) String() string  { return strconv.FormatInt(int64(c), 10) }
func (c LongConstant) String() string { return strconv.FormatInt(int64(c), 10) }
func (c StringConstant) String() string {
	return strconv.Quote(string(c))
}
func (c FloatConstant) String() string {
	return strconv.FormatFloat(float64(c), 'g', -1, 32)
}
func (c DoubleConstant) String() string {
	return strconv.FormatFloat(float64(c), 'g', -1, 64)
}

func parseConstantValueAttribute(data []byte, cp *ConstantPool) (ConstantValue, error) {
	if len(data) != 2 {
		return nil, InvalidClassData("invalid attribute of type ConstantValue")
	}
	index := NewByteReader(data).ReadU2()
	entry, err := cp.Get(index)
	if err != nil {
		return nil, err
	}

	switch e := entry.(type) {
	case *ConstantIntegerInfo:
		return IntConstant(e.Value), nil
	case *ConstantFloatInfo:
		return FloatConstant(e.Value), nil
	case *ConstantLongInfo:
		return LongConstant(e.Value), nil
	case *ConstantDoubleInfo:
		return DoubleConstant(e.Value), nil
	case *ConstantStringInfo:
		s, err := cp.Utf8(e.StringIndex)
		if err != nil {
			return nil, err
		}
		return StringConstant(s), nil
	default:
		return nil, InvalidClassData("invalid type for ConstantValue: %s", entry.Tag())
	}
}

// Code is the body of a method that is neither native nor abstract.
type Code struct {
	MaxStack        uint16
	MaxLocals       uint16
	Code            []byte
	ExceptionTable  ExceptionTable
	LineNumberTable *LineNumberTable
	Attributes      []Attribute
}

// LineNumber maps a program counter to its source line, when the method
// was compiled with line information.
func (c *Code) LineNumber(pc uint16) (uint16, bool) {
	if c.LineNumberTable == nil {
		return 0, false
	}
	return c.LineNumberTable.Lookup(pc)
}

func parseCodeAttribute(data []byte, cp *ConstantPool) (*Code, error) {
	r := NewByteReader(data)
	code := &Code{
		MaxStack:  r.ReadU2(),
		MaxLocals: r.ReadU2(),
	}
	codeLength := r.ReadU4()
	code.Code = r.ReadBytes(int(codeLength))

	exceptionTableLength := r.ReadU2()
	if r.Err() != nil {
		return nil, r.Err()
	}
	code.ExceptionTable.Entries = make([]ExceptionTableEntry, 0, exceptionTableLength)
	for i := uint16(0); i < exceptionTableLength; i++ {
		entry := ExceptionTableEntry{
			StartPC:   r.ReadU2(),
			EndPC:     r.ReadU2(),
			HandlerPC: r.ReadU2(),
		}
		catchType := r.ReadU2()
		if r.Err() != nil {
			return nil, r.Err()
		}
		if catchType != 0 {
			name, err := cp.ClassName(catchType)
			if err != nil {
				return nil, err
			}
			entry.CatchClass = name
		}
		code.ExceptionTable.Entries = append(code.ExceptionTable.Entries, entry)
	}

	attrs, err := readAttributes(r, cp)
	if err != nil {
		return nil, err
	}
	code.Attributes = attrs
	if a, ok := findAttribute(attrs, AttrLineNumberTable); ok {
		if code.LineNumberTable, err = parseLineNumberTableAttribute(a.Data); err != nil {
			return nil, err
		}
	}
	return code, nil
}

// ExceptionTableEntry guards the half-open range [StartPC, EndPC). An empty
// CatchClass catches everything, as a finally block does.
type ExceptionTableEntry struct {
	StartPC    uint16
	EndPC      uint16
	HandlerPC  uint16
	CatchClass string
}

func (e ExceptionTableEntry) Covers(pc uint16) bool {
	return pc >= e.StartPC && pc < e.EndPC
}

func (e ExceptionTableEntry) CatchesAll() bool {
	return e.CatchClass == ""
}

type ExceptionTable struct {
	Entries []ExceptionTableEntry
}

// Lookup returns the handlers whose range covers pc, in declaration order.
func (t ExceptionTable) Lookup(pc uint16) []ExceptionTableEntry {
	var matches []ExceptionTableEntry
	for _, e := range t.Entries {
		if e.Covers(pc) {
			matches = append(matches, e)
		}
	}
	return matches
}

type LineNumberEntry struct {
	StartPC    uint16
	LineNumber uint16
}

type LineNumberTable struct {
	Entries []LineNumberEntry
}

// Lookup returns the line of the entry with the greatest StartPC not after
// pc. Compilers do not always emit entries in PC order, so every entry is
// considered.
func (t *LineNumberTable) Lookup(pc uint16) (uint16, bool) {
	var (
		best  LineNumberEntry
		found bool
	)
	for _, e := range t.Entries {
		if e.StartPC <= pc && (!found || e.StartPC >= best.StartPC) {
			best = e
			found = true
		}
	}
	return best.LineNumber, found
}

func parseLineNumberTableAttribute(data []byte) (*LineNumberTable, error) {
	r := NewByteReader(data)
	count := r.ReadU2()
	if r.Err() != nil {
		return nil, r.Err()
	}
	table := &LineNumberTable{Entries: make([]LineNumberEntry, 0, count)}
	for i := uint16(0); i < count; i++ {
		table.Entries = append(table.Entries, LineNumberEntry{
			StartPC:    r.ReadU2(),
			LineNumber: r.ReadU2(),
		})
	}
	if r.Err() != nil {
		return nil, r.Err()
	}
	return table, nil
}

func parseExceptionsAttribute(data []byte, cp *ConstantPool) ([]string, error) {
	r := NewByteReader(data)
	count := r.ReadU2()
	if r.Err() != nil {
		return nil, r.Err()
	}
	names := make([]string, 0, count)
	for i := uint16(0); i < count; i++ {
		index := r.ReadU2()
		if r.Err() != nil {
			return nil, r.Err()
		}
		name, err := cp.ClassName(index)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

func parseSourceFileAttribute(data []byte, cp *ConstantPool) (string, error) {
	if len(data) != 2 {
		return "", InvalidClassData("invalid SourceFile attribute")
	}
	index := NewByteReader(data).ReadU2()
	entry, err := cp.Get(index)
	if err != nil {
		return "", err
	}
	utf8, ok := entry.(*ConstantUtf8Info)
	if !ok {
		return "", InvalidClassData("invalid SourceFile attribute")
	}
	return utf8.Value, nil
}
