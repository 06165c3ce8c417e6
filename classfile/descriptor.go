package classfile

import "strings"

// BaseType is the descriptor character of a field type's element. Object
// marks a class type whose name is held in FieldType.ClassName.
type BaseType byte

const (
	Byte    BaseType = 'B'
	Char    BaseType = 'C'
	Double  BaseType = 'D'
	Float   BaseType = 'F'
	Int     BaseType = 'I'
	Long    BaseType = 'J'
	Short   BaseType = 'S'
	Boolean BaseType = 'Z'
	Object  BaseType = 'L'
)

func (b BaseType) String() string {
	switch b {
	case Byte:
		return "byte"
	case Char:
		return "char"
	case Double:
		return "double"
	case Float:
		return "float"
	case Int:
		return "int"
	case Long:
		return "long"
	case Short:
		return "short"
	case Boolean:
		return "boolean"
	case Object:
		return "object"
	default:
		return "BaseType(" + string(rune(b)) + ")"
	}
}

// FieldType is a parsed field descriptor: an element type wrapped in
// ArrayDepth array dimensions.
type FieldType struct {
	BaseType   BaseType
	ClassName  string
	ArrayDepth int
}

// Descriptor renders the type back to descriptor syntax.
func (ft FieldType) Descriptor() string {
	var sb strings.Builder
	for i := 0; i < ft.ArrayDepth; i++ {
		sb.WriteByte('[')
	}
	sb.WriteByte(byte(ft.BaseType))
	if ft.BaseType == Object {
		sb.WriteString(ft.ClassName)
		sb.WriteByte(';')
	}
	return sb.String()
}

// String renders the type in source form, e.g. "java.lang.String[]".
func (ft FieldType) String() string {
	var sb strings.Builder
	if ft.BaseType == Object {
		sb.WriteString(InternalToSourceName(ft.ClassName))
	} else {
		sb.WriteString(ft.BaseType.String())
	}
	for i := 0; i < ft.ArrayDepth; i++ {
		sb.WriteString("[]")
	}
	return sb.String()
}

func (ft FieldType) IsArray() bool {
	return ft.ArrayDepth > 0
}

func (ft FieldType) IsPrimitive() bool {
	return ft.ArrayDepth == 0 && ft.BaseType != Object
}

func (ft FieldType) IsReference() bool {
	return !ft.IsPrimitive()
}

// Slots is the number of local variable slots a value of this type takes.
func (ft FieldType) Slots() int {
	if ft.ArrayDepth == 0 && (ft.BaseType == Long || ft.BaseType == Double) {
		return 2
	}
	return 1
}

// MethodDescriptor is a parsed method descriptor. A nil ReturnType means
// the method returns void.
type MethodDescriptor struct {
	Parameters []FieldType
	ReturnType *FieldType
}

func (md MethodDescriptor) Descriptor() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for _, p := range md.Parameters {
		sb.WriteString(p.Descriptor())
	}
	sb.WriteByte(')')
	if md.ReturnType != nil {
		sb.WriteString(md.ReturnType.Descriptor())
	} else {
		sb.WriteByte('V')
	}
	return sb.String()
}

func (md MethodDescriptor) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	for i, p := range md.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString(")")
	if md.ReturnType != nil {
		sb.WriteString(" ")
		sb.WriteString(md.ReturnType.String())
	} else {
		sb.WriteString(" void")
	}
	return sb.String()
}

// ArgumentSlots counts the local variable slots taken by the parameters,
// not including the receiver.
func (md MethodDescriptor) ArgumentSlots() int {
	n := 0
	for _, p := range md.Parameters {
		n += p.Slots()
	}
	return n
}

// ParseFieldType parses a complete field descriptor such as "[Ljava/lang/String;".
func ParseFieldType(desc string) (FieldType, error) {
	ft, n, ok := parseFieldType(desc, 0)
	if !ok || n != len(desc) {
		return FieldType{}, &InvalidTypeDescriptorError{Descriptor: desc}
	}
	return ft, nil
}

// ParseMethodDescriptor parses a complete method descriptor such as "(IJ)V".
func ParseMethodDescriptor(desc string) (MethodDescriptor, error) {
	invalid := &InvalidTypeDescriptorError{Descriptor: desc}
	if len(desc) == 0 || desc[0] != '(' {
		return MethodDescriptor{}, invalid
	}

	md := MethodDescriptor{}
	i := 1
	for i < len(desc) && desc[i] != ')' {
		ft, n, ok := parseFieldType(desc, i)
		if !ok {
			return MethodDescriptor{}, invalid
		}
		md.Parameters = append(md.Parameters, ft)
		i += n
	}
	if i >= len(desc) {
		return MethodDescriptor{}, invalid
	}
	i++

	switch {
	case i == len(desc):
		return MethodDescriptor{}, invalid
	case desc[i] == 'V':
		if i+1 != len(desc) {
			return MethodDescriptor{}, invalid
		}
	default:
		ft, n, ok := parseFieldType(desc, i)
		if !ok || i+n != len(desc) {
			return MethodDescriptor{}, invalid
		}
		md.ReturnType = &ft
	}
	return md, nil
}

func parseFieldType(desc string, start int) (FieldType, int, bool) {
	ft := FieldType{}
	i := start
	for i < len(desc) && desc[i] == '[' {
		ft.ArrayDepth++
		i++
	}
	if i >= len(desc) || ft.ArrayDepth > 255 {
		return FieldType{}, 0, false
	}

	switch b := BaseType(desc[i]); b {
	case Byte, Char, Double, Float, Int, Long, Short, Boolean:
		ft.BaseType = b
		return ft, i - start + 1, true
	case Object:
		semicolon := strings.IndexByte(desc[i:], ';')
		if semicolon <= 1 {
			return FieldType{}, 0, false
		}
		name := desc[i+1 : i+semicolon]
		if strings.ContainsAny(name, ".[") {
			return FieldType{}, 0, false
		}
		ft.BaseType = Object
		ft.ClassName = name
		return ft, i - start + semicolon + 1, true
	default:
		return FieldType{}, 0, false
	}
}

func InternalToSourceName(name string) string {
	return strings.ReplaceAll(name, "/", ".")
}

func SourceToInternalName(name string) string {
	return strings.ReplaceAll(name, ".", "/")
}
