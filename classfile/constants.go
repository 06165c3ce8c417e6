package classfile

import "fmt"

const (
	Magic = 0xCAFEBABE
)

type AccessFlags uint16

const (
	AccPublic       AccessFlags = 0x0001
	AccPrivate      AccessFlags = 0x0002
	AccProtected    AccessFlags = 0x0004
	AccStatic       AccessFlags = 0x0008
	AccFinal        AccessFlags = 0x0010
	AccSuper        AccessFlags = 0x0020
	AccSynchronized AccessFlags = 0x0020
	AccVolatile     AccessFlags = 0x0040
	AccBridge       AccessFlags = 0x0040
	AccTransient    AccessFlags = 0x0080
	AccVarargs      AccessFlags = 0x0080
	AccNative       AccessFlags = 0x0100
	AccInterface    AccessFlags = 0x0200
	AccAbstract     AccessFlags = 0x0400
	AccStrict       AccessFlags = 0x0800
	AccSynthetic    AccessFlags = 0x1000
	AccAnnotation   AccessFlags = 0x2000
	AccEnum         AccessFlags = 0x4000
)

func (f AccessFlags) IsPublic() bool       { return f&AccPublic != 0 }
func (f AccessFlags) IsPrivate() bool      { return f&AccPrivate != 0 }
func (f AccessFlags) IsProtected() bool    { return f&AccProtected != 0 }
func (f AccessFlags) IsStatic() bool       { return f&AccStatic != 0 }
func (f AccessFlags) IsFinal() bool        { return f&AccFinal != 0 }
func (f AccessFlags) IsSuper() bool        { return f&AccSuper != 0 }
func (f AccessFlags) IsSynchronized() bool { return f&AccSynchronized != 0 }
func (f AccessFlags) IsVolatile() bool     { return f&AccVolatile != 0 }
func (f AccessFlags) IsBridge() bool       { return f&AccBridge != 0 }
func (f AccessFlags) IsTransient() bool    { return f&AccTransient != 0 }
func (f AccessFlags) IsVarargs() bool      { return f&AccVarargs != 0 }
func (f AccessFlags) IsNative() bool       { return f&AccNative != 0 }
func (f AccessFlags) IsInterface() bool    { return f&AccInterface != 0 }
func (f AccessFlags) IsAbstract() bool     { return f&AccAbstract != 0 }
func (f AccessFlags) IsStrict() bool       { return f&AccStrict != 0 }
func (f AccessFlags) IsSynthetic() bool    { return f&AccSynthetic != 0 }
func (f AccessFlags) IsAnnotation() bool   { return f&AccAnnotation != 0 }
func (f AccessFlags) IsEnum() bool         { return f&AccEnum != 0 }

// FlagKind selects which of the per-entity flag sets applies. Several bits
// mean different things on classes, fields and methods.
type FlagKind uint8

const (
	ClassFlags FlagKind = iota
	FieldFlags
	MethodFlags
)

type flagName struct {
	flag AccessFlags
	name string
}

var (
	classFlagNames = []flagName{
		{AccPublic, "public"},
		{AccFinal, "final"},
		{AccSuper, "super"},
		{AccInterface, "interface"},
		{AccAbstract, "abstract"},
		{AccSynthetic, "synthetic"},
		{AccAnnotation, "annotation"},
		{AccEnum, "enum"},
	}
	fieldFlagNames = []flagName{
		{AccPublic, "public"},
		{AccPrivate, "private"},
		{AccProtected, "protected"},
		{AccStatic, "static"},
		{AccFinal, "final"},
		{AccVolatile, "volatile"},
		{AccTransient, "transient"},
		{AccSynthetic, "synthetic"},
		{AccEnum, "enum"},
	}
	methodFlagNames = []flagName{
		{AccPublic, "public"},
		{AccPrivate, "private"},
		{AccProtected, "protected"},
		{AccStatic, "static"},
		{AccFinal, "final"},
		{AccSynchronized, "synchronized"},
		{AccBridge, "bridge"},
		{AccVarargs, "varargs"},
		{AccNative, "native"},
		{AccAbstract, "abstract"},
		{AccStrict, "strict"},
		{AccSynthetic, "synthetic"},
	}
)

const (
	knownClassFlags  = AccPublic | AccFinal | AccSuper | AccInterface | AccAbstract | AccSynthetic | AccAnnotation | AccEnum
	knownFieldFlags  = AccPublic | AccPrivate | AccProtected | AccStatic | AccFinal | AccVolatile | AccTransient | AccSynthetic | AccEnum
	knownMethodFlags = AccPublic | AccPrivate | AccProtected | AccStatic | AccFinal | AccSynchronized | AccBridge | AccVarargs | AccNative | AccAbstract | AccStrict | AccSynthetic
)

func (k FlagKind) String() string {
	switch k {
	case ClassFlags:
		return "class"
	case FieldFlags:
		return "field"
	case MethodFlags:
		return "method"
	default:
		return fmt.Sprintf("FlagKind(%d)", uint8(k))
	}
}

// Known is the set of bits this decoder accepts for the entity kind.
func (k FlagKind) Known() AccessFlags {
	switch k {
	case ClassFlags:
		return knownClassFlags
	case FieldFlags:
		return knownFieldFlags
	case MethodFlags:
		return knownMethodFlags
	default:
		return 0
	}
}

func (k FlagKind) names() []flagName {
	switch k {
	case ClassFlags:
		return classFlagNames
	case FieldFlags:
		return fieldFlagNames
	case MethodFlags:
		return methodFlagNames
	default:
		return nil
	}
}

// Valid reports whether every bit of f belongs to the known set for k.
func (f AccessFlags) Valid(k FlagKind) bool {
	return f&^k.Known() == 0
}

// Names lists the flags set in f, in declaration order, as read for k.
func (f AccessFlags) Names(k FlagKind) []string {
	var names []string
	for _, fn := range k.names() {
		if f&fn.flag != 0 {
			names = append(names, fn.name)
		}
	}
	return names
}

type ConstantTag uint8

const (
	ConstantUtf8               ConstantTag = 1
	ConstantInteger            ConstantTag = 3
	ConstantFloat              ConstantTag = 4
	ConstantLong               ConstantTag = 5
	ConstantDouble             ConstantTag = 6
	ConstantClass              ConstantTag = 7
	ConstantString             ConstantTag = 8
	ConstantFieldref           ConstantTag = 9
	ConstantMethodref          ConstantTag = 10
	ConstantInterfaceMethodref ConstantTag = 11
	ConstantNameAndType        ConstantTag = 12
)

func (t ConstantTag) String() string {
	switch t {
	case ConstantUtf8:
		return "Utf8"
	case ConstantInteger:
		return "Integer"
	case ConstantFloat:
		return "Float"
	case ConstantLong:
		return "Long"
	case ConstantDouble:
		return "Double"
	case ConstantClass:
		return "Class"
	case ConstantString:
		return "String"
	case ConstantFieldref:
		return "Fieldref"
	case ConstantMethodref:
		return "Methodref"
	case ConstantInterfaceMethodref:
		return "InterfaceMethodref"
	case ConstantNameAndType:
		return "NameAndType"
	default:
		return fmt.Sprintf("ConstantTag(%d)", uint8(t))
	}
}

// Wide reports whether entries with this tag occupy two pool slots.
func (t ConstantTag) Wide() bool {
	return t == ConstantLong || t == ConstantDouble
}
