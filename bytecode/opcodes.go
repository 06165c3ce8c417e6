package bytecode

import "fmt"

type Opcode uint8

const (
	OpNop             Opcode = 0x00
	OpAconstNull      Opcode = 0x01
	OpIconstM1        Opcode = 0x02
	OpIconst0         Opcode = 0x03
	OpIconst1         Opcode = 0x04
	OpIconst2         Opcode = 0x05
	OpIconst3         Opcode = 0x06
	OpIconst4         Opcode = 0x07
	OpIconst5         Opcode = 0x08
	OpLconst0         Opcode = 0x09
	OpLconst1         Opcode = 0x0A
	OpFconst0         Opcode = 0x0B
	OpFconst1         Opcode = 0x0C
	OpFconst2         Opcode = 0x0D
	OpDconst0         Opcode = 0x0E
	OpDconst1         Opcode = 0x0F
	OpBipush          Opcode = 0x10
	OpSipush          Opcode = 0x11
	OpLdc             Opcode = 0x12
	OpLdcW            Opcode = 0x13
	OpLdc2W           Opcode = 0x14
	OpIload           Opcode = 0x15
	OpLload           Opcode = 0x16
	OpFload           Opcode = 0x17
	OpDload           Opcode = 0x18
	OpAload           Opcode = 0x19
	OpIload0          Opcode = 0x1A
	OpIload1          Opcode = 0x1B
	OpIload2          Opcode = 0x1C
	OpIload3          Opcode = 0x1D
	OpLload0          Opcode = 0x1E
	OpLload1          Opcode = 0x1F
	OpLload2          Opcode = 0x20
	OpLload3          Opcode = 0x21
	OpFload0          Opcode = 0x22
	OpFload1          Opcode = 0x23
	OpFload2          Opcode = 0x24
	OpFload3          Opcode = 0x25
	OpDload0          Opcode = 0x26
	OpDload1          Opcode = 0x27
	OpDload2          Opcode = 0x28
	OpDload3          Opcode = 0x29
	OpAload0          Opcode = 0x2A
	OpAload1          Opcode = 0x2B
	OpAload2          Opcode = 0x2C
	OpAload3          Opcode = 0x2D
	OpIaload          Opcode = 0x2E
	OpLaload          Opcode = 0x2F
	OpFaload          Opcode = 0x30
	OpDaload          Opcode = 0x31
	OpAaload          Opcode = 0x32
	OpBaload          Opcode = 0x33
	OpCaload          Opcode = 0x34
	OpSaload          Opcode = 0x35
	OpIstore          Opcode = 0x36
	OpLstore          Opcode = 0x37
	OpFstore          Opcode = 0x38
	OpDstore          Opcode = 0x39
	OpAstore          Opcode = 0x3A
	OpIstore0         Opcode = 0x3B
	OpIstore1         Opcode = 0x3C
	OpIstore2         Opcode = 0x3D
	OpIstore3         Opcode = 0x3E
	OpLstore0         Opcode = 0x3F
	OpLstore1         Opcode = 0x40
	OpLstore2         Opcode = 0x41
	OpLstore3         Opcode = 0x42
	OpFstore0         Opcode = 0x43
	OpFstore1         Opcode = 0x44
	OpFstore2         Opcode = 0x45
	OpFstore3         Opcode = 0x46
	OpDstore0         Opcode = 0x47
	OpDstore1         Opcode = 0x48
	OpDstore2         Opcode = 0x49
	OpDstore3         Opcode = 0x4A
	OpAstore0         Opcode = 0x4B
	OpAstore1         Opcode = 0x4C
	OpAstore2         Opcode = 0x4D
	OpAstore3         Opcode = 0x4E
	OpIastore         Opcode = 0x4F
	OpLastore         Opcode = 0x50
	OpFastore         Opcode = 0x51
	OpDastore         Opcode = 0x52
	OpAastore         Opcode = 0x53
	OpBastore         Opcode = 0x54
	OpCastore         Opcode = 0x55
	OpSastore         Opcode = 0x56
	OpPop             Opcode = 0x57
	OpPop2            Opcode = 0x58
	OpDup             Opcode = 0x59
	OpDupX1           Opcode = 0x5A
	OpDupX2           Opcode = 0x5B
	OpDup2            Opcode = 0x5C
	OpDup2X1          Opcode = 0x5D
	OpDup2X2          Opcode = 0x5E
	OpSwap            Opcode = 0x5F
	OpIadd            Opcode = 0x60
	OpLadd            Opcode = 0x61
	OpFadd            Opcode = 0x62
	OpDadd            Opcode = 0x63
	OpIsub            Opcode = 0x64
	OpLsub            Opcode = 0x65
	OpFsub            Opcode = 0x66
	OpDsub            Opcode = 0x67
	OpImul            Opcode = 0x68
	OpLmul            Opcode = 0x69
	OpFmul            Opcode = 0x6A
	OpDmul            Opcode = 0x6B
	OpIdiv            Opcode = 0x6C
	OpLdiv            Opcode = 0x6D
	OpFdiv            Opcode = 0x6E
	OpDdiv            Opcode = 0x6F
	OpIrem            Opcode = 0x70
	OpLrem            Opcode = 0x71
	OpFrem            Opcode = 0x72
	OpDrem            Opcode = 0x73
	OpIneg            Opcode = 0x74
	OpLneg            Opcode = 0x75
	OpFneg            Opcode = 0x76
	OpDneg            Opcode = 0x77
	OpIshl            Opcode = 0x78
	OpLshl            Opcode = 0x79
	OpIshr            Opcode = 0x7A
	OpLshr            Opcode = 0x7B
	OpIushr           Opcode = 0x7C
	OpLushr           Opcode = 0x7D
	OpIand            Opcode = 0x7E
	OpLand            Opcode = 0x7F
	OpIor             Opcode = 0x80
	OpLor             Opcode = 0x81
	OpIxor            Opcode = 0x82
	OpLxor            Opcode = 0x83
	OpIinc            Opcode = 0x84
	OpI2l             Opcode = 0x85
	OpI2f             Opcode = 0x86
	OpI2d             Opcode = 0x87
	OpL2i             Opcode = 0x88
	OpL2f             Opcode = 0x89
	OpL2d             Opcode = 0x8A
	OpF2i             Opcode = 0x8B
	OpF2l             Opcode = 0x8C
	OpF2d             Opcode = 0x8D
	OpD2i             Opcode = 0x8E
	OpD2l             Opcode = 0x8F
	OpD2f             Opcode = 0x90
	OpI2b             Opcode = 0x91
	OpI2c             Opcode = 0x92
	OpI2s             Opcode = 0x93
	OpLcmp            Opcode = 0x94
	OpFcmpl           Opcode = 0x95
	OpFcmpg           Opcode = 0x96
	OpDcmpl           Opcode = 0x97
	OpDcmpg           Opcode = 0x98
	OpIfeq            Opcode = 0x99
	OpIfne            Opcode = 0x9A
	OpIflt            Opcode = 0x9B
	OpIfge            Opcode = 0x9C
	OpIfgt            Opcode = 0x9D
	OpIfle            Opcode = 0x9E
	OpIfIcmpeq        Opcode = 0x9F
	OpIfIcmpne        Opcode = 0xA0
	OpIfIcmplt        Opcode = 0xA1
	OpIfIcmpge        Opcode = 0xA2
	OpIfIcmpgt        Opcode = 0xA3
	OpIfIcmple        Opcode = 0xA4
	OpIfAcmpeq        Opcode = 0xA5
	OpIfAcmpne        Opcode = 0xA6
	OpGoto            Opcode = 0xA7
	OpJsr             Opcode = 0xA8
	OpRet             Opcode = 0xA9
	OpTableswitch     Opcode = 0xAA
	OpLookupswitch    Opcode = 0xAB
	OpIreturn         Opcode = 0xAC
	OpLreturn         Opcode = 0xAD
	OpFreturn         Opcode = 0xAE
	OpDreturn         Opcode = 0xAF
	OpAreturn         Opcode = 0xB0
	OpReturn          Opcode = 0xB1
	OpGetstatic       Opcode = 0xB2
	OpPutstatic       Opcode = 0xB3
	OpGetfield        Opcode = 0xB4
	OpPutfield        Opcode = 0xB5
	OpInvokevirtual   Opcode = 0xB6
	OpInvokespecial   Opcode = 0xB7
	OpInvokestatic    Opcode = 0xB8
	OpInvokeinterface Opcode = 0xB9
	OpInvokedynamic   Opcode = 0xBA
	OpNew             Opcode = 0xBB
	OpNewarray        Opcode = 0xBC
	OpAnewarray       Opcode = 0xBD
	OpArraylength     Opcode = 0xBE
	OpAthrow          Opcode = 0xBF
	OpCheckcast       Opcode = 0xC0
	OpInstanceof      Opcode = 0xC1
	OpMonitorenter    Opcode = 0xC2
	OpMonitorexit     Opcode = 0xC3
	OpWide            Opcode = 0xC4
	OpMultianewarray  Opcode = 0xC5
	OpIfnull          Opcode = 0xC6
	OpIfnonnull       Opcode = 0xC7
	OpGotoW           Opcode = 0xC8
	OpJsrW            Opcode = 0xC9
)

// mnemonics pairs every opcode with its assembler name.
var mnemonics = []struct {
	op   Opcode
	name string
}{
	{OpNop, "nop"}, {OpAconstNull, "aconst_null"},
	{OpIconstM1, "iconst_m1"}, {OpIconst0, "iconst_0"}, {OpIconst1, "iconst_1"}, {OpIconst2, "iconst_2"},
	{OpIconst3, "iconst_3"}, {OpIconst4, "iconst_4"}, {OpIconst5, "iconst_5"},
	{OpLconst0, "lconst_0"}, {OpLconst1, "lconst_1"},
	{OpFconst0, "fconst_0"}, {OpFconst1, "fconst_1"}, {OpFconst2, "fconst_2"},
	{OpDconst0, "dconst_0"}, {OpDconst1, "dconst_1"},
	{OpBipush, "bipush"}, {OpSipush, "sipush"},
	{OpLdc, "ldc"}, {OpLdcW, "ldc_w"}, {OpLdc2W, "ldc2_w"},
	{OpIload, "iload"}, {OpLload, "lload"}, {OpFload, "fload"}, {OpDload, "dload"}, {OpAload, "aload"},
	{OpIload0, "iload_0"}, {OpIload1, "iload_1"}, {OpIload2, "iload_2"}, {OpIload3, "iload_3"},
	{OpLload0, "lload_0"}, {OpLload1, "lload_1"}, {OpLload2, "lload_2"}, {OpLload3, "lload_3"},
	{OpFload0, "fload_0"}, {OpFload1, "fload_1"}, {OpFload2, "fload_2"}, {OpFload3, "fload_3"},
	{OpDload0, "dload_0"}, {OpDload1, "dload_1"}, {OpDload2, "dload_2"}, {OpDload3, "dload_3"},
	{OpAload0, "aload_0"}, {OpAload1, "aload_1"}, {OpAload2, "aload_2"}, {OpAload3, "aload_3"},
	{OpIaload, "iaload"}, {OpLaload, "laload"}, {OpFaload, "faload"}, {OpDaload, "daload"},
	{OpAaload, "aaload"}, {OpBaload, "baload"}, {OpCaload, "caload"}, {OpSaload, "saload"},
	{OpIstore, "istore"}, {OpLstore, "lstore"}, {OpFstore, "fstore"}, {OpDstore, "dstore"}, {OpAstore, "astore"},
	{OpIstore0, "istore_0"}, {OpIstore1, "istore_1"}, {OpIstore2, "istore_2"}, {OpIstore3, "istore_3"},
	{OpLstore0, "lstore_0"}, {OpLstore1, "lstore_1"}, {OpLstore2, "lstore_2"}, {OpLstore3, "lstore_3"},
	{OpFstore0, "fstore_0"}, {OpFstore1, "fstore_1"}, {OpFstore2, "fstore_2"}, {OpFstore3, "fstore_3"},
	{OpDstore0, "dstore_0"}, {OpDstore1, "dstore_1"}, {OpDstore2, "dstore_2"}, {OpDstore3, "dstore_3"},
	{OpAstore0, "astore_0"}, {OpAstore1, "astore_1"}, {OpAstore2, "astore_2"}, {OpAstore3, "astore_3"},
	{OpIastore, "iastore"}, {OpLastore, "lastore"}, {OpFastore, "fastore"}, {OpDastore, "dastore"},
	{OpAastore, "aastore"}, {OpBastore, "bastore"}, {OpCastore, "castore"}, {OpSastore, "sastore"},
	{OpPop, "pop"}, {OpPop2, "pop2"},
	{OpDup, "dup"}, {OpDupX1, "dup_x1"}, {OpDupX2, "dup_x2"},
	{OpDup2, "dup2"}, {OpDup2X1, "dup2_x1"}, {OpDup2X2, "dup2_x2"}, {OpSwap, "swap"},
	{OpIadd, "iadd"}, {OpLadd, "ladd"}, {OpFadd, "fadd"}, {OpDadd, "dadd"},
	{OpIsub, "isub"}, {OpLsub, "lsub"}, {OpFsub, "fsub"}, {OpDsub, "dsub"},
	{OpImul, "imul"}, {OpLmul, "lmul"}, {OpFmul, "fmul"}, {OpDmul, "dmul"},
	{OpIdiv, "idiv"}, {OpLdiv, "ldiv"}, {OpFdiv, "fdiv"}, {OpDdiv, "ddiv"},
	{OpIrem, "irem"}, {OpLrem, "lrem"}, {OpFrem, "frem"}, {OpDrem, "drem"},
	{OpIneg, "ineg"}, {OpLneg, "lneg"}, {OpFneg, "fneg"}, {OpDneg, "dneg"},
	{OpIshl, "ishl"}, {OpLshl, "lshl"}, {OpIshr, "ishr"}, {OpLshr, "lshr"},
	{OpIushr, "iushr"}, {OpLushr, "lushr"},
	{OpIand, "iand"}, {OpLand, "land"}, {OpIor, "ior"}, {OpLor, "lor"}, {OpIxor, "ixor"}, {OpLxor, "lxor"},
	{OpIinc, "iinc"},
	{OpI2l, "i2l"}, {OpI2f, "i2f"}, {OpI2d, "i2d"}, {OpL2i, "l2i"}, {OpL2f, "l2f"}, {OpL2d, "l2d"},
	{OpF2i, "f2i"}, {OpF2l, "f2l"}, {OpF2d, "f2d"}, {OpD2i, "d2i"}, {OpD2l, "d2l"}, {OpD2f, "d2f"},
	{OpI2b, "i2b"}, {OpI2c, "i2c"}, {OpI2s, "i2s"},
	{OpLcmp, "lcmp"}, {OpFcmpl, "fcmpl"}, {OpFcmpg, "fcmpg"}, {OpDcmpl, "dcmpl"}, {OpDcmpg, "dcmpg"},
	{OpIfeq, "ifeq"}, {OpIfne, "ifne"}, {OpIflt, "iflt"}, {OpIfge, "ifge"}, {OpIfgt, "ifgt"}, {OpIfle, "ifle"},
	{OpIfIcmpeq, "if_icmpeq"}, {OpIfIcmpne, "if_icmpne"}, {OpIfIcmplt, "if_icmplt"},
	{OpIfIcmpge, "if_icmpge"}, {OpIfIcmpgt, "if_icmpgt"}, {OpIfIcmple, "if_icmple"},
	{OpIfAcmpeq, "if_acmpeq"}, {OpIfAcmpne, "if_acmpne"},
	{OpGoto, "goto"}, {OpJsr, "jsr"}, {OpRet, "ret"},
	{OpTableswitch, "tableswitch"}, {OpLookupswitch, "lookupswitch"},
	{OpIreturn, "ireturn"}, {OpLreturn, "lreturn"}, {OpFreturn, "freturn"}, {OpDreturn, "dreturn"},
	{OpAreturn, "areturn"}, {OpReturn, "return"},
	{OpGetstatic, "getstatic"}, {OpPutstatic, "putstatic"}, {OpGetfield, "getfield"}, {OpPutfield, "putfield"},
	{OpInvokevirtual, "invokevirtual"}, {OpInvokespecial, "invokespecial"}, {OpInvokestatic, "invokestatic"},
	{OpInvokeinterface, "invokeinterface"}, {OpInvokedynamic, "invokedynamic"},
	{OpNew, "new"}, {OpNewarray, "newarray"}, {OpAnewarray, "anewarray"}, {OpArraylength, "arraylength"},
	{OpAthrow, "athrow"}, {OpCheckcast, "checkcast"}, {OpInstanceof, "instanceof"},
	{OpMonitorenter, "monitorenter"}, {OpMonitorexit, "monitorexit"},
	{OpWide, "wide"}, {OpMultianewarray, "multianewarray"},
	{OpIfnull, "ifnull"}, {OpIfnonnull, "ifnonnull"},
	{OpGotoW, "goto_w"}, {OpJsrW, "jsr_w"},
}

var opcodeNames = func() map[Opcode]string {
	names := make(map[Opcode]string, len(mnemonics))
	for _, m := range mnemonics {
		names[m.op] = m.name
	}
	return names
}()

// String returns the assembler mnemonic, or a hex form for bytes that are
// not opcodes.
func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return fmt.Sprintf("opcode(%#02x)", uint8(op))
}

// ArrayType is the element type operand of newarray.
type ArrayType uint8

const (
	ArrayBoolean ArrayType = 4
	ArrayChar    ArrayType = 5
	ArrayFloat   ArrayType = 6
	ArrayDouble  ArrayType = 7
	ArrayByte    ArrayType = 8
	ArrayShort   ArrayType = 9
	ArrayInt     ArrayType = 10
	ArrayLong    ArrayType = 11
)

func (t ArrayType) Valid() bool {
	return t >= ArrayBoolean && t <= ArrayLong
}

func (t ArrayType) String() string {
	switch t {
	case ArrayBoolean:
		return "boolean"
	case ArrayChar:
		return "char"
	case ArrayFloat:
		return "float"
	case ArrayDouble:
		return "double"
	case ArrayByte:
		return "byte"
	case ArrayShort:
		return "short"
	case ArrayInt:
		return "int"
	case ArrayLong:
		return "long"
	default:
		return fmt.Sprintf("ArrayType(%d)", uint8(t))
	}
}
