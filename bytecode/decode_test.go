package bytecode

import (
	"errors"
	"strings"
	"testing"

	"github.com/dhamidi/classreader/classfile"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		code    []byte
		address int
		want    Instruction
		next    int
	}{
		{"nop", []byte{0x00}, 0, Simple{Op: OpNop}, 1},
		{"aload_0", []byte{0x2a}, 0, Simple{Op: OpAload0}, 1},
		{"return", []byte{0x00, 0xb1}, 1, Simple{Op: OpReturn}, 2},
		{"iload", []byte{0x15, 0x04}, 0, LocalVariable{Op: OpIload, Index: 4}, 2},
		{"ret", []byte{0xa9, 0x02}, 0, LocalVariable{Op: OpRet, Index: 2}, 2},
		{"ldc", []byte{0x12, 0xff}, 0, ConstantRef{Op: OpLdc, Index: 255}, 2},
		{"ldc2_w", []byte{0x14, 0x01, 0x02}, 0, ConstantRef{Op: OpLdc2W, Index: 0x0102}, 3},
		{"invokevirtual", []byte{0xb6, 0x00, 0x0c}, 0, ConstantRef{Op: OpInvokevirtual, Index: 12}, 3},
		{"checkcast", []byte{0xc0, 0x00, 0x07}, 0, ConstantRef{Op: OpCheckcast, Index: 7}, 3},
		{"bipush negative", []byte{0x10, 0xfb}, 0, Bipush{Value: -5}, 2},
		{"sipush negative", []byte{0x11, 0xff, 0xfe}, 0, Sipush{Value: -2}, 3},
		{"iinc", []byte{0x84, 0x01, 0xff}, 0, Iinc{Index: 1, Delta: -1}, 3},
		{"invokeinterface", []byte{0xb9, 0x00, 0x0c, 0x02, 0x00}, 0, InvokeInterface{Index: 12, Count: 2}, 5},
		{"invokedynamic", []byte{0xba, 0x00, 0x09, 0x00, 0x00}, 0, InvokeDynamic{CallSite: 9}, 5},
		{"newarray", []byte{0xbc, 0x0a}, 0, NewArray{Type: ArrayInt}, 2},
		{"multianewarray", []byte{0xc5, 0x00, 0x03, 0x02}, 0, MultiANewArray{Index: 3, Dimensions: 2}, 4},
		{"ifnull forward", []byte{0xc6, 0x00, 0x05}, 0, Branch{Op: OpIfnull, Target: 5}, 3},
		{"jsr", []byte{0xa8, 0x00, 0x03}, 0, Branch{Op: OpJsr, Target: 3}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, next, err := Decode(tt.code, tt.address)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Decode() = %#v, want %#v", got, tt.want)
			}
			if next != tt.next {
				t.Errorf("next = %d, want %d", next, tt.next)
			}
		})
	}
}

func TestDecodeBranchTargets(t *testing.T) {
	code := make([]byte, 13)
	code[10] = byte(OpGoto)
	code[11], code[12] = 0xff, 0xfd // -3

	insn, next, err := Decode(code, 10)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	branch, ok := insn.(Branch)
	if !ok {
		t.Fatalf("Decode() = %T, want Branch", insn)
	}
	if branch.Target != 7 || next != 13 {
		t.Errorf("Target = %d, next = %d, want 7, 13", branch.Target, next)
	}
	if branch.String() != "goto 7" {
		t.Errorf("String() = %q", branch.String())
	}

	t.Run("below zero", func(t *testing.T) {
		_, _, err := Decode([]byte{0x00, byte(OpIfeq), 0xff, 0xfe}, 1)
		assertInvalid(t, err, "invalid jump offset")
	})

	t.Run("above 65535", func(t *testing.T) {
		code := make([]byte, 0xFFF0+3)
		code[0xFFF0] = byte(OpGoto)
		code[0xFFF1], code[0xFFF2] = 0x00, 0x20
		_, _, err := Decode(code, 0xFFF0)
		assertInvalid(t, err, "invalid jump offset")
	})

	t.Run("exactly 65535", func(t *testing.T) {
		code := make([]byte, 0xFFF0+3)
		code[0xFFF0] = byte(OpGoto)
		code[0xFFF1], code[0xFFF2] = 0x00, 0x0F
		insn, _, err := Decode(code, 0xFFF0)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if insn.(Branch).Target != 0xFFFF {
			t.Errorf("Target = %d, want 65535", insn.(Branch).Target)
		}
	})
}

func assertInvalid(t *testing.T, err error, prefix string) *classfile.InvalidClassDataError {
	t.Helper()
	var invalid *classfile.InvalidClassDataError
	if !errors.As(err, &invalid) {
		t.Fatalf("error = %v (%T), want *classfile.InvalidClassDataError", err, err)
	}
	if !strings.HasPrefix(invalid.Message, prefix) {
		t.Errorf("Message = %q, want prefix %q", invalid.Message, prefix)
	}
	return invalid
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		code    []byte
		address int
		prefix  string
	}{
		{"unknown opcode", []byte{0xcb}, 0, "invalid op code: 0xcb at address 0"},
		{"impdep", []byte{0x00, 0xfe}, 1, "invalid op code: 0xfe at address 1"},
		{"past the end", []byte{0x00}, 1, "cannot read instruction at address 1"},
		{"negative address", []byte{0x00}, -1, "cannot read instruction"},
		{"missing operand", []byte{0x15}, 0, "cannot find arguments for instruction at address 0"},
		{"short branch", []byte{0xa7, 0x00}, 0, "cannot find arguments"},
		{"short invokeinterface", []byte{0xb9, 0x00, 0x01, 0x01}, 0, "cannot find arguments"},
		{"invokeinterface reserved byte", []byte{0xb9, 0x00, 0x01, 0x01, 0x07}, 0, "expected a zero byte after invokeinterface"},
		{"invokedynamic reserved bytes", []byte{0xba, 0x00, 0x01, 0x00, 0x01}, 0, "expected two zero bytes after invokedynamic"},
		{"newarray type", []byte{0xbc, 0x03}, 0, "invalid type for newarray: 0x03 at address 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode(tt.code, tt.address)
			assertInvalid(t, err, tt.prefix)
		})
	}
}

func TestDecodeUnsupported(t *testing.T) {
	for _, op := range []Opcode{OpGotoW, OpJsrW, OpTableswitch, OpLookupswitch, OpWide} {
		t.Run(op.String(), func(t *testing.T) {
			code := []byte{byte(OpNop), byte(op), 0, 0, 0, 0}
			_, _, err := Decode(code, 1)
			invalid := assertInvalid(t, err, "unsupported instruction "+op.String())

			var unsupported *UnsupportedInstructionError
			if !errors.As(invalid, &unsupported) {
				t.Fatalf("Expected a nested *UnsupportedInstructionError, got %v", invalid.Err)
			}
			if unsupported.Opcode != op || unsupported.Address != 1 {
				t.Errorf("UnsupportedInstructionError = %+v", unsupported)
			}
		})
	}
}

func TestDecodeAll(t *testing.T) {
	// int i = 0; while (i < 10) i++; return;
	code := []byte{
		0x03,             // 0: iconst_0
		0x3c,             // 1: istore_1
		0x1b,             // 2: iload_1
		0x10, 0x0a,       // 3: bipush 10
		0xa2, 0x00, 0x09, // 5: if_icmpge 14
		0x84, 0x01, 0x01, // 8: iinc 1, 1
		0xa7, 0xff, 0xf7, // 11: goto 2
		0xb1,             // 14: return
	}
	insns, err := DecodeAll(code)
	if err != nil {
		t.Fatalf("DecodeAll() error = %v", err)
	}

	want := []string{
		"0: iconst_0",
		"1: istore_1",
		"2: iload_1",
		"3: bipush 10",
		"5: if_icmpge 14",
		"8: iinc 1, 1",
		"11: goto 2",
		"14: return",
	}
	if len(insns) != len(want) {
		t.Fatalf("DecodeAll() returned %d instructions, want %d", len(insns), len(want))
	}
	for i, w := range want {
		if got := insns[i].String(); got != w {
			t.Errorf("insns[%d] = %q, want %q", i, got, w)
		}
	}

	t.Run("empty", func(t *testing.T) {
		insns, err := DecodeAll(nil)
		if err != nil || len(insns) != 0 {
			t.Errorf("DecodeAll(nil) = %v, %v", insns, err)
		}
	})

	t.Run("stops at first failure", func(t *testing.T) {
		_, err := DecodeAll([]byte{0x00, 0x00, 0xc8, 0x00, 0x00, 0x00, 0x00})
		assertInvalid(t, err, "unsupported instruction goto_w at address 2")
	})
}

func TestInstructionString(t *testing.T) {
	tests := []struct {
		insn Instruction
		want string
	}{
		{Simple{Op: OpAconstNull}, "aconst_null"},
		{LocalVariable{Op: OpAstore, Index: 5}, "astore 5"},
		{ConstantRef{Op: OpGetstatic, Index: 2}, "getstatic #2"},
		{Iinc{Index: 1, Delta: -1}, "iinc 1, -1"},
		{InvokeInterface{Index: 12, Count: 2}, "invokeinterface #12, 2"},
		{InvokeDynamic{CallSite: 4}, "invokedynamic #4"},
		{NewArray{Type: ArrayBoolean}, "newarray boolean"},
		{MultiANewArray{Index: 3, Dimensions: 2}, "multianewarray #3, 2"},
		{Sipush{Value: -300}, "sipush -300"},
	}
	for _, tt := range tests {
		if got := tt.insn.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestEveryOpcodeHasALayout(t *testing.T) {
	for op := range opcodeNames {
		if layouts[op] == layoutInvalid {
			t.Errorf("%s has no operand layout", op)
		}
	}
	for b := 0; b < 256; b++ {
		if _, named := opcodeNames[Opcode(b)]; !named && layouts[b] != layoutInvalid {
			t.Errorf("byte %#02x has a layout but no name", b)
		}
	}
}

func TestMnemonicsAreUnique(t *testing.T) {
	if len(opcodeNames) != len(mnemonics) {
		t.Errorf("got %d distinct opcodes for %d mnemonics", len(opcodeNames), len(mnemonics))
	}
}

func TestDecodedShapeMatchesLayout(t *testing.T) {
	for op, name := range opcodeNames {
		l := layouts[op]
		if l == layoutUnsupported {
			continue
		}
		code := []byte{byte(op), 0, 0, 0, 0}
		if l == layoutNewArray {
			code[1] = byte(ArrayInt)
		}
		insn, _, err := Decode(code, 0)
		if err != nil {
			t.Errorf("%s: Decode() error = %v", name, err)
			continue
		}
		if insn.Opcode() != op {
			t.Errorf("%s: Opcode() = %s", name, insn.Opcode())
		}

		var got layout
		switch insn.(type) {
		case Simple:
			got = layoutNone
		case LocalVariable:
			got = layoutLocal
		case ConstantRef:
			got = layoutConstant2
			if op == OpLdc {
				got = layoutConstant1
			}
		case Branch:
			got = layoutBranch
		case Bipush:
			got = layoutBipush
		case Sipush:
			got = layoutSipush
		case Iinc:
			got = layoutIinc
		case InvokeInterface:
			got = layoutInvokeInterface
		case InvokeDynamic:
			got = layoutInvokeDynamic
		case NewArray:
			got = layoutNewArray
		case MultiANewArray:
			got = layoutMultiANewArray
		}
		if got != l {
			t.Errorf("%s decoded as %T, which does not match its operand layout", name, insn)
		}
	}
}
