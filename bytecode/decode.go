package bytecode

import (
	"fmt"

	"github.com/dhamidi/classreader/classfile"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("bytecode")

// maxAddress is the largest address a 16-bit branch can reach.
const maxAddress = 0xFFFF

type layout uint8

const (
	layoutInvalid layout = iota
	layoutNone
	layoutLocal
	layoutConstant1
	layoutConstant2
	layoutBranch
	layoutBipush
	layoutSipush
	layoutIinc
	layoutInvokeInterface
	layoutInvokeDynamic
	layoutNewArray
	layoutMultiANewArray
	layoutUnsupported
)

// layouts is the decode table: the operand shape of every opcode byte.
// Bytes left at layoutInvalid are not opcodes.
var layouts = func() [256]layout {
	var t [256]layout
	for op := OpNop; op <= OpDconst1; op++ {
		t[op] = layoutNone
	}
	for op := OpIload0; op <= OpSaload; op++ {
		t[op] = layoutNone
	}
	for op := OpIstore0; op <= OpLxor; op++ {
		t[op] = layoutNone
	}
	for op := OpI2l; op <= OpDcmpg; op++ {
		t[op] = layoutNone
	}
	for op := OpIreturn; op <= OpReturn; op++ {
		t[op] = layoutNone
	}
	for _, op := range []Opcode{OpArraylength, OpAthrow, OpMonitorenter, OpMonitorexit} {
		t[op] = layoutNone
	}

	for op := OpIload; op <= OpAload; op++ {
		t[op] = layoutLocal
	}
	for op := OpIstore; op <= OpAstore; op++ {
		t[op] = layoutLocal
	}
	t[OpRet] = layoutLocal

	t[OpLdc] = layoutConstant1
	for _, op := range []Opcode{
		OpLdcW, OpLdc2W,
		OpGetstatic, OpPutstatic, OpGetfield, OpPutfield,
		OpInvokevirtual, OpInvokespecial, OpInvokestatic,
		OpNew, OpAnewarray, OpCheckcast, OpInstanceof,
	} {
		t[op] = layoutConstant2
	}

	for op := OpIfeq; op <= OpJsr; op++ {
		t[op] = layoutBranch
	}
	t[OpIfnull] = layoutBranch
	t[OpIfnonnull] = layoutBranch

	t[OpBipush] = layoutBipush
	t[OpSipush] = layoutSipush
	t[OpIinc] = layoutIinc
	t[OpInvokeinterface] = layoutInvokeInterface
	t[OpInvokedynamic] = layoutInvokeDynamic
	t[OpNewarray] = layoutNewArray
	t[OpMultianewarray] = layoutMultiANewArray

	for _, op := range []Opcode{OpTableswitch, OpLookupswitch, OpWide, OpGotoW, OpJsrW} {
		t[op] = layoutUnsupported
	}
	return t
}()

// UnsupportedInstructionError marks a valid opcode that this decoder does
// not handle: the switches, wide and the 32-bit branches. It always reaches
// callers wrapped in a *classfile.InvalidClassDataError.
type UnsupportedInstructionError struct {
	Opcode  Opcode
	Address int
}

func (e *UnsupportedInstructionError) Error() string {
	return fmt.Sprintf("unsupported instruction %s at address %d", e.Opcode, e.Address)
}

// Decode decodes the instruction whose opcode is at address and returns it
// together with the address of the following instruction.
func Decode(code []byte, address int) (Instruction, int, error) {
	if address < 0 || address >= len(code) {
		return nil, 0, classfile.InvalidClassData("cannot read instruction at address %d", address)
	}
	op := Opcode(code[address])
	r := classfile.NewByteReader(code[address+1:])

	var insn Instruction
	switch layouts[op] {
	case layoutNone:
		insn = Simple{Op: op}
	case layoutLocal:
		insn = LocalVariable{Op: op, Index: r.ReadU1()}
	case layoutConstant1:
		insn = ConstantRef{Op: op, Index: uint16(r.ReadU1())}
	case layoutConstant2:
		insn = ConstantRef{Op: op, Index: r.ReadU2()}
	case layoutBranch:
		offset := r.ReadI2()
		if r.Err() != nil {
			break
		}
		target := address + int(offset)
		if target < 0 || target > maxAddress {
			return nil, 0, classfile.InvalidClassData("invalid jump offset %d at address %d", offset, address)
		}
		insn = Branch{Op: op, Target: uint16(target)}
	case layoutBipush:
		insn = Bipush{Value: r.ReadI1()}
	case layoutSipush:
		insn = Sipush{Value: r.ReadI2()}
	case layoutIinc:
		insn = Iinc{Index: r.ReadU1(), Delta: r.ReadI1()}
	case layoutInvokeInterface:
		index := r.ReadU2()
		count := r.ReadU1()
		zero := r.ReadU1()
		if r.Err() == nil && zero != 0 {
			return nil, 0, classfile.InvalidClassData("expected a zero byte after invokeinterface and the index at address %d", address)
		}
		insn = InvokeInterface{Index: index, Count: count}
	case layoutInvokeDynamic:
		index := r.ReadU2()
		zero := r.ReadU2()
		if r.Err() == nil && zero != 0 {
			return nil, 0, classfile.InvalidClassData("expected two zero bytes after invokedynamic and the index at address %d", address)
		}
		insn = InvokeDynamic{CallSite: index}
	case layoutNewArray:
		t := ArrayType(r.ReadU1())
		if r.Err() == nil && !t.Valid() {
			return nil, 0, classfile.InvalidClassData("invalid type for newarray: %#02x at address %d", uint8(t), address)
		}
		insn = NewArray{Type: t}
	case layoutMultiANewArray:
		insn = MultiANewArray{Index: r.ReadU2(), Dimensions: r.ReadU1()}
	case layoutUnsupported:
		log.Debugf("unsupported instruction %s at address %d", op, address)
		unsupported := &UnsupportedInstructionError{Opcode: op, Address: address}
		return nil, 0, &classfile.InvalidClassDataError{Message: unsupported.Error(), Err: unsupported}
	default:
		return nil, 0, classfile.InvalidClassData("invalid op code: %#02x at address %d", uint8(op), address)
	}

	if r.Err() != nil {
		return nil, 0, &classfile.InvalidClassDataError{
			Message: fmt.Sprintf("cannot find arguments for instruction at address %d", address),
			Err:     r.Err(),
		}
	}
	return insn, address + 1 + r.Offset(), nil
}

// DecodeAll disassembles a whole method body. It stops at the first
// instruction that cannot be decoded.
func DecodeAll(code []byte) ([]AddressedInstruction, error) {
	var insns []AddressedInstruction
	for address := 0; address < len(code); {
		insn, next, err := Decode(code, address)
		if err != nil {
			return nil, err
		}
		insns = append(insns, AddressedInstruction{Address: address, Instruction: insn})
		address = next
	}
	return insns, nil
}
