package bytecode

import "fmt"

// Instruction is one decoded instruction. The concrete types group opcodes
// by operand shape; Opcode tells which instruction of the group it is.
type Instruction interface {
	fmt.Stringer
	Opcode() Opcode
	instruction()
}

// Simple is an instruction without operands.
type Simple struct {
	Op Opcode
}

// LocalVariable loads, stores or returns through a local variable slot.
type LocalVariable struct {
	Op    Opcode
	Index uint8
}

// ConstantRef refers to a constant pool entry: a field, a method, a class
// or a loadable constant.
type ConstantRef struct {
	Op    Opcode
	Index uint16
}

// Branch is a conditional or unconditional jump, or jsr. Target is the
// absolute address in the method's code.
type Branch struct {
	Op     Opcode
	Target uint16
}

type Bipush struct {
	Value int8
}

type Sipush struct {
	Value int16
}

type Iinc struct {
	Index uint8
	Delta int8
}

type InvokeInterface struct {
	Index uint16
	Count uint8
}

// InvokeDynamic keeps the call site index only; bootstrap methods are not
// resolved.
type InvokeDynamic struct {
	CallSite uint16
}

type NewArray struct {
	Type ArrayType
}

type MultiANewArray struct {
	Index      uint16
	Dimensions uint8
}

func (i Simple) Opcode() Opcode        { return i.Op }
func (i LocalVariable) Opcode() Opcode { return i.Op }
func (i ConstantRef) Opcode() Opcode   { return i.Op }
func (i Branch) Opcode() Opcode        { return i.Op }
func (Bipush) Opcode() Opcode          { return OpBipush }
func (Sipush) Opcode() Opcode          { return OpSipush }
func (Iinc) Opcode() Opcode            { return OpIinc }
func (InvokeInterface) Opcode() Opcode { return OpInvokeinterface }
func (InvokeDynamic) Opcode() Opcode   { return OpInvokedynamic }
func (NewArray) Opcode() Opcode        { return OpNewarray }
func (MultiANewArray) Opcode() Opcode  { return OpMultianewarray }

func (Simple) instruction()          {}
func (LocalVariable) instruction()   {}
func (ConstantRef) instruction()     {}
func (Branch) instruction()          {}
func (Bipush) instruction()          {}
func (Sipush) instruction()          {}
func (Iinc) instruction()            {}
func (InvokeInterface) instruction() {}
func (InvokeDynamic) instruction()   {}
func (NewArray) instruction()        {}
func (MultiANewArray) instruction()  {}

func (i Simple) String() string {
	return i.Op.String()
}

func (i LocalVariable) String() string {
	return fmt.Sprintf("%s %d", i.Op, i.Index)
}

func (i ConstantRef) String() string {
	return fmt.Sprintf("%s #%d", i.Op, i.Index)
}

func (i Branch) String() string {
	return fmt.Sprintf("%s %d", i.Op, i.Target)
}

func (i Bipush) String() string {
	return fmt.Sprintf("bipush %d", i.Value)
}

func (i Sipush) String() string {
	return fmt.Sprintf("sipush %d", i.Value)
}

func (i Iinc) String() string {
	return fmt.Sprintf("iinc %d, %d", i.Index, i.Delta)
}

func (i InvokeInterface) String() string {
	return fmt.Sprintf("invokeinterface #%d, %d", i.Index, i.Count)
}

func (i InvokeDynamic) String() string {
	return fmt.Sprintf("invokedynamic #%d", i.CallSite)
}

func (i NewArray) String() string {
	return "newarray " + i.Type.String()
}

func (i MultiANewArray) String() string {
	return fmt.Sprintf("multianewarray #%d, %d", i.Index, i.Dimensions)
}

// AddressedInstruction pairs an instruction with the offset of its opcode.
type AddressedInstruction struct {
	Address     int
	Instruction Instruction
}

func (a AddressedInstruction) String() string {
	return fmt.Sprintf("%d: %s", a.Address, a.Instruction)
}
