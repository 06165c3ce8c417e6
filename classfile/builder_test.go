package classfile

import (
	"encoding/binary"
	"math"
)

// classBuilder assembles class files in memory for tests. Pool entries are
// appended in call order; utf8 and class entries are deduplicated.
type classBuilder struct {
	major, minor uint16
	flags        uint16
	pool         []byte
	nextIndex    uint16
	utf8s        map[string]uint16
	classes      map[string]uint16
	this, super  uint16
	interfaces   []uint16
	fields       [][]byte
	methods      [][]byte
	attrs        []testAttr
}

type testAttr struct {
	name uint16
	data []byte
}

type testHandler struct {
	start, end, handler uint16
	catchType           uint16
}

func newClassBuilder(name string) *classBuilder {
	b := &classBuilder{
		major:     52,
		flags:     uint16(AccPublic | AccSuper),
		nextIndex: 1,
		utf8s:     map[string]uint16{},
		classes:   map[string]uint16{},
	}
	b.this = b.class(name)
	b.super = b.class("java/lang/Object")
	return b
}

func u2(v uint16) []byte {
	return binary.BigEndian.AppendUint16(nil, v)
}

func u4(v uint32) []byte {
	return binary.BigEndian.AppendUint32(nil, v)
}

func (b *classBuilder) constant(tag ConstantTag, payload []byte) uint16 {
	index := b.nextIndex
	b.pool = append(b.pool, byte(tag))
	b.pool = append(b.pool, payload...)
	b.nextIndex++
	if tag.Wide() {
		b.nextIndex++
	}
	return index
}

// rawConstant appends an entry with an arbitrary tag byte.
func (b *classBuilder) rawConstant(tag byte, payload ...byte) uint16 {
	index := b.nextIndex
	b.pool = append(b.pool, tag)
	b.pool = append(b.pool, payload...)
	b.nextIndex++
	return index
}

func (b *classBuilder) utf8(s string) uint16 {
	if i, ok := b.utf8s[s]; ok {
		return i
	}
	i := b.constant(ConstantUtf8, append(u2(uint16(len(s))), s...))
	b.utf8s[s] = i
	return i
}

func (b *classBuilder) class(name string) uint16 {
	if i, ok := b.classes[name]; ok {
		return i
	}
	i := b.constant(ConstantClass, u2(b.utf8(name)))
	b.classes[name] = i
	return i
}

func (b *classBuilder) integer(v int32) uint16 {
	return b.constant(ConstantInteger, u4(uint32(v)))
}

func (b *classBuilder) float(v float32) uint16 {
	return b.constant(ConstantFloat, u4(math.Float32bits(v)))
}

func (b *classBuilder) long(v int64) uint16 {
	return b.constant(ConstantLong, binary.BigEndian.AppendUint64(nil, uint64(v)))
}

func (b *classBuilder) double(v float64) uint16 {
	return b.constant(ConstantDouble, binary.BigEndian.AppendUint64(nil, math.Float64bits(v)))
}

func (b *classBuilder) str(s string) uint16 {
	return b.constant(ConstantString, u2(b.utf8(s)))
}

func (b *classBuilder) nameAndType(name, desc string) uint16 {
	n, d := b.utf8(name), b.utf8(desc)
	return b.constant(ConstantNameAndType, append(u2(n), u2(d)...))
}

func (b *classBuilder) methodref(class, name, desc string) uint16 {
	c, nt := b.class(class), b.nameAndType(name, desc)
	return b.constant(ConstantMethodref, append(u2(c), u2(nt)...))
}

func (b *classBuilder) attr(name string, data []byte) testAttr {
	return testAttr{name: b.utf8(name), data: data}
}

func (b *classBuilder) codeAttr(maxStack, maxLocals uint16, code []byte, handlers []testHandler, nested ...testAttr) testAttr {
	var data []byte
	data = append(data, u2(maxStack)...)
	data = append(data, u2(maxLocals)...)
	data = append(data, u4(uint32(len(code)))...)
	data = append(data, code...)
	data = append(data, u2(uint16(len(handlers)))...)
	for _, h := range handlers {
		data = append(data, u2(h.start)...)
		data = append(data, u2(h.end)...)
		data = append(data, u2(h.handler)...)
		data = append(data, u2(h.catchType)...)
	}
	data = append(data, encodeAttrs(nested)...)
	return b.attr(AttrCode, data)
}

func encodeAttrs(attrs []testAttr) []byte {
	out := u2(uint16(len(attrs)))
	for _, a := range attrs {
		out = append(out, u2(a.name)...)
		out = append(out, u4(uint32(len(a.data)))...)
		out = append(out, a.data...)
	}
	return out
}

func (b *classBuilder) member(flags AccessFlags, name, desc string, attrs []testAttr) []byte {
	out := u2(uint16(flags))
	out = append(out, u2(b.utf8(name))...)
	out = append(out, u2(b.utf8(desc))...)
	return append(out, encodeAttrs(attrs)...)
}

func (b *classBuilder) addField(flags AccessFlags, name, desc string, attrs ...testAttr) {
	b.fields = append(b.fields, b.member(flags, name, desc, attrs))
}

func (b *classBuilder) addMethod(flags AccessFlags, name, desc string, attrs ...testAttr) {
	b.methods = append(b.methods, b.member(flags, name, desc, attrs))
}

func (b *classBuilder) addInterface(name string) {
	b.interfaces = append(b.interfaces, b.class(name))
}

func (b *classBuilder) addAttr(a testAttr) {
	b.attrs = append(b.attrs, a)
}

func (b *classBuilder) bytes() []byte {
	out := u4(Magic)
	out = append(out, u2(b.minor)...)
	out = append(out, u2(b.major)...)
	out = append(out, u2(b.nextIndex)...)
	out = append(out, b.pool...)
	out = append(out, u2(b.flags)...)
	out = append(out, u2(b.this)...)
	out = append(out, u2(b.super)...)
	out = append(out, u2(uint16(len(b.interfaces)))...)
	for _, i := range b.interfaces {
		out = append(out, u2(i)...)
	}
	out = append(out, u2(uint16(len(b.fields)))...)
	for _, f := range b.fields {
		out = append(out, f...)
	}
	out = append(out, u2(uint16(len(b.methods)))...)
	for _, m := range b.methods {
		out = append(out, m...)
	}
	return append(out, encodeAttrs(b.attrs)...)
}
