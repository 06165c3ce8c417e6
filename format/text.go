package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/classreader/bytecode"
	"github.com/dhamidi/classreader/classfile"
	"github.com/fatih/color"
)

type palette struct {
	keyword  *color.Color
	name     *color.Color
	member   *color.Color
	addr     *color.Color
	mnemonic *color.Color
	warn     *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		keyword:  color.New(color.Bold, color.FgHiBlue),
		name:     color.New(color.Bold, color.FgHiMagenta),
		member:   color.New(color.FgHiCyan),
		addr:     color.New(color.Faint),
		mnemonic: color.New(color.FgHiGreen),
		warn:     color.New(color.FgRed),
	}
	for _, c := range []*color.Color{p.keyword, p.name, p.member, p.addr, p.mnemonic, p.warn} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// TextEncoder renders a class the way javap -c does, optionally colored.
type TextEncoder struct {
	w     io.Writer
	opts  Options
	pal   palette
	class *classfile.ClassFile
}

func NewTextEncoder(w io.Writer, opts ...Option) *TextEncoder {
	o := newOptions(opts)
	return &TextEncoder{w: w, opts: o, pal: newPalette(o.Color)}
}

func (e *TextEncoder) Encode(class *classfile.ClassFile) error {
	e.class = class
	return write(e.w, e)
}

func (e *TextEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	c := e.class

	if c.SourceFile != "" {
		fmt.Fprintf(&sb, "Compiled from %q\n", c.SourceFile)
	}
	e.writeClassDeclaration(&sb)
	sb.WriteString(" {\n")
	fmt.Fprintf(&sb, "  version: %s\n", c.Version)
	fmt.Fprintf(&sb, "  flags: %s\n", strings.Join(c.AccessFlags.Names(classfile.ClassFlags), ", "))
	if c.Deprecated {
		sb.WriteString("  deprecated: true\n")
	}

	for _, f := range c.Fields {
		sb.WriteString("\n")
		e.writeField(&sb, &f)
	}
	for i := range c.Methods {
		sb.WriteString("\n")
		e.writeMethod(&sb, &c.Methods[i])
	}
	sb.WriteString("}\n")

	if e.opts.ConstantPool && c.ConstantPool != nil {
		sb.WriteString("\n")
		sb.WriteString(c.ConstantPool.String())
	}
	return []byte(sb.String()), nil
}

func (e *TextEncoder) writeClassDeclaration(sb *strings.Builder) {
	c := e.class
	var words []string
	for _, name := range c.AccessFlags.Names(classfile.ClassFlags) {
		switch name {
		case "public", "final":
			words = append(words, name)
		case "abstract":
			if !c.AccessFlags.IsInterface() {
				words = append(words, name)
			}
		}
	}
	switch {
	case c.IsAnnotation():
		words = append(words, "@interface")
	case c.IsEnum():
		words = append(words, "enum")
	case c.IsInterface():
		words = append(words, "interface")
	default:
		words = append(words, "class")
	}
	sb.WriteString(e.pal.keyword.Sprint(strings.Join(words, " ")))
	sb.WriteString(" ")
	sb.WriteString(e.pal.name.Sprint(c.SourceName()))

	if c.HasSuperClass() && c.SuperClass != "java/lang/Object" && !c.AccessFlags.IsInterface() {
		fmt.Fprintf(sb, " extends %s", classfile.InternalToSourceName(c.SuperClass))
	}
	if len(c.Interfaces) > 0 {
		keyword := " implements "
		if c.AccessFlags.IsInterface() {
			keyword = " extends "
		}
		names := make([]string, len(c.Interfaces))
		for i, iface := range c.Interfaces {
			names[i] = classfile.InternalToSourceName(iface)
		}
		sb.WriteString(keyword)
		sb.WriteString(strings.Join(names, ", "))
	}
}

func (e *TextEncoder) modifiers(flags []string) string {
	if len(flags) == 0 {
		return ""
	}
	return e.pal.keyword.Sprint(strings.Join(flags, " ")) + " "
}

func (e *TextEncoder) writeField(sb *strings.Builder, f *classfile.Field) {
	fmt.Fprintf(sb, "  %s%s %s", e.modifiers(f.AccessFlags.Names(classfile.FieldFlags)), f.Type, e.pal.member.Sprint(f.Name))
	if f.ConstantValue != nil {
		fmt.Fprintf(sb, " = %s", f.ConstantValue)
	}
	sb.WriteString(";\n")
	fmt.Fprintf(sb, "    descriptor: %s\n", f.Descriptor())
	if f.Deprecated {
		sb.WriteString("    deprecated: true\n")
	}
}

func (e *TextEncoder) writeMethod(sb *strings.Builder, m *classfile.Method) {
	sb.WriteString("  ")
	sb.WriteString(e.modifiers(m.AccessFlags.Names(classfile.MethodFlags)))

	md := m.ParsedDescriptor
	params := make([]string, len(md.Parameters))
	for i, p := range md.Parameters {
		params[i] = p.String()
	}
	switch {
	case m.IsStaticInitializer():
		sb.WriteString("{}")
	case m.IsConstructor():
		fmt.Fprintf(sb, "%s(%s)", e.pal.member.Sprint(e.class.SourceName()), strings.Join(params, ", "))
	default:
		fmt.Fprintf(sb, "%s %s(%s)", returnTypeStr(md), e.pal.member.Sprint(m.Name), strings.Join(params, ", "))
	}
	if len(m.ThrownExceptions) > 0 {
		names := make([]string, len(m.ThrownExceptions))
		for i, ex := range m.ThrownExceptions {
			names[i] = classfile.InternalToSourceName(ex)
		}
		fmt.Fprintf(sb, " throws %s", strings.Join(names, ", "))
	}
	sb.WriteString(";\n")
	fmt.Fprintf(sb, "    descriptor: %s\n", m.Descriptor)
	if m.Deprecated {
		sb.WriteString("    deprecated: true\n")
	}

	if m.Code == nil {
		return
	}
	code := m.Code
	fmt.Fprintf(sb, "    Code: stack=%d, locals=%d, length=%d\n", code.MaxStack, code.MaxLocals, len(code.Code))
	if e.opts.Disassemble {
		e.writeInstructions(sb, code)
	}
	if len(code.ExceptionTable.Entries) > 0 {
		sb.WriteString("    Exception table:\n")
		sb.WriteString("       from    to  target type\n")
		for _, h := range code.ExceptionTable.Entries {
			catch := "any"
			if !h.CatchesAll() {
				catch = "Class " + h.CatchClass
			}
			fmt.Fprintf(sb, "      %5d %5d %5d   %s\n", h.StartPC, h.EndPC, h.HandlerPC, catch)
		}
	}
	if code.LineNumberTable != nil && len(code.LineNumberTable.Entries) > 0 {
		sb.WriteString("    LineNumberTable:\n")
		for _, l := range code.LineNumberTable.Entries {
			fmt.Fprintf(sb, "      line %d: %d\n", l.LineNumber, l.StartPC)
		}
	}
}

func (e *TextEncoder) writeInstructions(sb *strings.Builder, code *classfile.Code) {
	insns, err := bytecode.DecodeAll(code.Code)
	if err != nil {
		fmt.Fprintf(sb, "      %s\n", e.pal.warn.Sprintf("cannot disassemble: %v", err))
		return
	}
	for _, insn := range insns {
		text := insn.Instruction.String()
		mnemonic, operands, _ := strings.Cut(text, " ")
		fmt.Fprintf(sb, "      %s %s", e.pal.addr.Sprintf("%4d:", insn.Address), e.pal.mnemonic.Sprint(mnemonic))
		if operands != "" {
			sb.WriteString(" ")
			sb.WriteString(operands)
		}
		sb.WriteString("\n")
	}
}
