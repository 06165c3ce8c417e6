package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/classreader/bytecode"
	"github.com/dhamidi/classreader/classfile"
)

// LineEncoder writes one tab-separated record per class member, suited to
// grep and awk.
type LineEncoder struct {
	w     io.Writer
	opts  Options
	class *classfile.ClassFile
}

func NewLineEncoder(w io.Writer, opts ...Option) *LineEncoder {
	return &LineEncoder{w: w, opts: newOptions(opts)}
}

func (e *LineEncoder) Encode(class *classfile.ClassFile) error {
	e.class = class
	return write(e.w, e)
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	c := e.class

	fmt.Fprintf(&sb, "%s\t%s\t%s\t%s\n", classKind(c), c.SourceName(), c.Version, joinOrDash(c.AccessFlags.Names(classfile.ClassFlags)))

	if c.HasSuperClass() {
		fmt.Fprintf(&sb, "extends\t%s\n", classfile.InternalToSourceName(c.SuperClass))
	}
	for _, iface := range c.Interfaces {
		fmt.Fprintf(&sb, "implements\t%s\n", classfile.InternalToSourceName(iface))
	}

	for _, f := range c.Fields {
		fmt.Fprintf(&sb, "field\t%s\t%s\t%s\n",
			f.Name,
			f.Type.String(),
			joinOrDash(f.AccessFlags.Names(classfile.FieldFlags)),
		)
	}

	for i := range c.Methods {
		m := &c.Methods[i]
		fmt.Fprintf(&sb, "method\t%s\t%s\t%s\t%s\n",
			m.Name,
			returnTypeStr(m.ParsedDescriptor),
			parametersStr(m.ParsedDescriptor),
			joinOrDash(m.AccessFlags.Names(classfile.MethodFlags)),
		)
		if e.opts.Disassemble && m.Code != nil {
			if err := e.writeInstructions(&sb, m); err != nil {
				return nil, err
			}
		}
	}

	if e.opts.ConstantPool && c.ConstantPool != nil {
		for index, entry := range c.ConstantPool.All() {
			text, err := c.ConstantPool.TextOf(index)
			if err != nil {
				return nil, err
			}
			fmt.Fprintf(&sb, "constant\t%d\t%s\t%s\n", index, entry.Tag(), text)
		}
	}

	return []byte(sb.String()), nil
}

func (e *LineEncoder) writeInstructions(sb *strings.Builder, m *classfile.Method) error {
	insns, err := bytecode.DecodeAll(m.Code.Code)
	if err != nil {
		return fmt.Errorf("disassemble %s%s: %w", m.Name, m.Descriptor, err)
	}
	for _, insn := range insns {
		fmt.Fprintf(sb, "insn\t%s\t%d\t%s\n", m.Name, insn.Address, insn.Instruction)
	}
	return nil
}

func returnTypeStr(md classfile.MethodDescriptor) string {
	if md.ReturnType == nil {
		return "void"
	}
	return md.ReturnType.String()
}

func parametersStr(md classfile.MethodDescriptor) string {
	if len(md.Parameters) == 0 {
		return "-"
	}
	parts := make([]string, len(md.Parameters))
	for i, p := range md.Parameters {
		parts[i] = p.String()
	}
	return strings.Join(parts, ",")
}

func joinOrDash(s []string) string {
	if len(s) == 0 {
		return "-"
	}
	return strings.Join(s, ",")
}
