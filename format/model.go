package format

import (
	"github.com/dhamidi/classreader/bytecode"
	"github.com/dhamidi/classreader/classfile"
)

// classData is the document shared by the structured encoders.
type classData struct {
	Name         string         `json:"name" yaml:"name"`
	SourceName   string         `json:"sourceName" yaml:"sourceName"`
	Kind         string         `json:"kind" yaml:"kind"`
	Version      versionData    `json:"version" yaml:"version"`
	Flags        []string       `json:"flags" yaml:"flags"`
	SuperClass   string         `json:"superClass,omitempty" yaml:"superClass,omitempty"`
	Interfaces   []string       `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`
	SourceFile   string         `json:"sourceFile,omitempty" yaml:"sourceFile,omitempty"`
	Deprecated   bool           `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Fields       []fieldData    `json:"fields,omitempty" yaml:"fields,omitempty"`
	Methods      []methodData   `json:"methods,omitempty" yaml:"methods,omitempty"`
	ConstantPool []constantData `json:"constantPool,omitempty" yaml:"constantPool,omitempty"`
}

type versionData struct {
	Major   uint16 `json:"major" yaml:"major"`
	Minor   uint16 `json:"minor" yaml:"minor"`
	Release string `json:"release,omitempty" yaml:"release,omitempty"`
}

type fieldData struct {
	Name          string   `json:"name" yaml:"name"`
	Type          string   `json:"type" yaml:"type"`
	Descriptor    string   `json:"descriptor" yaml:"descriptor"`
	Flags         []string `json:"flags" yaml:"flags"`
	ConstantValue string   `json:"constantValue,omitempty" yaml:"constantValue,omitempty"`
	Deprecated    bool     `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
}

type methodData struct {
	Name       string    `json:"name" yaml:"name"`
	Descriptor string    `json:"descriptor" yaml:"descriptor"`
	Signature  string    `json:"signature" yaml:"signature"`
	Flags      []string  `json:"flags" yaml:"flags"`
	Exceptions []string  `json:"exceptions,omitempty" yaml:"exceptions,omitempty"`
	Deprecated bool      `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Code       *codeData `json:"code,omitempty" yaml:"code,omitempty"`
}

type codeData struct {
	MaxStack         uint16        `json:"maxStack" yaml:"maxStack"`
	MaxLocals        uint16        `json:"maxLocals" yaml:"maxLocals"`
	Length           int           `json:"length" yaml:"length"`
	ExceptionTable   []handlerData `json:"exceptionTable,omitempty" yaml:"exceptionTable,omitempty"`
	LineNumbers      []lineData    `json:"lineNumbers,omitempty" yaml:"lineNumbers,omitempty"`
	Attributes       []string      `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Instructions     []string      `json:"instructions,omitempty" yaml:"instructions,omitempty"`
	DisassemblyError string        `json:"disassemblyError,omitempty" yaml:"disassemblyError,omitempty"`
}

type handlerData struct {
	StartPC   uint16 `json:"startPc" yaml:"startPc"`
	EndPC     uint16 `json:"endPc" yaml:"endPc"`
	HandlerPC uint16 `json:"handlerPc" yaml:"handlerPc"`
	CatchType string `json:"catchType,omitempty" yaml:"catchType,omitempty"`
}

type lineData struct {
	StartPC uint16 `json:"startPc" yaml:"startPc"`
	Line    uint16 `json:"line" yaml:"line"`
}

type constantData struct {
	Index uint16 `json:"index" yaml:"index"`
	Kind  string `json:"kind" yaml:"kind"`
	Text  string `json:"text,omitempty" yaml:"text,omitempty"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

func classKind(c *classfile.ClassFile) string {
	switch {
	case c.IsAnnotation():
		return "annotation"
	case c.IsEnum():
		return "enum"
	case c.IsInterface():
		return "interface"
	default:
		return "class"
	}
}

func buildClassData(c *classfile.ClassFile, opts Options) classData {
	data := classData{
		Name:       c.Name,
		SourceName: c.SourceName(),
		Kind:       classKind(c),
		Version: versionData{
			Major:   c.Version.Major,
			Minor:   c.Version.Minor,
			Release: c.Version.Name(),
		},
		Flags:      nonNil(c.AccessFlags.Names(classfile.ClassFlags)),
		SuperClass: c.SuperClass,
		Interfaces: c.Interfaces,
		SourceFile: c.SourceFile,
		Deprecated: c.Deprecated,
	}

	for _, f := range c.Fields {
		fd := fieldData{
			Name:       f.Name,
			Type:       f.Type.String(),
			Descriptor: f.Descriptor(),
			Flags:      nonNil(f.AccessFlags.Names(classfile.FieldFlags)),
			Deprecated: f.Deprecated,
		}
		if f.ConstantValue != nil {
			fd.ConstantValue = f.ConstantValue.String()
		}
		data.Fields = append(data.Fields, fd)
	}

	for i := range c.Methods {
		data.Methods = append(data.Methods, buildMethodData(&c.Methods[i], opts))
	}

	if opts.ConstantPool && c.ConstantPool != nil {
		for index, entry := range c.ConstantPool.All() {
			cd := constantData{Index: index, Kind: entry.Tag().String()}
			text, err := c.ConstantPool.TextOf(index)
			if err != nil {
				cd.Error = err.Error()
			} else {
				cd.Text = text
			}
			data.ConstantPool = append(data.ConstantPool, cd)
		}
	}
	return data
}

func buildMethodData(m *classfile.Method, opts Options) methodData {
	md := methodData{
		Name:       m.Name,
		Descriptor: m.Descriptor,
		Signature:  m.ParsedDescriptor.String(),
		Flags:      nonNil(m.AccessFlags.Names(classfile.MethodFlags)),
		Exceptions: m.ThrownExceptions,
		Deprecated: m.Deprecated,
	}
	if m.Code == nil {
		return md
	}

	code := &codeData{
		MaxStack:  m.Code.MaxStack,
		MaxLocals: m.Code.MaxLocals,
		Length:    len(m.Code.Code),
	}
	for _, e := range m.Code.ExceptionTable.Entries {
		code.ExceptionTable = append(code.ExceptionTable, handlerData{
			StartPC:   e.StartPC,
			EndPC:     e.EndPC,
			HandlerPC: e.HandlerPC,
			CatchType: e.CatchClass,
		})
	}
	if m.Code.LineNumberTable != nil {
		for _, l := range m.Code.LineNumberTable.Entries {
			code.LineNumbers = append(code.LineNumbers, lineData{StartPC: l.StartPC, Line: l.LineNumber})
		}
	}
	for _, a := range m.Code.Attributes {
		code.Attributes = append(code.Attributes, a.String())
	}
	if opts.Disassemble {
		insns, err := bytecode.DecodeAll(m.Code.Code)
		if err != nil {
			code.DisassemblyError = err.Error()
		}
		for _, insn := range insns {
			code.Instructions = append(code.Instructions, insn.String())
		}
	}
	md.Code = code
	return md
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
