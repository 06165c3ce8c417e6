package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/classreader/classfile"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(class *classfile.ClassFile) error
}

// Options control which parts of a class an encoder renders.
type Options struct {
	Disassemble  bool
	ConstantPool bool
	Color        bool
}

type Option func(*Options)

// WithDisassembly adds the decoded instructions of every method body.
func WithDisassembly() Option {
	return func(o *Options) {
		o.Disassemble = true
	}
}

func WithConstantPool() Option {
	return func(o *Options) {
		o.ConstantPool = true
	}
}

// WithColor turns terminal colors on or off. Only the text encoder uses
// colors.
func WithColor(enabled bool) Option {
	return func(o *Options) {
		o.Color = enabled
	}
}

func newOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Names lists the encoders known to New.
var Names = []string{"text", "line", "json", "yaml"}

// New returns the encoder registered under name.
func New(name string, w io.Writer, opts ...Option) (Encoder, error) {
	switch name {
	case "text":
		return NewTextEncoder(w, opts...), nil
	case "line":
		return NewLineEncoder(w, opts...), nil
	case "json":
		return NewJSONEncoder(w, opts...), nil
	case "yaml":
		return NewYAMLEncoder(w, opts...), nil
	default:
		return nil, fmt.Errorf("unknown format: %s (expected text, line, json, or yaml)", name)
	}
}

func write(w io.Writer, m encoding.TextMarshaler) error {
	text, err := m.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
