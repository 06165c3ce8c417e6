package format

import (
	"bytes"
	"io"

	"github.com/dhamidi/classreader/classfile"
	"gopkg.in/yaml.v3"
)

type YAMLEncoder struct {
	w     io.Writer
	opts  Options
	class *classfile.ClassFile
}

func NewYAMLEncoder(w io.Writer, opts ...Option) *YAMLEncoder {
	return &YAMLEncoder{w: w, opts: newOptions(opts)}
}

func (e *YAMLEncoder) Encode(class *classfile.ClassFile) error {
	e.class = class
	return write(e.w, e)
}

func (e *YAMLEncoder) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(buildClassData(e.class, e.opts)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
