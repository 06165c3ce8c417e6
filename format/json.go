package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/classreader/classfile"
)

type JSONEncoder struct {
	w     io.Writer
	opts  Options
	class *classfile.ClassFile
}

func NewJSONEncoder(w io.Writer, opts ...Option) *JSONEncoder {
	return &JSONEncoder{w: w, opts: newOptions(opts)}
}

func (e *JSONEncoder) Encode(class *classfile.ClassFile) error {
	e.class = class
	return write(e.w, e)
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	text, err := json.MarshalIndent(buildClassData(e.class, e.opts), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(text, '\n'), nil
}
