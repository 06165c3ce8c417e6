package classfile

import (
	"errors"
	"fmt"
)

// Low-level read failures. They never escape Parse unwrapped; the assembler
// translates them into an InvalidClassDataError that keeps them as its cause.
var (
	ErrUnexpectedEOF       = errors.New("unexpected end of data")
	ErrInvalidModifiedUTF8 = errors.New("invalid modified utf-8 sequence")
)

// InvalidClassDataError is the generic structural failure: bad magic, bad
// flags, malformed attributes, bad instructions, dangling pool indices.
// Err holds the low-level cause when there is one.
type InvalidClassDataError struct {
	Message string
	Err     error
}

func (e *InvalidClassDataError) Error() string {
	return "invalid class file: " + e.Message
}

func (e *InvalidClassDataError) Unwrap() error {
	return e.Err
}

// UnsupportedVersionError reports a well-formed header whose version lies
// outside the supported range.
type UnsupportedVersionError struct {
	Major uint16
	Minor uint16
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported class file version %d.%d", e.Major, e.Minor)
}

// InvalidTypeDescriptorError carries a field or method descriptor that does
// not follow the descriptor grammar.
type InvalidTypeDescriptorError struct {
	Descriptor string
}

func (e *InvalidTypeDescriptorError) Error() string {
	return "invalid type descriptor: " + e.Descriptor
}

// InvalidConstantPoolIndexError is returned by pool lookups for index 0,
// indices past the end and indices landing on the second slot of a long or
// double.
type InvalidConstantPoolIndexError struct {
	Index uint16
}

func (e *InvalidConstantPoolIndexError) Error() string {
	return fmt.Sprintf("invalid constant pool index: %d", e.Index)
}

// InvalidClassData builds an InvalidClassDataError with a formatted message
// and no cause.
func InvalidClassData(format string, args ...any) error {
	return &InvalidClassDataError{Message: fmt.Sprintf(format, args...)}
}

// classDataError translates any failure raised while decoding into one of
// the public error kinds.
func classDataError(err error) error {
	if err == nil {
		return nil
	}

	var (
		invalid     *InvalidClassDataError
		version     *UnsupportedVersionError
		descriptor  *InvalidTypeDescriptorError
		badPoolSlot *InvalidConstantPoolIndexError
	)
	switch {
	case errors.As(err, &invalid):
		return invalid
	case errors.As(err, &version):
		return version
	case errors.As(err, &descriptor):
		return descriptor
	case errors.As(err, &badPoolSlot):
		return &InvalidClassDataError{Message: badPoolSlot.Error(), Err: badPoolSlot}
	case errors.Is(err, ErrUnexpectedEOF):
		return &InvalidClassDataError{Message: "unexpected end of class file", Err: err}
	case errors.Is(err, ErrInvalidModifiedUTF8):
		return &InvalidClassDataError{Message: "invalid cesu8 string", Err: err}
	default:
		return &InvalidClassDataError{Message: err.Error(), Err: err}
	}
}
