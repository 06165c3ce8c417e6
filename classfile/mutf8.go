package classfile

import (
	"strings"
	"unicode/utf16"
)

// decodeModifiedUTF8 decodes the class-file string encoding: NUL is written
// as the two bytes C0 80, and supplementary characters are written as a
// surrogate pair of three-byte sequences instead of one four-byte sequence.
// Raw zero bytes, four-byte forms, overlong encodings other than C0 80 and
// unpaired surrogates are rejected.
func decodeModifiedUTF8(b []byte) (string, error) {
	ascii := true
	for _, c := range b {
		if c == 0 || c >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return string(b), nil
	}

	var sb strings.Builder
	sb.Grow(len(b))
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c == 0:
			return "", ErrInvalidModifiedUTF8
		case c < 0x80:
			sb.WriteByte(c)
			i++
		case c&0xE0 == 0xC0:
			if i+1 >= len(b) || !isContinuation(b[i+1]) {
				return "", ErrInvalidModifiedUTF8
			}
			r := rune(c&0x1F)<<6 | rune(b[i+1]&0x3F)
			if r < 0x80 && r != 0 {
				return "", ErrInvalidModifiedUTF8
			}
			sb.WriteRune(r)
			i += 2
		case c&0xF0 == 0xE0:
			r, ok := decodeThreeByte(b, i)
			if !ok {
				return "", ErrInvalidModifiedUTF8
			}
			i += 3
			switch {
			case utf16.IsSurrogate(r) && r < 0xDC00:
				low, ok := decodeThreeByte(b, i)
				if !ok || low < 0xDC00 || low > 0xDFFF {
					return "", ErrInvalidModifiedUTF8
				}
				sb.WriteRune(utf16.DecodeRune(r, low))
				i += 3
			case utf16.IsSurrogate(r):
				return "", ErrInvalidModifiedUTF8
			default:
				sb.WriteRune(r)
			}
		default:
			return "", ErrInvalidModifiedUTF8
		}
	}
	return sb.String(), nil
}

func decodeThreeByte(b []byte, i int) (rune, bool) {
	if i+2 >= len(b) || b[i]&0xF0 != 0xE0 || !isContinuation(b[i+1]) || !isContinuation(b[i+2]) {
		return 0, false
	}
	r := rune(b[i]&0x0F)<<12 | rune(b[i+1]&0x3F)<<6 | rune(b[i+2]&0x3F)
	if r < 0x800 {
		return 0, false
	}
	return r, true
}

func isContinuation(c byte) bool {
	return c&0xC0 == 0x80
}
