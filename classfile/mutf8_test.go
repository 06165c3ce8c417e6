package classfile

import "testing"

func TestDecodeModifiedUTF8(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{"empty", nil, ""},
		{"ascii", []byte("java/lang/Object"), "java/lang/Object"},
		{"nul", []byte{'a', 0xC0, 0x80, 'b'}, "a\x00b"},
		{"two byte", []byte{0xC3, 0xA9}, "é"},
		{"three byte", []byte{0xE2, 0x82, 0xAC}, "€"},
		// U+1F600 as the surrogate pair D83D DE00.
		{"supplementary", []byte{0xED, 0xA0, 0xBD, 0xED, 0xB8, 0x80}, "\U0001F600"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeModifiedUTF8(tt.input)
			if err != nil {
				t.Fatalf("decodeModifiedUTF8() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("decodeModifiedUTF8() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeModifiedUTF8Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"raw nul", []byte{'a', 0x00}},
		{"lone continuation", []byte{0x80}},
		{"truncated two byte", []byte{0xC3}},
		{"truncated three byte", []byte{0xE2, 0x82}},
		{"overlong", []byte{0xC1, 0xBF}},
		{"overlong three byte", []byte{0xE0, 0x80, 0xAF}},
		{"four byte form", []byte{0xF0, 0x9F, 0x98, 0x80}},
		{"lone high surrogate", []byte{0xED, 0xA0, 0xBD, 'x'}},
		{"lone low surrogate", []byte{0xED, 0xB8, 0x80}},
		{"invalid byte", []byte{0xFF}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, err := decodeModifiedUTF8(tt.input); err != ErrInvalidModifiedUTF8 {
				t.Errorf("decodeModifiedUTF8() = %q, %v, want ErrInvalidModifiedUTF8", got, err)
			}
		})
	}
}
