package buffer

import (
	"bytes"
	"testing"
)

func TestDecodeStringDropsMalformed(t *testing.T) {
	got := string(DecodeString("caf\xc3\xa9\xff!"))
	if got != "café!" {
		t.Errorf("DecodeString = %q, want %q", got, "café!")
	}

	// A literal replacement character is valid input and survives.
	if got := DecodeString("�"); len(got) != 1 {
		t.Errorf("DecodeString dropped a valid U+FFFD: %q", string(got))
	}
}

func TestEncodeString(t *testing.T) {
	got := EncodeString([]rune{'a', 0xD800, 'b', 0x110000})
	if got != "ab" {
		t.Errorf("EncodeString = %q, want %q", got, "ab")
	}
}

func TestUTF16RoundTrip(t *testing.T) {
	text := []rune("Hello 世界 🎉\n")

	encoded, err := EncodeUTF16(text)
	if err != nil {
		t.Fatalf("EncodeUTF16: %v", err)
	}
	// 'H' little endian, no BOM.
	if !bytes.HasPrefix(encoded, []byte{'H', 0}) {
		t.Errorf("unexpected prefix % x", encoded[:4])
	}

	decoded, err := DecodeUTF16(encoded)
	if err != nil {
		t.Fatalf("DecodeUTF16: %v", err)
	}
	if string(decoded) != string(text) {
		t.Errorf("round trip = %q, want %q", string(decoded), string(text))
	}
}

func TestDecodeUTF16BigEndianBOM(t *testing.T) {
	in := []byte{0xFE, 0xFF, 0x00, 'o', 0x00, 'k'}

	got, err := DecodeUTF16(in)
	if err != nil {
		t.Fatalf("DecodeUTF16: %v", err)
	}
	if string(got) != "ok" {
		t.Errorf("DecodeUTF16 = %q, want %q", string(got), "ok")
	}
}

func TestDecodeUTF16DropsUnpairedSurrogate(t *testing.T) {
	// 'a', lone high surrogate, 'b'
	in := []byte{'a', 0, 0x00, 0xD8, 'b', 0}

	got, err := DecodeUTF16(in)
	if err != nil {
		t.Fatalf("DecodeUTF16: %v", err)
	}
	if string(got) != "ab" {
		t.Errorf("DecodeUTF16 = %q, want %q", string(got), "ab")
	}
}

func TestUTF16KeepsReplacementCharacter(t *testing.T) {
	text := []rune("a\uFFFDb")

	encoded, err := EncodeUTF16(text)
	if err != nil {
		t.Fatalf("EncodeUTF16: %v", err)
	}
	decoded, err := DecodeUTF16(encoded)
	if err != nil {
		t.Fatalf("DecodeUTF16: %v", err)
	}
	if string(decoded) != string(text) {
		t.Errorf("round trip = %q, want %q", string(decoded), string(text))
	}
}

func TestDecodeUTF16Malformed(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"lone low surrogate", []byte{'a', 0, 0x00, 0xDC, 'b', 0}, "ab"},
		{"high surrogate at end", []byte{'a', 0, 0x3D, 0xD8}, "a"},
		{"trailing odd byte", []byte{'o', 0, 'k', 0, 'x'}, "ok"},
		{"surrogate pair kept", []byte{0x3C, 0xD8, 0x89, 0xDF}, "🎉"},
		{"big endian lone surrogate", []byte{0xFE, 0xFF, 0xD8, 0x00, 0x00, 'z'}, "z"},
		{"replacement after bom", []byte{0xFF, 0xFE, 0xFD, 0xFF}, "\uFFFD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeUTF16(tt.in)
			if err != nil {
				t.Fatalf("DecodeUTF16: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("DecodeUTF16 = %q, want %q", string(got), tt.want)
			}
		})
	}
}
