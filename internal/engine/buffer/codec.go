package buffer

import (
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// DecodeString converts UTF-8 text into characters.
// Malformed byte sequences are dropped.
func DecodeString(s string) []rune {
	out := make([]rune, 0, len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		if r == utf8.RuneError && size == 1 {
			continue
		}
		out = append(out, r)
	}
	return out
}

// EncodeString converts characters into UTF-8 text.
// Invalid code points are dropped.
func EncodeString(text []rune) string {
	out := make([]byte, 0, len(text))
	for _, r := range text {
		if !utf8.ValidRune(r) {
			continue
		}
		out = utf8.AppendRune(out, r)
	}
	return string(out)
}

var utf16LE = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)

// DecodeUTF16 converts UTF-16 text into characters.
// A leading byte order mark selects the endianness; little endian is
// assumed otherwise. Unpaired surrogates and a trailing odd byte are dropped.
func DecodeUTF16(b []byte) ([]rune, error) {
	decoded, err := utf16LE.NewDecoder().Bytes(dropUnpaired(b))
	if err != nil {
		return nil, err
	}
	return DecodeString(string(decoded)), nil
}

// dropUnpaired returns b without unpaired surrogate code units and without
// a trailing odd byte. The byte order mark, if any, is kept for the decoder.
func dropUnpaired(b []byte) []byte {
	b = b[:len(b)&^1]
	unit := func(i int) uint16 { return uint16(b[i]) | uint16(b[i+1])<<8 }
	if len(b) >= 2 && b[0] == 0xFE && b[1] == 0xFF {
		unit = func(i int) uint16 { return uint16(b[i])<<8 | uint16(b[i+1]) }
	}

	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i += 2 {
		u := rune(unit(i))
		if !utf16.IsSurrogate(u) {
			out = append(out, b[i], b[i+1])
			continue
		}
		if u < 0xDC00 && i+3 < len(b) {
			if next := rune(unit(i + 2)); next >= 0xDC00 && next <= 0xDFFF {
				out = append(out, b[i:i+4]...)
				i += 2
			}
		}
	}
	return out
}

// EncodeUTF16 converts characters into little endian UTF-16 without a
// byte order mark.
func EncodeUTF16(text []rune) ([]byte, error) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	return enc.Bytes([]byte(EncodeString(text)))
}
