package classfile

import "strings"

// decodeMUTF8 decodes the JVM's modified UTF-8 encoding, used for every
// string in a class file's constant pool. MUTF-8 differs from strict
// UTF-8 in three points: U+0000 is encoded as the two-byte sequence
// C0 80 rather than a bare 00 byte; code points above the Basic
// Multilingual Plane are encoded as a surrogate pair of three-byte
// sequences (six bytes total) rather than a single four-byte sequence;
// and a byte 0xED introducing a high-surrogate three-byte sequence must
// be paired with the following low-surrogate sequence to reconstitute
// the original code point.
func decodeMUTF8(b []byte) (string, error) {
	var sb strings.Builder
	sb.Grow(len(b))

	i := 0
	for i < len(b) {
		b0 := b[i]
		switch {
		case b0&0x80 == 0:
			// single byte, 0xxxxxxx. A bare 0x00 is illegal: NUL must be
			// encoded as the two-byte sequence C0 80.
			if b0 == 0x00 {
				return "", malformed("MUTF-8: embedded NUL byte at offset %d", i)
			}
			sb.WriteByte(b0)
			i++

		case b0&0xE0 == 0xC0:
			if i+1 >= len(b) {
				return "", malformed("MUTF-8: truncated 2-byte sequence at offset %d", i)
			}
			b1 := b[i+1]
			if b1&0xC0 != 0x80 {
				return "", malformed("MUTF-8: illegal continuation byte at offset %d", i+1)
			}
			v := (rune(b0&0x1F) << 6) | rune(b1&0x3F)
			sb.WriteRune(v)
			i += 2

		case b0&0xF0 == 0xE0:
			if i+2 >= len(b) {
				return "", malformed("MUTF-8: truncated 3-byte sequence at offset %d", i)
			}
			b1, b2 := b[i+1], b[i+2]
			if b1&0xC0 != 0x80 || b2&0xC0 != 0x80 {
				return "", malformed("MUTF-8: illegal continuation bytes at offset %d", i)
			}
			v := (rune(b0&0x0F) << 12) | (rune(b1&0x3F) << 6) | rune(b2&0x3F)

			if v >= 0xD800 && v <= 0xDBFF {
				// high surrogate: must be followed by another 3-byte
				// sequence encoding the matching low surrogate.
				if i+5 >= len(b) {
					return "", malformed("MUTF-8: truncated surrogate pair at offset %d", i)
				}
				c0, c1, c2 := b[i+3], b[i+4], b[i+5]
				if c0&0xF0 != 0xE0 || c1&0xC0 != 0x80 || c2&0xC0 != 0x80 {
					return "", malformed("MUTF-8: illegal low-surrogate sequence at offset %d", i+3)
				}
				low := (rune(c0&0x0F) << 12) | (rune(c1&0x3F) << 6) | rune(c2&0x3F)
				if low < 0xDC00 || low > 0xDFFF {
					return "", malformed("MUTF-8: high surrogate not followed by low surrogate at offset %d", i)
				}
				cp := 0x10000 + ((v - 0xD800) << 10) + (low - 0xDC00)
				sb.WriteRune(cp)
				i += 6
			} else if v >= 0xDC00 && v <= 0xDFFF {
				return "", malformed("MUTF-8: unpaired low surrogate at offset %d", i)
			} else {
				sb.WriteRune(v)
				i += 3
			}

		default:
			return "", malformed("MUTF-8: illegal leading byte 0x%02x at offset %d", b0, i)
		}
	}
	return sb.String(), nil
}
