// Package canon produces canonical JSON and content digests.
//
// Canonical form follows RFC 8785 with two house rules: strings are NFC
// normalised before encoding, and non-integer numbers are rejected so that
// digests never depend on float formatting.
package canon

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// Marshal encodes v as canonical JSON.
//
// v may be any value encoding/json can marshal; it is first passed through
// encoding/json and then re-encoded canonically.
func Marshal(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("canon: marshal: %w", err)
	}
	return Canonicalize(raw)
}

// Canonicalize re-encodes arbitrary JSON text in canonical form.
func Canonicalize(data []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("canon: decode: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("canon: trailing data after JSON value")
	}

	var buf bytes.Buffer
	if err := encode(&buf, tree); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// KeyCollisionError reports two object keys that are equal after NFC
// normalisation.
type KeyCollisionError struct {
	A, B string
}

func (e *KeyCollisionError) Error() string {
	return fmt.Sprintf("canon: keys %+q and %+q collide after NFC normalisation", e.A, e.B)
}

func encode(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case json.Number:
		n, err := strconv.ParseInt(val.String(), 10, 64)
		if err != nil {
			return fmt.Errorf("canon: non-integer number %s is not allowed", val)
		}
		buf.WriteString(strconv.FormatInt(n, 10))
	case string:
		encodeString(buf, val)
	case []any:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encode(buf, elem); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
	case map[string]any:
		// Keys are sorted in their normalised form; two keys that only
		// differ before NFC would encode identically and are rejected.
		byNorm := make(map[string]string, len(val))
		keys := make([]string, 0, len(val))
		for k := range val {
			nk := norm.NFC.String(k)
			if other, dup := byNorm[nk]; dup {
				return &KeyCollisionError{A: other, B: k}
			}
			byNorm[nk] = k
			keys = append(keys, nk)
		}
		slices.SortFunc(keys, compareUTF16)

		buf.WriteByte('{')
		for i, nk := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			encodeString(buf, nk)
			buf.WriteByte(':')
			k := byNorm[nk]
			if err := encode(buf, val[k]); err != nil {
				return fmt.Errorf("%q: %w", k, err)
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("canon: unsupported type %T", v)
	}
	return nil
}

// encodeString writes s NFC-normalised, escaping only what RFC 8785 requires.
func encodeString(buf *bytes.Buffer, s string) {
	const hex = "0123456789abcdef"

	buf.WriteByte('"')
	for _, r := range norm.NFC.String(s) {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				buf.WriteString(`\u00`)
				buf.WriteByte(hex[r>>4])
				buf.WriteByte(hex[r&0xf])
				continue
			}
			buf.WriteRune(r)
		}
	}
	buf.WriteByte('"')
}

// compareUTF16 orders keys by UTF-16 code units as RFC 8785 requires.
// Plain string comparison orders by UTF-8 bytes, which differs above the BMP.
func compareUTF16(a, b string) int {
	if isASCII(a) && isASCII(b) {
		return strings.Compare(a, b)
	}
	return slices.Compare(utf16.Encode([]rune(a)), utf16.Encode([]rune(b)))
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
