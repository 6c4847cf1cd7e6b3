// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package utf8codec

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/pbcodec/pbwire/internal/werrors"
)

// EncodeStringBytes is the inverse of Decode for the common Go case: a Go
// string is already a byte run, so encoding it just re-validates it byte
// for byte (a string built through unsafe conversion or a mis-decoded
// source may still carry invalid UTF-8) and applies the same fatal/
// replace policy Decode does, returning the (possibly repaired) bytes
// directly rather than Decode's string-shaped return. Most callers never
// hit the invalid path at all, since strings produced by this package's
// own Decode are always well-formed.
func EncodeStringBytes(s string, policy DecodePolicy) ([]byte, error) {
	if isAllASCII([]byte(s)) {
		return []byte(s), nil
	}
	b := []byte(s)
	out := make([]byte, 0, len(b))
	i := 0
	for i < len(b) {
		r, n, ok := decodeOne(b, i)
		if !ok {
			if policy == Fatal {
				return nil, werrors.ErrInvalidUTF8
			}
			out = utf8.AppendRune(out, utf8.RuneError)
			i += n
			continue
		}
		out = utf8.AppendRune(out, r)
		i += n
	}
	return out, nil
}

// EncodeUTF16 encodes a sequence of UTF-16 code units into UTF-8 bytes,
// pairing high+low surrogates into a single codepoint. An unpaired
// surrogate is rejected under Strict policy or replaced with U+FFFD under
// ReplaceSurrogate. This is the direct analogue of the original library's
// encode operation, kept for callers bridging from an actual UTF-16
// source; pbwire.Writer.WriteString works on native Go strings instead,
// where codepoints above U+FFFF are already single runes rather than
// surrogate pairs.
func EncodeUTF16(units []uint16, policy EncodePolicy) ([]byte, error) {
	out := make([]byte, 0, len(units)*3)
	for i := 0; i < len(units); i++ {
		u := units[i]
		switch {
		case !utf16.IsSurrogate(rune(u)):
			out = utf8.AppendRune(out, rune(u))
		case isHighSurrogate(u) && i+1 < len(units) && isLowSurrogate(units[i+1]):
			r := utf16.DecodeRune(rune(u), rune(units[i+1]))
			out = utf8.AppendRune(out, r)
			i++
		default:
			if policy == Strict {
				return nil, werrors.ErrInvalidUTF8
			}
			out = utf8.AppendRune(out, utf8.RuneError)
		}
	}
	return out, nil
}

func isHighSurrogate(u uint16) bool { return u >= 0xD800 && u <= 0xDBFF }
func isLowSurrogate(u uint16) bool  { return u >= 0xDC00 && u <= 0xDFFF }
