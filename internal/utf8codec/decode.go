// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package utf8codec

import (
	"unicode/utf8"

	"github.com/pbcodec/pbwire/internal/werrors"
)

// Decode converts a UTF-8 byte run into a Go string, following strict
// byte-level validation rules: overlong 2/3/4-byte sequences are
// rejected, the UTF-16 surrogate range is rejected in 3-byte sequences,
// codepoints beyond U+10FFFF are rejected in 4-byte sequences.
//
// On an invalid sequence: Fatal policy returns ErrInvalidUTF8 immediately.
// Replace policy appends U+FFFD for the "maximal subpart" of the
// ill-formed sequence (the longest run of bytes that were still
// consistent with *some* valid lead, up to but excluding the byte that
// broke validity) and resumes scanning at that disproving byte — it is
// never consumed as part of the replaced run.
func Decode(b []byte, policy DecodePolicy) (string, error) {
	if isAllASCII(b) {
		return string(b), nil
	}
	out := make([]byte, 0, len(b))
	i := 0
	for i < len(b) {
		r, n, ok := decodeOne(b, i)
		if !ok {
			if policy == Fatal {
				return "", werrors.ErrInvalidUTF8
			}
			out = utf8.AppendRune(out, utf8.RuneError)
			i += n
			continue
		}
		out = utf8.AppendRune(out, r)
		i += n
	}
	return string(out), nil
}

func isAllASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}

// decodeOne attempts to decode one codepoint starting at b[i]. On success
// it returns the rune and the number of bytes it occupies. On failure it
// returns ok=false and n set to the length of the ill-formed maximal
// subpart (always >= 1) that the caller should treat as consumed; the
// byte at b[i+n] (if any) is the one that disproved the sequence and was
// not examined as part of this attempt.
func decodeOne(b []byte, i int) (r rune, n int, ok bool) {
	b0 := b[i]
	switch {
	case b0 < 0x80:
		return rune(b0), 1, true

	case b0 >= 0xC2 && b0 <= 0xDF: // 2-byte: 110xxxxx
		if i+1 >= len(b) || !isTrail(b[i+1]) {
			return 0, 1, false
		}
		return rune(b0&0x1F)<<6 | rune(b[i+1]&0x3F), 2, true

	case b0 >= 0xE0 && b0 <= 0xEF: // 3-byte: 1110xxxx
		if i+1 >= len(b) || !trail3Valid(b0, b[i+1]) {
			return 0, 1, false
		}
		if i+2 >= len(b) || !isTrail(b[i+2]) {
			return 0, 2, false
		}
		r := rune(b0&0x0F)<<12 | rune(b[i+1]&0x3F)<<6 | rune(b[i+2]&0x3F)
		return r, 3, true

	case b0 >= 0xF0 && b0 <= 0xF4: // 4-byte: 11110xxx
		if i+1 >= len(b) || !trail4Valid(b0, b[i+1]) {
			return 0, 1, false
		}
		if i+2 >= len(b) || !isTrail(b[i+2]) {
			return 0, 2, false
		}
		if i+3 >= len(b) || !isTrail(b[i+3]) {
			return 0, 3, false
		}
		r := rune(b0&0x07)<<18 | rune(b[i+1]&0x3F)<<12 | rune(b[i+2]&0x3F)<<6 | rune(b[i+3]&0x3F)
		return r, 4, true

	default: // stray continuation byte, C0/C1 overlong lead, or F5-FF
		return 0, 1, false
	}
}

func isTrail(c byte) bool { return c >= 0x80 && c <= 0xBF }

// trail3Valid rejects the overlong E0 8x/9x prefix and the surrogate-range
// ED Ax-Bx prefix.
func trail3Valid(lead, b1 byte) bool {
	switch lead {
	case 0xE0:
		return b1 >= 0xA0 && b1 <= 0xBF
	case 0xED:
		return b1 >= 0x80 && b1 <= 0x9F
	default:
		return isTrail(b1)
	}
}

// trail4Valid rejects the overlong F0 8x prefix and codepoints beyond
// U+10FFFF (F4 9x-BFx).
func trail4Valid(lead, b1 byte) bool {
	switch lead {
	case 0xF0:
		return b1 >= 0x90 && b1 <= 0xBF
	case 0xF4:
		return b1 >= 0x80 && b1 <= 0x8F
	default:
		return isTrail(b1)
	}
}
