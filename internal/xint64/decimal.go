// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xint64

import "github.com/pbcodec/pbwire/internal/werrors"

// FromDecimalUnsigned parses s as an unsigned decimal integer. Leading
// zeros are tolerated. Overflow past 2^64 truncates silently modulo 2^64
// (matching the original's wraparound behavior rather than rejecting
// it). Any character outside
// '0'-'9', or an empty string, is a parse failure.
func FromDecimalUnsigned(s string) (Split64, error) {
	if len(s) == 0 {
		return Split64{}, werrors.ErrParseInt64
	}
	var acc Split64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return Split64{}, werrors.ErrParseInt64
		}
		acc = mulAdd10(acc, uint32(c-'0'))
	}
	return acc, nil
}

// FromDecimalSigned parses s as a signed decimal integer: an optional
// leading '-' followed by one or more digits. Negation of an overflowed
// magnitude is applied after the modulo-2^64 truncation.
func FromDecimalSigned(s string) (Split64, error) {
	if len(s) == 0 {
		return Split64{}, werrors.ErrParseInt64
	}
	neg := s[0] == '-'
	digits := s
	if neg {
		digits = s[1:]
	}
	v, err := FromDecimalUnsigned(digits)
	if err != nil {
		return Split64{}, err
	}
	if neg {
		v = v.Negate()
	}
	return v, nil
}

// mulAdd10 computes acc*10 + digit over the split-64 representation,
// truncating silently modulo 2^64 on overflow.
func mulAdd10(acc Split64, digit uint32) Split64 {
	v := acc.ToUint64()*10 + uint64(digit)
	return FromUint64(v)
}

// digits is a lookup table avoiding repeated allocation in the hot string
// building loop below.
const digits = "0123456789"

// StringUnsigned renders s as the shortest unsigned decimal string, with
// no leading zeros; (0,0) renders as "0".
func StringUnsigned(s Split64) string {
	v := s.ToUint64()
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = digits[v%10]
		v /= 10
	}
	return string(buf[i:])
}

// StringSigned renders s as a signed decimal string: if the high bit is
// set, the two's-complement negation is taken first and the result is
// prefixed with '-'.
func StringSigned(s Split64) string {
	if !s.IsNegative() {
		return StringUnsigned(s)
	}
	return "-" + StringUnsigned(s.Negate())
}
