// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xint64 implements the 64-bit arithmetic substrate for the wire
// codec: split-64 <-> decimal string <-> native-number conversions, and
// zig-zag encoding. Go has native 64-bit integers, so this package is not
// load-bearing for precision the way it is in a host language without
// them; it exists because the wire format's canonical exchange
// representation for 64-bit values crossing a decimal-string boundary
// (e.g. an int64 field serialized from a JSON-adjacent caller) is a
// split (lo, hi uint32) pair.
package xint64

import "math/bits"

// Split64 is a 64-bit integer carried as two unsigned 32-bit halves. It
// carries no signedness of its own; interpretation (signed vs. unsigned)
// is a policy applied by the caller.
type Split64 struct {
	Lo uint32
	Hi uint32
}

// FromUint64 splits a native uint64 into its low and high halves.
func FromUint64(v uint64) Split64 {
	return Split64{Lo: uint32(v), Hi: uint32(v >> 32)}
}

// ToUint64 recombines the halves into a native uint64.
func (s Split64) ToUint64() uint64 {
	return uint64(s.Hi)<<32 | uint64(s.Lo)
}

// FromInt64 splits a native int64 into its low and high halves, via its
// unsigned bit pattern.
func FromInt64(v int64) Split64 {
	return FromUint64(uint64(v))
}

// ToInt64 recombines the halves into a native int64, via its unsigned bit
// pattern.
func (s Split64) ToInt64() int64 {
	return int64(s.ToUint64())
}

// Negate returns the two's-complement negation of s, i.e. the split
// representation of -s.ToInt64(). The carry case is explicit: when Lo==0
// negating it yields 0 with a carry into Hi; otherwise Lo negates to a
// nonzero value and no carry propagates.
func (s Split64) Negate() Split64 {
	lo := ^s.Lo + 1
	hi := ^s.Hi
	if s.Lo == 0 {
		hi++
	}
	return Split64{Lo: lo, Hi: hi}
}

// IsNegative reports whether s, interpreted as a signed 64-bit integer,
// has its sign bit set.
func (s Split64) IsNegative() bool {
	return s.Hi>>31 != 0
}

// ZigZagEncode maps a signed split-64 value to its unsigned zig-zag form:
// small magnitudes (positive or negative) land near zero. Implemented
// directly on the split halves: sign = hi>>31 (as an all-1s or all-0s
// mask), result = ((lo<<1)^sign, (hi<<1)|(lo>>31))^sign).
func ZigZagEncode(s Split64) Split64 {
	sign := uint32(int32(s.Hi) >> 31)
	return Split64{
		Lo: (s.Lo << 1) ^ sign,
		Hi: ((s.Hi << 1) | (s.Lo >> 31)) ^ sign,
	}
}

// ZigZagDecode is the inverse of ZigZagEncode.
func ZigZagDecode(s Split64) Split64 {
	sign := uint32(int32(s.Lo<<31) >> 31) // all-1s if lo's low bit is 1
	return Split64{
		Lo: (s.Lo >> 1) | (s.Hi << 31),
		Hi: (s.Hi >> 1),
	}.xorMask(sign)
}

// xorMask XORs both halves of s with mask, undoing the sign XOR applied by
// ZigZagEncode.
func (s Split64) xorMask(mask uint32) Split64 {
	return Split64{Lo: s.Lo ^ mask, Hi: s.Hi ^ mask}
}

// ZigZagEncode32 maps a signed 32-bit integer to its unsigned zig-zag form.
func ZigZagEncode32(n int32) uint32 {
	return (uint32(n) << 1) ^ uint32(n>>31)
}

// ZigZagDecode32 is the inverse of ZigZagEncode32.
func ZigZagDecode32(v uint32) int32 {
	return int32(v>>1) ^ -int32(v&1)
}

// ZigZagEncode64 maps a signed 64-bit integer to its unsigned zig-zag form.
func ZigZagEncode64(n int64) uint64 {
	return (uint64(n) << 1) ^ uint64(n>>63)
}

// ZigZagDecode64 is the inverse of ZigZagEncode64.
func ZigZagDecode64(v uint64) int64 {
	return int64(v>>1) ^ -int64(v&1)
}

// FromFloat64 computes the split-64 representation of a float64 treated as
// an unsigned magnitude: (n & 0xFFFFFFFF, floor(n / 2^32)). This mirrors
// the host-number conversion the original JS implementation relies on; it
// is lossy above 2^53 there, though Go's float64 has the identical mantissa
// width so the same ceiling applies here too.
func FromFloat64(n float64) Split64 {
	hi := uint32(n / 4294967296)
	lo := uint32(n - float64(hi)*4294967296)
	return Split64{Lo: lo, Hi: hi}
}

// ToFloat64Unsigned combines the halves into an unsigned magnitude float64.
func (s Split64) ToFloat64Unsigned() float64 {
	return float64(s.Hi)*4294967296 + float64(s.Lo)
}

// ToFloat64Signed combines the halves into a signed float64, subtracting
// 2^64 when the high bit is set.
func (s Split64) ToFloat64Signed() float64 {
	v := s.ToFloat64Unsigned()
	if s.IsNegative() {
		v -= 18446744073709551616.0
	}
	return v
}

// LeadingZeros64 reports the number of leading zero bits, useful for
// deciding how many varint bytes a value needs.
func LeadingZeros64(s Split64) int {
	if s.Hi != 0 {
		return bits.LeadingZeros32(s.Hi)
	}
	return 32 + bits.LeadingZeros32(s.Lo)
}
