// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xint64

import "math"

// Float32Bits and Float64Bits expose the IEEE-754 bit layouts the wire
// format needs: ±0, ±Inf, NaN (some bit pattern, unspecified which) and
// denormals all round-trip exactly through math.Float32bits /
// math.Float64bits, which is why this package delegates to the standard
// library here rather than hand-rolling mantissa/exponent packing.

// Float32Bits returns the raw 32-bit IEEE-754 bit pattern of f.
func Float32Bits(f float32) uint32 { return math.Float32bits(f) }

// Float32FromBits is the inverse of Float32Bits.
func Float32FromBits(b uint32) float32 { return math.Float32frombits(b) }

// Float64Bits returns the raw 64-bit IEEE-754 bit pattern of f, already in
// split form for direct use by the fixed64 wire encoding.
func Float64Bits(f float64) Split64 { return FromUint64(math.Float64bits(f)) }

// Float64FromBits is the inverse of Float64Bits.
func Float64FromBits(s Split64) float64 { return math.Float64frombits(s.ToUint64()) }
