// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import "github.com/pbcodec/pbwire/internal/xint64"

// WriteVarint32 writes v as a canonical base-128 unsigned varint (1-5
// bytes).
func (e *Encoder) WriteVarint32(v uint32) {
	for v >= 0x80 {
		e.WriteUint8(byte(v) | 0x80)
		v >>= 7
	}
	e.WriteUint8(byte(v))
}

// WriteSignedVarint32 writes a signed 32-bit value using the same
// (non-zigzag) varint encoding as WriteVarint32, sign-extended to 64 bits
// of wire representation for negative values, per the int32 wire rule.
func (e *Encoder) WriteSignedVarint32(v int32) {
	e.WriteVarint64(uint64(int64(v)))
}

// WriteVarint64 writes v as a canonical base-128 unsigned varint (1-10
// bytes).
func (e *Encoder) WriteVarint64(v uint64) {
	for v >= 0x80 {
		e.WriteUint8(byte(v) | 0x80)
		v >>= 7
	}
	e.WriteUint8(byte(v))
}

// WriteSignedVarint64 writes a signed 64-bit value using the plain
// (non-zigzag) two's-complement varint wire encoding int64 fields use.
func (e *Encoder) WriteSignedVarint64(v int64) { e.WriteVarint64(uint64(v)) }

// WriteSplitVarint64 writes the 64-bit value given as split (lo, hi)
// halves, as a canonical base-128 varint.
func (e *Encoder) WriteSplitVarint64(lo, hi uint32) {
	e.WriteVarint64(xint64.Split64{Lo: lo, Hi: hi}.ToUint64())
}

// WriteSplitFixed64 writes the 64-bit value given as split (lo, hi)
// halves as 8 little-endian bytes.
func (e *Encoder) WriteSplitFixed64(lo, hi uint32) {
	e.WriteUint32(lo)
	e.WriteUint32(hi)
}

// WriteSplitZigzagVarint64 zig-zag encodes the split (lo, hi) value and
// writes it as a canonical varint.
func (e *Encoder) WriteSplitZigzagVarint64(lo, hi uint32) {
	z := xint64.ZigZagEncode(xint64.Split64{Lo: lo, Hi: hi})
	e.WriteSplitVarint64(z.Lo, z.Hi)
}

// WriteZigzagVarint32 zig-zag encodes v and writes it as a varint.
func (e *Encoder) WriteZigzagVarint32(v int32) {
	e.WriteVarint32(xint64.ZigZagEncode32(v))
}

// WriteZigzagVarint64 zig-zag encodes v and writes it as a varint.
func (e *Encoder) WriteZigzagVarint64(v int64) {
	e.WriteVarint64(xint64.ZigZagEncode64(v))
}

// WriteZigzagVarint64String parses s as a signed decimal string, zig-zag
// encodes it, and writes it as a varint.
func (e *Encoder) WriteZigzagVarint64String(s string) error {
	v, err := xint64.FromDecimalSigned(s)
	if err != nil {
		return err
	}
	z := xint64.ZigZagEncode(v)
	e.WriteSplitVarint64(z.Lo, z.Hi)
	return nil
}

// WriteUnsignedVarint64String parses s as an unsigned decimal string and
// writes it as a varint.
func (e *Encoder) WriteUnsignedVarint64String(s string) error {
	v, err := xint64.FromDecimalUnsigned(s)
	if err != nil {
		return err
	}
	e.WriteVarint64(v.ToUint64())
	return nil
}

// WriteSignedVarint64String parses s as a signed decimal string and
// writes it as a plain (non-zigzag) varint, matching the int64
// two's-complement wire rule.
func (e *Encoder) WriteSignedVarint64String(s string) error {
	v, err := xint64.FromDecimalSigned(s)
	if err != nil {
		return err
	}
	e.WriteVarint64(v.ToUint64())
	return nil
}
