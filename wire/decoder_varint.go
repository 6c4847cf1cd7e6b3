// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import "github.com/pbcodec/pbwire/internal/werrors"

// ReadVarint32 reads an unsigned base-128 varint, truncated to 32 bits.
//
// Once five value bytes have been consumed and the stream still
// indicates continuation, up to five more bytes are consumed and their
// value bits discarded (over-long tolerance) rather than failing; only a
// stream that still continues after the tenth byte is ErrInvalidVarint.
// This deliberately preserves a quirk of the format's original 32-bit
// varint reader rather than rejecting over-long encodings outright.
func (d *Decoder) ReadVarint32() (uint32, error) {
	v, _, err := d.readVarintTolerant()
	return uint32(v), err
}

// ReadSignedVarint32 reads the same bytes as ReadVarint32 but reinterprets
// bits 0-31 as a signed value.
func (d *Decoder) ReadSignedVarint32() (int32, error) {
	v, err := d.ReadVarint32()
	return int32(v), err
}

// readVarintTolerant implements the 32-bit-read truncation tolerance:
// value accumulates only the first five 7-bit groups (35 value bits, of
// which ReadVarint32 keeps the low 32); n is the number of bytes consumed.
func (d *Decoder) readVarintTolerant() (value uint64, n int, err error) {
	for n = 0; n < 5; n++ {
		b, err := d.ReadUint8()
		if err != nil {
			return 0, n, err
		}
		value |= uint64(b&0x7F) << (7 * uint(n))
		if b < 0x80 {
			return value, n + 1, nil
		}
	}
	// Over-long: keep consuming and discarding up to five more
	// continuation bytes, matching the original's tolerant 32-bit read.
	for extra := 0; extra < 5; extra++ {
		b, err := d.ReadUint8()
		n++
		if err != nil {
			return 0, n, err
		}
		if b < 0x80 {
			return value, n, nil
		}
	}
	return 0, n, werrors.ErrInvalidVarint
}

// ReadSplitVarint64 reads up to ten bytes of a 64-bit varint, calling
// convert with the accumulated low and high 32-bit halves.
func (d *Decoder) ReadSplitVarint64(convert func(lo, hi uint32) error) error {
	var lo, hi uint32
	for i := 0; i < 4; i++ {
		b, err := d.ReadUint8()
		if err != nil {
			return err
		}
		lo |= uint32(b&0x7F) << (7 * uint(i))
		if b < 0x80 {
			return convert(lo, hi)
		}
	}
	// Fifth byte contributes its low 4 value bits to lo and its top 3 value
	// bits to hi.
	b, err := d.ReadUint8()
	if err != nil {
		return err
	}
	lo |= uint32(b&0x7F) << 28
	hi = uint32(b&0x7F) >> 4
	if b < 0x80 {
		return convert(lo, hi)
	}
	for i := 0; i < 4; i++ {
		b, err := d.ReadUint8()
		if err != nil {
			return err
		}
		hi |= uint32(b&0x7F) << (7*uint(i) + 3)
		if b < 0x80 {
			return convert(lo, hi)
		}
	}
	// Tenth byte: must not continue.
	b, err = d.ReadUint8()
	if err != nil {
		return err
	}
	hi |= uint32(b&0x7F) << 31
	if b >= 0x80 {
		return werrors.ErrInvalidVarint
	}
	return convert(lo, hi)
}

// ReadSplitFixed64 consumes 8 little-endian bytes, calling convert with
// the low and high 32-bit halves.
func (d *Decoder) ReadSplitFixed64(convert func(lo, hi uint32) error) error {
	lo, err := d.ReadUint32()
	if err != nil {
		return err
	}
	hi, err := d.ReadUint32()
	if err != nil {
		return err
	}
	return convert(lo, hi)
}

// ReadBool reads a varint and returns the logical OR of all of its value
// bits being nonzero: any nonzero varint encoding (canonical or not) reads
// as true.
func (d *Decoder) ReadBool() (bool, error) {
	var nonzero uint32
	err := d.ReadSplitVarint64(func(lo, hi uint32) error {
		nonzero = lo | hi
		return nil
	})
	return nonzero != 0, err
}

// ReadVarint32IfEqual is the optimistic tag-match fast path used by
// repeated-field hot loops: it checks whether the next
// bytes are the exact canonical varint encoding of expected without
// throwing on EOF or mismatch. On a match, the cursor advances past the
// tag and ok is true; on a mismatch (including running out of bytes) the
// cursor is left untouched and ok is false.
func (d *Decoder) ReadVarint32IfEqual(expected uint32) (ok bool) {
	start := d.pos
	n := SizeVarint(uint64(expected))
	if d.pos+n > d.end {
		return false
	}
	v := expected
	for i := 0; i < n; i++ {
		want := byte(v & 0x7F)
		v >>= 7
		if i != n-1 {
			want |= 0x80
		}
		if d.buf[d.pos+i] != want {
			return false
		}
	}
	d.pos = start + n
	return true
}
