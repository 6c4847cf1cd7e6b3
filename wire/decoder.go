// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"

	"github.com/pbcodec/pbwire/internal/utf8codec"
	"github.com/pbcodec/pbwire/internal/werrors"
	"github.com/pbcodec/pbwire/internal/xint64"
)

// Decoder reads wire-format primitives from a borrowed byte slice under a
// monotonically advancing cursor. A Decoder is bound to exactly one
// logical thread of control between Attach and the next Attach/Reset.
type Decoder struct {
	buf   []byte
	start int
	end   int
	pos   int

	// aliasBytesFields and immutable are the two policy inputs to the
	// alias-vs-copy decision for byte/string field reads: aliasBytesFields
	// is a caller-configured preference, immutable records whether the
	// buffer currently bound by Attach was promised not to mutate.
	aliasBytesFields bool
	immutable        bool
}

// NewDecoder returns an unattached Decoder. Call Attach before reading.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// SetAliasBytesFields sets the alias_bytes_fields policy flag (default
// false). It affects only subsequent ReadBytes/ReadByteString calls.
func (d *Decoder) SetAliasBytesFields(v bool) { d.aliasBytesFields = v }

// Attach binds the decoder to buf[start : start+length], resetting the
// cursor to start. immutable records whether the caller promises not to
// mutate buf while the decoder (or any aliased view it hands out) is
// alive; this is how a caller's "treat new data as immutable" policy gets
// applied at the point of binding.
func (d *Decoder) Attach(buf []byte, start, length int, immutable bool) {
	d.buf = buf
	d.start = start
	d.pos = start
	d.end = start + length
	d.immutable = immutable
}

// AttachWhole is Attach over the entirety of buf, treated as mutable
// (the common case for a freshly received wire message the caller still
// owns).
func (d *Decoder) AttachWhole(buf []byte) {
	d.Attach(buf, 0, len(buf), false)
}

// Reset clears all bound state so the decoder can be returned to a pool
// without retaining a reference to the caller's buffer.
func (d *Decoder) Reset() {
	d.buf = nil
	d.start, d.end, d.pos = 0, 0, 0
	d.aliasBytesFields = false
	d.immutable = false
}

// Cursor returns the current read position.
func (d *Decoder) Cursor() int { return d.pos }

// SetCursor moves the read position directly. Callers are responsible for
// keeping it within [start, end]; this is used by pbwire.Reader to
// snapshot/restore positions for lookahead.
func (d *Decoder) SetCursor(pos int) { d.pos = pos }

// Advance moves the cursor forward by n bytes without reading them.
func (d *Decoder) Advance(n int) { d.pos += n }

// End returns the current end boundary.
func (d *Decoder) End() int { return d.end }

// SetEnd narrows or restores the end boundary; used by submessage framing
// to bound a nested parse without touching the underlying buffer.
func (d *Decoder) SetEnd(end int) { d.end = end }

// AtEnd reports whether the cursor has reached the end boundary.
func (d *Decoder) AtEnd() bool { return d.pos >= d.end }

// PastEnd reports whether the cursor has moved beyond the end boundary
// (which should never happen through this package's own reads, but is
// exposed for diagnostics).
func (d *Decoder) PastEnd() bool { return d.pos > d.end }

// Remaining returns the number of unread bytes before the end boundary.
func (d *Decoder) Remaining() int { return d.end - d.pos }

func (d *Decoder) require(n int) error {
	if d.pos+n > d.end || n < 0 {
		return werrors.ErrReadPastEnd
	}
	return nil
}

// ReadUint8 reads one unsigned byte.
func (d *Decoder) ReadUint8() (uint8, error) {
	if err := d.require(1); err != nil {
		return 0, err
	}
	v := d.buf[d.pos]
	d.pos++
	return v, nil
}

// ReadInt8 reads one signed byte.
func (d *Decoder) ReadInt8() (int8, error) {
	v, err := d.ReadUint8()
	return int8(v), err
}

// ReadUint16 reads a little-endian unsigned 16-bit integer.
func (d *Decoder) ReadUint16() (uint16, error) {
	if err := d.require(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(d.buf[d.pos:])
	d.pos += 2
	return v, nil
}

// ReadInt16 reads a little-endian signed 16-bit integer.
func (d *Decoder) ReadInt16() (int16, error) {
	v, err := d.ReadUint16()
	return int16(v), err
}

// ReadUint32 reads a little-endian unsigned 32-bit integer.
func (d *Decoder) ReadUint32() (uint32, error) {
	if err := d.require(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(d.buf[d.pos:])
	d.pos += 4
	return v, nil
}

// ReadInt32 reads a little-endian signed 32-bit integer.
func (d *Decoder) ReadInt32() (int32, error) {
	v, err := d.ReadUint32()
	return int32(v), err
}

// ReadFloat reads a 32-bit IEEE-754 little-endian float.
func (d *Decoder) ReadFloat() (float32, error) {
	v, err := d.ReadUint32()
	if err != nil {
		return 0, err
	}
	return xint64.Float32FromBits(v), nil
}

// ReadDouble reads a 64-bit IEEE-754 little-endian float.
func (d *Decoder) ReadDouble() (float64, error) {
	if err := d.require(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(d.buf[d.pos:])
	d.pos += 8
	return xint64.Float64FromBits(xint64.FromUint64(v)), nil
}

// ReadDoubleArrayInto reads count consecutive 64-bit IEEE-754 doubles
// directly from the underlying buffer into out, the optimized bulk
// counterpart to calling ReadDouble count times: one bounds check against
// n = count*8 bytes instead of count separate ones.
func (d *Decoder) ReadDoubleArrayInto(count int, out []float64) ([]float64, error) {
	n := count * 8
	if err := d.require(n); err != nil {
		return out, err
	}
	for i := 0; i < count; i++ {
		bits := binary.LittleEndian.Uint64(d.buf[d.pos:])
		out = append(out, xint64.Float64FromBits(xint64.FromUint64(bits)))
		d.pos += 8
	}
	return out, nil
}

// ReadString advances by length bytes and decodes them as UTF-8, applying
// the fatal or replace policy selected by fatal.
func (d *Decoder) ReadString(length int, fatal bool) (string, error) {
	b, err := d.readRaw(length)
	if err != nil {
		return "", err
	}
	policy := utf8codec.Replace
	if fatal {
		policy = utf8codec.Fatal
	}
	return utf8codec.Decode(b, policy)
}

// readRaw advances by length and returns the raw sub-slice, with no
// aliasing decision applied (callers that need the alias/copy table use
// ReadBytes/ReadByteString instead).
func (d *Decoder) readRaw(length int) ([]byte, error) {
	if length < 0 {
		return nil, werrors.ErrNegativeByteLength
	}
	if err := d.require(length); err != nil {
		return nil, err
	}
	b := d.buf[d.pos : d.pos+length]
	d.pos += length
	return b, nil
}

// ReadBytes returns the next length bytes as a []byte. Per the alias
// decision table: a view (no copy) is returned only when
// aliasBytesFields is enabled AND the bound buffer is mutable — sharing a
// []byte view of immutable source data would falsely imply the result is
// safe to mutate, so that case always copies.
func (d *Decoder) ReadBytes(length int) ([]byte, error) {
	b, err := d.readRaw(length)
	if err != nil {
		return nil, err
	}
	if d.aliasBytesFields && !d.immutable {
		return b, nil
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	return cp, nil
}

// ByteString is a minimal immutable byte-sequence wrapper. The alias
// decision table needs some type distinct from []byte to express
// "promises not to mutate", so a small value type is kept here rather
// than imported from elsewhere.
type ByteString struct{ b []byte }

// Bytes returns the wrapped bytes. Callers must not mutate the result.
func (bs ByteString) Bytes() []byte { return bs.b }

// Len returns the length in bytes.
func (bs ByteString) Len() int { return len(bs.b) }

// ReadByteString returns the next length bytes as a ByteString. Per the
// alias decision table (the mirror image of ReadBytes): a view is
// returned only when aliasBytesFields is enabled AND the bound buffer is
// immutable — a ByteString promises immutability, so aliasing is only
// safe when the source already carries that guarantee.
func (d *Decoder) ReadByteString(length int) (ByteString, error) {
	b, err := d.readRaw(length)
	if err != nil {
		return ByteString{}, err
	}
	if d.aliasBytesFields && d.immutable {
		return ByteString{b: b}, nil
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	return ByteString{b: cp}, nil
}
