// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pbwire

import (
	"github.com/pbcodec/pbwire/internal/xint64"
	"github.com/pbcodec/pbwire/wire"
)

// ReadInt32 reads a varint field and reinterprets it as a signed int32.
func (r *Reader) ReadInt32() (int32, error) {
	r.requireWireType(wire.VarintType)
	return r.dec.ReadSignedVarint32()
}

// ReadUint32 reads a varint field as an unsigned int32.
func (r *Reader) ReadUint32() (uint32, error) {
	r.requireWireType(wire.VarintType)
	return r.dec.ReadVarint32()
}

// ReadSint32 reads a zig-zag-encoded varint field.
func (r *Reader) ReadSint32() (int32, error) {
	r.requireWireType(wire.VarintType)
	v, err := r.dec.ReadVarint32()
	if err != nil {
		return 0, err
	}
	return xint64.ZigZagDecode32(v), nil
}

// ReadFixed32 reads a little-endian fixed32 field.
func (r *Reader) ReadFixed32() (uint32, error) {
	r.requireWireType(wire.Fixed32Type)
	return r.dec.ReadUint32()
}

// ReadSfixed32 reads a little-endian signed fixed32 field.
func (r *Reader) ReadSfixed32() (int32, error) {
	r.requireWireType(wire.Fixed32Type)
	return r.dec.ReadInt32()
}

// ReadFloat reads a fixed32 field as an IEEE-754 float32.
func (r *Reader) ReadFloat() (float32, error) {
	r.requireWireType(wire.Fixed32Type)
	return r.dec.ReadFloat()
}

// ReadDouble reads a fixed64 field as an IEEE-754 float64.
func (r *Reader) ReadDouble() (float64, error) {
	r.requireWireType(wire.Fixed64Type)
	return r.dec.ReadDouble()
}

// ReadBool reads a varint field as a boolean: any nonzero encoding reads
// true.
func (r *Reader) ReadBool() (bool, error) {
	r.requireWireType(wire.VarintType)
	return r.dec.ReadBool()
}

// EnumValidator reports whether v is a known member of some enum type,
// for use with ReadEnumChecked. It mirrors the contract generated
// message code expects from an enum descriptor's value lookup.
type EnumValidator func(v int32) bool

// ReadEnum reads a varint field as a raw enum wire value, with no
// validity check against a declared enum type.
func (r *Reader) ReadEnum() (int32, error) {
	r.requireWireType(wire.VarintType)
	return r.dec.ReadSignedVarint32()
}

// ReadEnumChecked reads a varint field as an enum value and reports
// whether valid(v) accepted it. An invalid value is still returned (the
// wire format treats an unrecognized enum value the same as an unknown
// field) along with ok=false so the caller can choose how to handle it.
func (r *Reader) ReadEnumChecked(valid EnumValidator) (v int32, ok bool, err error) {
	v, err = r.ReadEnum()
	if err != nil {
		return 0, false, err
	}
	return v, valid(v), nil
}

// ReadString reads a length-delimited field as a string, replacing
// invalid UTF-8 with U+FFFD rather than failing.
func (r *Reader) ReadString() (string, error) {
	r.requireWireType(wire.BytesType)
	length, err := r.dec.ReadVarint32()
	if err != nil {
		return "", err
	}
	return r.dec.ReadString(int(length), false)
}

// ReadStringRequireUTF8 is ReadString but fails with ErrInvalidUTF8 on
// the first invalid byte sequence instead of substituting U+FFFD.
func (r *Reader) ReadStringRequireUTF8() (string, error) {
	r.requireWireType(wire.BytesType)
	length, err := r.dec.ReadVarint32()
	if err != nil {
		return "", err
	}
	return r.dec.ReadString(int(length), true)
}

// ReadBytes reads a length-delimited field as a []byte, following the
// reader's configured alias-vs-copy policy.
func (r *Reader) ReadBytes() ([]byte, error) {
	r.requireWireType(wire.BytesType)
	length, err := r.dec.ReadVarint32()
	if err != nil {
		return nil, err
	}
	return r.dec.ReadBytes(int(length))
}

// ReadByteString reads a length-delimited field as a ByteString,
// following the mirror-image alias-vs-copy policy from ReadBytes.
func (r *Reader) ReadByteString() (wire.ByteString, error) {
	r.requireWireType(wire.BytesType)
	length, err := r.dec.ReadVarint32()
	if err != nil {
		return wire.ByteString{}, err
	}
	return r.dec.ReadByteString(int(length))
}

// ReadInt64 reads a varint field as a native signed int64.
func (r *Reader) ReadInt64() (int64, error) {
	r.requireWireType(wire.VarintType)
	var out int64
	err := r.dec.ReadSplitVarint64(func(lo, hi uint32) error {
		out = xint64.Split64{Lo: lo, Hi: hi}.ToInt64()
		return nil
	})
	return out, err
}

// ReadUint64 reads a varint field as a native unsigned uint64.
func (r *Reader) ReadUint64() (uint64, error) {
	r.requireWireType(wire.VarintType)
	var out uint64
	err := r.dec.ReadSplitVarint64(func(lo, hi uint32) error {
		out = xint64.Split64{Lo: lo, Hi: hi}.ToUint64()
		return nil
	})
	return out, err
}

// ReadSint64 reads a zig-zag-encoded varint field as a native int64.
func (r *Reader) ReadSint64() (int64, error) {
	r.requireWireType(wire.VarintType)
	var out int64
	err := r.dec.ReadSplitVarint64(func(lo, hi uint32) error {
		z := xint64.ZigZagDecode(xint64.Split64{Lo: lo, Hi: hi})
		out = z.ToInt64()
		return nil
	})
	return out, err
}

// ReadFixed64 reads a little-endian fixed64 field as a native uint64.
func (r *Reader) ReadFixed64() (uint64, error) {
	r.requireWireType(wire.Fixed64Type)
	var out uint64
	err := r.dec.ReadSplitFixed64(func(lo, hi uint32) error {
		out = xint64.Split64{Lo: lo, Hi: hi}.ToUint64()
		return nil
	})
	return out, err
}

// ReadSfixed64 reads a little-endian fixed64 field as a native int64.
func (r *Reader) ReadSfixed64() (int64, error) {
	r.requireWireType(wire.Fixed64Type)
	var out int64
	err := r.dec.ReadSplitFixed64(func(lo, hi uint32) error {
		out = xint64.Split64{Lo: lo, Hi: hi}.ToInt64()
		return nil
	})
	return out, err
}

// ReadInt64String reads a varint field and formats it as a signed
// decimal string, for hosts that cannot carry a full int64 precisely.
func (r *Reader) ReadInt64String() (string, error) {
	v, err := r.ReadInt64()
	if err != nil {
		return "", err
	}
	return xint64.StringSigned(xint64.FromInt64(v)), nil
}

// ReadUint64String is ReadInt64String for the unsigned encoding.
func (r *Reader) ReadUint64String() (string, error) {
	v, err := r.ReadUint64()
	if err != nil {
		return "", err
	}
	return xint64.StringUnsigned(xint64.FromUint64(v)), nil
}
