// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pbwire

import (
	"encoding/base64"

	"github.com/pbcodec/pbwire/internal/utf8codec"
	"github.com/pbcodec/pbwire/internal/xint64"
	"github.com/pbcodec/pbwire/wire"
)

// WriteInt32 writes field as a varint-encoded signed int32.
func (w *Writer) WriteInt32(field wire.Number, v int32) {
	w.WriteFieldHeader(field, wire.VarintType)
	w.scratch.WriteSignedVarint32(v)
}

// WriteUint32 writes field as a varint-encoded unsigned int32.
func (w *Writer) WriteUint32(field wire.Number, v uint32) {
	w.WriteFieldHeader(field, wire.VarintType)
	w.scratch.WriteVarint32(v)
}

// WriteSint32 writes field as a zig-zag varint-encoded int32.
func (w *Writer) WriteSint32(field wire.Number, v int32) {
	w.WriteFieldHeader(field, wire.VarintType)
	w.scratch.WriteZigzagVarint32(v)
}

// WriteFixed32 writes field as a little-endian fixed32.
func (w *Writer) WriteFixed32(field wire.Number, v uint32) {
	wire.CheckUint32Range(int64(v))
	w.WriteFieldHeader(field, wire.Fixed32Type)
	w.scratch.WriteUint32(v)
}

// WriteSfixed32 writes field as a little-endian signed fixed32.
func (w *Writer) WriteSfixed32(field wire.Number, v int32) {
	w.WriteFieldHeader(field, wire.Fixed32Type)
	w.scratch.WriteInt32(v)
}

// WriteFloat writes field as an IEEE-754 fixed32 float.
func (w *Writer) WriteFloat(field wire.Number, v float32) {
	w.WriteFieldHeader(field, wire.Fixed32Type)
	w.scratch.WriteFloat(v)
}

// WriteDouble writes field as an IEEE-754 fixed64 double.
func (w *Writer) WriteDouble(field wire.Number, v float64) {
	w.WriteFieldHeader(field, wire.Fixed64Type)
	w.scratch.WriteDouble(v)
}

// WriteBool writes field as a one-byte varint boolean.
func (w *Writer) WriteBool(field wire.Number, v bool) {
	w.WriteFieldHeader(field, wire.VarintType)
	w.scratch.WriteBool(v)
}

// WriteEnum writes field as a raw varint-encoded enum wire value.
func (w *Writer) WriteEnum(field wire.Number, v int32) {
	w.WriteFieldHeader(field, wire.VarintType)
	w.scratch.WriteSignedVarint32(v)
}

// WriteInt64 writes field as a varint-encoded native signed int64.
func (w *Writer) WriteInt64(field wire.Number, v int64) {
	w.WriteFieldHeader(field, wire.VarintType)
	w.scratch.WriteSignedVarint64(v)
}

// WriteUint64 writes field as a varint-encoded native unsigned uint64.
func (w *Writer) WriteUint64(field wire.Number, v uint64) {
	w.WriteFieldHeader(field, wire.VarintType)
	w.scratch.WriteVarint64(v)
}

// WriteSint64 writes field as a zig-zag varint-encoded native int64.
func (w *Writer) WriteSint64(field wire.Number, v int64) {
	w.WriteFieldHeader(field, wire.VarintType)
	w.scratch.WriteZigzagVarint64(v)
}

// WriteFixed64 writes field as a little-endian fixed64.
func (w *Writer) WriteFixed64(field wire.Number, v uint64) {
	w.WriteFieldHeader(field, wire.Fixed64Type)
	s := xint64.FromUint64(v)
	w.scratch.WriteSplitFixed64(s.Lo, s.Hi)
}

// WriteSfixed64 writes field as a little-endian signed fixed64.
func (w *Writer) WriteSfixed64(field wire.Number, v int64) {
	w.WriteFieldHeader(field, wire.Fixed64Type)
	s := xint64.FromInt64(v)
	w.scratch.WriteSplitFixed64(s.Lo, s.Hi)
}

// WriteInt64String writes field from a signed decimal string, for
// callers that carry a 64-bit value as a string rather than a native
// int64 (e.g. a value round-tripped through JSON).
func (w *Writer) WriteInt64String(field wire.Number, s string) error {
	w.WriteFieldHeader(field, wire.VarintType)
	return w.scratch.WriteSignedVarint64String(s)
}

// WriteUint64String is WriteInt64String for the unsigned encoding.
func (w *Writer) WriteUint64String(field wire.Number, s string) error {
	w.WriteFieldHeader(field, wire.VarintType)
	return w.scratch.WriteUnsignedVarint64String(s)
}

// WriteSint64String is WriteInt64String with zig-zag encoding.
func (w *Writer) WriteSint64String(field wire.Number, s string) error {
	w.WriteFieldHeader(field, wire.VarintType)
	return w.scratch.WriteZigzagVarint64String(s)
}

// BytesInput is anything WriteBytes can coerce to a byte sequence: a
// []byte, a wire.ByteString, or a base64-encoded string.
type BytesInput interface{}

// WriteBytes writes field as a DELIMITED byte sequence. value must be a
// []byte, a wire.ByteString, or a base64-encoded string; any other type
// is a caller contract violation.
func (w *Writer) WriteBytes(field wire.Number, value BytesInput) error {
	b, err := coerceBytes(value)
	if err != nil {
		return err
	}
	w.WriteFieldHeader(field, wire.BytesType)
	w.scratch.WriteVarint32(uint32(len(b)))
	w.appendBlock(b)
	return nil
}

func coerceBytes(value BytesInput) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case wire.ByteString:
		return v.Bytes(), nil
	case string:
		return base64.StdEncoding.DecodeString(v)
	default:
		panic("pbwire: WriteBytes requires a []byte, wire.ByteString, or base64 string")
	}
}

// WriteStringFromUTF16 writes field as a UTF-8-encoded DELIMITED string
// given as UTF-16 code units, the native string representation the
// original jspb.BinaryWriter works against. Under w.opts.ReplaceSurrogates
// an unpaired surrogate is replaced with U+FFFD instead of failing the
// write.
func (w *Writer) WriteStringFromUTF16(field wire.Number, units []uint16) error {
	policy := utf8codec.Strict
	if w.opts.ReplaceSurrogates {
		policy = utf8codec.ReplaceSurrogate
	}
	b, err := utf8codec.EncodeUTF16(units, policy)
	if err != nil {
		return err
	}
	w.WriteFieldHeader(field, wire.BytesType)
	w.scratch.WriteVarint32(uint32(len(b)))
	w.appendBlock(b)
	return nil
}

// WriteString writes field as a UTF-8-encoded DELIMITED string. Under
// UTF8Always, invalid UTF-8 in s fails the write; under
// UTF8DeprecatedProto3Only it is repaired with U+FFFD, matching legacy
// proto2 string fields, which never enforced validity.
func (w *Writer) WriteString(field wire.Number, s string) error {
	policy := utf8codec.Fatal
	if w.opts.UTF8 == UTF8DeprecatedProto3Only {
		policy = utf8codec.Replace
	}
	b, err := utf8codec.EncodeStringBytes(s, policy)
	if err != nil {
		return err
	}
	w.WriteFieldHeader(field, wire.BytesType)
	w.scratch.WriteVarint32(uint32(len(b)))
	w.appendBlock(b)
	return nil
}
