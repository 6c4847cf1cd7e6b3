// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pbwire

import (
	"github.com/pbcodec/pbwire/internal/werrors"
	"github.com/pbcodec/pbwire/internal/xint64"
	"github.com/pbcodec/pbwire/wire"
)

// MessageReaderFunc is invoked by ReadMessage with the reader narrowed to
// the submessage's byte range; it should consume exactly that range via
// NextField/typed-read calls.
type MessageReaderFunc func(r *Reader) error

// ReadMessage reads a length-delimited submessage: it parses the length
// prefix, narrows the decoder's end boundary to match, invokes cb, and
// restores the boundary. ErrMessageLengthMismatch is returned if cb
// leaves the cursor anywhere other than exactly the declared end.
func (r *Reader) ReadMessage(cb MessageReaderFunc) error {
	r.requireWireType(wire.BytesType)
	length, err := r.dec.ReadVarint32()
	if err != nil {
		return err
	}
	oldEnd := r.dec.End()
	newEnd := r.dec.Cursor() + int(length)
	if newEnd > oldEnd {
		return werrors.ErrMessageLengthMismatch
	}
	r.dec.SetEnd(newEnd)
	// The nested callback runs its own NextField loop; seed it as if no
	// field has yet been consumed so the invariant check doesn't fire on
	// the outer field's already-settled state.
	savedTagValid := r.tagValid
	r.tagValid = false
	err = cb(r)
	r.tagValid = savedTagValid
	if err != nil {
		r.dec.SetEnd(oldEnd)
		return err
	}
	if r.dec.Cursor() != newEnd {
		r.dec.SetEnd(oldEnd)
		return werrors.ErrMessageLengthMismatch
	}
	r.dec.SetEnd(oldEnd)
	return nil
}

// GroupReaderFunc is invoked by ReadGroup; it must consume fields via
// NextField/typed reads until it observes a matching END_GROUP tag.
type GroupReaderFunc func(r *Reader) error

// ReadGroup reads a deprecated group-framed submessage: the current tag
// must be START_GROUP for field, cb consumes fields until it sees the
// matching END_GROUP, and ReadGroup validates that the group closed
// correctly.
func (r *Reader) ReadGroup(field wire.Number, cb GroupReaderFunc) error {
	if r.nextWireType != wire.StartGroupType || r.nextFieldNumber != field {
		panic("pbwire: ReadGroup called without a matching START_GROUP tag")
	}
	r.tagValid = false
	if err := cb(r); err != nil {
		return err
	}
	if r.nextWireType != wire.EndGroupType {
		return werrors.ErrGroupDidNotEndWithEndGroup
	}
	if r.nextFieldNumber != field {
		return werrors.ErrUnmatchedStartGroup
	}
	return nil
}

// messageSetItemField is the field number of the repeated Item group in
// the legacy MessageSet wire shape.
const messageSetItemField wire.Number = 1

// MessageSetReaderFunc receives each (type_id, payload) pair found inside
// a MessageSet group.
type MessageSetReaderFunc func(typeID int32, r *Reader) error

// IsMessageSetTag reports whether the reader's current tag is the
// START_GROUP(1) tag that opens a MessageSet item.
func (r *Reader) IsMessageSetTag() bool {
	return r.nextWireType == wire.StartGroupType && r.nextFieldNumber == messageSetItemField
}

// ReadMessageSet parses one Item group of the legacy MessageSet wire
// format: `repeated group Item = 1 { required uint32 type_id = 2;
// required bytes message = 3; }`. The first-seen type_id and first-seen
// message win if either repeats. If the message payload appears before
// type_id, its position is remembered and replayed once type_id is seen;
// this internal rewind does not trip the prior-field-consumed invariant.
func (r *Reader) ReadMessageSet(cb MessageSetReaderFunc) error {
	if !r.IsMessageSetTag() {
		panic("pbwire: ReadMessageSet called without a MessageSet item tag")
	}
	r.tagValid = false

	var haveTypeID, havePayload bool
	var typeID int32
	var payloadStart int

	for {
		ok, err := r.NextField()
		if err != nil {
			return err
		}
		if !ok {
			return werrors.ErrUnmatchedStartGroupEOF
		}
		switch {
		case r.nextWireType == wire.EndGroupType:
			if r.nextFieldNumber != messageSetItemField {
				return werrors.ErrUnmatchedStartGroup
			}
			if !haveTypeID || !havePayload {
				return werrors.ErrMalformedMessageSet
			}
			saved := r.dec.Cursor()
			r.dec.SetCursor(payloadStart)
			r.tagValid = false
			tagOK, err := r.NextField()
			if err != nil {
				return err
			}
			if !tagOK || r.nextWireType != wire.BytesType {
				return werrors.ErrMalformedMessageSet
			}
			err = r.ReadMessage(func(inner *Reader) error {
				return cb(typeID, inner)
			})
			r.dec.SetCursor(saved)
			return err

		case r.nextFieldNumber == 2 && r.nextWireType == wire.VarintType:
			v, err := r.dec.ReadVarint32()
			if err != nil {
				return err
			}
			if !haveTypeID {
				typeID = int32(v)
				haveTypeID = true
			}

		case r.nextFieldNumber == 3 && r.nextWireType == wire.BytesType:
			tagPos := r.fieldCursor
			length, err := r.dec.ReadVarint32()
			if err != nil {
				return err
			}
			if _, err := r.dec.ReadBytes(int(length)); err != nil {
				return err
			}
			if !havePayload {
				payloadStart = tagPos
				havePayload = true
			}

		default:
			if err := r.SkipField(); err != nil {
				return err
			}
		}
	}
}

// ReadPackedInt32Into decodes a packed or unpacked repeated int32 field.
// If the current wire type is DELIMITED, it opens an inner length window
// and decodes consecutive varints; otherwise it decodes a single value.
// The decoded values are appended to out and the updated slice returned.
func (r *Reader) ReadPackedInt32Into(out []int32) ([]int32, error) {
	if r.nextWireType != wire.BytesType {
		v, err := r.ReadInt32()
		if err != nil {
			return out, err
		}
		return append(out, v), nil
	}
	return readPacked(r, func(d *wire.Decoder) (int32, error) { return d.ReadSignedVarint32() }, out)
}

// ReadPackedUint32Into is ReadPackedInt32Into for uint32.
func (r *Reader) ReadPackedUint32Into(out []uint32) ([]uint32, error) {
	if r.nextWireType != wire.BytesType {
		v, err := r.ReadUint32()
		if err != nil {
			return out, err
		}
		return append(out, v), nil
	}
	return readPacked(r, func(d *wire.Decoder) (uint32, error) { return d.ReadVarint32() }, out)
}

// ReadPackedFloatInto is ReadPackedInt32Into for float32.
func (r *Reader) ReadPackedFloatInto(out []float32) ([]float32, error) {
	if r.nextWireType != wire.BytesType {
		v, err := r.ReadFloat()
		if err != nil {
			return out, err
		}
		return append(out, v), nil
	}
	return readPacked(r, func(d *wire.Decoder) (float32, error) { return d.ReadFloat() }, out)
}

// ReadPackedDoubleInto is ReadPackedInt32Into for float64, routed through
// the decoder's bulk ReadDoubleArrayInto rather than the generic
// readPacked helper: doubles are fixed-width, so the element count is
// known from the length prefix alone and a single bounds check covers
// the whole run.
func (r *Reader) ReadPackedDoubleInto(out []float64) ([]float64, error) {
	if r.nextWireType != wire.BytesType {
		v, err := r.ReadDouble()
		if err != nil {
			return out, err
		}
		return append(out, v), nil
	}
	length, err := r.dec.ReadVarint32()
	if err != nil {
		return out, err
	}
	if length%8 != 0 {
		return out, werrors.ErrMessageLengthMismatch
	}
	return r.dec.ReadDoubleArrayInto(int(length/8), out)
}

// ReadPackedInt64Into is ReadPackedInt32Into for int64.
func (r *Reader) ReadPackedInt64Into(out []int64) ([]int64, error) {
	if r.nextWireType != wire.BytesType {
		v, err := r.ReadInt64()
		if err != nil {
			return out, err
		}
		return append(out, v), nil
	}
	return readPacked(r, func(d *wire.Decoder) (int64, error) {
		var v int64
		err := d.ReadSplitVarint64(func(lo, hi uint32) error {
			v = xint64.Split64{Lo: lo, Hi: hi}.ToInt64()
			return nil
		})
		return v, err
	}, out)
}

// ReadPackedUint64Into is ReadPackedInt32Into for uint64.
func (r *Reader) ReadPackedUint64Into(out []uint64) ([]uint64, error) {
	if r.nextWireType != wire.BytesType {
		v, err := r.ReadUint64()
		if err != nil {
			return out, err
		}
		return append(out, v), nil
	}
	return readPacked(r, func(d *wire.Decoder) (uint64, error) {
		var v uint64
		err := d.ReadSplitVarint64(func(lo, hi uint32) error {
			v = xint64.Split64{Lo: lo, Hi: hi}.ToUint64()
			return nil
		})
		return v, err
	}, out)
}

// ReadPackedSint32Into is ReadPackedInt32Into with zig-zag decoding.
func (r *Reader) ReadPackedSint32Into(out []int32) ([]int32, error) {
	if r.nextWireType != wire.BytesType {
		v, err := r.ReadSint32()
		if err != nil {
			return out, err
		}
		return append(out, v), nil
	}
	return readPacked(r, func(d *wire.Decoder) (int32, error) {
		v, err := d.ReadVarint32()
		if err != nil {
			return 0, err
		}
		return xint64.ZigZagDecode32(v), nil
	}, out)
}

// ReadPackedSint64Into is ReadPackedInt32Into for int64 with zig-zag
// decoding.
func (r *Reader) ReadPackedSint64Into(out []int64) ([]int64, error) {
	if r.nextWireType != wire.BytesType {
		v, err := r.ReadSint64()
		if err != nil {
			return out, err
		}
		return append(out, v), nil
	}
	return readPacked(r, func(d *wire.Decoder) (int64, error) {
		var v int64
		err := d.ReadSplitVarint64(func(lo, hi uint32) error {
			z := xint64.ZigZagDecode(xint64.Split64{Lo: lo, Hi: hi})
			v = z.ToInt64()
			return nil
		})
		return v, err
	}, out)
}

// ReadPackedFixed32Into is ReadPackedInt32Into for little-endian fixed32.
func (r *Reader) ReadPackedFixed32Into(out []uint32) ([]uint32, error) {
	if r.nextWireType != wire.BytesType {
		v, err := r.ReadFixed32()
		if err != nil {
			return out, err
		}
		return append(out, v), nil
	}
	return readPacked(r, func(d *wire.Decoder) (uint32, error) { return d.ReadUint32() }, out)
}

// ReadPackedFixed64Into is ReadPackedInt32Into for little-endian fixed64.
func (r *Reader) ReadPackedFixed64Into(out []uint64) ([]uint64, error) {
	if r.nextWireType != wire.BytesType {
		v, err := r.ReadFixed64()
		if err != nil {
			return out, err
		}
		return append(out, v), nil
	}
	return readPacked(r, func(d *wire.Decoder) (uint64, error) {
		var v uint64
		err := d.ReadSplitFixed64(func(lo, hi uint32) error {
			v = xint64.Split64{Lo: lo, Hi: hi}.ToUint64()
			return nil
		})
		return v, err
	}, out)
}

// ReadPackedSfixed32Into is ReadPackedInt32Into for signed little-endian
// fixed32.
func (r *Reader) ReadPackedSfixed32Into(out []int32) ([]int32, error) {
	if r.nextWireType != wire.BytesType {
		v, err := r.ReadSfixed32()
		if err != nil {
			return out, err
		}
		return append(out, v), nil
	}
	return readPacked(r, func(d *wire.Decoder) (int32, error) { return d.ReadInt32() }, out)
}

// ReadPackedSfixed64Into is ReadPackedInt32Into for signed little-endian
// fixed64.
func (r *Reader) ReadPackedSfixed64Into(out []int64) ([]int64, error) {
	if r.nextWireType != wire.BytesType {
		v, err := r.ReadSfixed64()
		if err != nil {
			return out, err
		}
		return append(out, v), nil
	}
	return readPacked(r, func(d *wire.Decoder) (int64, error) {
		var v int64
		err := d.ReadSplitFixed64(func(lo, hi uint32) error {
			v = xint64.Split64{Lo: lo, Hi: hi}.ToInt64()
			return nil
		})
		return v, err
	}, out)
}

// ReadPackedEnumInto is ReadPackedInt32Into for a raw varint-encoded enum
// wire value.
func (r *Reader) ReadPackedEnumInto(out []int32) ([]int32, error) {
	if r.nextWireType != wire.BytesType {
		v, err := r.ReadEnum()
		if err != nil {
			return out, err
		}
		return append(out, v), nil
	}
	return readPacked(r, func(d *wire.Decoder) (int32, error) { return d.ReadSignedVarint32() }, out)
}

// ReadPackedBoolInto is ReadPackedInt32Into for bool.
func (r *Reader) ReadPackedBoolInto(out []bool) ([]bool, error) {
	if r.nextWireType != wire.BytesType {
		v, err := r.ReadBool()
		if err != nil {
			return out, err
		}
		return append(out, v), nil
	}
	return readPacked(r, func(d *wire.Decoder) (bool, error) { return d.ReadBool() }, out)
}

// readPacked opens the inner length window for a DELIMITED packed field
// and decodes elements with read until the window is exhausted.
func readPacked[T any](r *Reader, read func(*wire.Decoder) (T, error), out []T) ([]T, error) {
	length, err := r.dec.ReadVarint32()
	if err != nil {
		return out, err
	}
	oldEnd := r.dec.End()
	newEnd := r.dec.Cursor() + int(length)
	if newEnd > oldEnd {
		return out, werrors.ErrMessageLengthMismatch
	}
	r.dec.SetEnd(newEnd)
	for r.dec.Cursor() < newEnd {
		v, err := read(r.dec)
		if err != nil {
			r.dec.SetEnd(oldEnd)
			return out, err
		}
		out = append(out, v)
	}
	r.dec.SetEnd(oldEnd)
	return out, nil
}
