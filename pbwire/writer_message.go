// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pbwire

import (
	"github.com/pbcodec/pbwire/internal/xint64"
	"github.com/pbcodec/pbwire/wire"
)

// WriteMessage emits field's DELIMITED header, reserves a length
// bookmark in the block list, invokes cb to emit the nested message's
// fields, then patches the bookmark with the final length — computed as
// the number of bytes cb (plus anything already pending in scratch)
// actually wrote. The bookmark stays in its position in the block list,
// so Result flattens the length into the right place even though it
// wasn't known when the header was written.
func (w *Writer) WriteMessage(field wire.Number, cb func(*Writer) error) error {
	w.WriteFieldHeader(field, wire.BytesType)
	w.flush()
	bookmark := len(w.blocks)
	w.blocks = append(w.blocks, nil)
	snapshot := w.totalLength

	if err := cb(w); err != nil {
		return err
	}
	w.flush()

	size := w.totalLength - snapshot
	lenEnc := wire.NewEncoder()
	lenEnc.WriteVarint64(uint64(size))
	lenBytes := lenEnc.End()
	w.blocks[bookmark] = lenBytes
	w.totalLength += len(lenBytes)
	return nil
}

// WriteGroup emits START_GROUP(field), invokes cb, then emits
// END_GROUP(field).
func (w *Writer) WriteGroup(field wire.Number, cb func(*Writer) error) error {
	w.WriteFieldHeader(field, wire.StartGroupType)
	if err := cb(w); err != nil {
		return err
	}
	w.WriteFieldHeader(field, wire.EndGroupType)
	return nil
}

// WriteMessageSet emits the canonical legacy MessageSet wrapper around
// cb's output: START_GROUP(1), VARINT(2)=typeID, DELIMITED(3)={cb's
// bytes}, END_GROUP(1).
func (w *Writer) WriteMessageSet(typeID int32, cb func(*Writer) error) error {
	w.WriteFieldHeader(messageSetItemField, wire.StartGroupType)
	w.WriteFieldHeader(2, wire.VarintType)
	w.scratch.WriteVarint32(uint32(typeID))
	if err := w.WriteMessage(3, cb); err != nil {
		return err
	}
	w.WriteFieldHeader(messageSetItemField, wire.EndGroupType)
	return nil
}

// writePacked emits field's DELIMITED header and a length-prefixed run
// of values produced by encode, called once against a scratch encoder.
// Unlike WriteMessage, a packed field's full contents are known before
// any byte is committed, so no bookmark indirection is needed.
func (w *Writer) writePacked(field wire.Number, encode func(*wire.Encoder)) {
	w.WriteFieldHeader(field, wire.BytesType)
	tmp := wire.NewEncoder()
	encode(tmp)
	b := tmp.End()
	w.scratch.WriteVarint32(uint32(len(b)))
	w.appendBlock(b)
}

// WritePackedInt32 writes values as a single packed DELIMITED field.
func (w *Writer) WritePackedInt32(field wire.Number, values []int32) {
	w.writePacked(field, func(e *wire.Encoder) {
		for _, v := range values {
			e.WriteSignedVarint32(v)
		}
	})
}

// WritePackedUint32 is WritePackedInt32 for uint32.
func (w *Writer) WritePackedUint32(field wire.Number, values []uint32) {
	w.writePacked(field, func(e *wire.Encoder) {
		for _, v := range values {
			e.WriteVarint32(v)
		}
	})
}

// WritePackedSint32 is WritePackedInt32 with zig-zag encoding.
func (w *Writer) WritePackedSint32(field wire.Number, values []int32) {
	w.writePacked(field, func(e *wire.Encoder) {
		for _, v := range values {
			e.WriteZigzagVarint32(v)
		}
	})
}

// WritePackedFixed32 writes values as packed little-endian fixed32s.
func (w *Writer) WritePackedFixed32(field wire.Number, values []uint32) {
	w.writePacked(field, func(e *wire.Encoder) {
		for _, v := range values {
			e.WriteUint32(v)
		}
	})
}

// WritePackedSfixed32 writes values as packed little-endian signed
// fixed32s.
func (w *Writer) WritePackedSfixed32(field wire.Number, values []int32) {
	w.writePacked(field, func(e *wire.Encoder) {
		for _, v := range values {
			e.WriteInt32(v)
		}
	})
}

// WritePackedFloat writes values as packed IEEE-754 float32s.
func (w *Writer) WritePackedFloat(field wire.Number, values []float32) {
	w.writePacked(field, func(e *wire.Encoder) {
		for _, v := range values {
			e.WriteFloat(v)
		}
	})
}

// WritePackedDouble writes values as packed IEEE-754 float64s.
func (w *Writer) WritePackedDouble(field wire.Number, values []float64) {
	w.writePacked(field, func(e *wire.Encoder) {
		for _, v := range values {
			e.WriteDouble(v)
		}
	})
}

// WritePackedBool writes values as a packed run of one-byte booleans.
func (w *Writer) WritePackedBool(field wire.Number, values []bool) {
	w.writePacked(field, func(e *wire.Encoder) {
		for _, v := range values {
			e.WriteBool(v)
		}
	})
}

// WritePackedInt64 writes values as a packed run of native int64
// varints.
func (w *Writer) WritePackedInt64(field wire.Number, values []int64) {
	w.writePacked(field, func(e *wire.Encoder) {
		for _, v := range values {
			e.WriteSignedVarint64(v)
		}
	})
}

// WritePackedUint64 is WritePackedInt64 for uint64.
func (w *Writer) WritePackedUint64(field wire.Number, values []uint64) {
	w.writePacked(field, func(e *wire.Encoder) {
		for _, v := range values {
			e.WriteVarint64(v)
		}
	})
}

// WritePackedSint64 is WritePackedInt64 with zig-zag encoding.
func (w *Writer) WritePackedSint64(field wire.Number, values []int64) {
	w.writePacked(field, func(e *wire.Encoder) {
		for _, v := range values {
			e.WriteZigzagVarint64(v)
		}
	})
}

// WritePackedFixed64 writes values as packed little-endian fixed64s.
func (w *Writer) WritePackedFixed64(field wire.Number, values []uint64) {
	w.writePacked(field, func(e *wire.Encoder) {
		for _, v := range values {
			s := xint64.FromUint64(v)
			e.WriteSplitFixed64(s.Lo, s.Hi)
		}
	})
}

// WritePackedSfixed64 writes values as packed little-endian signed
// fixed64s.
func (w *Writer) WritePackedSfixed64(field wire.Number, values []int64) {
	w.writePacked(field, func(e *wire.Encoder) {
		for _, v := range values {
			s := xint64.FromInt64(v)
			e.WriteSplitFixed64(s.Lo, s.Hi)
		}
	})
}

// WritePackedEnum writes values as a packed run of raw varint-encoded
// enum wire values, matching WriteEnum's own per-value encoding.
func (w *Writer) WritePackedEnum(field wire.Number, values []int32) {
	w.writePacked(field, func(e *wire.Encoder) {
		for _, v := range values {
			e.WriteSignedVarint32(v)
		}
	})
}
