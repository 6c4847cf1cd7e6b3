// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pbwire implements the field-tag state machine that drives
// protocol-buffer parsing and emission on top of package wire's raw
// primitive engines: Reader walks a tag/value stream one field at a
// time, Writer accumulates one via a block list with deferred
// submessage-length bookmarks.
package pbwire

import (
	"fmt"

	"github.com/pbcodec/pbwire/internal/werrors"
	"github.com/pbcodec/pbwire/wire"
)

// DebugAssertions gates the prior-field-consumed invariant check in
// NextField. Leave enabled during development; a release build may set
// this false to skip the extra bookkeeping.
var DebugAssertions = true

// Reader is the field-oriented parser built on a wire.Decoder. Callers
// repeatedly call NextField, inspect FieldNumber/WireType, then invoke a
// matching typed read, ReadMessage, ReadGroup, or SkipField before the
// next NextField call.
type Reader struct {
	dec  *wire.Decoder
	opts ReaderOptions

	fieldCursor     int
	payloadStart    int
	nextFieldNumber wire.Number
	nextWireType    wire.Type
	tagValid        bool
}

// NewReader returns an unattached Reader configured by opts.
func NewReader(opts ReaderOptions) *Reader {
	return &Reader{dec: wire.NewDecoder(), opts: opts}
}

// Attach binds the reader to buf[start : start+length] and clears all
// field-cursor state.
func (r *Reader) Attach(buf []byte, start, length int) {
	r.dec.Attach(buf, start, length, r.opts.TreatNewDataAsImmutable)
	r.dec.SetAliasBytesFields(r.opts.AliasBytesFields)
	r.fieldCursor = start
	r.payloadStart = start
	r.tagValid = false
}

// AttachWhole is Attach over the entirety of buf.
func (r *Reader) AttachWhole(buf []byte) { r.Attach(buf, 0, len(buf)) }

// Reset clears all state so the reader can return to a pool.
func (r *Reader) Reset() {
	r.dec.Reset()
	r.fieldCursor, r.payloadStart = 0, 0
	r.nextFieldNumber, r.nextWireType = 0, 0
	r.tagValid = false
}

// FieldNumber returns the field number of the most recently advanced-to
// field. Only valid after NextField/NextFieldIfTagEquals returns true.
func (r *Reader) FieldNumber() wire.Number { return r.nextFieldNumber }

// WireType returns the wire type of the most recently advanced-to field.
func (r *Reader) WireType() wire.Type { return r.nextWireType }

// Decoder exposes the underlying low-level engine, for callers that need
// cursor-level access (e.g. MessageSet parsing's save/restore rewind).
func (r *Reader) Decoder() *wire.Decoder { return r.dec }

// NextField advances to the next field tag. It returns false with a nil
// error when the input is exhausted. On debug builds, it first asserts
// that the previously advanced-to field's payload was actually consumed
// (via a typed read or SkipField) — calling NextField twice in a row
// without consuming the field in between is a programmer error.
func (r *Reader) NextField() (bool, error) {
	if r.dec.AtEnd() {
		r.tagValid = false
		return false, nil
	}
	if DebugAssertions && r.tagValid {
		r.assertPriorFieldConsumed()
	}
	r.fieldCursor = r.dec.Cursor()
	header, err := r.dec.ReadVarint32()
	if err != nil {
		return false, err
	}
	num, typ := wire.DecodeTag(uint64(header))
	if typ > wire.Fixed32Type {
		return false, werrors.ErrInvalidWireType
	}
	if num < wire.MinValidNumber {
		return false, werrors.ErrInvalidFieldNumber
	}
	r.payloadStart = r.dec.Cursor()
	r.nextFieldNumber = num
	r.nextWireType = typ
	r.tagValid = true
	return true, nil
}

// NextFieldIfTagEquals is the optimistic equality fast path: it attempts
// to match the exact canonical tag encoding of (field, typ) without
// throwing on EOF or mismatch. On a match it advances and populates the
// next-field state as NextField would; on a mismatch it leaves the
// reader untouched and returns false.
func (r *Reader) NextFieldIfTagEquals(field wire.Number, typ wire.Type) bool {
	if DebugAssertions && r.tagValid {
		r.assertPriorFieldConsumed()
	}
	expected := uint32(wire.MakeTag(field, typ))
	saved := r.dec.Cursor()
	if !r.dec.ReadVarint32IfEqual(expected) {
		return false
	}
	r.fieldCursor = saved
	r.payloadStart = r.dec.Cursor()
	r.nextFieldNumber = field
	r.nextWireType = typ
	r.tagValid = true
	return true
}

// assertPriorFieldConsumed panics if the field most recently advanced to
// has a payload-bearing wire type and its payload was never read or
// skipped: the decoder's cursor would still sit exactly where it was
// right after the tag was parsed.
func (r *Reader) assertPriorFieldConsumed() {
	if r.nextWireType == wire.StartGroupType || r.nextWireType == wire.EndGroupType {
		return
	}
	if r.dec.Cursor() == r.payloadStart {
		panic("pbwire: prior field was not consumed before the next NextField")
	}
}

// requireWireType panics if the current field's wire type does not
// match want; a typed read called against the wrong wire type is a
// caller contract violation, not a data error.
func (r *Reader) requireWireType(want wire.Type) {
	if r.nextWireType != want {
		panic(fmt.Sprintf("pbwire: expected wire type %d for field %d, got %d", want, r.nextFieldNumber, r.nextWireType))
	}
}

// SkipField discards the current field's payload according to its wire
// type, leaving the decoder positioned at the start of the next tag.
func (r *Reader) SkipField() error {
	switch r.nextWireType {
	case wire.VarintType:
		return r.skipVarint()
	case wire.Fixed32Type:
		_, err := r.dec.ReadUint32()
		return err
	case wire.Fixed64Type:
		return r.dec.ReadSplitFixed64(func(lo, hi uint32) error { return nil })
	case wire.BytesType:
		length, err := r.dec.ReadVarint32()
		if err != nil {
			return err
		}
		_, err = r.dec.ReadBytes(int(length))
		return err
	case wire.StartGroupType:
		return r.SkipGroup()
	default:
		return werrors.ErrInvalidWireType
	}
}

func (r *Reader) skipVarint() error {
	return r.dec.ReadSplitVarint64(func(lo, hi uint32) error { return nil })
}

// SkipGroup repeatedly advances and skips fields until it observes an
// END_GROUP tag matching the field number of the START_GROUP tag the
// reader is currently positioned on.
func (r *Reader) SkipGroup() error {
	field := r.nextFieldNumber
	for {
		ok, err := r.NextField()
		if err != nil {
			return err
		}
		if !ok {
			return werrors.ErrUnmatchedStartGroupEOF
		}
		if r.nextWireType == wire.EndGroupType {
			if r.nextFieldNumber != field {
				return werrors.ErrUnmatchedStartGroup
			}
			return nil
		}
		if err := r.SkipField(); err != nil {
			return err
		}
	}
}

// ReadUnknownField skips the current field and, unless the reader was
// configured to discard unknowns, returns the raw bytes spanning the
// field's tag and payload for verbatim round-tripping.
func (r *Reader) ReadUnknownField() ([]byte, error) {
	start := r.fieldCursor
	if err := r.SkipField(); err != nil {
		return nil, err
	}
	if r.opts.DiscardUnknownFields {
		return nil, nil
	}
	end := r.dec.Cursor()
	saved := r.dec.Cursor()
	r.dec.SetCursor(start)
	b, err := r.dec.ReadBytes(end - start)
	r.dec.SetCursor(saved)
	return b, err
}
