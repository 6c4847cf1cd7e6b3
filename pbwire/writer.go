// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pbwire

import (
	"github.com/pbcodec/pbwire/wire"
)

// Writer accumulates a wire-format encoding as an ordered list of byte
// chunks (the block list) plus a scratch wire.Encoder for writes not yet
// flushed. Submessage lengths are unknown until the nested callback
// returns, so WriteMessage reserves a bookmark chunk in the block list
// and patches it with a varint length once the nested writes complete —
// this is what lets nested messages be emitted in a single forward pass.
type Writer struct {
	opts    WriterOptions
	scratch *wire.Encoder
	blocks  [][]byte

	// totalLength counts bytes already committed to blocks; it excludes
	// whatever is still sitting in scratch.
	totalLength int

	result []byte
}

// NewWriter returns an empty Writer configured by opts.
func NewWriter(opts WriterOptions) *Writer {
	return &Writer{opts: opts, scratch: wire.NewEncoder()}
}

// Reset clears all accumulated state so the writer can return to a pool.
func (w *Writer) Reset() {
	w.scratch.Reset()
	w.blocks = w.blocks[:0]
	w.totalLength = 0
	w.result = nil
}

// flush moves the scratch encoder's contents into the block list,
// preserving write order, and clears scratch.
func (w *Writer) flush() {
	if w.scratch.Len() == 0 {
		return
	}
	b := w.scratch.End()
	w.totalLength += len(b)
	w.blocks = append(w.blocks, b)
}

// appendBlock flushes scratch, then appends b as its own block — used
// whenever raw bytes must be spliced in without passing through the
// scratch encoder (a bytes payload, a bookmark chunk, spliced raw data).
func (w *Writer) appendBlock(b []byte) {
	w.flush()
	w.totalLength += len(b)
	w.blocks = append(w.blocks, b)
}

// WriteFieldHeader emits the tag for field as the given wire type. field
// must be a legal field number (asserted via wire.CheckFieldNumber).
func (w *Writer) WriteFieldHeader(field wire.Number, typ wire.Type) {
	wire.CheckFieldNumber(field)
	w.scratch.WriteVarint64(wire.MakeTag(field, typ))
}

// WriteRawBytes splices b verbatim into the block list with no framing,
// for replaying a preserved unknown field or an already-encoded
// submessage without re-encoding it.
func (w *Writer) WriteRawBytes(b []byte) {
	w.appendBlock(b)
}

// WriteRawMessage emits field's DELIMITED header followed by the
// already-encoded submessage bytes in b, with no re-encoding.
func (w *Writer) WriteRawMessage(field wire.Number, b []byte) {
	w.WriteFieldHeader(field, wire.BytesType)
	w.scratch.WriteVarint32(uint32(len(b)))
	w.appendBlock(b)
}

// Result flushes scratch, flattens the block list into one contiguous
// slice, caches it, and returns it. The block list is replaced by that
// single slice, so subsequent writes append after it and a later Result
// flattens into a new slice; the returned slice is safe for the caller
// to retain.
func (w *Writer) Result() []byte {
	w.flush()
	out := make([]byte, 0, w.totalLength)
	for _, b := range w.blocks {
		out = append(out, b...)
	}
	w.blocks = [][]byte{out}
	w.result = out
	return out
}
