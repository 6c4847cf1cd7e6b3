// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/pbcodec/pbwire/internal/utf8codec"
	"github.com/pbcodec/pbwire/internal/xint64"
)

// Encoder accumulates wire-format primitive writes into a growable byte
// buffer. It has no notion of fields or
// submessage framing; pbwire.Writer builds that on top by flushing an
// Encoder's scratch contents into its own block list.
type Encoder struct {
	buf []byte
}

// NewEncoder returns an empty Encoder.
func NewEncoder() *Encoder { return &Encoder{} }

// Len returns the number of bytes written so far.
func (e *Encoder) Len() int { return len(e.buf) }

// Bytes returns the accumulated bytes without detaching them; the result
// is invalidated by the next write. Use End to take ownership.
func (e *Encoder) Bytes() []byte { return e.buf }

// End atomically detaches and returns the accumulated bytes, resetting
// the encoder to empty.
func (e *Encoder) End() []byte {
	b := e.buf
	e.buf = nil
	return b
}

// Reset clears the buffer without returning it, for pool reuse.
func (e *Encoder) Reset() { e.buf = e.buf[:0] }

func (e *Encoder) WriteUint8(v uint8)   { e.buf = append(e.buf, v) }
func (e *Encoder) WriteInt8(v int8)     { e.WriteUint8(uint8(v)) }

// WriteUint16 writes v little-endian.
func (e *Encoder) WriteUint16(v uint16) {
	e.buf = binary.LittleEndian.AppendUint16(e.buf, v)
}

func (e *Encoder) WriteInt16(v int16) { e.WriteUint16(uint16(v)) }

// WriteUint32 writes v little-endian.
func (e *Encoder) WriteUint32(v uint32) {
	e.buf = binary.LittleEndian.AppendUint32(e.buf, v)
}

func (e *Encoder) WriteInt32(v int32) { e.WriteUint32(uint32(v)) }

// WriteFloat writes v as a 32-bit IEEE-754 little-endian float.
func (e *Encoder) WriteFloat(v float32) { e.WriteUint32(xint64.Float32Bits(v)) }

// WriteDouble writes v as a 64-bit IEEE-754 little-endian float.
func (e *Encoder) WriteDouble(v float64) {
	s := xint64.Float64Bits(v)
	e.WriteUint32(s.Lo)
	e.WriteUint32(s.Hi)
}

// WriteFloatString parses one of the literal aliases "Infinity",
// "-Infinity", "NaN" (or a decimal literal via strconv) into a float32
// and writes it.
func (e *Encoder) WriteFloatString(s string) error {
	v, err := parseFloatLiteral(s, 32)
	if err != nil {
		return err
	}
	e.WriteFloat(float32(v))
	return nil
}

// WriteDoubleString is WriteFloatString for the 64-bit encoding.
func (e *Encoder) WriteDoubleString(s string) error {
	v, err := parseFloatLiteral(s, 64)
	if err != nil {
		return err
	}
	e.WriteDouble(v)
	return nil
}

func parseFloatLiteral(s string, bitSize int) (float64, error) {
	switch s {
	case "Infinity":
		return math.Inf(1), nil
	case "-Infinity":
		return math.Inf(-1), nil
	case "NaN":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, bitSize)
}

// WriteBool writes exactly one byte: 0x01 if v is nonzero/true, else 0x00.
func (e *Encoder) WriteBool(v bool) {
	if v {
		e.WriteUint8(1)
	} else {
		e.WriteUint8(0)
	}
}

// WriteString encodes s as UTF-8 (validating under the given fatal
// policy) and appends the raw bytes with no length prefix; callers that
// need the length-delimited wire form use pbwire.Writer.WriteString.
func (e *Encoder) WriteString(s string, fatal bool) error {
	policy := utf8codec.Replace
	if fatal {
		policy = utf8codec.Fatal
	}
	b, err := utf8codec.EncodeStringBytes(s, policy)
	if err != nil {
		return err
	}
	e.buf = append(e.buf, b...)
	return nil
}

// WriteRawBytes appends b verbatim with no framing, for splicing
// already-encoded content (e.g. preserved unknown fields).
func (e *Encoder) WriteRawBytes(b []byte) { e.buf = append(e.buf, b...) }
