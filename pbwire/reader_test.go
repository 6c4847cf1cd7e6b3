// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pbwire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbcodec/pbwire/internal/werrors"
	"github.com/pbcodec/pbwire/wire"
)

func TestReadStringInvalidUTF8(t *testing.T) {
	// field 9 (varint tag 0x4A), length 6, followed by a byte sequence
	// containing an invalid lead/trail combination.
	buf := []byte{0x4A, 0x06, 0x2A, 0x65, 0xA9, 0x60, 0xF8, 0x27}

	r := NewReader(ReaderOptions{})
	r.AttachWhole(buf)
	ok, err := r.NextField()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, wire.Number(9), r.FieldNumber())

	_, err = r.ReadStringRequireUTF8()
	assert.ErrorIs(t, err, werrors.ErrInvalidUTF8)
}

func TestReadStringReplacesInvalidUTF8(t *testing.T) {
	buf := []byte{0x4A, 0x06, 0x2A, 0x65, 0xA9, 0x60, 0xF8, 0x27}

	r := NewReader(ReaderOptions{})
	r.AttachWhole(buf)
	ok, err := r.NextField()
	require.NoError(t, err)
	require.True(t, ok)

	got, err := r.ReadString()
	require.NoError(t, err)
	assert.Contains(t, got, "�")
}

func TestNextFieldPriorFieldNotConsumedPanics(t *testing.T) {
	w := NewWriter(WriterOptions{})
	w.WriteInt32(1, 1)
	w.WriteInt32(2, 2)
	buf := w.Result()

	r := NewReader(ReaderOptions{})
	r.AttachWhole(buf)

	ok, err := r.NextField()
	require.NoError(t, err)
	require.True(t, ok)

	assert.Panics(t, func() {
		_, _ = r.NextField()
	})
}

func TestScalarRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		write func(w *Writer)
		read  func(r *Reader) (interface{}, error)
		want  interface{}
	}{
		{"int32", func(w *Writer) { w.WriteInt32(1, -42) }, func(r *Reader) (interface{}, error) { return r.ReadInt32() }, int32(-42)},
		{"uint32", func(w *Writer) { w.WriteUint32(1, 42) }, func(r *Reader) (interface{}, error) { return r.ReadUint32() }, uint32(42)},
		{"sint32", func(w *Writer) { w.WriteSint32(1, -7) }, func(r *Reader) (interface{}, error) { return r.ReadSint32() }, int32(-7)},
		{"fixed32", func(w *Writer) { w.WriteFixed32(1, 0xCAFEBABE) }, func(r *Reader) (interface{}, error) { return r.ReadFixed32() }, uint32(0xCAFEBABE)},
		{"sfixed32", func(w *Writer) { w.WriteSfixed32(1, -100) }, func(r *Reader) (interface{}, error) { return r.ReadSfixed32() }, int32(-100)},
		{"float", func(w *Writer) { w.WriteFloat(1, 3.5) }, func(r *Reader) (interface{}, error) { return r.ReadFloat() }, float32(3.5)},
		{"double", func(w *Writer) { w.WriteDouble(1, 2.718281828) }, func(r *Reader) (interface{}, error) { return r.ReadDouble() }, float64(2.718281828)},
		{"bool", func(w *Writer) { w.WriteBool(1, true) }, func(r *Reader) (interface{}, error) { return r.ReadBool() }, true},
		{"int64", func(w *Writer) { w.WriteInt64(1, -9223372036854775000) }, func(r *Reader) (interface{}, error) { return r.ReadInt64() }, int64(-9223372036854775000)},
		{"uint64", func(w *Writer) { w.WriteUint64(1, 18446744073709551000) }, func(r *Reader) (interface{}, error) { return r.ReadUint64() }, uint64(18446744073709551000)},
		{"sint64", func(w *Writer) { w.WriteSint64(1, -123456789012345) }, func(r *Reader) (interface{}, error) { return r.ReadSint64() }, int64(-123456789012345)},
		{"fixed64", func(w *Writer) { w.WriteFixed64(1, 0xDEADBEEFCAFEBABE) }, func(r *Reader) (interface{}, error) { return r.ReadFixed64() }, uint64(0xDEADBEEFCAFEBABE)},
		{"sfixed64", func(w *Writer) { w.WriteSfixed64(1, -1) }, func(r *Reader) (interface{}, error) { return r.ReadSfixed64() }, int64(-1)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWriter(WriterOptions{})
			tc.write(w)
			buf := w.Result()

			r := NewReader(ReaderOptions{})
			r.AttachWhole(buf)
			ok, err := r.NextField()
			require.NoError(t, err)
			require.True(t, ok)

			got, err := tc.read(r)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPackedScalarRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		write func(w *Writer)
		read  func(r *Reader) (interface{}, error)
		want  interface{}
	}{
		{"int32", func(w *Writer) { w.WritePackedInt32(1, []int32{-1, 0, 42}) }, func(r *Reader) (interface{}, error) { return r.ReadPackedInt32Into(nil) }, []int32{-1, 0, 42}},
		{"uint32", func(w *Writer) { w.WritePackedUint32(1, []uint32{0, 1, 0xFFFFFFFF}) }, func(r *Reader) (interface{}, error) { return r.ReadPackedUint32Into(nil) }, []uint32{0, 1, 0xFFFFFFFF}},
		{"sint32", func(w *Writer) { w.WritePackedSint32(1, []int32{-5, 5, -100}) }, func(r *Reader) (interface{}, error) { return r.ReadPackedSint32Into(nil) }, []int32{-5, 5, -100}},
		{"fixed32", func(w *Writer) { w.WritePackedFixed32(1, []uint32{1, 2, 0xCAFEBABE}) }, func(r *Reader) (interface{}, error) { return r.ReadPackedFixed32Into(nil) }, []uint32{1, 2, 0xCAFEBABE}},
		{"sfixed32", func(w *Writer) { w.WritePackedSfixed32(1, []int32{-1, 2, -3}) }, func(r *Reader) (interface{}, error) { return r.ReadPackedSfixed32Into(nil) }, []int32{-1, 2, -3}},
		{"float", func(w *Writer) { w.WritePackedFloat(1, []float32{1.5, -2.5}) }, func(r *Reader) (interface{}, error) { return r.ReadPackedFloatInto(nil) }, []float32{1.5, -2.5}},
		{"double", func(w *Writer) { w.WritePackedDouble(1, []float64{1.5, -2.5, 3.25}) }, func(r *Reader) (interface{}, error) { return r.ReadPackedDoubleInto(nil) }, []float64{1.5, -2.5, 3.25}},
		{"bool", func(w *Writer) { w.WritePackedBool(1, []bool{true, false, true}) }, func(r *Reader) (interface{}, error) { return r.ReadPackedBoolInto(nil) }, []bool{true, false, true}},
		{"int64", func(w *Writer) { w.WritePackedInt64(1, []int64{-9223372036854775000, 0, 1}) }, func(r *Reader) (interface{}, error) { return r.ReadPackedInt64Into(nil) }, []int64{-9223372036854775000, 0, 1}},
		{"uint64", func(w *Writer) { w.WritePackedUint64(1, []uint64{0, 1, 18446744073709551000}) }, func(r *Reader) (interface{}, error) { return r.ReadPackedUint64Into(nil) }, []uint64{0, 1, 18446744073709551000}},
		{"sint64", func(w *Writer) { w.WritePackedSint64(1, []int64{-123456789012345, 0, 5}) }, func(r *Reader) (interface{}, error) { return r.ReadPackedSint64Into(nil) }, []int64{-123456789012345, 0, 5}},
		{"fixed64", func(w *Writer) { w.WritePackedFixed64(1, []uint64{1, 0xDEADBEEFCAFEBABE}) }, func(r *Reader) (interface{}, error) { return r.ReadPackedFixed64Into(nil) }, []uint64{1, 0xDEADBEEFCAFEBABE}},
		{"sfixed64", func(w *Writer) { w.WritePackedSfixed64(1, []int64{-1, 0, 1}) }, func(r *Reader) (interface{}, error) { return r.ReadPackedSfixed64Into(nil) }, []int64{-1, 0, 1}},
		{"enum", func(w *Writer) { w.WritePackedEnum(1, []int32{0, 1, -1}) }, func(r *Reader) (interface{}, error) { return r.ReadPackedEnumInto(nil) }, []int32{0, 1, -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWriter(WriterOptions{})
			tc.write(w)
			buf := w.Result()

			r := NewReader(ReaderOptions{})
			r.AttachWhole(buf)
			ok, err := r.NextField()
			require.NoError(t, err)
			require.True(t, ok)

			got, err := tc.read(r)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// TestPackedScalarUnpackedFallback exercises the single-value branch of
// ReadPackedInt64Into against a non-DELIMITED wire type, the form a
// proto2 repeated field without [packed=true] would use.
func TestPackedScalarUnpackedFallback(t *testing.T) {
	w := NewWriter(WriterOptions{})
	w.WriteInt64(1, 7)
	w.WriteInt64(1, -3)
	buf := w.Result()

	r := NewReader(ReaderOptions{})
	r.AttachWhole(buf)

	var out []int64
	for i := 0; i < 2; i++ {
		ok, err := r.NextField()
		require.NoError(t, err)
		require.True(t, ok)
		var err2 error
		out, err2 = r.ReadPackedInt64Into(out)
		require.NoError(t, err2)
	}
	assert.Equal(t, []int64{7, -3}, out)
}

func TestSkipFieldCursorEquivalence(t *testing.T) {
	w := NewWriter(WriterOptions{})
	require.NoError(t, w.WriteString(1, "discarded via skip"))
	w.WriteInt32(2, 7)
	buf := w.Result()

	skipReader := NewReader(ReaderOptions{})
	skipReader.AttachWhole(buf)
	ok, err := skipReader.NextField()
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, skipReader.SkipField())

	readReader := NewReader(ReaderOptions{})
	readReader.AttachWhole(buf)
	ok, err = readReader.NextField()
	require.NoError(t, err)
	require.True(t, ok)
	_, err = readReader.ReadString()
	require.NoError(t, err)

	assert.Equal(t, readReader.Decoder().Cursor(), skipReader.Decoder().Cursor())
}

func TestReaderWriterPoolRecycling(t *testing.T) {
	w := AcquireWriter(WriterOptions{})
	w.WriteInt32(1, 5)
	buf := append([]byte(nil), w.Result()...)
	ReleaseWriter(w)

	r := AcquireReader(ReaderOptions{})
	r.AttachWhole(buf)
	ok, err := r.NextField()
	require.NoError(t, err)
	require.True(t, ok)
	v, err := r.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(5), v)
	ReleaseReader(r)

	// A second acquire should start from a cleared state.
	w2 := AcquireWriter(WriterOptions{})
	assert.Len(t, w2.Result(), 0)
	ReleaseWriter(w2)
}

func TestResultRoundTripsThroughDecode(t *testing.T) {
	w := NewWriter(WriterOptions{})
	w.WriteInt32(1, 9001)
	require.NoError(t, w.WriteString(2, "round trip"))
	buf := w.Result()

	r := NewReader(ReaderOptions{})
	r.AttachWhole(buf)

	ok, err := r.NextField()
	require.NoError(t, err)
	require.True(t, ok)
	v, err := r.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(9001), v)

	ok, err = r.NextField()
	require.NoError(t, err)
	require.True(t, ok)
	s, err := r.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "round trip", s)

	ok, err = r.NextField()
	require.NoError(t, err)
	assert.False(t, ok)
}
