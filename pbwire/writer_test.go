// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pbwire

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbcodec/pbwire/internal/werrors"
	"github.com/pbcodec/pbwire/wire"
)

func TestRoundTripAllWireTypes(t *testing.T) {
	w := NewWriter(WriterOptions{})
	w.WriteInt32(1, 100)
	require.NoError(t, w.WriteString(2, "Hello world"))
	require.NoError(t, w.WriteBytes(3, []byte{1, 2, 3}))
	w.WriteUint32(4, 200)

	got := w.Result()
	want, err := hex.DecodeString("0864120b48656c6c6f20776f726c641a0301020320c801")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	r := NewReader(ReaderOptions{})
	r.AttachWhole(got)

	ok, err := r.NextField()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, wire.Number(1), r.FieldNumber())
	v1, err := r.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(100), v1)

	ok, err = r.NextField()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, wire.Number(2), r.FieldNumber())
	v2, err := r.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "Hello world", v2)

	ok, err = r.NextField()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, wire.Number(3), r.FieldNumber())
	v3, err := r.ReadBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, v3)

	ok, err = r.NextField()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, wire.Number(4), r.FieldNumber())
	v4, err := r.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(200), v4)

	ok, err = r.NextField()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWriteStringFromUTF16SurrogatePair(t *testing.T) {
	// U+1F600 (😀) as a UTF-16 surrogate pair.
	units := []uint16{0xD83D, 0xDE00}

	w := NewWriter(WriterOptions{})
	require.NoError(t, w.WriteStringFromUTF16(1, units))
	got := w.Result()

	r := NewReader(ReaderOptions{})
	r.AttachWhole(got)
	ok, err := r.NextField()
	require.NoError(t, err)
	require.True(t, ok)
	s, err := r.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "😀", s)
}

func TestWriteStringFromUTF16UnpairedSurrogate(t *testing.T) {
	units := []uint16{0xD800}

	w := NewWriter(WriterOptions{})
	err := w.WriteStringFromUTF16(1, units)
	assert.Error(t, err)

	w2 := NewWriter(WriterOptions{ReplaceSurrogates: true})
	require.NoError(t, w2.WriteStringFromUTF16(1, units))
	got := w2.Result()

	r := NewReader(ReaderOptions{})
	r.AttachWhole(got)
	ok, err := r.NextField()
	require.NoError(t, err)
	require.True(t, ok)
	s, err := r.ReadString()
	require.NoError(t, err)
	assert.Contains(t, s, "�")
}

func TestPackedDoublesFromTruncatedFloats(t *testing.T) {
	var values []float64
	for i := 1; i <= 10; i++ {
		values = append(values, float64(float32(float64(i)+float64(i)/10)))
	}

	w := NewWriter(WriterOptions{})
	w.WritePackedDouble(2, values)
	got := w.Result()

	r := NewReader(ReaderOptions{})
	r.AttachWhole(got)
	ok, err := r.NextField()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, wire.Number(2), r.FieldNumber())

	out, err := r.ReadPackedDoubleInto(nil)
	require.NoError(t, err)
	assert.Equal(t, values, out)
}

func TestNestedSubmessageLengthBookmark(t *testing.T) {
	blob := []byte{1, 2, 3, 4, 5}

	w := NewWriter(WriterOptions{})
	err := w.WriteMessage(1, func(outer *Writer) error {
		return outer.WriteMessage(1, func(inner *Writer) error {
			return inner.WriteBytes(1, blob)
		})
	})
	require.NoError(t, err)
	got := w.Result()

	// blob length (5) + tag + length-varint == inner length == 7.
	// inner length (7) + tag + length-varint == outer length == 9.
	r := NewReader(ReaderOptions{})
	r.AttachWhole(got)
	ok, err := r.NextField()
	require.NoError(t, err)
	require.True(t, ok)

	var recovered []byte
	err = r.ReadMessage(func(outer *Reader) error {
		ok, err := outer.NextField()
		require.NoError(t, err)
		require.True(t, ok)
		return outer.ReadMessage(func(inner *Reader) error {
			ok, err := inner.NextField()
			require.NoError(t, err)
			require.True(t, ok)
			var err2 error
			recovered, err2 = inner.ReadBytes()
			return err2
		})
	})
	require.NoError(t, err)
	assert.Equal(t, blob, recovered)
}

func TestSkipFieldSentinelPattern(t *testing.T) {
	const sentinel = int64(123456789)

	w := NewWriter(WriterOptions{})
	w.WriteInt64(1, sentinel)
	w.WriteString(1, "noise")
	w.WriteFixed32(1, 0xDEADBEEF)
	w.WriteInt64(1, sentinel)
	w.WriteDouble(1, 3.25)
	w.WriteInt64(1, sentinel)
	got := w.Result()

	r := NewReader(ReaderOptions{})
	r.AttachWhole(got)

	ok, err := r.NextField()
	require.NoError(t, err)
	require.True(t, ok)
	v, err := r.ReadInt64()
	require.NoError(t, err)
	assert.Equal(t, sentinel, v)

	ok, err = r.NextField()
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, r.SkipField())

	ok, err = r.NextField()
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, r.SkipField())

	ok, err = r.NextField()
	require.NoError(t, err)
	require.True(t, ok)
	v, err = r.ReadInt64()
	require.NoError(t, err)
	assert.Equal(t, sentinel, v)

	ok, err = r.NextField()
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, r.SkipField())

	ok, err = r.NextField()
	require.NoError(t, err)
	require.True(t, ok)
	v, err = r.ReadInt64()
	require.NoError(t, err)
	assert.Equal(t, sentinel, v)
}

func TestGroupFraming(t *testing.T) {
	w := NewWriter(WriterOptions{})
	err := w.WriteGroup(1, func(g *Writer) error {
		return g.WriteString(1, "hello")
	})
	require.NoError(t, err)
	got := w.Result()

	r := NewReader(ReaderOptions{})
	r.AttachWhole(got)
	ok, err := r.NextField()
	require.NoError(t, err)
	require.True(t, ok)

	var recovered string
	err = r.ReadGroup(1, func(g *Reader) error {
		ok, err := g.NextField()
		require.NoError(t, err)
		require.True(t, ok)
		var err2 error
		recovered, err2 = g.ReadString()
		if err2 != nil {
			return err2
		}
		ok, err = g.NextField()
		require.NoError(t, err)
		require.True(t, ok)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", recovered)

	// Mutate the terminal tag's field number: END_GROUP(1) -> END_GROUP(2).
	mutated := append([]byte(nil), got...)
	endTagOffset := len(mutated) - 1
	mutated[endTagOffset] = byte(wire.MakeTag(2, wire.EndGroupType))

	r.AttachWhole(mutated)
	ok, err = r.NextField()
	require.NoError(t, err)
	require.True(t, ok)
	err = r.ReadGroup(1, func(g *Reader) error {
		ok, err := g.NextField()
		require.NoError(t, err)
		require.True(t, ok)
		_, err = g.ReadString()
		if err != nil {
			return err
		}
		ok, err = g.NextField()
		require.NoError(t, err)
		require.True(t, ok)
		return nil
	})
	assert.ErrorIs(t, err, werrors.ErrUnmatchedStartGroup)

	// Truncate the terminal tag entirely: the group never sees END_GROUP.
	truncated := got[:endTagOffset]
	r.AttachWhole(truncated)
	ok, err = r.NextField()
	require.NoError(t, err)
	require.True(t, ok)
	err = r.ReadGroup(1, func(g *Reader) error {
		ok, err := g.NextField()
		require.NoError(t, err)
		require.True(t, ok)
		_, err = g.ReadString()
		if err != nil {
			return err
		}
		_, err = g.NextField()
		return err
	})
	assert.Error(t, err)
}
