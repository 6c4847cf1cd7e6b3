// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package utf8codec

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeASCII(t *testing.T) {
	s, err := Decode([]byte("Hello world"), Fatal)
	require.NoError(t, err)
	assert.Equal(t, "Hello world", s)
}

func TestDecodeOverlongRejected(t *testing.T) {
	for _, b := range [][]byte{{0xC0, 0x80}, {0xC1, 0xBF}, {0xE0, 0x80, 0x80}, {0xF0, 0x80, 0x80, 0x80}} {
		_, err := Decode(b, Fatal)
		assert.Error(t, err, "%x", b)
	}
}

func TestDecodeSurrogateRangeRejected(t *testing.T) {
	_, err := Decode([]byte{0xED, 0xA0, 0x80}, Fatal)
	assert.Error(t, err)
}

func TestDecodeBeyondMaxCodepointRejected(t *testing.T) {
	_, err := Decode([]byte{0xF4, 0x90, 0x80, 0x80}, Fatal)
	assert.Error(t, err)
}

// TestDecodeScenario6 checks a known mixed-validity byte sequence: decoded
// in lenient mode it yields a 12-rune string with U+FFFD at each invalid
// position, and the same bytes in fatal mode raise ErrInvalidUTF8.
func TestDecodeScenario6(t *testing.T) {
	b := []byte{0x4A, 0x06, 0x2A, 0x65, 0xA9, 0x60, 0xF8, 0x27, 0x48, 0x38, 0x05, 0xC0}

	s, err := Decode(b, Replace)
	require.NoError(t, err)
	assert.Equal(t, 12, utf8.RuneCountInString(s))

	runes := []rune(s)
	wantFFFD := map[int]bool{4: true, 6: true, 11: true}
	for i, r := range runes {
		if wantFFFD[i] {
			assert.Equal(t, utf8.RuneError, r, "position %d", i)
		} else {
			assert.NotEqual(t, utf8.RuneError, r, "position %d", i)
		}
	}

	_, err = Decode(b, Fatal)
	assert.Error(t, err)
}

func TestDecodeFourByteSurrogatePairEquivalent(t *testing.T) {
	// U+1F600 GRINNING FACE, a 4-byte sequence.
	b := []byte{0xF0, 0x9F, 0x98, 0x80}
	s, err := Decode(b, Fatal)
	require.NoError(t, err)
	r := []rune(s)
	require.Len(t, r, 1)
	assert.Equal(t, rune(0x1F600), r[0])
}

func TestEncodeUTF16SurrogatePairing(t *testing.T) {
	// U+1F600 as a UTF-16 surrogate pair.
	units := []uint16{0xD83D, 0xDE00}
	b, err := EncodeUTF16(units, Strict)
	require.NoError(t, err)
	s := string(b)
	r := []rune(s)
	require.Len(t, r, 1)
	assert.Equal(t, rune(0x1F600), r[0])
}

func TestEncodeUTF16UnpairedSurrogate(t *testing.T) {
	units := []uint16{0xD800, 'x'}
	_, err := EncodeUTF16(units, Strict)
	assert.Error(t, err)

	b, err := EncodeUTF16(units, ReplaceSurrogate)
	require.NoError(t, err)
	r := []rune(string(b))
	require.Len(t, r, 2)
	assert.Equal(t, utf8.RuneError, r[0])
	assert.Equal(t, rune('x'), r[1])
}
