// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import "github.com/pbcodec/pbwire/internal/pool"

var decoderPool = pool.New(
	func() *Decoder { return NewDecoder() },
	func(d *Decoder) { d.Reset() },
)

// AcquireDecoder returns a Decoder from the shared bounded free-list,
// either recycled or freshly allocated. Release it with ReleaseDecoder
// once the caller is done reading from it.
func AcquireDecoder() *Decoder { return decoderPool.Acquire() }

// ReleaseDecoder clears d's bound buffer and returns it to the
// free-list, unless the list is already at capacity.
func ReleaseDecoder(d *Decoder) { decoderPool.Release(d) }

var encoderPool = pool.New(
	func() *Encoder { return NewEncoder() },
	func(e *Encoder) { e.Reset() },
)

// AcquireEncoder returns an Encoder from the shared bounded free-list,
// either recycled or freshly allocated. Release it with ReleaseEncoder
// once its bytes have been detached via End.
func AcquireEncoder() *Encoder { return encoderPool.Acquire() }

// ReleaseEncoder clears e's buffer and returns it to the free-list,
// unless the list is already at capacity.
func ReleaseEncoder(e *Encoder) { encoderPool.Release(e) }
