// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pbwire

import "github.com/pbcodec/pbwire/internal/pool"

var readerPool = pool.New(
	func() *Reader { return NewReader(ReaderOptions{}) },
	func(r *Reader) { r.Reset() },
)

// AcquireReader returns a Reader from the shared bounded free-list,
// configured by opts, either recycled or freshly allocated. Release it
// with ReleaseReader once the caller is done with it.
func AcquireReader(opts ReaderOptions) *Reader {
	r := readerPool.Acquire()
	r.opts = opts
	return r
}

// ReleaseReader clears r's bound buffer and field-cursor state and
// returns it to the free-list, unless the list is already at capacity.
func ReleaseReader(r *Reader) { readerPool.Release(r) }

var writerPool = pool.New(
	func() *Writer { return NewWriter(WriterOptions{}) },
	func(w *Writer) { w.Reset() },
)

// AcquireWriter returns a Writer from the shared bounded free-list,
// configured by opts, either recycled or freshly allocated. Release it
// with ReleaseWriter once its Result has been consumed.
func AcquireWriter(opts WriterOptions) *Writer {
	w := writerPool.Acquire()
	w.opts = opts
	return w
}

// ReleaseWriter clears w's accumulated blocks and returns it to the
// free-list, unless the list is already at capacity.
func ReleaseWriter(w *Writer) { writerPool.Release(w) }
